package jenkins

// Jenkins 在构建环境中设置的变量名。
const (
	EnvBuildNumber = "BUILD_NUMBER"
	EnvBuildID     = "BUILD_ID"
	EnvBuildURL    = "BUILD_URL"
	EnvBuildTag    = "BUILD_TAG"
	EnvJobName     = "JOB_NAME"
	EnvJobBaseName = "JOB_BASE_NAME"
	EnvJobURL      = "JOB_URL"
	EnvJenkinsURL  = "JENKINS_URL"
	EnvJenkinsHome = "JENKINS_HOME"
	EnvWorkspace   = "WORKSPACE"
	EnvNodeName    = "NODE_NAME"
	EnvExecutorNum = "EXECUTOR_NUMBER"
	EnvGitCommit   = "GIT_COMMIT"
	EnvGitBranch   = "GIT_BRANCH"
	EnvChangeID    = "CHANGE_ID"
	EnvBranchName  = "BRANCH_NAME"
)

// IsRunning 报告 env 是否来自 Jenkins 构建。
func IsRunning(env map[string]string) bool {
	return env[EnvJenkinsURL] != "" && env[EnvBuildNumber] != ""
}

// CurrentBuildID 返回 env 所描述构建的 ID；不在 Jenkins 中运行时 ok 为 false。
func CurrentBuildID(env map[string]string) (id string, ok bool) {
	if !IsRunning(env) || env[EnvJobName] == "" {
		return "", false
	}

	return env[EnvJobName] + "#" + env[EnvBuildNumber], true
}
