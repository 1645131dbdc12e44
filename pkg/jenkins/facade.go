package jenkins

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrNotFound 作业或构建不存在，或当前用户无权访问。
//
// 两种情况不作区分，避免向无权用户泄露作业是否存在。
var ErrNotFound = errors.New("jenkins: not found")

// Permission Jenkins 权限，使用界面上显示的 "组/名称" 形式。
type Permission string

// 常用权限。
const (
	Administer    Permission = "Overall/Administer"
	OverallRead   Permission = "Overall/Read"
	ItemRead      Permission = "Job/Read"
	ItemBuild     Permission = "Job/Build"
	ItemConfigure Permission = "Job/Configure"
	ItemDiscover  Permission = "Job/Discover"
	RunUpdate     Permission = "Run/Update"
)

// Job 作业。文件夹也以 Job 表示，Jobs 为其子项。
type Job struct {
	Class     string `json:"_class,omitempty"`
	Name      string `json:"name"`
	FullName  string `json:"fullName"`
	URL       string `json:"url"`
	Buildable bool   `json:"buildable"`
	Jobs      []Job  `json:"jobs,omitempty"`
}

// IsFolder 报告是否为包含子项的文件夹。
func (j Job) IsFolder() bool {
	return j.Jobs != nil
}

// Build 一次构建。
type Build struct {
	ID              string `json:"id"`
	Number          int    `json:"number"`
	FullDisplayName string `json:"fullDisplayName"`
	URL             string `json:"url"`
	Result          string `json:"result"`
	Building        bool   `json:"building"`
	Timestamp       int64  `json:"timestamp"`
	Duration        int64  `json:"duration"`
}

// Facade Jenkins 门面。
type Facade interface {
	// HasPermission 检查当前用户在 item 上是否有权限；item 为空时检查全局权限。
	HasPermission(ctx context.Context, permission Permission, item string) (bool, error)
	// Job 按全名查找作业。
	Job(ctx context.Context, fullName string) (*Job, error)
	// Build 按构建 ID（"作业全名#编号"）查找构建。
	Build(ctx context.Context, id string) (*Build, error)
	// AllJobs 返回全部作业，递归展开文件夹，不含文件夹本身。
	AllJobs(ctx context.Context) ([]Job, error)
	// AllJobNames 返回全部作业的全名。
	AllJobNames(ctx context.Context) ([]string, error)
	// IsPluginInstalled 检查插件是否已安装。
	IsPluginInstalled(ctx context.Context, pluginID string) (bool, error)
	// AbsoluteURL 以 "/" 连接 elements，并在配置了根 URL 时加上根 URL。
	AbsoluteURL(elements ...string) string
	// ImagePath 返回静态资源图标的路径。
	ImagePath(icon string) string
	// FullNameOf 返回作业全名。
	FullNameOf(job Job) string
}

// ParseBuildID 解析 "folder/job#42" 形式的构建 ID。
func ParseBuildID(id string) (job string, number int, err error) {
	job, num, ok := strings.Cut(id, "#")
	if !ok || job == "" {
		return "", 0, fmt.Errorf("invalid build id %q: expected JOB#NUMBER", id)
	}

	number, err = strconv.Atoi(num)
	if err != nil || number <= 0 {
		return "", 0, fmt.Errorf("invalid build number in %q", id)
	}

	return job, number, nil
}

// BuildID 返回构建 ID。
func BuildID(job string, number int) string {
	return job + "#" + strconv.Itoa(number)
}

// JobPath 把作业全名转为 URL 路径，如 "a/b" → "job/a/job/b"。
func JobPath(fullName string) string {
	var sb strings.Builder
	for i, name := range strings.Split(strings.Trim(fullName, "/"), "/") {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString("job/")
		sb.WriteString(url.PathEscape(name))
	}

	return sb.String()
}

func fullNameOf(job Job) string {
	if job.FullName != "" {
		return job.FullName
	}

	return job.Name
}

func childFullName(parent string, job Job) string {
	if job.FullName != "" || parent == "" {
		return fullNameOf(job)
	}

	return parent + "/" + job.Name
}
