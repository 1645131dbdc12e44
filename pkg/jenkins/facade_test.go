package jenkins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/jenkins"
)

func TestParseBuildID(t *testing.T) {
	job, number, err := jenkins.ParseBuildID("folder/app#42")
	require.NoError(t, err)
	assert.Equal(t, "folder/app", job)
	assert.Equal(t, 42, number)
	assert.Equal(t, "folder/app#42", jenkins.BuildID(job, number))

	for _, id := range []string{"", "app", "#1", "app#", "app#x", "app#0", "app#-1"} {
		_, _, err := jenkins.ParseBuildID(id)
		assert.Error(t, err, id)
	}
}

func TestJobPath(t *testing.T) {
	assert.Equal(t, "job/app", jenkins.JobPath("app"))
	assert.Equal(t, "job/folder/job/my%20job", jenkins.JobPath("/folder/my job/"))
}

func TestACL(t *testing.T) {
	acl := jenkins.NewACL()
	acl.Grant("root", jenkins.Administer, "")
	acl.Grant("bob", jenkins.ItemRead, "team")
	acl.Grant("bob", jenkins.ItemRead, "team")

	assert.True(t, acl.HasPermission([]string{"root"}, jenkins.RunUpdate, "any/job"), "administer implies all")
	assert.True(t, acl.HasPermission([]string{"bob"}, jenkins.ItemRead, "team/lib"), "grants apply to children")
	assert.True(t, acl.HasPermission([]string{"bob"}, jenkins.ItemRead, "/team/"))
	assert.False(t, acl.HasPermission([]string{"bob"}, jenkins.ItemRead, "teams"))
	assert.False(t, acl.HasPermission([]string{"bob"}, jenkins.ItemRead, ""))
	assert.False(t, acl.HasPermission(nil, jenkins.ItemRead, "team"))

	for _, grant := range []string{"", "Job/Read", ":bob", "Job/Read:", "Job/Read:@team"} {
		assert.Error(t, acl.ParseGrant(grant), grant)
	}
}

func TestIsRunning(t *testing.T) {
	env := map[string]string{
		jenkins.EnvJenkinsURL:  "https://ci/",
		jenkins.EnvBuildNumber: "7",
		jenkins.EnvJobName:     "team/lib",
	}
	assert.True(t, jenkins.IsRunning(env))

	id, ok := jenkins.CurrentBuildID(env)
	require.True(t, ok)
	assert.Equal(t, "team/lib#7", id)

	assert.False(t, jenkins.IsRunning(map[string]string{jenkins.EnvBuildNumber: "7"}))
	_, ok = jenkins.CurrentBuildID(nil)
	assert.False(t, ok)
}
