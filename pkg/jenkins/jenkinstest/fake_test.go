package jenkinstest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/jenkins"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/jenkins/jenkinstest"
)

func TestFake(t *testing.T) {
	ctx := context.Background()
	fake := jenkinstest.New("https://ci.example.com").
		AddJob("app").
		AddBuild("team/lib", 3, "SUCCESS").
		AddJob("secret").
		Hide("secret").
		InstallPlugin("git")

	job, err := fake.Job(ctx, "team/lib")
	require.NoError(t, err)
	assert.Equal(t, "lib", job.Name)
	assert.Equal(t, "https://ci.example.com/job/team/job/lib/", job.URL)

	_, err = fake.Job(ctx, "secret")
	require.ErrorIs(t, err, jenkins.ErrNotFound)

	build, err := fake.Build(ctx, "team/lib#3")
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", build.Result)

	_, err = fake.Build(ctx, "team/lib#4")
	require.ErrorIs(t, err, jenkins.ErrNotFound)

	names, err := fake.AllJobNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "team/lib"}, names)

	ok, err := fake.IsPluginInstalled(ctx, "git")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fake.HasPermission(ctx, jenkins.ItemRead, "app")
	require.NoError(t, err)
	assert.False(t, ok)

	fake.ACL().Grant("alice", jenkins.ItemRead, "app")
	ok, err = fake.LoginAs("alice").HasPermission(ctx, jenkins.ItemRead, "app")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "https://ci.example.com/job/app", fake.AbsoluteURL("job", "app"))
}
