// Package jenkinstest 提供 [jenkins.Facade] 的内存实现，供测试使用。
package jenkinstest

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/jenkins"
)

// Fake 内存中的 Jenkins。零值不可用，请使用 [New]。
type Fake struct {
	mu         sync.RWMutex
	root       string
	principals []string
	acl        *jenkins.ACL
	jobs       map[string]jenkins.Job
	builds     map[string]jenkins.Build
	plugins    map[string]bool
	hidden     map[string]bool
}

var _ jenkins.Facade = (*Fake)(nil)

// New 创建 Fake，当前用户为 "anonymous"。
func New(rootURL string) *Fake {
	if rootURL != "" {
		rootURL = strings.TrimSuffix(rootURL, "/") + "/"
	}

	return &Fake{
		root:       rootURL,
		principals: []string{"anonymous"},
		acl:        jenkins.NewACL(),
		jobs:       make(map[string]jenkins.Job),
		builds:     make(map[string]jenkins.Build),
		plugins:    make(map[string]bool),
		hidden:     make(map[string]bool),
	}
}

// ACL 返回权限检查使用的授权表。
func (f *Fake) ACL() *jenkins.ACL {
	return f.acl
}

// LoginAs 切换当前用户。
func (f *Fake) LoginAs(principals ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.principals = slices.Clone(principals)

	return f
}

// AddJob 添加作业，name 为全名。
func (f *Fake) AddJob(fullName string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := fullName
	if idx := strings.LastIndexByte(fullName, '/'); idx >= 0 {
		name = fullName[idx+1:]
	}
	f.jobs[fullName] = jenkins.Job{
		Name:      name,
		FullName:  fullName,
		URL:       f.root + jenkins.JobPath(fullName) + "/",
		Buildable: true,
	}

	return f
}

// AddBuild 添加构建，对应的作业不存在时一并添加。
func (f *Fake) AddBuild(job string, number int, result string) *Fake {
	if _, ok := f.lookupJob(job); !ok {
		f.AddJob(job)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := jenkins.BuildID(job, number)
	f.builds[id] = jenkins.Build{
		ID:              fmt.Sprint(number),
		Number:          number,
		FullDisplayName: fmt.Sprintf("%s #%d", job, number),
		URL:             fmt.Sprintf("%s%s/%d/", f.root, jenkins.JobPath(job), number),
		Result:          result,
	}

	return f
}

// Hide 使作业及其构建对当前用户不可见，模拟无权访问。
func (f *Fake) Hide(job string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.hidden[job] = true

	return f
}

// InstallPlugin 安装插件。
func (f *Fake) InstallPlugin(id string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.plugins[id] = true

	return f
}

func (f *Fake) lookupJob(fullName string) (jenkins.Job, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	job, ok := f.jobs[fullName]

	return job, ok
}

// HasPermission 实现 [jenkins.Facade]。
func (f *Fake) HasPermission(_ context.Context, permission jenkins.Permission, item string) (bool, error) {
	f.mu.RLock()
	principals := slices.Clone(f.principals)
	f.mu.RUnlock()

	return f.acl.HasPermission(principals, permission, item), nil
}

// Job 实现 [jenkins.Facade]。
func (f *Fake) Job(_ context.Context, fullName string) (*jenkins.Job, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	job, ok := f.jobs[fullName]
	if !ok || f.hidden[fullName] {
		return nil, fmt.Errorf("job %q: %w", fullName, jenkins.ErrNotFound)
	}

	return &job, nil
}

// Build 实现 [jenkins.Facade]。
func (f *Fake) Build(_ context.Context, id string) (*jenkins.Build, error) {
	job, _, err := jenkins.ParseBuildID(id)
	if err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	build, ok := f.builds[id]
	if !ok || f.hidden[job] {
		return nil, fmt.Errorf("build %q: %w", id, jenkins.ErrNotFound)
	}

	return &build, nil
}

// AllJobs 实现 [jenkins.Facade]。按全名排序。
func (f *Fake) AllJobs(_ context.Context) ([]jenkins.Job, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	jobs := make([]jenkins.Job, 0, len(f.jobs))
	for name, job := range f.jobs {
		if !f.hidden[name] {
			jobs = append(jobs, job)
		}
	}
	slices.SortFunc(jobs, func(a, b jenkins.Job) int { return strings.Compare(a.FullName, b.FullName) })

	return jobs, nil
}

// AllJobNames 实现 [jenkins.Facade]。
func (f *Fake) AllJobNames(ctx context.Context) ([]string, error) {
	jobs, err := f.AllJobs(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(jobs))
	for _, job := range jobs {
		names = append(names, f.FullNameOf(job))
	}

	return names, nil
}

// IsPluginInstalled 实现 [jenkins.Facade]。
func (f *Fake) IsPluginInstalled(_ context.Context, pluginID string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.plugins[pluginID], nil
}

// AbsoluteURL 实现 [jenkins.Facade]。
func (f *Fake) AbsoluteURL(elements ...string) string {
	return f.root + strings.TrimPrefix(strings.Join(elements, "/"), "/")
}

// ImagePath 实现 [jenkins.Facade]。
func (f *Fake) ImagePath(icon string) string {
	return jenkins.DefaultResourcePath + icon
}

// FullNameOf 实现 [jenkins.Facade]。
func (f *Fake) FullNameOf(job jenkins.Job) string {
	return job.FullName
}
