package jenkins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const (
	jobTree   = "_class,name,fullName,url,buildable,jobs[name]"
	buildTree = "id,number,fullDisplayName,url,result,building,timestamp,duration"

	// DefaultResourcePath 静态资源路径，对应 Jenkins 的 RESOURCE_PATH。
	DefaultResourcePath = "/static"
)

// Client 基于 Jenkins JSON API 的 [Facade] 实现。
type Client struct {
	root         string
	httpClient   *http.Client
	timeout      time.Duration
	user         string
	token        string
	contextPath  string
	resourcePath string
	acl          *ACL
}

var _ Facade = (*Client)(nil)

// Option 客户端选项函数。
type Option func(*Client)

// WithBasicAuth 使用用户名与 API token 认证。
func WithBasicAuth(user, token string) Option {
	return func(c *Client) {
		c.user = user
		c.token = token
	}
}

// WithHTTPClient 指定 HTTP 客户端，默认使用 cleanhttp 的连接池客户端。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout 设置单次请求超时。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithContextPath 设置 Jenkins 的上下文路径，默认取根 URL 的路径部分。
func WithContextPath(path string) Option {
	return func(c *Client) {
		c.contextPath = strings.TrimSuffix(path, "/")
	}
}

// WithResourcePath 设置静态资源路径，默认为 [DefaultResourcePath]。
func WithResourcePath(path string) Option {
	return func(c *Client) {
		c.resourcePath = strings.TrimSuffix(path, "/")
	}
}

// WithACL 设置权限检查使用的授权表。
func WithACL(acl *ACL) Option {
	return func(c *Client) {
		if acl != nil {
			c.acl = acl
		}
	}
}

// New 创建客户端。rootURL 为 Jenkins 根 URL，如 "https://ci.example.com/jenkins/"。
func New(rootURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(rootURL)
	if err != nil {
		return nil, fmt.Errorf("parse jenkins url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid jenkins url %q: expected http(s)://host/", rootURL)
	}
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		root:         strings.TrimSuffix(u.String(), "/") + "/",
		httpClient:   cleanhttp.DefaultPooledClient(),
		contextPath:  strings.TrimSuffix(u.Path, "/"),
		resourcePath: DefaultResourcePath,
		acl:          NewACL(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c, nil
}

// RootURL 返回以 "/" 结尾的根 URL。
func (c *Client) RootURL() string {
	return c.root
}

// ACL 返回客户端使用的授权表。
func (c *Client) ACL() *ACL {
	return c.acl
}

// whoAmI Jenkins whoAmI 接口的响应。
type whoAmI struct {
	Name          string   `json:"name"`
	Anonymous     bool     `json:"anonymous"`
	Authenticated bool     `json:"authenticated"`
	Authorities   []string `json:"authorities"`
}

// Principals 返回当前用户及其所属的组。
func (c *Client) Principals(ctx context.Context) ([]string, error) {
	var who whoAmI
	if err := c.getJSON(ctx, "whoAmI/api/json", nil, &who); err != nil {
		return nil, fmt.Errorf("who am i: %w", err)
	}
	if who.Anonymous || !who.Authenticated {
		return []string{"anonymous"}, nil
	}

	principals := append([]string{who.Name}, who.Authorities...)
	if !slices.Contains(principals, "authenticated") {
		principals = append(principals, "authenticated")
	}

	return principals, nil
}

// HasPermission 实现 [Facade]。用户与组来自 whoAmI，授权来自 [ACL]。
func (c *Client) HasPermission(ctx context.Context, permission Permission, item string) (bool, error) {
	principals, err := c.Principals(ctx)
	if err != nil {
		return false, err
	}

	return c.acl.HasPermission(principals, permission, item), nil
}

// Job 实现 [Facade]。不存在、无权访问或名称指向文件夹时返回 [ErrNotFound]。
func (c *Client) Job(ctx context.Context, fullName string) (*Job, error) {
	if strings.Trim(fullName, "/") == "" {
		return nil, fmt.Errorf("job %q: %w", fullName, ErrNotFound)
	}

	var job Job
	err := c.getJSON(ctx, JobPath(fullName)+"/api/json", url.Values{"tree": {jobTree}}, &job)
	if err != nil {
		return nil, fmt.Errorf("job %q: %w", fullName, err)
	}
	if job.IsFolder() {
		return nil, fmt.Errorf("job %q is a folder: %w", fullName, ErrNotFound)
	}
	job.FullName = childFullName("", job)

	return &job, nil
}

// Build 实现 [Facade]。
func (c *Client) Build(ctx context.Context, id string) (*Build, error) {
	job, number, err := ParseBuildID(id)
	if err != nil {
		return nil, err
	}

	var build Build
	path := fmt.Sprintf("%s/%d/api/json", JobPath(job), number)
	if err := c.getJSON(ctx, path, url.Values{"tree": {buildTree}}, &build); err != nil {
		return nil, fmt.Errorf("build %q: %w", id, err)
	}

	return &build, nil
}

// AllJobs 实现 [Facade]。逐层请求文件夹，无权访问的文件夹被跳过。
func (c *Client) AllJobs(ctx context.Context) ([]Job, error) {
	return c.collectJobs(ctx, "", "api/json", nil)
}

func (c *Client) collectJobs(ctx context.Context, parent, path string, out []Job) ([]Job, error) {
	var folder struct {
		Jobs []Job `json:"jobs"`
	}
	err := c.getJSON(ctx, path, url.Values{"tree": {"jobs[" + jobTree + "]"}}, &folder)
	if err != nil {
		if parent != "" && errors.Is(err, ErrNotFound) {
			slog.Debug("Skipping inaccessible folder", "folder", parent)

			return out, nil
		}

		return nil, fmt.Errorf("list jobs of %q: %w", parent, err)
	}

	for _, job := range folder.Jobs {
		job.FullName = childFullName(parent, job)
		if job.IsFolder() {
			out, err = c.collectJobs(ctx, job.FullName, JobPath(job.FullName)+"/api/json", out)
			if err != nil {
				return nil, err
			}

			continue
		}
		out = append(out, job)
	}

	return out, nil
}

// AllJobNames 实现 [Facade]。返回排序后去重的全名。
func (c *Client) AllJobNames(ctx context.Context) ([]string, error) {
	jobs, err := c.AllJobs(ctx)
	if err != nil {
		return nil, err
	}

	return jobNames(c, jobs), nil
}

func jobNames(f Facade, jobs []Job) []string {
	names := make([]string, 0, len(jobs))
	for _, job := range jobs {
		names = append(names, f.FullNameOf(job))
	}
	slices.Sort(names)

	return slices.Compact(names)
}

// IsPluginInstalled 实现 [Facade]。已安装但未启用的插件同样视为已安装。
func (c *Client) IsPluginInstalled(ctx context.Context, pluginID string) (bool, error) {
	var resp struct {
		Plugins []struct {
			ShortName string `json:"shortName"`
		} `json:"plugins"`
	}
	err := c.getJSON(ctx, "pluginManager/api/json", url.Values{"tree": {"plugins[shortName]"}}, &resp)
	if err != nil {
		return false, fmt.Errorf("list plugins: %w", err)
	}

	for _, p := range resp.Plugins {
		if p.ShortName == pluginID {
			return true, nil
		}
	}

	return false, nil
}

// AbsoluteURL 实现 [Facade]。
func (c *Client) AbsoluteURL(elements ...string) string {
	return c.root + strings.TrimPrefix(strings.Join(elements, "/"), "/")
}

// ImagePath 实现 [Facade]。icon 应以 "/" 开头，如 "/plugin/x/icon.png"。
func (c *Client) ImagePath(icon string) string {
	return c.contextPath + c.resourcePath + icon
}

// FullNameOf 实现 [Facade]。
func (c *Client) FullNameOf(job Job) string {
	return fullNameOf(job)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.root + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("Jenkins request", "path", path, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)

		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return fmt.Errorf("GET %s: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
