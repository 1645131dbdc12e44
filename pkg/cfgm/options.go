package cfgm

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/envres"
)

// options 配置加载选项。
type options struct {
	appName             string // 应用名称，用于生成默认配置路径
	cmd                 *cli.Command
	configPaths         []string
	baseDir             string // 相对路径的基准目录，空表示当前工作目录
	envPrefix           string
	noTemplateExpansion bool // 是否禁用配置文件模板展开（默认启用）
	resolver            *envres.Resolver
	variables           map[string]string // 追加到进程环境之上的展开变量
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止；相对路径会基于 [WithBaseDir] 解析。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithBaseDir 设置相对配置路径的解析基准，默认为当前工作目录。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 环境变量命名规则：
//   - 前缀 + 大写的配置 key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "PLUGUTIL_")：
//   - PLUGUTIL_JENKINS_URL → jenkins.url
//   - PLUGUTIL_RESOLVER_DEPTH → resolver.depth
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutTemplateExpansion 禁用配置文件的变量展开，保留原始 ${...} 字符串。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}

// WithResolver 指定展开配置文件所用的解析器（默认深度 [envres.DefaultDepth]）。
func WithResolver(r *envres.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithVariables 追加展开变量，同名时覆盖进程环境变量。
func WithVariables(vars map[string]string) Option {
	return func(o *options) {
		o.variables = vars
	}
}
