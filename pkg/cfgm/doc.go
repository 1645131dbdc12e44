// Package cfgm 提供通用的配置加载功能。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 快速开始
//
// 定义配置结构体（json + desc 标签）：
//
//	type Config struct {
//	    URL     string        `json:"url"     desc:"Jenkins 地址"`
//	    Timeout time.Duration `json:"timeout" desc:"请求超时"`
//	}
//
// 加载：
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "plugutil",
//	    cfgm.WithEnvPrefix("PLUGUTIL_"),
//	)
//
// # 配置文件路径
//
// [WithAppName] 会生成默认搜索路径（见 [DefaultPaths]）：
//   - .plugutil.yaml (当前目录)
//   - ~/.plugutil.yaml (用户主目录)
//   - /etc/plugutil/config.yaml (系统配置)
//   - config.yaml, config/config.yaml (通用路径)
//
// .json 文件允许注释与尾随逗号。
//
// # 变量展开
//
// 配置文件解析后，其中的字符串值使用 envres 展开，变量来自进程环境与 [WithVariables]：
//   - ${VAR} 与 $VAR，"$$" 为字面量 "$"
//   - 变量值中的引用会继续展开，最多 [envres.DefaultDepth] 轮（见 [WithResolver]）
//   - 找不到的变量保持原样
//   - 只展开值，不展开 key，变量值不会改变文档结构
//
// 使用 [WithoutTemplateExpansion] 可禁用该行为。
//
//	# config.yaml
//	jenkins:
//	  url: "${JENKINS_URL}"
//	  token: "${JENKINS_API_TOKEN}"
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - jenkins.url → --jenkins-url
//   - resolver.depth → --resolver-depth
//
// # 输出配置
//
// [MarshalYAML] 与 [MarshalJSON] 按 json tag 输出配置，time.Duration 输出为 "30s" 形式，
// 可被 [Load] 重新读取。
package cfgm
