// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 通过 WithAppName / WithConfigPaths 选项设置
//  3. 环境变量 - 前缀 PLUGUTIL_，如 PLUGUTIL_JENKINS_URL
//  4. CLI flags - 通过 WithCommand 选项设置
package config

import (
	"time"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/envres"
)

// EnvPrefix 环境变量前缀。
const EnvPrefix = "PLUGUTIL_"

// Config 应用配置。
type Config struct {
	Jenkins  JenkinsConfig  `json:"jenkins" desc:"Jenkins 连接配置"`
	Resolver ResolverConfig `json:"resolver" desc:"变量展开配置"`
	Log      LogConfig      `json:"log" desc:"日志配置"`
	Settings SettingsConfig `json:"settings" desc:"全局设置文件"`
}

// JenkinsConfig Jenkins 连接配置。
//
//nolint:tagliatelle
type JenkinsConfig struct {
	URL          string        `json:"url" desc:"Jenkins 根 URL，为空时使用 JENKINS_URL"`
	User         string        `json:"user" desc:"用户名"`
	Token        string        `json:"token" desc:"API token"`
	Timeout      time.Duration `json:"timeout" desc:"请求超时"`
	ContextPath  string        `json:"context-path" desc:"上下文路径，默认取 URL 的路径"`
	ResourcePath string        `json:"resource-path" desc:"静态资源路径"`
	Grants       []string      `json:"grants" desc:"静态授权，格式 PERMISSION:PRINCIPAL[@ITEM]"`
}

// ResolverConfig 变量展开配置。
type ResolverConfig struct {
	Depth int `json:"depth" desc:"最大展开轮数"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别 (debug/info/warn/error)"`
	Prefix string `json:"prefix" desc:"插件日志前缀"`
}

// SettingsConfig 全局设置文件配置。
type SettingsConfig struct {
	Path string `json:"path" desc:"设置文件路径 (.yaml/.json)"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Jenkins: JenkinsConfig{
			Timeout:      30 * time.Second,
			ResourcePath: "/static",
		},
		Resolver: ResolverConfig{
			Depth: envres.DefaultDepth,
		},
		Log: LogConfig{
			Level:  "info",
			Prefix: "plugutil",
		},
		Settings: SettingsConfig{
			Path: "settings.yaml",
		},
	}
}
