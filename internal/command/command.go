// Package command 提供各子命令共用的配置加载与日志初始化。
package command

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/internal/config"
	"github.com/lwmacct/251216-go-pkg-plugutil/internal/version"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/cfgm"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/pluginlog"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// ConfigFlag 指定配置文件，未指定时按 [cfgm.DefaultPaths] 搜索。
func ConfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "配置文件路径 (.yaml/.json)",
	}
}

// LogLevelFlag 日志级别。
func LogLevelFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-level",
		Value: Defaults.Log.Level,
		Usage: "日志级别 (debug/info/warn/error)",
	}
}

// LoadConfig 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags，并按配置初始化日志。
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	opts := []cfgm.Option{cfgm.WithEnvPrefix(config.EnvPrefix)}
	if path := cmd.String("config"); path != "" {
		opts = append(opts, cfgm.WithConfigPaths(path))
	}

	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName, opts...)
	if err != nil {
		return nil, err
	}
	SetupLogging(cmd.Root().ErrWriter, cfg.Log.Level)

	return cfg, nil
}

// SetupLogging 设置默认 slog 文本日志，w 为 nil 时写入 stderr。
func SetupLogging(w io.Writer, level string) {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel 解析日志级别，无法识别时为 info。
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}

	return l
}

// NewLogger 创建面向用户的插件日志，写入 stderr，前缀取自 log.prefix。
func NewLogger(cmd *cli.Command, cfg *config.Config) *pluginlog.Logger {
	w := cmd.Root().ErrWriter
	if w == nil {
		w = os.Stderr
	}

	return pluginlog.New(w, cfg.Log.Prefix)
}
