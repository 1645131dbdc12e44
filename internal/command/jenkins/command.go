// Package jenkins 提供查询 Jenkins 的命令。
package jenkins

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/internal/command"
)

// Command Jenkins 命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "jenkins",
		Usage: "查询 Jenkins 作业、构建、插件与权限",
		Flags: []cli.Flag{
			command.ConfigFlag(),
			command.LogLevelFlag(),
			&cli.StringFlag{
				Name:    "jenkins-url",
				Aliases: []string{"u"},
				Usage:   "Jenkins 根 URL，为空时使用 JENKINS_URL",
			},
			&cli.StringFlag{
				Name:  "jenkins-user",
				Usage: "用户名",
			},
			&cli.StringFlag{
				Name:  "jenkins-token",
				Usage: "API token",
			},
			&cli.DurationFlag{
				Name:  "jenkins-timeout",
				Value: command.Defaults.Jenkins.Timeout,
				Usage: "请求超时",
			},
			&cli.StringFlag{
				Name:  "jenkins-context-path",
				Usage: "上下文路径",
			},
			&cli.StringFlag{
				Name:  "jenkins-resource-path",
				Value: command.Defaults.Jenkins.ResourcePath,
				Usage: "静态资源路径",
			},
			&cli.StringSliceFlag{
				Name:  "jenkins-grants",
				Usage: "静态授权 PERMISSION:PRINCIPAL[@ITEM]，可重复",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "jobs",
				Usage:  "列出全部作业的全名",
				Action: jobsAction,
			},
			{
				Name:      "job",
				Usage:     "显示作业",
				ArgsUsage: "NAME",
				Action:    jobAction,
			},
			{
				Name:      "build",
				Usage:     "显示构建",
				ArgsUsage: "JOB#NUMBER",
				Action:    buildAction,
			},
			{
				Name:      "url",
				Usage:     "拼接绝对 URL",
				ArgsUsage: "ELEMENT...",
				Action:    urlAction,
			},
			{
				Name:      "plugin",
				Usage:     "检查插件是否已安装",
				ArgsUsage: "ID",
				Action:    pluginAction,
			},
			{
				Name:      "can",
				Usage:     "检查当前用户是否有权限",
				ArgsUsage: "PERMISSION [ITEM]",
				Action:    canAction,
			},
		},
	}
}
