// Package settings 提供查看与修改全局设置文件的命令。
package settings

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/internal/command"
)

// Command 全局设置命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "查看或修改全局设置",
		Flags: []cli.Flag{
			command.ConfigFlag(),
			command.LogLevelFlag(),
			&cli.StringFlag{
				Name:    "settings-path",
				Aliases: []string{"f"},
				Value:   command.Defaults.Settings.Path,
				Usage:   "设置文件路径 (.yaml/.json)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "显示当前设置",
				Action: showAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "以 JSON 输出"},
				},
			},
			{
				Name:      "set",
				Usage:     "修改设置并保存，同一个 KEY 重复出现时组成列表",
				ArgsUsage: "KEY=VALUE...",
				Action:    setAction,
			},
			{
				Name:   "watch",
				Usage:  "设置文件变化时重新加载并输出",
				Action: watchAction,
			},
		},
	}
}
