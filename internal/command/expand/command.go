// Package expand 提供变量展开命令。
package expand

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/internal/command"
)

// Command 变量展开命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "expand",
		Usage:     "展开模板中的 $NAME / ${NAME} 引用",
		ArgsUsage: "[TEMPLATE...]",
		Description: "没有参数时逐行读取标准输入。变量来源按优先级从低到高：" +
			"进程环境变量、--env-file、--set。找不到的引用保持原样。",
		Action: action,
		// --set A=x,y 中的逗号属于值
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			command.ConfigFlag(),
			command.LogLevelFlag(),
			&cli.StringSliceFlag{
				Name:    "set",
				Aliases: []string{"s"},
				Usage:   "设置变量 KEY=VALUE，可重复",
			},
			&cli.StringSliceFlag{
				Name:    "env-file",
				Aliases: []string{"e"},
				Usage:   "从文件读取 KEY=VALUE 变量，可重复",
			},
			&cli.IntFlag{
				Name:    "resolver-depth",
				Aliases: []string{"depth", "d"},
				Value:   command.Defaults.Resolver.Depth,
				Usage:   "最大展开轮数",
			},
			&cli.BoolFlag{
				Name:  "no-os-env",
				Usage: "不使用进程环境变量",
			},
		},
	}
}
