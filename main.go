package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/internal/command/expand"
	"github.com/lwmacct/251216-go-pkg-plugutil/internal/command/jenkins"
	"github.com/lwmacct/251216-go-pkg-plugutil/internal/command/settings"
	"github.com/lwmacct/251216-go-pkg-plugutil/internal/version"
)

func main() {
	app := &cli.Command{
		Name:                      version.AppRawName,
		Usage:                     "Jenkins 插件工具：变量展开、Jenkins 查询与全局设置",
		Version:                   version.GetVersion(),
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			version.Command,
			expand.Command,
			jenkins.Command,
			settings.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
