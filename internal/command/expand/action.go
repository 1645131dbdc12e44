package expand

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/internal/command"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/envres"
)

func action(_ context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	vars, err := collectVariables(cmd)
	if err != nil {
		return err
	}

	resolver := envres.New(envres.WithDepth(cfg.Resolver.Depth))
	slog.Debug("Expanding templates", "variables", len(vars), "depth", resolver.Depth())

	out := cmd.Root().Writer
	if templates := cmd.Args().Slice(); len(templates) > 0 {
		for _, tpl := range templates {
			if _, err := fmt.Fprintln(out, resolver.Expand(vars, tpl)); err != nil {
				return err
			}
		}

		return nil
	}

	in := cmd.Root().Reader
	if in == nil {
		in = os.Stdin
	}

	return expandLines(in, out, resolver, vars)
}

// collectVariables 按优先级合并进程环境、--env-file 与 --set。
func collectVariables(cmd *cli.Command) (map[string]string, error) {
	var layers []map[string]string
	if !cmd.Bool("no-os-env") {
		layers = append(layers, envres.Environ())
	}

	for _, path := range cmd.StringSlice("env-file") {
		vars, err := readEnvFile(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, vars)
	}

	set := cmd.StringSlice("set")
	for _, entry := range set {
		if key, _, ok := strings.Cut(entry, "="); !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected KEY=VALUE", entry)
		}
	}
	layers = append(layers, envres.FromList(set))

	return envres.Merge(layers...), nil
}

// expandLines 逐行展开 in 并写入 out。
func expandLines(in io.Reader, out io.Writer, resolver *envres.Resolver, vars map[string]string) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(out, resolver.Expand(vars, scanner.Text())); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return nil
}
