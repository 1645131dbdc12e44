package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/internal/command"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/cfgm"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/globalconfig"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/pluginlog"
)

// session 已加载的设置与存储。
type session struct {
	item  *globalconfig.Item[Settings]
	store *globalconfig.FileStore[Settings]
	log   *pluginlog.Logger
}

func open(cmd *cli.Command) (*session, error) {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	store := globalconfig.NewFileStore[Settings](cfg.Settings.Path)
	item := globalconfig.NewItem[Settings](store, DefaultSettings(),
		globalconfig.WithClearRepeatable(clearRepeatable),
	)
	if err := item.Load(); err != nil {
		return nil, err
	}

	return &session{item: item, store: store, log: command.NewLogger(cmd, cfg)}, nil
}

func showAction(_ context.Context, cmd *cli.Command) error {
	s, err := open(cmd)
	if err != nil {
		return err
	}

	return printSettings(cmd, s.item.Get(), cmd.Bool("json"))
}

func printSettings(cmd *cli.Command, settings Settings, asJSON bool) error {
	var data []byte
	var err error
	if asJSON {
		data, err = cfgm.MarshalJSON(settings)
		data = append(data, '\n')
	} else {
		data, err = cfgm.MarshalYAML(settings)
	}
	if err != nil {
		return err
	}
	_, err = cmd.Root().Writer.Write(data)

	return err
}

func setAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("usage: %s KEY=VALUE...", cmd.FullName())
	}

	s, err := open(cmd)
	if err != nil {
		return err
	}

	form, err := currentForm(s.item.Get())
	if err != nil {
		return err
	}
	if err := applyAssignments(form, cmd.Args().Slice()); err != nil {
		return err
	}

	if err := s.item.Configure(form); err != nil {
		return err
	}
	s.log.Log("Saved settings to %s", s.store.Path())

	return printSettings(cmd, s.item.Get(), false)
}

// currentForm 以当前设置生成完整表单，未修改的字段保持原值提交。
func currentForm(s Settings) (map[string]any, error) {
	data, err := cfgm.MarshalJSON(s)
	if err != nil {
		return nil, err
	}

	var form map[string]any
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	return form, nil
}

// applyAssignments 把 KEY=VALUE 写入表单；同一 KEY 出现多次时组成列表，列表字段总是整体替换。
func applyAssignments(form map[string]any, assignments []string) error {
	lists := make(map[string][]any)
	var order []string
	for _, assignment := range assignments {
		key, val, ok := strings.Cut(assignment, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid assignment %q: expected KEY=VALUE", assignment)
		}
		if _, known := form[key]; !known {
			return fmt.Errorf("unknown setting %q", key)
		}
		if !slices.Contains(order, key) {
			order = append(order, key)
		}
		lists[key] = append(lists[key], val)
	}

	for _, key := range order {
		values := lists[key]
		_, isList := form[key].([]any)
		switch {
		case isList || form[key] == nil && len(values) > 1:
			form[key] = values
		case len(values) > 1:
			return fmt.Errorf("setting %q accepts a single value", key)
		default:
			form[key] = values[0]
		}
	}

	return nil
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	s, err := open(cmd)
	if err != nil {
		return err
	}
	if err := printSettings(cmd, s.item.Get(), false); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.log.Log("Watching %s", s.store.Path())

	return globalconfig.Watch(ctx, s.item, s.store.Path(), func(err error) {
		if err != nil {
			s.log.Log("Reloading failed: %v", err)

			return
		}
		_ = printSettings(cmd, s.item.Get(), false)
	})
}
