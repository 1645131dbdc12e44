package jenkins

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-pkg-plugutil/internal/command"
	"github.com/lwmacct/251216-go-pkg-plugutil/internal/config"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/cfgm"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/jenkins"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/pluginlog"
)

// newFacade 按配置创建 Jenkins 门面，测试中可替换。
var newFacade = func(cfg *config.Config) (jenkins.Facade, error) {
	rootURL := cfg.Jenkins.URL
	if rootURL == "" {
		rootURL = os.Getenv(jenkins.EnvJenkinsURL)
	}
	if rootURL == "" {
		return nil, fmt.Errorf("jenkins url is not configured: set --jenkins-url or %s", jenkins.EnvJenkinsURL)
	}

	acl := jenkins.NewACL()
	for _, grant := range cfg.Jenkins.Grants {
		if err := acl.ParseGrant(grant); err != nil {
			return nil, err
		}
	}

	opts := []jenkins.Option{
		jenkins.WithTimeout(cfg.Jenkins.Timeout),
		jenkins.WithResourcePath(cfg.Jenkins.ResourcePath),
		jenkins.WithACL(acl),
	}
	if cfg.Jenkins.User != "" {
		opts = append(opts, jenkins.WithBasicAuth(cfg.Jenkins.User, cfg.Jenkins.Token))
	}
	if cfg.Jenkins.ContextPath != "" {
		opts = append(opts, jenkins.WithContextPath(cfg.Jenkins.ContextPath))
	}

	return jenkins.New(rootURL, opts...)
}

// session 单次命令执行所需的门面与输出。
type session struct {
	facade jenkins.Facade
	log    *pluginlog.Logger
	out    func(format string, args ...any) error
}

func open(cmd *cli.Command) (*session, error) {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	facade, err := newFacade(cfg)
	if err != nil {
		return nil, err
	}

	w := cmd.Root().Writer

	return &session{
		facade: facade,
		log:    command.NewLogger(cmd, cfg),
		out: func(format string, args ...any) error {
			_, err := fmt.Fprintf(w, format, args...)

			return err
		},
	}, nil
}

// notFound 把 ErrNotFound 转为面向用户的消息。
func (s *session) notFound(err error, kind, name string) error {
	if errors.Is(err, jenkins.ErrNotFound) {
		s.log.Log("%s '%s' does not exist or is not accessible", kind, name)
	}

	return err
}

func requireArgs(cmd *cli.Command, n int, usage string) error {
	if cmd.Args().Len() < n {
		return fmt.Errorf("usage: %s %s", cmd.FullName(), usage)
	}

	return nil
}

func jobsAction(ctx context.Context, cmd *cli.Command) error {
	s, err := open(cmd)
	if err != nil {
		return err
	}

	names, err := s.facade.AllJobNames(ctx)
	if err != nil {
		return err
	}
	slog.Debug("Listed jobs", "count", len(names))

	for _, name := range names {
		if err := s.out("%s\n", name); err != nil {
			return err
		}
	}

	return nil
}

func jobAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1, "NAME"); err != nil {
		return err
	}
	s, err := open(cmd)
	if err != nil {
		return err
	}

	name := cmd.Args().First()
	job, err := s.facade.Job(ctx, name)
	if err != nil {
		return s.notFound(err, "Job", name)
	}

	return s.printYAML(job)
}

func buildAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1, "JOB#NUMBER"); err != nil {
		return err
	}
	s, err := open(cmd)
	if err != nil {
		return err
	}

	id := cmd.Args().First()
	build, err := s.facade.Build(ctx, id)
	if err != nil {
		return s.notFound(err, "Build", id)
	}

	return s.printYAML(build)
}

func urlAction(_ context.Context, cmd *cli.Command) error {
	s, err := open(cmd)
	if err != nil {
		return err
	}

	return s.out("%s\n", s.facade.AbsoluteURL(cmd.Args().Slice()...))
}

func pluginAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1, "ID"); err != nil {
		return err
	}
	s, err := open(cmd)
	if err != nil {
		return err
	}

	installed, err := s.facade.IsPluginInstalled(ctx, cmd.Args().First())
	if err != nil {
		return err
	}

	return s.out("%t\n", installed)
}

func canAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1, "PERMISSION [ITEM]"); err != nil {
		return err
	}
	s, err := open(cmd)
	if err != nil {
		return err
	}

	allowed, err := s.facade.HasPermission(ctx, jenkins.Permission(cmd.Args().Get(0)), cmd.Args().Get(1))
	if err != nil {
		return err
	}

	return s.out("%t\n", allowed)
}

func (s *session) printYAML(v any) error {
	data, err := cfgm.MarshalYAML(v)
	if err != nil {
		return err
	}

	return s.out("%s", data)
}
