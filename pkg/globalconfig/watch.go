package globalconfig

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Loader 可以重新读取配置的对象，通常是 [Item]。
type Loader interface {
	Load() error
}

// Watch 监视 path，文件被写入、创建或重命名为 path 时调用 loader.Load。
//
// 监视的是所在目录，因此原子替换（写临时文件后 rename）同样能被发现。
// 阻塞直到 ctx 结束，返回 nil；watcher 本身出错时返回错误。
// onReload 可为 nil，每次重新加载后以 Load 的结果调用。
func Watch(ctx context.Context, loader Loader, path string, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			err := loader.Load()
			if err != nil {
				slog.Error("Reloading global configuration failed", "path", abs, "error", err)
			} else {
				slog.Info("Reloaded global configuration", "path", abs)
			}
			if onReload != nil {
				onReload(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watching %s: %w", abs, err)
		}
	}
}
