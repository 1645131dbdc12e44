package globalconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/cfgm"
)

// FileStore 以 YAML 或 JSON 文件（按扩展名）保存配置。
//
// 文件内容原样读取，不展开 $VAR，保存后再读取得到的值与保存时相同。
type FileStore[T any] struct {
	path string
}

// NewFileStore 创建文件存储。
func NewFileStore[T any](path string) *FileStore[T] {
	return &FileStore[T]{path: path}
}

// Path 返回配置文件路径。
func (s *FileStore[T]) Path() string {
	return s.path
}

// LockPath 返回跨进程锁文件路径。
func (s *FileStore[T]) LockPath() string {
	return s.path + ".lock"
}

// Load 实现 [Store]。文件不存在时返回 current。
func (s *FileStore[T]) Load(current T) (T, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		slog.Debug("Global configuration file not found", "path", s.path)

		return current, nil
	}

	var loaded *T
	err := s.withLock(func() error {
		var err error
		loaded, err = cfgm.Load(current, cfgm.WithConfigPaths(s.path), cfgm.WithoutTemplateExpansion())

		return err
	})
	if err != nil {
		return current, err
	}

	return *loaded, nil
}

// Save 实现 [Store]。写入临时文件后重命名，读者不会看到写了一半的文件。
//
// 已存在的文件保留原有权限，新文件为 0644。
func (s *FileStore[T]) Save(settings T) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(s.path), ".json") {
		data, err = cfgm.MarshalJSON(settings)
	} else {
		data, err = cfgm.MarshalYAML(settings)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	return s.withLock(func() error {
		mode := os.FileMode(0o644)
		if info, err := os.Stat(s.path); err == nil {
			mode = info.Mode().Perm()
		}

		tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		defer func() { _ = os.Remove(tmp.Name()) }()

		if _, err := tmp.Write(data); err != nil {
			_ = tmp.Close()

			return fmt.Errorf("write %s: %w", tmp.Name(), err)
		}
		if err := tmp.Chmod(mode); err != nil {
			_ = tmp.Close()

			return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("close %s: %w", tmp.Name(), err)
		}
		if err := os.Rename(tmp.Name(), s.path); err != nil {
			return fmt.Errorf("replace %s: %w", s.path, err)
		}

		slog.Debug("Saved global configuration", "path", s.path)

		return nil
	})
}

func (s *FileStore[T]) withLock(fn func() error) error {
	fileLock := flock.New(s.LockPath())
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = fileLock.Unlock() }()

	return fn()
}

// MemoryStore 内存存储，记录读写次数。
type MemoryStore[T any] struct {
	mu     sync.Mutex
	data   *T
	loads  int
	saves  int
	LoadFn func(current T) (T, error) // 非 nil 时替代默认读取
	SaveFn func(settings T) error     // 非 nil 时在保存前调用，返回错误则不保存
}

// NewMemoryStore 创建内存存储；initial 为 nil 表示尚未保存过。
func NewMemoryStore[T any](initial *T) *MemoryStore[T] {
	return &MemoryStore[T]{data: initial}
}

// Load 实现 [Store]。
func (s *MemoryStore[T]) Load(current T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads++
	if s.LoadFn != nil {
		return s.LoadFn(current)
	}
	if s.data == nil {
		return current, nil
	}

	return *s.data, nil
}

// Save 实现 [Store]。
func (s *MemoryStore[T]) Save(settings T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.SaveFn != nil {
		if err := s.SaveFn(settings); err != nil {
			return err
		}
	}
	s.data = &settings

	return nil
}

// Saved 返回最近保存的配置；从未保存时 ok 为 false。
func (s *MemoryStore[T]) Saved() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		var zero T

		return zero, false
	}

	return *s.data, true
}

// Counts 返回读取与保存次数。
func (s *MemoryStore[T]) Counts() (loads, saves int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loads, s.saves
}
