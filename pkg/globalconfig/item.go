package globalconfig

import (
	"fmt"
	"sync"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/cfgm"
)

// Store 配置的持久化。
type Store[T any] interface {
	// Load 读取配置；current 为当前值，存储中没有的字段应保持 current 的值。
	Load(current T) (T, error)
	// Save 持久化配置。
	Save(settings T) error
}

// Item 全局配置项。
type Item[T any] struct {
	mu       sync.Mutex
	settings T
	store    Store[T]
	clear    func(*T)
}

// ItemOption 配置项选项函数。
type ItemOption[T any] func(*Item[T])

// WithClearRepeatable 注册 Configure 绑定表单前调用的钩子，用于清空重复项。
//
// 表单中某个重复项被全部删除时不会再提交该字段，不清空的话旧值会一直保留。
func WithClearRepeatable[T any](fn func(*T)) ItemOption[T] {
	return func(i *Item[T]) {
		i.clear = fn
	}
}

// NewItem 创建配置项，初始值为 defaults，不会自动读取存储。
func NewItem[T any](store Store[T], defaults T, opts ...ItemOption[T]) *Item[T] {
	item := &Item[T]{
		settings: defaults,
		store:    store,
	}
	for _, opt := range opts {
		opt(item)
	}

	return item
}

// Load 从存储读取配置。
func (i *Item[T]) Load() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	loaded, err := i.store.Load(i.settings)
	if err != nil {
		return fmt.Errorf("load global configuration: %w", err)
	}
	i.settings = loaded

	return nil
}

// Save 持久化当前配置。
func (i *Item[T]) Save() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.save()
}

func (i *Item[T]) save() error {
	if err := i.store.Save(i.settings); err != nil {
		return fmt.Errorf("save global configuration: %w", err)
	}

	return nil
}

// Get 返回当前配置。
//
// T 中的切片与 map 与配置项共享底层数据，调用方不应修改。
func (i *Item[T]) Get() T {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.settings
}

// Update 修改配置并保存。保存失败时配置保持修改后的值。
func (i *Item[T]) Update(fn func(*T)) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	fn(&i.settings)

	return i.save()
}

// Configure 绑定表单数据并保存。
//
// form 的 key 使用 json tag，值可以是字符串（如 "30s"、"3"），按弱类型规则转换。
// 绑定失败时配置不变。
func (i *Item[T]) Configure(form map[string]any) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	next := i.settings
	if i.clear != nil {
		i.clear(&next)
	}
	if err := cfgm.Decode(form, &next); err != nil {
		return fmt.Errorf("bind configuration form: %w", err)
	}
	i.settings = next

	return i.save()
}
