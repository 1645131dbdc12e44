package envres

import (
	"strings"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/macro"
)

// DefaultDepth 默认的最大替换轮数。
const DefaultDepth = 10

// Substituter 对 text 执行一层宏替换。
//
// 实现不得修改 env。
type Substituter func(env map[string]string, text string) string

// Resolver 按轮次展开环境变量引用。
//
// 构造后不可变，可并发使用。
type Resolver struct {
	depth      int
	substitute Substituter
}

// Option 解析器选项函数。
type Option func(*Resolver)

// WithDepth 设置最大替换轮数。
//
// 0 或负数表示不执行替换，属于调用方错误，但不会被拒绝。
func WithDepth(depth int) Option {
	return func(r *Resolver) {
		r.depth = depth
	}
}

// WithSubstituter 替换单层替换实现，默认为 [macro.Replace]。
func WithSubstituter(fn Substituter) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.substitute = fn
		}
	}
}

// New 创建解析器，默认深度为 [DefaultDepth]。
func New(opts ...Option) *Resolver {
	r := &Resolver{
		depth:      DefaultDepth,
		substitute: macro.Replace,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Depth 返回最大替换轮数。
func (r *Resolver) Depth() int {
	return r.depth
}

// Expand 使用 env 展开 template 中的变量引用，最多执行 [Resolver.Depth] 轮。
func (r *Resolver) Expand(env map[string]string, template string) string {
	expanded := template
	if len(env) == 0 {
		return expanded
	}

	for i := 0; i < r.depth && !isBlank(expanded); i++ {
		old := expanded
		expanded = r.substitute(env, expanded)
		if old == expanded {
			return expanded
		}
	}

	return expanded
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

var defaultResolver = New()

// Expand 使用默认深度的解析器展开 template。
func Expand(env map[string]string, template string) string {
	return defaultResolver.Expand(env, template)
}
