package envres_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/envres"
	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/macro"
)

// countingResolver 返回统计单层替换调用次数的解析器。
func countingResolver(depth int) (*envres.Resolver, *int) {
	calls := 0
	r := envres.New(
		envres.WithDepth(depth),
		envres.WithSubstituter(func(env map[string]string, text string) string {
			calls++
			return macro.Replace(env, text)
		}),
	)

	return r, &calls
}

func chain(n int) map[string]string {
	env := make(map[string]string, n)
	for i := 1; i < n; i++ {
		env[fmt.Sprintf("V%d", i)] = fmt.Sprintf("${V%d}", i+1)
	}
	env[fmt.Sprintf("V%d", n)] = "end"

	return env
}

func TestNew_Defaults(t *testing.T) {
	r := envres.New()
	assert.Equal(t, envres.DefaultDepth, r.Depth())
	assert.Equal(t, 10, r.Depth())
	assert.Equal(t, 3, envres.New(envres.WithDepth(3)).Depth())
}

func TestExpand_EmptyEnvironment(t *testing.T) {
	templates := []string{"", "   ", "${FOO}", "plain", "$$ ${A} $B"}

	for _, tpl := range templates {
		r, calls := countingResolver(envres.DefaultDepth)

		assert.Equal(t, tpl, r.Expand(nil, tpl), "nil env")
		assert.Equal(t, tpl, r.Expand(map[string]string{}, tpl), "empty env")
		assert.Zero(t, *calls, "no pass for %q", tpl)
	}
}

func TestExpand_BlankTemplate(t *testing.T) {
	env := map[string]string{"FOO": "bar", "": "x"}

	for _, tpl := range []string{"", " ", "\t\n ", "  \r\n"} {
		r, calls := countingResolver(envres.DefaultDepth)

		assert.Equal(t, tpl, r.Expand(env, tpl))
		assert.Zero(t, *calls)
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		depth    int
		template string
		want     string
	}{
		{
			name:     "single level",
			env:      map[string]string{"FOO": "bar"},
			depth:    envres.DefaultDepth,
			template: "${FOO}",
			want:     "bar",
		},
		{
			name:     "chain within depth",
			env:      map[string]string{"A": "${B}", "B": "value"},
			depth:    2,
			template: "${A}",
			want:     "value",
		},
		{
			name:     "chain exceeding depth is partially expanded",
			env:      chain(5),
			depth:    2,
			template: "${V1}",
			want:     "${V3}",
		},
		{
			name:     "chain of exactly depth levels",
			env:      chain(3),
			depth:    3,
			template: "${V1}",
			want:     "end",
		},
		{
			name:     "unresolvable reference with non-empty env",
			env:      map[string]string{"OTHER": "x"},
			depth:    envres.DefaultDepth,
			template: "${MISSING}",
			want:     "${MISSING}",
		},
		{
			name:     "mixed resolved and unresolved",
			env:      map[string]string{"JOB": "core", "URL": "http://ci/${JOB}"},
			depth:    envres.DefaultDepth,
			template: "${URL}/${BUILD}",
			want:     "http://ci/core/${BUILD}",
		},
		{
			name:     "zero depth performs no expansion",
			env:      map[string]string{"FOO": "bar"},
			depth:    0,
			template: "${FOO}",
			want:     "${FOO}",
		},
		{
			name:     "negative depth performs no expansion",
			env:      map[string]string{"FOO": "bar"},
			depth:    -1,
			template: "${FOO}",
			want:     "${FOO}",
		},
		{
			name:     "expansion to blank stops",
			env:      map[string]string{"SPACE": "  "},
			depth:    envres.DefaultDepth,
			template: "${SPACE}",
			want:     "  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := envres.New(envres.WithDepth(tt.depth))
			assert.Equal(t, tt.want, r.Expand(tt.env, tt.template))
		})
	}
}

func TestExpand_ChainDepthIsExact(t *testing.T) {
	env := chain(20)

	for depth := 1; depth < 20; depth++ {
		r := envres.New(envres.WithDepth(depth))
		assert.Equal(t, fmt.Sprintf("${V%d}", depth+1), r.Expand(env, "${V1}"), "depth %d", depth)
	}
}

func TestExpand_CycleTerminates(t *testing.T) {
	env := map[string]string{"A": "${B}", "B": "${A}"}

	for _, depth := range []int{1, 2, 3, envres.DefaultDepth} {
		r, calls := countingResolver(depth)

		got := r.Expand(env, "${A}")

		assert.Equal(t, depth, *calls)
		assert.NotEmpty(t, macro.References(got), "result %q should keep a reference", got)
		assert.Contains(t, []string{"${A}", "${B}"}, got)
	}
}

func TestExpand_SelfReference(t *testing.T) {
	env := map[string]string{"A": "x${A}"}
	r, calls := countingResolver(4)

	got := r.Expand(env, "${A}")

	assert.Equal(t, "xxxx${A}", got)
	assert.Equal(t, 4, *calls)
}

func TestExpand_FixedPointShortCircuit(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		template  string
		wantCalls int
	}{
		{
			name:      "nothing to resolve stops after first pass",
			env:       map[string]string{"FOO": "bar"},
			template:  "no references",
			wantCalls: 1,
		},
		{
			name:      "single level needs one confirming pass",
			env:       map[string]string{"FOO": "bar"},
			template:  "${FOO}",
			wantCalls: 2,
		},
		{
			name:      "two levels",
			env:       map[string]string{"A": "${B}", "B": "value"},
			template:  "${A}",
			wantCalls: 3,
		},
		{
			name:      "unresolvable reference",
			env:       map[string]string{"FOO": "bar"},
			template:  "${MISSING}",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, calls := countingResolver(envres.DefaultDepth)

			r.Expand(tt.env, tt.template)

			assert.Equal(t, tt.wantCalls, *calls)
			assert.Less(t, *calls, envres.DefaultDepth)
		})
	}
}

func TestExpand_IdempotentAtFixedPoint(t *testing.T) {
	env := map[string]string{
		"WORKSPACE": "/var/jenkins/${JOB_NAME}",
		"JOB_NAME":  "core",
	}
	templates := []string{
		"${WORKSPACE}/target",
		"${WORKSPACE}/${UNKNOWN}",
		"plain",
	}

	for _, tpl := range templates {
		first := envres.Expand(env, tpl)
		assert.Equal(t, first, envres.Expand(env, first), "template %q", tpl)
	}
}

func TestExpand_DoesNotMutateEnvironment(t *testing.T) {
	env := map[string]string{"A": "${B}", "B": "value"}
	snapshot := map[string]string{"A": "${B}", "B": "value"}

	_ = envres.Expand(env, "${A}")

	assert.Equal(t, snapshot, env)
}

func TestExpand_SingleEmptyEntryStillRunsAPass(t *testing.T) {
	r, calls := countingResolver(envres.DefaultDepth)

	got := r.Expand(map[string]string{"X": ""}, "${X}")

	assert.Empty(t, got)
	assert.Equal(t, 1, *calls)
}

func TestExpand_NilSubstituterKeepsDefault(t *testing.T) {
	r := envres.New(envres.WithSubstituter(nil))
	assert.Equal(t, "bar", r.Expand(map[string]string{"FOO": "bar"}, "${FOO}"))
}

func TestExpand_Concurrent(t *testing.T) {
	r := envres.New()
	env := map[string]string{"A": "${B}", "B": "${C}", "C": "done"}

	done := make(chan string, 16)
	for range 16 {
		go func() { done <- r.Expand(env, "${A}") }()
	}
	for range 16 {
		require.Equal(t, "done", <-done)
	}
}
