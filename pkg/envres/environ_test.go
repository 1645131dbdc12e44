package envres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/envres"
)

func TestEnviron(t *testing.T) {
	t.Setenv("ENVRES_TEST_VAR", "a=b")

	env := envres.Environ()
	assert.Equal(t, "a=b", env["ENVRES_TEST_VAR"])

	env["ENVRES_TEST_VAR"] = "changed"
	assert.Equal(t, "a=b", envres.Environ()["ENVRES_TEST_VAR"])
}

func TestFromList(t *testing.T) {
	got := envres.FromList([]string{
		"A=1",
		"B=x=y",
		"EMPTY=",
		"NOEQUALS",
		"=novalue",
		"A=2",
	})

	assert.Equal(t, map[string]string{
		"A":     "2",
		"B":     "x=y",
		"EMPTY": "",
	}, got)
}

func TestMerge(t *testing.T) {
	base := map[string]string{"A": "1", "B": "1"}
	override := map[string]string{"B": "2", "C": "2"}

	got := envres.Merge(base, nil, override)

	assert.Equal(t, map[string]string{"A": "1", "B": "2", "C": "2"}, got)
	assert.Equal(t, "1", base["B"], "inputs are not modified")
	assert.NotNil(t, envres.Merge())
	assert.Empty(t, envres.Merge())
}
