package remote_test

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/remote"
)

type report struct {
	Files    []string       `cbor:"files"`
	Warnings map[string]int `cbor:"warnings"`
}

func newReport() report {
	return report{
		Files:    []string{"a.xml", "b.xml"},
		Warnings: map[string]int{"a.xml": 2},
	}
}

func TestResultWrapper_IsAFilteredLog(t *testing.T) {
	w := remote.NewResultWrapper(newReport(), "Errors while scanning:")

	w.LogInfo("scanned %d files", 2)
	w.LogError("cannot parse c.xml")

	assert.Equal(t, newReport(), w.Result())
	assert.Equal(t, []string{"scanned 2 files"}, w.InfoMessages())
	assert.Equal(t, []string{"Errors while scanning:", "cannot parse c.xml"}, w.ErrorMessages())
	assert.Equal(t, "Errors while scanning:", w.Title())
}

func TestResultWrapper_Equal(t *testing.T) {
	a := remote.NewResultWrapper("result", "title")
	b := remote.NewResultWrapper("result", "title")

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(nil))

	b.LogInfo("different log")
	assert.False(t, a.Equal(b))

	c := remote.NewResultWrapper("other", "title")
	assert.False(t, a.Equal(c))
}

func TestResultWrapper_MarshalRoundTrip(t *testing.T) {
	w := remote.NewResultWrapper(newReport(), "Errors:")
	w.LogInfo("info")
	w.LogError("error")

	data, err := w.Marshal()
	require.NoError(t, err)

	decoded, err := remote.Unmarshal[report](data)
	require.NoError(t, err)

	if diff := cmp.Diff(w.Result(), decoded.Result()); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, w.Equal(decoded))
	assert.Equal(t, w.ErrorMessages(), decoded.ErrorMessages())
}

func TestResultWrapper_DeterministicEncoding(t *testing.T) {
	build := func() *remote.ResultWrapper[map[string]int] {
		w := remote.NewResultWrapper(map[string]int{"z": 1, "a": 2, "m": 3}, "t")
		w.LogInfo("same")

		return w
	}

	first, err := build().Marshal()
	require.NoError(t, err)
	second, err := build().Marshal()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUnmarshal_InvalidData(t *testing.T) {
	_, err := remote.Unmarshal[string]([]byte{0xff, 0x00})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode result wrapper")
}

func TestUnmarshal_NullLog(t *testing.T) {
	for name, payload := range map[string]map[string]any{
		"null":    {"result": "done", "log": nil},
		"missing": {"result": "done"},
	} {
		t.Run(name, func(t *testing.T) {
			data, err := cbor.Marshal(payload)
			require.NoError(t, err)

			w, err := remote.Unmarshal[string](data)
			require.NoError(t, err)
			assert.Equal(t, "done", w.Result())
			assert.True(t, w.Equal(remote.NewResultWrapper("done", "")))

			require.NotPanics(t, func() { w.LogInfo("after decode") })
			assert.Equal(t, []string{"after decode"}, w.InfoMessages())
			assert.False(t, w.HasErrors())
		})
	}
}
