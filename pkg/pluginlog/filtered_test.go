package pluginlog_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/pluginlog"
)

func TestFilteredLog_Empty(t *testing.T) {
	log := pluginlog.NewFilteredLog("Title")

	assert.Equal(t, "Title", log.Title())
	assert.False(t, log.HasErrors())
	assert.Zero(t, log.Size())
	assert.Empty(t, log.InfoMessages())
	assert.Empty(t, log.ErrorMessages())

	log.LogSummary()
	assert.Empty(t, log.ErrorMessages())
}

func TestFilteredLog_InfoAndErrors(t *testing.T) {
	log := pluginlog.NewFilteredLog("Errors:")

	log.LogInfo("parsed %d files", 3)
	log.LogError("cannot read %s", "a.xml")
	log.LogError("cannot read b.xml")

	assert.Equal(t, []string{"parsed 3 files"}, log.InfoMessages())
	assert.Equal(t, []string{"Errors:", "cannot read a.xml", "cannot read b.xml"}, log.ErrorMessages())
	assert.Equal(t, 2, log.Size())
	assert.True(t, log.HasErrors())
}

func TestFilteredLog_LimitAndSummary(t *testing.T) {
	log := pluginlog.NewFilteredLogWithLimit("Errors:", 2)

	for i := range 5 {
		log.LogError("error %d", i)
	}
	log.LogSummary()

	assert.Equal(t, []string{
		"Errors:",
		"error 0",
		"error 1",
		"  ... skipped logging of 3 lines ...",
	}, log.ErrorMessages())
	assert.Equal(t, 5, log.Size())
}

func TestFilteredLog_DefaultLimit(t *testing.T) {
	log := pluginlog.NewFilteredLog("")

	for i := range pluginlog.DefaultMaxLines + 5 {
		log.LogError("error %d", i)
	}

	assert.Len(t, log.ErrorMessages(), pluginlog.DefaultMaxLines)
	assert.Equal(t, pluginlog.DefaultMaxLines+5, log.Size())
}

func TestFilteredLog_LogException(t *testing.T) {
	log := pluginlog.NewFilteredLog("")
	cause := errors.New("disk full")

	log.LogException(fmt.Errorf("write report: %w", cause), "Saving %s failed", "report.xml")

	got := log.ErrorMessages()
	require.Len(t, got, 3)
	assert.Equal(t, "Saving report.xml failed", got[0])
	assert.Contains(t, got[1], "write report: disk full")
	assert.Contains(t, got[2], "disk full")
	assert.Equal(t, 3, log.Size())
}

func TestFilteredLog_Merge(t *testing.T) {
	log := pluginlog.NewFilteredLog("Main:")
	log.LogInfo("main info")

	other := pluginlog.NewFilteredLog("Other:")
	other.LogInfo("other info")
	other.LogError("other error")

	log.Merge(other)
	log.Merge(nil)
	log.Merge(log)

	assert.Equal(t, []string{"main info", "other info"}, log.InfoMessages())
	assert.Equal(t, []string{"Other:", "other error"}, log.ErrorMessages())
	assert.Equal(t, 1, log.Size())
}

func TestFilteredLog_Equal(t *testing.T) {
	build := func(title string) *pluginlog.FilteredLog {
		log := pluginlog.NewFilteredLog(title)
		log.LogInfo("info")
		log.LogError("error")

		return log
	}

	assert.True(t, build("A").Equal(build("A")))
	assert.False(t, build("A").Equal(build("B")))
	assert.False(t, build("A").Equal(nil))

	var nilLog *pluginlog.FilteredLog
	assert.True(t, nilLog.Equal(nil))
}

func TestFilteredLog_CBOR(t *testing.T) {
	log := pluginlog.NewFilteredLogWithLimit("Errors:", 1)
	log.LogInfo("info")
	log.LogError("first")
	log.LogError("second")

	data, err := cbor.Marshal(log)
	require.NoError(t, err)

	decoded := pluginlog.NewFilteredLog("")
	require.NoError(t, cbor.Unmarshal(data, decoded))

	assert.True(t, log.Equal(decoded))
	assert.Equal(t, 2, decoded.Size())

	decoded.LogError("third")
	assert.Equal(t, 3, decoded.Size())
	assert.Len(t, decoded.ErrorMessages(), 2, "limit survives the round trip")
}
