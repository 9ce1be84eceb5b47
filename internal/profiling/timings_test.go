package profiling

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTimings(t *testing.T, path string) []CommandTiming {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var timings []CommandTiming
	dec := json.NewDecoder(strings.NewReader(string(data)))
	for dec.More() {
		var ct CommandTiming
		require.NoError(t, dec.Decode(&ct))
		timings = append(timings, ct)
	}
	return timings
}

func TestTimings_RecordsCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timings.jsonl")
	tm, err := OpenTimings(path)
	require.NoError(t, err)

	tm.Start("private", "ping")("ok")
	tm.Start("console", "tagall")("usage")
	require.NoError(t, tm.Close())

	got := readTimings(t, path)
	require.Len(t, got, 2)
	assert.Equal(t, "private", got[0].Transport)
	assert.Equal(t, "ping", got[0].Command)
	assert.Equal(t, "ok", got[0].Outcome)
	assert.GreaterOrEqual(t, got[0].DurationMs, 0.0)
	assert.Equal(t, "usage", got[1].Outcome)
}

func TestTimings_NilIsNoop(t *testing.T) {
	var tm *Timings
	tm.Start("private", "ping")("ok")
	tm.Record(CommandTiming{})
	assert.NoError(t, tm.Close())
}

func TestOpenTimings_BadPath(t *testing.T) {
	_, err := OpenTimings(filepath.Join(t.TempDir(), "missing", "timings.jsonl"))
	assert.Error(t, err)
}
