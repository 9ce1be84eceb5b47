package activity

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper: create a Log backed by a temp directory
func newTestLog(t *testing.T) (*Log, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs.txt")
	return New(path), path
}

func TestEntryLine(t *testing.T) {
	e := Entry{
		Timestamp: time.Date(2026, 1, 15, 10, 4, 5, 0, time.UTC),
		Sender:    "628111@s.whatsapp.net",
		Chat:      "1203@g.us",
		Text:      "halo",
	}
	assert.Equal(t, "[1/15/2026, 10:04:05] Dari: 628111@s.whatsapp.net | Chat: 1203@g.us | Pesan: halo\n", e.Line())
}

func TestEnsure_CreatesEmptyFile(t *testing.T) {
	log, path := newTestLog(t)
	require.NoError(t, log.Ensure())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestEnsure_KeepsExistingContent(t *testing.T) {
	log, path := newTestLog(t)
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))
	require.NoError(t, log.Ensure())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))
}

func TestLogInput_Appends(t *testing.T) {
	log, path := newTestLog(t)
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	log.now = func() time.Time { return fixed }

	require.NoError(t, log.LogInput("a", "b", "one"))
	require.NoError(t, log.LogInput("a", "b", "two"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[3/1/2026, 08:00:00] Dari: a | Chat: b | Pesan: one\n"+
			"[3/1/2026, 08:00:00] Dari: a | Chat: b | Pesan: two\n",
		string(data))
}

func TestRecent(t *testing.T) {
	log, _ := newTestLog(t)
	for i := 1; i <= 12; i++ {
		require.NoError(t, log.LogInput("s", "c", fmt.Sprintf("msg %d", i)))
	}

	lines, err := log.Recent(10)
	require.NoError(t, err)
	require.Len(t, lines, 10)
	assert.Contains(t, lines[0], "Pesan: msg 3")
	assert.Contains(t, lines[9], "Pesan: msg 12")

	all, err := log.Recent(100)
	require.NoError(t, err)
	assert.Len(t, all, 12)
}

func TestRecent_EmptyAndMissing(t *testing.T) {
	log, _ := newTestLog(t)

	lines, err := log.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, log.Ensure())
	lines, err = log.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRecent_ReadError(t *testing.T) {
	// a directory cannot be read as a file
	log := New(t.TempDir())
	_, err := log.Recent(10)
	assert.Error(t, err)
}

func TestLog_ConcurrentWrites(t *testing.T) {
	log, _ := newTestLog(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = log.LogInput("s", "c", fmt.Sprintf("m%d", i))
		}(i)
	}
	wg.Wait()

	lines, err := log.Recent(100)
	require.NoError(t, err)
	assert.Len(t, lines, 20)
}

func TestName(t *testing.T) {
	log := New(filepath.Join("state", "logs.txt"))
	assert.Equal(t, "logs.txt", log.Name())
}
