package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vthunder/wabot/internal/profiling"
)

func TestRootFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"env-file", "config", "owner", "session-dir", "log-file", "no-console"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestRun_FailsWithoutOwner(t *testing.T) {
	t.Setenv("OWNER_JID", "")
	t.Setenv("WABOT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
	err := cmd.Execute()
	require.Error(t, err)
}

func TestExitFunc_FlushesTimingsBeforeExit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timings.jsonl")
	timings, err := profiling.OpenTimings(path)
	require.NoError(t, err)
	timings.Start("console", "exit")("ok")

	var order []string
	code := -1
	quit := exitFunc(func(c int) {
		order = append(order, "exit")
		code = c
	}, func() {
		order = append(order, "disconnect")
	}, func() {
		require.NoError(t, timings.Close())
		order = append(order, "timings")
	})
	quit(0)

	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"disconnect", "timings", "exit"}, order)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"command":"exit"`)
}
