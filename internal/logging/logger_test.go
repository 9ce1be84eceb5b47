package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestInfoPrefixesSubsystem(t *testing.T) {
	buf := captureLog(t)
	Info("bot", "hello %s", "world")
	assert.Equal(t, "[bot] hello world\n", buf.String())
}

func TestDebugGated(t *testing.T) {
	buf := captureLog(t)
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(false)
	Debug("bot", "hidden")
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debug("bot", "shown")
	assert.Equal(t, "[bot] shown\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a b", Truncate("a\nb", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
}

func TestWABridge(t *testing.T) {
	buf := captureLog(t)
	t.Cleanup(func() { SetDebug(false) })
	SetDebug(false)

	l := WA("Client").Sub("Socket")
	l.Infof("frame %d", 1)
	assert.Empty(t, buf.String())

	l.Warnf("slow %s", "ack")
	assert.Equal(t, "[wa/Client/Socket] WARN slow ack\n", buf.String())
}
