package profiling

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatUptime(0))
	assert.Equal(t, "00:01:05", FormatUptime(65*time.Second))
	assert.Equal(t, "26:03:04", FormatUptime(26*time.Hour+3*time.Minute+4*time.Second+900*time.Millisecond))
	assert.Equal(t, "00:00:00", FormatUptime(-time.Second))
}

func TestFormatMB(t *testing.T) {
	assert.Equal(t, "1.0 MB", FormatMB(1024*1024))
	assert.Equal(t, "23.5 MB", FormatMB(uint64(23.5*1024*1024)))
}

func TestUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Stats{started: start, now: func() time.Time { return start.Add(90 * time.Second) }}
	assert.Equal(t, 90*time.Second, s.Uptime())
}

func TestNewStats_SamplesCurrentProcess(t *testing.T) {
	s := NewStats()
	assert.GreaterOrEqual(t, s.Uptime(), time.Duration(0))

	rss, err := s.RSS()
	require.NoError(t, err)
	assert.Greater(t, rss, uint64(0))
}

func TestOverrides(t *testing.T) {
	s := &Stats{
		rss:     func() (uint64, error) { return 42, nil },
		loadAvg: func() (float64, error) { return 0, errors.New("unsupported") },
	}
	rss, err := s.RSS()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), rss)

	_, err = s.Load1()
	assert.Error(t, err)
}
