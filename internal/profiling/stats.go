package profiling

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats samples process and host figures for the ping command
type Stats struct {
	started time.Time
	proc    *process.Process

	// overridable in tests
	now     func() time.Time
	rss     func() (uint64, error)
	loadAvg func() (float64, error)
}

// NewStats creates a sampler for the current process. The start time comes
// from the OS when available so uptime covers the whole process lifetime.
func NewStats() *Stats {
	s := &Stats{
		started: time.Now(),
		now:     time.Now,
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = proc
		if ms, err := proc.CreateTime(); err == nil {
			s.started = time.UnixMilli(ms)
		}
	}
	s.rss = s.processRSS
	s.loadAvg = hostLoad1
	return s
}

// Uptime returns how long the process has been running
func (s *Stats) Uptime() time.Duration {
	return s.now().Sub(s.started)
}

// RSS returns resident memory in bytes
func (s *Stats) RSS() (uint64, error) {
	return s.rss()
}

// Load1 returns the 1-minute load average
func (s *Stats) Load1() (float64, error) {
	return s.loadAvg()
}

func (s *Stats) processRSS() (uint64, error) {
	if s.proc == nil {
		return 0, fmt.Errorf("process handle unavailable")
	}
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}

func hostLoad1() (float64, error) {
	avg, err := load.Avg()
	if err != nil {
		return 0, err
	}
	return avg.Load1, nil
}

// FormatUptime renders a duration as HH:MM:SS (hours may exceed 24)
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// FormatMB renders bytes as megabytes with one decimal
func FormatMB(b uint64) string {
	return fmt.Sprintf("%.1f MB", float64(b)/1024/1024)
}
