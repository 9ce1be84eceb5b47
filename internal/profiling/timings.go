package profiling

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// CommandTiming is one executed command
type CommandTiming struct {
	Transport  string    `json:"transport"`
	Command    string    `json:"command"`
	StartTime  time.Time `json:"start_time"`
	DurationMs float64   `json:"duration_ms"`
	Outcome    string    `json:"outcome"` // "ok" or the failure kind
}

// Timings appends command durations to a JSONL file.
// A nil *Timings is valid and records nothing.
type Timings struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

// OpenTimings opens (or creates) the timing log at path
func OpenTimings(path string) (*Timings, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open timing log: %w", err)
	}
	return &Timings{file: f, encoder: json.NewEncoder(f)}, nil
}

// Start begins timing a command; call the returned func with the outcome
func (t *Timings) Start(transport, command string) func(outcome string) {
	if t == nil {
		return func(string) {}
	}
	start := time.Now()
	return func(outcome string) {
		t.Record(CommandTiming{
			Transport:  transport,
			Command:    command,
			StartTime:  start,
			DurationMs: float64(time.Since(start).Nanoseconds()) / 1e6,
			Outcome:    outcome,
		})
	}
}

// Record writes one timing
func (t *Timings) Record(ct CommandTiming) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.encoder.Encode(ct)
}

// Close closes the log file
func (t *Timings) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.Close()
}
