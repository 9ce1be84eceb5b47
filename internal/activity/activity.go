package activity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// TimestampLayout is the locale-style timestamp written at the start of each line
const TimestampLayout = "1/2/2006, 15:04:05"

// Entry represents a single inbound message in the log
type Entry struct {
	Timestamp time.Time
	Sender    string
	Chat      string
	Text      string
}

// Line renders the entry in the fixed log format, newline included
func (e Entry) Line() string {
	return fmt.Sprintf("[%s] Dari: %s | Chat: %s | Pesan: %s\n",
		e.Timestamp.Format(TimestampLayout), e.Sender, e.Chat, e.Text)
}

// Log is an append-only text log of inbound messages.
// Lines are only ever appended, never rewritten or truncated.
type Log struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New creates an activity logger writing to path
func New(path string) *Log {
	return &Log{
		path: path,
		now:  time.Now,
	}
}

// Path returns the log file location
func (l *Log) Path() string {
	return l.path
}

// Name returns the log file name without directories
func (l *Log) Name() string {
	return filepath.Base(l.path)
}

// Ensure creates an empty log file if none exists yet
func (l *Log) Ensure() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create log file: %w", err)
	}
	return f.Close()
}

// Log appends an entry
func (l *Log) Log(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Set timestamp if not provided
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now()
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(entry.Line())
	return err
}

// LogInput logs an incoming message
func (l *Log) LogInput(sender, chat, text string) error {
	return l.Log(Entry{
		Sender: sender,
		Chat:   chat,
		Text:   text,
	})
}

// Recent returns the last n lines of the log, oldest first.
// A missing or empty log yields no lines and no error.
func (l *Log) Recent(n int) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, nil
	}
	lines := strings.Split(content, "\n")
	if n >= len(lines) {
		return lines, nil
	}
	return lines[len(lines)-n:], nil
}
