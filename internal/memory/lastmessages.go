package memory

import (
	"sync"

	"github.com/vthunder/wabot/internal/types"
)

// LastMessages remembers the most recent inbound message per conversation
// so the reply command has something to quote. In-memory only: a restart or
// reconnect starts from empty.
type LastMessages struct {
	mu   sync.RWMutex
	refs map[string]types.MessageRef
}

// NewLastMessages creates an empty index
func NewLastMessages() *LastMessages {
	return &LastMessages{
		refs: make(map[string]types.MessageRef),
	}
}

// Record overwrites the reference for chatID (last write wins)
func (l *LastMessages) Record(chatID string, ref types.MessageRef) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refs[chatID] = ref
}

// Get returns the last reference recorded for chatID
func (l *LastMessages) Get(chatID string) (types.MessageRef, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ref, ok := l.refs[chatID]
	return ref, ok
}

// Len returns the number of tracked conversations
func (l *LastMessages) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.refs)
}

// Reset drops everything, used when the session reconnects
func (l *LastMessages) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refs = make(map[string]types.MessageRef)
}
