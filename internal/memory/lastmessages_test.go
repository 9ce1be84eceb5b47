package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vthunder/wabot/internal/types"
)

func TestLastMessages_RecordThenGet(t *testing.T) {
	l := NewLastMessages()
	ref := types.MessageRef{ChatID: "a@g.us", ID: "m1", Sender: "x@s.whatsapp.net"}

	l.Record("a@g.us", ref)

	got, ok := l.Get("a@g.us")
	require.True(t, ok)
	assert.Equal(t, ref, got)
}

func TestLastMessages_OverwriteKeepsNoHistory(t *testing.T) {
	l := NewLastMessages()
	l.Record("a@g.us", types.MessageRef{ID: "m1"})
	l.Record("a@g.us", types.MessageRef{ID: "m2"})

	got, ok := l.Get("a@g.us")
	require.True(t, ok)
	assert.Equal(t, "m2", got.ID)
	assert.Equal(t, 1, l.Len())
}

func TestLastMessages_Missing(t *testing.T) {
	l := NewLastMessages()
	_, ok := l.Get("nobody@s.whatsapp.net")
	assert.False(t, ok)
}

func TestLastMessages_Reset(t *testing.T) {
	l := NewLastMessages()
	l.Record("a@g.us", types.MessageRef{ID: "m1"})
	l.Reset()

	_, ok := l.Get("a@g.us")
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestLastMessages_ConcurrentChats(t *testing.T) {
	l := NewLastMessages()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chat := fmt.Sprintf("chat-%d", i%5)
			l.Record(chat, types.MessageRef{ChatID: chat, ID: fmt.Sprintf("m%d", i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, l.Len())
	for i := 0; i < 5; i++ {
		ref, ok := l.Get(fmt.Sprintf("chat-%d", i))
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("chat-%d", i), ref.ChatID)
	}
}
