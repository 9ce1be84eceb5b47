package senses

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vthunder/wabot/internal/command"
	"github.com/vthunder/wabot/internal/effectors"
	"github.com/vthunder/wabot/internal/types"
)

const owner = "628000000000@s.whatsapp.net"

type recorder struct {
	mu      sync.Mutex
	cmds    []command.Command
	replies []string
}

func (r *recorder) exec(ctx context.Context, cmd command.Command) effectors.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	if cmd.Name == "boom" {
		panic("boom")
	}
	return effectors.OK("done %s", cmd.Name)
}

func (r *recorder) reply(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, text)
	return nil
}

func (r *recorder) snapshot() ([]command.Command, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]command.Command(nil), r.cmds...), append([]string(nil), r.replies...)
}

func ownerEvent() types.InboundEvent {
	return types.InboundEvent{ChatID: owner, SenderID: owner}
}

func TestAuthorized(t *testing.T) {
	o := NewOwnerSense(owner, nil, nil)

	assert.True(t, o.Authorized(ownerEvent()))

	stranger := types.InboundEvent{ChatID: "62899@s.whatsapp.net", SenderID: "62899@s.whatsapp.net"}
	assert.False(t, o.Authorized(stranger), "other private chat")

	inGroup := types.InboundEvent{ChatID: "1203@g.us", SenderID: owner}
	assert.False(t, o.Authorized(inGroup), "owner speaking in a group")

	self := ownerEvent()
	self.FromMe = true
	assert.False(t, o.Authorized(self), "own outgoing message")

	assert.False(t, NewOwnerSense("", nil, nil).Authorized(types.InboundEvent{}))
}

func TestHandle_IgnoresNonCommands(t *testing.T) {
	rec := &recorder{}
	o := NewOwnerSense(owner, rec.exec, rec.reply)

	assert.False(t, o.Handle(ownerEvent(), "hello"))
	assert.False(t, o.Handle(ownerEvent(), ""))
	assert.False(t, o.Handle(types.InboundEvent{ChatID: "1203@g.us", SenderID: owner}, "!ping"))
	assert.Len(t, o.queue, 0)
}

func TestRun_ExecutesInOrderAndReplies(t *testing.T) {
	rec := &recorder{}
	o := NewOwnerSense(owner, rec.exec, rec.reply)

	require.True(t, o.Handle(ownerEvent(), "!ping"))
	require.True(t, o.Handle(ownerEvent(), "!boom"))
	require.True(t, o.Handle(ownerEvent(), "!help"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = o.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		cmds, _ := rec.snapshot()
		return len(cmds) == 3
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	cmds, replies := rec.snapshot()
	assert.Equal(t, "ping", cmds[0].Name)
	assert.Equal(t, "boom", cmds[1].Name)
	assert.Equal(t, "help", cmds[2].Name)
	// the panicking command produced no reply and did not stop the worker
	assert.Equal(t, []string{"done ping", "done help"}, replies)
}

func TestHandle_QueueFull(t *testing.T) {
	rec := &recorder{}
	o := NewOwnerSense(owner, rec.exec, rec.reply)
	for i := 0; i < DefaultQueueSize; i++ {
		require.True(t, o.Handle(ownerEvent(), "!ping"))
	}
	assert.False(t, o.Handle(ownerEvent(), "!ping"))
}
