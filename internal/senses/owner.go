package senses

import (
	"context"

	"github.com/vthunder/wabot/internal/command"
	"github.com/vthunder/wabot/internal/effectors"
	"github.com/vthunder/wabot/internal/logging"
	"github.com/vthunder/wabot/internal/types"
)

// DefaultQueueSize bounds commands waiting for the owner worker
const DefaultQueueSize = 32

// Executor runs a parsed command and reports the outcome
type Executor func(ctx context.Context, cmd command.Command) effectors.Result

// Replier delivers a result message back to the owner
type Replier func(ctx context.Context, text string) error

// OwnerSense turns the owner's private-chat messages into commands.
// Commands run one at a time, in arrival order, on the Run goroutine so a
// slow send never blocks the inbound event stream.
type OwnerSense struct {
	ownerID string
	exec    Executor
	reply   Replier
	queue   chan command.Command
}

// NewOwnerSense creates the private-chat front end for ownerID
func NewOwnerSense(ownerID string, exec Executor, reply Replier) *OwnerSense {
	return &OwnerSense{
		ownerID: ownerID,
		exec:    exec,
		reply:   reply,
		queue:   make(chan command.Command, DefaultQueueSize),
	}
}

// Authorized reports whether an event may carry an owner command:
// it must arrive in the owner's private chat, from the owner.
func (o *OwnerSense) Authorized(evt types.InboundEvent) bool {
	if evt.FromMe || o.ownerID == "" {
		return false
	}
	if evt.ChatID != o.ownerID {
		return false
	}
	return evt.SenderID == o.ownerID || evt.ChatID == o.ownerID
}

// Handle queues the command carried by an event's normalized text.
// It returns false when the event is not an authorized command.
func (o *OwnerSense) Handle(evt types.InboundEvent, text string) bool {
	if !o.Authorized(evt) {
		return false
	}
	cmd, ok := command.Parse(text, command.PrivateSigil)
	if !ok {
		return false
	}

	select {
	case o.queue <- cmd:
		logging.Debug("owner", "Queued command %q", cmd.Name)
		return true
	default:
		logging.Warn("owner", "Command queue full, dropping %q", cmd.Name)
		return false
	}
}

// Run processes queued commands until ctx is done
func (o *OwnerSense) Run(ctx context.Context) error {
	logging.Info("owner", "Listening for commands from %s", o.ownerID)
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-o.queue:
			o.process(ctx, cmd)
		}
	}
}

func (o *OwnerSense) process(ctx context.Context, cmd command.Command) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("owner", "Command %q panicked: %v", cmd.Name, r)
		}
	}()

	res := o.exec(ctx, cmd)
	if res.Failed() {
		logging.Info("owner", "Command %q failed (%s): %v", cmd.Name, res.Kind(), res.Err)
	}
	if res.Message == "" {
		return
	}
	if err := o.reply(ctx, res.Message); err != nil {
		logging.Warn("owner", "Reply for %q not delivered: %v", cmd.Name, err)
	}
}
