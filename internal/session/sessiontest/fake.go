// Package sessiontest provides an in-memory Session that records every send.
package sessiontest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vthunder/wabot/internal/session"
	"github.com/vthunder/wabot/internal/types"
)

// Sent is one recorded outbound message
type Sent struct {
	To      string
	Content types.Content
}

// Fake implements session.Session without a network
type Fake struct {
	mu        sync.Mutex
	own       string
	connected bool
	groups    map[string]types.Group
	sent      []Sent
	connects  int

	onEvent session.EventHandler
	onState session.StateHandler

	// Failure injection
	SendErr    error
	GroupErr   error
	ConnectErr error

	// EmitOpening makes Connect report StateOpening the way the real client does
	EmitOpening bool
}

// New creates a fake session logged in as own
func New(own string) *Fake {
	return &Fake{
		own:    own,
		groups: make(map[string]types.Group),
	}
}

// AddGroup registers a joined group
func (f *Fake) AddGroup(g types.Group) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[g.ID] = g
}

// Sent returns a copy of everything sent so far
func (f *Fake) Sent() []Sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Sent, len(f.sent))
	copy(out, f.sent)
	return out
}

// SentTo returns the messages sent to one conversation
func (f *Fake) SentTo(chatID string) []Sent {
	var out []Sent
	for _, s := range f.Sent() {
		if s.To == chatID {
			out = append(out, s)
		}
	}
	return out
}

// Connects returns how many times Connect was called
func (f *Fake) Connects() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connects
}

// Emit delivers an inbound event to the registered handler
func (f *Fake) Emit(evt types.InboundEvent) {
	f.mu.Lock()
	h := f.onEvent
	f.mu.Unlock()
	if h != nil {
		h(evt)
	}
}

// EmitState delivers a connection state to the registered handler
func (f *Fake) EmitState(s session.State) {
	f.mu.Lock()
	h := f.onState
	if s.Kind == session.StateOpen {
		f.connected = true
	} else if s.Kind == session.StateClosed {
		f.connected = false
	}
	f.mu.Unlock()
	if h != nil {
		h(s)
	}
}

func (f *Fake) Connect(ctx context.Context) error {
	f.mu.Lock()
	f.connects++
	err, opening := f.ConnectErr, f.EmitOpening
	f.mu.Unlock()
	if opening {
		f.EmitState(session.State{Kind: session.StateOpening})
	}
	return err
}

func (f *Fake) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
}

func (f *Fake) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *Fake) OwnID() string { return f.own }

func (f *Fake) OnEvent(h session.EventHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onEvent = h
}

func (f *Fake) OnState(h session.StateHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onState = h
}

func (f *Fake) Send(ctx context.Context, to string, content types.Content) (types.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return types.MessageRef{}, f.SendErr
	}
	f.sent = append(f.sent, Sent{To: to, Content: content})
	return types.MessageRef{
		ChatID: to,
		ID:     fmt.Sprintf("fake-%d", len(f.sent)),
		Sender: f.own,
	}, nil
}

func (f *Fake) FetchGroup(ctx context.Context, groupID string) (types.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GroupErr != nil {
		return types.Group{}, f.GroupErr
	}
	g, ok := f.groups[groupID]
	if !ok {
		return types.Group{}, fmt.Errorf("group %s not found", groupID)
	}
	return g, nil
}

func (f *Fake) FetchJoinedGroups(ctx context.Context) ([]types.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GroupErr != nil {
		return nil, f.GroupErr
	}
	out := make([]types.Group, 0, len(f.groups))
	for _, g := range f.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ session.Session = (*Fake)(nil)
