// Package session defines the messaging-session collaborator the bot drives.
// The bot never talks to the network directly; everything goes through Session.
package session

import (
	"context"
	"errors"

	"github.com/vthunder/wabot/internal/types"
)

// ErrLoggedOut is returned once the linked device has been removed by the phone
var ErrLoggedOut = errors.New("session logged out")

// StateKind is a connection lifecycle step
type StateKind string

const (
	StateOpening StateKind = "opening"
	StateQR      StateKind = "qr"
	StateOpen    StateKind = "open"
	StateClosed  StateKind = "closed"
)

// Reason explains why a connection closed
type Reason string

const (
	ReasonConnectionLost Reason = "connection_lost"
	ReasonLoggedOut      Reason = "logged_out"
	ReasonReplaced       Reason = "stream_replaced"
	ReasonConnectFailure Reason = "connect_failure"
	ReasonQRTimeout      Reason = "qr_timeout"
)

// State is one item of the connection-state stream
type State struct {
	Kind   StateKind
	QR     string // set for StateQR
	Reason Reason // set for StateClosed
}

// Recoverable reports whether a closed session may be reconnected.
// Only an explicit logout requires the operator to pair again.
func (s State) Recoverable() bool {
	return s.Reason != ReasonLoggedOut
}

// EventHandler receives inbound messages
type EventHandler func(types.InboundEvent)

// StateHandler receives connection state changes
type StateHandler func(State)

// Session is an authenticated connection to the messaging network
type Session interface {
	// Connection lifecycle
	Connect(ctx context.Context) error
	Disconnect()
	Connected() bool
	OwnID() string

	// Event handlers
	OnEvent(handler EventHandler)
	OnState(handler StateHandler)

	// Outbound
	Send(ctx context.Context, to string, content types.Content) (types.MessageRef, error)

	// Rosters are never cached; every call goes to the network
	FetchGroup(ctx context.Context, groupID string) (types.Group, error)
	FetchJoinedGroups(ctx context.Context) ([]types.Group, error)
}
