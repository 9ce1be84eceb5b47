// Package whatsapp implements session.Session over the WhatsApp Web
// multi-device protocol. Credentials live in a sqlite store under the
// session directory; pairing happens through a QR challenge.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	watypes "go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"

	"github.com/vthunder/wabot/internal/logging"
	"github.com/vthunder/wabot/internal/session"
	"github.com/vthunder/wabot/internal/types"
)

// Options configures the adapter
type Options struct {
	SessionDir string // holds store.db
	DeviceName string // shown in the phone's linked devices list
}

// Client is a whatsmeow-backed session
type Client struct {
	cli *whatsmeow.Client

	mu      sync.RWMutex
	onEvent session.EventHandler
	onState session.StateHandler
}

// Open loads (or creates) the device store and prepares a client.
// Nothing touches the network until Connect.
func Open(ctx context.Context, opts Options) (*Client, error) {
	if err := os.MkdirAll(opts.SessionDir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	if opts.DeviceName != "" {
		store.DeviceProps.Os = proto.String(opts.DeviceName)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(opts.SessionDir, "store.db"))
	container, err := sqlstore.New(ctx, "sqlite3", dsn, logging.WA("Database"))
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("load device: %w", err)
	}

	c := &Client{cli: whatsmeow.NewClient(device, logging.WA("Client"))}
	// reconnects are owned by the bot supervisor
	c.cli.EnableAutoReconnect = false
	c.cli.AddEventHandler(c.handle)
	return c, nil
}

func (c *Client) OnEvent(h session.EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvent = h
}

func (c *Client) OnState(h session.StateHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = h
}

func (c *Client) emitState(s session.State) {
	c.mu.RLock()
	h := c.onState
	c.mu.RUnlock()
	if h != nil {
		h(s)
	}
}

func (c *Client) emitEvent(evt types.InboundEvent) {
	c.mu.RLock()
	h := c.onEvent
	c.mu.RUnlock()
	if h != nil {
		h(evt)
	}
}

// Connect opens the websocket. An unpaired device first streams QR codes.
func (c *Client) Connect(ctx context.Context) error {
	c.emitState(session.State{Kind: session.StateOpening})

	if c.cli.Store.ID == nil {
		qrs, err := c.cli.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("qr channel: %w", err)
		}
		go c.watchQR(qrs)
	}
	if err := c.cli.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

func (c *Client) watchQR(qrs <-chan whatsmeow.QRChannelItem) {
	for item := range qrs {
		switch item.Event {
		case whatsmeow.QRChannelEventCode:
			c.emitState(session.State{Kind: session.StateQR, QR: item.Code})
		case whatsmeow.QRChannelTimeout.Event:
			c.emitState(session.State{Kind: session.StateClosed, Reason: session.ReasonQRTimeout})
		case whatsmeow.QRChannelSuccess.Event:
			logging.Info("whatsapp", "Pairing succeeded")
		default:
			logging.Warn("whatsapp", "QR pairing event %s: %v", item.Event, item.Error)
		}
	}
}

func (c *Client) Disconnect() {
	c.cli.Disconnect()
}

func (c *Client) Connected() bool {
	return c.cli.IsConnected() && c.cli.IsLoggedIn()
}

func (c *Client) OwnID() string {
	if c.cli.Store.ID == nil {
		return ""
	}
	return c.cli.Store.ID.ToNonAD().String()
}

func (c *Client) handle(raw any) {
	switch evt := raw.(type) {
	case *events.Message:
		c.emitEvent(c.inbound(evt))
	case *events.Connected:
		c.emitState(session.State{Kind: session.StateOpen})
	case *events.Disconnected:
		c.emitState(session.State{Kind: session.StateClosed, Reason: session.ReasonConnectionLost})
	case *events.StreamReplaced:
		c.emitState(session.State{Kind: session.StateClosed, Reason: session.ReasonReplaced})
	case *events.LoggedOut:
		c.emitState(session.State{Kind: session.StateClosed, Reason: session.ReasonLoggedOut})
	case *events.ConnectFailure:
		reason := session.ReasonConnectFailure
		if evt.Reason.IsLoggedOut() {
			reason = session.ReasonLoggedOut
		}
		c.emitState(session.State{Kind: session.StateClosed, Reason: reason})
	}
}

func (c *Client) inbound(evt *events.Message) types.InboundEvent {
	chat := c.phoneJID(evt.Info.Chat)
	sender := c.phoneJID(evt.Info.Sender.ToNonAD())
	return types.InboundEvent{
		ChatID:    chat.String(),
		SenderID:  sender.String(),
		PushName:  evt.Info.PushName,
		FromMe:    evt.Info.IsFromMe,
		Payload:   payloadOf(evt.Message),
		Timestamp: evt.Info.Timestamp,
		Ref: types.MessageRef{
			ChatID: chat.String(),
			ID:     evt.Info.ID,
			Sender: evt.Info.Sender.ToNonAD().String(),
			Raw:    evt.Message,
		},
	}
}

// phoneJID maps a hidden-user (LID) address to its phone-number JID when the
// store knows it, so owner matching works on either addressing mode.
func (c *Client) phoneJID(jid watypes.JID) watypes.JID {
	if jid.Server != watypes.HiddenUserServer {
		return jid
	}
	pn, err := c.cli.Store.LIDs.GetPNForLID(context.Background(), jid)
	if err != nil || pn.IsEmpty() {
		return jid
	}
	return pn
}

func (c *Client) Send(ctx context.Context, to string, content types.Content) (types.MessageRef, error) {
	jid, err := watypes.ParseJID(to)
	if err != nil {
		return types.MessageRef{}, fmt.Errorf("invalid chat id %q: %w", to, err)
	}

	msg := textMessage(content)
	if content.Kind != types.ContentText {
		if len(content.Data) == 0 {
			return types.MessageRef{}, errors.New("media content without data")
		}
		up, err := c.cli.Upload(ctx, content.Data, mediaType(content.Kind))
		if err != nil {
			return types.MessageRef{}, fmt.Errorf("upload %s: %w", content.Kind, err)
		}
		msg = mediaMessage(content, up)
	}

	resp, err := c.cli.SendMessage(ctx, jid, msg)
	if err != nil {
		return types.MessageRef{}, err
	}
	return types.MessageRef{ChatID: to, ID: resp.ID, Sender: c.OwnID(), Raw: msg}, nil
}

func (c *Client) FetchGroup(ctx context.Context, groupID string) (types.Group, error) {
	jid, err := watypes.ParseJID(groupID)
	if err != nil {
		return types.Group{}, fmt.Errorf("invalid group id %q: %w", groupID, err)
	}
	info, err := c.cli.GetGroupInfo(ctx, jid)
	if err != nil {
		return types.Group{}, fmt.Errorf("group info %s: %w", groupID, err)
	}
	return groupOf(info), nil
}

func (c *Client) FetchJoinedGroups(ctx context.Context) ([]types.Group, error) {
	infos, err := c.cli.GetJoinedGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("joined groups: %w", err)
	}
	groups := make([]types.Group, 0, len(infos))
	for _, info := range infos {
		groups = append(groups, groupOf(info))
	}
	return groups, nil
}

func groupOf(info *watypes.GroupInfo) types.Group {
	participants := make([]string, 0, len(info.Participants))
	for _, p := range info.Participants {
		participants = append(participants, p.JID.ToNonAD().String())
	}
	return types.Group{
		ID:           info.JID.String(),
		Subject:      info.Name,
		Participants: participants,
	}
}

var _ session.Session = (*Client)(nil)
