package types

import (
	"strings"
	"time"
)

// Servers used in WhatsApp identifiers (JIDs)
const (
	UserServer  = "s.whatsapp.net"
	GroupServer = "g.us"
)

// IsGroup reports whether a conversation id addresses a group
func IsGroup(chatID string) bool {
	return strings.HasSuffix(chatID, "@"+GroupServer)
}

// NormalizeParticipant turns a phone number into a user JID.
// Values that already look like a JID are returned unchanged.
func NormalizeParticipant(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "@") {
		return s
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	return digits + "@" + UserServer
}

// PayloadKind classifies an inbound message body
type PayloadKind string

const (
	PayloadUnknown  PayloadKind = ""
	PayloadText     PayloadKind = "text"
	PayloadImage    PayloadKind = "image"
	PayloadVideo    PayloadKind = "video"
	PayloadSticker  PayloadKind = "sticker"
	PayloadDocument PayloadKind = "document"
	PayloadAudio    PayloadKind = "audio"
	PayloadContact  PayloadKind = "contact"
	PayloadLocation PayloadKind = "location"
	PayloadButton   PayloadKind = "button_reply"
	PayloadList     PayloadKind = "list_reply"
	PayloadReaction PayloadKind = "reaction"
)

// Payload is the protocol-neutral view of an inbound message body.
// Text carries whatever readable field the kind has: the body, a caption,
// a file name, the selected button id, the list title or the reaction emoji.
type Payload struct {
	Kind PayloadKind
	Text string
}

// MessageRef points at a message that can later be quoted.
// Raw is owned by the session adapter and is opaque everywhere else.
type MessageRef struct {
	ChatID string
	ID     string
	Sender string
	Raw    any
}

// InboundEvent is a message delivered by the session
type InboundEvent struct {
	ChatID    string
	SenderID  string
	PushName  string
	FromMe    bool
	Payload   Payload
	Ref       MessageRef
	Timestamp time.Time
}

// IsGroup reports whether the event arrived in a group chat
func (e InboundEvent) IsGroup() bool {
	return IsGroup(e.ChatID)
}

// ContentKind selects the outbound message type
type ContentKind string

const (
	ContentText     ContentKind = "text"
	ContentImage    ContentKind = "image"
	ContentVideo    ContentKind = "video"
	ContentAudio    ContentKind = "audio"
	ContentDocument ContentKind = "document"
)

// Content is an outbound message.
// Mentions are delivered as structured recipients only; nothing is added to Text.
type Content struct {
	Kind     ContentKind
	Text     string // body for text, caption for media
	Data     []byte
	MimeType string
	FileName string
	Mentions []string
	Quoted   *MessageRef
}

// Group is a joined group and its current roster
type Group struct {
	ID           string
	Subject      string
	Participants []string
}
