package whatsapp

import (
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"google.golang.org/protobuf/proto"

	"github.com/vthunder/wabot/internal/types"
)

// payloadOf picks the first recognized content of a message.
// Checks run in a fixed order; text forms win over media.
func payloadOf(msg *waE2E.Message) types.Payload {
	switch {
	case msg == nil:
		return types.Payload{}
	case msg.GetConversation() != "":
		return types.Payload{Kind: types.PayloadText, Text: msg.GetConversation()}
	case msg.GetExtendedTextMessage().GetText() != "":
		return types.Payload{Kind: types.PayloadText, Text: msg.GetExtendedTextMessage().GetText()}
	case msg.GetImageMessage() != nil:
		return types.Payload{Kind: types.PayloadImage, Text: msg.GetImageMessage().GetCaption()}
	case msg.GetVideoMessage() != nil:
		return types.Payload{Kind: types.PayloadVideo, Text: msg.GetVideoMessage().GetCaption()}
	case msg.GetStickerMessage() != nil:
		return types.Payload{Kind: types.PayloadSticker}
	case msg.GetDocumentMessage() != nil:
		return types.Payload{Kind: types.PayloadDocument, Text: msg.GetDocumentMessage().GetFileName()}
	case msg.GetAudioMessage() != nil:
		return types.Payload{Kind: types.PayloadAudio}
	case msg.GetContactMessage() != nil:
		return types.Payload{Kind: types.PayloadContact}
	case msg.GetLocationMessage() != nil:
		return types.Payload{Kind: types.PayloadLocation}
	case msg.GetButtonsResponseMessage() != nil:
		return types.Payload{Kind: types.PayloadButton, Text: msg.GetButtonsResponseMessage().GetSelectedButtonID()}
	case msg.GetListResponseMessage() != nil:
		return types.Payload{Kind: types.PayloadList, Text: msg.GetListResponseMessage().GetTitle()}
	case msg.GetReactionMessage() != nil:
		return types.Payload{Kind: types.PayloadReaction, Text: msg.GetReactionMessage().GetText()}
	}
	return types.Payload{}
}

// contextInfo carries silent mentions and the quoted message, nil if neither
func contextInfo(c types.Content) *waE2E.ContextInfo {
	if len(c.Mentions) == 0 && c.Quoted == nil {
		return nil
	}
	info := &waE2E.ContextInfo{}
	if len(c.Mentions) > 0 {
		info.MentionedJID = append([]string(nil), c.Mentions...)
	}
	if q := c.Quoted; q != nil {
		info.StanzaID = proto.String(q.ID)
		if q.Sender != "" {
			info.Participant = proto.String(q.Sender)
		}
		if raw, ok := q.Raw.(*waE2E.Message); ok && raw != nil {
			info.QuotedMessage = raw
		} else {
			info.QuotedMessage = &waE2E.Message{Conversation: proto.String("")}
		}
	}
	return info
}

// textMessage builds a text message. Plain text without mentions or a quote
// stays a bare conversation message.
func textMessage(c types.Content) *waE2E.Message {
	info := contextInfo(c)
	if info == nil {
		return &waE2E.Message{Conversation: proto.String(c.Text)}
	}
	return &waE2E.Message{ExtendedTextMessage: &waE2E.ExtendedTextMessage{
		Text:        proto.String(c.Text),
		ContextInfo: info,
	}}
}

func mediaType(kind types.ContentKind) whatsmeow.MediaType {
	switch kind {
	case types.ContentImage:
		return whatsmeow.MediaImage
	case types.ContentVideo:
		return whatsmeow.MediaVideo
	case types.ContentAudio:
		return whatsmeow.MediaAudio
	default:
		return whatsmeow.MediaDocument
	}
}

// mediaMessage builds a media message around an uploaded blob
func mediaMessage(c types.Content, up whatsmeow.UploadResponse) *waE2E.Message {
	info := contextInfo(c)
	var caption *string
	if c.Text != "" {
		caption = proto.String(c.Text)
	}

	switch c.Kind {
	case types.ContentImage:
		return &waE2E.Message{ImageMessage: &waE2E.ImageMessage{
			Caption:       caption,
			Mimetype:      proto.String(c.MimeType),
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(up.FileLength),
			ContextInfo:   info,
		}}
	case types.ContentVideo:
		return &waE2E.Message{VideoMessage: &waE2E.VideoMessage{
			Caption:       caption,
			Mimetype:      proto.String(c.MimeType),
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(up.FileLength),
			ContextInfo:   info,
		}}
	case types.ContentAudio:
		return &waE2E.Message{AudioMessage: &waE2E.AudioMessage{
			Mimetype:      proto.String(c.MimeType),
			PTT:           proto.Bool(false),
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(up.FileLength),
			ContextInfo:   info,
		}}
	default:
		return &waE2E.Message{DocumentMessage: &waE2E.DocumentMessage{
			Caption:       caption,
			FileName:      proto.String(c.FileName),
			Title:         proto.String(c.FileName),
			Mimetype:      proto.String(c.MimeType),
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(up.FileLength),
			ContextInfo:   info,
		}}
	}
}
