package senses

import (
	"strings"

	"github.com/vthunder/wabot/internal/types"
)

// markers for non-text payloads, as shown in logs and on the console
var markers = map[types.PayloadKind]string{
	types.PayloadImage:    "[Gambar]",
	types.PayloadVideo:    "[Video]",
	types.PayloadSticker:  "[Stiker]",
	types.PayloadDocument: "[Dokumen]",
	types.PayloadAudio:    "[Audio]",
	types.PayloadContact:  "[Kontak]",
	types.PayloadLocation: "[Lokasi]",
	types.PayloadButton:   "[Tombol]",
	types.PayloadList:     "[List]",
	types.PayloadReaction: "[Reaksi]",
}

// Normalize renders a payload as a one-line human readable summary.
// Plain text comes back as is, other kinds get a marker followed by their
// caption or label. Unknown payloads yield "".
func Normalize(p types.Payload) string {
	if p.Kind == types.PayloadText {
		return p.Text
	}
	marker, ok := markers[p.Kind]
	if !ok {
		return ""
	}
	// stickers, audio, contacts and locations carry no label
	switch p.Kind {
	case types.PayloadSticker, types.PayloadAudio, types.PayloadContact, types.PayloadLocation:
		return marker
	}
	if text := strings.TrimSpace(p.Text); text != "" {
		return marker + " " + text
	}
	return marker
}
