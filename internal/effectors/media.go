package effectors

import (
	"path/filepath"
	"strings"

	"github.com/vthunder/wabot/internal/types"
)

type mediaType struct {
	kind types.ContentKind
	mime string
}

var mediaByExt = map[string]mediaType{
	".jpg":  {types.ContentImage, "image/jpeg"},
	".jpeg": {types.ContentImage, "image/jpeg"},
	".png":  {types.ContentImage, "image/png"},
	".gif":  {types.ContentImage, "image/gif"},
	".webp": {types.ContentImage, "image/webp"},
	".mp4":  {types.ContentVideo, "video/mp4"},
	".mkv":  {types.ContentVideo, "video/x-matroska"},
	".mov":  {types.ContentVideo, "video/quicktime"},
	".mp3":  {types.ContentAudio, "audio/mpeg"},
	".ogg":  {types.ContentAudio, "audio/ogg"},
	".wav":  {types.ContentAudio, "audio/wav"},
}

// ClassifyMedia picks the outbound message type for a file by extension.
// Anything unrecognized goes out as a generic document.
func ClassifyMedia(path string) (types.ContentKind, string) {
	if m, ok := mediaByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return m.kind, m.mime
	}
	return types.ContentDocument, "application/octet-stream"
}

// mediaContent builds the outbound content for a file
func mediaContent(path string, data []byte, caption string, mentions []string) types.Content {
	kind, mime := ClassifyMedia(path)
	c := types.Content{
		Kind:     kind,
		Data:     data,
		MimeType: mime,
		Mentions: mentions,
	}
	switch kind {
	case types.ContentAudio:
		// audio messages have no caption
	case types.ContentDocument:
		c.FileName = filepath.Base(path)
		c.Text = caption
	default:
		c.Text = caption
	}
	return c
}
