package bot

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vthunder/wabot/internal/command"
	"github.com/vthunder/wabot/internal/types"
)

// phrasebook holds the requester-facing texts of one transport. Actions are
// shared; only what the owner reads in chat or the operator sees in the
// terminal differs.
type phrasebook struct {
	usage   func(spec command.Spec) string
	unknown string

	groupsFailed func(err error) string
	groupsList   func(groups []types.Group) string

	tagAllDone    func(groupID string, g types.Group) string
	tagAllFailed  func(err error) string
	mentionDone   func(groupID, phone, jid string) string
	mentionFailed func(err error) string
	fileMissing   func(path string) string
	fileFailed    func(err error) string
	fileDone      func(chatID, path string) string
	fileTagDone   func(groupID string, g types.Group) string
	fileTagFailed func(err error) string
	noReplyRef    func(chatID string) string
	replyDone     func(chatID string, g types.Group) string
	replyFailed   func(err error) string
}

var privatePhrases = &phrasebook{
	usage:   func(spec command.Spec) string { return "❗ Format: " + spec.Usage },
	unknown: "❓ Command tidak dikenal. Ketik !help",

	groupsFailed: func(err error) string { return fmt.Sprintf("❌ Gagal mengambil daftar grup: %v", err) },
	groupsList: func(groups []types.Group) string {
		list := enumerateGroups(groups)
		if list == "" {
			list = "(tidak ada grup)"
		}
		return "📚 Grup yang bot gabung:\n" + list
	},

	tagAllDone:   func(groupID string, g types.Group) string { return "✔ Tagall dikirim ke " + groupID },
	tagAllFailed: func(err error) string { return fmt.Sprintf("❌ Gagal tag all: %v", err) },
	mentionDone: func(groupID, phone, jid string) string {
		return fmt.Sprintf("✔ Mention tersembunyi dikirim ke %s di grup %s", phone, groupID)
	},
	mentionFailed: func(err error) string { return fmt.Sprintf("❌ Gagal mengirim hidden mention: %v", err) },
	fileMissing:   func(path string) string { return "⚠️ File tidak ditemukan: " + path },
	fileFailed:    func(err error) string { return fmt.Sprintf("❌ Gagal mengirim file: %v", err) },
	fileDone:      func(chatID, path string) string { return "✔ File dikirim ke " + chatID },
	fileTagDone:   func(groupID string, g types.Group) string { return "✔ File + tagall dikirim ke " + groupID },
	fileTagFailed: func(err error) string { return fmt.Sprintf("❌ Gagal kirim file dengan tag all: %v", err) },
	noReplyRef:    func(chatID string) string { return "⚠️ Tidak ada pesan terakhir untuk chat " + chatID },
	replyDone: func(chatID string, g types.Group) string {
		if g.ID != "" {
			return "✅ Reply + tagall dikirim ke grup " + g.Subject
		}
		return "✅ Reply dikirim ke " + chatID
	},
	replyFailed: func(err error) string { return fmt.Sprintf("❌ Gagal mengirim reply: %v", err) },
}

var consolePhrases = &phrasebook{
	usage:   func(command.Spec) string { return consoleFormatHint },
	unknown: consoleFormatHint,

	groupsFailed: func(err error) string { return fmt.Sprintf("❌ Gagal menampilkan daftar grup: %v", err) },
	groupsList: func(groups []types.Group) string {
		header := fmt.Sprintf("📚 Kamu tergabung di %d grup:", len(groups))
		if list := enumerateGroups(groups); list != "" {
			return header + "\n" + list
		}
		return header
	},

	tagAllDone: func(groupID string, g types.Group) string {
		return fmt.Sprintf("✅ Tag all berhasil (%d) di grup %s", len(g.Participants), g.Subject)
	},
	tagAllFailed: func(err error) string { return fmt.Sprintf("❌ Gagal tag all: %v", err) },
	mentionDone: func(groupID, phone, jid string) string {
		return fmt.Sprintf("✅ Pesan dengan mention tersembunyi terkirim ke %s (mention: %s)", groupID, jid)
	},
	mentionFailed: func(err error) string { return fmt.Sprintf("❌ Gagal mengirim hidden mention: %v", err) },
	fileMissing:   func(path string) string { return "⚠️ File tidak ditemukan: " + path },
	fileFailed:    func(err error) string { return fmt.Sprintf("❌ Gagal mengirim file: %v", err) },
	fileDone: func(chatID, path string) string {
		return fmt.Sprintf("📤 File terkirim ke %s: %s", chatID, filepath.Base(path))
	},
	fileTagDone:   func(groupID string, g types.Group) string { return "📤 File + tagall terkirim ke grup " + g.Subject },
	fileTagFailed: func(err error) string { return fmt.Sprintf("❌ Gagal kirim file dengan tag all: %v", err) },
	noReplyRef:    func(chatID string) string { return "⚠️ Belum ada pesan yang tersimpan dari chat: " + chatID },
	replyDone: func(chatID string, g types.Group) string {
		if g.ID != "" {
			return "✅ Reply + Hide Tag All terkirim ke grup " + g.Subject
		}
		return "✅ Reply terkirim ke chat pribadi " + chatID
	},
	replyFailed: func(err error) string { return fmt.Sprintf("❌ Gagal mengirim reply (terminal): %v", err) },
}

const consoleFormatHint = "⚠️  Format salah. Lihat panduan perintah."

// enumerateGroups renders "1. subject (id)" lines, empty for no groups
func enumerateGroups(groups []types.Group) string {
	lines := make([]string, 0, len(groups))
	for i, g := range groups {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, g.Subject, g.ID))
	}
	return strings.Join(lines, "\n")
}
