package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vthunder/wabot/internal/command"
	"github.com/vthunder/wabot/internal/effectors"
	"github.com/vthunder/wabot/internal/profiling"
	"github.com/vthunder/wabot/internal/types"
)

// RecentLogLines is how many log lines "log last" returns
const RecentLogLines = 10

const (
	speedProbe   = "Testing speed..."
	tagRedirect  = "❗ Untuk tag di grup gunakan: !tagin <groupId>|<nomor>|<pesan>"
	helpHeader   = "📋 Daftar Command (via private chat ke bot)"
	notAvailable = "n/a"
)

func (b *Bot) privateCatalogue() *Catalogue {
	p := privatePhrases
	c := newCatalogue(p)

	c.Add(command.Spec{Name: "ping", Usage: "!ping"}, b.ping)
	c.Add(command.Spec{Name: "help", Usage: "!help"}, b.help)
	c.Add(command.Spec{Name: "status", Usage: "!status"}, b.status)
	c.Add(command.Spec{
		Name:     "tagall",
		Fields:   []string{"group"},
		Rest:     "message",
		Required: 1,
		Default:  "(tanpa pesan)",
		Usage:    "!tagall <groupId>|<pesan>",
	}, b.tagAll(p))
	c.Add(command.Spec{
		Name:   "tag",
		Fields: []string{"phone"},
		Rest:   "message",
		Usage:  "!tag <nomor>|<pesan>",
		Help:   "(nomor seperti 6281234567890 atau jid)",
	}, func(context.Context, command.Args) effectors.Result {
		return effectors.Fail(effectors.NewError(effectors.KindUsage, "tag", nil), "%s", tagRedirect)
	})
	c.Add(command.Spec{
		Name:     "tagin",
		Fields:   []string{"group", "phone"},
		Rest:     "message",
		Required: 2,
		Default:  "(tanpa pesan)",
		Usage:    "!tagin <groupId>|<nomor>|<pesan>",
	}, b.mention(p))
	c.Add(command.Spec{
		Name:     "file",
		Fields:   []string{"group", "path"},
		Rest:     "caption",
		Required: 2,
		Usage:    "!file <groupId>|<path>|<caption optional>",
	}, b.sendFile(p))
	c.Add(command.Spec{
		Name:     "filetag",
		Fields:   []string{"group", "path"},
		Rest:     "caption",
		Required: 2,
		Usage:    "!filetag <groupId>|<path>|<caption optional>",
	}, b.sendFileTagAll(p))
	c.Add(command.Spec{
		Name:     "reply",
		Fields:   []string{"chat"},
		Rest:     "message",
		Required: 2,
		Usage:    "!reply <chatId>|<pesan>",
		Help:     "(reply ke pesan terakhir chatId)",
	}, b.reply(p))
	c.Add(command.Spec{Name: "groups", Usage: "!groups"}, b.groups(p))
	c.Add(command.Spec{
		Name:   "log",
		Fields: []string{"which"},
		Usage:  "!log last",
		Help:   "(lihat 10 baris terakhir logs)",
	}, b.logTail)

	return c
}

func (b *Bot) consoleCatalogue() *Catalogue {
	p := consolePhrases
	c := newCatalogue(p)

	c.Add(command.Spec{Name: "exit", Usage: "exit", Help: "Keluar"}, func(context.Context, command.Args) effectors.Result {
		b.quit(0)
		return effectors.Result{}
	})
	c.Add(command.Spec{Name: "groups", Usage: "groups", Help: "Lihat grup"}, b.groups(p))
	c.Add(command.Spec{
		Name:     "reply",
		Fields:   []string{"chat"},
		Rest:     "message",
		Required: 2,
		Usage:    "reply|chatId|Pesanmu",
		Help:     "Reply pesan terakhir",
	}, b.reply(p))
	c.Add(command.Spec{
		Name:     "file",
		Fields:   []string{"group", "path"},
		Rest:     "caption",
		Required: 2,
		Usage:    `file|groupId|C:\path\to\file.jpg|Caption opsional`,
		Help:     "Kirim file",
	}, b.sendFile(p))
	c.Add(command.Spec{
		Name:     "filetag",
		Fields:   []string{"group", "path"},
		Rest:     "caption",
		Required: 2,
		Usage:    `filetag|groupId|C:\path\to\file.jpg|Caption opsional`,
		Help:     "Kirim file tag all",
	}, b.sendFileTagAll(p))
	c.Add(command.Spec{
		Name:     "tagall",
		Fields:   []string{"group"},
		Rest:     "message",
		Required: 2,
		Usage:    "tagall|groupId|Pesanmu",
		Help:     "Tag semua",
	}, b.tagAll(p))
	c.SetFallback(command.Spec{
		Name:     "mention",
		Fields:   []string{"group", "phone"},
		Rest:     "message",
		Required: 3,
		Usage:    "groupId|628xxxxxxxxxx|Pesanmu",
		Help:     "Tag orang di grup",
	}, b.mention(p))

	return c
}

// ConsoleGuide returns the quick-command lines shown when the console starts
func (b *Bot) ConsoleGuide() []string {
	var lines []string
	if f := b.console.fallback; f != nil {
		lines = append(lines, fmt.Sprintf("%s: %s", f.spec.Help, f.spec.Usage))
	}
	for _, spec := range b.console.Specs() {
		lines = append(lines, fmt.Sprintf("%s: %s", spec.Help, spec.Usage))
	}
	return lines
}

func (b *Bot) ping(ctx context.Context, _ command.Args) effectors.Result {
	ram := notAvailable
	if rss, err := b.stats.RSS(); err == nil {
		ram = profiling.FormatMB(rss)
	}
	load := notAvailable
	if l, err := b.stats.Load1(); err == nil {
		load = fmt.Sprintf("%.2f", l)
	}
	speed := notAvailable
	start := time.Now()
	if err := b.effector.Text(ctx, b.cfg.OwnerID, speedProbe); err == nil {
		speed = fmt.Sprintf("%dms", time.Since(start).Milliseconds())
	}

	return effectors.OK("🏓 PING BOT\n• Status: Online\n• Uptime: %s\n• RAM Used: %s\n• CPU Load: %s\n• Speed: %s",
		profiling.FormatUptime(b.stats.Uptime()), ram, load, speed)
}

func (b *Bot) help(context.Context, command.Args) effectors.Result {
	var sb strings.Builder
	sb.WriteString(helpHeader)
	for _, spec := range b.private.Specs() {
		sb.WriteString("\n")
		sb.WriteString(spec.Usage)
		if spec.Help != "" {
			sb.WriteString("   ")
			sb.WriteString(spec.Help)
		}
	}
	return effectors.OK("%s", sb.String())
}

func (b *Bot) status(ctx context.Context, _ command.Args) effectors.Result {
	connected := "no"
	if b.session.Connected() {
		connected = "yes"
	}
	count := 0
	if groups, err := b.effector.Groups(ctx); err == nil {
		count = len(groups)
	}
	return effectors.OK("🤖 Bot Status\nConnected: %s\nGroups joined: %d\nLogs file: %s",
		connected, count, b.events.Name())
}

func (b *Bot) groups(p *phrasebook) Handler {
	return func(ctx context.Context, _ command.Args) effectors.Result {
		groups, err := b.effector.Groups(ctx)
		if err != nil {
			return effectors.Fail(err, "%s", p.groupsFailed(err))
		}
		return effectors.OK("%s", p.groupsList(groups))
	}
}

func (b *Bot) tagAll(p *phrasebook) Handler {
	return func(ctx context.Context, args command.Args) effectors.Result {
		groupID := args.Get("group")
		g, err := b.effector.TagAll(ctx, groupID, args.Get("message"))
		if err != nil {
			return effectors.Fail(err, "%s", p.tagAllFailed(err))
		}
		return effectors.OK("%s", p.tagAllDone(groupID, g))
	}
}

func (b *Bot) mention(p *phrasebook) Handler {
	return func(ctx context.Context, args command.Args) effectors.Result {
		groupID, phone := args.Get("group"), args.Get("phone")
		if err := b.effector.HiddenMention(ctx, groupID, phone, args.Get("message")); err != nil {
			return effectors.Fail(err, "%s", p.mentionFailed(err))
		}
		return effectors.OK("%s", p.mentionDone(groupID, phone, types.NormalizeParticipant(phone)))
	}
}

func (b *Bot) sendFile(p *phrasebook) Handler {
	return func(ctx context.Context, args command.Args) effectors.Result {
		chatID, path := args.Get("group"), args.Get("path")
		if err := b.effector.SendFile(ctx, chatID, path, args.Get("caption")); err != nil {
			return fileFailure(p, path, err, p.fileFailed)
		}
		return effectors.OK("%s", p.fileDone(chatID, path))
	}
}

func (b *Bot) sendFileTagAll(p *phrasebook) Handler {
	return func(ctx context.Context, args command.Args) effectors.Result {
		groupID, path := args.Get("group"), args.Get("path")
		g, err := b.effector.SendFileTagAll(ctx, groupID, path, args.Get("caption"))
		if err != nil {
			return fileFailure(p, path, err, p.fileTagFailed)
		}
		return effectors.OK("%s", p.fileTagDone(groupID, g))
	}
}

func fileFailure(p *phrasebook, path string, err error, failed func(error) string) effectors.Result {
	if errors.Is(err, effectors.ErrFileNotFound) {
		return effectors.Fail(err, "%s", p.fileMissing(path))
	}
	return effectors.Fail(err, "%s", failed(err))
}

func (b *Bot) reply(p *phrasebook) Handler {
	return func(ctx context.Context, args command.Args) effectors.Result {
		chatID := args.Get("chat")
		ref, ok := b.tracker.Get(chatID)
		if !ok {
			return effectors.Fail(effectors.NewError(effectors.KindNotFound, "reply", nil), "%s", p.noReplyRef(chatID))
		}
		g, err := b.effector.Reply(ctx, ref, args.Get("message"))
		if err != nil {
			return effectors.Fail(err, "%s", p.replyFailed(err))
		}
		return effectors.OK("%s", p.replyDone(chatID, g))
	}
}

func (b *Bot) logTail(_ context.Context, args command.Args) effectors.Result {
	if args.Get("which") != "last" {
		return effectors.Fail(effectors.NewError(effectors.KindUnknown, "log", nil), "%s", privatePhrases.unknown)
	}
	lines, err := b.events.Recent(RecentLogLines)
	if err != nil {
		return effectors.Fail(effectors.NewError(effectors.KindResource, "log last", err), "❌ Gagal membaca logs.")
	}
	body := strings.Join(lines, "\n")
	if body == "" {
		body = "(logs kosong)"
	}
	return effectors.OK("📄 Last 10 logs:\n%s", body)
}
