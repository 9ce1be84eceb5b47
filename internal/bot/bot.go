// Package bot wires the session, the event pipeline and both command
// transports around one explicitly owned Bot value.
package bot

import (
	"context"
	"os"
	"time"

	"github.com/vthunder/wabot/internal/activity"
	"github.com/vthunder/wabot/internal/command"
	"github.com/vthunder/wabot/internal/effectors"
	"github.com/vthunder/wabot/internal/logging"
	"github.com/vthunder/wabot/internal/memory"
	"github.com/vthunder/wabot/internal/profiling"
	"github.com/vthunder/wabot/internal/senses"
	"github.com/vthunder/wabot/internal/session"
	"github.com/vthunder/wabot/internal/types"
)

// DefaultReconnectDelay is the pause before reconnecting a dropped session
const DefaultReconnectDelay = 3 * time.Second

// Config holds bot settings
type Config struct {
	OwnerID        string // trusted principal, a user JID
	SessionDir     string // credential store, named in the logout instructions
	ReconnectDelay time.Duration
}

// Display shows operator-facing output on the local terminal
type Display interface {
	Inbound(evt types.InboundEvent, text, groupSubject string)
	QR(code string)
	Notice(text string)
}

// HostStats provides the figures reported by ping
type HostStats interface {
	Uptime() time.Duration
	RSS() (uint64, error)
	Load1() (float64, error)
}

// Bot owns all per-process state: the session, the last-message index,
// the event log and the two command catalogues.
type Bot struct {
	cfg      Config
	session  session.Session
	effector *effectors.Effector
	tracker  *memory.LastMessages
	events   *activity.Log
	owner    *senses.OwnerSense
	stats    HostStats
	timings  *profiling.Timings
	display  Display
	quit     func(code int)

	private *Catalogue
	console *Catalogue
}

// New creates a bot and subscribes it to the session's inbound events
func New(cfg Config, s session.Session, events *activity.Log) *Bot {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	b := &Bot{
		cfg:      cfg,
		session:  s,
		effector: effectors.New(s),
		tracker:  memory.NewLastMessages(),
		events:   events,
		stats:    profiling.NewStats(),
		quit:     os.Exit,
	}
	b.effector.SetOnSend(func(to string, content types.Content) {
		logging.Debug("bot", "Sent %s to %s (%d mentions)", content.Kind, to, len(content.Mentions))
	})
	b.owner = senses.NewOwnerSense(cfg.OwnerID,
		func(ctx context.Context, cmd command.Command) effectors.Result {
			return b.Execute(ctx, TransportPrivate, cmd)
		},
		func(ctx context.Context, text string) error {
			return b.effector.Text(ctx, cfg.OwnerID, text)
		},
	)
	b.private = b.privateCatalogue()
	b.console = b.consoleCatalogue()

	s.OnEvent(b.HandleEvent)
	return b
}

// SetDisplay sets where operator-facing output goes (nil logs it instead)
func (b *Bot) SetDisplay(d Display) {
	b.display = d
}

// SetStats replaces the ping statistics source
func (b *Bot) SetStats(s HostStats) {
	b.stats = s
}

// SetTimings enables the per-command timing log
func (b *Bot) SetTimings(t *profiling.Timings) {
	b.timings = t
}

// SetQuit replaces the function the console exit command calls
func (b *Bot) SetQuit(quit func(code int)) {
	b.quit = quit
}

// Owner returns the private-chat front end; its Run loop must be started
func (b *Bot) Owner() *senses.OwnerSense {
	return b.owner
}

// Tracker returns the last-message index
func (b *Bot) Tracker() *memory.LastMessages {
	return b.tracker
}

// Execute runs a parsed command in the vocabulary of transport t
func (b *Bot) Execute(ctx context.Context, t Transport, cmd command.Command) effectors.Result {
	done := b.timings.Start(string(t), cmd.Name)

	var res effectors.Result
	switch t {
	case TransportConsole:
		res = b.console.Execute(ctx, cmd)
	default:
		res = b.private.Execute(ctx, cmd)
	}

	outcome := "ok"
	if res.Failed() {
		outcome = "error"
		if k := res.Kind(); k != "" {
			outcome = string(k)
		}
	}
	done(outcome)
	return res
}

// HandleEvent is the inbound pipeline: normalize, remember, log, show, and
// hand owner commands to the private front end.
func (b *Bot) HandleEvent(evt types.InboundEvent) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("bot", "Inbound handler panicked: %v", r)
		}
	}()

	if evt.FromMe {
		return
	}

	text := senses.Normalize(evt.Payload)
	b.tracker.Record(evt.ChatID, evt.Ref)

	if err := b.events.LogInput(evt.SenderID, evt.ChatID, text); err != nil {
		logging.Warn("bot", "Failed to append to %s: %v", b.events.Path(), err)
	}

	b.show(evt, text)
	b.owner.Handle(evt, text)
}

func (b *Bot) show(evt types.InboundEvent, text string) {
	if b.display == nil {
		logging.Debug("bot", "Inbound %s from %s: %s", evt.ChatID, evt.SenderID, logging.Truncate(text, 80))
		return
	}
	subject := ""
	if evt.IsGroup() {
		// best effort; the chat id is shown if the lookup fails
		if g, err := b.session.FetchGroup(context.Background(), evt.ChatID); err == nil {
			subject = g.Subject
		}
	}
	b.display.Inbound(evt, text, subject)
}

func (b *Bot) notice(text string) {
	if b.display == nil {
		logging.Info("bot", "%s", text)
		return
	}
	b.display.Notice(text)
}
