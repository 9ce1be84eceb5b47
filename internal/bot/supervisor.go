package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/vthunder/wabot/internal/logging"
	"github.com/vthunder/wabot/internal/session"
)

const connectedNotice = "✅ Terhubung ke WhatsApp!"

// LoggedOutNotice tells the operator how to pair again after a logout
func LoggedOutNotice(sessionDir string) string {
	return fmt.Sprintf("🚪 Sesi kadaluarsa. Hapus folder \"%s\" lalu jalankan ulang untuk scan QR baru.", sessionDir)
}

// Run connects the session and follows its state stream until ctx is done.
// A recoverable close clears the last-message index and reconnects after
// the configured delay; a logout returns session.ErrLoggedOut. Reconnects run
// beside the receive loop so states emitted by Connect are always drained.
func (b *Bot) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	states := make(chan session.State, 8)
	done := make(chan struct{})

	// non-nil while a reconnect is in flight
	var retrying <-chan struct{}
	connected := false
	defer func() {
		cancel()
		close(done)
		if retrying != nil {
			<-retrying
		}
		if connected {
			b.session.Disconnect()
		}
	}()

	b.session.OnState(func(s session.State) {
		select {
		case states <- s:
		case <-done:
		}
	})

	if err := b.session.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	connected = true

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-retrying:
			retrying = nil
		case s := <-states:
			if s.Kind == session.StateClosed && s.Recoverable() && retrying != nil {
				logging.Debug("session", "Close while reconnecting: %s", s.Reason)
				continue
			}
			retry, err := b.handleState(ctx, s)
			if err != nil {
				return err
			}
			if retry {
				retrying = b.startReconnect(ctx)
			}
		}
	}
}

// handleState reports whether the session should be reconnected
func (b *Bot) handleState(ctx context.Context, s session.State) (bool, error) {
	switch s.Kind {
	case session.StateOpening:
		logging.Info("session", "Connecting...")
	case session.StateQR:
		if b.display != nil {
			b.display.QR(s.QR)
		} else {
			logging.Info("session", "QR code received, pairing required")
		}
	case session.StateOpen:
		b.notice(connectedNotice)
		b.announceGroups(ctx)
	case session.StateClosed:
		b.notice(fmt.Sprintf("❌ Koneksi terputus: %s", s.Reason))
		if !s.Recoverable() {
			b.notice(LoggedOutNotice(b.cfg.SessionDir))
			return false, session.ErrLoggedOut
		}
		b.notice("🔁 Mencoba menyambung ulang...")
		b.tracker.Reset()
		return true, nil
	}
	return false, nil
}

func (b *Bot) announceGroups(ctx context.Context) {
	groups, err := b.effector.Groups(ctx)
	if err != nil {
		b.notice(consolePhrases.groupsFailed(err))
		return
	}
	b.notice(consolePhrases.groupsList(groups))
}

func (b *Bot) startReconnect(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.reconnect(ctx)
	}()
	return done
}

// reconnect retries until a connect attempt is accepted or ctx is done
func (b *Bot) reconnect(ctx context.Context) {
	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(b.cfg.ReconnectDelay):
		}
		err := b.session.Connect(ctx)
		if err == nil {
			return
		}
		logging.Warn("session", "Reconnect attempt %d failed: %v", attempt, err)
	}
}
