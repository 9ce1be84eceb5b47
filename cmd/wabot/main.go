package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vthunder/wabot/internal/activity"
	"github.com/vthunder/wabot/internal/bot"
	"github.com/vthunder/wabot/internal/command"
	"github.com/vthunder/wabot/internal/config"
	"github.com/vthunder/wabot/internal/console"
	"github.com/vthunder/wabot/internal/effectors"
	"github.com/vthunder/wabot/internal/logging"
	"github.com/vthunder/wabot/internal/profiling"
	"github.com/vthunder/wabot/internal/session/whatsapp"
)

type flags struct {
	config.Options
	noConsole bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "wabot",
		Short:        "Owner-controlled WhatsApp bot",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.EnvFile, "env-file", "", "Load environment from this file instead of .env")
	cmd.Flags().StringVar(&f.ConfigFile, "config", "", "YAML config file (default wabot.yaml if present)")
	cmd.Flags().StringVar(&f.Owner, "owner", "", "Owner number or JID (overrides OWNER_JID)")
	cmd.Flags().StringVar(&f.SessionDir, "session-dir", "", "Credential store directory (overrides WABOT_SESSION_DIR)")
	cmd.Flags().StringVar(&f.LogFile, "log-file", "", "Inbound message log (overrides WABOT_LOG_FILE)")
	cmd.Flags().BoolVar(&f.noConsole, "no-console", false, "Do not read commands from stdin")
	return cmd
}

func run(ctx context.Context, f flags) error {
	log.Println("wabot - owner-controlled WhatsApp bot")

	cfg, err := config.Load(f.Options)
	if err != nil {
		log.Printf("[config] %v", err)
		return err
	}
	logging.SetDebug(cfg.Debug)

	events := activity.New(cfg.LogFile)
	if err := events.Ensure(); err != nil {
		logging.Warn("main", "Cannot create %s: %v", cfg.LogFile, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := whatsapp.Open(ctx, whatsapp.Options{
		SessionDir: cfg.SessionDir,
		DeviceName: cfg.DeviceName,
	})
	if err != nil {
		log.Printf("[main] %v", err)
		return err
	}

	display := console.NewDisplay(os.Stdout)
	b := bot.New(bot.Config{
		OwnerID:        cfg.OwnerJID,
		SessionDir:     cfg.SessionDir,
		ReconnectDelay: cfg.ReconnectDelay,
	}, client, events)
	b.SetDisplay(display)
	var timings *profiling.Timings
	if cfg.ProfileLog != "" {
		timings, err = profiling.OpenTimings(cfg.ProfileLog)
		if err != nil {
			logging.Warn("main", "Command timings disabled: %v", err)
		} else {
			defer timings.Close()
			b.SetTimings(timings)
		}
	}
	b.SetQuit(exitFunc(os.Exit, func() {
		logging.Info("main", "Exiting")
		client.Disconnect()
	}, func() {
		if err := timings.Close(); err != nil {
			logging.Warn("main", "Close timings: %v", err)
		}
	}, stop))

	logging.Info("main", "Owner: %s, session: %s, log: %s", cfg.OwnerJID, cfg.SessionDir, events.Path())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.Run(gctx) })
	g.Go(func() error { return b.Owner().Run(gctx) })
	if !f.noConsole {
		display.Banner(b.ConsoleGuide())
		reader := console.NewReader(os.Stdin, display, func(ctx context.Context, cmd command.Command) effectors.Result {
			return b.Execute(ctx, bot.TransportConsole, cmd)
		})
		g.Go(func() error { return reader.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		log.Printf("[main] %v", err)
		return err
	}
	logging.Info("main", "Shutdown complete")
	return nil
}

// exitFunc returns a quit hook that runs cleanup in order before exit.
// os.Exit skips deferred calls.
func exitFunc(exit func(int), cleanup ...func()) func(int) {
	return func(code int) {
		for _, fn := range cleanup {
			fn()
		}
		exit(code)
	}
}
