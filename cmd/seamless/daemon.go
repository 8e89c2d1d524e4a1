package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/1broseidon/seamless/internal/daemon"
	"github.com/1broseidon/seamless/internal/ipc"
	"github.com/1broseidon/seamless/internal/logger"
	"github.com/1broseidon/seamless/internal/platform"
	"github.com/1broseidon/seamless/internal/seamless"
)

func newDaemonCmd() *cobra.Command {
	var (
		display  string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the tracking daemon",
		Long: `Connect to the X display, track every mapped top-level window and keep
the list of visible rectangles current. Unless ipc.enabled is false the
daemon answers "seamless status", "seamless rects" and "seamless rebuild"
on a unix socket.

SIGHUP forces a full rebuild of the window list.`,
		Example: `  # Track the display named by $DISPLAY
  seamless daemon

  # Track another display with debug logging
  seamless daemon --display :1 --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := res.Config
			if cmd.Flags().Changed("display") {
				cfg.Display = display
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.File); err != nil {
				return err
			}
			defer logger.Close()
			log := logger.WithComponent("daemon")
			if res.File != "" {
				log.Info().Str("config", res.File).Msg("configuration loaded")
			}

			tracker := seamless.New(
				func() (platform.WindowSystem, error) { return platform.OpenDisplay(cfg.Display) },
				seamless.WithLogger(logger.WithComponent("tracker")),
				seamless.WithMaxRects(cfg.MaxRects),
			)
			runner := daemon.NewRunner(daemon.Config{
				ReconcileInterval: cfg.ReconcileInterval,
				Logger:            log,
			}, tracker)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.IPC.Enabled {
				path, err := socketPath(cfg)
				if err != nil {
					return errors.Wrap(err, "failed to resolve IPC socket path")
				}
				server := ipc.NewServer(path, runner)
				if err := server.Start(); err != nil {
					return err
				}
				defer server.Stop()
			}

			go rebuildOnHangup(ctx, runner)

			return runner.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&display, "display", "", "X display to track (overrides config and $DISPLAY)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	return cmd
}

func rebuildOnHangup(ctx context.Context, runner *daemon.Runner) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	log := logger.WithComponent("daemon")
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			log.Info().Msg("received SIGHUP, rebuilding window list")
			runner.RequestRebuild()
		}
	}
}
