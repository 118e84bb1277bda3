package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/crowdsnake/internal/config"
	"github.com/vovakirdan/crowdsnake/internal/driver"
	"github.com/vovakirdan/crowdsnake/internal/multiplayer"
	"github.com/vovakirdan/crowdsnake/internal/platform/tui"
	"github.com/vovakirdan/crowdsnake/internal/platform/web"
	"github.com/vovakirdan/crowdsnake/internal/storage"
)

var (
	flagHTTPAddr    string
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagWatch       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game with the HTTP and SSH front ends",
	Long: `Run the shared snake and accept votes from the web and over SSH.

HTTP endpoints:
  GET  /snake              - Page with the current frame
  GET  /snake/frame        - Current frame as plain text
  POST /snake/{direction}  - Vote: up/top, down/bottom, left, right
  GET  /snake/ws           - Websocket: frames out, direction words in

An empty address disables that front end.

With --watch the config file given by --config is reloaded when it
changes; new game settings apply when the next snake hatches.

Examples:
  crowdsnake serve                              # HTTP on :3000, SSH on :23234
  crowdsnake serve --http :8080 --ssh ""        # Web only
  crowdsnake serve --config ./snake.yaml --watch

Voters can connect with:
  ssh localhost -p 23234
  curl -X POST localhost:3000/snake/up`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP address (overrides config, empty in config disables)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH address (overrides config, empty in config disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key file (overrides config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "SSH idle timeout (overrides config)")
	serveCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config when it changes")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fatalf("%v", err)
	}
	flags := cmd.Flags()
	if flags.Changed("http") {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}
	if flags.Changed("ssh") {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}
	if flagWatch && flagConfig == "" {
		fatalf("--watch needs --config")
	}

	watchPath := ""
	if flagWatch {
		watchPath = flagConfig
	}

	logger := newLogger(os.Stderr, cfg, "crowdsnake")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = serve(ctx, cfg, watchPath, logger)
	stop()

	if err != nil {
		logger.Error("stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("bye")
}

// serve runs the driver and the configured front ends until ctx is done or
// one of them fails. Everything it opens is closed before it returns.
// An empty watchPath disables config hot reload.
func serve(ctx context.Context, cfg config.Config, watchPath string, logger *log.Logger) error {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("sessions will not be journaled", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts, err := driverOptions(cfg)
	if err != nil {
		return err
	}

	hub := multiplayer.NewHub()
	var saver multiplayer.SessionResultSaver
	var history tui.HistorySource
	if store != nil {
		saver = store
		history = store
	}

	drv, err := driver.New(opts, logger.WithPrefix("driver"), hub, saver)
	if err != nil {
		return err
	}

	var sshSrv *tui.SSHServer
	if cfg.Server.SSHAddr != "" {
		sshSrv, err = tui.NewSSHServer(tui.SSHServerConfig{
			Address:     cfg.Server.SSHAddr,
			HostKeyPath: cfg.Server.HostKey,
			IdleTimeout: cfg.Server.IdleTimeout,
			EventBuffer: 8,
		}, drv, hub, history, logger.WithPrefix("ssh"))
		if err != nil {
			return err
		}
	}

	var watcher *config.Watcher
	if watchPath != "" {
		watcher, err = config.NewWatcher(watchPath, logger.WithPrefix("config"))
		if err != nil {
			return err
		}
		defer watcher.Close()

		watcher.OnChange(func(_, newCfg config.Config) {
			game, optErr := newCfg.GameOptions()
			if optErr != nil {
				logger.Warn("ignoring reloaded game options", "err", optErr)
				return
			}
			if reErr := drv.Reconfigure(game); reErr != nil {
				logger.Warn("ignoring reloaded game options", "err", reErr)
			}
		})
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return drv.Run(ctx)
	})

	if cfg.Server.HTTPAddr != "" {
		httpSrv := web.NewServer(web.Config{Address: cfg.Server.HTTPAddr}, drv, drv, hub, logger.WithPrefix("http"))
		g.Go(httpSrv.ListenAndServe)
		g.Go(func() error {
			<-ctx.Done()
			return httpSrv.Shutdown(context.Background())
		})
	}

	if sshSrv != nil {
		g.Go(sshSrv.ListenAndServe)
		g.Go(func() error {
			<-ctx.Done()
			return sshSrv.Shutdown(context.Background())
		})
	}

	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	logger.Info("crowdsnake running", "http", cfg.Server.HTTPAddr, "ssh", cfg.Server.SSHAddr,
		"interval", cfg.Tick.Interval, "journal", store != nil)

	return g.Wait()
}
