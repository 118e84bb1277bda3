package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crowdsnake/internal/driver"
	"github.com/vovakirdan/crowdsnake/internal/multiplayer"
	"github.com/vovakirdan/crowdsnake/internal/platform/tui"
	"github.com/vovakirdan/crowdsnake/internal/platform/web"
	"github.com/vovakirdan/crowdsnake/internal/storage"
)

var (
	flagPlayHTTP string
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the game and watch it in this terminal",
	Long: `Run the shared snake locally. Your keys vote like any remote player.

Controls:
  Arrows/WASD  - Vote for a direction
  Tab          - Finished sessions
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Logs are discarded unless --log-file is set, the terminal belongs to the game.

Examples:
  crowdsnake play
  crowdsnake play --seed 42
  crowdsnake play --http :3000   # let others vote from a browser`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayHTTP, "http", "", "Also serve the HTTP front end on this address")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fatalf("%v", err)
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			fatalf("cannot open log file: %v", openErr)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, cfg, "crowdsnake")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open session storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("sessions will not be journaled", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	var saver multiplayer.SessionResultSaver
	var history tui.HistorySource
	if store != nil {
		saver = store
		history = store
	}

	opts, err := driverOptions(cfg)
	if err != nil {
		fatalf("%v", err)
	}

	hub := multiplayer.NewHub()
	drv, err := driver.New(opts, logger.WithPrefix("driver"), hub, saver)
	if err != nil {
		fatalf("%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	driverDone := make(chan error, 1)
	go func() {
		driverDone <- drv.Run(ctx)
	}()

	var httpSrv *web.Server
	if flagPlayHTTP != "" {
		httpSrv = web.NewServer(web.Config{Address: flagPlayHTTP}, drv, drv, hub, logger.WithPrefix("http"))
		go func() {
			if serveErr := httpSrv.ListenAndServe(); serveErr != nil {
				logger.Error("http front end stopped", "err", serveErr)
			}
		}()
	}

	runErr := tui.RunLocal(drv, hub, history, width, height)

	cancel()
	driverErr := <-driverDone
	if httpSrv != nil {
		if shutErr := httpSrv.Shutdown(context.Background()); shutErr != nil {
			logger.Warn("http shutdown", "err", shutErr)
		}
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatalf("%v", runErr)
	}
	if driverErr != nil {
		fatalf("game stopped: %v", driverErr)
	}
}
