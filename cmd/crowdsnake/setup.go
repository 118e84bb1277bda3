package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/crowdsnake/internal/config"
	"github.com/vovakirdan/crowdsnake/internal/driver"
)

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	applyOverrides(cmd, &cfg)
	return cfg, cfg.Validate()
}

// applyOverrides copies explicitly set global flags over cfg.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Tick.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, cfg config.Config, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := cfg.LogLevel(); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// driverOptions converts the config into driver options.
func driverOptions(cfg config.Config) (driver.Options, error) {
	game, err := cfg.GameOptions()
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		Game:     game,
		Interval: cfg.Tick.Interval,
		Seed:     cfg.Tick.Seed,
	}, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
