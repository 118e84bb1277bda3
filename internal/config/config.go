// Package config provides YAML-based configuration loading, validation and
// hot reload for crowdsnake.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crowdsnake/internal/core"
	"github.com/vovakirdan/crowdsnake/internal/games/snake"
)

// Config contains all runtime configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Tick    TickConfig    `yaml:"tick"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig defines the board and the fruit spawner.
type GameConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Direction   string  `yaml:"direction"`
	TailSize    int     `yaml:"tail_size"`
	FruitLimit  int     `yaml:"fruit_limit"`
	FruitChance float64 `yaml:"fruit_chance"`
}

// TickConfig defines the driver cadence.
type TickConfig struct {
	Interval time.Duration `yaml:"interval"`
	Seed     int64         `yaml:"seed"`
}

// ServerConfig defines the network front ends. An empty address disables it.
type ServerConfig struct {
	HTTPAddr    string        `yaml:"http_addr"`
	SSHAddr     string        `yaml:"ssh_addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// StorageConfig defines where finished sessions are journaled.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := snake.DefaultOptions()
	return Config{
		Game: GameConfig{
			Width:       opts.Width,
			Height:      opts.Height,
			Direction:   opts.Direction.String(),
			TailSize:    opts.TailSize,
			FruitLimit:  opts.FruitLimit,
			FruitChance: opts.FruitChance,
		},
		Tick: TickConfig{
			Interval: 200 * time.Millisecond,
		},
		Server: ServerConfig{
			HTTPAddr:    ":3000",
			SSHAddr:     ":23234",
			HostKey:     ".ssh/crowdsnake_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			DBPath: "~/.crowdsnake/sessions.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GameOptions converts the game section into engine options.
func (c Config) GameOptions() (snake.Options, error) {
	dir, err := core.ParseDirection(c.Game.Direction)
	if err != nil {
		return snake.Options{}, fmt.Errorf("%w: game.direction: %v", core.ErrConfig, err)
	}
	return snake.Options{
		Width:       c.Game.Width,
		Height:      c.Game.Height,
		Direction:   dir,
		TailSize:    c.Game.TailSize,
		FruitLimit:  c.Game.FruitLimit,
		FruitChance: c.Game.FruitChance,
	}, nil
}

// LogLevel parses the configured level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: log.level: %v", core.ErrConfig, err)
	}
	return lvl, nil
}

// Validate reports the first invalid setting as a wrapped core.ErrConfig.
func (c Config) Validate() error {
	opts, err := c.GameOptions()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if c.Tick.Interval <= 0 {
		return fmt.Errorf("%w: tick.interval %s must be positive", core.ErrConfig, c.Tick.Interval)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("%w: server.idle_timeout %s must not be negative", core.ErrConfig, c.Server.IdleTimeout)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}
