// Package driver runs the authoritative tick loop: it drains the vote queue,
// steps the game, renders the frame and publishes it to viewers. It owns the
// game exclusively; every other goroutine talks to it through the queue or
// reads the last published frame.
package driver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crowdsnake/internal/core"
	"github.com/vovakirdan/crowdsnake/internal/games/snake"
	"github.com/vovakirdan/crowdsnake/internal/multiplayer"
)

// Options configures a driver.
type Options struct {
	Game          snake.Options
	Interval      time.Duration
	Seed          int64 // 0 picks a time-based seed
	QueueCapacity int
}

// Publisher receives every event the driver emits.
type Publisher interface {
	Publish(evt multiplayer.Event)
}

// Frame is the last settled render together with its state.
type Frame struct {
	SessionID multiplayer.SessionID
	Text      string
	Snapshot  snake.Snapshot
}

// Driver owns one game at a time and restarts it after every game over.
type Driver struct {
	logger   *log.Logger
	queue    *InputQueue
	pub      Publisher
	saver    multiplayer.SessionResultSaver
	interval time.Duration
	rng      *rand.Rand
	now      func() time.Time

	optsMu sync.Mutex
	opts   snake.Options // Applied at the next session start

	frameMu sync.RWMutex
	frame   Frame

	// Touched only by the goroutine running Run
	game      *snake.Game
	sessionID multiplayer.SessionID
	started   time.Time
	gameOpts  snake.Options
}

// New validates opts and creates a driver. pub and saver may be nil.
func New(opts Options, logger *log.Logger, pub Publisher, saver multiplayer.SessionResultSaver) (*Driver, error) {
	if err := opts.Game.Validate(); err != nil {
		return nil, err
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("%w: tick interval %s must be positive", core.ErrConfig, opts.Interval)
	}
	if logger == nil {
		logger = log.Default()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Driver{
		logger:   logger,
		queue:    NewInputQueue(opts.QueueCapacity),
		pub:      pub,
		saver:    saver,
		interval: opts.Interval,
		rng:      rand.New(rand.NewSource(seed)),
		now:      time.Now,
		opts:     opts.Game,
	}, nil
}

// Submit queues a vote. Safe for concurrent use.
func (d *Driver) Submit(dir core.Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("driver: unknown direction %d", dir)
	}
	if !d.queue.Push(dir) {
		d.logger.Debug("vote dropped, queue full", "direction", dir)
	}
	return nil
}

// Frame returns the last published frame. Safe for concurrent use.
func (d *Driver) Frame() Frame {
	d.frameMu.RLock()
	defer d.frameMu.RUnlock()
	return d.frame
}

// Reconfigure validates new game options; they take effect when the next
// session starts. A running session keeps its options.
func (d *Driver) Reconfigure(opts snake.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	// Build a throwaway session so options the snake cannot be placed with
	// are refused now instead of failing the next restart
	if _, err := snake.NewGame(opts, rand.New(rand.NewSource(1))); err != nil {
		return fmt.Errorf("%w: game cannot start: %v", core.ErrConfig, err)
	}
	d.optsMu.Lock()
	d.opts = opts
	d.optsMu.Unlock()
	d.logger.Info("game options updated for next session",
		"width", opts.Width, "height", opts.Height, "fruit_limit", opts.FruitLimit)
	return nil
}

// Run ticks until ctx is done or the engine reports an unrecoverable error.
// Cancellation is observed between ticks only. A clean stop returns nil.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.startSession(); err != nil {
		d.logger.Error("cannot start session", "err", err)
		d.publish(multiplayer.ShutdownEvent{Err: err})
		return err
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.endSession(multiplayer.EndReasonShutdown, nil)
			d.publish(multiplayer.ShutdownEvent{})
			return nil

		case <-ticker.C:
			if err := d.step(); err != nil {
				d.logger.Error("driver stopped", "session", d.sessionID, "err", err)
				d.endSession(multiplayer.EndReasonFailure, err)
				d.publish(multiplayer.ShutdownEvent{Err: err})
				return err
			}
		}
	}
}

// step runs one tick: drain, vote, advance, render, publish.
func (d *Driver) step() error {
	inputs := d.queue.Drain()

	if err := d.game.ApplyPendingMoves(inputs); err != nil {
		return d.handleStepError(err)
	}
	if err := d.game.Tick(); err != nil {
		return d.handleStepError(err)
	}
	return d.publishFrame()
}

// handleStepError restarts the session on game over and passes anything else up.
func (d *Driver) handleStepError(err error) error {
	if !errors.Is(err, core.ErrGameOver) {
		return err
	}

	d.logger.Info("game over", "session", d.sessionID,
		"length", d.game.Snake().Len(), "ticks", d.game.Ticks(), "reason", err)
	d.endSession(multiplayer.EndReasonGameOver, err)
	return d.startSession()
}

func (d *Driver) startSession() error {
	d.optsMu.Lock()
	opts := d.opts
	d.optsMu.Unlock()

	game, err := snake.NewGame(opts, d.rng)
	if err != nil {
		return fmt.Errorf("driver: new session: %w", err)
	}

	// Votes cast for the previous snake do not carry over
	if stale := d.queue.Drain(); len(stale) > 0 {
		d.logger.Debug("discarded stale votes", "count", len(stale))
	}

	d.game = game
	d.gameOpts = opts
	d.sessionID = multiplayer.NewSessionID()
	d.started = d.now()

	d.logger.Info("session started", "session", d.sessionID,
		"width", opts.Width, "height", opts.Height, "direction", opts.Direction)
	d.publish(multiplayer.SessionStartedEvent{
		SessionID: d.sessionID,
		Width:     opts.Width,
		Height:    opts.Height,
	})
	return d.publishFrame()
}

// endSession publishes and journals the current session once. The game is
// released afterwards, so a failed restart cannot end it a second time.
func (d *Driver) endSession(reason multiplayer.EndReason, cause error) {
	if d.game == nil {
		return
	}
	snap := d.game.Snapshot()
	d.game = nil

	d.publish(multiplayer.SessionEndedEvent{
		SessionID:  d.sessionID,
		Reason:     reason,
		Ticks:      snap.Tick,
		Length:     snap.Length,
		FruitEaten: snap.FruitEaten,
	})

	if d.saver == nil {
		return
	}
	data := multiplayer.SessionResultData{
		SessionID:  d.sessionID,
		Width:      d.gameOpts.Width,
		Height:     d.gameOpts.Height,
		Ticks:      snap.Tick,
		Length:     snap.Length,
		FruitEaten: snap.FruitEaten,
		EndReason:  reason,
		StartedAt:  d.started,
		EndedAt:    d.now(),
	}
	if cause != nil {
		data.Detail = cause.Error()
	}
	if err := d.saver.SaveSessionResult(data); err != nil {
		d.logger.Warn("cannot journal session", "session", d.sessionID, "err", err)
	}
}

func (d *Driver) publishFrame() error {
	text, err := d.game.Render()
	if err != nil {
		return err
	}
	snap := d.game.Snapshot()

	d.frameMu.Lock()
	d.frame = Frame{SessionID: d.sessionID, Text: text, Snapshot: snap}
	d.frameMu.Unlock()

	d.publish(multiplayer.FrameEvent{
		SessionID:  d.sessionID,
		Tick:       snap.Tick,
		Frame:      text,
		Length:     snap.Length,
		FruitEaten: snap.FruitEaten,
		Direction:  snap.Dir.String(),
	})
	return nil
}

func (d *Driver) publish(evt multiplayer.Event) {
	if d.pub != nil {
		d.pub.Publish(evt)
	}
}
