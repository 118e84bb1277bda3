// Package snake implements the crowd-controlled snake: the wraparound snake
// state machine, the fruit spawner, the vote aggregator and the Game that
// composes them over a core.Grid.
//
// A Game is not safe for concurrent use. Exactly one goroutine (the tick
// driver) may call its mutating methods; renders read the grid from that same
// goroutine so every frame is a settled snapshot.
package snake

import (
	"errors"
	"fmt"
	"io"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

// Options configures a new game.
type Options struct {
	Width       int
	Height      int
	Direction   core.Direction
	TailSize    int // Segments behind the head
	FruitLimit  int
	FruitChance float64
}

// DefaultOptions returns the classic 40x20 setup.
func DefaultOptions() Options {
	return Options{
		Width:       40,
		Height:      20,
		Direction:   core.DirRight,
		TailSize:    2,
		FruitLimit:  5,
		FruitChance: 0.1,
	}
}

// Validate checks options that can be rejected before touching a grid.
func (o Options) Validate() error {
	if o.Width < 1 || o.Height < 1 {
		return fmt.Errorf("%w: grid size %dx%d must be at least 1x1", core.ErrConfig, o.Width, o.Height)
	}
	if !o.Direction.Valid() {
		return fmt.Errorf("%w: unknown initial direction %d", core.ErrConfig, o.Direction)
	}
	if o.TailSize < 1 {
		return fmt.Errorf("%w: tail size %d must be at least 1", core.ErrConfig, o.TailSize)
	}
	if o.FruitLimit < 0 {
		return fmt.Errorf("%w: fruit limit %d must not be negative", core.ErrConfig, o.FruitLimit)
	}
	if o.FruitChance < MinFruitChance || o.FruitChance > MaxFruitChance {
		return fmt.Errorf("%w: fruit chance %.4f must be in range %.2f - %.2f",
			core.ErrConfig, o.FruitChance, MinFruitChance, MaxFruitChance)
	}
	return nil
}

// Game composes a grid, a snake, a fruit spawner and a renderer.
type Game struct {
	grid     *core.Grid
	snake    Behavior
	fruit    FruitSpawner
	renderer Renderer
	rng      core.Rand

	tick       uint64
	fruitEaten int
	over       bool
}

// New composes a game from its parts. The snake is not placed yet.
func New(grid *core.Grid, snake Behavior, fruit FruitSpawner, renderer Renderer, rng core.Rand) *Game {
	return &Game{
		grid:     grid,
		snake:    snake,
		fruit:    fruit,
		renderer: renderer,
		rng:      rng,
	}
}

// NewGame validates opts, builds a wraparound game and places the snake.
func NewGame(opts Options, rng core.Rand) (*Game, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	grid, err := core.NewGrid(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	fruit, err := NewRandomLimited(opts.FruitLimit, opts.FruitChance)
	if err != nil {
		return nil, err
	}

	g := New(grid, NewWraparound(opts.Direction), fruit, TextRenderer{}, rng)
	if err := g.PlaceSnake(opts.TailSize); err != nil {
		return nil, err
	}
	return g, nil
}

// PlaceSnake puts the snake on the grid.
func (g *Game) PlaceSnake(tailSize int) error {
	return g.snake.Place(g.grid, tailSize)
}

// SetDirection forwards to the snake. A reversal ends the game.
func (g *Game) SetDirection(d core.Direction) error {
	err := g.snake.SetDirection(d)
	if errors.Is(err, core.ErrGameOver) {
		g.over = true
	}
	return err
}

// ApplyPendingMoves runs the vote over inputs and applies its result, if any.
func (g *Game) ApplyPendingMoves(inputs []core.Direction) error {
	d, ok := Aggregate(inputs, g.snake.Direction(), g.rng)
	if !ok {
		return nil
	}
	return g.SetDirection(d)
}

// Tick performs one snake step followed by one fruit spawn attempt.
func (g *Game) Tick() error {
	if g.over {
		return fmt.Errorf("%w: session already ended", core.ErrGameOver)
	}

	outcome, err := g.snake.Step(g.grid)
	if err != nil {
		if errors.Is(err, core.ErrGameOver) {
			g.over = true
		}
		return err
	}

	g.tick++
	if outcome == OutcomeGrew {
		g.fruitEaten++
	}

	return g.fruit.Spawn(g.grid, g.rng)
}

// Render returns the current frame as a string.
func (g *Game) Render() (string, error) {
	return RenderString(g.renderer, g.grid)
}

// RenderTo writes the current frame to w.
func (g *Game) RenderTo(w io.Writer) error {
	return g.renderer.Render(w, g.grid)
}

// Grid exposes the board for read-only inspection.
func (g *Game) Grid() *core.Grid {
	return g.grid
}

// Snake exposes the snake for read-only inspection.
func (g *Game) Snake() Behavior {
	return g.snake
}

// Over reports whether the session has ended.
func (g *Game) Over() bool {
	return g.over
}

// Ticks returns the number of successful steps.
func (g *Game) Ticks() uint64 {
	return g.tick
}

// FruitEaten returns how many fruit the snake has eaten.
func (g *Game) FruitEaten() int {
	return g.fruitEaten
}
