package snake

import "github.com/vovakirdan/crowdsnake/internal/core"

// Snapshot captures the observable game state for determinism tests and for
// the status line shown to viewers.
type Snapshot struct {
	Tick       uint64
	Length     int
	HeadX      int
	HeadY      int
	Dir        core.Direction
	FruitCount int
	FruitEaten int
	State      State
	Over       bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	headX, headY := 0, 0
	if body := g.snake.Body(); len(body) > 0 {
		headX, headY = g.grid.Position(body[0])
	}

	return Snapshot{
		Tick:       g.tick,
		Length:     g.snake.Len(),
		HeadX:      headX,
		HeadY:      headY,
		Dir:        g.snake.Direction(),
		FruitCount: g.grid.CountOfType(core.TileFruit),
		FruitEaten: g.fruitEaten,
		State:      g.snake.State(),
		Over:       g.over,
	}
}
