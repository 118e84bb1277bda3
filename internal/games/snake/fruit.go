package snake

import (
	"fmt"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

// Chance bounds for RandomLimited.
const (
	MinFruitChance = 0.01
	MaxFruitChance = 1.0
)

// RandomLimited spawns at most one fruit per call with a fixed chance,
// keeping the number of fruit on the grid at or below a limit.
type RandomLimited struct {
	limit  int
	chance float64
}

// NewRandomLimited validates and creates a spawner.
func NewRandomLimited(limit int, chance float64) (*RandomLimited, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: fruit limit %d must not be negative", core.ErrConfig, limit)
	}
	if chance < MinFruitChance || chance > MaxFruitChance {
		return nil, fmt.Errorf("%w: fruit chance %.4f must be in range %.2f - %.2f",
			core.ErrConfig, chance, MinFruitChance, MaxFruitChance)
	}
	return &RandomLimited{limit: limit, chance: chance}, nil
}

// Limit returns the maximum number of fruit on the grid.
func (f *RandomLimited) Limit() int {
	return f.limit
}

// Chance returns the spawn probability per call.
func (f *RandomLimited) Chance() float64 {
	return f.chance
}

// Spawn draws the chance and, on success, turns one uniformly chosen empty
// tile into fruit.
func (f *RandomLimited) Spawn(grid *core.Grid, rng core.Rand) error {
	if grid.CountOfType(core.TileFruit) >= f.limit {
		return nil
	}

	// Draw in [0.01, 1.0)
	draw := MinFruitChance + rng.Float64()*(MaxFruitChance-MinFruitChance)
	if f.chance < draw {
		return nil
	}

	empty := grid.TilesOfType(core.TileEmpty)
	if len(empty) == 0 {
		return nil
	}

	// Index into the empty tiles, not the full grid
	target := empty[rng.Intn(len(empty))]
	if !grid.SetType(target.Index, core.TileFruit) {
		return fmt.Errorf("%w: fruit target %d not on grid", core.ErrInvalidState, target.Index)
	}
	return nil
}

var _ FruitSpawner = (*RandomLimited)(nil)
