package snake

import (
	"errors"
	"testing"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

func TestNewRandomLimited(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		chance  float64
		wantErr bool
	}{
		{"minimum chance", 5, 0.01, false},
		{"maximum chance", 5, 1.0, false},
		{"typical", 5, 0.1, false},
		{"zero limit", 0, 0.5, false},
		{"chance zero", 5, 0.0, true},
		{"chance below minimum", 5, 0.009, true},
		{"chance above maximum", 5, 1.01, true},
		{"negative chance", 5, -1, true},
		{"negative limit", -1, 0.5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRandomLimited(tc.limit, tc.chance)
			if tc.wantErr {
				if !errors.Is(err, core.ErrConfig) {
					t.Errorf("NewRandomLimited(%d, %v) error = %v, expected ErrConfig", tc.limit, tc.chance, err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewRandomLimited(%d, %v) unexpected error: %v", tc.limit, tc.chance, err)
			}
		})
	}
}

func TestSpawnRespectsLimit(t *testing.T) {
	grid := newGrid(t, 10, 10)
	f, err := NewRandomLimited(3, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	rng := seeded(7)

	for i := range 500 {
		if err := f.Spawn(grid, rng); err != nil {
			t.Fatalf("Spawn() #%d failed: %v", i, err)
		}
		if got := grid.CountOfType(core.TileFruit); got > 3 {
			t.Fatalf("after %d spawns fruit = %d, expected at most 3", i+1, got)
		}
	}
	if got := grid.CountOfType(core.TileFruit); got != 3 {
		t.Errorf("fruit = %d, expected limit of 3 reached", got)
	}
}

func TestSpawnChanceGate(t *testing.T) {
	tests := []struct {
		name   string
		chance float64
		draw   float64 // Raw Float64 value
		spawns bool
	}{
		{"draw above chance", 0.5, 0.99, false},
		{"draw at minimum, chance at minimum", 0.01, 0.0, true},
		{"certain", 1.0, 0.999, true},
		{"just below chance", 0.5, 0.4, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grid := newGrid(t, 4, 4)
			f, err := NewRandomLimited(5, tc.chance)
			if err != nil {
				t.Fatal(err)
			}

			if err := f.Spawn(grid, &stubRand{floats: []float64{tc.draw}}); err != nil {
				t.Fatalf("Spawn() failed: %v", err)
			}
			got := grid.CountOfType(core.TileFruit) == 1
			if got != tc.spawns {
				t.Errorf("spawned = %v, expected %v", got, tc.spawns)
			}
		})
	}
}

func TestSpawnPicksEmptyTile(t *testing.T) {
	grid := newGrid(t, 3, 1)
	grid.SetType(0, core.TileSnake)
	grid.SetType(1, core.TileSnake)

	f, err := NewRandomLimited(1, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	// Intn yields 0: the first empty tile, which is grid index 2
	if err := f.Spawn(grid, &stubRand{ints: []int{0}}); err != nil {
		t.Fatalf("Spawn() failed: %v", err)
	}

	want := []core.TileType{core.TileSnake, core.TileSnake, core.TileFruit}
	for i, w := range want {
		tile, _ := grid.Tile(i)
		if tile.Type != w {
			t.Errorf("tile %d = %v, expected %v", i, tile.Type, w)
		}
	}
}

func TestSpawnNoEmptyTiles(t *testing.T) {
	grid := newGrid(t, 2, 2)
	for i := range grid.Size() {
		grid.SetType(i, core.TileSnake)
	}
	f, err := NewRandomLimited(5, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.Spawn(grid, seeded(1)); err != nil {
		t.Errorf("Spawn() on a full grid failed: %v", err)
	}
	if got := grid.CountOfType(core.TileSnake); got != 4 {
		t.Errorf("snake tiles = %d, expected 4", got)
	}
}

func TestSpawnZeroLimit(t *testing.T) {
	grid := newGrid(t, 5, 5)
	f, err := NewRandomLimited(0, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	rng := seeded(3)

	for range 50 {
		if err := f.Spawn(grid, rng); err != nil {
			t.Fatal(err)
		}
	}
	if got := grid.CountOfType(core.TileFruit); got != 0 {
		t.Errorf("fruit = %d, expected none with zero limit", got)
	}
}
