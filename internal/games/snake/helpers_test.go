package snake

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

// stubRand replays fixed values; when exhausted it returns zero.
type stubRand struct {
	ints   []int
	floats []float64
}

func (s *stubRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func (s *stubRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func newGrid(t *testing.T, w, h int) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) failed: %v", w, h, err)
	}
	return g
}

func placed(t *testing.T, grid *core.Grid, dir core.Direction, tail int) *Wraparound {
	t.Helper()
	s := NewWraparound(dir)
	if err := s.Place(grid, tail); err != nil {
		t.Fatalf("Place(%d) failed: %v", tail, err)
	}
	return s
}

func headXY(grid *core.Grid, s Behavior) (int, int) {
	return grid.Position(s.Body()[0])
}

func typeAt(grid *core.Grid, x, y int) core.TileType {
	tile, _ := grid.TileAt(x, y)
	return tile.Type
}
