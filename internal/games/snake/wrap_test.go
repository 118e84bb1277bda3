package snake

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

func TestPlaceOnCenter(t *testing.T) {
	tests := []struct {
		dir  core.Direction
		body [][2]int
	}{
		{core.DirRight, [][2]int{{9, 4}, {8, 4}, {7, 4}, {6, 4}}},
		{core.DirLeft, [][2]int{{9, 4}, {10, 4}, {11, 4}, {12, 4}}},
		{core.DirUp, [][2]int{{9, 4}, {9, 5}, {9, 6}, {9, 7}}},
		{core.DirDown, [][2]int{{9, 4}, {9, 3}, {9, 2}, {9, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			grid := newGrid(t, 20, 10)
			s := placed(t, grid, tc.dir, 3)

			if s.Len() != 4 {
				t.Fatalf("Len() = %d, expected 4", s.Len())
			}
			if s.State() != StateActive {
				t.Errorf("State() = %v, expected active", s.State())
			}
			for i, idx := range s.Body() {
				x, y := grid.Position(idx)
				if x != tc.body[i][0] || y != tc.body[i][1] {
					t.Errorf("segment %d at (%d, %d), expected %v", i, x, y, tc.body[i])
				}
			}
			if got := grid.CountOfType(core.TileSnake); got != 4 {
				t.Errorf("snake tiles = %d, expected 4", got)
			}
		})
	}
}

func TestPlaceInvalidTail(t *testing.T) {
	grid := newGrid(t, 10, 10)
	s := NewWraparound(core.DirRight)

	err := s.Place(grid, 0)
	if !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Place(0) error = %v, expected ErrInvalidState", err)
	}
	if s.State() != StateUnplaced {
		t.Errorf("State() = %v, expected unplaced", s.State())
	}
}

func TestPlaceDoesNotWrap(t *testing.T) {
	grid := newGrid(t, 3, 3)
	s := NewWraparound(core.DirRight)

	// Center is (1,1); the second tail segment would need x = -1
	err := s.Place(grid, 2)
	if !errors.Is(err, core.ErrInvalidState) {
		t.Fatalf("Place(2) on 3x3 error = %v, expected ErrInvalidState", err)
	}
	if got := grid.CountOfType(core.TileSnake); got != 0 {
		t.Errorf("failed placement left %d snake tiles", got)
	}
	if s.State() != StateUnplaced {
		t.Errorf("State() = %v, expected unplaced", s.State())
	}
}

func TestPlaceTwice(t *testing.T) {
	grid := newGrid(t, 10, 10)
	s := placed(t, grid, core.DirRight, 2)

	if err := s.Place(grid, 2); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("second Place() error = %v, expected ErrInvalidState", err)
	}
}

func TestStraightLineKeepsLength(t *testing.T) {
	for _, dir := range core.Directions {
		t.Run(dir.String(), func(t *testing.T) {
			grid := newGrid(t, 20, 10)
			s := placed(t, grid, dir, 2)
			start := s.Len()

			// Long enough to cross every edge at least twice
			for i := range 60 {
				outcome, err := s.Step(grid)
				if err != nil {
					t.Fatalf("step %d: %v", i, err)
				}
				if outcome != OutcomeAdvanced {
					t.Fatalf("step %d outcome = %v, expected advanced", i, outcome)
				}
				if s.Len() != start {
					t.Fatalf("step %d: Len() = %d, expected %d", i, s.Len(), start)
				}
				if got := grid.CountOfType(core.TileSnake); got != start {
					t.Fatalf("step %d: snake tiles = %d, expected %d", i, got, start)
				}
			}
		})
	}
}

func TestGrowOnFruit(t *testing.T) {
	grid := newGrid(t, 20, 10)
	s := placed(t, grid, core.DirRight, 2) // head (9,4), tail end (7,4)
	grid.PutFruit(10, 4)

	outcome, err := s.Step(grid)
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if outcome != OutcomeGrew {
		t.Errorf("outcome = %v, expected grew", outcome)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", s.Len())
	}
	if got := grid.CountOfType(core.TileFruit); got != 0 {
		t.Errorf("fruit tiles = %d, expected 0", got)
	}
	if typeAt(grid, 7, 4) != core.TileSnake {
		t.Error("previous tail end was cleared on growth")
	}
	if x, y := headXY(grid, s); x != 10 || y != 4 {
		t.Errorf("head at (%d, %d), expected (10, 4)", x, y)
	}
}

func TestSelfCollisionLeavesGridIntact(t *testing.T) {
	grid := newGrid(t, 10, 10)
	s := placed(t, grid, core.DirRight, 4) // head (4,4) ... (0,4)

	moves := []core.Direction{core.DirDown, core.DirLeft}
	for _, d := range moves {
		if err := s.SetDirection(d); err != nil {
			t.Fatalf("SetDirection(%v) failed: %v", d, err)
		}
		if _, err := s.Step(grid); err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
	}
	if err := s.SetDirection(core.DirUp); err != nil {
		t.Fatalf("SetDirection(up) failed: %v", err)
	}

	before := grid.Tiles()
	bodyBefore := s.Body()

	_, err := s.Step(grid)
	if !errors.Is(err, core.ErrGameOver) {
		t.Fatalf("Step() error = %v, expected ErrGameOver", err)
	}
	if s.State() != StateTerminated {
		t.Errorf("State() = %v, expected terminated", s.State())
	}
	if !slices.Equal(before, grid.Tiles()) {
		t.Error("grid changed on collision")
	}
	if !slices.Equal(bodyBefore, s.Body()) {
		t.Error("body changed on collision")
	}

	if _, err := s.Step(grid); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Step() after termination error = %v, expected ErrInvalidState", err)
	}
}

func TestWrapRightOn3x3(t *testing.T) {
	grid := newGrid(t, 3, 3)
	s := placed(t, grid, core.DirRight, 1) // head (1,1), tail (0,1)

	if _, err := s.Step(grid); err != nil {
		t.Fatalf("first Step() failed: %v", err)
	}
	if x, y := headXY(grid, s); x != 2 || y != 1 {
		t.Fatalf("head at (%d, %d), expected (2, 1)", x, y)
	}

	if _, err := s.Step(grid); err != nil {
		t.Fatalf("wrapping Step() failed: %v", err)
	}
	if x, y := headXY(grid, s); x != 0 || y != 1 {
		t.Errorf("head at (%d, %d) after wrap, expected (0, 1)", x, y)
	}
}

func TestWrapEveryEdge(t *testing.T) {
	tests := []struct {
		dir   core.Direction
		heads [][2]int
	}{
		{core.DirUp, [][2]int{{2, 1}, {2, 0}, {2, 4}}},
		{core.DirDown, [][2]int{{2, 3}, {2, 4}, {2, 0}}},
		{core.DirLeft, [][2]int{{1, 2}, {0, 2}, {4, 2}}},
		{core.DirRight, [][2]int{{3, 2}, {4, 2}, {0, 2}}},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			grid := newGrid(t, 5, 5)
			s := placed(t, grid, tc.dir, 1)

			for i, want := range tc.heads {
				if _, err := s.Step(grid); err != nil {
					t.Fatalf("step %d: %v", i, err)
				}
				if x, y := headXY(grid, s); x != want[0] || y != want[1] {
					t.Errorf("step %d head at (%d, %d), expected %v", i, x, y, want)
				}
			}
		})
	}
}

func TestWrapOntoFruit(t *testing.T) {
	grid := newGrid(t, 3, 3)
	s := placed(t, grid, core.DirRight, 1)

	if _, err := s.Step(grid); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	grid.PutFruit(0, 1)

	outcome, err := s.Step(grid)
	if err != nil {
		t.Fatalf("wrapping Step() failed: %v", err)
	}
	if outcome != OutcomeGrew || s.Len() != 3 {
		t.Errorf("outcome = %v, Len() = %d, expected grew to 3", outcome, s.Len())
	}
}

func TestWrapOntoSelf(t *testing.T) {
	grid := newGrid(t, 4, 1)
	s := placed(t, grid, core.DirRight, 1) // head (1,0), tail (0,0)
	grid.PutFruit(2, 0)
	grid.PutFruit(3, 0)

	for i := range 2 {
		if _, err := s.Step(grid); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, expected the snake to fill the row", s.Len())
	}

	if _, err := s.Step(grid); !errors.Is(err, core.ErrGameOver) {
		t.Errorf("wrap into own tail error = %v, expected ErrGameOver", err)
	}
}

func TestSetDirection(t *testing.T) {
	for _, dir := range core.Directions {
		t.Run(dir.String(), func(t *testing.T) {
			s := NewWraparound(dir)

			err := s.SetDirection(dir.Opposite())
			if !errors.Is(err, core.ErrGameOver) {
				t.Errorf("SetDirection(%v) error = %v, expected ErrGameOver", dir.Opposite(), err)
			}
			if s.Direction() != dir {
				t.Errorf("Direction() = %v after rejected reversal, expected %v", s.Direction(), dir)
			}

			if err := s.SetDirection(dir); err != nil {
				t.Errorf("SetDirection(same) failed: %v", err)
			}
		})
	}

	s := NewWraparound(core.DirRight)
	if err := s.SetDirection(core.DirUp); err != nil {
		t.Fatalf("SetDirection(up) failed: %v", err)
	}
	if s.Direction() != core.DirUp {
		t.Errorf("Direction() = %v, expected up", s.Direction())
	}
	if err := s.SetDirection(core.Direction(42)); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("SetDirection(42) error = %v, expected ErrInvalidState", err)
	}
}

func TestStepBeforePlace(t *testing.T) {
	grid := newGrid(t, 5, 5)
	s := NewWraparound(core.DirRight)

	if _, err := s.Step(grid); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Step() before Place error = %v, expected ErrInvalidState", err)
	}
}
