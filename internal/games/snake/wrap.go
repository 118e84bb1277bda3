package snake

import (
	"fmt"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

// Wraparound is a snake living on a torus: leaving one edge re-enters from the
// opposite edge on the same axis. Placement never wraps.
type Wraparound struct {
	body      []int // Tile indices, head at index 0
	direction core.Direction
	state     State
}

// NewWraparound creates an unplaced snake moving in the given direction.
func NewWraparound(direction core.Direction) *Wraparound {
	return &Wraparound{
		direction: direction,
		state:     StateUnplaced,
	}
}

// Place anchors the head on the grid center and lays tailSize segments in the
// direction opposite to movement. Nothing is written to the grid unless every
// segment fits.
func (s *Wraparound) Place(grid *core.Grid, tailSize int) error {
	if s.state != StateUnplaced {
		return fmt.Errorf("%w: snake already placed", core.ErrInvalidState)
	}
	if tailSize < 1 {
		return fmt.Errorf("%w: tail size %d must be at least 1", core.ErrInvalidState, tailSize)
	}

	cx, cy := grid.Center()
	head, ok := grid.TileAt(cx, cy)
	if !ok {
		return fmt.Errorf("%w: no center tile at (%d, %d)", core.ErrInvalidState, cx, cy)
	}

	body := make([]int, 0, tailSize+1)
	body = append(body, head.Index)

	grow := s.direction.Opposite()
	cur := head
	for range tailSize {
		next, ok := grid.Neighbor(cur, grow)
		if !ok {
			return fmt.Errorf("%w: %dx%d grid too small for tail of %d",
				core.ErrInvalidState, grid.Width(), grid.Height(), tailSize)
		}
		body = append(body, next.Index)
		cur = next
	}

	for _, i := range body {
		grid.SetType(i, core.TileSnake)
	}

	s.body = body
	s.state = StateActive
	return nil
}

// Step moves the head one tile. A collision with the body terminates the snake
// and leaves the grid exactly as it was before the call.
func (s *Wraparound) Step(grid *core.Grid) (Outcome, error) {
	if s.state != StateActive {
		return 0, fmt.Errorf("%w: step while %s", core.ErrInvalidState, s.state)
	}
	if len(s.body) == 0 {
		return 0, fmt.Errorf("%w: active snake has no body", core.ErrInvalidState)
	}

	head, ok := grid.Tile(s.body[0])
	if !ok {
		return 0, fmt.Errorf("%w: head index %d not on grid", core.ErrInvalidState, s.body[0])
	}

	next, ok := grid.Neighbor(head, s.direction)
	if !ok {
		var err error
		next, err = s.wrapTarget(grid, head)
		if err != nil {
			return 0, err
		}
	}

	switch next.Type {
	case core.TileSnake:
		s.state = StateTerminated
		x, y := grid.Position(next.Index)
		return 0, fmt.Errorf("%w: snake ran into itself at (%d, %d)", core.ErrGameOver, x, y)

	case core.TileFruit:
		grid.SetType(next.Index, core.TileSnake)
		s.pushHead(next.Index)
		return OutcomeGrew, nil

	case core.TileEmpty:
		tailEnd := s.body[len(s.body)-1]
		if _, ok := grid.Tile(tailEnd); !ok {
			return 0, fmt.Errorf("%w: tail index %d not on grid", core.ErrInvalidState, tailEnd)
		}
		grid.SetType(next.Index, core.TileSnake)
		s.pushHead(next.Index)
		s.body = s.body[:len(s.body)-1]
		grid.SetType(tailEnd, core.TileEmpty)
		return OutcomeAdvanced, nil

	default:
		return 0, fmt.Errorf("%w: unknown tile type %d", core.ErrInvalidState, next.Type)
	}
}

// wrapTarget returns the tile on the opposite edge along the movement axis,
// keeping the cross-axis coordinate.
func (s *Wraparound) wrapTarget(grid *core.Grid, head core.Tile) (core.Tile, error) {
	x, y := grid.Position(head.Index)

	switch s.direction {
	case core.DirUp:
		y = grid.Height() - 1
	case core.DirDown:
		y = 0
	case core.DirLeft:
		x = grid.Width() - 1
	case core.DirRight:
		x = 0
	default:
		return core.Tile{}, fmt.Errorf("%w: unknown direction %d", core.ErrInvalidState, s.direction)
	}

	t, ok := grid.TileAt(x, y)
	if !ok {
		return core.Tile{}, fmt.Errorf("%w: wrap target (%d, %d) not on grid", core.ErrInvalidState, x, y)
	}
	return t, nil
}

// pushHead prepends index to the body.
func (s *Wraparound) pushHead(index int) {
	s.body = append(s.body, 0)
	copy(s.body[1:], s.body)
	s.body[0] = index
}

// Direction returns the current movement direction.
func (s *Wraparound) Direction() core.Direction {
	return s.direction
}

// SetDirection changes direction. Turning back onto the neck is reported as a
// game over and leaves the snake untouched.
func (s *Wraparound) SetDirection(d core.Direction) error {
	if !d.Valid() {
		return fmt.Errorf("%w: unknown direction %d", core.ErrInvalidState, d)
	}
	if s.direction.IsOppositeTo(d) {
		return fmt.Errorf("%w: reversal from %s to %s", core.ErrGameOver, s.direction, d)
	}
	s.direction = d
	return nil
}

// Len returns the body length including the head.
func (s *Wraparound) Len() int {
	return len(s.body)
}

// Body returns a copy of the body indices, head first.
func (s *Wraparound) Body() []int {
	out := make([]int, len(s.body))
	copy(out, s.body)
	return out
}

// State returns the lifecycle state.
func (s *Wraparound) State() State {
	return s.state
}

var _ Behavior = (*Wraparound)(nil)
