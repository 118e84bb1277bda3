package snake

import "github.com/vovakirdan/crowdsnake/internal/core"

// Behavior is the snake state machine: Unplaced -> Active -> Terminated.
// Implementations never own tiles; tile types live in the grid and the body
// is a list of indices into it.
type Behavior interface {
	// Place anchors the snake on the grid with tailSize segments behind the head.
	Place(grid *core.Grid, tailSize int) error

	// Step advances the snake one tile in its current direction.
	Step(grid *core.Grid) (Outcome, error)

	// Direction returns the current movement direction.
	Direction() core.Direction

	// SetDirection changes direction. Reversal is a game over.
	SetDirection(d core.Direction) error

	// Len returns the body length including the head.
	Len() int

	// Body returns a copy of the body indices, head first.
	Body() []int

	// State returns the lifecycle state.
	State() State
}

// FruitSpawner places fruit on the grid.
type FruitSpawner interface {
	Spawn(grid *core.Grid, rng core.Rand) error
}

// State is the lifecycle state of a snake.
type State int

const (
	StateUnplaced State = iota
	StateActive
	StateTerminated
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUnplaced:
		return "unplaced"
	case StateActive:
		return "active"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Outcome describes what a successful step did.
type Outcome int

const (
	OutcomeAdvanced Outcome = iota // Moved onto an empty tile
	OutcomeGrew                    // Ate a fruit
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeGrew:
		return "grew"
	default:
		return "unknown"
	}
}
