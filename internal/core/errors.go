package core

import "errors"

// Error taxonomy shared by the game engine and its drivers.
// Callers match these with errors.Is; producers wrap them with context.
var (
	// ErrConfig reports invalid construction parameters. Fatal, never retried.
	ErrConfig = errors.New("invalid configuration")

	// ErrGameOver is the expected end of a session: self-collision or a
	// requested reversal. Drivers start a fresh session.
	ErrGameOver = errors.New("game over")

	// ErrInvalidState signals a violated internal invariant, such as an index
	// computed as valid that did not resolve to a tile. It is a defect, not a
	// gameplay outcome.
	ErrInvalidState = errors.New("invalid internal state")

	// ErrRendering reports a frame sink failure. Unrelated to game state.
	ErrRendering = errors.New("rendering failed")
)
