// Package multiplayer provides the types shared between the tick driver and
// the connected crowd: session and viewer identities, events fanned out to
// viewers, and the result record of a finished session.
package multiplayer

import (
	"time"

	"github.com/google/uuid"
)

// SessionID identifies one snake life, from placement to game over.
type SessionID string

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// ViewerID identifies a connected viewer (SSH session, websocket, local TUI).
type ViewerID string

// NewViewerID returns a random viewer identifier.
func NewViewerID() ViewerID {
	return ViewerID(uuid.NewString())
}

// EndReason describes why a session ended.
type EndReason int

const (
	EndReasonGameOver EndReason = iota // Collision or reversal
	EndReasonShutdown                  // Driver stopped by its context
	EndReasonFailure                   // Unrecoverable engine error
)

// String returns the stable name stored in the sessions journal.
func (r EndReason) String() string {
	switch r {
	case EndReasonGameOver:
		return "game_over"
	case EndReasonShutdown:
		return "shutdown"
	case EndReasonFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// SessionResultData is the journal record of a finished session.
type SessionResultData struct {
	SessionID  SessionID
	Width      int
	Height     int
	Ticks      uint64
	Length     int
	FruitEaten int
	EndReason  EndReason
	Detail     string // Error text for game over and failures
	StartedAt  time.Time
	EndedAt    time.Time
}

// Duration returns how long the session ran.
func (d SessionResultData) Duration() time.Duration {
	return d.EndedAt.Sub(d.StartedAt)
}

// SessionResultSaver persists session results.
// Implemented by storage.Store; kept here to avoid a dependency from the driver
// on the database.
type SessionResultSaver interface {
	SaveSessionResult(data SessionResultData) error
}
