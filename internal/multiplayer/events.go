package multiplayer

// Event is sent from the driver to viewers.
type Event interface {
	viewerEvent()
}

// FrameEvent carries a rendered frame after a tick.
type FrameEvent struct {
	SessionID  SessionID
	Tick       uint64
	Frame      string
	Length     int
	FruitEaten int
	Direction  string
}

func (FrameEvent) viewerEvent() {}

// SessionStartedEvent is sent when a fresh snake is placed.
type SessionStartedEvent struct {
	SessionID SessionID
	Width     int
	Height    int
}

func (SessionStartedEvent) viewerEvent() {}

// SessionEndedEvent is sent when a session ends, before any restart.
type SessionEndedEvent struct {
	SessionID  SessionID
	Reason     EndReason
	Ticks      uint64
	Length     int
	FruitEaten int
}

func (SessionEndedEvent) viewerEvent() {}

// ShutdownEvent is the last event a viewer receives from a stopping driver.
type ShutdownEvent struct {
	Err error // Nil on a clean stop
}

func (ShutdownEvent) viewerEvent() {}
