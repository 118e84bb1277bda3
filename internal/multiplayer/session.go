package multiplayer

import "sync"

// Viewer is the transport-neutral interface for pushing events to a
// connected client. It lets the driver broadcast without depending on
// Wish, Bubble Tea or websockets.
type Viewer interface {
	// ID returns the unique viewer identifier.
	ID() ViewerID

	// Send delivers an event asynchronously. Must never block.
	Send(evt Event)

	// Done returns a channel that closes when the viewer goes away.
	Done() <-chan struct{}
}

// ChannelSession is a Viewer backed by a buffered channel.
// Used by the TUI and web layers to receive frames from the hub.
type ChannelSession struct {
	id       ViewerID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a new channel-based viewer.
// eventBufferSize controls how many events can be buffered before dropping.
func NewChannelSession(id ViewerID, eventBufferSize int) *ChannelSession {
	if eventBufferSize < 1 {
		eventBufferSize = 16
	}
	return &ChannelSession{
		id:     id,
		events: make(chan Event, eventBufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the viewer identifier.
func (s *ChannelSession) ID() ViewerID {
	return s.id
}

// Send queues an event. When the buffer is full the oldest event is dropped;
// a slow viewer only ever misses stale frames.
func (s *ChannelSession) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSession) Events() <-chan Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the viewer as gone.
// Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Hub tracks connected viewers and fans events out to them.
// Thread-safe for concurrent access.
type Hub struct {
	mu      sync.RWMutex
	viewers map[ViewerID]Viewer
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		viewers: make(map[ViewerID]Viewer),
	}
}

// Register adds a viewer.
func (h *Hub) Register(v Viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers[v.ID()] = v
}

// Unregister removes a viewer.
func (h *Hub) Unregister(id ViewerID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.viewers, id)
}

// Subscribe registers a new channel-backed viewer. The returned cancel func
// unregisters and closes it.
func (h *Hub) Subscribe(bufferSize int) (*ChannelSession, func()) {
	s := NewChannelSession(NewViewerID(), bufferSize)
	h.Register(s)
	return s, func() {
		h.Unregister(s.ID())
		s.Close()
	}
}

// Get retrieves a viewer by ID.
func (h *Hub) Get(id ViewerID) (Viewer, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.viewers[id]
	return v, ok
}

// Count returns the number of registered viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Publish sends evt to every live viewer and drops the ones that are done.
func (h *Hub) Publish(evt Event) {
	h.mu.RLock()
	var gone []ViewerID
	for id, v := range h.viewers {
		select {
		case <-v.Done():
			gone = append(gone, id)
			continue
		default:
		}
		v.Send(evt)
	}
	h.mu.RUnlock()

	if len(gone) == 0 {
		return
	}
	h.mu.Lock()
	for _, id := range gone {
		delete(h.viewers, id)
	}
	h.mu.Unlock()
}
