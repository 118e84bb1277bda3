package driver

import (
	"sync"

	"github.com/vovakirdan/crowdsnake/internal/core"
)

// DefaultQueueCapacity bounds the votes kept between two ticks.
const DefaultQueueCapacity = 4096

// InputQueue collects votes from any number of producers. The lock is held
// only to append or to swap the slice out, never while the game runs.
type InputQueue struct {
	mu       sync.Mutex
	pending  []core.Direction
	capacity int
	dropped  uint64
}

// NewInputQueue creates a queue holding at most capacity votes per tick.
func NewInputQueue(capacity int) *InputQueue {
	if capacity < 1 {
		capacity = DefaultQueueCapacity
	}
	return &InputQueue{capacity: capacity}
}

// Push appends a vote. It returns false when the queue is full and the vote
// was dropped.
func (q *InputQueue) Push(d core.Direction) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) >= q.capacity {
		q.dropped++
		return false
	}
	q.pending = append(q.pending, d)
	return true
}

// Drain returns every queued vote in arrival order and empties the queue.
func (q *InputQueue) Drain() []core.Direction {
	q.mu.Lock()
	out := q.pending
	q.pending = nil
	q.mu.Unlock()
	return out
}

// Len returns the number of queued votes.
func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Dropped returns how many votes were rejected because the queue was full.
func (q *InputQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
