package suite

import (
	"errors"
	"sync"
)

// ErrSealed is returned when an item is pushed onto a queue that
// has already been handed to the runner.
var ErrSealed = errors.New("queue is sealed")

// Queue is the pending work queue filled during registration.
// Len may be polled from another goroutine while registration
// appends.
type Queue struct {
	mu     sync.RWMutex
	items  []Item
	sealed bool
}

// NewQueue creates an empty, unsealed queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an item in registration order.
func (q *Queue) Push(item Item) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.sealed {
		return ErrSealed
	}
	q.items = append(q.items, item)
	return nil
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}

// Seal marks registration as complete. Later pushes fail with
// ErrSealed.
func (q *Queue) Seal() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sealed = true
}

// Sealed reports whether Seal has been called.
func (q *Queue) Sealed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.sealed
}

// Snapshot seals the queue and returns a copy of its items.
func (q *Queue) Snapshot() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sealed = true
	items := make([]Item, len(q.items))
	copy(items, q.items)
	return items
}
