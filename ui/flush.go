package ui

import "sync"

// FlushQueue collects deferred callbacks and runs them on the next UI tick.
// The announcer schedules the second half of its clear-then-set cycle here,
// so the set lands one render after the clear.
type FlushQueue struct {
	mu  sync.Mutex
	fns []func()
}

// NewFlushQueue creates an empty queue.
func NewFlushQueue() *FlushQueue {
	return &FlushQueue{}
}

// Schedule adds a callback to run at the next flush.
func (q *FlushQueue) Schedule(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fns = append(q.fns, fn)
}

// Flush runs and clears every scheduled callback.
func (q *FlushQueue) Flush() {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
