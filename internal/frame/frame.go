// Package frame provides the animation-frame scheduler that window
// controllers use to coalesce pointer moves. The host flushes the loop
// once per rendered frame.
package frame

import "sync"

// ID identifies a pending frame callback. The zero ID is never issued.
type ID uint64

// Scheduler queues callbacks for the next frame.
type Scheduler interface {
	Request(fn func()) ID
	Cancel(id ID)
}

// Loop is a Scheduler flushed explicitly by its owner.
//
// Callbacks requested while a flush is running wait for the next flush.
type Loop struct {
	mu      sync.Mutex
	next    ID
	pending map[ID]func()
	order   []ID
	frames  uint64
}

// NewLoop returns an empty loop.
func NewLoop() *Loop {
	return &Loop{pending: make(map[ID]func())}
}

// Request queues fn for the next Flush.
func (l *Loop) Request(fn func()) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	id := l.next
	l.pending[id] = fn
	l.order = append(l.order, id)
	return id
}

// Cancel drops a pending callback. Unknown or already-run ids are ignored.
func (l *Loop) Cancel(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, id)
}

// Pending returns the number of callbacks waiting for the next frame.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Frames returns how many flushes ran at least one callback.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Flush runs every callback queued before the call, in request order,
// and reports how many ran. Callbacks run without the lock held.
func (l *Loop) Flush() int {
	l.mu.Lock()
	order := l.order
	l.order = nil
	batch := make([]func(), 0, len(order))
	for _, id := range order {
		if fn, ok := l.pending[id]; ok {
			batch = append(batch, fn)
			delete(l.pending, id)
		}
	}
	if len(batch) > 0 {
		l.frames++
	}
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
