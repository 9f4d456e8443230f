package score

import (
	"sync"

	"github.com/google/uuid"
)

// LayoutTracker collects elements whose layout is stale and hands them out
// in the order they were first marked.
type LayoutTracker struct {
	mu sync.Mutex

	// pending holds the marked elements in first-marked order.
	pending []Element

	// index maps element ids to their slot in pending.
	index map[uuid.UUID]int

	// full indicates every element must be laid out again.
	full bool

	// maxPending is the number of marks after which a full layout is forced.
	maxPending int
}

// NewLayoutTracker creates an empty tracker.
func NewLayoutTracker() *LayoutTracker {
	return &LayoutTracker{
		pending:    make([]Element, 0, 16),
		index:      make(map[uuid.UUID]int),
		maxPending: 256,
	}
}

// Mark schedules e for layout. Marking an element twice keeps its first
// position.
func (t *LayoutTracker) Mark(e Element) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.full {
		return
	}
	if _, ok := t.index[e.LinkID()]; ok {
		return
	}
	if len(t.pending) >= t.maxPending {
		t.full = true
		t.pending = t.pending[:0]
		clear(t.index)
		return
	}
	t.index[e.LinkID()] = len(t.pending)
	t.pending = append(t.pending, e)
}

// MarkFull requests a layout of the whole score.
func (t *LayoutTracker) MarkFull() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.full = true
	t.pending = t.pending[:0]
	clear(t.index)
}

// IsPending reports whether e is waiting for layout.
func (t *LayoutTracker) IsPending(e Element) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.full {
		return true
	}
	_, ok := t.index[e.LinkID()]
	return ok
}

// HasPending reports whether anything is waiting for layout.
func (t *LayoutTracker) HasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.full || len(t.pending) > 0
}

// Take returns the pending elements and whether a full layout was requested,
// and resets the tracker.
func (t *LayoutTracker) Take() ([]Element, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Element, len(t.pending))
	copy(out, t.pending)
	full := t.full

	t.pending = t.pending[:0]
	clear(t.index)
	t.full = false
	return out, full
}
