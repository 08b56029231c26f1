package observe

import (
	"sync"

	"github.com/npillmayer/btreekit/btree"
)

// Recorder is an observer which keeps a log of events.
//
// A Recorder may be read from other goroutines while the tree is being
// modified.
type Recorder[K any] struct {
	mu     sync.Mutex
	limit  int
	events []btree.Event[K]
	counts map[btree.EventKind]int
}

// NewRecorder creates a recorder keeping the most recent limit events. A
// limit of 0 keeps all events. Counts are kept for all events regardless of
// the limit.
func NewRecorder[K any](limit int) *Recorder[K] {
	return &Recorder[K]{
		limit:  limit,
		counts: make(map[btree.EventKind]int),
	}
}

// Notify is part of interface btree.Observer.
func (r *Recorder[K]) Notify(e btree.Event[K]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[e.Kind]++
	if r.limit > 0 && len(r.events) == r.limit {
		copy(r.events, r.events[1:])
		r.events = r.events[:r.limit-1]
	}
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events, oldest first.
func (r *Recorder[K]) Events() []btree.Event[K] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]btree.Event[K](nil), r.events...)
}

// Count returns the number of events of a kind seen since creation or the
// last Reset.
func (r *Recorder[K]) Count(kind btree.EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[kind]
}

// Reset drops all recorded events and counts.
func (r *Recorder[K]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	clear(r.counts)
}

// Tee is an observer forwarding every event to each of its observers, in
// order. Nil entries are skipped.
type Tee[K any] []btree.Observer[K]

// Notify is part of interface btree.Observer.
func (tee Tee[K]) Notify(e btree.Event[K]) {
	for _, o := range tee {
		if o != nil {
			o.Notify(e)
		}
	}
}
