// File: stage/slot.go
package stage

import "sync"

// Slot is a single-use transfer cell delivering one reply from the worker to
// one waiting caller. It is filled at most once; filling after the caller has
// gone away is a harmless no-op on the worker side.
type Slot struct {
	ch   chan any
	once sync.Once
	sent bool
}

func newSlot() *Slot {
	// Capacity 1 so the worker's write never blocks on an absent reader.
	return &Slot{ch: make(chan any, 1)}
}

// fill delivers the reply. Reports whether this call was the one that
// resolved the slot; a fill after the slot is already resolved reports
// false and its value is dropped.
func (s *Slot) fill(v any) bool {
	delivered := false
	s.once.Do(func() {
		s.ch <- v
		close(s.ch)
		s.sent = true
		delivered = true
	})
	return delivered
}

// abandon resolves the slot without a value; the caller observes
// ErrMailboxClosed. Idempotent, and a no-op if the slot was already filled.
func (s *Slot) abandon() {
	s.once.Do(func() {
		close(s.ch)
	})
}
