// File: stage/mailbox.go
package stage

import "sync"

// envelope tags a queued call as wait (slot set) or fire (slot nil). The
// call mode travels next to the message rather than inside it, so the wire
// shape of Message stays independent of the calling convention.
type envelope struct {
	msg  *Message
	slot *Slot
}

// mailbox is the multi-producer single-consumer queue between handles and
// the worker. Unbounded when limit is 0; otherwise push blocks while full.
// Closing wakes everyone: pushes fail, pops drain the backlog then report
// closed. Messages are never duplicated or lost while the mailbox is open.
type mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []envelope
	limit  int
	closed bool
}

func newMailbox(limit int) *mailbox {
	mb := &mailbox{limit: limit}
	mb.cond = sync.NewCond(&mb.mu)
	return mb
}

// push enqueues one envelope, blocking for space when bounded. Returns
// ErrSendFailed once the mailbox is closed.
func (mb *mailbox) push(e envelope) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for !mb.closed && mb.limit > 0 && len(mb.queue) >= mb.limit {
		mb.cond.Wait()
	}
	if mb.closed {
		return ErrSendFailed
	}
	mb.queue = append(mb.queue, e)
	mb.cond.Broadcast()
	return nil
}

// pop dequeues the next envelope, blocking while the mailbox is open and
// empty. ok is false once the mailbox is closed and drained.
func (mb *mailbox) pop() (envelope, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for len(mb.queue) == 0 && !mb.closed {
		mb.cond.Wait()
	}
	if len(mb.queue) == 0 {
		return envelope{}, false
	}
	e := mb.queue[0]
	mb.queue[0] = envelope{}
	mb.queue = mb.queue[1:]
	mb.cond.Broadcast()
	return e, true
}

// close marks the mailbox closed. Idempotent.
func (mb *mailbox) close() {
	mb.mu.Lock()
	mb.closed = true
	mb.cond.Broadcast()
	mb.mu.Unlock()
}

// poison closes the mailbox and abandons every queued wait call. Used when
// the worker dies and will never drain the backlog.
func (mb *mailbox) poison() {
	mb.mu.Lock()
	mb.closed = true
	backlog := mb.queue
	mb.queue = nil
	mb.cond.Broadcast()
	mb.mu.Unlock()

	for _, e := range backlog {
		if e.slot != nil {
			e.slot.abandon()
		}
	}
}

func (mb *mailbox) depth() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return len(mb.queue)
}
