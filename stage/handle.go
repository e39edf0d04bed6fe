// File: stage/handle.go
package stage

import (
	"context"
	"sync/atomic"
)

// Op is one derived operation the handle exposes. Wait distinguishes the
// blocking-for-reply form from the fire-and-forget form; both forms of a
// variant are registered as separate ops.
type Op struct {
	Name    string
	Variant string
	Wait    bool
}

type opEntry struct {
	variant string
	wait    bool
}

// shared is the state common to all clones of one handle: the producer side
// of the mailbox, the worker, and the clone refcount that closes the mailbox
// when the last clone goes away.
type shared struct {
	mb   *mailbox
	w    *worker
	refs atomic.Int32
}

// Handle is the public face of a spawned actor. It owns the producer end of
// the mailbox and exposes the derived operations. Clones share the same
// worker; each clone must be closed, and closing the last one shuts the
// actor down once the backlog drains.
type Handle struct {
	name    string
	ops     map[string]opEntry
	s       *shared
	metrics Metrics
	closed  atomic.Bool
}

// Spawn wires a complete actor: mailbox, worker bound to the processor, the
// worker goroutine, and the returned handle bound to the producer end. The
// worker is scheduled before Spawn returns but construction never waits on
// any message being processed.
func Spawn(name string, ops []Op, proc Processor, opts Options) *Handle {
	opts = opts.withDefaults()
	mb := newMailbox(opts.MailboxSize)
	w := newWorker(name, proc, mb, opts)

	table := make(map[string]opEntry, len(ops))
	for _, op := range ops {
		table[op.Name] = opEntry{variant: op.Variant, wait: op.Wait}
	}

	h := &Handle{name: name, ops: table, metrics: opts.Metrics, s: &shared{mb: mb, w: w}}
	h.s.refs.Store(1)
	go w.run()
	return h
}

// Name returns the actor name the handle was spawned with.
func (h *Handle) Name() string { return h.name }

// Ops lists the operation names this handle carries, wait and no-wait forms
// alike. Order is unspecified.
func (h *Handle) Ops() []string {
	names := make([]string, 0, len(h.ops))
	for name := range h.ops {
		names = append(names, name)
	}
	return names
}

// Op returns the operation registered under name, reporting whether it
// exists. Useful for callers that dispatch dynamically, like the gateway.
func (h *Handle) Op(name string) (Op, bool) {
	entry, ok := h.ops[name]
	if !ok {
		return Op{}, false
	}
	return Op{Name: name, Variant: entry.variant, Wait: entry.wait}, true
}

// Call invokes the wait form of an operation: the message is enqueued with a
// fresh response slot and the caller suspends until the worker resolves or
// abandons it, or ctx is done. Abandoning the wait does not affect the
// worker. The message must be shaped as the operation's own variant.
func (h *Handle) Call(ctx context.Context, op string, msg *Message) (any, error) {
	entry, ok := h.ops[op]
	if !ok || !entry.wait {
		return nil, ErrUnknownOperation
	}
	if msg.Variant != entry.variant {
		return nil, ErrWrongVariant
	}
	if h.closed.Load() {
		return nil, ErrSendFailed
	}

	slot := newSlot()
	if err := h.s.mb.push(envelope{msg: msg, slot: slot}); err != nil {
		return nil, err
	}
	h.metrics.MailboxDepth(h.s.mb.depth())

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case v, delivered := <-slot.ch:
		if !delivered {
			return nil, ErrMailboxClosed
		}
		return v, nil
	}
}

// Post invokes the no-wait form: enqueue and return. No response slot is
// created and no reply is ever observable.
func (h *Handle) Post(op string, msg *Message) error {
	entry, ok := h.ops[op]
	if !ok || entry.wait {
		return ErrUnknownOperation
	}
	if msg.Variant != entry.variant {
		return ErrWrongVariant
	}
	if h.closed.Load() {
		return ErrSendFailed
	}

	if err := h.s.mb.push(envelope{msg: msg}); err != nil {
		return err
	}
	h.metrics.MailboxDepth(h.s.mb.depth())
	return nil
}

// Clone returns a new handle sharing this one's worker and mailbox. Sends
// from one clone stay FIFO relative to each other; across clones, order is
// whatever order the mailbox saw.
func (h *Handle) Clone() *Handle {
	h.s.refs.Add(1)
	return &Handle{name: h.name, ops: h.ops, metrics: h.metrics, s: h.s}
}

// Close releases this clone. When the last clone is closed the mailbox
// closes; the worker drains what was already enqueued and then terminates.
// Close is idempotent per clone. Sends on a closed clone fail with
// ErrSendFailed.
func (h *Handle) Close() {
	if !h.closed.CompareAndSwap(false, true) {
		return
	}
	if h.s.refs.Add(-1) == 0 {
		h.s.mb.close()
	}
}

// Done is closed once the worker has terminated, whether by drain-out after
// the last Close or by a handler panic.
func (h *Handle) Done() <-chan struct{} {
	return h.s.w.done
}
