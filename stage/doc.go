// Package stage is the runtime half of stagecraft: the mailbox, response
// slot, handle and worker that a synthesized actor executes on.
//
// Each actor is one worker goroutine owning exclusive mutable access to one
// Processor instance. Handles are the only way in: they enqueue messages onto
// the actor's mailbox, and the worker processes them strictly one at a time,
// in arrival order. Because all mutation happens inside that single
// goroutine, the processor needs no locks; the mailbox is the only shared
// object and carries its own synchronization.
//
// Every operation comes in two forms. The wait form attaches a fresh
// response slot to the call and suspends until the worker fills or abandons
// it. The no-wait form enqueues and returns. Failures are always surfaced as
// typed errors to the immediate caller; the runtime never panics on a
// call-time condition.
//
// Ordering: messages sent through the same handle clone are processed in
// send order. Across clones the mailbox is a single queue, so cross-clone
// order is enqueue order, not call order.
//
// The mailbox is unbounded by default. A slow worker behind fast producers
// grows it without limit; set Options.MailboxSize to get a bounded mailbox
// whose Send blocks for backpressure.
package stage
