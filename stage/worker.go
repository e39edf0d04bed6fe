// File: stage/worker.go
package stage

import (
	"context"
	"log/slog"
	"runtime/debug"
)

// Processor is the state-owning half of an actor. Process is invoked by the
// worker goroutine only, one message at a time, so implementations mutate
// their state freely without locks. A wait-form caller receives whatever the
// handler passes to Message.Reply; replying is the handler's responsibility.
type Processor interface {
	Process(ctx context.Context, msg *Message)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(ctx context.Context, msg *Message)

func (f ProcessorFunc) Process(ctx context.Context, msg *Message) { f(ctx, msg) }

// worker owns the consumer end of the mailbox and exclusive access to one
// processor instance. It runs until the mailbox is closed and drained, or
// until a handler panic kills it.
type worker struct {
	name    string
	proc    Processor
	mb      *mailbox
	ctx     context.Context
	log     *slog.Logger
	metrics Metrics
	done    chan struct{}
}

func newWorker(name string, proc Processor, mb *mailbox, opts Options) *worker {
	return &worker{
		name:    name,
		proc:    proc,
		mb:      mb,
		ctx:     opts.Context,
		log:     opts.Logger,
		metrics: opts.Metrics,
		done:    make(chan struct{}),
	}
}

// run is the dispatch loop: receive one message, process it to completion,
// repeat. Strictly sequential, preserving per-sender enqueue order.
func (w *worker) run() {
	defer close(w.done)
	w.log.Debug("actor worker started", slog.String("actor", w.name))
	for {
		env, ok := w.mb.pop()
		if !ok {
			w.log.Debug("actor worker stopped, mailbox closed", slog.String("actor", w.name))
			return
		}
		if !w.dispatch(env) {
			// Handler panicked. The worker is gone; fail the backlog and
			// all future sends rather than leaving callers hanging.
			w.mb.poison()
			return
		}
	}
}

// dispatch runs one handler invocation with crash containment. Returns false
// when the handler panicked.
func (w *worker) dispatch(env envelope) (alive bool) {
	defer func() {
		if r := recover(); r != nil {
			alive = false
			w.metrics.WorkerPanic(env.msg.Variant)
			w.log.Error("actor worker panicked",
				slog.String("actor", w.name),
				slog.String("variant", env.msg.Variant),
				slog.Any("recovered", r),
				slog.String("stack", string(debug.Stack())),
			)
			if env.slot != nil {
				env.slot.abandon()
			}
		}
	}()

	env.msg.resp = env.slot
	w.proc.Process(w.ctx, env.msg)

	replied := false
	if env.slot != nil {
		replied = env.slot.sent
		// If the handler never replied, resolve the slot now so the caller
		// errors out instead of waiting forever. No-op after a reply.
		env.slot.abandon()
	}
	w.metrics.MessageProcessed(env.msg.Variant, replied)
	return true
}
