// File: stage/options.go
package stage

import (
	"context"
	"log/slog"
)

// Options configures a spawned actor. The zero value is usable: unbounded
// mailbox, background context, default logger, no-op metrics.
type Options struct {
	// MailboxSize bounds the mailbox; 0 keeps it unbounded. With a bound,
	// senders block until space frees up or the mailbox closes.
	MailboxSize int

	// Context is the base context handed to the processor on every dispatch.
	Context context.Context

	// Logger receives worker lifecycle and panic reports.
	Logger *slog.Logger

	// Metrics receives per-dispatch instrumentation.
	Metrics Metrics
}

func (o Options) withDefaults() Options {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Metrics == nil {
		o.Metrics = NopMetrics()
	}
	return o
}
