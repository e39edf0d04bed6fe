// File: stage/metrics.go
package stage

// Metrics is the instrumentation hook for the runtime. All methods must be
// safe for concurrent use; the worker calls them from its own goroutine and
// handles call MailboxDepth from senders.
type Metrics interface {
	// MessageProcessed records one dispatched message. replied is true when
	// the handler delivered a reply into the slot.
	MessageProcessed(variant string, replied bool)
	// WorkerPanic records a handler panic that killed the worker.
	WorkerPanic(variant string)
	// MailboxDepth records the queue depth observed after an enqueue.
	MailboxDepth(depth int)
}

type nopMetrics struct{}

func (nopMetrics) MessageProcessed(string, bool) {}
func (nopMetrics) WorkerPanic(string)            {}
func (nopMetrics) MailboxDepth(int)              {}

// NopMetrics returns a no-op Metrics implementation.
func NopMetrics() Metrics { return nopMetrics{} }
