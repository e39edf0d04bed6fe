// File: stage/errors.go
package stage

import "errors"

var (
	// ErrSendFailed means the mailbox was closed before the message could be
	// enqueued (worker gone or all handles closed). Terminal for this actor;
	// recover by constructing a new one.
	ErrSendFailed = errors.New("send failed: mailbox closed")

	// ErrMailboxClosed means a wait call was enqueued but the reply never
	// arrived: the worker dropped the response slot without writing, e.g. it
	// panicked mid-handler or the handler never replied.
	ErrMailboxClosed = errors.New("mailbox closed or reply abandoned")

	// ErrWrongVariant means the message value does not match the variant the
	// invoked operation was derived from. Checked before any mailbox send.
	ErrWrongVariant = errors.New("message variant does not match operation")

	// ErrUnknownOperation means the handle carries no operation of that name
	// and form.
	ErrUnknownOperation = errors.New("unknown operation")
)
