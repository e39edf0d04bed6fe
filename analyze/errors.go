// File: analyze/errors.go
package analyze

import (
	"errors"
	"fmt"
)

// Sentinel reject reasons. A RejectError wraps exactly one of these, so
// callers can branch with errors.Is while still getting the offending
// type/variant name in the message.
var (
	ErrAmbiguousOrMissingPair = errors.New("ambiguous or missing processor/message pair")
	ErrMissingHandler         = errors.New("missing process handler")
	ErrEmptyMessageType       = errors.New("message type has no variants")
	ErrMissingResponseField   = errors.New("variant has no resp field")
)

// RejectError is the reason a candidate unit was refused. Reject is
// all-or-nothing: a returned RejectError means nothing was derived and
// nothing may be synthesized from the unit.
type RejectError struct {
	Reason  error  // one of the sentinels above
	Subject string // the type or variant the rule tripped on, if any
}

func (e *RejectError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("unit rejected: %v", e.Reason)
	}
	return fmt.Sprintf("unit rejected: %v: %s", e.Reason, e.Subject)
}

func (e *RejectError) Unwrap() error { return e.Reason }

func reject(reason error, subject string) *RejectError {
	return &RejectError{Reason: reason, Subject: subject}
}
