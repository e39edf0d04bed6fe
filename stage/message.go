// File: stage/message.go
package stage

// Message is the dynamic message value callers construct: the variant tag
// plus the declared fields. The engine treats both as opaque strings resolved
// against the handle's operation table at call time. Callers never set the
// resp field; the call wrapper owns the response slot.
type Message struct {
	Variant string
	Fields  map[string]any

	// resp is attached by the worker for wait calls, absent for no-wait.
	resp *Slot
}

// NewMessage builds a message shaped as the given variant. A nil field map
// is allowed for variants whose only field is resp.
func NewMessage(variant string, fields map[string]any) *Message {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Message{Variant: variant, Fields: fields}
}

// Field returns a declared field value, or nil if absent.
func (m *Message) Field(name string) any {
	return m.Fields[name]
}

// WantsReply reports whether this delivery carries a response slot, i.e. the
// caller used the wait form and may still be listening.
func (m *Message) WantsReply() bool {
	return m.resp != nil
}

// Reply writes the single reply value for a wait call. It reports whether
// the value was actually delivered into the slot: false when the call was
// no-wait or a reply was already sent. Writing when the caller has since
// gone away still returns true; the value is simply never read.
//
// A handler that never calls Reply leaves the caller to observe
// ErrMailboxClosed once the worker discards the message.
func (m *Message) Reply(v any) bool {
	if m.resp == nil {
		return false
	}
	return m.resp.fill(v)
}
