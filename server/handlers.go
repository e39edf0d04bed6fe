// File: server/handlers.go
package server

import (
	"context"

	"github.com/hollyfield/stagecraft/stage"
)

// CallFrame is one inbound request: the operation to invoke plus the message
// it carries. The op name alone selects wait vs no-wait, exactly as on the
// handle.
type CallFrame struct {
	Op      string         `json:"op"`
	Variant string         `json:"variant"`
	Fields  map[string]any `json:"fields"`
}

// ReplyFrame is the single response to a CallFrame. Value is only set for a
// successful wait-form call.
type ReplyFrame struct {
	Op    string `json:"op"`
	OK    bool   `json:"ok"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// dispatch routes one frame through the handle and maps the outcome onto a
// reply frame. Call-time errors come back to the client; they never take the
// connection down.
func (s *Server) dispatch(ctx context.Context, conn *stage.Handle, frame CallFrame) ReplyFrame {
	op, ok := conn.Op(frame.Op)
	if !ok {
		return ReplyFrame{Op: frame.Op, Error: stage.ErrUnknownOperation.Error()}
	}

	msg := stage.NewMessage(frame.Variant, frame.Fields)
	if !op.Wait {
		if err := conn.Post(frame.Op, msg); err != nil {
			return ReplyFrame{Op: frame.Op, Error: err.Error()}
		}
		return ReplyFrame{Op: frame.Op, OK: true}
	}

	v, err := conn.Call(ctx, frame.Op, msg)
	if err != nil {
		return ReplyFrame{Op: frame.Op, Error: err.Error()}
	}
	return ReplyFrame{Op: frame.Op, OK: true, Value: v}
}
