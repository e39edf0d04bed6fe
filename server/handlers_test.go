// File: server/handlers_test.go
package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollyfield/stagecraft/stage"
)

func spawnCalc(t *testing.T) *stage.Handle {
	t.Helper()
	ops := []stage.Op{
		{Name: "msg_one", Variant: "MsgOne", Wait: true},
		{Name: "msg_one_no_wait", Variant: "MsgOne", Wait: false},
	}
	// Field values arrive as JSON numbers, so the handler reads float64.
	proc := stage.ProcessorFunc(func(_ context.Context, msg *stage.Message) {
		v, _ := msg.Field("value").(float64)
		msg.Reply(v + 100)
	})
	h := stage.Spawn("calc", ops, proc, stage.Options{})
	t.Cleanup(h.Close)
	return h
}

func TestDispatch_WaitCall(t *testing.T) {
	h := spawnCalc(t)
	s := New(h)
	defer s.Close()

	reply := s.dispatch(context.Background(), h, CallFrame{
		Op:      "msg_one",
		Variant: "MsgOne",
		Fields:  map[string]any{"value": 1.0},
	})

	assert.True(t, reply.OK)
	assert.Empty(t, reply.Error)
	assert.Equal(t, 101.0, reply.Value)
}

func TestDispatch_NoWaitCall(t *testing.T) {
	h := spawnCalc(t)
	s := New(h)
	defer s.Close()

	reply := s.dispatch(context.Background(), h, CallFrame{
		Op:      "msg_one_no_wait",
		Variant: "MsgOne",
		Fields:  map[string]any{"value": 1.0},
	})

	assert.True(t, reply.OK)
	assert.Nil(t, reply.Value, "no-wait form must not expose a response value")
}

func TestDispatch_Errors(t *testing.T) {
	h := spawnCalc(t)
	s := New(h)
	defer s.Close()

	reply := s.dispatch(context.Background(), h, CallFrame{Op: "nope", Variant: "MsgOne"})
	assert.False(t, reply.OK)
	require.NotEmpty(t, reply.Error)
	assert.Equal(t, stage.ErrUnknownOperation.Error(), reply.Error)

	reply = s.dispatch(context.Background(), h, CallFrame{Op: "msg_one", Variant: "MsgTwo"})
	assert.False(t, reply.OK)
	assert.Equal(t, stage.ErrWrongVariant.Error(), reply.Error)
}
