// File: stage/system_test.go
package stage

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_SpawnAndGet(t *testing.T) {
	sys := NewSystem("test")
	defer func() { _ = sys.Shutdown(context.Background()) }()

	id, h, err := sys.Spawn("calc", calcOps(), calcProc(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "calc", id)
	assert.Equal(t, 1, sys.Len())

	got := sys.Get("calc")
	require.NotNil(t, got)

	v, err := got.Call(context.Background(), "msg_one", NewMessage("MsgOne", map[string]any{"value": 1}))
	require.NoError(t, err)
	assert.Equal(t, 101, v)

	h.Close()
}

func TestSystem_GeneratedID(t *testing.T) {
	sys := NewSystem("test")
	defer func() { _ = sys.Shutdown(context.Background()) }()

	id, h, err := sys.Spawn("", calcOps(), calcProc(), Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "actor-"), "generated id %q", id)
	h.Close()

	other, h2, err := sys.Spawn("", calcOps(), calcProc(), Options{})
	require.NoError(t, err)
	assert.NotEqual(t, id, other, "generated ids must be unique")
	h2.Close()
}

func TestSystem_DuplicateID(t *testing.T) {
	sys := NewSystem("test")
	defer func() { _ = sys.Shutdown(context.Background()) }()

	_, h, err := sys.Spawn("calc", calcOps(), calcProc(), Options{})
	require.NoError(t, err)
	defer h.Close()

	_, _, err = sys.Spawn("calc", calcOps(), calcProc(), Options{})
	assert.Error(t, err)
	assert.Equal(t, 1, sys.Len())
}

func TestSystem_RegistrationIsAtomic(t *testing.T) {
	sys := NewSystem("test")
	defer func() { _ = sys.Shutdown(context.Background()) }()

	stop := make(chan struct{})
	checked := make(chan struct{})
	go func() {
		defer close(checked)
		// A registered id must always resolve to a live handle; there is
		// never a window where Len counts an actor that Get cannot return.
		for {
			select {
			case <-stop:
				return
			default:
			}
			sys.mu.RLock()
			for id, h := range sys.actors {
				assert.NotNil(t, h, "id %q registered without a handle", id)
			}
			sys.mu.RUnlock()
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				id, h, err := sys.Spawn("", calcOps(), calcProc(), Options{})
				require.NoError(t, err)
				require.NotNil(t, sys.Get(id))
				h.Close()
			}
		}()
	}
	wg.Wait()
	close(stop)
	<-checked
}

func TestSystem_ShutdownStopsAll(t *testing.T) {
	sys := NewSystem("test")

	var handles []*Handle
	for i := 0; i < 3; i++ {
		_, h, err := sys.Spawn("", calcOps(), calcProc(), Options{})
		require.NoError(t, err)
		handles = append(handles, h)
	}
	// Callers release their handles; the registry still holds its own.
	for _, h := range handles {
		h.Close()
	}

	require.NoError(t, sys.Shutdown(context.Background()))
	assert.Equal(t, 0, sys.Len())

	for _, h := range handles {
		select {
		case <-h.Done():
		case <-time.After(time.Second):
			t.Fatal("worker still running after shutdown")
		}
	}
}

func TestSystem_ShutdownTimesOutOnLiveClone(t *testing.T) {
	sys := NewSystem("test")

	_, h, err := sys.Spawn("held", calcOps(), calcProc(), Options{})
	require.NoError(t, err)
	// h stays open, so the mailbox never closes and the worker never exits.

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err = sys.Shutdown(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "held")

	h.Close()
}

func TestSystem_SpawnAfterShutdownFails(t *testing.T) {
	sys := NewSystem("test")
	require.NoError(t, sys.Shutdown(context.Background()))

	_, _, err := sys.Spawn("late", calcOps(), calcProc(), Options{})
	assert.Error(t, err)
}
