// File: stage/system.go
package stage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"
)

// System is a process-wide registry of spawned actors with explicit
// lifecycle: spawn under an id, look handles up, and tear everything down in
// one call. Using a System is optional (Spawn works standalone) but it is
// the supported way to manage more than a couple of one-off actors.
type System struct {
	name     string
	log      *slog.Logger
	mu       sync.RWMutex
	actors   map[string]*Handle
	stopping atomic.Bool
}

// NewSystem creates an empty registry.
func NewSystem(name string) *System {
	return &System{
		name:   name,
		log:    slog.Default(),
		actors: make(map[string]*Handle),
	}
}

// WithLogger replaces the registry logger. Not safe to call after Spawn.
func (s *System) WithLogger(log *slog.Logger) *System {
	s.log = log
	return s
}

// Spawn creates an actor under the registry and returns its id and handle.
// An empty id gets a generated one. The registry keeps its own reference to
// the handle; the returned handle is the caller's and may be cloned freely.
func (s *System) Spawn(id string, ops []Op, proc Processor, opts Options) (string, *Handle, error) {
	if s.stopping.Load() {
		return "", nil, fmt.Errorf("system %s is shutting down", s.name)
	}
	if id == "" {
		id = fmt.Sprintf("actor-%s", gonanoid.Must(6))
	}

	// The lock covers the existence check, the spawn and the registration,
	// so a concurrent Get or Len never observes an id without its handle.
	s.mu.Lock()
	if _, exists := s.actors[id]; exists {
		s.mu.Unlock()
		return "", nil, fmt.Errorf("actor id %q already registered", id)
	}
	h := Spawn(id, ops, proc, opts)
	s.actors[id] = h.Clone()
	s.mu.Unlock()

	s.log.Debug("actor spawned", slog.String("system", s.name), slog.String("id", id))
	return id, h, nil
}

// Get returns the registry's handle for an id, or nil. The returned handle
// is shared; callers that want their own lifetime should Clone it.
func (s *System) Get(id string) *Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actors[id]
}

// Len reports the number of registered actors.
func (s *System) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.actors)
}

// Shutdown closes every registry reference and waits for all workers to
// terminate or ctx to expire. Handles cloned by callers and not yet closed
// keep their mailboxes open, so such actors only stop when those clones
// close too; give ctx a deadline if that is a possibility.
func (s *System) Shutdown(ctx context.Context) error {
	if !s.stopping.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	actors := s.actors
	s.actors = make(map[string]*Handle)
	s.mu.Unlock()

	s.log.Debug("system shutdown", slog.String("system", s.name), slog.Int("actors", len(actors)))

	g, ctx := errgroup.WithContext(ctx)
	for id, h := range actors {
		id, h := id, h
		g.Go(func() error {
			h.Close()
			select {
			case <-h.Done():
				return nil
			case <-ctx.Done():
				return fmt.Errorf("actor %s did not stop: %w", id, ctx.Err())
			}
		})
	}
	return g.Wait()
}
