package task

import (
	"context"
	"fmt"
	"sync"

	zoomaker "github.com/DSchif/zoo-maker-sub000"
)

// HandlerFunc performs the kind-specific side effect of a completed
// task: deposit food, restore a fence edge, clear a waste marker. The
// typed RegisterKind wrapper converts a payload-typed handler into a
// HandlerFunc by asserting the task's payload to the concrete type.
type HandlerFunc func(ctx context.Context, t *Task) error

// Registry maps task kinds to type-erased handler functions.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[Kind]HandlerFunc
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Kind]HandlerFunc),
	}
}

// RegisterKind registers a payload-typed handler for a kind. The generic
// handler is wrapped in a closure that asserts the task's payload to P
// before calling the typed handler.
//
// This is a package-level generic function because Go does not allow
// generic methods on non-generic receiver types.
func RegisterKind[P Payload](r *Registry, k Kind, fn func(ctx context.Context, t *Task, p P) error) {
	handler := func(ctx context.Context, t *Task) error {
		p, ok := t.Payload.(P)
		if !ok {
			return fmt.Errorf("task %s: %w: payload is %T", t.ID, zoomaker.ErrPayloadMismatch, t.Payload)
		}
		return fn(ctx, t, p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[k] = handler
}

// Register registers a type-erased handler for a kind, replacing any
// previous registration.
func (r *Registry) Register(k Kind, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[k] = h
}

// Get returns the handler for the given kind.
// Returns false if no handler is registered.
func (r *Registry) Get(k Kind) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[k]
	return h, ok
}

// Kinds returns all kinds with a registered handler.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	return kinds
}
