// Package middleware provides composable middleware for task handler
// dispatch. Middleware wraps the per-kind handler call synchronously and
// can modify execution (recover from panics, log, record metrics).
package middleware

import (
	"context"

	"github.com/DSchif/zoo-maker-sub000/task"
)

// Handler is the terminal function that applies a task's world effect.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the task being dispatched, and the next handler to
// call. Middleware MUST call next to continue the chain (unless
// short-circuiting on error).
type Middleware func(ctx context.Context, t *task.Task, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, metrics) executes as:
//
//	logging → recover → metrics → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) error {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, t, prev)
			}
		}
		return h(ctx)
	}
}

// Wrap applies the middleware to a kind-dispatched handler, producing a
// plain task.HandlerFunc the dispatching agent can call.
func Wrap(mw Middleware, h task.HandlerFunc) task.HandlerFunc {
	return func(ctx context.Context, t *task.Task) error {
		return mw(ctx, t, func(ctx context.Context) error {
			return h(ctx, t)
		})
	}
}
