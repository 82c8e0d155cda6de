package task

import "github.com/DSchif/zoo-maker-sub000/id"

// Options configures per-task behavior at insertion time.
type Options struct {
	// Priority determines claim ordering. Lower values are claimed first.
	Priority Priority

	// MaxRetries is the number of failures after which the task is
	// permanently discarded.
	MaxRetries int

	// Zone associates the task with an exhibit. The Nil zone routes the
	// task to the global queue.
	Zone id.ZoneID
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Priority:   PriorityNormal,
		MaxRetries: 3,
	}
}

// Option is a functional option for configuring a task at insertion.
type Option func(*Options)

// WithPriority sets the task priority. Lower values are claimed first.
func WithPriority(p Priority) Option {
	return func(o *Options) {
		o.Priority = p
	}
}

// WithMaxRetries sets the number of failures before the task is discarded.
func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.MaxRetries = n
	}
}

// WithZone scopes the task to an exhibit's queue.
func WithZone(z id.ZoneID) Option {
	return func(o *Options) {
		o.Zone = z
	}
}
