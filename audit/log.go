package audit

import (
	"context"
	"sync"
)

// Log is a bounded in-memory Recorder. When the bound is reached the
// oldest events are evicted. It is the default backend for debugging
// panels and tests; real deployments bridge to their own trail with a
// [RecorderFunc].
type Log struct {
	mu     sync.Mutex
	max    int
	events []*Event
}

// NewLog creates a Log keeping at most maxEvents entries. A non-positive
// bound defaults to 1024.
func NewLog(maxEvents int) *Log {
	if maxEvents <= 0 {
		maxEvents = 1024
	}
	return &Log{max: maxEvents}
}

// Record implements Recorder.
func (l *Log) Record(_ context.Context, event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	if len(l.events) > l.max {
		l.events = l.events[len(l.events)-l.max:]
	}
	return nil
}

// Events returns a snapshot of the retained events, oldest first.
func (l *Log) Events() []*Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of retained events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
