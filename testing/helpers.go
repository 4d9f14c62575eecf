// Package testing provides helpers for testing code built on knob panes,
// bindings and preset loaders.
package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/knob"
)

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForState waits until the loader reaches the expected state or timeout occurs.
func WaitForState(t *testing.T, l *knob.Loader, expected knob.State, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return l.State() == expected
	})
}

// RequireState fails the test immediately if the loader is not in the expected state.
func RequireState(t *testing.T, l *knob.Loader, expected knob.State) {
	t.Helper()
	if got := l.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequirePreset fails the test if the loader has no current preset or the
// preset does not hold want under every key of want.
func RequirePreset(t *testing.T, l *knob.Loader, want knob.Preset) {
	t.Helper()
	p, ok := l.Current()
	if !ok {
		t.Fatal("expected preset to be present, got none")
	}
	for k, v := range want {
		if got, ok := p[k]; !ok || !knob.Equals(got, v) {
			t.Fatalf("preset[%q] = %v, want %v", k, got, v)
		}
	}
}

// NewTestLoader creates a sync-mode loader fed by the returned channel.
func NewTestLoader(t *testing.T, apply func(context.Context, knob.Preset, knob.Preset) error, opts ...knob.LoaderOption) (*knob.Loader, chan<- []byte) {
	t.Helper()
	ch := make(chan []byte, 10)
	l := knob.NewLoader(
		knob.NewSyncChannelWatcher(ch),
		apply,
		opts...,
	).SyncMode()
	return l, ch
}

// Recorder collects the payloads an Emitter delivers for one event name.
// It is safe to read from another goroutine than the one emitting.
type Recorder[E any] struct {
	mu     sync.Mutex
	events []E
	sub    *knob.Subscription
}

// Record subscribes a Recorder to name on e.
func Record[E any](e *knob.Emitter[E], name knob.EventName) *Recorder[E] {
	r := &Recorder[E]{}
	r.sub = e.On(name, func(ev E) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
	})
	return r
}

// Events returns a copy of the recorded payloads.
func (r *Recorder[E]) Events() []E {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]E(nil), r.events...)
}

// Len returns the number of recorded payloads.
func (r *Recorder[E]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Stop unsubscribes the recorder.
func (r *Recorder[E]) Stop() {
	r.sub.Off()
}
