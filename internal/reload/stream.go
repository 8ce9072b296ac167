// Package reload turns descriptor reloads into an event stream for the
// watch command: unchanged reloads are dropped, dependencies are resolved
// and lint findings are attached before events reach the subscriber.
package reload

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/samber/ro"

	"github.com/agripots/appdesc/internal/cache"
	"github.com/agripots/appdesc/internal/deps"
	"github.com/agripots/appdesc/internal/descriptor"
)

// Event is the outcome of one reload. Exactly one of Descriptor and Err is set.
type Event struct {
	Descriptor  *descriptor.Descriptor
	Err         error
	Fingerprint string
	Resolution  *deps.Resolution
	Findings    []descriptor.Finding
}

// Loaded builds the event for a successfully reloaded descriptor.
func Loaded(d *descriptor.Descriptor) Event {
	return Event{Descriptor: d, Fingerprint: Fingerprint(d)}
}

// Failed builds the event for a rejected reload.
func Failed(err error) Event {
	return Event{Err: err}
}

// Fingerprint hashes the canonical JSON form of d. It is empty when d
// cannot be encoded.
func Fingerprint(d *descriptor.Descriptor) string {
	data, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return cache.Key("descriptor", data)
}

// Stream wraps ch in an Observable that completes when ch is closed.
// A nil resolver leaves Resolution unset.
func Stream(ctx context.Context, ch <-chan Event, resolver *deps.Resolver, disabled ...string) ro.Observable[Event] {
	return ro.Pipe1(
		ro.Pipe2(
			ro.FromChannel(ch),
			SkipUnchanged(),
			WithResolution(ctx, resolver),
		),
		WithFindings(disabled...),
	)
}

// SkipUnchanged drops a successful event whose fingerprint equals the
// previous successful one. A failure in between resets the comparison so
// that reverting to the last good content is reported again.
func SkipUnchanged() func(ro.Observable[Event]) ro.Observable[Event] {
	var (
		mu   sync.Mutex
		last string
	)
	return ro.Filter(func(e Event) bool {
		mu.Lock()
		defer mu.Unlock()

		if e.Err != nil {
			last = ""
			return true
		}
		if e.Fingerprint != "" && e.Fingerprint == last {
			return false
		}
		last = e.Fingerprint
		return true
	})
}

// WithResolution resolves the dependencies of successful events. The
// resolver's cache answers reloads that left the dependencies unchanged.
// A resolution failure turns the event into a failure.
func WithResolution(ctx context.Context, resolver *deps.Resolver) func(ro.Observable[Event]) ro.Observable[Event] {
	return ro.Map(func(e Event) Event {
		if resolver == nil || e.Descriptor == nil {
			return e
		}
		res, err := resolver.Resolve(ctx, e.Descriptor.Dependencies)
		if err != nil {
			return Failed(fmt.Errorf("resolve dependencies: %w", err))
		}
		e.Resolution = res
		return e
	})
}

// WithFindings attaches lint findings to successful events.
func WithFindings(disabled ...string) func(ro.Observable[Event]) ro.Observable[Event] {
	return ro.Map(func(e Event) Event {
		if e.Descriptor != nil {
			e.Findings = e.Descriptor.Lint(disabled...)
		}
		return e
	})
}

// Consume delivers every event to onNext and returns once the stream
// completes or fails.
func Consume(events ro.Observable[Event], onNext func(Event)) error {
	errCh := make(chan error, 1)

	events.Subscribe(ro.NewObserver(
		onNext,
		func(err error) {
			errCh <- err
		},
		func() {
			close(errCh)
		},
	))

	return <-errCh
}

// Emitter feeds a stream from callbacks that may outlive it. Emit after
// Close is a no-op.
type Emitter struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

// NewEmitter creates an emitter with the given channel buffer.
func NewEmitter(buffer int) *Emitter {
	return &Emitter{ch: make(chan Event, buffer)}
}

// C returns the channel to pass to Stream.
func (e *Emitter) C() <-chan Event {
	return e.ch
}

// Emit sends ev unless the emitter is closed. It reports whether ev was sent.
func (e *Emitter) Emit(ev Event) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	e.ch <- ev
	return true
}

// Close closes the channel, completing the stream.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.ch)
	}
}
