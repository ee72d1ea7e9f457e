// Package events defines the trace-event sink a cache reports to.
package events

import "time"

/*
Sink receives trace events from a cache.

Sinks are purely observational: the cache behaves identically whether or
not anybody is listening, and nothing a sink does can steer control flow.
Every callback runs on the foreground Put/Get path or inside the sweep, so
implementations must be fast and must not block.
*/
type Sink interface {

	// Hit is called when a lookup returns a live value.
	Hit(key any)

	// Miss is called when a lookup comes back empty, whatever the reason:
	// absence, capacity eviction, expiry or reclamation all look the same
	// to the caller.
	Miss(key any)

	// Expired is called when a lookup or a sweep removes an entry whose
	// time-to-live has elapsed.
	Expired(key any)

	// Reclaimed is called when an entry is removed because a reclamation
	// policy already dropped its payload.
	Reclaimed(key any)

	// Evicted is called when an insert pushes out the oldest entry to stay
	// within capacity.
	Evicted(key any)

	// SweepScheduled is called when the cache transitions from idle to
	// active and a recurring sweep is registered.
	SweepScheduled(cache string)

	// SweepStarted is called at the beginning of each sweep pass.
	SweepStarted(cache string)

	// SweepFinished is called after each sweep pass with its duration and
	// the number of entries it cleared.
	SweepFinished(cache string, took time.Duration, cleared int)

	// SweepStopped is called when the sweep is cancelled, either because
	// the cache drained or because it was closed.
	SweepStopped(cache string)
}

/*
Nop ignores every event.

It is the default sink, so the cache never nil-checks before reporting.
*/
type Nop struct{}

func (Nop) Hit(any)                                  {}
func (Nop) Miss(any)                                 {}
func (Nop) Expired(any)                              {}
func (Nop) Reclaimed(any)                            {}
func (Nop) Evicted(any)                              {}
func (Nop) SweepScheduled(string)                    {}
func (Nop) SweepStarted(string)                      {}
func (Nop) SweepFinished(string, time.Duration, int) {}
func (Nop) SweepStopped(string)                      {}
