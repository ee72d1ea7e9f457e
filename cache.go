/*
Package expcache provides a bounded, time-limited key/value cache: a
drop-in replacement for an unbounded map when entries must disappear under
three independent pressures: elapsed time, entry count, and host memory
scarcity.

A cache is built from three collaborators:

  - boundedmap.Map caps the entry count, silently dropping the oldest
    insertion on overflow. It knows nothing about time.
  - types.Holder wraps each value with its absolute expiry instant and lets a
    reclamation policy drop the payload behind the cache's back.
  - scheduler.Scheduler runs the recurring background sweep that batches
    expiration cleanup. The scheduler is borrowed, never owned: many caches
    can multiplex one scheduler.

The sweep is lazy in both directions. It starts the first time the cache
becomes non-empty and cancels itself the first time the cache drains, so an
idle cache costs no background work. Expiry itself is exact on reads (Get
checks the clock regardless of sweep timing), while background cleanup may
lag by up to one sweep period.
*/
package expcache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"expcache/api"
	"expcache/boundedmap"
	"expcache/events"
	"expcache/reclaim"
	"expcache/scheduler"
	"expcache/types"
)

var _ api.Cache[int, string] = (*Cache[int, string])(nil)

// ErrExpirationTooShort is returned by New when the expiration is below the
// one-second floor.
var ErrExpirationTooShort = errors.New("expiration must be at least one second")

const minExpiration = time.Second

/*
Cache is the public cache. All methods are safe for concurrent use.

Two independent critical sections protect its state. The entry table is
guarded by mu at the granularity of a single operation. The sweep handle is
guarded separately (sweep + sweepMu) with a check-lock-recheck discipline:
the fast path is a lock-free atomic read, and only a goroutine that
observes the wrong state takes sweepMu, re-verifying afterwards, because
several goroutines may race to be the one that starts or stops the sweep.
Keeping the two apart stops every Put and Get from serializing behind a
lock that exists only for a rare lifecycle transition.

The central invariant: at most one live sweep handle per cache instance.
*/
type Cache[K comparable, V any] struct {
	name       string
	expiration time.Duration

	mu      sync.Mutex
	entries *boundedmap.Map[K, *types.Holder[V]]

	sweep   atomic.Pointer[scheduler.Handle]
	sweepMu sync.Mutex

	sched  scheduler.Scheduler
	sink   events.Sink
	policy reclaim.Policy
	logger *zap.Logger
	flight singleflight.Group
}

/*
New builds a cache that keeps entries for expiration and holds at most
maxSize of them. The name labels the sweep task and log fields.

Both bounds are validated here and never surface again: expiration below
one second or maxSize below one fails construction. Zero-value keys and
values are stored as-is; the cache imposes no further restrictions on them.
*/
func New[K comparable, V any](name string, expiration time.Duration, maxSize int, opts ...Option) (*Cache[K, V], error) {
	if expiration < minExpiration {
		return nil, fmt.Errorf("cache %q: %w (got %s)", name, ErrExpirationTooShort, expiration)
	}

	entries, err := boundedmap.New[K, *types.Holder[V]](maxSize)
	if err != nil {
		return nil, fmt.Errorf("cache %q: %w", name, err)
	}

	cfg := newConfig(opts)

	return &Cache[K, V]{
		name:       name,
		expiration: expiration,
		entries:    entries,
		sched:      cfg.scheduler,
		sink:       cfg.sink,
		policy:     cfg.policy,
		logger:     cfg.logger,
	}, nil
}

/*
Put stores value under key. It never fails: the key's expiry resets to
now + expiration, and if the table is full the oldest insertion is dropped
silently, possibly an unrelated key, with no signal beyond the event sink.
*/
func (c *Cache[K, V]) Put(key K, value V) {
	holder := types.NewHolder(types.CacheValue[V]{
		Payload:   value,
		ExpiresAt: time.Now().UTC().Add(c.expiration),
	})
	c.policy.Track(holder)

	c.mu.Lock()
	prev, replaced, evicted := c.entries.Put(key, holder)
	c.mu.Unlock()

	if replaced {
		c.policy.Release(prev)
	}
	for _, ev := range evicted {
		c.policy.Release(ev.Value)
		c.sink.Evicted(ev.Key)
	}

	c.logger.Debug("put", zap.String("cache", c.name), zap.Any("key", key))
	c.startSweepIfNeeded()
}

/*
Get returns the live value stored under key. Absence, capacity eviction,
expiry and reclamation are indistinguishable to the caller: all come back
as ok=false.

Expiry is checked here, on every read, so a stale value is never returned
even when the background sweep lags. A stale entry found here is removed on
the spot, and if that removal drains the table the sweep is cancelled
immediately rather than left for the next tick.
*/
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	now := time.Now().UTC()

	c.mu.Lock()
	holder, ok := c.entries.Get(key)
	if !ok {
		c.mu.Unlock()
		c.logger.Debug("not in cache", zap.String("cache", c.name), zap.Any("key", key))
		c.sink.Miss(key)
		return zero, false
	}

	payload, retained := holder.TryRead()
	if !retained || holder.Expired(now) {
		c.entries.Remove(key)
		c.mu.Unlock()

		c.policy.Release(holder)
		if !retained {
			c.sink.Reclaimed(key)
		} else {
			c.sink.Expired(key)
		}
		c.sink.Miss(key)
		c.stopSweepIfEmpty()
		return zero, false
	}
	c.mu.Unlock()

	c.sink.Hit(key)
	return payload, true
}

/*
GetOrCompute returns the value for key, computing and storing it on a miss.

Concurrent callers missing on the same key share a single supplier call:
the flight group collapses them, so an expensive recomputation runs exactly
once per miss episode and every caller receives its result. A supplier
error propagates to all waiters and nothing is stored.
*/
func (c *Cache[K, V]) GetOrCompute(key K, supplier func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.flight.Do(fmt.Sprint(key), func() (any, error) {
		// Re-check inside the flight: a racing caller may have stored the
		// value while this one waited its turn.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		value, err := supplier()
		if err != nil {
			return nil, err
		}
		c.Put(key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Size returns the current entry count. Entries that are stale but not yet
// swept are included, so this is an upper bound on live entries, not an
// exact count.
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

/*
Close drops every entry and unconditionally cancels any live sweep. It is
idempotent and never blocks on an in-flight sweep pass. Reuse after Close
works on a best-effort basis: a later Put schedules a fresh sweep.
*/
func (c *Cache[K, V]) Close() {
	c.mu.Lock()
	c.entries.Range(func(_ K, holder *types.Holder[V]) bool {
		c.policy.Release(holder)
		return true
	})
	c.entries.Clear()
	c.mu.Unlock()

	c.sweepMu.Lock()
	if handle := c.sweep.Load(); handle != nil {
		handle.Cancel()
		c.sweep.Store(nil)
		c.sink.SweepStopped(c.name)
	}
	c.sweepMu.Unlock()

	c.logger.Debug("closed", zap.String("cache", c.name))
}

// startSweepIfNeeded moves the cache from idle to active. The sweep fires
// first after one full expiration and then every half expiration:
// oversampling by two bounds worst-case staleness to about one and a half
// times the nominal window.
func (c *Cache[K, V]) startSweepIfNeeded() {
	if c.sweep.Load() != nil {
		return
	}

	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	// Re-check: a concurrent Put may have won the race.
	if c.sweep.Load() != nil {
		return
	}

	handle := c.sched.Schedule(c.name+"-sweep", c.expiration, c.expiration/2, c.runSweep)
	c.sweep.Store(handle)
	c.sink.SweepScheduled(c.name)
}

// stopSweepIfEmpty moves the cache from active to idle once the table has
// drained. Cancelling never waits for an in-flight pass (it means "don't
// run again", not "stop now"), which is what makes it safe to reach this
// from inside the sweep itself.
func (c *Cache[K, V]) stopSweepIfEmpty() {
	if c.Size() > 0 {
		return
	}
	if c.sweep.Load() == nil {
		return
	}

	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	handle := c.sweep.Load()
	if handle == nil {
		return
	}
	// A Put may have refilled the table while we took the lock.
	if c.Size() > 0 {
		return
	}

	handle.Cancel()
	c.sweep.Store(nil)
	c.sink.SweepStopped(c.name)
}

/*
runSweep removes every expired or reclaimed entry in one batch.

The pass is split in two so the table is never mutated while being
iterated: first a read-only snapshot of the stale keys, then a separate
removal pass. Splitting also bounds how long foreground Put and Get calls
contend with the sweep: each half holds the table lock once. A single
anomalous entry never aborts the pass; it is simply collected like any
other stale key. When the table comes out empty, the sweep cancels its own
handle.
*/
func (c *Cache[K, V]) runSweep() {
	c.sink.SweepStarted(c.name)
	start := time.Now()
	now := start.UTC()

	var stale []K
	c.mu.Lock()
	c.entries.Range(func(key K, holder *types.Holder[V]) bool {
		if holder.Cleared() || holder.Expired(now) {
			stale = append(stale, key)
		}
		return true
	})
	c.mu.Unlock()

	c.mu.Lock()
	for _, key := range stale {
		if holder, ok := c.entries.Remove(key); ok {
			c.policy.Release(holder)
		}
	}
	c.mu.Unlock()

	c.sink.SweepFinished(c.name, time.Since(start), len(stale))
	c.stopSweepIfEmpty()
}
