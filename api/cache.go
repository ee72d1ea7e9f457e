// Package api declares the public contract of the cache, independent of
// the implementation behind it.
package api

/*
Cache is a bounded, time-limited key/value store. All methods are safe for
concurrent use by multiple goroutines.

BEHAVIOR GUARANTEES:

  - Put never fails and always resets the key's time-to-live. When the store
    is full it silently drops the oldest insertion to make room.
  - Get returns a value only while it is present, unexpired and unreclaimed;
    every other outcome is an indistinguishable miss. Expiry is checked on
    the read itself, so a stale value is never returned even when background
    cleanup lags.
  - GetOrCompute collapses concurrent misses on one key into a single
    supplier call.
  - Size is an upper bound: stale entries not yet cleaned up still count.
  - Close drops all entries and stops background work; calling it again is
    harmless.
*/
type Cache[K comparable, V any] interface {
	Put(key K, value V)
	Get(key K) (V, bool)
	GetOrCompute(key K, supplier func() (V, error)) (V, error)
	Size() int
	Close()
}
