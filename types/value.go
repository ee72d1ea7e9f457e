package types

import "time"

/*
CacheValue pairs a payload with the absolute instant it stops being valid.

ExpiresAt is computed exactly once, when the value enters the cache, and
never changes afterwards. Storing the same key again builds a brand new
CacheValue; that is how a TTL gets reset. A CacheValue with a zero
ExpiresAt is invalid; the cache always fills it in.
*/
type CacheValue[V any] struct {
	Payload   V
	ExpiresAt time.Time
}

// Expired reports whether the value is past its expiration instant.
// The comparison is strict: a value read exactly at ExpiresAt is still fresh.
func (v CacheValue[V]) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
