package types

import (
	"sync/atomic"
	"time"
)

/*
Holder owns one CacheValue on behalf of the cache, with one twist:
a reclamation policy may drop the payload at any moment, without the
cache being told. This models memory-pressure reclamation.

At any read a holder is in exactly one of three states:

- present and fresh    → TryRead returns the payload
- present but expired  → TryRead still returns it, Expired reports true
- cleared              → TryRead reports the payload is gone

"Expired" and "cleared" are orthogonal conditions. Time is the cache's
business; clearing is the reclamation policy's. Only present-and-fresh
satisfies a lookup.
*/
type Holder[V any] struct {
	expiresAt time.Time
	payload   atomic.Pointer[V]
}

// NewHolder wraps value for storage. The value's ExpiresAt must be set.
func NewHolder[V any](value CacheValue[V]) *Holder[V] {
	h := &Holder[V]{expiresAt: value.ExpiresAt}
	p := value.Payload
	h.payload.Store(&p)
	return h
}

// TryRead returns the payload, or ok=false once a reclamation policy
// has cleared it.
func (h *Holder[V]) TryRead() (V, bool) {
	p := h.payload.Load()
	if p == nil {
		var zero V
		return zero, false
	}
	return *p, true
}

// Expired reports whether the held value is past its expiration instant.
// It answers for cleared holders too; the caller decides which condition
// takes precedence.
func (h *Holder[V]) Expired(now time.Time) bool {
	return now.After(h.expiresAt)
}

// Clear drops the payload so it can be collected. The transition is one-way
// and idempotent. Only reclamation policies call this, never cache logic.
func (h *Holder[V]) Clear() {
	h.payload.Store(nil)
}

// Cleared reports whether the payload has been dropped.
func (h *Holder[V]) Cleared() bool {
	return h.payload.Load() == nil
}
