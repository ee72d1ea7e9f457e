// Package reclaim implements memory-pressure reclamation policies.
//
// A policy may drop a cached payload at any time, independent of cache
// logic. The cache treats a cleared payload exactly like an absent entry:
// the removal happens lazily on the next lookup or sweep, and the caller
// cannot tell reclamation apart from any other kind of miss.
package reclaim

/*
Ref is the reclaim-side view of a cache entry: something whose payload can
be dropped. Clearing is one-way; a cleared payload never comes back.
*/
type Ref interface {
	Clear()
	Cleared() bool
}

/*
Policy decides when tracked payloads get dropped.

Track is called once per insertion; Release once the entry leaves the
cache, whether through lookup removal, sweep, eviction or Close. A policy
must tolerate Release for refs it never saw or already forgot.
*/
type Policy interface {
	Track(ref Ref)
	Release(ref Ref)
}

type none struct{}

func (none) Track(Ref)   {}
func (none) Release(Ref) {}

// None returns the never-reclaim policy: a payload lives exactly as long as
// its entry. This is the default, and the right choice when the host gives
// no usable pressure signal.
func None() Policy {
	return none{}
}
