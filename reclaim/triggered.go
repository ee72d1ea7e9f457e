package reclaim

import "sync"

/*
TriggeredPolicy drops payloads when the caller says so.

This is the runtime-advised variant for hosts where the application owns
the pressure signal: a cgroup memory notification, an RSS watchdog, an
operator endpoint. The policy itself never invents pressure; it just keeps
track of live refs and clears them all when told to.
*/
type TriggeredPolicy struct {
	mu   sync.Mutex
	refs map[Ref]struct{}
}

// Triggered builds an empty TriggeredPolicy.
func Triggered() *TriggeredPolicy {
	return &TriggeredPolicy{refs: make(map[Ref]struct{})}
}

func (p *TriggeredPolicy) Track(ref Ref) {
	p.mu.Lock()
	p.refs[ref] = struct{}{}
	p.mu.Unlock()
}

func (p *TriggeredPolicy) Release(ref Ref) {
	p.mu.Lock()
	delete(p.refs, ref)
	p.mu.Unlock()
}

// ReclaimAll clears every tracked payload and forgets the refs. It returns
// how many payloads were dropped. The owning caches discover the loss
// lazily, on their next lookup or sweep.
func (p *TriggeredPolicy) ReclaimAll() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for ref := range p.refs {
		if !ref.Cleared() {
			ref.Clear()
			n++
		}
		delete(p.refs, ref)
	}
	return n
}

// Tracked returns the number of refs currently under watch.
func (p *TriggeredPolicy) Tracked() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.refs)
}
