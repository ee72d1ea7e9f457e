package reclaim

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"expcache/scheduler"
)

/*
WatermarkPolicy samples the heap on a recurring schedule and drops every
tracked payload once heap allocation crosses a caller-chosen soft limit.

The limit is explicit configuration, not a guess at runtime internals: the
policy reads runtime.MemStats and compares HeapAlloc against it. Like the
GC clearing soft references, the purge is all-or-nothing; cached payloads
are by contract "may already be gone", so dropping them is always safe.
*/
type WatermarkPolicy struct {
	*TriggeredPolicy

	limit  uint64
	logger *zap.Logger
	handle *scheduler.Handle
}

// Watermark builds a policy that checks HeapAlloc against limit (bytes)
// every interval, on sched. A nil sched uses the shared default scheduler;
// a nil logger disables logging. Close the policy when done with it.
func Watermark(limit uint64, interval time.Duration, sched scheduler.Scheduler, logger *zap.Logger) *WatermarkPolicy {
	if sched == nil {
		sched = scheduler.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &WatermarkPolicy{
		TriggeredPolicy: Triggered(),
		limit:           limit,
		logger:          logger,
	}
	p.handle = sched.Schedule("reclaim-watermark", interval, interval, p.check)
	return p
}

func (p *WatermarkPolicy) check() {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	if stats.HeapAlloc <= p.limit {
		return
	}

	if n := p.ReclaimAll(); n > 0 {
		p.logger.Debug("reclaimed cached payloads under memory pressure",
			zap.Uint64("heapAlloc", stats.HeapAlloc),
			zap.Uint64("limit", p.limit),
			zap.Int("cleared", n))
	}
}

// Close stops the sampling task. Idempotent.
func (p *WatermarkPolicy) Close() {
	p.handle.Cancel()
}
