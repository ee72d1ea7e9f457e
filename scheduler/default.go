package scheduler

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	defaultMu       sync.Mutex
	defaultInstance atomic.Pointer[Ticker]
)

/*
Default returns the process-wide shared scheduler, creating it on first use.

Initialization is double-checked: a lock-free read first, then the lock and
a re-check, because several goroutines may race to be the one that
constructs it. At most one instance is ever built. Arbitrarily many caches
may multiplex their sweeps onto it; callers that want isolation build their
own Scheduler with New instead.
*/
func Default() *Ticker {
	if s := defaultInstance.Load(); s != nil {
		return s
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if s := defaultInstance.Load(); s != nil {
		return s
	}
	s := New(zap.NewNop())
	defaultInstance.Store(s)
	return s
}
