// Package scheduler runs recurring background tasks at a fixed period.
//
// One scheduler instance may be shared by any number of owners; tasks from
// independent owners never interfere with each other. The scheduler owns no
// state of its owners. It only knows how to run a function again and again
// until its handle is cancelled.
package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

/*
Scheduler is the "can schedule recurring work" capability.

Schedule runs task for the first time once initialDelay has elapsed, then
every period after that, and returns a handle for cancellation. A given task
is never re-entered: at most one execution is in flight at any time.

Active reports how many scheduled tasks have not yet stopped, which lets
owners (and their tests) verify that nothing leaked.
*/
type Scheduler interface {
	Schedule(name string, initialDelay, period time.Duration, task func()) *Handle
	Active() int
}

// Handle identifies one scheduled recurring task.
type Handle struct {
	once   sync.Once
	cancel chan struct{}
}

// NewHandle returns a fresh, uncancelled handle. Scheduler implementations
// mint one per task and watch Done for cancellation.
func NewHandle() *Handle {
	return &Handle{cancel: make(chan struct{})}
}

// Cancel stops future executions of the task. It is idempotent, never
// blocks, and is safe to call from inside the task itself: an execution
// already in flight is allowed to finish, it just never runs again.
func (h *Handle) Cancel() {
	h.once.Do(func() { close(h.cancel) })
}

// Done is closed once the handle is cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.cancel
}

// Cancelled reports whether Cancel has been called.
func (h *Handle) Cancelled() bool {
	select {
	case <-h.cancel:
		return true
	default:
		return false
	}
}

/*
Ticker is the default Scheduler. Each task gets its own goroutine driven by
a time.Ticker, so executions of one task run strictly one after another.
Goroutines park in channel waits between runs and never hold the process
open the way a foreground worker would.

Every task receives a distinct generated name (a monotonic counter appended
to the caller's name) used in the scheduler's debug logs.
*/
type Ticker struct {
	logger  *zap.Logger
	counter atomic.Uint64
	active  atomic.Int64
}

// New builds a Ticker scheduler. A nil logger disables logging.
func New(logger *zap.Logger) *Ticker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ticker{logger: logger}
}

func (s *Ticker) Schedule(name string, initialDelay, period time.Duration, task func()) *Handle {
	h := NewHandle()
	taskName := fmt.Sprintf("%s-%d", name, s.counter.Add(1))
	s.active.Add(1)

	s.logger.Debug("scheduling recurring task",
		zap.String("task", taskName),
		zap.Duration("initialDelay", initialDelay),
		zap.Duration("period", period))

	go func() {
		defer func() {
			s.active.Add(-1)
			s.logger.Debug("recurring task stopped", zap.String("task", taskName))
		}()

		delay := time.NewTimer(initialDelay)
		defer delay.Stop()
		select {
		case <-h.cancel:
			return
		case <-delay.C:
		}
		if h.Cancelled() {
			return
		}
		task()

		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-h.cancel:
				return
			case <-ticker.C:
			}
			// The task may have cancelled its own handle during the
			// previous run; a tick can race that cancellation.
			if h.Cancelled() {
				return
			}
			task()
		}
	}()

	return h
}

// Active returns the number of scheduled tasks that have not yet stopped.
func (s *Ticker) Active() int {
	return int(s.active.Load())
}
