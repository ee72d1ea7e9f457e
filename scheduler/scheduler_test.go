package scheduler_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"expcache/scheduler"
)

func TestTaskRunsAfterInitialDelay(t *testing.T) {
	s := scheduler.New(nil)

	var runs atomic.Int32
	h := s.Schedule("delayed", 80*time.Millisecond, 20*time.Millisecond, func() {
		runs.Add(1)
	})
	defer h.Cancel()

	time.Sleep(30 * time.Millisecond)
	if n := runs.Load(); n != 0 {
		t.Fatalf("expected no run before the initial delay, got %d", n)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runs.Load() >= 3 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected at least 3 periodic runs, got %d", runs.Load())
}

func TestCancelIsIdempotentAndStopsRuns(t *testing.T) {
	s := scheduler.New(nil)

	var runs atomic.Int32
	h := s.Schedule("cancelled", 10*time.Millisecond, 10*time.Millisecond, func() {
		runs.Add(1)
	})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && runs.Load() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if runs.Load() == 0 {
		t.Fatalf("task never ran")
	}

	h.Cancel()
	h.Cancel() // safe to repeat
	if !h.Cancelled() {
		t.Fatalf("expected handle to report cancelled")
	}

	settled := runs.Load()
	time.Sleep(100 * time.Millisecond)
	if n := runs.Load(); n > settled+1 {
		t.Fatalf("task kept running after cancel: %d -> %d", settled, n)
	}

	// The owning goroutine exits and the active count drains.
	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Active() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected zero active tasks, got %d", s.Active())
}

func TestTaskMayCancelItself(t *testing.T) {
	s := scheduler.New(nil)

	var runs atomic.Int32
	handleCh := make(chan *scheduler.Handle, 1)
	done := make(chan struct{})
	h := s.Schedule("self-cancel", 10*time.Millisecond, 10*time.Millisecond, func() {
		if runs.Add(1) == 1 {
			(<-handleCh).Cancel()
			close(done)
		}
	})
	handleCh <- h

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("task never ran")
	}

	time.Sleep(100 * time.Millisecond)
	if n := runs.Load(); n != 1 {
		t.Fatalf("expected exactly one run after self-cancel, got %d", n)
	}
}

func TestDefaultInitializedOnce(t *testing.T) {
	const goroutines = 32

	instances := make([]*scheduler.Ticker, goroutines)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			instances[i] = scheduler.Default()
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if instances[i] != instances[0] {
			t.Fatalf("expected a single shared default scheduler")
		}
	}
}
