package valutatrade

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// countingUpdater records cycle invocations and fails the configured ones.
type countingUpdater struct {
	mu      sync.Mutex
	calls   int
	failAll bool
}

func (c *countingUpdater) RunUpdate(filters ...string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.failAll {
		return 0, errors.New("boom")
	}
	return 1, nil
}

func (c *countingUpdater) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func waitForCalls(t *testing.T, c *countingUpdater, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.count() >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("updater ran %d cycles, want at least %d", c.count(), want)
}

func TestScheduler_RunsFirstCycleImmediately(t *testing.T) {
	u := &countingUpdater{}
	sched := NewScheduler(u, time.Hour, time.Hour)
	go sched.Run()
	waitForCalls(t, u, 1)
	sched.Stop()

	if u.count() != 1 {
		t.Errorf("updater ran %d cycles, want 1 with an hour-long interval", u.count())
	}
}

func TestScheduler_BacksOffAndContinuesAfterFailure(t *testing.T) {
	u := &countingUpdater{failAll: true}
	// Interval deliberately huge: only the backoff path can produce a second
	// cycle within the test deadline.
	sched := NewScheduler(u, time.Hour, time.Millisecond)
	go sched.Run()
	waitForCalls(t, u, 3)
	sched.Stop()
}

func TestScheduler_StopReturns(t *testing.T) {
	u := &countingUpdater{}
	sched := NewScheduler(u, time.Hour, time.Hour)
	go sched.Run()
	waitForCalls(t, u, 1)

	stopped := make(chan struct{})
	go func() {
		sched.Stop()
		// A repeated Stop must return immediately instead of panicking.
		sched.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return")
	}
}
