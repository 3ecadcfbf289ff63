package valutatrade

import (
	"log"
	"sync"
	"time"
)

// Scheduler runs aggregation cycles on a fixed interval in a long-lived
// loop. A failed cycle is never fatal: it is logged and the next attempt is
// scheduled after a shortened backoff interval.
type Scheduler struct {
	updater  RateUpdater
	interval time.Duration
	backoff  time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler returns a scheduler that runs one cycle every interval and
// retries after backoff when a cycle fails.
func NewScheduler(updater RateUpdater, interval, backoff time.Duration) *Scheduler {
	return &Scheduler{
		updater:  updater,
		interval: interval,
		backoff:  backoff,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks, executing cycles until Stop is called. The first cycle runs
// immediately.
func (s *Scheduler) Run() {
	defer close(s.done)
	log.Printf("starting scheduler with interval %s", s.interval)
	for {
		wait := s.interval
		n, err := s.updater.RunUpdate()
		switch {
		case err != nil:
			log.Printf("scheduler cycle error: %v", err)
			wait = s.backoff
		case n == 0:
			log.Print("scheduler cycle updated no pairs, all sources failed")
			wait = s.backoff
		default:
			log.Printf("scheduler cycle updated %d pairs", n)
		}

		timer := time.NewTimer(wait)
		select {
		case <-s.stop:
			timer.Stop()
			log.Print("scheduler stopped")
			return
		case <-timer.C:
		}
	}
}

// Stop terminates the loop and waits for Run to return. A cycle already in
// flight runs to completion first. Stop may be called more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}
