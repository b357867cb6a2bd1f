// Package scheduler provides the tick-based delayed-execution collaborator
// behind the "delay" sub-command.
//
// Callbacks are fire-once with no cancellation handle. They run on the tick
// goroutine, so a deferred command re-enters the host's command path the
// same way a live console line would; the host's single-threaded command
// pump serializes the two.
package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mattjoyce/herald/internal/log"
)

type entry struct {
	at time.Time
	fn func()
}

// Scheduler runs delayed callbacks off a single tick loop.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	pending  []entry
	stopCh   chan struct{}
	wg       sync.WaitGroup
	now      func() time.Time
	logger   *slog.Logger
}

// New creates a scheduler ticking at interval.
func New(interval time.Duration) *Scheduler {
	return &Scheduler{
		interval: interval,
		stopCh:   make(chan struct{}),
		now:      time.Now,
		logger:   log.WithComponent("scheduler"),
	}
}

// Schedule queues fn to run once after delay. There is no cancellation.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, entry{at: s.now().Add(delay), fn: fn})
}

// Start begins the tick loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("scheduler started", "tick_interval", s.interval)
	s.wg.Add(1)
	go s.tickLoop(ctx)
}

// Stop gracefully stops the scheduler. Pending callbacks are dropped.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) tickLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// tick runs every callback whose time has come, in schedule order.
func (s *Scheduler) tick() {
	now := s.now()

	s.mu.Lock()
	var due, rest []entry
	for _, e := range s.pending {
		if !e.at.After(now) {
			due = append(due, e)
		} else {
			rest = append(rest, e)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })

	for _, e := range due {
		s.run(e.fn)
	}
}

// run absorbs callback panics; a deferred command must not kill the loop.
func (s *Scheduler) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("delayed callback panicked", "panic", r)
		}
	}()
	fn()
}
