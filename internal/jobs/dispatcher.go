// Package jobs runs deferred work on a pool of worker goroutines.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sevigo/adapter-bridge/internal/core"
)

var (
	// ErrSchedulerFull is returned when too many runs are already waiting.
	ErrSchedulerFull = errors.New("scheduler is full, cannot accept new run")
	// ErrSchedulerStopped is returned once Stop has been called.
	ErrSchedulerStopped = errors.New("scheduler is stopped")
)

const queueSize = 100

// Config controls the scheduler's worker pool.
type Config struct {
	MaxWorkers int
	MaxPending int
}

type pendingRun struct {
	timer clockwork.Timer
	run   core.DeferredRun
}

// Scheduler implements core.RunScheduler. Runs wait on a clock timer and are then
// handed to a pool of worker goroutines through a buffered queue.
type Scheduler struct {
	clock      clockwork.Clock
	queue      chan core.DeferredRun // Runs whose delay has elapsed.
	maxWorkers int
	maxPending int
	logger     *slog.Logger

	mu      sync.Mutex
	pending map[uint64]*pendingRun
	nextID  uint64
	stopped bool

	timers  sync.WaitGroup // Armed runs not yet handed to the queue.
	workers sync.WaitGroup // Active workers, for graceful shutdown.
}

var _ core.RunScheduler = (*Scheduler)(nil)

// NewScheduler initializes a scheduler and starts its workers.
// If MaxWorkers is 0 or negative, it defaults to 1. If MaxPending is 0 or
// negative the number of waiting runs is not bounded.
func NewScheduler(cfg Config, clock clockwork.Clock, logger *slog.Logger) *Scheduler {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Scheduler{
		clock:      clock,
		queue:      make(chan core.DeferredRun, queueSize),
		maxWorkers: cfg.MaxWorkers,
		maxPending: cfg.MaxPending,
		logger:     logger,
		pending:    make(map[uint64]*pendingRun),
	}
	s.startWorkers()
	return s
}

// startWorkers launches maxWorkers goroutines to process runs from the queue.
func (s *Scheduler) startWorkers() {
	for i := 0; i < s.maxWorkers; i++ {
		s.workers.Add(1)
		go s.startWorker(i)
	}
}

// startWorker processes runs from the queue until it's closed.
func (s *Scheduler) startWorker(workerID int) {
	defer s.workers.Done()
	s.logger.Debug("starting deferred run worker", "id", workerID)

	for run := range s.queue {
		run.Run(context.Background())
	}

	s.logger.Debug("shutting down deferred run worker", "id", workerID)
}

// Schedule arms a timer that queues run once delay has elapsed.
func (s *Scheduler) Schedule(run core.DeferredRun, delay time.Duration) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrSchedulerStopped
	}
	if s.maxPending > 0 && len(s.pending) >= s.maxPending {
		s.mu.Unlock()
		return ErrSchedulerFull
	}
	s.nextID++
	id := s.nextID
	s.pending[id] = &pendingRun{run: run}
	s.timers.Add(1)
	s.mu.Unlock()

	// The timer is armed outside the lock: a zero delay may fire immediately.
	timer := s.clock.AfterFunc(delay, func() { s.release(id) })

	s.mu.Lock()
	p, ok := s.pending[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	p.timer = timer
	// Stop may have run while the timer was being armed.
	flush := s.stopped && timer.Stop()
	if flush {
		delete(s.pending, id)
	}
	s.mu.Unlock()

	if flush {
		s.queue <- run
		s.timers.Done()
	}
	return nil
}

// Pending returns the number of runs still waiting for their delay.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// release moves an armed run onto the work queue.
func (s *Scheduler) release(id uint64) {
	s.mu.Lock()
	p, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()

	if !ok {
		return
	}
	defer s.timers.Done()
	s.queue <- p.run
}

// Stop refuses new runs, releases every armed run immediately and waits for
// all queued runs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler and waiting for deferred runs to finish")

	s.mu.Lock()
	s.stopped = true
	var flush []core.DeferredRun
	for id, p := range s.pending {
		if p.timer != nil && p.timer.Stop() {
			delete(s.pending, id)
			flush = append(flush, p.run)
		}
	}
	s.mu.Unlock()

	if len(flush) > 0 {
		s.logger.Info("releasing deferred runs before their delay", "count", len(flush))
	}
	for _, run := range flush {
		s.queue <- run
		s.timers.Done()
	}

	s.timers.Wait()
	close(s.queue)
	s.workers.Wait()
	s.logger.Info("all deferred runs have finished")
}
