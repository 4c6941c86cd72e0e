package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sevigo/adapter-bridge/internal/core"
)

// AsyncAdapter acknowledges requests immediately and completes them on a
// deferred run that reports back through a callback.
type AsyncAdapter struct {
	adapter   *Adapter
	scheduler core.RunScheduler
	callbacks core.CallbackSender
	delay     time.Duration
	logger    *slog.Logger
}

// NewAsyncAdapter creates an AsyncAdapter. delay is the wait applied before each
// deferred run starts.
func NewAsyncAdapter(adapter *Adapter, scheduler core.RunScheduler, callbacks core.CallbackSender, delay time.Duration, logger *slog.Logger) *AsyncAdapter {
	if adapter == nil {
		panic("adapter cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if callbacks == nil {
		panic("callback sender cannot be nil")
	}
	if delay < 0 {
		delay = 0
	}
	return &AsyncAdapter{
		adapter:   adapter,
		scheduler: scheduler,
		callbacks: callbacks,
		delay:     delay,
		logger:    logger,
	}
}

// HandleAsync calls acknowledge with a pending acknowledgement before doing any
// other work, then schedules the deferred run. The returned error only reports
// scheduling failures; the caller has already been answered.
func (a *AsyncAdapter) HandleAsync(_ context.Context, req *core.JobRequest, acknowledge func(core.PendingAck)) error {
	acknowledge(core.PendingAck{Pending: true})

	run := &deferredRun{async: a, req: req, delay: a.delay}
	if err := a.scheduler.Schedule(run, a.delay); err != nil {
		a.logger.Error("failed to schedule deferred run", "job_run_id", req.JobRunID, "error", err)
		return fmt.Errorf("failed to schedule deferred run: %w", err)
	}
	a.logger.Info("deferred run scheduled", "job_run_id", req.JobRunID, "delay", a.delay)
	return nil
}

// deferredRun implements core.DeferredRun for one acknowledged request.
type deferredRun struct {
	async *AsyncAdapter
	req   *core.JobRequest
	delay time.Duration
}

// Run executes the cycle and delivers the result. Failures are logged since
// nobody is waiting on the original call any more.
func (r *deferredRun) Run(ctx context.Context) {
	a := r.async
	logger := a.logger.With("job_run_id", r.req.JobRunID)

	result, err := a.adapter.execute(ctx, r.req)
	if err != nil {
		logger.Error("deferred run failed, result dropped", "error", err)
		a.adapter.record(ctx, core.RunModeAsync, transportFailure(jobRunIDOf(r.req), err), false)
		return
	}

	if r.req.ResponseURL == "" {
		logger.Warn("no callback address supplied, result dropped", "status", result.Status)
		a.adapter.record(ctx, core.RunModeAsync, result, false)
		return
	}

	body := result.Fields()
	body["pending"] = false
	body["ranFor"] = r.delay.Milliseconds()

	delivered := true
	if err := a.callbacks.Deliver(ctx, r.req.ResponseURL, body); err != nil {
		delivered = false
		logger.Error("callback delivery failed", "url", r.req.ResponseURL, "error", err)
	} else {
		logger.Info("callback delivered", "url", r.req.ResponseURL, "status", result.Status)
	}
	a.adapter.record(ctx, core.RunModeAsync, result, delivered)
}
