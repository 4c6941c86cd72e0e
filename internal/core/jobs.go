// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"context"
	"time"
)

// Transport performs the outbound request to the third-party API. Implementations
// own retry and backoff; callers treat a call as a single logical request that
// either yields a response or fails terminally.
//
//go:generate mockgen -destination=../mocks/mock_transport.go -package=mocks . Transport
type Transport interface {
	// Do merges the resolved parameters into the configured request template and
	// executes it.
	Do(ctx context.Context, params map[string]any) (*UpstreamResponse, error)
}

// CallbackSender delivers the result of a deferred run to the address supplied
// by the original caller.
//
//go:generate mockgen -destination=../mocks/mock_callback_sender.go -package=mocks . CallbackSender
type CallbackSender interface {
	Deliver(ctx context.Context, url string, body map[string]any) error
}

// RunScheduler accepts deferred runs and executes them after the given delay.
// It returns an error if the run cannot be accepted, for example when too many
// runs are already waiting, providing a mechanism for backpressure.
//
//go:generate mockgen -destination=../mocks/mock_run_scheduler.go -package=mocks . RunScheduler
type RunScheduler interface {
	Schedule(run DeferredRun, delay time.Duration) error
}

// DeferredRun is a single unit of work executed by a RunScheduler once its delay
// has elapsed.
type DeferredRun interface {
	// Run executes the work. It receives a context for managing its lifecycle.
	Run(ctx context.Context)
}

// RunRecorder persists completed job runs.
//
//go:generate mockgen -destination=../mocks/mock_run_recorder.go -package=mocks . RunRecorder
type RunRecorder interface {
	SaveRun(ctx context.Context, run *JobRun) error
}

// UpstreamResponse is the normalized outcome of a transport call.
type UpstreamResponse struct {
	StatusCode int
	// Body holds the decoded JSON object returned by the API. It is nil when the
	// body was empty or not a JSON object.
	Body map[string]any
}
