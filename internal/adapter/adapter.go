// Package adapter implements the validate, call, validate cycle for the
// synchronous and deferred request flows.
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sevigo/adapter-bridge/internal/core"
	"github.com/sevigo/adapter-bridge/internal/validator"
)

// Schemas holds the required fields for each direction.
type Schemas struct {
	Input  core.FieldSchema
	Output core.FieldSchema
}

// Adapter runs one full cycle per request and returns the normalized result.
type Adapter struct {
	schemas   Schemas
	transport core.Transport
	recorder  core.RunRecorder
	logger    *slog.Logger
}

// NewAdapter creates an Adapter. recorder may be nil, in which case runs are not persisted.
func NewAdapter(schemas Schemas, transport core.Transport, recorder core.RunRecorder, logger *slog.Logger) *Adapter {
	if transport == nil {
		panic("transport cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Adapter{schemas: schemas, transport: transport, recorder: recorder, logger: logger}
}

// Handle processes a request synchronously. Transport failures are converted
// into an error result; Handle never returns nil.
func (a *Adapter) Handle(ctx context.Context, req *core.JobRequest) *core.AdapterResult {
	result, err := a.execute(ctx, req)
	if err != nil {
		a.logger.Error("upstream request failed", "job_run_id", req.JobRunID, "error", err)
		result = transportFailure(jobRunIDOf(req), err)
	}
	a.record(ctx, core.RunModeSync, result, false)
	return result
}

// execute validates the input, calls the transport and validates the output.
// Validation failures are returned as results; only transport failures are
// returned as errors.
func (a *Adapter) execute(ctx context.Context, req *core.JobRequest) (*core.AdapterResult, error) {
	jobRunID := jobRunIDOf(req)

	input := validator.Validate(req.Data, a.schemas.Input)
	if !input.Resolved() {
		a.logger.Info("input validation failed", "job_run_id", jobRunID, "missing", input.MissingKeys)
		return inputNotFound(jobRunID, input), nil
	}

	resp, err := a.transport.Do(ctx, input.Params)
	if err != nil {
		return nil, fmt.Errorf("job run %s: %w", jobRunID, err)
	}

	output := validator.Validate(resp.Body, a.schemas.Output)
	if !output.Resolved() {
		a.logger.Warn("output validation failed",
			"job_run_id", jobRunID,
			"status", resp.StatusCode,
			"missing", output.MissingKeys,
		)
		return outputNotFound(jobRunID, resp.StatusCode, output), nil
	}

	a.logger.Info("job run completed", "job_run_id", jobRunID, "status", resp.StatusCode)
	return success(jobRunID, resp), nil
}

func (a *Adapter) record(ctx context.Context, mode core.RunMode, result *core.AdapterResult, delivered bool) {
	if a.recorder == nil {
		return
	}
	run := &core.JobRun{
		ID:                uuid.NewString(),
		JobRunID:          result.JobRunID,
		Mode:              mode,
		Status:            result.Status,
		Error:             result.Error,
		Message:           result.Message,
		CallbackDelivered: delivered,
		CreatedAt:         time.Now().UTC(),
	}
	if err := a.recorder.SaveRun(ctx, run); err != nil {
		a.logger.Warn("failed to record job run", "job_run_id", result.JobRunID, "error", err)
	}
}

func jobRunIDOf(req *core.JobRequest) string {
	if req.JobRunID == "" {
		return core.DefaultJobRunID
	}
	return req.JobRunID
}
