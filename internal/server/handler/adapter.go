// Package handler provides the HTTP handlers of the adapter bridge.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sevigo/adapter-bridge/internal/core"
)

const maxBodyBytes = 1 << 20

// SyncRunner answers a request with a complete result.
type SyncRunner interface {
	Handle(ctx context.Context, req *core.JobRequest) *core.AdapterResult
}

// AsyncRunner acknowledges a request and completes it later.
type AsyncRunner interface {
	HandleAsync(ctx context.Context, req *core.JobRequest, acknowledge func(core.PendingAck)) error
}

// AdapterHandler serves the synchronous and asynchronous request endpoints.
type AdapterHandler struct {
	sync   SyncRunner
	async  AsyncRunner
	logger *slog.Logger
}

// NewAdapterHandler creates a handler backed by the given runners.
func NewAdapterHandler(sync SyncRunner, async AsyncRunner, logger *slog.Logger) *AdapterHandler {
	return &AdapterHandler{sync: sync, async: async, logger: logger}
}

// HandleSync runs the full cycle and replies with the result, using the
// result status as the HTTP status.
func (h *AdapterHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	result := h.sync.Handle(r.Context(), req)
	writeJSON(w, result.Status, result, h.logger)
}

// HandleAsync replies with a pending acknowledgement, flushed before the
// deferred run is scheduled.
func (h *AdapterHandler) HandleAsync(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	ack := func(a core.PendingAck) {
		writeJSON(w, http.StatusOK, a, h.logger)
		if err := http.NewResponseController(w).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			h.logger.Warn("failed to flush acknowledgement", "job_run_id", req.JobRunID, "error", err)
		}
	}

	// The caller has its answer once ack ran, so a scheduling error is only logged.
	if err := h.async.HandleAsync(r.Context(), req, ack); err != nil {
		h.logger.Warn("async request acknowledged but not scheduled", "job_run_id", req.JobRunID, "error", err)
	}
}

func (h *AdapterHandler) decode(w http.ResponseWriter, r *http.Request) (*core.JobRequest, bool) {
	var body core.RequestBody
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		h.logger.Warn("malformed request body", "error", err)
		writeJSON(w, http.StatusBadRequest, &core.AdapterResult{
			JobRunID: core.DefaultJobRunID,
			Status:   http.StatusBadRequest,
			Message:  "Malformed request body: " + err.Error(),
			Error:    true,
		}, h.logger)
		return nil, false
	}
	return body.ToJobRequest(), true
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}
