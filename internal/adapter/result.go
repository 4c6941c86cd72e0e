package adapter

import (
	"net/http"

	"github.com/sevigo/adapter-bridge/internal/core"
)

const (
	inputNotFoundPrefix  = "Input parameter(s) not found: "
	outputNotFoundPrefix = "Output key(s) not found: "
	transportFailPrefix  = "Upstream request failed: "
)

func inputNotFound(jobRunID string, outcome core.ValidationOutcome) *core.AdapterResult {
	return &core.AdapterResult{
		JobRunID: jobRunID,
		Status:   http.StatusBadRequest,
		Message:  inputNotFoundPrefix + outcome.MissingMessage(),
		Error:    true,
	}
}

func outputNotFound(jobRunID string, status int, outcome core.ValidationOutcome) *core.AdapterResult {
	return &core.AdapterResult{
		JobRunID: jobRunID,
		Status:   status,
		Message:  outputNotFoundPrefix + outcome.MissingMessage(),
		Error:    true,
	}
}

func success(jobRunID string, resp *core.UpstreamResponse) *core.AdapterResult {
	return &core.AdapterResult{
		JobRunID: jobRunID,
		Status:   resp.StatusCode,
		Data:     resp.Body,
	}
}

// transportFailure converts a terminal transport error into a result so the
// caller always receives a structured answer.
func transportFailure(jobRunID string, err error) *core.AdapterResult {
	return &core.AdapterResult{
		JobRunID: jobRunID,
		Status:   http.StatusInternalServerError,
		Message:  transportFailPrefix + err.Error(),
		Error:    true,
	}
}
