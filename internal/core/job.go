package core

import (
	"encoding/json"
	"maps"
	"strings"
)

// DefaultJobRunID is used when a request carries no identifier.
const DefaultJobRunID = "1"

// JobRequest is the parsed inbound request handed to the dispatchers.
type JobRequest struct {
	JobRunID string
	Data     map[string]any
	// ResponseURL is the callback address. Only used by the async flow.
	ResponseURL string
}

// RequestBody is the wire shape accepted at the inbound boundary.
type RequestBody struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Data        map[string]any  `json:"data"`
	ResponseURL string          `json:"responseURL,omitempty"`
}

// ToJobRequest converts the wire body into a JobRequest.
func (b *RequestBody) ToJobRequest() *JobRequest {
	return &JobRequest{
		JobRunID:    ParseJobRunID(b.ID),
		Data:        b.Data,
		ResponseURL: strings.TrimSpace(b.ResponseURL),
	}
}

// ParseJobRunID accepts string or numeric identifiers and falls back to
// DefaultJobRunID when the value is absent or empty.
func ParseJobRunID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultJobRunID
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return DefaultJobRunID
		}
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return DefaultJobRunID
}

// AdapterResult is the normalized outcome of one request.
type AdapterResult struct {
	JobRunID string         `json:"jobRunID"`
	Status   int            `json:"status"`
	Data     map[string]any `json:"data,omitempty"`
	Message  string         `json:"message,omitempty"`
	Error    bool           `json:"error"`
}

// Fields flattens the result into a mapping suitable for merging into a
// callback body.
func (r *AdapterResult) Fields() map[string]any {
	fields := map[string]any{
		"jobRunID": r.JobRunID,
		"status":   r.Status,
		"error":    r.Error,
	}
	if r.Data != nil {
		fields["data"] = maps.Clone(r.Data)
	}
	if r.Message != "" {
		fields["message"] = r.Message
	}
	return fields
}

// PendingAck is returned immediately by the async flow.
type PendingAck struct {
	Pending bool `json:"pending"`
}
