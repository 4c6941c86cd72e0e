package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// NodeMockHandler stands in for a node's callback endpoint during local
// development. It logs whatever it receives.
type NodeMockHandler struct {
	logger *slog.Logger
}

func NewNodeMockHandler(logger *slog.Logger) *NodeMockHandler {
	return &NodeMockHandler{logger: logger}
}

func (h *NodeMockHandler) Handle(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		h.logger.Info("node mock received callback", "raw", string(raw))
	} else {
		h.logger.Info("node mock received callback", "body", body, "delivery_id", r.Header.Get("X-Delivery-ID"))
	}
	w.WriteHeader(http.StatusOK)
}
