// Package callback delivers deferred results back to the caller-supplied address.
package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/sevigo/adapter-bridge/internal/core"
)

const (
	defaultTimeout = 10 * time.Second
	errorBodyLimit = 4096
)

// HTTPClient abstracts the http.Client Do method for easier testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sender implements core.CallbackSender with an HTTP PATCH request.
type Sender struct {
	client HTTPClient
	tokens oauth2.TokenSource
	logger *slog.Logger
}

var _ core.CallbackSender = (*Sender)(nil)

// NewSender creates a Sender. When outgoingToken is not empty it is sent as a
// bearer token so the receiving node can authenticate the callback.
func NewSender(client HTTPClient, outgoingToken string, logger *slog.Logger) *Sender {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	s := &Sender{client: client, logger: logger}
	if strings.TrimSpace(outgoingToken) != "" {
		s.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: outgoingToken})
	}
	return s
}

// Deliver sends body to url. Any non-2xx answer is reported as an error.
func (s *Sender) Deliver(ctx context.Context, url string, body map[string]any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode callback body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build callback request: %w", err)
	}
	deliveryID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-ID", deliveryID)
	if s.tokens != nil {
		token, err := s.tokens.Token()
		if err != nil {
			return fmt.Errorf("failed to obtain callback token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("callback request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))
		return fmt.Errorf("callback returned status %d: %s", res.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}
	_, _ = io.Copy(io.Discard, res.Body)

	s.logger.Debug("callback delivered", "url", url, "delivery_id", deliveryID, "status", res.StatusCode)
	return nil
}
