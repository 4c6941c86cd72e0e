// Package transport performs the outbound API request with bounded retries.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/oauth2"

	"github.com/sevigo/adapter-bridge/internal/core"
)

// maxBodyBytes caps how much of an upstream body is read.
const maxBodyBytes = 1 << 20

// ErrRetriesExhausted is returned when every attempt failed with a retryable error.
var ErrRetriesExhausted = errors.New("retries exhausted")

// HTTPClient abstracts the http.Client Do method for easier testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option customises a RetryingTransport.
type Option func(*RetryingTransport)

// WithHTTPClient overrides the HTTP client used for upstream requests.
func WithHTTPClient(client HTTPClient) Option {
	return func(t *RetryingTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithClock overrides the clock used to wait between attempts.
func WithClock(clock clockwork.Clock) Option {
	return func(t *RetryingTransport) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// RetryingTransport implements core.Transport over HTTP.
type RetryingTransport struct {
	template Template
	policy   RetryPolicy
	tokens   oauth2.TokenSource
	client   HTTPClient
	clock    clockwork.Clock
	logger   *slog.Logger
}

var _ core.Transport = (*RetryingTransport)(nil)

// New creates a RetryingTransport for the given request template and policy.
func New(template Template, policy RetryPolicy, logger *slog.Logger, opts ...Option) (*RetryingTransport, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	t := &RetryingTransport{
		template: template,
		policy:   policy,
		client:   &http.Client{},
		clock:    clockwork.NewRealClock(),
		logger:   logger,
	}
	if template.BearerToken != "" {
		t.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: template.BearerToken})
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t, nil
}

// Do executes the templated request, retrying on no-response conditions,
// HTTP 429 and 5xx statuses.
func (t *RetryingTransport) Do(ctx context.Context, params map[string]any) (*core.UpstreamResponse, error) {
	target, err := t.buildURL(params)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= t.policy.Attempts; attempt++ {
		if attempt > 1 {
			delay := t.policy.Delay(attempt - 1)
			t.logger.Warn("retrying upstream request",
				"attempt", attempt,
				"max_attempts", t.policy.Attempts,
				"delay", delay,
				"error", lastErr,
			)
			if !t.wait(ctx, delay) {
				return nil, fmt.Errorf("upstream request cancelled: %w", ctx.Err())
			}
		}

		resp, retryable, err := t.attempt(ctx, target)
		if err == nil {
			return resp, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, t.policy.Attempts, lastErr)
}

// attempt performs one request. The boolean reports whether a failure may be retried.
func (t *RetryingTransport) attempt(ctx context.Context, target string) (*core.UpstreamResponse, bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, t.policy.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, t.template.Method, target, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range t.template.Headers {
		req.Header.Set(k, v)
	}
	if t.tokens != nil {
		token, err := t.tokens.Token()
		if err != nil {
			return nil, false, fmt.Errorf("failed to obtain upstream token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	res, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, fmt.Errorf("upstream request cancelled: %w", ctx.Err())
		}
		return nil, true, fmt.Errorf("no response from upstream: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, fmt.Errorf("upstream request cancelled: %w", ctx.Err())
		}
		return nil, true, fmt.Errorf("failed to read upstream body: %w", err)
	}

	if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("upstream returned status %d", res.StatusCode)
	}

	return &core.UpstreamResponse{StatusCode: res.StatusCode, Body: decodeObject(raw)}, false, nil
}

func (t *RetryingTransport) buildURL(params map[string]any) (string, error) {
	u, err := url.Parse(t.template.URL)
	if err != nil {
		return "", fmt.Errorf("invalid api request url: %w", err)
	}
	q := u.Query()
	for k, v := range t.template.Params {
		q.Set(k, v)
	}
	for k, v := range params {
		q.Set(k, queryValue(v))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (t *RetryingTransport) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-t.clock.After(d):
		return true
	}
}

func queryValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool, int, int64, json.Number:
		return fmt.Sprint(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func decodeObject(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return body
}
