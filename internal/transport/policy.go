package transport

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BackoffType selects how the wait between attempts grows.
type BackoffType string

const (
	BackoffExponential BackoffType = "exponential"
	BackoffLinear      BackoffType = "linear"
	BackoffStatic      BackoffType = "static"
)

// Template describes the outbound request that resolved parameters are merged into.
type Template struct {
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Params  map[string]string `yaml:"params"`
	Headers map[string]string `yaml:"headers"`
	// BearerToken, when set, is sent as an Authorization header on every attempt.
	BearerToken string `yaml:"bearerToken"`
}

// Validate checks the template and normalizes the method.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.URL) == "" {
		return fmt.Errorf("api request url is required")
	}
	u, err := url.Parse(t.URL)
	if err != nil {
		return fmt.Errorf("invalid api request url %q: %w", t.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api request url must be http or https, got %q", u.Scheme)
	}
	if t.Method == "" {
		t.Method = http.MethodGet
	}
	t.Method = strings.ToUpper(t.Method)
	return nil
}

// RetryPolicy bounds the attempts made for a single logical request.
type RetryPolicy struct {
	// Attempts is the total number of tries, including the first one.
	Attempts  int           `yaml:"attempts"`
	Backoff   BackoffType   `yaml:"backoff"`
	BaseDelay time.Duration `yaml:"baseDelay"`
	MaxDelay  time.Duration `yaml:"maxDelay"`
	// Timeout applies to each attempt separately.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultRetryPolicy returns one try plus three retries with exponential backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:  4,
		Backoff:   BackoffExponential,
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  5 * time.Second,
		Timeout:   time.Second,
	}
}

// Validate fills unset fields from DefaultRetryPolicy and rejects invalid values.
func (p *RetryPolicy) Validate() error {
	def := DefaultRetryPolicy()
	if p.Attempts == 0 {
		p.Attempts = def.Attempts
	}
	if p.Attempts < 0 {
		return fmt.Errorf("retry attempts must be positive, got %d", p.Attempts)
	}
	if p.Backoff == "" {
		p.Backoff = def.Backoff
	}
	switch p.Backoff {
	case BackoffExponential, BackoffLinear, BackoffStatic:
	default:
		return fmt.Errorf("unknown backoff type %q", p.Backoff)
	}
	if p.BaseDelay < 0 || p.MaxDelay < 0 {
		return fmt.Errorf("retry delays cannot be negative")
	}
	if p.Timeout < 0 {
		return fmt.Errorf("retry timeout cannot be negative")
	}
	if p.Timeout == 0 {
		p.Timeout = def.Timeout
	}
	return nil
}

// Delay returns the wait before the given retry (1 for the first retry).
func (p RetryPolicy) Delay(retry int) time.Duration {
	if p.BaseDelay <= 0 || retry < 1 {
		return 0
	}
	var d time.Duration
	switch p.Backoff {
	case BackoffStatic:
		d = p.BaseDelay
	case BackoffLinear:
		d = p.BaseDelay * time.Duration(retry)
	default:
		d = time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(retry-1)))
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}
