// Package client is the Go client for the StudyHub API. Every call carries
// the caller's bearer token and is retried with exponential backoff when the
// network fails or the attempt times out. Any HTTP response, error statuses
// included, ends the call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
	"github.com/studyhub/studyhub/backend/go-services/pkg/metrics"
)

const (
	DefaultBaseURL    = "http://localhost:5000/api"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryBase  = time.Second
	DefaultMaxRetries = 3
)

// TokenSource supplies the bearer token. It is consulted before every
// attempt, so a refreshed token is picked up by retries.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken always returns tok.
func StaticToken(tok string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) { return tok, nil })
}

type Client struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
	dev     bool
	timeout time.Duration
	policy  retryPolicy
	wait    func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

func WithTokenSource(ts TokenSource) Option { return func(c *Client) { c.tokens = ts } }

// WithDevelopment logs every request, response and failure.
func WithDevelopment(dev bool) Option { return func(c *Client) { c.dev = dev } }

// WithTimeout bounds each attempt. An attempt that times out is retried.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// WithRetry sets the first retry delay and the number of retries.
func WithRetry(base time.Duration, maxRetries int) Option {
	return func(c *Client) { c.policy = retryPolicy{base: base, maxRetries: maxRetries} }
}

// WithWait replaces the delay between attempts. Tests use it to record
// delays instead of sleeping.
func WithWait(wait func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.wait = wait }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		timeout: DefaultTimeout,
		policy:  retryPolicy{base: DefaultRetryBase, maxRetries: DefaultMaxRetries},
		wait:    sleep,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FieldError is one itemized validation failure reported by the API.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// StatusError is returned when the API answered with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("studyhub: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("studyhub: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// attemptError is a failed attempt that got no response.
type attemptError struct {
	reason string // "network" or "timeout"
	err    error
}

func (e *attemptError) Error() string { return e.err.Error() }
func (e *attemptError) Unwrap() error { return e.err }

// Do performs method on path, sending in as JSON when non-nil and decoding
// the response body into out when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, in, out interface{}) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}

	state := retryState{}
	for {
		err := c.attempt(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		var ae *attemptError
		if !errors.As(err, &ae) {
			return err
		}
		if !state.canRetry(c.policy) {
			return fmt.Errorf("%s %s: giving up after %d attempts: %w", method, path, state.retries+1, err)
		}
		d := c.policy.delay(state.retries)
		metrics.ClientRetries.WithLabelValues(ae.reason).Inc()
		if c.dev {
			logger.L().Warn().Err(err).Str("method", method).Str("path", path).
				Int("retry", state.retries+1).Dur("delay", d).Msg("API retry")
		}
		if werr := c.wait(ctx, d); werr != nil {
			return fmt.Errorf("%s %s: %w", method, path, werr)
		}
		state = state.next()
	}
}

func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(actx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("token: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if c.dev {
		logger.L().Info().Str("method", method).Str("url", req.URL.String()).Msg("API request")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if c.dev {
			logger.L().Error().Err(err).Str("method", method).Str("url", req.URL.String()).Msg("API error")
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &attemptError{reason: classify(err), err: err}
	}
	defer resp.Body.Close()
	if c.dev {
		logger.L().Info().Int("status", resp.StatusCode).Str("method", method).Str("url", req.URL.String()).Msg("API response")
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var env struct {
			Message string       `json:"message"`
			Errors  []FieldError `json:"errors"`
		}
		if json.Unmarshal(raw, &env) == nil {
			se.Message = env.Message
			se.Errors = env.Errors
		}
		return se
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return "timeout"
	}
	return "network"
}
