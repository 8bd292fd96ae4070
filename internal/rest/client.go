// Package rest implements the HTTP client for the POS backend: a thin
// transport with bearer authentication, the uniform response envelope, and
// one service per backend resource. Services implement the API interfaces
// declared by the domain packages.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// DefaultTimeout is the fixed request timeout applied to every call.
// There is no per-call cancellation beyond the caller's context and no
// automatic retry; a timeout surfaces as a plain transport failure.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// apiV1 is the path prefix for all resource endpoints. Authentication lives
// outside it (the backend mounts /auth at the root).
const apiV1 = "/api/v1"

// ErrUnauthorized is returned when the backend rejects the bearer token.
// The registered OnUnauthorized callback fires before this is returned, so
// callers normally only need it to suppress duplicate error notifications.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a business-rule rejection delivered through the response
// envelope. Message is operator-facing; Code is machine-readable.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (http %d)", e.Code, e.Message, e.StatusCode)
}

// envelope is the uniform wrapper every backend response uses.
type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Config holds client construction parameters.
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8080".
	BaseURL string
	// Timeout overrides DefaultTimeout when non-zero.
	Timeout time.Duration
	// Transport is the base RoundTripper. Defaults to http.DefaultTransport;
	// the app wires otelhttp instrumentation here.
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// Client issues authenticated requests against the backend and decodes the
// response envelope. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	lg      *zap.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// NewClient validates the base URL and assembles the transport chain:
// request-ID stamping and request logging around the configured base
// RoundTripper.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base URL %q must include scheme and host", cfg.BaseURL)
	}

	lg := cfg.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: chain(base,
				withRequestID(),
				withLogging(lg),
			),
		},
		lg: lg,
	}, nil
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetOnUnauthorized registers the callback fired whenever any request comes
// back 401. The callback is global by design: authorization loss tears down
// the whole session, not just the failed call.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do runs one request/response cycle: marshal the body, attach the token,
// detect authorization loss, decode the envelope, and unmarshal Data into
// out when provided.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.fireUnauthorized()
		return ErrUnauthorized
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "read response body")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrapf(err, "decode envelope (http %d)", resp.StatusCode)
	}

	if !env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "decode envelope data")
		}
	}
	return nil
}

func (c *Client) fireUnauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()

	if fn != nil {
		fn()
	}
}
