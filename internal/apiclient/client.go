// Package apiclient is the typed HTTP client for the job-prep backend.
// Each method maps to exactly one backend endpoint; there is no retry,
// caching or request de-duplication.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"jobprep-web/internal/shared/metrics"
	"jobprep-web/internal/shared/telemetry"
)

// Client talks to the backend over HTTP/JSON.
type Client struct {
	http *resty.Client
}

// Option customizes the underlying resty client.
type Option func(*resty.Client)

// WithTimeout sets a per-request timeout. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(rc *resty.Client) {
		if d > 0 {
			rc.SetTimeout(d)
		}
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(rc *resty.Client) {
		if hc != nil && hc.Transport != nil {
			rc.SetTransport(hc.Transport)
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(rc *resty.Client) {
		rc.SetHeader(key, value)
	}
}

// New constructs a Client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetDisableWarn(true)
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

// BaseURL reports the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// call runs one request, converts non-2xx responses into *APIError and records metrics.
func (c *Client) call(ctx context.Context, op string, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	start := time.Now()
	resp, err := send(c.http.R().SetContext(ctx))
	switch {
	case err != nil:
		err = fmt.Errorf("%s: %w", op, err)
	case resp.IsError():
		err = newAPIError(op, resp.StatusCode(), resp.Body())
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	fields := map[string]any{"op": op, "duration_ms": durationMs}
	if resp != nil {
		fields["status"] = resp.StatusCode()
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		telemetry.Err("api.call_failed", err, fields)
	} else {
		telemetry.Debug("api.call", fields)
	}
	metrics.ObserveAPICall(op, outcome, durationMs)
	return resp, err
}

func decode(op string, resp *resty.Response, out any) error {
	body := resp.Body()
	if len(body) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
