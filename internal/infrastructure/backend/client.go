// Package backend implements the HTTP client for the external Stoq-Keep API.
// Responses use the envelope {success, message, data}; the message field of a
// failed call is what the console shows to the operator.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/stoqkeep/inventory-console/internal/api/metrics"
	"github.com/stoqkeep/inventory-console/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching the backend API.
type Config struct {
	// BaseURL includes the API prefix, e.g. http://localhost:5000/api.
	BaseURL string
	Timeout time.Duration
}

// Client is the shared HTTP plumbing for the identity and inventory endpoints.
// It holds no session state; bearer tokens are passed per call.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a backend client. A default timeout is applied when none
// is provided; any retry or backoff policy is out of scope at this layer.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// envelope is the wire format wrapping every backend response.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do performs one backend call and decodes the envelope's data into out (when
// out is non-nil). endpoint is the logical operation name used for metrics.
func (c *Client) do(ctx context.Context, endpoint, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("backend unreachable")
		return &domain.BackendError{Err: domain.ErrBackendUnavailable, Message: "could not reach the inventory service"}
	}
	defer resp.Body.Close()

	outcome := "ok"
	if resp.StatusCode >= 400 {
		outcome = "error"
	}
	metrics.BackendRequestDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return c.statusError(resp.StatusCode, "")
		}
		return fmt.Errorf("backend: decode %s response: %w", endpoint, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return c.statusError(resp.StatusCode, env.Message)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("backend: decode %s payload: %w", endpoint, err)
		}
	}
	return nil
}

// Ping reports whether the backend answers HTTP at all. Any status counts as
// reachable; only transport failures count against readiness.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// statusError maps an HTTP status to the domain error taxonomy, keeping the
// backend's message for display.
func (c *Client) statusError(status int, message string) error {
	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = domain.ErrNotAuthenticated
	case status == http.StatusNotFound:
		kind = domain.ErrItemNotFound
	case status >= 500:
		kind = domain.ErrBackendUnavailable
	default:
		kind = domain.ErrRequestRejected
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &domain.BackendError{Err: kind, Message: message}
}

// query renders non-zero listing parameters as a URL query string.
func query(params domain.ListParams) string {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", fmt.Sprint(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", fmt.Sprint(params.Limit))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
