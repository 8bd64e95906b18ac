// Package fetch provides a polite HTTP client shared by document sources.
//
// Every request passes through a token-bucket limiter so concurrent
// downloads never hammer a host, and transient failures are retried
// with exponential backoff.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Default configuration values mirroring the standard scraper settings.
const (
	DefaultRequestDelay = 500 * time.Millisecond
	DefaultMaxRetries   = 3
	DefaultBackoff      = time.Second
	DefaultTimeout      = 30 * time.Second
)

// Config tunes the client's politeness and retry behaviour.
type Config struct {
	// RequestDelay is the minimum spacing between requests across all
	// callers sharing this client (default: 500ms).
	RequestDelay time.Duration

	// MaxRetries is the number of additional attempts after a
	// retryable failure (default: 3).
	MaxRetries int

	// Backoff is the base delay before the first retry; it doubles
	// each attempt (default: 1s).
	Backoff time.Duration

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client is a rate-limited HTTP client with retry on 429/5xx and
// transport errors. It is safe for concurrent use.
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

// NewClient creates a client, filling in defaults for zero fields.
func NewClient(cfg Config) *Client {
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = DefaultRequestDelay
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Every(cfg.RequestDelay), 1),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
	}
}

// StatusError reports a non-2xx response that was not worth retrying,
// or the final status after retries were exhausted.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// GetText fetches a URL and returns the response body as a string.
// Retryable failures (429, 5xx, transport errors) are retried up to
// MaxRetries times with exponential backoff.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Get fetches a URL and returns the raw response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: base, 2x, 4x, ...
			delay := c.backoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, retryable, err := c.doOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("fetch %s: retries exhausted: %w", url, lastErr)
}

// doOnce performs a single GET and classifies the failure.
func (c *Client) doOnce(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport errors are retryable unless the context is done.
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode}
		return nil, retryableStatus(resp.StatusCode), statusErr
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	return body, false, nil
}

// retryableStatus reports whether a status code is worth another attempt.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
