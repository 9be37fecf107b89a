// Package provider contains HTTP clients for the upstream news APIs.
//
// Every client follows the same degradation contract: a fetch never fails past
// its own boundary. Transport errors, non-2xx statuses, and malformed bodies
// are logged and yield an empty result set, so one misbehaving upstream never
// aborts an ingestion cycle. A missing API key is not an error either; the
// client logs a warning and contributes nothing.
//
// Each client also enforces its own cooperative rate limit: a shared
// per-instance limiter delays the next request until the provider's minimum
// inter-request interval has elapsed. Upstream quota bans are avoided
// proactively, not handled reactively.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"newshub/internal/resilience/retry"
)

const (
	// defaultTimeout bounds every upstream request.
	defaultTimeout = 30 * time.Second

	// maxResponseSize bounds response bodies to keep a misbehaving upstream
	// from exhausting memory.
	maxResponseSize = 10 * 1024 * 1024

	userAgent = "newshub/1.0"
)

// Config holds the settings shared by all provider clients.
type Config struct {
	// APIKey authenticates against the upstream. Empty means the provider is
	// not configured; the client degrades to empty results.
	APIKey string

	// MinInterval is the minimum time between two requests issued by this
	// client instance.
	MinInterval time.Duration

	// Timeout bounds a single upstream request.
	Timeout time.Duration
}

func (c Config) withDefaults(minInterval time.Duration) Config {
	if c.MinInterval <= 0 {
		c.MinInterval = minInterval
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// newLimiter builds the cooperative per-instance rate limiter: burst 1, one
// token per MinInterval, so callers are suspended for exactly the shortfall.
func newLimiter(minInterval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(minInterval), 1)
}

// getJSON issues a GET with a bounded timeout and decodes the JSON body into v.
// Non-2xx statuses come back as *retry.HTTPError so the retry layer can tell
// transient failures (429, 5xx) from permanent ones.
func getJSON(ctx context.Context, client *http.Client, timeout time.Duration, url string, v any) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	body := io.LimitReader(resp.Body, maxResponseSize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
