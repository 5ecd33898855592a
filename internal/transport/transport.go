// Package transport performs the JSON GET exchange shared by every lookup client.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultUserAgent identifies the service to public APIs.
	DefaultUserAgent = "hydrosite/1.0 (https://github.com/UnknownOlympus/hydrosite)"
	// DefaultRateLimit is the default requests per second for a single fetcher.
	DefaultRateLimit = 5

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common transport errors.
var (
	ErrTransport   = errors.New("request failed")
	ErrRateLimited = errors.New("rate limit wait aborted")
)

// StatusError is returned when a service answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned status %d: %s", e.Code, e.Body)
}

// Transient reports whether the status is worth retrying.
func (e *StatusError) Transient() bool {
	switch e.Code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// Fetcher issues rate limited GET requests and returns raw JSON bodies.
type Fetcher struct {
	client    HTTPClient
	limiter   *rate.Limiter
	userAgent string
	log       *slog.Logger
}

// NewFetcher creates a Fetcher with a default HTTP client limited to rps requests per second.
// A non-positive rps falls back to DefaultRateLimit.
func NewFetcher(rps int, log *slog.Logger) *Fetcher {
	if rps <= 0 {
		rps = DefaultRateLimit
	}

	return NewFetcherWithClient(
		&http.Client{Timeout: defaultTimeout},
		rate.NewLimiter(rate.Limit(rps), rps),
		log,
	)
}

// NewFetcherWithClient allows injecting a custom HTTP client and limiter.
func NewFetcherWithClient(client HTTPClient, limiter *rate.Limiter, log *slog.Logger) *Fetcher {
	return &Fetcher{
		client:    client,
		limiter:   limiter,
		userAgent: DefaultUserAgent,
		log:       log,
	}
}

// GetJSON sends params to baseURL and returns the response body of a 200 answer.
func (f *Fetcher) GetJSON(ctx context.Context, baseURL string, params url.Values) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	reqURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	reqURL.RawQuery = query.Encode()

	f.log.DebugContext(ctx, "Sending request", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		f.log.ErrorContext(ctx, "Service error", "url", reqURL.String(), "status", resp.StatusCode, "body", string(body))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	f.log.DebugContext(ctx, "Raw response", "body", string(body))

	return body, nil
}
