package elevation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/UnknownOlympus/hydrosite/internal/resilience"
	"github.com/UnknownOlympus/hydrosite/internal/transport"
)

// DefaultMaxAttempts is the number of tries, the first one included, before
// an elevation lookup is given up.
const DefaultMaxAttempts = 4

// RetryPolicy selects which failure classes are retried and how often.
type RetryPolicy struct {
	MaxAttempts  int           // Total attempts including the first.
	Backoff      time.Duration // Delay before the first retry, doubled after each one.
	Transport    bool          // Retry requests that could not be executed.
	Status       bool          // Retry non-200 answers.
	Decode       bool          // Retry bodies that are not JSON.
	MissingField bool          // Retry bodies without a numeric elevation.

	// OnRetry, if set, is called after the failure is logged.
	OnRetry func(attempt int, err error)
}

// DefaultRetryPolicy retries every failure class up to DefaultMaxAttempts times.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  DefaultMaxAttempts,
		Backoff:      resilience.DefaultRetryConfig().InitialBackoff,
		Transport:    true,
		Status:       true,
		Decode:       true,
		MissingField: true,
	}
}

// ShouldRetry classifies err. Cancellation, invalid input, requests the
// service refused and confirmed "no data" answers are never retried. Status
// errors are retried only for 408, 429 and 5xx.
func (p RetryPolicy) ShouldRetry(err error) bool {
	var statusErr *transport.StatusError

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrNoData),
		errors.Is(err, models.ErrInvalidCoordinates),
		errors.Is(err, models.ErrInvalidUnit),
		errors.Is(err, ErrRejected),
		errors.Is(err, transport.ErrRateLimited):
		return false
	case errors.Is(err, transport.ErrTransport):
		return p.Transport
	case errors.As(err, &statusErr):
		return p.Status && statusErr.Transient()
	case errors.Is(err, ErrDecode):
		return p.Decode
	case errors.Is(err, ErrMissingElevation), errors.Is(err, ErrNonNumericElevation):
		return p.MissingField
	default:
		return true
	}
}

// RetryingProvider retries a Provider according to a RetryPolicy.
type RetryingProvider struct {
	next   Provider
	name   string
	policy RetryPolicy
	log    *slog.Logger
}

// NewRetryingProvider wraps next. name labels the diagnostics.
func NewRetryingProvider(next Provider, name string, policy RetryPolicy, log *slog.Logger) *RetryingProvider {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxAttempts
	}

	return &RetryingProvider{next: next, name: name, policy: policy, log: log}
}

// Elevation calls the wrapped provider until it succeeds or the policy gives
// up. When every attempt failed the error wraps ErrUnavailable and the last cause.
func (rp *RetryingProvider) Elevation(
	ctx context.Context,
	coords models.Coordinates,
	unit models.Unit,
) (*models.Elevation, error) {
	logRetry := resilience.RetryLogger(ctx, rp.log, rp.name, rp.policy.MaxAttempts)
	cfg := resilience.RetryConfig{
		MaxAttempts:    rp.policy.MaxAttempts,
		InitialBackoff: rp.policy.Backoff,
		ShouldRetry:    rp.policy.ShouldRetry,
		OnRetry: func(attempt int, err error) {
			logRetry(attempt, err)
			if rp.policy.OnRetry != nil {
				rp.policy.OnRetry(attempt, err)
			}
		},
	}

	elev, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) (*models.Elevation, error) {
		return rp.next.Elevation(ctx, coords, unit)
	})
	if err == nil {
		return elev, nil
	}

	if ctx.Err() == nil && rp.policy.ShouldRetry(err) {
		rp.log.ErrorContext(ctx, "Elevation lookup failed", "service", rp.name, "attempts", rp.policy.MaxAttempts, "error", err)
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrUnavailable, rp.policy.MaxAttempts, err)
	}

	return nil, err
}
