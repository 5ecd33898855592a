package main

import (
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/hydrosite/internal/census"
	"github.com/UnknownOlympus/hydrosite/internal/config"
	"github.com/UnknownOlympus/hydrosite/internal/elevation"
	"github.com/UnknownOlympus/hydrosite/internal/metrics"
	"github.com/UnknownOlympus/hydrosite/internal/transport"
	"github.com/UnknownOlympus/hydrosite/internal/watershed"
)

// newElevationProvider builds the configured provider wrapped in the retry policy.
// Retries are counted on m when it is not nil.
func newElevationProvider(cfg config.ElevationConfig, log *slog.Logger, m *metrics.Metrics) (elevation.Provider, error) {
	provider, err := elevation.NewProvider(elevation.ProviderConfig{
		Type:      elevation.ProviderType(cfg.Provider),
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		RateLimit: cfg.RateLimit,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elevation provider: %w", err)
	}

	policy := elevation.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.MaxAttempts
	if m != nil {
		policy.OnRetry = func(_ int, _ error) {
			m.RetryAttempts.WithLabelValues(metrics.ServiceElevation).Inc()
		}
	}

	return elevation.NewRetryingProvider(provider, cfg.Provider, policy, log), nil
}

func newWatershedClient(cfg config.WatershedConfig, log *slog.Logger) (*watershed.Client, error) {
	opts := []watershed.Option{watershed.WithLevel(watershed.Level(cfg.Level))}
	if cfg.URL != "" {
		opts = append(opts, watershed.WithServiceURL(cfg.URL))
	}

	client, err := watershed.NewClient(transport.NewFetcher(transport.DefaultRateLimit, log), log, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create watershed client: %w", err)
	}

	return client, nil
}

func newCensusClient(cfg config.CensusConfig, log *slog.Logger) *census.Client {
	return census.NewClient(transport.NewFetcher(transport.DefaultRateLimit, log), cfg.URL, log)
}
