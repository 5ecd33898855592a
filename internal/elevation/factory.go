package elevation

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/hydrosite/internal/transport"
	"googlemaps.github.io/maps"
)

// ProviderType represents the type of elevation provider.
type ProviderType string

const (
	// ProviderTypeUSGS represents the USGS Elevation Point Query Service.
	ProviderTypeUSGS ProviderType = "usgs"
	// ProviderTypeGoogle represents the Google Maps Elevation API.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeOpenMeteo represents the Open-Meteo elevation API.
	ProviderTypeOpenMeteo ProviderType = "openmeteo"
)

// ProviderConfig holds configuration for creating an elevation provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (used by Google provider)
	BaseURL   string       // Endpoint override (USGS and Open-Meteo providers)
	RateLimit int          // Rate limit for requests per second
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates an elevation provider based on the provided configuration.
//
// Supported provider types:
// - "usgs": USGS Elevation Point Query Service (free, US coverage)
// - "google": Google Maps Elevation API (requires API key)
// - "openmeteo": Open-Meteo elevation API (free, global coverage)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeUSGS:
		return NewUSGSProvider(transport.NewFetcher(config.RateLimit, config.Logger), config.BaseURL, config.Logger), nil
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeOpenMeteo:
		return NewOpenMeteoProvider(
			transport.NewFetcher(config.RateLimit, config.Logger), config.BaseURL, config.Logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Maps elevation provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
