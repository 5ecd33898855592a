package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/UnknownOlympus/hydrosite/internal/transport"
)

// OpenMeteoBaseURL -- Open-Meteo elevation API endpoint.
// API Docs: https://open-meteo.com/en/docs/elevation-api
const OpenMeteoBaseURL = "https://api.open-meteo.com/v1/elevation"

// openMeteoResponse represents the JSON response from the Open-Meteo elevation API.
type openMeteoResponse struct {
	Elevation []*float64 `json:"elevation"` // meters, one per requested point
}

// OpenMeteoProvider queries the Open-Meteo elevation API (90m DEM).
type OpenMeteoProvider struct {
	fetcher *transport.Fetcher
	baseURL string
	log     *slog.Logger
}

// NewOpenMeteoProvider creates an Open-Meteo provider. An empty baseURL uses OpenMeteoBaseURL.
func NewOpenMeteoProvider(fetcher *transport.Fetcher, baseURL string, log *slog.Logger) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}

	return &OpenMeteoProvider{fetcher: fetcher, baseURL: baseURL, log: log}
}

// Elevation returns the elevation at coords in the requested unit.
func (op *OpenMeteoProvider) Elevation(
	ctx context.Context,
	coords models.Coordinates,
	unit models.Unit,
) (*models.Elevation, error) {
	if err := validateRequest(coords, unit); err != nil {
		return nil, err
	}

	params := url.Values{
		"latitude":  {formatDegrees(coords.Latitude)},
		"longitude": {formatDegrees(coords.Longitude)},
	}

	body, err := op.fetcher.GetJSON(ctx, op.baseURL, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query Open-Meteo elevation: %w", err)
	}

	var resp openMeteoResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if len(resp.Elevation) == 0 || resp.Elevation[0] == nil {
		return nil, ErrMissingElevation
	}

	elev := models.ElevationFromMeters(*resp.Elevation[0], unit)

	return &elev, nil
}
