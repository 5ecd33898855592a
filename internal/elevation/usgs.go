package elevation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/UnknownOlympus/hydrosite/internal/transport"
	"github.com/tidwall/gjson"
)

// USGSBaseURL -- USGS Elevation Point Query Service endpoint.
// API Docs: https://epqs.nationalmap.gov/v1/docs
const USGSBaseURL = "https://epqs.nationalmap.gov/v1/json"

const (
	usgsLegacyPath = "USGS_Elevation_Point_Query_Service.Elevation_Query.Elevation"
	usgsValuePath  = "value"
	// usgsNoData is what EPQS answers for points outside its coverage.
	usgsNoData = -1000000
)

// USGSProvider queries the USGS Elevation Point Query Service.
type USGSProvider struct {
	fetcher *transport.Fetcher
	baseURL string
	log     *slog.Logger
}

// NewUSGSProvider creates a USGS EPQS provider. An empty baseURL uses USGSBaseURL.
func NewUSGSProvider(fetcher *transport.Fetcher, baseURL string, log *slog.Logger) *USGSProvider {
	if baseURL == "" {
		baseURL = USGSBaseURL
	}

	return &USGSProvider{fetcher: fetcher, baseURL: baseURL, log: log}
}

// Elevation returns the elevation at coords in the requested unit.
func (up *USGSProvider) Elevation(
	ctx context.Context,
	coords models.Coordinates,
	unit models.Unit,
) (*models.Elevation, error) {
	if err := validateRequest(coords, unit); err != nil {
		return nil, err
	}

	up.log.DebugContext(ctx, "Querying USGS elevation", "lon", coords.Longitude, "lat", coords.Latitude, "units", unit)

	params := url.Values{
		"x":      {formatDegrees(coords.Longitude)},
		"y":      {formatDegrees(coords.Latitude)},
		"units":  {string(unit)},
		"output": {"json"},
	}

	body, err := up.fetcher.GetJSON(ctx, up.baseURL, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query USGS elevation: %w", err)
	}

	value, err := parseUSGSElevation(body)
	if err != nil {
		return nil, err
	}

	return &models.Elevation{Value: value, Unit: unit}, nil
}

// parseUSGSElevation reads the elevation from either the legacy or the v1
// response shape. The service may send the value as a string or a number.
func parseUSGSElevation(body []byte) (float64, error) {
	if !gjson.ValidBytes(body) {
		return 0, ErrDecode
	}

	result := gjson.GetBytes(body, usgsLegacyPath)
	if !result.Exists() {
		result = gjson.GetBytes(body, usgsValuePath)
	}

	var value float64
	switch result.Type {
	case gjson.Number:
		value = result.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(result.Str), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, fmt.Errorf("%w: %q", ErrNonNumericElevation, result.Str)
		}
		value = parsed
	case gjson.Null:
		return 0, ErrMissingElevation
	default:
		return 0, fmt.Errorf("%w: %s", ErrNonNumericElevation, result.Raw)
	}

	if value <= usgsNoData {
		return 0, ErrNoData
	}

	return value, nil
}

// formatDegrees renders a coordinate with the shortest exact representation.
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
