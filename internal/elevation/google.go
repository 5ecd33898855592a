package elevation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/UnknownOlympus/hydrosite/internal/transport"
	"googlemaps.github.io/maps"
)

// googleRejectedStatuses are API statuses that repeat for the same request.
// The maps client reports them as "maps: <STATUS> - <message>".
var googleRejectedStatuses = []string{"INVALID_REQUEST", "REQUEST_DENIED", "OVER_DAILY_LIMIT"}

// GoogleAPIClient is the part of the Google Maps client used for elevation.
type GoogleAPIClient interface {
	Elevation(ctx context.Context, r *maps.ElevationRequest) ([]maps.ElevationResult, error)
}

// GoogleProvider looks up elevation with the Google Maps Elevation API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// NewGoogleProvider wraps an initialized Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Elevation returns the elevation at coords. Google answers in meters; the
// value is converted when feet are requested.
func (gp *GoogleProvider) Elevation(
	ctx context.Context,
	coords models.Coordinates,
	unit models.Unit,
) (*models.Elevation, error) {
	if err := validateRequest(coords, unit); err != nil {
		return nil, err
	}

	gp.log.DebugContext(ctx, "Querying Google elevation", "lon", coords.Longitude, "lat", coords.Latitude)

	req := &maps.ElevationRequest{
		Locations: []maps.LatLng{{Lat: coords.Latitude, Lng: coords.Longitude}},
	}
	results, err := gp.client.Elevation(ctx, req)
	if err != nil {
		return nil, classifyGoogleError(err)
	}

	if len(results) == 0 {
		return nil, ErrMissingElevation
	}

	elev := models.ElevationFromMeters(results[0].Elevation, unit)

	return &elev, nil
}

func classifyGoogleError(err error) error {
	for _, status := range googleRejectedStatuses {
		if strings.HasPrefix(err.Error(), "maps: "+status) {
			return fmt.Errorf("%w: google elevation: %w", ErrRejected, err)
		}
	}

	return fmt.Errorf("%w: google elevation: %w", transport.ErrTransport, err)
}
