// Package elevation looks up the ground elevation at a point from public elevation services.
package elevation

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/hydrosite/internal/models"
)

// Provider is an interface that defines a method for elevation lookup.
// Elevation returns the elevation at coords expressed in unit.
type Provider interface {
	Elevation(ctx context.Context, coords models.Coordinates, unit models.Unit) (*models.Elevation, error)
}

// Common elevation errors. Each one marks a distinct failure class so that
// the retry policy can treat them differently.
var (
	ErrDecode              = errors.New("elevation response is not valid JSON")
	ErrMissingElevation    = errors.New("elevation missing from response")
	ErrNonNumericElevation = errors.New("elevation in response is not numeric")
	ErrNoData              = errors.New("elevation service has no data for this point")
	ErrUnavailable         = errors.New("elevation unavailable")
	ErrRejected            = errors.New("elevation request rejected by service")
)

func validateRequest(coords models.Coordinates, unit models.Unit) error {
	if err := coords.Validate(); err != nil {
		return err
	}
	if unit != models.UnitMeters && unit != models.UnitFeet {
		return fmt.Errorf("%w: %q", models.ErrInvalidUnit, unit)
	}

	return nil
}
