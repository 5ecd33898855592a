package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
)

// SRID of every coordinate handled by the service (WGS 84).
const SRID = 4326

// ErrInvalidCoordinates is returned when a longitude/latitude pair is not a finite point on the globe.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Coordinates represents a geographical point defined by its longitude and latitude.
type Coordinates struct {
	Longitude float64 // Longitude of the geographical point.
	Latitude  float64 // Latitude of the geographical point.
}

// Validate reports whether both components are finite and inside their ranges.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinates, c.Longitude)
	}
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinates, c.Latitude)
	}

	return nil
}

// Point returns the coordinates as an XY point in SRID 4326.
func (c Coordinates) Point() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Longitude, c.Latitude}).SetSRID(SRID)
}
