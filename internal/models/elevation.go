package models

import (
	"errors"
	"fmt"
	"strings"
)

// FeetToMeters is the length of one international foot in meters.
const FeetToMeters = 0.3048

// Unit is the unit an elevation is expressed in.
type Unit string

const (
	UnitMeters Unit = "Meters"
	UnitFeet   Unit = "Feet"
)

// ErrInvalidUnit is returned for anything other than Meters or Feet.
var ErrInvalidUnit = errors.New("invalid elevation unit")

// ParseUnit accepts "meters"/"feet" in any case.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "meters", "meter", "m":
		return UnitMeters, nil
	case "feet", "foot", "ft":
		return UnitFeet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

// Elevation is a single elevation reading at a point.
type Elevation struct {
	Value float64 // Value in Unit.
	Unit  Unit    // Unit of Value.
}

// ElevationFromMeters converts a reading in meters to the requested unit.
func ElevationFromMeters(meters float64, unit Unit) Elevation {
	if unit == UnitFeet {
		return Elevation{Value: meters / FeetToMeters, Unit: UnitFeet}
	}

	return Elevation{Value: meters, Unit: UnitMeters}
}
