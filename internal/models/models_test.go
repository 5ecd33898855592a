package models_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinates_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		coords models.Coordinates
		valid  bool
	}{
		{"origin", models.Coordinates{}, true},
		{"utah", models.Coordinates{Longitude: -111.21, Latitude: 41.4}, true},
		{"bounds", models.Coordinates{Longitude: 180, Latitude: -90}, true},
		{"longitude out of range", models.Coordinates{Longitude: 180.5, Latitude: 0}, false},
		{"latitude out of range", models.Coordinates{Longitude: 0, Latitude: 91}, false},
		{"nan", models.Coordinates{Longitude: math.NaN(), Latitude: 0}, false},
		{"inf", models.Coordinates{Longitude: 0, Latitude: math.Inf(1)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coords.Validate()
			if tc.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, models.ErrInvalidCoordinates)
		})
	}
}

func TestCoordinates_Point(t *testing.T) {
	pt := models.Coordinates{Longitude: -111.21, Latitude: 41.4}.Point()

	assert.InDelta(t, -111.21, pt.X(), 1e-9)
	assert.InDelta(t, 41.4, pt.Y(), 1e-9)
	assert.Equal(t, models.SRID, pt.SRID())
}

func TestParseUnit(t *testing.T) {
	unit, err := models.ParseUnit("feet")
	require.NoError(t, err)
	assert.Equal(t, models.UnitFeet, unit)

	unit, err = models.ParseUnit("Meters")
	require.NoError(t, err)
	assert.Equal(t, models.UnitMeters, unit)

	_, err = models.ParseUnit("furlongs")
	require.ErrorIs(t, err, models.ErrInvalidUnit)
}

func TestElevationFromMeters(t *testing.T) {
	assert.Equal(t, models.Elevation{Value: 100, Unit: models.UnitMeters}, models.ElevationFromMeters(100, models.UnitMeters))

	feet := models.ElevationFromMeters(0.3048, models.UnitFeet)
	assert.Equal(t, models.UnitFeet, feet.Unit)
	assert.InDelta(t, 1.0, feet.Value, 1e-9)
}
