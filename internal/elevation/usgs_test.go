package elevation_test

import (
	"net/http"
	"testing"

	"github.com/UnknownOlympus/hydrosite/internal/elevation"
	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/UnknownOlympus/hydrosite/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newUSGS(doFunc func(req *http.Request) (*http.Response, error)) *elevation.USGSProvider {
	logger := slogDiscard()
	fetcher := transport.NewFetcherWithClient(&mockHTTPClient{doFunc: doFunc}, rate.NewLimiter(rate.Inf, 0), logger)
	return elevation.NewUSGSProvider(fetcher, "", logger)
}

func TestUSGSProvider_Elevation(t *testing.T) {
	ctx := t.Context()
	coords := models.Coordinates{Longitude: -111.21, Latitude: 41.4}

	t.Run("legacy response with string value", func(t *testing.T) {
		provider := newUSGS(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Contains(t, req.URL.String(), elevation.USGSBaseURL)
			query := req.URL.Query()
			assert.Equal(t, "-111.21", query.Get("x"))
			assert.Equal(t, "41.4", query.Get("y"))
			assert.Equal(t, "Meters", query.Get("units"))
			assert.Equal(t, "json", query.Get("output"))

			return jsonResponse(http.StatusOK, `{"USGS_Elevation_Point_Query_Service":
				{"Elevation_Query":{"x":-111.21,"y":41.4,"Elevation":"1951.99","Units":"Meters"}}}`), nil
		})

		elev, err := provider.Elevation(ctx, coords, models.UnitMeters)

		require.NoError(t, err)
		assert.InEpsilon(t, 1951.99, elev.Value, 1e-9)
		assert.Equal(t, models.UnitMeters, elev.Unit)
	})

	t.Run("v1 response with numeric value", func(t *testing.T) {
		provider := newUSGS(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Feet", req.URL.Query().Get("units"))
			return jsonResponse(http.StatusOK, `{"location":{"x":-111.21,"y":41.4},"value":6404.17}`), nil
		})

		elev, err := provider.Elevation(ctx, coords, models.UnitFeet)

		require.NoError(t, err)
		assert.InEpsilon(t, 6404.17, elev.Value, 1e-9)
		assert.Equal(t, models.UnitFeet, elev.Unit)
	})

	t.Run("zero is a valid elevation", func(t *testing.T) {
		provider := newUSGS(func(_ *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"value":0}`), nil
		})

		elev, err := provider.Elevation(ctx, coords, models.UnitMeters)

		require.NoError(t, err)
		require.NotNil(t, elev)
		assert.Zero(t, elev.Value)
	})

	t.Run("no data marker", func(t *testing.T) {
		provider := newUSGS(func(_ *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"value":"-1000000"}`), nil
		})

		elev, err := provider.Elevation(ctx, coords, models.UnitMeters)

		require.Nil(t, elev)
		require.ErrorIs(t, err, elevation.ErrNoData)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		provider := newUSGS(func(_ *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `<html>busy</html>`), nil
		})

		_, err := provider.Elevation(ctx, coords, models.UnitMeters)

		require.ErrorIs(t, err, elevation.ErrDecode)
	})

	t.Run("missing field", func(t *testing.T) {
		provider := newUSGS(func(_ *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"location":{}}`), nil
		})

		_, err := provider.Elevation(ctx, coords, models.UnitMeters)

		require.ErrorIs(t, err, elevation.ErrMissingElevation)
	})

	t.Run("non numeric value", func(t *testing.T) {
		provider := newUSGS(func(_ *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"value":"n/a"}`), nil
		})

		_, err := provider.Elevation(ctx, coords, models.UnitMeters)

		require.ErrorIs(t, err, elevation.ErrNonNumericElevation)
	})

	t.Run("service error status", func(t *testing.T) {
		provider := newUSGS(func(_ *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadGateway, `bad gateway`), nil
		})

		_, err := provider.Elevation(ctx, coords, models.UnitMeters)

		var statusErr *transport.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	})

	t.Run("invalid unit is rejected before any request", func(t *testing.T) {
		provider := newUSGS(func(_ *http.Request) (*http.Response, error) {
			t.Fatal("HTTP client should not be called for invalid input")
			return nil, nil
		})

		_, err := provider.Elevation(ctx, coords, models.Unit("Yards"))

		require.ErrorIs(t, err, models.ErrInvalidUnit)
	})

	t.Run("invalid coordinates are rejected", func(t *testing.T) {
		provider := newUSGS(func(_ *http.Request) (*http.Response, error) {
			t.Fatal("HTTP client should not be called for invalid input")
			return nil, nil
		})

		_, err := provider.Elevation(ctx, models.Coordinates{Longitude: 200, Latitude: 0}, models.UnitMeters)

		require.ErrorIs(t, err, models.ErrInvalidCoordinates)
	})
}
