// Package watershed finds the hydrologic unit (HUC) containing a point using
// the USGS Watershed Boundary Dataset map service.
package watershed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/UnknownOlympus/hydrosite/internal/transport"
)

// WBDServiceURL -- Watershed Boundary Dataset MapServer root.
const WBDServiceURL = "https://hydro.nationalmap.gov/arcgis/rest/services/wbd/MapServer"

// Level is a HUC hierarchy level expressed as its number of digits.
type Level int

// Supported levels. HUC12 is the finest and the default.
const (
	HUC2  Level = 2
	HUC4  Level = 4
	HUC6  Level = 6
	HUC8  Level = 8
	HUC10 Level = 10
	HUC12 Level = 12
)

// Common errors for the watershed client.
var (
	ErrNoWatershed       = errors.New("no watershed found at this point")
	ErrServiceFault      = errors.New("watershed service returned an error")
	ErrMalformedResponse = errors.New("malformed watershed response")
	ErrUnsupportedLevel  = errors.New("unsupported HUC level")
)

// queryResponse represents the ArcGIS query JSON response.
type queryResponse struct {
	Features []struct {
		Attributes map[string]any `json:"attributes"`
	} `json:"features"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client queries a WBD layer with point-intersection queries.
type Client struct {
	fetcher    *transport.Fetcher
	serviceURL string
	level      Level
	log        *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithServiceURL overrides the MapServer root URL.
func WithServiceURL(serviceURL string) Option {
	return func(c *Client) {
		c.serviceURL = serviceURL
	}
}

// WithLevel selects the HUC level to report.
func WithLevel(level Level) Option {
	return func(c *Client) {
		c.level = level
	}
}

// NewClient creates a watershed client reporting HUC12 units by default.
func NewClient(fetcher *transport.Fetcher, log *slog.Logger, opts ...Option) (*Client, error) {
	client := &Client{
		fetcher:    fetcher,
		serviceURL: WBDServiceURL,
		level:      HUC12,
		log:        log,
	}
	for _, opt := range opts {
		opt(client)
	}

	if _, err := client.level.layer(); err != nil {
		return nil, err
	}

	return client, nil
}

// layer returns the WBD layer id holding units of this level.
func (l Level) layer() (int, error) {
	if l < HUC2 || l > HUC12 || l%2 != 0 {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedLevel, l)
	}

	return int(l) / 2, nil
}

// field is the attribute name carrying the code for this level.
func (l Level) field() string {
	return "huc" + strconv.Itoa(int(l))
}

// Lookup returns the code and name of the hydrologic unit containing coords.
// ErrNoWatershed is returned when the point is outside every unit.
func (c *Client) Lookup(ctx context.Context, coords models.Coordinates) (*models.HUC, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	layer, _ := c.level.layer()
	codeField := c.level.field()
	point := coords.Point()

	params := url.Values{
		"geometry":             {formatDegrees(point.X()) + "," + formatDegrees(point.Y())},
		"geometryType":         {"esriGeometryPoint"},
		"inSR":                 {strconv.Itoa(point.SRID())},
		"spatialRel":           {"esriSpatialRelIntersects"},
		"returnGeometry":       {"false"},
		"outFields":            {codeField + ",name"},
		"returnDistinctValues": {"true"},
		"f":                    {"pjson"},
	}

	c.log.DebugContext(ctx, "Querying watershed", "lon", coords.Longitude, "lat", coords.Latitude, "level", c.level)

	body, err := c.fetcher.GetJSON(ctx, fmt.Sprintf("%s/%d/query", c.serviceURL, layer), params)
	if err != nil {
		return nil, fmt.Errorf("failed to query watershed: %w", err)
	}

	var resp queryResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %d %s", ErrServiceFault, resp.Error.Code, resp.Error.Message)
	}

	if len(resp.Features) == 0 {
		return nil, ErrNoWatershed
	}

	attrs := resp.Features[0].Attributes
	code, codeOK := attrs[codeField].(string)
	name, nameOK := attrs["name"].(string)
	if !codeOK || !nameOK || code == "" {
		return nil, fmt.Errorf("%w: missing %s or name attribute", ErrMalformedResponse, codeField)
	}

	c.log.DebugContext(ctx, "Watershed found", "huc", code, "name", name)

	return &models.HUC{Code: code, Name: name}, nil
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
