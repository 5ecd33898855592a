// Package census resolves the US county containing a point with the FCC Census Area API.
package census

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

// AreaBaseURL -- FCC Census Area API endpoint.
// API Docs: https://geo.fcc.gov/api/census/
const AreaBaseURL = "https://geo.fcc.gov/api/census/area"

// stateFIPSWidth is the length of the state prefix in a county FIPS code.
const stateFIPSWidth = 2

// Common errors for the census client.
var (
	ErrNoCounty          = errors.New("no county found at this point")
	ErrMalformedResponse = errors.New("malformed census area response")
)

// areaResponse represents the JSON response from the Census Area API.
type areaResponse struct {
	Results []struct {
		CountyFIPS string `json:"county_fips"`
		CountyName string `json:"county_name"`
		StateCode  string `json:"state_code"`
	} `json:"results"`
}

// Client queries the Census Area API.
type Client struct {
	fetcher *transport.Fetcher
	baseURL string
	log     *slog.Logger
}

// NewClient creates a census client. An empty baseURL uses AreaBaseURL.
func NewClient(fetcher *transport.Fetcher, baseURL string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = AreaBaseURL
	}

	return &Client{fetcher: fetcher, baseURL: baseURL, log: log}
}

// Lookup returns the county containing coords. CountyCode is the served FIPS
// code with its 2-character state prefix removed.
func (c *Client) Lookup(ctx context.Context, coords models.Coordinates) (*models.County, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{
		"lat": {strconv.FormatFloat(coords.Latitude, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(coords.Longitude, 'f', -1, 64)},
	}

	body, err := c.fetcher.GetJSON(ctx, c.baseURL, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query census area: %w", err)
	}

	var resp areaResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if len(resp.Results) == 0 {
		return nil, ErrNoCounty
	}

	first := resp.Results[0]
	if len(first.CountyFIPS) <= stateFIPSWidth {
		return nil, fmt.Errorf("%w: county_fips %q", ErrMalformedResponse, first.CountyFIPS)
	}

	c.log.DebugContext(ctx, "County found", "fips", first.CountyFIPS, "name", first.CountyName)

	return &models.County{
		FIPS:       first.CountyFIPS,
		CountyCode: first.CountyFIPS[stateFIPSWidth:],
		Name:       first.CountyName,
		StateCode:  first.StateCode,
	}, nil
}
