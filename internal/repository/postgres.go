package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

// maxEnrichmentAttempts is the number of failed runs after which a site is no longer picked up.
const maxEnrichmentAttempts = 5

// FetchSitesForEnrichment retrieves sites that have no site id yet and have failed
// fewer than maxEnrichmentAttempts times, oldest first, limited to the given count.
func (r *Repository) FetchSitesForEnrichment(ctx context.Context, limit int) ([]models.Site, error) {
	var sites []models.Site
	query := `
		SELECT id, longitude, latitude
		FROM public.sites
		WHERE
			site_id IS NULL
			AND enrichment_attempts < $1
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, maxEnrichmentAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites awaiting enrichment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var site models.Site
		if errScan := rows.Scan(&site.ID, &site.Longitude, &site.Latitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan site awaiting enrichment: %w", errScan)
		}
		r.log.DebugContext(ctx, "A new site without metadata has been received.",
			"ID", site.ID, "longitude", site.Longitude, "latitude", site.Latitude)
		sites = append(sites, site)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return sites, nil
}

// UpdateSiteMetadata stores the enrichment result for a site together with its
// PostGIS location. Nil metadata members are written as NULL.
func (r *Repository) UpdateSiteMetadata(ctx context.Context, site models.Site, meta models.SiteMetadata) error {
	query := `
		UPDATE sites
		SET
			site_id = $1,
			elevation = $2,
			elevation_units = $3,
			huc12 = $4,
			huc12_name = $5,
			county_fips = $6,
			county_name = $7,
			location = ST_GeomFromEWKB($8),
			enrichment_error = NULL
		WHERE
			id = $9;
	`

	location, err := ewkb.Marshal(site.Coordinates().Point(), ewkb.NDR)
	if err != nil {
		return fmt.Errorf("failed to encode site location: %w", err)
	}

	// nil members are passed as untyped nil so pgx writes NULL.
	var elevationValue, elevationUnits, hucCode, hucName, countyFIPS, countyName any
	if meta.Elevation != nil {
		elevationValue, elevationUnits = meta.Elevation.Value, string(meta.Elevation.Unit)
	}
	if meta.HUC != nil {
		hucCode, hucName = meta.HUC.Code, meta.HUC.Name
	}
	if meta.County != nil {
		countyFIPS, countyName = meta.County.FIPS, meta.County.Name
	}

	_, err = r.db.Exec(ctx, query,
		meta.SiteID, elevationValue, elevationUnits,
		hucCode, hucName,
		countyFIPS, countyName,
		location, site.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update site metadata: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the enrichment attempt count for the site
// identified by siteID and records the error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, siteID int, errMsg string) error {
	query := `
		UPDATE sites
		SET
			enrichment_attempts = enrichment_attempts + 1,
			enrichment_error = $1
		WHERE id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, siteID)
	if err != nil {
		return fmt.Errorf("failed to update enrichment error and number of attempts: %w", err)
	}

	return nil
}
