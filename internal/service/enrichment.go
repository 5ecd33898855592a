package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/hydrosite/internal/census"
	"github.com/UnknownOlympus/hydrosite/internal/elevation"
	"github.com/UnknownOlympus/hydrosite/internal/metrics"
	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/UnknownOlympus/hydrosite/internal/repository"
	"github.com/UnknownOlympus/hydrosite/internal/siteid"
	"github.com/UnknownOlympus/hydrosite/internal/watershed"
)

const batchSize = 100

// ElevationProvider returns the ground elevation at a point.
type ElevationProvider interface {
	Elevation(ctx context.Context, coords models.Coordinates, unit models.Unit) (*models.Elevation, error)
}

// WatershedLocator returns the hydrologic unit containing a point.
type WatershedLocator interface {
	Lookup(ctx context.Context, coords models.Coordinates) (*models.HUC, error)
}

// CountyLocator returns the county containing a point.
type CountyLocator interface {
	Lookup(ctx context.Context, coords models.Coordinates) (*models.County, error)
}

// EnrichmentService periodically picks up sites without metadata and fills in
// the site id, elevation, hydrologic unit and county for each of them.
type EnrichmentService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	elevation    ElevationProvider    // Elevation service
	watershed    WatershedLocator     // Hydrologic unit service
	census       CountyLocator        // County service
	unit         models.Unit          // Unit elevations are stored in
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval for polling new sites
}

// NewEnrichmentService creates a new instance of EnrichmentService.
func NewEnrichmentService(
	log *slog.Logger,
	repo repository.Interface,
	elevation ElevationProvider,
	watershed WatershedLocator,
	census CountyLocator,
	unit models.Unit,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
) *EnrichmentService {
	return &EnrichmentService{
		log:          log,
		repo:         repo,
		elevation:    elevation,
		watershed:    watershed,
		census:       census,
		unit:         unit,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// Run starts the enrichment service, which periodically polls for new sites.
// It returns when the context is canceled.
func (es *EnrichmentService) Run(ctx context.Context) {
	ticker := time.NewTicker(es.pollInterval)
	defer ticker.Stop()

	es.log.InfoContext(ctx, "Enrichment service started...")

	for {
		select {
		case <-ctx.Done():
			es.log.InfoContext(ctx, "Enrichment service stopped.")
			return
		case <-ticker.C:
			es.log.InfoContext(ctx, "Polling for new sites to enrich...")
			es.processSites(ctx)
		}
	}
}

// processSites fetches one batch of sites and fans it out to the worker pool,
// returning once every site of the batch has been handled.
func (es *EnrichmentService) processSites(ctx context.Context) {
	sites, err := es.repo.FetchSitesForEnrichment(ctx, batchSize)
	if err != nil {
		es.log.ErrorContext(ctx, "Failed to fetch sites", "error", err)
		return
	}
	if len(sites) == 0 {
		es.log.InfoContext(ctx, "No sites to process.")
		return
	}

	es.log.InfoContext(
		ctx,
		"Found sites to process. Starting worker pool.",
		"jobs", len(sites),
		"num_workers", es.numWorkers,
	)

	jobs := make(chan models.Site, len(sites))
	var wgr sync.WaitGroup

	for i := 1; i <= es.numWorkers; i++ {
		wgr.Add(1)
		go es.worker(ctx, i, &wgr, jobs)
	}

	for _, site := range sites {
		jobs <- site
	}
	close(jobs)

	wgr.Wait()
	es.log.InfoContext(ctx, "Processing batch finished")
}

func (es *EnrichmentService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.Site) {
	defer wg.Done()
	for site := range jobs {
		es.metrics.ActiveWorkers.Inc()
		es.log.DebugContext(ctx, "Processing site", "worker", idx, "site", site.ID)
		es.handle(ctx, idx, site)
		es.metrics.ActiveWorkers.Dec()
	}
}

func (es *EnrichmentService) handle(ctx context.Context, idx int, site models.Site) {
	meta, err := es.Enrich(ctx, site)
	if err != nil {
		es.log.ErrorContext(ctx, "Failed to enrich site", "worker", idx, "site", site.ID, "error", err)
		es.metrics.SitesProcessed.WithLabelValues("failure").Inc()

		if err = es.repo.IncrementFailureCount(ctx, site.ID, err.Error()); err != nil {
			es.log.ErrorContext(
				ctx,
				"Could not update failure count for site",
				"worker", idx,
				"site", site.ID,
				"error", err,
			)
		}
		return
	}

	es.metrics.SitesProcessed.WithLabelValues("success").Inc()

	if err = es.repo.UpdateSiteMetadata(ctx, site, *meta); err != nil {
		es.log.ErrorContext(ctx, "Failed to update metadata for site", "worker", idx, "site", site.ID, "error", err)
		return
	}

	es.log.DebugContext(ctx, "Worker successfully processed the site", "worker", idx, "site", site.ID,
		"site_id", meta.SiteID)
}

// Enrich computes the site id and queries every service for a single site.
// A service with no data for the point leaves the matching member nil; any other
// failure aborts the enrichment.
func (es *EnrichmentService) Enrich(ctx context.Context, site models.Site) (*models.SiteMetadata, error) {
	coords := site.Coordinates()

	id, err := siteid.SiteID(coords)
	if err != nil {
		return nil, fmt.Errorf("site id: %w", err)
	}
	meta := &models.SiteMetadata{SiteID: id}

	meta.Elevation, err = lookup(ctx, es, metrics.ServiceElevation, elevation.ErrNoData,
		func() (*models.Elevation, error) { return es.elevation.Elevation(ctx, coords, es.unit) })
	if err != nil {
		return nil, err
	}

	meta.HUC, err = lookup(ctx, es, metrics.ServiceWatershed, watershed.ErrNoWatershed,
		func() (*models.HUC, error) { return es.watershed.Lookup(ctx, coords) })
	if err != nil {
		return nil, err
	}

	meta.County, err = lookup(ctx, es, metrics.ServiceCensus, census.ErrNoCounty,
		func() (*models.County, error) { return es.census.Lookup(ctx, coords) })
	if err != nil {
		return nil, err
	}

	return meta, nil
}

// lookup times a single service call and records its outcome. notFound is
// reported as a nil result without error.
func lookup[T any](
	ctx context.Context,
	es *EnrichmentService,
	service string,
	notFound error,
	call func() (*T, error),
) (*T, error) {
	startTime := time.Now()
	result, err := call()
	es.metrics.RequestSeconds.WithLabelValues(service).Observe(time.Since(startTime).Seconds())

	switch {
	case err == nil:
		es.metrics.Lookups.WithLabelValues(service, "success").Inc()
		return result, nil
	case errors.Is(err, notFound):
		es.metrics.Lookups.WithLabelValues(service, "not_found").Inc()
		es.log.DebugContext(ctx, "No data for site", "service", service, "error", err)
		return nil, nil
	default:
		es.metrics.Lookups.WithLabelValues(service, "failure").Inc()
		es.metrics.APIErrors.WithLabelValues(service).Inc()
		return nil, fmt.Errorf("%s lookup: %w", service, err)
	}
}
