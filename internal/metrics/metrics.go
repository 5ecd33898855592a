package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service label values used by the enrichment pipeline.
const (
	ServiceElevation = "elevation"
	ServiceWatershed = "watershed"
	ServiceCensus    = "census"
)

type Metrics struct {
	SitesProcessed *prometheus.CounterVec
	Lookups        *prometheus.CounterVec
	APIErrors      *prometheus.CounterVec
	RetryAttempts  *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	ActiveWorkers  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SitesProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hydrosite_sites_processed_total",
			Help: "Total number of sites processed by the enrichment service.",
		}, []string{"status"}),
		Lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hydrosite_lookups_total",
			Help: "Total number of geospatial service lookups by outcome.",
		}, []string{"service", "status"}),
		APIErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hydrosite_api_errors_total",
			Help: "Total number of errors received from geospatial service APIs.",
		}, []string{"service"}),
		RetryAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hydrosite_retry_attempts_total",
			Help: "Total number of retried requests to geospatial service APIs.",
		}, []string{"service"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hydrosite_request_duration_seconds",
			Help:    "Duration of requests to geospatial service APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hydrosite_active_workers",
			Help: "Current number of active workers enriching sites.",
		}),
	}
}
