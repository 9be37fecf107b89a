// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Ingestion metrics track the periodic pipeline
var (
	// IngestCycleRunsTotal counts ingestion cycles by outcome
	IngestCycleRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_cycle_runs_total",
			Help: "Total number of ingestion cycles run",
		},
		[]string{"status"}, // status: success, failure
	)

	// IngestCycleDuration measures end-to-end cycle duration
	IngestCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_cycle_duration_seconds",
			Help:    "End-to-end duration of an ingestion cycle",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// ArticlesFetchedTotal counts raw articles pulled from each provider
	ArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_articles_fetched_total",
			Help: "Total number of articles fetched from upstream providers",
		},
		[]string{"provider"},
	)

	// ArticlesStoredTotal counts newly inserted articles
	ArticlesStoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_articles_stored_total",
			Help: "Total number of new articles stored",
		},
	)

	// ArticlesUpdatedTotal counts refreshed existing articles
	ArticlesUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_articles_updated_total",
			Help: "Total number of existing articles updated",
		},
	)

	// ScrapeAttemptsTotal counts content scrape attempts by result
	ScrapeAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_scrape_attempts_total",
			Help: "Total number of content scrape attempts",
		},
		[]string{"result"}, // result: success, failure, blocked
	)

	// ScrapeDuration measures time to scrape one article page
	ScrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_scrape_duration_seconds",
			Help:    "Time taken to scrape one article page",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// LastSuccessTimestamp holds the unix time of the last successful cycle
	LastSuccessTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_last_success_timestamp",
			Help: "Unix timestamp of the last successful ingestion cycle",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
