// Package metrics registers the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourceFetchDuration times each homepage source fetch.
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsdesk_source_fetch_duration_seconds",
			Help:    "Duration of article source fetches during homepage composition",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// SourceFetchFailures counts fetches degraded to an empty list.
	SourceFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdesk_source_fetch_failures_total",
			Help: "Total number of article source fetches that failed or timed out",
		},
		[]string{"source"},
	)

	// SlateFallbacks counts slates produced by the empty-slate fallback.
	SlateFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdesk_slate_fallbacks_total",
			Help: "Total number of slates filled without deduplication",
		},
		[]string{"section"},
	)

	// CompositionDuration times a full homepage build, fetches included.
	CompositionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsdesk_composition_duration_seconds",
			Help:    "Duration of homepage compositions",
			Buckets: prometheus.DefBuckets,
		},
	)

	// APIRequestDuration times HTTP handlers.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsdesk_api_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// StoreQueryErrors counts failed store queries.
	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdesk_store_query_errors_total",
			Help: "Total number of article store query errors",
		},
		[]string{"operation"},
	)
)

// RecordSourceFetch observes one fetch and counts it as failed when err is set.
func RecordSourceFetch(source string, started time.Time, err error) {
	SourceFetchDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
	if err != nil {
		SourceFetchFailures.WithLabelValues(source).Inc()
	}
}

// RecordAPIRequest observes one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
