// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Upstream (TheMealDB) metrics
var (
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealdb_requests_total",
			Help: "Total number of upstream recipe API calls by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealdb_request_duration_seconds",
			Help:    "Upstream recipe API call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
		},
		[]string{"endpoint"},
	)

	UpstreamCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealdb_cache_hits_total",
			Help: "Upstream responses served from the revalidation cache",
		},
		[]string{"endpoint"},
	)
)

// Search metrics
var (
	SearchFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_fallback_total",
			Help: "Searches that left the primary name-search path",
		},
		[]string{"kind"},
	)

	SearchResultsTotal = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_results_total",
			Help:    "Number of filtered results per search before pagination",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)
)

// Fallback kinds recorded by RecordSearchFallback.
const (
	FallbackLocal      = "local"
	FallbackIngredient = "ingredient"
)

// Upstream call outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeOpen    = "circuit_open"
)

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordUpstreamCall records one upstream call and how it ended.
func RecordUpstreamCall(endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCacheHit records an upstream response served from cache.
func RecordCacheHit(endpoint string) {
	UpstreamCacheHitsTotal.WithLabelValues(endpoint).Inc()
}

// RecordSearchFallback records a search that took the given fallback path.
func RecordSearchFallback(kind string) {
	SearchFallbackTotal.WithLabelValues(kind).Inc()
}

// RecordSearchResults records the filtered result count of a search.
func RecordSearchResults(total int) {
	SearchResultsTotal.Observe(float64(total))
}
