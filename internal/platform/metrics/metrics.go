package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "operation_duration_seconds",
			Help:    "Duration of timed internal operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)

	ProviderSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_searches_total",
			Help: "Total number of provider searches by outcome",
		},
		[]string{"outcome"},
	)

	SearchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "provider_search_candidates",
			Help:    "Number of candidates returned per provider search",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	RadiusExpansions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "provider_search_radius_expansions_total",
			Help: "Total number of times a search widened its radius",
		},
	)

	DistanceCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "distance_cache_lookups_total",
			Help: "Distance cache lookups by result",
		},
		[]string{"result"},
	)

	EmergencyMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emergency_messages_composed_total",
			Help: "Total number of emergency dispatch messages composed",
		},
	)

	Dispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_dispatches_total",
			Help: "Provider dispatch attempts by outcome",
		},
		[]string{"outcome"},
	)
)
