package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts API requests by route pattern, method, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_http_requests_total",
		Help: "Total HTTP requests handled by the bookmarks API.",
	}, []string{"route", "method", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookmarks_http_request_duration_seconds",
		Help:    "Time from request receipt to response.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})

	// OperationsTotal counts bookmark operations by outcome:
	// ok, invalid, not_found, error.
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_operations_total",
		Help: "Bookmark operations by kind and outcome.",
	}, []string{"op", "result"})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_cache_lookups_total",
		Help: "Redis cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)
