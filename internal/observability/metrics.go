package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_cirurgias_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cirurgias_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cirurgias_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// StatusTransitions tracks state machine transitions by edge and outcome
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cirurgias_status_transitions_total",
			Help: "Number of surgery request status transitions",
		},
		[]string{"from", "to", "status"},
	)

	// PendencyValidations tracks pendency evaluator runs
	PendencyValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cirurgias_pendency_validations_total",
			Help: "Number of pendency validation runs",
		},
		[]string{"status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_cirurgias_active_connections",
			Help: "Number of active connections",
		},
	)
)
