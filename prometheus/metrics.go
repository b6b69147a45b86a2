package prometheus

import (
	"time"

	"citypulse-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initialized bool

	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Persona metrics
	PersonaOperationsCounter prometheus.CounterVec

	// Room metrics
	RoomOperationsCounter prometheus.CounterVec

	// Message metrics
	MessageOperationsCounter prometheus.CounterVec

	// Alert metrics
	AlertOperationsCounter prometheus.CounterVec

	// Nearby scan metrics
	NearbyScanResults prometheus.Histogram

	// Rate limit metrics
	RateLimitedCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration. Calling
// it again is a no-op so test setups can share a process registry.
func InitMetrics(config *config.Config) {
	if initialized {
		return
	}
	initialized = true

	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Persona metrics
	PersonaOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_persona_operations_total",
			Help: "Total number of persona operations",
		},
		[]string{"operation"},
	)

	// Room metrics
	RoomOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_room_operations_total",
			Help: "Total number of room operations",
		},
		[]string{"operation"},
	)

	// Message metrics
	MessageOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_message_operations_total",
			Help: "Total number of message operations",
		},
		[]string{"operation"},
	)

	// Alert metrics
	AlertOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_alert_operations_total",
			Help: "Total number of alert operations",
		},
		[]string{"operation"},
	)

	// Nearby scan metrics
	NearbyScanResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_nearby_scan_results",
			Help:    "Number of alerts returned per nearby scan",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		},
	)

	// Rate limit metrics
	RateLimitedCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_rate_limited_total",
			Help: "Total number of rate limited requests",
		},
		[]string{"endpoint"},
	)
}

// RecordHTTPRequest records one completed HTTP request
func RecordHTTPRequest(method, path, status string, duration float64) {
	if !initialized {
		return
	}
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if !initialized {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordPersonaOperation increments the counter for persona operations
func RecordPersonaOperation(operation string) {
	if !initialized {
		return
	}
	PersonaOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordRoomOperation increments the counter for room operations
func RecordRoomOperation(operation string) {
	if !initialized {
		return
	}
	RoomOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordMessageOperation increments the counter for message operations
func RecordMessageOperation(operation string) {
	if !initialized {
		return
	}
	MessageOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordAlertOperation increments the counter for alert operations
func RecordAlertOperation(operation string) {
	if !initialized {
		return
	}
	AlertOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordNearbyScan observes the result size of a nearby alert scan
func RecordNearbyScan(results int) {
	if !initialized {
		return
	}
	NearbyScanResults.Observe(float64(results))
}

// RecordRateLimited increments the counter for rate limited requests
func RecordRateLimited(endpoint string) {
	if !initialized {
		return
	}
	RateLimitedCounter.WithLabelValues(endpoint).Inc()
}
