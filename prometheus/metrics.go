package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MayankXDev13/ledger-x/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Contact lifecycle metrics
	ContactOperationsCounter prometheus.CounterVec

	// Ledger entry metrics
	EntryOperationsCounter prometheus.CounterVec

	// Tag metrics (label "namespace" distinguishes contact vs transaction tags)
	TagOperationsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ContactOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_contact_operations_total",
			Help: "Total number of contact operations",
		},
		[]string{"operation"},
	)

	EntryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_entry_operations_total",
			Help: "Total number of ledger entry operations",
		},
		[]string{"operation"},
	)

	TagOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tag_operations_total",
			Help: "Total number of tag operations",
		},
		[]string{"namespace", "operation"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordContactOperation increments the counter for contact operations
func RecordContactOperation(operation string) {
	ContactOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordEntryOperation increments the counter for ledger entry operations
func RecordEntryOperation(operation string) {
	EntryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTagOperation increments the counter for tag operations
func RecordTagOperation(namespace, operation string) {
	TagOperationsCounter.WithLabelValues(namespace, operation).Inc()
}
