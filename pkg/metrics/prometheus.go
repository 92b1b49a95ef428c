// Package metrics provides Prometheus metrics for the TalentFlow hiring-pipeline service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the TalentFlow service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Operation metrics - one labelled series per router operation.
	operationsTotal   *prometheus.CounterVec
	operationErrors   *prometheus.CounterVec
	operationLatency  *prometheus.HistogramVec
	injectedFailures  prometheus.Counter
	simulatedLatency  prometheus.Histogram

	// Store metrics.
	storeRecords       *prometheus.GaugeVec
	storeTransactions  prometheus.Counter
	snapshotSaves      prometheus.Counter
	snapshotSaveErrors prometheus.Counter
	snapshotDuration   prometheus.Histogram

	// Optimistic mutation metrics.
	speculativeApplies prometheus.Counter
	rollbacks          prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "talentflow",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.operationsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "operations_total",
			Help:      "Total number of service operations by name",
		},
		[]string{"operation"},
	)

	m.operationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "operation_errors_total",
			Help:      "Total number of failed service operations by name and error kind",
		},
		[]string{"operation", "kind"},
	)

	m.operationLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "operation_latency_milliseconds",
			Help:      "Histogram of end-to-end operation latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"operation"},
	)

	m.injectedFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "injected_failures_total",
		Help:      "Total number of artificially injected write failures",
	})

	m.simulatedLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulated_latency_milliseconds",
		Help:      "Histogram of simulated network latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeRecords = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_records",
			Help:      "Current number of records per store table",
		},
		[]string{"table"},
	)

	m.storeTransactions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_transactions_total",
		Help:      "Total number of committed store transactions",
	})

	m.snapshotSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_saves_total",
		Help:      "Total number of snapshot files written",
	})

	m.snapshotSaveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_save_errors_total",
		Help:      "Total number of snapshot write failures",
	})

	m.snapshotDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_save_duration_milliseconds",
		Help:      "Histogram of snapshot write duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.speculativeApplies = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "speculative_applies_total",
		Help:      "Total number of optimistic mutations applied locally",
	})

	m.rollbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rollbacks_total",
		Help:      "Total number of optimistic mutations rolled back after a failed confirmation",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

// RecordOperation counts a completed service operation.
func RecordOperation(operation string) {
	globalManager.operationsTotal.WithLabelValues(operation).Inc()
}

// RecordOperationError counts a failed service operation by error kind.
func RecordOperationError(operation, kind string) {
	globalManager.operationErrors.WithLabelValues(operation, kind).Inc()
}

// RecordOperationLatency observes end-to-end operation latency.
func RecordOperationLatency(operation string, ms float64) {
	globalManager.operationLatency.WithLabelValues(operation).Observe(ms)
}

// RecordInjectedFailure counts an artificially injected write failure.
func RecordInjectedFailure() {
	globalManager.injectedFailures.Inc()
}

// RecordSimulatedLatency observes one simulated network delay.
func RecordSimulatedLatency(ms float64) {
	globalManager.simulatedLatency.Observe(ms)
}

// UpdateStoreRecords sets the record count gauge for a table.
func UpdateStoreRecords(table string, count int) {
	globalManager.storeRecords.WithLabelValues(table).Set(float64(count))
}

// RecordStoreTransaction counts a committed transaction.
func RecordStoreTransaction() {
	globalManager.storeTransactions.Inc()
}

// RecordSnapshotSave counts a snapshot write and observes its duration.
func RecordSnapshotSave(ms float64) {
	globalManager.snapshotSaves.Inc()
	globalManager.snapshotDuration.Observe(ms)
}

// RecordSnapshotSaveError counts a failed snapshot write.
func RecordSnapshotSaveError() {
	globalManager.snapshotSaveErrors.Inc()
}

// RecordSpeculativeApply counts an optimistic mutation applied locally.
func RecordSpeculativeApply() {
	globalManager.speculativeApplies.Inc()
}

// RecordRollback counts an optimistic mutation rolled back.
func RecordRollback() {
	globalManager.rollbacks.Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}
