// Package metrics provides Prometheus metrics for the trailboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// resultSizeBuckets sizes the search result histogram (rows matched).
var resultSizeBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000}

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Dataset metrics
	datasetLoads   *prometheus.CounterVec
	datasetRunners *prometheus.GaugeVec
	duplicateBibs  *prometheus.CounterVec

	// Query pipeline metrics
	searches        *prometheus.CounterVec
	searchResults   *prometheus.HistogramVec
	searchLatency   *prometheus.HistogramVec
	facetExtraction *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "trailboard",
		subsystem:        "browser",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval returns how often gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.datasetLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loads_total",
		Help:      "Dataset loads by distance and result (ok, not_found, error)",
	}, []string{"distance", "result"})

	m.datasetRunners = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_runners",
		Help:      "Number of runners in the last loaded dataset per distance",
	}, []string{"distance"})

	m.duplicateBibs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_duplicate_bibs_total",
		Help:      "Duplicate bibs seen while loading datasets",
	}, []string{"distance"})

	m.searches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "searches_total",
		Help:      "Filter/search queries executed per distance",
	}, []string{"distance"})

	m.searchResults = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_result_rows",
		Help:      "Number of runners matched by a query",
		Buckets:   resultSizeBuckets,
	}, []string{"distance"})

	m.searchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_latency_milliseconds",
		Help:      "Time spent filtering and paginating a dataset",
		Buckets:   m.histogramBuckets,
	}, []string{"distance"})

	m.facetExtraction = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "facet_extractions_total",
		Help:      "Facet sets derived per distance",
	}, []string{"distance"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Errors by type and severity",
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Errors by endpoint, method and type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Average GC pause in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordDatasetLoad counts a dataset load outcome.
func (m *Manager) RecordDatasetLoad(distance, result string) {
	if m.enabled {
		m.datasetLoads.WithLabelValues(distance, result).Inc()
	}
}

// UpdateDatasetRunners sets the runner count of a distance.
func (m *Manager) UpdateDatasetRunners(distance string, n int) {
	if m.enabled {
		m.datasetRunners.WithLabelValues(distance).Set(float64(n))
	}
}

// RecordDuplicateBibs adds n duplicate bibs for a distance.
func (m *Manager) RecordDuplicateBibs(distance string, n int) {
	if m.enabled && n > 0 {
		m.duplicateBibs.WithLabelValues(distance).Add(float64(n))
	}
}

// RecordSearch records one executed query, its match count and latency.
func (m *Manager) RecordSearch(distance string, matched int, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.searches.WithLabelValues(distance).Inc()
	m.searchResults.WithLabelValues(distance).Observe(float64(matched))
	m.searchLatency.WithLabelValues(distance).Observe(latencyMs)
}

// RecordFacetExtraction counts a facet derivation.
func (m *Manager) RecordFacetExtraction(distance string) {
	if m.enabled {
		m.facetExtraction.WithLabelValues(distance).Inc()
	}
}

// RecordHTTPRequest counts a served request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError counts an error by type, severity and endpoint.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystem records memory, goroutine and GC pause readings.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int, gcPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if gcPauseMs > 0 {
		m.systemGCPauseTime.Observe(gcPauseMs)
	}
}

// Package-level helpers record on the global manager.

// RecordDatasetLoad counts a dataset load outcome.
func RecordDatasetLoad(distance, result string) { globalManager.RecordDatasetLoad(distance, result) }

// UpdateDatasetRunners sets the runner count of a distance.
func UpdateDatasetRunners(distance string, n int) { globalManager.UpdateDatasetRunners(distance, n) }

// RecordDuplicateBibs adds duplicate bibs for a distance.
func RecordDuplicateBibs(distance string, n int) { globalManager.RecordDuplicateBibs(distance, n) }

// RecordSearch records one executed query.
func RecordSearch(distance string, matched int, latencyMs float64) {
	globalManager.RecordSearch(distance, matched, latencyMs)
}

// RecordFacetExtraction counts a facet derivation.
func RecordFacetExtraction(distance string) { globalManager.RecordFacetExtraction(distance) }

// RecordHTTPRequest counts a served request.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordError counts an error.
func RecordError(endpoint, method, errorType, severity string) {
	globalManager.RecordError(endpoint, method, errorType, severity)
}

// UpdateSystem records process readings.
func UpdateSystem(memBytes uint64, goroutines int, gcPauseMs float64) {
	globalManager.UpdateSystem(memBytes, goroutines, gcPauseMs)
}

// GetRegistry returns the registry the global manager records on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns how often the global manager's gauges should be refreshed.
func RefreshInterval() time.Duration {
	return globalManager.RefreshInterval()
}
