// Package metrics provides Prometheus metrics for the synergy optimizer service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the synergy service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Search Metrics - what the service is for
	searches         *prometheus.CounterVec
	searchDuration   *prometheus.HistogramVec
	localPasses      prometheus.Histogram
	ilsImprovements  prometheus.Counter
	bestFitness      *prometheus.GaugeVec
	searchEvaluation *prometheus.HistogramVec

	// Catalog Metrics
	catalogLoadDuration *prometheus.HistogramVec
	catalogLoadErrors   *prometheus.CounterVec
	catalogPoolSize     *prometheus.GaugeVec

	// Queue Metrics - search admission
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	queueWaitLatency   prometheus.Histogram

	// Worker Metrics
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerIdleCount         prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Metrics
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

// Configure replaces the global manager with one built from opts on a fresh
// registry. Call it at startup before any metric is recorded.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(customRegistry))...)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "synergy",
		subsystem:        "optimizer",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	if buckets == nil {
		buckets = m.histogramBuckets
	}
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.searches = auto.NewCounterVec(
		m.counterOpts("searches_total", "Total number of searches by mode and outcome"),
		[]string{"mode", "outcome"},
	)
	m.searchDuration = auto.NewHistogramVec(
		m.histogramOpts("search_duration_milliseconds", "Wall time of a full iterated local search",
			[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}),
		[]string{"mode"},
	)
	m.localPasses = auto.NewHistogram(
		m.histogramOpts("local_search_passes", "Local search passes performed per search",
			prometheus.ExponentialBuckets(100, 2, 10)),
	)
	m.ilsImprovements = auto.NewCounter(
		m.counterOpts("ils_improvements_total", "Rounds in which the iterated search improved its best solution"),
	)
	m.bestFitness = auto.NewGaugeVec(
		m.gaugeOpts("best_fitness", "Fitness of the most recently completed search"),
		[]string{"mode"},
	)
	m.searchEvaluation = auto.NewHistogramVec(
		m.histogramOpts("search_evaluation", "Primary metric reported by completed searches",
			prometheus.LinearBuckets(0, 2, 12)),
		[]string{"mode"},
	)

	m.catalogLoadDuration = auto.NewHistogramVec(
		m.histogramOpts("catalog_load_duration_milliseconds", "Catalog load duration in milliseconds", nil),
		[]string{"mode"},
	)
	m.catalogLoadErrors = auto.NewCounterVec(
		m.counterOpts("catalog_load_errors_total", "Total number of failed catalog loads"),
		[]string{"mode"},
	)
	m.catalogPoolSize = auto.NewGaugeVec(
		m.gaugeOpts("catalog_pool_size", "Number of champions in the last loaded catalog"),
		[]string{"mode"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current number of searches waiting for a worker"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue utilization ratio (current size / capacity)"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Total number of searches enqueued"))
	m.queueDequeued = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Total number of searches dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Total number of searches rejected by a full or closed queue"))
	m.queueWaitLatency = auto.NewHistogram(
		m.histogramOpts("queue_wait_latency_milliseconds", "Time a search spent queued before a worker picked it up", nil),
	)

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Configured number of search workers"))
	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Number of workers running a search"))
	m.workerIdleCount = auto.NewGauge(m.gaugeOpts("worker_idle_count", "Number of idle workers"))
	m.workerProcessingLatency = auto.NewHistogram(
		m.histogramOpts("worker_processing_latency_milliseconds", "Worker processing latency in milliseconds", nil),
	)
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Total number of failed search jobs"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", nil),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRateLimited = auto.NewCounterVec(
		m.counterOpts("http_rate_limited_total", "Requests rejected by the rate limiter"),
		[]string{"endpoint"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// Search Metrics Functions.

// RecordSearch counts a finished search. Outcome is "ok", "timeout",
// "rejected" or "error".
func RecordSearch(mode, outcome string) {
	globalManager.searches.WithLabelValues(mode, outcome).Inc()
}

// RecordSearchDuration records the wall time of one search in milliseconds.
func RecordSearchDuration(mode string, durationMs float64) {
	globalManager.searchDuration.WithLabelValues(mode).Observe(durationMs)
}

// RecordLocalSearchPasses records the local search passes of one search.
func RecordLocalSearchPasses(passes int) {
	globalManager.localPasses.Observe(float64(passes))
}

// RecordILSImprovements adds the improving rounds of one search.
func RecordILSImprovements(n int) {
	if n > 0 {
		globalManager.ilsImprovements.Add(float64(n))
	}
}

// UpdateBestFitness sets the fitness of the last completed search.
func UpdateBestFitness(mode string, fitness int) {
	globalManager.bestFitness.WithLabelValues(mode).Set(float64(fitness))
}

// RecordSearchEvaluation records the primary metric of a completed search.
func RecordSearchEvaluation(mode string, evaluation int) {
	globalManager.searchEvaluation.WithLabelValues(mode).Observe(float64(evaluation))
}

// Catalog Metrics Functions.

// RecordCatalogLoad records a successful catalog load.
func RecordCatalogLoad(mode string, durationMs float64, poolSize int) {
	globalManager.catalogLoadDuration.WithLabelValues(mode).Observe(durationMs)
	globalManager.catalogPoolSize.WithLabelValues(mode).Set(float64(poolSize))
}

// RecordCatalogLoadError increments the failed catalog load counter.
func RecordCatalogLoadError(mode string) {
	globalManager.catalogLoadErrors.WithLabelValues(mode).Inc()
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueWaitLatency records how long a job waited in the queue.
func RecordQueueWaitLatency(latencyMs float64) {
	globalManager.queueWaitLatency.Observe(latencyMs)
}

// Worker Metrics Functions.

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// UpdateWorkerIdleCount sets the number of idle workers.
func UpdateWorkerIdleCount(count int) {
	globalManager.workerIdleCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
