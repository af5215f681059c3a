// Package metrics provides Prometheus metrics for the squad maker service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the squad maker service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Balancing
	balanceRequests *prometheus.CounterVec
	balanceLatency  *prometheus.HistogramVec
	squadsBuilt     *prometheus.CounterVec
	waitingListSize prometheus.Gauge

	// Ingestion
	playersSourced *prometheus.GaugeVec
	sourceErrors   *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Benchmark queue and workers
	queueSize             prometheus.Gauge
	queueEnqueued         prometheus.Counter
	queueDequeued         prometheus.Counter
	workerCount           prometheus.Gauge
	benchmarkExperiments  *prometheus.CounterVec
	benchmarkVarianceLast *prometheus.GaugeVec
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
		namespace:        "squadmaker",
		subsystem:        "balancer",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
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

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.balanceRequests = auto.NewCounterVec(
		m.counterOpts("balance_requests_total", "Total number of balance requests by strategy and outcome"),
		[]string{"strategy", "outcome"},
	)
	m.balanceLatency = auto.NewHistogramVec(
		m.histogramOpts("balance_latency_milliseconds", "Histogram of balancing latency in milliseconds"),
		[]string{"strategy"},
	)
	m.squadsBuilt = auto.NewCounterVec(
		m.counterOpts("squads_built_total", "Total number of squads built"),
		[]string{"strategy"},
	)
	m.waitingListSize = auto.NewGauge(
		m.gaugeOpts("waiting_list_size", "Number of players on the waiting list after the last balance"),
	)

	m.playersSourced = auto.NewGaugeVec(
		m.gaugeOpts("players_sourced", "Number of players returned by the last successful load"),
		[]string{"source"},
	)
	m.sourceErrors = auto.NewCounterVec(
		m.counterOpts("source_errors_total", "Total number of failed player loads"),
		[]string{"source"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current number of queued benchmark experiments"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueued_total", "Total number of enqueued benchmark experiments"))
	m.queueDequeued = auto.NewCounter(m.counterOpts("queue_dequeued_total", "Total number of dequeued benchmark experiments"))
	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Current number of running benchmark workers"))
	m.benchmarkExperiments = auto.NewCounterVec(
		m.counterOpts("benchmark_experiments_total", "Total number of benchmark experiments by strategy"),
		[]string{"strategy"},
	)
	m.benchmarkVarianceLast = auto.NewGaugeVec(
		m.gaugeOpts("benchmark_average_variance", "Average cross-squad variance of the last benchmark run"),
		[]string{"strategy"},
	)
}

// RecordBalanceRequest counts a balance request with its outcome
// (ok, invalid_request, error).
func RecordBalanceRequest(strategy, outcome string) {
	globalManager.balanceRequests.WithLabelValues(strategy, outcome).Inc()
}

// RecordBalanceLatency records balancing latency in milliseconds.
func RecordBalanceLatency(strategy string, latencyMs float64) {
	globalManager.balanceLatency.WithLabelValues(strategy).Observe(latencyMs)
}

// RecordSquadsBuilt adds n built squads.
func RecordSquadsBuilt(strategy string, n int) {
	globalManager.squadsBuilt.WithLabelValues(strategy).Add(float64(n))
}

// UpdateWaitingListSize sets the size of the last waiting list.
func UpdateWaitingListSize(size int) {
	globalManager.waitingListSize.Set(float64(size))
}

// UpdatePlayersSourced sets the number of players the source returned.
func UpdatePlayersSourced(source string, count int) {
	globalManager.playersSourced.WithLabelValues(source).Set(float64(count))
}

// RecordSourceError increments the failed load counter for source.
func RecordSourceError(source string) {
	globalManager.sourceErrors.WithLabelValues(source).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordBenchmarkExperiment counts one finished experiment for strategy.
func RecordBenchmarkExperiment(strategy string) {
	globalManager.benchmarkExperiments.WithLabelValues(strategy).Inc()
}

// UpdateBenchmarkVariance sets the overall average variance of a benchmark run.
func UpdateBenchmarkVariance(strategy string, variance float64) {
	globalManager.benchmarkVarianceLast.WithLabelValues(strategy).Set(variance)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
