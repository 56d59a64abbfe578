// Package metrics provides Prometheus metrics for the activities service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the activities service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Roster business metrics
	signups          prometheus.Counter
	unregistrations  prometheus.Counter
	rejections       *prometheus.CounterVec
	activitiesTotal  prometheus.Gauge
	participantTotal prometheus.Gauge
	activityEnrolled *prometheus.GaugeVec
	activityFill     *prometheus.GaugeVec

	// Directory metrics
	directoryUpdateLatency prometheus.Histogram
	directoryQueryLatency  prometheus.Histogram

	// Change queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	changesDropped     prometheus.Counter

	// Worker and journal metrics
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter
	changesRecorded         prometheus.Counter
	journalSize             prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

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

// NewManager creates a new metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mergington",
		subsystem:        "activities",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.signups = m.counter("signups_total", "Total number of successful activity sign-ups")
	m.unregistrations = m.counter("unregistrations_total", "Total number of successful activity unregistrations")
	m.rejections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "roster_rejections_total",
		Help: "Roster mutations refused by a business rule",
	}, []string{"operation", "reason"})
	m.activitiesTotal = m.gauge("activities_total", "Number of activities in the directory")
	m.participantTotal = m.gauge("participants_total", "Number of enrollments across all activities")
	m.activityEnrolled = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "activity_participants",
		Help: "Participants enrolled per activity",
	}, []string{"activity"})
	m.activityFill = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "activity_fill_ratio",
		Help: "Participants divided by capacity per activity",
	}, []string{"activity"})

	m.directoryUpdateLatency = m.histogram("directory_update_latency_milliseconds", "Directory mutation latency in milliseconds")
	m.directoryQueryLatency = m.histogram("directory_query_latency_milliseconds", "Directory read latency in milliseconds")

	m.queueSize = m.gauge("change_queue_size", "Current number of roster changes waiting in the queue")
	m.queueCapacity = m.gauge("change_queue_capacity", "Maximum number of roster changes the queue holds")
	m.queueUtilization = m.gauge("change_queue_utilization_ratio", "Queue size divided by capacity")
	m.queueEnqueued = m.counter("change_queue_enqueued_total", "Roster changes accepted by the queue")
	m.queueDequeued = m.counter("change_queue_dequeued_total", "Roster changes handed to workers")
	m.queueEnqueueErrors = m.counter("change_queue_enqueue_errors_total", "Roster changes the queue refused")
	m.changesDropped = m.counter("changes_dropped_total", "Roster changes not journaled because the queue refused them")

	m.workerCount = m.gauge("worker_count", "Number of change workers")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Time spent recording one change")
	m.workerErrors = m.counter("worker_errors_total", "Changes a worker failed to record")
	m.changesRecorded = m.counter("changes_recorded_total", "Changes written to the journal")
	m.journalSize = m.gauge("journal_size", "Number of changes retained by the journal")

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "http_requests_total",
		Help: "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "errors_by_component_total",
		Help: "Errors by component and type",
	}, []string{"component", "error_type"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "errors_by_endpoint_total",
		Help: "HTTP errors by endpoint, method and type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_milliseconds", "Average GC pause in milliseconds")
}

// Roster metrics.

// RecordSignup increments the sign-up counter.
func RecordSignup() { globalManager.signups.Inc() }

// RecordUnregistration increments the unregistration counter.
func RecordUnregistration() { globalManager.unregistrations.Inc() }

// RecordRejection counts a refused mutation.
func RecordRejection(operation, reason string) {
	globalManager.rejections.WithLabelValues(operation, reason).Inc()
}

// UpdateActivitiesTotal sets the number of activities.
func UpdateActivitiesTotal(count int) { globalManager.activitiesTotal.Set(float64(count)) }

// UpdateParticipantsTotal sets the number of enrollments across all activities.
func UpdateParticipantsTotal(count int) { globalManager.participantTotal.Set(float64(count)) }

// UpdateActivityOccupancy sets enrolled count and fill ratio for one activity.
func UpdateActivityOccupancy(activity string, enrolled, capacity int) {
	globalManager.activityEnrolled.WithLabelValues(activity).Set(float64(enrolled))
	ratio := 0.0
	if capacity > 0 {
		ratio = float64(enrolled) / float64(capacity)
	}
	globalManager.activityFill.WithLabelValues(activity).Set(ratio)
}

// RecordDirectoryUpdateLatency records directory mutation latency.
func RecordDirectoryUpdateLatency(latencyMs float64) {
	globalManager.directoryUpdateLatency.Observe(latencyMs)
}

// RecordDirectoryQueryLatency records directory read latency.
func RecordDirectoryQueryLatency(latencyMs float64) {
	globalManager.directoryQueryLatency.Observe(latencyMs)
}

// Queue metrics.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) { globalManager.queueUtilization.Set(utilization) }

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// RecordChangeDropped counts a change that never reached the journal.
func RecordChangeDropped() { globalManager.changesDropped.Inc() }

// Worker and journal metrics.

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) { globalManager.workerCount.Set(float64(count)) }

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordChangeRecorded increments the journaled changes counter.
func RecordChangeRecorded() { globalManager.changesRecorded.Inc() }

// UpdateJournalSize sets the number of retained changes.
func UpdateJournalSize(size int) { globalManager.journalSize.Set(float64(size)) }

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
