package telemetry

import (
	"sync"

	"github.com/murthyn/composer/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.Collector backed by Prometheus.
//
// Metric families are registered lazily on first use so constructing the
// collector never panics on duplicate registration in tests that share a
// registry namespace.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	dispatchLatency *prometheus.HistogramVec
	eventLatency    *prometheus.HistogramVec
	destErrors      *prometheus.CounterVec
	droppedEntries  *prometheus.CounterVec
	queueDepth      *prometheus.GaugeVec
	snapshotResults *prometheus.CounterVec
	snapshotSkipped prometheus.Counter
	mergeLatency    prometheus.Histogram
	workerStates    prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements Collector.
var _ types.Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed self-telemetry collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "composer" if empty)
//
// Returns:
//   - *PrometheusCollector: A Collector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "composer"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.dispatchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "logger",
			Name:      "dispatch_seconds",
			Help:      "Synchronous LogData fan-out latency in seconds by level.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100us .. ~0.2s
		}, []string{"level"})

		p.eventLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "logger",
			Name:      "event_dispatch_seconds",
			Help:      "Lifecycle event fan-out latency in seconds by event.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}, []string{"event"})

		p.destErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "destination",
			Name:      "errors_total",
			Help:      "Total destination LogData/RunEvent failures by destination.",
		}, []string{"destination"})

		p.droppedEntries = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "destination",
			Name:      "dropped_entries_total",
			Help:      "Total entries dropped by full destination queues.",
		}, []string{"destination"})

		p.queueDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "destination",
			Name:      "queue_depth",
			Help:      "Current background queue depth by destination.",
		}, []string{"destination"})

		p.snapshotResults = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "reduce",
			Name:      "snapshot_publishes_total",
			Help:      "Worker state snapshot publish outcomes (success|failure).",
		}, []string{"result"})

		p.snapshotSkipped = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "reduce",
			Name:      "snapshots_skipped_total",
			Help:      "Snapshot publishes skipped because the state hash was unchanged.",
		})

		p.mergeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "reduce",
			Name:      "merge_seconds",
			Help:      "Latency of collect-and-merge rounds in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		})

		p.workerStates = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "reduce",
			Name:      "worker_states",
			Help:      "Worker snapshots seen in the last collection round.",
		})

		p.reg.MustRegister(p.dispatchLatency)
		p.reg.MustRegister(p.eventLatency)
		p.reg.MustRegister(p.destErrors)
		p.reg.MustRegister(p.droppedEntries)
		p.reg.MustRegister(p.queueDepth)
		p.reg.MustRegister(p.snapshotResults)
		p.reg.MustRegister(p.snapshotSkipped)
		p.reg.MustRegister(p.mergeLatency)
		p.reg.MustRegister(p.workerStates)
	})
}

// DispatchMetrics implementation

// RecordLogDispatch observes one LogData fan-out.
func (p *PrometheusCollector) RecordLogDispatch(level types.LogLevel, _ int, duration float64) {
	p.ensureRegistered()
	p.dispatchLatency.WithLabelValues(level.String()).Observe(duration)
}

// RecordEventDispatch observes one lifecycle event fan-out.
func (p *PrometheusCollector) RecordEventDispatch(event types.Event, duration float64) {
	p.ensureRegistered()
	p.eventLatency.WithLabelValues(event.String()).Observe(duration)
}

// DestinationMetrics implementation

// RecordDestinationError increments the error counter for a destination.
func (p *PrometheusCollector) RecordDestinationError(destination string) {
	p.ensureRegistered()
	p.destErrors.WithLabelValues(destination).Inc()
}

// RecordDroppedEntry increments the dropped entry counter for a destination.
func (p *PrometheusCollector) RecordDroppedEntry(destination string) {
	p.ensureRegistered()
	p.droppedEntries.WithLabelValues(destination).Inc()
}

// SetQueueDepth sets the queue depth gauge for a destination.
func (p *PrometheusCollector) SetQueueDepth(destination string, depth int) {
	p.ensureRegistered()
	p.queueDepth.WithLabelValues(destination).Set(float64(depth))
}

// ReductionMetrics implementation

// RecordSnapshotPublish records a snapshot publish outcome.
func (p *PrometheusCollector) RecordSnapshotPublish(success bool) {
	p.ensureRegistered()
	result := "failure"
	if success {
		result = "success"
	}
	p.snapshotResults.WithLabelValues(result).Inc()
}

// RecordSnapshotSkipped increments the skipped snapshot counter.
func (p *PrometheusCollector) RecordSnapshotSkipped() {
	p.ensureRegistered()
	p.snapshotSkipped.Inc()
}

// RecordMergeDuration observes a collect-and-merge round latency.
func (p *PrometheusCollector) RecordMergeDuration(duration float64) {
	p.ensureRegistered()
	p.mergeLatency.Observe(duration)
}

// SetWorkerStates sets the worker snapshot count gauge.
func (p *PrometheusCollector) SetWorkerStates(count int) {
	p.ensureRegistered()
	p.workerStates.Set(float64(count))
}
