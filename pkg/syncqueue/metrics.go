package syncqueue

import "github.com/prometheus/client_golang/prometheus"

const (
	metricsNamespace = "goeventqueue"
	metricsSubsystem = "queue"
)

// queueMetrics holds the Prometheus collectors for one queue instance,
// labelled with the component name passed to WithMetrics.
type queueMetrics struct {
	writes      prometheus.Counter
	reads       prometheus.Counter
	evictions   prometheus.Counter
	taken       prometheus.Counter
	size        prometheus.Gauge
	utilization prometheus.Gauge
}

func newQueueMetrics(reg prometheus.Registerer, component string) *queueMetrics {
	labels := prometheus.Labels{"component": component}

	m := &queueMetrics{
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "writes_total",
			Help:        "Total elements written to the queue.",
			ConstLabels: labels,
		}),
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "reads_total",
			Help:        "Total elements read from the queue.",
			ConstLabels: labels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "evictions_total",
			Help:        "Total elements discarded because the queue was full.",
			ConstLabels: labels,
		}),
		taken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "taken_total",
			Help:        "Total elements removed by predicate extraction.",
			ConstLabels: labels,
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "size",
			Help:        "Current number of queued elements.",
			ConstLabels: labels,
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "utilization",
			Help:        "Current fill ratio of the queue (0.0 to 1.0).",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(m.writes, m.reads, m.evictions, m.taken, m.size, m.utilization)
	return m
}

func (m *queueMetrics) recordWrite(evicted bool) {
	m.writes.Inc()
	if evicted {
		m.evictions.Inc()
	}
}

func (m *queueMetrics) recordRead() {
	m.reads.Inc()
}

func (m *queueMetrics) recordTaken(n int) {
	if n > 0 {
		m.taken.Add(float64(n))
	}
}

func (m *queueMetrics) updateSize(length, capacity int) {
	m.size.Set(float64(length))
	if capacity > 0 {
		m.utilization.Set(float64(length) / float64(capacity))
	}
}
