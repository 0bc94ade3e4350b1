package instrument

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// MetricsConfig configures the Prometheus instrumentation.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reactor").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for hooks drained per batch.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus instrumentation.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reactor",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Prometheus records reactive events as Prometheus metrics.
//
// Metrics collected:
//   - reactor_signal_notifications_total: notifications reaching at least one hook
//   - reactor_notified_hooks_total: hooks reached by those notifications
//   - reactor_observer_runs_total: observer passes by kind
//   - reactor_batches_total: outermost batches by name and status
//   - reactor_batch_drained_hooks: hooks drained per batch
//   - reactor_reconciliations_total: list reconciliations
//   - reactor_reconcile_entries_total: reconciled entries by action
type Prometheus struct {
	notifications  prometheus.Counter
	notifiedHooks  prometheus.Counter
	observerRuns   *prometheus.CounterVec
	batches        *prometheus.CounterVec
	batchDrained   prometheus.Histogram
	reconciliation prometheus.Counter
	entries        *prometheus.CounterVec
}

var _ reactive.Instrumentation = (*Prometheus)(nil)

// NewPrometheus creates and registers the metrics. Create one instance per
// registry; registering twice panics.
func NewPrometheus(opts ...MetricsOption) *Prometheus {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Prometheus{
		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_notifications_total",
			Help:        "Total number of signal notifications that reached at least one hook",
			ConstLabels: config.ConstLabels,
		}),

		notifiedHooks: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notified_hooks_total",
			Help:        "Total number of hooks reached by signal notifications",
			ConstLabels: config.ConstLabels,
		}),

		observerRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "observer_runs_total",
			Help:        "Total number of observer passes by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		batches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batches_total",
			Help:        "Total number of outermost batches by name and status",
			ConstLabels: config.ConstLabels,
		}, []string{"name", "status"}),

		batchDrained: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batch_drained_hooks",
			Help:        "Number of hooks drained per batch",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		reconciliation: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reconciliations_total",
			Help:        "Total number of list reconciliations that changed a list",
			ConstLabels: config.ConstLabels,
		}),

		entries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reconcile_entries_total",
			Help:        "Total number of reconciled list entries by action",
			ConstLabels: config.ConstLabels,
		}, []string{"action"}),
	}
}

// SignalNotified implements reactive.Instrumentation.
func (p *Prometheus) SignalNotified(hooks int) {
	p.notifications.Inc()
	p.notifiedHooks.Add(float64(hooks))
}

// ObserverRan implements reactive.Instrumentation.
func (p *Prometheus) ObserverRan(kind reactive.ObserverKind) {
	p.observerRuns.WithLabelValues(kindLabel(kind)).Inc()
}

// BatchStarted implements reactive.Instrumentation.
func (p *Prometheus) BatchStarted(name string) reactive.BatchDone {
	return func(drained int, err error) {
		status := "ok"
		if err != nil {
			status = "aborted"
		}
		p.batches.WithLabelValues(name, status).Inc()
		p.batchDrained.Observe(float64(drained))
	}
}

// Reconciled implements reactive.Instrumentation.
func (p *Prometheus) Reconciled(stats reactive.ReconcileStats) {
	p.reconciliation.Inc()
	p.entries.WithLabelValues("created").Add(float64(stats.Created))
	p.entries.WithLabelValues("reused").Add(float64(stats.Reused))
	p.entries.WithLabelValues("disposed").Add(float64(stats.Disposed))
}

// kindLabel is the label value of an observer kind.
func kindLabel(kind reactive.ObserverKind) string {
	if s := kind.String(); s != "unknown" {
		return s
	}
	return strconv.Itoa(int(kind))
}
