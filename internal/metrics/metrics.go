// Package metrics exposes Prometheus metrics for hand derivation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Failure reasons used as the hands_failed_total label.
const (
	ReasonDecode    = "decode"
	ReasonInvalid   = "invalid"
	ReasonMalformed = "malformed"
	ReasonError     = "error"
)

// Manager owns the handstats metrics and the registry they live in. A nil
// Manager, or one built with WithMetricsEnabled(false), records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	handsProcessed prometheus.Counter
	handsFailed    *prometheus.CounterVec
	playersDerived prometheus.Counter
	potsAwarded    prometheus.Counter
	deriveDuration prometheus.Histogram
	batchDuration  prometheus.Histogram
	workersBusy    prometheus.Gauge
	batchesStarted prometheus.Counter
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) { m.subsystem = subsystem }
}

// WithHistogramBuckets sets the buckets of the duration histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithMetricsEnabled enables or disables recording.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) { m.enabled = enabled }
}

// WithRegistry sets the registry metrics are registered on.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a Manager on a fresh registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "handstats",
		histogramBuckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.handsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hands_processed_total",
		Help:      "Total number of hands derived successfully",
	})
	m.handsFailed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hands_failed_total",
		Help:      "Total number of hands that failed, by reason",
	}, []string{"reason"})
	m.playersDerived = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_derived_total",
		Help:      "Total number of per-player stat rows produced",
	})
	m.potsAwarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pot_awards_total",
		Help:      "Total number of pot award rows produced by the evaluator",
	})
	m.deriveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "derive_duration_seconds",
		Help:      "Time spent deriving a single hand",
		Buckets:   m.histogramBuckets,
	})
	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_seconds",
		Help:      "Time spent on a whole batch run",
		Buckets:   prometheus.ExponentialBuckets(.01, 4, 8),
	})
	m.workersBusy = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workers_busy",
		Help:      "Number of batch workers currently deriving a hand",
	})
	m.batchesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_started_total",
		Help:      "Total number of batch runs started",
	})

	// Pre-create the reason series so they report zero before any failure.
	for _, reason := range []string{ReasonDecode, ReasonInvalid, ReasonMalformed, ReasonError} {
		m.handsFailed.WithLabelValues(reason)
	}
}

func (m *Manager) on() bool { return m != nil && m.enabled }

// RecordHand records a successfully derived hand.
func (m *Manager) RecordHand(players, pots int, took time.Duration) {
	if !m.on() {
		return
	}
	m.handsProcessed.Inc()
	m.playersDerived.Add(float64(players))
	m.potsAwarded.Add(float64(pots))
	m.deriveDuration.Observe(took.Seconds())
}

// RecordFailure counts a failed hand under reason.
func (m *Manager) RecordFailure(reason string) {
	if !m.on() {
		return
	}
	m.handsFailed.WithLabelValues(reason).Inc()
}

// BatchStarted counts a batch run.
func (m *Manager) BatchStarted() {
	if !m.on() {
		return
	}
	m.batchesStarted.Inc()
}

// BatchFinished observes the duration of a batch run.
func (m *Manager) BatchFinished(took time.Duration) {
	if !m.on() {
		return
	}
	m.batchDuration.Observe(took.Seconds())
}

// WorkerBusy adjusts the busy worker gauge by delta.
func (m *Manager) WorkerBusy(delta int) {
	if !m.on() {
		return
	}
	m.workersBusy.Add(float64(delta))
}

// Registry returns the registry backing this Manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
