package reactive

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// schedulerMetrics instruments Scheduler.Flush the way
// vango-go-vango/pkg/middleware/metrics.go instruments request handling:
// a counter, a duration histogram, and a gauge, built with promauto and a
// functional-option config struct. Optional — a Scheduler with no
// schedulerMetrics attached pays no Prometheus cost at all.
type schedulerMetrics struct {
	flushesTotal  prometheus.Counter
	flushDuration prometheus.Histogram
	queueDepth    prometheus.Gauge
}

// metricsConfig mirrors vango-go-vango/pkg/middleware's MetricsConfig.
type metricsConfig struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  prometheus.Registerer
}

// MetricsOption configures WithMetrics.
type MetricsOption func(*metricsConfig)

// WithNamespace sets the metrics namespace (default "ripple").
func WithNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) { c.namespace = ns }
}

// WithSubsystem sets the metrics subsystem (default "").
func WithSubsystem(s string) MetricsOption {
	return func(c *metricsConfig) { c.subsystem = s }
}

// WithBuckets overrides the flush-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *metricsConfig) { c.buckets = buckets }
}

// WithMetrics instruments the runtime's scheduler with Prometheus
// collectors registered against reg. Pass prometheus.DefaultRegisterer for
// the global registry, or a prometheus.NewRegistry() for isolated tests.
func WithMetrics(reg prometheus.Registerer, opts ...MetricsOption) RuntimeOption {
	return func(rt *Runtime) {
		cfg := metricsConfig{
			namespace: "ripple",
			buckets:   prometheus.DefBuckets,
			registry:  reg,
		}
		for _, opt := range opts {
			opt(&cfg)
		}
		factory := promauto.With(cfg.registry)
		rt.scheduler.metrics = &schedulerMetrics{
			flushesTotal: factory.NewCounter(prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Subsystem: cfg.subsystem,
				Name:      "scheduler_flushes_total",
				Help:      "Number of completed Scheduler.Flush calls.",
			}),
			flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
				Namespace: cfg.namespace,
				Subsystem: cfg.subsystem,
				Name:      "scheduler_flush_duration_seconds",
				Help:      "Wall time spent inside Scheduler.Flush.",
				Buckets:   cfg.buckets,
			}),
			queueDepth: factory.NewGauge(prometheus.GaugeOpts{
				Namespace: cfg.namespace,
				Subsystem: cfg.subsystem,
				Name:      "scheduler_queue_depth",
				Help:      "Number of effects currently queued for the next flush.",
			}),
		}
	}
}

func (m *schedulerMetrics) recordFlush(dur time.Duration) {
	m.flushesTotal.Inc()
	m.flushDuration.Observe(dur.Seconds())
}

func (m *schedulerMetrics) setQueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}
