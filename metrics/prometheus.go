// Package metrics exports resolution metrics to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/cubo/core"
)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "cubo").
	Namespace string

	// Subsystem is the metrics subsystem (default: "resolver").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolution duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "cubo",
		Subsystem: "resolver",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Prometheus is a core.Observer recording:
//   - cubo_resolver_resolutions_total{kind,scheme,outcome}
//   - cubo_resolver_resolution_duration_seconds{kind}
//
// outcome is "ok" or "fallback"; a fallback is a failure that the resolver
// replaced with empty data.
type Prometheus struct {
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ core.Observer = (*Prometheus)(nil)

// New registers the metrics and returns the observer. Registering twice
// against the same registry panics, as with promauto.
func New(opts ...Option) *Prometheus {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Prometheus{
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolutions_total",
			Help:        "Total number of locator resolutions",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "scheme", "outcome"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolution_duration_seconds",
			Help:        "Locator resolution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),
	}
}

// ObserveResolution implements core.Observer.
func (p *Prometheus) ObserveResolution(kind core.SourceKind, locator string, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "fallback"
	}
	p.resolutions.WithLabelValues(string(kind), core.Scheme(locator), outcome).Inc()
	p.duration.WithLabelValues(string(kind)).Observe(d.Seconds())
}
