// Package prometheus provides a knob.MetricsProvider backed by Prometheus
// collectors.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zoobzio/knob"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "knob").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for preset processing.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is where collectors are registered.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Provider.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for every metric.
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

// WithRegistry sets the registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Provider records pane and loader activity.
type Provider struct {
	inputChanges    *prometheus.CounterVec
	monitorSamples  *prometheus.CounterVec
	loaderState     *prometheus.GaugeVec
	stateChanges    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processFailures *prometheus.CounterVec
	changesReceived prometheus.Counter
}

// Ensure Provider implements knob.MetricsProvider.
var _ knob.MetricsProvider = (*Provider)(nil)

// New registers the collectors and returns a Provider. Registering twice
// on the same registry panics.
func New(opts ...Option) *Provider {
	config := Config{
		Namespace: "knob",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	p := &Provider{
		inputChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "input_changes_total",
			Help:        "Input values written through to their targets",
			ConstLabels: config.ConstLabels,
		}, []string{"preset_key"}),

		monitorSamples: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "monitor_samples_total",
			Help:        "Samples pushed by monitors",
			ConstLabels: config.ConstLabels,
		}, []string{"key"}),

		loaderState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "loader_state",
			Help:        "1 for the current preset loader state, 0 otherwise",
			ConstLabels: config.ConstLabels,
		}, []string{"state"}),

		stateChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "loader_state_changes_total",
			Help:        "Preset loader state transitions",
			ConstLabels: config.ConstLabels,
		}, []string{"from", "to"}),

		processDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preset_process_duration_seconds",
			Help:        "Time to decode and apply a preset",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"result"}),

		processFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preset_failures_total",
			Help:        "Presets rejected, by stage",
			ConstLabels: config.ConstLabels,
		}, []string{"stage"}),

		changesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preset_changes_received_total",
			Help:        "Raw preset changes delivered by watchers",
			ConstLabels: config.ConstLabels,
		}),
	}
	p.loaderState.WithLabelValues(knob.StateLoading.String()).Set(1)
	return p
}

// OnInputChange counts an input write.
func (p *Provider) OnInputChange(presetKey string) {
	p.inputChanges.WithLabelValues(presetKey).Inc()
}

// OnMonitorSample counts a monitor sample.
func (p *Provider) OnMonitorSample(key string) {
	p.monitorSamples.WithLabelValues(key).Inc()
}

// OnStateChange moves the state gauge and counts the transition.
func (p *Provider) OnStateChange(from, to knob.State) {
	p.loaderState.WithLabelValues(from.String()).Set(0)
	p.loaderState.WithLabelValues(to.String()).Set(1)
	p.stateChanges.WithLabelValues(from.String(), to.String()).Inc()
}

// OnProcessSuccess observes a successful apply.
func (p *Provider) OnProcessSuccess(duration time.Duration) {
	p.processDuration.WithLabelValues("success").Observe(duration.Seconds())
}

// OnProcessFailure observes a failed preset.
func (p *Provider) OnProcessFailure(stage string, duration time.Duration) {
	p.processDuration.WithLabelValues("failure").Observe(duration.Seconds())
	p.processFailures.WithLabelValues(stage).Inc()
}

// OnChangeReceived counts a raw change.
func (p *Provider) OnChangeReceived() {
	p.changesReceived.Inc()
}
