package knob

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key pane and loader events.
type MetricsProvider interface {
	// OnInputChange is called when an input value changes and is written
	// through to its target.
	OnInputChange(presetKey string)

	// OnMonitorSample is called when a monitor pushes a sample.
	OnMonitorSample(key string)

	// OnStateChange is called when a loader transitions between states.
	OnStateChange(from, to State)

	// OnProcessSuccess is called when a preset is successfully applied.
	// Duration is the time taken to decode and apply.
	OnProcessSuccess(duration time.Duration)

	// OnProcessFailure is called when processing fails at any stage.
	// Stage indicates where the failure occurred: "decode" or "pipeline".
	OnProcessFailure(stage string, duration time.Duration)

	// OnChangeReceived is called when raw data is received from the watcher.
	OnChangeReceived()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnInputChange(_ string)                     {}
func (NoOpMetricsProvider) OnMonitorSample(_ string)                   {}
func (NoOpMetricsProvider) OnStateChange(_, _ State)                   {}
func (NoOpMetricsProvider) OnProcessSuccess(_ time.Duration)           {}
func (NoOpMetricsProvider) OnProcessFailure(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnChangeReceived()                          {}
