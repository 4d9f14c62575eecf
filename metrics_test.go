package knob

import (
	"testing"
	"time"
)

func TestNoOpMetricsProvider_DoesNotPanic(_ *testing.T) {
	var m MetricsProvider = NoOpMetricsProvider{}

	m.OnInputChange("speed")
	m.OnMonitorSample("fps")
	m.OnStateChange(StateLoading, StateHealthy)
	m.OnProcessSuccess(100 * time.Millisecond)
	m.OnProcessFailure("decode", 50*time.Millisecond)
	m.OnChangeReceived()
}
