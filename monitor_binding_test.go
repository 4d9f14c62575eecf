package knob

import "testing"

func TestMonitorBinding_SamplesOnTick(t *testing.T) {
	m := map[string]any{"fps": 30}
	ticker := NewManualTicker()
	b := NewMonitorBinding(MonitorBindingConfig[float64]{
		Target: NewTarget(Map(m), "fps"),
		Value:  NewBufferedValue[float64](3),
		Reader: NumberFromUnknown,
		Ticker: ticker,
	})

	if b.Value().RawValue().Latest().OK {
		t.Fatal("construction must not sample")
	}

	ticker.Tick()
	m["fps"] = 60
	ticker.Tick()

	got := b.Value().RawValue().Values()
	if len(got) != 2 || got[0] != 30 || got[1] != 60 {
		t.Errorf("expected [30 60], got %v", got)
	}
	if m["fps"] != 60 {
		t.Error("monitors must not write")
	}
	if b.Ticker() != Ticker(ticker) {
		t.Error("expected the configured ticker")
	}
}

func TestMonitorBinding_AbsentPushesEmpty(t *testing.T) {
	m := map[string]any{"fps": 30}
	b := NewMonitorBinding(MonitorBindingConfig[float64]{
		Target: NewTarget(Map(m), "fps"),
		Value:  NewBufferedValue[float64](3),
		Reader: NumberFromUnknown,
		Ticker: NewManualTicker(),
	})

	b.Read()
	delete(m, "fps")
	b.Read()
	m["fps"] = 1
	b.Read()

	buf := b.Value().RawValue()
	if !buf[0].OK || buf[1].OK || !buf[2].OK {
		t.Errorf("expected filled, empty, filled; got %+v", buf)
	}
}

type countingTicker struct {
	*ManualTicker
	disposed int
}

func (c *countingTicker) Dispose() { c.disposed++ }

func TestMonitorBinding_Dispose(t *testing.T) {
	ticker := &countingTicker{ManualTicker: NewManualTicker()}
	b := NewMonitorBinding(MonitorBindingConfig[string]{
		Target: NewTarget(Map(map[string]any{"s": "x"}), "s"),
		Value:  NewBufferedValue[string](1),
		Reader: StringFromUnknown,
		Ticker: ticker,
	})

	b.Dispose()
	ticker.Tick()

	if b.Value().RawValue().Latest().OK {
		t.Error("disposed binding must not sample")
	}
	if ticker.disposed != 1 {
		t.Errorf("expected ticker disposed once, got %d", ticker.disposed)
	}
}
