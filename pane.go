package knob

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// validate checks binding parameters before any plugin sees them.
var validate = validator.New()

// PaneEvent is the payload of pane-level EventChange and EventUpdate.
type PaneEvent struct {
	// Key is the bound property name.
	Key string

	// PresetKey is the target's preset key.
	PresetKey string

	// Value is the new internal value: the raw value for inputs, the
	// Buffer[T] for monitors.
	Value any
}

// Pane is the host-facing registry of bindings. It creates bindings through
// plugins, imports and exports presets, and refreshes every binding.
//
// A Pane and its values belong to one goroutine at a time. Interval
// monitors tick on their own goroutine while holding the pane lock; code on
// other goroutines must go through Do.
type Pane struct {
	mu sync.Mutex

	ctx            context.Context
	inputPlugins   []InputPluginFactory
	monitorPlugins []MonitorPluginFactory
	clock          clockz.Clock
	metrics        MetricsProvider

	emitter  *Emitter[PaneEvent]
	inputs   []*InputBindingController
	monitors []*MonitorBindingController
	subs     []*Subscription
	disposed bool
}

// Option configures a Pane.
type Option func(*Pane)

// WithInputPlugins puts plugins ahead of the built-in input plugins.
func WithInputPlugins(plugins ...InputPluginFactory) Option {
	return func(p *Pane) {
		p.inputPlugins = append(append([]InputPluginFactory{}, plugins...), p.inputPlugins...)
	}
}

// WithMonitorPlugins puts plugins ahead of the built-in monitor plugins.
func WithMonitorPlugins(plugins ...MonitorPluginFactory) Option {
	return func(p *Pane) {
		p.monitorPlugins = append(append([]MonitorPluginFactory{}, plugins...), p.monitorPlugins...)
	}
}

// WithClock sets the clock used by interval monitors.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock(clock clockz.Clock) Option {
	return func(p *Pane) {
		p.clock = clock
	}
}

// WithMetrics sets a metrics provider.
func WithMetrics(provider MetricsProvider) Option {
	return func(p *Pane) {
		p.metrics = provider
	}
}

// WithContext sets the context attached to emitted signals.
func WithContext(ctx context.Context) Option {
	return func(p *Pane) {
		p.ctx = ctx
	}
}

// New creates a Pane with the built-in plugins.
func New(opts ...Option) *Pane {
	p := &Pane{
		ctx:            context.Background(),
		inputPlugins:   DefaultInputPlugins(),
		monitorPlugins: DefaultMonitorPlugins(),
		clock:          clockz.RealClock,
		metrics:        NoOpMetricsProvider{},
		emitter:        NewEmitter[PaneEvent](),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Do runs fn while holding the lock that interval monitors tick under.
func (p *Pane) Do(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

// On registers fn for pane events: EventChange fires for every input
// change, EventUpdate for every monitor sample.
func (p *Pane) On(name EventName, fn func(PaneEvent)) *Subscription {
	return p.emitter.On(name, fn)
}

// Inputs returns the input controllers in insertion order.
func (p *Pane) Inputs() []*InputBindingController {
	return append([]*InputBindingController(nil), p.inputs...)
}

// Monitors returns the monitor controllers in insertion order.
func (p *Pane) Monitors() []*MonitorBindingController {
	return append([]*MonitorBindingController(nil), p.monitors...)
}

// AddInput binds obj[key] for editing. obj may be a map[string]any, a
// struct pointer or an Object.
func (p *Pane) AddInput(obj any, key string, params InputParams) (*InputBindingController, error) {
	if p.disposed {
		return nil, ErrDisposed
	}
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	target, err := p.target(obj, key, params.PresetKey)
	if err != nil {
		return nil, err
	}

	c, ok := CreateInput(p.inputPlugins, target, params)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMatchingController, key)
	}

	p.subs = append(p.subs, c.OnChange(func(v any) {
		p.metrics.OnInputChange(target.PresetKey())
		capitan.Emit(p.ctx, PaneInputChanged,
			KeyPresetKey.Field(target.PresetKey()),
			KeyValue.Field(fmt.Sprint(v)),
		)
		p.emitter.Emit(EventChange, PaneEvent{Key: key, PresetKey: target.PresetKey(), Value: v})
	}))
	p.inputs = append(p.inputs, c)

	capitan.Emit(p.ctx, PaneBindingAdded,
		KeyKind.Field("input"),
		KeyTargetKey.Field(key),
		KeyPluginID.Field(c.PluginID()),
	)
	return c, nil
}

// AddMonitor binds obj[key] for observation. Sampling starts immediately
// and repeats every MonitorInterval(params).
func (p *Pane) AddMonitor(obj any, key string, params MonitorParams) (*MonitorBindingController, error) {
	if p.disposed {
		return nil, ErrDisposed
	}
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	target, err := p.target(obj, key, "")
	if err != nil {
		return nil, err
	}

	var interval *IntervalTicker
	newTicker := func(params MonitorParams) Ticker {
		d := MonitorInterval(params)
		if d <= 0 {
			return NewManualTicker()
		}
		interval = NewIntervalTicker(d,
			WithTickerClock(p.clock),
			WithTickerLocker(&p.mu),
			WithTickerDeferred(),
		)
		return interval
	}

	c, ok := CreateMonitor(p.monitorPlugins, target, params, newTicker)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMatchingController, key)
	}

	p.subs = append(p.subs, c.OnUpdate(func(v any) {
		p.metrics.OnMonitorSample(key)
		p.emitter.Emit(EventUpdate, PaneEvent{Key: key, PresetKey: target.PresetKey(), Value: v})
	}))
	p.monitors = append(p.monitors, c)

	capitan.Emit(p.ctx, PaneBindingAdded,
		KeyKind.Field("monitor"),
		KeyTargetKey.Field(key),
		KeyPluginID.Field(c.PluginID()),
	)

	if interval != nil {
		interval.Start()
	}
	return c, nil
}

func (p *Pane) target(obj any, key, presetKey string) (*Target, error) {
	o, err := ObjectOf(obj)
	if err != nil {
		return nil, err
	}
	target := NewTarget(o, key, WithPresetKey(presetKey))
	if v, ok := target.Lookup(); !ok || v == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyValue, key)
	}
	return target, nil
}

// Targets returns the targets of every input, in insertion order.
func (p *Pane) Targets() []*Target {
	targets := make([]*Target, 0, len(p.inputs))
	for _, c := range p.inputs {
		targets = append(targets, c.Binding().Target())
	}
	return targets
}

// ExportPreset snapshots every input target by preset key.
func (p *Pane) ExportPreset() Preset {
	preset := ExportPreset(p.Targets())
	capitan.Emit(p.ctx, PanePresetExported,
		KeyCount.Field(len(preset)),
	)
	return preset
}

// ImportPreset writes preset into the matching input targets and then
// refreshes every binding so values catch up with the targets.
func (p *Pane) ImportPreset(preset Preset) {
	ImportPreset(p.Targets(), preset)
	p.Refresh()
	capitan.Emit(p.ctx, PanePresetImported,
		KeyCount.Field(len(preset)),
	)
}

// Refresh re-reads every input, then samples every monitor once.
func (p *Pane) Refresh() {
	for _, c := range p.inputs {
		c.Binding().Read()
	}
	for _, c := range p.monitors {
		c.Binding().Read()
	}
	capitan.Emit(p.ctx, PaneRefreshed,
		KeyCount.Field(len(p.inputs)+len(p.monitors)),
	)
}

// Dispose tears down every binding and stops every ticker. It is
// idempotent. While interval monitors run, call it through Do.
func (p *Pane) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true

	for _, s := range p.subs {
		s.Off()
	}
	for _, c := range p.inputs {
		c.Dispose()
	}
	for _, c := range p.monitors {
		c.Dispose()
	}
	count := len(p.inputs) + len(p.monitors)
	p.subs, p.inputs, p.monitors = nil, nil, nil

	capitan.Emit(p.ctx, PaneDisposed,
		KeyCount.Field(count),
	)
}
