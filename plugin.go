package knob

import "time"

// Monitor defaults.
const (
	// DefaultLineCount is the number of rows a log monitor shows.
	DefaultLineCount = 3

	// DefaultGraphBufferSize is the buffer size of graph monitors.
	DefaultGraphBufferSize = 64

	// DefaultMonitorInterval is the polling period of monitors.
	DefaultMonitorInterval = 200 * time.Millisecond

	// ViewGraph selects the graph presentation of a number monitor.
	ViewGraph = "graph"
)

// AxisParams configures one axis of a point input.
type AxisParams struct {
	Min      *float64
	Max      *float64
	Step     *float64
	Inverted bool
}

// InputParams are the user-facing parameters of an input binding.
type InputParams struct {
	Label     string
	PresetKey string `validate:"omitempty,printascii"`
	View      string
	Min       *float64
	Max       *float64
	Step      *float64
	Options   []ListItem[any]
	X         *AxisParams
	Y         *AxisParams
	Z         *AxisParams
}

// MonitorParams are the user-facing parameters of a monitor binding.
type MonitorParams struct {
	Label      string
	View       string
	BufferSize int `validate:"gte=0"`
	LineCount  int `validate:"gte=0"`
	// Interval is the polling period. nil means DefaultMonitorInterval; a
	// pointer to 0 disables polling so that only Refresh samples.
	Interval  *time.Duration
	Min       *float64
	Max       *float64
	Multiline bool
}

// BindingArgs is passed to plugin factories once the plugin accepted a target.
type BindingArgs[P any] struct {
	Target       *Target
	InitialValue any
	Params       P
}

// ControllerArgs is passed to plugin controller factories.
type ControllerArgs[P, T any] struct {
	InitialValue any
	Params       P
	Value        Value[T]
}

// Binding is the type-erased side of input and monitor bindings.
type Binding interface {
	Target() *Target
	Read()
	Dispose()
}

// -----------------------------------------------------------------------------
// Input plugins
// -----------------------------------------------------------------------------

// InputPlugin describes how to bind one kind of external value.
type InputPlugin[T any] struct {
	ID string

	// Accept returns the typed external value when the plugin handles ex
	// with params. The first accepting plugin wins.
	Accept func(ex any, params InputParams) (any, bool)

	Reader     func(args BindingArgs[InputParams]) Reader[T]
	Constraint func(args BindingArgs[InputParams]) Constraint[T]
	Equals     EqualsFunc[T]
	Writer     func(args BindingArgs[InputParams]) Writer[T]

	// Controller builds the presentation. nil uses a headless Controller.
	Controller func(args ControllerArgs[InputParams, T]) ValueController[T]
}

// InputPluginFactory is implemented by every InputPlugin instantiation so
// plugins of different types can share one list.
type InputPluginFactory interface {
	PluginID() string
	CreateInput(target *Target, params InputParams) (*InputBindingController, bool)
}

// PluginID returns the plugin identifier.
func (p InputPlugin[T]) PluginID() string {
	return p.ID
}

// CreateInput binds target when the plugin accepts it: accept, build the
// reader, constraint and writer, construct the Value and InputBinding, then
// the controller.
func (p InputPlugin[T]) CreateInput(target *Target, params InputParams) (*InputBindingController, bool) {
	initial, ok := p.Accept(target.Read(), params)
	if !ok {
		return nil, false
	}

	args := BindingArgs[InputParams]{Target: target, InitialValue: initial, Params: params}
	reader := p.Reader(args)

	opts := []ValueOption[T]{WithEquals(p.Equals)}
	if p.Constraint != nil {
		if c := p.Constraint(args); c != nil {
			opts = append(opts, WithConstraint(c))
		}
	}
	value := NewValue(reader(initial), opts...)

	binding := NewInputBinding(InputBindingConfig[T]{
		Target: target,
		Value:  value,
		Reader: reader,
		Writer: p.Writer(args),
	})

	var controller ValueController[T]
	if p.Controller != nil {
		controller = p.Controller(ControllerArgs[InputParams, T]{
			InitialValue: initial,
			Params:       params,
			Value:        binding.Value(),
		})
	} else {
		controller = NewController[T](binding.Value(), nil)
	}

	label := params.Label
	if label == "" {
		label = target.Key()
	}

	return &InputBindingController{
		label:      label,
		pluginID:   p.ID,
		binding:    binding,
		controller: controller,
		rawValue:   func() any { return binding.Value().RawValue() },
		watch: func(fn func(any)) *Subscription {
			return binding.Value().Emitter().On(EventChange, func(ev ChangeEvent[T]) {
				fn(ev.RawValue)
			})
		},
	}, true
}

// CreateInput tries each plugin in order and returns the first result.
func CreateInput(plugins []InputPluginFactory, target *Target, params InputParams) (*InputBindingController, bool) {
	for _, p := range plugins {
		if c, ok := p.CreateInput(target, params); ok {
			return c, true
		}
	}
	return nil, false
}

// InputBindingController ties an input binding to its controller.
type InputBindingController struct {
	label      string
	pluginID   string
	binding    Binding
	controller interface{ Dispose() }
	rawValue   func() any
	watch      func(func(any)) *Subscription
	disposed   bool
}

// Label returns the display label.
func (c *InputBindingController) Label() string { return c.label }

// PluginID returns the id of the plugin that created the binding.
func (c *InputBindingController) PluginID() string { return c.pluginID }

// Binding returns the input binding.
func (c *InputBindingController) Binding() Binding { return c.binding }

// Controller returns the plugin controller; assert it to ValueController[T].
func (c *InputBindingController) Controller() any { return c.controller }

// RawValue returns the current internal value.
func (c *InputBindingController) RawValue() any { return c.rawValue() }

// OnChange registers fn for every change of the internal value.
func (c *InputBindingController) OnChange(fn func(any)) *Subscription {
	return c.watch(fn)
}

// Dispose tears down the controller and the binding. It is idempotent.
func (c *InputBindingController) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.controller.Dispose()
	c.binding.Dispose()
}

// InputValue returns the typed value of an input created by a plugin of
// type T.
func InputValue[T any](c *InputBindingController) (Value[T], bool) {
	vc, ok := c.controller.(ValueController[T])
	if !ok {
		return nil, false
	}
	return vc.Value(), true
}

// -----------------------------------------------------------------------------
// Monitor plugins
// -----------------------------------------------------------------------------

// MonitorPlugin describes how to sample one kind of external value.
type MonitorPlugin[T any] struct {
	ID string

	Accept func(ex any, params MonitorParams) (any, bool)
	Reader func(args BindingArgs[MonitorParams]) Reader[T]

	// Controller builds the presentation. nil uses a headless Controller.
	Controller func(args ControllerArgs[MonitorParams, Buffer[T]]) ValueController[Buffer[T]]
}

// MonitorPluginFactory is implemented by every MonitorPlugin instantiation.
type MonitorPluginFactory interface {
	PluginID() string
	CreateMonitor(target *Target, params MonitorParams, ticker func(MonitorParams) Ticker) (*MonitorBindingController, bool)
}

// PluginID returns the plugin identifier.
func (p MonitorPlugin[T]) PluginID() string {
	return p.ID
}

// CreateMonitor binds target when the plugin accepts it. The ticker factory
// is only called after acceptance.
func (p MonitorPlugin[T]) CreateMonitor(target *Target, params MonitorParams, ticker func(MonitorParams) Ticker) (*MonitorBindingController, bool) {
	initial, ok := p.Accept(target.Read(), params)
	if !ok {
		return nil, false
	}

	args := BindingArgs[MonitorParams]{Target: target, InitialValue: initial, Params: params}
	value := NewBufferedValue[T](BufferSize(params))
	binding := NewMonitorBinding(MonitorBindingConfig[T]{
		Target: target,
		Value:  value,
		Reader: p.Reader(args),
		Ticker: ticker(params),
	})

	var controller ValueController[Buffer[T]]
	if p.Controller != nil {
		controller = p.Controller(ControllerArgs[MonitorParams, Buffer[T]]{
			InitialValue: initial,
			Params:       params,
			Value:        value,
		})
	} else {
		controller = NewController[Buffer[T]](value, nil)
	}

	label := params.Label
	if label == "" {
		label = target.Key()
	}

	// Sample once so the buffer is not empty before the first tick.
	binding.Read()

	return &MonitorBindingController{
		label:      label,
		pluginID:   p.ID,
		binding:    binding,
		controller: controller,
		rawValue:   func() any { return value.RawValue() },
		watch: func(fn func(any)) *Subscription {
			return value.Emitter().On(EventChange, func(ev ChangeEvent[Buffer[T]]) {
				fn(ev.RawValue)
			})
		},
	}, true
}

// CreateMonitor tries each plugin in order and returns the first result.
func CreateMonitor(plugins []MonitorPluginFactory, target *Target, params MonitorParams, ticker func(MonitorParams) Ticker) (*MonitorBindingController, bool) {
	for _, p := range plugins {
		if c, ok := p.CreateMonitor(target, params, ticker); ok {
			return c, true
		}
	}
	return nil, false
}

// BufferSize resolves the buffer capacity for params: an explicit
// BufferSize, else DefaultGraphBufferSize for graphs, else the line count.
func BufferSize(params MonitorParams) int {
	if params.BufferSize > 0 {
		return params.BufferSize
	}
	if params.View == ViewGraph {
		return DefaultGraphBufferSize
	}
	if params.LineCount > 0 {
		return params.LineCount
	}
	return DefaultLineCount
}

// MonitorInterval resolves the polling period for params.
func MonitorInterval(params MonitorParams) time.Duration {
	if params.Interval == nil {
		return DefaultMonitorInterval
	}
	return *params.Interval
}

// MonitorBindingController ties a monitor binding to its controller.
type MonitorBindingController struct {
	label      string
	pluginID   string
	binding    Binding
	controller interface{ Dispose() }
	rawValue   func() any
	watch      func(func(any)) *Subscription
	disposed   bool
}

// Label returns the display label.
func (c *MonitorBindingController) Label() string { return c.label }

// PluginID returns the id of the plugin that created the binding.
func (c *MonitorBindingController) PluginID() string { return c.pluginID }

// Binding returns the monitor binding.
func (c *MonitorBindingController) Binding() Binding { return c.binding }

// Controller returns the plugin controller.
func (c *MonitorBindingController) Controller() any { return c.controller }

// RawValue returns the current buffer as a Buffer[T].
func (c *MonitorBindingController) RawValue() any { return c.rawValue() }

// OnUpdate registers fn for every sample pushed into the buffer.
func (c *MonitorBindingController) OnUpdate(fn func(any)) *Subscription {
	return c.watch(fn)
}

// Dispose tears down the controller, the binding and its ticker. It is
// idempotent.
func (c *MonitorBindingController) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.controller.Dispose()
	c.binding.Dispose()
}

// MonitorValue returns the typed buffer of a monitor created by a plugin of
// type T.
func MonitorValue[T any](c *MonitorBindingController) (*BufferedValue[T], bool) {
	vc, ok := c.controller.(ValueController[Buffer[T]])
	if !ok {
		return nil, false
	}
	bv, ok := vc.Value().(*BufferedValue[T])
	return bv, ok
}
