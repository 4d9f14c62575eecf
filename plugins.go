package knob

import "math"

// Built-in input plugins.
var (
	// BooleanInputPlugin binds bool properties.
	BooleanInputPlugin = InputPlugin[bool]{
		ID: "input-bool",
		Accept: func(ex any, _ InputParams) (any, bool) {
			b, ok := ex.(bool)
			return b, ok
		},
		Reader: func(BindingArgs[InputParams]) Reader[bool] {
			return BoolFromUnknown
		},
		Constraint: func(args BindingArgs[InputParams]) Constraint[bool] {
			return listConstraintOf[bool](args.Params.Options)
		},
		Equals: Equals[bool],
		Writer: func(BindingArgs[InputParams]) Writer[bool] {
			return func(v bool) any { return v }
		},
	}

	// NumberInputPlugin binds numeric properties of any Go numeric kind and
	// writes back using the kind it read.
	NumberInputPlugin = InputPlugin[float64]{
		ID: "input-number",
		Accept: func(ex any, _ InputParams) (any, bool) {
			if !isNumber(ex) {
				return nil, false
			}
			return ex, true
		},
		Reader: func(BindingArgs[InputParams]) Reader[float64] {
			return NumberFromUnknown
		},
		Constraint: func(args BindingArgs[InputParams]) Constraint[float64] {
			p := args.Params
			var options []ListItem[float64]
			for _, item := range p.Options {
				if f, ok := numberOf(item.Value); ok {
					options = append(options, ListItem[float64]{Text: item.Text, Value: f})
				}
			}
			c := NumberConstraint(NumberParams{Min: p.Min, Max: p.Max, Step: p.Step, Options: options})
			return integerConstraint(c, args.InitialValue, p.Min, p.Max)
		},
		Equals: Equals[float64],
		Writer: func(args BindingArgs[InputParams]) Writer[float64] {
			return numberWriter(args.InitialValue)
		},
	}

	// StringInputPlugin binds string properties.
	StringInputPlugin = InputPlugin[string]{
		ID: "input-string",
		Accept: func(ex any, _ InputParams) (any, bool) {
			s, ok := ex.(string)
			return s, ok
		},
		Reader: func(BindingArgs[InputParams]) Reader[string] {
			return StringFromUnknown
		},
		Constraint: func(args BindingArgs[InputParams]) Constraint[string] {
			return listConstraintOf[string](args.Params.Options)
		},
		Equals: Equals[string],
		Writer: func(BindingArgs[InputParams]) Writer[string] {
			return func(v string) any { return v }
		},
	}

	// Point2dInputPlugin binds Point2d values and {"x", "y"} maps.
	Point2dInputPlugin = InputPlugin[Point2d]{
		ID: "input-point2d",
		Accept: func(ex any, _ InputParams) (any, bool) {
			if _, ok := pointAxes(ex, "x", "y"); !ok {
				return nil, false
			}
			return ex, true
		},
		Reader: func(BindingArgs[InputParams]) Reader[Point2d] {
			return Point2dFromUnknown
		},
		Constraint: func(args BindingArgs[InputParams]) Constraint[Point2d] {
			x, y := axisConstraint(args.Params.X), axisConstraint(args.Params.Y)
			if x == nil && y == nil {
				return nil
			}
			return &Point2dConstraint{X: x, Y: y}
		},
		Equals: Equals[Point2d],
		Writer: func(args BindingArgs[InputParams]) Writer[Point2d] {
			switch args.InitialValue.(type) {
			case map[string]any:
				return func(p Point2d) any { return map[string]any{"x": p.X, "y": p.Y} }
			case *Point2d:
				return func(p Point2d) any { return &p }
			}
			return func(p Point2d) any { return p }
		},
	}

	// Point3dInputPlugin binds Point3d values and {"x", "y", "z"} maps.
	Point3dInputPlugin = InputPlugin[Point3d]{
		ID: "input-point3d",
		Accept: func(ex any, _ InputParams) (any, bool) {
			if _, ok := pointAxes(ex, "x", "y", "z"); !ok {
				return nil, false
			}
			return ex, true
		},
		Reader: func(BindingArgs[InputParams]) Reader[Point3d] {
			return Point3dFromUnknown
		},
		Constraint: func(args BindingArgs[InputParams]) Constraint[Point3d] {
			x, y, z := axisConstraint(args.Params.X), axisConstraint(args.Params.Y), axisConstraint(args.Params.Z)
			if x == nil && y == nil && z == nil {
				return nil
			}
			return &Point3dConstraint{X: x, Y: y, Z: z}
		},
		Equals: Equals[Point3d],
		Writer: func(args BindingArgs[InputParams]) Writer[Point3d] {
			switch args.InitialValue.(type) {
			case map[string]any:
				return func(p Point3d) any { return map[string]any{"x": p.X, "y": p.Y, "z": p.Z} }
			case *Point3d:
				return func(p Point3d) any { return &p }
			}
			return func(p Point3d) any { return p }
		},
	}
)

// Built-in monitor plugins.
var (
	// BooleanMonitorPlugin samples bool properties.
	BooleanMonitorPlugin = MonitorPlugin[bool]{
		ID: "monitor-bool",
		Accept: func(ex any, _ MonitorParams) (any, bool) {
			b, ok := ex.(bool)
			return b, ok
		},
		Reader: func(BindingArgs[MonitorParams]) Reader[bool] {
			return BoolFromUnknown
		},
	}

	// NumberMonitorPlugin samples numeric properties.
	NumberMonitorPlugin = MonitorPlugin[float64]{
		ID: "monitor-number",
		Accept: func(ex any, _ MonitorParams) (any, bool) {
			if !isNumber(ex) {
				return nil, false
			}
			return ex, true
		},
		Reader: func(BindingArgs[MonitorParams]) Reader[float64] {
			return NumberFromUnknown
		},
	}

	// StringMonitorPlugin samples string properties.
	StringMonitorPlugin = MonitorPlugin[string]{
		ID: "monitor-string",
		Accept: func(ex any, _ MonitorParams) (any, bool) {
			s, ok := ex.(string)
			return s, ok
		},
		Reader: func(BindingArgs[MonitorParams]) Reader[string] {
			return StringFromUnknown
		},
	}
)

// DefaultInputPlugins returns the built-in input plugins in match order.
// Points come first so that {"x", "y"} maps are not taken for anything else.
func DefaultInputPlugins() []InputPluginFactory {
	return []InputPluginFactory{
		Point3dInputPlugin,
		Point2dInputPlugin,
		BooleanInputPlugin,
		NumberInputPlugin,
		StringInputPlugin,
	}
}

// DefaultMonitorPlugins returns the built-in monitor plugins in match order.
func DefaultMonitorPlugins() []MonitorPluginFactory {
	return []MonitorPluginFactory{
		BooleanMonitorPlugin,
		NumberMonitorPlugin,
		StringMonitorPlugin,
	}
}

// Point2dFromUnknown converts a Point2d, *Point2d or {"x", "y"} map. Anything
// else reads as the origin.
func Point2dFromUnknown(v any) Point2d {
	axes, ok := pointAxes(v, "x", "y")
	if !ok {
		return Point2d{}
	}
	return Point2d{X: axes[0], Y: axes[1]}
}

// Point3dFromUnknown converts a Point3d, *Point3d or {"x", "y", "z"} map.
func Point3dFromUnknown(v any) Point3d {
	axes, ok := pointAxes(v, "x", "y", "z")
	if !ok {
		return Point3d{}
	}
	return Point3d{X: axes[0], Y: axes[1], Z: axes[2]}
}

// integerConstraint appends whole-number stepping and the kind's range to c
// when initial is an integer, so the value only holds numbers the property
// can store. User bounds are rounded inward.
func integerConstraint(c Constraint[float64], initial any, minValue, maxValue *float64) Constraint[float64] {
	lo, hi, ok := integerBounds(initial)
	if !ok {
		return c
	}
	if minValue != nil {
		lo = math.Max(lo, math.Ceil(*minValue))
	}
	if maxValue != nil {
		hi = math.Min(hi, math.Floor(*maxValue))
	}
	return Chain(c, NewStepConstraint(1), NewRangeConstraint(WithMin(lo), WithMax(hi)))
}

func axisConstraint(p *AxisParams) Constraint[float64] {
	if p == nil {
		return nil
	}
	return NumberConstraint(NumberParams{Min: p.Min, Max: p.Max, Step: p.Step})
}

func listConstraintOf[T comparable](items []ListItem[any]) Constraint[T] {
	var options []ListItem[T]
	for _, item := range items {
		if v, ok := item.Value.(T); ok {
			options = append(options, ListItem[T]{Text: item.Text, Value: v})
		}
	}
	if len(options) == 0 {
		return nil
	}
	return NewListConstraint(options)
}
