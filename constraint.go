package knob

import "math"

// Constraint transforms a raw value so that it satisfies a domain rule.
// Implementations must be idempotent: Constrain(Constrain(x)) equals
// Constrain(x).
type Constraint[T any] interface {
	Constrain(value T) T
}

// ConstraintFunc adapts a plain function to a Constraint.
type ConstraintFunc[T any] func(T) T

// Constrain calls f.
func (f ConstraintFunc[T]) Constrain(value T) T {
	return f(value)
}

// -----------------------------------------------------------------------------
// Range
// -----------------------------------------------------------------------------

// RangeConstraint clamps a number into [min, max]. Either bound may be absent.
type RangeConstraint struct {
	minValue float64
	maxValue float64
	hasMin   bool
	hasMax   bool
}

// RangeOption sets a bound on a RangeConstraint.
type RangeOption func(*RangeConstraint)

// WithMin sets the lower bound.
func WithMin(v float64) RangeOption {
	return func(c *RangeConstraint) {
		c.minValue = v
		c.hasMin = true
	}
}

// WithMax sets the upper bound.
func WithMax(v float64) RangeOption {
	return func(c *RangeConstraint) {
		c.maxValue = v
		c.hasMax = true
	}
}

// NewRangeConstraint creates a RangeConstraint. Without options it is the
// identity.
func NewRangeConstraint(opts ...RangeOption) *RangeConstraint {
	c := &RangeConstraint{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MinValue returns the lower bound and whether it is set.
func (c *RangeConstraint) MinValue() (float64, bool) {
	return c.minValue, c.hasMin
}

// MaxValue returns the upper bound and whether it is set.
func (c *RangeConstraint) MaxValue() (float64, bool) {
	return c.maxValue, c.hasMax
}

// Constrain clamps value into the configured bounds.
func (c *RangeConstraint) Constrain(value float64) float64 {
	result := value
	if c.hasMin {
		result = math.Max(result, c.minValue)
	}
	if c.hasMax {
		result = math.Min(result, c.maxValue)
	}
	return result
}

// -----------------------------------------------------------------------------
// Step
// -----------------------------------------------------------------------------

// StepConstraint snaps a number to the nearest multiple of Step.
type StepConstraint struct {
	step float64
}

// NewStepConstraint creates a StepConstraint. A step <= 0 is the identity.
func NewStepConstraint(step float64) *StepConstraint {
	return &StepConstraint{step: step}
}

// Step returns the configured step.
func (c *StepConstraint) Step() float64 {
	return c.step
}

// Constrain snaps value to the nearest multiple of the step, halves rounding up.
func (c *StepConstraint) Constrain(value float64) float64 {
	if c.step <= 0 {
		return value
	}
	return math.Floor(value/c.step+0.5) * c.step
}

// -----------------------------------------------------------------------------
// List
// -----------------------------------------------------------------------------

// ListItem is one option of a ListConstraint.
type ListItem[T any] struct {
	Text  string
	Value T
}

// ListConstraint restricts a value to an enumerated option set.
type ListConstraint[T comparable] struct {
	options []ListItem[T]
}

// NewListConstraint creates a ListConstraint over options.
func NewListConstraint[T comparable](options []ListItem[T]) *ListConstraint[T] {
	return &ListConstraint[T]{options: options}
}

// Options returns the option set.
func (c *ListConstraint[T]) Options() []ListItem[T] {
	return c.options
}

// Constrain returns value when it is one of the options, otherwise the
// first option. An empty option set is the identity.
func (c *ListConstraint[T]) Constrain(value T) T {
	if len(c.options) == 0 {
		return value
	}
	for _, item := range c.options {
		if item.Value == value {
			return value
		}
	}
	return c.options[0].Value
}

// -----------------------------------------------------------------------------
// Composite
// -----------------------------------------------------------------------------

// CompositeConstraint applies constraints in order; the first one is the
// innermost.
type CompositeConstraint[T any] struct {
	constraints []Constraint[T]
}

// Chain composes constraints, skipping nils. It returns nil when no
// constraint remains so that "no options" stays distinguishable from a
// constraint.
func Chain[T any](constraints ...Constraint[T]) Constraint[T] {
	kept := make([]Constraint[T], 0, len(constraints))
	for _, c := range constraints {
		if c != nil {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &CompositeConstraint[T]{constraints: kept}
}

// Constraints returns the chained constraints, innermost first.
func (c *CompositeConstraint[T]) Constraints() []Constraint[T] {
	return c.constraints
}

// Constrain applies each constraint in turn.
func (c *CompositeConstraint[T]) Constrain(value T) T {
	result := value
	for _, sub := range c.constraints {
		result = sub.Constrain(result)
	}
	return result
}

// FindConstraint walks c, descending into composite chains, and returns
// the first constraint of type C.
func FindConstraint[C any, T any](c Constraint[T]) (C, bool) {
	var zero C
	if c == nil {
		return zero, false
	}
	if found, ok := c.(C); ok {
		return found, true
	}
	if composite, ok := c.(*CompositeConstraint[T]); ok {
		for _, sub := range composite.constraints {
			if found, ok := FindConstraint[C](sub); ok {
				return found, true
			}
		}
	}
	return zero, false
}

// -----------------------------------------------------------------------------
// Points
// -----------------------------------------------------------------------------

// Point2d is a two-dimensional point.
type Point2d struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Point3d is a three-dimensional point.
type Point3d struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Point2dConstraint constrains each axis of a Point2d independently.
// A nil axis constraint leaves that axis untouched.
type Point2dConstraint struct {
	X Constraint[float64]
	Y Constraint[float64]
}

// Constrain applies the axis constraints.
func (c *Point2dConstraint) Constrain(p Point2d) Point2d {
	return Point2d{
		X: constrainAxis(c.X, p.X),
		Y: constrainAxis(c.Y, p.Y),
	}
}

// Point3dConstraint constrains each axis of a Point3d independently.
type Point3dConstraint struct {
	X Constraint[float64]
	Y Constraint[float64]
	Z Constraint[float64]
}

// Constrain applies the axis constraints.
func (c *Point3dConstraint) Constrain(p Point3d) Point3d {
	return Point3d{
		X: constrainAxis(c.X, p.X),
		Y: constrainAxis(c.Y, p.Y),
		Z: constrainAxis(c.Z, p.Z),
	}
}

func constrainAxis(c Constraint[float64], v float64) float64 {
	if c == nil {
		return v
	}
	return c.Constrain(v)
}

// -----------------------------------------------------------------------------
// Builders
// -----------------------------------------------------------------------------

// NumberParams are the user-facing knobs that map to number constraints.
type NumberParams struct {
	Min     *float64
	Max     *float64
	Step    *float64
	Options []ListItem[float64]
}

// NumberConstraint assembles Step, Range and List constraints from params,
// in that order. It returns nil when params set nothing.
func NumberConstraint(params NumberParams) Constraint[float64] {
	var constraints []Constraint[float64]

	if params.Step != nil {
		constraints = append(constraints, NewStepConstraint(*params.Step))
	}

	var opts []RangeOption
	if params.Min != nil {
		opts = append(opts, WithMin(*params.Min))
	}
	if params.Max != nil {
		opts = append(opts, WithMax(*params.Max))
	}
	if len(opts) > 0 {
		constraints = append(constraints, NewRangeConstraint(opts...))
	}

	if len(params.Options) > 0 {
		constraints = append(constraints, NewListConstraint(params.Options))
	}

	return Chain(constraints...)
}
