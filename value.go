package knob

import "reflect"

// ChangeEvent is the payload of EventChange. Sender lets handlers that are
// shared across several values tell them apart.
type ChangeEvent[T any] struct {
	Sender   Value[T]
	RawValue T
}

// Value is an observable container. Views read RawValue and subscribe to
// EventChange; they push user edits with SetRawValue.
type Value[T any] interface {
	Emitter() *Emitter[ChangeEvent[T]]
	RawValue() T
	SetRawValue(T)
}

// EqualsFunc reports whether two raw values are equal.
type EqualsFunc[T any] func(a, b T) bool

// Equals is the default comparator: == for comparable dynamic types,
// otherwise never equal.
func Equals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	if !reflect.TypeOf(av).Comparable() || !reflect.TypeOf(bv).Comparable() {
		return false
	}
	return av == bv
}

// ValueOption configures an Observable.
type ValueOption[T any] func(*Observable[T])

// WithConstraint sets the constraint applied on every write.
func WithConstraint[T any](c Constraint[T]) ValueOption[T] {
	return func(v *Observable[T]) {
		v.constraint = c
	}
}

// WithEquals sets the comparator used to suppress redundant changes.
func WithEquals[T any](eq EqualsFunc[T]) ValueOption[T] {
	return func(v *Observable[T]) {
		if eq != nil {
			v.equals = eq
		}
	}
}

// Observable is the standard Value: writes are constrained, compared with
// the current value and only stored and emitted when they differ.
type Observable[T any] struct {
	emitter    *Emitter[ChangeEvent[T]]
	constraint Constraint[T]
	equals     EqualsFunc[T]
	rawValue   T
}

// NewValue creates an Observable holding initial. The initial value is
// stored as given, without applying the constraint.
func NewValue[T any](initial T, opts ...ValueOption[T]) *Observable[T] {
	v := &Observable[T]{
		emitter:  NewEmitter[ChangeEvent[T]](),
		equals:   Equals[T],
		rawValue: initial,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Emitter returns the change emitter.
func (v *Observable[T]) Emitter() *Emitter[ChangeEvent[T]] {
	return v.emitter
}

// Constraint returns the constraint, or nil.
func (v *Observable[T]) Constraint() Constraint[T] {
	return v.constraint
}

// RawValue returns the current value.
func (v *Observable[T]) RawValue() T {
	return v.rawValue
}

// SetRawValue constrains raw, and stores and emits it if it differs from
// the current value.
func (v *Observable[T]) SetRawValue(raw T) {
	constrained := raw
	if v.constraint != nil {
		constrained = v.constraint.Constrain(raw)
	}
	if v.equals(v.rawValue, constrained) {
		return
	}
	v.rawValue = constrained
	v.emitter.Emit(EventChange, ChangeEvent[T]{Sender: v, RawValue: constrained})
}

// -----------------------------------------------------------------------------
// Decorators
// -----------------------------------------------------------------------------

// RawValue stores and emits every write.
type RawValue[T any] struct {
	emitter  *Emitter[ChangeEvent[T]]
	rawValue T
}

// NewRawValue creates a RawValue holding initial.
func NewRawValue[T any](initial T) *RawValue[T] {
	return &RawValue[T]{
		emitter:  NewEmitter[ChangeEvent[T]](),
		rawValue: initial,
	}
}

// Emitter returns the change emitter.
func (v *RawValue[T]) Emitter() *Emitter[ChangeEvent[T]] {
	return v.emitter
}

// RawValue returns the current value.
func (v *RawValue[T]) RawValue() T {
	return v.rawValue
}

// SetRawValue stores raw and emits.
func (v *RawValue[T]) SetRawValue(raw T) {
	v.rawValue = raw
	v.emitter.Emit(EventChange, ChangeEvent[T]{Sender: v, RawValue: raw})
}

// DistinctValue forwards writes to an inner value only when they differ
// from its current value. It shares the inner emitter.
type DistinctValue[T any] struct {
	value  Value[T]
	equals EqualsFunc[T]
}

// Distinct wraps value with de-duplication. A nil equals uses Equals.
func Distinct[T any](value Value[T], equals EqualsFunc[T]) *DistinctValue[T] {
	if equals == nil {
		equals = Equals[T]
	}
	return &DistinctValue[T]{value: value, equals: equals}
}

// Emitter returns the inner emitter.
func (v *DistinctValue[T]) Emitter() *Emitter[ChangeEvent[T]] {
	return v.value.Emitter()
}

// RawValue returns the inner value.
func (v *DistinctValue[T]) RawValue() T {
	return v.value.RawValue()
}

// SetRawValue forwards raw unless it equals the current value.
func (v *DistinctValue[T]) SetRawValue(raw T) {
	if v.equals(v.value.RawValue(), raw) {
		return
	}
	v.value.SetRawValue(raw)
}

// ConstrainedValue forces every write through a constraint before handing
// it to an inner value. It shares the inner emitter.
type ConstrainedValue[T any] struct {
	value      Value[T]
	constraint Constraint[T]
}

// Constrained wraps value with c.
func Constrained[T any](value Value[T], c Constraint[T]) *ConstrainedValue[T] {
	return &ConstrainedValue[T]{value: value, constraint: c}
}

// Emitter returns the inner emitter.
func (v *ConstrainedValue[T]) Emitter() *Emitter[ChangeEvent[T]] {
	return v.value.Emitter()
}

// Constraint returns the wrapped constraint.
func (v *ConstrainedValue[T]) Constraint() Constraint[T] {
	return v.constraint
}

// RawValue returns the inner value.
func (v *ConstrainedValue[T]) RawValue() T {
	return v.value.RawValue()
}

// SetRawValue constrains raw and forwards it.
func (v *ConstrainedValue[T]) SetRawValue(raw T) {
	if v.constraint != nil {
		raw = v.constraint.Constrain(raw)
	}
	v.value.SetRawValue(raw)
}

// ConstraintOf returns the constraint carried by value, or nil. It looks
// through Distinct and Constrained wrappers.
func ConstraintOf[T any](value Value[T]) Constraint[T] {
	switch v := value.(type) {
	case *Observable[T]:
		return v.constraint
	case *ConstrainedValue[T]:
		return v.constraint
	case *DistinctValue[T]:
		return ConstraintOf(v.value)
	}
	return nil
}
