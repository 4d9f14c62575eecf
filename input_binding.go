package knob

// Reader converts an external value into the internal representation.
type Reader[T any] func(ex any) T

// Writer converts an internal value back into the external representation.
type Writer[T any] func(v T) any

// InputBindingConfig holds the parts of an InputBinding.
type InputBindingConfig[T any] struct {
	Target *Target
	Value  Value[T]
	Reader Reader[T]
	Writer Writer[T]
}

// InputBinding wires a Target and a Value both ways: construction reads the
// target into the value, and every value change is written back.
//
// Reader and writer panics propagate to the caller unchanged.
type InputBinding[T any] struct {
	target *Target
	value  Value[T]
	reader Reader[T]
	writer Writer[T]
	sub    *Subscription
}

// NewInputBinding reads the target into cfg.Value and then starts writing
// value changes through to the target.
func NewInputBinding[T any](cfg InputBindingConfig[T]) *InputBinding[T] {
	b := &InputBinding[T]{
		target: cfg.Target,
		value:  cfg.Value,
		reader: cfg.Reader,
		writer: cfg.Writer,
	}
	b.Read()
	b.sub = b.value.Emitter().On(EventChange, b.onValueChange)
	return b
}

// Target returns the bound target.
func (b *InputBinding[T]) Target() *Target {
	return b.target
}

// Value returns the bound value.
func (b *InputBinding[T]) Value() Value[T] {
	return b.value
}

// Read re-reads the target into the value. The value's constraint and
// equality rules apply, so an unchanged target does not write back.
func (b *InputBinding[T]) Read() {
	b.value.SetRawValue(b.reader(b.target.Read()))
}

// Dispose stops writing value changes to the target. It is idempotent.
func (b *InputBinding[T]) Dispose() {
	b.sub.Off()
}

func (b *InputBinding[T]) onValueChange(ev ChangeEvent[T]) {
	b.target.Write(b.writer(ev.RawValue))
}
