package knob

// Sample is one slot of a monitor buffer. OK is false for slots that were
// never filled and for ticks where the target was absent.
type Sample[T any] struct {
	Value T
	OK    bool
}

// Buffer is a snapshot of a BufferedValue, oldest first. Its length always
// equals the buffer capacity.
type Buffer[T any] []Sample[T]

// Values returns the values of the filled slots in order. Callers that need
// index alignment with ticks should range over the Buffer instead.
func (b Buffer[T]) Values() []T {
	result := make([]T, 0, len(b))
	for _, s := range b {
		if s.OK {
			result = append(result, s.Value)
		}
	}
	return result
}

// Latest returns the newest slot.
func (b Buffer[T]) Latest() Sample[T] {
	if len(b) == 0 {
		return Sample[T]{}
	}
	return b[len(b)-1]
}

// BufferedValue holds a fixed number of historical samples. Unlike
// Observable, every push emits a change event, even when the pushed value
// equals earlier content: monitors show time progression, not only change.
type BufferedValue[T any] struct {
	emitter *Emitter[ChangeEvent[Buffer[T]]]
	ring    *ring[T]
}

// NewBufferedValue creates a BufferedValue with the given capacity.
// Capacities below 1 are raised to 1.
func NewBufferedValue[T any](capacity int) *BufferedValue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &BufferedValue[T]{
		emitter: NewEmitter[ChangeEvent[Buffer[T]]](),
		ring:    newRing[T](capacity),
	}
}

// Capacity returns the number of slots.
func (v *BufferedValue[T]) Capacity() int {
	return v.ring.size
}

// Emitter returns the change emitter.
func (v *BufferedValue[T]) Emitter() *Emitter[ChangeEvent[Buffer[T]]] {
	return v.emitter
}

// RawValue returns a snapshot of the buffer.
func (v *BufferedValue[T]) RawValue() Buffer[T] {
	return Buffer[T](v.ring.window())
}

// SetRawValue replaces the buffer contents with buf, keeping its newest
// Capacity() slots, and emits.
func (v *BufferedValue[T]) SetRawValue(buf Buffer[T]) {
	v.ring.clear()
	start := 0
	if len(buf) > v.ring.size {
		start = len(buf) - v.ring.size
	}
	for _, s := range buf[start:] {
		v.ring.push(s)
	}
	v.emit()
}

// Push appends value and emits.
func (v *BufferedValue[T]) Push(value T) {
	v.ring.push(Sample[T]{Value: value, OK: true})
	v.emit()
}

// PushEmpty appends an unfilled slot and emits, keeping the buffer index
// aligned with the tick count.
func (v *BufferedValue[T]) PushEmpty() {
	v.ring.push(Sample[T]{})
	v.emit()
}

func (v *BufferedValue[T]) emit() {
	v.emitter.Emit(EventChange, ChangeEvent[Buffer[T]]{
		Sender:   v,
		RawValue: v.RawValue(),
	})
}
