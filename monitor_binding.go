package knob

// MonitorBindingConfig holds the parts of a MonitorBinding.
type MonitorBindingConfig[T any] struct {
	Target *Target
	Value  *BufferedValue[T]
	Reader Reader[T]
	Ticker Ticker
}

// MonitorBinding samples a Target into a BufferedValue on every tick. It
// never writes to the target.
type MonitorBinding[T any] struct {
	target *Target
	value  *BufferedValue[T]
	reader Reader[T]
	ticker Ticker
	sub    *Subscription
}

// NewMonitorBinding subscribes to the ticker. It does not sample until the
// first tick or Read.
func NewMonitorBinding[T any](cfg MonitorBindingConfig[T]) *MonitorBinding[T] {
	b := &MonitorBinding[T]{
		target: cfg.Target,
		value:  cfg.Value,
		reader: cfg.Reader,
		ticker: cfg.Ticker,
	}
	b.sub = b.ticker.Emitter().On(EventTick, b.onTick)
	return b
}

// Target returns the sampled target.
func (b *MonitorBinding[T]) Target() *Target {
	return b.target
}

// Value returns the sample buffer.
func (b *MonitorBinding[T]) Value() *BufferedValue[T] {
	return b.value
}

// Ticker returns the driving ticker.
func (b *MonitorBinding[T]) Ticker() Ticker {
	return b.ticker
}

// Read samples the target once. An absent property pushes an empty slot so
// that buffer indexes stay aligned with ticks.
func (b *MonitorBinding[T]) Read() {
	ex, ok := b.target.Lookup()
	if !ok {
		b.value.PushEmpty()
		return
	}
	b.value.Push(b.reader(ex))
}

// Dispose detaches from the ticker and disposes it. It is idempotent.
func (b *MonitorBinding[T]) Dispose() {
	b.sub.Off()
	b.ticker.Dispose()
}

func (b *MonitorBinding[T]) onTick(TickEvent) {
	b.Read()
}
