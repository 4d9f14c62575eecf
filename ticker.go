package knob

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// TickEvent is the payload of EventTick.
type TickEvent struct {
	Sender Ticker
}

// Ticker drives periodic re-reads of monitor bindings.
type Ticker interface {
	Emitter() *Emitter[TickEvent]
	Dispose()
}

// ManualTicker ticks only when Tick is called.
type ManualTicker struct {
	emitter *Emitter[TickEvent]
}

// NewManualTicker creates a ManualTicker.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{emitter: NewEmitter[TickEvent]()}
}

// Emitter returns the tick emitter.
func (t *ManualTicker) Emitter() *Emitter[TickEvent] {
	return t.emitter
}

// Tick emits one tick synchronously.
func (t *ManualTicker) Tick() {
	t.emitter.Emit(EventTick, TickEvent{Sender: t})
}

// Dispose does nothing; a ManualTicker holds no resources.
func (t *ManualTicker) Dispose() {}

// IntervalTicker ticks on a fixed period from its own goroutine. Each tick
// is emitted while holding the configured locker, so handlers never
// interleave with each other or with other holders of the lock.
type IntervalTicker struct {
	emitter  *Emitter[TickEvent]
	interval time.Duration
	clock    clockz.Clock
	locker   sync.Locker

	deferred bool
	start    sync.Once
	once     sync.Once
	done     chan struct{}
	stopped  chan struct{}
}

// IntervalTickerOption configures an IntervalTicker.
type IntervalTickerOption func(*IntervalTicker)

// WithTickerClock sets the clock. Use clockz.FakeClock in tests.
func WithTickerClock(clock clockz.Clock) IntervalTickerOption {
	return func(t *IntervalTicker) {
		t.clock = clock
	}
}

// WithTickerLocker sets the lock held while a tick is emitted.
func WithTickerLocker(l sync.Locker) IntervalTickerOption {
	return func(t *IntervalTicker) {
		t.locker = l
	}
}

// WithTickerDeferred leaves the ticker stopped until Start is called, so
// handlers can be registered before the first tick can arrive.
func WithTickerDeferred() IntervalTickerOption {
	return func(t *IntervalTicker) {
		t.deferred = true
	}
}

// NewIntervalTicker starts a ticker firing every interval. An interval <= 0
// never fires.
func NewIntervalTicker(interval time.Duration, opts ...IntervalTickerOption) *IntervalTicker {
	t := &IntervalTicker{
		emitter:  NewEmitter[TickEvent](),
		interval: interval,
		clock:    clockz.RealClock,
		locker:   &sync.Mutex{},
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	if !t.deferred {
		t.Start()
	}
	return t
}

// Start begins ticking. It is idempotent and does nothing after Dispose.
func (t *IntervalTicker) Start() {
	t.start.Do(func() {
		if t.interval <= 0 {
			close(t.stopped)
			return
		}
		select {
		case <-t.done:
			close(t.stopped)
			return
		default:
		}
		go t.run(t.clock.NewTicker(t.interval))
	})
}

// Interval returns the configured period.
func (t *IntervalTicker) Interval() time.Duration {
	return t.interval
}

// Emitter returns the tick emitter. Register handlers before the first tick
// or while holding the ticker's locker.
func (t *IntervalTicker) Emitter() *Emitter[TickEvent] {
	return t.emitter
}

// Dispose stops the ticker. It is idempotent and safe to call from a tick
// handler or while holding the ticker's locker, so it does not wait for the
// tick goroutine; use Stopped for that. Once Dispose returns no new tick is
// emitted; a tick already being emitted on another goroutine finishes unless
// Dispose was called while holding the ticker's locker.
func (t *IntervalTicker) Dispose() {
	t.once.Do(func() {
		close(t.done)
		// A ticker that never started has no goroutine to close stopped.
		t.start.Do(func() { close(t.stopped) })
	})
}

// Stopped is closed once the tick goroutine has exited after Dispose, or
// when the ticker can never tick. Do not wait on it while holding the
// ticker's locker.
func (t *IntervalTicker) Stopped() <-chan struct{} {
	return t.stopped
}

func (t *IntervalTicker) run(ticker clockz.Ticker) {
	defer close(t.stopped)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C():
			t.locker.Lock()
			select {
			case <-t.done:
				t.locker.Unlock()
				return
			default:
			}
			t.emitter.Emit(EventTick, TickEvent{Sender: t})
			t.locker.Unlock()
		}
	}
}
