package knob

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// DefaultDebounce is the default debounce duration for preset changes.
const DefaultDebounce = 100 * time.Millisecond

var applyID = pipz.NewIdentity("knob:apply", "Applies a decoded preset")

// Loader watches a source of serialized presets, decodes each change and
// hands it to an apply function, keeping the last good preset when a
// change fails.
type Loader struct {
	watcher        Watcher
	pipeline       pipz.Chainable[*Request]
	debounce       time.Duration
	startupTimeout time.Duration
	syncMode       bool
	clock          clockz.Clock
	codec          Codec
	metrics        MetricsProvider
	onStop         func(State)

	state        atomic.Int32
	current      atomic.Pointer[Preset]
	lastError    atomic.Pointer[error]
	errorHistory *ring[error]

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// NewLoader creates a Loader that applies presets read from watcher.
//
// Example, hot-reloading a pane from a file:
//
//	loader := knob.NewLoader(
//	    knob.NewFileWatcher("preset.yaml"),
//	    func(_ context.Context, _, curr knob.Preset) error {
//	        pane.Do(func() { pane.ImportPreset(curr) })
//	        return nil
//	    },
//	).Codec(knob.YAMLCodec{})
func NewLoader(
	watcher Watcher,
	apply func(ctx context.Context, prev, curr Preset) error,
	opts ...LoaderOption,
) *Loader {
	terminal := pipz.Effect(applyID, func(ctx context.Context, req *Request) error {
		return apply(ctx, req.Previous, req.Current)
	})
	pipeline := buildPipeline(terminal, opts)

	l := &Loader{
		watcher:  watcher,
		pipeline: pipeline,
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    JSONCodec{},
		metrics:  NoOpMetricsProvider{},
	}
	l.state.Store(int32(StateLoading))

	return l
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Debounce sets the debounce duration for change processing.
// Default: 100ms. Must be called before Start().
func (l *Loader) Debounce(d time.Duration) *Loader {
	l.debounce = d
	return l
}

// SyncMode enables synchronous processing for testing. Must be called
// before Start().
func (l *Loader) SyncMode() *Loader {
	l.syncMode = true
	return l
}

// Clock sets a custom clock for time operations. Must be called before Start().
func (l *Loader) Clock(clock clockz.Clock) *Loader {
	l.clock = clock
	return l
}

// Codec sets the codec for decoding presets.
// Default: JSONCodec. Must be called before Start().
func (l *Loader) Codec(codec Codec) *Loader {
	l.codec = codec
	return l
}

// StartupTimeout sets the maximum duration to wait for the initial preset.
// Default: no timeout. Must be called before Start().
func (l *Loader) StartupTimeout(d time.Duration) *Loader {
	l.startupTimeout = d
	return l
}

// Metrics sets a metrics provider. Must be called before Start().
func (l *Loader) Metrics(provider MetricsProvider) *Loader {
	l.metrics = provider
	return l
}

// OnStop sets a callback invoked with the final state when watching stops.
// Must be called before Start().
func (l *Loader) OnStop(fn func(State)) *Loader {
	l.onStop = fn
	return l
}

// ErrorHistorySize sets the number of recent errors to retain.
// Use 0 (default) to only retain the most recent error via LastError().
// Must be called before Start().
func (l *Loader) ErrorHistorySize(n int) *Loader {
	l.errorHistory = newRing[error](n)
	return l
}

// State returns the current state of the Loader.
func (l *Loader) State() State {
	return State(l.state.Load())
}

// Current returns the last applied preset and true, or nil and false.
func (l *Loader) Current() (Preset, bool) {
	ptr := l.current.Load()
	if ptr == nil {
		return nil, false
	}
	return *ptr, true
}

// LastError returns the last error encountered, or nil.
func (l *Loader) LastError() error {
	ptr := l.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns the recent errors, oldest first, or nil when error
// history is not enabled.
func (l *Loader) ErrorHistory() []error {
	samples := l.errorHistory.all()
	if samples == nil {
		return nil
	}
	errs := make([]error, len(samples))
	for i, s := range samples {
		errs[i] = s.Value
	}
	return errs
}

// Start begins watching. It blocks until the first preset is processed,
// then continues watching asynchronously. If the first preset fails, Start
// returns the error but keeps watching for valid updates.
//
// In sync mode, Start only processes the initial value; use Process for
// the following ones. Start can only be called once.
func (l *Loader) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return fmt.Errorf("loader already started")
	}
	l.started = true
	l.mu.Unlock()

	capitan.Emit(ctx, LoaderStarted,
		KeyDebounce.Field(l.debounce),
	)

	changes, err := l.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	var initialErr error

	startupCtx := ctx
	if l.startupTimeout > 0 {
		var cancel context.CancelFunc
		startupCtx, cancel = l.clock.WithTimeout(ctx, l.startupTimeout)
		defer cancel()
	}

	select {
	case <-startupCtx.Done():
		if l.startupTimeout > 0 && startupCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("startup timeout: watcher did not emit initial value within %v", l.startupTimeout)
		}
		return startupCtx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting initial value")
		}
		l.received(ctx)
		initialErr = l.process(ctx, raw)
	}

	if l.syncMode {
		l.changes = changes
		return initialErr
	}

	go l.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next value from the watcher. It only
// works in sync mode and returns false when no value is ready.
func (l *Loader) Process(ctx context.Context) bool {
	if !l.syncMode {
		return false
	}

	select {
	case raw, ok := <-l.changes:
		if !ok {
			return false
		}
		l.received(ctx)
		_ = l.process(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

func (l *Loader) received(ctx context.Context) {
	capitan.Emit(ctx, LoaderChangeReceived)
	l.metrics.OnChangeReceived()
}

// process decodes a preset and runs it through the pipeline.
func (l *Loader) process(ctx context.Context, raw []byte) error {
	start := l.clock.Now()
	oldState := l.State()

	preset, err := UnmarshalPreset(l.codec, raw)
	if err != nil {
		l.setError(err)
		l.transitionState(ctx, oldState, l.failureState())
		capitan.Emit(ctx, LoaderDecodeFailed,
			KeyError.Field(err.Error()),
		)
		l.metrics.OnProcessFailure("decode", l.clock.Since(start))
		return err
	}

	prev, _ := l.Current()
	req := &Request{Previous: prev, Current: preset, Raw: raw}
	processed, err := l.pipeline.Process(ctx, req)
	if err != nil {
		l.setError(err)
		l.transitionState(ctx, oldState, l.failureState())
		capitan.Emit(ctx, LoaderApplyFailed,
			KeyError.Field(err.Error()),
		)
		l.metrics.OnProcessFailure("pipeline", l.clock.Since(start))
		return fmt.Errorf("pipeline failed: %w", err)
	}

	l.current.Store(&processed.Current)
	l.lastError.Store(nil)
	l.errorHistory.clear()
	l.transitionState(ctx, oldState, StateHealthy)
	capitan.Emit(ctx, LoaderApplySucceeded,
		KeyCount.Field(len(processed.Current)),
	)
	l.metrics.OnProcessSuccess(l.clock.Since(start))

	return nil
}

// failureState returns Empty until a preset has been applied, then Degraded.
func (l *Loader) failureState() State {
	if l.current.Load() == nil {
		return StateEmpty
	}
	return StateDegraded
}

// transitionState updates the state and emits a state change event if changed.
func (l *Loader) transitionState(ctx context.Context, oldState, newState State) {
	if oldState == newState {
		return
	}
	l.state.Store(int32(newState))
	capitan.Emit(ctx, LoaderStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
	l.metrics.OnStateChange(oldState, newState)
}

// setError stores an error and adds it to the error history.
func (l *Loader) setError(err error) {
	e := err
	l.lastError.Store(&e)
	l.errorHistory.push(Sample[error]{Value: err, OK: true})
}

// watch processes changes from the watcher channel with debouncing.
func (l *Loader) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		finalState := l.State()
		capitan.Emit(ctx, LoaderStopped,
			KeyState.Field(finalState.String()),
		)
		if l.onStop != nil {
			l.onStop(finalState)
		}
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				if hasPending {
					_ = l.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}

			l.received(ctx)
			pending = raw
			hasPending = true

			if timer == nil {
				timer = l.clock.NewTimer(l.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(l.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = l.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				hasPending = false
			}
		}
	}
}
