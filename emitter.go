package knob

// EventName identifies an event channel on an Emitter.
type EventName string

// Event names shared by the engine.
const (
	// EventChange is emitted by values when their raw value changes and by
	// a Pane when any of its inputs changes.
	EventChange EventName = "change"

	// EventTick is emitted by tickers.
	EventTick EventName = "tick"

	// EventUpdate is emitted by a Pane when any of its monitors samples.
	EventUpdate EventName = "update"
)

// Subscription is the handle returned by Emitter.On. It is the only way to
// remove a handler, since Go funcs cannot be compared.
type Subscription struct {
	name    EventName
	active  bool
	emitter remover
	fn      any
}

// remover is the non-generic side of an Emitter used by Subscription.
type remover interface {
	remove(s *Subscription)
}

// Off removes the handler from its emitter. Calling Off more than once is
// a no-op.
func (s *Subscription) Off() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	s.emitter.remove(s)
}

// Emitter is a synchronous publish/subscribe bus keyed by event name.
// Handlers run in registration order on the goroutine that calls Emit.
//
// Emitter is not safe for concurrent use. Handlers that set the value that
// emitted them recurse; guarding against that is the caller's job.
type Emitter[E any] struct {
	handlers map[EventName][]*Subscription
}

// NewEmitter creates an empty Emitter.
func NewEmitter[E any]() *Emitter[E] {
	return &Emitter[E]{handlers: make(map[EventName][]*Subscription)}
}

// On registers fn for the named event.
func (e *Emitter[E]) On(name EventName, fn func(E)) *Subscription {
	if e.handlers == nil {
		e.handlers = make(map[EventName][]*Subscription)
	}
	s := &Subscription{name: name, active: true, emitter: e, fn: fn}
	e.handlers[name] = append(e.handlers[name], s)
	return s
}

// Off removes a subscription. Unknown or already removed subscriptions are
// ignored.
func (e *Emitter[E]) Off(s *Subscription) {
	if s == nil || s.emitter != remover(e) {
		return
	}
	s.Off()
}

// Emit invokes every handler registered for name with payload. Handlers
// added during the call are not invoked until the next Emit; handlers
// removed during the call are skipped if they have not run yet.
func (e *Emitter[E]) Emit(name EventName, payload E) {
	subs := e.handlers[name]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]*Subscription, len(subs))
	copy(snapshot, subs)

	for _, s := range snapshot {
		if !s.active {
			continue
		}
		s.fn.(func(E))(payload)
	}
}

// Len reports the number of handlers registered for name.
func (e *Emitter[E]) Len(name EventName) int {
	return len(e.handlers[name])
}

func (e *Emitter[E]) remove(s *Subscription) {
	subs := e.handlers[s.name]
	for i, existing := range subs {
		if existing != s {
			continue
		}
		next := make([]*Subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(e.handlers, s.name)
		} else {
			e.handlers[s.name] = next
		}
		return
	}
}
