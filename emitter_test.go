package knob

import "testing"

func TestEmitter_EmitInRegistrationOrder(t *testing.T) {
	e := NewEmitter[int]()
	var order []string
	e.On(EventChange, func(v int) { order = append(order, "a") })
	e.On(EventChange, func(v int) { order = append(order, "b") })
	e.On(EventTick, func(v int) { order = append(order, "tick") })

	e.Emit(EventChange, 1)

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("expected [a b], got %v", order)
	}
}

func TestEmitter_NoHandlers(t *testing.T) {
	e := NewEmitter[string]()
	e.Emit(EventChange, "nobody listens")

	if e.Len(EventChange) != 0 {
		t.Errorf("expected 0 handlers, got %d", e.Len(EventChange))
	}
}

func TestEmitter_ZeroValue(t *testing.T) {
	var e Emitter[int]
	got := 0
	e.On(EventChange, func(v int) { got = v })
	e.Emit(EventChange, 7)

	if got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestEmitter_Off(t *testing.T) {
	e := NewEmitter[int]()
	calls := 0
	s := e.On(EventChange, func(int) { calls++ })

	e.Emit(EventChange, 1)
	s.Off()
	e.Emit(EventChange, 2)
	s.Off()

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if e.Len(EventChange) != 0 {
		t.Errorf("expected handler removed, got %d", e.Len(EventChange))
	}
}

func TestEmitter_OffForeignSubscription(t *testing.T) {
	a := NewEmitter[int]()
	b := NewEmitter[int]()
	s := a.On(EventChange, func(int) {})

	b.Off(s)
	if a.Len(EventChange) != 1 {
		t.Error("Off on another emitter must not remove the handler")
	}

	a.Off(s)
	if a.Len(EventChange) != 0 {
		t.Error("expected handler removed")
	}

	a.Off(nil)
	var nilSub *Subscription
	nilSub.Off()
}

func TestEmitter_SameFuncTwice(t *testing.T) {
	e := NewEmitter[int]()
	calls := 0
	fn := func(int) { calls++ }
	first := e.On(EventChange, fn)
	e.On(EventChange, fn)

	e.Emit(EventChange, 0)
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}

	first.Off()
	e.Emit(EventChange, 0)
	if calls != 3 {
		t.Errorf("expected one remaining registration, got %d calls", calls)
	}
}

func TestEmitter_AddDuringEmit(t *testing.T) {
	e := NewEmitter[int]()
	late := 0
	e.On(EventChange, func(int) {
		e.On(EventChange, func(int) { late++ })
	})

	e.Emit(EventChange, 0)
	if late != 0 {
		t.Errorf("handler added during emit must not run, ran %d times", late)
	}

	e.Emit(EventChange, 0)
	if late != 1 {
		t.Errorf("expected late handler to run on the next emit, ran %d times", late)
	}
}

func TestEmitter_RemoveDuringEmit(t *testing.T) {
	e := NewEmitter[int]()
	var second *Subscription
	secondCalls := 0
	e.On(EventChange, func(int) { second.Off() })
	second = e.On(EventChange, func(int) { secondCalls++ })

	e.Emit(EventChange, 0)
	if secondCalls != 0 {
		t.Errorf("handler removed before its turn must be skipped, ran %d times", secondCalls)
	}
}

func TestEmitter_Reentrant(t *testing.T) {
	e := NewEmitter[int]()
	var seen []int
	e.On(EventChange, func(v int) {
		seen = append(seen, v)
		if v < 3 {
			e.Emit(EventChange, v+1)
		}
	})

	e.Emit(EventChange, 1)
	if len(seen) != 3 || seen[2] != 3 {
		t.Errorf("expected nested emits [1 2 3], got %v", seen)
	}
}
