package knob

import "testing"

func numberBinding(m map[string]any, key string, opts ...ValueOption[float64]) *InputBinding[float64] {
	return NewInputBinding(InputBindingConfig[float64]{
		Target: NewTarget(Map(m), key),
		Value:  NewValue(0.0, opts...),
		Reader: NumberFromUnknown,
		Writer: func(v float64) any { return v },
	})
}

func TestInputBinding_ReadsOnConstruction(t *testing.T) {
	m := map[string]any{"speed": 3}
	b := numberBinding(m, "speed")

	if got := b.Value().RawValue(); got != 3 {
		t.Errorf("expected value 3, got %v", got)
	}
	// Construction reads before subscribing, so the target keeps its int.
	if _, ok := m["speed"].(int); !ok {
		t.Errorf("construction must not write back, target is %T", m["speed"])
	}
}

func TestInputBinding_WritesChanges(t *testing.T) {
	m := map[string]any{"speed": 1.0}
	b := numberBinding(m, "speed")

	b.Value().SetRawValue(4)
	if m["speed"] != 4.0 {
		t.Errorf("expected 4 written, got %v", m["speed"])
	}
	if b.Target().Key() != "speed" {
		t.Errorf("unexpected target key %q", b.Target().Key())
	}
}

func TestInputBinding_ReadAppliesConstraint(t *testing.T) {
	m := map[string]any{"speed": 1.0}
	b := numberBinding(m, "speed", WithConstraint[float64](NewRangeConstraint(WithMax(10))))

	m["speed"] = 50.0
	b.Read()

	if b.Value().RawValue() != 10 {
		t.Errorf("expected clamped 10, got %v", b.Value().RawValue())
	}
	if m["speed"] != 10.0 {
		t.Errorf("expected the clamped value written back, got %v", m["speed"])
	}
}

func TestInputBinding_ReadUnchangedDoesNotWrite(t *testing.T) {
	m := map[string]any{"speed": 2.0}
	b := numberBinding(m, "speed")
	writes := 0
	b.Value().Emitter().On(EventChange, func(ChangeEvent[float64]) { writes++ })

	b.Read()
	b.Read()

	if writes != 0 {
		t.Errorf("expected no changes, got %d", writes)
	}
}

func TestInputBinding_Dispose(t *testing.T) {
	m := map[string]any{"speed": 1.0}
	b := numberBinding(m, "speed")

	b.Dispose()
	b.Dispose()
	b.Value().SetRawValue(9)

	if m["speed"] != 1.0 {
		t.Errorf("disposed binding must not write, got %v", m["speed"])
	}
}

func TestInputBinding_WriterPanicPropagates(t *testing.T) {
	m := map[string]any{"speed": 1.0}
	b := NewInputBinding(InputBindingConfig[float64]{
		Target: NewTarget(Map(m), "speed"),
		Value:  NewValue(1.0),
		Reader: NumberFromUnknown,
		Writer: func(float64) any { panic("writer defect") },
	})

	defer func() {
		if r := recover(); r != "writer defect" {
			t.Errorf("expected writer panic, got %v", r)
		}
	}()
	b.Value().SetRawValue(2)
}

func TestInputBinding_AbsentKey(t *testing.T) {
	tests := []struct {
		name string
		opts []ValueOption[float64]
	}{
		{"unconstrained", nil},
		{"constrained", []ValueOption[float64]{WithConstraint[float64](NewRangeConstraint(WithMax(1)))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := map[string]any{}
			b := numberBinding(m, "foo", tt.opts...)

			b.Value().SetRawValue(5)
			b.Read()
			if _, ok := m["foo"]; ok {
				t.Errorf("binding on an absent key must not create it, got %v", m["foo"])
			}
			if len(m) != 0 {
				t.Errorf("expected an empty map, got %v", m)
			}
		})
	}
}
