package knob

import "testing"

func ptr[T any](v T) *T {
	return &v
}

func TestRangeConstraint(t *testing.T) {
	tests := []struct {
		name string
		c    *RangeConstraint
		in   float64
		want float64
	}{
		{"within", NewRangeConstraint(WithMin(0), WithMax(10)), 5, 5},
		{"below", NewRangeConstraint(WithMin(0), WithMax(10)), -3, 0},
		{"above", NewRangeConstraint(WithMin(0), WithMax(10)), 42, 10},
		{"min only", NewRangeConstraint(WithMin(1)), 1e9, 1e9},
		{"max only", NewRangeConstraint(WithMax(1)), -1e9, -1e9},
		{"identity", NewRangeConstraint(), -7, -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Constrain(tt.in); got != tt.want {
				t.Errorf("Constrain(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRangeConstraint_Bounds(t *testing.T) {
	c := NewRangeConstraint(WithMax(3))
	if _, ok := c.MinValue(); ok {
		t.Error("expected no min")
	}
	if v, ok := c.MaxValue(); !ok || v != 3 {
		t.Errorf("expected max 3, got %v %v", v, ok)
	}
}

func TestStepConstraint(t *testing.T) {
	tests := []struct {
		step float64
		in   float64
		want float64
	}{
		{0.5, 1.2, 1.0},
		{0.5, 1.3, 1.5},
		{1, 2.5, 3},
		{1, -2.5, -2},
		{10, 14, 10},
		{0, 1.234, 1.234},
		{-1, 1.234, 1.234},
	}
	for _, tt := range tests {
		if got := NewStepConstraint(tt.step).Constrain(tt.in); got != tt.want {
			t.Errorf("step %v: Constrain(%v) = %v, want %v", tt.step, tt.in, got, tt.want)
		}
	}
}

func TestListConstraint(t *testing.T) {
	c := NewListConstraint([]ListItem[string]{
		{Text: "Low", Value: "lo"},
		{Text: "High", Value: "hi"},
	})

	if got := c.Constrain("hi"); got != "hi" {
		t.Errorf("expected member to pass, got %q", got)
	}
	if got := c.Constrain("medium"); got != "lo" {
		t.Errorf("expected unknown to fall back to first option, got %q", got)
	}

	empty := NewListConstraint[string](nil)
	if got := empty.Constrain("x"); got != "x" {
		t.Errorf("expected empty list to be identity, got %q", got)
	}
}

func TestChain(t *testing.T) {
	if Chain[float64]() != nil {
		t.Error("expected nil for empty chain")
	}
	if Chain[float64](nil, nil) != nil {
		t.Error("expected nil for chain of nils")
	}

	c := Chain[float64](NewStepConstraint(1), nil, NewRangeConstraint(WithMax(5)))
	composite, ok := c.(*CompositeConstraint[float64])
	if !ok {
		t.Fatalf("expected *CompositeConstraint, got %T", c)
	}
	if len(composite.Constraints()) != 2 {
		t.Errorf("expected nils dropped, got %d constraints", len(composite.Constraints()))
	}
	if got := c.Constrain(7.6); got != 5 {
		t.Errorf("expected step then clamp = 5, got %v", got)
	}
}

func TestChain_OrderMatters(t *testing.T) {
	// Range first, then step: 0.9 clamps to 0.9 and rounds to 1, past the max.
	rangeFirst := Chain[float64](NewRangeConstraint(WithMax(0.9)), NewStepConstraint(1))
	if got := rangeFirst.Constrain(5); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
	stepFirst := Chain[float64](NewStepConstraint(1), NewRangeConstraint(WithMax(0.9)))
	if got := stepFirst.Constrain(5); got != 0.9 {
		t.Errorf("expected 0.9, got %v", got)
	}
}

func TestFindConstraint(t *testing.T) {
	c := NumberConstraint(NumberParams{Min: ptr(0.0), Max: ptr(1.0), Step: ptr(0.1)})

	r, ok := FindConstraint[*RangeConstraint](c)
	if !ok {
		t.Fatal("expected to find the range constraint")
	}
	if v, _ := r.MaxValue(); v != 1 {
		t.Errorf("expected max 1, got %v", v)
	}

	if _, ok := FindConstraint[*ListConstraint[float64]](c); ok {
		t.Error("did not expect a list constraint")
	}
	if _, ok := FindConstraint[*StepConstraint, float64](nil); ok {
		t.Error("expected nothing in a nil constraint")
	}

	nested := Chain[float64](Chain[float64](NewStepConstraint(2)))
	if s, ok := FindConstraint[*StepConstraint](nested); !ok || s.Step() != 2 {
		t.Error("expected to find a step nested two levels deep")
	}
}

func TestNumberConstraint(t *testing.T) {
	if NumberConstraint(NumberParams{}) != nil {
		t.Error("expected nil constraint for empty params")
	}

	c := NumberConstraint(NumberParams{Min: ptr(0.0), Max: ptr(10.0), Step: ptr(2.0)})
	tests := map[float64]float64{
		-5:  0,
		3.1: 4,
		11:  10,
		9.2: 10,
	}
	for in, want := range tests {
		if got := c.Constrain(in); got != want {
			t.Errorf("Constrain(%v) = %v, want %v", in, got, want)
		}
	}

	list := NumberConstraint(NumberParams{Options: []ListItem[float64]{{Text: "one", Value: 1}, {Text: "two", Value: 2}}})
	if got := list.Constrain(3); got != 1 {
		t.Errorf("expected unknown option to fall back to 1, got %v", got)
	}
}

func TestPointConstraints(t *testing.T) {
	c2 := &Point2dConstraint{X: NewRangeConstraint(WithMax(1))}
	if got := c2.Constrain(Point2d{X: 5, Y: 5}); got != (Point2d{X: 1, Y: 5}) {
		t.Errorf("expected only x constrained, got %+v", got)
	}

	c3 := &Point3dConstraint{
		X: NewStepConstraint(1),
		Z: NewRangeConstraint(WithMin(0)),
	}
	if got := c3.Constrain(Point3d{X: 1.4, Y: 1.4, Z: -1}); got != (Point3d{X: 1, Y: 1.4, Z: 0}) {
		t.Errorf("unexpected point %+v", got)
	}
}

func TestConstraintFunc(t *testing.T) {
	double := ConstraintFunc[int](func(v int) int { return v * 2 })
	if got := double.Constrain(4); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
}

func TestConstraints_Idempotent(t *testing.T) {
	tests := []struct {
		name string
		c    Constraint[float64]
	}{
		{"range", NewRangeConstraint(WithMin(-1), WithMax(1))},
		{"step", NewStepConstraint(0.25)},
		{"list", NewListConstraint([]ListItem[float64]{{Text: "a", Value: 1}, {Text: "b", Value: 3}})},
		{"chain", Chain[float64](
			NewStepConstraint(0.5),
			NewRangeConstraint(WithMin(0), WithMax(10)),
		)},
		{"number params", NumberConstraint(NumberParams{Min: ptr(0.0), Max: ptr(99.0), Step: ptr(3.0)})},
	}
	inputs := []float64{-1000, -1.3, -0.5, 0, 0.125, 0.74, 1, 2.6, 9.99, 1e6}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, x := range inputs {
				once := tt.c.Constrain(x)
				if twice := tt.c.Constrain(once); twice != once {
					t.Errorf("Constrain(%v) = %v but Constrain(%v) = %v", x, once, once, twice)
				}
			}
		})
	}
}
