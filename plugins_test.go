package knob

import "testing"

func TestNumberInputPlugin_IntegerKinds(t *testing.T) {
	tests := []struct {
		name      string
		initial   any
		params    InputParams
		in        float64
		wantValue float64
		wantHost  any
	}{
		{"uint8 negative", uint8(10), InputParams{}, -5, 0, uint8(0)},
		{"uint8 overflow", uint8(10), InputParams{}, 300, 255, uint8(255)},
		{"uint8 fraction", uint8(10), InputParams{}, 2.7, 3, uint8(3)},
		{"int8 underflow", int8(0), InputParams{}, -500, -128, int8(-128)},
		{"int8 overflow", int8(0), InputParams{}, 500, 127, int8(127)},
		{"int8 fraction", int8(0), InputParams{}, -1.2, -1, int8(-1)},
		{"int user max rounds inward", 0, InputParams{Max: ptr(9.5)}, 20, 9, 9},
		{"int user min rounds inward", 5, InputParams{Min: ptr(0.5)}, -3, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := map[string]any{"n": tt.initial}
			c, ok := NumberInputPlugin.CreateInput(NewTarget(Map(m), "n"), tt.params)
			if !ok {
				t.Fatal("expected the number plugin to accept")
			}
			defer c.Dispose()

			v, _ := InputValue[float64](c)
			v.SetRawValue(tt.in)
			if got := v.RawValue(); got != tt.wantValue {
				t.Errorf("expected value %v, got %v", tt.wantValue, got)
			}
			if m["n"] != tt.wantHost {
				t.Errorf("expected host %#v, got %#v", tt.wantHost, m["n"])
			}
		})
	}
}

func TestNumberInputPlugin_FloatHasNoImplicitConstraint(t *testing.T) {
	m := map[string]any{"f": 0.5}
	c, ok := NumberInputPlugin.CreateInput(NewTarget(Map(m), "f"), InputParams{})
	if !ok {
		t.Fatal("expected the number plugin to accept")
	}
	defer c.Dispose()

	v, _ := InputValue[float64](c)
	if ConstraintOf(v) != nil {
		t.Error("expected no constraint for a float without params")
	}
	v.SetRawValue(2.7)
	if m["f"] != 2.7 {
		t.Errorf("expected 2.7, got %v", m["f"])
	}
}

func TestPointInputPlugins_NoParamsNoConstraint(t *testing.T) {
	m := map[string]any{
		"p2": Point2d{X: 1, Y: 2},
		"p3": Point3d{X: 1, Y: 2, Z: 3},
	}

	c2, ok := Point2dInputPlugin.CreateInput(NewTarget(Map(m), "p2"), InputParams{})
	if !ok {
		t.Fatal("expected the point2d plugin to accept")
	}
	defer c2.Dispose()
	v2, _ := InputValue[Point2d](c2)
	if ConstraintOf(v2) != nil {
		t.Error("expected no point2d constraint without axis params")
	}

	c3, ok := Point3dInputPlugin.CreateInput(NewTarget(Map(m), "p3"), InputParams{})
	if !ok {
		t.Fatal("expected the point3d plugin to accept")
	}
	defer c3.Dispose()
	v3, _ := InputValue[Point3d](c3)
	if ConstraintOf(v3) != nil {
		t.Error("expected no point3d constraint without axis params")
	}

	c, ok := Point2dInputPlugin.CreateInput(NewTarget(Map(m), "p2"), InputParams{Y: &AxisParams{Max: ptr(0.0)}})
	if !ok {
		t.Fatal("expected the point2d plugin to accept")
	}
	defer c.Dispose()
	v, _ := InputValue[Point2d](c)
	if _, ok := FindConstraint[*Point2dConstraint](ConstraintOf(v)); !ok {
		t.Error("expected a point2d constraint with a y axis param")
	}
	v.SetRawValue(Point2d{X: 3, Y: 4})
	if m["p2"] != (Point2d{X: 3, Y: 0}) {
		t.Errorf("expected only y clamped, got %+v", m["p2"])
	}
}
