package knob

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// NumberFromUnknown converts an external value to a float64. Numeric kinds
// convert directly, strings are parsed, booleans map to 1 and 0, and
// anything else reads as 0.
func NumberFromUnknown(v any) float64 {
	if f, ok := numberOf(v); ok {
		return f
	}
	switch x := v.(type) {
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
	case bool:
		if x {
			return 1
		}
	}
	return 0
}

// BoolFromUnknown converts an external value to a bool. Strings are parsed
// with strconv.ParseBool and fall back to non-empty; numbers are true when
// non-zero.
func BoolFromUnknown(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		if b, err := strconv.ParseBool(x); err == nil {
			return b
		}
		return x != ""
	}
	if f, ok := numberOf(v); ok {
		return f != 0
	}
	return true
}

// StringFromUnknown converts an external value to a string. nil reads as "".
func StringFromUnknown(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	return fmt.Sprint(v)
}

// isNumber reports whether v has a numeric kind.
func isNumber(v any) bool {
	_, ok := numberOf(v)
	return ok
}

func numberOf(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// numberWriter returns a Writer that converts back to the numeric type of
// initial, so that a map holding an int keeps holding an int. Integer kinds
// are rounded half up and clamped to the kind's range.
func numberWriter(initial any) Writer[float64] {
	t := reflect.TypeOf(initial)
	if t == nil || t == float64Type || !isNumericKind(t.Kind()) {
		return func(v float64) any { return v }
	}
	return func(v float64) any {
		return numberAs(t, v).Interface()
	}
}

var float64Type = reflect.TypeOf(float64(0))

// numberAs stores f in a new value of the numeric type t.
func numberAs(t reflect.Type, f float64) reflect.Value {
	out := reflect.New(t).Elem()
	switch {
	case isSignedKind(t.Kind()):
		out.SetInt(clampInt(f, t.Bits()))
	case isUnsignedKind(t.Kind()):
		out.SetUint(clampUint(f, t.Bits()))
	default:
		out.SetFloat(f)
	}
	return out
}

// convertTo converts v for storage in a value of type t. Numbers convert
// between numeric kinds, points accept any shape pointAxes reads, and other
// values convert only within their own kind. ok is false otherwise.
func convertTo(v any, t reflect.Type) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}
	switch t {
	case point2dType:
		if _, ok := pointAxes(v, "x", "y"); ok {
			return reflect.ValueOf(Point2dFromUnknown(v)), true
		}
		return reflect.Value{}, false
	case point3dType:
		if _, ok := pointAxes(v, "x", "y", "z"); ok {
			return reflect.ValueOf(Point3dFromUnknown(v)), true
		}
		return reflect.Value{}, false
	}
	if isNumericKind(t.Kind()) {
		f, ok := numberOf(v)
		if !ok {
			return reflect.Value{}, false
		}
		return numberAs(t, f), true
	}
	if rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), true
	}
	return reflect.Value{}, false
}

var (
	point2dType = reflect.TypeOf(Point2d{})
	point3dType = reflect.TypeOf(Point3d{})
)

// integerBounds returns the representable range of an integer value's kind.
// ok is false for floats and non-numbers.
func integerBounds(v any) (lo, hi float64, ok bool) {
	t := reflect.TypeOf(v)
	if t == nil {
		return 0, 0, false
	}
	switch {
	case isSignedKind(t.Kind()):
		limit := math.Ldexp(1, t.Bits()-1)
		return -limit, limit - 1, true
	case isUnsignedKind(t.Kind()):
		return 0, math.Ldexp(1, t.Bits()) - 1, true
	}
	return 0, 0, false
}

func isNumericKind(k reflect.Kind) bool {
	return isSignedKind(k) || isUnsignedKind(k) || k == reflect.Float32 || k == reflect.Float64
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// clampInt rounds v half up into a signed integer of the given width.
// NaN reads as 0.
func clampInt(v float64, bits int) int64 {
	hi := int64(math.MaxInt64 >> (64 - bits))
	lo := -hi - 1
	r := math.Floor(v + 0.5)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.Ldexp(1, bits-1):
		return hi
	case r <= float64(lo):
		return lo
	}
	return int64(r)
}

// clampUint rounds v half up into an unsigned integer of the given width.
func clampUint(v float64, bits int) uint64 {
	hi := uint64(math.MaxUint64 >> (64 - bits))
	r := math.Floor(v + 0.5)
	switch {
	case math.IsNaN(r), r <= 0:
		return 0
	case r >= math.Ldexp(1, bits):
		return hi
	}
	return uint64(r)
}

// pointAxes extracts named numeric axes from a map or a point struct.
func pointAxes(v any, axes ...string) ([]float64, bool) {
	switch p := v.(type) {
	case Point2d:
		return pick(map[string]float64{"x": p.X, "y": p.Y}, axes)
	case *Point2d:
		if p == nil {
			return nil, false
		}
		return pick(map[string]float64{"x": p.X, "y": p.Y}, axes)
	case Point3d:
		return pick(map[string]float64{"x": p.X, "y": p.Y, "z": p.Z}, axes)
	case *Point3d:
		if p == nil {
			return nil, false
		}
		return pick(map[string]float64{"x": p.X, "y": p.Y, "z": p.Z}, axes)
	case map[string]any:
		if len(p) != len(axes) {
			return nil, false
		}
		result := make([]float64, len(axes))
		for i, axis := range axes {
			f, ok := numberOf(p[axis])
			if !ok {
				return nil, false
			}
			result[i] = f
		}
		return result, true
	}
	return nil, false
}

func pick(values map[string]float64, axes []string) ([]float64, bool) {
	if len(values) != len(axes) {
		return nil, false
	}
	result := make([]float64, len(axes))
	for i, axis := range axes {
		f, ok := values[axis]
		if !ok {
			return nil, false
		}
		result[i] = f
	}
	return result, true
}
