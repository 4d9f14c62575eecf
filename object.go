package knob

import (
	"fmt"
	"reflect"
	"strings"
)

// Object is an external value holder addressed by string keys. Binding
// targets read and write through it.
type Object interface {
	// Lookup returns the value stored under key and whether the key
	// currently resolves.
	Lookup(key string) (any, bool)

	// Has reports whether key currently resolves.
	Has(key string) bool

	// Set assigns v to key. Callers check Has first.
	Set(key string, v any)
}

// ObjectOf adapts v to an Object. It accepts Objects, map[string]any and
// pointers to structs.
func ObjectOf(v any) (Object, error) {
	switch o := v.(type) {
	case Object:
		return o, nil
	case map[string]any:
		return Map(o), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		return &structObject{v: rv.Elem()}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedObject, v)
}

// MapObject binds the entries of a map.
type MapObject map[string]any

// Map wraps m as an Object. Writes mutate m.
func Map(m map[string]any) MapObject {
	return MapObject(m)
}

// Lookup returns m[key].
func (m MapObject) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Has reports whether key is present.
func (m MapObject) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Set assigns m[key].
func (m MapObject) Set(key string, v any) {
	m[key] = v
}

// Struct wraps a pointer to a struct as an Object. Keys are exported field
// names, including fields promoted from embedded structs, or the name given
// by a `knob:"name"` tag. It panics when ptr is not a non-nil struct pointer.
func Struct(ptr any) Object {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("knob: Struct requires a non-nil struct pointer, got %T", ptr))
	}
	return &structObject{v: rv.Elem()}
}

type structObject struct {
	v reflect.Value
}

func (o *structObject) field(key string) (reflect.Value, bool) {
	if f, ok := o.taggedField(o.v, key); ok {
		return f, true
	}
	sf, ok := o.v.Type().FieldByName(key)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, false
	}
	f, err := o.v.FieldByIndexErr(sf.Index)
	if err != nil {
		// Promoted through a nil embedded pointer.
		return reflect.Value{}, false
	}
	return f, true
}

func (o *structObject) taggedField(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if name, _, _ := strings.Cut(sf.Tag.Get("knob"), ","); name == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func (o *structObject) Lookup(key string) (any, bool) {
	f, ok := o.field(key)
	if !ok {
		return nil, false
	}
	return f.Interface(), true
}

func (o *structObject) Has(key string) bool {
	_, ok := o.field(key)
	return ok
}

// Set converts v to the field type when needed. A nil v stores the zero
// value. Numbers are rounded and clamped into integer fields. A value of
// the wrong kind, such as a string for an int field, is dropped.
func (o *structObject) Set(key string, v any) {
	f, ok := o.field(key)
	if !ok || !f.CanSet() {
		return
	}
	if v == nil {
		f.Set(reflect.Zero(f.Type()))
		return
	}
	rv, ok := convertTo(v, f.Type())
	if !ok {
		return
	}
	f.Set(rv)
}
