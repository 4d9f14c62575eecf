package knob

// Target addresses one property of an external Object. It is immutable.
type Target struct {
	object    Object
	key       string
	presetKey string
}

// TargetOption configures a Target.
type TargetOption func(*Target)

// WithPresetKey sets the key used in presets when it differs from the
// property key.
func WithPresetKey(key string) TargetOption {
	return func(t *Target) {
		if key != "" {
			t.presetKey = key
		}
	}
}

// NewTarget creates a Target for obj[key].
func NewTarget(obj Object, key string, opts ...TargetOption) *Target {
	t := &Target{object: obj, key: key, presetKey: key}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Object returns the bound object.
func (t *Target) Object() Object {
	return t.object
}

// Key returns the bound property name.
func (t *Target) Key() string {
	return t.key
}

// PresetKey returns the key used when importing and exporting presets.
func (t *Target) PresetKey() string {
	return t.presetKey
}

// Lookup returns the current value and whether the property exists.
func (t *Target) Lookup() (any, bool) {
	return t.object.Lookup(t.key)
}

// Read returns the current value, or nil when the property is absent.
func (t *Target) Read() any {
	v, _ := t.object.Lookup(t.key)
	return v
}

// Write assigns v when the property exists. Writes to absent properties are
// dropped so that bindings never create state the host did not declare.
func (t *Target) Write(v any) {
	if !t.object.Has(t.key) {
		return
	}
	t.object.Set(t.key, v)
}
