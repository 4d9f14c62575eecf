package knob

import "fmt"

// Preset is a flat snapshot of input targets keyed by preset key.
type Preset map[string]any

// ExportPreset reads every target into a Preset. Targets sharing a preset
// key overwrite each other in order.
func ExportPreset(targets []*Target) Preset {
	p := make(Preset, len(targets))
	for _, t := range targets {
		p[t.PresetKey()] = t.Read()
	}
	return p
}

// ImportPreset writes preset values directly to the matching targets.
// Targets without a matching key are left untouched. The write bypasses
// binding readers, writers and constraints: callers must Read each binding
// afterwards so values catch up.
func ImportPreset(targets []*Target, preset Preset) {
	for _, t := range targets {
		v, ok := preset[t.PresetKey()]
		if !ok {
			continue
		}
		t.Write(v)
	}
}

// MarshalPreset serializes p with codec.
func MarshalPreset(codec Codec, p Preset) ([]byte, error) {
	data, err := codec.Marshal(map[string]any(p))
	if err != nil {
		return nil, fmt.Errorf("marshal preset: %w", err)
	}
	return data, nil
}

// UnmarshalPreset deserializes a preset with codec. Only flat objects are
// accepted at the top level; values keep whatever shape the codec yields.
func UnmarshalPreset(codec Codec, data []byte) (Preset, error) {
	var m map[string]any
	if err := codec.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal preset: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return Preset(m), nil
}
