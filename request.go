package knob

// Request carries one preset change through the loader pipeline.
type Request struct {
	// Previous is the last applied preset, nil on the first load.
	Previous Preset

	// Current is the decoded preset. Middleware may replace or edit it
	// before it reaches the apply function.
	Current Preset

	// Raw is what the watcher delivered.
	Raw []byte
}

// Changed returns the preset keys whose values differ between Previous and
// Current, including keys present on one side only.
func (r *Request) Changed() []string {
	var keys []string
	for k, v := range r.Current {
		old, ok := r.Previous[k]
		if !ok || !Equals(old, v) {
			keys = append(keys, k)
		}
	}
	for k := range r.Previous {
		if _, ok := r.Current[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}
