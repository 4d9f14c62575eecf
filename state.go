package knob

// State is the health of a Loader.
type State int32

const (
	// StateLoading means no preset has been processed yet.
	StateLoading State = iota

	// StateHealthy means the last preset was applied.
	StateHealthy

	// StateDegraded means the last change failed to decode or apply. The
	// previously applied preset is still current.
	StateDegraded

	// StateEmpty means the first preset failed and none has been applied
	// since. The loader keeps watching.
	StateEmpty
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateHealthy:
		return "healthy"
	case StateDegraded:
		return "degraded"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
