package knob

import "github.com/zoobzio/capitan"

// Field keys for Pane and Loader events.
var (
	// KeyKind is the binding kind: "input" or "monitor".
	KeyKind = capitan.NewStringKey("kind")

	// KeyTargetKey is the bound property name.
	KeyTargetKey = capitan.NewStringKey("target_key")

	// KeyPresetKey is the preset key of a target.
	KeyPresetKey = capitan.NewStringKey("preset_key")

	// KeyPluginID is the id of the plugin that created a binding.
	KeyPluginID = capitan.NewStringKey("plugin_id")

	// KeyValue is a formatted raw value.
	KeyValue = capitan.NewStringKey("value")

	// KeyCount is the number of bindings or preset entries involved.
	KeyCount = capitan.NewIntKey("count")

	// KeyState is the current state of the Loader.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
