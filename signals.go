package knob

import "github.com/zoobzio/capitan"

// Pane lifecycle signals.
var (
	// PaneBindingAdded is emitted when an input or monitor is added to a Pane.
	PaneBindingAdded = capitan.NewSignal(
		"knob.pane.binding.added",
		"Binding added to pane",
	)

	// PaneInputChanged is emitted when a bound input value changes.
	PaneInputChanged = capitan.NewSignal(
		"knob.pane.input.changed",
		"Input value changed",
	)

	// PanePresetImported is emitted after a preset was written and refreshed.
	PanePresetImported = capitan.NewSignal(
		"knob.pane.preset.imported",
		"Preset imported",
	)

	// PanePresetExported is emitted when a preset is exported.
	PanePresetExported = capitan.NewSignal(
		"knob.pane.preset.exported",
		"Preset exported",
	)

	// PaneRefreshed is emitted after every binding was re-read.
	PaneRefreshed = capitan.NewSignal(
		"knob.pane.refreshed",
		"Pane bindings refreshed",
	)

	// PaneDisposed is emitted when a Pane is disposed.
	PaneDisposed = capitan.NewSignal(
		"knob.pane.disposed",
		"Pane disposed",
	)
)

// Loader lifecycle signals.
var (
	// LoaderStarted is emitted when a Loader begins watching.
	LoaderStarted = capitan.NewSignal(
		"knob.loader.started",
		"Preset loader watching started",
	)

	// LoaderStopped is emitted when a Loader stops watching.
	LoaderStopped = capitan.NewSignal(
		"knob.loader.stopped",
		"Preset loader watching stopped",
	)

	// LoaderStateChanged is emitted when a Loader transitions between states.
	LoaderStateChanged = capitan.NewSignal(
		"knob.loader.state.changed",
		"Preset loader state transition",
	)
)

// Preset processing signals.
var (
	// LoaderChangeReceived is emitted when raw data is received from the watcher.
	LoaderChangeReceived = capitan.NewSignal(
		"knob.loader.change.received",
		"Raw preset received from watcher",
	)

	// LoaderDecodeFailed is emitted when the codec cannot decode a preset.
	LoaderDecodeFailed = capitan.NewSignal(
		"knob.loader.decode.failed",
		"Preset decode failed",
	)

	// LoaderApplyFailed is emitted when the pipeline or apply function fails.
	LoaderApplyFailed = capitan.NewSignal(
		"knob.loader.apply.failed",
		"Preset apply failed",
	)

	// LoaderApplySucceeded is emitted when a preset is successfully applied.
	LoaderApplySucceeded = capitan.NewSignal(
		"knob.loader.apply.succeeded",
		"Preset applied successfully",
	)
)
