/*
Package knob binds live program state to editable and observable values.

A host exposes properties of its own objects (maps, struct pointers or any
Object) and knob keeps a typed Value in sync with each of them. Inputs write
edits back to the property; monitors sample it on a ticker into a fixed-size
history. Presets snapshot every input so a configuration can be saved,
shared and restored.

# Values

A Value is an observable container. Observable applies an optional
Constraint and only emits when the constrained value differs:

	speed := knob.NewValue(1.0,
	    knob.WithConstraint[float64](knob.NumberConstraint(knob.NumberParams{Max: &max})),
	)
	speed.Emitter().On(knob.EventChange, func(ev knob.ChangeEvent[float64]) {
	    fmt.Println("speed", ev.RawValue)
	})
	speed.SetRawValue(12) // clamped to max, emitted once

Constraints compose: Range clamps, Step rounds half up, List snaps to an
option, and Point2d/Point3d constrain each axis. Chain builds a composite
and FindConstraint looks one up by type.

# Panes

A Pane creates bindings through plugins. The first plugin that accepts a
property builds its reader, constraint, writer and controller:

	pane := knob.New()
	defer pane.Dispose()

	state := map[string]any{"speed": 1, "pos": map[string]any{"x": 0, "y": 0}}
	pane.AddInput(state, "speed", knob.InputParams{Min: &zero, Max: &ten})
	pane.AddInput(state, "pos", knob.InputParams{})
	pane.AddMonitor(state, "speed", knob.MonitorParams{View: knob.ViewGraph})

Interval monitors tick on their own goroutine while holding the pane lock.
Any other goroutine touching the pane must go through Do.

# Presets

ExportPreset snapshots inputs by preset key and ImportPreset writes a preset
back and refreshes every binding. Presets serialize with a Codec:

	data, _ := knob.MarshalPreset(knob.YAMLCodec{}, pane.ExportPreset())

A Loader hot-reloads presets from a Watcher, debouncing changes and keeping
the last good preset when one fails to decode or apply:

	loader := knob.NewLoader(knob.NewFileWatcher("preset.yaml"),
	    func(_ context.Context, _, curr knob.Preset) error {
	        pane.Do(func() { pane.ImportPreset(curr) })
	        return nil
	    },
	    knob.WithMiddleware(knob.UseRequireKeys("speed")),
	).Codec(knob.YAMLCodec{})

# Observability

Panes and loaders emit capitan signals (see signals.go and fields.go) and
report to a MetricsProvider. pkg/prometheus provides a Prometheus-backed
provider.

# Testing

Use clockz.FakeClock with WithClock, IntervalTicker or Loader.Clock for
deterministic timing, ManualTicker to drive monitors by hand, and
Loader.SyncMode with NewSyncChannelWatcher to process presets step by step.
*/
package knob
