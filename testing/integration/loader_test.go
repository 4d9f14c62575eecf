package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zoobzio/knob"
	"github.com/zoobzio/knob/pkg/jsondoc"
	knobtest "github.com/zoobzio/knob/testing"
)

// Hot reload: preset file -> FileWatcher -> Loader -> Pane -> document.
func TestLoader_HotReloadIntoPane(t *testing.T) {
	doc, err := jsondoc.New([]byte(`{"speed": 1, "mode": "walk"}`))
	if err != nil {
		t.Fatal(err)
	}

	pane := knob.New()
	defer pane.Do(pane.Dispose)

	max := 10.0
	if _, err := pane.AddInput(doc, "speed", knob.InputParams{Max: &max}); err != nil {
		t.Fatalf("AddInput(speed): %v", err)
	}
	if _, err := pane.AddInput(doc, "mode", knob.InputParams{}); err != nil {
		t.Fatalf("AddInput(mode): %v", err)
	}

	presetPath := writeTemp(t, "preset.yaml", "speed: 4\nmode: run\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := knob.NewLoader(
		knob.NewFileWatcher(presetPath),
		func(_ context.Context, _, curr knob.Preset) error {
			pane.Do(func() { pane.ImportPreset(curr) })
			return nil
		},
	).Codec(knob.YAMLCodec{}).Debounce(20 * time.Millisecond)

	if err := loader.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	knobtest.RequireState(t, loader, knob.StateHealthy)

	if v, _ := doc.Lookup("speed"); v != float64(4) {
		t.Errorf("expected speed 4, got %v", v)
	}

	// Out of range values are clamped by the binding on refresh.
	replaceFile(t, presetPath, "speed: 50\nmode: fly\n")
	ok := knobtest.WaitFor(t, 2*time.Second, func() bool {
		var v any
		pane.Do(func() { v, _ = doc.Lookup("mode") })
		return v == "fly"
	})
	if !ok {
		t.Fatal("preset change never reached the document")
	}
	if v, _ := doc.Lookup("speed"); v != float64(10) {
		t.Errorf("expected speed clamped to 10, got %v", v)
	}

	// A broken preset degrades the loader and leaves the document alone.
	replaceFile(t, presetPath, "speed: [unclosed\n")
	if !knobtest.WaitForState(t, loader, knob.StateDegraded, 2*time.Second) {
		t.Fatalf("expected degraded state, got %s", loader.State())
	}
	if v, _ := doc.Lookup("mode"); v != "fly" {
		t.Errorf("document changed after bad preset: mode=%v", v)
	}
	knobtest.RequirePreset(t, loader, knob.Preset{"mode": "fly"})
}

func TestPane_ExportImportThroughDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(`{"camera": {"fov": 60}, "pos": {"x": 1, "y": 2}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	doc, err := jsondoc.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	pane := knob.New()
	defer pane.Dispose()

	if _, err := pane.AddInput(doc, "camera.fov", knob.InputParams{PresetKey: "fov"}); err != nil {
		t.Fatalf("AddInput(camera.fov): %v", err)
	}
	c, err := pane.AddInput(doc, "pos", knob.InputParams{})
	if err != nil {
		t.Fatalf("AddInput(pos): %v", err)
	}
	if c.PluginID() != "input-point2d" {
		t.Errorf("expected point2d plugin for {x, y}, got %s", c.PluginID())
	}

	exported := pane.ExportPreset()
	if exported["fov"] != float64(60) {
		t.Errorf("expected fov 60, got %v", exported["fov"])
	}

	pane.ImportPreset(knob.Preset{"fov": 90, "pos": map[string]any{"x": 5, "y": 6}})
	if err := doc.Save(path); err != nil {
		t.Fatal(err)
	}

	reloaded, err := jsondoc.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := reloaded.Lookup("camera.fov"); v != float64(90) {
		t.Errorf("expected fov 90 after import, got %v", v)
	}
	p, _ := knob.InputValue[knob.Point2d](c)
	if got := p.RawValue(); got != (knob.Point2d{X: 5, Y: 6}) {
		t.Errorf("expected point (5, 6), got %+v", got)
	}
}
