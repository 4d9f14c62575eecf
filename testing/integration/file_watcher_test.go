package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/zoobzio/knob"
)

func TestFileWatcher_EmitsInitialContents(t *testing.T) {
	path := writeTemp(t, "preset.json", `{"a": 1}`)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := knob.NewFileWatcher(path).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if data := receive(t, out, 200*time.Millisecond); string(data) != `{"a": 1}` {
		t.Errorf("unexpected initial contents %q", data)
	}
}

func TestFileWatcher_EventuallySeesLatestValue(t *testing.T) {
	path := writeTemp(t, "preset.json", "v1")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := knob.NewFileWatcher(path).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	receive(t, out, 200*time.Millisecond)

	if err := os.WriteFile(path, []byte("final"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	// Truncation may surface as an intermediate empty read.
	var lastSeen string
	timeout := time.After(time.Second)
	for {
		select {
		case data := <-out:
			lastSeen = string(data)
			if lastSeen == "final" {
				return
			}
		case <-timeout:
			t.Fatalf("timeout: last seen %q, expected 'final'", lastSeen)
		}
	}
}

func TestFileWatcher_SeesRenameSave(t *testing.T) {
	path := writeTemp(t, "preset.json", "v1")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := knob.NewFileWatcher(path).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	receive(t, out, 200*time.Millisecond)

	replaceFile(t, path, "v2")

	timeout := time.After(time.Second)
	for {
		select {
		case data := <-out:
			if string(data) == "v2" {
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for renamed contents")
		}
	}
}

func TestFileWatcher_ClosesOnContextCancel(t *testing.T) {
	path := writeTemp(t, "preset.json", "initial")

	ctx, cancel := context.WithCancel(context.Background())
	out, err := knob.NewFileWatcher(path).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	receive(t, out, 200*time.Millisecond)

	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(500 * time.Millisecond):
		t.Error("timeout waiting for channel close")
	}
}

func TestFileWatcher_ErrorOnMissingDirectory(t *testing.T) {
	_, err := knob.NewFileWatcher("/nonexistent/path/preset.json").Watch(context.Background())
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
