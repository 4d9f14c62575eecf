package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// receive waits for the next value on out.
func receive(t *testing.T, out <-chan []byte, timeout time.Duration) []byte {
	t.Helper()
	select {
	case data, ok := <-out:
		if !ok {
			t.Fatal("channel closed")
		}
		return data
	case <-time.After(timeout):
		t.Fatal("timeout waiting for contents")
	}
	return nil
}

// writeTemp writes content to name in a fresh temp directory.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

// replaceFile swaps path for content through a rename, the way editors save.
func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("failed to rename file: %v", err)
	}
}
