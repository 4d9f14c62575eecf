package knob

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher emits the contents of a preset file whenever it changes.
//
// The parent directory is watched rather than the file, so editors that
// save through a rename are picked up. Writes that leave the contents
// unchanged are not emitted.
type FileWatcher struct {
	path string
}

// NewFileWatcher creates a FileWatcher for path.
func NewFileWatcher(path string) *FileWatcher {
	return &FileWatcher{path: path}
}

// Path returns the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// Watch starts watching. The current contents are emitted first when the
// file exists.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer watcher.Close()

		var last []byte
		emit := func() bool {
			data, err := os.ReadFile(abs)
			if err != nil || (last != nil && bytes.Equal(data, last)) {
				return true
			}
			last = data
			select {
			case out <- data:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if !emit() {
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}
