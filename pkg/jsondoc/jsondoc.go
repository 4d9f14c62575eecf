// Package jsondoc provides a knob.Object over a JSON document, so bindings
// can read and write properties of a JSON file by path.
//
// Keys are gjson/sjson paths: "speed" addresses a top level property and
// "camera.fov" a nested one.
package jsondoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/zoobzio/knob"
)

// ErrInvalidJSON is returned when a document is not valid JSON.
var ErrInvalidJSON = errors.New("invalid json document")

// Document is a JSON document addressed by path. It is safe for concurrent
// use.
type Document struct {
	mu   sync.RWMutex
	data []byte
}

// Ensure Document implements knob.Object.
var _ knob.Object = (*Document)(nil)

// New creates a Document from data.
func New(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return &Document{data: append([]byte(nil), data...)}, nil
}

// Load reads a Document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := New(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Lookup returns the decoded value at key: float64, string, bool, nil,
// map[string]any or []any.
func (d *Document) Lookup(key string) (any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r := gjson.GetBytes(d.data, key)
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

// Has reports whether key resolves.
func (d *Document) Has(key string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return gjson.GetBytes(d.data, key).Exists()
}

// Set writes v at key. Values sjson cannot encode are dropped.
func (d *Document) Set(key string, v any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, err := sjson.SetBytes(d.data, key, v)
	if err != nil {
		return
	}
	d.data = data
}

// Replace swaps the whole document for data.
func (d *Document) Replace(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidJSON
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = append([]byte(nil), data...)
	return nil
}

// Bytes returns a copy of the document.
func (d *Document) Bytes() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]byte(nil), d.data...)
}

// Save writes the document to path through a temporary file in the same
// directory, so watchers never see a partial write.
func (d *Document) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsondoc-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(d.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
