package knob

import "errors"

var (
	// ErrUnsupportedObject is returned when a value cannot be adapted to an Object.
	ErrUnsupportedObject = errors.New("unsupported object")

	// ErrEmptyValue is returned when a binding target is absent or nil.
	ErrEmptyValue = errors.New("target value is empty")

	// ErrNoMatchingController is returned when no plugin accepts a target.
	ErrNoMatchingController = errors.New("no matching controller for target")

	// ErrInvalidParams is returned when binding parameters fail validation.
	ErrInvalidParams = errors.New("invalid binding parameters")

	// ErrDisposed is returned when a disposed Pane is used.
	ErrDisposed = errors.New("pane is disposed")
)
