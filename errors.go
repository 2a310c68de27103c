package oktay2d

import "errors"

var (
	// ErrInvalidArgument is returned when a public entry point receives a
	// value of the wrong shape. No drawing state is touched when it is returned.
	ErrInvalidArgument = errors.New("oktay2d: invalid argument")

	// ErrNotFound is returned by Renderer.Remove when no drawable with the
	// given id is registered. It is safe to ignore.
	ErrNotFound = errors.New("oktay2d: not found")

	// ErrUnsupportedCapability is returned when a value handed to the
	// renderer does not implement Drawable.
	ErrUnsupportedCapability = errors.New("oktay2d: unsupported capability")
)
