package collage

import "errors"

// Error classes returned by the collage core. Every error produced by this
// package wraps exactly one of them, so callers can branch with errors.Is and
// still print the wrapped message, which names the offending value.
var (
	// ErrInvalidArgument reports bad dimensions, unknown filter names, empty
	// identifiers or out-of-range coordinates.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound reports an unknown image or layer, or a missing file.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFormat reports a malformed raster file.
	ErrInvalidFormat = errors.New("invalid raster format")

	// ErrIO reports a failure writing a raster file.
	ErrIO = errors.New("i/o error")

	// ErrIndexOutOfRange reports a filter that needs the composite image
	// while the project has no layers.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoProject reports an operation attempted before a project exists.
	ErrNoProject = errors.New("no project created")
)
