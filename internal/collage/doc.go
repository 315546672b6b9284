// Package collage implements the layered image model: pixels, immutable
// images, the per-pixel filter catalog, layer canvases and the project that
// ties them together, plus the plain-text raster codec.
//
// # Coordinates
//
// Images are addressed (row, col), zero-based, row-major. Layer placement
// and canvas lookups use (x, y) where x is the column and y the row.
//
// # Ownership
//
// The Project registry is the only owner of images. Layers remember the name
// and offset of each placement and resolve names through the registry when
// they redraw. Images never change after construction: filters, renders and
// codecs always return new ones.
//
// # Errors
//
// Every error wraps one of ErrInvalidArgument, ErrNotFound, ErrInvalidFormat,
// ErrIO, ErrIndexOutOfRange or ErrNoProject. The package never logs.
//
// # Thread Safety
//
// Nothing here locks. A Project must be used by one goroutine at a time.
package collage
