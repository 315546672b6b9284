// Package imaging connects collage images to ordinary image files.
//
// The collage core only speaks its plain-text raster format. This package
// decodes PNG, JPEG, GIF, BMP, TIFF and WebP files into collage images,
// exports collage images back to PNG, JPEG or BMP, and offers the
// inspection helpers the tool server exposes: cropping, color sampling and
// palette/luma statistics.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Note that collage.Image itself is addressed (row, col), that is (y, x).
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions are
// stateless.
//
// # Error Handling
//
// Errors wrap the collage error classes: collage.ErrNotFound for missing
// files, collage.ErrInvalidFormat for undecodable data,
// collage.ErrInvalidArgument for bad regions or export formats, and
// collage.ErrIO for write failures.
package imaging
