package collage

import "fmt"

// Image is an immutable rectangular grid of pixels.
//
// Pixels are stored row-major and addressed as (row, col), both zero-based.
// MaxValue is the channel ceiling declared by the source (for raster files,
// the header value); it is carried through every filter untouched and is
// independent of the 255 channel cap.
//
// An Image is never modified after construction. Filters, crops and renders
// always produce a new Image, so an Image may be shared freely between the
// project registry and any number of layers.
type Image struct {
	name     string
	width    int
	height   int
	maxValue int
	pixels   []Pixel
}

// MaxPixels bounds width*height of any Image.
const MaxPixels = 1 << 26

// checkDimensions rejects non-positive sizes and sizes whose pixel count
// exceeds MaxPixels, including products that would overflow int.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: image dimensions %dx%d must be positive", ErrInvalidArgument, width, height)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("%w: image dimensions %dx%d exceed %d pixels", ErrInvalidArgument, width, height, MaxPixels)
	}
	return nil
}

// NewImage builds an image from a row-major pixel slice.
//
// Parameters:
//   - name: Name of the image. May be empty until the image is registered.
//   - width, height: Dimensions in pixels. Both must be positive.
//   - maxValue: Declared channel ceiling.
//   - pixels: Exactly width*height pixels, row-major. The slice is copied.
//
// Returns an error wrapping ErrInvalidArgument if the dimensions are not
// positive, exceed MaxPixels, or do not match the number of pixels.
func NewImage(name string, width, height, maxValue int, pixels []Pixel) (*Image, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %d pixels do not fill a %dx%d image", ErrInvalidArgument, len(pixels), width, height)
	}

	buf := make([]Pixel, len(pixels))
	copy(buf, pixels)

	return &Image{
		name:     name,
		width:    width,
		height:   height,
		maxValue: maxValue,
		pixels:   buf,
	}, nil
}

// NewImageFunc builds an image by calling fn for every (row, col).
func NewImageFunc(name string, width, height, maxValue int, fn func(row, col int) Pixel) (*Image, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	pixels := make([]Pixel, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			pixels[row*width+col] = fn(row, col)
		}
	}
	return &Image{
		name:     name,
		width:    width,
		height:   height,
		maxValue: maxValue,
		pixels:   pixels,
	}, nil
}

// Name returns the image name.
func (img *Image) Name() string { return img.name }

// Width returns the number of columns.
func (img *Image) Width() int { return img.width }

// Height returns the number of rows.
func (img *Image) Height() int { return img.height }

// MaxValue returns the declared channel ceiling.
func (img *Image) MaxValue() int { return img.maxValue }

// In reports whether (row, col) lies inside the image.
func (img *Image) In(row, col int) bool {
	return row >= 0 && row < img.height && col >= 0 && col < img.width
}

// At returns the pixel at (row, col). Coordinates outside the image yield the
// zero (fully transparent black) Pixel, like image.Image.At.
func (img *Image) At(row, col int) Pixel {
	if !img.In(row, col) {
		return Pixel{}
	}
	return img.pixels[row*img.width+col]
}

// Pixel is At with bounds checking.
func (img *Image) Pixel(row, col int) (Pixel, error) {
	if !img.In(row, col) {
		return Pixel{}, fmt.Errorf("%w: pixel (%d,%d) outside %dx%d image %q",
			ErrInvalidArgument, row, col, img.width, img.height, img.name)
	}
	return img.pixels[row*img.width+col], nil
}

// WithName returns an image sharing this image's pixels under another name.
func (img *Image) WithName(name string) *Image {
	if name == img.name {
		return img
	}
	cp := *img
	cp.name = name
	return &cp
}

// Equal reports whether two images have the same dimensions, max value and
// pixels. Names are not compared.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	if img.width != other.width || img.height != other.height || img.maxValue != other.maxValue {
		return false
	}
	for i := range img.pixels {
		if img.pixels[i] != other.pixels[i] {
			return false
		}
	}
	return true
}
