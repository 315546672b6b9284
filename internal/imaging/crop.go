package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/collage-mcp/internal/collage"
)

// Crop extracts the rectangle (x1,y1)-(x2,y2) of img as a new image called
// dest, optionally rescaled.
//
// (x1, y1) is inclusive and (x2, y2) exclusive. scale must be positive; a
// scale other than 1 resizes the crop with Lanczos resampling. The declared max
// value of img is carried over.
func Crop(img *collage.Image, x1, y1, x2, y2 int, scale float64, dest string) (*collage.Image, error) {
	if x1 < 0 || y1 < 0 || x2 > img.Width() || y2 > img.Height() {
		return nil, fmt.Errorf("%w: crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			collage.ErrInvalidArgument, x1, y1, x2, y2, img.Width(), img.Height())
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("%w: invalid crop region: x1 must be < x2, y1 must be < y2", collage.ErrInvalidArgument)
	}

	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale %g must be positive", collage.ErrInvalidArgument, scale)
	}

	cropped := imaging.Crop(ToNRGBA(img), image.Rect(x1, y1, x2, y2))

	if scale != 1.0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("%w: scale %g shrinks the crop to nothing", collage.ErrInvalidArgument, scale)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	out, err := FromImage(dest, cropped)
	if err != nil {
		return nil, err
	}
	return collage.NewImageFunc(dest, out.Width(), out.Height(), img.MaxValue(), out.At)
}

// CropQuadrant extracts a named region of img: top-left, top-right,
// bottom-left, bottom-right, top-half, bottom-half, left-half, right-half or
// center (the middle 50%).
func CropQuadrant(img *collage.Image, region string, scale float64, dest string) (*collage.Image, error) {
	w := img.Width()
	h := img.Height()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return nil, fmt.Errorf("%w: unknown region: %s", collage.ErrInvalidArgument, region)
	}

	return Crop(img, x1, y1, x2, y2, scale, dest)
}
