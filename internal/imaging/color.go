package imaging

import (
	"fmt"
	"strings"

	"github.com/ironsheep/collage-mcp/internal/collage"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// Alongside the channels it reports the three brightness metrics the
// brighten/darken filters add or subtract, so a caller can predict a
// filter's effect on a pixel before running it.
type ColorResult struct {
	Hex       string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB       RGBColor  `json:"rgb"`  // RGB components
	RGBA      RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL       HSLColor  `json:"hsl"`  // HSL representation
	Value     int       `json:"value"`
	Intensity int       `json:"intensity"`
	Luma      int       `json:"luma"`
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The collage image to sample from.
//   - x: X coordinate (0-based column, 0 = leftmost pixel).
//   - y: Y coordinate (0-based row, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil (wrapping collage.ErrInvalidArgument) if the
//     coordinates are outside the image.
func SampleColor(img *collage.Image, x, y int) (*ColorResult, error) {
	p, err := img.Pixel(y, x)
	if err != nil {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds: %w", x, y, err)
	}
	return colorResult(p), nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"` // Optional label (empty if not provided)
	X     int         `json:"x"`               // X coordinate that was sampled
	Y     int         `json:"y"`               // Y coordinate that was sampled
	Color ColorResult `json:"color"`           // The color at this location
}

// MultiColorResult contains color samples from multiple points.
//
// Results are returned in the same order as the input points.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"` // Color samples in input order
}

// SampleColorsMulti extracts colors at multiple pixel coordinates in a single call.
//
// On error, no partial results are returned.
func SampleColorsMulti(img *collage.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// colorResult fills every representation of p. HSL is rounded down to whole
// degrees and percentages.
func colorResult(p collage.Pixel) *ColorResult {
	h, s, l := p.HSL()
	return &ColorResult{
		Hex:       strings.ToUpper(p.Hex()),
		RGB:       RGBColor{R: p.R, G: p.G, B: p.B},
		RGBA:      RGBAColor{R: p.R, G: p.G, B: p.B, A: p.A},
		HSL:       HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
		Value:     p.Value(),
		Intensity: p.Intensity(),
		Luma:      p.Luma(),
	}
}
