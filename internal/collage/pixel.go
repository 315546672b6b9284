package collage

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxChannel is the largest value any color channel of a Pixel can hold.
const MaxChannel = 255

// Pixel is an RGB color value with an alpha channel.
//
// Pixels are plain values: every transform returns a new Pixel and no method
// mutates its receiver. The alpha channel is 255 (opaque) for every pixel
// read from a raster file; only images imported from formats with
// transparency carry other values.
type Pixel struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// White is the color every layer canvas starts with.
var White = Pixel{R: 255, G: 255, B: 255, A: 255}

// NewPixel builds an opaque pixel, clamping each channel to [0, MaxChannel].
func NewPixel(r, g, b int) Pixel {
	return Pixel{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b), A: MaxChannel}
}

// NewPixelAlpha is NewPixel with an explicit alpha channel.
func NewPixelAlpha(r, g, b, a int) Pixel {
	p := NewPixel(r, g, b)
	p.A = clampChannel(a)
	return p
}

// Red returns the red channel.
func (p Pixel) Red() int { return int(p.R) }

// Green returns the green channel.
func (p Pixel) Green() int { return int(p.G) }

// Blue returns the blue channel.
func (p Pixel) Blue() int { return int(p.B) }

// Alpha returns the alpha channel.
func (p Pixel) Alpha() int { return int(p.A) }

// MaxChannel returns the channel ceiling, which is always 255.
func (p Pixel) MaxChannel() int { return MaxChannel }

// Value returns the largest of the three color channels.
func (p Pixel) Value() int {
	return max(int(p.R), int(p.G), int(p.B))
}

// Intensity returns the floored mean of the three color channels.
func (p Pixel) Intensity() int {
	return (int(p.R) + int(p.G) + int(p.B)) / 3
}

// Luma returns the Rec. 709 weighted brightness, truncated to an integer.
func (p Pixel) Luma() int {
	return int(0.2126*float64(p.R) + 0.7152*float64(p.G) + 0.0722*float64(p.B))
}

// IsWhite reports whether all three color channels are at MaxChannel.
func (p Pixel) IsWhite() bool {
	return p.R == MaxChannel && p.G == MaxChannel && p.B == MaxChannel
}

// HSL converts the pixel to hue (degrees, [0,360)), saturation ([0,1]) and
// lightness ([0,1]). Achromatic pixels report a hue and saturation of zero.
func (p Pixel) HSL() (h, s, l float64) {
	return p.colorful().Hsl()
}

// Hex returns the color as "#rrggbb", alpha excluded.
func (p Pixel) Hex() string {
	return p.colorful().Hex()
}

func (p Pixel) String() string {
	return fmt.Sprintf("%d %d %d", p.R, p.G, p.B)
}

func (p Pixel) colorful() colorful.Color {
	return colorful.Color{
		R: float64(p.R) / MaxChannel,
		G: float64(p.G) / MaxChannel,
		B: float64(p.B) / MaxChannel,
	}
}

// Composite returns source laid over backdrop using Porter-Duff "source over"
// alpha compositing. When both pixels have the same color the backdrop is
// returned unchanged, whatever either alpha is.
//
// With a as the source alpha and b as the backdrop alpha (both in [0,1]):
//
//	alpha = a + b*(1-a)
//	color = (src*a + dst*b*(1-a)) / alpha
//
// An opaque source therefore replaces the backdrop entirely.
func Composite(backdrop, source Pixel) Pixel {
	if backdrop.R == source.R && backdrop.G == source.G && backdrop.B == source.B {
		return backdrop
	}

	sa := float64(source.A) / MaxChannel
	ba := float64(backdrop.A) / MaxChannel
	outA := sa + ba*(1-sa)
	if outA == 0 {
		return Pixel{}
	}

	mix := func(src, dst uint8) int {
		return int((float64(src)*sa + float64(dst)*ba*(1-sa)) / outA)
	}

	return NewPixelAlpha(
		mix(source.R, backdrop.R),
		mix(source.G, backdrop.G),
		mix(source.B, backdrop.B),
		int(outA*MaxChannel+0.5),
	)
}

// clampChannel constrains an integer channel value to [0, MaxChannel].
func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > MaxChannel {
		return MaxChannel
	}
	return uint8(v)
}
