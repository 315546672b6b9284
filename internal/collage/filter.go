package collage

import (
	"fmt"
	"strings"
)

// Filter identifies one per-pixel transform of the filter catalog.
//
// A Filter is selected once, usually by ParseFilter, and then turned into a
// PixelFunc that Apply runs over every pixel of a source image.
type Filter int

const (
	// Normal copies every pixel unchanged.
	Normal Filter = iota
	// RedComponent keeps only the red slot, filled from the source's blue
	// channel: (b, 0, 0).
	RedComponent
	// GreenComponent keeps only the green channel: (0, g, 0).
	GreenComponent
	// BlueComponent keeps only the blue channel: (0, 0, b).
	BlueComponent
	// BrightenValue adds Pixel.Value to each channel.
	BrightenValue
	// DarkenValue subtracts Pixel.Value from each channel.
	DarkenValue
	// BrightenLuma adds Pixel.Luma to each channel.
	BrightenLuma
	// DarkenLuma subtracts Pixel.Luma from each channel.
	DarkenLuma
	// BrightenIntensity adds Pixel.Intensity to each channel.
	BrightenIntensity
	// DarkenIntensity subtracts Pixel.Intensity from each channel.
	DarkenIntensity
	// DarkenMultiply multiplies HSL lightness by the composite factor dL.
	DarkenMultiply
	// BrightenScreen screens HSL lightness with dL: l' = 1 - (1-l)(1-dL).
	BrightenScreen
	// Difference takes the per-channel absolute difference against the
	// composite image.
	Difference
)

var filterNames = [...]string{
	Normal:            "normal",
	RedComponent:      "red-component",
	GreenComponent:    "green-component",
	BlueComponent:     "blue-component",
	BrightenValue:     "brighten-value",
	DarkenValue:       "darken-value",
	BrightenLuma:      "brighten-luma",
	DarkenLuma:        "darken-luma",
	BrightenIntensity: "brighten-intensity",
	DarkenIntensity:   "darken-intensity",
	DarkenMultiply:    "darken-multiply",
	BrightenScreen:    "brighten-screen",
	Difference:        "difference",
}

// Filters returns the whole catalog in a fixed order.
func Filters() []Filter {
	out := make([]Filter, len(filterNames))
	for i := range filterNames {
		out[i] = Filter(i)
	}
	return out
}

// ParseFilter looks up a filter by its catalog name, ignoring case and
// surrounding whitespace.
func ParseFilter(name string) (Filter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range filterNames {
		if n == key {
			return Filter(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown filter %q", ErrInvalidArgument, name)
}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

// Valid reports whether f is part of the catalog.
func (f Filter) Valid() bool {
	return f >= 0 && int(f) < len(filterNames)
}

// UsesComposite reports whether the filter reads the composite image from
// the bottom-most layer in addition to its source.
func (f Filter) UsesComposite() bool {
	switch f {
	case DarkenMultiply, BrightenScreen, Difference:
		return true
	}
	return false
}

// PixelFunc computes the output pixel for (row, col) of src.
type PixelFunc func(src *Image, row, col int) Pixel

// PixelFunc returns the per-pixel rule of f. Filters for which UsesComposite
// is true require a non-nil composite image; the others ignore it.
func (f Filter) PixelFunc(composite *Image) (PixelFunc, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: unknown filter %v", ErrInvalidArgument, f)
	}
	if f.UsesComposite() && composite == nil {
		return nil, fmt.Errorf("%w: filter %s needs a composite image", ErrInvalidArgument, f)
	}

	switch f {
	case Normal:
		return func(src *Image, row, col int) Pixel {
			return src.At(row, col)
		}, nil
	case RedComponent:
		return func(src *Image, row, col int) Pixel {
			return NewPixel(src.At(row, col).Blue(), 0, 0)
		}, nil
	case GreenComponent:
		return func(src *Image, row, col int) Pixel {
			return NewPixel(0, src.At(row, col).Green(), 0)
		}, nil
	case BlueComponent:
		return func(src *Image, row, col int) Pixel {
			return NewPixel(0, 0, src.At(row, col).Blue())
		}, nil
	case BrightenValue:
		return shift(Pixel.Value, 1), nil
	case DarkenValue:
		return shift(Pixel.Value, -1), nil
	case BrightenLuma:
		return shift(Pixel.Luma, 1), nil
	case DarkenLuma:
		return shift(Pixel.Luma, -1), nil
	case BrightenIntensity:
		return shift(Pixel.Intensity, 1), nil
	case DarkenIntensity:
		return shift(Pixel.Intensity, -1), nil
	case DarkenMultiply:
		return func(src *Image, row, col int) Pixel {
			p := src.At(row, col)
			h, s, l := p.HSL()
			return HSLToPixel(h, s, l*lightnessFactor(p, composite))
		}, nil
	case BrightenScreen:
		return func(src *Image, row, col int) Pixel {
			p := src.At(row, col)
			h, s, l := p.HSL()
			return HSLToPixel(h, s, 1-(1-l)*(1-lightnessFactor(p, composite)))
		}, nil
	default: // Difference
		return func(src *Image, row, col int) Pixel {
			p, q := src.At(row, col), composite.At(row, col)
			return NewPixel(absDiff(p.R, q.R), absDiff(p.G, q.G), absDiff(p.B, q.B))
		}, nil
	}
}

// Apply runs fn over every pixel of src and returns a new image named dest
// with the same dimensions and max value. Filters act on the color channels
// only; each output pixel keeps the alpha of its source pixel. src is left
// untouched.
func Apply(src *Image, dest string, fn PixelFunc) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source image", ErrInvalidArgument)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: nil filter function", ErrInvalidArgument)
	}
	return NewImageFunc(dest, src.Width(), src.Height(), src.MaxValue(), func(row, col int) Pixel {
		p := fn(src, row, col)
		p.A = src.At(row, col).A
		return p
	})
}

// shift adds sign*metric(p) to every channel of p, clamping the result.
func shift(metric func(Pixel) int, sign int) PixelFunc {
	return func(src *Image, row, col int) Pixel {
		p := src.At(row, col)
		d := sign * metric(p)
		return NewPixel(p.Red()+d, p.Green()+d, p.Blue()+d)
	}
}

// lightnessFactor is the dL used by the multiply and screen filters: 1 for a
// white source pixel, otherwise the composite's max value divided by 255 in
// integer arithmetic, so any ceiling below 255 yields 0.
func lightnessFactor(p Pixel, composite *Image) float64 {
	if p.IsWhite() {
		return 1
	}
	return float64(composite.MaxValue() / MaxChannel)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
