package collage

import "math"

// HSLToPixel converts hue (degrees, [0,360)), saturation ([0,1]) and
// lightness ([0,1]) back to an opaque Pixel.
//
// Each channel is f(n) * 255 truncated toward zero, where
//
//	k    = (n + h/30) mod 12
//	a    = s * min(l, 1-l)
//	f(n) = l - a * max(-1, min(k-3, 9-k, 1))
//
// evaluated at n = 0, 8 and 4 for red, green and blue. Truncation means a
// round trip through Pixel.HSL may land one below the original channel.
func HSLToPixel(h, s, l float64) Pixel {
	f := func(n float64) int {
		k := math.Mod(n+h/30, 12)
		a := s * math.Min(l, 1-l)
		return int((l - a*math.Max(-1, min(k-3, 9-k, 1))) * MaxChannel)
	}
	return NewPixel(f(0), f(8), f(4))
}
