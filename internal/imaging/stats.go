package imaging

import (
	"github.com/cenkalti/dominantcolor"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/collage-mcp/internal/collage"
)

// PaletteEntry is one color of an image's dominant palette.
type PaletteEntry struct {
	Hex    string  `json:"hex"`    // Hex format "#RRGGBB"
	Weight float64 `json:"weight"` // Share of the image (0-1)
}

// ImageStats summarizes a registered image.
type ImageStats struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxValue int    `json:"max_value"`

	// Palette holds up to the requested number of dominant colors, most
	// prominent first.
	Palette []PaletteEntry `json:"palette"`

	// LumaMean and LumaStdDev describe the distribution of Pixel.Luma over
	// every pixel. LumaStdDev is the sample standard deviation and is 0 for
	// single-pixel images.
	LumaMean   float64 `json:"luma_mean"`
	LumaStdDev float64 `json:"luma_stddev"`
}

// Describe computes dimensions, a dominant color palette of at most
// paletteSize entries, and luma statistics for img.
func Describe(img *collage.Image, paletteSize int) *ImageStats {
	if paletteSize <= 0 {
		paletteSize = 5
	}

	luma := make([]float64, 0, img.Width()*img.Height())
	for row := 0; row < img.Height(); row++ {
		for col := 0; col < img.Width(); col++ {
			luma = append(luma, float64(img.At(row, col).Luma()))
		}
	}
	mean, std := stat.MeanStdDev(luma, nil)
	if len(luma) < 2 {
		std = 0
	}

	colors := dominantcolor.FindWeight(ToNRGBA(img), paletteSize)
	palette := make([]PaletteEntry, 0, len(colors))
	for _, c := range colors {
		palette = append(palette, PaletteEntry{
			Hex:    dominantcolor.Hex(c.RGBA),
			Weight: c.Weight,
		})
	}

	return &ImageStats{
		Name:       img.Name(),
		Width:      img.Width(),
		Height:     img.Height(),
		MaxValue:   img.MaxValue(),
		Palette:    palette,
		LumaMean:   mean,
		LumaStdDev: std,
	}
}
