package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/collage-mcp/internal/collage"
)

// ImageCache provides thread-safe caching of decoded binary images to avoid
// redundant disk reads when the same file is imported under several names.
//
// The cache stores decoded image.Image objects keyed by their file path.
// Raster (.ppm) files are never cached; they are read by the collage codec.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Import("/path/to/photo.jpg", "photo", imaging.ImportOptions{MaxWidth: 400})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = project.RegisterImage("photo", img)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves a decoded image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. JPEG files are
// rotated according to their EXIF orientation tag.
//
// # Errors
//
//   - wraps collage.ErrNotFound if the file does not exist
//   - wraps collage.ErrInvalidFormat if the file cannot be decoded
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: image file %q", collage.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to decode image: %w", collage.ErrInvalidFormat, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImportOptions controls how Import converts a file.
type ImportOptions struct {
	// MaxWidth and MaxHeight, when positive, bound the imported image. Larger
	// images are scaled down with Lanczos resampling, keeping aspect ratio.
	MaxWidth  int `json:"max_width,omitempty"`
	MaxHeight int `json:"max_height,omitempty"`

	// Lenient selects the forgiving raster decoder for .ppm files.
	Lenient bool `json:"lenient,omitempty"`
}

// Import reads the file at path into a collage image called name.
//
// Files with a .ppm extension go through the plain-text raster codec and keep
// their declared max value. Every other file is decoded as a binary image;
// its max value is the largest channel value present, as there is no header
// to declare one.
func (c *ImageCache) Import(path, name string, opts ImportOptions) (*collage.Image, error) {
	if isRaster(path) {
		read := collage.ReadRasterFile
		if opts.Lenient {
			read = collage.ReadRasterFileLenient
		}
		img, err := read(path)
		if err != nil {
			return nil, err
		}
		return img.WithName(name), nil
	}

	src, err := c.Load(path)
	if err != nil {
		return nil, err
	}

	maxW, maxH := opts.MaxWidth, opts.MaxHeight
	if maxW > 0 || maxH > 0 {
		b := src.Bounds()
		if maxW <= 0 {
			maxW = b.Dx()
		}
		if maxH <= 0 {
			maxH = b.Dy()
		}
		if b.Dx() > maxW || b.Dy() > maxH {
			src = imaging.Fit(src, maxW, maxH, imaging.Lanczos)
		}
	}

	return FromImage(name, src)
}

// FromImage converts any image.Image to a collage image, keeping
// non-premultiplied alpha. The max value is the largest color channel found.
func FromImage(name string, src image.Image) (*collage.Image, error) {
	nrgba := imaging.Clone(src)
	b := nrgba.Bounds()

	pixels := make([]collage.Pixel, 0, b.Dx()*b.Dy())
	maxValue := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := nrgba.PixOffset(x, y)
			s := nrgba.Pix[i : i+4 : i+4]
			p := collage.NewPixelAlpha(int(s[0]), int(s[1]), int(s[2]), int(s[3]))
			maxValue = max(maxValue, p.Value())
			pixels = append(pixels, p)
		}
	}
	return collage.NewImage(name, b.Dx(), b.Dy(), maxValue, pixels)
}

// ToNRGBA renders a collage image as a standard library image.
func ToNRGBA(img *collage.Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width(), img.Height()))
	for row := 0; row < img.Height(); row++ {
		for col := 0; col < img.Width(); col++ {
			p := img.At(row, col)
			i := out.PixOffset(col, row)
			out.Pix[i+0] = p.R
			out.Pix[i+1] = p.G
			out.Pix[i+2] = p.B
			out.Pix[i+3] = p.A
		}
	}
	return out
}

// Export writes img to path in the format chosen by the file extension:
// .ppm (plain-text raster), .png, .jpg/.jpeg or .bmp.
//
// Returns an error wrapping collage.ErrInvalidArgument for any other
// extension and collage.ErrIO if the file cannot be written.
func Export(path string, img *collage.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", collage.ErrInvalidArgument)
	}
	if isRaster(path) {
		return collage.WriteRasterFile(path, img)
	}

	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(95)
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("%w: unsupported export format %q", collage.ErrInvalidArgument, filepath.Ext(path))
	}

	if err := imgio.Save(path, ToNRGBA(img), enc); err != nil {
		return fmt.Errorf("%w: failed to export image: %w", collage.ErrIO, err)
	}
	return nil
}

func isRaster(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ppm")
}
