package collage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// RasterTag is the magic token that opens every plain-text raster file.
const RasterTag = "P3"

// maxRasterLine bounds a single line of a raster file. Writers that put the
// whole pixel dump on one line still fit comfortably.
const maxRasterLine = 64 * 1024 * 1024

// DecodeRaster reads a plain-text raster:
//
//	P3
//	<width> <height>
//	<maxValue>
//	<r> <g> <b> ...
//
// Lines that are blank or start with '#' are skipped; the remaining tokens
// may be separated by any whitespace. Exactly width*height (r,g,b) triples
// are read in row-major order. Channel values are clamped to [0,255].
//
// Errors wrap ErrInvalidFormat. Dimensions above MaxPixels are rejected
// before any pixel is read. A token missing before end of input
// additionally wraps io.ErrUnexpectedEOF.
func DecodeRaster(r io.Reader) (*Image, error) {
	return decodeRaster(r, false)
}

// DecodeRasterLenient is DecodeRaster without the missing-token check on
// pixel data: a channel whose token is missing or not an integer keeps the
// last value read for that channel, and once a non-integer token is met no
// further tokens are consumed. The tag and dimensions are still required.
//
// This mirrors the forgiving loader older project files were written
// against; prefer DecodeRaster for anything new.
func DecodeRasterLenient(r io.Reader) (*Image, error) {
	return decodeRaster(r, true)
}

func decodeRaster(r io.Reader, lenient bool) (*Image, error) {
	toks, err := newTokenizer(r)
	if err != nil {
		return nil, err
	}

	tag, ok := toks.next()
	if !ok {
		return nil, fmt.Errorf("%w: empty raster", ErrInvalidFormat)
	}
	if tag != RasterTag {
		return nil, fmt.Errorf("%w: raster must begin with %s, got %q", ErrInvalidFormat, RasterTag, tag)
	}

	width, err := toks.nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := toks.nextInt("height")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: raster dimensions %dx%d must be positive", ErrInvalidFormat, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: raster dimensions %dx%d exceed %d pixels", ErrInvalidFormat, width, height, MaxPixels)
	}
	maxValue, err := toks.nextInt("max value")
	if err != nil {
		return nil, err
	}
	if !lenient && toks.remaining() < 3*width*height {
		return nil, fmt.Errorf("%w: %dx%d raster needs %d channel values, found %d: %w",
			ErrInvalidFormat, width, height, 3*width*height, toks.remaining(), io.ErrUnexpectedEOF)
	}

	pixels := make([]Pixel, width*height)
	var rgb [3]int
	for i := range pixels {
		for c := range rgb {
			if lenient {
				if v, ok := toks.peekInt(); ok {
					toks.next()
					rgb[c] = v
				}
				continue
			}
			if rgb[c], err = toks.nextInt("pixel channel"); err != nil {
				return nil, fmt.Errorf("pixel %d: %w", i, err)
			}
		}
		pixels[i] = NewPixel(rgb[0], rgb[1], rgb[2])
	}

	return NewImage("", width, height, maxValue, pixels)
}

// EncodeRaster writes img in the canonical raster layout: the tag, then
// "width height", then the max value, then every channel of every pixel on
// its own line in row-major order.
func EncodeRaster(w io.Writer, img *Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", RasterTag, img.Width(), img.Height(), img.MaxValue())
	for row := 0; row < img.Height(); row++ {
		for col := 0; col < img.Width(); col++ {
			p := img.At(row, col)
			fmt.Fprintf(bw, "%d\n%d\n%d\n", p.R, p.G, p.B)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// ReadRasterFile decodes the raster file at path. A missing file wraps
// ErrNotFound.
func ReadRasterFile(path string) (*Image, error) {
	return readRasterFile(path, DecodeRaster)
}

// ReadRasterFileLenient is ReadRasterFile using DecodeRasterLenient.
func ReadRasterFileLenient(path string) (*Image, error) {
	return readRasterFile(path, DecodeRasterLenient)
}

func readRasterFile(path string, decode func(io.Reader) (*Image, error)) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: raster file %q", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to open raster: %w", ErrIO, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// WriteRasterFile encodes img to path, creating or truncating the file.
func WriteRasterFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create raster: %w", ErrIO, err)
	}
	if err := EncodeRaster(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// LoadRaster reads the raster file at path and registers it as name.
func (p *Project) LoadRaster(path, name string) (*Image, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty image name", ErrInvalidArgument)
	}
	img, err := ReadRasterFile(path)
	if err != nil {
		return nil, err
	}
	img = img.WithName(name)
	p.images[name] = img
	return img, nil
}

// SaveRaster writes the registered image name to path.
func (p *Project) SaveRaster(path, name string) error {
	img, err := p.Image(name)
	if err != nil {
		return err
	}
	return WriteRasterFile(path, img)
}

// tokenizer splits the non-comment lines of a raster into tokens.
type tokenizer struct {
	tokens []string
	pos    int
}

func newTokenizer(r io.Reader) (*tokenizer, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRasterLine)

	t := &tokenizer{}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		t.tokens = append(t.tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read raster: %w", ErrInvalidFormat, err)
	}
	return t, nil
}

func (t *tokenizer) next() (string, bool) {
	if t.pos >= len(t.tokens) {
		return "", false
	}
	tok := t.tokens[t.pos]
	t.pos++
	return tok, true
}

// remaining reports how many tokens are left unread.
func (t *tokenizer) remaining() int { return len(t.tokens) - t.pos }

func (t *tokenizer) peekInt() (int, bool) {
	if t.pos >= len(t.tokens) {
		return 0, false
	}
	v, err := strconv.Atoi(t.tokens[t.pos])
	return v, err == nil
}

// nextInt consumes the next token as an integer. what names the field in errors.
func (t *tokenizer) nextInt(what string) (int, error) {
	tok, ok := t.next()
	if !ok {
		return 0, fmt.Errorf("%w: missing %s: %w", ErrInvalidFormat, what, io.ErrUnexpectedEOF)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidFormat, what, tok)
	}
	return v, nil
}
