package collage

import (
	"errors"
	"testing"
)

// mustImage builds an image from row-major pixels or fails the test.
func mustImage(t *testing.T, name string, width, height, maxValue int, pixels ...Pixel) *Image {
	t.Helper()
	img, err := NewImage(name, width, height, maxValue, pixels)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	return img
}

// applyFilter runs a filter that does not need a composite image.
func applyFilter(t *testing.T, f Filter, src *Image) *Image {
	t.Helper()
	fn, err := f.PixelFunc(nil)
	if err != nil {
		t.Fatalf("%s.PixelFunc failed: %v", f, err)
	}
	out, err := Apply(src, "out", fn)
	if err != nil {
		t.Fatalf("Apply(%s) failed: %v", f, err)
	}
	return out
}

func TestParseFilter(t *testing.T) {
	for _, f := range Filters() {
		got, err := ParseFilter(f.String())
		if err != nil {
			t.Errorf("ParseFilter(%q) failed: %v", f.String(), err)
			continue
		}
		if got != f {
			t.Errorf("ParseFilter(%q) = %v, want %v", f.String(), got, f)
		}
	}

	if got, err := ParseFilter("  Brighten-Luma "); err != nil || got != BrightenLuma {
		t.Errorf("ParseFilter is not case/space insensitive: got %v, %v", got, err)
	}

	if _, err := ParseFilter("sepia"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseFilter(sepia): got %v, want ErrInvalidArgument", err)
	}
}

func TestFilters_Catalog(t *testing.T) {
	if got := len(Filters()); got != 13 {
		t.Fatalf("catalog size: got %d, want 13", got)
	}
	if Filter(99).Valid() || Filter(-1).Valid() {
		t.Error("out-of-range filters reported valid")
	}
	if got := Filter(99).String(); got != "Filter(99)" {
		t.Errorf("String of unknown filter: got %s", got)
	}
}

func TestFilter_PerPixelRules(t *testing.T) {
	src := mustImage(t, "src", 1, 1, 255, NewPixel(42, 10, 47))

	tests := []struct {
		filter Filter
		want   Pixel
	}{
		{Normal, NewPixel(42, 10, 47)},
		{RedComponent, NewPixel(47, 0, 0)}, // red slot takes the blue channel
		{GreenComponent, NewPixel(0, 10, 0)},
		{BlueComponent, NewPixel(0, 0, 47)},
		{BrightenValue, NewPixel(89, 57, 94)},
		{DarkenValue, NewPixel(0, 0, 0)},
		{BrightenLuma, NewPixel(61, 29, 66)},
		{DarkenLuma, NewPixel(23, 0, 28)},
		{BrightenIntensity, NewPixel(75, 43, 80)},
		{DarkenIntensity, NewPixel(9, 0, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			out := applyFilter(t, tt.filter, src)
			if got := out.At(0, 0); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_ClampsChannels(t *testing.T) {
	src := mustImage(t, "src", 2, 1, 255, NewPixel(200, 100, 50), NewPixel(0, 3, 250))

	bright := applyFilter(t, BrightenValue, src)
	if got, want := bright.At(0, 0), NewPixel(255, 255, 250); got != want {
		t.Errorf("brighten-value: got %v, want %v", got, want)
	}

	dark := applyFilter(t, DarkenValue, src)
	if got, want := dark.At(0, 1), NewPixel(0, 0, 0); got != want {
		t.Errorf("darken-value: got %v, want %v", got, want)
	}
}

func TestFilter_BrightenThenDarkenStaysInRange(t *testing.T) {
	var pixels []Pixel
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 85 {
			pixels = append(pixels, NewPixel(r, g, 255-r))
		}
	}
	src := mustImage(t, "src", len(pixels), 1, 255, pixels...)

	bright := applyFilter(t, BrightenValue, src)
	back := applyFilter(t, DarkenValue, bright)
	for col := range pixels {
		in, up, down := src.At(0, col), bright.At(0, col), back.At(0, col)
		if up.R < in.R || up.G < in.G || up.B < in.B {
			t.Errorf("brighten moved %v down to %v", in, up)
		}
		if down.R > up.R || down.G > up.G || down.B > up.B {
			t.Errorf("darken moved %v up to %v", up, down)
		}
	}
}

func TestFilter_ComponentsAreIdempotent(t *testing.T) {
	src := mustImage(t, "src", 2, 1, 255, NewPixel(42, 10, 47), NewPixel(200, 150, 100))

	for _, f := range []Filter{GreenComponent, BlueComponent} {
		once := applyFilter(t, f, src)
		twice := applyFilter(t, f, once)
		if !once.Equal(twice) {
			t.Errorf("%s is not idempotent", f)
		}
	}
}

func TestFilter_RedComponentSecondPassIsBlack(t *testing.T) {
	src := mustImage(t, "src", 1, 1, 255, NewPixel(42, 10, 47))

	once := applyFilter(t, RedComponent, src)
	twice := applyFilter(t, RedComponent, once)
	// The first pass moved blue into red and cleared blue.
	if got := twice.At(0, 0); got != NewPixel(0, 0, 0) {
		t.Errorf("got %v, want black", got)
	}
}

func TestFilter_MultiplyAndScreen(t *testing.T) {
	src := mustImage(t, "src", 2, 1, 255, NewPixel(42, 10, 47), White)
	full := mustImage(t, "full", 1, 1, 255, White)
	low := mustImage(t, "low", 1, 1, 100, White)

	run := func(f Filter, composite *Image) *Image {
		t.Helper()
		fn, err := f.PixelFunc(composite)
		if err != nil {
			t.Fatalf("%s.PixelFunc failed: %v", f, err)
		}
		out, err := Apply(src, "out", fn)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		return out
	}

	// A max value below 255 truncates dL to 0.
	if got := run(DarkenMultiply, low).At(0, 0); got != NewPixel(0, 0, 0) {
		t.Errorf("multiply with dL=0: got %v, want black", got)
	}
	// dL=1 for white pixels regardless of the composite.
	if got := run(DarkenMultiply, low).At(0, 1); got != White {
		t.Errorf("multiply of white: got %v, want white", got)
	}
	if got := run(BrightenScreen, full).At(0, 0); got != White {
		t.Errorf("screen with dL=1: got %v, want white", got)
	}

	same := run(DarkenMultiply, full).At(0, 0)
	if absDiff(same.R, 42) > 1 || absDiff(same.G, 10) > 1 || absDiff(same.B, 47) > 1 {
		t.Errorf("multiply with dL=1 should keep the color, got %v", same)
	}
	kept := run(BrightenScreen, low).At(0, 0)
	if absDiff(kept.R, 42) > 1 || absDiff(kept.G, 10) > 1 || absDiff(kept.B, 47) > 1 {
		t.Errorf("screen with dL=0 should keep the color, got %v", kept)
	}
}

func TestFilter_Difference(t *testing.T) {
	src := mustImage(t, "src", 2, 1, 255, NewPixel(42, 10, 47), NewPixel(0, 0, 0))
	composite := mustImage(t, "below", 2, 1, 255, NewPixel(40, 20, 47), White)

	fn, err := Difference.PixelFunc(composite)
	if err != nil {
		t.Fatalf("PixelFunc failed: %v", err)
	}
	out, err := Apply(src, "out", fn)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if got, want := out.At(0, 0), NewPixel(2, 10, 0); got != want {
		t.Errorf("pixel 0: got %v, want %v", got, want)
	}
	if got := out.At(0, 1); got != White {
		t.Errorf("pixel 1: got %v, want white", got)
	}
}

func TestFilter_CompositeRequired(t *testing.T) {
	for _, f := range []Filter{DarkenMultiply, BrightenScreen, Difference} {
		if !f.UsesComposite() {
			t.Errorf("%s should use the composite image", f)
		}
		if _, err := f.PixelFunc(nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s.PixelFunc(nil): got %v, want ErrInvalidArgument", f, err)
		}
	}
}

func TestApply_KeepsShapeAndSource(t *testing.T) {
	src := mustImage(t, "src", 3, 2, 200,
		NewPixel(1, 2, 3), NewPixel(4, 5, 6), NewPixel(7, 8, 9),
		NewPixel(10, 11, 12), NewPixel(13, 14, 15), NewPixel(16, 17, 18))

	out := applyFilter(t, BlueComponent, src)
	if out.Width() != 3 || out.Height() != 2 || out.MaxValue() != 200 {
		t.Errorf("shape: got %dx%d max %d", out.Width(), out.Height(), out.MaxValue())
	}
	if out.Name() != "out" {
		t.Errorf("name: got %q, want out", out.Name())
	}
	if got := out.At(1, 2); got != NewPixel(0, 0, 18) {
		t.Errorf("pixel (1,2): got %v", got)
	}
	if got := src.At(1, 2); got != NewPixel(16, 17, 18) {
		t.Errorf("source was modified: %v", got)
	}
}

func TestApply_NilArguments(t *testing.T) {
	src := mustImage(t, "src", 1, 1, 255, White)
	if _, err := Apply(src, "out", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil func: got %v, want ErrInvalidArgument", err)
	}
	fn, _ := Normal.PixelFunc(nil)
	if _, err := Apply(nil, "out", fn); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil source: got %v, want ErrInvalidArgument", err)
	}
}

func TestApply_KeepsAlpha(t *testing.T) {
	src := mustImage(t, "src", 2, 1, 255, NewPixelAlpha(42, 10, 47, 0), NewPixelAlpha(42, 10, 47, 128))

	out := applyFilter(t, BrightenValue, src)
	if got := out.At(0, 0); got != NewPixelAlpha(89, 57, 94, 0) {
		t.Errorf("pixel 0: got %+v", got)
	}
	if got := out.At(0, 1).A; got != 128 {
		t.Errorf("pixel 1 alpha: got %d, want 128", got)
	}
}
