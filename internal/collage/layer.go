package collage

import "fmt"

// Placement records an image placed on a layer: the registry name it was
// placed under and its offset, X columns right and Y rows down.
type Placement struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Resolver looks an image up by name. Project implements it over its
// registry.
type Resolver interface {
	Image(name string) (*Image, error)
}

// Layer is a fixed-size canvas that images are composited onto.
//
// The canvas starts white. A layer holds no images of its own: it records
// placements (name and offset) and reads pixels from whatever image it is
// handed, so the project registry stays the single owner of image data.
type Layer struct {
	width      int
	height     int
	canvas     []Pixel
	placements []Placement
	images     Resolver
}

// NewLayer returns a white width x height layer. images resolves placement
// names when the canvas has to be redrawn; it may be nil for a layer that
// never moves a placed image.
func NewLayer(width, height int, images Resolver) *Layer {
	l := &Layer{
		width:  width,
		height: height,
		canvas: make([]Pixel, width*height),
		images: images,
	}
	l.clear()
	return l
}

// Width returns the canvas width.
func (l *Layer) Width() int { return l.width }

// Height returns the canvas height.
func (l *Layer) Height() int { return l.height }

// PlaceImage composites img onto the canvas with its top-left corner at
// column x, row y, and records the placement under img's name.
//
// Offsets must satisfy 0 < x <= width and 0 < y <= height; the origin itself
// is rejected. Parts of the image that fall outside the canvas are clipped.
// Placing a name that is already on the layer moves it: the old offset is
// replaced and the canvas is redrawn from the given image.
func (l *Layer) PlaceImage(img *Image, x, y int) error {
	if img == nil || img.Name() == "" {
		return fmt.Errorf("%w: image must be registered under a name before placement", ErrInvalidArgument)
	}
	if x <= 0 || x > l.width {
		return fmt.Errorf("%w: x coordinate %d outside (0,%d]", ErrInvalidArgument, x, l.width)
	}
	if y <= 0 || y > l.height {
		return fmt.Errorf("%w: y coordinate %d outside (0,%d]", ErrInvalidArgument, y, l.height)
	}

	p := Placement{Name: img.Name(), X: x, Y: y}
	for i, existing := range l.placements {
		if existing.Name == p.Name {
			l.placements[i] = p
			if err := l.Redraw(overlay{img: img, next: l.images}); err != nil {
				l.placements[i] = existing
				return err
			}
			return nil
		}
	}

	l.placements = append(l.placements, p)
	l.draw(img, x, y)
	return nil
}

// Redraw clears the canvas to white and composites every placement again in
// placement order, resolving each name through r.
func (l *Layer) Redraw(r Resolver) error {
	imgs := make([]*Image, len(l.placements))
	for i, p := range l.placements {
		img, err := r.Image(p.Name)
		if err != nil {
			return fmt.Errorf("redraw placement %q: %w", p.Name, err)
		}
		imgs[i] = img
	}

	l.clear()
	for i, p := range l.placements {
		l.draw(imgs[i], p.X, p.Y)
	}
	return nil
}

// Placements returns a copy of the layer's placements in placement order.
func (l *Layer) Placements() []Placement {
	out := make([]Placement, len(l.placements))
	copy(out, l.placements)
	return out
}

// Placement returns the placement recorded under name.
func (l *Layer) Placement(name string) (Placement, bool) {
	for _, p := range l.placements {
		if p.Name == name {
			return p, true
		}
	}
	return Placement{}, false
}

// Pixel returns the canvas pixel at column x, row y.
func (l *Layer) Pixel(x, y int) (Pixel, error) {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return Pixel{}, fmt.Errorf("%w: canvas coordinate (%d,%d) outside %dx%d layer",
			ErrInvalidArgument, x, y, l.width, l.height)
	}
	return l.canvas[y*l.width+x], nil
}

// Snapshot returns the current canvas as an image named name with a max
// value of 255.
func (l *Layer) Snapshot(name string) (*Image, error) {
	return NewImage(name, l.width, l.height, MaxChannel, l.canvas)
}

// draw composites img onto the canvas at (x, y), dropping pixels that fall
// outside the canvas.
func (l *Layer) draw(img *Image, x, y int) {
	for row := 0; row < img.Height(); row++ {
		cy := y + row
		if cy >= l.height {
			break
		}
		for col := 0; col < img.Width(); col++ {
			cx := x + col
			if cx >= l.width {
				break
			}
			i := cy*l.width + cx
			l.canvas[i] = Composite(l.canvas[i], img.At(row, col))
		}
	}
}

func (l *Layer) clear() {
	for i := range l.canvas {
		l.canvas[i] = White
	}
}

// overlay resolves img by its own name and every other name through next.
type overlay struct {
	img  *Image
	next Resolver
}

func (o overlay) Image(name string) (*Image, error) {
	if name == o.img.Name() {
		return o.img, nil
	}
	if o.next == nil {
		return nil, fmt.Errorf("%w: image %q", ErrNotFound, name)
	}
	return o.next.Image(name)
}
