package collage

import (
	"fmt"
	"sort"
)

// Canvas dimension bounds. Both are exclusive: a project must be wider and
// taller than MinDimension and narrower and shorter than MaxDimension.
const (
	MinDimension = 100
	MaxDimension = 1000
)

// Project owns the canvas size, the ordered layer stack and the image
// registry every operation reads and writes.
//
// Layers are ordered top to bottom: index 0 is the first layer added and the
// last layer is the bottom-most one, whose placements supply the composite
// image for the multiply, screen and difference filters.
//
// A Project is not safe for concurrent use. Hosts with several goroutines
// must serialize access.
type Project struct {
	width  int
	height int
	layers []*Layer
	images map[string]*Image
}

// NewProject creates an empty project with the given canvas size.
//
// Returns an error wrapping ErrInvalidArgument unless
// MinDimension < width, height < MaxDimension.
func NewProject(width, height int) (*Project, error) {
	if width <= MinDimension || height <= MinDimension || width >= MaxDimension || height >= MaxDimension {
		return nil, fmt.Errorf("%w: project size %dx%d outside (%d,%d)",
			ErrInvalidArgument, width, height, MinDimension, MaxDimension)
	}
	return &Project{
		width:  width,
		height: height,
		images: make(map[string]*Image),
	}, nil
}

// Width returns the canvas width.
func (p *Project) Width() int { return p.width }

// Height returns the canvas height.
func (p *Project) Height() int { return p.height }

// AddLayer appends a white layer to the bottom of the stack and returns its
// index.
func (p *Project) AddLayer() int {
	p.layers = append(p.layers, NewLayer(p.width, p.height, p))
	return len(p.layers) - 1
}

// LayerCount returns the number of layers.
func (p *Project) LayerCount() int { return len(p.layers) }

// Layer returns the layer at index.
func (p *Project) Layer(index int) (*Layer, error) {
	if index < 0 || index >= len(p.layers) {
		return nil, fmt.Errorf("%w: layer %d (project has %d)", ErrNotFound, index, len(p.layers))
	}
	return p.layers[index], nil
}

// RegisterImage stores img under name, replacing any image already there.
// The stored image carries name as its own name.
func (p *Project) RegisterImage(name string, img *Image) error {
	if name == "" {
		return fmt.Errorf("%w: empty image name", ErrInvalidArgument)
	}
	if img == nil {
		return fmt.Errorf("%w: nil image for %q", ErrInvalidArgument, name)
	}
	p.images[name] = img.WithName(name)
	return nil
}

// Image returns the registered image called name.
func (p *Project) Image(name string) (*Image, error) {
	img, ok := p.images[name]
	if !ok {
		return nil, fmt.Errorf("%w: image %q", ErrNotFound, name)
	}
	return img, nil
}

// ImageNames returns the registered names in lexical order.
func (p *Project) ImageNames() []string {
	names := make([]string, 0, len(p.images))
	for name := range p.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlaceImageOnLayer composites the registered image imageName onto layer
// index at column x, row y. See Layer.PlaceImage for the coordinate rules.
func (p *Project) PlaceImageOnLayer(index int, imageName string, x, y int) error {
	layer, err := p.Layer(index)
	if err != nil {
		return err
	}
	img, err := p.Image(imageName)
	if err != nil {
		return err
	}
	return layer.PlaceImage(img, x, y)
}

// ApplyFilter runs f over the registered image source and registers the
// result as dest. On failure the registry is left unchanged.
//
// Filters that use the composite image fail with ErrIndexOutOfRange when the
// project has no layers, and with ErrNotFound when source is not placed on
// the bottom-most layer.
func (p *Project) ApplyFilter(f Filter, source, dest string) error {
	out, err := p.filter(f, source, dest)
	if err != nil {
		return err
	}
	p.images[dest] = out
	return nil
}

// SetLayerFilter applies the named filter to every image placed on layer
// index, writing each result back under its own name, then redraws the
// layer. "normal" leaves everything untouched. Nothing is written unless
// every placed image filters successfully.
func (p *Project) SetLayerFilter(index int, filterName string) error {
	layer, err := p.Layer(index)
	if err != nil {
		return err
	}
	f, err := ParseFilter(filterName)
	if err != nil {
		return err
	}
	if f == Normal {
		return nil
	}

	placements := layer.Placements()
	results := make([]*Image, len(placements))
	for i, pl := range placements {
		if results[i], err = p.filter(f, pl.Name, pl.Name); err != nil {
			return fmt.Errorf("layer %d: %w", index, err)
		}
	}
	for _, img := range results {
		p.images[img.Name()] = img
	}
	return layer.Redraw(p)
}

// RenderLayer registers a snapshot of layer index's canvas as name.
func (p *Project) RenderLayer(index int, name string) (*Image, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty image name", ErrInvalidArgument)
	}
	layer, err := p.Layer(index)
	if err != nil {
		return nil, err
	}
	img, err := layer.Snapshot(name)
	if err != nil {
		return nil, err
	}
	p.images[name] = img
	return img, nil
}

// Composite returns the composite image for source: the image placed under
// source's name on the bottom-most layer, resolved through the registry.
func (p *Project) Composite(source string) (*Image, error) {
	if len(p.layers) == 0 {
		return nil, fmt.Errorf("%w: no layers to take a composite image from", ErrIndexOutOfRange)
	}
	bottom := len(p.layers) - 1
	if _, ok := p.layers[bottom].Placement(source); !ok {
		return nil, fmt.Errorf("%w: image %q is not placed on bottom layer %d", ErrNotFound, source, bottom)
	}
	return p.Image(source)
}

func (p *Project) filter(f Filter, source, dest string) (*Image, error) {
	if source == "" || dest == "" {
		return nil, fmt.Errorf("%w: filter %s needs source and destination names", ErrInvalidArgument, f)
	}
	src, err := p.Image(source)
	if err != nil {
		return nil, err
	}

	var composite *Image
	if f.UsesComposite() {
		if composite, err = p.Composite(source); err != nil {
			return nil, err
		}
	}

	fn, err := f.PixelFunc(composite)
	if err != nil {
		return nil, err
	}
	return Apply(src, dest, fn)
}
