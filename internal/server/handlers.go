package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/collage-mcp/internal/collage"
	"github.com/ironsheep/collage-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "layer_place_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	if s.debug {
		log.Printf("tools/call %s", params.Name)
	}

	s.mu.Lock()
	result, err := s.executeTool(params.Name, params.Arguments)
	s.mu.Unlock()
	if err != nil {
		if s.debug {
			log.Printf("tools/call %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Resolves the session project and registered images as needed
//  4. Calls into the collage core or the imaging bridge
//  5. Returns the result or error
//
// The caller must hold s.mu.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Project
	case "project_new":
		return s.handleProjectNew(args)
	case "project_info":
		return s.handleProjectInfo(args)

	// Layers
	case "layer_add":
		return s.handleLayerAdd(args)
	case "layer_place_image":
		return s.handleLayerPlaceImage(args)
	case "layer_set_filter":
		return s.handleLayerSetFilter(args)
	case "layer_render":
		return s.handleLayerRender(args)

	// Images
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_info":
		return s.handleImageInfo(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_quadrant":
		return s.handleImageCropQuadrant(args)

	// Catalog
	case "filters_list":
		return s.handleFiltersList(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, treating absent arguments as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// currentProject returns the session project or ErrNoProject.
func (s *Server) currentProject() (*collage.Project, error) {
	if s.project == nil {
		return nil, fmt.Errorf("%w: call project_new first", collage.ErrNoProject)
	}
	return s.project, nil
}

// registeredImage resolves a name in the session registry.
func (s *Server) registeredImage(name string) (*collage.Project, *collage.Image, error) {
	p, err := s.currentProject()
	if err != nil {
		return nil, nil, err
	}
	img, err := p.Image(name)
	if err != nil {
		return nil, nil, err
	}
	return p, img, nil
}

// === Project Handlers ===

type projectNewArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ProjectInfo describes the session project.
type ProjectInfo struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Layers int      `json:"layers"`
	Images []string `json:"images"`
}

func (s *Server) handleProjectNew(args json.RawMessage) (interface{}, error) {
	var a projectNewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := collage.NewProject(a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	s.project = p
	s.cache.Clear()
	return projectInfo(p), nil
}

func (s *Server) handleProjectInfo(args json.RawMessage) (interface{}, error) {
	p, err := s.currentProject()
	if err != nil {
		return nil, err
	}
	return projectInfo(p), nil
}

func projectInfo(p *collage.Project) *ProjectInfo {
	return &ProjectInfo{
		Width:  p.Width(),
		Height: p.Height(),
		Layers: p.LayerCount(),
		Images: p.ImageNames(),
	}
}

// === Layer Handlers ===

// LayerResult describes one layer after a layer operation.
type LayerResult struct {
	Layer      int                 `json:"layer"`
	Placements []collage.Placement `json:"placements"`
}

func layerResult(p *collage.Project, index int) (*LayerResult, error) {
	layer, err := p.Layer(index)
	if err != nil {
		return nil, err
	}
	return &LayerResult{Layer: index, Placements: layer.Placements()}, nil
}

func (s *Server) handleLayerAdd(args json.RawMessage) (interface{}, error) {
	p, err := s.currentProject()
	if err != nil {
		return nil, err
	}
	return layerResult(p, p.AddLayer())
}

type layerPlaceImageArgs struct {
	Layer int    `json:"layer"`
	Image string `json:"image"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

func (s *Server) handleLayerPlaceImage(args json.RawMessage) (interface{}, error) {
	var a layerPlaceImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.currentProject()
	if err != nil {
		return nil, err
	}
	if err := p.PlaceImageOnLayer(a.Layer, a.Image, a.X, a.Y); err != nil {
		return nil, err
	}
	return layerResult(p, a.Layer)
}

type layerSetFilterArgs struct {
	Layer  int    `json:"layer"`
	Filter string `json:"filter"`
}

func (s *Server) handleLayerSetFilter(args json.RawMessage) (interface{}, error) {
	var a layerSetFilterArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.currentProject()
	if err != nil {
		return nil, err
	}
	if err := p.SetLayerFilter(a.Layer, a.Filter); err != nil {
		return nil, err
	}
	return layerResult(p, a.Layer)
}

type layerRenderArgs struct {
	Layer int    `json:"layer"`
	Name  string `json:"name"`
}

func (s *Server) handleLayerRender(args json.RawMessage) (interface{}, error) {
	var a layerRenderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.currentProject()
	if err != nil {
		return nil, err
	}
	img, err := p.RenderLayer(a.Layer, a.Name)
	if err != nil {
		return nil, err
	}
	return imageSummary(img), nil
}

// === Image Handlers ===

// ImageSummary identifies a registered image.
type ImageSummary struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxValue int    `json:"max_value"`
}

func imageSummary(img *collage.Image) *ImageSummary {
	return &ImageSummary{
		Name:     img.Name(),
		Width:    img.Width(),
		Height:   img.Height(),
		MaxValue: img.MaxValue(),
	}
}

type imageLoadArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
	imaging.ImportOptions
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.currentProject()
	if err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", collage.ErrInvalidArgument)
	}
	img, err := s.cache.Import(a.Path, a.Name, a.ImportOptions)
	if err != nil {
		return nil, err
	}
	if err := p.RegisterImage(a.Name, img); err != nil {
		return nil, err
	}
	return imageSummary(img), nil
}

type imageSaveArgs struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	_, img, err := s.registeredImage(a.Name)
	if err != nil {
		return nil, err
	}
	if err := imaging.Export(a.Path, img); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)
	return map[string]interface{}{"name": a.Name, "path": a.Path}, nil
}

type imageFilterArgs struct {
	Filter string `json:"filter"`
	Source string `json:"source"`
	Dest   string `json:"dest"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.currentProject()
	if err != nil {
		return nil, err
	}
	f, err := collage.ParseFilter(a.Filter)
	if err != nil {
		return nil, err
	}
	if err := p.ApplyFilter(f, a.Source, a.Dest); err != nil {
		return nil, err
	}
	img, err := p.Image(a.Dest)
	if err != nil {
		return nil, err
	}
	return imageSummary(img), nil
}

type imageInfoArgs struct {
	Name        string `json:"name"`
	PaletteSize int    `json:"palette_size"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.PaletteSize == 0 {
		a.PaletteSize = 5
	}
	_, img, err := s.registeredImage(a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.Describe(img, a.PaletteSize), nil
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	_, img, err := s.registeredImage(a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Name   string `json:"name"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	_, img, err := s.registeredImage(a.Name)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Name  string  `json:"name"`
	Dest  string  `json:"dest"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	p, img, err := s.registeredImage(a.Name)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale, a.Dest)
	if err != nil {
		return nil, err
	}
	return registerResult(p, out)
}

type imageCropQuadrantArgs struct {
	Name   string  `json:"name"`
	Dest   string  `json:"dest"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a imageCropQuadrantArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	p, img, err := s.registeredImage(a.Name)
	if err != nil {
		return nil, err
	}
	out, err := imaging.CropQuadrant(img, a.Region, a.Scale, a.Dest)
	if err != nil {
		return nil, err
	}
	return registerResult(p, out)
}

func registerResult(p *collage.Project, img *collage.Image) (interface{}, error) {
	if err := p.RegisterImage(img.Name(), img); err != nil {
		return nil, err
	}
	return imageSummary(img), nil
}

// === Catalog Handlers ===

// FilterInfo describes one entry of the filter catalog.
type FilterInfo struct {
	Name          string `json:"name"`
	UsesComposite bool   `json:"uses_composite"`
}

func (s *Server) handleFiltersList(args json.RawMessage) (interface{}, error) {
	filters := collage.Filters()
	out := make([]FilterInfo, len(filters))
	for i, f := range filters {
		out[i] = FilterInfo{Name: f.String(), UsesComposite: f.UsesComposite()}
	}
	return map[string]interface{}{"filters": out}, nil
}
