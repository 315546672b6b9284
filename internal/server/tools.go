package server

import (
	"strings"

	"github.com/ironsheep/collage-mcp/internal/collage"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func filterNames() []string {
	filters := collage.Filters()
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = f.String()
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Project
		{
			Name:        "project_new",
			Description: "Start a new collage project with an empty layer stack and image registry. Replaces any open project. Width and height must each lie strictly between 100 and 1000.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width":  integerProp("Canvas width in pixels (101-999)"),
					"height": integerProp("Canvas height in pixels (101-999)"),
				},
				"required": []string{"width", "height"},
			},
		},
		{
			Name:        "project_info",
			Description: "Report the canvas size, number of layers and registered image names of the open project.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Layers
		{
			Name:        "layer_add",
			Description: "Append a white layer to the bottom of the stack and return its index. The bottom-most layer supplies the composite image for the darken-multiply, brighten-screen and difference filters.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "layer_place_image",
			Description: "Composite a registered image onto a layer with its top-left corner at (x, y). Offsets must satisfy 0 < x <= width and 0 < y <= height. Placing an image that is already on the layer moves it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"layer": integerProp("Layer index (0 = first layer added)"),
					"image": stringProp("Name of a registered image"),
					"x":     integerProp("Column offset of the image's left edge"),
					"y":     integerProp("Row offset of the image's top edge"),
				},
				"required": []string{"layer", "image", "x", "y"},
			},
		},
		{
			Name:        "layer_set_filter",
			Description: "Apply a filter to every image placed on a layer, overwriting each image under its own name, then redraw the layer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"layer": integerProp("Layer index"),
					"filter": map[string]interface{}{
						"type":        "string",
						"description": "Filter name",
						"enum":        filterNames(),
					},
				},
				"required": []string{"layer", "filter"},
			},
		},
		{
			Name:        "layer_render",
			Description: "Register a snapshot of a layer's canvas as a new image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"layer": integerProp("Layer index"),
					"name":  stringProp("Name to register the snapshot under"),
				},
				"required": []string{"layer", "name"},
			},
		},

		// Images
		{
			Name:        "image_load",
			Description: "Load an image file into the project registry under a name. .ppm files are read as plain-text P3 rasters; PNG, JPEG, GIF, BMP, TIFF and WebP are decoded and may be scaled down to fit a bounding box.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       stringProp("Absolute path to the image file"),
					"name":       stringProp("Registry name for the image"),
					"max_width":  integerProp("Optional maximum width; larger images are scaled down"),
					"max_height": integerProp("Optional maximum height; larger images are scaled down"),
					"lenient": map[string]interface{}{
						"type":        "boolean",
						"description": "Read .ppm files forgivingly, reusing the last channel value when data runs short. Default false",
						"default":     false,
					},
				},
				"required": []string{"path", "name"},
			},
		},
		{
			Name:        "image_save",
			Description: "Write a registered image to a file. The extension selects the format: .ppm (plain-text P3), .png, .jpg/.jpeg or .bmp.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of a registered image"),
					"path": stringProp("Absolute path of the file to write"),
				},
				"required": []string{"name", "path"},
			},
		},
		{
			Name:        "image_filter",
			Description: "Run a per-pixel filter over a registered image and register the result under dest. Composite filters need the source placed on the bottom-most layer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filter": map[string]interface{}{
						"type":        "string",
						"description": "Filter name",
						"enum":        filterNames(),
					},
					"source": stringProp("Name of the image to read"),
					"dest":   stringProp("Name to register the result under (may equal source)"),
				},
				"required": []string{"filter", "source", "dest"},
			},
		},
		{
			Name:        "image_info",
			Description: "Describe a registered image: dimensions, declared max value, dominant color palette and luma mean/standard deviation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of a registered image"),
					"palette_size": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to extract (default 5)",
						"default":     5,
					},
				},
				"required": []string{"name"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel of a registered image, with its value, intensity and luma.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of a registered image"),
					"x":    integerProp("X coordinate (0-based column)"),
					"y":    integerProp("Y coordinate (0-based row)"),
				},
				"required": []string{"name", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple points of a registered image in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of a registered image"),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"name", "points"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region of a registered image and register it as a new image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of a registered image"),
					"dest": stringProp("Name to register the crop under"),
					"x1":   integerProp("Left edge X coordinate (0-based)"),
					"y1":   integerProp("Top edge Y coordinate (0-based)"),
					"x2":   integerProp("Right edge X coordinate (exclusive)"),
					"y2":   integerProp("Bottom edge Y coordinate (exclusive)"),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"name", "dest", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_crop_quadrant",
			Description: "Crop a named region of a registered image (" + strings.Join(cropRegions, ", ") + ") and register it as a new image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of a registered image"),
					"dest": stringProp("Name to register the crop under"),
					"region": map[string]interface{}{
						"type":        "string",
						"description": "Named region to extract",
						"enum":        cropRegions,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"name", "dest", "region"},
			},
		},

		// Catalog
		{
			Name:        "filters_list",
			Description: "List the available filters in catalog order and whether each needs the composite image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

var cropRegions = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
