// Package server implements the MCP (Model Context Protocol) server for the
// collage editor.
//
// This package provides a JSON-RPC 2.0 server that exposes one editing
// session, a collage.Project, through MCP tools. A client creates a project,
// loads images into its registry, stacks layers, places and filters images,
// and saves the results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Project:
//   - project_new: Start a project of a given canvas size
//   - project_info: Canvas size, layer count and registered images
//
// Layers:
//   - layer_add: Append a white layer to the bottom of the stack
//   - layer_place_image: Composite a registered image onto a layer
//   - layer_set_filter: Filter every image on a layer and redraw it
//   - layer_render: Register a layer's canvas as an image
//
// Images:
//   - image_load: Import a .ppm raster or binary image file
//   - image_save: Export to .ppm, .png, .jpg or .bmp
//   - image_filter: Run a filter from source into dest
//   - image_info: Dimensions, palette and luma statistics
//   - image_sample_color, image_sample_colors_multi: Read pixels
//   - image_crop, image_crop_quadrant: Register a region as a new image
//
// Catalog:
//   - filters_list: Filter names in catalog order
//
// Every tool except project_new and filters_list fails with
// collage.ErrNoProject until a project exists.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, which names the offending value
//
// # Usage
//
//	srv := server.New(server.WithDebug(true))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
