package server

import (
	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func enumProp(description string, values []string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "enum": values, "description": description}
}

var (
	sourceProp = stringProp("Name of the workspace image to read")
	destProp   = stringProp("Name for the result. Omit to generate one; an existing name is replaced")
	splitProp  = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     100,
		"description": "Optional split preview: the processed image covers this percentage of the width",
	}
	splitSideProp = enumProp("Which side of the split shows the processed image. Default left", []string{"left", "right"})
)

func operationNames() []string {
	ops := imaging.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Workspace
		{
			Name:        "image_load",
			Description: "Load an image file (PPM, PNG, JPEG, GIF, BMP, TIFF or WebP) into the workspace under a name.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Absolute path to the image file"),
				"name": stringProp("Workspace name. Defaults to the file name without extension"),
			}, "path"),
		},
		{
			Name:        "image_save",
			Description: "Write a workspace image to a file. The format follows the extension (.ppm, .png, .jpg, .gif, .bmp, .tif).",
			InputSchema: objectSchema(map[string]interface{}{
				"name":    stringProp("Workspace image to write"),
				"path":    stringProp("Absolute destination path"),
				"quality": integerProp("JPEG quality 1-100. Default 95"),
			}, "name", "path"),
		},
		{
			Name:        "image_info",
			Description: "Get the dimensions and content fingerprint of a workspace image.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Workspace image name"),
			}, "name"),
		},
		{
			Name:        "image_list",
			Description: "List every image in the workspace.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate of a workspace image.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Workspace image name"),
				"x":    integerProp("X coordinate (0-based, from left)"),
				"y":    integerProp("Y coordinate (0-based, from top)"),
			}, "name", "x", "y"),
		},

		// Point operations
		{
			Name:        "image_brighten",
			Description: "Add a constant to every channel, clamping to 0-255.",
			InputSchema: objectSchema(map[string]interface{}{
				"source": sourceProp,
				"dest":   destProp,
				"amount": integerProp("Value added to each channel; negative values darken"),
			}, "source", "amount"),
		},
		{
			Name:        "image_darken",
			Description: "Subtract a constant from every channel, clamping to 0-255. The sign of amount is ignored.",
			InputSchema: objectSchema(map[string]interface{}{
				"source": sourceProp,
				"dest":   destProp,
				"amount": integerProp("Value subtracted from each channel"),
			}, "source", "amount"),
		},
		{
			Name:        "image_flip",
			Description: "Mirror an image horizontally (left-right) or vertically (top-bottom).",
			InputSchema: objectSchema(map[string]interface{}{
				"source":    sourceProp,
				"dest":      destProp,
				"direction": enumProp("Flip axis", []string{"horizontal", "vertical"}),
			}, "source", "direction"),
		},
		{
			Name:        "image_component",
			Description: "Produce a greyscale image from one component: red, green, blue, value (max), intensity (mean) or luma.",
			InputSchema: objectSchema(map[string]interface{}{
				"source":    sourceProp,
				"dest":      destProp,
				"component": enumProp("Component to visualize", []string{"red", "green", "blue", "value", "intensity", "luma"}),
			}, "source", "component"),
		},
		{
			Name:        "image_rgb_split",
			Description: "Split an image into three greyscale images, one per channel.",
			InputSchema: objectSchema(map[string]interface{}{
				"source": sourceProp,
				"red":    stringProp("Name for the red channel. Default <source>-red"),
				"green":  stringProp("Name for the green channel. Default <source>-green"),
				"blue":   stringProp("Name for the blue channel. Default <source>-blue"),
			}, "source"),
		},
		{
			Name:        "image_rgb_combine",
			Description: "Build a color image taking red, green and blue from three images. The result covers their common area.",
			InputSchema: objectSchema(map[string]interface{}{
				"red":   stringProp("Image supplying the red channel"),
				"green": stringProp("Image supplying the green channel"),
				"blue":  stringProp("Image supplying the blue channel"),
				"dest":  destProp,
			}, "red", "green", "blue"),
		},

		// Filters
		{
			Name:        "image_filter",
			Description: "Apply blur, sharpen, sepia, greyscale or color-correct, optionally as a split preview next to the original.",
			InputSchema: objectSchema(map[string]interface{}{
				"source":           sourceProp,
				"dest":             destProp,
				"filter":           enumProp("Filter to apply", []string{"blur", "sharpen", "sepia", "greyscale", "color-correct"}),
				"split_percentage": splitProp,
				"split_side":       splitSideProp,
			}, "source", "filter"),
		},
		{
			Name:        "image_histogram",
			Description: "Count per-channel sample values and render the histogram as a 256x256 line chart image.",
			InputSchema: objectSchema(map[string]interface{}{
				"source":       sourceProp,
				"dest":         stringProp("Name for the chart image. Default <source>-histogram"),
				"include_bins": map[string]interface{}{"type": "boolean", "description": "Include all 256 counts per channel in the result"},
			}, "source"),
		},
		{
			Name:        "image_levels_adjust",
			Description: "Remap tones with the quadratic curve through (black,0), (mid,128) and (white,255).",
			InputSchema: objectSchema(map[string]interface{}{
				"source":           sourceProp,
				"dest":             destProp,
				"black":            integerProp("Shadow point, 0-255"),
				"mid":              integerProp("Midtone point, between black and white"),
				"white":            integerProp("Highlight point, 0-255"),
				"split_percentage": splitProp,
				"split_side":       splitSideProp,
			}, "source", "black", "mid", "white"),
		},
		{
			Name:        "image_compress",
			Description: "Lossy Haar wavelet compression: discard the given percentage of the smallest coefficients and reconstruct.",
			InputSchema: objectSchema(map[string]interface{}{
				"source":     sourceProp,
				"dest":       destProp,
				"percentage": map[string]interface{}{"type": "number", "minimum": 0, "maximum": 100, "description": "Share of coefficients to discard"},
			}, "source", "percentage"),
		},
		{
			Name:        "image_downscale",
			Description: "Shrink an image with bilinear interpolation.",
			InputSchema: objectSchema(map[string]interface{}{
				"source": sourceProp,
				"dest":   destProp,
				"width":  integerProp("Target width, 1 to the source width"),
				"height": integerProp("Target height, 1 to the source height"),
			}, "source", "width", "height"),
		},
		{
			Name:        "image_partial",
			Description: "Apply an operation only where a same-sized mask image is near-black (every channel below 10).",
			InputSchema: objectSchema(map[string]interface{}{
				"source":    sourceProp,
				"mask":      stringProp("Mask image name"),
				"dest":      destProp,
				"operation": enumProp("Operation to apply inside the mask", operationNames()),
			}, "source", "mask", "operation"),
		},

		// Batch
		{
			Name:        "image_run_script",
			Description: "Run image commands, one per line (e.g. \"blur koala koala-soft split 50\"), against the workspace.",
			InputSchema: objectSchema(map[string]interface{}{
				"script": stringProp("Inline script text"),
				"path":   stringProp("Path to a script file, used when script is empty"),
			}),
		},
	}
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
