package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pointSchema is the input schema shared by tools taking one canvas point.
func pointSchema(what string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{
				"type":        "number",
				"description": what + " X in canvas coordinates (0 = left edge)",
			},
			"y": map[string]interface{}{
				"type":        "number",
				"description": what + " Y in canvas coordinates (0 = top edge)",
			},
		},
		"required": []string{"x", "y"},
	}
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source
		{
			Name:        "stamp_load_image",
			Description: "Load a photo (PNG, JPEG, GIF, BMP, TIFF or WebP) and frame it on the square working canvas. Resets the selection to the full canvas circle.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "stamp_status",
			Description: "Report the loaded photo, its framing, the current selection, the pointer state and whether a stamp has been generated.",
			InputSchema: emptySchema(),
		},

		// Selection
		{
			Name:        "stamp_pointer_down",
			Description: "Press the pointer on the canvas, anchoring a circular selection drag.",
			InputSchema: pointSchema("Pointer"),
		},
		{
			Name:        "stamp_pointer_move",
			Description: "Move the pointer. While pressed, the selection becomes the circle spanned by the anchor and this point.",
			InputSchema: pointSchema("Pointer"),
		},
		{
			Name:        "stamp_pointer_up",
			Description: "Release the pointer, finishing the selection drag.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "stamp_pointer_leave",
			Description: "The pointer left the canvas; finishes any selection drag.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "stamp_select_circle",
			Description: "Select the circle spanned by a drag from (x1,y1) to (x2,y2) in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x1": map[string]interface{}{"type": "number", "description": "Drag start X"},
					"y1": map[string]interface{}{"type": "number", "description": "Drag start Y"},
					"x2": map[string]interface{}{"type": "number", "description": "Drag end X"},
					"y2": map[string]interface{}{"type": "number", "description": "Drag end Y"},
				},
				"required": []string{"x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "stamp_suggest_selection",
			Description: "Pick the most interesting square of the photo by content analysis and select the circle inscribed in it.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "stamp_detect_circles",
			Description: "Find round objects in the photo (coins, plates, badges) and, by default, select the best one. Returns up to 5 candidates, best first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"min_radius": map[string]interface{}{
						"type":        "number",
						"description": "Smallest radius to look for, in canvas pixels. Default 20",
						"default":     20,
					},
					"max_radius": map[string]interface{}{
						"type":        "number",
						"description": "Largest radius to look for, in canvas pixels. Default 0 (half the canvas)",
						"default":     0,
					},
					"apply": map[string]interface{}{
						"type":        "boolean",
						"description": "Make the best candidate the current selection. Default true",
						"default":     true,
					},
				},
			},
		},
		{
			Name:        "stamp_preview",
			Description: "Render the framed canvas with the current selection outlined, as base64-encoded PNG. An optional coordinate grid helps place pointer events.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Draw a grid line every N canvas pixels (at least 10). Default 0 (no grid)",
						"default":     0,
					},
					"grid_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Label grid intersections with their x,y coordinates. Default false",
						"default":     false,
					},
				},
			},
		},

		// Stamp
		{
			Name:        "stamp_generate",
			Description: "Generate the stamp from the current selection: circular crop, edge darkening, outline ring, grain, then two-tone recolor. Returns base64-encoded PNG with transparency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"edge_detection": map[string]interface{}{
						"type":        "boolean",
						"description": "Darken strong edges before recoloring. Default true",
						"default":     true,
					},
					"threshold_step": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance cut in steps of 16 (0-16). Pixels darker than step*16 take the fill color. Default 8",
						"default":     defaultThresholdStep,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Fill color as #RRGGBB. Default #FF0000",
						"default":     defaultFillColor,
					},
					"centered_kernel": map[string]interface{}{
						"type":        "boolean",
						"description": "Use a centered Laplacian for edges instead of the classic row-shifted one. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "stamp_export",
			Description: "Save the last generated stamp as PNG. An empty filename cancels the export without error.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "File name (relative to the export directory) or absolute path. Suggested: stamp.png",
					},
				},
			},
		},
		{
			Name:        "stamp_sample_color",
			Description: "Get the color of the last generated stamp at a pixel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{"type": "integer", "description": "X coordinate (0-based, from left)"},
					"y": map[string]interface{}{"type": "integer", "description": "Y coordinate (0-based, from top)"},
				},
				"required": []string{"x", "y"},
			},
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
