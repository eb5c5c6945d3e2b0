package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the input every tool shares.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file. The frame is resized to the 480x640 working geometry before processing.",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "document_preprocess",
			Description: "Run the preprocessing stage (grayscale, Gaussian blur, Canny, dilate, erode) and return the binary edge map as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_detect",
			Description: "Find the largest four-sided contour in the frame. Returns whether one was found, its area, and its corners ordered top-left, top-right, bottom-left, bottom-right.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_rectify",
			Description: "Detect the document and return the perspective-corrected, margin-cropped 480x640 page as base64-encoded PNG. Fails when no document is found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_debug_view",
			Description: "Return the 2x2 diagnostic view (original, edge map, overlay, document) as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Tile scale relative to the frame. Default 0.6",
						"default":     0.6,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_compare",
			Description: "Rectify the document in an image and compare it pixel by pixel with a reference scan. Reports mean and max channel difference and the number of pixels over the tolerance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"reference": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the reference document image",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Per-channel difference a pixel may have and still match. Default 8",
						"default":     8,
					},
				},
				"required": []string{"path", "reference"},
			},
		},
	}
}
