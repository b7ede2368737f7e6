package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Detection
		{
			Name:        "word_boxes",
			Description: "Build word bounding boxes from a text score map and a link score map. Returns boxes as xmin/xmax/ymin/ymax in label-discovery order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text_map": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the text score map (grayscale, 0-255)",
					},
					"link_map": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the link score map (grayscale, 0-255)",
					},
					"image": map[string]interface{}{
						"type":        "string",
						"description": "Optional page image; its size is used to clip boxes. Defaults to the map size",
					},
					"area_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum blob pixel count. Default 300",
					},
				},
				"required": []string{"text_map", "link_map"},
			},
		},

		// Dataset
		{
			Name:        "dataset_partition",
			Description: "Sample reproducible, disjoint training, validation and evaluation splits from two image directories.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"training_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory searched recursively for training .jpg images",
					},
					"validation_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory searched recursively for validation .jpg images",
					},
					"train_images": map[string]interface{}{
						"type":        "integer",
						"description": "Number of training images",
					},
					"val_images": map[string]interface{}{
						"type":        "integer",
						"description": "Number of validation images",
					},
					"eval_images": map[string]interface{}{
						"type":        "integer",
						"description": "Number of evaluation images, drawn from the validation images not selected for validation",
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "PRNG seed. Default 42",
					},
				},
				"required": []string{"training_dir", "validation_dir", "train_images", "val_images", "eval_images"},
			},
		},
		{
			Name:        "extract_patches",
			Description: "Crop every annotated word of the given page images into patch files and append them to the split's labels.csv. Existing patches are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"images": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Page image paths; annotations are read from the sibling labels/ tree",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Split output directory receiving images/ and labels.csv",
					},
					"split": map[string]interface{}{
						"type":        "string",
						"description": "Split name used in logs and the summary. Default training",
					},
					"patch_ext": map[string]interface{}{
						"type":        "string",
						"description": "Patch file extension. Default .jpg",
					},
				},
				"required": []string{"images", "output_dir"},
			},
		},

		// OCR
		{
			Name:        "ocr_patch",
			Description: "Recognize the single line of text in a patch, or in a region of a page when xmin/ymin/xmax/ymax are given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the patch or page image",
					},
					"xmin": map[string]interface{}{
						"type":        "integer",
						"description": "Optional region left edge (inclusive)",
					},
					"ymin": map[string]interface{}{
						"type":        "integer",
						"description": "Optional region top edge (inclusive)",
					},
					"xmax": map[string]interface{}{
						"type":        "integer",
						"description": "Optional region right edge (exclusive)",
					},
					"ymax": map[string]interface{}{
						"type":        "integer",
						"description": "Optional region bottom edge (exclusive)",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default kor",
					},
				},
				"required": []string{"path"},
			},
		},

		// Basic Image Information
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
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
