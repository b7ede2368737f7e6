package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
	"github.com/ironsheep/ocr-dataset-prep/internal/detection"
	"github.com/ironsheep/ocr-dataset-prep/internal/imaging"
	"github.com/ironsheep/ocr-dataset-prep/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "word_boxes", "extract_patches").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.WithField("tool", params.Name).WithError(err).Warn("Tool execution failed")
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "word_boxes":
		return s.handleWordBoxes(args)
	case "dataset_partition":
		return s.handleDatasetPartition(args)
	case "extract_patches":
		return s.handleExtractPatches(args)
	case "ocr_patch":
		return s.handleOCRPatch(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
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

// === Detection Handlers ===

type wordBoxesArgs struct {
	TextMap       string `json:"text_map"`
	LinkMap       string `json:"link_map"`
	Image         string `json:"image"`
	AreaThreshold *int   `json:"area_threshold"`
}

func (s *Server) handleWordBoxes(args json.RawMessage) (interface{}, error) {
	var a wordBoxesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	areaThreshold := s.defaults.AreaThreshold
	if a.AreaThreshold != nil {
		areaThreshold = *a.AreaThreshold
	}

	textMap, err := imaging.LoadScoreMap(a.TextMap)
	if err != nil {
		return nil, err
	}
	linkMap, err := imaging.LoadScoreMap(a.LinkMap)
	if err != nil {
		return nil, err
	}

	width, height := textMap.Bounds().Dx(), textMap.Bounds().Dy()
	if a.Image != "" {
		dims, err := imaging.GetDimensions(s.cache, a.Image)
		if err != nil {
			return nil, err
		}
		width, height = dims.Width, dims.Height
	}

	return detection.BuildWordBoxes(textMap, linkMap, width, height, areaThreshold)
}

// === Dataset Handlers ===

type datasetPartitionArgs struct {
	TrainingDir   string `json:"training_dir"`
	ValidationDir string `json:"validation_dir"`
	TrainImages   int    `json:"train_images"`
	ValImages     int    `json:"val_images"`
	EvalImages    int    `json:"eval_images"`
	Seed          *int64 `json:"seed"`
}

func (s *Server) handleDatasetPartition(args json.RawMessage) (interface{}, error) {
	var a datasetPartitionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	seed := s.defaults.Seed
	if a.Seed != nil {
		seed = *a.Seed
	}

	trainingPool, err := dataset.LoadPool(dataset.Training, a.TrainingDir)
	if err != nil {
		return nil, err
	}
	validationPool, err := dataset.LoadPool(dataset.Validation, a.ValidationDir)
	if err != nil {
		return nil, err
	}

	counts := dataset.Counts{Train: a.TrainImages, Val: a.ValImages, Eval: a.EvalImages}
	return dataset.Partition(trainingPool, validationPool, counts, seed)
}

type extractPatchesArgs struct {
	Images    []string `json:"images"`
	OutputDir string   `json:"output_dir"`
	Split     string   `json:"split"`
	PatchExt  string   `json:"patch_ext"`
}

func (s *Server) handleExtractPatches(args json.RawMessage) (interface{}, error) {
	var a extractPatchesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}
	if a.Split == "" {
		a.Split = dataset.Training
	}
	if a.PatchExt == "" {
		a.PatchExt = s.defaults.PatchExt
	}
	if !imaging.SupportedPatchExt(a.PatchExt) {
		return nil, fmt.Errorf("unsupported patch_ext %q", a.PatchExt)
	}

	extractor := dataset.NewExtractor(a.PatchExt, s.logger)
	extractor.Cache = s.cache
	split := dataset.Split{Name: a.Split, Images: a.Images}
	return extractor.ExtractSplit(context.Background(), split, a.OutputDir)
}

// === OCR Handlers ===

type ocrPatchArgs struct {
	Path     string `json:"path"`
	XMin     int    `json:"xmin"`
	YMin     int    `json:"ymin"`
	XMax     int    `json:"xmax"`
	YMax     int    `json:"ymax"`
	Language string `json:"language"`
}

type ocrPatchResult struct {
	Text string `json:"text"`
}

func (s *Server) handleOCRPatch(args json.RawMessage) (interface{}, error) {
	var a ocrPatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.defaults.Language
	}

	if a.XMax == 0 && a.YMax == 0 {
		text, err := ocr.Recognize(a.Path, a.Language)
		if err != nil {
			return nil, err
		}
		return &ocrPatchResult{Text: text}, nil
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	patch, err := imaging.CropPatch(img, max(0, a.XMin), max(0, a.YMin), a.XMax, a.YMax)
	if err != nil {
		return nil, err
	}
	text, err := ocr.RecognizeImage(patch, a.Language)
	if err != nil {
		return nil, err
	}
	return &ocrPatchResult{Text: text}, nil
}

// === Basic Image Information Handlers ===

type imageDimensionsArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageDimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}
