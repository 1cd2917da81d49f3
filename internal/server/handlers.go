package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/stamp-mcp/internal/imaging"
	"github.com/ironsheep/stamp-mcp/internal/logging"
	"github.com/ironsheep/stamp-mcp/internal/selection"
	"github.com/ironsheep/stamp-mcp/internal/stamp"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "stamp_load_image", "stamp_generate").
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
//  3. Reads or updates the session under s.mu
//  4. Calls the appropriate imaging/selection/stamp function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	logging.Debugf("tool %s", name)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	// Source
	case "stamp_load_image":
		return s.handleLoadImage(args)
	case "stamp_status":
		return s.status(), nil

	// Selection
	case "stamp_pointer_down":
		return s.handlePointerDown(args)
	case "stamp_pointer_move":
		return s.handlePointerMove(args)
	case "stamp_pointer_up":
		s.tracker.PointerUp()
		return s.currentSelection(false), nil
	case "stamp_pointer_leave":
		s.tracker.PointerLeave()
		return s.currentSelection(false), nil
	case "stamp_select_circle":
		return s.handleSelectCircle(args)
	case "stamp_suggest_selection":
		return s.handleSuggestSelection()
	case "stamp_detect_circles":
		return s.handleDetectCircles(args)
	case "stamp_preview":
		return s.handlePreview(args)

	// Stamp
	case "stamp_generate":
		return s.handleGenerate(args)
	case "stamp_export":
		return s.handleExport(args)
	case "stamp_sample_color":
		return s.handleSampleColor(args)

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

// unmarshalArgs decodes optional tool arguments; missing arguments leave v
// untouched.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// source returns the loaded photo, or a nil interface when none is loaded.
func (s *Server) source() image.Image {
	if s.src == nil {
		return nil
	}
	return s.src
}

func (s *Server) requireImage() error {
	if s.src == nil {
		return fmt.Errorf("%w: no image loaded", stamp.ErrInvalidState)
	}
	return nil
}

// === Source Handlers ===

type loadImageArgs struct {
	Path string `json:"path"`
}

type loadImageResult struct {
	Image     *imaging.ImageInfo `json:"image"`
	Framing   imaging.Framing    `json:"framing"`
	Selection imaging.Selection  `json:"selection"`
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a loadImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	framing, err := imaging.NewFraming(info.Width, info.Height, s.cfg.CanvasSize)
	if err != nil {
		return nil, err
	}

	// The previous photo is no longer needed once a new one is framed.
	if s.path != "" && s.path != a.Path {
		s.cache.Evict(s.path)
	}
	s.path = a.Path
	s.src = img
	s.framing = framing
	s.last = nil
	s.tracker.Reset()

	log.Printf("Loaded %s (%dx%d)", a.Path, info.Width, info.Height)
	return &loadImageResult{
		Image:     info,
		Framing:   framing,
		Selection: s.tracker.Selection(),
	}, nil
}

type statusResult struct {
	Loaded    bool              `json:"loaded"`
	Path      string            `json:"path,omitempty"`
	Framing   *imaging.Framing  `json:"framing,omitempty"`
	Selection imaging.Selection `json:"selection"`
	State     string            `json:"state"`
	HasStamp  bool              `json:"has_stamp"`
}

func (s *Server) status() *statusResult {
	res := &statusResult{
		Loaded:    s.src != nil,
		Path:      s.path,
		Selection: s.tracker.Selection(),
		State:     s.tracker.State().String(),
		HasStamp:  s.last != nil,
	}
	if s.src != nil {
		f := s.framing
		res.Framing = &f
	}
	return res
}

// === Selection Handlers ===

type pointArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type selectionResult struct {
	Selection imaging.Selection `json:"selection"`
	State     string            `json:"state"`
	Changed   bool              `json:"changed"`
}

func (s *Server) currentSelection(changed bool) *selectionResult {
	return &selectionResult{
		Selection: s.tracker.Selection(),
		State:     s.tracker.State().String(),
		Changed:   changed,
	}
}

func (s *Server) handlePointerDown(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.tracker.PointerDown(a.X, a.Y)
	return s.currentSelection(false), nil
}

func (s *Server) handlePointerMove(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, changed := s.tracker.PointerMove(a.X, a.Y)
	return s.currentSelection(changed), nil
}

type selectCircleArgs struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (s *Server) handleSelectCircle(args json.RawMessage) (interface{}, error) {
	var a selectCircleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.tracker.PointerDown(a.X1, a.Y1)
	s.tracker.PointerMove(a.X2, a.Y2)
	s.tracker.PointerUp()
	return s.currentSelection(true), nil
}

func (s *Server) handleSuggestSelection() (interface{}, error) {
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	sel, err := selection.Suggest(s.src, s.framing)
	if err != nil {
		return nil, err
	}
	s.tracker.Set(sel)
	return s.currentSelection(true), nil
}

const maxCircleCandidates = 5

type detectCirclesArgs struct {
	MinRadius float64 `json:"min_radius"`
	MaxRadius float64 `json:"max_radius"`
	Apply     *bool   `json:"apply"`
}

type detectCirclesResult struct {
	Candidates []selection.Candidate `json:"candidates"`
	Count      int                   `json:"count"`
	*selectionResult
}

func (s *Server) handleDetectCircles(args json.RawMessage) (interface{}, error) {
	a := detectCirclesArgs{MinRadius: 20}
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}

	found, err := selection.DetectCircles(s.src, s.framing, a.MinRadius, a.MaxRadius)
	if err != nil {
		return nil, err
	}
	res := &detectCirclesResult{Count: len(found)}
	if len(found) > maxCircleCandidates {
		found = found[:maxCircleCandidates]
	}
	res.Candidates = found

	apply := a.Apply == nil || *a.Apply
	if apply && len(found) > 0 {
		s.tracker.Set(found[0].Selection)
	}
	res.selectionResult = s.currentSelection(apply && len(found) > 0)
	return res, nil
}

type previewArgs struct {
	GridSpacing int  `json:"grid_spacing"`
	GridLabels  bool `json:"grid_labels"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}

	img, err := imaging.Preview(s.src, s.framing, s.tracker.Selection())
	if err != nil {
		return nil, err
	}
	if a.GridSpacing != 0 {
		if img, err = imaging.GridOverlay(img, a.GridSpacing, a.GridLabels); err != nil {
			return nil, err
		}
	}
	return imaging.EncodePNGBase64(img)
}

// === Stamp Handlers ===

const (
	defaultThresholdStep = 8
	defaultFillColor     = "#FF0000"
	maxThresholdStep     = 16
)

type generateArgs struct {
	EdgeDetection  *bool  `json:"edge_detection"`
	ThresholdStep  *int   `json:"threshold_step"`
	Color          string `json:"color"`
	CenteredKernel bool   `json:"centered_kernel"`
}

type generateResult struct {
	*imaging.EncodedImage
	Selection imaging.Selection `json:"selection"`
	Threshold int               `json:"threshold"`
	Kernel    string            `json:"kernel"`
}

func (s *Server) handleGenerate(args json.RawMessage) (interface{}, error) {
	var a generateArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	edge := true
	if a.EdgeDetection != nil {
		edge = *a.EdgeDetection
	}
	step := defaultThresholdStep
	if a.ThresholdStep != nil {
		step = *a.ThresholdStep
	}
	if step > maxThresholdStep {
		return nil, fmt.Errorf("threshold_step must be at most %d, got %d", maxThresholdStep, step)
	}
	if a.Color == "" {
		a.Color = defaultFillColor
	}

	style, err := stamp.NewStyle(edge, step, a.Color)
	if err != nil {
		return nil, err
	}
	if a.CenteredKernel {
		style.Kernel = stamp.CenteredLaplacian
	}

	sel := s.tracker.Selection()
	out, err := s.synth.Synthesize(s.source(), s.framing, sel, style)
	if err != nil {
		return nil, err
	}
	enc, err := imaging.EncodePNGBase64(out)
	if err != nil {
		return nil, err
	}
	s.last = out

	logging.Debugf("stamp generated: sel=%+v threshold=%d kernel=%s", sel, style.Threshold, style.Kernel)
	return &generateResult{
		EncodedImage: enc,
		Selection:    sel,
		Threshold:    style.Threshold,
		Kernel:       style.Kernel.String(),
	}, nil
}

type exportArgs struct {
	Filename string `json:"filename"`
}

type exportResult struct {
	Exported bool   `json:"exported"`
	Path     string `json:"path,omitempty"`
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	var img image.Image
	if s.last != nil {
		img = s.last
	}
	path, err := imaging.Export(img, s.cfg.ExportDir, a.Filename)
	if errors.Is(err, imaging.ErrExportAborted) {
		return &exportResult{Exported: false}, nil
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Exported stamp to %s", path)
	return &exportResult{Exported: true, Path: path}, nil
}

type sampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.last == nil {
		return nil, fmt.Errorf("no stamp generated")
	}
	return imaging.SampleColor(s.last, a.X, a.Y)
}
