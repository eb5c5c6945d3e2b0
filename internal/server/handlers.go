package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/ironsheep/docscan/internal/detection"
	"github.com/ironsheep/docscan/internal/imaging"
	"github.com/ironsheep/docscan/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "document_detect").
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
		s.log.WithError(err).WithField("tool", params.Name).Warn("Tool failed")
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
	case "document_preprocess":
		return s.handlePreprocess(args)
	case "document_detect":
		return s.handleDetect(args)
	case "document_rectify":
		return s.handleRectify(args)
	case "document_debug_view":
		return s.handleDebugView(args)
	case "document_compare":
		return s.handleCompare(args)
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

// decodeArgs unmarshals and validates tool arguments.
func (s *Server) decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// process loads path through the cache and runs the full pipeline on it.
// A degenerate candidate is not an error here; the caller sees a Result
// without a Document.
func (s *Server) process(path string) (*pipeline.Result, error) {
	frame, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := s.pipe.Process(frame)
	if err != nil && !errors.Is(err, pipeline.ErrDegenerateQuad) {
		return nil, err
	}
	return res, nil
}

// ImageResult carries an encoded image back to the client.
type ImageResult struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Data   string `json:"data"`
}

func encodePNG(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	b := img.Bounds()
	return &ImageResult{
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: "png",
		Data:   base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

type pathArgs struct {
	Path string `json:"path" validate:"required"`
}

func (s *Server) handlePreprocess(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	frame, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return encodePNG(pipeline.Preprocess(frame, s.pipe.Params()))
}

// DetectResult reports the candidate found in a frame.
type DetectResult struct {
	Found      bool                   `json:"found"`
	Area       float64                `json:"area,omitempty"`
	Corners    *detection.OrderedQuad `json:"corners,omitempty"`
	Rectified  bool                   `json:"rectified"`
	Degenerate bool                   `json:"degenerate,omitempty"`
}

func (s *Server) handleDetect(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	res, err := s.process(a.Path)
	if err != nil {
		return nil, err
	}

	out := &DetectResult{Found: res.Candidate != nil, Rectified: res.Found()}
	if res.Candidate != nil {
		out.Area = res.Candidate.Area
		out.Corners = res.Quad
		out.Degenerate = !res.Found()
	}
	return out, nil
}

func (s *Server) handleRectify(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	res, err := s.process(a.Path)
	if err != nil {
		return nil, err
	}
	if res.Candidate == nil {
		return nil, pipeline.ErrNoQuad
	}
	if !res.Found() {
		return nil, pipeline.ErrDegenerateQuad
	}
	return encodePNG(res.Document)
}

type debugViewArgs struct {
	Path  string  `json:"path" validate:"required"`
	Scale float64 `json:"scale" validate:"gte=0,lte=4"`
}

func (s *Server) handleDebugView(args json.RawMessage) (interface{}, error) {
	var a debugViewArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	res, err := s.process(a.Path)
	if err != nil {
		return nil, err
	}

	renderer := s.renderer
	if a.Scale > 0 {
		renderer = &pipeline.TileRenderer{Scale: a.Scale}
	}
	view, err := renderer.Render(res)
	if err != nil {
		return nil, err
	}
	return encodePNG(view)
}

type compareArgs struct {
	Path      string  `json:"path" validate:"required"`
	Reference string  `json:"reference" validate:"required"`
	Tolerance float64 `json:"tolerance" validate:"gte=0,lte=255"`
}

func (s *Server) handleCompare(args json.RawMessage) (interface{}, error) {
	var a compareArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Tolerance == 0 {
		a.Tolerance = 8
	}

	res, err := s.process(a.Path)
	if err != nil {
		return nil, err
	}
	if !res.Found() {
		return nil, pipeline.ErrNoQuad
	}
	ref, err := s.cache.Load(a.Reference)
	if err != nil {
		return nil, err
	}
	return imaging.Compare(res.Document, ref, a.Tolerance)
}
