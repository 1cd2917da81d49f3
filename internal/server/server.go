package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ironsheep/stamp-mcp/internal/config"
	"github.com/ironsheep/stamp-mcp/internal/imaging"
	"github.com/ironsheep/stamp-mcp/internal/logging"
	"github.com/ironsheep/stamp-mcp/internal/selection"
	"github.com/ironsheep/stamp-mcp/internal/stamp"
)

// Version is reported in the initialize handshake; main overrides it from
// build flags.
var Version = "0.1.0"

// Server handles MCP protocol communication and owns the single stamp session.
type Server struct {
	cfg   config.Config
	cache *imaging.ImageCache
	synth *stamp.Synthesizer

	// mu guards the session fields below. Tool calls are served one at a
	// time, so a generate never overlaps a pointer update.
	mu      sync.Mutex
	path    string
	src     *image.NRGBA
	framing imaging.Framing
	tracker *selection.Tracker
	last    *image.NRGBA
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a new MCP server instance from cfg.
func New(cfg config.Config) (*Server, error) {
	if cfg.CanvasSize <= 0 {
		return nil, fmt.Errorf("invalid canvas size %d", cfg.CanvasSize)
	}
	stroke, err := imaging.ParseHexColor(cfg.StrokeColor)
	if err != nil {
		return nil, fmt.Errorf("stroke color: %w", err)
	}

	synth := stamp.NewSynthesizer()
	synth.StrokeWidth = cfg.StrokeWidth
	synth.StrokeColor = color.Color(stroke)

	return &Server{
		cfg:     cfg,
		cache:   imaging.NewImageCache(),
		synth:   synth,
		tracker: selection.NewTracker(cfg.CanvasSize),
	}, nil
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes responses
// to w until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}
		logging.Debugf("request %s id=%v", req.Method, req.ID)

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "stamp-mcp",
				"version": Version,
			},
		},
	}
}
