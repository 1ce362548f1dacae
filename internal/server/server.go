package server

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ironsheep/tessgo/internal/imaging"
	"github.com/ironsheep/tessgo/internal/ocr"
	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// Recognizer is the OCR surface the tools need. *ocr.Service implements it.
type Recognizer interface {
	Extract(ctx context.Context, img image.Image, opts ocr.Options) (*ocr.OCRResult, error)
	ExtractRegion(ctx context.Context, img image.Image, r image.Rectangle, opts ocr.Options) (*ocr.OCRResult, error)
	DetectTextRegions(ctx context.Context, img image.Image, level tesseract.PageIteratorLevel, minConfidence float64) (*ocr.DetectTextRegionsResult, error)
	DetectOrientation(ctx context.Context, img image.Image) (*ocr.OrientationResult, error)
	Layout(ctx context.Context, img image.Image, opts tesseract.LayoutOptions) ([]tesseract.Block, error)
	Render(ctx context.Context, img image.Image, format tesseract.RenderFormat) ([]byte, error)
	Info() ocr.Info
}

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.ImageCache
	ocr     Recognizer
	log     zerolog.Logger
	name    string
	version string
	dpi     float64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithVersion sets the version reported during initialize.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithDPI sets the resolution used to rasterize PDF inputs.
func WithDPI(dpi float64) Option {
	return func(s *Server) { s.dpi = dpi }
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

// New creates a server that answers OCR tools with rec.
func New(rec Recognizer, opts ...Option) *Server {
	s := &Server{
		cache:   imaging.NewImageCache(),
		ocr:     rec,
		log:     zerolog.Nop(),
		name:    "tessgo",
		version: "dev",
		dpi:     imaging.DefaultDPI,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves stdin/stdout until stdin is closed or ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one request per line from r and writes responses to w.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	s.log.Info().Str("version", s.version).Msg("MCP server started")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn().Err(err).Msg("failed to parse request")
			if err := encoder.Encode(s.errorResponse(nil, -32700, "Parse error", err.Error())); err != nil {
				return fmt.Errorf("failed to encode response: %w", err)
			}
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.log.Error().Err(err).Msg("failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.log.Debug().Str("method", req.Method).Interface("id", req.ID).Msg("request")
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method), "")
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
				"name":    s.name,
				"version": s.version,
			},
		},
	}
}

func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}
