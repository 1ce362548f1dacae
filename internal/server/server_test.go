package server

import (
	"bytes"
	"context"
	"image"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ironsheep/tessgo/internal/ocr"
	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// fakeRecognizer answers every call with canned data and records the last
// arguments it received.
type fakeRecognizer struct {
	lastMode   tesseract.PageSegMode
	lastRect   image.Rectangle
	lastLevel  tesseract.PageIteratorLevel
	lastMinCon float64
	lastFormat tesseract.RenderFormat
	lastOpts   ocr.Options
	rendered   []byte
	err        error
}

func (f *fakeRecognizer) Extract(_ context.Context, img image.Image, opts ocr.Options) (*ocr.OCRResult, error) {
	f.lastMode = opts.PageSegMode
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &ocr.OCRResult{
		FullText:       "hello world\n",
		MeanConfidence: 0.91,
		Regions: []ocr.TextRegion{
			{Text: "hello", Confidence: 0.9, Bounds: ocr.Bounds{X1: 1, Y1: 2, X2: 30, Y2: 12}},
		},
		Backend: "fake",
	}, nil
}

func (f *fakeRecognizer) ExtractRegion(ctx context.Context, img image.Image, r image.Rectangle, opts ocr.Options) (*ocr.OCRResult, error) {
	f.lastRect = r
	return f.Extract(ctx, img, opts)
}

func (f *fakeRecognizer) DetectTextRegions(_ context.Context, img image.Image, level tesseract.PageIteratorLevel, minConfidence float64) (*ocr.DetectTextRegionsResult, error) {
	f.lastLevel = level
	f.lastMinCon = minConfidence
	regions := []ocr.TextRegionBox{{Bounds: ocr.Bounds{X1: 2, Y1: 2, X2: 20, Y2: 10}, Confidence: 0.8}}
	return &ocr.DetectTextRegionsResult{Level: level.String(), Regions: regions, Count: len(regions)}, nil
}

func (f *fakeRecognizer) DetectOrientation(context.Context, image.Image) (*ocr.OrientationResult, error) {
	return &ocr.OrientationResult{Degrees: 90, Orientation: "page-right", Script: "Latin"}, nil
}

func (f *fakeRecognizer) Layout(context.Context, image.Image, tesseract.LayoutOptions) ([]tesseract.Block, error) {
	return nil, nil
}

func (f *fakeRecognizer) Render(_ context.Context, _ image.Image, format tesseract.RenderFormat) ([]byte, error) {
	f.lastFormat = format
	return f.rendered, nil
}

func (f *fakeRecognizer) Info() ocr.Info {
	return ocr.Info{TesseractVersion: "5.3.0", Language: "eng", Backend: "fake"}
}

func newTestServer() (*Server, *fakeRecognizer) {
	f := &fakeRecognizer{}
	return New(f, WithVersion("test")), f
}

func TestNew(t *testing.T) {
	s, _ := newTestServer()
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.version != "test" {
		t.Errorf("version: got %s, want test", s.version)
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`, "test-1", "tools/list"},
		{"number id", `{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42), "ping"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil, "initialize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s, _ := newTestServer()
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
	result := resp.Result.(map[string]interface{})
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "tessgo" || info["version"] != "test" {
		t.Errorf("serverInfo: got %v", info)
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s, _ := newTestServer()
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: "ping-1", Method: "ping"})
	if resp == nil || resp.Error != nil || resp.ID != "ping-1" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s, _ := newTestServer()
	if resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"}); resp != nil {
		t.Errorf("notification should not get a response, got %+v", resp)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s, _ := newTestServer()
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 3, Method: "resources/list"})
	if resp == nil || resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Code: got %d, want -32601", resp.Error.Code)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s, _ := newTestServer()
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	tools, ok := resp.Result.(map[string]interface{})["tools"].([]Tool)
	if !ok || len(tools) != len(GetToolDefinitions()) {
		t.Errorf("tools/list returned %v", resp.Result)
	}
}

func TestServe(t *testing.T) {
	s, _ := newTestServer()
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		``,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d responses, want 3:\n%s", len(lines), out.String())
	}
	var parseErr MCPResponse
	if err := json.Unmarshal([]byte(lines[1]), &parseErr); err != nil {
		t.Fatal(err)
	}
	if parseErr.Error == nil || parseErr.Error.Code != -32700 {
		t.Errorf("malformed line should yield a parse error, got %s", lines[1])
	}
	var pong MCPResponse
	if err := json.Unmarshal([]byte(lines[2]), &pong); err != nil {
		t.Fatal(err)
	}
	if pong.ID != float64(2) || pong.Error != nil {
		t.Errorf("unexpected ping response %s", lines[2])
	}
}

func TestServe_CanceledContext(t *testing.T) {
	s, _ := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := s.Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	if err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("no response expected after cancel, got %s", out.String())
	}
}
