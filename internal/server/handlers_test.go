package server

import (
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ironsheep/tessgo/internal/imaging"
	"github.com/ironsheep/tessgo/internal/ocr"
	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatal(err)
	}
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// toolResult decodes the JSON text of a successful tool response into v.
func toolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content %v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
}

func expectToolError(t *testing.T, resp *MCPResponse, contains string) {
	t.Helper()

	if resp.Error == nil {
		t.Fatal("Expected error response")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Code: got %d, want -32000", resp.Error.Code)
	}
	data, _ := resp.Error.Data.(string)
	if !strings.Contains(data, contains) {
		t.Errorf("error data %q does not mention %q", data, contains)
	}
}

func TestHandleToolsCall_ImageInfo(t *testing.T) {
	s, _ := newTestServer()
	imgPath := createTestImageFile(t, 200, 150, color.RGBA{0, 255, 0, 255})

	var info imaging.ImageInfo
	toolResult(t, callTool(t, s, "image_info", map[string]interface{}{"path": imgPath}), &info)

	if info.Width != 200 || info.Height != 150 {
		t.Errorf("Dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" || info.MimeType != "image/png" {
		t.Errorf("Format: got %s (%s)", info.Format, info.MimeType)
	}
}

func TestHandleToolsCall_ImageInfoPage(t *testing.T) {
	s, _ := newTestServer()
	imgPath := createTestImageFile(t, 20, 10, color.White)

	var info imaging.ImageInfo
	toolResult(t, callTool(t, s, "image_info", map[string]interface{}{"path": imgPath, "page": 1}), &info)
	if info.Width != 20 || info.Height != 10 {
		t.Errorf("Dimensions: got %dx%d, want 20x10", info.Width, info.Height)
	}

	expectToolError(t, callTool(t, s, "image_info", map[string]interface{}{
		"path": imgPath, "page": 2,
	}), "out of range")
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s, _ := newTestServer()
	resp := callTool(t, s, "ocr_text", map[string]interface{}{"path": "/nonexistent/image.png"})
	expectToolError(t, resp, "image.png")
}

func TestHandleToolsCall_MissingPath(t *testing.T) {
	s, _ := newTestServer()
	expectToolError(t, callTool(t, s, "ocr_text", nil), "path is required")
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s, _ := newTestServer()
	expectToolError(t, callTool(t, s, "image_load", nil), "unknown tool")
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s, _ := newTestServer()
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected invalid params error, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_OCRText(t *testing.T) {
	s, f := newTestServer()
	imgPath := createTestImageFile(t, 100, 80, color.White)

	var result ocr.OCRResult
	toolResult(t, callTool(t, s, "ocr_text", map[string]interface{}{
		"path":          imgPath,
		"page_seg_mode": "single_line",
		"preprocess":    map[string]interface{}{"grayscale": true, "scale": 2},
	}), &result)

	if result.FullText != "hello world\n" || len(result.Regions) != 1 {
		t.Errorf("unexpected result %+v", result)
	}
	if f.lastMode != tesseract.PageSegSingleLine {
		t.Errorf("mode: got %v, want single-line", f.lastMode)
	}
	if f.lastOpts.Pipeline == nil || !f.lastOpts.Pipeline.Grayscale || f.lastOpts.Pipeline.Scale != 2 {
		t.Errorf("pipeline not forwarded: %+v", f.lastOpts.Pipeline)
	}
}

func TestHandleToolsCall_OCRText_DefaultMode(t *testing.T) {
	s, f := newTestServer()
	imgPath := createTestImageFile(t, 20, 20, color.White)

	var result ocr.OCRResult
	toolResult(t, callTool(t, s, "ocr_text", map[string]interface{}{"path": imgPath}), &result)
	if f.lastMode != tesseract.PageSegOsdOnly {
		t.Errorf("empty mode should defer to the service default, got %v", f.lastMode)
	}
	if f.lastOpts.Pipeline != nil {
		t.Errorf("no preprocess argument should mean no pipeline")
	}
}

func TestHandleToolsCall_OCRText_BadMode(t *testing.T) {
	s, _ := newTestServer()
	imgPath := createTestImageFile(t, 20, 20, color.White)

	expectToolError(t, callTool(t, s, "ocr_text", map[string]interface{}{
		"path": imgPath, "page_seg_mode": "osd-only",
	}), "ocr_orientation")
	expectToolError(t, callTool(t, s, "ocr_text", map[string]interface{}{
		"path": imgPath, "page_seg_mode": "sideways",
	}), "sideways")
}

func TestHandleToolsCall_OCRText_RecognizerError(t *testing.T) {
	s, f := newTestServer()
	f.err = errors.New("engine exploded")
	imgPath := createTestImageFile(t, 20, 20, color.White)

	expectToolError(t, callTool(t, s, "ocr_text", map[string]interface{}{"path": imgPath}), "engine exploded")
}

func TestHandleToolsCall_OCRRegion(t *testing.T) {
	s, f := newTestServer()
	imgPath := createTestImageFile(t, 100, 80, color.White)

	var result ocr.OCRResult
	toolResult(t, callTool(t, s, "ocr_region", map[string]interface{}{
		"path": imgPath, "x1": 10, "y1": 5, "x2": 60, "y2": 40,
	}), &result)
	if f.lastRect != image.Rect(10, 5, 60, 40) {
		t.Errorf("rect: got %v", f.lastRect)
	}
}

func TestHandleToolsCall_OCRRegion_Named(t *testing.T) {
	s, f := newTestServer()
	imgPath := createTestImageFile(t, 100, 80, color.White)

	var result ocr.OCRResult
	toolResult(t, callTool(t, s, "ocr_region", map[string]interface{}{
		"path": imgPath, "region": "top-left",
	}), &result)
	if f.lastRect != image.Rect(0, 0, 50, 40) {
		t.Errorf("rect: got %v, want top-left quadrant", f.lastRect)
	}
}

func TestHandleToolsCall_OCRRegion_Invalid(t *testing.T) {
	s, _ := newTestServer()
	imgPath := createTestImageFile(t, 100, 80, color.White)

	expectToolError(t, callTool(t, s, "ocr_region", map[string]interface{}{
		"path": imgPath, "x1": 50, "y1": 5, "x2": 10, "y2": 40,
	}), "invalid region")
}

func TestHandleToolsCall_DetectTextRegions(t *testing.T) {
	s, f := newTestServer()
	imgPath := createTestImageFile(t, 100, 80, color.White)

	var result ocr.DetectTextRegionsResult
	toolResult(t, callTool(t, s, "ocr_detect_regions", map[string]interface{}{"path": imgPath}), &result)
	if f.lastLevel != tesseract.LevelBlock || f.lastMinCon != 0.5 {
		t.Errorf("defaults: level %v, min confidence %v", f.lastLevel, f.lastMinCon)
	}
	if result.Count != 1 || result.Level != "block" {
		t.Errorf("unexpected result %+v", result)
	}

	toolResult(t, callTool(t, s, "ocr_detect_regions", map[string]interface{}{
		"path": imgPath, "level": "line", "min_confidence": 0,
	}), &result)
	if f.lastLevel != tesseract.LevelTextLine || f.lastMinCon != 0 {
		t.Errorf("explicit: level %v, min confidence %v", f.lastLevel, f.lastMinCon)
	}
}

func TestHandleToolsCall_Layout(t *testing.T) {
	s, _ := newTestServer()
	imgPath := createTestImageFile(t, 64, 48, color.White)

	var result LayoutResult
	toolResult(t, callTool(t, s, "ocr_layout", map[string]interface{}{"path": imgPath}), &result)
	if result.Width != 64 || result.Height != 48 {
		t.Errorf("size: got %dx%d", result.Width, result.Height)
	}
	if result.Blocks == nil {
		t.Error("blocks should encode as an empty array, not null")
	}
}

func TestHandleToolsCall_Orientation(t *testing.T) {
	s, _ := newTestServer()
	imgPath := createTestImageFile(t, 20, 20, color.White)

	var result ocr.OrientationResult
	toolResult(t, callTool(t, s, "ocr_orientation", map[string]interface{}{"path": imgPath}), &result)
	if result.Degrees != 90 || result.Script != "Latin" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestHandleToolsCall_Render(t *testing.T) {
	s, f := newTestServer()
	imgPath := createTestImageFile(t, 20, 20, color.White)

	f.rendered = []byte("<html>hocr</html>")
	var result RenderResult
	toolResult(t, callTool(t, s, "ocr_render", map[string]interface{}{"path": imgPath}), &result)
	if f.lastFormat != tesseract.FormatHOCR {
		t.Errorf("default format: got %s", f.lastFormat)
	}
	if result.Encoding != "utf-8" || result.Content != "<html>hocr</html>" || result.Bytes != 17 {
		t.Errorf("unexpected result %+v", result)
	}

	f.rendered = []byte("%PDF-1.5\n")
	toolResult(t, callTool(t, s, "ocr_render", map[string]interface{}{"path": imgPath, "format": "pdf"}), &result)
	if result.Encoding != "base64" {
		t.Errorf("pdf output should be base64, got %s", result.Encoding)
	}
	decoded, err := base64.StdEncoding.DecodeString(result.Content)
	if err != nil || string(decoded) != "%PDF-1.5\n" {
		t.Errorf("content did not round trip: %q, %v", decoded, err)
	}

	expectToolError(t, callTool(t, s, "ocr_render", map[string]interface{}{"path": imgPath, "format": "docx"}), "docx")
}

func TestHandleToolsCall_Annotate(t *testing.T) {
	s, f := newTestServer()
	imgPath := createTestImageFile(t, 40, 30, color.White)

	var result struct {
		Width       int                 `json:"width"`
		Height      int                 `json:"height"`
		ImageBase64 string              `json:"image_base64"`
		Level       string              `json:"level"`
		Boxes       []ocr.TextRegionBox `json:"boxes"`
	}
	toolResult(t, callTool(t, s, "ocr_annotate", map[string]interface{}{
		"path": imgPath, "numbered": true, "color": "#00F",
	}), &result)

	if f.lastLevel != tesseract.LevelWord {
		t.Errorf("default level: got %v, want word", f.lastLevel)
	}
	if result.Width != 40 || result.Height != 30 || len(result.Boxes) != 1 {
		t.Errorf("unexpected result %+v", result)
	}
	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("annotated image is not a PNG: %v", err)
	}
	if r, g, b, _ := img.At(2, 5).RGBA(); r != 0 || g != 0 || b != 0xffff {
		t.Errorf("box outline should be blue at (2,5), got %d,%d,%d", r>>8, g>>8, b>>8)
	}

	expectToolError(t, callTool(t, s, "ocr_annotate", map[string]interface{}{
		"path": imgPath, "color": "not-a-color",
	}), "color")
}

func TestHandleToolsCall_Info(t *testing.T) {
	s, _ := newTestServer()

	var info ocr.Info
	toolResult(t, callTool(t, s, "ocr_info", nil), &info)
	if info.TesseractVersion != "5.3.0" || info.Backend != "fake" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestHandleToolsCall_PageOutOfRange(t *testing.T) {
	s, _ := newTestServer()
	imgPath := createTestImageFile(t, 20, 20, color.White)

	expectToolError(t, callTool(t, s, "ocr_text", map[string]interface{}{
		"path": imgPath, "page": 3,
	}), "out of range")
}

func TestExecuteTool_AllTools(t *testing.T) {
	s, f := newTestServer()
	f.rendered = []byte("text")
	imgPath := createTestImageFile(t, 50, 50, color.White)

	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			args, _ := json.Marshal(map[string]interface{}{"path": imgPath, "x2": 10, "y2": 10})
			result, err := s.executeTool(context.Background(), tool.Name, args)
			if err != nil {
				t.Fatalf("executeTool: %v", err)
			}
			if result == nil {
				t.Error("nil result")
			}
		})
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s, _ := newTestServer()
	if _, err := s.executeTool(context.Background(), "ocr_text", json.RawMessage(`{invalid}`)); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
