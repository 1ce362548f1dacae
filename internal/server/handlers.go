package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/ironsheep/tessgo/internal/imaging"
	"github.com/ironsheep/tessgo/internal/ocr"
	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "ocr_text").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.Info().Str("tool", params.Name).Dur("took", time.Since(start)).Msg("tool call")

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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)
	case "ocr_text":
		return s.handleOCRText(ctx, args)
	case "ocr_region":
		return s.handleOCRRegion(ctx, args)
	case "ocr_detect_regions":
		return s.handleDetectRegions(ctx, args)
	case "ocr_layout":
		return s.handleLayout(ctx, args)
	case "ocr_orientation":
		return s.handleOrientation(ctx, args)
	case "ocr_render":
		return s.handleRender(ctx, args)
	case "ocr_annotate":
		return s.handleAnnotate(ctx, args)
	case "ocr_info":
		return s.ocr.Info(), nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// pageArgs is embedded by every tool that reads an input file.
type pageArgs struct {
	Path string `json:"path"`
	Page int    `json:"page"`
}

// loadPage returns the requested 1-based page. The first page is served
// from the cache.
func (s *Server) loadPage(a pageArgs) (image.Image, error) {
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Page <= 1 {
		return s.cache.Load(a.Path)
	}
	pages, err := imaging.LoadDocument(a.Path, s.dpi)
	if err != nil {
		return nil, err
	}
	if a.Page > len(pages) {
		return nil, fmt.Errorf("page %d out of range: %s has %d page(s)", a.Page, a.Path, len(pages))
	}
	return pages[a.Page-1], nil
}

func parseMode(s string) (tesseract.PageSegMode, error) {
	if s == "" {
		return tesseract.PageSegOsdOnly, nil // service default
	}
	m, err := tesseract.ParsePageSegMode(s)
	if err != nil {
		return 0, err
	}
	if m == tesseract.PageSegOsdOnly {
		return 0, fmt.Errorf("page_seg_mode %s yields no text; use ocr_orientation", s)
	}
	return m, nil
}

func parseLevel(s, def string) (tesseract.PageIteratorLevel, error) {
	if s == "" {
		s = def
	}
	return tesseract.ParseLevel(s)
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadPage(a)
	if err != nil {
		return nil, err
	}
	return imaging.DescribePage(a.Path, img)
}

type ocrTextArgs struct {
	pageArgs
	PageSegMode string            `json:"page_seg_mode"`
	Preprocess  *imaging.Pipeline `json:"preprocess"`
}

func (s *Server) handleOCRText(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	mode, err := parseMode(a.PageSegMode)
	if err != nil {
		return nil, err
	}
	img, err := s.loadPage(a.pageArgs)
	if err != nil {
		return nil, err
	}
	return s.ocr.Extract(ctx, img, ocr.Options{PageSegMode: mode, Pipeline: a.Preprocess})
}

type ocrRegionArgs struct {
	pageArgs
	X1          int    `json:"x1"`
	Y1          int    `json:"y1"`
	X2          int    `json:"x2"`
	Y2          int    `json:"y2"`
	Region      string `json:"region"`
	PageSegMode string `json:"page_seg_mode"`
}

func (s *Server) handleOCRRegion(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	mode, err := parseMode(a.PageSegMode)
	if err != nil {
		return nil, err
	}
	img, err := s.loadPage(a.pageArgs)
	if err != nil {
		return nil, err
	}

	r := image.Rect(a.X1, a.Y1, a.X2, a.Y2)
	if a.Region != "" {
		if r, err = imaging.NamedRegion(img, a.Region); err != nil {
			return nil, err
		}
	} else if a.X1 >= a.X2 || a.Y1 >= a.Y2 {
		return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return s.ocr.ExtractRegion(ctx, img, r, ocr.Options{PageSegMode: mode})
}

type detectRegionsArgs struct {
	pageArgs
	Level         string   `json:"level"`
	MinConfidence *float64 `json:"min_confidence"`
}

func (s *Server) handleDetectRegions(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a detectRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	level, err := parseLevel(a.Level, "block")
	if err != nil {
		return nil, err
	}
	minConf := 0.5
	if a.MinConfidence != nil {
		minConf = *a.MinConfidence
	}
	img, err := s.loadPage(a.pageArgs)
	if err != nil {
		return nil, err
	}
	return s.ocr.DetectTextRegions(ctx, img, level, minConf)
}

type layoutArgs struct {
	pageArgs
	Symbols     bool `json:"symbols"`
	Choices     bool `json:"choices"`
	WordDetails bool `json:"word_details"`
}

// LayoutResult wraps the block tree for the ocr_layout tool.
type LayoutResult struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Blocks []tesseract.Block `json:"blocks"`
}

func (s *Server) handleLayout(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a layoutArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadPage(a.pageArgs)
	if err != nil {
		return nil, err
	}
	blocks, err := s.ocr.Layout(ctx, img, tesseract.LayoutOptions{
		Symbols:     a.Symbols,
		Choices:     a.Choices,
		WordDetails: a.WordDetails,
	})
	if err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []tesseract.Block{}
	}
	b := img.Bounds()
	return &LayoutResult{Width: b.Dx(), Height: b.Dy(), Blocks: blocks}, nil
}

func (s *Server) handleOrientation(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadPage(a)
	if err != nil {
		return nil, err
	}
	return s.ocr.DetectOrientation(ctx, img)
}

type renderArgs struct {
	pageArgs
	Format string `json:"format"`
}

// RenderResult carries rendered output. Content is plain text for text
// formats and base64 for binary ones.
type RenderResult struct {
	Format   string `json:"format"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	Bytes    int    `json:"bytes"`
}

func (s *Server) handleRender(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		a.Format = string(tesseract.FormatHOCR)
	}
	format, err := tesseract.ParseRenderFormat(a.Format)
	if err != nil {
		return nil, err
	}
	img, err := s.loadPage(a.pageArgs)
	if err != nil {
		return nil, err
	}
	data, err := s.ocr.Render(ctx, img, format)
	if err != nil {
		return nil, err
	}

	res := &RenderResult{Format: string(format), Bytes: len(data)}
	if utf8.Valid(data) && format != tesseract.FormatPDF && format != tesseract.FormatPDFTextOnly {
		res.Encoding = "utf-8"
		res.Content = string(data)
	} else {
		res.Encoding = "base64"
		res.Content = base64.StdEncoding.EncodeToString(data)
	}
	return res, nil
}

type annotateArgs struct {
	pageArgs
	Level         string  `json:"level"`
	MinConfidence float64 `json:"min_confidence"`
	Color         string  `json:"color"`
	Numbered      bool    `json:"numbered"`
}

// AnnotateResult is the annotated page plus the boxes that were drawn.
type AnnotateResult struct {
	*imaging.EncodedImage
	Level string              `json:"level"`
	Boxes []ocr.TextRegionBox `json:"boxes"`
}

func (s *Server) handleAnnotate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a annotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	level, err := parseLevel(a.Level, "word")
	if err != nil {
		return nil, err
	}
	img, err := s.loadPage(a.pageArgs)
	if err != nil {
		return nil, err
	}
	found, err := s.ocr.DetectTextRegions(ctx, img, level, a.MinConfidence)
	if err != nil {
		return nil, err
	}

	boxes := make([]imaging.Box, len(found.Regions))
	for i, r := range found.Regions {
		boxes[i] = imaging.Box{Rect: r.Bounds.Rect()}
		if a.Numbered {
			boxes[i].Label = strconv.Itoa(i + 1)
		}
	}
	annotated, err := imaging.Annotate(img, boxes, a.Color, 2)
	if err != nil {
		return nil, err
	}
	enc, err := imaging.EncodePNG(annotated)
	if err != nil {
		return nil, err
	}
	return &AnnotateResult{EncodedImage: enc, Level: found.Level, Boxes: found.Regions}, nil
}
