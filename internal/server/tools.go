package server

import (
	"github.com/ironsheep/tessgo/internal/imaging"
	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func enumProp(description string, values []string, def string) map[string]interface{} {
	p := prop("string", description)
	p["enum"] = values
	if def != "" {
		p["default"] = def
	}
	return p
}

func schema(required []string, props map[string]interface{}) map[string]interface{} {
	props["path"] = prop("string", "Absolute path to the image or PDF file")
	props["page"] = prop("integer", "1-based page of a multi-page TIFF or PDF. Default 1")
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   append([]string{"path"}, required...),
	}
}

var (
	levelNames      = []string{"block", "paragraph", "textline", "word", "symbol"}
	pageSegModeNote = "Tesseract page segmentation mode, e.g. auto, single_block, single_line, sparse_text"
)

func renderFormatNames() []string {
	names := make([]string, len(tesseract.RenderFormats))
	for i, f := range tesseract.RenderFormats {
		names[i] = string(f)
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_info",
			Description: "Get the dimensions, detected format and file size of an image or PDF.",
			InputSchema: schema(nil, map[string]interface{}{}),
		},
		{
			Name: "ocr_text",
			Description: "Recognize all text on a page. Returns the full text, the mean confidence (0-1) " +
				"and every word with its bounding box and confidence.",
			InputSchema: schema(nil, map[string]interface{}{
				"page_seg_mode": prop("string", pageSegModeNote),
				"preprocess": map[string]interface{}{
					"type":        "object",
					"description": "Optional preprocessing: scale, grayscale, contrast, blur, sharpen, threshold, invert",
				},
			}),
		},
		{
			Name: "ocr_region",
			Description: "Recognize text inside a rectangle (x1,y1 inclusive; x2,y2 exclusive) or a named region. " +
				"Word boxes are reported in page coordinates.",
			InputSchema: schema(nil, map[string]interface{}{
				"x1":            prop("integer", "Left edge X coordinate (0-based)"),
				"y1":            prop("integer", "Top edge Y coordinate (0-based)"),
				"x2":            prop("integer", "Right edge X coordinate (exclusive)"),
				"y2":            prop("integer", "Bottom edge Y coordinate (exclusive)"),
				"region":        enumProp("Named region used instead of coordinates", imaging.RegionNames, ""),
				"page_seg_mode": prop("string", pageSegModeNote),
			}),
		},
		{
			Name:        "ocr_detect_regions",
			Description: "Find where text is without returning it. Returns bounding boxes at the requested level.",
			InputSchema: schema(nil, map[string]interface{}{
				"level":          enumProp("Granularity of the boxes", levelNames, "block"),
				"min_confidence": prop("number", "Minimum confidence (0-1). Default 0.5"),
			}),
		},
		{
			Name:        "ocr_layout",
			Description: "Return the page structure: blocks, paragraphs, lines and words with text, confidence and bounds.",
			InputSchema: schema(nil, map[string]interface{}{
				"symbols":      prop("boolean", "Include individual characters"),
				"choices":      prop("boolean", "Include alternative readings for each character"),
				"word_details": prop("boolean", "Include font, language and dictionary flags for words"),
			}),
		},
		{
			Name:        "ocr_orientation",
			Description: "Detect page rotation (0, 90, 180, 270 degrees) and the dominant script. Needs osd traineddata.",
			InputSchema: schema(nil, map[string]interface{}{}),
		},
		{
			Name:        "ocr_render",
			Description: "Render the page in a Tesseract output format. Binary formats (pdf) are returned base64-encoded.",
			InputSchema: schema([]string{"format"}, map[string]interface{}{
				"format": enumProp("Output format", renderFormatNames(), string(tesseract.FormatHOCR)),
			}),
		},
		{
			Name:        "ocr_annotate",
			Description: "Draw recognized text boxes onto the page and return it as a base64-encoded PNG.",
			InputSchema: schema(nil, map[string]interface{}{
				"level":          enumProp("Granularity of the boxes", levelNames, "word"),
				"min_confidence": prop("number", "Minimum confidence (0-1). Default 0"),
				"color":          prop("string", "Box color as #RRGGBB or #RRGGBBAA. Default #FF0000"),
				"numbered":       prop("boolean", "Label boxes with their index"),
			}),
		},
		{
			Name:        "ocr_info",
			Description: "Report the Tesseract version, language, engine pool and supported output formats.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
