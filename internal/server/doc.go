// Package server implements an MCP (Model Context Protocol) server that
// exposes OCR over stdio.
//
// The server speaks JSON-RPC 2.0, one message per line: requests arrive on
// stdin and responses are written to stdout. Logs go to stderr so they never
// corrupt the protocol stream.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_info: Dimensions, format and file size of an input
//   - ocr_text: Full-page text with word boxes and confidences
//   - ocr_region: Text inside a rectangle or a named region
//   - ocr_detect_regions: Text boxes at block, paragraph, line or word level
//   - ocr_layout: Block / paragraph / line / word tree
//   - ocr_orientation: Page rotation and script
//   - ocr_render: hOCR, ALTO, TSV, PDF and other Tesseract outputs
//   - ocr_annotate: The page with recognized boxes drawn on it
//   - ocr_info: Tesseract version and service configuration
//
// Tools that take a path accept images (PNG, JPEG, GIF, TIFF, BMP, WebP)
// and PDFs; the optional "page" argument (1-based) selects a page of a
// multi-page input.
//
// # Tool Results
//
// Results are returned as JSON text content:
//
//	{"content": [{"type": "text", "text": "<JSON result>"}]}
//
// Tool failures are JSON-RPC errors with code -32000.
package server
