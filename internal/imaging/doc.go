// Package imaging loads and prepares page images for OCR.
//
// It sits between the outer surfaces (CLI and MCP server) and the Tesseract
// binding: documents are read from disk, sniffed by content, rasterized when
// they are PDFs, optionally cropped and preprocessed, and handed over as
// plain image.Image values. Results can be drawn back onto a page with
// Annotate.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. Regions
// use image.Rectangle semantics: Min is inclusive, Max is exclusive.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are
// stateless and never modify their input image.
//
// # Supported Inputs
//
// PNG, JPEG, GIF, TIFF, BMP and WebP are decoded in Go. Multi-page TIFF files
// are read through Leptonica when the native library is available. PDF pages
// are rasterized with MuPDF (go-fitz) at the requested DPI.
package imaging
