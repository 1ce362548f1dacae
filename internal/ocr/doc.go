// Package ocr is the high-level OCR service used by the CLI and the MCP
// server.
//
// A Service owns a small pool of Tesseract engines (see pkg/tesseract) so that
// concurrent requests do not pay the engine initialization cost each time and
// never share an engine. Images are preprocessed with internal/imaging before
// they reach an engine.
//
// # Backends
//
// Text extraction and region detection go through a Backend. The default
// "native" backend uses the purego binding in pkg/tesseract. Building with the
// gosseract tag adds a "gosseract" backend on top of the cgo client, which is
// useful for comparing results. Layout, orientation and rendering always use
// the native binding.
//
// # Prerequisites
//
// The Tesseract and Leptonica shared libraries must be installed along with
// traineddata for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Orientation detection additionally needs osd.traineddata.
//
// # Coordinates and Confidence
//
// Bounding boxes are always reported in the coordinates of the input image,
// also for region OCR. Confidences are in the range 0..1.
package ocr
