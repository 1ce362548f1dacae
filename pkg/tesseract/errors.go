package tesseract

import (
	"errors"

	"github.com/ironsheep/tessgo/internal/native"
)

var (
	// ErrClosed is returned when operating on a closed engine, page or renderer.
	ErrClosed = native.ErrClosed

	// ErrPageInProgress is returned by Process while another page from the
	// same engine is still open.
	ErrPageInProgress = errors.New("tesseract: only one page can be processed at once; close the previous page first")

	// ErrInvalidRegion is returned when a region lies outside the image or is
	// empty.
	ErrInvalidRegion = errors.New("tesseract: region must lie within the image bounds")

	// ErrInit is returned when the engine fails to initialise, usually because
	// the language data cannot be found.
	ErrInit = errors.New("tesseract: failed to initialise engine")

	// ErrDocumentInProgress is returned by BeginDocument while a document is
	// already open on the renderer.
	ErrDocumentInProgress = errors.New("tesseract: a document is already open on this renderer")

	// ErrNoDocument is returned by AddPage and EndDocument when no document
	// is open.
	ErrNoDocument = errors.New("tesseract: no document is open on this renderer")

	// ErrOsdOnly is returned when recognition is requested on a page
	// processed in PageSegOsdOnly mode.
	ErrOsdOnly = errors.New("tesseract: recognition is unavailable in osd-only mode")
)
