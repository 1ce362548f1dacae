package tesseract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/tessgo/internal/native"
)

// ResultRenderer writes recognized pages to an output document.
type ResultRenderer interface {
	// BeginDocument starts a new output document.
	BeginDocument(title string) error
	// AddPage recognizes page if needed and appends it to the document.
	AddPage(page *Page) error
	// EndDocument finishes and flushes the document.
	EndDocument() error
	// PageNumber is the zero based index of the last page added to the
	// open document, or -1 when no document is open or no page was added.
	PageNumber() int
	Close() error
}

// RenderFormat names an output format.
type RenderFormat string

const (
	FormatText        RenderFormat = "txt"
	FormatHOCR        RenderFormat = "hocr"
	FormatPDF         RenderFormat = "pdf"
	FormatPDFTextOnly RenderFormat = "pdf-textonly"
	FormatUNLV        RenderFormat = "unlv"
	FormatBox         RenderFormat = "box"
	FormatAlto        RenderFormat = "alto"
	FormatTsv         RenderFormat = "tsv"
	FormatLSTMBox     RenderFormat = "lstmbox"
	FormatWordStrBox  RenderFormat = "wordstrbox"
)

// RenderFormats lists every supported format.
var RenderFormats = []RenderFormat{
	FormatText, FormatHOCR, FormatPDF, FormatPDFTextOnly, FormatUNLV,
	FormatBox, FormatAlto, FormatTsv, FormatLSTMBox, FormatWordStrBox,
}

// ParseRenderFormat parses a format name.
func ParseRenderFormat(s string) (RenderFormat, error) {
	f := RenderFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "text" {
		return FormatText, nil
	}
	for _, known := range RenderFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown render format %q", s)
}

// Renderer is a single native result renderer. Output goes to outputBase
// plus the format's extension; an outputBase of "-" writes to stdout.
type Renderer struct {
	life    *native.Lifetime
	format  RenderFormat
	docOpen bool
	pages   int
}

func deleteRenderer(h uintptr) {
	native.Tess.DeleteResultRenderer(h)
}

func newRenderer(format RenderFormat, create func() uintptr) (*Renderer, error) {
	if err := native.Load(); err != nil {
		return nil, err
	}
	h := create()
	if h == 0 {
		return nil, fmt.Errorf("tesseract: failed to create %s renderer", format)
	}
	return &Renderer{life: native.NewLifetime("Renderer", h, deleteRenderer), format: format}, nil
}

// NewTextRenderer writes plain text to outputBase.txt.
func NewTextRenderer(outputBase string) (*Renderer, error) {
	return newRenderer(FormatText, func() uintptr { return native.Tess.TextRendererCreate(outputBase) })
}

// NewHOCRRenderer writes hOCR to outputBase.hocr, with font details when
// fontInfo is set.
func NewHOCRRenderer(outputBase string, fontInfo bool) (*Renderer, error) {
	return newRenderer(FormatHOCR, func() uintptr {
		return native.Tess.HOCRRendererCreate2(outputBase, native.Bool(fontInfo))
	})
}

// NewPDFRenderer writes a searchable PDF to outputBase.pdf. fontDir is the
// directory holding pdf.ttf, usually the tessdata directory. textOnly omits
// the page images.
func NewPDFRenderer(outputBase, fontDir string, textOnly bool) (*Renderer, error) {
	format := FormatPDF
	if textOnly {
		format = FormatPDFTextOnly
	}
	return newRenderer(format, func() uintptr {
		return native.Tess.PDFRendererCreate(outputBase, fontDir, native.Bool(textOnly))
	})
}

// NewUNLVRenderer writes UNLV text to outputBase.unlv.
func NewUNLVRenderer(outputBase string) (*Renderer, error) {
	return newRenderer(FormatUNLV, func() uintptr { return native.Tess.UnlvRendererCreate(outputBase) })
}

// NewBoxRenderer writes a box file to outputBase.box.
func NewBoxRenderer(outputBase string) (*Renderer, error) {
	return newRenderer(FormatBox, func() uintptr { return native.Tess.BoxTextRendererCreate(outputBase) })
}

// NewAltoRenderer writes ALTO XML to outputBase.xml.
func NewAltoRenderer(outputBase string) (*Renderer, error) {
	return newRenderer(FormatAlto, func() uintptr { return native.Tess.AltoRendererCreate(outputBase) })
}

// NewTsvRenderer writes tab separated values to outputBase.tsv.
func NewTsvRenderer(outputBase string) (*Renderer, error) {
	return newRenderer(FormatTsv, func() uintptr { return native.Tess.TsvRendererCreate(outputBase) })
}

// NewLSTMBoxRenderer writes an LSTM training box file.
func NewLSTMBoxRenderer(outputBase string) (*Renderer, error) {
	return newRenderer(FormatLSTMBox, func() uintptr { return native.Tess.LSTMBoxRendererCreate(outputBase) })
}

// NewWordStrBoxRenderer writes a WordStr box file.
func NewWordStrBoxRenderer(outputBase string) (*Renderer, error) {
	return newRenderer(FormatWordStrBox, func() uintptr { return native.Tess.WordStrBoxRendererCreate(outputBase) })
}

// NewRenderer creates the renderer for format. datapath is only used by the
// PDF formats, to locate pdf.ttf.
func NewRenderer(outputBase, datapath string, format RenderFormat) (*Renderer, error) {
	switch format {
	case FormatText:
		return NewTextRenderer(outputBase)
	case FormatHOCR:
		return NewHOCRRenderer(outputBase, false)
	case FormatPDF:
		return NewPDFRenderer(outputBase, datapath, false)
	case FormatPDFTextOnly:
		return NewPDFRenderer(outputBase, datapath, true)
	case FormatUNLV:
		return NewUNLVRenderer(outputBase)
	case FormatBox:
		return NewBoxRenderer(outputBase)
	case FormatAlto:
		return NewAltoRenderer(outputBase)
	case FormatTsv:
		return NewTsvRenderer(outputBase)
	case FormatLSTMBox:
		return NewLSTMBoxRenderer(outputBase)
	case FormatWordStrBox:
		return NewWordStrBoxRenderer(outputBase)
	}
	return nil, fmt.Errorf("unknown render format %q", format)
}

// Format is the renderer's output format.
func (r *Renderer) Format() RenderFormat { return r.format }

func (r *Renderer) handle() uintptr {
	if r == nil {
		return 0
	}
	return r.life.Handle()
}

func (r *Renderer) BeginDocument(title string) error {
	h := r.handle()
	if h == 0 {
		return ErrClosed
	}
	if r.docOpen {
		return ErrDocumentInProgress
	}
	if native.Tess.RendererBeginDocument(h, title) == 0 {
		return fmt.Errorf("tesseract: %s renderer failed to begin document %q", r.format, title)
	}
	r.docOpen = true
	r.pages = 0
	return nil
}

func (r *Renderer) AddPage(page *Page) error {
	h := r.handle()
	if h == 0 {
		return ErrClosed
	}
	if !r.docOpen {
		return ErrNoDocument
	}
	api, err := page.recognize()
	if err != nil {
		return err
	}
	if native.Tess.RendererAddImage(h, api) == 0 {
		return fmt.Errorf("tesseract: %s renderer failed to add page", r.format)
	}
	r.pages++
	return nil
}

func (r *Renderer) EndDocument() error {
	h := r.handle()
	if h == 0 {
		return ErrClosed
	}
	if !r.docOpen {
		return ErrNoDocument
	}
	r.docOpen = false
	if native.Tess.RendererEndDocument(h) == 0 {
		return fmt.Errorf("tesseract: %s renderer failed to end document", r.format)
	}
	return nil
}

// PageNumber is the 0-based index of the last page added to the open
// document, or -1 when no document is open or no page was added yet.
func (r *Renderer) PageNumber() int {
	if r.handle() == 0 || !r.docOpen {
		return -1
	}
	return r.pages - 1
}

// Close ends any open document and releases the renderer.
func (r *Renderer) Close() error {
	if r == nil || r.handle() == 0 {
		return nil
	}
	var err error
	if r.docOpen {
		err = r.EndDocument()
	}
	r.life.Close()
	return err
}

// AggregateRenderer fans every call out to several renderers.
type AggregateRenderer struct {
	renderers []ResultRenderer
	docOpen   bool
	pages     int
	closed    bool
}

// NewAggregateRenderer combines renderers. Closing the aggregate closes them.
func NewAggregateRenderer(renderers ...ResultRenderer) *AggregateRenderer {
	return &AggregateRenderer{renderers: renderers}
}

// NewRenderers creates one renderer per format writing to outputBase.
func NewRenderers(outputBase, datapath string, formats []RenderFormat) (*AggregateRenderer, error) {
	rs := make([]ResultRenderer, 0, len(formats))
	for _, f := range formats {
		r, err := NewRenderer(outputBase, datapath, f)
		if err != nil {
			for _, made := range rs {
				made.Close()
			}
			return nil, err
		}
		rs = append(rs, r)
	}
	return NewAggregateRenderer(rs...), nil
}

// Renderers returns the combined renderers.
func (a *AggregateRenderer) Renderers() []ResultRenderer { return a.renderers }

func (a *AggregateRenderer) BeginDocument(title string) error {
	if a.closed {
		return ErrClosed
	}
	if a.docOpen {
		return ErrDocumentInProgress
	}
	for i, r := range a.renderers {
		if err := r.BeginDocument(title); err != nil {
			for _, begun := range a.renderers[:i] {
				begun.EndDocument()
			}
			return err
		}
	}
	a.docOpen = true
	a.pages = 0
	return nil
}

func (a *AggregateRenderer) AddPage(page *Page) error {
	if a.closed {
		return ErrClosed
	}
	if !a.docOpen {
		return ErrNoDocument
	}
	for _, r := range a.renderers {
		if err := r.AddPage(page); err != nil {
			return err
		}
	}
	a.pages++
	return nil
}

func (a *AggregateRenderer) EndDocument() error {
	if a.closed {
		return ErrClosed
	}
	if !a.docOpen {
		return ErrNoDocument
	}
	a.docOpen = false
	var errs []error
	for _, r := range a.renderers {
		errs = append(errs, r.EndDocument())
	}
	return errors.Join(errs...)
}

func (a *AggregateRenderer) PageNumber() int {
	if a.closed || !a.docOpen {
		return -1
	}
	return a.pages - 1
}

// Close ends any open document and closes every renderer.
func (a *AggregateRenderer) Close() error {
	if a.closed {
		return nil
	}
	var errs []error
	if a.docOpen {
		errs = append(errs, a.EndDocument())
	}
	for _, r := range a.renderers {
		errs = append(errs, r.Close())
	}
	a.closed = true
	return errors.Join(errs...)
}
