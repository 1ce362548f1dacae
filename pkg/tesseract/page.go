package tesseract

import (
	"fmt"
	"image"

	"github.com/ironsheep/tessgo/internal/native"
	"github.com/ironsheep/tessgo/pkg/leptonica"
)

const (
	xhtmlBeginTag = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<!DOCTYPE html PUBLIC \"-//W3C//DTD XHTML 1.0 Transitional//EN\"\n" +
		"    \"http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd\">\n" +
		"<html xmlns=\"http://www.w3.org/1999/xhtml\" xml:lang=\"en\" lang=\"en\">\n" +
		"<head>\n" +
		"<title></title>\n" +
		"<meta http-equiv=\"Content-Type\" content=\"text/html;charset=utf-8\" />\n" +
		"<meta name='ocr-system' content='tesseract' />\n" +
		"<meta name='ocr-capabilities' content='ocr_page ocr_carea ocr_par ocr_line ocrx_word'/>\n" +
		"</head>\n" +
		"<body>\n"
	xhtmlEndTag = " </body>\n</html>\n"

	htmlBeginTag = "<!DOCTYPE HTML PUBLIC \"-//W3C//DTD HTML 4.01 Transitional//EN\" \"http://www.w3.org/TR/html4/loose.dtd\">\n" +
		"<html>\n" +
		"<head>\n" +
		"<title></title>\n" +
		"<meta http-equiv=\"Content-Type\" content=\"text/html;charset=utf-8\" />\n" +
		"<meta name='ocr-system' content='tesseract'/>\n" +
		"</head>\n" +
		"<body>\n"
	htmlEndTag = "</body>\n</html>\n"
)

// Page is an image loaded into an engine. Closing the page clears the
// engine's results and lets it process the next image.
type Page struct {
	life       *native.Lifetime
	engine     *Engine
	pix        *leptonica.Pix
	inputName  string
	mode       PageSegMode
	region     Rect
	recognized bool
}

func clearEngine(h uintptr) {
	native.Tess.BaseAPIClear(h)
}

func newPage(e *Engine, pix *leptonica.Pix, inputName string, mode PageSegMode) *Page {
	return &Page{
		life:      native.NewLifetime("Page", e.handle(), clearEngine),
		engine:    e,
		pix:       pix,
		inputName: inputName,
		mode:      mode,
	}
}

func (p *Page) handle() uintptr {
	if p == nil {
		return 0
	}
	return p.life.Handle()
}

// Close releases the page's results and every iterator obtained from it.
func (p *Page) Close() error {
	if p == nil {
		return nil
	}
	return p.life.Close()
}

// Closed reports whether the page has been released.
func (p *Page) Closed() bool { return p.handle() == 0 }

// Engine is the engine that produced the page.
func (p *Page) Engine() *Engine { return p.engine }

// Image is the pix being recognized.
func (p *Page) Image() *leptonica.Pix { return p.pix }

// PageSegMode is the segmentation mode the page was processed with.
func (p *Page) PageSegMode() PageSegMode { return p.mode }

// InputName is the name passed with WithInputName.
func (p *Page) InputName() string { return p.inputName }

// RegionOfInterest is the region recognition is limited to.
func (p *Page) RegionOfInterest() Rect { return p.region }

// SetRegionOfInterest limits recognition to r. Results computed for the
// previous region are discarded.
func (p *Page) SetRegionOfInterest(r Rect) error {
	if p.handle() == 0 {
		return ErrClosed
	}
	if !r.Within(p.pix.Width(), p.pix.Height()) {
		return fmt.Errorf("%w: %s in %dx%d image", ErrInvalidRegion, r, p.pix.Width(), p.pix.Height())
	}
	p.applyRegion(r)
	return nil
}

func (p *Page) applyRegion(r Rect) {
	p.region = r
	p.recognized = false
	native.Tess.SetRectangle(p.handle(), int32(r.X1), int32(r.Y1), int32(r.Width), int32(r.Height))
}

// recognize runs recognition once per region.
func (p *Page) recognize() (uintptr, error) {
	h := p.handle()
	if h == 0 {
		return 0, ErrClosed
	}
	if p.mode == PageSegOsdOnly {
		return 0, ErrOsdOnly
	}
	if !p.recognized {
		if native.Tess.Recognize(h, 0) != 0 {
			return 0, fmt.Errorf("tesseract: recognition failed")
		}
		p.recognized = true
	}
	return h, nil
}

func (p *Page) text(get func(h uintptr) uintptr) (string, error) {
	h, err := p.recognize()
	if err != nil {
		return "", err
	}
	return native.TakeText(get(h)), nil
}

// Text returns the recognized text.
func (p *Page) Text() (string, error) {
	return p.text(native.Tess.GetUTF8Text)
}

// HOCRText returns the page as an hOCR document. pageNum is zero based.
// useXHTML selects an XHTML 1.0 wrapper instead of HTML 4.01.
func (p *Page) HOCRText(pageNum int, useXHTML bool) (string, error) {
	body, err := p.text(func(h uintptr) uintptr { return native.Tess.GetHOCRText(h, int32(pageNum)) })
	if err != nil {
		return "", err
	}
	if useXHTML {
		return xhtmlBeginTag + body + xhtmlEndTag, nil
	}
	return htmlBeginTag + body + htmlEndTag, nil
}

// AltoText returns the page as an ALTO XML fragment. pageNum is zero based.
func (p *Page) AltoText(pageNum int) (string, error) {
	return p.text(func(h uintptr) uintptr { return native.Tess.GetAltoText(h, int32(pageNum)) })
}

// TsvText returns tab separated word data. pageNum is zero based.
func (p *Page) TsvText(pageNum int) (string, error) {
	return p.text(func(h uintptr) uintptr { return native.Tess.GetTsvText(h, int32(pageNum)) })
}

// BoxText returns the box file for training. pageNum is zero based.
func (p *Page) BoxText(pageNum int) (string, error) {
	return p.text(func(h uintptr) uintptr { return native.Tess.GetBoxText(h, int32(pageNum)) })
}

// LSTMBoxText returns the LSTM training box file. pageNum is zero based.
func (p *Page) LSTMBoxText(pageNum int) (string, error) {
	return p.text(func(h uintptr) uintptr { return native.Tess.GetLSTMBoxText(h, int32(pageNum)) })
}

// WordStrBoxText returns the WordStr box file. pageNum is zero based.
func (p *Page) WordStrBoxText(pageNum int) (string, error) {
	return p.text(func(h uintptr) uintptr { return native.Tess.GetWordStrBox(h, int32(pageNum)) })
}

// UNLVText returns the text in UNLV format.
func (p *Page) UNLVText() (string, error) {
	return p.text(native.Tess.GetUNLVText)
}

// MeanConfidence is the mean word confidence in the range 0..1.
func (p *Page) MeanConfidence() (float32, error) {
	h, err := p.recognize()
	if err != nil {
		return 0, err
	}
	return float32(native.Tess.MeanTextConf(h)) / 100, nil
}

// SegmentedRegions returns the bounding boxes of the text components found
// at level, in image coordinates.
func (p *Page) SegmentedRegions(level PageIteratorLevel) ([]image.Rectangle, error) {
	h := p.handle()
	if h == 0 {
		return nil, ErrClosed
	}
	boxa := native.Tess.GetComponents(h, int32(level), native.Bool(true), 0, 0)
	if boxa == 0 {
		return nil, nil
	}
	defer native.Lept.BoxaDestroy(&boxa)

	n := int(native.Lept.BoxaGetCount(boxa))
	boxes := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		var x, y, w, ht int32
		if native.Lept.BoxaGetGeom(boxa, int32(i), &x, &y, &w, &ht) != 0 {
			continue
		}
		boxes = append(boxes, image.Rect(int(x), int(y), int(x+w), int(y+ht)))
	}
	return boxes, nil
}

// AnalyseLayout runs layout analysis without recognition. When no layout
// was found the iterator is empty: every method returns a zero value.
func (p *Page) AnalyseLayout() (*PageIterator, error) {
	h := p.handle()
	if h == 0 {
		return nil, ErrClosed
	}
	if p.mode == PageSegOsdOnly {
		return nil, ErrOsdOnly
	}
	return newPageIterator(p, native.Tess.AnalyseLayout(h)), nil
}

// Iterator recognizes the page and returns an iterator over the results.
// When nothing was recognized the iterator is empty.
func (p *Page) Iterator() (*ResultIterator, error) {
	h, err := p.recognize()
	if err != nil {
		return nil, err
	}
	return newResultIterator(p, native.Tess.GetIterator(h)), nil
}

// OSDResult is the outcome of orientation and script detection.
type OSDResult struct {
	// Degrees is the clockwise rotation, one of 0, 90, 180 or 270, that
	// makes the page upright.
	Degrees               int         `json:"degrees"`
	Orientation           Orientation `json:"-"`
	OrientationConfidence float32     `json:"orientation_confidence"`
	Script                string      `json:"script"`
	ScriptConfidence      float32     `json:"script_confidence"`
}

// DetectBestOrientationAndScript runs orientation and script detection. It
// needs the osd traineddata.
func (p *Page) DetectBestOrientationAndScript() (OSDResult, error) {
	h := p.handle()
	if h == 0 {
		return OSDResult{}, ErrClosed
	}
	var (
		deg        int32
		orientConf float32
		script     uintptr
		scriptConf float32
	)
	if native.Tess.DetectOSD(h, &deg, &orientConf, &script, &scriptConf) == 0 {
		return OSDResult{}, fmt.Errorf("tesseract: orientation detection failed; is osd.traineddata installed?")
	}
	return OSDResult{
		Degrees:               int(deg),
		Orientation:           orientationFromDegrees(int(deg)),
		OrientationConfidence: orientConf,
		Script:                native.GoString(script),
		ScriptConfidence:      scriptConf,
	}, nil
}

// DetectBestOrientation returns the page orientation and its confidence.
func (p *Page) DetectBestOrientation() (Orientation, float32, error) {
	r, err := p.DetectBestOrientationAndScript()
	if err != nil {
		return PageUp, 0, err
	}
	return r.Orientation, r.OrientationConfidence, nil
}

// ThresholdedImage returns the binarized image Tesseract recognized. The
// caller closes it.
func (p *Page) ThresholdedImage() (*leptonica.Pix, error) {
	h, err := p.recognize()
	if err != nil {
		return nil, err
	}
	pix := native.Tess.GetThresholded(h)
	if pix == 0 {
		return nil, fmt.Errorf("tesseract: no thresholded image")
	}
	return leptonica.WrapPix(pix), nil
}
