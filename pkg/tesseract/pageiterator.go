package tesseract

import (
	"image"

	"github.com/ironsheep/tessgo/internal/native"
	"github.com/ironsheep/tessgo/pkg/leptonica"
)

// Cursor is the traversal protocol shared by PageIterator and
// ResultIterator.
type Cursor interface {
	Begin()
	Next(level PageIteratorLevel) bool
	IsAtBeginningOf(level PageIteratorLevel) bool
	IsAtFinalOf(level, element PageIteratorLevel) bool
}

// nextWithin moves to the next element without leaving the enclosing
// object at level.
func nextWithin(c Cursor, level, element PageIteratorLevel) bool {
	if c.IsAtFinalOf(level, element) {
		return false
	}
	return c.Next(element)
}

// ElementProperties describes the orientation of the current block.
type ElementProperties struct {
	Orientation      Orientation      `json:"orientation"`
	WritingDirection WritingDirection `json:"writing_direction"`
	TextLineOrder    TextLineOrder    `json:"text_line_order"`
	DeskewAngle      float32          `json:"deskew_angle"`
}

// PageIterator walks the layout of a page. It is closed with its page.
type PageIterator struct {
	life   *native.Lifetime
	page   *Page
	result bool
}

func deletePageIterator(h uintptr) {
	native.Tess.PageIteratorDelete(h)
}

func newPageIterator(p *Page, h uintptr) *PageIterator {
	it := &PageIterator{life: native.NewLifetime("PageIterator", h, deletePageIterator), page: p}
	p.life.Adopt(it.life)
	return it
}

// handle returns the TessPageIterator view of the iterator.
func (it *PageIterator) handle() uintptr {
	if it == nil {
		return 0
	}
	h := it.life.Handle()
	if h == 0 || !it.result {
		return h
	}
	return native.Tess.ResultIteratorPageView(h)
}

// Close releases the iterator.
func (it *PageIterator) Close() error {
	if it == nil {
		return nil
	}
	return it.life.Close()
}

// Closed reports whether the iterator has been released.
func (it *PageIterator) Closed() bool {
	return it == nil || it.life.Closed()
}

// Begin moves to the first element of the page.
func (it *PageIterator) Begin() {
	if h := it.handle(); h != 0 {
		native.Tess.PageIteratorBegin(h)
	}
}

// Next moves to the start of the next element at level. It returns false at
// the end of the page.
func (it *PageIterator) Next(level PageIteratorLevel) bool {
	h := it.handle()
	return h != 0 && native.Tess.PageIteratorNext(h, int32(level)) != 0
}

// NextWithin moves to the next element at element level inside the current
// object at level, returning false when the current element is the last one.
func (it *PageIterator) NextWithin(level, element PageIteratorLevel) bool {
	return nextWithin(it, level, element)
}

// IsAtBeginningOf reports whether the iterator is at the first element of
// an object at level.
func (it *PageIterator) IsAtBeginningOf(level PageIteratorLevel) bool {
	h := it.handle()
	return h != 0 && native.Tess.PageIteratorIsAtBegin(h, int32(level)) != 0
}

// IsAtFinalOf reports whether the current element is the last element at
// element level inside the current object at level.
func (it *PageIterator) IsAtFinalOf(level, element PageIteratorLevel) bool {
	h := it.handle()
	return h != 0 && native.Tess.PageIteratorIsAtFinal(h, int32(level), int32(element)) != 0
}

// BlockType classifies the current block.
func (it *PageIterator) BlockType() PolyBlockType {
	if h := it.handle(); h != 0 {
		return PolyBlockType(native.Tess.PageIteratorBlockType(h))
	}
	return PolyBlockUnknown
}

// BoundingBox returns the bounds of the current element at level.
func (it *PageIterator) BoundingBox(level PageIteratorLevel) (Rect, bool) {
	h := it.handle()
	if h == 0 {
		return Rect{}, false
	}
	var left, top, right, bottom int32
	if native.Tess.PageIteratorBoundingBox(h, int32(level), &left, &top, &right, &bottom) == 0 {
		return Rect{}, false
	}
	return RectFromCoords(int(left), int(top), int(right), int(bottom)), true
}

// Baseline returns the endpoints of the baseline of the current element.
func (it *PageIterator) Baseline(level PageIteratorLevel) (image.Point, image.Point, bool) {
	h := it.handle()
	if h == 0 {
		return image.Point{}, image.Point{}, false
	}
	var x1, y1, x2, y2 int32
	if native.Tess.PageIteratorBaseline(h, int32(level), &x1, &y1, &x2, &y2) == 0 {
		return image.Point{}, image.Point{}, false
	}
	return image.Pt(int(x1), int(y1)), image.Pt(int(x2), int(y2)), true
}

// Properties returns orientation information for the current block.
func (it *PageIterator) Properties() ElementProperties {
	h := it.handle()
	if h == 0 {
		return ElementProperties{}
	}
	var orientation, direction, order int32
	var deskew float32
	native.Tess.PageIteratorOrientation(h, &orientation, &direction, &order, &deskew)
	return ElementProperties{
		Orientation:      Orientation(orientation),
		WritingDirection: WritingDirection(direction),
		TextLineOrder:    TextLineOrder(order),
		DeskewAngle:      deskew,
	}
}

// BinaryImage returns the thresholded image of the current element. The
// caller closes it; nil when unavailable.
func (it *PageIterator) BinaryImage(level PageIteratorLevel) *leptonica.Pix {
	h := it.handle()
	if h == 0 {
		return nil
	}
	pix := native.Tess.PageIteratorBinaryImage(h, int32(level))
	if pix == 0 {
		return nil
	}
	return leptonica.WrapPix(pix)
}

// Image returns the current element cut from the original image with
// padding pixels around it, and the position of its top-left corner. The
// caller closes the pix; nil when unavailable.
func (it *PageIterator) Image(level PageIteratorLevel, padding int) (*leptonica.Pix, image.Point) {
	h := it.handle()
	if h == 0 || it.page == nil {
		return nil, image.Point{}
	}
	var left, top int32
	pix := native.Tess.PageIteratorGetImage(h, int32(level), int32(padding), it.page.pix.Handle(), &left, &top)
	if pix == 0 {
		return nil, image.Point{}
	}
	return leptonica.WrapPix(pix), image.Pt(int(left), int(top))
}
