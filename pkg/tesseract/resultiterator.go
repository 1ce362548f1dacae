package tesseract

import (
	"github.com/ironsheep/tessgo/internal/native"
)

// ResultIterator walks recognized text. It supports every PageIterator
// method plus access to text, confidences and word attributes.
type ResultIterator struct {
	PageIterator
	fonts map[int32]*FontInfo
}

func deleteResultIterator(h uintptr) {
	native.Tess.ResultIteratorDelete(h)
}

func newResultIterator(p *Page, h uintptr) *ResultIterator {
	it := &ResultIterator{
		PageIterator: PageIterator{
			life:   native.NewLifetime("ResultIterator", h, deleteResultIterator),
			page:   p,
			result: true,
		},
		fonts: make(map[int32]*FontInfo),
	}
	p.life.Adopt(it.life)
	return it
}

func (it *ResultIterator) resultHandle() uintptr {
	if it == nil {
		return 0
	}
	return it.life.Handle()
}

// Confidence of the current element at level, 0..100.
func (it *ResultIterator) Confidence(level PageIteratorLevel) float32 {
	if h := it.resultHandle(); h != 0 {
		return native.Tess.ResultIteratorConfidence(h, int32(level))
	}
	return 0
}

// Text of the current element at level.
func (it *ResultIterator) Text(level PageIteratorLevel) string {
	if h := it.resultHandle(); h != 0 {
		return native.TakeText(native.Tess.ResultIteratorUTF8Text(h, int32(level)))
	}
	return ""
}

// WordFontAttributes returns the font of the current word, or nil when it
// is unknown (always with LSTM-only recognition).
func (it *ResultIterator) WordFontAttributes() *FontAttributes {
	h := it.resultHandle()
	if h == 0 {
		return nil
	}
	var bold, italic, underlined, monospace, serif, smallcaps, pointSize, fontID int32
	name := native.Tess.ResultIteratorFontAttrs(h, &bold, &italic, &underlined, &monospace, &serif, &smallcaps, &pointSize, &fontID)
	if name == 0 {
		return nil
	}
	info, ok := it.fonts[fontID]
	if !ok {
		// The name points into Tesseract's font table and is not freed.
		info = &FontInfo{
			Name:         native.GoString(name),
			ID:           int(fontID),
			IsItalic:     italic != 0,
			IsBold:       bold != 0,
			IsFixedPitch: monospace != 0,
			IsSerif:      serif != 0,
		}
		it.fonts[fontID] = info
	}
	return &FontAttributes{
		FontInfo:     info,
		IsUnderlined: underlined != 0,
		IsSmallCaps:  smallcaps != 0,
		PointSize:    int(pointSize),
	}
}

// WordRecognitionLanguage is the language the current word was recognized
// in.
func (it *ResultIterator) WordRecognitionLanguage() string {
	if h := it.resultHandle(); h != 0 {
		return native.GoString(native.Tess.ResultIteratorLanguage(h))
	}
	return ""
}

func (it *ResultIterator) flag(f func(uintptr) int32) bool {
	h := it.resultHandle()
	return h != 0 && f(h) != 0
}

func (it *ResultIterator) WordIsFromDictionary() bool {
	return it.flag(native.Tess.ResultIteratorFromDict)
}

func (it *ResultIterator) WordIsNumeric() bool {
	return it.flag(native.Tess.ResultIteratorNumeric)
}

func (it *ResultIterator) SymbolIsSuperscript() bool {
	return it.flag(native.Tess.ResultIteratorSuperscrpt)
}

func (it *ResultIterator) SymbolIsSubscript() bool {
	return it.flag(native.Tess.ResultIteratorSubscript)
}

func (it *ResultIterator) SymbolIsDropcap() bool {
	return it.flag(native.Tess.ResultIteratorDropcap)
}

// ChoiceIterator returns the alternatives for the current symbol, or nil
// when there are none. It is closed with the result iterator.
func (it *ResultIterator) ChoiceIterator() *ChoiceIterator {
	h := it.resultHandle()
	if h == 0 {
		return nil
	}
	ch := native.Tess.ResultIteratorChoices(h)
	if ch == 0 {
		return nil
	}
	c := &ChoiceIterator{life: native.NewLifetime("ChoiceIterator", ch, deleteChoiceIterator)}
	it.life.Adopt(c.life)
	return c
}

// symbolChoices collects every alternative for the current symbol.
func (it *ResultIterator) symbolChoices() []Choice {
	ci := it.ChoiceIterator()
	if ci == nil {
		return nil
	}
	defer ci.Close()
	var out []Choice
	for {
		out = append(out, Choice{Text: ci.Text(), Confidence: ci.Confidence() / 100})
		if !ci.Next() {
			return out
		}
	}
}
