package tesseract

import "github.com/ironsheep/tessgo/internal/native"

// ChoiceIterator walks the recognition alternatives of a symbol. It starts
// at the best choice.
type ChoiceIterator struct {
	life *native.Lifetime
}

func deleteChoiceIterator(h uintptr) {
	native.Tess.ChoiceIteratorDelete(h)
}

func (c *ChoiceIterator) handle() uintptr {
	if c == nil {
		return 0
	}
	return c.life.Handle()
}

// Next moves to the next alternative, returning false when there is none.
func (c *ChoiceIterator) Next() bool {
	h := c.handle()
	return h != 0 && native.Tess.ChoiceIteratorNext(h) != 0
}

// Confidence of the current alternative, 0..100.
func (c *ChoiceIterator) Confidence() float32 {
	if h := c.handle(); h != 0 {
		return native.Tess.ChoiceIteratorConfidence(h)
	}
	return 0
}

// Text of the current alternative.
func (c *ChoiceIterator) Text() string {
	if h := c.handle(); h != 0 {
		return native.GoString(native.Tess.ChoiceIteratorUTF8Text(h))
	}
	return ""
}

// Close releases the iterator.
func (c *ChoiceIterator) Close() error {
	if c == nil {
		return nil
	}
	return c.life.Close()
}
