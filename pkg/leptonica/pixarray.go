package leptonica

import (
	"fmt"
	"iter"
	"os"

	"github.com/ironsheep/tessgo/internal/native"
)

// accessClone is Leptonica's L_CLONE access flag.
const accessClone = 2

// PixArray owns a Leptonica PIXA, a list of images such as the pages of a
// multi-page TIFF.
type PixArray struct {
	life *native.Lifetime
}

func destroyPixArray(h uintptr) {
	native.Lept.PixaDestroy(&h)
}

// LoadMultiPageTiff reads every page of a TIFF file.
func LoadMultiPageTiff(path string) (*PixArray, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if err := native.Load(); err != nil {
		return nil, err
	}
	h := native.Lept.PixaReadTiff(path)
	if h == 0 {
		return nil, fmt.Errorf("leptonica: failed to read multi-page tiff %s", path)
	}
	return &PixArray{life: native.NewLifetime("PixArray", h, destroyPixArray)}, nil
}

// Len is the number of images, 0 when closed.
func (a *PixArray) Len() int {
	if h := a.handle(); h != 0 {
		return int(native.Lept.PixaGetCount(h))
	}
	return 0
}

// Pix returns a new reference to image i. The caller closes it.
func (a *PixArray) Pix(i int) (*Pix, error) {
	h := a.handle()
	if h == 0 {
		return nil, ErrClosed
	}
	if i < 0 || i >= a.Len() {
		return nil, fmt.Errorf("leptonica: pix index %d out of range [0,%d)", i, a.Len())
	}
	return wrapResult(native.Lept.PixaGetPix(h, int32(i), accessClone), "pixaGetPix")
}

// All yields each image in order. Every yielded pix is closed once the loop
// body returns; Clone it to keep it longer.
func (a *PixArray) All() iter.Seq2[int, *Pix] {
	return func(yield func(int, *Pix) bool) {
		n := a.Len()
		for i := 0; i < n; i++ {
			pix, err := a.Pix(i)
			if err != nil {
				return
			}
			more := yield(i, pix)
			pix.Close()
			if !more {
				return
			}
		}
	}
}

// Close releases the array. Pix values already obtained stay valid.
func (a *PixArray) Close() error {
	if a == nil {
		return nil
	}
	return a.life.Close()
}

func (a *PixArray) handle() uintptr {
	if a == nil {
		return 0
	}
	return a.life.Handle()
}
