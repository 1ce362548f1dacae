package leptonica

import (
	"errors"
	"fmt"

	"github.com/ironsheep/tessgo/internal/native"
)

// PixColormap is a Leptonica palette for 1, 2, 4 or 8 bpp images.
type PixColormap struct {
	life *native.Lifetime
}

func destroyColormap(h uintptr) {
	native.Lept.CmapDestroy(&h)
}

func validColormapDepth(depth int) bool {
	switch depth {
	case 1, 2, 4, 8:
		return true
	}
	return false
}

func wrapColormap(h uintptr, op string) (*PixColormap, error) {
	if h == 0 {
		return nil, fmt.Errorf("leptonica: %s failed", op)
	}
	return &PixColormap{life: native.NewLifetime("PixColormap", h, destroyColormap)}, nil
}

// NewColormap creates an empty colormap for images of the given depth.
func NewColormap(depth int) (*PixColormap, error) {
	if !validColormapDepth(depth) {
		return nil, fmt.Errorf("%w: colormap depth %d", ErrUnsupportedDepth, depth)
	}
	if err := native.Load(); err != nil {
		return nil, err
	}
	return wrapColormap(native.Lept.CmapCreate(int32(depth)), "pixcmapCreate")
}

// NewLinearColormap creates a gray ramp of levels entries, where
// 2 <= levels <= 2^depth.
func NewLinearColormap(depth, levels int) (*PixColormap, error) {
	if !validColormapDepth(depth) {
		return nil, fmt.Errorf("%w: colormap depth %d", ErrUnsupportedDepth, depth)
	}
	if levels < 2 || levels > 1<<depth {
		return nil, fmt.Errorf("leptonica: levels must be between 2 and %d, got %d", 1<<depth, levels)
	}
	if err := native.Load(); err != nil {
		return nil, err
	}
	return wrapColormap(native.Lept.CmapCreateLinear(int32(depth), int32(levels)), "pixcmapCreateLinear")
}

// NewRandomColormap fills a colormap with random colors, optionally pinning
// the first entry to black and the last to white.
func NewRandomColormap(depth int, firstIsBlack, lastIsWhite bool) (*PixColormap, error) {
	if !validColormapDepth(depth) {
		return nil, fmt.Errorf("%w: colormap depth %d", ErrUnsupportedDepth, depth)
	}
	if err := native.Load(); err != nil {
		return nil, err
	}
	h := native.Lept.CmapCreateRandom(int32(depth), native.Bool(firstIsBlack), native.Bool(lastIsWhite))
	return wrapColormap(h, "pixcmapCreateRandom")
}

// Handle returns the native colormap pointer, or 0 once closed or attached.
func (c *PixColormap) Handle() uintptr {
	if c == nil {
		return 0
	}
	return c.life.Handle()
}

// Closed reports whether the colormap is no longer usable through c.
func (c *PixColormap) Closed() bool {
	return c == nil || c.life.Closed()
}

// Close releases a colormap the caller owns. Closing a colormap obtained
// from Pix.Colormap only invalidates the view.
func (c *PixColormap) Close() error {
	if c == nil {
		return nil
	}
	return c.life.Close()
}

func (c *PixColormap) Depth() int {
	if h := c.Handle(); h != 0 {
		return int(native.Lept.CmapGetDepth(h))
	}
	return 0
}

// Count is the number of colors in use.
func (c *PixColormap) Count() int {
	if h := c.Handle(); h != 0 {
		return int(native.Lept.CmapGetCount(h))
	}
	return 0
}

// FreeCount is the number of entries still available.
func (c *PixColormap) FreeCount() int {
	if h := c.Handle(); h != 0 {
		return int(native.Lept.CmapGetFreeCount(h))
	}
	return 0
}

// AddColor appends a color. It fails when the colormap is full.
func (c *PixColormap) AddColor(color PixColor) error {
	h := c.Handle()
	if h == 0 {
		return ErrClosed
	}
	if native.Lept.CmapAddColor(h, int32(color.R), int32(color.G), int32(color.B)) != 0 {
		return fmt.Errorf("leptonica: failed to add %s to colormap", color)
	}
	return nil
}

// AddNewColor returns the index of color, adding it if it is not present.
func (c *PixColormap) AddNewColor(color PixColor) (int, error) {
	h := c.Handle()
	if h == 0 {
		return 0, ErrClosed
	}
	var idx int32
	if native.Lept.CmapAddNewColor(h, int32(color.R), int32(color.G), int32(color.B), &idx) != 0 {
		return 0, fmt.Errorf("leptonica: failed to add %s to colormap", color)
	}
	return int(idx), nil
}

// AddNearestColor adds color when there is room, otherwise returns the index
// of the closest existing entry.
func (c *PixColormap) AddNearestColor(color PixColor) (int, error) {
	h := c.Handle()
	if h == 0 {
		return 0, ErrClosed
	}
	var idx int32
	if native.Lept.CmapAddNearest(h, int32(color.R), int32(color.G), int32(color.B), &idx) != 0 {
		return 0, fmt.Errorf("leptonica: failed to add nearest color for %s", color)
	}
	return int(idx), nil
}

// IsUsableColor reports whether color is present or could be added.
func (c *PixColormap) IsUsableColor(color PixColor) bool {
	h := c.Handle()
	if h == 0 {
		return false
	}
	var usable int32
	if native.Lept.CmapUsableColor(h, int32(color.R), int32(color.G), int32(color.B), &usable) != 0 {
		return false
	}
	return usable != 0
}

// AddBlackOrWhite adds pure black (white == false) or white and returns its
// index.
func (c *PixColormap) AddBlackOrWhite(white bool) (int, error) {
	h := c.Handle()
	if h == 0 {
		return 0, ErrClosed
	}
	var idx int32
	if native.Lept.CmapAddBlackWhite(h, native.Bool(white), &idx) != 0 {
		return 0, errors.New("leptonica: failed to add black or white to colormap")
	}
	return int(idx), nil
}

// SetBlackAndWhite forces the darkest entry to black and/or the lightest to
// white.
func (c *PixColormap) SetBlackAndWhite(setBlack, setWhite bool) error {
	h := c.Handle()
	if h == 0 {
		return ErrClosed
	}
	if native.Lept.CmapSetBlackWhite(h, native.Bool(setBlack), native.Bool(setWhite)) != 0 {
		return errors.New("leptonica: pixcmapSetBlackAndWhite failed")
	}
	return nil
}

// Clear removes every color.
func (c *PixColormap) Clear() error {
	h := c.Handle()
	if h == 0 {
		return ErrClosed
	}
	if native.Lept.CmapClear(h) != 0 {
		return errors.New("leptonica: pixcmapClear failed")
	}
	return nil
}

// Color returns entry i. Colormap entries are opaque.
func (c *PixColormap) Color(i int) (PixColor, error) {
	h := c.Handle()
	if h == 0 {
		return PixColor{}, ErrClosed
	}
	var v uint32
	if native.Lept.CmapGetColor32(h, int32(i), &v) != 0 {
		return PixColor{}, fmt.Errorf("leptonica: colormap index %d out of range", i)
	}
	return FromRGB(v), nil
}

// SetColor replaces entry i.
func (c *PixColormap) SetColor(i int, color PixColor) error {
	h := c.Handle()
	if h == 0 {
		return ErrClosed
	}
	if native.Lept.CmapResetColor(h, int32(i), int32(color.R), int32(color.G), int32(color.B)) != 0 {
		return fmt.Errorf("leptonica: failed to set colormap index %d", i)
	}
	return nil
}

// Colors returns every entry in order.
func (c *PixColormap) Colors() ([]PixColor, error) {
	n := c.Count()
	out := make([]PixColor, 0, n)
	for i := 0; i < n; i++ {
		col, err := c.Color(i)
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}
