package leptonica

import (
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/tessgo/internal/native"
)

var (
	// ErrClosed is returned when operating on a closed Pix, colormap or array.
	ErrClosed = native.ErrClosed

	// ErrUnsupportedDepth is returned for bit depths an operation cannot handle.
	ErrUnsupportedDepth = errors.New("leptonica: unsupported pixel depth")

	// ErrBorrowedColormap is returned when attaching a colormap that belongs
	// to a pix, such as the result of Colormap.
	ErrBorrowedColormap = errors.New("leptonica: colormap is owned by a pix")
)

// Pix owns a Leptonica PIX.
type Pix struct {
	life *native.Lifetime
	cmap *PixColormap
}

func destroyPix(h uintptr) {
	native.Lept.PixDestroy(&h)
}

// WrapPix takes ownership of a native PIX handle. A zero handle yields a
// closed Pix.
func WrapPix(h uintptr) *Pix {
	return &Pix{life: native.NewLifetime("Pix", h, destroyPix)}
}

func wrapResult(h uintptr, op string) (*Pix, error) {
	if h == 0 {
		return nil, fmt.Errorf("leptonica: %s failed", op)
	}
	return WrapPix(h), nil
}

// ValidDepth reports whether Leptonica can allocate a pix of depth bpp.
func ValidDepth(depth int) bool {
	switch depth {
	case 1, 2, 4, 8, 16, 32:
		return true
	}
	return false
}

// Create allocates a zeroed pix.
func Create(width, height, depth int) (*Pix, error) {
	if !ValidDepth(depth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("leptonica: invalid size %dx%d", width, height)
	}
	if err := native.Load(); err != nil {
		return nil, err
	}
	return wrapResult(native.Lept.PixCreate(int32(width), int32(height), int32(depth)), "pixCreate")
}

// LoadFromFile decodes an image file with Leptonica's readers.
func LoadFromFile(path string) (*Pix, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if err := native.Load(); err != nil {
		return nil, err
	}
	h := native.Lept.PixRead(path)
	if h == 0 {
		return nil, fmt.Errorf("leptonica: failed to read %s", path)
	}
	return WrapPix(h), nil
}

// LoadFromMemory decodes an encoded image held in data.
func LoadFromMemory(data []byte) (*Pix, error) {
	if len(data) == 0 {
		return nil, errors.New("leptonica: empty image data")
	}
	if err := native.Load(); err != nil {
		return nil, err
	}
	return wrapResult(native.Lept.PixReadMem(&data[0], uintptr(len(data))), "pixReadMem")
}

// Handle returns the native PIX pointer, or 0 once closed. The pix keeps
// ownership.
func (p *Pix) Handle() uintptr {
	if p == nil {
		return 0
	}
	return p.life.Handle()
}

// Closed reports whether the pix has been released.
func (p *Pix) Closed() bool {
	return p == nil || p.life.Closed()
}

// Close releases the pix. Views obtained from it become invalid.
func (p *Pix) Close() error {
	if p == nil {
		return nil
	}
	return p.life.Close()
}

// Clone returns a new reference to the same native image.
func (p *Pix) Clone() (*Pix, error) {
	h := p.Handle()
	if h == 0 {
		return nil, ErrClosed
	}
	return wrapResult(native.Lept.PixClone(h), "pixClone")
}

// Width in pixels, 0 when closed.
func (p *Pix) Width() int {
	if h := p.Handle(); h != 0 {
		return int(native.Lept.PixGetWidth(h))
	}
	return 0
}

// Height in pixels, 0 when closed.
func (p *Pix) Height() int {
	if h := p.Handle(); h != 0 {
		return int(native.Lept.PixGetHeight(h))
	}
	return 0
}

// Depth in bits per pixel, 0 when closed.
func (p *Pix) Depth() int {
	if h := p.Handle(); h != 0 {
		return int(native.Lept.PixGetDepth(h))
	}
	return 0
}

// XRes is the horizontal resolution in ppi.
func (p *Pix) XRes() int {
	if h := p.Handle(); h != 0 {
		return int(native.Lept.PixGetXRes(h))
	}
	return 0
}

// YRes is the vertical resolution in ppi.
func (p *Pix) YRes() int {
	if h := p.Handle(); h != 0 {
		return int(native.Lept.PixGetYRes(h))
	}
	return 0
}

func (p *Pix) SetXRes(res int) error {
	h := p.Handle()
	if h == 0 {
		return ErrClosed
	}
	if native.Lept.PixSetXRes(h, int32(res)) != 0 {
		return errors.New("leptonica: pixSetXRes failed")
	}
	return nil
}

func (p *Pix) SetYRes(res int) error {
	h := p.Handle()
	if h == 0 {
		return ErrClosed
	}
	if native.Lept.PixSetYRes(h, int32(res)) != 0 {
		return errors.New("leptonica: pixSetYRes failed")
	}
	return nil
}

// SetResolution sets both resolutions.
func (p *Pix) SetResolution(xres, yres int) error {
	if err := p.SetXRes(xres); err != nil {
		return err
	}
	return p.SetYRes(yres)
}

// Data returns a view of the raster, or nil when closed.
func (p *Pix) Data() *PixData {
	if p.Closed() {
		return nil
	}
	return pixDataOf(p)
}

// Colormap returns the pix's colormap, or nil when it has none. The
// returned colormap is owned by the pix and must not be closed by the caller;
// it becomes invalid when the pix is closed or its colormap replaced.
func (p *Pix) Colormap() *PixColormap {
	h := p.Handle()
	if h == 0 {
		return nil
	}
	ch := native.Lept.PixGetCmap(h)
	if ch == 0 {
		return nil
	}
	if p.cmap != nil && p.cmap.Handle() == ch {
		return p.cmap
	}
	p.cmap = &PixColormap{life: native.NewLifetime("PixColormap", ch, nil)}
	p.life.Adopt(p.cmap.life)
	return p.cmap
}

// SetColormap attaches cmap to the pix, which takes ownership of it. cmap
// must not be used through the passed value afterwards; fetch it again with
// Colormap. Only colormaps created by NewColormap and friends can be
// attached; a pix's own colormap is rejected with ErrBorrowedColormap.
// A nil cmap removes the existing colormap.
func (p *Pix) SetColormap(cmap *PixColormap) error {
	h := p.Handle()
	if h == 0 {
		return ErrClosed
	}
	if cmap == nil {
		p.dropColormap()
		if native.Lept.PixDelCmap(h) != 0 {
			return errors.New("leptonica: pixDestroyColormap failed")
		}
		return nil
	}
	if cmap.Closed() {
		return ErrClosed
	}
	if !cmap.life.Owned() {
		return ErrBorrowedColormap
	}
	if cmap.Depth() > p.Depth() {
		return fmt.Errorf("%w: colormap depth %d exceeds pix depth %d", ErrUnsupportedDepth, cmap.Depth(), p.Depth())
	}
	ch := cmap.life.Detach()
	p.dropColormap()
	if native.Lept.PixSetCmap(h, ch) != 0 {
		return errors.New("leptonica: pixSetColormap failed")
	}
	return nil
}

// dropColormap invalidates the view returned by Colormap before the native
// colormap is replaced or freed.
func (p *Pix) dropColormap() {
	if p.cmap != nil {
		p.cmap.life.Close()
		p.cmap = nil
	}
}

// Save encodes the pix to path.
func (p *Pix) Save(path string, format ImageFormat) error {
	h := p.Handle()
	if h == 0 {
		return ErrClosed
	}
	if native.Lept.PixWrite(path, h, int32(format)) != 0 {
		return fmt.Errorf("leptonica: failed to write %s as %s", path, format)
	}
	return nil
}

// Encode returns the pix encoded in format.
func (p *Pix) Encode(format ImageFormat) ([]byte, error) {
	h := p.Handle()
	if h == 0 {
		return nil, ErrClosed
	}
	var data, size uintptr
	if native.Lept.PixWriteMem(&data, &size, h, int32(format)) != 0 || data == 0 {
		return nil, fmt.Errorf("leptonica: failed to encode %s", format)
	}
	defer native.Lept.LeptFree(data)
	return native.Bytes(data, int(size)), nil
}

func (p *Pix) String() string {
	if p.Closed() {
		return "Pix(closed)"
	}
	return fmt.Sprintf("Pix(%dx%d, %d bpp)", p.Width(), p.Height(), p.Depth())
}
