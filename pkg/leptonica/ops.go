package leptonica

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/tessgo/internal/native"
)

// RotationMethod selects Leptonica's rotation algorithm.
type RotationMethod int32

const (
	RotateAreaMap  RotationMethod = 1
	RotateShear    RotationMethod = 2
	RotateSampling RotationMethod = 3
)

// RotationFill selects the color brought in at the corners.
type RotationFill int32

const (
	FillWhite RotationFill = 1
	FillBlack RotationFill = 2
)

// DeskewOptions tunes Deskew. Zero fields use Leptonica's defaults.
type DeskewOptions struct {
	// SweepReduction is the reduction factor for the coarse sweep: 1, 2, 4 or 8.
	SweepReduction int
	// SweepRange is the half range of angles swept, in degrees.
	SweepRange float32
	// SweepDelta is the angle increment of the sweep, in degrees.
	SweepDelta float32
	// SearchReduction is the reduction factor for the binary search: 1, 2, 4 or 8.
	SearchReduction int
	// Threshold binarizes non 1 bpp images before measuring.
	Threshold int
}

func (p *Pix) requireDepth(op string, depths ...int) (uintptr, error) {
	h := p.Handle()
	if h == 0 {
		return 0, ErrClosed
	}
	d := p.Depth()
	for _, want := range depths {
		if d == want {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %s needs %v bpp, got %d", ErrUnsupportedDepth, op, depths, d)
}

// ConvertRGBToGray converts a 32 bpp pix to 8 bpp gray with the given
// weights. All zero weights select Leptonica's defaults.
func (p *Pix) ConvertRGBToGray(rw, gw, bw float32) (*Pix, error) {
	if rw < 0 || gw < 0 || bw < 0 {
		return nil, errors.New("leptonica: gray weights must not be negative")
	}
	h, err := p.requireDepth("ConvertRGBToGray", 32)
	if err != nil {
		return nil, err
	}
	return wrapResult(native.Lept.RGBToGray(h, rw, gw, bw), "pixConvertRGBToGray")
}

// BinarizeOtsuAdaptiveThreshold binarizes an 8 bpp pix tile by tile.
// sx and sy are the tile size (at least 16), smoothX and smoothY the
// half-width of the threshold smoothing kernel and scoreFraction the Otsu
// score fraction, typically 0.1.
func (p *Pix) BinarizeOtsuAdaptiveThreshold(sx, sy, smoothX, smoothY int, scoreFraction float32) (*Pix, error) {
	if sx < 16 || sy < 16 {
		return nil, errors.New("leptonica: otsu tile size must be at least 16")
	}
	if smoothX < 0 || smoothY < 0 {
		return nil, errors.New("leptonica: otsu smoothing must not be negative")
	}
	if scoreFraction < 0 || scoreFraction > 1 {
		return nil, errors.New("leptonica: otsu score fraction must be in [0,1]")
	}
	h, err := p.requireDepth("BinarizeOtsuAdaptiveThreshold", 8)
	if err != nil {
		return nil, err
	}
	var out uintptr
	if native.Lept.OtsuThreshold(h, int32(sx), int32(sy), int32(smoothX), int32(smoothY), scoreFraction, nil, &out) != 0 || out == 0 {
		return nil, errors.New("leptonica: pixOtsuAdaptiveThreshold failed")
	}
	return WrapPix(out), nil
}

// BinarizeSauvola binarizes an 8 bpp pix with Sauvola's method over nx by ny
// tiles. windowHalfWidth is at least 2 and factor is typically 0.35.
func (p *Pix) BinarizeSauvola(windowHalfWidth int, factor float32, nx, ny int) (*Pix, error) {
	if windowHalfWidth < 2 {
		return nil, errors.New("leptonica: sauvola window half width must be at least 2")
	}
	if factor < 0 {
		return nil, errors.New("leptonica: sauvola factor must not be negative")
	}
	if nx < 1 || ny < 1 {
		return nil, errors.New("leptonica: sauvola tile counts must be positive")
	}
	h, err := p.requireDepth("BinarizeSauvola", 8)
	if err != nil {
		return nil, err
	}
	var out uintptr
	if native.Lept.SauvolaTiled(h, int32(windowHalfWidth), factor, int32(nx), int32(ny), nil, &out) != 0 || out == 0 {
		return nil, errors.New("leptonica: pixSauvolaBinarizeTiled failed")
	}
	return WrapPix(out), nil
}

// FindSkew measures the skew of a 1 bpp pix.
func (p *Pix) FindSkew() (Scew, error) {
	h, err := p.requireDepth("FindSkew", 1)
	if err != nil {
		return Scew{}, err
	}
	var s Scew
	if native.Lept.FindSkew(h, &s.Angle, &s.Confidence) != 0 {
		return Scew{}, errors.New("leptonica: pixFindSkew failed")
	}
	return s, nil
}

// Deskew measures and corrects skew, returning the straightened pix and the
// skew that was found.
func (p *Pix) Deskew(opts DeskewOptions) (*Pix, Scew, error) {
	h := p.Handle()
	if h == 0 {
		return nil, Scew{}, ErrClosed
	}
	var s Scew
	out := native.Lept.DeskewGeneral(h,
		int32(opts.SweepReduction), opts.SweepRange, opts.SweepDelta,
		int32(opts.SearchReduction), int32(opts.Threshold),
		&s.Angle, &s.Confidence)
	if out == 0 {
		return nil, Scew{}, errors.New("leptonica: pixDeskewGeneral failed")
	}
	return WrapPix(out), s, nil
}

// Rotate rotates by angle radians about the center, clockwise for positive
// angles. The output keeps the input size.
func (p *Pix) Rotate(angle float32, method RotationMethod, fill RotationFill) (*Pix, error) {
	h := p.Handle()
	if h == 0 {
		return nil, ErrClosed
	}
	return wrapResult(native.Lept.Rotate(h, angle, int32(method), int32(fill), 0, 0), "pixRotate")
}

// RotateDegrees is Rotate with the angle in degrees.
func (p *Pix) RotateDegrees(degrees float64, method RotationMethod, fill RotationFill) (*Pix, error) {
	return p.Rotate(float32(degrees*math.Pi/180), method, fill)
}

// Rotate90 rotates by a quarter turn, clockwise when direction is positive
// and counter-clockwise when negative.
func (p *Pix) Rotate90(direction int) (*Pix, error) {
	h := p.Handle()
	if h == 0 {
		return nil, ErrClosed
	}
	quads := int32(1)
	switch {
	case direction < 0:
		quads = 3
	case direction == 0:
		return nil, errors.New("leptonica: rotation direction must not be zero")
	}
	return wrapResult(native.Lept.RotateOrth(h, quads), "pixRotateOrth")
}

// Scale resizes by the given factors.
func (p *Pix) Scale(scaleX, scaleY float32) (*Pix, error) {
	if scaleX <= 0 || scaleY <= 0 {
		return nil, errors.New("leptonica: scale factors must be positive")
	}
	h := p.Handle()
	if h == 0 {
		return nil, ErrClosed
	}
	return wrapResult(native.Lept.Scale(h, scaleX, scaleY), "pixScale")
}

// Invert returns a photometric inverse of the pix.
func (p *Pix) Invert() (*Pix, error) {
	h := p.Handle()
	if h == 0 {
		return nil, ErrClosed
	}
	return wrapResult(native.Lept.Invert(0, h), "pixInvert")
}
