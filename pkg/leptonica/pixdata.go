package leptonica

import "github.com/ironsheep/tessgo/internal/native"

// PixData is a view of a pix's raster. Words alias native memory and are only
// valid until the owning Pix is closed.
type PixData struct {
	owner  *Pix
	words  []uint32
	wpl    int
	width  int
	height int
	depth  int
}

// newPixData allocates a raster in Go memory with Leptonica's line padding.
func newPixData(width, height, depth int) *PixData {
	wpl := (width*depth + 31) / 32
	return &PixData{
		words:  make([]uint32, wpl*height),
		wpl:    wpl,
		width:  width,
		height: height,
		depth:  depth,
	}
}

func pixDataOf(p *Pix) *PixData {
	h := p.Handle()
	if h == 0 {
		return nil
	}
	wpl := int(native.Lept.PixGetWpl(h))
	height := int(native.Lept.PixGetHeight(h))
	return &PixData{
		owner:  p,
		words:  native.Words(native.Lept.PixGetData(h), wpl*height),
		wpl:    wpl,
		width:  int(native.Lept.PixGetWidth(h)),
		height: height,
		depth:  int(native.Lept.PixGetDepth(h)),
	}
}

// WordsPerLine is the number of 32-bit words in each raster line.
func (d *PixData) WordsPerLine() int { return d.wpl }

// Width in pixels.
func (d *PixData) Width() int { return d.width }

// Height in pixels.
func (d *PixData) Height() int { return d.height }

// Depth in bits per pixel.
func (d *PixData) Depth() int { return d.depth }

// Words returns the whole raster.
func (d *PixData) Words() []uint32 { return d.words }

// Line returns the words of raster line y.
func (d *PixData) Line(y int) []uint32 {
	return d.words[y*d.wpl : (y+1)*d.wpl]
}

// Pixel reads the pixel at (x, y) using the accessor for the raster depth.
func (d *PixData) Pixel(x, y int) uint32 {
	line := d.Line(y)
	switch d.depth {
	case 1:
		return GetDataBit(line, x)
	case 2:
		return GetDataDIBit(line, x)
	case 4:
		return GetDataQBit(line, x)
	case 8:
		return GetDataByte(line, x)
	case 16:
		return GetDataTwoByte(line, x)
	default:
		return GetDataFourByte(line, x)
	}
}

// SetPixel writes the pixel at (x, y). Values wider than the depth are masked.
func (d *PixData) SetPixel(x, y int, v uint32) {
	line := d.Line(y)
	switch d.depth {
	case 1:
		SetDataBit(line, x, v)
	case 2:
		SetDataDIBit(line, x, v)
	case 4:
		SetDataQBit(line, x, v)
	case 8:
		SetDataByte(line, x, v)
	case 16:
		SetDataTwoByte(line, x, v)
	default:
		SetDataFourByte(line, x, v)
	}
}

// GetDataBit returns pixel n of a 1 bpp line.
func GetDataBit(line []uint32, n int) uint32 {
	return (line[n>>5] >> (31 - uint(n&31))) & 1
}

// SetDataBit sets pixel n of a 1 bpp line to the low bit of v.
func SetDataBit(line []uint32, n int, v uint32) {
	shift := 31 - uint(n&31)
	w := &line[n>>5]
	*w = (*w &^ (1 << shift)) | ((v & 1) << shift)
}

// GetDataDIBit returns pixel n of a 2 bpp line.
func GetDataDIBit(line []uint32, n int) uint32 {
	return (line[n>>4] >> (2 * (15 - uint(n&15)))) & 3
}

// SetDataDIBit sets pixel n of a 2 bpp line.
func SetDataDIBit(line []uint32, n int, v uint32) {
	shift := 2 * (15 - uint(n&15))
	w := &line[n>>4]
	*w = (*w &^ (3 << shift)) | ((v & 3) << shift)
}

// GetDataQBit returns pixel n of a 4 bpp line.
func GetDataQBit(line []uint32, n int) uint32 {
	return (line[n>>3] >> (4 * (7 - uint(n&7)))) & 0xf
}

// SetDataQBit sets pixel n of a 4 bpp line.
func SetDataQBit(line []uint32, n int, v uint32) {
	shift := 4 * (7 - uint(n&7))
	w := &line[n>>3]
	*w = (*w &^ (0xf << shift)) | ((v & 0xf) << shift)
}

// GetDataByte returns pixel n of an 8 bpp line.
func GetDataByte(line []uint32, n int) uint32 {
	return (line[n>>2] >> (8 * (3 - uint(n&3)))) & 0xff
}

// SetDataByte sets pixel n of an 8 bpp line.
func SetDataByte(line []uint32, n int, v uint32) {
	shift := 8 * (3 - uint(n&3))
	w := &line[n>>2]
	*w = (*w &^ (0xff << shift)) | ((v & 0xff) << shift)
}

// GetDataTwoByte returns pixel n of a 16 bpp line.
func GetDataTwoByte(line []uint32, n int) uint32 {
	return (line[n>>1] >> (16 * (1 - uint(n&1)))) & 0xffff
}

// SetDataTwoByte sets pixel n of a 16 bpp line.
func SetDataTwoByte(line []uint32, n int, v uint32) {
	shift := 16 * (1 - uint(n&1))
	w := &line[n>>1]
	*w = (*w &^ (0xffff << shift)) | ((v & 0xffff) << shift)
}

// GetDataFourByte returns pixel n of a 32 bpp line.
func GetDataFourByte(line []uint32, n int) uint32 {
	return line[n]
}

// SetDataFourByte sets pixel n of a 32 bpp line.
func SetDataFourByte(line []uint32, n int, v uint32) {
	line[n] = v
}
