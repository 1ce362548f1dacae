package leptonica

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage copies img into a new pix.
//
// Paletted images become 1, 2, 4 or 8 bpp (the smallest depth that holds the
// palette) with a copy of the palette as colormap, *image.Gray becomes 8 bpp,
// *image.Gray16 becomes 16 bpp and everything else 32 bpp RGBA with alpha
// preserved.
func FromImage(img image.Image) (*Pix, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("leptonica: cannot convert empty image %v", b)
	}
	depth := imageDepth(img)
	pix, err := Create(b.Dx(), b.Dy(), depth)
	if err != nil {
		return nil, err
	}

	if p, ok := img.(*image.Paletted); ok {
		if err := copyPalette(pix, p.Palette, depth); err != nil {
			pix.Close()
			return nil, err
		}
	}

	data := pix.Data()
	if data == nil {
		pix.Close()
		return nil, ErrClosed
	}
	writeImage(img, data)
	return pix, nil
}

func copyPalette(pix *Pix, palette color.Palette, depth int) error {
	cmap, err := NewColormap(depth)
	if err != nil {
		return err
	}
	for i, c := range palette {
		if err := cmap.AddColor(ColorOf(c)); err != nil {
			cmap.Close()
			return fmt.Errorf("colormap entry %d: %w", i, err)
		}
	}
	if err := pix.SetColormap(cmap); err != nil {
		cmap.Close()
		return err
	}
	return nil
}

// ToImage copies the pix into a Go image.
//
// Colormapped pixes become *image.Paletted. Without a colormap 1 bpp becomes
// a {white, black} paletted image (1 is black, as in Leptonica), 2 and 4 bpp
// a linear gray palette, 8 bpp *image.Gray, 16 bpp *image.Gray16 and 32 bpp
// *image.NRGBA. Alpha is forced to opaque unless includeAlpha is set, since
// RGB images read by Leptonica usually leave the alpha byte at zero.
func (p *Pix) ToImage(includeAlpha bool) (image.Image, error) {
	data := p.Data()
	if data == nil {
		return nil, ErrClosed
	}
	var palette []PixColor
	if cmap := p.Colormap(); cmap != nil {
		colors, err := cmap.Colors()
		if err != nil {
			return nil, err
		}
		palette = colors
	}
	return readImage(data, palette, includeAlpha)
}

// paletteDepth is the smallest pix depth able to index n colors.
func paletteDepth(n int) int {
	switch {
	case n <= 2:
		return 1
	case n <= 4:
		return 2
	case n <= 16:
		return 4
	default:
		return 8
	}
}

func imageDepth(img image.Image) int {
	switch m := img.(type) {
	case *image.Paletted:
		return paletteDepth(len(m.Palette))
	case *image.Gray:
		return 8
	case *image.Gray16:
		return 16
	default:
		return 32
	}
}

// writeImage copies img into d, whose depth must match imageDepth(img).
func writeImage(img image.Image, d *PixData) {
	b := img.Bounds()
	switch m := img.(type) {
	case *image.Paletted:
		for y := 0; y < d.height; y++ {
			for x := 0; x < d.width; x++ {
				d.SetPixel(x, y, uint32(m.ColorIndexAt(b.Min.X+x, b.Min.Y+y)))
			}
		}
	case *image.Gray:
		for y := 0; y < d.height; y++ {
			line := d.Line(y)
			row := m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < d.width; x++ {
				SetDataByte(line, x, uint32(row[x]))
			}
		}
	case *image.Gray16:
		for y := 0; y < d.height; y++ {
			line := d.Line(y)
			row := m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < d.width; x++ {
				SetDataTwoByte(line, x, uint32(row[2*x])<<8|uint32(row[2*x+1]))
			}
		}
	case *image.NRGBA:
		for y := 0; y < d.height; y++ {
			line := d.Line(y)
			row := m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < d.width; x++ {
				px := row[4*x : 4*x+4]
				SetDataFourByte(line, x, PixColor{R: px[0], G: px[1], B: px[2], A: px[3]}.ToRGBA())
			}
		}
	default:
		for y := 0; y < d.height; y++ {
			line := d.Line(y)
			for x := 0; x < d.width; x++ {
				SetDataFourByte(line, x, ColorOf(img.At(b.Min.X+x, b.Min.Y+y)).ToRGBA())
			}
		}
	}
}

// readImage builds a Go image from d. palette holds the colormap entries, or
// empty when the pix has no colormap.
func readImage(d *PixData, palette []PixColor, includeAlpha bool) (image.Image, error) {
	rect := image.Rect(0, 0, d.width, d.height)

	if len(palette) > 0 {
		if d.depth > 8 {
			return nil, fmt.Errorf("%w: colormapped %d bpp", ErrUnsupportedDepth, d.depth)
		}
		pal := make(color.Palette, len(palette))
		for i, c := range palette {
			pal[i] = c.NRGBA()
		}
		return readPaletted(d, rect, pal), nil
	}

	switch d.depth {
	case 1:
		return readPaletted(d, rect, color.Palette{color.White, color.Black}), nil
	case 2, 4:
		return readPaletted(d, rect, grayRamp(1<<d.depth)), nil
	case 8:
		img := image.NewGray(rect)
		for y := 0; y < d.height; y++ {
			line := d.Line(y)
			row := img.Pix[y*img.Stride:]
			for x := 0; x < d.width; x++ {
				row[x] = uint8(GetDataByte(line, x))
			}
		}
		return img, nil
	case 16:
		img := image.NewGray16(rect)
		for y := 0; y < d.height; y++ {
			line := d.Line(y)
			row := img.Pix[y*img.Stride:]
			for x := 0; x < d.width; x++ {
				v := GetDataTwoByte(line, x)
				row[2*x] = uint8(v >> 8)
				row[2*x+1] = uint8(v)
			}
		}
		return img, nil
	case 32:
		img := image.NewNRGBA(rect)
		for y := 0; y < d.height; y++ {
			line := d.Line(y)
			row := img.Pix[y*img.Stride:]
			for x := 0; x < d.width; x++ {
				c := FromRGBA(GetDataFourByte(line, x))
				if !includeAlpha {
					c.A = 0xff
				}
				copy(row[4*x:4*x+4], []uint8{c.R, c.G, c.B, c.A})
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: %d bpp", ErrUnsupportedDepth, d.depth)
}

func readPaletted(d *PixData, rect image.Rectangle, pal color.Palette) *image.Paletted {
	img := image.NewPaletted(rect, pal)
	last := uint32(len(pal) - 1)
	for y := 0; y < d.height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < d.width; x++ {
			idx := d.Pixel(x, y)
			if idx > last {
				idx = last
			}
			row[x] = uint8(idx)
		}
	}
	return img
}

func grayRamp(levels int) color.Palette {
	pal := make(color.Palette, levels)
	for i := range pal {
		v := uint8(i * 255 / (levels - 1))
		pal[i] = color.Gray{Y: v}
	}
	return pal
}
