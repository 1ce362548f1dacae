package leptonica

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// PixColor is a non-premultiplied 8-bit RGBA color as stored in a 32 bpp pix
// or a colormap entry.
type PixColor struct {
	R, G, B, A uint8
}

// FromRGBA unpacks a Leptonica 0xRRGGBBAA value.
func FromRGBA(v uint32) PixColor {
	return PixColor{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}

// FromRGB unpacks 0xRRGGBBxx, ignoring the low byte and using full opacity.
func FromRGB(v uint32) PixColor {
	c := FromRGBA(v)
	c.A = 0xff
	return c
}

// ColorOf converts any color.Color to a PixColor.
func ColorOf(c color.Color) PixColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return PixColor{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ToRGBA packs the color as 0xRRGGBBAA.
func (c PixColor) ToRGBA() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// RGBA implements color.Color.
func (c PixColor) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns the color as a color.NRGBA.
func (c PixColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex formats the color as "#rrggbb"; alpha is dropped.
func (c PixColor) Hex() string {
	return c.colorful().Hex()
}

// HSL returns hue in degrees and saturation and lightness in 0..1.
func (c PixColor) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

func (c PixColor) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c PixColor) String() string {
	return fmt.Sprintf("color(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}
