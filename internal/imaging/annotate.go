package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultBoxColor is used by Annotate when no color is given.
const DefaultBoxColor = "#FF0000"

// Box is one rectangle to draw, typically a recognized word or line.
type Box struct {
	Rect image.Rectangle
	// Label is drawn above the box when it is non-empty. Only digits and
	// commas have glyphs.
	Label string
}

// Annotate draws the outline of every box onto a copy of img. colorHex is
// "#RRGGBB" or "#RRGGBBAA"; an empty string selects DefaultBoxColor.
func Annotate(img image.Image, boxes []Box, colorHex string, thickness int) (*image.RGBA, error) {
	if colorHex == "" {
		colorHex = DefaultBoxColor
	}
	c, err := ParseHexColor(colorHex)
	if err != nil {
		return nil, err
	}
	if thickness < 1 {
		thickness = 1
	}

	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	labelColor := color.RGBA{255, 255, 255, 255}
	for _, b := range boxes {
		r := b.Rect.Canon().Intersect(bounds)
		if r.Empty() {
			continue
		}
		drawOutline(result, r, c, thickness)
		if b.Label != "" {
			drawLabel(result, r.Min.X, r.Min.Y-8, b.Label, labelColor, c)
		}
	}
	return result, nil
}

func drawOutline(img *image.RGBA, r image.Rectangle, c color.Color, thickness int) {
	src := image.NewUniform(c)
	t := min(thickness, r.Dx(), r.Dy())
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Over)
	}
}

// ParseHexColor parses "#RRGGBB", "#RGB" or "#RRGGBBAA".
func ParseHexColor(hex string) (color.RGBA, error) {
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	alpha := uint8(255)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

// drawLabel draws text with a 3x5 pixel font on a filled background.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
		'.': {"000", "000", "000", "000", "010"},
	}

	bounds := img.Bounds()
	if y < bounds.Min.Y {
		y = bounds.Min.Y
	}
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if (image.Point{px, py}).In(bounds) {
				img.Set(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if (image.Point{px, py}).In(bounds) {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
