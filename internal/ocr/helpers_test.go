package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// createImageWithText renders lines in black on white and scales the result
// up by an integer factor, since Tesseract struggles with 13px glyphs.
func createImageWithText(lines []string, scale int) *image.RGBA {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}
	w, h := maxLen*7+40, len(lines)*16+30

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	for i, line := range lines {
		drawText(small, 20, 20+i*16, line, color.Black)
	}
	if scale <= 1 {
		return small
	}

	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := small.RGBAAt(x, y)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}
	return img
}

// newTestService creates a native service or skips when Tesseract or the
// eng traineddata is not installed.
func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Datapath = os.Getenv("TESSDATA_PREFIX")
	cfg.PoolSize = 1
	s, err := NewService(cfg, zerolog.Nop())
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
