package tesseract

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// tessdataCandidates are common install locations of traineddata files.
var tessdataCandidates = []string{
	"/usr/share/tesseract-ocr/5/tessdata",
	"/usr/share/tesseract-ocr/4.00/tessdata",
	"/usr/share/tessdata",
	"/usr/local/share/tessdata",
	"/opt/homebrew/share/tessdata",
}

func testDatapath() string {
	if p := os.Getenv("TESSDATA_PREFIX"); p != "" {
		return p
	}
	for _, dir := range tessdataCandidates {
		if _, err := os.Stat(filepath.Join(dir, "eng.traineddata")); err == nil {
			return dir
		}
	}
	return ""
}

// newTestEngine returns an English engine or skips the test.
func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	if err := Load(); err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	e, err := NewEngine(testDatapath(), "eng", opts...)
	if err != nil {
		t.Skipf("Tesseract eng data not available: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

// textImage renders lines of text with basicfont, scaled up so Tesseract
// can read it.
func textImage(lines []string, scale int) *image.RGBA {
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	width := maxLen*7 + 40
	height := len(lines)*20 + 30

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	for i, l := range lines {
		d := &font.Drawer{
			Dst:  small,
			Src:  image.NewUniform(color.Black),
			Face: basicfont.Face7x13,
			Dot:  fixed.Point26_6{X: fixed.I(20), Y: fixed.I(25 + i*20)},
		}
		d.DrawString(l)
	}

	big := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	xdraw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return big
}
