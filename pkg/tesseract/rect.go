package tesseract

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned region in image pixels.
type Rect struct {
	X1     int `json:"x"`
	Y1     int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectFromCoords builds a Rect from its top-left (inclusive) and
// bottom-right (exclusive) corners.
func RectFromCoords(x1, y1, x2, y2 int) Rect {
	return Rect{X1: x1, Y1: y1, Width: x2 - x1, Height: y2 - y1}
}

// RectFromImage converts an image.Rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return RectFromCoords(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func (r Rect) X2() int { return r.X1 + r.Width }

func (r Rect) Y2() int { return r.Y1 + r.Height }

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Image converts to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2(), r.Y2())
}

// Within reports whether r is non-empty and lies inside a width by height
// image.
func (r Rect) Within(width, height int) bool {
	return !r.Empty() && r.X1 >= 0 && r.Y1 >= 0 && r.X2() <= width && r.Y2() <= height
}

func (r Rect) String() string {
	return fmt.Sprintf("[Rect X=%d, Y=%d, Width=%d, Height=%d]", r.X1, r.Y1, r.Width, r.Height)
}
