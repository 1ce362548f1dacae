package tesseract

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectFromCoords(t *testing.T) {
	r := RectFromCoords(10, 20, 110, 70)
	assert.Equal(t, Rect{X1: 10, Y1: 20, Width: 100, Height: 50}, r)
	assert.Equal(t, 110, r.X2())
	assert.Equal(t, 70, r.Y2())
	assert.False(t, r.Empty())
	assert.Equal(t, image.Rect(10, 20, 110, 70), r.Image())
	assert.Equal(t, r, RectFromImage(r.Image()))
}

func TestRect_Empty(t *testing.T) {
	assert.True(t, Rect{}.Empty())
	assert.True(t, Rect{Width: 5}.Empty())
	assert.True(t, Rect{Width: -1, Height: 3}.Empty())
}

func TestRect_Within(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"full image", Rect{Width: 100, Height: 50}, true},
		{"inner", Rect{X1: 10, Y1: 10, Width: 20, Height: 20}, true},
		{"touches edge", Rect{X1: 90, Y1: 40, Width: 10, Height: 10}, true},
		{"overflows right", Rect{X1: 91, Width: 10, Height: 10}, false},
		{"overflows bottom", Rect{Y1: 45, Width: 10, Height: 10}, false},
		{"negative origin", Rect{X1: -1, Width: 10, Height: 10}, false},
		{"empty", Rect{X1: 5, Y1: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Within(100, 50))
		})
	}
}

func TestRect_String(t *testing.T) {
	assert.Equal(t, "[Rect X=1, Y=2, Width=3, Height=4]", Rect{1, 2, 3, 4}.String())
}
