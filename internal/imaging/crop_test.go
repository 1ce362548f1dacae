package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := Crop(img, image.Rect(0, 0, 50, 50), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if b := cropped.Bounds(); b != image.Rect(0, 0, 50, 50) {
		t.Errorf("bounds: got %v, want (0,0)-(50,50)", b)
	}
	r, g, b, _ := cropped.At(25, 25).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("top-left crop should be red, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name  string
		rect  image.Rectangle
		scale float64
		want  int
	}{
		{"up", image.Rect(0, 0, 50, 50), 2.0, 100},
		{"down", image.Rect(0, 0, 100, 100), 0.5, 50},
		{"ignored", image.Rect(0, 0, 40, 40), 0, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cropped, err := Crop(img, tt.rect, tt.scale)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if b := cropped.Bounds(); b.Dx() != tt.want || b.Dy() != tt.want {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.want, tt.want)
			}
		})
	}
}

func TestCrop_ClampsToBounds(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := Crop(img, image.Rect(80, 80, 150, 150), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if b := cropped.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("got %dx%d, want 20x20", b.Dx(), b.Dy())
	}

	// Swapped corners are normalized.
	cropped, err = Crop(img, image.Rectangle{Min: image.Pt(50, 50), Max: image.Pt(10, 10)}, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if b := cropped.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("got %dx%d, want 40x40", b.Dx(), b.Dy())
	}
}

func TestCrop_OutsideImage(t *testing.T) {
	img := createPatternImage(100, 100)

	if _, err := Crop(img, image.Rect(200, 200, 300, 300), 1.0); err == nil {
		t.Error("Crop should fail for a region outside the image")
	}
	if _, err := Crop(img, image.Rect(10, 10, 10, 50), 1.0); err == nil {
		t.Error("Crop should fail for an empty region")
	}
	if _, err := Crop(img, image.Rect(0, 0, 2, 2), 0.1); err == nil {
		t.Error("Crop should fail when scaling collapses the region")
	}
}

func TestNamedRegion(t *testing.T) {
	img := createPatternImage(100, 80)

	tests := []struct {
		name string
		want image.Rectangle
	}{
		{"top-left", image.Rect(0, 0, 50, 40)},
		{"top-right", image.Rect(50, 0, 100, 40)},
		{"bottom-left", image.Rect(0, 40, 50, 80)},
		{"bottom-right", image.Rect(50, 40, 100, 80)},
		{"top-half", image.Rect(0, 0, 100, 40)},
		{"bottom-half", image.Rect(0, 40, 100, 80)},
		{"left-half", image.Rect(0, 0, 50, 80)},
		{"right-half", image.Rect(50, 0, 100, 80)},
		{"center", image.Rect(25, 20, 75, 60)},
	}
	if len(tests) != len(RegionNames) {
		t.Fatalf("RegionNames has %d entries, test covers %d", len(RegionNames), len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamedRegion(img, tt.name)
			if err != nil {
				t.Fatalf("NamedRegion failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := NamedRegion(img, "middle"); err == nil {
		t.Error("NamedRegion should reject unknown names")
	}
}

func TestNamedRegion_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 110, 120))
	got, err := NamedRegion(img, "top-left")
	if err != nil {
		t.Fatal(err)
	}
	if want := image.Rect(10, 20, 60, 70); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncodePNG(t *testing.T) {
	enc, err := EncodePNG(createPatternImage(30, 20))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if enc.Width != 30 || enc.Height != 20 || enc.MimeType != "image/png" {
		t.Errorf("unexpected result %+v", enc)
	}
	data, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	if string(data[1:4]) != "PNG" {
		t.Error("encoded data is not a PNG")
	}
}
