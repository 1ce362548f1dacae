package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Pipeline describes the preprocessing applied before recognition. The zero
// value leaves the image untouched. Steps run in field order.
type Pipeline struct {
	// Scale resizes the image by this factor; 0 or 1 keeps the size.
	// Upscaling small scans to roughly 300 DPI helps Tesseract the most.
	Scale float64 `toml:"scale" yaml:"scale" json:"scale,omitempty"`

	Grayscale bool `toml:"grayscale" yaml:"grayscale" json:"grayscale,omitempty"`

	// Contrast in percent, -100..100.
	Contrast float64 `toml:"contrast" yaml:"contrast" json:"contrast,omitempty"`

	// Blur is a gaussian radius in pixels, used to suppress scan noise.
	Blur float64 `toml:"blur" yaml:"blur" json:"blur,omitempty"`

	Sharpen bool `toml:"sharpen" yaml:"sharpen" json:"sharpen,omitempty"`

	// Threshold binarizes at this gray level (1..255); 0 disables it.
	Threshold int `toml:"threshold" yaml:"threshold" json:"threshold,omitempty"`

	// Invert turns light-on-dark text into dark-on-light.
	Invert bool `toml:"invert" yaml:"invert" json:"invert,omitempty"`
}

// IsZero reports whether p changes nothing.
func (p Pipeline) IsZero() bool {
	return p == Pipeline{} || p == Pipeline{Scale: 1}
}

// Preprocess applies p to img and returns a new image. img is returned as is
// when p is the zero pipeline.
func Preprocess(img image.Image, p Pipeline) image.Image {
	if p.IsZero() {
		return img
	}

	out := img
	if p.Scale > 0 && p.Scale != 1 {
		b := out.Bounds()
		w := max(1, int(float64(b.Dx())*p.Scale))
		h := max(1, int(float64(b.Dy())*p.Scale))
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}
	if p.Grayscale {
		out = imaging.Grayscale(out)
	}
	if p.Contrast != 0 {
		out = adjust.Contrast(out, clamp(p.Contrast, -100, 100)/100)
	}
	if p.Blur > 0 {
		out = blur.Gaussian(out, p.Blur)
	}
	if p.Sharpen {
		out = effect.Sharpen(out)
	}
	if p.Threshold > 0 {
		out = segment.Threshold(out, uint8(min(p.Threshold, 255)))
	}
	if p.Invert {
		out = effect.Invert(out)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
