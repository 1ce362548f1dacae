package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodedImage is a PNG ready to be embedded in a JSON response.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	b := img.Bounds()
	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// ClampRect intersects r with the bounds of img. The result is empty when
// the two do not overlap.
func ClampRect(img image.Image, r image.Rectangle) image.Rectangle {
	return r.Canon().Intersect(img.Bounds())
}

// Crop extracts region r from img, clamped to the image bounds, and scales
// the result by scale when it is positive and not 1. The returned image
// always starts at (0,0).
func Crop(img image.Image, r image.Rectangle, scale float64) (*image.NRGBA, error) {
	clamped := ClampRect(img, r)
	if clamped.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, img.Bounds())
	}

	cropped := imaging.Crop(img, clamped)
	if scale != 1.0 && scale > 0 {
		w := int(float64(cropped.Bounds().Dx()) * scale)
		h := int(float64(cropped.Bounds().Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %.3f collapses %v to nothing", scale, clamped)
		}
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}
	return cropped, nil
}

// RegionNames lists the names accepted by NamedRegion.
var RegionNames = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

// NamedRegion resolves a named part of img ("top-left", "bottom-half",
// "center", ...) to a rectangle. Useful for OCR of headers and footers
// without knowing the page size.
func NamedRegion(img image.Image, name string) (image.Rectangle, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	midX, midY := w/2, h/2

	var r image.Rectangle
	switch name {
	case "top-left":
		r = image.Rect(0, 0, midX, midY)
	case "top-right":
		r = image.Rect(midX, 0, w, midY)
	case "bottom-left":
		r = image.Rect(0, midY, midX, h)
	case "bottom-right":
		r = image.Rect(midX, midY, w, h)
	case "top-half":
		r = image.Rect(0, 0, w, midY)
	case "bottom-half":
		r = image.Rect(0, midY, w, h)
	case "left-half":
		r = image.Rect(0, 0, midX, h)
	case "right-half":
		r = image.Rect(midX, 0, w, h)
	case "center":
		// Center 50% of the image
		r = image.Rect(w/4, h/4, w-w/4, h-h/4)
	default:
		return image.Rectangle{}, fmt.Errorf("unknown region: %s", name)
	}
	return r.Add(b.Min), nil
}
