package ocr

import (
	"image"

	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// BoundsOf converts an image rectangle.
func BoundsOf(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

func boundsOfRect(r tesseract.Rect) Bounds {
	return Bounds{X1: r.X1, Y1: r.Y1, X2: r.X2(), Y2: r.Y2()}
}

// Rect converts b back to an image rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// TextRegion represents a word with its location and OCR confidence.
type TextRegion struct {
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the results of text extraction from an image.
type OCRResult struct {
	// FullText is all recognized text with Tesseract's spacing and newlines.
	FullText string `json:"full_text"`

	// MeanConfidence is the mean word confidence (0.0 to 1.0).
	MeanConfidence float64 `json:"mean_confidence"`

	// Regions contains the individual words. Empty words are dropped.
	Regions []TextRegion `json:"regions"`

	Backend string `json:"backend"`
}

// DetectTextRegionsResult contains text region locations without the text.
type DetectTextRegionsResult struct {
	Level   string          `json:"level"`
	Regions []TextRegionBox `json:"regions"`
	Count   int             `json:"count"`
}

// TextRegionBox is a detected region's location without its content.
type TextRegionBox struct {
	Bounds Bounds `json:"bounds"`

	// Confidence is Tesseract's confidence score for the region (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// OrientationResult reports how a page is rotated.
type OrientationResult struct {
	// Degrees is the clockwise rotation that makes the page upright.
	Degrees               int     `json:"degrees"`
	Orientation           string  `json:"orientation"`
	OrientationConfidence float64 `json:"orientation_confidence"`
	Script                string  `json:"script"`
	ScriptConfidence      float64 `json:"script_confidence"`
}

// offsetRegions moves word boxes of a cropped image back into the
// coordinates of the original.
func offsetRegions(regions []TextRegion, origin image.Point) {
	for i := range regions {
		regions[i].Bounds.X1 += origin.X
		regions[i].Bounds.Y1 += origin.Y
		regions[i].Bounds.X2 += origin.X
		regions[i].Bounds.Y2 += origin.Y
	}
}

func filterBoxes(boxes []TextRegionBox, minConfidence float64) []TextRegionBox {
	out := make([]TextRegionBox, 0, len(boxes))
	for _, b := range boxes {
		if b.Confidence < minConfidence {
			continue
		}
		out = append(out, b)
	}
	return out
}
