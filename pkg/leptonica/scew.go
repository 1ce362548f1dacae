package leptonica

import "fmt"

// Scew is the skew measured by FindSkew or corrected by Deskew. Angle is in
// degrees, positive for clockwise skew.
type Scew struct {
	Angle      float32
	Confidence float32
}

func (s Scew) String() string {
	return fmt.Sprintf("Scew: %.2f [conf: %.2f]", s.Angle, s.Confidence)
}
