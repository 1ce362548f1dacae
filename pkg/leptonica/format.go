package leptonica

import (
	"fmt"
	"strings"
)

// ImageFormat selects the encoder used by Save and Encode. Values match
// Leptonica's IFF_* constants.
type ImageFormat int32

const (
	FormatUnknown ImageFormat = iota
	FormatBmp
	FormatJpeg
	FormatPng
	FormatTiff
	FormatTiffPackBits
	FormatTiffRle
	FormatTiffG3
	FormatTiffG4
	FormatTiffLzw
	FormatTiffZip
	FormatPnm
	FormatPs
	FormatGif
	FormatJp2
	FormatWebP
	FormatLpdf
	FormatTiffJpeg
	FormatDefault
	FormatSpix
)

var formatNames = [...]string{
	"unknown", "bmp", "jpeg", "png", "tiff", "tiff-packbits", "tiff-rle",
	"tiff-g3", "tiff-g4", "tiff-lzw", "tiff-zip", "pnm", "ps", "gif", "jp2",
	"webp", "lpdf", "tiff-jpeg", "default", "spix",
}

func (f ImageFormat) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("ImageFormat(%d)", int32(f))
}

// ParseImageFormat maps a format name or common file extension to a format.
func ParseImageFormat(s string) (ImageFormat, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch name {
	case "jpg", "jfif":
		return FormatJpeg, nil
	case "tif":
		return FormatTiff, nil
	case "pbm", "pgm", "ppm":
		return FormatPnm, nil
	case "pdf":
		return FormatLpdf, nil
	}
	for i, n := range formatNames {
		if n == name {
			return ImageFormat(i), nil
		}
	}
	return FormatUnknown, fmt.Errorf("unknown image format %q", s)
}
