// Package leptonica wraps the Leptonica PIX image type and the handful of
// Leptonica operations Tesseract users need before recognition.
//
// A Pix owns a native image. Close it when done; a finalizer releases leaked
// images but logs a warning when it has to. Pix values are not safe for
// concurrent use.
//
// # Pixel layout
//
// Leptonica stores each raster line as an array of 32-bit words. Pixels are
// packed most significant bits first within a word, so for a 1 bpp image the
// leftmost pixel of a word is bit 31. PixData exposes those words directly
// and the GetDataBit / SetDataBit / ... helpers read and write single pixels.
//
// 32 bpp pixels are packed as 0xRRGGBBAA.
//
// # Conversion
//
// FromImage and (*Pix).ToImage move pixels between Go's image package and
// Leptonica:
//
//	pix, err := leptonica.FromImage(img)
//	if err != nil {
//	    return err
//	}
//	defer pix.Close()
package leptonica
