// Package tesseract binds the Tesseract OCR engine.
//
// An Engine loads language data once and processes one image at a time:
//
//	engine, err := tesseract.NewEngine("/usr/share/tesseract-ocr/5", "eng")
//	if err != nil {
//	    return err
//	}
//	defer engine.Close()
//
//	page, err := engine.ProcessImage(img)
//	if err != nil {
//	    return err
//	}
//	defer page.Close()
//	text, err := page.Text()
//
// Only one Page may be open per engine. Iterators obtained from a page are
// closed with it, and a page is closed with its engine, so closing the
// outermost object is always enough. Closing twice is harmless.
//
// Methods on closed or empty iterators return zero values (empty strings,
// zero confidence, false) without calling into Tesseract.
//
// Engines are not safe for concurrent use; run one engine per goroutine.
package tesseract
