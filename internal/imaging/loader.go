package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gen2brain/go-fitz"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/tessgo/pkg/leptonica"
)

// DefaultDPI is used to rasterize PDF pages when no DPI is given. Tesseract
// works best on text rendered at 300 DPI.
const DefaultDPI = 300

// ErrUnsupportedFormat is returned for files that are neither an image nor a
// PDF.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Only the first page of a document is cached; LoadDocument always reads the
// file again. Cached images remain in memory until Evict or Clear.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path or decodes the first page of the
// file. The path string is the cache key, so relative and absolute paths to
// the same file are cached separately.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	pages, err := loadDocument(path, DefaultDPI, 1)
	if err != nil {
		return nil, err
	}
	img := pages[0]

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes the image cached for path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len reports how many images are cached.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// LoadDocument reads every page of the file at path. Images yield one page
// (multi-page TIFF yields one per frame), PDFs one page per PDF page
// rasterized at dpi. A dpi of 0 selects DefaultDPI.
func LoadDocument(path string, dpi float64) ([]image.Image, error) {
	return loadDocument(path, dpi, 0)
}

// loadDocument reads at most limit pages; 0 means all of them.
func loadDocument(path string, dpi float64, limit int) ([]image.Image, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	mtype := mimetype.Detect(data)

	switch {
	case mtype.Is("application/pdf"):
		return rasterizePDF(data, dpi, limit)
	case mtype.Is("image/tiff") && limit != 1:
		if pages, err := loadTiffPages(path, limit); err == nil {
			return pages, nil
		}
		// Leptonica is optional; fall back to the first frame.
	case !strings.HasPrefix(mtype.String(), "image/"):
		return nil, fmt.Errorf("%s: %w (%s)", path, ErrUnsupportedFormat, mtype.String())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return []image.Image{img}, nil
}

func rasterizePDF(data []byte, dpi float64, limit int) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	if limit > 0 && n > limit {
		n = limit
	}
	pages := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		img, err := doc.ImageDPI(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render PDF page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

func loadTiffPages(path string, limit int) ([]image.Image, error) {
	arr, err := leptonica.LoadMultiPageTiff(path)
	if err != nil {
		return nil, err
	}
	defer arr.Close()

	var pages []image.Image
	for _, pix := range arr.All() {
		img, err := pix.ToImage(false)
		if err != nil {
			return nil, err
		}
		pages = append(pages, img)
		if limit > 0 && len(pages) == limit {
			break
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("TIFF has no pages")
	}
	return pages, nil
}

// ImageInfo contains metadata about an input file.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the detected format name ("png", "jpeg", "tiff", "pdf", ...).
	// Detection is based on file contents, not the extension.
	Format   string `json:"format"`
	MimeType string `json:"mime_type"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`
	HasAlpha   bool   `json:"has_alpha"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads the first page of path through cache and describes it.
// For PDFs the dimensions are those of the first page at DefaultDPI.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return DescribePage(path, img)
}

// DescribePage describes img, a page already decoded from path. Format and
// file size refer to the whole file.
func DescribePage(path string, img image.Image) (*ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect format: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        formatName(mtype),
		MimeType:      mtype.String(),
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// formatName maps a detected MIME type to the short names Leptonica and the
// CLI use.
func formatName(m *mimetype.MIME) string {
	ext := strings.TrimPrefix(m.Extension(), ".")
	switch ext {
	case "":
		return "unknown"
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return ext
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of the first page of path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
