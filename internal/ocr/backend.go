package ocr

import (
	"context"
	"fmt"
	"image"
	"sort"
	"strings"
	"sync"

	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// NativeBackend is the name of the default backend.
const NativeBackend = "native"

// Backend recognizes text. Implementations must be safe for concurrent use.
type Backend interface {
	Name() string
	Extract(ctx context.Context, img image.Image, mode tesseract.PageSegMode) (*OCRResult, error)
	DetectRegions(ctx context.Context, img image.Image, level tesseract.PageIteratorLevel) ([]TextRegionBox, error)
	Close() error
}

// BackendFactory creates a backend from the service configuration.
type BackendFactory func(cfg Config) (Backend, error)

var (
	backendsMu sync.RWMutex
	backends   = map[string]BackendFactory{}
)

// RegisterBackend makes an alternative backend selectable by name. It is
// called from init functions of build-tagged files.
func RegisterBackend(name string, f BackendFactory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[strings.ToLower(name)] = f
}

// Backends lists the available backend names, native first.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{NativeBackend}, names...)
}

func lookupBackend(name string) (BackendFactory, error) {
	backendsMu.RLock()
	f, ok := backends[strings.ToLower(name)]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown OCR backend %q (available: %s)", name, strings.Join(Backends(), ", "))
	}
	return f, nil
}

// nativeBackend runs recognition on pooled pkg/tesseract engines.
type nativeBackend struct {
	engines *pool[*tesseract.Engine]
}

func (b *nativeBackend) Name() string { return NativeBackend }

func (b *nativeBackend) Extract(ctx context.Context, img image.Image, mode tesseract.PageSegMode) (*OCRResult, error) {
	var result *OCRResult
	err := b.engines.with(ctx, func(e *tesseract.Engine) error {
		page, err := e.ProcessImage(img, tesseract.WithPageSegMode(mode))
		if err != nil {
			return err
		}
		defer page.Close()

		text, err := page.Text()
		if err != nil {
			return fmt.Errorf("OCR failed: %w", err)
		}
		conf, err := page.MeanConfidence()
		if err != nil {
			return err
		}
		words, err := tesseract.Words(page)
		if err != nil {
			return fmt.Errorf("failed to read words: %w", err)
		}

		regions := make([]TextRegion, 0, len(words))
		for _, w := range words {
			regions = append(regions, TextRegion{
				Text:       w.Text,
				Confidence: float64(w.Confidence),
				Bounds:     boundsOfRect(w.Bounds),
			})
		}
		result = &OCRResult{
			FullText:       text,
			MeanConfidence: float64(conf),
			Regions:        regions,
			Backend:        NativeBackend,
		}
		return nil
	})
	return result, err
}

func (b *nativeBackend) DetectRegions(ctx context.Context, img image.Image, level tesseract.PageIteratorLevel) ([]TextRegionBox, error) {
	var boxes []TextRegionBox
	err := b.engines.with(ctx, func(e *tesseract.Engine) error {
		page, err := e.ProcessImage(img)
		if err != nil {
			return err
		}
		defer page.Close()

		it, err := page.Iterator()
		if err != nil {
			return err
		}
		defer it.Close()

		return tesseract.Walk(it, level, func(l tesseract.PageIteratorLevel) error {
			if l != level {
				return nil
			}
			r, ok := it.BoundingBox(level)
			if !ok || r.Empty() {
				return nil
			}
			boxes = append(boxes, TextRegionBox{
				Bounds:     boundsOfRect(r),
				Confidence: float64(it.Confidence(level)) / 100,
			})
			return nil
		})
	})
	return boxes, err
}

// Close is a no-op; the service owns the engine pool.
func (b *nativeBackend) Close() error { return nil }
