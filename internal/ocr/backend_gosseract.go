//go:build gosseract

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sort"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/tessgo/pkg/tesseract"
)

func init() {
	RegisterBackend("gosseract", newGosseractBackend)
}

// gosseractBackend uses the cgo client. A client is created per call since
// gosseract clients are not safe for concurrent use.
type gosseractBackend struct {
	cfg Config
}

func newGosseractBackend(cfg Config) (Backend, error) {
	return &gosseractBackend{cfg: cfg}, nil
}

func (b *gosseractBackend) Name() string { return "gosseract" }

func (b *gosseractBackend) client(img image.Image, mode tesseract.PageSegMode) (*gosseract.Client, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	if b.cfg.Datapath != "" {
		if err := client.SetTessdataPrefix(b.cfg.Datapath); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(b.cfg.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(mode)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	names := make([]string, 0, len(b.cfg.Variables))
	for name := range b.cfg.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := tesseract.FormatVariable(b.cfg.Variables[name])
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		if err := client.SetVariable(gosseract.SettableVariable(name), v); err != nil {
			client.Close()
			return nil, err
		}
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return client, nil
}

func (b *gosseractBackend) Extract(ctx context.Context, img image.Image, mode tesseract.PageSegMode) (*OCRResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := b.client(img, mode)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	result := &OCRResult{FullText: text, Regions: []TextRegion{}, Backend: b.Name()}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just text if boxes fail
		return result, nil
	}

	var sum float64
	for _, box := range boxes {
		sum += box.Confidence
		if box.Word == "" {
			continue
		}
		result.Regions = append(result.Regions, TextRegion{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds:     BoundsOf(box.Box),
		})
	}
	if len(boxes) > 0 {
		result.MeanConfidence = sum / float64(len(boxes)) / 100.0
	}
	return result, nil
}

func (b *gosseractBackend) DetectRegions(ctx context.Context, img image.Image, level tesseract.PageIteratorLevel) ([]TextRegionBox, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := b.client(img, tesseract.PageSegAuto)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	boxes, err := client.GetBoundingBoxes(gosseract.PageIteratorLevel(level))
	if err != nil {
		return nil, fmt.Errorf("failed to get text regions: %w", err)
	}
	out := make([]TextRegionBox, 0, len(boxes))
	for _, box := range boxes {
		out = append(out, TextRegionBox{
			Bounds:     BoundsOf(box.Box),
			Confidence: box.Confidence / 100.0,
		})
	}
	return out, nil
}

func (b *gosseractBackend) Close() error { return nil }
