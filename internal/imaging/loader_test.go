package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/ironsheep/tessgo/pkg/leptonica"
)

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.Len() != 0 {
		t.Errorf("new cache has %d entries", cache.Len())
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, 100, 50, color.RGBA{255, 0, 0, 255})

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 100x50", b.Dx(), b.Dy())
	}

	// Second load comes from the cache even after the file is gone.
	os.Remove(path)
	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if again != img {
		t.Error("second Load should return the cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/image.png"); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestImageCache_Load_NotAnImage(t *testing.T) {
	cache := NewImageCache()
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := cache.Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestImageCache_Load_CorruptImage(t *testing.T) {
	cache := NewImageCache()
	path := filepath.Join(t.TempDir(), "broken.png")
	// A PNG signature followed by garbage sniffs as PNG but does not decode.
	data := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage")...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for corrupt image data")
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	a := createTestImage(t, 10, 10, color.White)
	b := createTestImage(t, 20, 20, color.Black)

	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("cache has %d entries, want 2", cache.Len())
	}

	cache.Evict(a)
	cache.Evict("/not/cached.png")
	if cache.Len() != 1 {
		t.Errorf("after Evict: %d entries, want 1", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after Clear: %d entries, want 0", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load failed: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, 200, 150, color.RGBA{128, 128, 128, 255})

	info, err := LoadImageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Width != 200 || info.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" || info.MimeType != "image/png" {
		t.Errorf("format: got %s (%s), want png (image/png)", info.Format, info.MimeType)
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("ColorDepth: got %s, want 8-bit", info.ColorDepth)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

// The format comes from the file contents, so a misleading extension does
// not matter.
func TestLoadImageInfo_FormatDetection(t *testing.T) {
	img := createPatternImage(16, 8)

	tests := []struct {
		name   string
		format string
		encode func(f *os.File) error
	}{
		{"png", "png", func(f *os.File) error { return png.Encode(f, img) }},
		{"jpeg", "jpeg", func(f *os.File) error { return jpeg.Encode(f, img, nil) }},
		{"gif", "gif", func(f *os.File) error { return gif.Encode(f, img, nil) }},
		{"tiff", "tiff", func(f *os.File) error { return tiff.Encode(f, img, nil) }},
		{"bmp", "bmp", func(f *os.File) error { return bmp.Encode(f, img) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "input.xyz")
			f, err := os.Create(path)
			if err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
			if err := tt.encode(f); err != nil {
				f.Close()
				t.Fatalf("encode failed: %v", err)
			}
			f.Close()

			info, err := LoadImageInfo(NewImageCache(), path)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}
			if info.Format != tt.format {
				t.Errorf("Format: got %s, want %s", info.Format, tt.format)
			}
			if info.Width != 16 || info.Height != 8 {
				t.Errorf("dimensions: got %dx%d, want 16x8", info.Width, info.Height)
			}
		})
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	if _, err := LoadImageInfo(NewImageCache(), "/nonexistent/image.png"); err == nil {
		t.Error("LoadImageInfo should fail for a missing file")
	}
}

func TestGetDimensions(t *testing.T) {
	path := createTestImage(t, 320, 240, color.White)

	dims, err := GetDimensions(NewImageCache(), path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 320 || dims.Height != 240 {
		t.Errorf("got %dx%d, want 320x240", dims.Width, dims.Height)
	}
}

func TestLoadDocument_SinglePage(t *testing.T) {
	path := createTestImage(t, 30, 40, color.White)

	pages, err := LoadDocument(path, 0)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if b := pages[0].Bounds(); b.Dx() != 30 || b.Dy() != 40 {
		t.Errorf("dimensions: got %dx%d, want 30x40", b.Dx(), b.Dy())
	}
}

func TestLoadDocument_Tiff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.tif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := tiff.Encode(f, image.NewGray(image.Rect(0, 0, 24, 12)), nil); err != nil {
		t.Fatal(err)
	}
	f.Close()

	pages, err := LoadDocument(path, 0)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if b := pages[0].Bounds(); b.Dx() != 24 || b.Dy() != 12 {
		t.Errorf("dimensions: got %dx%d, want 24x12", b.Dx(), b.Dy())
	}
}

func TestLoadTiffPages_RGBIsOpaque(t *testing.T) {
	pix, err := leptonica.Create(4, 3, 32)
	if err != nil {
		t.Skipf("Leptonica not available: %v", err)
	}
	defer pix.Close()

	// Leptonica stores RGB as 0xRRGGBB00: the alpha byte is not set.
	d := pix.Data()
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			d.SetPixel(x, y, 0xFFFFFF00)
		}
	}
	path := filepath.Join(t.TempDir(), "rgb.tif")
	if err := pix.Save(path, leptonica.FormatTiff); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	pages, err := loadTiffPages(path, 0)
	if err != nil {
		t.Fatalf("loadTiffPages failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if _, _, _, a := pages[0].At(1, 1).RGBA(); a != 0xffff {
		t.Errorf("page should be opaque, alpha = %#x", a)
	}

	gray := Preprocess(pages[0], Pipeline{Grayscale: true})
	if g := color.GrayModel.Convert(gray.At(1, 1)).(color.Gray); g.Y != 255 {
		t.Errorf("white page turned gray %d after preprocessing", g.Y)
	}
}

func TestLoadDocument_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"a": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDocument(path, 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}
