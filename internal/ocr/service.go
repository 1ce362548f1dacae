package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/tessgo/internal/imaging"
	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// Config configures a Service.
type Config struct {
	Datapath                 string
	Language                 string
	EngineMode               tesseract.EngineMode
	PageSegMode              tesseract.PageSegMode
	ConfigFiles              []string
	Variables                map[string]any
	SetOnlyNonDebugVariables bool

	// PoolSize is the number of engines kept for concurrent requests.
	PoolSize int

	// Pipeline preprocesses every image unless a request overrides it.
	Pipeline imaging.Pipeline

	// Backend selects the text extraction backend; empty means native.
	Backend string
}

// DefaultConfig returns English recognition with automatic page
// segmentation and two pooled engines.
func DefaultConfig() Config {
	return Config{
		Language:    "eng",
		EngineMode:  tesseract.EngineDefault,
		PageSegMode: tesseract.PageSegAuto,
		PoolSize:    2,
	}
}

// EngineOptions translates c into options for tesseract.NewEngine.
func (c Config) EngineOptions() []tesseract.Option {
	opts := []tesseract.Option{
		tesseract.WithEngineMode(c.EngineMode),
		tesseract.WithDefaultPageSegMode(c.PageSegMode),
	}
	if len(c.ConfigFiles) > 0 {
		opts = append(opts, tesseract.WithConfigFiles(c.ConfigFiles...))
	}
	if len(c.Variables) > 0 {
		opts = append(opts, tesseract.WithVariables(c.Variables))
	}
	if c.SetOnlyNonDebugVariables {
		opts = append(opts, tesseract.WithSetOnlyNonDebugVariables())
	}
	return opts
}

// Options tunes a single request.
type Options struct {
	// PageSegMode overrides the configured mode. The zero value
	// (PageSegOsdOnly) never yields text, so it means "use the default".
	PageSegMode tesseract.PageSegMode

	// Pipeline overrides the configured preprocessing when non-nil.
	Pipeline *imaging.Pipeline
}

// Service performs OCR with a pool of engines.
type Service struct {
	cfg     Config
	log     zerolog.Logger
	engines *pool[*tesseract.Engine]
	backend Backend

	osdOnce sync.Once
	osd     *pool[*tesseract.Engine]
}

// NewService loads the native libraries and checks that an engine can be
// created with cfg. Engines beyond the first are created on demand.
func NewService(cfg Config, log zerolog.Logger) (*Service, error) {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PageSegMode == tesseract.PageSegOsdOnly {
		cfg.PageSegMode = tesseract.PageSegAuto
	}
	if err := tesseract.Load(); err != nil {
		return nil, fmt.Errorf("failed to load Tesseract: %w", err)
	}

	s := &Service{cfg: cfg, log: log}
	s.engines = newPool(cfg.PoolSize, func() (*tesseract.Engine, error) {
		start := time.Now()
		e, err := tesseract.NewEngine(cfg.Datapath, cfg.Language, cfg.EngineOptions()...)
		if err != nil {
			return nil, err
		}
		s.log.Debug().Str("language", cfg.Language).Dur("took", time.Since(start)).Msg("engine created")
		return e, nil
	})

	// Fail fast on a bad datapath or language.
	if err := s.engines.with(context.Background(), func(*tesseract.Engine) error { return nil }); err != nil {
		s.engines.close()
		return nil, err
	}

	s.backend = &nativeBackend{engines: s.engines}
	if cfg.Backend != "" && cfg.Backend != NativeBackend {
		f, err := lookupBackend(cfg.Backend)
		if err != nil {
			s.engines.close()
			return nil, err
		}
		b, err := f(cfg)
		if err != nil {
			s.engines.close()
			return nil, fmt.Errorf("backend %s: %w", cfg.Backend, err)
		}
		s.backend = b
	}
	return s, nil
}

// Config returns the configuration the service runs with.
func (s *Service) Config() Config { return s.cfg }

// Backend is the name of the active text extraction backend.
func (s *Service) Backend() string { return s.backend.Name() }

func (s *Service) prepare(img image.Image, opts Options) (image.Image, float64) {
	p := s.cfg.Pipeline
	if opts.Pipeline != nil {
		p = *opts.Pipeline
	}
	scale := 1.0
	if p.Scale > 0 {
		scale = p.Scale
	}
	return imaging.Preprocess(img, p), scale
}

func (s *Service) pageSegMode(opts Options) tesseract.PageSegMode {
	if opts.PageSegMode != tesseract.PageSegOsdOnly {
		return opts.PageSegMode
	}
	return s.cfg.PageSegMode
}

// Extract recognizes all text in img.
func (s *Service) Extract(ctx context.Context, img image.Image, opts Options) (*OCRResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	prepared, scale := s.prepare(img, opts)

	result, err := s.backend.Extract(ctx, prepared, s.pageSegMode(opts))
	if err != nil {
		return nil, err
	}
	if scale != 1 {
		for i := range result.Regions {
			result.Regions[i].Bounds = unscale(result.Regions[i].Bounds, scale)
		}
	}

	s.log.Debug().
		Str("backend", result.Backend).
		Int("words", len(result.Regions)).
		Dur("took", time.Since(start)).
		Msg("text extracted")
	return result, nil
}

// ExtractRegion recognizes the text inside r, clamped to the image. Word
// bounds are reported in the coordinates of img.
func (s *Service) ExtractRegion(ctx context.Context, img image.Image, r image.Rectangle, opts Options) (*OCRResult, error) {
	cropped, err := imaging.Crop(img, r, 1)
	if err != nil {
		return nil, err
	}
	result, err := s.Extract(ctx, cropped, opts)
	if err != nil {
		return nil, err
	}
	offsetRegions(result.Regions, imaging.ClampRect(img, r).Min)
	return result, nil
}

// DetectTextRegions finds the bounding boxes of text at level, dropping
// boxes below minConfidence (0..1).
func (s *Service) DetectTextRegions(ctx context.Context, img image.Image, level tesseract.PageIteratorLevel, minConfidence float64) (*DetectTextRegionsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prepared, scale := s.prepare(img, Options{})
	boxes, err := s.backend.DetectRegions(ctx, prepared, level)
	if err != nil {
		return nil, err
	}
	regions := filterBoxes(boxes, minConfidence)
	if scale != 1 {
		for i := range regions {
			regions[i].Bounds = unscale(regions[i].Bounds, scale)
		}
	}
	return &DetectTextRegionsResult{
		Level:   level.String(),
		Regions: regions,
		Count:   len(regions),
	}, nil
}

// osdEngines lazily creates the single-engine pool used for orientation
// detection, which needs the osd traineddata.
func (s *Service) osdEngines() *pool[*tesseract.Engine] {
	s.osdOnce.Do(func() {
		s.osd = newPool(1, func() (*tesseract.Engine, error) {
			return tesseract.NewEngine(s.cfg.Datapath, "osd",
				tesseract.WithDefaultPageSegMode(tesseract.PageSegOsdOnly))
		})
	})
	return s.osd
}

// DetectOrientation reports the page rotation and script of img.
func (s *Service) DetectOrientation(ctx context.Context, img image.Image) (*OrientationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result *OrientationResult
	err := s.osdEngines().with(ctx, func(e *tesseract.Engine) error {
		page, err := e.ProcessImage(img, tesseract.WithPageSegMode(tesseract.PageSegOsdOnly))
		if err != nil {
			return err
		}
		defer page.Close()

		osd, err := page.DetectBestOrientationAndScript()
		if err != nil {
			return err
		}
		result = &OrientationResult{
			Degrees:               osd.Degrees,
			Orientation:           osd.Orientation.String(),
			OrientationConfidence: float64(osd.OrientationConfidence),
			Script:                osd.Script,
			ScriptConfidence:      float64(osd.ScriptConfidence),
		}
		return nil
	})
	return result, err
}

// Layout returns the block structure of img. Layout always uses the native
// binding and does not preprocess with a scaling pipeline, so bounds match
// img.
func (s *Service) Layout(ctx context.Context, img image.Image, opts tesseract.LayoutOptions) ([]tesseract.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := s.cfg.Pipeline
	p.Scale = 0
	prepared := imaging.Preprocess(img, p)

	var blocks []tesseract.Block
	err := s.engines.with(ctx, func(e *tesseract.Engine) error {
		page, err := e.ProcessImage(prepared)
		if err != nil {
			return err
		}
		defer page.Close()
		blocks, err = tesseract.Layout(page, opts)
		return err
	})
	return blocks, err
}

// RenderDocument writes pages as one document per format next to
// outputBase (the renderer adds the extension).
func (s *Service) RenderDocument(ctx context.Context, pages []image.Image, outputBase, title string, formats []tesseract.RenderFormat) error {
	if len(pages) == 0 {
		return errors.New("no pages to render")
	}
	r, err := tesseract.NewRenderers(outputBase, s.cfg.Datapath, formats)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.BeginDocument(title); err != nil {
		return err
	}
	for i, img := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		prepared, _ := s.prepare(img, Options{})
		err := s.engines.with(ctx, func(e *tesseract.Engine) error {
			page, err := e.ProcessImage(prepared, tesseract.WithInputName(fmt.Sprintf("%s-%d", title, i+1)))
			if err != nil {
				return err
			}
			defer page.Close()
			return r.AddPage(page)
		})
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		s.log.Debug().Int("page", i+1).Int("of", len(pages)).Msg("page rendered")
	}
	return r.EndDocument()
}

// Render renders a single image in format and returns the file contents.
func (s *Service) Render(ctx context.Context, img image.Image, format tesseract.RenderFormat) ([]byte, error) {
	dir, err := os.MkdirTemp("", "tessgo-render-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	base := filepath.Join(dir, "page")
	if err := s.RenderDocument(ctx, []image.Image{img}, base, "page", []tesseract.RenderFormat{format}); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(base + ".*")
	if err != nil || len(matches) == 0 {
		return nil, fmt.Errorf("renderer %s produced no output", format)
	}
	return os.ReadFile(matches[0])
}

// Info describes the service for diagnostics.
type Info struct {
	TesseractVersion string   `json:"tesseract_version"`
	Language         string   `json:"language"`
	Datapath         string   `json:"datapath,omitempty"`
	EngineMode       string   `json:"engine_mode"`
	PageSegMode      string   `json:"page_seg_mode"`
	Backend          string   `json:"backend"`
	Backends         []string `json:"backends"`
	PoolSize         int      `json:"pool_size"`
	IdleEngines      int      `json:"idle_engines"`
	RenderFormats    []string `json:"render_formats"`
}

// Info reports versions and configuration.
func (s *Service) Info() Info {
	version, _ := tesseract.Version()
	formats := make([]string, 0, len(tesseract.RenderFormats))
	for _, f := range tesseract.RenderFormats {
		formats = append(formats, string(f))
	}
	return Info{
		TesseractVersion: version,
		Language:         s.cfg.Language,
		Datapath:         s.cfg.Datapath,
		EngineMode:       s.cfg.EngineMode.String(),
		PageSegMode:      s.cfg.PageSegMode.String(),
		Backend:          s.backend.Name(),
		Backends:         Backends(),
		PoolSize:         cap(s.engines.slots),
		IdleEngines:      s.engines.idleCount(),
		RenderFormats:    formats,
	}
}

// Close releases all engines.
func (s *Service) Close() error {
	errs := []error{s.backend.Close(), s.engines.close()}
	if s.osd != nil {
		errs = append(errs, s.osd.close())
	}
	return errors.Join(errs...)
}

func unscale(b Bounds, scale float64) Bounds {
	f := func(v int) int { return int(float64(v)/scale + 0.5) }
	return Bounds{X1: f(b.X1), Y1: f(b.Y1), X2: f(b.X2), Y2: f(b.Y2)}
}
