package tesseract

import (
	"fmt"
	"image"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ironsheep/tessgo/internal/native"
	"github.com/ironsheep/tessgo/pkg/leptonica"
)

// SetLogger replaces the logger used for library loading diagnostics and
// leaked handle warnings.
func SetLogger(l zerolog.Logger) {
	native.SetLogger(l)
}

// Load opens the Tesseract and Leptonica libraries. Constructors call it
// implicitly; call it directly to check availability up front.
func Load() error {
	return native.Load()
}

// Version returns the version string of the loaded Tesseract library.
func Version() (string, error) {
	if err := native.Load(); err != nil {
		return "", err
	}
	return native.GoString(native.Tess.Version()), nil
}

type engineConfig struct {
	mode            EngineMode
	configFiles     []string
	variables       map[string]any
	setOnlyNonDebug bool
	pageSegMode     PageSegMode
}

// Option configures NewEngine.
type Option func(*engineConfig)

// WithEngineMode selects the recognizer. Default: EngineDefault.
func WithEngineMode(m EngineMode) Option {
	return func(c *engineConfig) { c.mode = m }
}

// WithConfigFiles loads Tesseract config files (UTF-8, no BOM, unix line
// endings) during initialisation.
func WithConfigFiles(files ...string) Option {
	return func(c *engineConfig) { c.configFiles = append(c.configFiles, files...) }
}

// WithVariables sets variables during initialisation, which is required for
// init-only variables such as load_system_dawg. Values are formatted with
// FormatVariable.
func WithVariables(vars map[string]any) Option {
	return func(c *engineConfig) {
		if c.variables == nil {
			c.variables = make(map[string]any, len(vars))
		}
		for k, v := range vars {
			c.variables[k] = v
		}
	}
}

// WithSetOnlyNonDebugVariables makes initialisation ignore debug variables.
func WithSetOnlyNonDebugVariables() Option {
	return func(c *engineConfig) { c.setOnlyNonDebug = true }
}

// WithDefaultPageSegMode sets the mode used by Process when none is given.
// Default: PageSegAuto.
func WithDefaultPageSegMode(m PageSegMode) Option {
	return func(c *engineConfig) { c.pageSegMode = m }
}

// pageSlot tracks whether the engine has a page open. It is shared with the
// page's close hook and must not reference the engine.
type pageSlot struct {
	mu   sync.Mutex
	open bool
}

// Engine is an initialised Tesseract instance.
type Engine struct {
	life        *native.Lifetime
	slot        *pageSlot
	datapath    string
	language    string
	mode        EngineMode
	defaultMode PageSegMode
}

// normalizeDatapath trims whitespace and one trailing path separator.
func normalizeDatapath(p string) string {
	p = strings.TrimSpace(p)
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, `\`) {
		p = p[:len(p)-1]
	}
	return p
}

func deleteEngine(h uintptr) {
	native.Tess.BaseAPIDelete(h)
}

// NewEngine initialises Tesseract.
//
// datapath is the directory containing the traineddata files (or its parent
// for older layouts); an empty datapath lets Tesseract use TESSDATA_PREFIX or
// its compiled-in default. language is one or more language codes joined by
// '+', for example "eng+deu".
func NewEngine(datapath, language string, opts ...Option) (*Engine, error) {
	if strings.TrimSpace(language) == "" {
		return nil, fmt.Errorf("tesseract: language must not be empty")
	}
	cfg := engineConfig{mode: EngineDefault, pageSegMode: PageSegAuto}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := native.Load(); err != nil {
		return nil, err
	}

	datapath = normalizeDatapath(datapath)

	names := make([]string, 0, len(cfg.variables))
	for k := range cfg.variables {
		names = append(names, k)
	}
	sort.Strings(names)
	values := make([]string, len(names))
	for i, k := range names {
		v, err := FormatVariable(cfg.variables[k])
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", k, err)
		}
		values[i] = v
	}

	var dp uintptr
	if datapath != "" {
		p, err := native.CString(datapath)
		if err != nil {
			return nil, err
		}
		defer native.Free(p)
		dp = p
	}
	configs, releaseConfigs, err := native.CStringArray(cfg.configFiles)
	if err != nil {
		return nil, err
	}
	defer releaseConfigs()
	varNames, releaseNames, err := native.CStringArray(names)
	if err != nil {
		return nil, err
	}
	defer releaseNames()
	varValues, releaseValues, err := native.CStringArray(values)
	if err != nil {
		return nil, err
	}
	defer releaseValues()

	h := native.Tess.BaseAPICreate()
	if h == 0 {
		return nil, fmt.Errorf("tesseract: TessBaseAPICreate failed")
	}
	rc := native.Tess.BaseAPIInit4(h, dp, language, int32(cfg.mode),
		configs, int32(len(cfg.configFiles)),
		varNames, varValues, uintptr(len(names)),
		native.Bool(cfg.setOnlyNonDebug))
	if rc != 0 {
		native.Tess.BaseAPIDelete(h)
		return nil, fmt.Errorf("%w: datapath %q, language %q, mode %s", ErrInit, datapath, language, cfg.mode)
	}

	native.Logger.Debug().
		Str("datapath", datapath).
		Str("language", language).
		Str("mode", cfg.mode.String()).
		Msg("engine initialised")

	return &Engine{
		life:        native.NewLifetime("Engine", h, deleteEngine),
		slot:        &pageSlot{},
		datapath:    datapath,
		language:    language,
		mode:        cfg.mode,
		defaultMode: cfg.pageSegMode,
	}, nil
}

func (e *Engine) handle() uintptr {
	if e == nil {
		return 0
	}
	return e.life.Handle()
}

// Close releases the engine and any open page.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	return e.life.Close()
}

// Closed reports whether the engine has been released.
func (e *Engine) Closed() bool {
	return e.handle() == 0
}

// Version returns the Tesseract library version.
func (e *Engine) Version() string {
	v, _ := Version()
	return v
}

// Datapath is the normalized data path the engine was created with.
func (e *Engine) Datapath() string { return e.datapath }

// Language is the language string the engine was created with.
func (e *Engine) Language() string { return e.language }

// EngineMode is the recognizer selected at creation.
func (e *Engine) EngineMode() EngineMode { return e.mode }

// DefaultPageSegMode is used by Process when no mode is given.
func (e *Engine) DefaultPageSegMode() PageSegMode { return e.defaultMode }

func (e *Engine) SetDefaultPageSegMode(m PageSegMode) { e.defaultMode = m }

type processConfig struct {
	region      *Rect
	inputName   string
	pageSegMode *PageSegMode
}

// ProcessOption configures Process.
type ProcessOption func(*processConfig)

// WithRegion limits recognition to r, which must lie within the image.
func WithRegion(r Rect) ProcessOption {
	return func(c *processConfig) { c.region = &r }
}

// WithInputName sets the input file name, only needed for training or for
// loading a .uzn zone file next to the image.
func WithInputName(name string) ProcessOption {
	return func(c *processConfig) { c.inputName = name }
}

// WithPageSegMode overrides the engine's default page segmentation mode.
func WithPageSegMode(m PageSegMode) ProcessOption {
	return func(c *processConfig) { c.pageSegMode = &m }
}

// Process prepares pix for recognition and returns the page. Recognition
// itself runs lazily on the first call that needs results. The pix must stay
// open until the page is closed.
func (e *Engine) Process(pix *leptonica.Pix, opts ...ProcessOption) (*Page, error) {
	h := e.handle()
	if h == 0 {
		return nil, ErrClosed
	}
	if pix.Closed() {
		return nil, fmt.Errorf("tesseract: image: %w", leptonica.ErrClosed)
	}

	var cfg processConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	width, height := pix.Width(), pix.Height()
	region := Rect{Width: width, Height: height}
	if cfg.region != nil {
		region = *cfg.region
		if !region.Within(width, height) {
			return nil, fmt.Errorf("%w: %s in %dx%d image", ErrInvalidRegion, region, width, height)
		}
	}
	mode := e.defaultMode
	if cfg.pageSegMode != nil {
		mode = *cfg.pageSegMode
	}

	e.slot.mu.Lock()
	if e.slot.open {
		e.slot.mu.Unlock()
		return nil, ErrPageInProgress
	}
	e.slot.open = true
	e.slot.mu.Unlock()

	native.Tess.SetPageSegMode(h, int32(mode))
	native.Tess.SetImage2(h, pix.Handle())
	if cfg.inputName != "" {
		native.Tess.SetInputName(h, cfg.inputName)
	}

	page := newPage(e, pix, cfg.inputName, mode)
	slot := e.slot
	page.life.OnClose(func() {
		slot.mu.Lock()
		slot.open = false
		slot.mu.Unlock()
	})
	e.life.Adopt(page.life)
	page.applyRegion(region)
	return page, nil
}

// ProcessImage converts img to a pix and processes it. The pix is released
// when the page is closed.
func (e *Engine) ProcessImage(img image.Image, opts ...ProcessOption) (*Page, error) {
	if e.Closed() {
		return nil, ErrClosed
	}
	pix, err := leptonica.FromImage(img)
	if err != nil {
		return nil, err
	}
	page, err := e.Process(pix, opts...)
	if err != nil {
		pix.Close()
		return nil, err
	}
	page.life.OnClose(func() { pix.Close() })
	return page, nil
}

// ProcessFile loads an image with Leptonica and processes it. The pix is
// released when the page is closed.
func (e *Engine) ProcessFile(path string, opts ...ProcessOption) (*Page, error) {
	if e.Closed() {
		return nil, ErrClosed
	}
	pix, err := leptonica.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	page, err := e.Process(pix, append([]ProcessOption{WithInputName(path)}, opts...)...)
	if err != nil {
		pix.Close()
		return nil, err
	}
	page.life.OnClose(func() { pix.Close() })
	return page, nil
}
