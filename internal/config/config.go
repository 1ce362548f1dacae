// Package config loads tessgo settings from a TOML or YAML file, a .env file
// and TESSGO_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/tessgo/internal/imaging"
	"github.com/ironsheep/tessgo/internal/native"
	"github.com/ironsheep/tessgo/internal/ocr"
	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// Environment variables read by Load.
const (
	EnvDatapath    = "TESSGO_DATAPATH"
	EnvTessdata    = "TESSDATA_PREFIX"
	EnvLanguage    = "TESSGO_LANG"
	EnvEngineMode  = "TESSGO_OEM"
	EnvPageSegMode = "TESSGO_PSM"
	EnvPoolSize    = "TESSGO_POOL_SIZE"
	EnvBackend     = "TESSGO_BACKEND"
	EnvDPI         = "TESSGO_DPI"
	EnvLogLevel    = "TESSGO_LOG_LEVEL"
)

// Config holds everything the CLI and the MCP server need.
type Config struct {
	// Datapath is the directory containing tessdata; empty lets Tesseract
	// use its compiled-in default or TESSDATA_PREFIX.
	Datapath string `toml:"datapath" yaml:"datapath"`

	// Language is one or more traineddata names joined with '+'.
	Language    string   `toml:"language" yaml:"language"`
	EngineMode  string   `toml:"engine_mode" yaml:"engine_mode"`
	PageSegMode string   `toml:"page_seg_mode" yaml:"page_seg_mode"`
	ConfigFiles []string `toml:"config_files" yaml:"config_files"`

	// Variables are applied during engine initialisation.
	Variables                map[string]any `toml:"variables" yaml:"variables"`
	SetOnlyNonDebugVariables bool           `toml:"set_only_non_debug_variables" yaml:"set_only_non_debug_variables"`

	PoolSize int    `toml:"pool_size" yaml:"pool_size"`
	Backend  string `toml:"backend" yaml:"backend"`

	// DPI is the resolution PDF pages are rasterized at.
	DPI float64 `toml:"dpi" yaml:"dpi"`

	Preprocess imaging.Pipeline `toml:"preprocess" yaml:"preprocess"`

	LogLevel  string    `toml:"log_level" yaml:"log_level"`
	Libraries Libraries `toml:"libraries" yaml:"libraries"`
}

// Libraries overrides the shared library paths probed by the binding.
type Libraries struct {
	Tesseract string `toml:"tesseract" yaml:"tesseract"`
	Leptonica string `toml:"leptonica" yaml:"leptonica"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Language:    "eng",
		EngineMode:  tesseract.EngineDefault.String(),
		PageSegMode: tesseract.PageSegAuto.String(),
		PoolSize:    2,
		Backend:     ocr.NativeBackend,
		DPI:         imaging.DefaultDPI,
		LogLevel:    "warn",
	}
}

// Load reads path (TOML or YAML, chosen by extension) over the defaults,
// then applies environment overrides. An empty path skips the file. Values
// from a .env file in the working directory are visible to the overrides
// but never replace variables that are already set.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file type %q (want .toml, .yaml or .yml)", ext)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDatapath); v != "" {
		c.Datapath = v
	} else if v := os.Getenv(EnvTessdata); v != "" && c.Datapath == "" {
		c.Datapath = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if v := os.Getenv(EnvEngineMode); v != "" {
		c.EngineMode = v
	}
	if v := os.Getenv(EnvPageSegMode); v != "" {
		c.PageSegMode = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(native.EnvTesseractLib); v != "" {
		c.Libraries.Tesseract = v
	}
	if v := os.Getenv(native.EnvLeptonicaLib); v != "" {
		c.Libraries.Leptonica = v
	}
	if v := os.Getenv(EnvPoolSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPoolSize, err)
		}
		c.PoolSize = n
	}
	if v := os.Getenv(EnvDPI); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDPI, err)
		}
		c.DPI = dpi
	}
	return nil
}

// Validate checks that every enumerated value parses.
func (c *Config) Validate() error {
	if _, err := tesseract.ParseEngineMode(c.EngineMode); err != nil {
		return err
	}
	psm, err := tesseract.ParsePageSegMode(c.PageSegMode)
	if err != nil {
		return err
	}
	if psm == tesseract.PageSegOsdOnly {
		return fmt.Errorf("page_seg_mode %s cannot be the default mode", c.PageSegMode)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("invalid pool size: %d", c.PoolSize)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("invalid dpi: %v", c.DPI)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel; empty means warn.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}

// OCR converts the file settings into a service configuration.
func (c *Config) OCR() (ocr.Config, error) {
	oem, err := tesseract.ParseEngineMode(c.EngineMode)
	if err != nil {
		return ocr.Config{}, err
	}
	psm, err := tesseract.ParsePageSegMode(c.PageSegMode)
	if err != nil {
		return ocr.Config{}, err
	}
	return ocr.Config{
		Datapath:                 c.Datapath,
		Language:                 c.Language,
		EngineMode:               oem,
		PageSegMode:              psm,
		ConfigFiles:              c.ConfigFiles,
		Variables:                c.Variables,
		SetOnlyNonDebugVariables: c.SetOnlyNonDebugVariables,
		PoolSize:                 c.PoolSize,
		Pipeline:                 c.Preprocess,
		Backend:                  c.Backend,
	}, nil
}

// ExportLibraries publishes the library overrides to the environment the
// binding reads when it first loads. It must run before any OCR call.
func (c *Config) ExportLibraries() error {
	if c.Libraries.Tesseract != "" {
		if err := os.Setenv(native.EnvTesseractLib, c.Libraries.Tesseract); err != nil {
			return err
		}
	}
	if c.Libraries.Leptonica != "" {
		if err := os.Setenv(native.EnvLeptonicaLib, c.Libraries.Leptonica); err != nil {
			return err
		}
	}
	return nil
}
