package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/tessgo/internal/config"
	"github.com/ironsheep/tessgo/internal/imaging"
	"github.com/ironsheep/tessgo/internal/ocr"
	"github.com/ironsheep/tessgo/pkg/tesseract"
)

var (
	cfgFile     string
	logLevel    string
	datapath    string
	language    string
	pageSegMode string
	engineMode  string

	// Set by PersistentPreRunE.
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tessgo",
	Short: "Tesseract OCR without cgo",
	Long: `tessgo recognizes text in images, multi-page TIFFs and PDFs using the
Tesseract and Leptonica shared libraries, loaded at runtime.

Settings come from --config (TOML or YAML), a .env file, TESSGO_* environment
variables and flags, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.ExportLibraries(); err != nil {
			return err
		}

		level, err := cfg.Level()
		if err != nil {
			return err
		}
		// stdout carries results and the MCP protocol.
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().Level(level)
		tesseract.SetLogger(logger.With().Str("component", "tesseract").Logger())
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file path (.toml, .yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&datapath, "tessdata", "", "tessdata directory")
	pf.StringVarP(&language, "lang", "l", "", "languages, e.g. eng+deu")
	pf.StringVar(&pageSegMode, "psm", "", "page segmentation mode, e.g. single-block")
	pf.StringVar(&engineMode, "oem", "", "engine mode: tesseract-only, lstm-only, tesseract-and-lstm, default")
}

// applyFlags overrides configuration with flags the user actually set.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("log-level", &c.LogLevel, logLevel)
	set("tessdata", &c.Datapath, datapath)
	set("lang", &c.Language, language)
	set("psm", &c.PageSegMode, pageSegMode)
	set("oem", &c.EngineMode, engineMode)
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// newService starts an OCR service from the loaded configuration.
func newService() (*ocr.Service, error) {
	oc, err := cfg.OCR()
	if err != nil {
		return nil, err
	}
	return ocr.NewService(oc, logger)
}

// page is one input page; Number is 1-based.
type page struct {
	Number int
	Image  image.Image
}

// loadPages reads every page of path, or only the given one when n > 0.
func loadPages(path string, n int) ([]page, error) {
	pages, err := imaging.LoadDocument(path, cfg.DPI)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		out := make([]page, len(pages))
		for i, img := range pages {
			out[i] = page{Number: i + 1, Image: img}
		}
		return out, nil
	}
	if n > len(pages) {
		return nil, fmt.Errorf("page %d out of range: %s has %d page(s)", n, path, len(pages))
	}
	return []page{{Number: n, Image: pages[n-1]}}, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
