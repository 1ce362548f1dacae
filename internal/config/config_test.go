package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/tessgo/internal/native"
	"github.com/ironsheep/tessgo/pkg/tesseract"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test. t.Setenv restores the originals.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvDatapath, EnvTessdata, EnvLanguage, EnvEngineMode, EnvPageSegMode,
		EnvPoolSize, EnvBackend, EnvDPI, EnvLogLevel,
		native.EnvTesseractLib, native.EnvLeptonicaLib,
	} {
		t.Setenv(k, "")
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	oc, err := cfg.OCR()
	require.NoError(t, err)
	assert.Equal(t, "eng", oc.Language)
	assert.Equal(t, tesseract.PageSegAuto, oc.PageSegMode)
	assert.Equal(t, tesseract.EngineDefault, oc.EngineMode)
	assert.Equal(t, 2, oc.PoolSize)
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "tessgo.toml", `
datapath = "/opt/tessdata"
language = "eng+deu"
engine_mode = "lstm-only"
page_seg_mode = "single-block"
config_files = ["hocr"]
pool_size = 4
dpi = 200.0
log_level = "debug"

[variables]
tessedit_char_whitelist = "0123456789"
load_system_dawg = false
textord_min_xheight = 12

[preprocess]
scale = 2.0
grayscale = true
threshold = 128

[libraries]
tesseract = "/usr/local/lib/libtesseract.so.5"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/tessdata", cfg.Datapath)
	assert.Equal(t, "eng+deu", cfg.Language)
	assert.Equal(t, []string{"hocr"}, cfg.ConfigFiles)
	assert.Equal(t, 4, cfg.PoolSize)
	assert.Equal(t, 200.0, cfg.DPI)
	assert.Equal(t, "0123456789", cfg.Variables["tessedit_char_whitelist"])
	assert.Equal(t, false, cfg.Variables["load_system_dawg"])
	assert.EqualValues(t, 12, cfg.Variables["textord_min_xheight"])
	assert.Equal(t, 2.0, cfg.Preprocess.Scale)
	assert.True(t, cfg.Preprocess.Grayscale)
	assert.Equal(t, 128, cfg.Preprocess.Threshold)
	assert.Equal(t, "/usr/local/lib/libtesseract.so.5", cfg.Libraries.Tesseract)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	oc, err := cfg.OCR()
	require.NoError(t, err)
	assert.Equal(t, tesseract.EngineLstmOnly, oc.EngineMode)
	assert.Equal(t, tesseract.PageSegSingleBlock, oc.PageSegMode)
	assert.Equal(t, cfg.Preprocess, oc.Pipeline)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "tessgo.yml", `
language: fra
page_seg_mode: sparse-text
backend: native
variables:
  preserve_interword_spaces: 1
preprocess:
  invert: true
  contrast: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fra", cfg.Language)
	assert.Equal(t, "sparse-text", cfg.PageSegMode)
	assert.EqualValues(t, 1, cfg.Variables["preserve_interword_spaces"])
	assert.True(t, cfg.Preprocess.Invert)
	assert.Equal(t, 20.0, cfg.Preprocess.Contrast)
	// Unset keys keep their defaults.
	assert.Equal(t, 2, cfg.PoolSize)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	tests := map[string]struct {
		name    string
		content string
	}{
		"unknown extension": {"tessgo.json", `{}`},
		"bad toml":          {"bad.toml", `language = `},
		"bad yaml":          {"bad.yaml", "language: [unclosed"},
		"bad psm":           {"psm.toml", `page_seg_mode = "diagonal"`},
		"osd default":       {"osd.toml", `page_seg_mode = "osd-only"`},
		"bad oem":           {"oem.toml", `engine_mode = "quantum"`},
		"bad pool":          {"pool.toml", `pool_size = 0`},
		"bad log level":     {"log.toml", `log_level = "chatty"`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.name, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "tessgo.toml", `
language = "eng"
pool_size = 4
`)
	t.Setenv(EnvLanguage, "jpn")
	t.Setenv(EnvPoolSize, "8")
	t.Setenv(EnvPageSegMode, "single_line")
	t.Setenv(EnvDPI, "150")
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(native.EnvLeptonicaLib, "/tmp/liblept.so")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jpn", cfg.Language)
	assert.Equal(t, 8, cfg.PoolSize)
	assert.Equal(t, "single_line", cfg.PageSegMode)
	assert.Equal(t, 150.0, cfg.DPI)
	assert.Equal(t, "/tmp/liblept.so", cfg.Libraries.Leptonica)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, lvl)

	t.Setenv(EnvPoolSize, "many")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_Datapath(t *testing.T) {
	clearEnv(t)

	t.Setenv(EnvTessdata, "/usr/share/tessdata")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/usr/share/tessdata", cfg.Datapath)

	// A file value wins over TESSDATA_PREFIX but not over TESSGO_DATAPATH.
	path := writeFile(t, "tessgo.toml", `datapath = "/from/file"`)
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.Datapath)

	t.Setenv(EnvDatapath, "/from/env")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Datapath)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// clearEnv leaves TESSGO_LANG set to "", which godotenv treats as
	// present. Unset it so the .env value can apply.
	require.NoError(t, os.Unsetenv(EnvLanguage))
	t.Cleanup(func() { os.Unsetenv(EnvLanguage) })

	require.NoError(t, os.WriteFile(".env", []byte("TESSGO_LANG=ita\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ita", cfg.Language)
}

func TestExportLibraries(t *testing.T) {
	clearEnv(t)

	cfg := Default()
	cfg.Libraries.Tesseract = "/opt/lib/libtesseract.so"
	require.NoError(t, cfg.ExportLibraries())
	assert.Equal(t, "/opt/lib/libtesseract.so", os.Getenv(native.EnvTesseractLib))
	assert.Equal(t, "", os.Getenv(native.EnvLeptonicaLib))
}
