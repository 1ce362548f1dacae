package native

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

var (
	// ErrUnsupportedPlatform is returned by Load on platforms purego cannot
	// open shared libraries on.
	ErrUnsupportedPlatform = errors.New("native: platform not supported")

	// ErrLibraryNotLoaded is returned when a library could not be opened
	// under any of its candidate names.
	ErrLibraryNotLoaded = errors.New("native: library not loaded")
)

const (
	// EnvTesseractLib overrides the Tesseract library path.
	EnvTesseractLib = "TESSGO_TESSERACT_LIB"
	// EnvLeptonicaLib overrides the Leptonica library path.
	EnvLeptonicaLib = "TESSGO_LEPTONICA_LIB"
)

type symbol struct {
	fptr any
	name string
}

var (
	loadOnce sync.Once
	loadErr  error

	libcOnce sync.Once
	libcErr  error
)

// Load opens libc, Leptonica and Tesseract and resolves every entry point.
// It runs once; later calls return the first result.
func Load() error {
	loadOnce.Do(func() {
		if !platformSupported {
			loadErr = ErrUnsupportedPlatform
			return
		}
		if err := loadLibc(); err != nil {
			loadErr = err
			return
		}
		loadErr = loadLibraries()
		if loadErr == nil {
			Logger.Debug().Msg("native libraries loaded")
		}
	})
	return loadErr
}

func loadLibc() error {
	libcOnce.Do(func() {
		if !platformSupported {
			libcErr = ErrUnsupportedPlatform
			return
		}
		libcErr = openAndBind("libc", "", libcNames(), libc.symbols())
	})
	return libcErr
}

func loadLibraries() error {
	if err := openAndBind("leptonica", os.Getenv(EnvLeptonicaLib), leptonicaNames(), Lept.symbols()); err != nil {
		return err
	}
	return openAndBind("tesseract", os.Getenv(EnvTesseractLib), tesseractNames(), Tess.symbols())
}

func openAndBind(label, override string, names []string, syms []symbol) error {
	candidates := names
	if override != "" {
		candidates = []string{override}
	}

	var tried []string
	for _, name := range candidates {
		lib, err := openLibrary(name)
		if err != nil {
			tried = append(tried, fmt.Sprintf("%s (%v)", name, err))
			continue
		}
		if err := bind(lib, syms); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		Logger.Debug().Str("library", label).Str("path", name).Msg("opened")
		return nil
	}
	return fmt.Errorf("%w: %s: tried %s", ErrLibraryNotLoaded, label, strings.Join(tried, "; "))
}

func bind(lib uintptr, syms []symbol) error {
	for _, s := range syms {
		addr, err := lookupSymbol(lib, s.name)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", s.name, err)
		}
		registerFunc(s.fptr, addr)
	}
	return nil
}
