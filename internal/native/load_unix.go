//go:build linux || darwin

package native

import (
	"runtime"

	"github.com/ebitengine/purego"
)

const platformSupported = true

func openLibrary(name string) (uintptr, error) {
	return purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func lookupSymbol(lib uintptr, name string) (uintptr, error) {
	return purego.Dlsym(lib, name)
}

func registerFunc(fptr any, addr uintptr) {
	purego.RegisterFunc(fptr, addr)
}

func libcNames() []string {
	if runtime.GOOS == "darwin" {
		return []string{"/usr/lib/libSystem.B.dylib"}
	}
	return []string{"libc.so.6", "libc.so"}
}

func tesseractNames() []string {
	if runtime.GOOS == "darwin" {
		return []string{
			"libtesseract.5.dylib",
			"libtesseract.dylib",
			"/opt/homebrew/lib/libtesseract.dylib",
			"/usr/local/lib/libtesseract.dylib",
		}
	}
	return []string{"libtesseract.so.5", "libtesseract.so.4", "libtesseract.so"}
}

func leptonicaNames() []string {
	if runtime.GOOS == "darwin" {
		return []string{
			"libleptonica.6.dylib",
			"libleptonica.dylib",
			"liblept.dylib",
			"/opt/homebrew/lib/libleptonica.dylib",
			"/usr/local/lib/libleptonica.dylib",
		}
	}
	return []string{"libleptonica.so.6", "liblept.so.5", "libleptonica.so", "liblept.so"}
}
