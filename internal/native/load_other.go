//go:build !linux && !darwin

package native

const platformSupported = false

func openLibrary(name string) (uintptr, error) { return 0, ErrUnsupportedPlatform }

func lookupSymbol(lib uintptr, name string) (uintptr, error) { return 0, ErrUnsupportedPlatform }

func registerFunc(fptr any, addr uintptr) {}

func libcNames() []string      { return []string{"libc"} }
func tesseractNames() []string { return []string{"libtesseract"} }
func leptonicaNames() []string { return []string{"libleptonica"} }
