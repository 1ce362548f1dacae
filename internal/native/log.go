package native

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger receives diagnostics from the binding: library loading at debug
// level and leaked handles at warn level.
var Logger = zerolog.New(os.Stderr).
	With().
	Timestamp().
	Str("component", "tessgo").
	Logger().
	Level(zerolog.WarnLevel)

// SetLogger replaces the binding logger.
func SetLogger(l zerolog.Logger) {
	Logger = l
}
