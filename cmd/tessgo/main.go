// Command tessgo runs Tesseract OCR from the command line and as an MCP
// server over stdin/stdout.
package main

import (
	"os"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
