// Package term provides ANSI color state and terminal detection.
//
// The color variables are package-level because both logging and display
// write colored output. [Configure] sets them once during startup; when
// colors are disabled they are empty strings, so concatenation is a no-op.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/fltools/internal/config"
)

// ANSI color codes. Empty when colors are disabled.
var (
	Bold   = ""
	Yellow = ""
	Cyan   = ""
	NC     = "" // Reset sequence.
)

// Configure resolves the color mode, sets the package-level ANSI variables
// and reports whether colors ended up enabled.
func Configure(mode config.ColorMode) bool {
	on := Resolve(mode, os.Stdout)
	if on {
		Bold = "\033[1m"
		Yellow = "\033[1;93m"
		Cyan = "\033[1;96m"
		NC = "\033[0m"
	} else {
		Bold, Yellow, Cyan, NC = "", "", "", ""
	}
	return on
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// Resolve determines whether colors should be enabled for out based on the
// configured mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func Resolve(mode config.ColorMode, out *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(out) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
