// Package term owns the ANSI color state for maskmaster's log output.
//
// The color variables are package-level so logging and display can build
// colored lines by plain concatenation. [Configure] sets them once at
// startup from the --color flag; with colors off every variable is the
// empty string and concatenation costs nothing.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/maskmaster/internal/config"
)

// ANSI color codes. Empty when colors are disabled.
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Orange  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	NC      = "" // Reset sequence.
)

// Escape sequences paired with the variables above, in the same order.
var palette = []struct {
	dst *string
	seq string
}{
	{&Red, "\033[1;91m"},
	{&Green, "\033[1;92m"},
	{&Yellow, "\033[1;93m"},
	{&Orange, "\033[1;38;5;208m"},
	{&Blue, "\033[1;94m"},
	{&Cyan, "\033[1;96m"},
	{&Magenta, "\033[1;95m"},
	{&NC, "\033[0m"},
}

// Configure resolves mode and sets the package-level color variables.
// Called once from [logging.NewLogger] before the first log line.
func Configure(mode config.ColorMode) {
	on := colorWanted(mode)
	for _, p := range palette {
		if on {
			*p.dst = p.seq
		} else {
			*p.dst = ""
		}
	}
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// colorWanted maps the configured mode to an on/off decision. Auto means
// stdout is a TTY, NO_COLOR (https://no-color.org) is unset, and TERM is
// not "dumb".
func colorWanted(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
