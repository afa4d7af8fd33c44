// Package term holds the ANSI color state shared by the text renderer and
// the banner, and decides whether a stream gets colors at all.
//
// The codes are package-level strings: [Configure] fills them once at
// startup and leaves them empty when colors are off, so callers can always
// concatenate them unconditionally.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/titleparse/internal/config"
)

// ANSI codes by role in the text output. Empty when colors are disabled.
var (
	Green   = "" // parsed titles
	Yellow  = "" // missing titles
	Cyan    = "" // input names
	Magenta = "" // banner
	Dim     = "" // planned paths, version
	NC      = "" // reset
)

var palette = []struct {
	code *string
	seq  string
}{
	{&Green, "\033[1;92m"},
	{&Yellow, "\033[1;93m"},
	{&Cyan, "\033[1;96m"},
	{&Magenta, "\033[1;95m"},
	{&Dim, "\033[2m"},
	{&NC, "\033[0m"},
}

// Configure resolves mode against stdout, where rendered results go.
func Configure(mode config.ColorMode) {
	set(Resolve(mode, os.Stdout))
}

func set(on bool) {
	for _, c := range palette {
		*c.code = ""
		if on {
			*c.code = c.seq
		}
	}
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// Resolve reports whether output written to f should be colored. Auto mode
// requires a TTY and honors NO_COLOR (https://no-color.org) and TERM=dumb;
// the explicit modes ignore both.
func Resolve(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(f)
}

// IsTerminal reports whether f is a TTY, Cygwin and MSYS pseudo-terminals
// included.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
