package display

import (
	"fmt"
	"io"

	"github.com/backmassage/titleparse/internal/term"
)

// PrintBanner writes the ASCII art banner and version to w; uses Magenta if
// colors are enabled.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, ` _   _ _   _
| |_(_) |_| | ___ _ __   __ _ _ __ ___  ___
| __| | __| |/ _ \ '_ \ / _`+"`"+` | '__/ __|/ _ \
| |_| | |_| |  __/ |_) | (_| | |  \__ \  __/
 \__|_|\__|_|\___| .__/ \__,_|_|  |___/\___|
                 |_|
`)
	fmt.Fprint(w, term.NC)
	fmt.Fprintf(w, "%sv%s%s\n\n", term.Dim, version, term.NC)
}
