package display

import (
	"fmt"
	"io"

	"github.com/backmassage/fltools/internal/term"
)

// PrintBanner writes the version banner; bold when colors are enabled.
func PrintBanner(w io.Writer, version, commit string) {
	fmt.Fprint(w, term.Bold)
	fmt.Fprint(w, ` __ _  _              _
 / _| || |_ ___  ___ | |___
|  _| ||  _/ _ \/ _ \| (_-<
|_| |_| \__\___/\___/|_/__/
`)
	fmt.Fprint(w, term.NC)
	fmt.Fprintf(w, "fltools %s (%s)\n", version, commit)
}
