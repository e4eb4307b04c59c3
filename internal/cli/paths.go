package cli

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/text/unicode/norm"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/fsys"
)

// dirArg resolves a directory argument: trailing slashes dropped, then
// made absolute like fileArg.
func dirArg(fs billy.Filesystem, arg string) (string, error) {
	return fileArg(fs, config.NormalizeDirArg(arg))
}

// fileArg makes arg absolute. When the NFC form of the path differs from
// what was typed and names an existing entry, the NFC form is used, so a
// name pasted in decomposed form still finds a file stored composed.
func fileArg(fs billy.Filesystem, arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fsys.Classify(err, "resolve", arg)
	}
	nfc := norm.NFC.String(abs)
	if nfc == abs {
		return abs, nil
	}
	if ok, _ := fsys.Exists(fs, nfc); ok {
		return nfc, nil
	}
	return abs, nil
}
