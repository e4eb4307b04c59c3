package naming

import (
	"path/filepath"
	"strings"
)

// Extension returns the text after the last dot of name, without the dot.
// Dotfiles (".bashrc"), names ending in a dot, and names without a dot have
// no extension. Case is preserved.
func Extension(name string) (string, bool) {
	trimmed := strings.TrimLeft(name, ".")
	i := strings.LastIndexByte(trimmed, '.')
	if i < 0 || i == len(trimmed)-1 {
		return "", false
	}
	return trimmed[i+1:], true
}

// HasSuffixFold reports whether name ends with suffix, ignoring case.
func HasSuffixFold(name, suffix string) bool {
	return len(name) >= len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix)
}

// OrganizeTarget builds the organize destination for a file name:
//
//	<destDir>/<ext>/<name>        when name has an extension
//	<destDir>/<noExtDir>/<name>   otherwise
//
// ok is false when name has no extension and noExtDir is empty, meaning the
// file stays where it is.
func OrganizeTarget(destDir, name, noExtDir string) (target string, ok bool) {
	folder, has := Extension(name)
	if !has {
		if noExtDir == "" {
			return "", false
		}
		folder = noExtDir
	}
	return filepath.Join(destDir, folder, name), true
}

// ValidBaseName reports whether name can be used as a single path element
// inside a directory.
func ValidBaseName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}
