// Package search finds files under a directory tree whose names end with
// one of a set of suffixes.
package search

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/backmassage/fltools/internal/fsys"
	"github.com/backmassage/fltools/internal/naming"
)

// Options configures a search.
type Options struct {
	Logger *zap.Logger // Nil discards logs.
}

// Result lists matching paths in traversal order.
type Result struct {
	Matches  []string       `json:"matches" yaml:"matches"`
	Warnings []fsys.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Search walks root recursively and collects every regular file whose name
// ends, ignoring case, with one of extensions. Suffixes are compared as
// given, so "txt" and ".txt" both match "notes.txt". Empty suffixes are
// ignored; with no usable suffix the result is empty. The root must exist.
func Search(fs billy.Filesystem, root string, extensions []string, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	res := Result{Matches: []string{}}

	if err := fsys.RequireDir(fs, root); err != nil {
		return res, err
	}

	suffixes := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if ext != "" {
			suffixes = append(suffixes, ext)
		}
	}
	if len(suffixes) == 0 {
		return res, nil
	}

	err := fsys.Walk(fs, root, func(path string, info os.FileInfo) error {
		for _, s := range suffixes {
			if naming.HasSuffixFold(info.Name(), s) {
				log.Debug("match", zap.String("path", path))
				res.Matches = append(res.Matches, path)
				break
			}
		}
		return nil
	}, func(path string, err error) {
		log.Warn("cannot read entry", zap.String("path", path), zap.Error(err))
		res.Warnings = append(res.Warnings, fsys.Warning{Path: path, Err: err.Error()})
	})
	if err != nil {
		return res, err
	}
	return res, nil
}
