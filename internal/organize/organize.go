// Package organize moves the files at the top level of a directory into
// per-extension folders under a destination directory.
package organize

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/fsys"
	"github.com/backmassage/fltools/internal/naming"
)

// Options configures an organize run. The zero value is not usable;
// start from [DefaultOptions].
type Options struct {
	// NoExtDir receives files without an extension. Empty leaves them in place.
	NoExtDir  string
	Collision config.CollisionPolicy
	DryRun    bool
	Logger    *zap.Logger // Nil discards logs.
}

// DefaultOptions returns the documented defaults: extensionless files go to
// "noext" and collisions abort the run.
func DefaultOptions() Options {
	return Options{
		NoExtDir:  config.DefaultNoExtDir,
		Collision: config.CollisionFail,
	}
}

// ReasonNoExtension is the [Skip] reason for extensionless files left in
// place because Options.NoExtDir is empty.
const ReasonNoExtension = "no extension"

// Move is one planned or performed file move.
type Move struct {
	From      string `json:"from" yaml:"from"`
	To        string `json:"to" yaml:"to"`
	Overwrite bool   `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`
}

// Skip is a file left in the source directory.
type Skip struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result reports what a run did (or, in dry-run, would do).
type Result struct {
	Moves   []Move `json:"moves" yaml:"moves"`
	Skipped []Skip `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Organize moves every regular file directly inside src to
// <dst>/<extension>/<name>, creating folders as needed. Subdirectories of
// src are neither entered nor moved. Extensions keep their case.
//
// src must be an existing directory. A collision under the fail policy
// stops the run; moves already made stay in place and are listed in the
// returned Result alongside the error.
func Organize(fs billy.Filesystem, src, dst string, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	var res Result

	if err := fsys.RequireDir(fs, src); err != nil {
		return res, err
	}
	if !opts.DryRun {
		if err := fs.MkdirAll(dst, 0o755); err != nil {
			return res, fsys.Classify(err, "mkdir", dst)
		}
	}

	files, err := fsys.ListFiles(fs, src)
	if err != nil {
		return res, err
	}

	resolver := naming.NewCollisionResolver(fs, opts.Collision, "organize")
	for _, info := range files {
		from := filepath.Join(src, info.Name())

		requested, ok := naming.OrganizeTarget(dst, info.Name(), opts.NoExtDir)
		if !ok {
			log.Debug("no extension, leaving in place", zap.String("path", from))
			res.Skipped = append(res.Skipped, Skip{Path: from, Reason: ReasonNoExtension})
			continue
		}

		to, action, err := resolver.Resolve(from, requested)
		if err != nil {
			return res, err
		}
		if action == naming.ActionSkip {
			log.Warn("target exists, skipping", zap.String("path", from), zap.String("target", to))
			res.Skipped = append(res.Skipped, Skip{Path: from, Reason: "target exists: " + to})
			continue
		}

		mv := Move{From: from, To: to, Overwrite: action == naming.ActionOverwrite}
		if !opts.DryRun {
			if mv.Overwrite {
				if err := fs.Remove(to); err != nil && !os.IsNotExist(err) {
					return res, fsys.Classify(err, "remove", to)
				}
			}
			if err := fsys.Move(fs, from, to); err != nil {
				return res, err
			}
		}
		log.Info("moved", zap.String("from", from), zap.String("to", to), zap.Bool("dry_run", opts.DryRun))
		res.Moves = append(res.Moves, mv)
	}
	return res, nil
}
