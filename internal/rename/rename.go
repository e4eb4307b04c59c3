// Package rename renames the files at the top level of a directory using a
// regular expression: the first capture group becomes the new name.
package rename

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/go-git/go-billy/v5"
	"github.com/jmgilman/go/errors"
	"go.uber.org/zap"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/fsys"
	"github.com/backmassage/fltools/internal/naming"
)

// Options configures a rename run.
type Options struct {
	Collision config.CollisionPolicy // Empty selects fail.
	DryRun    bool
	Logger    *zap.Logger // Nil discards logs.
}

// Change is one planned or performed rename, by base name.
type Change struct {
	From      string `json:"from" yaml:"from"`
	To        string `json:"to" yaml:"to"`
	Overwrite bool   `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`
}

// Skip is a matching file that was left alone.
type Skip struct {
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result reports what a run did (or, in dry-run, would do).
type Result struct {
	Renamed []Change `json:"renamed" yaml:"renamed"`
	Skipped []Skip   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Compile compiles pattern anchored at the start of the name. The pattern
// must have at least one capture group.
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, errors.WithContext(
			errors.Wrapf(err, fsys.CodeInvalidPattern, "invalid pattern %q", pattern),
			"pattern", pattern,
		)
	}
	if re.NumSubexp() < 1 {
		return nil, errors.WithContext(
			errors.Newf(fsys.CodeInvalidPattern, "pattern %q has no capture group", pattern),
			"pattern", pattern,
		)
	}
	return re, nil
}

// Rename matches every regular file directly inside dir against pattern
// (anchored at the start of the name) and renames matches to capture
// group 1, in place. Files that do not match are untouched.
//
// Targets are checked against the directory listing taken before any
// rename, so a file never takes over the name of another file renamed
// earlier in the same run. Under the fail policy the first collision stops
// the run; renames already done stay done.
func Rename(fs billy.Filesystem, dir, pattern string, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	policy := opts.Collision
	if policy == "" {
		policy = config.CollisionFail
	}
	var res Result

	re, err := Compile(pattern)
	if err != nil {
		return res, err
	}
	if err := fsys.RequireDir(fs, dir); err != nil {
		return res, err
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return res, fsys.Classify(err, "list", dir)
	}

	resolver := naming.NewCollisionResolver(fs, policy, "rename")
	for _, e := range entries {
		resolver.Reserve(filepath.Join(dir, e.Name()))
	}

	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		name := e.Name()
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}

		newName := m[1]
		if !naming.ValidBaseName(newName) {
			log.Warn("capture group is not a usable file name", zap.String("name", name), zap.String("group", newName))
			res.Skipped = append(res.Skipped, Skip{Name: name, Reason: "invalid new name " + strconv.Quote(newName)})
			continue
		}
		if newName == name {
			continue
		}

		from := filepath.Join(dir, name)
		to, action, err := resolver.Resolve(from, filepath.Join(dir, newName))
		if err != nil {
			return res, err
		}
		if action == naming.ActionSkip {
			log.Warn("target exists, skipping", zap.String("name", name), zap.String("target", newName))
			res.Skipped = append(res.Skipped, Skip{Name: name, Reason: "target exists: " + newName})
			continue
		}

		r := Change{From: name, To: filepath.Base(to), Overwrite: action == naming.ActionOverwrite}
		if !opts.DryRun {
			if r.Overwrite {
				if err := fs.Remove(to); err != nil && !os.IsNotExist(err) {
					return res, fsys.Classify(err, "remove", to)
				}
			}
			if err := fs.Rename(from, to); err != nil {
				return res, fsys.Classify(err, "rename", from)
			}
		}
		log.Info("Renamed: "+r.From+" to "+r.To, zap.Bool("dry_run", opts.DryRun))
		res.Renamed = append(res.Renamed, r)
	}
	return res, nil
}
