// Package dupes finds files with identical content under a directory tree.
//
// Files are grouped by size first; only sizes shared by two or more files
// are hashed. Hashing runs on a bounded pool of goroutines, and results are
// merged in traversal order so the output does not depend on scheduling.
package dupes

import (
	"context"
	"os"
	"runtime"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/fsys"
	"github.com/backmassage/fltools/internal/hasher"
)

// Options configures a duplicate search.
type Options struct {
	Algorithm config.Algorithm // Empty selects SHA-256.
	BlockSize int              // Non-positive selects the hasher default.
	Workers   int              // Non-positive selects runtime.NumCPU().
	Logger    *zap.Logger      // Nil discards logs.
}

// Group is a set of two or more files sharing a digest.
type Group struct {
	Digest string   `json:"digest" yaml:"digest"`
	Size   int64    `json:"size" yaml:"size"`
	Paths  []string `json:"paths" yaml:"paths"`
}

// Wasted returns the bytes that would be freed by keeping one copy.
func (g Group) Wasted() int64 {
	return g.Size * int64(len(g.Paths)-1)
}

// Result is the outcome of [Find].
type Result struct {
	// Groups maps digest to paths, in traversal order, for digests shared
	// by at least two files.
	Groups map[string][]string `json:"-" yaml:"-"`
	// Ordered holds the same groups ordered by the traversal position of
	// each group's first path.
	Ordered  []Group        `json:"groups" yaml:"groups"`
	Warnings []fsys.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Scanned  int            `json:"scanned" yaml:"scanned"`
	Hashed   int            `json:"hashed" yaml:"hashed"`
}

// WastedBytes sums [Group.Wasted] over all groups.
func (r Result) WastedBytes() int64 {
	var total int64
	for _, g := range r.Ordered {
		total += g.Wasted()
	}
	return total
}

type entry struct {
	path string
	size int64
}

// Find walks root recursively, hashes candidate files and reports digests
// shared by two or more files. A file that cannot be hashed is recorded in
// Result.Warnings and left out; a failure to read root aborts.
func Find(ctx context.Context, fs billy.Filesystem, root string, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	res := Result{Groups: map[string][]string{}, Ordered: []Group{}}

	if err := fsys.RequireDir(fs, root); err != nil {
		return res, err
	}

	var entries []entry
	err := fsys.Walk(fs, root, func(path string, info os.FileInfo) error {
		entries = append(entries, entry{path: path, size: info.Size()})
		return ctx.Err()
	}, func(path string, err error) {
		log.Warn("cannot read entry", zap.String("path", path), zap.Error(err))
		res.Warnings = append(res.Warnings, fsys.Warning{Path: path, Err: err.Error()})
	})
	if err != nil {
		return res, err
	}
	res.Scanned = len(entries)

	candidates := sizeCandidates(entries)
	log.Debug("size pre-grouping done",
		zap.Int("scanned", len(entries)), zap.Int("candidates", len(candidates)))

	digests := make([]string, len(candidates))
	failures := make([]error, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, e := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			digests[i], failures[i] = hasher.HashFile(fs, e.path, opts.BlockSize, opts.Algorithm)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	// Merge in traversal order. Every path is recorded from the first
	// sighting of its digest on.
	order := []string{}
	sizes := map[string]int64{}
	for i, e := range candidates {
		if failures[i] != nil {
			log.Warn("cannot hash file", zap.String("path", e.path), zap.Error(failures[i]))
			res.Warnings = append(res.Warnings, fsys.Warning{Path: e.path, Err: failures[i].Error()})
			continue
		}
		res.Hashed++
		d := digests[i]
		if _, seen := res.Groups[d]; !seen {
			order = append(order, d)
			sizes[d] = e.size
		}
		res.Groups[d] = append(res.Groups[d], e.path)
	}

	for _, d := range order {
		paths := res.Groups[d]
		if len(paths) < 2 {
			delete(res.Groups, d)
			continue
		}
		res.Ordered = append(res.Ordered, Group{Digest: d, Size: sizes[d], Paths: paths})
	}
	return res, nil
}

// sizeCandidates keeps, in traversal order, the entries whose size is
// shared with at least one other entry.
func sizeCandidates(entries []entry) []entry {
	counts := make(map[int64]int, len(entries))
	for _, e := range entries {
		counts[e.size]++
	}
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		if counts[e.size] > 1 {
			out = append(out, e)
		}
	}
	return out
}
