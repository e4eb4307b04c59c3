// Package fsys is the filesystem layer shared by every operation. All access
// goes through a billy.Filesystem so operations run unchanged against the
// real disk (osfs) and in-memory trees (memfs) in tests.
package fsys

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/jmgilman/go/errors"
)

// NewLocal returns the host filesystem rooted at "/". Callers pass absolute
// paths; relative paths would resolve against "/".
func NewLocal() billy.Filesystem {
	return osfs.New("/")
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() billy.Filesystem {
	return memfs.New()
}

// Exists reports whether the named file or directory exists.
func Exists(fs billy.Filesystem, path string) (bool, error) {
	_, err := fs.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, Classify(err, "stat", path)
}

// RequireDir returns a NotFound error if path does not exist and an
// InvalidInput error if it is not a directory.
func RequireDir(fs billy.Filesystem, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return Classify(err, "stat", path)
	}
	if !info.IsDir() {
		return errors.WithContext(
			errors.Newf(CodeInvalidInput, "%s is not a directory", path),
			"path", path,
		)
	}
	return nil
}

// ListFiles returns the regular files directly inside dir, sorted by name.
// Directories, symlinks and special files are left out.
func ListFiles(fs billy.Filesystem, dir string) ([]os.FileInfo, error) {
	infos, err := fs.ReadDir(dir)
	if err != nil {
		return nil, Classify(err, "list", dir)
	}
	files := infos[:0]
	for _, info := range infos {
		if info.Mode().IsRegular() {
			files = append(files, info)
		}
	}
	return files, nil
}

// Warning records an entry that could not be examined during a walk.
type Warning struct {
	Path string `json:"path" yaml:"path"`
	Err  string `json:"error" yaml:"error"`
}

// VisitFunc is called for each regular file found by [Walk].
type VisitFunc func(path string, info os.FileInfo) error

// WarnFunc receives failures on entries below the walk root. The walk
// continues after it returns.
type WarnFunc func(path string, err error)

// Walk visits every regular file under root in lexical order. A failure on
// root itself aborts the walk; failures below it are passed to warn and the
// affected entry (or directory) is skipped. A root that is a symlink to a
// directory is followed; symlinks below root are not. Visited paths are
// joined onto root as given.
func Walk(fs billy.Filesystem, root string, visit VisitFunc, warn WarnFunc) error {
	fn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return Classify(err, "walk", path)
			}
			if warn != nil {
				warn(path, Classify(err, "walk", path))
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		return visit(path, info)
	}

	linked, err := symlinkedDir(fs, root)
	if err != nil {
		return err
	}
	if !linked {
		return util.Walk(fs, root, fn)
	}

	// util.Walk stops at a symlinked root, so descend one level here.
	entries, err := fs.ReadDir(root)
	if err != nil {
		return Classify(err, "walk", root)
	}
	for _, e := range entries {
		if err := util.Walk(fs, filepath.Join(root, e.Name()), fn); err != nil {
			return err
		}
	}
	return nil
}

// symlinkedDir reports whether root is a symlink resolving to a directory.
func symlinkedDir(fs billy.Filesystem, root string) (bool, error) {
	info, err := fs.Lstat(root)
	if err != nil {
		return false, Classify(err, "walk", root)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false, nil
	}
	target, err := fs.Stat(root)
	if err != nil {
		return false, Classify(err, "walk", root)
	}
	return target.IsDir(), nil
}

// Move renames from to to, creating the parent of to if needed. When the
// rename crosses devices the file is copied and the source removed.
func Move(fs billy.Filesystem, from, to string) error {
	if err := fs.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return Classify(err, "mkdir", filepath.Dir(to))
	}
	err := fs.Rename(from, to)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, syscall.EXDEV) {
		return Classify(err, "move", from)
	}
	if err := copyFile(fs, from, to); err != nil {
		return err
	}
	if err := fs.Remove(from); err != nil {
		return Classify(err, "remove", from)
	}
	return nil
}

func copyFile(fs billy.Filesystem, from, to string) error {
	info, err := fs.Stat(from)
	if err != nil {
		return Classify(err, "stat", from)
	}
	src, err := fs.Open(from)
	if err != nil {
		return Classify(err, "open", from)
	}
	defer func() { _ = src.Close() }()

	dst, err := fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return Classify(err, "create", to)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = fs.Remove(to)
		return Classify(err, "copy", from)
	}
	if err := dst.Close(); err != nil {
		return Classify(err, "close", to)
	}
	return nil
}
