package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/fsys"
)

func write(t *testing.T, fs billy.Filesystem, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644))
}

func exists(t *testing.T, fs billy.Filesystem, path string) bool {
	t.Helper()
	ok, err := fsys.Exists(fs, path)
	require.NoError(t, err)
	return ok
}

func read(t *testing.T, fs billy.Filesystem, path string) string {
	t.Helper()
	b, err := util.ReadFile(fs, path)
	require.NoError(t, err)
	return string(b)
}

func TestOrganize_ByExtension(t *testing.T) {
	fs := fsys.NewMemory()
	write(t, fs, "/src/photo.jpg", "jpeg bytes")
	write(t, fs, "/src/doc.pdf", "pdf bytes")

	res, err := Organize(fs, "/src", "/dst", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Moves, 2)

	assert.Equal(t, "jpeg bytes", read(t, fs, "/dst/jpg/photo.jpg"))
	assert.Equal(t, "pdf bytes", read(t, fs, "/dst/pdf/doc.pdf"))
	assert.False(t, exists(t, fs, "/src/photo.jpg"))
	assert.False(t, exists(t, fs, "/src/doc.pdf"))
}

func TestOrganize_KeepsExtensionCase(t *testing.T) {
	fs := fsys.NewMemory()
	write(t, fs, "/src/A.JPG", "x")
	write(t, fs, "/src/b.jpg", "y")

	_, err := Organize(fs, "/src", "/dst", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, exists(t, fs, "/dst/JPG/A.JPG"))
	assert.True(t, exists(t, fs, "/dst/jpg/b.jpg"))
}

func TestOrganize_TopLevelOnly(t *testing.T) {
	fs := fsys.NewMemory()
	write(t, fs, "/src/a.txt", "a")
	write(t, fs, "/src/nested/b.txt", "b")

	res, err := Organize(fs, "/src", "/dst", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Moves, 1)
	assert.True(t, exists(t, fs, "/src/nested/b.txt"), "subdirectories are not entered")
	assert.False(t, exists(t, fs, "/dst/nested"), "subdirectories are not moved")
}

func TestOrganize_NoExtensionPolicy(t *testing.T) {
	fs := fsys.NewMemory()
	write(t, fs, "/src/Makefile", "all:")
	write(t, fs, "/src/.bashrc", "alias")

	_, err := Organize(fs, "/src", "/dst", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, exists(t, fs, "/dst/noext/Makefile"))
	assert.True(t, exists(t, fs, "/dst/noext/.bashrc"))

	fs = fsys.NewMemory()
	write(t, fs, "/src/Makefile", "all:")
	opts := DefaultOptions()
	opts.NoExtDir = ""
	res, err := Organize(fs, "/src", "/dst", opts)
	require.NoError(t, err)
	assert.True(t, exists(t, fs, "/src/Makefile"))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "no extension", res.Skipped[0].Reason)
}

func TestOrganize_Collisions(t *testing.T) {
	setup := func(t *testing.T) billy.Filesystem {
		fs := fsys.NewMemory()
		write(t, fs, "/src/a.txt", "new")
		write(t, fs, "/dst/txt/a.txt", "old")
		return fs
	}

	t.Run("fail", func(t *testing.T) {
		fs := setup(t)
		_, err := Organize(fs, "/src", "/dst", DefaultOptions())
		assert.True(t, fsys.IsCollision(err))
		assert.Equal(t, "new", read(t, fs, "/src/a.txt"))
		assert.Equal(t, "old", read(t, fs, "/dst/txt/a.txt"))
	})

	t.Run("skip", func(t *testing.T) {
		fs := setup(t)
		opts := DefaultOptions()
		opts.Collision = config.CollisionSkip
		res, err := Organize(fs, "/src", "/dst", opts)
		require.NoError(t, err)
		assert.Len(t, res.Skipped, 1)
		assert.Equal(t, "new", read(t, fs, "/src/a.txt"))
		assert.Equal(t, "old", read(t, fs, "/dst/txt/a.txt"))
	})

	t.Run("overwrite", func(t *testing.T) {
		fs := setup(t)
		opts := DefaultOptions()
		opts.Collision = config.CollisionOverwrite
		res, err := Organize(fs, "/src", "/dst", opts)
		require.NoError(t, err)
		require.Len(t, res.Moves, 1)
		assert.True(t, res.Moves[0].Overwrite)
		assert.Equal(t, "new", read(t, fs, "/dst/txt/a.txt"))
		assert.False(t, exists(t, fs, "/src/a.txt"))
	})

	t.Run("suffix", func(t *testing.T) {
		fs := setup(t)
		opts := DefaultOptions()
		opts.Collision = config.CollisionSuffix
		_, err := Organize(fs, "/src", "/dst", opts)
		require.NoError(t, err)
		assert.Equal(t, "new", read(t, fs, "/dst/txt/a - dup1.txt"))
		assert.Equal(t, "old", read(t, fs, "/dst/txt/a.txt"))
	})
}

func TestOrganize_DryRun(t *testing.T) {
	fs := fsys.NewMemory()
	write(t, fs, "/src/a.txt", "a")

	opts := DefaultOptions()
	opts.DryRun = true
	res, err := Organize(fs, "/src", "/dst", opts)
	require.NoError(t, err)
	require.Len(t, res.Moves, 1)
	assert.Equal(t, Move{From: "/src/a.txt", To: "/dst/txt/a.txt"}, res.Moves[0])
	assert.True(t, exists(t, fs, "/src/a.txt"))
	assert.False(t, exists(t, fs, "/dst"))
}

func TestOrganize_MissingSource(t *testing.T) {
	fs := fsys.NewMemory()
	_, err := Organize(fs, "/nope", "/dst", DefaultOptions())
	assert.True(t, fsys.IsNotFound(err))
	assert.False(t, exists(t, fs, "/dst"), "destination is not created for a failed run")
}

func TestOrganize_LocalDisk(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in")
	dst := filepath.Join(dir, "out", "sorted")
	require.NoError(t, os.Mkdir(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "song.mp3"), []byte("id3"), 0o644))

	_, err := Organize(fsys.NewLocal(), src, dst, DefaultOptions())
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dst, "mp3", "song.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "id3", string(b))
	_, err = os.Stat(filepath.Join(src, "song.mp3"))
	assert.True(t, os.IsNotExist(err))
}
