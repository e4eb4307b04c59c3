package dupes

import (
	"context"
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

func tree(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := fsys.NewMemory()
	require.NoError(t, fs.MkdirAll("/root", 0o755))
	for p, content := range files {
		require.NoError(t, util.WriteFile(fs, p, []byte(content), 0o644))
	}
	return fs
}

func TestFind_RoundTrip(t *testing.T) {
	fs := tree(t, map[string]string{
		"/root/a.txt": "hello",
		"/root/b.txt": "hello",
		"/root/c.txt": "world",
	})

	res, err := Find(context.Background(), fs, "/root", Options{})
	require.NoError(t, err)

	require.Len(t, res.Groups, 1)
	require.Len(t, res.Ordered, 1)
	g := res.Ordered[0]
	assert.Equal(t, []string{"/root/a.txt", "/root/b.txt"}, g.Paths)
	assert.Equal(t, g.Paths, res.Groups[g.Digest])
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", g.Digest)
	for _, paths := range res.Groups {
		assert.NotContains(t, paths, "/root/c.txt")
	}
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, int64(5), res.WastedBytes())
}

func TestFind_NestedAndFirstOccurrenceKept(t *testing.T) {
	fs := tree(t, map[string]string{
		"/root/x/deep/1.bin": "same",
		"/root/y/2.bin":      "same",
		"/root/3.bin":        "same",
		"/root/x/other.bin":  "diff",
	})

	res, err := Find(context.Background(), fs, "/root", Options{})
	require.NoError(t, err)
	require.Len(t, res.Ordered, 1)
	assert.Equal(t, []string{"/root/3.bin", "/root/x/deep/1.bin", "/root/y/2.bin"}, res.Ordered[0].Paths)
	assert.Equal(t, int64(8), res.Ordered[0].Wasted())
}

func TestFind_MultipleGroupsOrdered(t *testing.T) {
	fs := tree(t, map[string]string{
		"/root/a1": "aaa",
		"/root/b1": "bbbb",
		"/root/a2": "aaa",
		"/root/b2": "bbbb",
		"/root/c1": "ccc", // same size as "aaa", different content
	})

	res, err := Find(context.Background(), fs, "/root", Options{})
	require.NoError(t, err)
	require.Len(t, res.Ordered, 2)
	assert.Equal(t, []string{"/root/a1", "/root/a2"}, res.Ordered[0].Paths)
	assert.Equal(t, []string{"/root/b1", "/root/b2"}, res.Ordered[1].Paths)
	assert.Equal(t, 5, res.Hashed, "every file shares a size with another")
}

func TestFind_UniqueSizesAreNotHashed(t *testing.T) {
	fs := tree(t, map[string]string{
		"/root/a": "1",
		"/root/b": "22",
		"/root/c": "333",
	})

	res, err := Find(context.Background(), fs, "/root", Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Groups)
	assert.NotNil(t, res.Ordered)
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, 0, res.Hashed)
}

func TestFind_EmptyFilesGroup(t *testing.T) {
	fs := tree(t, map[string]string{
		"/root/empty1": "",
		"/root/empty2": "",
	})

	res, err := Find(context.Background(), fs, "/root", Options{})
	require.NoError(t, err)
	require.Len(t, res.Ordered, 1)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", res.Ordered[0].Digest)
	assert.Equal(t, int64(0), res.WastedBytes())
}

func TestFind_WorkerCountDoesNotChangeResult(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 40; i++ {
		files[filepath.Join("/root", string(rune('a'+i%26)), string(rune('a'+i/26))+".dat")] = string(rune('A' + i%5))
	}
	fs := tree(t, files)

	serial, err := Find(context.Background(), fs, "/root", Options{Workers: 1})
	require.NoError(t, err)
	parallel, err := Find(context.Background(), fs, "/root", Options{Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, serial.Ordered, parallel.Ordered)
	assert.Len(t, serial.Ordered, 5)
}

func TestFind_AlgorithmChoice(t *testing.T) {
	fs := tree(t, map[string]string{"/root/a": "hello", "/root/b": "hello"})

	res, err := Find(context.Background(), fs, "/root", Options{Algorithm: config.AlgorithmMD5})
	require.NoError(t, err)
	require.Len(t, res.Ordered, 1)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", res.Ordered[0].Digest)
}

func TestFind_MissingRoot(t *testing.T) {
	_, err := Find(context.Background(), fsys.NewMemory(), "/nope", Options{})
	assert.True(t, fsys.IsNotFound(err))
}

func TestFind_Cancelled(t *testing.T) {
	fs := tree(t, map[string]string{"/root/a": "x", "/root/b": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Find(ctx, fs, "/root", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFind_UnreadableFileIsWarning(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "locked"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("same"), 0o644))
	}
	require.NoError(t, os.Chmod(filepath.Join(dir, "locked"), 0o000))

	res, err := Find(context.Background(), fsys.NewLocal(), dir, Options{})
	require.NoError(t, err)
	require.Len(t, res.Ordered, 1)
	assert.Equal(t, []string{filepath.Join(dir, "a"), filepath.Join(dir, "b")}, res.Ordered[0].Paths)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, filepath.Join(dir, "locked"), res.Warnings[0].Path)
	assert.Equal(t, 2, res.Hashed)
}

func TestFind_SymlinkedRootIsFollowed(t *testing.T) {
	dir := t.TempDir()
	realDir := filepath.Join(dir, "realDir")
	require.NoError(t, os.MkdirAll(filepath.Join(realDir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(realDir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(realDir, "sub", "b.txt"), []byte("hello"), 0o644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(realDir, link))

	res, err := Find(context.Background(), fsys.NewLocal(), link, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scanned)
	require.Len(t, res.Ordered, 1)
	assert.Equal(t, []string{filepath.Join(link, "a.txt"), filepath.Join(link, "sub", "b.txt")}, res.Ordered[0].Paths)
}
