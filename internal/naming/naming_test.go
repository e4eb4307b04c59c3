package naming

import (
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/fsys"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantExt bool
	}{
		{"photo.jpg", "jpg", true},
		{"PHOTO.JPG", "JPG", true},
		{"archive.tar.gz", "gz", true},
		{"README", "", false},
		{".bashrc", "", false},
		{"..hidden", "", false},
		{".config.yaml", "yaml", true},
		{"trailing.", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extension(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantExt, ok)
		})
	}
}

func TestHasSuffixFold(t *testing.T) {
	assert.True(t, HasSuffixFold("Report.PDF", ".pdf"))
	assert.True(t, HasSuffixFold("notes.txt", "txt"))
	assert.False(t, HasSuffixFold("notes.txt", ".pdf"))
	assert.False(t, HasSuffixFold("a", ".txt"))
}

func TestOrganizeTarget(t *testing.T) {
	got, ok := OrganizeTarget("/dst", "photo.jpg", "noext")
	assert.True(t, ok)
	assert.Equal(t, "/dst/jpg/photo.jpg", got)

	got, ok = OrganizeTarget("/dst", "Makefile", "noext")
	assert.True(t, ok)
	assert.Equal(t, "/dst/noext/Makefile", got)

	_, ok = OrganizeTarget("/dst", "Makefile", "")
	assert.False(t, ok)
}

func TestValidBaseName(t *testing.T) {
	assert.True(t, ValidBaseName("001"))
	assert.False(t, ValidBaseName(""))
	assert.False(t, ValidBaseName(".."))
	assert.False(t, ValidBaseName("a/b"))
}

func TestCollisionResolver_FreeTarget(t *testing.T) {
	fs := fsys.NewMemory()
	cr := NewCollisionResolver(fs, config.CollisionFail, "organize")

	got, action, err := cr.Resolve("/src/a.txt", "/dst/txt/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "/dst/txt/a.txt", got)
	assert.Equal(t, ActionMove, action)

	// Same source asking again keeps its claim.
	got, _, err = cr.Resolve("/src/a.txt", "/dst/txt/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "/dst/txt/a.txt", got)
}

func TestCollisionResolver_Policies(t *testing.T) {
	tests := []struct {
		policy     config.CollisionPolicy
		wantPath   string
		wantAction Action
		wantErr    bool
	}{
		{config.CollisionFail, "", ActionSkip, true},
		{config.CollisionSkip, "/dst/txt/a.txt", ActionSkip, false},
		{config.CollisionOverwrite, "/dst/txt/a.txt", ActionOverwrite, false},
		{config.CollisionSuffix, "/dst/txt/a - dup1.txt", ActionMove, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			fs := fsys.NewMemory()
			require.NoError(t, util.WriteFile(fs, "/dst/txt/a.txt", []byte("old"), 0o644))
			cr := NewCollisionResolver(fs, tt.policy, "organize")

			got, action, err := cr.Resolve("/src/a.txt", "/dst/txt/a.txt")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, fsys.IsCollision(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, got)
			assert.Equal(t, tt.wantAction, action)
		})
	}
}

func TestCollisionResolver_InRunClaims(t *testing.T) {
	fs := fsys.NewMemory()
	cr := NewCollisionResolver(fs, config.CollisionSuffix, "rename")

	first, _, err := cr.Resolve("/d/a_1.txt", "/d/1")
	require.NoError(t, err)
	second, _, err := cr.Resolve("/d/b_1.txt", "/d/1")
	require.NoError(t, err)
	third, _, err := cr.Resolve("/d/c_1.txt", "/d/1")
	require.NoError(t, err)

	assert.Equal(t, "/d/1", first)
	assert.Equal(t, "/d/1 - dup1", second)
	assert.Equal(t, "/d/1 - dup2", third)
}

func TestCollisionResolver_Reserve(t *testing.T) {
	fs := fsys.NewMemory()
	cr := NewCollisionResolver(fs, config.CollisionFail, "rename")
	cr.Reserve("/d/001")

	_, _, err := cr.Resolve("/d/report_001.txt", "/d/001")
	assert.True(t, fsys.IsCollision(err), "reserved names collide even when absent on disk")
}

func TestCollisionResolver_OverwriteDirectory(t *testing.T) {
	fs := fsys.NewMemory()
	require.NoError(t, fs.MkdirAll("/d/001", 0o755))
	cr := NewCollisionResolver(fs, config.CollisionOverwrite, "rename")

	_, _, err := cr.Resolve("/d/report_001.txt", "/d/001")
	assert.True(t, fsys.IsCollision(err))
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "move", ActionMove.String())
	assert.Equal(t, "skip", ActionSkip.String())
	assert.Equal(t, "overwrite", ActionOverwrite.String())
}
