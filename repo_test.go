package mygit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nj301365/version-control-system-mygit/env"
	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/internal/gitpath"
	"github.com/nj301365/version-control-system-mygit/internal/testhelper"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRoot is the path of the working tree used by the tests
var testRoot = filepath.Join(string(filepath.Separator), "work")

// testTime is the time used to date the commits created by the tests
var testTime = time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)

// newTestRepo creates a new repository at testRoot on fs
func newTestRepo(t *testing.T, fs afero.Fs) *Repository {
	t.Helper()

	r, err := InitRepositoryWithOptions(testRoot, Options{
		FS:  fs,
		Now: func() time.Time { return testTime },
	})
	require.NoError(t, err, "failed creating a repo")
	t.Cleanup(func() {
		require.NoError(t, r.Close(), "failed closing repo")
	})
	return r
}

// writeFile writes a file in the working tree, creating the parent
// directories if needed
func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()

	p := filepath.Join(testRoot, filepath.FromSlash(name))
	require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, afero.WriteFile(fs, p, []byte(content), 0o644))
}

// readFile returns the content of a file of the working tree
func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, filepath.Join(testRoot, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func TestInitRepository(t *testing.T) {
	t.Parallel()

	t.Run("should create a repo on disk", func(t *testing.T) {
		t.Parallel()

		d, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		r, err := InitRepository(d)
		require.NoError(t, err, "failed creating a repo")
		t.Cleanup(func() {
			require.NoError(t, r.Close())
		})

		assert.Equal(t, d, r.Path())
		assert.Equal(t, filepath.Join(d, gitpath.DotGitPath), r.DotGitPath())

		head, err := r.Head()
		require.NoError(t, err)
		assert.True(t, head.IsZero())

		r2, err := OpenRepository(d)
		require.NoError(t, err, "failed opening the repo")
		require.NoError(t, r2.Close())
	})

	t.Run("should fail if the repo already exists", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		newTestRepo(t, fs)

		_, err := InitRepositoryWithOptions(testRoot, Options{FS: fs})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRepositoryExists)
	})

	t.Run("MYGIT_DIR should move the .mygit directory", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		r, err := InitRepositoryWithOptions(testRoot, Options{
			FS:  fs,
			Env: env.NewFromKVList([]string{"MYGIT_DIR=meta"}),
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, r.Close())
		})

		assert.Equal(t, filepath.Join(testRoot, "meta"), r.DotGitPath())
		exists, err := afero.DirExists(fs, filepath.Join(testRoot, "meta", gitpath.ObjectsPath))
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestOpenRepository(t *testing.T) {
	t.Parallel()

	t.Run("should fail if there's no repo", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll(testRoot, 0o755))

		_, err := OpenRepositoryWithOptions(testRoot, Options{FS: fs})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRepositoryNotExist)
	})

	t.Run("should fail on unsupported versions", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		r := newTestRepo(t, fs)
		cfg := "[core]\nrepositoryformatversion = 1\n"
		require.NoError(t, afero.WriteFile(fs, ginternals.ConfigFilePath(r.DotGitPath()), []byte(cfg), 0o644))

		_, err := OpenRepositoryWithOptions(testRoot, Options{FS: fs})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRepositoryUnsupportedVersion)
	})

	t.Run("two handles should see the same data", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		r := newTestRepo(t, fs)
		writeFile(t, fs, "a.txt", "hello\n")

		oid, err := r.HashObject("a.txt", true)
		require.NoError(t, err)

		r2, err := OpenRepositoryWithOptions(testRoot, Options{FS: fs})
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, r2.Close())
		})

		data, err := r2.CatFile(oid, CatFileContent)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(data))
	})
}
