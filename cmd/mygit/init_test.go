package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nj301365/version-control-system-mygit/internal/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Parallel()

	t.Run("should create a repository", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		out, _, err := runCmd(t, dir, "init")
		require.NoError(t, err)
		assert.Contains(t, out, filepath.Join(dir, ".mygit"))

		info, err := os.Stat(filepath.Join(dir, ".mygit", "HEAD"))
		require.NoError(t, err)
		assert.False(t, info.IsDir())
	})

	t.Run("should fail if the repository exists", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := newTestRepo(t)
		t.Cleanup(cleanup)

		_, _, err := runCmd(t, dir, "init")
		require.Error(t, err)
	})

	t.Run("should not accept arguments", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		_, _, err := runCmd(t, dir, "init", "nope")
		require.Error(t, err)
	})
}
