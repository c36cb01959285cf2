package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashObject(t *testing.T) {
	t.Parallel()

	t.Run("should not write without -w", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := newTestRepo(t)
		t.Cleanup(cleanup)
		writeTestFile(t, filepath.Join(dir, "file.txt"), "hello world")

		out, _, err := runCmd(t, dir, "hash-object", "file.txt")
		require.NoError(t, err)
		assert.Equal(t, "95d09f2b10159347eece71399a7e2e907ea3df4f\n", out)

		_, err = os.Stat(filepath.Join(dir, ".mygit", "objects", "95", "d09f2b10159347eece71399a7e2e907ea3df4f"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("should write with -w", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := newTestRepo(t)
		t.Cleanup(cleanup)
		writeTestFile(t, filepath.Join(dir, "file.txt"), "hello world")

		out, _, err := runCmd(t, dir, "hash-object", "-w", "file.txt")
		require.NoError(t, err)
		assert.Equal(t, "95d09f2b10159347eece71399a7e2e907ea3df4f\n", out)

		_, err = os.Stat(filepath.Join(dir, ".mygit", "objects", "95", "d09f2b10159347eece71399a7e2e907ea3df4f"))
		require.NoError(t, err)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := newTestRepo(t)
		t.Cleanup(cleanup)

		_, _, err := runCmd(t, dir, "hash-object", "nope.txt")
		require.Error(t, err)
	})

	t.Run("should fail on a directory", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := newTestRepo(t)
		t.Cleanup(cleanup)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

		_, _, err := runCmd(t, dir, "hash-object", "sub")
		require.Error(t, err)
	})
}
