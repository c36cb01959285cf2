package backend

import (
	"testing"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/index"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	t.Run("missing file should return an empty index", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		b := newTestBackend(t, fs)
		require.NoError(t, fs.Remove(ginternals.IndexFilePath(b.Path())))

		idx, err := b.Index()
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("written index should be read back", func(t *testing.T) {
		t.Parallel()

		b := newTestBackend(t, afero.NewMemMapFs())

		oid, err := ginternals.NewOidFromStr("ce013625030ba8dba906f756967f9e9ca394464a")
		require.NoError(t, err)

		idx := index.New()
		require.NoError(t, idx.Add(index.Entry{Path: "docs/my notes.txt", ID: oid, Mode: object.ModeFile}))
		require.NoError(t, idx.Add(index.Entry{Path: "run.sh", ID: oid, Mode: object.ModeExecutable}))
		require.NoError(t, b.WriteIndex(idx))

		got, err := b.Index()
		require.NoError(t, err)
		assert.Equal(t, idx.Entries(), got.Entries())
	})

	t.Run("corrupt index should fail", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		b := newTestBackend(t, fs)
		require.NoError(t, afero.WriteFile(fs, ginternals.IndexFilePath(b.Path()), []byte("garbage\n"), 0o644))

		_, err := b.Index()
		require.Error(t, err)
		assert.ErrorIs(t, err, index.ErrIndexInvalid)
	})
}
