package backend

import (
	"testing"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	t.Run("default config", func(t *testing.T) {
		t.Parallel()

		b := newTestBackend(t, afero.NewMemMapFs())

		cfg, err := b.Config()
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.FormatVersion)
		assert.True(t, cfg.FileMode)
		assert.Equal(t, DefaultUserName, cfg.UserName)
		assert.Equal(t, DefaultUserEmail, cfg.UserEmail)
		assert.Empty(t, cfg.Preserve)
	})

	t.Run("user values should be used", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		b := newTestBackend(t, fs)

		data := "[core]\nrepositoryformatversion = 0\n\n" +
			"[user]\nname = Ada Lovelace\nemail = ada@example.com\n\n" +
			"[checkout]\npreserve = tool, notes.txt,\n"
		require.NoError(t, afero.WriteFile(fs, ginternals.ConfigFilePath(b.Path()), []byte(data), 0o644))

		cfg, err := b.Config()
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", cfg.UserName)
		assert.Equal(t, "ada@example.com", cfg.UserEmail)
		assert.Equal(t, []string{"tool", "notes.txt"}, cfg.Preserve)
	})

	t.Run("missing file should return the defaults", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		b := newTestBackend(t, fs)
		require.NoError(t, fs.Remove(ginternals.ConfigFilePath(b.Path())))

		cfg, err := b.Config()
		require.NoError(t, err)
		assert.Equal(t, DefaultUserName, cfg.UserName)
	})
}
