package backend

import (
	"errors"
	"os"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/index"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Index loads the staging index.
// An empty index is returned if the file doesn't exist
func (b *Backend) Index() (*index.Index, error) {
	p := ginternals.IndexFilePath(b.root)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return index.New(), nil
		}
		return nil, ginternals.NewStorageIOError("read", p, err)
	}

	idx, err := index.NewFromBytes(data)
	if err != nil {
		return nil, xerrors.Errorf("could not parse %s: %w", p, err)
	}
	return idx, nil
}

// WriteIndex persists the staging index, replacing the previous one
func (b *Backend) WriteIndex(idx *index.Index) error {
	return b.writeFileAtomic(ginternals.IndexFilePath(b.root), idx.Bytes(), 0o644)
}
