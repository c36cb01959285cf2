package backend

import (
	"errors"
	"os"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/internal/errutil"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// AppendHistory adds a record at the end of the history log
func (b *Backend) AppendHistory(rec ginternals.HistoryRecord) (err error) {
	dir := ginternals.LogsPath(b.root)
	if err = b.fs.MkdirAll(dir, 0o755); err != nil {
		return ginternals.NewStorageIOError("create directory", dir, err)
	}

	p := ginternals.HistoryFilePath(b.root)
	f, err := b.fs.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return ginternals.NewStorageIOError("open", p, err)
	}
	defer errutil.Close(f, &err)

	if _, err = f.Write(rec.Bytes()); err != nil {
		return ginternals.NewStorageIOError("append to", p, err)
	}
	return nil
}

// History returns all the records of the history log, oldest first.
// An empty list is returned if nothing has been committed yet
func (b *Backend) History() ([]ginternals.HistoryRecord, error) {
	p := ginternals.HistoryFilePath(b.root)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []ginternals.HistoryRecord{}, nil
		}
		return nil, ginternals.NewStorageIOError("read", p, err)
	}

	records, err := ginternals.ParseHistory(data)
	if err != nil {
		return nil, xerrors.Errorf("could not parse %s: %w", p, err)
	}
	return records, nil
}
