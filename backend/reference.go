package backend

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Reference returns a stored reference from its name
// ErrRefNotFound is returned if the reference doesn't exists
// This method can be called concurrently
func (b *Backend) Reference(name string) (*ginternals.Reference, error) {
	return ginternals.ResolveReference(name, b.referenceContent)
}

// referenceContent returns the raw content of a reference
func (b *Backend) referenceContent(name string) ([]byte, error) {
	p := ginternals.RefPath(b.root, name)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, xerrors.Errorf(`ref "%s": %w`, name, ginternals.ErrRefNotFound)
		}
		return nil, ginternals.NewStorageIOError("read", p, err)
	}
	return data, nil
}

// WriteReference writes the given reference on disk. If the
// reference already exists it will be overwritten
func (b *Backend) WriteReference(ref *ginternals.Reference) error {
	return b.writeReference(ref)
}

// WriteReferenceSafe writes the given reference on disk.
// ErrRefExists is returned if the reference already exists
func (b *Backend) WriteReferenceSafe(ref *ginternals.Reference) error {
	p := ginternals.RefPath(b.root, ref.Name())
	_, err := b.fs.Stat(p)
	if err == nil {
		return xerrors.Errorf(`ref "%s": %w`, ref.Name(), ginternals.ErrRefExists)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return ginternals.NewStorageIOError("stat", p, err)
	}
	return b.writeReference(ref)
}

// writeReference writes the given reference on disk. If the
// reference already exists it will be overwritten
func (b *Backend) writeReference(ref *ginternals.Reference) error {
	// HEAD can only be attached to a branch, and only a branch can
	// target a commit
	if !ginternals.IsRefNameValid(ref.Name()) || (ref.IsHead() && !ginternals.IsRefNameValid(ref.Branch())) {
		return xerrors.Errorf(`ref "%s": %w`, ref.Name(), ginternals.ErrRefNameInvalid)
	}

	refPath := ginternals.RefPath(b.root, ref.Name())
	// branch names can contain "/"
	dir := filepath.Dir(refPath)
	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		return ginternals.NewStorageIOError("create directory", dir, err)
	}
	return b.writeFileAtomic(refPath, ref.Bytes(), 0o644)
}

// Head returns the digest of the commit HEAD points to.
// NullOid is returned if the current branch has no commits yet
func (b *Backend) Head() (ginternals.Oid, error) {
	ref, err := b.Reference(ginternals.Head)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not resolve HEAD: %w", err)
	}
	return ref.Target(), nil
}

// UpdateHead makes the branch HEAD points to target the given commit.
// HEAD itself is left untouched
func (b *Backend) UpdateHead(oid ginternals.Oid) error {
	ref, err := b.Reference(ginternals.Head)
	if err != nil {
		return xerrors.Errorf("could not resolve HEAD: %w", err)
	}
	if err = b.WriteReference(ginternals.NewBranchReference(ref.Branch(), oid)); err != nil {
		return xerrors.Errorf("could not update %s: %w", ref.Branch(), err)
	}
	return nil
}
