package backend

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Object returns the object that has given oid.
// ErrObjectNotFound is returned if the object is not in the store
// and ErrCorruptObject if the stored bytes cannot be decoded.
// This method can be called concurrently
func (b *Backend) Object(oid ginternals.Oid) (*object.Object, error) {
	key := oid.Bytes()
	b.objectMu.RLock(key)
	defer b.objectMu.RUnlock(key)

	return b.objectUnsafe(oid)
}

func (b *Backend) objectUnsafe(oid ginternals.Oid) (*object.Object, error) {
	if o, found := b.cache.Get(oid); found {
		return o, nil
	}

	sha := oid.String()
	p := ginternals.LooseObjectPath(b.root, sha)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, xerrors.Errorf("object %s: %w", sha, ginternals.ErrObjectNotFound)
		}
		return nil, ginternals.NewStorageIOError("read", p, err)
	}

	o, err := object.NewFromCompressed(data)
	if err != nil {
		return nil, xerrors.Errorf("object %s: %w", sha, err)
	}
	// The content of the file has been changed since it was written
	if o.ID() != oid {
		return nil, xerrors.Errorf("object %s hashes to %s: %w", sha, o.ID().String(), ginternals.ErrCorruptObject)
	}

	b.cache.Add(o)
	return o, nil
}

// HasObject returns whether an object exists in the odb.
// The object is not decoded.
// This method can be called concurrently
func (b *Backend) HasObject(oid ginternals.Oid) (bool, error) {
	key := oid.Bytes()
	b.objectMu.RLock(key)
	defer b.objectMu.RUnlock(key)

	return b.hasObjectUnsafe(oid)
}

func (b *Backend) hasObjectUnsafe(oid ginternals.Oid) (bool, error) {
	if _, found := b.cache.Get(oid); found {
		return true, nil
	}

	p := ginternals.LooseObjectPath(b.root, oid.String())
	_, err := b.fs.Stat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, ginternals.NewStorageIOError("stat", p, err)
}

// WriteObject adds an object to the odb and returns its digest.
// Writing an object that already exists is a no-op.
// The data are first written to a temporary file which is then
// renamed, so a failure never leaves a partial object behind.
// This method can be called concurrently
func (b *Backend) WriteObject(o *object.Object) (ginternals.Oid, error) {
	data, err := o.Compress()
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not compress object: %w", err)
	}

	oid := o.ID()
	b.objectMu.Lock(oid.Bytes())
	defer b.objectMu.Unlock(oid.Bytes())

	// Make sure the object doesn't already exist
	found, err := b.hasObjectUnsafe(oid)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not check if object %s already exists: %w", oid.String(), err)
	}
	if found {
		return oid, nil
	}

	// Persist the data on disk
	sha := oid.String()
	p := ginternals.LooseObjectPath(b.root, sha)

	// We need to make sure the dest dir exists
	dest := filepath.Dir(p)
	if err = b.fs.MkdirAll(dest, 0o755); err != nil {
		return ginternals.NullOid, ginternals.NewStorageIOError("create directory", dest, err)
	}

	// We use 444 because objects are read-only
	if err = b.writeFileAtomic(p, data, 0o444); err != nil {
		return ginternals.NullOid, err
	}

	b.cache.Add(o)
	return oid, nil
}

// writeFileAtomic writes data to a temporary file located next to
// p, and then renames it to p
func (b *Backend) writeFileAtomic(p string, data []byte, perm os.FileMode) (err error) {
	f, err := afero.TempFile(b.fs, filepath.Dir(p), ".tmp-"+filepath.Base(p)+"-")
	if err != nil {
		return ginternals.NewStorageIOError("create temporary file for", p, err)
	}
	tmpPath := f.Name()
	defer func() {
		if err != nil {
			b.fs.Remove(tmpPath) //nolint:errcheck // we're already returning an error
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close() //nolint:errcheck // it failed anyway
		return ginternals.NewStorageIOError("write", tmpPath, err)
	}
	if err = f.Close(); err != nil {
		return ginternals.NewStorageIOError("close", tmpPath, err)
	}
	if err = b.fs.Chmod(tmpPath, perm); err != nil {
		return ginternals.NewStorageIOError("chmod", tmpPath, err)
	}
	if err = b.fs.Rename(tmpPath, p); err != nil {
		return ginternals.NewStorageIOError("rename", tmpPath, err)
	}
	return nil
}
