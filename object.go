package mygit

import (
	"bytes"
	"errors"
	"os"
	"strconv"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// ErrNotRegularFile is returned when a path is expected to be a
// regular file but isn't
var ErrNotRegularFile = errors.New("not a regular file")

// CatFileMode represents what CatFile should return
type CatFileMode int8

const (
	// CatFileContent returns the payload of the object
	CatFileContent CatFileMode = iota
	// CatFileSize returns the size of the payload, in decimal
	CatFileSize
	// CatFileKind returns the type of the object (blob, tree, commit)
	CatFileKind
)

// Object returns the object matching the given ID
func (r *Repository) Object(oid ginternals.Oid) (*object.Object, error) {
	return r.dotGit.Object(oid)
}

// readWorkingFile returns the content of a regular file of the
// working tree. ErrPathNotFound is returned if the file doesn't exist
func (r *Repository) readWorkingFile(p string) ([]byte, os.FileInfo, error) {
	info, err := r.fs.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, xerrors.Errorf("%s: %w", p, ginternals.ErrPathNotFound)
		}
		return nil, nil, ginternals.NewStorageIOError("stat", p, err)
	}
	if !info.Mode().IsRegular() {
		return nil, nil, xerrors.Errorf("%s: %w", p, ErrNotRegularFile)
	}

	data, err := afero.ReadFile(r.fs, p)
	if err != nil {
		return nil, nil, ginternals.NewStorageIOError("read", p, err)
	}
	return data, info, nil
}

// HashObject returns the digest of the blob made of the content of
// the file at the given path. Relative paths are relative to the
// root of the working tree.
// The blob is only persisted if write is true
func (r *Repository) HashObject(p string, write bool) (ginternals.Oid, error) {
	data, _, err := r.readWorkingFile(r.absPath(p))
	if err != nil {
		return ginternals.NullOid, err
	}

	blob := object.NewBlobFromContent(data)
	if !write {
		return blob.ID(), nil
	}

	oid, err := r.dotGit.WriteObject(blob.ToObject())
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not write the blob of %s: %w", p, err)
	}
	return oid, nil
}

// CatFile returns the content, the size, or the type of an object
// depending on mode.
// The content is returned verbatim, without any formatting
func (r *Repository) CatFile(oid ginternals.Oid, mode CatFileMode) ([]byte, error) {
	o, err := r.dotGit.Object(oid)
	if err != nil {
		return nil, err
	}

	switch mode {
	case CatFileContent:
		// the object may be shared with the cache
		return bytes.Clone(o.Bytes()), nil
	case CatFileSize:
		return []byte(strconv.Itoa(o.Size())), nil
	case CatFileKind:
		return []byte(o.Type().String()), nil
	default:
		return nil, xerrors.Errorf("unknown cat-file mode %d", mode)
	}
}

// TreeRow represents an entry of a tree, as listed by ListTree
type TreeRow struct {
	Mode object.TreeObjectMode
	Type object.Type
	ID   ginternals.Oid
	Name string
}

// String returns the row in the ls-tree format:
// {mode} {type} {sha}\t{name}
func (row TreeRow) String() string {
	return row.Mode.String() + " " + row.Type.String() + " " + row.ID.String() + "\t" + row.Name
}

// ListTree returns the rows of the given tree, sorted by name.
// If nameOnly is set, only the names of the entries are returned
func (r *Repository) ListTree(oid ginternals.Oid, nameOnly bool) ([]string, error) {
	entries, err := r.TreeRows(oid)
	if err != nil {
		return nil, err
	}
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		if nameOnly {
			rows = append(rows, e.Name)
			continue
		}
		rows = append(rows, e.String())
	}
	return rows, nil
}

// TreeRows returns the entries of the given tree, sorted by name
func (r *Repository) TreeRows(oid ginternals.Oid) ([]TreeRow, error) {
	o, err := r.dotGit.Object(oid)
	if err != nil {
		return nil, err
	}
	if o.Type() != object.TypeTree {
		return nil, xerrors.Errorf("%s is a %s, not a tree: %w", oid.String(), o.Type().String(), object.ErrObjectInvalid)
	}
	tree, err := o.AsTree()
	if err != nil {
		return nil, xerrors.Errorf("could not parse tree %s: %w", oid.String(), err)
	}

	entries := tree.Entries()
	rows := make([]TreeRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, TreeRow{
			Mode: e.Mode,
			Type: e.Mode.ObjectType(),
			ID:   e.ID,
			Name: e.Path,
		})
	}
	return rows, nil
}
