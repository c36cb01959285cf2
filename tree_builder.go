package mygit

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/nj301365/version-control-system-mygit/backend"
	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/index"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// MaxTreeDepth is the maximum number of nested directories
// BuildFromDirectory will go through
const MaxTreeDepth = 256

// ErrTreeTooDeep is returned when a directory contains more than
// MaxTreeDepth levels of sub-directories
var ErrTreeTooDeep = errors.New("tree is too deep")

// TreeBuilder is used to build trees
type TreeBuilder struct {
	backend *backend.Backend
	entries map[string]object.TreeEntry
}

// NewTreeBuilder create a new empty tree builder
func (r *Repository) NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{
		backend: r.dotGit,
		entries: map[string]object.TreeEntry{},
	}
}

// NewTreeBuilderFromTree create a new tree builder containing the
// entries of another tree
func (r *Repository) NewTreeBuilderFromTree(t *object.Tree) *TreeBuilder {
	tb := r.NewTreeBuilder()
	for _, e := range t.Entries() {
		tb.entries[e.Path] = e
	}
	return tb
}

// Insert inserts a new object in a tree. An existing entry with the
// same name is replaced.
// The object has to exist, and its type has to match the mode
func (tb *TreeBuilder) Insert(name string, oid ginternals.Oid, mode object.TreeObjectMode) error {
	if !mode.IsValid() {
		return xerrors.Errorf("invalid mode %s: %w", mode.String(), object.ErrObjectInvalid)
	}
	if !object.IsValidEntryName(name) {
		return xerrors.Errorf("invalid entry name %q: %w", name, object.ErrTreeInvalid)
	}

	o, err := tb.backend.Object(oid)
	if err != nil {
		return xerrors.Errorf("cannot verify object: %w", err)
	}
	if o.Type() != object.TypeBlob && o.Type() != object.TypeTree {
		return xerrors.Errorf("unexpected object %s: %w", o.Type().String(), object.ErrObjectInvalid)
	}
	if o.Type() != mode.ObjectType() {
		return xerrors.Errorf("mode %s cannot be used for a %s: %w", mode.String(), o.Type().String(), object.ErrObjectInvalid)
	}

	tb.entries[name] = object.TreeEntry{
		Mode: mode,
		Path: name,
		ID:   oid,
	}
	return nil
}

// Remove removes an object from tree
func (tb *TreeBuilder) Remove(name string) {
	delete(tb.entries, name)
}

// Write creates and persists a new Tree object
func (tb *TreeBuilder) Write() (*object.Tree, error) {
	// We need to order all our entries alphabetically
	names := make([]string, 0, len(tb.entries))
	for name := range tb.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]object.TreeEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, tb.entries[name])
	}

	t := object.NewTree(entries)
	if _, err := tb.backend.WriteObject(t.ToObject()); err != nil {
		return nil, xerrors.Errorf("could not write the object to the odb: %w", err)
	}
	return t, nil
}

// WriteTree creates a tree from the whole working tree and returns
// its digest
func (r *Repository) WriteTree() (ginternals.Oid, error) {
	return r.BuildFromDirectory(r.root)
}

// BuildFromDirectory recursively creates and persists a tree from the
// content of the given directory, and returns its digest.
// The .mygit directory is ignored, and so is everything that is
// neither a directory nor a regular file (symlinks, sockets, etc.).
// Empty directories are stored as empty trees
func (r *Repository) BuildFromDirectory(dirPath string) (ginternals.Oid, error) {
	return r.buildFromDirectory(r.absPath(dirPath), 0)
}

func (r *Repository) buildFromDirectory(dirPath string, depth int) (ginternals.Oid, error) {
	if depth > MaxTreeDepth {
		return ginternals.NullOid, xerrors.Errorf("%s: %w", dirPath, ErrTreeTooDeep)
	}

	infos, err := afero.ReadDir(r.fs, dirPath)
	if err != nil {
		return ginternals.NullOid, ginternals.NewStorageIOError("list", dirPath, err)
	}

	tb := r.NewTreeBuilder()
	for _, info := range infos {
		p := filepath.Join(dirPath, info.Name())
		if r.isDotGit(p) {
			continue
		}
		if !object.IsValidEntryName(info.Name()) {
			r.logger.Warn("skipping entry with unsupported name", "path", p)
			continue
		}

		switch {
		case info.IsDir():
			oid, err := r.buildFromDirectory(p, depth+1)
			if err != nil {
				return ginternals.NullOid, err
			}
			tb.entries[info.Name()] = object.TreeEntry{
				Path: info.Name(),
				ID:   oid,
				Mode: object.ModeDirectory,
			}
		case info.Mode().IsRegular():
			data, err := afero.ReadFile(r.fs, p)
			if err != nil {
				return ginternals.NullOid, ginternals.NewStorageIOError("read", p, err)
			}
			oid, err := r.dotGit.WriteObject(object.NewBlobFromContent(data).ToObject())
			if err != nil {
				return ginternals.NullOid, xerrors.Errorf("could not write the blob of %s: %w", p, err)
			}
			tb.entries[info.Name()] = object.TreeEntry{
				Path: info.Name(),
				ID:   oid,
				Mode: fileMode(info.Mode()),
			}
		default:
			r.logger.Debug("skipping non-regular file", "path", p, "mode", info.Mode().String())
		}
	}

	t, err := tb.Write()
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not write the tree of %s: %w", dirPath, err)
	}
	return t.ID(), nil
}

// BuildFromIndex creates and persists a flat tree from the entries
// of the index, and returns its digest.
// Only the last segment of each path is used as entry name, meaning
// that no sub-trees are created. If two paths share the same last
// segment, the entry staged last wins.
// NullOid is returned if the index is empty
func (r *Repository) BuildFromIndex(idx *index.Index) (ginternals.Oid, error) {
	if idx.Len() == 0 {
		return ginternals.NullOid, nil
	}

	tb := r.NewTreeBuilder()
	for _, e := range idx.Entries() {
		name := path.Base(e.Path)
		if prev, ok := tb.entries[name]; ok {
			r.logger.Warn("two staged files share the same name, keeping the last one",
				"name", name, "dropped", prev.ID.String(), "kept", e.ID.String(), "path", e.Path)
		}
		tb.entries[name] = object.TreeEntry{
			Path: name,
			ID:   e.ID,
			Mode: e.Mode,
		}
	}

	t, err := tb.Write()
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not write the tree of the index: %w", err)
	}
	return t.ID(), nil
}

// fileMode returns the mode to use in a tree for a file having the
// given permissions
func fileMode(perm os.FileMode) object.TreeObjectMode {
	if perm&0o111 != 0 {
		return object.ModeExecutable
	}
	return object.ModeFile
}
