package object

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/internal/readutil"
)

// TreeObjectMode represents the mode of an object inside a tree
// Non-standard modes (like 0o100664) are not supported
type TreeObjectMode int32

const (
	// ModeFile represents the mode to use for a regular file
	ModeFile TreeObjectMode = 0o100644
	// ModeExecutable represents the mode to use for a executable file
	ModeExecutable TreeObjectMode = 0o100755
	// ModeDirectory represents the mode to use for a directory
	ModeDirectory TreeObjectMode = 0o040000
)

// NewTreeObjectModeFromString parses the textual version of a mode
// Ex. "100644"
func NewTreeObjectModeFromString(s string) (TreeObjectMode, error) {
	switch s {
	case "100644":
		return ModeFile, nil
	case "100755":
		return ModeExecutable, nil
	case "040000":
		return ModeDirectory, nil
	default:
		return 0, fmt.Errorf("unsupported mode %q: %w", s, ErrObjectInvalid)
	}
}

// IsValid returns whether the mode is a supported mode or not
func (m TreeObjectMode) IsValid() bool {
	// we use a switch because any missing value will be detected
	// by our linter
	switch m {
	case ModeFile, ModeExecutable, ModeDirectory:
		return true
	default:
		return false
	}
}

// String returns the mode as stored in a tree, on 6 octal digits.
// Ex. 040000 for a directory
func (m TreeObjectMode) String() string {
	return fmt.Sprintf("%06o", int32(m))
}

// ObjectType returns the object type associated to a mode
func (m TreeObjectMode) ObjectType() Type {
	if m == ModeDirectory {
		return TypeTree
	}
	return TypeBlob
}

// TreeEntry represents an entry inside a tree
type TreeEntry struct {
	Path string
	ID   ginternals.Oid
	Mode TreeObjectMode
}

// IsTree returns whether the entry targets a tree
func (e TreeEntry) IsTree() bool {
	return e.Mode == ModeDirectory
}

// Tree represents a tree object
type Tree struct {
	rawObject *Object
	// we don't use pointers to make sure entries are immutable
	entries []TreeEntry
}

// NewTree returns a new tree with the given entries.
// The entries are sorted by name, which makes the ID of the tree
// independent of the order in which entries were provided
func NewTree(entries []TreeEntry) *Tree {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	t := &Tree{
		entries: sorted,
	}
	t.rawObject = t.ToObject()
	return t
}

// NewTreeFromObject returns a new tree from an object
//
// A tree has following format:
//
// {octal_mode} {path_name}\0{sha_in_hex}
//
// Note:
// - a Tree may have zero or multiple entries, back to back
// - the sha is always 40 chars which is what makes it possible to
//   know where an entry ends
func NewTreeFromObject(o *Object) (*Tree, error) {
	if o.Type() != TypeTree {
		return nil, fmt.Errorf("type %s is not a tree: %w", o.typ, ErrObjectInvalid)
	}

	entries := []TreeEntry{}
	objData := o.Bytes()
	offset := 0
	// the variable i is only use for error messages, not for
	// actual processing
	for i := 1; offset < len(objData); i++ {
		entry := TreeEntry{}
		data := readutil.ReadTo(objData[offset:], ' ')
		if len(data) == 0 {
			return nil, corrupt("could not retrieve the mode of entry %d", ErrTreeInvalid, i)
		}
		offset += len(data) + 1 // +1 for the space
		mode, err := NewTreeObjectModeFromString(string(data))
		if err != nil {
			return nil, corrupt("could not parse mode of entry %d (%s)", ErrTreeInvalid, i, err.Error())
		}
		entry.Mode = mode

		data = readutil.ReadTo(objData[offset:], 0)
		if len(data) == 0 {
			return nil, corrupt("could not retrieve the path of entry %d", ErrTreeInvalid, i)
		}
		if !IsValidEntryName(string(data)) {
			return nil, corrupt("invalid path %q for entry %d", ErrTreeInvalid, string(data), i)
		}
		offset += len(data) + 1 // +1 for the \0
		entry.Path = string(data)

		if offset+ginternals.OidHexSize > len(objData) {
			return nil, corrupt("not enough space to retrieve the ID of entry %d", ErrTreeInvalid, i)
		}
		entry.ID, err = ginternals.NewOidFromChars(objData[offset : offset+ginternals.OidHexSize])
		if err != nil {
			return nil, corrupt("invalid SHA for entry %d", ErrTreeInvalid, i)
		}
		offset += ginternals.OidHexSize

		if len(entries) > 0 && entries[len(entries)-1].Path >= entry.Path {
			return nil, corrupt("entry %d (%s) is not sorted or is duplicated", ErrTreeInvalid, i, entry.Path)
		}
		entries = append(entries, entry)
	}

	return &Tree{
		rawObject: o,
		entries:   entries,
	}, nil
}

// Entries returns a copy of tree entries
func (t *Tree) Entries() []TreeEntry {
	out := make([]TreeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Entry returns the entry matching the given name
func (t *Tree) Entry(name string) (TreeEntry, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Path >= name
	})
	if i < len(t.entries) && t.entries[i].Path == name {
		return t.entries[i], true
	}
	return TreeEntry{}, false
}

// ID returns the object's ID
func (t *Tree) ID() ginternals.Oid {
	return t.rawObject.ID()
}

// ToObject returns an Object representing the tree
func (t *Tree) ToObject() *Object {
	if t.rawObject != nil {
		return t.rawObject
	}

	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	buf := new(bytes.Buffer)

	// The format of an tree entry is:
	// {octal_mode} {path_name}\0{sha_in_hex}
	// A tree object is only composed of a bunch of entries back to back
	for _, e := range t.entries {
		buf.WriteString(e.Mode.String())
		buf.WriteByte(' ')
		buf.WriteString(e.Path)
		buf.WriteByte(0)
		buf.WriteString(e.ID.String())
	}

	return New(TypeTree, buf.Bytes())
}

// IsValidEntryName returns whether name can be used as the name of a
// tree entry. A name is a single path segment
func IsValidEntryName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, "/\\\x00")
}
