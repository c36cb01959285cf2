// Package index contains methods and objects to work with the staging
// index
package index

import (
	"bufio"
	"bytes"
	"errors"
	"strings"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"golang.org/x/xerrors"
)

// ErrIndexInvalid is returned when the index file cannot be parsed
var ErrIndexInvalid = errors.New("invalid index")

// Entry represents a file staged for the next commit
type Entry struct {
	// Path is the UNIX path of the file, relative to the root of the
	// working tree
	Path string
	ID   ginternals.Oid
	Mode object.TreeObjectMode
}

// Index represents the staging index.
// Every path appears at most once.
//
// The index is stored as a text file containing one entry per line:
//
// {mode} {sha} {path}
//
// Ex.
// 100644 e69de29bb2d1d6434b8b29ae775ad8c2e48c5391 docs/README.md
type Index struct {
	entries []Entry
}

// New returns an empty Index
func New() *Index {
	return &Index{}
}

// NewFromBytes parses the content of an index file
func NewFromBytes(data []byte) (*Index, error) {
	idx := New()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for i := 1; sc.Scan(); i++ {
		line := sc.Text()
		if line == "" {
			continue
		}
		// We expect data to have the format:
		// "mode oid path"
		// The path may contain spaces so we only split twice
		parts := strings.SplitN(line, " ", 3)
		if len(parts) != 3 || parts[2] == "" {
			return nil, xerrors.Errorf("unexpected data line %d: %w", i, ErrIndexInvalid)
		}
		mode, err := object.NewTreeObjectModeFromString(parts[0])
		if err != nil || mode == object.ModeDirectory {
			return nil, xerrors.Errorf("invalid mode %q line %d: %w", parts[0], i, ErrIndexInvalid)
		}
		oid, err := ginternals.NewOidFromStr(parts[1])
		if err != nil {
			return nil, xerrors.Errorf("invalid oid %q line %d: %w", parts[1], i, ErrIndexInvalid)
		}
		err = idx.Add(Entry{
			Path: parts[2],
			ID:   oid,
			Mode: mode,
		})
		if err != nil {
			return nil, xerrors.Errorf("line %d: %w", i, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, xerrors.Errorf("could not read index: %w", err)
	}
	return idx, nil
}

// Add stages an entry. Any entry already staged with the same path is
// removed first, and the new entry is appended at the end.
// ErrIndexInvalid is returned if the entry cannot be stored
func (idx *Index) Add(e Entry) error {
	if e.Path == "" || strings.ContainsAny(e.Path, "\n\r") {
		return xerrors.Errorf("invalid path %q: %w", e.Path, ErrIndexInvalid)
	}
	if !e.Mode.IsValid() || e.Mode == object.ModeDirectory {
		return xerrors.Errorf("invalid mode %s for %s: %w", e.Mode.String(), e.Path, ErrIndexInvalid)
	}
	idx.Remove(e.Path)
	idx.entries = append(idx.entries, e)
	return nil
}

// Remove removes the entry with the given path, if any
func (idx *Index) Remove(path string) {
	for i, e := range idx.entries {
		if e.Path == path {
			idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
			return
		}
	}
}

// Entry returns the entry staged for path
func (idx *Index) Entry(path string) (Entry, bool) {
	for _, e := range idx.entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the staged entries, in insertion order
func (idx *Index) Entries() []Entry {
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Len returns the number of staged entries
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Clear removes all the entries
func (idx *Index) Clear() {
	idx.entries = nil
}

// Bytes returns the index as stored on disk
func (idx *Index) Bytes() []byte {
	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	buf := new(bytes.Buffer)
	for _, e := range idx.entries {
		buf.WriteString(e.Mode.String())
		buf.WriteByte(' ')
		buf.WriteString(e.ID.String())
		buf.WriteByte(' ')
		buf.WriteString(e.Path)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
