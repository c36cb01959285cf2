// Package object contains methods and objects to work with the objects
// of the odb
package object

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/internal/readutil"
	"github.com/nj301365/version-control-system-mygit/internal/zlibutil"
	"golang.org/x/xerrors"
)

var (
	// ErrObjectUnknown represents an error thrown when encoutering an
	// unknown object
	ErrObjectUnknown = errors.New("invalid object type")

	// ErrObjectInvalid represents an error thrown when an object contains
	// unexpected data or when the wrong object is provided to a method.
	// Ex. Inserting a commit in a tree
	ErrObjectInvalid = errors.New("invalid object")

	// ErrTreeInvalid represents an error thrown when parsing an invalid
	// tree object
	ErrTreeInvalid = errors.New("invalid tree")

	// ErrCommitInvalid represents an error thrown when parsing an invalid
	// commit object
	ErrCommitInvalid = errors.New("invalid commit")
)

// Type represents the type of an object
type Type int8

// List of all the possible object types
const (
	TypeCommit Type = 1
	TypeTree   Type = 2
	TypeBlob   Type = 3
)

func (t Type) String() string {
	switch t {
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	default:
		panic(fmt.Sprintf("unknown object type %d", t))
	}
}

// IsValid check id the object type is an existing type
func (t Type) IsValid() bool {
	switch t {
	case TypeCommit,
		TypeTree,
		TypeBlob:
		return true
	default:
		return false
	}
}

// NewTypeFromString returns an Type from its string
// representation
func NewTypeFromString(t string) (Type, error) {
	switch t {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	default:
		return 0, ErrObjectUnknown
	}
}

// corrupt wraps err so it matches both err and ErrCorruptObject
func corrupt(format string, err error, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return xerrors.Errorf("%s: %w", msg, &corruptError{err: err})
}

// corruptError is an error that matches both ErrCorruptObject and
// the error it contains
type corruptError struct {
	err error
}

func (e *corruptError) Error() string {
	return fmt.Sprintf("%s: %s", e.err.Error(), ginternals.ErrCorruptObject.Error())
}

func (e *corruptError) Unwrap() error {
	return e.err
}

func (e *corruptError) Is(target error) bool {
	return target == ginternals.ErrCorruptObject //nolint:errorlint // we're implementing Is()
}

// Object represents an object of the odb. An object can be of multiple
// types but they all share similarities (same storage system, same
// header, etc.).
// Objects are stored in .mygit/objects, compressed.
type Object struct {
	id      ginternals.Oid
	typ     Type
	content []byte

	idProcessing sync.Once
}

// New creates a new object of the given type
func New(typ Type, content []byte) *Object {
	return &Object{
		typ:     typ,
		content: content,
	}
}

// ID returns the ID of the object.
// The ID is the SHA of the full serialized object (header included)
func (o *Object) ID() ginternals.Oid {
	o.idProcessing.Do(func() {
		o.id = ginternals.NewOidFromContent(o.Serialize())
	})
	return o.id
}

// Size returns the size of the object
func (o *Object) Size() int {
	return len(o.content)
}

// Type returns the Type for this object
func (o *Object) Type() Type {
	return o.typ
}

// Bytes returns the object's contents
func (o *Object) Bytes() []byte {
	return o.content
}

// Serialize returns the object as it is stored (before compression).
// The format is:
// [type] [size][NULL][content]
// The type in ascii, followed by a space, followed by the size in ascii,
// followed by a null character (0), followed by the object data
func (o *Object) Serialize() []byte {
	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	w := new(bytes.Buffer)
	w.Grow(len(o.content) + 16)

	// Write the type
	w.WriteString(o.Type().String())
	// add the space
	w.WriteByte(' ')
	// write the size
	w.WriteString(strconv.Itoa(o.Size()))
	// Write the NULL char
	w.WriteByte(0)
	// Write the content
	w.Write(o.Bytes())

	return w.Bytes()
}

// Compress return the serialized object zlib compressed
func (o *Object) Compress() ([]byte, error) {
	data, err := zlibutil.Compress(o.Serialize())
	if err != nil {
		return nil, xerrors.Errorf("could not compress object %s: %w", o.ID().String(), err)
	}
	return data, nil
}

// NewFromCompressed decompresses and parses the data of a stored object
func NewFromCompressed(data []byte) (*Object, error) {
	raw, err := zlibutil.Decompress(data)
	if err != nil {
		return nil, err
	}
	return NewFromSerialized(raw)
}

// NewFromSerialized parses an object from its serialized form
// [type] [size][NULL][content]
// The size has to match the length of the content.
func NewFromSerialized(raw []byte) (*Object, error) {
	// the type of the object starts at offset 0 and ends a the first
	// space character
	typ := readutil.ReadTo(raw, ' ')
	if len(typ) == 0 {
		return nil, corrupt("could not find object type", ErrObjectInvalid)
	}
	oType, err := NewTypeFromString(string(typ))
	if err != nil {
		return nil, corrupt("unsupported type %q", err, string(typ))
	}
	offset := len(typ) + 1 // +1 for the space

	// The size of the object starts after the space and ends at a NULL char
	// A NULL char is represented by 0 (dec), 000 (octal), or 0x00 (hex)
	// type "man ascii" in a terminal for more information
	size := readutil.ReadTo(raw[offset:], 0)
	if len(size) == 0 {
		return nil, corrupt("could not find object size", ErrObjectInvalid)
	}
	for _, c := range size {
		if c < '0' || c > '9' {
			return nil, corrupt("invalid size %q", ErrObjectInvalid, string(size))
		}
	}
	oSize, err := strconv.Atoi(string(size))
	if err != nil {
		return nil, corrupt("invalid size %q", err, string(size))
	}
	offset += len(size) + 1 // +1 for the NULL char

	content := raw[offset:]
	if len(content) != oSize {
		return nil, corrupt("object marked as size %d, but has %d", ErrObjectInvalid, oSize, len(content))
	}
	return New(oType, content), nil
}

// AsBlob parses the object as Blob
func (o *Object) AsBlob() (*Blob, error) {
	if o.typ != TypeBlob {
		return nil, xerrors.Errorf("type %s is not a blob: %w", o.typ, ErrObjectInvalid)
	}
	return NewBlob(o), nil
}

// AsTree parses the object as Tree
func (o *Object) AsTree() (*Tree, error) {
	return NewTreeFromObject(o)
}

// AsCommit parses the object as Commit
func (o *Object) AsCommit() (*Commit, error) {
	return NewCommitFromObject(o)
}
