package ginternals

import (
	"bytes"
	"errors"
	"strings"

	"github.com/nj301365/version-control-system-mygit/internal/gitpath"
	"golang.org/x/xerrors"
)

const (
	// Head is the name of the reference pointing to the current branch
	Head = "HEAD"
	// Master is the branch created with a new repository
	Master = "master"
)

var (
	// ErrRefNotFound is returned when a reference doesn't exist
	ErrRefNotFound = errors.New("reference not found")

	// ErrRefExists is returned when a reference should not exist,
	// but does
	ErrRefExists = errors.New("reference already exists")

	// ErrRefNameInvalid is returned when the name of a reference is
	// neither HEAD nor a local branch
	ErrRefNameInvalid = errors.New("reference name is not valid")

	// ErrRefInvalid is returned when the content of a reference
	// cannot be parsed
	ErrRefInvalid = errors.New("reference is not valid")
)

// Reference is either HEAD, attached to a branch, or a branch
// pointing to a commit
type Reference struct {
	name   string
	branch string
	id     Oid
}

// RefContent returns the raw content of a reference.
// ErrRefNotFound is expected to be returned if the reference
// doesn't exist
type RefContent func(name string) ([]byte, error)

// NewHeadReference returns HEAD attached to the given branch.
// branch is a full name, like refs/heads/master
func NewHeadReference(branch string) *Reference {
	return &Reference{
		name:   Head,
		branch: branch,
	}
}

// NewBranchReference returns a branch pointing to the given commit.
// name is a full name, like refs/heads/master
func NewBranchReference(name string, target Oid) *Reference {
	return &Reference{
		name: name,
		id:   target,
	}
}

// ResolveReference reads the reference with the given name.
// When name is HEAD, the branch is read as well. A branch that has
// no commits yet makes HEAD target NullOid
func ResolveReference(name string, finder RefContent) (*Reference, error) {
	if !IsRefNameValid(name) {
		return nil, xerrors.Errorf(`ref "%s": %w`, name, ErrRefNameInvalid)
	}
	data, err := finder(name)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if name != Head {
		return parseBranch(name, data)
	}

	branch, ok := bytes.CutPrefix(data, []byte("ref: "))
	if !ok {
		return nil, xerrors.Errorf("HEAD is not attached to a branch: %w", ErrRefInvalid)
	}
	ref := NewHeadReference(string(branch))
	if !isBranchName(ref.branch) {
		return nil, xerrors.Errorf(`HEAD targets "%s": %w`, ref.branch, ErrRefInvalid)
	}

	data, err = finder(ref.branch)
	if err != nil {
		if errors.Is(err, ErrRefNotFound) {
			return ref, nil
		}
		return nil, err
	}
	b, err := parseBranch(ref.branch, bytes.TrimSpace(data))
	if err != nil {
		return nil, err
	}
	ref.id = b.id
	return ref, nil
}

func parseBranch(name string, data []byte) (*Reference, error) {
	oid, err := NewOidFromChars(data)
	if err != nil {
		return nil, xerrors.Errorf(`ref "%s" contains "%s": %w`, name, string(data), ErrRefInvalid)
	}
	return NewBranchReference(name, oid), nil
}

// Name returns the full name of the reference
func (ref *Reference) Name() string {
	return ref.name
}

// Target returns the commit targeted by the reference. For HEAD this
// is the commit of its branch
func (ref *Reference) Target() Oid {
	return ref.id
}

// Branch returns the full name of the branch HEAD is attached to.
// An empty string is returned for a branch
func (ref *Reference) Branch() string {
	return ref.branch
}

// IsHead returns whether the reference is HEAD
func (ref *Reference) IsHead() bool {
	return ref.name == Head
}

// Bytes returns the content of the reference, as stored on disk
func (ref *Reference) Bytes() []byte {
	if ref.IsHead() {
		return []byte("ref: " + ref.branch + "\n")
	}
	return []byte(ref.id.String() + "\n")
}

// IsRefNameValid returns whether name is HEAD or the full name of a
// local branch
func IsRefNameValid(name string) bool {
	return name == Head || isBranchName(name)
}

// isBranchName returns whether name is a refs/heads/ name made of
// segments of letters, digits, "-", "_", and ".". A segment cannot
// start or end with a dot, contain "..", or end with ".lock"
func isBranchName(name string) bool {
	short, ok := strings.CutPrefix(name, gitpath.RefsHeadsPath+"/")
	if !ok {
		return false
	}
	for _, s := range strings.Split(short, "/") {
		if s == "" || s[0] == '.' || s[len(s)-1] == '.' {
			return false
		}
		if strings.Contains(s, "..") || strings.HasSuffix(s, ".lock") {
			return false
		}
		for _, c := range s {
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			case c == '-', c == '_', c == '.':
			default:
				return false
			}
		}
	}
	return true
}
