package ginternals

import (
	"errors"
	"fmt"
)

// List of the error kinds returned by the core. Callers are expected
// to use errors.Is() since the errors are always wrapped with more
// context (offending path or digest).
var (
	// ErrPathNotFound is returned when a path given to add or
	// hash-object doesn't exist
	ErrPathNotFound = errors.New("path not found")

	// ErrObjectNotFound is an error corresponding to an object not being
	// found in the odb
	ErrObjectNotFound = errors.New("object not found")

	// ErrCorruptObject is returned when an object cannot be decompressed
	// or decoded
	ErrCorruptObject = errors.New("corrupt object")

	// ErrInvalidCommit is returned when the target of a checkout doesn't
	// resolve to a decodable commit and tree
	ErrInvalidCommit = errors.New("invalid commit")

	// ErrStorageIO is returned when the underlying storage failed to
	// read, write, or delete data
	ErrStorageIO = errors.New("storage failure")

	// ErrNothingToCommit is returned when a commit is requested but the
	// index is empty
	ErrNothingToCommit = errors.New("nothing to commit")
)

// StorageIOError represents a failure of the underlying storage.
// It matches ErrStorageIO and unwraps to the original error
type StorageIOError struct {
	Op   string
	Path string
	Err  error
}

// NewStorageIOError returns a new StorageIOError
func NewStorageIOError(op, path string, err error) *StorageIOError {
	return &StorageIOError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// Error implements the error interface
func (e *StorageIOError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageIOError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorageIO) work
func (e *StorageIOError) Is(target error) bool {
	return target == ErrStorageIO //nolint:errorlint // we're implementing Is()
}
