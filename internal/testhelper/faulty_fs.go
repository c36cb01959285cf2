package testhelper

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// FaultFunc returns the error an operation should fail with, or nil
// if the operation should be forwarded to the underlying filesystem.
// op is the name of the afero.Fs method (Open, Remove, Rename, ...)
type FaultFunc func(op, name string) error

// FaultyFs is an afero.Fs that can be told to fail some operations
type FaultyFs struct {
	afero.Fs
	fault FaultFunc
}

// we make sure the struct implements the interface
var _ afero.Fs = (*FaultyFs)(nil)

// NewFaultyFs returns a filesystem that forwards all its calls to fs
// unless fault returns an error
func NewFaultyFs(fs afero.Fs, fault FaultFunc) *FaultyFs {
	return &FaultyFs{
		Fs:    fs,
		fault: fault,
	}
}

func (fs *FaultyFs) check(op, name string) error {
	if err := fs.fault(op, name); err != nil {
		return &os.PathError{Op: op, Path: name, Err: err}
	}
	return nil
}

// Create implements afero.Fs
func (fs *FaultyFs) Create(name string) (afero.File, error) {
	if err := fs.check("Create", name); err != nil {
		return nil, err
	}
	return fs.Fs.Create(name)
}

// Mkdir implements afero.Fs
func (fs *FaultyFs) Mkdir(name string, perm os.FileMode) error {
	if err := fs.check("Mkdir", name); err != nil {
		return err
	}
	return fs.Fs.Mkdir(name, perm)
}

// MkdirAll implements afero.Fs
func (fs *FaultyFs) MkdirAll(path string, perm os.FileMode) error {
	if err := fs.check("MkdirAll", path); err != nil {
		return err
	}
	return fs.Fs.MkdirAll(path, perm)
}

// Open implements afero.Fs
func (fs *FaultyFs) Open(name string) (afero.File, error) {
	if err := fs.check("Open", name); err != nil {
		return nil, err
	}
	return fs.Fs.Open(name)
}

// OpenFile implements afero.Fs
func (fs *FaultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := fs.check("OpenFile", name); err != nil {
		return nil, err
	}
	return fs.Fs.OpenFile(name, flag, perm)
}

// Remove implements afero.Fs
func (fs *FaultyFs) Remove(name string) error {
	if err := fs.check("Remove", name); err != nil {
		return err
	}
	return fs.Fs.Remove(name)
}

// RemoveAll implements afero.Fs
func (fs *FaultyFs) RemoveAll(path string) error {
	if err := fs.check("RemoveAll", path); err != nil {
		return err
	}
	return fs.Fs.RemoveAll(path)
}

// Rename implements afero.Fs
func (fs *FaultyFs) Rename(oldname, newname string) error {
	if err := fs.check("Rename", newname); err != nil {
		return err
	}
	return fs.Fs.Rename(oldname, newname)
}

// Chmod implements afero.Fs
func (fs *FaultyFs) Chmod(name string, mode os.FileMode) error {
	if err := fs.check("Chmod", name); err != nil {
		return err
	}
	return fs.Fs.Chmod(name, mode)
}

// Chtimes implements afero.Fs
func (fs *FaultyFs) Chtimes(name string, atime, mtime time.Time) error {
	if err := fs.check("Chtimes", name); err != nil {
		return err
	}
	return fs.Fs.Chtimes(name, atime, mtime)
}
