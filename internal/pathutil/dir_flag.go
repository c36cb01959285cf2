package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// ErrIsNotDirectory is returned when a path is expected to point to a
// directory but doesn't
var ErrIsNotDirectory = errors.New("path is not a directory")

// DirFlag is a pflag value holding the absolute path of an existing
// directory.
// A relative value is resolved against the current value, so
// "-C a -C b" points to "a/b"
type DirFlag struct {
	fs   afero.Fs
	path string
}

// we make sure the struct implements the interface
var _ pflag.Value = (*DirFlag)(nil)

// NewDirFlag returns a DirFlag pointing to dir until it gets set
func NewDirFlag(fs afero.Fs, dir string) *DirFlag {
	return &DirFlag{
		fs:   fs,
		path: dir,
	}
}

// String returns the path of the directory
func (f *DirFlag) String() string {
	return f.path
}

// Set moves the flag to the given directory. Empty values are ignored
func (f *DirFlag) Set(value string) error {
	if value == "" {
		return nil
	}
	if !filepath.IsAbs(value) {
		value = filepath.Join(f.path, value)
	}
	value, err := filepath.Abs(value)
	if err != nil {
		return fmt.Errorf("could not find absolute path: %w", err)
	}

	info, err := f.fs.Stat(value)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("invalid path %s: %w", value, os.ErrNotExist)
		}
		return fmt.Errorf("could not check path %s: %w", value, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid path %s: %w", value, ErrIsNotDirectory)
	}

	f.path = value
	return nil
}

// Type returns the name of the type, as displayed in the usage
func (f *DirFlag) Type() string {
	return "path"
}
