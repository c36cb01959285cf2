// Package backend contains methods and objects to store and retrieve
// data from the .mygit directory: objects, references, the staging
// index, the history log, and the config
package backend

import (
	"github.com/nj301365/version-control-system-mygit/internal/cache"
	"github.com/nj301365/version-control-system-mygit/internal/syncutil"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

const (
	// objectCacheSize is the maximum number of decoded objects kept
	// in memory
	objectCacheSize = 1000
	// objectMutexCount is the number of mutexes used to protect the
	// objects. Using a prime number offers a better distribution
	objectMutexCount = 101
)

// Backend represents an object that can store and retrieve data
// from and to the .mygit directory.
// All the methods go through an afero.Fs, which makes it possible
// to run a repository in memory
type Backend struct {
	fs   afero.Fs
	root string

	cache    *cache.LRU
	objectMu *syncutil.NamedMutex
}

// New returns a new Backend object working on the .mygit directory
// located at dotGitPath
func New(fs afero.Fs, dotGitPath string) (*Backend, error) {
	c, err := cache.NewLRU(objectCacheSize)
	if err != nil {
		return nil, xerrors.Errorf("could not create the object cache: %w", err)
	}

	return &Backend{
		fs:       fs,
		root:     dotGitPath,
		cache:    c,
		objectMu: syncutil.NewNamedMutex(objectMutexCount),
	}, nil
}

// Path returns the path to the .mygit directory
func (b *Backend) Path() string {
	return b.root
}

// Close frees the resources used by the Backend
func (b *Backend) Close() error {
	b.cache.Clear()
	return nil
}
