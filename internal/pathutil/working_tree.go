package pathutil

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// ErrNoRepo is an error returned when no repo are found
var ErrNoRepo = errors.New("not a mygit repository (or any of the parent directories)")

// WorkingTree returns the absolute path to the working tree containing
// the current working directory
func WorkingTree(fs afero.Fs, dotGitDirName string) (path string, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", xerrors.Errorf("could not get current working directory: %w", err)
	}
	return WorkingTreeFromPath(fs, wd, dotGitDirName)
}

// WorkingTreeFromPath returns the absolute path to the root of a repo
// containing the provided directory
func WorkingTreeFromPath(fs afero.Fs, p, dotGitDirName string) (path string, err error) {
	p, err = filepath.Abs(p)
	if err != nil {
		return "", xerrors.Errorf("could not get the absolute path of %s: %w", p, err)
	}

	prev := ""
	for p != prev {
		info, err := fs.Stat(filepath.Join(p, dotGitDirName))
		if err == nil && info.IsDir() {
			return p, nil
		}

		prev = p
		p = filepath.Dir(p)
	}
	return "", ErrNoRepo
}
