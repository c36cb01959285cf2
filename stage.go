package mygit

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/index"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// StageReport contains the outcome of a Stage call
type StageReport struct {
	// Staged contains the entries added to the index
	Staged []index.Entry
	// Failed contains the files that could not be staged
	Failed []PathOutcome
}

// Stage adds the given files to the index. Directories are walked
// recursively and all their regular files are added.
// Relative paths are relative to the root of the working tree.
//
// ErrPathNotFound is returned, and nothing is staged, if any of the
// paths doesn't exist or is outside the working tree. Once all the
// paths are validated, a file that cannot be staged is reported in
// the StageReport and doesn't prevent the other files from being
// staged. The index is persisted once, at the end.
func (r *Repository) Stage(paths ...string) (*StageReport, error) {
	absPaths := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := r.relPath(p); err != nil {
			return nil, err
		}
		abs := r.absPath(p)
		if _, err := r.fs.Stat(abs); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, xerrors.Errorf("%s: %w", p, ginternals.ErrPathNotFound)
			}
			return nil, ginternals.NewStorageIOError("stat", abs, err)
		}
		absPaths = append(absPaths, abs)
	}

	idx, err := r.dotGit.Index()
	if err != nil {
		return nil, xerrors.Errorf("could not load the index: %w", err)
	}

	report := &StageReport{
		Staged: []index.Entry{},
		Failed: []PathOutcome{},
	}
	for _, p := range absPaths {
		err = afero.Walk(r.fs, p, func(current string, info fs.FileInfo, err error) error {
			if err != nil {
				report.fail(r, current, ginternals.NewStorageIOError("walk", current, err))
				return nil
			}
			if r.isInsideDotGit(current) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				return nil
			}
			if !info.Mode().IsRegular() {
				r.logger.Debug("skipping non-regular file", "path", current, "mode", info.Mode().String())
				return nil
			}

			e, err := r.stageFile(idx, current, info)
			if err != nil {
				report.fail(r, current, err)
				return nil
			}
			report.Staged = append(report.Staged, e)
			return nil
		})
		if err != nil {
			return nil, xerrors.Errorf("could not walk %s: %w", p, err)
		}
	}

	if err = r.dotGit.WriteIndex(idx); err != nil {
		return nil, xerrors.Errorf("could not persist the index: %w", err)
	}
	return report, nil
}

// stageFile writes the blob of the given file and adds it to the
// index, replacing any previous entry for the same path
func (r *Repository) stageFile(idx *index.Index, p string, info fs.FileInfo) (index.Entry, error) {
	rel, err := r.relPath(p)
	if err != nil {
		return index.Entry{}, err
	}
	data, err := afero.ReadFile(r.fs, p)
	if err != nil {
		return index.Entry{}, ginternals.NewStorageIOError("read", p, err)
	}
	oid, err := r.dotGit.WriteObject(object.NewBlobFromContent(data).ToObject())
	if err != nil {
		return index.Entry{}, xerrors.Errorf("could not write the blob of %s: %w", p, err)
	}

	e := index.Entry{
		Path: rel,
		ID:   oid,
		Mode: fileMode(info.Mode()),
	}
	if err = idx.Add(e); err != nil {
		return index.Entry{}, xerrors.Errorf("could not stage %s: %w", rel, err)
	}
	return e, nil
}

// fail records a file that could not be staged
func (report *StageReport) fail(r *Repository, p string, err error) {
	r.logger.Warn("could not stage file", "path", p, "error", err)
	report.Failed = append(report.Failed, PathOutcome{Path: p, Err: err})
}

// isInsideDotGit returns whether the absolute path p is the .mygit
// directory or is located inside of it
func (r *Repository) isInsideDotGit(p string) bool {
	rel, err := filepath.Rel(r.dotGit.Path(), p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// containsDotGit returns whether the absolute path p is a parent
// directory of the .mygit directory
func (r *Repository) containsDotGit(p string) bool {
	rel, err := filepath.Rel(p, r.dotGit.Path())
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, "../")
}
