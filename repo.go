// Package mygit contains the core of mygit: a content-addressable
// store of blobs, trees, and commits, a staging index, a single
// branch, and a checkout engine that syncs the working tree with
// a commit
package mygit

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/nj301365/version-control-system-mygit/backend"
	"github.com/nj301365/version-control-system-mygit/env"
	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// List of errors returned by the Repository struct
var (
	ErrRepositoryNotExist           = errors.New("repository does not exist")
	ErrRepositoryUnsupportedVersion = errors.New("repository not supported")
	ErrRepositoryExists             = errors.New("repository already exists")
)

// supportedFormatVersion is the only value of
// core.repositoryformatversion we know how to read
const supportedFormatVersion = 0

// Repository represent a mygit repository.
// The repository is the .mygit/ folder inside a project, which
// tracks all the changes made to the files of the project (the
// working tree).
// A Repository is a handle, many of them can coexist in the same
// process
type Repository struct {
	dotGit *backend.Backend
	root   string
	fs     afero.Fs
	logger *slog.Logger
	opts   *env.Options
	now    func() time.Time
}

// Options contains all the optional data used to initialize or open
// a repository
type Options struct {
	// FS represents the filesystem containing both the working tree
	// and the .mygit directory.
	// By default the OS filesystem is used
	FS afero.Fs
	// Logger receives the warnings emitted by the best-effort
	// operations (add, checkout).
	// By default nothing is logged
	Logger *slog.Logger
	// Env contains the environment used to override the config.
	// By default the environment is empty
	Env *env.Env
	// Now returns the time used to date the commits.
	// Defaults to time.Now
	Now func() time.Time
}

// newRepository creates the handle of the repository at repoPath
func newRepository(repoPath string, opts Options) (*Repository, error) {
	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, xerrors.Errorf("could not get the absolute path of %s: %w", repoPath, err)
	}

	r := &Repository{
		root:   repoPath,
		fs:     opts.FS,
		logger: opts.Logger,
		opts:   env.NewOptions(opts.Env),
		now:    opts.Now,
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.now == nil {
		r.now = time.Now
	}

	r.dotGit, err = backend.New(r.fs, r.opts.BuildDotGitPath(r.root))
	if err != nil {
		return nil, xerrors.Errorf("could not create the backend: %w", err)
	}
	return r, nil
}

// InitRepository initialize a new repository by creating the .mygit
// directory in the given path, which is where everything mygit
// stores and manipulates is located.
func InitRepository(repoPath string) (*Repository, error) {
	return InitRepositoryWithOptions(repoPath, Options{})
}

// InitRepositoryWithOptions initialize a new repository by creating
// the .mygit directory in the given path.
// ErrRepositoryExists is returned if the directory already contains
// a repository
func InitRepositoryWithOptions(repoPath string, opts Options) (r *Repository, err error) {
	r, err = newRepository(repoPath, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			r.Close() //nolint:errcheck // we're already returning an error
		}
	}()

	if err = r.fs.MkdirAll(r.root, 0o755); err != nil {
		return nil, ginternals.NewStorageIOError("create directory", r.root, err)
	}

	if err = r.dotGit.Init(ginternals.Master); err != nil {
		if errors.Is(err, ginternals.ErrRefExists) {
			return nil, xerrors.Errorf("%s: %w", r.dotGit.Path(), ErrRepositoryExists)
		}
		return nil, xerrors.Errorf("could not initialize the repository: %w", err)
	}
	return r, nil
}

// OpenRepository loads an existing repository by reading its
// config file, and returns a Repository instance
func OpenRepository(repoPath string) (*Repository, error) {
	return OpenRepositoryWithOptions(repoPath, Options{})
}

// OpenRepositoryWithOptions loads an existing repository by reading
// its config file, and returns a Repository instance
func OpenRepositoryWithOptions(repoPath string, opts Options) (r *Repository, err error) {
	r, err = newRepository(repoPath, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			r.Close() //nolint:errcheck // we're already returning an error
		}
	}()

	// HEAD is always there, so that's how we know the repo exists
	if _, err = r.dotGit.Reference(ginternals.Head); err != nil {
		if errors.Is(err, ginternals.ErrRefNotFound) {
			return nil, xerrors.Errorf("%s: %w", r.dotGit.Path(), ErrRepositoryNotExist)
		}
		return nil, xerrors.Errorf("could not read HEAD: %w", err)
	}

	cfg, err := r.dotGit.Config()
	if err != nil {
		return nil, xerrors.Errorf("could not read the config: %w", err)
	}
	if cfg.FormatVersion != supportedFormatVersion {
		return nil, xerrors.Errorf("format version %d: %w", cfg.FormatVersion, ErrRepositoryUnsupportedVersion)
	}
	return r, nil
}

// Path returns the absolute path of the working tree
func (r *Repository) Path() string {
	return r.root
}

// DotGitPath returns the absolute path of the .mygit directory
func (r *Repository) DotGitPath() string {
	return r.dotGit.Path()
}

// Close frees the resources used by the repository
func (r *Repository) Close() error {
	return r.dotGit.Close()
}

// absPath returns the absolute version of p. Relative paths are
// relative to the root of the working tree
func (r *Repository) absPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(r.root, p)
}

// relPath returns the UNIX path of p relative to the working tree.
// ErrPathNotFound is returned if p is outside the working tree
func (r *Repository) relPath(p string) (string, error) {
	rel, err := filepath.Rel(r.root, r.absPath(p))
	if err != nil {
		return "", xerrors.Errorf("%s: %w", p, ginternals.ErrPathNotFound)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", xerrors.Errorf("%s is outside the working tree: %w", p, ginternals.ErrPathNotFound)
	}
	return rel, nil
}

// isDotGit returns whether the absolute path p is the .mygit
// directory
func (r *Repository) isDotGit(p string) bool {
	return p == r.dotGit.Path()
}

// Head returns the digest of the current commit.
// NullOid is returned if nothing has been committed yet
func (r *Repository) Head() (ginternals.Oid, error) {
	return r.dotGit.Head()
}
