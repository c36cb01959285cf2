package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nj301365/version-control-system-mygit"
	"github.com/nj301365/version-control-system-mygit/env"
	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/internal/gitpath"
	"github.com/nj301365/version-control-system-mygit/internal/pathutil"
	"golang.org/x/xerrors"
)

// errNoCommits is returned when HEAD is used but nothing has been
// committed yet
var errNoCommits = errors.New("no commits yet")

func repositoryOptions(cfg *globalFlags) mygit.Options {
	return mygit.Options{
		FS:     cfg.fs,
		Logger: cfg.logger,
		Env:    cfg.env,
	}
}

// loadRepository opens the repository containing the directory
// provided with -C
func loadRepository(cfg *globalFlags) (*mygit.Repository, error) {
	opts := env.NewOptions(cfg.env)
	repoPath := cfg.C.String()
	// when the .mygit directory is moved with MYGIT_DIR, -C is the root
	// of the working tree
	if opts.DotGitPath == "" {
		root, err := pathutil.WorkingTreeFromPath(cfg.fs, repoPath, gitpath.DotGitPath)
		if err != nil {
			return nil, err
		}
		repoPath = root
	}
	return mygit.OpenRepositoryWithOptions(repoPath, repositoryOptions(cfg))
}

// resolveOid returns the digest matching name. name is either a
// 40-characters digest, or HEAD
func resolveOid(r *mygit.Repository, name string) (ginternals.Oid, error) {
	if strings.EqualFold(name, ginternals.Head) {
		oid, err := r.Head()
		if err != nil {
			return ginternals.NullOid, err
		}
		if oid.IsZero() {
			return ginternals.NullOid, errNoCommits
		}
		return oid, nil
	}

	oid, err := ginternals.NewOidFromStr(name)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("not a valid object name %s: %w", name, err)
	}
	return oid, nil
}

func fprintln(out io.Writer, a ...interface{}) {
	fmt.Fprintln(out, a...) //nolint:errcheck // there's nothing we can do if we can't print
}
