package env

import (
	"path/filepath"

	"github.com/nj301365/version-control-system-mygit/internal/gitpath"
)

// Options represents the options that can be set using the env
type Options struct {
	// DotGitPath represents the path to the .mygit directory
	// Defaults to .mygit, at the root of the working tree
	// Maps to MYGIT_DIR
	DotGitPath string
	// AuthorName overrides the name used to sign commits
	// Maps to MYGIT_AUTHOR_NAME
	AuthorName string
	// AuthorEmail overrides the email used to sign commits
	// Maps to MYGIT_AUTHOR_EMAIL
	AuthorEmail string
}

// NewOptions returns a new Options that fetches the data from the
// env
//
// Usage: NewOptions(NewFromOs())
func NewOptions(e *Env) *Options {
	if e == nil {
		return &Options{}
	}
	return &Options{
		DotGitPath:  e.Get("MYGIT_DIR"),
		AuthorName:  e.Get("MYGIT_AUTHOR_NAME"),
		AuthorEmail: e.Get("MYGIT_AUTHOR_EMAIL"),
	}
}

// BuildDotGitPath returns the absolute path to the .mygit directory
// of the working tree located at workingTreePath
func (opts *Options) BuildDotGitPath(workingTreePath string) string {
	if opts.DotGitPath == "" {
		return filepath.Join(workingTreePath, gitpath.DotGitPath)
	}
	if filepath.IsAbs(opts.DotGitPath) {
		return opts.DotGitPath
	}
	return filepath.Join(workingTreePath, opts.DotGitPath)
}
