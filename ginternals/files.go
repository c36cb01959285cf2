package ginternals

import (
	"path"
	"path/filepath"

	"github.com/nj301365/version-control-system-mygit/internal/gitpath"
)

// LocalBranchFullName returns the full name of branch
// ex. for `master` returns `refs/heads/master`
func LocalBranchFullName(shortName string) string {
	return path.Join(gitpath.RefsHeadsPath, shortName)
}

// RefPath returns the path of a reference from the UNIX name of the
// reference.
// Ex.: On windows refs/heads/master would return refs\heads\master
func RefPath(dotGitPath, name string) string {
	return filepath.Join(dotGitPath, filepath.FromSlash(name))
}

// LocalBranchesPath returns the path to the directory containing the
// local branches
func LocalBranchesPath(dotGitPath string) string {
	return filepath.Join(dotGitPath, filepath.FromSlash(gitpath.RefsHeadsPath))
}

// ObjectsPath returns the path to the directory that contains
// the objects
func ObjectsPath(dotGitPath string) string {
	return filepath.Join(dotGitPath, gitpath.ObjectsPath)
}

// LooseObjectPath returns the path of a loose object.
// Path is .mygit/objects/first_2_chars_of_sha/remaining_chars_of_sha
//
// Ex. path of fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3 is:
// .mygit/objects/fc/fe68a0e44e04bd7fd564fc0b75f1ae457e18b3
func LooseObjectPath(dotGitPath, sha string) string {
	return filepath.Join(ObjectsPath(dotGitPath), sha[:2], sha[2:])
}

// ConfigFilePath returns the path to the repository config file
func ConfigFilePath(dotGitPath string) string {
	return filepath.Join(dotGitPath, gitpath.ConfigPath)
}

// IndexFilePath returns the path to the staging index
func IndexFilePath(dotGitPath string) string {
	return filepath.Join(dotGitPath, gitpath.IndexPath)
}

// LogsPath returns the path to the directory containing the history
// logs
func LogsPath(dotGitPath string) string {
	return filepath.Join(dotGitPath, gitpath.LogsPath)
}

// HistoryFilePath returns the path of the append-only history of HEAD
func HistoryFilePath(dotGitPath string) string {
	return filepath.Join(dotGitPath, filepath.FromSlash(gitpath.LogsHEADPath))
}
