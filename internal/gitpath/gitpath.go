// Package gitpath contains consts and methods to work with path inside
// the .mygit directory
package gitpath

// .mygit/ Files and directories
// Paths are in UNIX format, callers are in charge of converting them
// using filepath.FromSlash() when needed
const (
	DotGitPath    = ".mygit"
	ConfigPath    = "config"
	HEADPath      = "HEAD"
	IndexPath     = "index"
	ObjectsPath   = "objects"
	RefsPath      = "refs"
	RefsHeadsPath = RefsPath + "/heads"
	LogsPath      = "logs"
	LogsHEADPath  = LogsPath + "/HEAD"
)
