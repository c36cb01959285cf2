package backend

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/index"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/ini.v1"
)

// Config represents the content of the .mygit/config file
type Config struct {
	FormatVersion int
	FileMode      bool

	UserName  string
	UserEmail string

	// Preserve contains the names of the top-level entries of the
	// working tree that a checkout must never delete
	Preserve []string
}

// Config loads the repository config.
// The default values are returned for every missing key, or if the
// file doesn't exist
func (b *Backend) Config() (*Config, error) {
	p := ginternals.ConfigFilePath(b.root)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, ginternals.NewStorageIOError("read", p, err)
	}
	if data == nil {
		data = []byte{}
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return nil, xerrors.Errorf("could not parse %s: %w", p, err)
	}

	core := cfg.Section(CfgCore)
	user := cfg.Section(CfgUser)
	checkout := cfg.Section(CfgCheckout)

	preserve := []string{}
	for _, name := range checkout.Key(CfgCheckoutPreserve).Strings(",") {
		if name = strings.TrimSpace(name); name != "" {
			preserve = append(preserve, name)
		}
	}

	return &Config{
		FormatVersion: core.Key(CfgCoreFormatVersion).MustInt(0),
		FileMode:      core.Key(CfgCoreFileMode).MustBool(true),
		UserName:      user.Key(CfgUserName).MustString(DefaultUserName),
		UserEmail:     user.Key(CfgUserEmail).MustString(DefaultUserEmail),
		Preserve:      preserve,
	}, nil
}

// Init initializes a repository.
// ErrRefExists is returned if the repository already has a HEAD.
// This method cannot be called concurrently with other methods
func (b *Backend) Init(branchName string) error {
	// Create the directories
	dirs := []string{
		b.Path(),
		ginternals.ObjectsPath(b.root),
		ginternals.LocalBranchesPath(b.root),
		ginternals.LogsPath(b.root),
	}
	for _, d := range dirs {
		if err := b.fs.MkdirAll(d, 0o755); err != nil {
			return ginternals.NewStorageIOError("create directory", d, err)
		}
	}

	ref := ginternals.NewHeadReference(ginternals.LocalBranchFullName(branchName))
	if err := b.WriteReferenceSafe(ref); err != nil {
		return xerrors.Errorf("could not write HEAD: %w", err)
	}

	if err := b.setDefaultCfg(); err != nil {
		return xerrors.Errorf("could not set the default config: %w", err)
	}

	if err := b.WriteIndex(index.New()); err != nil {
		return xerrors.Errorf("could not create the index: %w", err)
	}
	return nil
}

// setDefaultCfg set and persists the default configuration for
// the repository
func (b *Backend) setDefaultCfg() error {
	cfg := ini.Empty()

	// Core
	core, err := cfg.NewSection(CfgCore)
	if err != nil {
		return xerrors.Errorf("could not create core section: %w", err)
	}
	coreCfg := []struct{ key, value string }{
		{CfgCoreFormatVersion, "0"},
		{CfgCoreFileMode, "true"},
	}
	for _, kv := range coreCfg {
		if _, err := core.NewKey(kv.key, kv.value); err != nil {
			return xerrors.Errorf("could not set %s: %w", kv.key, err)
		}
	}

	buf := new(bytes.Buffer)
	if _, err = cfg.WriteTo(buf); err != nil {
		return xerrors.Errorf("could not serialize the config: %w", err)
	}
	return b.writeFileAtomic(ginternals.ConfigFilePath(b.root), buf.Bytes(), 0o644)
}
