package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nj301365/version-control-system-mygit/env"
	"github.com/nj301365/version-control-system-mygit/internal/pathutil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type globalFlags struct {
	env *env.Env
	fs  afero.Fs
	// logger is set right before a command runs
	logger *slog.Logger

	C       pflag.Value // simpler version of git's -C: https://git-scm.com/docs/git#Documentation/git.txt--Cltpathgt
	verbose bool
}

func newRootCmd(cwd string, e *env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mygit",
		Short:         "a minimal content-addressable version control system",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	fs := afero.NewOsFs()
	cfg := &globalFlags{
		env: e,
		fs:  fs,
		C:   pathutil.NewDirFlag(fs, cwd),
	}
	cmd.PersistentFlags().VarP(cfg.C, "C", "C", "Run as if mygit was started in the provided path instead of the current working directory.")
	cmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "Print debug information to stderr.")

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if cfg.verbose {
			level = slog.LevelDebug
		}
		cfg.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	}

	// porcelain
	cmd.AddCommand(newInitCmd(cfg))
	cmd.AddCommand(newAddCmd(cfg))
	cmd.AddCommand(newCommitCmd(cfg))
	cmd.AddCommand(newLogCmd(cfg))
	cmd.AddCommand(newCheckoutCmd(cfg))

	// plumbing
	cmd.AddCommand(newHashObjectCmd(cfg))
	cmd.AddCommand(newCatFileCmd(cfg))
	cmd.AddCommand(newWriteTreeCmd(cfg))
	cmd.AddCommand(newLsTreeCmd(cfg))

	return cmd
}

// binaryName returns the name of the running program
func binaryName() string {
	return filepath.Base(os.Args[0])
}
