package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newAddCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <pathspec>...",
		Short: "Add file contents to the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return addCmd(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, args)
		},
	}
	return cmd
}

func addCmd(out, errOut io.Writer, cfg *globalFlags, paths []string) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	for i, p := range paths {
		if !filepath.IsAbs(p) {
			paths[i] = filepath.Join(cfg.C.String(), p)
		}
	}

	report, err := r.Stage(paths...)
	if err != nil {
		return err
	}
	for _, e := range report.Staged {
		fprintln(out, fmt.Sprintf("add '%s'", e.Path))
	}
	for _, f := range report.Failed {
		fprintln(errOut, fmt.Sprintf("warning: could not add '%s': %s", f.Path, f.Err.Error()))
	}
	return nil
}
