package main

import (
	"fmt"
	"io"

	"github.com/nj301365/version-control-system-mygit"
	"github.com/spf13/cobra"
)

func newInitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty mygit repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCmd(cmd.OutOrStdout(), cfg)
		},
	}
	return cmd
}

func initCmd(out io.Writer, cfg *globalFlags) error {
	r, err := mygit.InitRepositoryWithOptions(cfg.C.String(), repositoryOptions(cfg))
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	fprintln(out, fmt.Sprintf("Initialized empty mygit repository in %s", r.DotGitPath()))
	return nil
}
