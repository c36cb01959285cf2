package main

import (
	"io"

	"github.com/spf13/cobra"
)

type lsTreeParams struct {
	treeName string
	nameOnly bool
}

func newLsTreeCmd(cfg *globalFlags) *cobra.Command {
	params := lsTreeParams{}

	cmd := &cobra.Command{
		Use:   "ls-tree [--name-only] <tree>",
		Short: "List the content of a tree object",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&params.nameOnly, "name-only", false, "List only filenames, one per line.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		params.treeName = args[0]
		return lsTreeCmd(cmd.OutOrStdout(), cfg, params)
	}
	return cmd
}

func lsTreeCmd(out io.Writer, cfg *globalFlags, p lsTreeParams) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	oid, err := resolveOid(r, p.treeName)
	if err != nil {
		return err
	}
	rows, err := r.ListTree(oid, p.nameOnly)
	if err != nil {
		return err
	}
	for _, row := range rows {
		fprintln(out, row)
	}
	return nil
}
