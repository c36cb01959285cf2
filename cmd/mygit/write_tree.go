package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newWriteTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write-tree",
		Short: "Create a tree object from the working tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTreeCmd(cmd.OutOrStdout(), cfg)
		},
	}
	return cmd
}

func writeTreeCmd(out io.Writer, cfg *globalFlags) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	oid, err := r.WriteTree()
	if err != nil {
		return err
	}
	fprintln(out, oid.String())
	return nil
}
