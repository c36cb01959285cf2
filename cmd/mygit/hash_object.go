package main

import (
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
)

type hashObjectParams struct {
	path  string
	write bool
}

func newHashObjectCmd(cfg *globalFlags) *cobra.Command {
	params := hashObjectParams{}

	cmd := &cobra.Command{
		Use:   "hash-object [-w] <file>",
		Short: "Compute the digest of a file and optionally creates a blob from it",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVarP(&params.write, "write", "w", false, "Actually write the object into the object database.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		params.path = args[0]
		return hashObjectCmd(cmd.OutOrStdout(), cfg, params)
	}
	return cmd
}

func hashObjectCmd(out io.Writer, cfg *globalFlags, p hashObjectParams) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	// the path is relative to where the command is run, not to the
	// root of the repo
	path := p.path
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.C.String(), path)
	}

	oid, err := r.HashObject(path, p.write)
	if err != nil {
		return err
	}
	fprintln(out, oid.String())
	return nil
}
