package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the commit logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return logCmd(cmd.OutOrStdout(), cfg)
		},
	}
	return cmd
}

// logCmd prints the history log, oldest commit first
func logCmd(out io.Writer, cfg *globalFlags) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	records, err := r.Log()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fprintln(out, errNoCommits.Error())
		return nil
	}
	for _, rec := range records {
		if _, err = out.Write(rec.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
