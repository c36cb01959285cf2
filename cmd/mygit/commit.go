package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/nj301365/version-control-system-mygit"
	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/spf13/cobra"
)

type commitParams struct {
	message string
}

func newCommitCmd(cfg *globalFlags) *cobra.Command {
	params := commitParams{}

	cmd := &cobra.Command{
		Use:   "commit [-m <msg>]",
		Short: "Record the staged changes to the repository",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&params.message, "message", "m", mygit.DefaultCommitMessage, "Use the given <msg> as the commit message.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commitCmd(cmd.OutOrStdout(), cfg, params)
	}
	return cmd
}

func commitCmd(out io.Writer, cfg *globalFlags, p commitParams) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	oid, err := r.Commit(p.message)
	if err != nil {
		if errors.Is(err, ginternals.ErrNothingToCommit) {
			return errors.New("nothing to commit, use \"mygit add\" to stage files")
		}
		return err
	}
	fprintln(out, fmt.Sprintf("[%s] %s", oid.String(), p.message))
	return nil
}
