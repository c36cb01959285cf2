package main

import (
	"fmt"
	"io"

	"github.com/nj301365/version-control-system-mygit"
	"github.com/spf13/cobra"
)

type checkoutParams struct {
	commitName string
	preserve   []string
}

func newCheckoutCmd(cfg *globalFlags) *cobra.Command {
	params := checkoutParams{}

	cmd := &cobra.Command{
		Use:   "checkout <commit>",
		Short: "Replace the working tree by the content of a commit",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringSliceVar(&params.preserve, "preserve", []string{}, "Top-level names of the working tree that should not be touched.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		params.commitName = args[0]
		// The binary may live in the working tree, we don't want
		// to delete it
		params.preserve = append(params.preserve, binaryName())
		return checkoutCmd(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, params)
	}
	return cmd
}

func checkoutCmd(out, errOut io.Writer, cfg *globalFlags, p checkoutParams) error {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	oid, err := resolveOid(r, p.commitName)
	if err != nil {
		return err
	}
	report, err := r.Checkout(oid, mygit.CheckoutOptions{
		Preserve: p.preserve,
	})
	if err != nil {
		return err
	}
	for _, w := range report.Warnings() {
		fprintln(errOut, fmt.Sprintf("warning: %s: %s", w.Path, w.Err.Error()))
	}
	fprintln(out, fmt.Sprintf("HEAD is now at %s", oid.String()))
	return nil
}
