package main

import (
	"errors"
	"io"

	"github.com/nj301365/version-control-system-mygit"
	"github.com/spf13/cobra"
)

type catFileParams struct {
	objectName  string
	typeOnly    bool
	sizeOnly    bool
	prettyPrint bool
}

func newCatFileCmd(cfg *globalFlags) *cobra.Command {
	params := catFileParams{}

	cmd := &cobra.Command{
		Use:   "cat-file (-t | -s | -p) <object>",
		Short: "Provide content, type, or size of a repository object",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVarP(&params.typeOnly, "type", "t", false, "Instead of the content, show the object type identified by <object>.")
	cmd.Flags().BoolVarP(&params.sizeOnly, "size", "s", false, "Instead of the content, show the object size identified by <object>.")
	cmd.Flags().BoolVarP(&params.prettyPrint, "pretty", "p", false, "Print the raw content of <object>.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		params.objectName = args[0]
		return catFileCmd(cmd.OutOrStdout(), cfg, params)
	}
	return cmd
}

func catFileCmd(out io.Writer, cfg *globalFlags, p catFileParams) error {
	// Validate the flags
	flagsSet := 0
	mode := mygit.CatFileContent
	if p.typeOnly {
		flagsSet++
		mode = mygit.CatFileKind
	}
	if p.sizeOnly {
		flagsSet++
		mode = mygit.CatFileSize
	}
	if p.prettyPrint {
		flagsSet++
	}
	if flagsSet == 0 {
		return errors.New("one of -t, -s, or -p is required")
	}
	if flagsSet > 1 {
		return errors.New("only one of -t, -s, or -p can be used at a time")
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	oid, err := resolveOid(r, p.objectName)
	if err != nil {
		return err
	}
	data, err := r.CatFile(oid, mode)
	if err != nil {
		return err
	}

	if mode == mygit.CatFileContent {
		// the content is printed verbatim
		_, err = out.Write(data)
		return err
	}
	fprintln(out, string(data))
	return nil
}
