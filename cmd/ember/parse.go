package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.em",
		Short: "Parse an ember source file and output its AST",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json|yaml)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd.Context())

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	res, err := driver.ParseFiles(cmd.Context(), args, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	fr := res.Files[0]

	if err := printDiagnostics(cmd.ErrOrStderr(), fr.Bag, res.FileSet, s); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatASTJSON(out, fr.Builder, fr.Program)
	case "yaml":
		err = diagfmt.FormatASTYAML(out, fr.Builder, fr.Program)
	default:
		err = diagfmt.FormatASTTree(out, fr.Builder, fr.Program, res.FileSet)
	}
	if err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), res.Timings, s)
	return nil
}
