package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.em",
		Short: "Tokenize an ember source file",
		Long:  `Tokenize breaks an ember source file into validated tokens, or the raw scan with --raw`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().Bool("raw", false, "print the raw scan, whitespace included, without validation")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd.Context())

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return fmt.Errorf("failed to get raw flag: %w", err)
	}

	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	opts.Raw = raw

	res, err := driver.TokenizeFiles(cmd.Context(), args, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	fr := res.Files[0]

	// Выводим диагностику в stderr, если есть
	if err := printDiagnostics(cmd.ErrOrStderr(), fr.Bag, res.FileSet, s); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, fr.Tokens, res.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, fr.Tokens)
	case "msgpack":
		err = diagfmt.FormatTokensMsgpack(out, fr.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), res.Timings, s)
	return nil
}
