package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/driver"
)

const noManifestMessage = "no files given and no ember.toml found\nplease specify a file explicitly, e.g.:\n  ember run path/to/main.em"

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [file.em|dir ...]",
		Short: "Evaluate ember programs and print each value",
		Long: `Run lexes, parses, analyzes and evaluates every given file and prints the
value of each top-level expression. Directories expand to their *.em files.
With no arguments the [run].main entry of ember.toml is used.`,
		RunE: runExecution,
	}
	cmd.Flags().StringP("eval", "e", "", "evaluate source text instead of files")
	return cmd
}

func runExecution(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd.Context())

	expr, err := cmd.Flags().GetString("eval")
	if err != nil {
		return fmt.Errorf("failed to get eval flag: %w", err)
	}

	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	opts.Out = cmd.OutOrStdout()

	var res *driver.Result
	switch {
	case cmd.Flags().Changed("eval"):
		if len(args) > 0 {
			return fmt.Errorf("--eval cannot be combined with files")
		}
		res, err = driver.RunSource(cmd.Context(), "<eval>", expr, opts)
	default:
		files, ferr := runTargets(s, args)
		if ferr != nil {
			return ferr
		}
		if shouldUseTUI(s.ui, len(files)) && !s.quiet {
			res, err = runFilesWithUI(cmd.Context(), "ember run", files, opts, cmd.ErrOrStderr())
		} else {
			res, err = driver.RunFiles(cmd.Context(), files, opts)
		}
	}
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if err := printDiagnostics(cmd.ErrOrStderr(), res.Bag(), res.FileSet, s); err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), res.Timings, s)
	return nil
}

// runTargets expands args, falling back to [run].main of ember.toml.
func runTargets(s *settings, args []string) ([]string, error) {
	if len(args) > 0 {
		return driver.ExpandPaths(args)
	}
	if s.manifest == nil {
		return nil, fmt.Errorf("%s", noManifestMessage)
	}
	mainPath, err := s.manifest.ResolveMain()
	if err != nil {
		return nil, err
	}
	return []string{mainPath}, nil
}
