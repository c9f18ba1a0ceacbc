package main

import (
	"fmt"
	"io"

	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/source"
)

// printDiagnostics renders bag in the configured format. It returns
// errReported when the bag holds errors.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s *settings) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Dedup()
	bag.Sort()
	switch s.diagFormat {
	case "json":
		if err := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			Max:              s.maxDiagnostics,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	case "short":
		if _, err := io.WriteString(w, diag.FormatShortDiagnostics(bag.Items(), fs, s.timings)+"\n"); err != nil {
			return err
		}
	default:
		diagfmt.Pretty(w, bag, fs, s.prettyOpts())
		errorSummary(w, bag, s.quiet)
	}
	if bag.HasErrors() {
		return errReported
	}
	return nil
}

// errorSummary prints the error count; quiet suppresses it.
func errorSummary(w io.Writer, bag *diag.Bag, quiet bool) {
	if quiet || bag == nil || !bag.HasErrors() {
		return
	}
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	suffix := "s"
	if n == 1 {
		suffix = ""
	}
	fmt.Fprintf(w, "%d error%s\n", n, suffix)
}
