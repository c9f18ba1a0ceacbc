package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ember/internal/version"
)

// errReported means diagnostics were already printed; exit 1 without a message.
var errReported = errors.New("diagnostics reported")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ember",
		Short:         "Ember language front end",
		Long:          `Ember tokenizes, parses and evaluates .em programs`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("diagnostics-format", "pretty", "diagnostics format (pretty|json|short)")
	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	pf.String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
	pf.String("ui", "auto", "progress UI for multi-file runs (auto|on|off)")
	pf.Int("jobs", 0, "max parallel workers (0=auto)")
	pf.Bool("cache", false, "cache validated tokens on disk")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd, s)
		if err != nil {
			stopProfiling()
			return err
		}
		s.cleanup = func() {
			cleanup()
			stopProfiling()
		}
		cmd.SetContext(withSettings(cmd.Context(), s))
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, _ []string) {
		if s := settingsFrom(cmd.Context()); s != nil && s.cleanup != nil {
			s.cleanup()
		}
	}
	return rootCmd
}

// main собирает дерево команд и выполняет его; любая ошибка даёт код 1.
func main() {
	rootCmd := newRootCmd()
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}
	// PersistentPostRun не вызывается при ошибке RunE
	if s := settingsFrom(cmd.Context()); s != nil && s.cleanup != nil {
		s.cleanup()
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}
