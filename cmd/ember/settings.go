package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
	"ember/internal/project"
)

// settings: итоговая конфигурация: флаги поверх ember.toml.
type settings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	jobs           int
	cache          bool
	ui             uiMode

	traceOutput string
	traceLevel  string
	traceMode   string
	traceRing   int
	traceFormat string
	pathMode    diagfmt.PathMode

	manifest *project.Manifest
	cleanup  func()
}

type settingsKey struct{}

func withSettings(ctx context.Context, s *settings) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(ctx context.Context) *settings {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(settingsKey{}).(*settings)
	return s
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	s := &settings{}

	manifest, _, err := project.LoadManifest(".")
	if err != nil {
		return nil, err
	}
	s.manifest = manifest

	// значение флага, если он задан явно, иначе из манифеста, иначе дефолт
	pick := func(name, fromManifest string) (string, error) {
		v, err := flags.GetString(name)
		if err != nil {
			return "", fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		if !flags.Changed(name) && fromManifest != "" {
			return fromManifest, nil
		}
		return v, nil
	}

	var cfg project.Config
	if manifest != nil {
		cfg = manifest.Config
	}

	colorFlag, err := pick("color", cfg.Diagnostics.Color)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if s.diagFormat, err = pick("diagnostics-format", cfg.Diagnostics.Format); err != nil {
		return nil, err
	}
	switch s.diagFormat {
	case "pretty", "json", "short":
	default:
		return nil, fmt.Errorf("invalid --diagnostics-format value %q (expected pretty|json|short)", s.diagFormat)
	}

	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && cfg.Diagnostics.Max > 0 {
		s.maxDiagnostics = cfg.Diagnostics.Max
	}

	if s.traceOutput, err = pick("trace", cfg.Trace.Output); err != nil {
		return nil, err
	}
	if s.traceLevel, err = pick("trace-level", cfg.Trace.Level); err != nil {
		return nil, err
	}
	if s.traceMode, err = pick("trace-mode", cfg.Trace.Mode); err != nil {
		return nil, err
	}
	if s.traceRing, err = flags.GetInt("trace-ring-size"); err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	if s.traceFormat, err = flags.GetString("trace-format"); err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	s.pathMode = diagfmt.ParsePathMode(pathMode)

	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return nil, err
	}

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.cache, err = flags.GetBool("cache"); err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	return s, nil
}

// driverOptions собирает driver.Options из настроек.
func (s *settings) driverOptions() (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Jobs:           s.jobs,
		Timings:        s.timings,
	}
	if s.manifest != nil {
		opts.BaseDir = s.manifest.Root
	}
	if s.cache {
		cache, err := driver.OpenDiskCache("ember")
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   2,
		PathMode:  s.pathMode,
		ShowNotes: s.timings,
	}
}
