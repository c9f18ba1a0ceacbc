package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/trace"
)

// setupTracing builds the tracer described by the trace settings and puts it
// into the command context. The returned cleanup flushes and closes it; in
// ring mode it also dumps the retained tail to the trace output.
func setupTracing(cmd *cobra.Command, s *settings) (func(), error) {
	level, err := trace.ParseLevel(s.traceLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	switch {
	case level == trace.LevelOff && s.traceOutput == "":
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	case level == trace.LevelOff:
		// --trace без уровня включает фазы
		level = trace.LevelPhase
	}

	mode, err := trace.ParseMode(s.traceMode)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(s.traceFormat)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: s.traceOutput,
		RingSize:   s.traceRing,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	// корневой спан команды: driver вешает на него свои спаны
	root := trace.Begin(tracer, trace.ScopeDriver, "ember "+cmd.Name(), 0)
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(trace.WithSpan(ctx, root))

	stderr := cmd.ErrOrStderr()
	report := func(what string, err error) {
		if err != nil {
			fmt.Fprintf(stderr, "trace: %s error: %v\n", what, err)
		}
	}
	return func() {
		root.End("")
		if mode == trace.ModeRing {
			report("dump", dumpRing(tracer, s.traceOutput, format, stderr))
		}
		report("flush", tracer.Flush())
		report("close", tracer.Close())
	}, nil
}

// dumpRing writes the ring contents to path, or to fallback for "" and "-".
// FormatAuto follows the path extension.
func dumpRing(t trace.Tracer, path string, format trace.Format, fallback io.Writer) error {
	var ring *trace.RingTracer
	switch rt := t.(type) {
	case *trace.RingTracer:
		ring = rt
	case *trace.MultiTracer:
		ring = rt.Ring()
	}
	if ring == nil {
		return nil
	}
	if format == trace.FormatAuto {
		format = trace.FormatForPath(path)
	}
	if path == "" || path == "-" {
		return ring.Dump(fallback, format)
	}
	f, err := os.Create(path) // #nosec G304 -- path comes from --trace
	if err != nil {
		return err
	}
	dumpErr := ring.Dump(f, format)
	if err := f.Close(); dumpErr == nil {
		dumpErr = err
	}
	return dumpErr
}
