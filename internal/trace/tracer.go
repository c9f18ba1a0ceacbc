package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Tracer receives events. Implementations must be safe for concurrent Emit,
// since every file of a run is processed on its own goroutine.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything. Stages that were given no tracer use it.
var Nop Tracer = nopTracer{}

// StorageMode selects where New sends events.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory for Dump
	ModeBoth
)

var modeNames = map[string]StorageMode{
	"stream": ModeStream,
	"ring":   ModeRing,
	"both":   ModeBoth,
}

func (m StorageMode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// ParseMode parses stream, ring or both.
func ParseMode(s string) (StorageMode, error) {
	if m, ok := modeNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks NDJSON for *.ndjson and *.json paths
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "-" or "" is stderr
	RingSize   int       // default 4096
	Session    string    // random UUID when empty
}

const defaultRingSize = 4096

// New builds the tracer described by cfg. LevelOff yields Nop whatever the
// other fields say.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	if cfg.Format == FormatAuto {
		cfg.Format = FormatForPath(cfg.OutputPath)
	}

	var tracers []Tracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream := NewStreamTracer(w, cfg.Level, cfg.Format)
		if cfg.Session != "" {
			stream = NewStreamTracerSession(w, cfg.Level, cfg.Format, cfg.Session)
		}
		tracers = append(tracers, stream)
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		tracers = append(tracers, NewRingTracer(cfg.RingSize, cfg.Level))
	}
	switch len(tracers) {
	case 0:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	case 1:
		return tracers[0], nil
	default:
		return NewMultiTracer(cfg.Level, tracers...), nil
	}
}

// FormatForPath picks NDJSON for *.ndjson and *.json paths and text otherwise.
func FormatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".ndjson", ".json":
		return FormatNDJSON
	default:
		return FormatText
	}
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
