package driver

import (
	"io"
	"runtime"

	"ember/internal/pipeline"
)

// Options configures one driver invocation over one or more files.
type Options struct {
	// MaxDiagnostics caps every per-file Bag.
	MaxDiagnostics int
	// Jobs limits parallel per-file pipelines; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache, if set, stores validated tokens keyed by content hash.
	Cache *DiskCache
	// Progress receives per-file stage events.
	Progress pipeline.ProgressSink
	// Out receives evaluated values of every file in argument order.
	Out io.Writer
	// Timings adds an OBS6001 diagnostic with per-phase durations.
	Timings bool
	// Raw keeps the raw scan (whitespace included) and skips validation.
	Raw bool
	// BaseDir is what relative paths in diagnostics are shown against.
	// Empty means the working directory.
	BaseDir string
}

func (o Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}
