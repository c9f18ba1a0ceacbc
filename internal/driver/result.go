package driver

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/observ"
	"ember/internal/pipeline"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/vm"
)

// FileResult holds everything one per-file pipeline produced. Fields past
// the failing stage stay zero.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Tokens   []token.Token
	CacheHit bool
	Builder  *ast.Builder
	Program  ast.ProgramID
	Sema     *sema.Result
	Values   []vm.Value
	// Output is what evaluation printed, one value per line.
	Output []byte
	Bag    *diag.Bag
	Timing *observ.Report
	// Err is the structured failure of the file, if any.
	Err error
	// Failed is the stage Err came from.
	Failed pipeline.Stage
}

// Result aggregates a multi-file run. Files keep the argument order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings pipeline.Timings
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Err != nil || (r.Files[i].Bag != nil && r.Files[i].Bag.HasErrors()) {
			return true
		}
	}
	return false
}

// Bag merges every per-file bag into one sorted bag.
func (r *Result) Bag() *diag.Bag {
	total := 0
	for i := range r.Files {
		if r.Files[i].Bag != nil {
			total += r.Files[i].Bag.Len()
		}
	}
	out := diag.NewBag(total)
	for i := range r.Files {
		if r.Files[i].Bag != nil {
			out.Merge(r.Files[i].Bag)
		}
	}
	out.Sort()
	return out
}

