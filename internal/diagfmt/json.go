package diagfmt

import (
	"encoding/json"
	"io"

	"ember/internal/diag"
	"ember/internal/source"
)

// PositionJSON is a 1-based line and byte column.
type PositionJSON struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// LocationJSON is a span as byte offsets, plus line/col when requested.
type LocationJSON struct {
	File  string        `json:"file"`
	Bytes [2]uint32     `json:"bytes"`
	Len   uint32        `json:"len"`
	Start *PositionJSON `json:"start,omitempty"`
	End   *PositionJSON `json:"end,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON. Omitted counts the
// diagnostics cut off by JSONOpts.Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Omitted     int              `json:"omitted,omitempty"`
}

type locator struct {
	fs        *source.FileSet
	mode      PathMode
	positions bool
}

func (l locator) locate(sp source.Span) LocationJSON {
	loc := LocationJSON{
		File:  displayPath(l.fs, sp.File, l.mode),
		Bytes: [2]uint32{sp.Start, sp.End},
		Len:   sp.Len(),
	}
	if l.positions {
		start, end := l.fs.Resolve(sp)
		loc.Start = &PositionJSON{Line: start.Line, Col: start.Col}
		loc.End = &PositionJSON{Line: end.Line, Col: end.Col}
	}
	return loc
}

// BuildDiagnosticsOutput converts bag without encoding it. Timing
// diagnostics always keep their notes, since the payload lives there.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	if bag == nil {
		return out
	}
	loc := locator{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			out.Errors++
		}
		if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
			out.Omitted++
			continue
		}
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc.locate(d.Primary),
		}
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: loc.locate(n.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
