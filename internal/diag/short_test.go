package diag

import (
	"testing"

	"ember/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.em", []byte("a\nb;\n"), 0)
	otherFile := fs.Add("/workspace/lib/helper.em", []byte("x\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     SynExpectSemicolon,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: otherFile, Start: 0, End: 1}, Msg: "other file"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     SemaUnknownNode,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 3, End: 4},
		},
	}

	expected := "note SYN2001 lib/helper.em:1:1 other file\n" +
		"error SYN2001 testdata/golden/sample.em:1:1 first line second\n" +
		"note SYN2001 testdata/golden/sample.em:2:1 note line\n" +
		"warning SEM3001 testdata/golden/sample.em:2:2 another"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsWithoutNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<eval>", []byte("1 2;"))

	diags := []*Diagnostic{
		NewError(SynExpectSemicolon, source.Span{File: id, Start: 2, End: 3}, "expected semicolon, found `2`").
			WithNote(source.Span{File: id, Start: 0, End: 1}, "after this expression"),
	}

	want := "error SYN2001 <eval>:1:3 expected semicolon, found `2`"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatShortDiagnosticsSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []*Diagnostic{
		NewError(LexUnknownChar, source.Span{File: 42, Start: 0, End: 1}, "unknown character"),
	}
	if got := FormatShortDiagnostics(diags, fs, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := FormatShortDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("expected empty output for nil slice, got %q", got)
	}
}

func TestSeverityNames(t *testing.T) {
	tests := []struct {
		sev          Severity
		upper, lower string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(7), "UNKNOWN", "unknown"},
	}
	for _, tt := range tests {
		if tt.sev.String() != tt.upper || tt.sev.Label() != tt.lower {
			t.Errorf("%d: got %q/%q", tt.sev, tt.sev.String(), tt.sev.Label())
		}
	}
}

func TestFormatShortDiagnosticsFoldsCR(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.em", []byte("1"))
	d := NewError(SynUnexpectedEOF, source.Span{File: id, Start: 1, End: 1}, "a\r\nb\rc\n")
	want := "error SYN2002 x.em:1:2 a b c"
	if got := FormatShortDiagnostics([]*Diagnostic{d}, fs, false); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
