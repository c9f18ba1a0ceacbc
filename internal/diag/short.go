package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"ember/internal/source"
)

type shortLine struct {
	label   string
	code    string
	path    string
	line    uint32
	col     uint32
	message string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.line, l.col, l.message)
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.code, b.code),
	)
}

// FormatShortDiagnostics renders one line per diagnostic, and per note when
// includeNotes is set, ordered by path and position:
//
//	error SYN2002 main.em:1:4 unexpected end of input, expected ';'
//
// Lines are joined without a trailing newline. Diagnostics in files unknown
// to fs are skipped. Used by `--diagnostics-format short` and golden tests.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []shortLine
	add := func(label string, code Code, sp source.Span, msg string) {
		f := fs.Get(sp.File)
		if f == nil {
			return
		}
		start, _ := fs.Resolve(sp)
		lines = append(lines, shortLine{
			label:   label,
			code:    code.ID(),
			path:    shortPath(f, fs),
			line:    start.Line,
			col:     start.Col,
			message: oneLine(msg),
		})
	}
	for _, d := range diags {
		if d == nil {
			continue
		}
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(lines, compareShort)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

// shortPath keeps virtual names as given and makes disk paths relative to the
// FileSet base, without a leading "./".
func shortPath(f *source.File, fs *source.FileSet) string {
	p := f.Path
	if f.Flags&source.FileVirtual == 0 {
		p = f.FormatPath("relative", fs.BaseDir())
	}
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// oneLine folds every line break into a space.
func oneLine(msg string) string {
	msg = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}
