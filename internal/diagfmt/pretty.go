package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ember/internal/diag"
	"ember/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note *color.Color
	caret, gutter, bold   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		gutter: color.New(color.FgBlue),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.caret, p.gutter, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   3 | 1 2;
//	     |   ^
//
// затем Notes в том же формате. Ширина подчёркивания считается в колонках
// терминала, так что широкие руны (CJK, эмодзи) не сбивают каретку.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	start, _ := fs.Resolve(d.Primary)
	path := displayPath(fs, d.Primary.File, opts.PathMode)

	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.bold.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.severity(d.Severity).Sprint(d.Code.ID()),
		d.Message,
	)
	writeSnippet(w, fs, d.Primary, opts.Context, pal, pal.caret)

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nstart, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "%s %s: %s\n",
			pal.note.Sprint("note:"),
			pal.bold.Sprintf("%s:%d:%d", displayPath(fs, note.Span.File, opts.PathMode), nstart.Line, nstart.Col),
			note.Msg,
		)
		writeSnippet(w, fs, note.Span, 0, pal, pal.note)
	}
}

// writeSnippet печатает строку span'а (и context строк перед ней) с кареткой.
// Многострочные span'ы подчёркиваются до конца первой строки.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int8, pal palette, caretColor *color.Color) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)

	first := start.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n",
			pal.gutter.Sprintf("%*d |", gutterWidth, ln),
			expandTabs(f.GetLine(ln)),
		)
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(max(int(end.Col)-1, col), len(line))
	}

	pad := displayWidth(line[:col])
	width := max(displayWidth(line[col:endCol]), 1)
	fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		caretColor.Sprint("^"+strings.Repeat("~", width-1)),
	)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}
