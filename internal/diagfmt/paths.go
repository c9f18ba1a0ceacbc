package diagfmt

import (
	"fmt"

	"ember/internal/source"
)

// displayPath renders the path of file id according to mode.
func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return fmt.Sprintf("<file %d>", id)
	}
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && fs.Get(span.File) != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
