// Package diag defines the diagnostic model shared by the lexer, the parser
// and the downstream stages.
//
// A Diagnostic carries a Severity, a compact numeric Code with a stable
// string form (LEX1001, SYN2002, ...), a short Message and the primary
// source.Span. Notes add secondary spans when they carry new context.
//
// Producers fail fast: the lexer and the parser return a *Error wrapping the
// first Diagnostic they hit and never attempt recovery. The driver collects
// those into a Bag, which a formatter in internal/diagfmt renders.
//
// Package diag performs no formatting of source snippets, no IO and no CLI
// work; FormatShortDiagnostics is the one exception, a single-line form that
// needs only line/column resolution.
package diag
