// Package token defines lexical token kinds for the Ember front end.
// Invariants:
//   - Token.Text is exactly the source text covered by Token.Span.
//   - Raw kinds (NumberOrName, Whitespace, Symbol, Operator, Unknown) come out
//     of the scanner; refined kinds (Keyword, Int, Float, Name, Bool) come out
//     of validation. Whitespace never reaches the parser.
//   - Symbol and Operator are never refined further; the parser matches them
//     by Text.
package token
