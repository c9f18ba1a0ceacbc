package token

import (
	"fmt"

	"ember/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s(%s)", t.Span.Start, t.Span.End, t.Kind, t.Text)
}

// IsSymbol reports whether the token is the symbol s.
func (t Token) IsSymbol(s string) bool {
	return t.Kind == Symbol && t.Text == s
}

// IsSemicolon reports whether the token is the top-level separator.
func (t Token) IsSemicolon() bool { return t.IsSymbol(";") }
