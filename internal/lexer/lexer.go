package lexer

import (
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/trace"
)

// Lexer scans one file into raw tokens. It never fails: every byte of the
// input ends up in exactly one token, including whitespace.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий сырой токен. На EOF ok == false.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	if lx.cursor.EOF() {
		return token.Token{}, false
	}

	r, _ := lx.cursor.Peek()
	switch {
	case isNumberOrName(r):
		tok = lx.scanNumberOrName()
	case isWhitespace(r):
		tok = lx.scanWhitespace()
	case isSymbol(r):
		tok = lx.scanSymbol()
	case isOperator(r):
		tok = lx.scanOperator()
	default:
		tok = lx.scanUnknown()
	}

	if lx.opts.tracing() {
		trace.Point(lx.opts.Tracer, trace.ScopeNode, "scan", tok.String(), lx.opts.Parent)
	}
	return tok, true
}

// Scan runs maximal-munch scanning over the whole file and returns the raw
// stream. Concatenating the Text of the result reproduces file.Content.
func Scan(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	// грубая оценка: токен на каждые ~3 байта
	tokens := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Lex scans file and validates the result. On failure no tokens are
// returned and the error is a *diag.Error.
func Lex(file *source.File, opts Options) ([]token.Token, error) {
	return Validate(Scan(file, opts), opts)
}

func (lx *Lexer) emit(kind token.Kind, m Mark) token.Token {
	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(m),
		Text: lx.cursor.TextFrom(m),
	}
}
