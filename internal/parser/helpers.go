package parser

import (
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
)

func (p *Parser) eof() bool {
	return p.pos >= len(p.tokens)
}

// peek возвращает текущий токен, не потребляя его; ok == false на конце потока.
func (p *Parser) peek() (token.Token, bool) {
	if p.eof() {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

// advance съедает текущий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	p.pos++
	p.lastSpan = tok.Span
	return tok
}

// eofSpan: нулевой span сразу после последнего съеденного токена.
func (p *Parser) eofSpan() source.Span {
	return source.At(p.lastSpan.File, p.lastSpan.End)
}

// expectSemicolon требует `;` после выражения.
func (p *Parser) expectSemicolon() (token.Token, error) {
	tok, ok := p.peek()
	if !ok {
		return token.Token{}, p.fail(diag.SynUnexpectedEOF, p.eofSpan(), "unexpected end of input, expected ';'")
	}
	if !tok.IsSemicolon() {
		return token.Token{}, p.fail(diag.SynExpectSemicolon, tok.Span, "expected semicolon, found `%s`", tok.Text)
	}
	return p.advance(), nil
}

// fail строит ошибку, отдаёт её reporter'у (если есть) и возвращает.
func (p *Parser) fail(code diag.Code, sp source.Span, format string, args ...any) error {
	err := diag.Errorf(code, sp, format, args...)
	err.Report(p.opts.Reporter)
	return err
}
