package parser

import (
	"errors"
	"math/big"
	"strconv"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/token"
)

// parseExpression выбирает узел строго по виду текущего токена.
func (p *Parser) parseExpression() (ast.ExprID, error) {
	tok, ok := p.peek()
	if !ok {
		return ast.NoExprID, p.fail(diag.SynUnexpectedEOF, p.eofSpan(), "unexpected end of input, expected expression")
	}

	switch tok.Kind {
	case token.Int:
		return p.parseInt()
	case token.Float:
		return p.parseFloat()
	case token.Bool:
		return p.parseBool()
	case token.Name:
		return p.parseName()
	default:
		return ast.NoExprID, p.fail(diag.SynExpectExpression, tok.Span, "expected expression, found `%s`", tok.Text)
	}
}

// parseInt принимает литерал любой длины: значение хранится как big.Int.
func (p *Parser) parseInt() (ast.ExprID, error) {
	tok := p.advance()
	value, ok := new(big.Int).SetString(tok.Text, 10)
	if !ok {
		return ast.NoExprID, p.fail(diag.SynExpectExpression, tok.Span, "malformed integer literal `%s`", tok.Text)
	}
	return p.arenas.Exprs.NewInt(tok.Span, value), nil
}

// parseFloat rounds to the nearest float64. Literals past the float64 range
// become ±Inf and tiny ones become zero; neither is an error.
func (p *Parser) parseFloat() (ast.ExprID, error) {
	tok := p.advance()
	value, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return ast.NoExprID, p.fail(diag.SynExpectExpression, tok.Span, "malformed float literal `%s`", tok.Text)
	}
	return p.arenas.Exprs.NewFloat(tok.Span, value), nil
}

func (p *Parser) parseBool() (ast.ExprID, error) {
	tok := p.advance()
	value, ok := token.LookupBool(tok.Text)
	if !ok {
		return ast.NoExprID, p.fail(diag.SynExpectExpression, tok.Span, "malformed boolean literal `%s`", tok.Text)
	}
	return p.arenas.Exprs.NewBool(tok.Span, value), nil
}

func (p *Parser) parseName() (ast.ExprID, error) {
	tok := p.advance()
	id := p.arenas.StringsInterner.Intern(tok.Text)
	return p.arenas.Exprs.NewName(tok.Span, id), nil
}
