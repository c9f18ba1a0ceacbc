package lexer

import "ember/internal/token"

// scanSymbol: ровно один символ из ()[]{},;
func (lx *Lexer) scanSymbol() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.emit(token.Symbol, m)
}

// scanOperator жадно забирает серию +-*/%=, так что "==" и "+=-" это один токен.
func (lx *Lexer) scanOperator() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.BumpWhile(isOperator)
	return lx.emit(token.Operator, m)
}

// scanUnknown забирает одну руну (или один невалидный байт).
func (lx *Lexer) scanUnknown() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.emit(token.Unknown, m)
}
