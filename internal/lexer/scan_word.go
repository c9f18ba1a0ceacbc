package lexer

import "ember/internal/token"

// scanNumberOrName забирает максимальную серию символов класса
// число-или-имя. Литерал это или имя, решает Validate.
func (lx *Lexer) scanNumberOrName() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.BumpWhile(isNumberOrName)
	return lx.emit(token.NumberOrName, m)
}

func (lx *Lexer) scanWhitespace() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.BumpWhile(isWhitespace)
	return lx.emit(token.Whitespace, m)
}
