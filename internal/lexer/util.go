package lexer

import "unicode"

// ===== Классы символов =====
// Проверяются в порядке: число-или-имя, пробел, символ, оператор.

// isNumberOrName: ASCII-цифры, '.', '_' и любая буква Unicode.
func isNumberOrName(r rune) bool {
	return r == '_' || r == '.' || isDigit(r) || unicode.IsLetter(r)
}

func isWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

func isSymbol(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', ',', ';':
		return true
	}
	return false
}

func isOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '=':
		return true
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameContinue(r rune) bool {
	return isNameStart(r) || isDigit(r)
}
