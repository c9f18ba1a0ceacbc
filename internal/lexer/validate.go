package lexer

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"ember/internal/diag"
	"ember/internal/token"
	"ember/internal/trace"
)

// Validate reclassifies a raw stream into refined kinds. Whitespace is
// dropped, NumberOrName becomes Keyword, Bool, Int, Float or Name, and
// Unknown is rejected. Tokens that are already refined pass through, so
// Validate(Validate(x)) == Validate(x).
//
// The first bad token aborts validation; no partial stream is returned.
func Validate(tokens []token.Token, opts Options) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	tracing := opts.tracing()
	for i, tok := range tokens {
		switch tok.Kind {
		case token.Whitespace:
			continue
		case token.NumberOrName:
			kind, ok := classify(tok.Text)
			if !ok {
				return nil, opts.fail(diag.Errorf(diag.LexInvalidToken, tok.Span, "invalid token `%s`", tok.Text))
			}
			tok.Kind = kind
		case token.Unknown:
			de := diag.Errorf(diag.LexUnknownChar, tok.Span, "unknown character `%s`", printable(tok.Text))
			if i > 0 {
				if composed, ok := composedForm(tokens[i-1], tok); ok {
					de.Diag.WithNote(tok.Span, "decomposed character; write the composed `"+composed+"` instead")
				}
			}
			return nil, opts.fail(de)
		case token.Symbol, token.Operator, token.Keyword, token.Int, token.Float, token.Name, token.Bool:
			// уже уточнён
		default:
			return nil, opts.fail(diag.Errorf(diag.LexInvalidToken, tok.Span, "invalid token kind %s", tok.Kind))
		}
		if tracing {
			trace.Point(opts.Tracer, trace.ScopeNode, "validate", tok.String(), opts.Parent)
		}
		out = append(out, tok)
	}
	return out, nil
}

// classify решает судьбу NumberOrName. Порядок важен: ключевые слова и
// булевы литералы раньше чисел, числа раньше имён.
func classify(text string) (token.Kind, bool) {
	switch {
	case token.LookupKeyword(text):
		return token.Keyword, true
	case isBool(text):
		return token.Bool, true
	case isInt(text):
		return token.Int, true
	case isFloat(text):
		return token.Float, true
	case isName(text):
		return token.Name, true
	}
	return token.Invalid, false
}

func isBool(text string) bool {
	_, ok := token.LookupBool(text)
	return ok
}

// isInt: необязательный знак, затем только ASCII-цифры. Длина не
// ограничена.
func isInt(text string) bool {
	if text != "" && (text[0] == '+' || text[0] == '-') {
		text = text[1:]
	}
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if !isDigit(rune(text[i])) {
			return false
		}
	}
	return true
}

// isFloat accepts digits? '.' digits? ([eE] digits)? with at least one
// mantissa digit. Values past the float64 range are still floats and
// round to ±Inf.
func isFloat(text string) bool {
	i, n := 0, len(text)
	intDigits := 0
	for i < n && isDigit(rune(text[i])) {
		i++
		intDigits++
	}
	if i >= n || text[i] != '.' {
		return false
	}
	i++
	fracDigits := 0
	for i < n && isDigit(rune(text[i])) {
		i++
		fracDigits++
	}
	if intDigits+fracDigits == 0 {
		return false
	}
	if i < n && (text[i] == 'e' || text[i] == 'E') {
		i++
		expDigits := 0
		for i < n && isDigit(rune(text[i])) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	if i != n {
		return false
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// isName: (буква | '_') (буква | цифра | '_')*
func isName(text string) bool {
	if text == "" {
		return false
	}
	for i, r := range text {
		if r == utf8.RuneError {
			return false
		}
		if i == 0 {
			if !isNameStart(r) {
				return false
			}
			continue
		}
		if !isNameContinue(r) {
			return false
		}
	}
	return true
}

// printable escapes control characters and invalid bytes for messages.
func printable(text string) string {
	if text == "" {
		return text
	}
	if r, _ := utf8.DecodeRuneInString(text); r != utf8.RuneError && strconv.IsPrint(r) {
		return text
	}
	q := strconv.QuoteToASCII(text)
	return q[1 : len(q)-1]
}

// composedForm проверяет, не является ли cur комбинирующим знаком к
// последней букве prev: "e" + U+0301 в NFC дают "é". Исходник не
// нормализуется, поэтому такой знак остаётся Unknown; подсказка только
// в заметке.
func composedForm(prev, cur token.Token) (string, bool) {
	if prev.Span.File != cur.Span.File || prev.Span.End != cur.Span.Start || prev.Text == "" {
		return "", false
	}
	last, size := utf8.DecodeLastRuneInString(prev.Text)
	if last == utf8.RuneError && size <= 1 {
		return "", false
	}
	pair := prev.Text[len(prev.Text)-size:] + cur.Text
	composed := norm.NFC.String(pair)
	if composed == pair || utf8.RuneCountInString(composed) != 1 {
		return "", false
	}
	return composed, true
}
