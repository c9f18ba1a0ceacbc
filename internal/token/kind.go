package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind; no scanner or validator produces it.
	Invalid Kind = iota

	// NumberOrName is a run of digits, letters, '.' and '_' not yet classified.
	NumberOrName
	// Whitespace is a run of Unicode spaces.
	Whitespace
	// Symbol is one of ( ) [ ] { } , ;
	Symbol
	// Operator is a run of + - * / % =
	Operator
	// Unknown is a single character outside every other class.
	Unknown

	// Keyword is one of let, if, then, else.
	Keyword
	// Int is a decimal integer literal.
	Int
	// Float is a decimal floating-point literal.
	Float
	// Name is an identifier.
	Name
	// Bool is True or False.
	Bool
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	NumberOrName: "NumberOrName",
	Whitespace:   "Whitespace",
	Symbol:       "Symbol",
	Operator:     "Operator",
	Unknown:      "Unknown",
	Keyword:      "Keyword",
	Int:          "Int",
	Float:        "Float",
	Name:         "Name",
	Bool:         "Bool",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsRaw reports whether k is produced only by scanning and must be refined
// or dropped before parsing.
func (k Kind) IsRaw() bool {
	switch k {
	case NumberOrName, Whitespace, Unknown:
		return true
	default:
		return false
	}
}

// IsRefined reports whether k may appear in a validated token stream.
func (k Kind) IsRefined() bool {
	switch k {
	case Symbol, Operator, Keyword, Int, Float, Name, Bool:
		return true
	default:
		return false
	}
}
