package token

var keywords = map[string]struct{}{
	"let":  {},
	"if":   {},
	"then": {},
	"else": {},
}

var bools = map[string]bool{
	"True":  true,
	"False": false,
}

// LookupKeyword reports whether text is a keyword. Keywords are case-sensitive.
func LookupKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}

// LookupBool reports whether text is a boolean literal and returns its value.
// Only the capitalised spellings are literals; "true" is a Name.
func LookupBool(text string) (value, ok bool) {
	value, ok = bools[text]
	return value, ok
}
