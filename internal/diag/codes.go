package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo         Code = 1000
	LexUnknownChar  Code = 1001
	LexInvalidToken Code = 1002

	// Синтаксические
	SynInfo             Code = 2000
	SynExpectSemicolon  Code = 2001
	SynUnexpectedEOF    Code = 2002
	SynExpectExpression Code = 2003

	// Семантические
	SemaInfo        Code = 3000
	SemaUnknownNode Code = 3001

	// Ввод-вывод
	IOLoadFileError Code = 4001

	// Проект
	ProjManifestError Code = 5001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001

	// Исполнение
	EvalInfo          Code = 7000
	EvalUndefinedName Code = 7001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	LexInfo:             "Lexical information",
	LexUnknownChar:      "Unknown character",
	LexInvalidToken:     "Invalid token",
	SynInfo:             "Syntax information",
	SynExpectSemicolon:  "Expected semicolon",
	SynUnexpectedEOF:    "Unexpected end of input",
	SynExpectExpression: "Expected expression",
	SemaInfo:            "Semantic information",
	SemaUnknownNode:     "Unknown AST node",
	IOLoadFileError:     "I/O load file error",
	ProjManifestError:   "Invalid project manifest",
	ObsInfo:             "Observability information",
	ObsTimings:          "Pipeline timings",
	EvalInfo:            "Evaluation information",
	EvalUndefinedName:   "Undefined name",
}

// ID returns the stable short identifier, e.g. "LEX1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("EVL%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
