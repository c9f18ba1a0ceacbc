package testkit

import (
	"math/big"
	"strings"
	"testing"

	"ember/internal/ast"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/token"
)

func load(input string) (*source.FileSet, *source.File) {
	fs := source.NewFileSet()
	return fs, fs.Get(fs.AddVirtual("t.em", []byte(input)))
}

func TestInvariantsHoldForPipeline(t *testing.T) {
	inputs := []string{"", ";", "1; 2.5 ;\n True;x_1;", "  let\t= (x);", "é1 ?"}
	for _, input := range inputs {
		_, file := load(input)
		raw := lexer.Scan(file, lexer.Options{})
		if err := CheckRawTokens(raw, file); err != nil {
			t.Errorf("%q raw: %v", input, err)
		}
		toks, err := lexer.Lex(file, lexer.Options{})
		if err != nil {
			continue
		}
		if err := CheckValidTokens(toks, file); err != nil {
			t.Errorf("%q valid: %v", input, err)
		}
		b := ast.NewBuilder(ast.Hints{}, nil)
		prog, err := parser.Parse(toks, b, parser.Options{File: file.ID})
		if err != nil {
			continue
		}
		if err := CheckSpanInvariants(b, prog, file); err != nil {
			t.Errorf("%q spans: %v", input, err)
		}
	}
}

func TestCheckRawTokensDetectsGaps(t *testing.T) {
	_, file := load("ab")
	toks := []token.Token{{Kind: token.NumberOrName, Span: source.Span{File: file.ID, Start: 0, End: 1}, Text: "a"}}
	err := CheckRawTokens(toks, file)
	if err == nil || !strings.Contains(err.Error(), "scan stops at 1") {
		t.Fatalf("expected truncation error, got %v", err)
	}

	toks = append(toks, token.Token{Kind: token.Int, Span: source.Span{File: file.ID, Start: 1, End: 2}, Text: "b"})
	if err := CheckRawTokens(toks, file); err == nil {
		t.Fatal("refined kind must be rejected in a raw stream")
	}
}

func TestCheckValidTokensRejectsRaw(t *testing.T) {
	_, file := load(" ")
	toks := []token.Token{{Kind: token.Whitespace, Span: source.Span{File: file.ID, Start: 0, End: 1}, Text: " "}}
	if err := CheckValidTokens(toks, file); err == nil {
		t.Fatal("whitespace must be rejected after validation")
	}
}

func TestCheckSpanInvariantsDetectsBadProgramSpan(t *testing.T) {
	_, file := load("1;")
	b := ast.NewBuilder(ast.Hints{}, nil)
	expr := b.Exprs.NewInt(source.Span{File: file.ID, Start: 0, End: 1}, big.NewInt(1))
	item := b.Items.NewExpr(source.Span{File: file.ID, Start: 0, End: 2}, expr)
	prog := b.NewProgram(source.Span{File: file.ID, Start: 0, End: 1})
	b.PushItem(prog, item)

	if err := CheckSpanInvariants(b, prog, file); err == nil {
		t.Fatal("item outside program span must be reported")
	}
}
