package parser_test

import (
	"testing"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
)

type parsed struct {
	fs      *source.FileSet
	file    *source.File
	builder *ast.Builder
	prog    ast.ProgramID
}

// parseSource прогоняет строку через лексер и парсер.
func parseSource(t *testing.T, input string) (parsed, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.em", []byte(input))
	file := fs.Get(id)

	tokens, err := lexer.Lex(file, lexer.Options{})
	if err != nil {
		t.Fatalf("lex %q: %v", input, err)
	}

	b := ast.NewBuilder(ast.Hints{}, nil)
	prog, err := parser.Parse(tokens, b, parser.Options{File: id})
	return parsed{fs: fs, file: file, builder: b, prog: prog}, err
}

func mustParse(t *testing.T, input string) parsed {
	t.Helper()
	res, err := parseSource(t, input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return res
}

func mustFail(t *testing.T, input string) *diag.Error {
	t.Helper()
	res, err := parseSource(t, input)
	if err == nil {
		t.Fatalf("parse %q: expected error", input)
	}
	if res.prog.IsValid() {
		t.Fatalf("parse %q: program returned alongside error", input)
	}
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("parse %q: error is not a diagnostic: %v", input, err)
	}
	return de
}

// describe рендерит item в компактную строку: "Int(123)", "Empty", "Name(abc)".
func describe(t *testing.T, b *ast.Builder, id ast.ItemID) string {
	t.Helper()
	item := b.Items.Get(id)
	switch item.Kind {
	case ast.ItemEmpty:
		return "Empty"
	case ast.ItemExpr:
		data, _ := b.Items.Expr(id)
		return describeExpr(t, b, data.Expr)
	default:
		t.Fatalf("unexpected item kind %v", item.Kind)
		return ""
	}
}

func describeExpr(t *testing.T, b *ast.Builder, id ast.ExprID) string {
	t.Helper()
	expr := b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprInt:
		v, _ := b.Exprs.Int(id)
		return "Int(" + v.Value.String() + ")"
	case ast.ExprFloat:
		v, _ := b.Exprs.Float(id)
		return "Float(" + ftoa(v.Value) + ")"
	case ast.ExprBool:
		v, _ := b.Exprs.Bool(id)
		if v.Value {
			return "Bool(true)"
		}
		return "Bool(false)"
	case ast.ExprName:
		name, _ := b.NameText(id)
		return "Name(" + name + ")"
	default:
		t.Fatalf("unexpected expr kind %v", expr.Kind)
		return ""
	}
}
