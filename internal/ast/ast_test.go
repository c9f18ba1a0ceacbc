package ast

import (
	"math/big"
	"testing"

	"ember/internal/source"
)

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena returned an element")
	}
	first := a.Allocate(10)
	second := a.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", first, second)
	}
	if *a.Get(second) != 20 || a.Len() != 2 {
		t.Fatal("arena content mismatch")
	}
	if a.Get(3) != nil {
		t.Fatal("out of range id returned an element")
	}
}

func TestBuilderProgram(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := func(start, end uint32) source.Span { return source.Span{File: 1, Start: start, End: end} }

	prog := b.NewProgram(sp(0, 0))
	intExpr := b.Exprs.NewInt(sp(0, 3), big.NewInt(123))
	b.PushItem(prog, b.Items.NewExpr(sp(0, 4), intExpr))
	b.PushItem(prog, b.Items.NewEmpty(sp(4, 5)))
	nameExpr := b.Exprs.NewName(sp(6, 9), b.StringsInterner.Intern("abc"))
	b.PushItem(prog, b.Items.NewExpr(sp(6, 10), nameExpr))

	p := b.Programs.Get(prog)
	if len(p.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(p.Items))
	}

	first, ok := b.Items.Expr(p.Items[0])
	if !ok {
		t.Fatal("first item is not an expression")
	}
	if v, ok := b.Exprs.Int(first.Expr); !ok || v.Value.Int64() != 123 {
		t.Fatalf("Int payload = %v, %v", v, ok)
	}
	if _, ok := b.Exprs.Float(first.Expr); ok {
		t.Fatal("Float accessor matched an Int")
	}

	if item := b.Items.Get(p.Items[1]); item.Kind != ItemEmpty || item.Payload.IsValid() {
		t.Fatalf("second item = %+v", item)
	}
	if _, ok := b.Items.Expr(p.Items[1]); ok {
		t.Fatal("Expr accessor matched an empty item")
	}

	last, _ := b.Items.Expr(p.Items[2])
	if name, ok := b.NameText(last.Expr); !ok || name != "abc" {
		t.Fatalf("NameText = %q, %v", name, ok)
	}
	if _, ok := b.NameText(first.Expr); ok {
		t.Fatal("NameText resolved a non-name")
	}
}

func TestPayloadAccessors(t *testing.T) {
	e := NewExprs(0)
	sp := source.Span{}
	f := e.NewFloat(sp, 3.14)
	bo := e.NewBool(sp, true)

	if v, ok := e.Float(f); !ok || v.Value != 3.14 {
		t.Fatalf("Float = %v, %v", v, ok)
	}
	if v, ok := e.Bool(bo); !ok || !v.Value {
		t.Fatalf("Bool = %v, %v", v, ok)
	}
	if _, ok := e.Int(NoExprID); ok {
		t.Fatal("NoExprID resolved")
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{ExprInt.String(), "Int"},
		{ExprFloat.String(), "Float"},
		{ExprBool.String(), "Bool"},
		{ExprName.String(), "Name"},
		{ExprKind(99).String(), "ExprKind(?)"},
		{ItemEmpty.String(), "EmptyExpression"},
		{ItemExpr.String(), "TopLevelExpression"},
		{ItemKind(9).String(), "ItemKind(?)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
