package vm_test

import (
	"bytes"
	"context"
	"math"
	"math/big"
	"testing"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/vm"
)

func build(t *testing.T, input string) (*ast.Builder, ast.ProgramID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.em", []byte(input))
	tokens, err := lexer.Lex(fs.Get(id), lexer.Options{})
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	b := ast.NewBuilder(ast.Hints{}, nil)
	prog, err := parser.Parse(tokens, b, parser.Options{File: id})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return b, prog
}

func TestEvalLiterals(t *testing.T) {
	b, prog := build(t, "123; 567;;\n3.14; True; False; 2.;")
	var out bytes.Buffer
	values, err := vm.Eval(context.Background(), b, prog, vm.Options{Out: &out})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := []vm.Value{
		vm.MakeInt(big.NewInt(123)), vm.MakeInt(big.NewInt(567)), vm.MakeFloat(3.14),
		vm.MakeBool(true), vm.MakeBool(false), vm.MakeFloat(2),
	}
	if len(values) != len(want) {
		t.Fatalf("values = %v, want %v", values, want)
	}
	for i := range want {
		if values[i].Kind != want[i].Kind || values[i].String() != want[i].String() {
			t.Errorf("value %d = %v, want %v", i, values[i], want[i])
		}
	}
	if got := out.String(); got != "123\n567\n3.14\nTrue\nFalse\n2.0\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestEvalLiteralsBeyondMachineRange(t *testing.T) {
	b, prog := build(t, "99999999999999999999; 123456789012345678901234567890; 1.0e999;")
	var out bytes.Buffer
	values, err := vm.Eval(context.Background(), b, prog, vm.Options{Out: &out})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	big20, _ := new(big.Int).SetString("99999999999999999999", 10)
	if len(values) != 3 || values[0].Kind != vm.VKInt || values[0].Int.Cmp(big20) != 0 {
		t.Fatalf("values = %v", values)
	}
	if !math.IsInf(values[2].Float, 1) {
		t.Errorf("float value = %v, want +Inf", values[2])
	}
	want := "99999999999999999999\n123456789012345678901234567890\ninf\n"
	if got := out.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestEvalUndefinedName(t *testing.T) {
	b, prog := build(t, "1; abc; 2;")
	var out bytes.Buffer
	bag := diag.NewBag(2)
	values, err := vm.Eval(context.Background(), b, prog, vm.Options{Out: &out, Reporter: diag.BagReporter{Bag: bag}})
	de, ok := diag.AsError(err)
	if !ok || de.Code() != diag.EvalUndefinedName {
		t.Fatalf("expected undefined name error, got %v", err)
	}
	if de.Diag.Message != "undefined name abc" {
		t.Fatalf("message = %q", de.Diag.Message)
	}
	if de.Diag.Primary.Start != 3 || de.Diag.Primary.End != 6 {
		t.Fatalf("span = %v", de.Diag.Primary)
	}
	if len(values) != 1 || out.String() != "1\n" {
		t.Fatalf("values before failure = %v, output %q", values, out.String())
	}
	if bag.Len() != 1 {
		t.Fatalf("reporter got %d diagnostics", bag.Len())
	}
}

func TestEvalCancelled(t *testing.T) {
	b, prog := build(t, "1; 2;")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := vm.Eval(ctx, b, prog, vm.Options{}); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestEvalEmptyItemHasNoValue(t *testing.T) {
	b, prog := build(t, ";;")
	machine := vm.New(b, vm.Options{})
	p := b.Programs.Get(prog)
	for _, id := range p.Items {
		if _, ok, err := machine.EvalItem(id); ok || err != nil {
			t.Fatalf("empty item produced ok=%v err=%v", ok, err)
		}
	}
}

func TestEvalRejectsMissingItem(t *testing.T) {
	b, _ := build(t, "1;")
	_, _, err := vm.New(b, vm.Options{}).EvalItem(ast.NoItemID)
	de, ok := diag.AsError(err)
	if !ok || de.Code() != diag.SemaUnknownNode {
		t.Fatalf("EvalItem(NoItemID) err = %v, want SEM3001", err)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    vm.Value
		want string
	}{
		{vm.MakeInt(big.NewInt(-7)), "-7"},
		{vm.Value{Kind: vm.VKInt}, "0"},
		{vm.MakeFloat(0), "0.0"},
		{vm.MakeFloat(250), "250.0"},
		{vm.MakeFloat(0.5), "0.5"},
		{vm.MakeFloat(1e16), "1e+16"},
		{vm.MakeFloat(1e-5), "1e-05"},
		{vm.MakeFloat(math.Inf(1)), "inf"},
		{vm.MakeBool(true), "True"},
		{vm.MakeBool(false), "False"},
		{vm.Value{}, "<invalid>"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}
