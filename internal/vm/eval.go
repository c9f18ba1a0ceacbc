package vm

import (
	"context"
	"fmt"
	"io"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/trace"
)

type Options struct {
	// Out receives one line per produced value. Nil discards output.
	Out      io.Writer
	Reporter diag.Reporter
	Tracer   trace.Tracer
	Parent   uint64
}

// VM evaluates top-level items of one program. It holds no bindings: every
// Name fails with EVL7001.
type VM struct {
	b    *ast.Builder
	opts Options
}

func New(b *ast.Builder, opts Options) *VM {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &VM{b: b, opts: opts}
}

// Eval runs every item of prog in order. Values already printed stay
// printed when a later item fails; the returned slice then holds them.
func Eval(ctx context.Context, b *ast.Builder, prog ast.ProgramID, opts Options) ([]Value, error) {
	return New(b, opts).Run(ctx, prog)
}

func (vm *VM) Run(ctx context.Context, prog ast.ProgramID) ([]Value, error) {
	p := vm.b.Programs.Get(prog)
	if p == nil {
		return nil, vm.fail(diag.SemaUnknownNode, source.Span{}, "unknown program %d", prog)
	}
	values := make([]Value, 0, len(p.Items))
	for _, itemID := range p.Items {
		if err := ctx.Err(); err != nil {
			return values, err
		}
		v, ok, err := vm.EvalItem(itemID)
		if err != nil {
			return values, err
		}
		if !ok {
			continue
		}
		values = append(values, v)
		if vm.opts.Out != nil {
			if _, err := fmt.Fprintln(vm.opts.Out, v.String()); err != nil {
				return values, fmt.Errorf("write value: %w", err)
			}
		}
	}
	return values, nil
}

// EvalItem evaluates one top-level item. ok is false for an empty item,
// which produces no value.
func (vm *VM) EvalItem(id ast.ItemID) (v Value, ok bool, err error) {
	if !id.IsValid() {
		return Value{}, false, vm.fail(diag.SemaUnknownNode, source.Span{}, "no item to evaluate")
	}
	item := vm.b.Items.Get(id)
	if item == nil {
		return Value{}, false, vm.fail(diag.SemaUnknownNode, source.Span{}, "unknown item %d", id)
	}
	switch item.Kind {
	case ast.ItemEmpty:
		return Value{}, false, nil
	case ast.ItemExpr:
		data, found := vm.b.Items.Expr(id)
		if !found || data == nil {
			return Value{}, false, vm.fail(diag.SemaUnknownNode, item.Span, "top-level expression without payload")
		}
		v, err = vm.EvalExpr(data.Expr)
		if err != nil {
			return Value{}, false, err
		}
		trace.Point(vm.opts.Tracer, trace.ScopeNode, "eval", v.String(), vm.opts.Parent)
		return v, true, nil
	default:
		return Value{}, false, vm.fail(diag.SemaUnknownNode, item.Span, "unknown item kind %s", item.Kind)
	}
}

// EvalExpr evaluates a single expression. Literals evaluate to themselves.
func (vm *VM) EvalExpr(id ast.ExprID) (Value, error) {
	expr := vm.b.Exprs.Get(id)
	if expr == nil {
		return Value{}, vm.fail(diag.SemaUnknownNode, source.Span{}, "unknown expression %d", id)
	}
	switch expr.Kind {
	case ast.ExprInt:
		data, _ := vm.b.Exprs.Int(id)
		return MakeInt(data.Value), nil
	case ast.ExprFloat:
		data, _ := vm.b.Exprs.Float(id)
		return MakeFloat(data.Value), nil
	case ast.ExprBool:
		data, _ := vm.b.Exprs.Bool(id)
		return MakeBool(data.Value), nil
	case ast.ExprName:
		name, _ := vm.b.NameText(id)
		return Value{}, vm.fail(diag.EvalUndefinedName, expr.Span, "undefined name %s", name)
	default:
		return Value{}, vm.fail(diag.SemaUnknownNode, expr.Span, "unknown expression kind %s", expr.Kind)
	}
}

func (vm *VM) fail(code diag.Code, sp source.Span, format string, args ...any) error {
	err := diag.Errorf(code, sp, format, args...)
	err.Report(vm.opts.Reporter)
	return err
}
