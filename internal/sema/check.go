package sema

import (
	"fmt"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/trace"
)

type Options struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
	Parent   uint64
}

// Result stores what the analysis pass saw.
type Result struct {
	Program ast.ProgramID
	// Items counts top-level items; Empty counts the bare ';' among them.
	Items int
	Empty int
	// Literals counts Int, Float and Bool expressions.
	Literals int
	// Names lists every Name expression in source order.
	Names []ast.ExprID
}

// Analyze walks prog and returns it unchanged in Result.Program. It fails
// only on a malformed tree: a dangling ID or an unknown node kind.
func Analyze(builder *ast.Builder, prog ast.ProgramID, opts Options) (*Result, error) {
	c := checker{b: builder, opts: opts}
	return c.run(prog)
}

type checker struct {
	b    *ast.Builder
	opts Options
	res  Result
}

func (c *checker) run(prog ast.ProgramID) (*Result, error) {
	if c.b == nil {
		return nil, c.fail(source.Span{}, "no AST builder")
	}
	if !prog.IsValid() {
		return nil, c.fail(source.Span{}, "no program to analyze")
	}
	p := c.b.Programs.Get(prog)
	if p == nil {
		return nil, c.fail(source.Span{}, "unknown program %d", prog)
	}
	c.res.Program = prog
	for _, itemID := range p.Items {
		if err := c.checkItem(itemID, p.Span); err != nil {
			return nil, err
		}
	}
	trace.Point(c.opts.Tracer, trace.ScopeModule, "sema",
		fmt.Sprintf("items=%d literals=%d names=%d interned=%d",
			c.res.Items, c.res.Literals, len(c.res.Names), c.b.StringsInterner.Len()-1),
		c.opts.Parent)
	return &c.res, nil
}

func (c *checker) checkItem(id ast.ItemID, parent source.Span) error {
	item := c.b.Items.Get(id)
	if item == nil {
		return c.fail(parent, "unknown item %d", id)
	}
	c.res.Items++
	switch item.Kind {
	case ast.ItemEmpty:
		c.res.Empty++
		return nil
	case ast.ItemExpr:
		data, ok := c.b.Items.Expr(id)
		if !ok || data == nil {
			return c.fail(item.Span, "top-level expression without payload")
		}
		return c.checkExpr(data.Expr, item.Span)
	default:
		return c.fail(item.Span, "unknown item kind %s", item.Kind)
	}
}

func (c *checker) checkExpr(id ast.ExprID, parent source.Span) error {
	if !id.IsValid() {
		return c.fail(parent, "item without expression")
	}
	expr := c.b.Exprs.Get(id)
	if expr == nil {
		return c.fail(parent, "unknown expression %d", id)
	}
	switch expr.Kind {
	case ast.ExprInt, ast.ExprFloat, ast.ExprBool:
		c.res.Literals++
		return nil
	case ast.ExprName:
		c.res.Names = append(c.res.Names, id)
		return nil
	default:
		return c.fail(expr.Span, "unknown expression kind %s", expr.Kind)
	}
}

func (c *checker) fail(sp source.Span, format string, args ...any) error {
	err := diag.Errorf(diag.SemaUnknownNode, sp, format, args...)
	err.Report(c.opts.Reporter)
	return err
}
