package parser

import (
	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/trace"
)

type Options struct {
	// File anchors the span of an empty program.
	File source.FileID
	// Tracer receives one node-scope event per parsed item. Nil means trace.Nop.
	Tracer trace.Tracer
	// Parent is the span ID the item events are attached to.
	Parent uint64
	// Reporter, if set, also receives the diagnostic Parse fails with.
	Reporter diag.Reporter
}

// Parser хранит состояние парсера на один поток токенов
type Parser struct {
	tokens   []token.Token // валидированный поток, без пробелов
	pos      int           // индекс текущего токена
	arenas   *ast.Builder  // построитель аренных узлов
	prog     ast.ProgramID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для диагностики EOF
	tracing  bool
}

// Parse builds a Program from a validated token stream.
//
// Parsing stops at the first malformed construct: the returned error is a
// *diag.Error and the ProgramID is ast.NoProgramID. Nothing is rolled back
// in the builder, but no program refers to the partial nodes.
func Parse(tokens []token.Token, arenas *ast.Builder, opts Options) (ast.ProgramID, error) {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	p := Parser{
		tokens:   tokens,
		arenas:   arenas,
		opts:     opts,
		lastSpan: source.At(opts.File, 0),
		tracing:  opts.Tracer.Enabled() && opts.Tracer.Level().ShouldEmit(trace.ScopeNode),
	}
	if err := p.parseProgram(); err != nil {
		return ast.NoProgramID, err
	}
	return p.prog, nil
}

// parseProgram: пока есть токены, вызывает parseTopLevel.
func (p *Parser) parseProgram() error {
	items := make([]ast.ItemID, 0, len(p.tokens)/2+1)
	for !p.eof() {
		itemID, err := p.parseTopLevel()
		if err != nil {
			return err
		}
		items = append(items, itemID)
	}

	p.prog = p.arenas.NewProgram(p.programSpan(items))
	for _, it := range items {
		p.arenas.PushItem(p.prog, it)
	}
	return nil
}

// programSpan: от начала первого item до конца последнего. Пустая программа
// получает нулевой span в начале файла.
func (p *Parser) programSpan(items []ast.ItemID) source.Span {
	if len(items) == 0 {
		return source.At(p.opts.File, 0)
	}
	first := p.arenas.Items.Get(items[0]).Span
	last := p.arenas.Items.Get(items[len(items)-1]).Span
	return first.Merge(last)
}

// parseTopLevel разбирает `;` или `Expression ;`.
func (p *Parser) parseTopLevel() (ast.ItemID, error) {
	if tok, _ := p.peek(); tok.IsSemicolon() {
		semi := p.advance()
		id := p.arenas.Items.NewEmpty(semi.Span)
		p.traceItem(ast.ItemEmpty, semi.Span)
		return id, nil
	}

	exprID, err := p.parseExpression()
	if err != nil {
		return ast.NoItemID, err
	}

	semi, err := p.expectSemicolon()
	if err != nil {
		return ast.NoItemID, err
	}

	span := p.arenas.Exprs.Get(exprID).Span.Merge(semi.Span)
	id := p.arenas.Items.NewExpr(span, exprID)
	p.traceItem(ast.ItemExpr, span)
	return id, nil
}

func (p *Parser) traceItem(kind ast.ItemKind, sp source.Span) {
	if !p.tracing {
		return
	}
	trace.Point(p.opts.Tracer, trace.ScopeNode, "item", kind.String()+" "+sp.String(), p.opts.Parent)
}
