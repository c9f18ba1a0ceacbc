package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"ember/internal/ast"
	"ember/internal/source"
	"ember/internal/token"
)

// CheckRawTokens checks a raw scan of sf:
// 1) tokens are contiguous and start at 0
// 2) every token is non-empty, raw, and its Text equals the denoted bytes
// 3) concatenated texts reproduce the file content
func CheckRawTokens(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var (
		off uint32
		b   strings.Builder
	)
	for i, tok := range toks {
		if !tok.Kind.IsRaw() {
			return fmt.Errorf("token %d: kind %s is not raw", i, tok.Kind)
		}
		if tok.Span.Start != off {
			return fmt.Errorf("token %d: gap or overlap at %d (span %v)", i, off, tok.Span)
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d: empty span %v", i, tok.Span)
		}
		if err := checkTokenText(i, tok, sf); err != nil {
			return err
		}
		off = tok.Span.End
		b.WriteString(tok.Text)
	}
	if off != lenContent {
		return fmt.Errorf("scan stops at %d, content has %d bytes", off, lenContent)
	}
	if b.String() != string(sf.Content) {
		return fmt.Errorf("concatenated tokens differ from content")
	}
	return nil
}

// CheckValidTokens checks a validated stream of sf: only refined kinds, no
// whitespace, strictly increasing non-overlapping spans, exact texts.
func CheckValidTokens(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	var prevEnd uint32
	for i, tok := range toks {
		if !tok.Kind.IsRefined() {
			return fmt.Errorf("token %d: kind %s is not allowed after validation", i, tok.Kind)
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d: empty span %v", i, tok.Span)
		}
		if tok.Span.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous end %d", i, tok.Span, prevEnd)
		}
		if strings.TrimSpace(tok.Text) != tok.Text {
			return fmt.Errorf("token %d: text %q carries whitespace", i, tok.Text)
		}
		if err := checkTokenText(i, tok, sf); err != nil {
			return err
		}
		prevEnd = tok.Span.End
	}
	return nil
}

func checkTokenText(i int, tok token.Token, sf *source.File) error {
	if tok.Span.File != sf.ID {
		return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, tok.Span.File, sf.ID)
	}
	if int(tok.Span.End) > len(sf.Content) {
		return fmt.Errorf("token %d: span %v beyond content", i, tok.Span)
	}
	if got := sf.Slice(tok.Span); got != tok.Text {
		return fmt.Errorf("token %d: text %q differs from source %q", i, tok.Text, got)
	}
	return nil
}

// CheckSpanInvariants runs span invariants on a parsed program:
// 1) an empty program has a zero-width span at offset 0
// 2) every item span is non-empty, ends with ';' and lies inside the program span
// 3) item spans are ordered and the program span runs from the first to the last
// 4) the expression of a top-level item starts its item span
func CheckSpanInvariants(b *ast.Builder, progID ast.ProgramID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	p := b.Programs.Get(progID)
	if p == nil {
		return fmt.Errorf("program node not found")
	}
	if p.Span.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", p.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if p.Span.End > lenContent || p.Span.Start > p.Span.End {
		return fmt.Errorf("program span %v outside content of %d bytes", p.Span, lenContent)
	}

	if len(p.Items) == 0 {
		if p.Span.Start != 0 || !p.Span.Empty() {
			return fmt.Errorf("empty program span must be zero-width at 0, got %v", p.Span)
		}
		return nil
	}

	var prevEnd uint32
	for idx, it := range p.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.Empty() {
			return fmt.Errorf("item %d: empty span %v", idx, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item %d: span file mismatch: got=%d want=%d", idx, sp.File, sf.ID)
		}
		if sp.Start < p.Span.Start || sp.End > p.Span.End {
			return fmt.Errorf("item %d: span %v is outside program span %v", idx, sp, p.Span)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("item %d: span %v overlaps previous item", idx, sp)
		}
		if text := sf.Slice(sp); !strings.HasSuffix(text, ";") {
			return fmt.Errorf("item %d: span %v does not end with ';': %q", idx, sp, text)
		}
		if data, ok := b.Items.Expr(it); ok {
			expr := b.Exprs.Get(data.Expr)
			if expr == nil {
				return fmt.Errorf("item %d: dangling expression %d", idx, data.Expr)
			}
			if expr.Span.Start != sp.Start || expr.Span.End > sp.End {
				return fmt.Errorf("item %d: expression span %v not at start of item %v", idx, expr.Span, sp)
			}
		}
		prevEnd = sp.End
	}

	first := b.Items.Get(p.Items[0]).Span
	last := b.Items.Get(p.Items[len(p.Items)-1]).Span
	if p.Span.Start != first.Start || p.Span.End != last.End {
		return fmt.Errorf("program span %v does not run from %v to %v", p.Span, first, last)
	}
	return nil
}
