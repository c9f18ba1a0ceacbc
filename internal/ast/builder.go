package ast

import (
	"ember/internal/source"
)

type Hints struct{ Programs, Items, Exprs uint }

type Builder struct {
	Programs        *Programs
	Items           *Items
	Exprs           *Exprs
	StringsInterner *source.Interner
}

// NewBuilder creates arenas sized by hints. A nil interner gets a fresh one;
// pass a shared interner when several builders must agree on StringIDs.
func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Programs == 0 {
		hints.Programs = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 7
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Programs:        NewPrograms(hints.Programs),
		Items:           NewItems(hints.Items),
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: interner,
	}
}

func (b *Builder) NewProgram(sp source.Span) ProgramID {
	return b.Programs.New(sp)
}

func (b *Builder) PushItem(prog ProgramID, item ItemID) {
	p := b.Programs.Get(prog)
	p.Items = append(p.Items, item)
}

// NameText resolves the identifier of a Name expression.
func (b *Builder) NameText(id ExprID) (string, bool) {
	data, ok := b.Exprs.Name(id)
	if !ok {
		return "", false
	}
	return b.StringsInterner.Lookup(data.Name)
}
