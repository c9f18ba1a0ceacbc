package ast

import (
	"ember/internal/source"
)

type ItemKind uint8

const (
	// ItemEmpty is a bare ';' with nothing before it.
	ItemEmpty ItemKind = iota
	// ItemExpr is an expression followed by ';'.
	ItemExpr
)

func (k ItemKind) String() string {
	switch k {
	case ItemEmpty:
		return "EmptyExpression"
	case ItemExpr:
		return "TopLevelExpression"
	default:
		return "ItemKind(?)"
	}
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// ExprItem is the payload of ItemExpr.
type ExprItem struct {
	Expr ExprID
}

type Items struct {
	Arena *Arena[Item]
	Exprs *Arena[ExprItem]
}

// NewItems creates and returns an *Items with per-kind arenas initialized to capHint.
// If capHint is 0, NewItems uses a default initial capacity of 1<<7.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena: NewArena[Item](capHint),
		Exprs: NewArena[ExprItem](capHint),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewEmpty(sp source.Span) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    ItemEmpty,
		Span:    sp,
		Payload: NoPayloadID,
	}))
}

func (i *Items) NewExpr(sp source.Span, expr ExprID) ItemID {
	payload := i.Exprs.Allocate(ExprItem{Expr: expr})
	return ItemID(i.Arena.Allocate(Item{
		Kind:    ItemExpr,
		Span:    sp,
		Payload: PayloadID(payload),
	}))
}

// Expr returns the payload of an ItemExpr.
func (i *Items) Expr(id ItemID) (*ExprItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemExpr || !item.Payload.IsValid() {
		return nil, false
	}
	return i.Exprs.Get(uint32(item.Payload)), true
}
