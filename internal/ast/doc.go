// Package ast holds the syntax tree produced by the parser.
//
// Nodes live in typed arenas owned by a Builder and refer to each other by
// 1-based IDs; the zero ID of every kind means "absent". Each node carries
// a source.Span.
//
// The variant sets are closed: an Item is ItemEmpty or ItemExpr, an Expr is
// ExprInt, ExprFloat, ExprBool or ExprName. Kind-specific data sits in a
// per-kind payload arena and is read back through the typed accessors
// (Exprs.Int, Exprs.Name, Items.Expr, ...), which report false when the kind
// does not match.
package ast
