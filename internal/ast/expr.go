package ast

import (
	"math/big"

	"ember/internal/source"
)

type ExprKind uint8

const (
	ExprInt ExprKind = iota
	ExprFloat
	ExprBool
	ExprName
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprFloat:
		return "Float"
	case ExprBool:
		return "Bool"
	case ExprName:
		return "Name"
	default:
		return "ExprKind(?)"
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprIntData holds an integer literal of any magnitude. Value is never nil.
type ExprIntData struct {
	Value *big.Int
}

type ExprFloatData struct {
	Value float64
}

type ExprBoolData struct {
	Value bool
}

type ExprNameData struct {
	Name source.StringID
}
