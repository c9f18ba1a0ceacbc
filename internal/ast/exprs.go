package ast

import (
	"math/big"

	"ember/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena  *Arena[Expr]
	Ints   *Arena[ExprIntData]
	Floats *Arena[ExprFloatData]
	Bools  *Arena[ExprBoolData]
	Names  *Arena[ExprNameData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<7 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Exprs{
		Arena:  NewArena[Expr](capHint),
		Ints:   NewArena[ExprIntData](capHint),
		Floats: NewArena[ExprFloatData](capHint),
		Bools:  NewArena[ExprBoolData](capHint),
		Names:  NewArena[ExprNameData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewInt creates a new integer literal. A nil value is stored as zero.
func (e *Exprs) NewInt(span source.Span, value *big.Int) ExprID {
	if value == nil {
		value = new(big.Int)
	}
	payload := e.Ints.Allocate(ExprIntData{Value: value})
	return e.new(ExprInt, span, PayloadID(payload))
}

// Int returns the integer data for the given expression ID.
func (e *Exprs) Int(id ExprID) (*ExprIntData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprInt {
		return nil, false
	}
	return e.Ints.Get(uint32(expr.Payload)), true
}

// NewFloat creates a new floating-point literal.
func (e *Exprs) NewFloat(span source.Span, value float64) ExprID {
	payload := e.Floats.Allocate(ExprFloatData{Value: value})
	return e.new(ExprFloat, span, PayloadID(payload))
}

// Float returns the float data for the given expression ID.
func (e *Exprs) Float(id ExprID) (*ExprFloatData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFloat {
		return nil, false
	}
	return e.Floats.Get(uint32(expr.Payload)), true
}

// NewBool creates a new boolean literal.
func (e *Exprs) NewBool(span source.Span, value bool) ExprID {
	payload := e.Bools.Allocate(ExprBoolData{Value: value})
	return e.new(ExprBool, span, PayloadID(payload))
}

// Bool returns the boolean data for the given expression ID.
func (e *Exprs) Bool(id ExprID) (*ExprBoolData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBool {
		return nil, false
	}
	return e.Bools.Get(uint32(expr.Payload)), true
}

// NewName creates a new name reference.
func (e *Exprs) NewName(span source.Span, name source.StringID) ExprID {
	payload := e.Names.Allocate(ExprNameData{Name: name})
	return e.new(ExprName, span, PayloadID(payload))
}

// Name returns the name data for the given expression ID.
func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprName {
		return nil, false
	}
	return e.Names.Get(uint32(expr.Payload)), true
}
