// Package vm evaluates a parsed program item by item.
package vm

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKInvalid represents an invalid value.
	VKInvalid ValueKind = iota
	// VKInt represents a signed integer of any magnitude.
	VKInt
	// VKFloat represents a 64-bit floating-point value.
	VKFloat
	// VKBool represents a boolean value.
	VKBool
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VKInvalid:
		return "invalid"
	case VKInt:
		return "int"
	case VKFloat:
		return "float"
	case VKBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a runtime value. Only the field matching Kind is meaningful.
type Value struct {
	Kind  ValueKind
	Int   *big.Int
	Float float64
	Bool  bool
}

func MakeInt(v *big.Int) Value  { return Value{Kind: VKInt, Int: v} }
func MakeFloat(v float64) Value { return Value{Kind: VKFloat, Float: v} }
func MakeBool(v bool) Value     { return Value{Kind: VKBool, Bool: v} }

// String renders the value the way `run` prints it: True/False for bools,
// floats always with a fractional part or an exponent.
func (v Value) String() string {
	switch v.Kind {
	case VKInt:
		if v.Int == nil {
			return "0"
		}
		return v.Int.String()
	case VKFloat:
		return formatFloat(v.Float)
	case VKBool:
		if v.Bool {
			return "True"
		}
		return "False"
	default:
		return "<invalid>"
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
