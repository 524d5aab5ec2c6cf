// File: evaluate.go
// Role: the reference evaluator for ScalarExpr, used both as the ground
// truth constant-folding step inside Simplify and as gojax's CPU-less way
// to check a kernel's semantics in tests (spec.md §8: "constant-folded
// evaluation agrees bit-exactly with direct CPU execution").

package scalar

import (
	"fmt"
	"math"

	"github.com/luisdiaz1997/gojax/dtype"
)

// Env supplies the free bindings Evaluate needs beyond the Expr tree
// itself: the bound value of every OpSpecial variable in scope, and a
// reader for OpGlobalIndex nodes.
type Env struct {
	// Specials maps a SpecialArg.Name to its current bound value.
	Specials map[string]int64
	// Global reads bound input buffer gid at linear index idx. May be nil
	// if the expression contains no OpGlobalIndex node.
	Global func(gid int, idx int64) (interface{}, error)
}

// Evaluate walks e bottom-up and returns its value under env. The returned
// value's Go type matches e.DType() (int32, uint32, float32, or bool).
func Evaluate(e *Expr, env Env) (interface{}, error) {
	if e == nil {
		return nil, wrapDtype(ErrBadArity, "cannot evaluate nil expression")
	}
	switch e.op {
	case OpConst:
		return e.arg, nil

	case OpSpecial:
		sa := e.arg.(SpecialArg)
		v, ok := env.Specials[sa.Name]
		if !ok {
			return nil, fmt.Errorf("scalar: %q: %w", sa.Name, ErrUnboundSpecial)
		}
		if v < 0 || (sa.N > 0 && v >= sa.N) {
			return nil, fmt.Errorf("scalar: special %q value %d out of bound [0,%d)", sa.Name, v, sa.N)
		}
		return int32(v), nil

	case OpGlobalIndex:
		if env.Global == nil {
			return nil, fmt.Errorf("scalar: %w", ErrNoGlobalReader)
		}
		ga := e.arg.(GlobalIndexArg)
		idxV, err := Evaluate(e.sources[0], env)
		if err != nil {
			return nil, err
		}
		idx, err := asInt64(idxV)
		if err != nil {
			return nil, err
		}
		return env.Global(ga.GID, idx)

	case OpAdd, OpSub, OpMul, OpIDiv, OpMod:
		a, err := Evaluate(e.sources[0], env)
		if err != nil {
			return nil, err
		}
		b, err := Evaluate(e.sources[1], env)
		if err != nil {
			return nil, err
		}
		return evalBinary(e.op, e.dtype, a, b)

	case OpCmpLT, OpCmpNE:
		a, err := Evaluate(e.sources[0], env)
		if err != nil {
			return nil, err
		}
		b, err := Evaluate(e.sources[1], env)
		if err != nil {
			return nil, err
		}
		return evalCompare(e.op, e.sources[0].dtype, a, b)

	case OpSin, OpCos, OpRecip:
		a, err := Evaluate(e.sources[0], env)
		if err != nil {
			return nil, err
		}
		f, err := asFloat32(a)
		if err != nil {
			return nil, err
		}
		switch e.op {
		case OpSin:
			return float32(math.Sin(float64(f))), nil
		case OpCos:
			return float32(math.Cos(float64(f))), nil
		default:
			return float32(1) / f, nil
		}

	case OpCast:
		v, err := Evaluate(e.sources[0], env)
		if err != nil {
			return nil, err
		}
		return castValue(e.dtype, v)

	case OpWhere:
		c, err := Evaluate(e.sources[0], env)
		if err != nil {
			return nil, err
		}
		cb, err := asBool(c)
		if err != nil {
			return nil, err
		}
		if cb {
			return Evaluate(e.sources[1], env)
		}
		return Evaluate(e.sources[2], env)

	default:
		return nil, fmt.Errorf("scalar: unknown op %s", e.op)
	}
}

func evalBinary(op Op, resultDType dtype.DType, a, b interface{}) (interface{}, error) {
	if resultDType == dtype.Bool {
		ab, err := asBool(a)
		if err != nil {
			return nil, err
		}
		bb, err := asBool(b)
		if err != nil {
			return nil, err
		}
		switch op {
		case OpAdd:
			return ab || bb, nil
		case OpMul:
			return ab && bb, nil
		default:
			return nil, fmt.Errorf("scalar: %s is undefined for bool operands", op)
		}
	}

	ai, aIsInt, af, err := asNumeric(a)
	if err != nil {
		return nil, err
	}
	bi, bIsInt, bf, err := asNumeric(b)
	if err != nil {
		return nil, err
	}

	if aIsInt && bIsInt {
		var r int64
		switch op {
		case OpAdd:
			r = ai + bi
		case OpSub:
			r = ai - bi
		case OpMul:
			r = ai * bi
		case OpIDiv:
			r = floorDiv(ai, bi)
		case OpMod:
			r = floorMod(ai, bi)
		}
		return castInt(resultDType, r), nil
	}

	var r float64
	switch op {
	case OpAdd:
		r = af + bf
	case OpSub:
		r = af - bf
	case OpMul:
		r = af * bf
	case OpIDiv:
		r = math.Floor(af / bf)
	case OpMod:
		r = af - math.Floor(af/bf)*bf
	}
	return float32(r), nil
}

func evalCompare(op Op, operandDType dtype.DType, a, b interface{}) (interface{}, error) {
	if operandDType.IsInt() {
		ai, _, _, err := asNumeric(a)
		if err != nil {
			return nil, err
		}
		bi, _, _, err := asNumeric(b)
		if err != nil {
			return nil, err
		}
		if op == OpCmpLT {
			return ai < bi, nil
		}
		return ai != bi, nil
	}
	if operandDType.IsFloat() {
		af, err := asFloat32(a)
		if err != nil {
			return nil, err
		}
		bf, err := asFloat32(b)
		if err != nil {
			return nil, err
		}
		if op == OpCmpLT {
			return af < bf, nil
		}
		return af != bf, nil
	}
	// Bool operands: only cmpne is meaningful in practice, but both are defined.
	ab, err := asBool(a)
	if err != nil {
		return nil, err
	}
	bb, err := asBool(b)
	if err != nil {
		return nil, err
	}
	if op == OpCmpLT {
		return !ab && bb, nil
	}
	return ab != bb, nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}

// castValue converts v (a value of some other dtype's Go representation) to
// dtype d's representation.
func castValue(d dtype.DType, v interface{}) (interface{}, error) {
	if d == dtype.Bool {
		switch t := v.(type) {
		case bool:
			return t, nil
		case int32:
			return t != 0, nil
		case uint32:
			return t != 0, nil
		case float32:
			return t != 0, nil
		default:
			return nil, wrapDtype(ErrDtypeMismatch, "cannot cast %v to bool", v)
		}
	}
	if b, ok := v.(bool); ok {
		if b {
			return castInt(d, 1), nil
		}
		return castInt(d, 0), nil
	}
	i, isInt, f, err := asNumeric(v)
	if err != nil {
		return nil, err
	}
	if d.IsFloat() {
		if isInt {
			return float32(i), nil
		}
		return float32(f), nil
	}
	if isInt {
		return castInt(d, i), nil
	}
	return castInt(d, int64(f)), nil
}

func castInt(d dtype.DType, v int64) interface{} {
	switch d {
	case dtype.Uint32:
		return uint32(v)
	case dtype.Float32, dtype.Float16:
		return float32(v)
	default:
		return int32(v)
	}
}

func asNumeric(v interface{}) (i int64, isInt bool, f float64, err error) {
	switch t := v.(type) {
	case int32:
		return int64(t), true, float64(t), nil
	case uint32:
		return int64(t), true, float64(t), nil
	case float32:
		return 0, false, float64(t), nil
	default:
		return 0, false, 0, wrapDtype(ErrDtypeMismatch, "value %v is not numeric", v)
	}
}

func asFloat32(v interface{}) (float32, error) {
	switch t := v.(type) {
	case float32:
		return t, nil
	case int32:
		return float32(t), nil
	case uint32:
		return float32(t), nil
	default:
		return 0, wrapDtype(ErrNotFloat, "value %v is not a float", v)
	}
}

func asBool(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, wrapDtype(ErrNotBool, "value %v is not a bool", v)
	}
	return b, nil
}

func asInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int32:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	default:
		return 0, wrapDtype(ErrDtypeMismatch, "value %v is not an integer index", v)
	}
}
