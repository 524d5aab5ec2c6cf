// File: construct.go
// Role: validated constructors for every Expr node kind (spec.md §3.1).
// Each constructor checks the op's declared signature (source count, source
// dtypes, result dtype) before allocating, so a malformed Expr can never
// exist — invalid construction is reported here, not discovered later
// during simplification or evaluation.

package scalar

import (
	"github.com/luisdiaz1997/gojax/dtype"
)

// Const builds a no-source literal node of dtype d. v must be the Go value
// matching d (int32, uint32, float32, bool); Float16 literals are carried
// as float32 and narrowed by backends on materialization.
func Const(d dtype.DType, v interface{}) (*Expr, error) {
	if !d.Valid() {
		return nil, wrapDtype(ErrBadLiteral, "invalid dtype for const")
	}
	if !literalMatches(d, v) {
		return nil, wrapDtype(ErrBadLiteral, "literal %v does not match dtype %s", v, d)
	}
	return &Expr{op: OpConst, dtype: d, arg: v}, nil
}

func literalMatches(d dtype.DType, v interface{}) bool {
	switch d {
	case dtype.Int32:
		_, ok := v.(int32)
		return ok
	case dtype.Uint32:
		_, ok := v.(uint32)
		return ok
	case dtype.Float32, dtype.Float16:
		_, ok := v.(float32)
		return ok
	case dtype.Bool:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}

// Special builds a symbolic free variable of dtype Int32 named name,
// bounded (exclusive) by n. Used for loop induction: "gidx" over a kernel's
// output linear index, "ridx" over a reduction axis.
func Special(name string, n int64) (*Expr, error) {
	if name == "" {
		return nil, wrapDtype(ErrBadLiteral, "special variable name must not be empty")
	}
	if n < 0 {
		return nil, wrapDtype(ErrBadLiteral, "special variable bound must be >= 0, got %d", n)
	}
	return &Expr{op: OpSpecial, dtype: dtype.Int32, arg: SpecialArg{Name: name, N: n}}, nil
}

// GlobalIndex builds a node reading bound input buffer gid at the linear
// index computed by index, which must be an integer-dtype expression.
// resultDType is the dtype of the buffer being read (not necessarily the
// dtype of index).
func GlobalIndex(gid int, index *Expr, resultDType dtype.DType) (*Expr, error) {
	if gid < 0 {
		return nil, wrapDtype(ErrBadLiteral, "global index gid must be >= 0, got %d", gid)
	}
	if index == nil {
		return nil, wrapDtype(ErrBadArity, "global index requires an index source")
	}
	if !index.dtype.IsInt() {
		return nil, wrapDtype(ErrNotFloat, "global index source must be integer dtype, got %s", index.dtype)
	}
	if !resultDType.Valid() {
		return nil, wrapDtype(ErrBadLiteral, "invalid result dtype for global index")
	}
	return &Expr{
		op:      OpGlobalIndex,
		dtype:   resultDType,
		sources: []*Expr{index},
		arg:     GlobalIndexArg{GID: gid},
	}, nil
}

func binaryArith(op Op, a, b *Expr) (*Expr, error) {
	if a == nil || b == nil {
		return nil, wrapDtype(ErrBadArity, "%s requires two sources", op)
	}
	if a.dtype != b.dtype {
		return nil, wrapDtype(ErrDtypeMismatch, "%s: %s vs %s", op, a.dtype, b.dtype)
	}
	return &Expr{op: op, dtype: a.dtype, sources: []*Expr{a, b}}, nil
}

// Add builds a+b. When the dtype is Bool, add means logical OR (spec.md §3.1).
func Add(a, b *Expr) (*Expr, error) { return binaryArith(OpAdd, a, b) }

// Sub builds a-b. Undefined (DtypeError) for Bool operands.
func Sub(a, b *Expr) (*Expr, error) {
	if a != nil && a.dtype == dtype.Bool {
		return nil, wrapDtype(ErrDtypeMismatch, "sub is undefined for bool operands")
	}
	return binaryArith(OpSub, a, b)
}

// Mul builds a*b. When the dtype is Bool, mul means logical AND.
func Mul(a, b *Expr) (*Expr, error) { return binaryArith(OpMul, a, b) }

// IDiv builds a div b with floor semantics (truncation toward negative
// infinity for integer operands).
func IDiv(a, b *Expr) (*Expr, error) { return binaryArith(OpIDiv, a, b) }

// Mod builds a mod b, the floor-division complement of IDiv.
func Mod(a, b *Expr) (*Expr, error) { return binaryArith(OpMod, a, b) }

func comparison(op Op, a, b *Expr) (*Expr, error) {
	if a == nil || b == nil {
		return nil, wrapDtype(ErrBadArity, "%s requires two sources", op)
	}
	if a.dtype != b.dtype {
		return nil, wrapDtype(ErrDtypeMismatch, "%s: %s vs %s", op, a.dtype, b.dtype)
	}
	return &Expr{op: op, dtype: dtype.Bool, sources: []*Expr{a, b}}, nil
}

// CmpLT builds a<b, producing a Bool result.
func CmpLT(a, b *Expr) (*Expr, error) { return comparison(OpCmpLT, a, b) }

// CmpNE builds a!=b, producing a Bool result.
func CmpNE(a, b *Expr) (*Expr, error) { return comparison(OpCmpNE, a, b) }

func unaryFloat(op Op, a *Expr) (*Expr, error) {
	if a == nil {
		return nil, wrapDtype(ErrBadArity, "%s requires one source", op)
	}
	if !a.dtype.IsFloat() {
		return nil, wrapDtype(ErrNotFloat, "%s requires a floating operand, got %s", op, a.dtype)
	}
	return &Expr{op: op, dtype: a.dtype, sources: []*Expr{a}}, nil
}

// Sin builds sin(a). a must be a floating dtype.
func Sin(a *Expr) (*Expr, error) { return unaryFloat(OpSin, a) }

// Cos builds cos(a). a must be a floating dtype.
func Cos(a *Expr) (*Expr, error) { return unaryFloat(OpCos, a) }

// Recip builds 1/a. a must be a floating dtype.
func Recip(a *Expr) (*Expr, error) { return unaryFloat(OpRecip, a) }

// Cast builds a node reinterpreting a's value as dtype to.
func Cast(a *Expr, to dtype.DType) (*Expr, error) {
	if a == nil {
		return nil, wrapDtype(ErrBadArity, "cast requires one source")
	}
	if !to.Valid() {
		return nil, wrapDtype(ErrBadLiteral, "invalid cast target dtype")
	}
	if a.dtype == to {
		return a, nil
	}
	return &Expr{op: OpCast, dtype: to, sources: []*Expr{a}}, nil
}

// Where builds where(cond, a, b): cond must be Bool; a and b must share a
// dtype, which becomes the result dtype.
func Where(cond, a, b *Expr) (*Expr, error) {
	if cond == nil || a == nil || b == nil {
		return nil, wrapDtype(ErrBadArity, "where requires three sources")
	}
	if cond.dtype != dtype.Bool {
		return nil, wrapDtype(ErrNotBool, "where condition must be bool, got %s", cond.dtype)
	}
	if a.dtype != b.dtype {
		return nil, wrapDtype(ErrDtypeMismatch, "where: %s vs %s", a.dtype, b.dtype)
	}
	return &Expr{op: OpWhere, dtype: a.dtype, sources: []*Expr{cond, a, b}}, nil
}
