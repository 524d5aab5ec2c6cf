package scalar

import (
	"fmt"

	"github.com/luisdiaz1997/gojax/dtype"
)

// Op tags the kind of a scalar expression node.
type Op uint8

const (
	// OpConst is a no-source literal of the node's declared dtype.
	OpConst Op = iota
	// OpSpecial is a symbolic free variable ("gidx" over an output linear
	// index, "ridx" over a reduction axis), bounded by Arg.N.
	OpSpecial
	// OpGlobalIndex reads buffer Arg.GID at the linear index given by Sources[0].
	OpGlobalIndex

	// Binary arithmetic.
	OpAdd
	OpSub
	OpMul
	OpIDiv
	OpMod

	// Comparison.
	OpCmpLT
	OpCmpNE

	// Unary math.
	OpSin
	OpCos
	// OpRecip computes 1/x for a floating operand; the scalar IR's binary
	// idiv is floor division (spec.md §3.1) and so cannot express the true
	// division array-level primitives such as reciprocal need.
	OpRecip

	// OpWhere selects Sources[1] or Sources[2] by the boolean Sources[0].
	OpWhere
	// OpCast reinterprets Sources[0]'s value as the node's own declared
	// dtype. Not part of spec.md §3.1's node list; added so array-level
	// binary ops can promote mixed-dtype operands to a common dtype before
	// dispatch (dtype.Promote), since every scalar binary op requires equal
	// operand dtypes.
	OpCast
)

// String names the op the way diagnostics and generated kernel source want.
func (o Op) String() string {
	switch o {
	case OpConst:
		return "const"
	case OpSpecial:
		return "special"
	case OpGlobalIndex:
		return "global_index"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpIDiv:
		return "idiv"
	case OpMod:
		return "mod"
	case OpCmpLT:
		return "cmplt"
	case OpCmpNE:
		return "cmpne"
	case OpSin:
		return "sin"
	case OpCos:
		return "cos"
	case OpRecip:
		return "recip"
	case OpCast:
		return "cast"
	case OpWhere:
		return "where"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// SpecialArg is the Arg payload of an OpSpecial node: a name ("gidx",
// "ridx", or a caller-chosen induction variable name) and the exclusive
// upper bound the variable ranges over.
type SpecialArg struct {
	Name string
	N    int64
}

// GlobalIndexArg is the Arg payload of an OpGlobalIndex node: which bound
// input buffer slot to read.
type GlobalIndexArg struct {
	GID int
}

// Expr is an immutable scalar expression DAG node. Fields are unexported so
// the acyclic, share-by-construction invariant can't be broken by a caller
// mutating Sources in place; use the accessor methods below.
type Expr struct {
	op      Op
	dtype   dtype.DType
	sources []*Expr
	arg     interface{}

	// key records the structural identity Simplify assigned when it interned
	// this node; structuralKey recomputes the key and does not read it.
	key string
}

// Op returns the node's operation tag.
func (e *Expr) Op() Op { return e.op }

// DType returns the node's declared result dtype.
func (e *Expr) DType() dtype.DType { return e.dtype }

// Sources returns the node's operand list. Callers must not mutate the
// returned slice; it aliases the node's own storage.
func (e *Expr) Sources() []*Expr { return e.sources }

// Arg returns the node's literal/symbolic payload: a Go value of the
// node's dtype for OpConst, a SpecialArg for OpSpecial, a GlobalIndexArg for
// OpGlobalIndex, and nil otherwise.
func (e *Expr) Arg() interface{} { return e.arg }
