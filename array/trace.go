package array

import (
	"github.com/luisdiaz1997/gojax/scalar"
	"github.com/luisdiaz1997/gojax/trace"
	"github.com/luisdiaz1997/gojax/xerrors"
)

// Primitive names for the ops this package routes through trace.Bind. No
// package outside array refers to them.
const (
	PrimAdd trace.Primitive = "add"
	PrimSub trace.Primitive = "sub"
	PrimMul trace.Primitive = "mul"
	PrimNeg trace.Primitive = "neg"
)

// globalStack is the trace.Stack Add/Sub/Mul/Neg dispatch through
// (spec.md §4.1). It is unexported and nothing pushes an interpreter onto
// it, so every call sees target level 0 and runs straight at
// concreteEvaluator; the transform packages reach Add/Sub/Mul/Neg as
// ordinary method calls.
var globalStack = trace.NewStack(concreteEvaluator{})

// concreteEvaluator is the level-0 BaseEvaluator trace.Stack requires.
// It applies each primitive's arithmetic directly via the unexported op
// builders, the same computation Add/Sub/Mul/Neg performed before Bind
// was wired in front of them.
type concreteEvaluator struct{}

func (concreteEvaluator) ProcessPrimitive(prim trace.Primitive, params trace.Params, operands []trace.Tracer) ([]trace.Tracer, error) {
	switch prim {
	case PrimAdd, PrimSub, PrimMul:
		a, b, err := asBinaryOperands(operands)
		if err != nil {
			return nil, err
		}
		var build func(x, y *scalar.Expr) (*scalar.Expr, error)
		switch prim {
		case PrimAdd:
			build = scalar.Add
		case PrimSub:
			build = scalar.Sub
		case PrimMul:
			build = scalar.Mul
		}
		out, err := binaryOp(a, b, build)
		if err != nil {
			return nil, err
		}
		return []trace.Tracer{out}, nil
	case PrimNeg:
		a, err := asUnaryOperand(operands)
		if err != nil {
			return nil, err
		}
		out, err := negImpl(a)
		if err != nil {
			return nil, err
		}
		return []trace.Tracer{out}, nil
	default:
		return nil, xerrors.Unsupported("array: no base rule for primitive %q", prim)
	}
}

func asBinaryOperands(operands []trace.Tracer) (*Array, *Array, error) {
	if len(operands) != 2 {
		return nil, nil, xerrors.Unsupported("array: binary primitive wants 2 operands, got %d", len(operands))
	}
	a, ok := operands[0].(*Array)
	if !ok {
		return nil, nil, xerrors.Unsupported("array: operand 0 did not lower to a concrete *Array")
	}
	b, ok := operands[1].(*Array)
	if !ok {
		return nil, nil, xerrors.Unsupported("array: operand 1 did not lower to a concrete *Array")
	}
	return a, b, nil
}

func asUnaryOperand(operands []trace.Tracer) (*Array, error) {
	if len(operands) != 1 {
		return nil, xerrors.Unsupported("array: unary primitive wants 1 operand, got %d", len(operands))
	}
	a, ok := operands[0].(*Array)
	if !ok {
		return nil, xerrors.Unsupported("array: operand did not lower to a concrete *Array")
	}
	return a, nil
}

// dispatchBinary runs prim(a, b) through trace.Bind on the package's
// shared Stack, raising a and b to whatever level the stack (or the
// operands themselves) currently demands before evaluating.
func dispatchBinary(prim trace.Primitive, a, b *Array) (*Array, error) {
	out, err := trace.Bind(globalStack, prim, nil, []trace.Tracer{a, b})
	if err != nil {
		return nil, err
	}
	return out[0].(*Array), nil
}

// dispatchUnary is dispatchBinary's one-operand counterpart.
func dispatchUnary(prim trace.Primitive, a *Array) (*Array, error) {
	out, err := trace.Bind(globalStack, prim, nil, []trace.Tracer{a})
	if err != nil {
		return nil, err
	}
	return out[0].(*Array), nil
}

// negImpl is Neg's arithmetic, factored out so concreteEvaluator can call
// it directly without recursing back through dispatchUnary.
func negImpl(a *Array) (*Array, error) {
	return unaryOp(a, a.dt, func(x *scalar.Expr) (*scalar.Expr, error) {
		zero, err := scalar.Const(a.dt, a.dt.ZeroValue())
		if err != nil {
			return nil, err
		}
		return scalar.Sub(zero, x)
	})
}
