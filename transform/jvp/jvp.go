// Package jvp implements forward-mode automatic differentiation
// (spec.md §4.2). A Dual pairs a primal array with its tangent; the
// package's operations apply the linearization rule for each primitive in
// spec.md §4.1's set, so a caller builds up a dual-valued computation the
// same way they would a plain one, substituting this package's functions
// for *array.Array's methods.
//
// spec.md's tracer protocol describes primitives dispatching through a
// process-wide interpreter stack (the trace package), with a JVP
// interpreter lifting lower-level values by pairing them with a zero
// tangent. This package pushes no interpreter onto any trace.Stack; it
// applies the JVP rules directly to Dual-wrapped arrays — the same
// linearization math, without the generic multi-level dispatch. See
// DESIGN.md.
package jvp

import (
	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend"
	"github.com/luisdiaz1997/gojax/dtype"
)

// Dual pairs a primal value with its tangent, both arrays of identical
// shape and dtype.
type Dual struct {
	Primal  *array.Array
	Tangent *array.Array
}

// New pairs primal with tangent, validating that they agree on shape.
func New(primal, tangent *array.Array) (Dual, error) {
	if primal.DType() != tangent.DType() || !sameShape(primal.Shape(), tangent.Shape()) {
		return Dual{}, array.ErrRankMismatch
	}
	return Dual{Primal: primal, Tangent: tangent}, nil
}

// Zero pairs x with a structural zero tangent (spec.md §4.2: "tangents are
// initialized to structural zeros").
func Zero(x *array.Array) (Dual, error) {
	z, err := array.Zeros(x.Backend(), x.Shape(), x.DType())
	if err != nil {
		return Dual{}, err
	}
	return Dual{Primal: x, Tangent: z}, nil
}

func sameShape(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Add: (x+y, dx+dy).
func Add(a, b Dual) (Dual, error) {
	p, err := a.Primal.Add(b.Primal)
	if err != nil {
		return Dual{}, err
	}
	t, err := a.Tangent.Add(b.Tangent)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// Sub: (x-y, dx-dy).
func Sub(a, b Dual) (Dual, error) {
	p, err := a.Primal.Sub(b.Primal)
	if err != nil {
		return Dual{}, err
	}
	t, err := a.Tangent.Sub(b.Tangent)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// Mul: (xy, x·dy + dx·y).
func Mul(a, b Dual) (Dual, error) {
	p, err := a.Primal.Mul(b.Primal)
	if err != nil {
		return Dual{}, err
	}
	xdy, err := a.Primal.Mul(b.Tangent)
	if err != nil {
		return Dual{}, err
	}
	dxy, err := a.Tangent.Mul(b.Primal)
	if err != nil {
		return Dual{}, err
	}
	t, err := xdy.Add(dxy)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// Neg: (-x, -dx).
func Neg(a Dual) (Dual, error) {
	p, err := a.Primal.Neg()
	if err != nil {
		return Dual{}, err
	}
	t, err := a.Tangent.Neg()
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// Reciprocal: (1/x, -(1/x)²·dx).
func Reciprocal(a Dual) (Dual, error) {
	p, err := a.Primal.Reciprocal()
	if err != nil {
		return Dual{}, err
	}
	psq, err := p.Mul(p)
	if err != nil {
		return Dual{}, err
	}
	negPsq, err := psq.Neg()
	if err != nil {
		return Dual{}, err
	}
	t, err := negPsq.Mul(a.Tangent)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// Sin: (sin(x), cos(x)·dx).
func Sin(a Dual) (Dual, error) {
	p, err := a.Primal.Sin()
	if err != nil {
		return Dual{}, err
	}
	c, err := a.Primal.Cos()
	if err != nil {
		return Dual{}, err
	}
	t, err := c.Mul(a.Tangent)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// Cos: (cos(x), -sin(x)·dx).
func Cos(a Dual) (Dual, error) {
	p, err := a.Primal.Cos()
	if err != nil {
		return Dual{}, err
	}
	s, err := a.Primal.Sin()
	if err != nil {
		return Dual{}, err
	}
	negS, err := s.Neg()
	if err != nil {
		return Dual{}, err
	}
	t, err := negS.Mul(a.Tangent)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// Min: primal min(x,y); tangent dy if y<x, else dx, so on a tie (x == y)
// the tangent is dx, the first operand's (spec.md §4.2).
func Min(a, b Dual) (Dual, error) {
	p, err := a.Primal.Min(b.Primal)
	if err != nil {
		return Dual{}, err
	}
	yLtX, err := b.Primal.CmpLT(a.Primal)
	if err != nil {
		return Dual{}, err
	}
	t, err := array.Where(yLtX, b.Tangent, a.Tangent)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// Max: primal max(x,y); tangent dy if y<x, else dx, so on a tie the
// tangent is dx (spec.md §4.2 — the same selector as Min, since the rule
// names the same condition for both primitives).
func Max(a, b Dual) (Dual, error) {
	p, err := a.Primal.Max(b.Primal)
	if err != nil {
		return Dual{}, err
	}
	yLtX, err := b.Primal.CmpLT(a.Primal)
	if err != nil {
		return Dual{}, err
	}
	t, err := array.Where(yLtX, b.Tangent, a.Tangent)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// CmpLT and CmpNE are boolean-producing: their tangent is forced to zero.
func CmpLT(a, b Dual) (Dual, error) { return compareZeroTangent(a, b, (*array.Array).CmpLT) }
func CmpNE(a, b Dual) (Dual, error) { return compareZeroTangent(a, b, (*array.Array).CmpNE) }

func compareZeroTangent(a, b Dual, cmp func(*array.Array, *array.Array) (*array.Array, error)) (Dual, error) {
	p, err := cmp(a.Primal, b.Primal)
	if err != nil {
		return Dual{}, err
	}
	z, err := array.Zeros(p.Backend(), p.Shape(), p.DType())
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, z}, nil
}

// Where: primal where(c,a,b); tangent where(c,da,db). c carries no
// tangent (it is boolean).
func Where(cond *array.Array, a, b Dual) (Dual, error) {
	p, err := array.Where(cond, a.Primal, b.Primal)
	if err != nil {
		return Dual{}, err
	}
	t, err := array.Where(cond, a.Tangent, b.Tangent)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// ReduceSum commutes with itself: the tangent of a sum is the sum of
// tangents.
func ReduceSum(a Dual, axes []int, keepdims bool) (Dual, error) {
	p, err := a.Primal.ReduceSum(axes, keepdims)
	if err != nil {
		return Dual{}, err
	}
	t, err := a.Tangent.ReduceSum(axes, keepdims)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// Transpose, Reshape, BroadcastTo, and Flip commute identically with
// themselves on the tangent (spec.md §4.2).
func Transpose(a Dual, perm []int) (Dual, error) {
	p, err := a.Primal.Transpose(perm)
	if err != nil {
		return Dual{}, err
	}
	t, err := a.Tangent.Transpose(perm)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

func Reshape(a Dual, shape []int64) (Dual, error) {
	p, err := a.Primal.Reshape(shape)
	if err != nil {
		return Dual{}, err
	}
	t, err := a.Tangent.Reshape(shape)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

func BroadcastTo(a Dual, shape []int64) (Dual, error) {
	p, err := a.Primal.BroadcastTo(shape)
	if err != nil {
		return Dual{}, err
	}
	t, err := a.Tangent.BroadcastTo(shape)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

func Flip(a Dual, axes []int) (Dual, error) {
	p, err := a.Primal.Flip(axes)
	if err != nil {
		return Dual{}, err
	}
	t, err := a.Tangent.Flip(axes)
	if err != nil {
		return Dual{}, err
	}
	return Dual{p, t}, nil
}

// JVP runs f at (primal, tangent) and returns the resulting primal and
// tangent arrays (spec.md §4.6: "jvp(f, primals, tangents) →
// (primal_out, tangent_out)").
func JVP(f func(Dual) (Dual, error), primal, tangent *array.Array) (*array.Array, *array.Array, error) {
	d, err := New(primal, tangent)
	if err != nil {
		return nil, nil, err
	}
	out, err := f(d)
	if err != nil {
		return nil, nil, err
	}
	return out.Primal, out.Tangent, nil
}

// JacFwd computes the Jacobian of f at x by forward-mode AD, running one
// JVP call per standard basis vector of x's flattened element space
// (spec.md §4.6: "jacfwd(f, x)"). The result has shape
// f(x).Shape() + x.Shape(), so jac[i...,j...] = d(f(x)[i...])/d(x[j...]).
func JacFwd(f func(Dual) (Dual, error), x *array.Array) (*array.Array, error) {
	be := x.Backend()
	n := x.NumElements()
	zero, err := array.Zeros(be, x.Shape(), x.DType())
	if err != nil {
		return nil, err
	}
	probe, _, err := JVP(f, x, zero)
	if err != nil {
		return nil, err
	}
	outShape := probe.Shape()
	outN := probe.NumElements()

	cols := make([]*array.Array, n)
	for i := int64(0); i < n; i++ {
		basis, err := oneHot(be, x.DType(), n, i)
		if err != nil {
			return nil, err
		}
		basisShaped, err := basis.Reshape(x.Shape())
		if err != nil {
			return nil, err
		}
		_, tangent, err := JVP(f, x, basisShaped)
		if err != nil {
			return nil, err
		}
		col, err := tangent.Reshape([]int64{outN})
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	if n == 0 {
		return array.Zeros(be, append(append([]int64(nil), outShape...), x.Shape()...), x.DType())
	}
	stacked, err := array.Stack(0, cols) // [n, outN]
	if err != nil {
		return nil, err
	}
	transposed, err := stacked.Transpose([]int{1, 0}) // [outN, n]
	if err != nil {
		return nil, err
	}
	finalShape := append(append([]int64(nil), outShape...), x.Shape()...)
	return transposed.Reshape(finalShape)
}

// Grad returns the gradient of a scalar-valued f at x, i.e. JacFwd(f, x)
// reshaped to x's shape (spec.md §4.6: "grad(f, argnum?=0) → g"). f must
// produce a rank-0 (single-element) output.
func Grad(f func(Dual) (Dual, error), x *array.Array) (*array.Array, error) {
	jac, err := JacFwd(f, x)
	if err != nil {
		return nil, err
	}
	return jac.Reshape(x.Shape())
}

// oneHot builds a length-n vector with a 1 (or true) at position i and
// the dtype's zero elsewhere, used to probe one Jacobian column at a time.
func oneHot(be backend.Backend, dt dtype.DType, n, i int64) (*array.Array, error) {
	switch dt {
	case dtype.Float32, dtype.Float16:
		data := make([]float32, n)
		data[i] = 1
		return array.FromFloat32(be, []int64{n}, data)
	case dtype.Int32:
		data := make([]int32, n)
		data[i] = 1
		return array.FromInt32(be, []int64{n}, data)
	case dtype.Uint32:
		data := make([]uint32, n)
		data[i] = 1
		return array.FromUint32(be, []int64{n}, data)
	default:
		return nil, ErrUnsupportedDType
	}
}
