// Package vmap implements batching (spec.md §4.3). A Batched value wraps
// an array together with which axis (if any) carries the batch dimension;
// this package's operations apply the batching rule for each primitive,
// moving a batched axis to position 0 before delegating to the
// corresponding *array.Array method, the same simplification jvp makes
// relative to the generic interpreter-stack protocol described in
// spec.md §4.1 (see DESIGN.md).
package vmap

import (
	"github.com/luisdiaz1997/gojax/array"
)

// Unbatched marks a Batched value that carries no batch axis.
const Unbatched = -1

// Batched pairs a value with the axis (or Unbatched) along which it is
// batched.
type Batched struct {
	Value *array.Array
	Axis  int
}

func notBatched(v *array.Array) Batched { return Batched{Value: v, Axis: Unbatched} }

// moveAxisToFront returns b's value with its batch axis moved to 0,
// singleton-broadcasting an unbatched value by
// inserting a size-1 leading axis and expanding it to targetSize.
func moveAxisToFront(b Batched, targetSize int64) (*array.Array, error) {
	if b.Axis == Unbatched {
		shape := append([]int64{1}, b.Value.Shape()...)
		reshaped, err := b.Value.Reshape(shape)
		if err != nil {
			return nil, err
		}
		shape[0] = targetSize
		return reshaped.BroadcastTo(shape)
	}
	if b.Axis == 0 {
		return b.Value, nil
	}
	perm := make([]int, b.Value.Rank())
	perm[0] = b.Axis
	j := 1
	for i := 0; i < b.Value.Rank(); i++ {
		if i != b.Axis {
			perm[j] = i
			j++
		}
	}
	return b.Value.Transpose(perm)
}

func batchSize(operands ...Batched) (int64, error) {
	size := int64(-1)
	for _, b := range operands {
		if b.Axis == Unbatched {
			continue
		}
		s := b.Value.Shape()[b.Axis]
		if size == -1 {
			size = s
		} else if size != s {
			return 0, ErrAxisSizeMismatch
		}
	}
	return size, nil
}

// binaryRule is the pointwise batching rule shared by every binary
// primitive: if either operand is batched, both are aligned to batch axis
// 0 (broadcasting the unbatched one), the primitive runs on the leading
// batch dimension, and the result is declared batched at axis 0. If
// neither operand is batched, the call forwards unchanged.
func binaryRule(a, b Batched, op func(x, y *array.Array) (*array.Array, error)) (Batched, error) {
	if a.Axis == Unbatched && b.Axis == Unbatched {
		v, err := op(a.Value, b.Value)
		return Batched{v, Unbatched}, err
	}
	size, err := batchSize(a, b)
	if err != nil {
		return Batched{}, err
	}
	av, err := moveAxisToFront(a, size)
	if err != nil {
		return Batched{}, err
	}
	bv, err := moveAxisToFront(b, size)
	if err != nil {
		return Batched{}, err
	}
	v, err := op(av, bv)
	if err != nil {
		return Batched{}, err
	}
	return Batched{v, 0}, nil
}

func unaryRule(a Batched, op func(x *array.Array) (*array.Array, error)) (Batched, error) {
	v, err := op(a.Value)
	if err != nil {
		return Batched{}, err
	}
	return Batched{v, a.Axis}, nil
}

func Add(a, b Batched) (Batched, error) { return binaryRule(a, b, (*array.Array).Add) }
func Sub(a, b Batched) (Batched, error) { return binaryRule(a, b, (*array.Array).Sub) }
func Mul(a, b Batched) (Batched, error) { return binaryRule(a, b, (*array.Array).Mul) }
func IDiv(a, b Batched) (Batched, error) { return binaryRule(a, b, (*array.Array).IDiv) }
func Min(a, b Batched) (Batched, error) { return binaryRule(a, b, (*array.Array).Min) }
func Max(a, b Batched) (Batched, error) { return binaryRule(a, b, (*array.Array).Max) }
func CmpLT(a, b Batched) (Batched, error) { return binaryRule(a, b, (*array.Array).CmpLT) }
func CmpNE(a, b Batched) (Batched, error) { return binaryRule(a, b, (*array.Array).CmpNE) }

func Neg(a Batched) (Batched, error)        { return unaryRule(a, (*array.Array).Neg) }
func Reciprocal(a Batched) (Batched, error) { return unaryRule(a, (*array.Array).Reciprocal) }
func Sin(a Batched) (Batched, error)        { return unaryRule(a, (*array.Array).Sin) }
func Cos(a Batched) (Batched, error)        { return unaryRule(a, (*array.Array).Cos) }

// Where rewrites cond, a, and b to a common batch axis 0 (or forwards
// unbatched) before selecting.
func Where(cond, a, b Batched) (Batched, error) {
	if cond.Axis == Unbatched && a.Axis == Unbatched && b.Axis == Unbatched {
		v, err := array.Where(cond.Value, a.Value, b.Value)
		return Batched{v, Unbatched}, err
	}
	size, err := batchSize(cond, a, b)
	if err != nil {
		return Batched{}, err
	}
	cv, err := moveAxisToFront(cond, size)
	if err != nil {
		return Batched{}, err
	}
	av, err := moveAxisToFront(a, size)
	if err != nil {
		return Batched{}, err
	}
	bv, err := moveAxisToFront(b, size)
	if err != nil {
		return Batched{}, err
	}
	v, err := array.Where(cv, av, bv)
	if err != nil {
		return Batched{}, err
	}
	return Batched{v, 0}, nil
}

// ReduceSum adjusts axes by +1 for every requested axis >= the batch axis
// (so the batch dimension itself is never reduced), and reports the new
// batch axis as the old one minus the count of reduced axes preceding it
// (spec.md §4.3).
func ReduceSum(a Batched, axes []int, keepdims bool) (Batched, error) {
	if a.Axis == Unbatched {
		v, err := a.Value.ReduceSum(axes, keepdims)
		return Batched{v, Unbatched}, err
	}
	adjusted := make([]int, len(axes))
	preceding := 0
	for i, ax := range axes {
		if ax >= a.Axis {
			adjusted[i] = ax + 1
		} else {
			adjusted[i] = ax
			preceding++
		}
	}
	v, err := a.Value.ReduceSum(adjusted, keepdims)
	if err != nil {
		return Batched{}, err
	}
	newAxis := a.Axis
	if !keepdims {
		newAxis = a.Axis - preceding
	}
	return Batched{v, newAxis}, nil
}

// Transpose moves the batch dimension to axis 0 and applies perm to the
// remaining (per-example) axes; the result is batched at axis 0.
func Transpose(a Batched, perm []int) (Batched, error) {
	if a.Axis == Unbatched {
		v, err := a.Value.Transpose(perm)
		return Batched{v, Unbatched}, err
	}
	full := make([]int, 0, len(perm)+1)
	full = append(full, a.Axis)
	for _, p := range perm {
		q := p
		if q >= a.Axis {
			q++
		}
		full = append(full, q)
	}
	v, err := a.Value.Transpose(full)
	if err != nil {
		return Batched{}, err
	}
	return Batched{v, 0}, nil
}

// Flip threads the batch dimension through unchanged; requested axes are
// shifted by +1 where they fall at or after the batch axis.
func Flip(a Batched, axes []int) (Batched, error) {
	if a.Axis == Unbatched {
		v, err := a.Value.Flip(axes)
		return Batched{v, Unbatched}, err
	}
	adjusted := make([]int, len(axes))
	for i, ax := range axes {
		if ax >= a.Axis {
			adjusted[i] = ax + 1
		} else {
			adjusted[i] = ax
		}
	}
	v, err := a.Value.Flip(adjusted)
	if err != nil {
		return Batched{}, err
	}
	return Batched{v, a.Axis}, nil
}

// VMap runs f once over arrays stacked along inAxis, batching the whole
// call (spec.md §4.6: "vmap(f, inAxes)"). Each input is wrapped as Batched
// at inAxis before f runs; the result's batch axis is reported alongside
// its value.
func VMap(f func(Batched) (Batched, error), x *array.Array, inAxis int) (*array.Array, int, error) {
	out, err := f(Batched{Value: x, Axis: inAxis})
	if err != nil {
		return nil, 0, err
	}
	return out.Value, out.Axis, nil
}

// Lift wraps a plain array as unbatched, for use when composing f's body
// with values that are not vmap'd inputs (e.g. closed-over constants).
func Lift(v *array.Array) Batched { return notBatched(v) }
