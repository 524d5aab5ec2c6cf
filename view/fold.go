// File: fold.go
// Role: composes a ShapeTracker into the scalar.Expr that computes a
// backing-buffer linear index from an output linear index (spec.md §3.2
// "Index folding"). This is the seam between the shape tracker and the
// scalar IR: the kernel materializer (package materialize) calls FoldIndex
// once per array use and substitutes the result as a GlobalIndex source.

package view

import (
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/scalar"
)

// FoldIndex computes, for output linear index expression outIdx (an
// Int32-dtype scalar.Expr over the tracker's own shape), the expression
// that reads the tracker's backing buffer. It returns the final linear
// index expression and, if any view along the way carries a mask, a
// boolean "in bounds" expression; the caller (materialize) is responsible
// for wrapping the eventual buffer read with
// Where(inBounds, read, zero-of-dtype) — spec.md §3.2: "reads outside the
// mask yield the dtype's zero".
//
// Composition is right-to-left per spec.md §3.2: Views[0] is folded first
// (closest to the user), and its result becomes the "output index" fed
// into Views[1], and so on.
func FoldIndex(st *ShapeTracker, outIdx *scalar.Expr) (index *scalar.Expr, inBounds *scalar.Expr, err error) {
	cur := outIdx
	var mask *scalar.Expr
	for _, v := range st.Views {
		next, dimMask, ferr := foldOneView(v, cur)
		if ferr != nil {
			return nil, nil, ferr
		}
		cur = next
		if dimMask != nil {
			if mask == nil {
				mask = dimMask
			} else {
				mask, err = scalar.Mul(mask, dimMask)
				if err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return cur, mask, nil
}

// foldOneView unravels lin (a linear index over v.Shape) into per-dimension
// coordinates, re-ravels them against v.Strides + v.Offset, and — for any
// masked dimension — both clamps the coordinate used for addressing to 0
// (so the computed index never goes out of range even when unused) and
// accumulates a boolean "this dimension is in range" term.
func foldOneView(v *View, lin *scalar.Expr) (*scalar.Expr, *scalar.Expr, error) {
	n := v.Rank()
	coords := make([]*scalar.Expr, n)
	remaining := lin

	for d := n - 1; d >= 0; d-- {
		size := v.Shape[d]
		if size <= 1 {
			coords[d] = mustConstI32(0)
			continue
		}
		sizeConst := mustConstI32(size)
		coord, err := scalar.Mod(remaining, sizeConst)
		if err != nil {
			return nil, nil, err
		}
		coords[d] = coord
		remaining, err = scalar.IDiv(remaining, sizeConst)
		if err != nil {
			return nil, nil, err
		}
	}

	idxExpr := mustConstI32(v.Offset)
	var mask *scalar.Expr
	for d := 0; d < n; d++ {
		c := coords[d]
		if v.Mask != nil {
			m := v.Mask[d]
			dimInRange, c2, err := maskedCoord(c, m)
			if err != nil {
				return nil, nil, err
			}
			c = c2
			if mask == nil {
				mask = dimInRange
			} else {
				mask, err = scalar.Mul(mask, dimInRange)
				if err != nil {
					return nil, nil, err
				}
			}
		}
		term, err := scalar.Mul(c, mustConstI32(v.Strides[d]))
		if err != nil {
			return nil, nil, err
		}
		idxExpr, err = scalar.Add(idxExpr, term)
		if err != nil {
			return nil, nil, err
		}
	}
	return idxExpr, mask, nil
}

// maskedCoord returns (inRange, clampedCoord) for coordinate c against mask
// range m: inRange = (c >= m.Begin) && (c < m.End); clampedCoord is c when
// in range, else 0.
func maskedCoord(c *scalar.Expr, m MaskRange) (*scalar.Expr, *scalar.Expr, error) {
	ltBegin, err := scalar.CmpLT(c, mustConstI32(m.Begin))
	if err != nil {
		return nil, nil, err
	}
	geBegin, err := logicalNot(ltBegin)
	if err != nil {
		return nil, nil, err
	}
	ltEnd, err := scalar.CmpLT(c, mustConstI32(m.End))
	if err != nil {
		return nil, nil, err
	}
	inRange, err := scalar.Mul(geBegin, ltEnd)
	if err != nil {
		return nil, nil, err
	}
	clamped, err := scalar.Where(inRange, c, mustConstI32(0))
	if err != nil {
		return nil, nil, err
	}
	return inRange, clamped, nil
}

// logicalNot builds !b as b != true (scalar has no dedicated NOT op; CmpNE
// on Bool operands is its exact equivalent).
func logicalNot(b *scalar.Expr) (*scalar.Expr, error) {
	t, err := scalar.Const(dtype.Bool, true)
	if err != nil {
		return nil, err
	}
	return scalar.CmpNE(b, t)
}

func mustConstI32(v int64) *scalar.Expr {
	e, err := scalar.Const(dtype.Int32, int32(v))
	if err != nil {
		// v always fits a declared int32 literal built from our own shape
		// bookkeeping; a failure here is a programmer error, not user input.
		panic(err)
	}
	return e
}
