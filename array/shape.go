package array

import (
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/materialize"
	"github.com/luisdiaz1997/gojax/scalar"
)

// Reshape returns a view of a with newShape, sharing the same underlying
// slot whenever the tracker can express it as a stride rewrite, else
// appending a fresh view (spec.md §3.2). Never copies data.
func (a *Array) Reshape(newShape []int64) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	if numElements(newShape) != a.NumElements() {
		return nil, shapeErr("reshape: %v has %d elements, %v wants %d", a.shape, a.NumElements(), newShape, numElements(newShape))
	}
	nt, err := a.tracker.Reshape(newShape)
	if err != nil {
		return nil, err
	}
	a.be.IncRef(a.slot)
	return a.withTracker(newShape, nt), nil
}

// Transpose permutes a's axes by perm, sharing the same underlying slot.
func (a *Array) Transpose(perm []int) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	nt, err := a.tracker.Permute(perm)
	if err != nil {
		return nil, err
	}
	newShape := make([]int64, len(perm))
	for i, ax := range perm {
		newShape[i] = a.shape[ax]
	}
	a.be.IncRef(a.slot)
	return a.withTracker(newShape, nt), nil
}

// BroadcastTo expands a to newShape (NumPy broadcasting rules, aligned from
// the trailing dimension), sharing the same underlying slot.
func (a *Array) BroadcastTo(newShape []int64) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	aligned, err := broadcastShapes(a.shape, newShape)
	if err != nil {
		return nil, err
	}
	if !sameShape(aligned, newShape) {
		return nil, shapeErr("broadcast_to: %v is not broadcastable to %v", a.shape, newShape)
	}
	nt, err := alignTracker(a.tracker, a.shape, newShape)
	if err != nil {
		return nil, err
	}
	a.be.IncRef(a.slot)
	return a.withTracker(newShape, nt), nil
}

// Slice narrows a to [begins[d], ends[d]) in every dimension d, sharing the
// same underlying slot.
func (a *Array) Slice(begins, ends []int64) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	nt, err := a.tracker.Shrink(begins, ends)
	if err != nil {
		return nil, err
	}
	newShape := make([]int64, len(begins))
	for i := range begins {
		newShape[i] = ends[i] - begins[i]
	}
	a.be.IncRef(a.slot)
	return a.withTracker(newShape, nt), nil
}

// Pad enlarges a by begins[d] before and ends[d] after each dimension,
// zero-filling the new region via the tracker's mask (spec.md §3.2).
func (a *Array) Pad(begins, ends []int64) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	nt, err := a.tracker.Pad(begins, ends)
	if err != nil {
		return nil, err
	}
	newShape := make([]int64, len(a.shape))
	for i := range a.shape {
		newShape[i] = a.shape[i] + begins[i] + ends[i]
	}
	a.be.IncRef(a.slot)
	return a.withTracker(newShape, nt), nil
}

// Flip reverses a along axes, sharing the same underlying slot.
func (a *Array) Flip(axes []int) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	nt, err := a.tracker.Flip(axes)
	if err != nil {
		return nil, err
	}
	a.be.IncRef(a.slot)
	return a.withTracker(a.shape, nt), nil
}

// Concat joins arrays along axis. Unlike the view-only shape ops above,
// this always materializes: no single ShapeTracker view can span multiple
// backing buffers, so the result is built by a kernel selecting, for each
// output index, which input buffer its axis coordinate falls into.
func Concat(axis int, arrays []*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, shapeErr("%v", ErrEmptyConcat)
	}
	first := arrays[0]
	if axis < 0 || axis >= first.Rank() {
		return nil, shapeErr("concat: axis %d out of range for rank %d", axis, first.Rank())
	}
	outShape := append([]int64(nil), first.shape...)
	axisTotal := int64(0)
	for _, arr := range arrays {
		if err := arr.checkLive(); err != nil {
			return nil, err
		}
		if arr.Rank() != first.Rank() {
			return nil, shapeErr("concat: rank mismatch %d vs %d", arr.Rank(), first.Rank())
		}
		for d := 0; d < first.Rank(); d++ {
			if d == axis {
				continue
			}
			if arr.shape[d] != first.shape[d] {
				return nil, shapeErr("concat: dim %d mismatch %d vs %d", d, arr.shape[d], first.shape[d])
			}
		}
		axisTotal += arr.shape[axis]
	}
	outShape[axis] = axisTotal

	n := numElements(outShape)
	gidx, err := materialize.Gidx(n)
	if err != nil {
		return nil, err
	}
	coords, err := unravel(gidx, outShape)
	if err != nil {
		return nil, err
	}

	slots := make([]kernel.Slot, len(arrays))
	for i, arr := range arrays {
		slots[i] = arr.slot
	}

	// Build, from the innermost (last) array outward, a chain of
	// Where(coord_axis < running_offset_end, thisRead, restOfChain).
	var expr *scalar.Expr
	runningStart := axisTotal
	for i := len(arrays) - 1; i >= 0; i-- {
		arr := arrays[i]
		runningStart -= arr.shape[axis]
		localCoords := append([]*scalar.Expr(nil), coords...)
		shifted, err := shiftCoord(coords[axis], runningStart)
		if err != nil {
			return nil, err
		}
		localCoords[axis] = shifted
		localIdx, err := ravel(localCoords, arr.shape)
		if err != nil {
			return nil, err
		}
		read, err := materialize.BuildRead(i, arr.dt, arr.tracker, localIdx)
		if err != nil {
			return nil, err
		}
		if i == len(arrays)-1 {
			expr = read
			continue
		}
		cond, err := boundedBelow(coords[axis], runningStart+arr.shape[axis])
		if err != nil {
			return nil, err
		}
		expr, err = scalar.Where(cond, read, expr)
		if err != nil {
			return nil, err
		}
	}

	k, err := kernel.New(first.dt, n, expr, nil)
	if err != nil {
		return nil, err
	}
	slot, err := materialize.Run(first.be, k, slots)
	if err != nil {
		return nil, err
	}
	return newArray(first.be, first.dt, outShape, slot)
}

// Stack joins arrays along a new axis at position axis, by reshaping each
// to insert a size-1 dimension there and concatenating.
func Stack(axis int, arrays []*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, shapeErr("%v", ErrEmptyConcat)
	}
	reshaped := make([]*Array, len(arrays))
	for i, arr := range arrays {
		newShape := make([]int64, len(arr.shape)+1)
		copy(newShape[:axis], arr.shape[:axis])
		newShape[axis] = 1
		copy(newShape[axis+1:], arr.shape[axis:])
		r, err := arr.Reshape(newShape)
		if err != nil {
			return nil, err
		}
		reshaped[i] = r
	}
	return Concat(axis, reshaped)
}

func shiftCoord(c *scalar.Expr, by int64) (*scalar.Expr, error) {
	off, err := scalar.Const(c.DType(), int32(by))
	if err != nil {
		return nil, err
	}
	return scalar.Sub(c, off)
}

func boundedBelow(c *scalar.Expr, bound int64) (*scalar.Expr, error) {
	b, err := scalar.Const(c.DType(), int32(bound))
	if err != nil {
		return nil, err
	}
	return scalar.CmpLT(c, b)
}
