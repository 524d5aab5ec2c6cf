// File: ops.go
// Role: the six View-rewriting operations from spec.md §3.2. Each either
// returns a new View or signals it cannot be fused into a single view, in
// which case ShapeTracker (see tracker.go) appends a new view instead.

package view

// Reshape attempts to express newShape as a stride rewrite of v. It
// reports ok=false (never an error, for a size-compatible newShape) when v's
// strides are not canonical row-major — e.g. after a Permute or a masked
// Shrink — in which case the caller must append a fresh view instead of
// fusing. A size mismatch is always an error, since no tracker-level
// fallback can repair it.
//
// This implements the "contiguous fast path" of reshape fusion: v.Contiguous()
// reshapes always fuse; discontiguous views conservatively report ok=false
// even in some cases a finer adjacent-dimension merge could still fuse
// (documented simplification, see DESIGN.md).
func (v *View) Reshape(newShape []int64) (*View, bool, error) {
	for _, s := range newShape {
		if s < 0 {
			return nil, false, shapeErr("%w: dimension %d in shape %v", ErrNegativeDim, s, newShape)
		}
	}
	oldN, newN := v.NumElements(), productOf(newShape)
	if oldN != newN {
		return nil, false, shapeErr("%w: %d elements (shape %v) vs %d elements (shape %v)",
			ErrSizeMismatch, oldN, v.Shape, newN, newShape)
	}
	if newN == oldN && sameShape(v.Shape, newShape) {
		return v, true, nil
	}
	if !v.Contiguous() {
		return nil, false, nil
	}
	out, err := NewContiguousView(newShape)
	if err != nil {
		return nil, false, err
	}
	out.Offset = v.Offset
	return out, true, nil
}

// Permute reorders v's shape and strides by axes, a permutation of
// [0, v.Rank()).
func (v *View) Permute(axes []int) (*View, error) {
	if err := validatePermutation(axes, v.Rank()); err != nil {
		return nil, err
	}
	out := &View{
		Shape:   make([]int64, len(axes)),
		Strides: make([]int64, len(axes)),
		Offset:  v.Offset,
	}
	for i, ax := range axes {
		out.Shape[i] = v.Shape[ax]
		out.Strides[i] = v.Strides[ax]
	}
	if v.Mask != nil {
		out.Mask = make([]MaskRange, len(axes))
		for i, ax := range axes {
			out.Mask[i] = v.Mask[ax]
		}
	}
	return out, nil
}

// Shrink narrows each dimension d to [begins[d], ends[d]), increasing
// Offset by the cut from the front and tightening any existing mask to the
// intersection with the new window.
func (v *View) Shrink(begins, ends []int64) (*View, error) {
	n := v.Rank()
	if len(begins) != n || len(ends) != n {
		return nil, shapeErr("%w: shrink needs %d begin/end pairs, got %d/%d", ErrBadBounds, n, len(begins), len(ends))
	}
	out := v.Clone()
	newOffset := v.Offset
	newMask := make([]MaskRange, n)
	hadMask := v.Mask != nil
	for d := 0; d < n; d++ {
		b, e := begins[d], ends[d]
		if b < 0 || e > v.Shape[d] || b > e {
			return nil, shapeErr("%w: dim %d shrink [%d,%d) out of range for size %d", ErrBadBounds, d, b, e, v.Shape[d])
		}
		out.Shape[d] = e - b
		newOffset += b * v.Strides[d]
		if hadMask {
			// Shift the existing mask into the shrunk window's coordinate space.
			m := v.Mask[d]
			newMask[d] = MaskRange{Begin: maxI64(0, m.Begin-b), End: minI64(e-b, m.End-b)}
		} else {
			newMask[d] = MaskRange{Begin: 0, End: e - b}
		}
	}
	out.Offset = newOffset
	out.Mask = normalizeMask(newMask)
	canonicalizeSingletons(out)
	return out, nil
}

// Expand turns any size-1 dimension of v into a broadcast dimension of size
// newShape[d] (stride forced to 0). Non-size-1 dimensions must match
// newShape exactly.
func (v *View) Expand(newShape []int64) (*View, error) {
	if len(newShape) != v.Rank() {
		return nil, shapeErr("%w: expand rank %d != view rank %d", ErrBadBounds, len(newShape), v.Rank())
	}
	out := v.Clone()
	for d, want := range newShape {
		if want < 0 {
			return nil, shapeErr("%w: dimension %d", ErrNegativeDim, want)
		}
		if v.Shape[d] == want {
			continue
		}
		if v.Shape[d] != 1 {
			return nil, shapeErr("%w: dim %d size %d cannot expand to %d", ErrNotBroadcastable, d, v.Shape[d], want)
		}
		out.Shape[d] = want
		out.Strides[d] = 0
		if out.Mask != nil {
			out.Mask[d] = MaskRange{Begin: 0, End: want}
		}
	}
	return out, nil
}

// Pad enlarges v by begins[d] before and ends[d] after each dimension,
// installing a mask that excludes the new region (spec.md §3.2).
func (v *View) Pad(begins, ends []int64) (*View, error) {
	n := v.Rank()
	if len(begins) != n || len(ends) != n {
		return nil, shapeErr("%w: pad needs %d begin/end pairs, got %d/%d", ErrBadBounds, n, len(begins), len(ends))
	}
	out := v.Clone()
	newMask := make([]MaskRange, n)
	newOffset := v.Offset
	for d := 0; d < n; d++ {
		b, e := begins[d], ends[d]
		if b < 0 || e < 0 {
			return nil, shapeErr("%w: pad amounts must be >= 0, dim %d got [%d,%d)", ErrBadBounds, d, b, e)
		}
		old := v.Shape[d]
		out.Shape[d] = old + b + e
		newOffset -= b * v.Strides[d]
		var base MaskRange
		if v.Mask != nil {
			base = v.Mask[d]
		} else {
			base = MaskRange{Begin: 0, End: old}
		}
		newMask[d] = MaskRange{Begin: base.Begin + b, End: base.End + b}
	}
	out.Offset = newOffset
	out.Mask = newMask
	return out, nil
}

// Flip reverses v along each axis in axes, negating that dimension's
// stride and shifting Offset to address what was previously the last
// element.
func (v *View) Flip(axes []int) (*View, error) {
	if err := validateAxesSubset(axes, v.Rank()); err != nil {
		return nil, err
	}
	out := v.Clone()
	newOffset := v.Offset
	seen := make(map[int]bool, len(axes))
	for _, ax := range axes {
		if seen[ax] {
			continue
		}
		seen[ax] = true
		n := v.Shape[ax]
		if n == 0 {
			continue
		}
		newOffset += (n - 1) * v.Strides[ax]
		out.Strides[ax] = -v.Strides[ax]
		if out.Mask != nil {
			m := out.Mask[ax]
			out.Mask[ax] = MaskRange{Begin: n - m.End, End: n - m.Begin}
		}
	}
	out.Offset = newOffset
	return out, nil
}

func productOf(shape []int64) int64 {
	n := int64(1)
	for _, s := range shape {
		n *= s
	}
	return n
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

func validatePermutation(axes []int, rank int) error {
	if len(axes) != rank {
		return shapeErr("%w: permute needs %d axes, got %d", ErrBadAxes, rank, len(axes))
	}
	seen := make([]bool, rank)
	for _, ax := range axes {
		if ax < 0 || ax >= rank || seen[ax] {
			return shapeErr("%w: %v is not a permutation of [0,%d)", ErrBadAxes, axes, rank)
		}
		seen[ax] = true
	}
	return nil
}

func validateAxesSubset(axes []int, rank int) error {
	for _, ax := range axes {
		if ax < 0 || ax >= rank {
			return shapeErr("%w: axis %d out of bounds for rank %d", ErrBadAxes, ax, rank)
		}
	}
	return nil
}

func normalizeMask(m []MaskRange) []MaskRange {
	allFull := true
	for _, r := range m {
		if r.Begin != 0 {
			allFull = false
			break
		}
	}
	_ = allFull // masks are kept even when "full" per-dim; only dropped by tracker-level logic if ever needed.
	return m
}

// canonicalizeSingletons zeroes the stride of any size-1 dimension, per the
// canonicalization invariant.
func canonicalizeSingletons(v *View) {
	for d, s := range v.Shape {
		if s == 1 {
			v.Strides[d] = 0
		}
	}
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
