package view

// ShapeTracker is a non-empty, ordered stack of Views, applied right-to-left:
// Views[len-1] addresses the backing buffer directly; each earlier view
// addresses the linearized output space of the view after it. Views[0] is
// "closest to the user" — its Shape is the tracker's logical shape.
type ShapeTracker struct {
	Views []*View
}

// New builds a ShapeTracker with a single contiguous view over shape.
func New(shape []int64) (*ShapeTracker, error) {
	v, err := NewContiguousView(shape)
	if err != nil {
		return nil, err
	}
	return &ShapeTracker{Views: []*View{v}}, nil
}

// FromView wraps an existing, already-validated View as a single-view
// tracker. Used by backends/materializer code constructing a tracker for a
// pre-computed View (e.g. a kernel's per-input binding).
func FromView(v *View) (*ShapeTracker, error) {
	if v == nil {
		return nil, shapeErr("%w: nil view", ErrEmptyTracker)
	}
	return &ShapeTracker{Views: []*View{v}}, nil
}

// Shape returns the tracker's logical shape, i.e. Views[0].Shape.
func (st *ShapeTracker) Shape() []int64 {
	return st.Views[0].Shape
}

// Rank returns len(Shape()).
func (st *ShapeTracker) Rank() int { return st.Views[0].Rank() }

// NumElements returns the tracker's logical element count.
func (st *ShapeTracker) NumElements() int64 { return st.Views[0].NumElements() }

// Contiguous reports whether the tracker is a single contiguous view
// (spec.md §3.2's definition).
func (st *ShapeTracker) Contiguous() bool {
	return len(st.Views) == 1 && st.Views[0].Contiguous()
}

// Clone returns a deep copy of st.
func (st *ShapeTracker) Clone() *ShapeTracker {
	views := make([]*View, len(st.Views))
	for i, v := range st.Views {
		views[i] = v.Clone()
	}
	return &ShapeTracker{Views: views}
}

func (st *ShapeTracker) withTop(v *View) *ShapeTracker {
	views := make([]*View, len(st.Views))
	copy(views, st.Views)
	views[0] = v
	return &ShapeTracker{Views: views}
}

func (st *ShapeTracker) withPrepended(v *View) *ShapeTracker {
	views := make([]*View, 0, len(st.Views)+1)
	views = append(views, v)
	views = append(views, st.Views...)
	return &ShapeTracker{Views: views}
}

// Reshape returns a tracker with logical shape newShape. When the current
// top view's strides permit a pure stride rewrite, the result has the same
// number of views; otherwise a new view is appended (spec.md §3.2:
// "Reshapes that cannot be represented by a stride rewrite are recorded as
// an appended view rather than forcing a copy").
func (st *ShapeTracker) Reshape(newShape []int64) (*ShapeTracker, error) {
	fused, ok, err := st.Views[0].Reshape(newShape)
	if err != nil {
		return nil, err
	}
	if ok {
		return st.withTop(fused), nil
	}
	appended, err := NewContiguousView(newShape)
	if err != nil {
		return nil, err
	}
	return st.withPrepended(appended), nil
}

// Permute reorders the tracker's logical axes. Always fuses into the top view.
func (st *ShapeTracker) Permute(axes []int) (*ShapeTracker, error) {
	out, err := st.Views[0].Permute(axes)
	if err != nil {
		return nil, err
	}
	return st.withTop(out), nil
}

// Transpose is an alias for Permute, matching the primitive name in
// spec.md §4.1 ("transpose(perm)").
func (st *ShapeTracker) Transpose(axes []int) (*ShapeTracker, error) {
	return st.Permute(axes)
}

// Shrink narrows the tracker to [begins[d], ends[d]) in every dimension d.
// Always fuses into the top view.
func (st *ShapeTracker) Shrink(begins, ends []int64) (*ShapeTracker, error) {
	out, err := st.Views[0].Shrink(begins, ends)
	if err != nil {
		return nil, err
	}
	return st.withTop(out), nil
}

// Expand broadcasts size-1 dimensions to newShape. Always fuses into the
// top view.
func (st *ShapeTracker) Expand(newShape []int64) (*ShapeTracker, error) {
	out, err := st.Views[0].Expand(newShape)
	if err != nil {
		return nil, err
	}
	return st.withTop(out), nil
}

// Pad enlarges the tracker by begins/ends per dimension, installing a mask
// over the new region. Always fuses into the top view.
func (st *ShapeTracker) Pad(begins, ends []int64) (*ShapeTracker, error) {
	out, err := st.Views[0].Pad(begins, ends)
	if err != nil {
		return nil, err
	}
	return st.withTop(out), nil
}

// Flip reverses the tracker along axes. Always fuses into the top view.
func (st *ShapeTracker) Flip(axes []int) (*ShapeTracker, error) {
	out, err := st.Views[0].Flip(axes)
	if err != nil {
		return nil, err
	}
	return st.withTop(out), nil
}
