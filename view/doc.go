// Package view implements the lazy multidimensional view and shape tracker
// from spec.md §3.2: View is a single {shape, strides, offset, mask?} index
// transform; ShapeTracker is a non-empty, right-to-left composed stack of
// Views that folds reshape/transpose/slice/pad/flip into index arithmetic
// instead of copying data.
//
// Every View operation either rewrites the tracker's current top view in
// place (returning a ShapeTracker of the same length) or, when the
// transform cannot be expressed as a stride/offset/mask rewrite of the
// current view, prepends a fresh view representing the transform over the
// old view's output space — exactly the "append a new view" escape hatch
// spec.md §3.2 describes for Reshape. The only operation that can take this
// path is Reshape; Permute, Shrink, Expand, Pad, and Flip are always
// representable as a single-view rewrite.
//
// FoldIndex composes a tracker's views, right-to-left, into a scalar.Expr
// that computes the backing-buffer linear index for a given output linear
// index expression — this is what the kernel materializer (package
// materialize) substitutes in place of every array read.
package view
