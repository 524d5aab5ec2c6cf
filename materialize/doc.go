// Package materialize implements the kernel materialization pipeline from
// spec.md §4.4: turning an array use into a GlobalIndex read through its
// shape tracker's folded index, and turning a finished scalar expression
// plus a reduction descriptor into a dispatched backend kernel.
//
// This package is the seam between view.ShapeTracker/scalar.Expr (the pure
// IR) and kernel.Kernel/backend.Backend (the executable side); package
// array is its only caller.
package materialize
