// Package gojax is a small JAX-style numerical array compiler middle-end.
//
// A lazy Array pairs a ShapeTracker view over a backend-owned buffer;
// arithmetic builds a scalar expression tree that is simplified,
// constant-folded, and dispatched through a pluggable Backend. Tracing
// transforms (forward-mode autodiff, vmap, jit) compose on top of the
// same array API.
//
// Everything is organized under:
//
//	dtype/        — scalar element kinds and the promotion table
//	scalar/       — the immutable scalar expression IR
//	view/         — lazy ShapeTracker views over backing buffers
//	kernel/       — pointwise-plus-reduction compute units
//	backend/      — the execution seam, with a reference CPU implementation
//	xerrors/      — typed structured errors
//	trace/        — the interpreter-stack tracing core
//	materialize/  — compiles and dispatches a Kernel against a backend
//	array/        — the public lazy Array API
//	transform/    — jvp, vmap, and jit transforms over Array
//	random/       — counter-based (Threefry) pseudorandom generation
package gojax
