// Package array is gojax's external surface (spec.md §3.4, §6): the lazy
// array type, its constructors, elementwise/reduction/shape operations, and
// a minimal linear-algebra and convolution layer. The grad/jacfwd
// convenience wrappers (Grad, JacFwd) live in package transform/jvp.
//
// An Array pairs a shape tracker (package view) with a backend-owned slot
// (package kernel/backend). Shape-only operations (reshape, transpose,
// broadcast, slice, pad, flip) never copy data: they rewrap the same slot
// under a new tracker, incrementing its reference count. Arithmetic
// operations materialize immediately into a freshly allocated, contiguous
// slot via package materialize — gojax's reference backend always realizes
// one kernel per elementwise/reduction call (see DESIGN.md for the
// tradeoff). Package transform/jit records and caches traces per input
// signature but does not fuse kernels either.
//
// Add, Sub, Mul, and Neg dispatch through trace.Bind against this
// package's own unexported trace.Stack (see trace.go) rather than
// computing directly. Nothing pushes an Interpreter onto that Stack, so
// every call runs at its concrete base level.
package array
