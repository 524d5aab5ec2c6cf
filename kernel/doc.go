// Package kernel defines the Kernel and Slot types from spec.md §3.3: a
// Kernel bundles a scalar pointwise expression (optionally followed by a
// reduction) bound to an output size and dtype; a Slot is an opaque,
// backend-owned, reference-counted handle to a buffer.
//
// Kernel itself never executes anything — it's a description a Backend
// compiles (Prepare) and runs (Dispatch). The reduction's Combine and
// Epilogue are plain Go closures over evaluated scalar values rather than
// ScalarExpr trees: gojax's only in-repo backend (package backend/cpu)
// interprets kernels directly rather than emitting textual device source,
// so there is no serialized-placeholder variable to thread a combine
// expression through. A textual-codegen backend (the GPU-compute path,
// out of scope per spec.md §1) would lower Combine/Epilogue to its own
// device-source accumulation statement using the same Identity/AxisSize
// contract. See DESIGN.md for the Open Question this resolves.
package kernel
