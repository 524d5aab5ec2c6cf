// Package cpu is gojax's reference CPU backend: a plain-Go implementation
// of the backend.Backend contract (spec.md §4.5), interpreting a Kernel's
// scalar expression directly rather than emitting and compiling source.
//
// Buffers are plain byte slices rounded up to 64-byte alignment on Malloc,
// matching the contract; slots track their own reference count with
// atomic.Int32, so IncRef/DecRef are safe to call concurrently with
// Dispatch on other slots (but not with operations on the same slot, which
// spec.md §5 never requires — a single array's pending kernels are
// prepared concurrently and dispatched in topological order by the
// scheduling layer, not by this package).
//
// There are no dedicated matmul or dot loops here: those operations reach
// this backend as ordinary reduction kernels, interpreted one output index
// at a time like every other kernel.
package cpu
