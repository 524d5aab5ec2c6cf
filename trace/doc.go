// Package trace implements the tracing core from spec.md §4.1: a
// process-wide (here: per-Stack) stack of interpreters, the tracer
// protocol each primitive call follows, and tree flattening for the
// nested-structure public API.
//
// Per spec.md §9's redesign note, Tracer is modeled as a tagged interface
// rather than a class hierarchy: a concrete tracer implements Tracer and
// carries its own Level and AbstractValue. Outside tests the only
// implementation is package array's *Array; transform/jvp, transform/vmap
// and transform/jit wrap arrays in their own types (Dual, Batched,
// Recorder), which do not implement Tracer. Dispatch (Bind) is a single
// generic algorithm; per-primitive behavior is supplied by each
// Interpreter's ProcessPrimitive, looked up from that interpreter's own
// primitive/rule table (spec.md §9: "a compile-time exhaustive match over
// the Primitive enum").
package trace
