// Package backend declares the execution contract gojax's core compiles
// and dispatches kernels through (spec.md §4.5). The core never reaches
// into a backend's internals — only Malloc/IncRef/DecRef/Read/Prepare/
// Dispatch. Two concrete backends are assumed to exist (a CPU path and a
// GPU-compute path); only the CPU one is implemented in this module
// (package backend/cpu) — the GPU-compute shader dialect is an external
// collaborator per spec.md §1 and is documented, not implemented, here.
package backend
