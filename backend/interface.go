package backend

import (
	"context"

	"github.com/luisdiaz1997/gojax/kernel"
)

// Executable is a backend's compiled form of a Kernel, produced by Prepare
// and consumed by Dispatch. Opaque to the core, like kernel.Slot: it
// declares no methods, so any type satisfies it.
type Executable interface{}

// Backend is the seam through which the rest of gojax reaches execution
// (spec.md §4.5). Implementations must make Dispatch safe to call from any
// goroutine that owns the backend; Malloc/Read/Prepare may be called from
// the scheduling goroutine only (per spec.md §5's single-threaded
// cooperative core).
type Backend interface {
	// Name identifies the backend ("cpu", "gpu-compute", ...).
	Name() string

	// Malloc returns a slot with refcount 1, its buffer rounded up to a
	// 64-byte alignment. If initialData is non-nil its length must equal
	// sizeBytes.
	Malloc(sizeBytes int64, initialData []byte) (kernel.Slot, error)

	// IncRef increments s's reference count.
	IncRef(s kernel.Slot)

	// DecRef decrements s's reference count, freeing the underlying buffer
	// when it reaches zero.
	DecRef(s kernel.Slot)

	// Read returns count bytes of s starting at start. A negative count
	// means "to the end of the buffer".
	Read(ctx context.Context, s kernel.Slot, start, count int64) ([]byte, error)

	// ReadSync is Read without a context, for backends that can always
	// complete synchronously. Returns xerrors.ErrUnsupported otherwise.
	ReadSync(s kernel.Slot, start, count int64) ([]byte, error)

	// Prepare compiles k into an Executable.
	Prepare(ctx context.Context, k *kernel.Kernel) (Executable, error)

	// PrepareSync is Prepare without a context. Returns
	// xerrors.ErrUnsupported for backends that require asynchronous
	// compilation.
	PrepareSync(k *kernel.Kernel) (Executable, error)

	// Dispatch runs exe, reading inputs (in GlobalIndex gid order) and
	// writing output.
	Dispatch(exe Executable, inputs []kernel.Slot, output kernel.Slot) error
}
