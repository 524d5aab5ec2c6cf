package cpu

import (
	"context"
	"fmt"

	"github.com/luisdiaz1997/gojax/backend"
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/scalar"
	"github.com/luisdiaz1997/gojax/xerrors"
)

// Backend is the reference CPU implementation of backend.Backend.
// It holds no state of its own beyond what each slot already tracks.
type Backend struct{}

// New returns a ready-to-use CPU backend.
func New() *Backend { return &Backend{} }

var _ backend.Backend = (*Backend)(nil)

// Name returns "cpu".
func (b *Backend) Name() string { return "cpu" }

// Malloc allocates a new slot with refcount 1.
func (b *Backend) Malloc(sizeBytes int64, initialData []byte) (kernel.Slot, error) {
	return newSlot(sizeBytes, initialData)
}

// IncRef increments s's reference count.
func (b *Backend) IncRef(s kernel.Slot) {
	cs, err := asSlot(s)
	if err != nil {
		panic(err)
	}
	cs.refs.Add(1)
}

// DecRef decrements s's reference count, freeing the buffer at zero.
// Dropping below zero indicates a double-free and panics, matching the
// "runtime error" phrasing spec.md §5 uses for this condition.
func (b *Backend) DecRef(s kernel.Slot) {
	cs, err := asSlot(s)
	if err != nil {
		panic(err)
	}
	if n := cs.refs.Add(-1); n < 0 {
		panic(xerrors.Reference("cpu: slot decRef'd below zero (double free)"))
	} else if n == 0 {
		cs.freed.Store(true)
		cs.buf = nil
	}
}

// Read returns count bytes of s starting at start. ctx is accepted for
// interface parity; this backend never actually suspends.
func (b *Backend) Read(ctx context.Context, s kernel.Slot, start, count int64) ([]byte, error) {
	return b.ReadSync(s, start, count)
}

// ReadSync returns count bytes of s starting at start.
func (b *Backend) ReadSync(s kernel.Slot, start, count int64) ([]byte, error) {
	cs, err := asSlot(s)
	if err != nil {
		return nil, err
	}
	if cs.freed.Load() {
		return nil, xerrors.Reference("cpu: read from a freed slot")
	}
	if count < 0 {
		count = int64(len(cs.buf)) - start
	}
	if start < 0 || count < 0 || start+count > int64(len(cs.buf)) {
		return nil, fmt.Errorf("cpu: read [%d,%d) out of range for %d-byte buffer", start, start+count, len(cs.buf))
	}
	out := make([]byte, count)
	copy(out, cs.buf[start:start+count])
	return out, nil
}

// Prepare compiles k. This backend always completes synchronously.
func (b *Backend) Prepare(ctx context.Context, k *kernel.Kernel) (backend.Executable, error) {
	return b.PrepareSync(k)
}

// PrepareSync compiles k into an executable.
func (b *Backend) PrepareSync(k *kernel.Kernel) (backend.Executable, error) {
	if k == nil {
		return nil, xerrors.Backend("prepare", "nil kernel")
	}
	return compile(k), nil
}

// Dispatch interprets exe's kernel over its output range, reading inputs
// (in GlobalIndex gid order) from the supplied slots and writing the
// result into output.
func (b *Backend) Dispatch(exe backend.Executable, inputs []kernel.Slot, output kernel.Slot) error {
	ex, ok := exe.(*executable)
	if !ok {
		return xerrors.Backend("dispatch", "executable was not produced by this backend")
	}
	inBufs := make([][]byte, len(inputs))
	for i, in := range inputs {
		cs, err := asSlot(in)
		if err != nil {
			return err
		}
		if cs.freed.Load() {
			return xerrors.Reference("cpu: dispatch read from a freed input slot")
		}
		inBufs[i] = cs.buf
	}
	outSlot, err := asSlot(output)
	if err != nil {
		return err
	}
	if outSlot.freed.Load() {
		return xerrors.Reference("cpu: dispatch write to a freed output slot")
	}

	k := ex.k
	global := func(gid int, idx int64) (interface{}, error) {
		if gid < 0 || gid >= len(inBufs) {
			return nil, fmt.Errorf("cpu: gid %d out of range for %d bound inputs", gid, len(inBufs))
		}
		d, ok := ex.inputTypes[gid]
		if !ok {
			return nil, fmt.Errorf("cpu: no declared dtype for gid %d", gid)
		}
		return readElement(inBufs[gid], idx, d)
	}

	for i := int64(0); i < k.OutputSize; i++ {
		var result interface{}
		if k.Reduction == nil {
			env := scalar.Env{Specials: map[string]int64{"gidx": i}, Global: global}
			result, err = scalar.Evaluate(k.Expr, env)
			if err != nil {
				return xerrors.Backend("dispatch", err.Error())
			}
		} else {
			acc := k.Reduction.Identity
			for r := int64(0); r < k.Reduction.AxisSize; r++ {
				env := scalar.Env{
					Specials: map[string]int64{"gidx": i, "ridx": r},
					Global:   global,
				}
				val, verr := scalar.Evaluate(k.Expr, env)
				if verr != nil {
					return xerrors.Backend("dispatch", verr.Error())
				}
				acc, verr = k.Reduction.Combine(acc, val)
				if verr != nil {
					return xerrors.Backend("dispatch", verr.Error())
				}
			}
			if k.Reduction.Epilogue != nil {
				acc, err = k.Reduction.Epilogue(acc)
				if err != nil {
					return xerrors.Backend("dispatch", err.Error())
				}
			}
			result = acc
		}
		if err := writeElement(outSlot.buf, i, k.OutputDType, result); err != nil {
			return xerrors.Backend("dispatch", err.Error())
		}
	}
	return nil
}
