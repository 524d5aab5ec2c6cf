package materialize

import (
	"github.com/luisdiaz1997/gojax/backend"
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/scalar"
	"github.com/luisdiaz1997/gojax/view"
)

// Gidx builds the "gidx" special variable a kernel's pointwise expression is
// evaluated under, bounded by the kernel's output size n.
func Gidx(n int64) (*scalar.Expr, error) { return scalar.Special("gidx", n) }

// Ridx builds the "ridx" special variable a reduction's per-accumulation
// step is evaluated under, bounded by the reduced axis size n.
func Ridx(n int64) (*scalar.Expr, error) { return scalar.Special("ridx", n) }

// BuildRead constructs the expression that reads input buffer gid (of dtype
// dt, addressed through tracker) at output position outIdx, per spec.md
// §4.4 step 2: "Replaces each use of an input array by
// GlobalIndex(k, foldIndex(st_k, gidx))". Masked dimensions are honored by
// wrapping the read in Where(inBounds, read, zero) per spec.md §3.2.
func BuildRead(gid int, dt dtype.DType, tracker *view.ShapeTracker, outIdx *scalar.Expr) (*scalar.Expr, error) {
	addr, mask, err := view.FoldIndex(tracker, outIdx)
	if err != nil {
		return nil, err
	}
	read, err := scalar.GlobalIndex(gid, addr, dt)
	if err != nil {
		return nil, err
	}
	if mask == nil {
		return read, nil
	}
	zero, err := scalar.Const(dt, dt.ZeroValue())
	if err != nil {
		return nil, err
	}
	return scalar.Where(mask, read, zero)
}

// Run allocates an output slot sized for k, prepares k on be, and dispatches
// it against inputs (in GlobalIndex gid order), returning the new output
// slot. This is spec.md §4.4 steps 3–5.
func Run(be backend.Backend, k *kernel.Kernel, inputs []kernel.Slot) (kernel.Slot, error) {
	expr := scalar.Simplify(k.Expr)
	if expr != k.Expr {
		simplified, err := kernel.New(k.OutputDType, k.OutputSize, expr, k.Reduction)
		if err != nil {
			return nil, err
		}
		k = simplified
	}
	out, err := be.Malloc(k.OutputSize*k.OutputDType.ByteSize(), nil)
	if err != nil {
		return nil, err
	}
	exe, err := be.PrepareSync(k)
	if err != nil {
		return nil, err
	}
	if err := be.Dispatch(exe, inputs, out); err != nil {
		return nil, err
	}
	return out, nil
}
