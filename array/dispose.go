package array

import (
	"context"

	"github.com/luisdiaz1997/gojax/scalar"
	"github.com/luisdiaz1997/gojax/xerrors"
)

// Dispose releases a's reference to its backing slot. Calling Dispose twice,
// or using a after it has been disposed, reports ReferenceError rather than
// corrupting the buffer (spec.md §3.4, §5).
func (a *Array) Dispose() error {
	if !a.disposed.CompareAndSwap(false, true) {
		return xerrors.Reference("array: double dispose")
	}
	a.be.DecRef(a.slot)
	return nil
}

// Disposed reports whether Dispose has already been called.
func (a *Array) Disposed() bool { return a.disposed.Load() }

func (a *Array) checkLive() error {
	if a.disposed.Load() {
		return xerrors.Reference("array: use of a disposed array")
	}
	return nil
}

// Retain returns a new handle sharing a's underlying slot, with its own
// independent disposed state, incrementing the slot's reference count.
// Transforms that capture an array beyond the caller's own scope (e.g. a
// closed-over constant in a jaxpr) must Retain it.
func (a *Array) Retain() (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	a.be.IncRef(a.slot)
	return a.withTracker(a.shape, a.tracker.Clone()), nil
}

// Data realizes a (forcing a contiguous copy if its tracker is a
// non-trivial view) and returns its raw backend bytes via ReadSync.
func (a *Array) Data() ([]byte, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	r, err := a.realize()
	if err != nil {
		return nil, err
	}
	return r.be.ReadSync(r.slot, 0, -1)
}

// DataCtx is Data's asynchronous-capable counterpart, for backends whose
// Read suspends.
func (a *Array) DataCtx(ctx context.Context) ([]byte, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	r, err := a.realize()
	if err != nil {
		return nil, err
	}
	return r.be.Read(ctx, r.slot, 0, -1)
}

// realize returns an Array equivalent to a but with a contiguous tracker,
// materializing a copy through its view when necessary. Arrays produced by
// an arithmetic op are already contiguous and are returned unchanged.
func (a *Array) realize() (*Array, error) {
	if a.tracker.Contiguous() {
		return a, nil
	}
	return unaryOp(a, a.dt, func(x *scalar.Expr) (*scalar.Expr, error) { return x, nil })
}
