package array

import (
	"sync/atomic"

	"github.com/luisdiaz1997/gojax/backend"
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/trace"
	"github.com/luisdiaz1997/gojax/view"
)

// Array is the user-visible lazy array from spec.md §3.4: a shape tracker
// over a backend-owned slot. Every Array materializes its own data
// immediately on construction or on the first arithmetic op that produces
// it (see doc.go); shape-only ops share the underlying slot.
type Array struct {
	be       backend.Backend
	dt       dtype.DType
	shape    []int64
	tracker  *view.ShapeTracker
	slot     kernel.Slot
	disposed atomic.Bool
}

var _ trace.Tracer = (*Array)(nil)

// Level always reports 0: a concrete Array is the base of the interpreter
// stack every tracing transform builds on top of.
func (a *Array) Level() int { return 0 }

// Abstract reports a's shape and dtype without touching its backing data.
func (a *Array) Abstract() trace.AbstractValue {
	return trace.AbstractValue{Shape: append([]int64(nil), a.shape...), DType: a.dt}
}

// Shape returns a's logical shape. The caller must not mutate the result.
func (a *Array) Shape() []int64 { return a.shape }

// DType returns a's element dtype.
func (a *Array) DType() dtype.DType { return a.dt }

// Backend returns the backend a is bound to.
func (a *Array) Backend() backend.Backend { return a.be }

// NumElements returns the product of a's shape.
func (a *Array) NumElements() int64 { return numElements(a.shape) }

// Rank returns len(a.Shape()).
func (a *Array) Rank() int { return len(a.shape) }

func numElements(shape []int64) int64 {
	n := int64(1)
	for _, s := range shape {
		n *= s
	}
	return n
}

func newArray(be backend.Backend, dt dtype.DType, shape []int64, slot kernel.Slot) (*Array, error) {
	tr, err := view.New(shape)
	if err != nil {
		return nil, err
	}
	return &Array{be: be, dt: dt, shape: append(make([]int64, 0, len(shape)), shape...), tracker: tr, slot: slot}, nil
}

func (a *Array) withTracker(shape []int64, tr *view.ShapeTracker) *Array {
	return &Array{be: a.be, dt: a.dt, shape: append([]int64(nil), shape...), tracker: tr, slot: a.slot}
}
