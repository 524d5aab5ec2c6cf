package kernel

import (
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/scalar"
)

// Slot is an opaque, backend-owned reference to a contiguous
// byte-addressable buffer (spec.md §3.3). Concrete backends define their
// own Slot implementation; the core never inspects one beyond passing it
// back to the backend that produced it. Slot declares no methods, so any
// type satisfies it; a backend recovers its own type by type assertion.
type Slot interface{}

// Reduction describes the fold a Kernel performs after evaluating its
// pointwise Expr once per reduction-axis index ("ridx"): Identity seeds the
// accumulator, Combine folds in each per-ridx value, and Epilogue (if non-nil)
// transforms the final accumulator before store (e.g. dividing by AxisSize
// for a mean).
type Reduction struct {
	AxisSize int64
	Identity interface{}
	Combine  func(acc, val interface{}) (interface{}, error)
	Epilogue func(acc interface{}) (interface{}, error)
}

func (r *Reduction) validate() error {
	if r.AxisSize <= 0 {
		return badArg("%w: reduction axis size %d", ErrBadSize, r.AxisSize)
	}
	if r.Combine == nil {
		return ErrNilCombine
	}
	return nil
}

// Kernel bundles an output dtype and size, the scalar expression evaluated
// at each output index, and an optional reduction (spec.md §3.3).
type Kernel struct {
	OutputDType dtype.DType
	OutputSize  int64
	Expr        *scalar.Expr
	Reduction   *Reduction

	// nargs is the highest GlobalIndex gid referenced by Expr, plus one.
	nargs int
}

// New validates and builds a Kernel. nargs is computed automatically by
// scanning expr for the highest bound GlobalIndex gid.
func New(outputDType dtype.DType, outputSize int64, expr *scalar.Expr, reduction *Reduction) (*Kernel, error) {
	if expr == nil {
		return nil, ErrNilExpr
	}
	if outputSize <= 0 {
		return nil, badArg("%w: output size %d", ErrBadSize, outputSize)
	}
	if reduction != nil {
		if err := reduction.validate(); err != nil {
			return nil, err
		}
	}
	return &Kernel{
		OutputDType: outputDType,
		OutputSize:  outputSize,
		Expr:        expr,
		Reduction:   reduction,
		nargs:       countArgs(expr),
	}, nil
}

// NArgs returns the number of bound input buffers this kernel reads.
func (k *Kernel) NArgs() int { return k.nargs }

// InputDTypes walks the kernel's Expr and returns, for every GlobalIndex
// gid it references, the dtype that node declared for the read. A backend
// interpreting the kernel directly (rather than emitting typed source) uses
// this to decode each input buffer's bytes correctly.
func (k *Kernel) InputDTypes() map[int]dtype.DType {
	out := make(map[int]dtype.DType, k.nargs)
	seen := make(map[*scalar.Expr]bool)
	var walk func(*scalar.Expr)
	walk = func(n *scalar.Expr) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		if n.Op() == scalar.OpGlobalIndex {
			gid := n.Arg().(scalar.GlobalIndexArg).GID
			out[gid] = n.DType()
		}
		for _, src := range n.Sources() {
			walk(src)
		}
	}
	walk(k.Expr)
	return out
}

func countArgs(e *scalar.Expr) int {
	max := -1
	var walk func(*scalar.Expr)
	seen := make(map[*scalar.Expr]bool)
	walk = func(n *scalar.Expr) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		if n.Op() == scalar.OpGlobalIndex {
			gid := n.Arg().(scalar.GlobalIndexArg).GID
			if gid > max {
				max = gid
			}
		}
		for _, src := range n.Sources() {
			walk(src)
		}
	}
	walk(e)
	return max + 1
}
