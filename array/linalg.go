package array

import (
	"github.com/luisdiaz1997/gojax/backend"
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/materialize"
	"github.com/luisdiaz1997/gojax/scalar"
)

// Matmul contracts the last axis of a against the second-to-last axis of b,
// batching over any leading dimensions (NumPy's matmul semantics): a's
// shape is [...,M,K], b's is [...,K,N], the result is [...,M,N]. It is
// expressed, not as a dedicated kernel, but as the composition
// reshape+broadcast+multiply+reduce spec.md §6 calls for, reusing the
// elementwise and reduction machinery already built for every other op.
func Matmul(a, b *Array) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if a.Rank() < 2 || b.Rank() < 2 {
		return nil, shapeErr("matmul: both operands need rank >= 2, got %d and %d", a.Rank(), b.Rank())
	}
	m := a.shape[a.Rank()-2]
	k := a.shape[a.Rank()-1]
	k2 := b.shape[b.Rank()-2]
	n := b.shape[b.Rank()-1]
	if k != k2 {
		return nil, shapeErr("matmul: contracted dims mismatch %d vs %d", k, k2)
	}

	aExt := insertAxis(a.shape, a.Rank()-1, 1) // [...,M,1,K]
	a3, err := a.Reshape(aExt)
	if err != nil {
		return nil, err
	}

	bPerm := make([]int, b.Rank())
	for i := range bPerm {
		bPerm[i] = i
	}
	bPerm[b.Rank()-1], bPerm[b.Rank()-2] = bPerm[b.Rank()-2], bPerm[b.Rank()-1]
	bT, err := b.Transpose(bPerm) // [...,N,K]
	if err != nil {
		return nil, err
	}
	bExt := insertAxis(bT.shape, bT.Rank()-2, 1) // [...,1,N,K]
	b3, err := bT.Reshape(bExt)
	if err != nil {
		return nil, err
	}

	prod, err := a3.Mul(b3) // [...,M,N,K]
	if err != nil {
		return nil, err
	}
	sum, err := prod.ReduceSum([]int{prod.Rank() - 1}, false) // [...,M,N]
	if err != nil {
		return nil, err
	}
	_ = m
	_ = n
	return sum, nil
}

// Dot contracts the last axis of a 2-D a against the first axis of a 2-D b
// (standard matrix product).
func Dot(a, b *Array) (*Array, error) {
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, shapeErr("dot: both operands must be rank 2, got %d and %d", a.Rank(), b.Rank())
	}
	return Matmul(a, b)
}

// Eye builds an n-by-m identity-like matrix of dtype dt: 1 on the diagonal,
// 0 elsewhere. Built as a zero-input kernel comparing a flattened row index
// against a flattened column index, the same way Full seeds a constant.
func Eye(be backend.Backend, n, m int64, dt dtype.DType) (*Array, error) {
	shape := []int64{n, m}
	total := n * m
	gidx, err := materialize.Gidx(total)
	if err != nil {
		return nil, err
	}
	coords, err := unravel(gidx, shape)
	if err != nil {
		return nil, err
	}
	eq, err := scalar.CmpNE(coords[0], coords[1])
	if err != nil {
		return nil, err
	}
	one, err := scalar.Const(dt, oneValue(dt))
	if err != nil {
		return nil, err
	}
	zero, err := scalar.Const(dt, dt.ZeroValue())
	if err != nil {
		return nil, err
	}
	expr, err := scalar.Where(eq, zero, one)
	if err != nil {
		return nil, err
	}
	k, err := kernel.New(dt, total, expr, nil)
	if err != nil {
		return nil, err
	}
	slot, err := materialize.Run(be, k, nil)
	if err != nil {
		return nil, err
	}
	return newArray(be, dt, shape, slot)
}

func insertAxis(shape []int64, at int, size int64) []int64 {
	out := make([]int64, len(shape)+1)
	copy(out[:at], shape[:at])
	out[at] = size
	copy(out[at+1:], shape[at:])
	return out
}
