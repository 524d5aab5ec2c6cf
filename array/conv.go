package array

import (
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/materialize"
	"github.com/luisdiaz1997/gojax/scalar"
)

// Conv1D correlates x (shape [...,L], spatial axis last) against a 1-D
// kernel (shape [K]) after zero-padding x's spatial axis by padBefore and
// padAfter (spec.md §6's Conv1D; §8 scenario 5 exercises padding=1). The
// output has shape [...,Lout] with Lout = L+padBefore+padAfter-K+1. Like
// reduceAxes, it folds batch+output positions into one "gidx" and the
// kernel's tap index into one "ridx", reading from two separate
// GlobalIndex-bound inputs (x and the kernel) rather than one.
func Conv1D(x, kern *Array, padBefore, padAfter int64) (*Array, error) {
	if err := x.checkLive(); err != nil {
		return nil, err
	}
	if err := kern.checkLive(); err != nil {
		return nil, err
	}
	if kern.Rank() != 1 {
		return nil, shapeErr("conv1d: kernel must be rank 1, got %d", kern.Rank())
	}
	if x.Rank() < 1 {
		return nil, shapeErr("conv1d: x must be rank >= 1, got %d", x.Rank())
	}
	outDType, ok := dtype.Promote(x.dt, kern.dt)
	if !ok {
		return nil, dtypeErr("conv1d: cannot combine dtype %s with %s", x.dt, kern.dt)
	}

	begins := make([]int64, x.Rank())
	ends := make([]int64, x.Rank())
	begins[x.Rank()-1] = padBefore
	ends[x.Rank()-1] = padAfter
	xPadded, err := x.Pad(begins, ends)
	if err != nil {
		return nil, err
	}

	k := kern.shape[0]
	paddedL := xPadded.shape[xPadded.Rank()-1]
	lout := paddedL - k + 1
	if lout <= 0 {
		return nil, shapeErr("conv1d: kernel size %d too large for padded length %d", k, paddedL)
	}
	batchShape := append([]int64(nil), x.shape[:x.Rank()-1]...)
	outShape := append(append([]int64(nil), batchShape...), lout)

	gidxBound := numElements(outShape)
	gidx, err := materialize.Gidx(gidxBound)
	if err != nil {
		return nil, err
	}
	ridx, err := materialize.Ridx(k)
	if err != nil {
		return nil, err
	}

	outCoords, err := unravel(gidx, outShape)
	if err != nil {
		return nil, err
	}
	batchCoords := outCoords[:len(batchShape)]
	posCoord := outCoords[len(outCoords)-1]

	xCoords := append(append([]*scalar.Expr(nil), batchCoords...), nil)
	spatialIdx, err := scalar.Add(posCoord, ridx)
	if err != nil {
		return nil, err
	}
	xCoords[len(xCoords)-1] = spatialIdx
	xLinIdx, err := ravel(xCoords, xPadded.shape)
	if err != nil {
		return nil, err
	}
	xRead, err := materialize.BuildRead(0, x.dt, xPadded.tracker, xLinIdx)
	if err != nil {
		return nil, err
	}
	kRead, err := materialize.BuildRead(1, kern.dt, kern.tracker, ridx)
	if err != nil {
		return nil, err
	}
	if x.dt != outDType {
		if xRead, err = scalar.Cast(xRead, outDType); err != nil {
			return nil, err
		}
	}
	if kern.dt != outDType {
		if kRead, err = scalar.Cast(kRead, outDType); err != nil {
			return nil, err
		}
	}
	val, err := scalar.Mul(xRead, kRead)
	if err != nil {
		return nil, err
	}

	red := &kernel.Reduction{
		AxisSize: k,
		Identity: outDType.ZeroValue(),
		Combine:  func(acc, v interface{}) (interface{}, error) { return addValues(outDType, acc, v) },
	}
	n := gidxBound
	if n == 0 {
		n = 1
	}
	kn, err := kernel.New(outDType, n, val, red)
	if err != nil {
		return nil, err
	}
	slot, err := materialize.Run(x.be, kn, []kernel.Slot{xPadded.slot, kern.slot})
	if err != nil {
		return nil, err
	}
	return newArray(x.be, outDType, outShape, slot)
}
