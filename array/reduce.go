package array

import (
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/materialize"
	"github.com/luisdiaz1997/gojax/scalar"
)

// reduceAxes is the shared machinery behind Sum/Max/Min: it partitions a's
// shape into kept and reduced axes, folds the kept axes into a single
// "gidx" special and the reduced axes into a single "ridx" special, and
// builds a kernel.Reduction whose per-ridx value is a's element at the
// recombined full coordinate.
func reduceAxes(a *Array, axes []int, keepdims bool, identity interface{}, combine func(acc, val interface{}) (interface{}, error), outDType dtype.DType) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	rank := a.Rank()
	reduced := make([]bool, rank)
	for _, ax := range axes {
		if ax < 0 || ax >= rank {
			return nil, shapeErr("reduce: axis %d out of range for rank %d", ax, rank)
		}
		reduced[ax] = true
	}
	var keptAxes, reducedAxes []int
	var keptSizes, reducedSizes []int64
	for d := 0; d < rank; d++ {
		if reduced[d] {
			reducedAxes = append(reducedAxes, d)
			reducedSizes = append(reducedSizes, a.shape[d])
		} else {
			keptAxes = append(keptAxes, d)
			keptSizes = append(keptSizes, a.shape[d])
		}
	}

	outShape := make([]int64, 0, rank)
	for d := 0; d < rank; d++ {
		if reduced[d] {
			if keepdims {
				outShape = append(outShape, 1)
			}
		} else {
			outShape = append(outShape, a.shape[d])
		}
	}
	gidxBound := numElements(keptSizes)
	ridxBound := numElements(reducedSizes)
	if ridxBound == 0 {
		ridxBound = 1
	}

	gidx, err := materialize.Gidx(gidxBound)
	if err != nil {
		return nil, err
	}
	ridx, err := materialize.Ridx(ridxBound)
	if err != nil {
		return nil, err
	}

	keptCoords, err := unravel(gidx, keptSizes)
	if err != nil {
		return nil, err
	}
	reducedCoords, err := unravel(ridx, reducedSizes)
	if err != nil {
		return nil, err
	}

	full := make([]*scalar.Expr, rank)
	for i, ax := range keptAxes {
		full[ax] = keptCoords[i]
	}
	for i, ax := range reducedAxes {
		full[ax] = reducedCoords[i]
	}
	fullIdx, err := ravel(full, a.shape)
	if err != nil {
		return nil, err
	}
	val, err := materialize.BuildRead(0, a.dt, a.tracker, fullIdx)
	if err != nil {
		return nil, err
	}
	if a.dt != outDType {
		val, err = scalar.Cast(val, outDType)
		if err != nil {
			return nil, err
		}
	}

	red := &kernel.Reduction{AxisSize: ridxBound, Identity: identity, Combine: combine}
	n := gidxBound
	if n == 0 {
		n = 1
	}
	k, err := kernel.New(outDType, n, val, red)
	if err != nil {
		return nil, err
	}
	slot, err := materialize.Run(a.be, k, []kernel.Slot{a.slot})
	if err != nil {
		return nil, err
	}
	if len(outShape) == 0 {
		outShape = []int64{}
	}
	return newArray(a.be, outDType, outShape, slot)
}

// ReduceSum reduces a over axes, summing Float/Int/Uint elements (logical OR
// for Bool), optionally keeping the reduced axes as size-1 dimensions.
func (a *Array) ReduceSum(axes []int, keepdims bool) (*Array, error) {
	identity := a.dt.ZeroValue()
	combine := func(acc, val interface{}) (interface{}, error) { return addValues(a.dt, acc, val) }
	return reduceAxes(a, axes, keepdims, identity, combine, a.dt)
}

// ReduceMax reduces a over axes, keeping the largest element per group.
func (a *Array) ReduceMax(axes []int, keepdims bool) (*Array, error) {
	identity := negInfValue(a.dt)
	combine := func(acc, val interface{}) (interface{}, error) { return maxValues(a.dt, acc, val) }
	return reduceAxes(a, axes, keepdims, identity, combine, a.dt)
}

// ReduceMin reduces a over axes, keeping the smallest element per group.
func (a *Array) ReduceMin(axes []int, keepdims bool) (*Array, error) {
	identity := posInfValue(a.dt)
	combine := func(acc, val interface{}) (interface{}, error) { return minValues(a.dt, acc, val) }
	return reduceAxes(a, axes, keepdims, identity, combine, a.dt)
}

func addValues(dt dtype.DType, accI, valI interface{}) (interface{}, error) {
	switch dt {
	case dtype.Int32:
		return accI.(int32) + valI.(int32), nil
	case dtype.Uint32:
		return accI.(uint32) + valI.(uint32), nil
	case dtype.Float32, dtype.Float16:
		return accI.(float32) + valI.(float32), nil
	case dtype.Bool:
		return accI.(bool) || valI.(bool), nil
	default:
		return nil, dtypeErr("sum: unsupported dtype %s", dt)
	}
}

func maxValues(dt dtype.DType, accI, valI interface{}) (interface{}, error) {
	switch dt {
	case dtype.Int32:
		if valI.(int32) > accI.(int32) {
			return valI, nil
		}
		return accI, nil
	case dtype.Uint32:
		if valI.(uint32) > accI.(uint32) {
			return valI, nil
		}
		return accI, nil
	case dtype.Float32, dtype.Float16:
		if valI.(float32) > accI.(float32) {
			return valI, nil
		}
		return accI, nil
	default:
		return nil, dtypeErr("max: unsupported dtype %s", dt)
	}
}

func minValues(dt dtype.DType, accI, valI interface{}) (interface{}, error) {
	switch dt {
	case dtype.Int32:
		if valI.(int32) < accI.(int32) {
			return valI, nil
		}
		return accI, nil
	case dtype.Uint32:
		if valI.(uint32) < accI.(uint32) {
			return valI, nil
		}
		return accI, nil
	case dtype.Float32, dtype.Float16:
		if valI.(float32) < accI.(float32) {
			return valI, nil
		}
		return accI, nil
	default:
		return nil, dtypeErr("min: unsupported dtype %s", dt)
	}
}

func negInfValue(dt dtype.DType) interface{} {
	switch dt {
	case dtype.Int32:
		return int32(-2147483648)
	case dtype.Uint32:
		return uint32(0)
	default:
		return float32(-3.0e38)
	}
}

func posInfValue(dt dtype.DType) interface{} {
	switch dt {
	case dtype.Int32:
		return int32(2147483647)
	case dtype.Uint32:
		return uint32(4294967295)
	default:
		return float32(3.0e38)
	}
}
