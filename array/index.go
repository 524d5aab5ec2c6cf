package array

import (
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/scalar"
)

// unravel decomposes linear index lin (row-major over shape) into one
// coordinate expression per dimension, last dimension fastest-varying. Same
// unravel idiom view.FoldIndex's foldOneView uses internally, needed here
// because Concat/reductions must recombine indices across more than one
// tracker at once, which FoldIndex alone does not expose.
func unravel(lin *scalar.Expr, shape []int64) ([]*scalar.Expr, error) {
	n := len(shape)
	coords := make([]*scalar.Expr, n)
	remaining := lin
	for d := n - 1; d >= 0; d-- {
		size := shape[d]
		if size <= 1 {
			z, err := constI32(0)
			if err != nil {
				return nil, err
			}
			coords[d] = z
			continue
		}
		sizeConst, err := constI32(size)
		if err != nil {
			return nil, err
		}
		coord, err := scalar.Mod(remaining, sizeConst)
		if err != nil {
			return nil, err
		}
		coords[d] = coord
		remaining, err = scalar.IDiv(remaining, sizeConst)
		if err != nil {
			return nil, err
		}
	}
	return coords, nil
}

// ravel recombines per-dimension coordinates into a single row-major linear
// index over shape.
func ravel(coords []*scalar.Expr, shape []int64) (*scalar.Expr, error) {
	idx, err := constI32(0)
	if err != nil {
		return nil, err
	}
	for d := 0; d < len(shape); d++ {
		size, err := constI32(shape[d])
		if err != nil {
			return nil, err
		}
		idx, err = scalar.Mul(idx, size)
		if err != nil {
			return nil, err
		}
		idx, err = scalar.Add(idx, coords[d])
		if err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func constI32(v int64) (*scalar.Expr, error) {
	return scalar.Const(dtype.Int32, int32(v))
}
