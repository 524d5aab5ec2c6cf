package array

import "github.com/luisdiaz1997/gojax/view"

// broadcastShapes computes the NumPy-style broadcast of a and b, aligning
// from the trailing dimension, with size-1 dimensions stretching to match
// the other operand.
func broadcastShapes(a, b []int64) ([]int64, error) {
	rank := len(a)
	if len(b) > rank {
		rank = len(b)
	}
	out := make([]int64, rank)
	for i := 0; i < rank; i++ {
		da := dimAt(a, i, rank)
		db := dimAt(b, i, rank)
		switch {
		case da == db:
			out[rank-1-i] = da
		case da == 1:
			out[rank-1-i] = db
		case db == 1:
			out[rank-1-i] = da
		default:
			return nil, shapeErrBroadcast(a, b)
		}
	}
	return out, nil
}

// dimAt returns shape's dimension i-from-the-end (0 = last), or 1 if shape
// is shorter than the requested rank (an implicit leading size-1 dim).
func dimAt(shape []int64, iFromEnd, rank int) int64 {
	pos := len(shape) - 1 - iFromEnd
	if pos < 0 {
		return 1
	}
	return shape[pos]
}

func shapeErrBroadcast(a, b []int64) error {
	return shapeErr("cannot broadcast shapes %v and %v", a, b)
}

// alignTracker rewrites tr (whose logical shape is origShape) into a
// tracker over outShape, by first inserting leading size-1 dimensions (via
// Reshape) to match outShape's rank, then expanding every size-1 dimension
// that must broadcast.
func alignTracker(tr *view.ShapeTracker, origShape, outShape []int64) (*view.ShapeTracker, error) {
	if len(origShape) < len(outShape) {
		padded := make([]int64, len(outShape))
		offset := len(outShape) - len(origShape)
		for i := 0; i < offset; i++ {
			padded[i] = 1
		}
		copy(padded[offset:], origShape)
		reshaped, err := tr.Reshape(padded)
		if err != nil {
			return nil, err
		}
		tr = reshaped
	}
	return tr.Expand(outShape)
}
