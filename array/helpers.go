package array

import "github.com/luisdiaz1997/gojax/xerrors"

func shapeErr(format string, args ...interface{}) error {
	return xerrors.Shape(format, args...)
}

func dtypeErr(format string, args ...interface{}) error {
	return xerrors.Dtype(format, args...)
}

func sameShape(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
