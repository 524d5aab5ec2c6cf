package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend/cpu"
	"github.com/luisdiaz1997/gojax/dtype"
)

func TestZerosOnes(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	z, err := array.Zeros(be, []int64{2, 3}, dtype.Float32)
	r.NoError(err)
	r.Equal([]int64{2, 3}, z.Shape())
	r.Equal(decodeFloat32(mustData(t, z)), []float32{0, 0, 0, 0, 0, 0})

	o, err := array.Ones(be, []int64{4}, dtype.Int32)
	r.NoError(err)
	r.Equal(decodeInt32(mustData(t, o)), []int32{1, 1, 1, 1})
}

func TestFromFloat32RoundTrip(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2, 2}, []float32{1, 2, 3, 4})
	r.NoError(err)
	r.Equal(int64(4), a.NumElements())
	r.Equal(dtype.Float32, a.DType())
	r.Equal(decodeFloat32(mustData(t, a)), []float32{1, 2, 3, 4})
}

func TestFromFloat32ShapeMismatch(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	_, err := array.FromFloat32(be, []int64{2, 2}, []float32{1, 2, 3})
	r.Error(err)
}

func TestFullEmptyShape(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	_, err := array.Full(be, []int64{0}, dtype.Float32, float32(1))
	r.Error(err)
}
