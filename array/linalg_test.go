package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend/cpu"
	"github.com/luisdiaz1997/gojax/dtype"
)

func TestMatmul2x2(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2, 2}, []float32{1, 2, 3, 4})
	r.NoError(err)
	b, err := array.FromFloat32(be, []int64{2, 2}, []float32{5, 6, 7, 8})
	r.NoError(err)

	c, err := array.Matmul(a, b)
	r.NoError(err)
	r.Equal([]int64{2, 2}, c.Shape())
	// [[1,2],[3,4]] @ [[5,6],[7,8]] = [[19,22],[43,50]]
	r.Equal([]float32{19, 22, 43, 50}, decodeFloat32(mustData(t, c)))
}

func TestDotAliasesMatmul(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{1, 2}, []float32{2, 3})
	r.NoError(err)
	b, err := array.FromFloat32(be, []int64{2, 1}, []float32{4, 5})
	r.NoError(err)

	c, err := array.Dot(a, b)
	r.NoError(err)
	r.Equal([]int64{1, 1}, c.Shape())
	r.Equal([]float32{23}, decodeFloat32(mustData(t, c)))
}

func TestEye(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	e, err := array.Eye(be, 3, 3, dtype.Float32)
	r.NoError(err)
	r.Equal([]int64{3, 3}, e.Shape())
	r.Equal([]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, decodeFloat32(mustData(t, e)))
}

func TestEyeRectangular(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	e, err := array.Eye(be, 2, 3, dtype.Float32)
	r.NoError(err)
	r.Equal([]int64{2, 3}, e.Shape())
	r.Equal([]float32{1, 0, 0, 0, 1, 0}, decodeFloat32(mustData(t, e)))
}
