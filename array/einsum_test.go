package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend/cpu"
)

func TestEinsumMatmul(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2, 2}, []float32{1, 2, 3, 4})
	r.NoError(err)
	b, err := array.FromFloat32(be, []int64{2, 2}, []float32{5, 6, 7, 8})
	r.NoError(err)

	c, err := array.Einsum("ij,jk->ik", []*array.Array{a, b})
	r.NoError(err)
	r.Equal([]int64{2, 2}, c.Shape())
	r.Equal([]float32{19, 22, 43, 50}, decodeFloat32(mustData(t, c)))
}

func TestEinsumTraceSum(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{3}, []float32{1, 2, 3})
	r.NoError(err)
	b, err := array.FromFloat32(be, []int64{3}, []float32{4, 5, 6})
	r.NoError(err)

	c, err := array.Einsum("i,i->", []*array.Array{a, b})
	r.NoError(err)
	r.Equal([]int64{}, c.Shape())
	r.Equal([]float32{32}, decodeFloat32(mustData(t, c))) // 1*4+2*5+3*6
}

func TestEinsumPathChain(t *testing.T) {
	r := require.New(t)

	shapes := [][]int64{{10, 20}, {20, 30}, {30, 40}}
	subs := []string{"ij", "jk", "kl"}
	path, flops, err := array.EinsumPath(subs, shapes, "il")
	r.NoError(err)
	r.Equal([][2]int{{0, 1}, {2, 3}}, path)
	r.Equal(int64(36000), flops)
}

func TestEinsumRejectsSubscriptCountMismatch(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2}, []float32{1, 2})
	r.NoError(err)

	_, err = array.Einsum("ij,jk->ik", []*array.Array{a})
	r.Error(err)
}
