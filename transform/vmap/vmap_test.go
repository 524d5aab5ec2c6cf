package vmap_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend/cpu"
	"github.com/luisdiaz1997/gojax/transform/vmap"
)

func decode(t *testing.T, a *array.Array) []float32 {
	t.Helper()
	data, err := a.Data()
	require.NoError(t, err)
	n := len(data) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}

func TestVMapAddBroadcastsUnbatchedOperand(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	// batch of 3 rows, each length 2; add an unbatched constant vector.
	x, err := array.FromFloat32(be, []int64{3, 2}, []float32{1, 2, 3, 4, 5, 6})
	r.NoError(err)
	c, err := array.FromFloat32(be, []int64{2}, []float32{10, 100})
	r.NoError(err)

	f := func(b vmap.Batched) (vmap.Batched, error) {
		return vmap.Add(b, vmap.Lift(c))
	}

	out, axis, err := vmap.VMap(f, x, 0)
	r.NoError(err)
	r.Equal(0, axis)
	r.Equal([]int64{3, 2}, out.Shape())
	r.Equal([]float32{11, 102, 13, 104, 15, 106}, decode(t, out))
}

func TestVMapReduceSumShiftsAxis(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	x, err := array.FromFloat32(be, []int64{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	r.NoError(err)

	f := func(b vmap.Batched) (vmap.Batched, error) {
		return vmap.ReduceSum(b, []int{0}, false)
	}

	out, axis, err := vmap.VMap(f, x, 0)
	r.NoError(err)
	r.Equal(0, axis)
	r.Equal([]int64{2}, out.Shape())
	r.Equal([]float32{6, 15}, decode(t, out))
}

func TestVMapNegUnary(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	x, err := array.FromFloat32(be, []int64{2, 2}, []float32{1, -2, 3, -4})
	r.NoError(err)

	out, axis, err := vmap.VMap(vmap.Neg, x, 0)
	r.NoError(err)
	r.Equal(0, axis)
	r.Equal([]float32{-1, 2, -3, 4}, decode(t, out))
}
