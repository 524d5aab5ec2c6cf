package jvp_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend/cpu"
	"github.com/luisdiaz1997/gojax/transform/jvp"
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

func TestMulJVPProductRule(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	x, err := array.FromFloat32(be, []int64{3}, []float32{1, 2, 3})
	r.NoError(err)
	y, err := array.FromFloat32(be, []int64{3}, []float32{4, 5, 6})
	r.NoError(err)
	dx, err := array.FromFloat32(be, []int64{3}, []float32{1, 1, 1})
	r.NoError(err)
	dy, err := array.FromFloat32(be, []int64{3}, []float32{0, 0, 0})
	r.NoError(err)

	xd, err := jvp.New(x, dx)
	r.NoError(err)
	yd, err := jvp.New(y, dy)
	r.NoError(err)

	out, err := jvp.Mul(xd, yd)
	r.NoError(err)

	r.Equal([]float32{4, 10, 18}, decode(t, out.Primal))
	// d/dx(x*y) with dx=1, dy=0 => y
	r.Equal([]float32{4, 5, 6}, decode(t, out.Tangent))
}

func TestGradOfSumSquares(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	x, err := array.FromFloat32(be, []int64{4}, []float32{1, 2, 3, 4})
	r.NoError(err)

	f := func(d jvp.Dual) (jvp.Dual, error) {
		sq, err := jvp.Mul(d, d)
		if err != nil {
			return jvp.Dual{}, err
		}
		return jvp.ReduceSum(sq, []int{0}, false)
	}

	g, err := jvp.Grad(f, x)
	r.NoError(err)
	r.Equal([]int64{4}, g.Shape())
	r.InDeltaSlice([]float32{2, 4, 6, 8}, decode(t, g), 1e-5)
}

func TestReciprocalJVP(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	x, err := array.FromFloat32(be, []int64{2}, []float32{2, 4})
	r.NoError(err)
	dx, err := array.FromFloat32(be, []int64{2}, []float32{1, 1})
	r.NoError(err)

	xd, err := jvp.New(x, dx)
	r.NoError(err)

	out, err := jvp.Reciprocal(xd)
	r.NoError(err)

	r.InDeltaSlice([]float32{0.5, 0.25}, decode(t, out.Primal), 1e-6)
	// d/dx(1/x) = -1/x^2
	r.InDeltaSlice([]float32{-0.25, -0.0625}, decode(t, out.Tangent), 1e-6)
}
