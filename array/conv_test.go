package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend/cpu"
)

func TestConv1D(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	x, err := array.FromFloat32(be, []int64{5}, []float32{1, 2, 3, 4, 5})
	r.NoError(err)
	k, err := array.FromFloat32(be, []int64{3}, []float32{2, 0.5, -1})
	r.NoError(err)

	y, err := array.Conv1D(x, k, 1, 1)
	r.NoError(err)
	r.Equal([]int64{5}, y.Shape())
	r.InDeltaSlice([]float32{-1.5, 0, 1.5, 3, 10.5}, decodeFloat32(mustData(t, y)), 1e-5)
}

func TestConv1DNoPadding(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	x, err := array.FromFloat32(be, []int64{4}, []float32{1, 2, 3, 4})
	r.NoError(err)
	k, err := array.FromFloat32(be, []int64{2}, []float32{1, 1})
	r.NoError(err)

	y, err := array.Conv1D(x, k, 0, 0)
	r.NoError(err)
	r.Equal([]int64{3}, y.Shape())
	r.Equal([]float32{3, 5, 7}, decodeFloat32(mustData(t, y)))
}

func TestConv1DRejectsNonRank1Kernel(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	x, err := array.FromFloat32(be, []int64{4}, []float32{1, 2, 3, 4})
	r.NoError(err)
	k, err := array.FromFloat32(be, []int64{2, 1}, []float32{1, 1})
	r.NoError(err)

	_, err = array.Conv1D(x, k, 0, 0)
	r.Error(err)
}
