package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend/cpu"
)

func TestReshape(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	r.NoError(err)

	b, err := a.Reshape([]int64{3, 2})
	r.NoError(err)
	r.Equal([]int64{3, 2}, b.Shape())
	r.Equal([]float32{1, 2, 3, 4, 5, 6}, decodeFloat32(mustData(t, b)))
}

func TestTranspose(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	r.NoError(err)

	b, err := a.Transpose([]int{1, 0})
	r.NoError(err)
	r.Equal([]int64{3, 2}, b.Shape())
	r.Equal([]float32{1, 4, 2, 5, 3, 6}, decodeFloat32(mustData(t, b)))
}

func TestBroadcastTo(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{1, 3}, []float32{1, 2, 3})
	r.NoError(err)

	b, err := a.BroadcastTo([]int64{2, 3})
	r.NoError(err)
	r.Equal([]int64{2, 3}, b.Shape())
	r.Equal([]float32{1, 2, 3, 1, 2, 3}, decodeFloat32(mustData(t, b)))
}

func TestSlice(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{4}, []float32{1, 2, 3, 4})
	r.NoError(err)

	b, err := a.Slice([]int64{1}, []int64{3})
	r.NoError(err)
	r.Equal([]int64{2}, b.Shape())
	r.Equal([]float32{2, 3}, decodeFloat32(mustData(t, b)))
}

func TestPad(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{3}, []float32{1, 2, 3})
	r.NoError(err)

	b, err := a.Pad([]int64{1}, []int64{1})
	r.NoError(err)
	r.Equal([]int64{5}, b.Shape())
	r.Equal([]float32{0, 1, 2, 3, 0}, decodeFloat32(mustData(t, b)))
}

func TestFlip(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{4}, []float32{1, 2, 3, 4})
	r.NoError(err)

	b, err := a.Flip([]int{0})
	r.NoError(err)
	r.Equal([]float32{4, 3, 2, 1}, decodeFloat32(mustData(t, b)))
}

func TestConcat(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2}, []float32{1, 2})
	r.NoError(err)
	b, err := array.FromFloat32(be, []int64{3}, []float32{3, 4, 5})
	r.NoError(err)

	c, err := array.Concat(0, []*array.Array{a, b})
	r.NoError(err)
	r.Equal([]int64{5}, c.Shape())
	r.Equal([]float32{1, 2, 3, 4, 5}, decodeFloat32(mustData(t, c)))
}

func TestConcatThreeWay(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{1}, []float32{1})
	r.NoError(err)
	b, err := array.FromFloat32(be, []int64{1}, []float32{2})
	r.NoError(err)
	c, err := array.FromFloat32(be, []int64{1}, []float32{3})
	r.NoError(err)

	out, err := array.Concat(0, []*array.Array{a, b, c})
	r.NoError(err)
	r.Equal([]float32{1, 2, 3}, decodeFloat32(mustData(t, out)))
}

func TestStack(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2}, []float32{1, 2})
	r.NoError(err)
	b, err := array.FromFloat32(be, []int64{2}, []float32{3, 4})
	r.NoError(err)

	out, err := array.Stack(0, []*array.Array{a, b})
	r.NoError(err)
	r.Equal([]int64{2, 2}, out.Shape())
	r.Equal([]float32{1, 2, 3, 4}, decodeFloat32(mustData(t, out)))
}

func TestEmptyConcatErrors(t *testing.T) {
	r := require.New(t)
	_, err := array.Concat(0, nil)
	r.Error(err)
}
