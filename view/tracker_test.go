package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/view"
)

func TestNewTrackerIsContiguous(t *testing.T) {
	r := require.New(t)
	st, err := view.New([]int64{2, 3})
	r.NoError(err)
	r.Equal([]int64{2, 3}, st.Shape())
	r.Equal(int64(6), st.NumElements())
	r.True(st.Contiguous())
}

func TestReshapePreservesElementCount(t *testing.T) {
	r := require.New(t)
	st, err := view.New([]int64{2, 3})
	r.NoError(err)

	reshaped, err := st.Reshape([]int64{3, 2})
	r.NoError(err)
	r.Equal([]int64{3, 2}, reshaped.Shape())
	r.Equal(int64(6), reshaped.NumElements())
}

func TestTransposeSwapsShape(t *testing.T) {
	r := require.New(t)
	st, err := view.New([]int64{2, 3})
	r.NoError(err)

	transposed, err := st.Transpose([]int{1, 0})
	r.NoError(err)
	r.Equal([]int64{3, 2}, transposed.Shape())
}

func TestShrinkNarrowsShape(t *testing.T) {
	r := require.New(t)
	st, err := view.New([]int64{4})
	r.NoError(err)

	shrunk, err := st.Shrink([]int64{1}, []int64{3})
	r.NoError(err)
	r.Equal([]int64{2}, shrunk.Shape())
}

func TestPadGrowsShapeAndIsNotContiguous(t *testing.T) {
	r := require.New(t)
	st, err := view.New([]int64{3})
	r.NoError(err)

	padded, err := st.Pad([]int64{1}, []int64{1})
	r.NoError(err)
	r.Equal([]int64{5}, padded.Shape())
	r.False(padded.Contiguous())
}

func TestCloneIsIndependent(t *testing.T) {
	r := require.New(t)
	st, err := view.New([]int64{2, 2})
	r.NoError(err)

	clone := st.Clone()
	r.Equal(st.Shape(), clone.Shape())

	_, err = clone.Reshape([]int64{4})
	r.NoError(err)
	r.Equal([]int64{2, 2}, st.Shape(), "reshaping a clone must not mutate the original tracker")
}
