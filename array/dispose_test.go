package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend/cpu"
)

func TestDisposeThenUseErrors(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2, 2}, []float32{1, 2, 3, 4})
	r.NoError(err)

	r.False(a.Disposed())
	r.NoError(a.Dispose())
	r.True(a.Disposed())

	_, err = a.Data()
	r.Error(err)

	err = a.Dispose()
	r.Error(err, "double dispose must report an error, not panic")
}

func TestRetainIndependentLifetime(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	a, err := array.FromFloat32(be, []int64{2}, []float32{1, 2})
	r.NoError(err)

	b, err := a.Retain()
	r.NoError(err)

	r.NoError(a.Dispose())
	_, err = a.Data()
	r.Error(err)

	// b shares the underlying slot but has its own disposed flag.
	data, err := b.Data()
	r.NoError(err)
	r.Equal([]float32{1, 2}, decodeFloat32(data))
	r.NoError(b.Dispose())
}
