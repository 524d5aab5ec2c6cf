package dtype_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/dtype"
)

func TestPromote(t *testing.T) {
	r := require.New(t)

	got, ok := dtype.Promote(dtype.Int32, dtype.Int32)
	r.True(ok)
	r.Equal(dtype.Int32, got)

	got, ok = dtype.Promote(dtype.Int32, dtype.Float32)
	r.True(ok)
	r.Equal(dtype.Float32, got)

	got, ok = dtype.Promote(dtype.Uint32, dtype.Float16)
	r.True(ok)
	r.Equal(dtype.Float16, got)

	_, ok = dtype.Promote(dtype.Bool, dtype.Int32)
	r.False(ok, "bool must not promote with a numeric dtype")

	got, ok = dtype.Promote(dtype.Bool, dtype.Bool)
	r.True(ok)
	r.Equal(dtype.Bool, got)
}

func TestByteSize(t *testing.T) {
	r := require.New(t)
	r.Equal(int64(4), dtype.Int32.ByteSize())
	r.Equal(int64(4), dtype.Uint32.ByteSize())
	r.Equal(int64(4), dtype.Float32.ByteSize())
	r.Equal(int64(2), dtype.Float16.ByteSize())
}
