package random

import (
	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend"
)

// BitsArray wraps Bits as a Uint32 *array.Array of the requested shape.
func BitsArray(be backend.Backend, key Key, shape []int64) (*array.Array, error) {
	return array.FromUint32(be, shape, Bits(key, shape))
}

// UniformArray wraps Uniform as a Float32 *array.Array of the requested
// shape.
func UniformArray(be backend.Backend, key Key, shape []int64, lo, hi float32) (*array.Array, error) {
	return array.FromFloat32(be, shape, Uniform(key, shape, lo, hi))
}

// NormalArray wraps Normal as a Float32 *array.Array of the requested
// shape.
func NormalArray(be backend.Backend, key Key, shape []int64) (*array.Array, error) {
	return array.FromFloat32(be, shape, Normal(key, shape))
}
