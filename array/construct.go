package array

import (
	"encoding/binary"
	"math"

	"github.com/luisdiaz1997/gojax/backend"
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/materialize"
	"github.com/luisdiaz1997/gojax/scalar"
)

// Full returns an array of shape filled with value (a Go value matching
// dt: int32, uint32, float32, or bool). The fill is a single-constant
// kernel with no input buffers — spec.md §6's "full(shape, dtype, device)".
func Full(be backend.Backend, shape []int64, dt dtype.DType, value interface{}) (*Array, error) {
	n := numElements(shape)
	if n <= 0 {
		return nil, shapeErr("full: shape %v has no elements", shape)
	}
	c, err := scalar.Const(dt, value)
	if err != nil {
		return nil, err
	}
	k, err := kernel.New(dt, n, c, nil)
	if err != nil {
		return nil, err
	}
	slot, err := materialize.Run(be, k, nil)
	if err != nil {
		return nil, err
	}
	return newArray(be, dt, shape, slot)
}

// Zeros returns an array of shape filled with dt's zero value.
func Zeros(be backend.Backend, shape []int64, dt dtype.DType) (*Array, error) {
	return Full(be, shape, dt, dt.ZeroValue())
}

// Ones returns an array of shape filled with dt's multiplicative identity.
func Ones(be backend.Backend, shape []int64, dt dtype.DType) (*Array, error) {
	return Full(be, shape, dt, oneValue(dt))
}

func oneValue(dt dtype.DType) interface{} {
	switch dt {
	case dtype.Int32:
		return int32(1)
	case dtype.Uint32:
		return uint32(1)
	case dtype.Float32, dtype.Float16:
		return float32(1)
	case dtype.Bool:
		return true
	default:
		return nil
	}
}

// FromFloat32 uploads data (row-major) as a Float32 array of shape.
func FromFloat32(be backend.Backend, shape []int64, data []float32) (*Array, error) {
	n := numElements(shape)
	if int64(len(data)) != n {
		return nil, shapeErr("from_data: %d values for shape %v (%d elements)", len(data), shape, n)
	}
	buf := make([]byte, n*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	slot, err := be.Malloc(int64(len(buf)), buf)
	if err != nil {
		return nil, err
	}
	return newArray(be, dtype.Float32, shape, slot)
}

// FromInt32 uploads data (row-major) as an Int32 array of shape.
func FromInt32(be backend.Backend, shape []int64, data []int32) (*Array, error) {
	n := numElements(shape)
	if int64(len(data)) != n {
		return nil, shapeErr("from_data: %d values for shape %v (%d elements)", len(data), shape, n)
	}
	buf := make([]byte, n*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	slot, err := be.Malloc(int64(len(buf)), buf)
	if err != nil {
		return nil, err
	}
	return newArray(be, dtype.Int32, shape, slot)
}

// FromUint32 uploads data (row-major) as a Uint32 array of shape.
func FromUint32(be backend.Backend, shape []int64, data []uint32) (*Array, error) {
	n := numElements(shape)
	if int64(len(data)) != n {
		return nil, shapeErr("from_data: %d values for shape %v (%d elements)", len(data), shape, n)
	}
	buf := make([]byte, n*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	slot, err := be.Malloc(int64(len(buf)), buf)
	if err != nil {
		return nil, err
	}
	return newArray(be, dtype.Uint32, shape, slot)
}

// FromBool uploads data (row-major) as a Bool array of shape.
func FromBool(be backend.Backend, shape []int64, data []bool) (*Array, error) {
	n := numElements(shape)
	if int64(len(data)) != n {
		return nil, shapeErr("from_data: %d values for shape %v (%d elements)", len(data), shape, n)
	}
	buf := make([]byte, n*4)
	for i, v := range data {
		if v {
			binary.LittleEndian.PutUint32(buf[i*4:], 1)
		}
	}
	slot, err := be.Malloc(int64(len(buf)), buf)
	if err != nil {
		return nil, err
	}
	return newArray(be, dtype.Bool, shape, slot)
}
