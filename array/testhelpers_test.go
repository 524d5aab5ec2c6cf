package array_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/luisdiaz1997/gojax/array"
)

// decodeFloat32 reinterprets raw little-endian 4-byte lanes as float32s.
func decodeFloat32(buf []byte) []float32 {
	n := len(buf) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func decodeInt32(buf []byte) []int32 {
	n := len(buf) / 4
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func decodeUint32(buf []byte) []uint32 {
	n := len(buf) / 4
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return out
}

func mustData(t *testing.T, a *array.Array) []byte {
	t.Helper()
	d, err := a.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	return d
}
