// File: codec.go
// Role: encodes/decodes the scalar dtypes to/from this backend's raw byte
// buffers. Every element is 4 bytes except Float16, which is 2.

package cpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/luisdiaz1997/gojax/dtype"
)

func elementSize(d dtype.DType) int64 {
	if d == dtype.Float16 {
		return 2
	}
	return 4
}

func readElement(buf []byte, idx int64, d dtype.DType) (interface{}, error) {
	sz := elementSize(d)
	off := idx * sz
	if off < 0 || off+sz > int64(len(buf)) {
		return nil, fmt.Errorf("cpu: index %d (dtype %s) out of range for buffer of %d bytes", idx, d, len(buf))
	}
	chunk := buf[off : off+sz]
	switch d {
	case dtype.Int32:
		return int32(binary.LittleEndian.Uint32(chunk)), nil
	case dtype.Uint32:
		return binary.LittleEndian.Uint32(chunk), nil
	case dtype.Float32:
		return math.Float32frombits(binary.LittleEndian.Uint32(chunk)), nil
	case dtype.Bool:
		return binary.LittleEndian.Uint32(chunk) != 0, nil
	case dtype.Float16:
		return float16ToFloat32(binary.LittleEndian.Uint16(chunk)), nil
	default:
		return nil, fmt.Errorf("cpu: cannot decode dtype %s", d)
	}
}

func writeElement(buf []byte, idx int64, d dtype.DType, v interface{}) error {
	sz := elementSize(d)
	off := idx * sz
	if off < 0 || off+sz > int64(len(buf)) {
		return fmt.Errorf("cpu: index %d (dtype %s) out of range for buffer of %d bytes", idx, d, len(buf))
	}
	chunk := buf[off : off+sz]
	switch d {
	case dtype.Int32:
		binary.LittleEndian.PutUint32(chunk, uint32(mustInt32(v)))
	case dtype.Uint32:
		binary.LittleEndian.PutUint32(chunk, mustUint32(v))
	case dtype.Float32:
		binary.LittleEndian.PutUint32(chunk, math.Float32bits(mustFloat32(v)))
	case dtype.Bool:
		b := mustBool(v)
		if b {
			binary.LittleEndian.PutUint32(chunk, 1)
		} else {
			binary.LittleEndian.PutUint32(chunk, 0)
		}
	case dtype.Float16:
		binary.LittleEndian.PutUint16(chunk, float32ToFloat16(mustFloat32(v)))
	default:
		return fmt.Errorf("cpu: cannot encode dtype %s", d)
	}
	return nil
}

func mustInt32(v interface{}) int32 {
	switch t := v.(type) {
	case int32:
		return t
	case int64:
		return int32(t)
	default:
		return 0
	}
}

func mustUint32(v interface{}) uint32 {
	switch t := v.(type) {
	case uint32:
		return t
	case int32:
		return uint32(t)
	default:
		return 0
	}
}

func mustFloat32(v interface{}) float32 {
	switch t := v.(type) {
	case float32:
		return t
	case int32:
		return float32(t)
	case uint32:
		return float32(t)
	default:
		return 0
	}
}

func mustBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

// float16ToFloat32 converts an IEEE-754 binary16 bit pattern to float32.
func float16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 0x1
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff

	var f32bits uint32
	switch {
	case exp == 0 && frac == 0:
		f32bits = sign << 31
	case exp == 0x1f:
		f32bits = (sign << 31) | (0xff << 23) | (frac << 13)
	case exp == 0:
		// Subnormal half -> normalized float32.
		e := -1
		for frac&0x400 == 0 {
			frac <<= 1
			e++
		}
		frac &= 0x3ff
		exp32 := uint32(127 - 15 - e)
		f32bits = (sign << 31) | (exp32 << 23) | (frac << 13)
	default:
		exp32 := exp - 15 + 127
		f32bits = (sign << 31) | (exp32 << 23) | (frac << 13)
	}
	return math.Float32frombits(f32bits)
}

// float32ToFloat16 converts a float32 to an IEEE-754 binary16 bit pattern,
// rounding toward nearest-even on mantissa truncation.
func float32ToFloat16(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xff) - 127 + 15
	frac := bits & 0x7fffff

	switch {
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		frac |= 0x800000
		shift := uint(14 - exp)
		h := sign | uint16(frac>>shift)
		half := uint32(1) << (shift - 1)
		if rem := frac & (half<<1 - 1); rem > half || (rem == half && h&1 == 1) {
			h++
		}
		return h
	case exp >= 0x1f:
		return sign | 0x7c00
	default:
		h := sign | uint16(exp)<<10 | uint16(frac>>13)
		if rem := frac & 0x1fff; rem > 0x1000 || (rem == 0x1000 && h&1 == 1) {
			h++
		}
		return h
	}
}
