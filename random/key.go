package random

import (
	"math"
)

// Key is a counter-based RNG key: two uint32 words (spec.md §6).
type Key [2]uint32

// NewKey zero-pads a 32-bit seed into a Key, per spec.md §6's "key(seed)
// zero-pads a 32-bit seed into such a pair".
func NewKey(seed uint32) Key {
	return Key{0, seed}
}

// threefryCounterBits runs Threefry-2x32 over the counter sequence
// 0..n-1, returning n output words. For odd n the counter sequence is
// padded with one trailing zero to split evenly in half (reached only from
// Bits with an odd element count; Split always asks for an even number of
// words); the padding slot's own output
// word is not discarded but XOR-folded back into the real output word it
// shares a Threefry pair with, so every bit of the permutation's output
// for that pair feeds the result (spec.md §8 scenario 4 pins the n=1
// case: bits(key(0)) == 4070199207, the XOR of threefry2x32(0,0,0,0)'s
// two lanes, not either lane alone).
func threefryCounterBits(key Key, n int64) []uint32 {
	if n <= 0 {
		return nil
	}
	odd := n%2 != 0
	lp := n
	if odd {
		lp = n + 1
	}
	count := make([]uint32, lp)
	for j := int64(0); j < n; j++ {
		count[j] = uint32(j)
	}
	half := lp / 2
	x0 := count[:half]
	x1 := count[half:]
	out := make([]uint32, lp)
	for i := int64(0); i < half; i++ {
		y0, y1 := threefry2x32(key[0], key[1], x0[i], x1[i])
		out[i] = y0
		out[half+i] = y1
	}
	if odd {
		out[half-1] ^= out[lp-1]
		out = out[:n]
	}
	return out
}

// Bits returns numElements(shape) pseudorandom uint32 words derived from
// key (spec.md §6's `bits(k, shape)`). An empty shape returns a single
// scalar word.
func Bits(key Key, shape []int64) []uint32 {
	n := int64(1)
	for _, s := range shape {
		n *= s
	}
	return threefryCounterBits(key, n)
}

// Split derives num independent keys from key via the counter-based
// bijection spec.md §6 describes ("applying a counter-based bijection").
func Split(key Key, num int64) []Key {
	raw := threefryCounterBits(key, num*2)
	out := make([]Key, num)
	for i := int64(0); i < num; i++ {
		out[i] = Key{raw[2*i], raw[2*i+1]}
	}
	return out
}

// Uniform returns numElements(shape) float32s uniform over [lo, hi),
// derived from the high 23 bits of each Bits word the way JAX constructs
// a uniform float from raw Threefry output: pack the mantissa bits under
// an exponent of 1.0, giving a value in [1,2), then shift to [0,1).
func Uniform(key Key, shape []int64, lo, hi float32) []float32 {
	bits := Bits(key, shape)
	out := make([]float32, len(bits))
	for i, b := range bits {
		floatBits := (b >> 9) | 0x3f800000
		u := math.Float32frombits(floatBits) - 1
		out[i] = lo + (hi-lo)*u
	}
	return out
}

// Normal returns numElements(shape) standard-normal float32s via the
// Box-Muller transform applied to two independent uniform streams split
// from key.
func Normal(key Key, shape []int64) []float32 {
	n := int64(1)
	for _, s := range shape {
		n *= s
	}
	keys := Split(key, 2)
	u1 := Uniform(keys[0], []int64{n}, 0, 1)
	u2 := Uniform(keys[1], []int64{n}, 0, 1)
	out := make([]float32, n)
	for i := int64(0); i < n; i++ {
		a := u1[i]
		if a <= 0 {
			a = 1e-12
		}
		r := float32(math.Sqrt(-2 * math.Log(float64(a))))
		theta := float32(2*math.Pi) * u2[i]
		out[i] = r * float32(math.Cos(float64(theta)))
	}
	return out
}
