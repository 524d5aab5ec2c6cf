// Package random implements spec.md §6's counter-based random number
// generator: a Key is a pair of uint32 words; key derivation, splitting,
// and bit generation all go through a Threefry-2x32-20 permutation,
// grounded directly on the published Threefry specification (Salmon et
// al., "Parallel Random Numbers: As Easy as 1, 2, 3") the same way JAX's
// own RNG is built, so that fixed seeds reproduce deterministic,
// bit-reproducible sequences (spec.md §7's "bitwise outputs for fixed
// seeds" contract).
package random

// rotations are the 2 groups of 4 rotation constants Threefry-2x32-20
// cycles through across its 5 groups of 4 rounds (20 rounds total).
var rotations = [2][4]uint32{
	{13, 15, 26, 6},
	{17, 29, 16, 24},
}

const parityConstant uint32 = 0x1BD11BDA

func rotateLeft32(x, d uint32) uint32 {
	return (x << d) | (x >> (32 - d))
}

// threefry2x32 runs the 20-round Threefry-2x32 permutation on (x0,x1)
// keyed by (k0,k1).
func threefry2x32(k0, k1, x0, x1 uint32) (uint32, uint32) {
	ks := [3]uint32{k0, k1, k0 ^ k1 ^ parityConstant}
	x0 += ks[0]
	x1 += ks[1]
	for i := 0; i < 5; i++ {
		for _, r := range rotations[i%2] {
			x0 += x1
			x1 = rotateLeft32(x1, r)
			x1 ^= x0
		}
		newKeyIdx := uint32(i + 1)
		x0 += ks[newKeyIdx%3]
		x1 += ks[(newKeyIdx+1)%3] + newKeyIdx
	}
	return x0, x1
}
