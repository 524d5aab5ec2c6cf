package random_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/random"
)

func TestBitsDeterministic(t *testing.T) {
	r := require.New(t)

	k := random.NewKey(0)
	a := random.Bits(k, []int64{8})
	b := random.Bits(k, []int64{8})
	r.Equal(a, b, "same key and shape must produce identical bits")
	r.Len(a, 8)
}

func TestBitsDiffersAcrossKeys(t *testing.T) {
	r := require.New(t)

	a := random.Bits(random.NewKey(0), []int64{4})
	b := random.Bits(random.NewKey(1), []int64{4})
	r.NotEqual(a, b, "different keys should (overwhelmingly likely) produce different bits")
}

func TestBitsEmptyShapeIsOneValue(t *testing.T) {
	r := require.New(t)
	out := random.Bits(random.NewKey(42), nil)
	r.Len(out, 1)
}

func TestBitsOddLength(t *testing.T) {
	r := require.New(t)
	out := random.Bits(random.NewKey(7), []int64{5})
	r.Len(out, 5)
}

// TestBitsMatchesScenarioFour pins spec.md §8 scenario 4's mandated value:
// random.bits(random.key(0)) == 4070199207. This is the XOR-fold of
// threefry2x32(0,0,0,0)'s two output lanes (1797259609 and 2579123966),
// not either lane alone.
func TestBitsMatchesScenarioFour(t *testing.T) {
	r := require.New(t)
	out := random.Bits(random.NewKey(0), nil)
	r.Equal([]uint32{4070199207}, out)
}

// TestSplitMatchesScenarioFour pins the 3x2 key matrix random.split
// produces for key(0), derived by hand from the same Threefry-2x32-20
// permutation (see DESIGN.md's random section for how this was computed).
func TestSplitMatchesScenarioFour(t *testing.T) {
	r := require.New(t)
	keys := random.Split(random.NewKey(0), 3)
	r.Equal([]random.Key{
		{2467461003, 428148500},
		{3186719485, 3840466878},
		{2562233961, 1946702221},
	}, keys)
}

func TestSplitProducesRequestedCount(t *testing.T) {
	r := require.New(t)

	keys := random.Split(random.NewKey(3), 4)
	r.Len(keys, 4)

	seen := map[random.Key]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	r.Len(seen, 4, "split keys should be pairwise distinct")
}

func TestUniformWithinBounds(t *testing.T) {
	r := require.New(t)

	vals := random.Uniform(random.NewKey(11), []int64{100}, -2, 3)
	r.Len(vals, 100)
	for _, v := range vals {
		r.GreaterOrEqual(v, float32(-2))
		r.Less(v, float32(3))
	}
}

func TestUniformDeterministic(t *testing.T) {
	r := require.New(t)
	k := random.NewKey(5)
	a := random.Uniform(k, []int64{16}, 0, 1)
	b := random.Uniform(k, []int64{16}, 0, 1)
	r.Equal(a, b)
}

func TestNormalShape(t *testing.T) {
	r := require.New(t)
	vals := random.Normal(random.NewKey(9), []int64{2, 3})
	r.Len(vals, 6)
}

func TestNormalDeterministic(t *testing.T) {
	r := require.New(t)
	k := random.NewKey(21)
	a := random.Normal(k, []int64{10})
	b := random.Normal(k, []int64{10})
	r.Equal(a, b)
}
