package scalar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/scalar"
)

func TestConstEvaluate(t *testing.T) {
	r := require.New(t)
	c, err := scalar.Const(dtype.Int32, int32(7))
	r.NoError(err)

	v, err := scalar.Evaluate(c, scalar.Env{})
	r.NoError(err)
	r.Equal(int32(7), v)
}

func TestConstRejectsMismatchedLiteral(t *testing.T) {
	r := require.New(t)
	_, err := scalar.Const(dtype.Int32, "not an int")
	r.Error(err)
}

func TestAddEvaluate(t *testing.T) {
	r := require.New(t)
	a, err := scalar.Const(dtype.Float32, float32(2))
	r.NoError(err)
	b, err := scalar.Const(dtype.Float32, float32(3))
	r.NoError(err)
	sum, err := scalar.Add(a, b)
	r.NoError(err)

	v, err := scalar.Evaluate(sum, scalar.Env{})
	r.NoError(err)
	r.Equal(float32(5), v)
}

func TestRecipEvaluate(t *testing.T) {
	r := require.New(t)
	a, err := scalar.Const(dtype.Float32, float32(4))
	r.NoError(err)
	recip, err := scalar.Recip(a)
	r.NoError(err)

	v, err := scalar.Evaluate(recip, scalar.Env{})
	r.NoError(err)
	r.Equal(float32(0.25), v)
}

func TestSpecialEvaluatesFromEnv(t *testing.T) {
	r := require.New(t)
	s, err := scalar.Special("gidx", 10)
	r.NoError(err)

	v, err := scalar.Evaluate(s, scalar.Env{Specials: map[string]int64{"gidx": 3}})
	r.NoError(err)
	r.Equal(int32(3), v)
}

func TestWhereSelectsBranch(t *testing.T) {
	r := require.New(t)
	cond, err := scalar.Const(dtype.Bool, true)
	r.NoError(err)
	a, err := scalar.Const(dtype.Int32, int32(1))
	r.NoError(err)
	b, err := scalar.Const(dtype.Int32, int32(2))
	r.NoError(err)

	w, err := scalar.Where(cond, a, b)
	r.NoError(err)
	v, err := scalar.Evaluate(w, scalar.Env{})
	r.NoError(err)
	r.Equal(int32(1), v)
}

func TestCastNarrowsValue(t *testing.T) {
	r := require.New(t)
	a, err := scalar.Const(dtype.Int32, int32(5))
	r.NoError(err)
	c, err := scalar.Cast(a, dtype.Float32)
	r.NoError(err)

	v, err := scalar.Evaluate(c, scalar.Env{})
	r.NoError(err)
	r.Equal(float32(5), v)
}

func TestSimplifyConstantFolds(t *testing.T) {
	r := require.New(t)
	a, err := scalar.Const(dtype.Int32, int32(2))
	r.NoError(err)
	b, err := scalar.Const(dtype.Int32, int32(3))
	r.NoError(err)
	sum, err := scalar.Add(a, b)
	r.NoError(err)

	simplified := scalar.Simplify(sum)
	v, err := scalar.Evaluate(simplified, scalar.Env{})
	r.NoError(err)
	r.Equal(int32(5), v)
}

func TestSimplifyAddZeroIdentity(t *testing.T) {
	r := require.New(t)
	gidx, err := scalar.Special("gidx", 10)
	r.NoError(err)
	zero, err := scalar.Const(dtype.Int32, int32(0))
	r.NoError(err)
	sum, err := scalar.Add(gidx, zero)
	r.NoError(err)

	simplified := scalar.Simplify(sum)
	v, err := scalar.Evaluate(simplified, scalar.Env{Specials: map[string]int64{"gidx": 9}})
	r.NoError(err)
	r.Equal(int32(9), v)
}
