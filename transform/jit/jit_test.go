package jit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/backend/cpu"
)

func TestCallTracesOncePerSignature(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	traces := 0
	c := Jit(func(rec *Recorder, inputs []*array.Array) ([]*array.Array, error) {
		traces++
		rec.Record("add")
		out, err := inputs[0].Add(inputs[1])
		if err != nil {
			return nil, err
		}
		return []*array.Array{out}, nil
	})

	a, err := array.FromFloat32(be, []int64{2}, []float32{1, 2})
	r.NoError(err)
	b, err := array.FromFloat32(be, []int64{2}, []float32{3, 4})
	r.NoError(err)

	out1, err := c.Call([]*array.Array{a, b})
	r.NoError(err)
	data, err := out1[0].Data()
	r.NoError(err)
	r.NotEmpty(data)
	r.Equal(1, traces)

	_, err = c.Call([]*array.Array{a, b})
	r.NoError(err)
	r.Equal(1, traces, "same signature must hit the cache, not re-trace")

	sig := signature([]*array.Array{a, b})
	jx, ok := c.cache[sig]
	r.True(ok)
	r.Equal([]Instruction{{Primitive: "add"}}, jx.Instructions)
}

func TestCallRetracesOnShapeChange(t *testing.T) {
	r := require.New(t)
	be := cpu.New()

	traces := 0
	c := Jit(func(rec *Recorder, inputs []*array.Array) ([]*array.Array, error) {
		traces++
		rec.Record("add")
		out, err := inputs[0].Add(inputs[1])
		if err != nil {
			return nil, err
		}
		return []*array.Array{out}, nil
	})

	a2, err := array.FromFloat32(be, []int64{2}, []float32{1, 2})
	r.NoError(err)
	b2, err := array.FromFloat32(be, []int64{2}, []float32{3, 4})
	r.NoError(err)
	a3, err := array.FromFloat32(be, []int64{3}, []float32{1, 2, 3})
	r.NoError(err)
	b3, err := array.FromFloat32(be, []int64{3}, []float32{4, 5, 6})
	r.NoError(err)

	_, err = c.Call([]*array.Array{a2, b2})
	r.NoError(err)
	_, err = c.Call([]*array.Array{a3, b3})
	r.NoError(err)
	r.Equal(2, traces, "a different input signature must trigger a fresh trace")
}
