package trace_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/trace"
)

func TestBindUnknownPrimitiveAtBase(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(sumBase{})
	_, err := trace.Bind(s, "mul", nil, []trace.Tracer{leaf{0, 1}, leaf{0, 2}})
	r.ErrorIs(err, trace.ErrUnknownPrimitive)
}

func TestBindUnknownPrimitiveAtPushedLevel(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(sumBase{})
	pop := s.Push(doubler{level: s.NextLevel()})
	defer pop()

	_, err := trace.Bind(s, "mul", nil, []trace.Tracer{leaf{1, 1}})
	r.ErrorIs(err, trace.ErrUnknownPrimitive)
}

// failLift is an Interpreter whose Lift always errors, used to exercise
// Bind's propagation of a raise failure.
type failLift struct{ level int }

func (f failLift) Level() int { return f.level }
func (f failLift) Lift(t trace.Tracer) (trace.Tracer, error) {
	return nil, errLift
}
func (f failLift) ProcessPrimitive(prim trace.Primitive, params trace.Params, operands []trace.Tracer) ([]trace.Tracer, error) {
	return nil, nil
}

var errLift = errors.New("lift failed")

func TestBindPropagatesLiftError(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(sumBase{})
	pop := s.Push(failLift{level: s.NextLevel()})
	defer pop()

	_, err := trace.Bind(s, "add", nil, []trace.Tracer{leaf{0, 1}})
	r.ErrorIs(err, errLift)
}

// nilTolerantBase treats a nil operand as zero, to probe that Bind's
// raise-to-level step never dereferences a nil Tracer itself.
type nilTolerantBase struct{}

func (nilTolerantBase) ProcessPrimitive(prim trace.Primitive, params trace.Params, operands []trace.Tracer) ([]trace.Tracer, error) {
	total := 0
	for _, op := range operands {
		if op == nil {
			continue
		}
		total += op.(leaf).n
	}
	return []trace.Tracer{leaf{level: 0, n: total}}, nil
}

func TestBindToleratesNilOperand(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(nilTolerantBase{})
	out, err := trace.Bind(s, "add", nil, []trace.Tracer{leaf{0, 5}, nil})
	r.NoError(err)
	r.Equal(5, out[0].(leaf).n)
}

func TestBindToleratesNilOperandUnderPushedInterpreter(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(nilTolerantBase{})
	pop := s.Push(doubler{level: s.NextLevel()})
	defer pop()

	// nil must survive raiseTo (which returns nil, nil for a nil Tracer)
	// without Lift ever being invoked on it.
	out, err := trace.Bind(s, "add", nil, []trace.Tracer{leaf{1, 3}, nil})
	r.NoError(err)
	r.Equal(6, out[0].(leaf).n)
}
