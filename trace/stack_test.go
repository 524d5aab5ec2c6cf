package trace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/trace"
)

// leaf is a minimal trace.Tracer: an int value tagged with the level of
// the interpreter that produced it.
type leaf struct {
	level int
	n     int
}

func (l leaf) Level() int { return l.level }
func (l leaf) Abstract() trace.AbstractValue {
	return trace.AbstractValue{Shape: nil, DType: dtype.Int32}
}

// sumBase evaluates "add" at the concrete base level by summing its
// operands' int values.
type sumBase struct{}

func (sumBase) ProcessPrimitive(prim trace.Primitive, params trace.Params, operands []trace.Tracer) ([]trace.Tracer, error) {
	if prim != "add" {
		return nil, trace.ErrUnknownPrimitive
	}
	total := 0
	for _, op := range operands {
		total += op.(leaf).n
	}
	return []trace.Tracer{leaf{level: 0, n: total}}, nil
}

// doubler is a level-1 Interpreter: it lifts a lower-level leaf by
// re-tagging it at this interpreter's level, and processes "add" by
// summing then doubling, tagging the result at its own level.
type doubler struct{ level int }

func (d doubler) Level() int { return d.level }

func (d doubler) Lift(t trace.Tracer) (trace.Tracer, error) {
	return leaf{level: d.level, n: t.(leaf).n}, nil
}

func (d doubler) ProcessPrimitive(prim trace.Primitive, params trace.Params, operands []trace.Tracer) ([]trace.Tracer, error) {
	if prim != "add" {
		return nil, trace.ErrUnknownPrimitive
	}
	total := 0
	for _, op := range operands {
		if op == nil {
			continue
		}
		total += op.(leaf).n
	}
	return []trace.Tracer{leaf{level: d.level, n: total * 2}}, nil
}

func TestStackEmptyDispatchesToBase(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(sumBase{})
	r.Equal(0, s.Depth())
	r.Equal(1, s.NextLevel())
	r.Nil(s.Top())

	out, err := trace.Bind(s, "add", nil, []trace.Tracer{leaf{0, 2}, leaf{0, 3}})
	r.NoError(err)
	r.Len(out, 1)
	r.Equal(5, out[0].(leaf).n)
	r.Equal(0, out[0].Level())
}

func TestStackPushRaisesOperandsAndDispatchesToTop(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(sumBase{})

	pop := s.Push(doubler{level: s.NextLevel()})
	defer pop()

	r.Equal(1, s.Depth())
	r.Equal(1, s.Top().Level())

	// One operand is already at level 1, the other is a bare concrete
	// leaf at level 0: Bind must raise the concrete one via Lift before
	// dispatching to doubler.ProcessPrimitive.
	out, err := trace.Bind(s, "add", nil, []trace.Tracer{leaf{1, 4}, leaf{0, 6}})
	r.NoError(err)
	r.Len(out, 1)
	r.Equal(20, out[0].(leaf).n) // (4+6)*2
	r.Equal(1, out[0].Level())
}

func TestStackPopRestoresBaseDispatch(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(sumBase{})

	pop := s.Push(doubler{level: s.NextLevel()})
	pop()
	r.Equal(0, s.Depth())

	out, err := trace.Bind(s, "add", nil, []trace.Tracer{leaf{0, 1}, leaf{0, 1}})
	r.NoError(err)
	r.Equal(2, out[0].(leaf).n, "after pop, dispatch must go back to the base evaluator, not the doubled rule")
}

func TestStackPopIsIdempotent(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(sumBase{})
	pop := s.Push(doubler{level: s.NextLevel()})
	pop()
	r.NotPanics(func() { pop() })
	r.Equal(0, s.Depth())
}

func TestStackAtOutOfRangeErrors(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(sumBase{})
	_, err := s.At(1)
	r.ErrorIs(err, trace.ErrEmptyStack)

	_, err = s.At(0)
	r.ErrorIs(err, trace.ErrEmptyStack)
}

func TestStackNestedLevelsDispatchAtHighest(t *testing.T) {
	r := require.New(t)
	s := trace.NewStack(sumBase{})

	popOuter := s.Push(doubler{level: s.NextLevel()})
	defer popOuter()
	popInner := s.Push(doubler{level: s.NextLevel()})
	defer popInner()

	r.Equal(2, s.Depth())

	// Operands sit at levels 0 and 1; the stack's own depth (2) forces
	// the dispatch to the innermost (level-2) interpreter, raising both
	// operands through level 1 first.
	out, err := trace.Bind(s, "add", nil, []trace.Tracer{leaf{0, 1}, leaf{1, 2}})
	r.NoError(err)
	r.Equal(2, out[0].Level())
	r.Equal(6, out[0].(leaf).n, "raising only re-tags level; only the level-2 ProcessPrimitive call doubles: (1+2)*2")
}
