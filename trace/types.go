package trace

import "github.com/luisdiaz1997/gojax/dtype"

// AbstractValue is the shape/dtype pair every Tracer must be able to report
// without forcing materialization (spec.md §4.1).
type AbstractValue struct {
	Shape []int64
	DType dtype.DType
}

// Primitive names one of the fixed set of array operations the tracing core
// understands (add, mul, reduce_sum, reshape, transpose, ...). Interpreters
// match on Primitive values in their ProcessPrimitive rule tables.
type Primitive string

// Params carries a primitive's static (non-traced) arguments: axis lists,
// target shapes, permutations, closed-over jaxprs, and the like. Keys are
// primitive-specific; see each primitive's call site in package array.
type Params map[string]interface{}

// Tracer is the common interface every value flowing through Bind
// implements. Outside tests the only implementation is the base concrete
// array (package array's *Array); the transform packages' Dual, Batched
// and Recorder types do not implement it.
//
// Level 0 is reserved for concrete, untraced arrays. Every pushed
// interpreter is assigned the next integer above the current stack depth,
// so nesting order fixes transform precedence exactly as spec.md §4.1
// requires (innermost-pushed trace dispatches first).
type Tracer interface {
	// Level reports which interpreter (or 0 for concrete) produced this
	// tracer.
	Level() int
	// Abstract reports this tracer's shape and dtype without forcing
	// materialization.
	Abstract() AbstractValue
}

// Interpreter is the per-transform dispatch table: given a primitive, its
// static params, and operand tracers already raised to this interpreter's
// level, produce the primitive's output tracers.
type Interpreter interface {
	// Level is this interpreter's assigned stack level (> 0).
	Level() int
	// ProcessPrimitive evaluates prim at this interpreter's level.
	ProcessPrimitive(prim Primitive, params Params, operands []Tracer) ([]Tracer, error)
	// Lift wraps a tracer from a lower level (or a concrete level-0 value)
	// into this interpreter's own tracer representation, e.g. pairing a
	// concrete array with a zero tangent for JVP, or attaching "not
	// batched" for vmap.
	Lift(t Tracer) (Tracer, error)
}

// BaseEvaluator is the level-0 concrete evaluator a Stack dispatches to
// when no interpreter is pushed, or when an operand must be lowered past
// every pushed interpreter back down to concrete evaluation. Package array
// implements this.
type BaseEvaluator interface {
	ProcessPrimitive(prim Primitive, params Params, operands []Tracer) ([]Tracer, error)
}
