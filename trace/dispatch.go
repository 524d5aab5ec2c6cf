package trace

// Bind is the generic primitive-dispatch algorithm spec.md §4.1 describes:
//
//  1. find the highest level among the operand tracers (and the stack's
//     own top, so a transform can inject tracers even for primitives whose
//     operands are all concrete, e.g. jit recording a constant),
//  2. raise every operand to that level by repeatedly calling each
//     intermediate interpreter's Lift,
//  3. hand the raised operands to that level's ProcessPrimitive (or, for
//     level 0, to the stack's BaseEvaluator),
//  4. return whatever tracers that call produces.
//
// Interpreters above the dispatch level never see the call at all: a
// primitive issued while only an outer (lower-level) transform is active is
// invisible to inner transforms that haven't been entered yet, and a
// primitive issued with no pushed interpreters at all runs directly at the
// concrete base level.
func Bind(s *Stack, prim Primitive, params Params, operands []Tracer) ([]Tracer, error) {
	target := s.Depth()
	for _, op := range operands {
		if op != nil && op.Level() > target {
			target = op.Level()
		}
	}

	raised := make([]Tracer, len(operands))
	for i, op := range operands {
		r, err := raiseTo(s, op, target)
		if err != nil {
			return nil, err
		}
		raised[i] = r
	}

	if target == 0 {
		return s.Base().ProcessPrimitive(prim, params, raised)
	}
	interp, err := s.At(target)
	if err != nil {
		return nil, err
	}
	return interp.ProcessPrimitive(prim, params, raised)
}

// raiseTo lifts t, currently at some level <= target, up through every
// intermediate interpreter until it reaches target.
func raiseTo(s *Stack, t Tracer, target int) (Tracer, error) {
	if t == nil {
		return nil, nil
	}
	cur := t
	for lvl := cur.Level() + 1; lvl <= target; lvl++ {
		interp, err := s.At(lvl)
		if err != nil {
			return nil, err
		}
		lifted, err := interp.Lift(cur)
		if err != nil {
			return nil, err
		}
		cur = lifted
	}
	return cur, nil
}
