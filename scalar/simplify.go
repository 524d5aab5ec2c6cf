// File: simplify.go
// Role: the bottom-up, memoized algebraic simplifier from spec.md §3.1.
// Simplify is idempotent (simplify(simplify(e)) == simplify(e) structurally)
// and semantics-preserving (evaluate(simplify(e), ctx) == evaluate(e, ctx)
// for every ctx).

package scalar

import (
	"fmt"
	"strings"

	"github.com/luisdiaz1997/gojax/dtype"
)

// simplifier holds the two caches a single Simplify pass needs: memo maps a
// node's identity to its already-simplified form (so a DAG node reachable
// from multiple parents is processed once), and intern maps a structural key
// to a canonical node (so two freshly-built, structurally-equal nodes
// collapse to the same pointer — spec.md §3.1: "equal subexpressions should
// be reused to keep the DAG small").
type simplifier struct {
	memo   map[*Expr]*Expr
	intern map[string]*Expr
}

// Simplify returns the simplified form of e. It never fails: an expression
// that cannot be folded or rewritten is returned as an equivalent
// (possibly identical) node.
func Simplify(e *Expr) *Expr {
	s := &simplifier{memo: make(map[*Expr]*Expr), intern: make(map[string]*Expr)}
	return s.run(e)
}

func (s *simplifier) run(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	if v, ok := s.memo[e]; ok {
		return v
	}

	// Recurse first: simplify operands bottom-up.
	newSources := make([]*Expr, len(e.sources))
	for i, src := range e.sources {
		newSources[i] = s.run(src)
	}
	rebuilt := s.internNode(e.op, e.dtype, newSources, e.arg)

	out := s.rewrite(rebuilt)
	out = s.constantFold(out)
	out = s.intern2(out)
	s.memo[e] = out
	return out
}

// internNode builds (or reuses) a node with the given fields.
func (s *simplifier) internNode(op Op, d dtype.DType, sources []*Expr, arg interface{}) *Expr {
	return s.intern2(&Expr{op: op, dtype: d, sources: sources, arg: arg})
}

func (s *simplifier) intern2(e *Expr) *Expr {
	k := structuralKey(e)
	if canon, ok := s.intern[k]; ok {
		return canon
	}
	e.key = k
	s.intern[k] = e
	return e
}

func structuralKey(e *Expr) string {
	var b strings.Builder
	writeKey(&b, e)
	return b.String()
}

func writeKey(b *strings.Builder, e *Expr) {
	if e == nil {
		b.WriteString("nil")
		return
	}
	fmt.Fprintf(b, "(%s:%s", e.op, e.dtype)
	switch a := e.arg.(type) {
	case SpecialArg:
		fmt.Fprintf(b, "[%s<%d]", a.Name, a.N)
	case GlobalIndexArg:
		fmt.Fprintf(b, "[g%d]", a.GID)
	case nil:
	default:
		fmt.Fprintf(b, "[%v]", a)
	}
	for _, src := range e.sources {
		b.WriteByte(' ')
		writeKey(b, src)
	}
	b.WriteByte(')')
}

// rewrite applies the identity/algebraic rewrites from spec.md §3.1. e's
// sources are already simplified.
func (s *simplifier) rewrite(e *Expr) *Expr {
	switch e.op {
	case OpAdd:
		a, b := e.sources[0], e.sources[1]
		if isZero(a) {
			return b
		}
		if isZero(b) {
			return a
		}
		// a + (-1)*b => a - b, and its mirror (-1)*b + a => a - b.
		if neg, ok := negatedOperand(b); ok {
			return s.rewrite(s.internNode(OpSub, e.dtype, []*Expr{a, neg}, nil))
		}
		if neg, ok := negatedOperand(a); ok {
			return s.rewrite(s.internNode(OpSub, e.dtype, []*Expr{b, neg}, nil))
		}
		return e

	case OpSub:
		a, b := e.sources[0], e.sources[1]
		if isZero(b) {
			return a
		}
		return e

	case OpMul:
		a, b := e.sources[0], e.sources[1]
		if isOne(a) {
			return b
		}
		if isOne(b) {
			return a
		}
		if isZero(a) || isZero(b) {
			return zeroLike(e.dtype)
		}
		return e

	case OpIDiv:
		a, b := e.sources[0], e.sources[1]
		if isOne(b) {
			return a
		}
		return e

	case OpWhere:
		cond, a, b := e.sources[0], e.sources[1], e.sources[2]
		if cond.op == OpConst {
			if cond.arg.(bool) {
				return a
			}
			return b
		}
		return e

	default:
		return e
	}
}

// negatedOperand reports whether e is mul(-1, x) or mul(x, -1), returning x.
func negatedOperand(e *Expr) (*Expr, bool) {
	if e.op != OpMul {
		return nil, false
	}
	a, b := e.sources[0], e.sources[1]
	if isNegOne(a) {
		return b, true
	}
	if isNegOne(b) {
		return a, true
	}
	return nil, false
}

func isZero(e *Expr) bool {
	if e.op != OpConst {
		return false
	}
	switch v := e.arg.(type) {
	case int32:
		return v == 0
	case uint32:
		return v == 0
	case float32:
		return v == 0
	case bool:
		return v == false
	}
	return false
}

func isOne(e *Expr) bool {
	if e.op != OpConst {
		return false
	}
	switch v := e.arg.(type) {
	case int32:
		return v == 1
	case uint32:
		return v == 1
	case float32:
		return v == 1
	case bool:
		return v == true
	}
	return false
}

func isNegOne(e *Expr) bool {
	if e.op != OpConst {
		return false
	}
	switch v := e.arg.(type) {
	case int32:
		return v == -1
	case float32:
		return v == -1
	}
	return false
}

func zeroLike(d dtype.DType) *Expr {
	e, _ := Const(d, d.ZeroValue())
	return e
}

// hasFreeVars reports whether e's subtree reads an OpSpecial or
// OpGlobalIndex node, i.e. whether it can be evaluated with an empty Env.
func hasFreeVars(e *Expr) bool {
	switch e.op {
	case OpSpecial, OpGlobalIndex:
		return true
	}
	for _, src := range e.sources {
		if hasFreeVars(src) {
			return true
		}
	}
	return false
}

// constantFold folds e to a Const node when its subtree has no free
// variables, via the reference evaluator (spec.md §3.1: "full constant
// folding via the evaluator for subtrees with no free variables").
func (s *simplifier) constantFold(e *Expr) *Expr {
	if e.op == OpConst {
		return e
	}
	if hasFreeVars(e) {
		return e
	}
	v, err := Evaluate(e, Env{})
	if err != nil {
		// Unreachable for well-formed, fully-typed expressions; leave as-is
		// rather than panicking on an evaluator edge case.
		return e
	}
	folded, err := Const(e.dtype, v)
	if err != nil {
		return e
	}
	return folded
}
