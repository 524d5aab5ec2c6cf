package array

import (
	"github.com/luisdiaz1997/gojax/dtype"
	"github.com/luisdiaz1997/gojax/kernel"
	"github.com/luisdiaz1997/gojax/materialize"
	"github.com/luisdiaz1997/gojax/scalar"
)

// unaryOp builds the result of applying build to a single read of a,
// producing an array of dtype outDType and a's shape.
func unaryOp(a *Array, outDType dtype.DType, build func(x *scalar.Expr) (*scalar.Expr, error)) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	n := a.NumElements()
	gidx, err := materialize.Gidx(n)
	if err != nil {
		return nil, err
	}
	read, err := materialize.BuildRead(0, a.dt, a.tracker, gidx)
	if err != nil {
		return nil, err
	}
	expr, err := build(read)
	if err != nil {
		return nil, err
	}
	k, err := kernel.New(outDType, n, expr, nil)
	if err != nil {
		return nil, err
	}
	slot, err := materialize.Run(a.be, k, []kernel.Slot{a.slot})
	if err != nil {
		return nil, err
	}
	return newArray(a.be, outDType, a.shape, slot)
}

// binaryOp broadcasts a and b to a common shape and dtype, then builds the
// result of combining one read of each.
func binaryOp(a, b *Array, build func(x, y *scalar.Expr) (*scalar.Expr, error)) (*Array, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	outDType, ok := dtype.Promote(a.dt, b.dt)
	if !ok {
		return nil, dtypeErr("cannot combine dtype %s with %s", a.dt, b.dt)
	}
	outShape, err := broadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	at, err := alignTracker(a.tracker, a.shape, outShape)
	if err != nil {
		return nil, err
	}
	bt, err := alignTracker(b.tracker, b.shape, outShape)
	if err != nil {
		return nil, err
	}
	n := numElements(outShape)
	gidx, err := materialize.Gidx(n)
	if err != nil {
		return nil, err
	}
	ra, err := materialize.BuildRead(0, a.dt, at, gidx)
	if err != nil {
		return nil, err
	}
	rb, err := materialize.BuildRead(1, b.dt, bt, gidx)
	if err != nil {
		return nil, err
	}
	if a.dt != outDType {
		ra, err = scalar.Cast(ra, outDType)
		if err != nil {
			return nil, err
		}
	}
	if b.dt != outDType {
		rb, err = scalar.Cast(rb, outDType)
		if err != nil {
			return nil, err
		}
	}
	expr, err := build(ra, rb)
	if err != nil {
		return nil, err
	}
	k, err := kernel.New(expr.DType(), n, expr, nil)
	if err != nil {
		return nil, err
	}
	slot, err := materialize.Run(a.be, k, []kernel.Slot{a.slot, b.slot})
	if err != nil {
		return nil, err
	}
	return newArray(a.be, expr.DType(), outShape, slot)
}

// Add returns a+b (boolean OR for Bool arrays), broadcasting as needed.
func (a *Array) Add(b *Array) (*Array, error) { return dispatchBinary(PrimAdd, a, b) }

// Sub returns a-b, broadcasting as needed. Undefined for Bool arrays.
func (a *Array) Sub(b *Array) (*Array, error) { return dispatchBinary(PrimSub, a, b) }

// Mul returns a*b (boolean AND for Bool arrays), broadcasting as needed.
func (a *Array) Mul(b *Array) (*Array, error) { return dispatchBinary(PrimMul, a, b) }

// IDiv returns floor(a/b), broadcasting as needed.
func (a *Array) IDiv(b *Array) (*Array, error) { return binaryOp(a, b, scalar.IDiv) }

// Mod returns the floor-division complement of IDiv, broadcasting as needed.
func (a *Array) Mod(b *Array) (*Array, error) { return binaryOp(a, b, scalar.Mod) }

// Neg returns -a, as 0-a.
func (a *Array) Neg() (*Array, error) { return dispatchUnary(PrimNeg, a) }

// Reciprocal returns 1/a. a must be a floating-point array.
func (a *Array) Reciprocal() (*Array, error) {
	return unaryOp(a, a.dt, func(x *scalar.Expr) (*scalar.Expr, error) { return scalar.Recip(x) })
}

// Sin returns sin(a). a must be a floating-point array.
func (a *Array) Sin() (*Array, error) {
	return unaryOp(a, a.dt, func(x *scalar.Expr) (*scalar.Expr, error) { return scalar.Sin(x) })
}

// Cos returns cos(a). a must be a floating-point array.
func (a *Array) Cos() (*Array, error) {
	return unaryOp(a, a.dt, func(x *scalar.Expr) (*scalar.Expr, error) { return scalar.Cos(x) })
}

// Cast returns a copy of a reinterpreted as dtype to.
func (a *Array) Cast(to dtype.DType) (*Array, error) {
	return unaryOp(a, to, func(x *scalar.Expr) (*scalar.Expr, error) { return scalar.Cast(x, to) })
}

// CmpLT returns a<b element-wise as a Bool array, broadcasting as needed.
func (a *Array) CmpLT(b *Array) (*Array, error) {
	return binaryOp(a, b, func(x, y *scalar.Expr) (*scalar.Expr, error) { return scalar.CmpLT(x, y) })
}

// CmpNE returns a!=b element-wise as a Bool array, broadcasting as needed.
func (a *Array) CmpNE(b *Array) (*Array, error) {
	return binaryOp(a, b, func(x, y *scalar.Expr) (*scalar.Expr, error) { return scalar.CmpNE(x, y) })
}

// Min returns the element-wise minimum of a and b (spec.md §4.1's min
// primitive), broadcasting as needed.
func (a *Array) Min(b *Array) (*Array, error) {
	return binaryOp(a, b, func(x, y *scalar.Expr) (*scalar.Expr, error) {
		lt, err := scalar.CmpLT(x, y)
		if err != nil {
			return nil, err
		}
		return scalar.Where(lt, x, y)
	})
}

// Max returns the element-wise maximum of a and b, broadcasting as needed.
func (a *Array) Max(b *Array) (*Array, error) {
	return binaryOp(a, b, func(x, y *scalar.Expr) (*scalar.Expr, error) {
		lt, err := scalar.CmpLT(x, y)
		if err != nil {
			return nil, err
		}
		return scalar.Where(lt, y, x)
	})
}

// Where selects elements of a where cond is true, else from b. cond, a, and
// b are broadcast together; cond must be a Bool array.
func Where(cond, a, b *Array) (*Array, error) {
	if cond.dt != dtype.Bool {
		return nil, dtypeErr("where: condition must be bool, got %s", cond.dt)
	}
	outDType, ok := dtype.Promote(a.dt, b.dt)
	if !ok {
		return nil, dtypeErr("where: cannot combine dtype %s with %s", a.dt, b.dt)
	}
	shapeAB, err := broadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	outShape, err := broadcastShapes(shapeAB, cond.shape)
	if err != nil {
		return nil, err
	}
	ct, err := alignTracker(cond.tracker, cond.shape, outShape)
	if err != nil {
		return nil, err
	}
	at, err := alignTracker(a.tracker, a.shape, outShape)
	if err != nil {
		return nil, err
	}
	bt, err := alignTracker(b.tracker, b.shape, outShape)
	if err != nil {
		return nil, err
	}
	n := numElements(outShape)
	gidx, err := materialize.Gidx(n)
	if err != nil {
		return nil, err
	}
	rc, err := materialize.BuildRead(0, dtype.Bool, ct, gidx)
	if err != nil {
		return nil, err
	}
	ra, err := materialize.BuildRead(1, a.dt, at, gidx)
	if err != nil {
		return nil, err
	}
	rb, err := materialize.BuildRead(2, b.dt, bt, gidx)
	if err != nil {
		return nil, err
	}
	if a.dt != outDType {
		if ra, err = scalar.Cast(ra, outDType); err != nil {
			return nil, err
		}
	}
	if b.dt != outDType {
		if rb, err = scalar.Cast(rb, outDType); err != nil {
			return nil, err
		}
	}
	expr, err := scalar.Where(rc, ra, rb)
	if err != nil {
		return nil, err
	}
	k, err := kernel.New(outDType, n, expr, nil)
	if err != nil {
		return nil, err
	}
	slot, err := materialize.Run(cond.be, k, []kernel.Slot{cond.slot, a.slot, b.slot})
	if err != nil {
		return nil, err
	}
	return newArray(cond.be, outDType, outShape, slot)
}
