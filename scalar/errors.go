package scalar

import (
	"errors"
	"fmt"

	"github.com/luisdiaz1997/gojax/xerrors"
)

// Sentinel errors for the scalar package, following the lvlath/matrix
// convention: wrap these with fmt.Errorf("ctx: %w", ...) rather than
// returning them bare when the caller needs extra context; match them with
// errors.Is regardless.
var (
	// ErrDtypeMismatch indicates two sources of a binary/comparison op
	// carry different dtypes.
	ErrDtypeMismatch = errors.New("scalar: operand dtype mismatch")

	// ErrBadArity indicates an op was built with the wrong number of sources.
	ErrBadArity = errors.New("scalar: wrong number of sources for op")

	// ErrNotFloat indicates a float-only op (sin/cos) was given a
	// non-floating dtype.
	ErrNotFloat = errors.New("scalar: operand is not a floating dtype")

	// ErrNotBool indicates an op requiring a boolean source was given a
	// non-boolean one (where's condition, a comparison's result slot).
	ErrNotBool = errors.New("scalar: operand is not boolean")

	// ErrBadLiteral indicates a Const's Arg doesn't match its declared dtype.
	ErrBadLiteral = errors.New("scalar: literal does not match declared dtype")

	// ErrUnboundSpecial indicates Evaluate encountered an OpSpecial with no
	// binding in the supplied Env.
	ErrUnboundSpecial = errors.New("scalar: unbound special variable")

	// ErrNoGlobalReader indicates Evaluate encountered an OpGlobalIndex but
	// the Env has no Global callback.
	ErrNoGlobalReader = errors.New("scalar: global index with no buffer reader")
)

// wrapDtype joins a local sentinel with the shared xerrors.ErrDtype kind so
// both errors.Is(err, scalar.ErrDtypeMismatch) and
// errors.Is(err, xerrors.ErrDtype) classify it correctly.
func wrapDtype(sentinel error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("scalar: %s: %w: %w", msg, sentinel, xerrors.ErrDtype)
}
