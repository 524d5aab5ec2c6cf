package kernel

import (
	"errors"
	"fmt"

	"github.com/luisdiaz1997/gojax/xerrors"
)

var (
	// ErrNilExpr indicates a Kernel was built with a nil body expression.
	ErrNilExpr = errors.New("kernel: nil expression")

	// ErrBadSize indicates a non-positive OutputSize or AxisSize.
	ErrBadSize = errors.New("kernel: size must be > 0")

	// ErrNilCombine indicates a Reduction was built with no Combine func.
	ErrNilCombine = errors.New("kernel: reduction requires a combine function")
)

func badArg(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w", fmt.Errorf(format, args...), xerrors.ErrShape)
}
