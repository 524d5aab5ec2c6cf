package view

import (
	"errors"
	"fmt"

	"github.com/luisdiaz1997/gojax/xerrors"
)

// Sentinel errors for the view package. Wrap with fmt.Errorf("ctx: %w", ...)
// at call sites that have extra context; match with errors.Is regardless.
var (
	// ErrNegativeDim indicates a requested shape has a dimension < 0.
	ErrNegativeDim = errors.New("view: negative dimension")

	// ErrSizeMismatch indicates a reshape's new shape has a different total
	// element count than the view being reshaped.
	ErrSizeMismatch = errors.New("view: reshape size mismatch")

	// ErrBadAxes indicates a permute/flip axes list is not a valid
	// permutation of [0, rank).
	ErrBadAxes = errors.New("view: invalid axes")

	// ErrBadBounds indicates shrink/pad begin/end bounds are out of range
	// or inverted.
	ErrBadBounds = errors.New("view: invalid bounds")

	// ErrNotBroadcastable indicates Expand was asked to change a dimension
	// that isn't of size 1.
	ErrNotBroadcastable = errors.New("view: dimension is not size-1, cannot broadcast")

	// ErrEmptyTracker indicates a ShapeTracker was constructed with zero views.
	ErrEmptyTracker = errors.New("view: shape tracker must have at least one view")
)

func shapeErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w", fmt.Errorf(format, args...), xerrors.ErrShape)
}
