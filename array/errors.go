package array

import "errors"

// ErrRankMismatch is wrapped into a ShapeError when two operand shapes
// cannot be aligned for broadcasting.
var ErrRankMismatch = errors.New("array: shapes cannot be broadcast together")

// ErrAxisOutOfRange is wrapped into a ShapeError when a reduction or
// transpose axis is outside [0, rank).
var ErrAxisOutOfRange = errors.New("array: axis out of range")

// ErrEmptyConcat is wrapped into a ShapeError when Concat or Stack is
// called with no input arrays.
var ErrEmptyConcat = errors.New("array: concat/stack requires at least one array")
