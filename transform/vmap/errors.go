package vmap

import "errors"

// ErrAxisSizeMismatch is returned when two batched operands disagree on
// their batched axis's length (spec.md §4.3: "Axis-size consistency is
// enforced").
var ErrAxisSizeMismatch = errors.New("vmap: batched operands disagree on batch axis size")
