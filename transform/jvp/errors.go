package jvp

import "errors"

// ErrUnsupportedDType is returned when JacFwd is asked to differentiate
// with respect to an array whose dtype has no one-hot basis vector
// defined (currently: Bool).
var ErrUnsupportedDType = errors.New("jvp: unsupported dtype for basis vector")
