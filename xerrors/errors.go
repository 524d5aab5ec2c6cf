package xerrors

import (
	"errors"
	"fmt"
)

// Kind names the distinct error classes from spec.md §7. Each has a stable
// string name so diagnostics and logs can grep for it.
type Kind string

const (
	KindShape         Kind = "ShapeError"
	KindDtype         Kind = "DtypeError"
	KindTreeMismatch  Kind = "TreeMismatchError"
	KindReference     Kind = "ReferenceError"
	KindBackend       Kind = "BackendError"
	KindUnsupported   Kind = "UnsupportedError"
)

// Sentinel errors. Use errors.Is(err, xerrors.ErrShape) etc. to classify an
// error returned from anywhere in gojax, whether it is a bare sentinel or
// one of the richer *Error values below.
var (
	ErrShape        = errors.New("gojax: shape error")
	ErrDtype        = errors.New("gojax: dtype error")
	ErrTreeMismatch = errors.New("gojax: tree mismatch")
	ErrReference    = errors.New("gojax: reference error")
	ErrBackend      = errors.New("gojax: backend error")
	ErrUnsupported  = errors.New("gojax: unsupported")
)

func sentinelFor(k Kind) error {
	switch k {
	case KindShape:
		return ErrShape
	case KindDtype:
		return ErrDtype
	case KindTreeMismatch:
		return ErrTreeMismatch
	case KindReference:
		return ErrReference
	case KindBackend:
		return ErrBackend
	case KindUnsupported:
		return ErrUnsupported
	default:
		return errors.New("gojax: unknown error kind")
	}
}

// Error is the structured form of a gojax error: a Kind, a human message,
// and Unwrap back to the Kind's sentinel so errors.Is keeps working across
// package boundaries.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return sentinelFor(e.Kind)
}

// Shape builds a ShapeError: broadcast incompatibility, reshape with
// mismatched total size, axis out of bounds, mismatched batch sizes.
func Shape(format string, args ...interface{}) error {
	return &Error{Kind: KindShape, Message: fmt.Sprintf(format, args...)}
}

// Dtype builds a DtypeError: mixed dtypes with no defined promotion, or an
// invalid literal for a declared dtype.
func Dtype(format string, args ...interface{}) error {
	return &Error{Kind: KindDtype, Message: fmt.Sprintf(format, args...)}
}

// Reference builds a ReferenceError: use-after-dispose, double dispose,
// unknown slot.
func Reference(format string, args ...interface{}) error {
	return &Error{Kind: KindReference, Message: fmt.Sprintf(format, args...)}
}

// Unsupported builds an UnsupportedError: a primitive has no rule for the
// current transform (e.g. JVP of a boolean-producing op under differentiation).
func Unsupported(format string, args ...interface{}) error {
	return &Error{Kind: KindUnsupported, Message: fmt.Sprintf(format, args...)}
}

// errorBase lets the richer error types embed *Error under a field name
// other than Error, so the field does not hide or clash with the Error method.
type errorBase = Error

// TreeMismatchError carries both structures that failed to match, per
// spec.md §4.1: "report a dedicated tree-mismatch error naming the paths
// that differ."
type TreeMismatchError struct {
	*errorBase
	LeftPaths  []string
	RightPaths []string
}

// TreeMismatch builds a TreeMismatchError naming the divergent paths of the
// two pytree-like structures being compared (e.g. a function's primals vs
// its tangents, or its positional argnums).
func TreeMismatch(context string, leftPaths, rightPaths []string) error {
	return &TreeMismatchError{
		errorBase: &Error{
			Kind: KindTreeMismatch,
			Message: fmt.Sprintf(
				"%s: structures differ at left=%v right=%v",
				context, leftPaths, rightPaths,
			),
		},
		LeftPaths:  leftPaths,
		RightPaths: rightPaths,
	}
}

// BackendError carries a compiler's verbatim diagnostic text, per spec.md
// §7: "carries compiler diagnostics verbatim."
type BackendError struct {
	*errorBase
	Diagnostics string
}

// Backend builds a BackendError for a compile or dispatch failure occurring
// in an op (e.g. "prepare", "dispatch"), carrying the backend's diagnostic
// output untouched.
func Backend(op string, diagnostics string) error {
	return &BackendError{
		errorBase:   &Error{Kind: KindBackend, Message: fmt.Sprintf("%s failed", op)},
		Diagnostics: diagnostics,
	}
}

func (e *BackendError) Error() string {
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Diagnostics == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, e.Diagnostics)
}
