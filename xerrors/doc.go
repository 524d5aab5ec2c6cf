// Package xerrors defines the error kinds gojax's middle-end raises,
// per spec.md §7: ShapeError, DtypeError, TreeMismatchError, ReferenceError,
// BackendError, and UnsupportedError.
//
// Each kind is both a package-level sentinel (for errors.Is, following the
// convention in lvlath/matrix/errors.go: "DO NOT %w wrap these sentinels
// when returning directly; if context is essential, wrap with fmt.Errorf at
// the outer boundary") and a constructor returning a richer *KindError value
// that carries the structured detail the sentinel alone cannot (the two
// mismatched tree shapes, the backend's verbatim diagnostic text, the
// primitive/transform pair with no rule). The richer value's Unwrap returns
// the sentinel, so both forms compose under errors.Is/errors.As.
package xerrors
