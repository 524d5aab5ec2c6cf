// Package dtype defines the small, closed set of scalar element types the
// rest of gojax operates over, and the handful of rules (zero values,
// boolean-vs-numeric arithmetic semantics, promotion) every other package
// needs to agree on.
//
// gojax never infers a dtype from Go's native numeric kinds the way a
// generic-over-number-types library would: every ScalarExpr node declares
// its dtype explicitly (a View carries none; the array that owns a shape
// tracker records the dtype), and callers of this package are expected
// to validate operand dtypes before constructing IR nodes. dtype itself only
// hosts the vocabulary, not the validation.
package dtype
