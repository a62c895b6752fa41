// Package rational provides Rational, an arbitrary-precision rational.
//
// A Rational owns exactly one foreign fmpq structure and no Context. The
// arithmetic surface mirrors package integer (Add, AddAssign, AddInt64,
// Int64Sub, ...), with exact division.
//
// Values compare, hash and serialize through their canonical form:
//
//	a, _ := rational.Parse("12/8")
//	b, _ := rational.Parse("3/2")
//	a.Equal(b)             // true
//	a.Hash() == b.Hash()   // true
//	a.String()             // "3/2"
package rational
