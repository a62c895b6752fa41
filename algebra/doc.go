// Package algebra describes the algebraic structures lvnum values live in.
//
// The algebra package provides:
//
//   - Context, an immutable descriptor of a ring of integers mod n, a
//     polynomial ring, a matrix space, a finite field GF(p^k), a number
//     field Q[x]/(f), or a working precision for balls.
//   - Reference-counted sharing: every bound value holds its own handle
//     (Clone) and the foreign descriptor is cleared with the last handle.
//   - Structural compatibility checks run before any binary operation.
//   - The error taxonomy shared by all value packages.
//
// Contexts are built once and never mutated:
//
//	ctx, err := algebra.NewPolyRing(algebra.BaseInteger, "x")
//	if err != nil { ... }
//	defer ctx.Release()
//
// Two Contexts built independently from equal parameters are compatible;
// the display variable does not take part in the comparison.
package algebra
