// Package poly provides univariate polynomials over Z, Q, Z/nZ and GF(p^k).
//
// Polynomials are bound to a ring Context from algebra.NewPolyRing or
// algebra.NewModPolyRing (algebra.NewFqPolyRing for FqPoly) and print in descending degree:
//
//	zx, _ := algebra.NewPolyRing(algebra.BaseInteger, "x")
//	defer zx.Release()
//	p, _ := poly.NewInt(zx, 1, 2) // 2*x + 1
//	q, _ := poly.NewInt(zx, 0, 3) // 3*x
//	s, _ := p.Add(q)
//	fmt.Println(s)                // 5*x + 1
//
// ParseInt, ParseRat and ParseMod read the printed form back. Division is
// available over Q, Z/nZ and GF(p^k) (Euclidean quotient), not over Z.
// FqPoly coefficients print in the field generator o.
package poly
