// SPDX-License-Identifier: MIT

// Package backend - fmpq_poly: dense polynomials over Q.
package backend

import "math/big"

// FmpqPoly is a foreign polynomial with rational coefficients.
type FmpqPoly struct {
	header
	c []*big.Rat
}

var qring ring[*big.Rat] = qq{}

// FmpqPolyInit allocates the zero polynomial.
func FmpqPolyInit() *FmpqPoly {
	p := &FmpqPoly{}
	p.init(KindFmpqPoly)

	return p
}

// FmpqPolyClear releases p.
func FmpqPolyClear(p *FmpqPoly) { p.clear() }

// FmpqPolySet sets dst = src.
func FmpqPolySet(dst, src *FmpqPoly) {
	dst.must()
	src.must()
	dst.c = ratCopies(src.c)
}

// FmpqPolySetCoeffs sets dst from coefficients in ascending degree order.
func FmpqPolySetCoeffs(dst *FmpqPoly, coeffs []*big.Rat) {
	dst.must()
	dst.c = polyNorm(qring, ratCopies(coeffs))
}

// FmpqPolyCoeffs returns a copy of the normalized coefficient list.
func FmpqPolyCoeffs(p *FmpqPoly) []*big.Rat {
	p.must()

	return ratCopies(p.c)
}

// FmpqPolyGetCoeff returns the coefficient of x^i (zero beyond the length).
func FmpqPolyGetCoeff(p *FmpqPoly, i int) *big.Rat {
	p.must()
	if i < 0 || i >= len(p.c) {
		return new(big.Rat)
	}

	return new(big.Rat).Set(p.c[i])
}

// FmpqPolyLength returns the number of stored coefficients.
func FmpqPolyLength(p *FmpqPoly) int {
	p.must()

	return len(p.c)
}

// FmpqPolyDegree returns the degree, -1 for the zero polynomial.
func FmpqPolyDegree(p *FmpqPoly) int { return FmpqPolyLength(p) - 1 }

// FmpqPolyIsZero reports p == 0.
func FmpqPolyIsZero(p *FmpqPoly) bool { return FmpqPolyLength(p) == 0 }

// FmpqPolyEqual reports a == b.
func FmpqPolyEqual(a, b *FmpqPoly) bool {
	a.must()
	b.must()

	return polyEqual(qring, a.c, b.c)
}

// FmpqPolyAdd sets dst = a + b.
func FmpqPolyAdd(dst, a, b *FmpqPoly) {
	dst.must()
	a.must()
	b.must()
	dst.c = polyAdd(qring, a.c, b.c)
}

// FmpqPolySub sets dst = a - b.
func FmpqPolySub(dst, a, b *FmpqPoly) {
	dst.must()
	a.must()
	b.must()
	dst.c = polySub(qring, a.c, b.c)
}

// FmpqPolyMul sets dst = a * b.
func FmpqPolyMul(dst, a, b *FmpqPoly) {
	dst.must()
	a.must()
	b.must()
	dst.c = polyMul(qring, a.c, b.c)
}

// FmpqPolyNeg sets dst = -a.
func FmpqPolyNeg(dst, a *FmpqPoly) {
	dst.must()
	a.must()
	dst.c = polyNeg(qring, a.c)
}

// FmpqPolyDivRem sets q, r with a = q*b + r, deg r < deg b. Panics when b is zero.
func FmpqPolyDivRem(q, r, a, b *FmpqPoly) {
	q.must()
	r.must()
	a.must()
	b.must()
	qc, rc, ok := polyDivRem(qring, a.c, b.c)
	if !ok {
		panic(panicDivByZero)
	}
	q.c, r.c = qc, rc
}

// FmpqPolyDiv sets dst to the Euclidean quotient a div b. Panics when b is zero.
func FmpqPolyDiv(dst, a, b *FmpqPoly) {
	dst.must()
	a.must()
	b.must()
	qc, _, ok := polyDivRem(qring, a.c, b.c)
	if !ok {
		panic(panicDivByZero)
	}
	dst.c = qc
}

// FmpqPolyRem sets dst = a mod b. Panics when b is zero.
func FmpqPolyRem(dst, a, b *FmpqPoly) {
	dst.must()
	a.must()
	b.must()
	_, rc, ok := polyDivRem(qring, a.c, b.c)
	if !ok {
		panic(panicDivByZero)
	}
	dst.c = rc
}

// FmpqPolyGcd sets dst to the monic gcd of a and b (zero when both are zero).
func FmpqPolyGcd(dst, a, b *FmpqPoly) {
	dst.must()
	a.must()
	b.must()
	g, _, _, _ := polyXgcd(qring, a.c, b.c)
	dst.c = g
}

// FmpqPolyAddSi sets dst = a + n.
func FmpqPolyAddSi(dst, a *FmpqPoly, n int64) {
	dst.must()
	a.must()
	dst.c = polyAddConst(qring, a.c, qring.fromInt64(n))
}

// FmpqPolySubSi sets dst = a - n.
func FmpqPolySubSi(dst, a *FmpqPoly, n int64) {
	dst.must()
	a.must()
	dst.c = polyAddConst(qring, a.c, qring.neg(qring.fromInt64(n)))
}

// FmpqPolySiSub sets dst = n - a.
func FmpqPolySiSub(dst *FmpqPoly, n int64, a *FmpqPoly) {
	dst.must()
	a.must()
	dst.c = polyAddConst(qring, polyNeg(qring, a.c), qring.fromInt64(n))
}

// FmpqPolyScalarMulSi sets dst = a * n.
func FmpqPolyScalarMulSi(dst, a *FmpqPoly, n int64) {
	dst.must()
	a.must()
	dst.c = polyScale(qring, a.c, qring.fromInt64(n))
}

// FmpqPolyScalarDivSi sets dst = a / n. Panics when n is zero.
func FmpqPolyScalarDivSi(dst, a *FmpqPoly, n int64) {
	dst.must()
	a.must()
	if n == 0 {
		panic(panicDivByZero)
	}
	dst.c = polyScale(qring, a.c, big.NewRat(1, n))
}

// FmpqPolyPow sets dst = a^e.
func FmpqPolyPow(dst, a *FmpqPoly, e uint64) {
	dst.must()
	a.must()
	dst.c = polyPow(qring, a.c, e)
}

// FmpqPolyEvaluate sets dst = a(x).
func FmpqPolyEvaluate(dst *Fmpq, a *FmpqPoly, x *Fmpq) {
	dst.must()
	a.must()
	x.must()
	dst.setRat(polyEval(qring, a.c, x.rat()))
}

// QPolyIsSquarefree reports whether coeffs (ascending, over Q) has no
// repeated factor, i.e. gcd(f, f') = 1.
func QPolyIsSquarefree(coeffs []*big.Rat) bool {
	f := polyNorm(qring, ratCopies(coeffs))
	if len(f) <= 1 {
		return len(f) == 1
	}
	g, _, _, ok := polyXgcd(qring, f, polyDerivative(qring, f))

	return ok && len(g) == 1
}
