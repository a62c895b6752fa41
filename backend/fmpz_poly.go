// SPDX-License-Identifier: MIT

// Package backend - fmpz_poly: dense polynomials over Z.
package backend

import "math/big"

// FmpzPoly is a foreign polynomial with integer coefficients.
type FmpzPoly struct {
	header
	c []*big.Int
}

var zring ring[*big.Int] = zz{}

// FmpzPolyInit allocates the zero polynomial.
func FmpzPolyInit() *FmpzPoly {
	p := &FmpzPoly{}
	p.init(KindFmpzPoly)

	return p
}

// FmpzPolyClear releases p.
func FmpzPolyClear(p *FmpzPoly) { p.clear() }

// FmpzPolySet sets dst = src.
func FmpzPolySet(dst, src *FmpzPoly) {
	dst.must()
	src.must()
	dst.c = bigCopies(src.c)
}

// FmpzPolySetCoeffs sets dst from coefficients in ascending degree order.
func FmpzPolySetCoeffs(dst *FmpzPoly, coeffs []*big.Int) {
	dst.must()
	dst.c = polyNorm(zring, bigCopies(coeffs))
}

// FmpzPolyCoeffs returns a copy of the normalized coefficient list.
func FmpzPolyCoeffs(p *FmpzPoly) []*big.Int {
	p.must()

	return bigCopies(p.c)
}

// FmpzPolyGetCoeff returns the coefficient of x^i (zero beyond the length).
func FmpzPolyGetCoeff(p *FmpzPoly, i int) *big.Int {
	p.must()
	if i < 0 || i >= len(p.c) {
		return new(big.Int)
	}

	return new(big.Int).Set(p.c[i])
}

// FmpzPolySetCoeff sets the coefficient of x^i, growing p as needed.
func FmpzPolySetCoeff(p *FmpzPoly, i int, v *big.Int) {
	p.must()
	for len(p.c) <= i {
		p.c = append(p.c, new(big.Int))
	}
	p.c[i] = new(big.Int).Set(v)
	p.c = polyNorm(zring, p.c)
}

// FmpzPolyLength returns the number of stored coefficients.
func FmpzPolyLength(p *FmpzPoly) int {
	p.must()

	return len(p.c)
}

// FmpzPolyDegree returns the degree, -1 for the zero polynomial.
func FmpzPolyDegree(p *FmpzPoly) int { return FmpzPolyLength(p) - 1 }

// FmpzPolyIsZero reports p == 0.
func FmpzPolyIsZero(p *FmpzPoly) bool { return FmpzPolyLength(p) == 0 }

// FmpzPolyEqual reports a == b.
func FmpzPolyEqual(a, b *FmpzPoly) bool {
	a.must()
	b.must()

	return polyEqual(zring, a.c, b.c)
}

// FmpzPolyAdd sets dst = a + b.
func FmpzPolyAdd(dst, a, b *FmpzPoly) {
	dst.must()
	a.must()
	b.must()
	dst.c = polyAdd(zring, a.c, b.c)
}

// FmpzPolySub sets dst = a - b.
func FmpzPolySub(dst, a, b *FmpzPoly) {
	dst.must()
	a.must()
	b.must()
	dst.c = polySub(zring, a.c, b.c)
}

// FmpzPolyMul sets dst = a * b.
func FmpzPolyMul(dst, a, b *FmpzPoly) {
	dst.must()
	a.must()
	b.must()
	dst.c = polyMul(zring, a.c, b.c)
}

// FmpzPolyNeg sets dst = -a.
func FmpzPolyNeg(dst, a *FmpzPoly) {
	dst.must()
	a.must()
	dst.c = polyNeg(zring, a.c)
}

// FmpzPolyAddSi sets dst = a + n.
func FmpzPolyAddSi(dst, a *FmpzPoly, n int64) {
	dst.must()
	a.must()
	dst.c = polyAddConst(zring, a.c, big.NewInt(n))
}

// FmpzPolySubSi sets dst = a - n.
func FmpzPolySubSi(dst, a *FmpzPoly, n int64) {
	dst.must()
	a.must()
	dst.c = polyAddConst(zring, a.c, big.NewInt(-n))
}

// FmpzPolySiSub sets dst = n - a.
func FmpzPolySiSub(dst *FmpzPoly, n int64, a *FmpzPoly) {
	dst.must()
	a.must()
	dst.c = polyAddConst(zring, polyNeg(zring, a.c), big.NewInt(n))
}

// FmpzPolyScalarMulSi sets dst = a * n.
func FmpzPolyScalarMulSi(dst, a *FmpzPoly, n int64) {
	dst.must()
	a.must()
	dst.c = polyScale(zring, a.c, big.NewInt(n))
}

// FmpzPolyScalarFdivSi sets every coefficient of dst to floor(a_i / n).
// Panics when n is zero.
func FmpzPolyScalarFdivSi(dst, a *FmpzPoly, n int64) {
	dst.must()
	a.must()
	if n == 0 {
		panic(panicDivByZero)
	}
	d := big.NewInt(n)
	out := make([]*big.Int, len(a.c))
	for i, c := range a.c {
		out[i] = new(big.Int)
		floorDivMod(out[i], nil, c, d)
	}
	dst.c = polyNorm(zring, out)
}

// FmpzPolyPow sets dst = a^e.
func FmpzPolyPow(dst, a *FmpzPoly, e uint64) {
	dst.must()
	a.must()
	dst.c = polyPow(zring, a.c, e)
}

// FmpzPolyEvaluate sets dst = a(x).
func FmpzPolyEvaluate(dst *Fmpz, a *FmpzPoly, x *Fmpz) {
	dst.must()
	a.must()
	x.must()
	dst.v.Set(polyEval(zring, a.c, &x.v))
}
