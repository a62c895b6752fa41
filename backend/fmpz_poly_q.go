// SPDX-License-Identifier: MIT

// Package backend - fmpz_poly_q: rational functions num/den over Z.
//
// Canonical form, kept after every operation:
//   - num and den are coprime in Z[x], content included;
//   - the leading coefficient of den is positive;
//   - zero is 0/1.
//
// Common factors are found with the monic gcd over Q[x], then both sides
// are scaled back to primitive integer polynomials.
package backend

import "math/big"

// FmpzPolyQ is a foreign rational function with integer coefficients.
type FmpzPolyQ struct {
	header
	num, den []*big.Int
}

// FmpzPolyQInit allocates the zero function 0/1.
func FmpzPolyQInit() *FmpzPolyQ {
	a := &FmpzPolyQ{den: []*big.Int{big.NewInt(1)}}
	a.init(KindFmpzPolyQ)

	return a
}

// FmpzPolyQClear releases a.
func FmpzPolyQClear(a *FmpzPolyQ) { a.clear() }

func (a *FmpzPolyQ) same(others ...*FmpzPolyQ) {
	a.must()
	for _, o := range others {
		o.must()
	}
}

func (a *FmpzPolyQ) store(num, den []*big.Int) {
	a.num, a.den = canonicalQ(num, den)
}

func intsToRats(c []*big.Int) []*big.Rat {
	out := make([]*big.Rat, len(c))
	for i, v := range c {
		out[i] = new(big.Rat).SetInt(v)
	}

	return out
}

// canonicalQ reduces num/den to canonical form. Panics when den is zero.
func canonicalQ(num, den []*big.Int) (n, d []*big.Int) {
	num, den = polyNorm(zring, num), polyNorm(zring, den)
	if len(den) == 0 {
		panic(panicDivByZero)
	}
	if len(num) == 0 {
		return nil, []*big.Int{big.NewInt(1)}
	}
	qn, qd := intsToRats(num), intsToRats(den)
	if g, _, _, _ := polyXgcd(qring, qn, qd); len(g) > 1 {
		qn, _, _ = polyDivRem(qring, qn, g)
		qd, _, _ = polyDivRem(qring, qd, g)
	}
	l := big.NewInt(1)
	for _, side := range [][]*big.Rat{qn, qd} {
		for _, q := range side {
			g := new(big.Int).GCD(nil, nil, l, q.Denom())
			l.Mul(l, new(big.Int).Quo(q.Denom(), g))
		}
	}
	scale := func(side []*big.Rat) []*big.Int {
		out := make([]*big.Int, len(side))
		for i, q := range side {
			out[i] = new(big.Int).Mul(q.Num(), new(big.Int).Quo(l, q.Denom()))
		}
		return out
	}
	n, d = scale(qn), scale(qd)
	content := new(big.Int)
	for _, side := range [][]*big.Int{n, d} {
		for _, v := range side {
			content.GCD(nil, nil, content, new(big.Int).Abs(v))
		}
	}
	if d[len(d)-1].Sign() < 0 {
		content.Neg(content)
	}
	for _, side := range [][]*big.Int{n, d} {
		for _, v := range side {
			v.Quo(v, content)
		}
	}

	return n, d
}

// FmpzPolyQSet sets dst = src.
func FmpzPolyQSet(dst, src *FmpzPolyQ) {
	dst.same(src)
	dst.num, dst.den = bigCopies(src.num), bigCopies(src.den)
}

// FmpzPolyQSetFrac sets dst = num/den in canonical form. Panics when den
// is zero.
func FmpzPolyQSetFrac(dst *FmpzPolyQ, num, den []*big.Int) {
	dst.same()
	dst.store(bigCopies(num), bigCopies(den))
}

// FmpzPolyQSetFmpzPoly sets dst = p/1.
func FmpzPolyQSetFmpzPoly(dst *FmpzPolyQ, p *FmpzPoly) {
	dst.same()
	p.must()
	dst.num, dst.den = bigCopies(p.c), []*big.Int{big.NewInt(1)}
}

// FmpzPolyQNumerator sets dst to the canonical numerator.
func FmpzPolyQNumerator(dst *FmpzPoly, a *FmpzPolyQ) {
	a.same()
	dst.must()
	dst.c = bigCopies(a.num)
}

// FmpzPolyQDenominator sets dst to the canonical denominator.
func FmpzPolyQDenominator(dst *FmpzPoly, a *FmpzPolyQ) {
	a.same()
	dst.must()
	dst.c = bigCopies(a.den)
}

// FmpzPolyQIsZero reports a == 0.
func FmpzPolyQIsZero(a *FmpzPolyQ) bool {
	a.same()

	return len(a.num) == 0
}

func isOnePoly(c []*big.Int) bool {
	return len(c) == 1 && c[0].Cmp(big.NewInt(1)) == 0
}

// FmpzPolyQIsOne reports a == 1.
func FmpzPolyQIsOne(a *FmpzPolyQ) bool {
	a.same()

	return isOnePoly(a.num) && isOnePoly(a.den)
}

// FmpzPolyQEqual reports a == b.
func FmpzPolyQEqual(a, b *FmpzPolyQ) bool {
	a.same(b)

	return polyEqual(zring, a.num, b.num) && polyEqual(zring, a.den, b.den)
}

// FmpzPolyQAdd sets dst = a + b.
func FmpzPolyQAdd(dst, a, b *FmpzPolyQ) {
	dst.same(a, b)
	num := polyAdd(zring, polyMul(zring, a.num, b.den), polyMul(zring, b.num, a.den))
	dst.store(num, polyMul(zring, a.den, b.den))
}

// FmpzPolyQSub sets dst = a - b.
func FmpzPolyQSub(dst, a, b *FmpzPolyQ) {
	dst.same(a, b)
	num := polySub(zring, polyMul(zring, a.num, b.den), polyMul(zring, b.num, a.den))
	dst.store(num, polyMul(zring, a.den, b.den))
}

// FmpzPolyQMul sets dst = a * b.
func FmpzPolyQMul(dst, a, b *FmpzPolyQ) {
	dst.same(a, b)
	dst.store(polyMul(zring, a.num, b.num), polyMul(zring, a.den, b.den))
}

// FmpzPolyQDiv sets dst = a / b. Panics when b is zero.
func FmpzPolyQDiv(dst, a, b *FmpzPolyQ) {
	dst.same(a, b)
	if len(b.num) == 0 {
		panic(panicDivByZero)
	}
	dst.store(polyMul(zring, a.num, b.den), polyMul(zring, a.den, b.num))
}

// FmpzPolyQNeg sets dst = -a.
func FmpzPolyQNeg(dst, a *FmpzPolyQ) {
	dst.same(a)
	dst.num, dst.den = polyNeg(zring, a.num), bigCopies(a.den)
}

// FmpzPolyQInv sets dst = 1/a. Panics when a is zero.
func FmpzPolyQInv(dst, a *FmpzPolyQ) {
	dst.same(a)
	if len(a.num) == 0 {
		panic(panicDivByZero)
	}
	dst.store(bigCopies(a.den), bigCopies(a.num))
}

// FmpzPolyQAddSi sets dst = a + v.
func FmpzPolyQAddSi(dst, a *FmpzPolyQ, v int64) {
	dst.same(a)
	num := polyAdd(zring, a.num, polyScale(zring, a.den, big.NewInt(v)))
	dst.store(num, bigCopies(a.den))
}

// FmpzPolyQSubSi sets dst = a - v.
func FmpzPolyQSubSi(dst, a *FmpzPolyQ, v int64) {
	dst.same(a)
	num := polySub(zring, a.num, polyScale(zring, a.den, big.NewInt(v)))
	dst.store(num, bigCopies(a.den))
}

// FmpzPolyQSiSub sets dst = v - a.
func FmpzPolyQSiSub(dst *FmpzPolyQ, v int64, a *FmpzPolyQ) {
	dst.same(a)
	num := polySub(zring, polyScale(zring, a.den, big.NewInt(v)), a.num)
	dst.store(num, bigCopies(a.den))
}

// FmpzPolyQScalarMulSi sets dst = a * v.
func FmpzPolyQScalarMulSi(dst, a *FmpzPolyQ, v int64) {
	dst.same(a)
	dst.store(polyScale(zring, a.num, big.NewInt(v)), bigCopies(a.den))
}

// FmpzPolyQScalarDivSi sets dst = a / v. Panics when v is zero.
func FmpzPolyQScalarDivSi(dst, a *FmpzPolyQ, v int64) {
	dst.same(a)
	if v == 0 {
		panic(panicDivByZero)
	}
	dst.store(bigCopies(a.num), polyScale(zring, a.den, big.NewInt(v)))
}

// FmpzPolyQSiDiv sets dst = v / a. Panics when a is zero.
func FmpzPolyQSiDiv(dst *FmpzPolyQ, v int64, a *FmpzPolyQ) {
	dst.same(a)
	if len(a.num) == 0 {
		panic(panicDivByZero)
	}
	dst.store(polyScale(zring, a.den, big.NewInt(v)), bigCopies(a.num))
}

// FmpzPolyQPow sets dst = a^e.
func FmpzPolyQPow(dst, a *FmpzPolyQ, e uint64) {
	dst.same(a)
	dst.num, dst.den = polyPow(zring, a.num, e), polyPow(zring, a.den, e)
}

// FmpzPolyQDerivative sets dst = a'.
func FmpzPolyQDerivative(dst, a *FmpzPolyQ) {
	dst.same(a)
	num := polySub(zring,
		polyMul(zring, polyDerivative(zring, a.num), a.den),
		polyMul(zring, a.num, polyDerivative(zring, a.den)))
	dst.store(num, polyMul(zring, a.den, a.den))
}

// FmpzPolyQEvaluate sets dst = a(x) and reports true, or reports false
// (dst unchanged) when x is a pole of a.
func FmpzPolyQEvaluate(dst *Fmpq, a *FmpzPolyQ, x *Fmpq) bool {
	a.same()
	dst.must()
	x.must()
	at := x.rat()
	d := polyEval(qring, intsToRats(a.den), at)
	if d.Sign() == 0 {
		return false
	}
	n := polyEval(qring, intsToRats(a.num), at)
	dst.setRat(n.Quo(n, d))

	return true
}
