// SPDX-License-Identifier: MIT

// Package backend - fmpz_mod: the modulus context and arithmetic on residues.
//
// Residues are ordinary Fmpz structures holding a canonical value in [0, n).
// Every fmpz_mod entry point takes the context explicitly; passing a value
// reduced under another modulus is a precondition violation the caller must
// rule out.
package backend

import "math/big"

// ModCtx is a foreign modulus descriptor.
type ModCtx struct {
	header
	n     big.Int
	prime bool
}

// ModCtxInit creates a context for Z/nZ. Panics when n < 2.
func ModCtxInit(n *Fmpz) *ModCtx {
	n.must()
	if n.v.Cmp(big.NewInt(2)) < 0 {
		panic(panicBadModulus)
	}
	ctx := &ModCtx{}
	ctx.init(KindModCtx)
	ctx.n.Set(&n.v)
	ctx.prime = ctx.n.ProbablyPrime(20)

	return ctx
}

// ModCtxClear releases ctx.
func ModCtxClear(ctx *ModCtx) { ctx.clear() }

// ModCtxModulus returns a copy of the modulus.
func ModCtxModulus(ctx *ModCtx) *big.Int {
	ctx.must()

	return new(big.Int).Set(&ctx.n)
}

// ModCtxIsPrime reports whether the modulus is (probably) prime.
func ModCtxIsPrime(ctx *ModCtx) bool {
	ctx.must()

	return ctx.prime
}

func (ctx *ModCtx) ring() zn { return zn{n: &ctx.n} }

// FmpzModSetFmpz sets dst = a mod n.
func FmpzModSetFmpz(dst, a *Fmpz, ctx *ModCtx) {
	dst.must()
	a.must()
	ctx.must()
	dst.v.Mod(&a.v, &ctx.n)
}

// FmpzModSetSi sets dst = v mod n.
func FmpzModSetSi(dst *Fmpz, v int64, ctx *ModCtx) {
	dst.must()
	ctx.must()
	dst.v.Mod(big.NewInt(v), &ctx.n)
}

// FmpzModIsCanonical reports 0 <= a < n.
func FmpzModIsCanonical(a *Fmpz, ctx *ModCtx) bool {
	a.must()
	ctx.must()

	return a.v.Sign() >= 0 && a.v.Cmp(&ctx.n) < 0
}

func fmpzModBinary(dst, a, b *Fmpz, ctx *ModCtx, f func(r zn, x, y *big.Int) *big.Int) {
	dst.must()
	a.must()
	b.must()
	ctx.must()
	dst.v.Set(f(ctx.ring(), &a.v, &b.v))
}

// FmpzModAdd sets dst = a + b mod n.
func FmpzModAdd(dst, a, b *Fmpz, ctx *ModCtx) { fmpzModBinary(dst, a, b, ctx, zn.add) }

// FmpzModSub sets dst = a - b mod n.
func FmpzModSub(dst, a, b *Fmpz, ctx *ModCtx) { fmpzModBinary(dst, a, b, ctx, zn.sub) }

// FmpzModMul sets dst = a * b mod n.
func FmpzModMul(dst, a, b *Fmpz, ctx *ModCtx) { fmpzModBinary(dst, a, b, ctx, zn.mul) }

// FmpzModNeg sets dst = -a mod n.
func FmpzModNeg(dst, a *Fmpz, ctx *ModCtx) {
	dst.must()
	a.must()
	ctx.must()
	dst.v.Set(ctx.ring().neg(&a.v))
}

// FmpzModAddSi sets dst = a + v mod n.
func FmpzModAddSi(dst, a *Fmpz, v int64, ctx *ModCtx) {
	dst.must()
	a.must()
	ctx.must()
	r := ctx.ring()
	dst.v.Set(r.add(&a.v, r.fromInt64(v)))
}

// FmpzModSubSi sets dst = a - v mod n.
func FmpzModSubSi(dst, a *Fmpz, v int64, ctx *ModCtx) {
	dst.must()
	a.must()
	ctx.must()
	r := ctx.ring()
	dst.v.Set(r.sub(&a.v, r.fromInt64(v)))
}

// FmpzModSiSub sets dst = v - a mod n.
func FmpzModSiSub(dst *Fmpz, v int64, a *Fmpz, ctx *ModCtx) {
	dst.must()
	a.must()
	ctx.must()
	r := ctx.ring()
	dst.v.Set(r.sub(r.fromInt64(v), &a.v))
}

// FmpzModMulSi sets dst = a * v mod n.
func FmpzModMulSi(dst, a *Fmpz, v int64, ctx *ModCtx) {
	dst.must()
	a.must()
	ctx.must()
	r := ctx.ring()
	dst.v.Set(r.mul(&a.v, r.fromInt64(v)))
}

// FmpzModIsInvertible reports whether a is a unit mod n.
func FmpzModIsInvertible(a *Fmpz, ctx *ModCtx) bool {
	a.must()
	ctx.must()
	_, ok := ctx.ring().inv(&a.v)

	return ok
}

// FmpzModInv sets dst = a^-1 mod n. Panics when a is not a unit.
func FmpzModInv(dst, a *Fmpz, ctx *ModCtx) {
	dst.must()
	a.must()
	ctx.must()
	x, ok := ctx.ring().inv(&a.v)
	if !ok {
		panic(panicNotInvertible)
	}
	dst.v.Set(x)
}

// FmpzModDiv sets dst = a * b^-1 mod n. Panics when b is not a unit.
func FmpzModDiv(dst, a, b *Fmpz, ctx *ModCtx) {
	dst.must()
	a.must()
	b.must()
	ctx.must()
	r := ctx.ring()
	x, ok := r.inv(&b.v)
	if !ok {
		panic(panicNotInvertible)
	}
	dst.v.Set(r.mul(&a.v, x))
}

// FmpzModPowUi sets dst = a^e mod n.
func FmpzModPowUi(dst, a *Fmpz, e uint64, ctx *ModCtx) {
	dst.must()
	a.must()
	ctx.must()
	dst.v.Exp(&a.v, new(big.Int).SetUint64(e), &ctx.n)
}

// ---------- polynomials over Z/nZ ----------

// ModPoly is a foreign polynomial over Z/nZ bound to a ModCtx.
type ModPoly struct {
	header
	c   []*big.Int
	ctx *ModCtx
}

// ModPolyInit allocates the zero polynomial over ctx.
func ModPolyInit(ctx *ModCtx) *ModPoly {
	ctx.must()
	p := &ModPoly{ctx: ctx}
	p.init(KindModPoly)

	return p
}

// ModPolyClear releases p.
func ModPolyClear(p *ModPoly) { p.clear() }

func (p *ModPoly) same(others ...*ModPoly) zn {
	p.must()
	p.ctx.must()
	for _, o := range others {
		o.must()
		if o.ctx != p.ctx && o.ctx.n.Cmp(&p.ctx.n) != 0 {
			panic(panicContext)
		}
	}

	return p.ctx.ring()
}

// ModPolySet sets dst = src.
func ModPolySet(dst, src *ModPoly) {
	dst.same(src)
	dst.c = bigCopies(src.c)
}

// ModPolySetCoeffs sets dst from integer coefficients, reducing each mod n.
func ModPolySetCoeffs(dst *ModPoly, coeffs []*big.Int) {
	r := dst.same()
	dst.c = polyNorm[*big.Int](r, r.reduceAll(coeffs))
}

// ModPolyCoeffs returns a copy of the normalized coefficients.
func ModPolyCoeffs(p *ModPoly) []*big.Int {
	p.same()

	return bigCopies(p.c)
}

// ModPolyLength returns the number of stored coefficients.
func ModPolyLength(p *ModPoly) int {
	p.same()

	return len(p.c)
}

// ModPolyEqual reports a == b.
func ModPolyEqual(a, b *ModPoly) bool {
	r := a.same(b)

	return polyEqual[*big.Int](r, a.c, b.c)
}

// ModPolyAdd sets dst = a + b.
func ModPolyAdd(dst, a, b *ModPoly) {
	r := dst.same(a, b)
	dst.c = polyAdd[*big.Int](r, a.c, b.c)
}

// ModPolySub sets dst = a - b.
func ModPolySub(dst, a, b *ModPoly) {
	r := dst.same(a, b)
	dst.c = polySub[*big.Int](r, a.c, b.c)
}

// ModPolyMul sets dst = a * b.
func ModPolyMul(dst, a, b *ModPoly) {
	r := dst.same(a, b)
	dst.c = polyMul[*big.Int](r, a.c, b.c)
}

// ModPolyNeg sets dst = -a.
func ModPolyNeg(dst, a *ModPoly) {
	r := dst.same(a)
	dst.c = polyNeg[*big.Int](r, a.c)
}

// ModPolyLeadIsUnit reports whether p is non-zero with an invertible
// leading coefficient, the precondition of every division entry point.
func ModPolyLeadIsUnit(p *ModPoly) bool {
	r := p.same()
	if len(p.c) == 0 {
		return false
	}
	_, ok := r.inv(p.c[len(p.c)-1])

	return ok
}

// ModPolyDivRem sets q, r with a = q*b + r. Panics unless ModPolyLeadIsUnit(b).
func ModPolyDivRem(q, rem, a, b *ModPoly) {
	r := q.same(rem, a, b)
	qc, rc, ok := polyDivRem[*big.Int](r, a.c, b.c)
	if !ok {
		panic(panicNotInvertible)
	}
	q.c, rem.c = qc, rc
}

// ModPolyDiv sets dst to the Euclidean quotient. Panics unless ModPolyLeadIsUnit(b).
func ModPolyDiv(dst, a, b *ModPoly) {
	r := dst.same(a, b)
	qc, _, ok := polyDivRem[*big.Int](r, a.c, b.c)
	if !ok {
		panic(panicNotInvertible)
	}
	dst.c = qc
}

// ModPolyRem sets dst = a mod b. Panics unless ModPolyLeadIsUnit(b).
func ModPolyRem(dst, a, b *ModPoly) {
	r := dst.same(a, b)
	_, rc, ok := polyDivRem[*big.Int](r, a.c, b.c)
	if !ok {
		panic(panicNotInvertible)
	}
	dst.c = rc
}

// ModPolyGcd sets dst to the monic gcd; reports false (dst unchanged) when
// the Euclidean algorithm meets a non-invertible leading coefficient.
func ModPolyGcd(dst, a, b *ModPoly) bool {
	r := dst.same(a, b)
	g, _, _, ok := polyXgcd[*big.Int](r, a.c, b.c)
	if !ok {
		return false
	}
	dst.c = g

	return true
}

// ModPolyAddSi sets dst = a + v.
func ModPolyAddSi(dst, a *ModPoly, v int64) {
	r := dst.same(a)
	dst.c = polyAddConst[*big.Int](r, a.c, r.fromInt64(v))
}

// ModPolySubSi sets dst = a - v.
func ModPolySubSi(dst, a *ModPoly, v int64) {
	r := dst.same(a)
	dst.c = polyAddConst[*big.Int](r, a.c, r.neg(r.fromInt64(v)))
}

// ModPolySiSub sets dst = v - a.
func ModPolySiSub(dst *ModPoly, v int64, a *ModPoly) {
	r := dst.same(a)
	dst.c = polyAddConst[*big.Int](r, polyNeg[*big.Int](r, a.c), r.fromInt64(v))
}

// ModPolyScalarMulSi sets dst = a * v.
func ModPolyScalarMulSi(dst, a *ModPoly, v int64) {
	r := dst.same(a)
	dst.c = polyScale[*big.Int](r, a.c, r.fromInt64(v))
}

// ModPolyScalarDivSi sets dst = a * v^-1. Panics when v is not a unit.
func ModPolyScalarDivSi(dst, a *ModPoly, v int64) {
	r := dst.same(a)
	inv, ok := r.inv(r.fromInt64(v))
	if !ok {
		panic(panicNotInvertible)
	}
	dst.c = polyScale[*big.Int](r, a.c, inv)
}

// ModPolyPow sets dst = a^e.
func ModPolyPow(dst, a *ModPoly, e uint64) {
	r := dst.same(a)
	dst.c = polyPow[*big.Int](r, a.c, e)
}

// ModPolyEvaluate sets dst = a(x) mod n.
func ModPolyEvaluate(dst *Fmpz, a *ModPoly, x *Fmpz) {
	r := a.same()
	dst.must()
	x.must()
	xr := r.reduce(new(big.Int).Set(&x.v))
	dst.v.Set(polyEval[*big.Int](r, a.c, xr))
}
