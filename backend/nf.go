// SPDX-License-Identifier: MIT

// Package backend - nf: number fields Q[x] / (f) for a squarefree f.
//
// f is not required to be irreducible; for reducible f the quotient has zero
// divisors and NfInv panics on them (NfIsInvertible reports it up front).
package backend

import "math/big"

// NfCtx is a number field descriptor.
type NfCtx struct {
	header
	f []*big.Rat
}

// NfCtxInit builds Q[x]/(f). Panics when deg f < 1 or f is not squarefree.
func NfCtxInit(f *FmpqPoly) *NfCtx {
	f.must()
	if len(f.c) < 2 {
		panic(panicBadDegree)
	}
	if !QPolyIsSquarefree(f.c) {
		panic(panicNotSquarefree)
	}
	ctx := &NfCtx{f: ratCopies(f.c)}
	ctx.init(KindNfCtx)

	return ctx
}

// NfCtxClear releases ctx.
func NfCtxClear(ctx *NfCtx) { ctx.clear() }

// NfCtxDefining returns a copy of the defining polynomial.
func NfCtxDefining(ctx *NfCtx) []*big.Rat {
	ctx.must()

	return ratCopies(ctx.f)
}

// NfCtxDegree returns deg f.
func NfCtxDegree(ctx *NfCtx) int {
	ctx.must()

	return len(ctx.f) - 1
}

// Nf is a number field element, stored as a Q polynomial of degree < deg f.
type Nf struct {
	header
	c   []*big.Rat
	ctx *NfCtx
}

// NfInit allocates the zero element of ctx.
func NfInit(ctx *NfCtx) *Nf {
	ctx.must()
	a := &Nf{ctx: ctx}
	a.init(KindNf)

	return a
}

// NfClear releases a.
func NfClear(a *Nf) { a.clear() }

func (a *Nf) same(others ...*Nf) {
	a.must()
	a.ctx.must()
	for _, o := range others {
		o.must()
		if o.ctx != a.ctx && !polyEqual(qring, o.ctx.f, a.ctx.f) {
			panic(panicContext)
		}
	}
}

func (a *Nf) reduce(c []*big.Rat) []*big.Rat {
	_, rem, _ := polyDivRem(qring, c, a.ctx.f)

	return rem
}

// NfSet sets dst = src.
func NfSet(dst, src *Nf) {
	dst.same(src)
	dst.c = ratCopies(src.c)
}

// NfZero sets dst = 0.
func NfZero(dst *Nf) {
	dst.same()
	dst.c = nil
}

// NfOne sets dst = 1.
func NfOne(dst *Nf) {
	dst.same()
	dst.c = []*big.Rat{qring.one()}
}

// NfGen sets dst to the class of x.
func NfGen(dst *Nf) {
	dst.same()
	dst.c = dst.reduce([]*big.Rat{qring.zero(), qring.one()})
}

// NfSetSi sets dst = v.
func NfSetSi(dst *Nf, v int64) {
	dst.same()
	dst.c = polyNorm(qring, []*big.Rat{qring.fromInt64(v)})
}

// NfSetFmpq sets dst = q.
func NfSetFmpq(dst *Nf, q *Fmpq) {
	dst.same()
	q.must()
	dst.c = polyNorm(qring, []*big.Rat{q.rat()})
}

// NfSetCoeffs sets dst from coefficients in the generator, reduced mod f.
func NfSetCoeffs(dst *Nf, coeffs []*big.Rat) {
	dst.same()
	dst.c = dst.reduce(polyNorm(qring, ratCopies(coeffs)))
}

// NfCoeffs returns a copy of the reduced representation.
func NfCoeffs(a *Nf) []*big.Rat {
	a.same()

	return ratCopies(a.c)
}

// NfIsZero reports a == 0.
func NfIsZero(a *Nf) bool {
	a.same()

	return len(a.c) == 0
}

// NfEqual reports a == b.
func NfEqual(a, b *Nf) bool {
	a.same(b)

	return polyEqual(qring, a.c, b.c)
}

// NfAdd sets dst = a + b.
func NfAdd(dst, a, b *Nf) {
	dst.same(a, b)
	dst.c = polyAdd(qring, a.c, b.c)
}

// NfSub sets dst = a - b.
func NfSub(dst, a, b *Nf) {
	dst.same(a, b)
	dst.c = polySub(qring, a.c, b.c)
}

// NfMul sets dst = a * b.
func NfMul(dst, a, b *Nf) {
	dst.same(a, b)
	dst.c = dst.reduce(polyMul(qring, a.c, b.c))
}

// NfNeg sets dst = -a.
func NfNeg(dst, a *Nf) {
	dst.same(a)
	dst.c = polyNeg(qring, a.c)
}

// NfAddSi sets dst = a + v.
func NfAddSi(dst, a *Nf, v int64) {
	dst.same(a)
	dst.c = polyAddConst(qring, a.c, qring.fromInt64(v))
}

// NfMulSi sets dst = a * v.
func NfMulSi(dst, a *Nf, v int64) {
	dst.same(a)
	dst.c = polyScale(qring, a.c, qring.fromInt64(v))
}

// NfDivSi sets dst = a / v. Panics when v is zero.
func NfDivSi(dst, a *Nf, v int64) {
	dst.same(a)
	if v == 0 {
		panic(panicDivByZero)
	}
	dst.c = polyScale(qring, a.c, big.NewRat(1, v))
}

// NfIsInvertible reports whether a is a unit of Q[x]/(f).
func NfIsInvertible(a *Nf) bool {
	a.same()
	if len(a.c) == 0 {
		return false
	}
	g, _, _, ok := polyXgcd(qring, a.c, a.ctx.f)

	return ok && len(g) == 1
}

// NfInv sets dst = a⁻¹. Panics when a is zero or a zero divisor.
func NfInv(dst, a *Nf) {
	dst.same(a)
	if len(a.c) == 0 {
		panic(panicDivByZero)
	}
	g, s, _, ok := polyXgcd(qring, a.c, a.ctx.f)
	if !ok || len(g) != 1 {
		panic(panicNotInvertible)
	}
	dst.c = dst.reduce(s)
}

// NfDiv sets dst = a / b.
func NfDiv(dst, a, b *Nf) {
	dst.same(a, b)
	inv := NfInit(b.ctx)
	defer NfClear(inv)
	NfInv(inv, b)
	NfMul(dst, a, inv)
}

// NfPowUi sets dst = a^e.
func NfPowUi(dst, a *Nf, e uint64) {
	dst.same(a)
	dst.c = polyPowMod(qring, a.c, new(big.Int).SetUint64(e), a.ctx.f)
}
