// SPDX-License-Identifier: MIT

// Package backend - fq: finite fields GF(p^k) as Z/p[x] / (f).
//
// The defining polynomial f is found by a deterministic search: monic
// degree-k polynomials with a non-zero constant term are enumerated in
// increasing base-p order of their lower coefficients and the first
// irreducible one (Ben-Or test) is taken. Equal (p, k) therefore always
// yields the same field representation.
package backend

import "math/big"

// FqCtx describes GF(p^k).
type FqCtx struct {
	header
	p   big.Int
	k   int
	mod []*big.Int // monic, ascending, length k+1
}

// FqCtxInit builds GF(p^k). Panics when p is not prime or k < 1.
func FqCtxInit(p *Fmpz, k int) *FqCtx {
	p.must()
	if k < 1 {
		panic(panicBadDegree)
	}
	if p.v.Cmp(big.NewInt(2)) < 0 || !p.v.ProbablyPrime(20) {
		panic(panicNotPrime)
	}
	ctx := &FqCtx{k: k}
	ctx.p.Set(&p.v)
	ctx.mod = findIrreducible(ctx.ring(), k)
	ctx.init(KindFqCtx)

	return ctx
}

// FqCtxClear releases ctx.
func FqCtxClear(ctx *FqCtx) { ctx.clear() }

// FqCtxPrime returns a copy of the characteristic.
func FqCtxPrime(ctx *FqCtx) *big.Int {
	ctx.must()

	return new(big.Int).Set(&ctx.p)
}

// FqCtxDegree returns k.
func FqCtxDegree(ctx *FqCtx) int {
	ctx.must()

	return ctx.k
}

// FqCtxModulus returns a copy of the defining polynomial (ascending).
func FqCtxModulus(ctx *FqCtx) []*big.Int {
	ctx.must()

	return bigCopies(ctx.mod)
}

// FqCtxOrder returns p^k.
func FqCtxOrder(ctx *FqCtx) *big.Int {
	ctx.must()

	return new(big.Int).Exp(&ctx.p, big.NewInt(int64(ctx.k)), nil)
}

func (ctx *FqCtx) ring() zn { return zn{n: &ctx.p} }

// findIrreducible returns the first monic irreducible polynomial of degree k
// over r in enumeration order.
func findIrreducible(r zn, k int) []*big.Int {
	counter := big.NewInt(1)
	one := big.NewInt(1)
	for ; ; counter.Add(counter, one) {
		low := digitsBase(counter, r.n, k)
		if low[0].Sign() == 0 {
			continue
		}
		f := append(low, big.NewInt(1))
		if isIrreducible(r, f) {
			return f
		}
	}
}

// digitsBase returns the first k base-n digits of v, least significant first.
func digitsBase(v, n *big.Int, k int) []*big.Int {
	out := make([]*big.Int, k)
	t := new(big.Int).Set(v)
	for i := range out {
		out[i] = new(big.Int)
		t.QuoRem(t, n, out[i])
	}

	return out
}

// isIrreducible applies Ben-Or: f of degree k is irreducible iff
// gcd(f, x^(p^i) - x mod f) = 1 for every i in 1..k/2.
func isIrreducible(r zn, f []*big.Int) bool {
	k := len(f) - 1
	if k == 1 {
		return true
	}
	x := []*big.Int{big.NewInt(0), big.NewInt(1)}
	h := x
	for i := 1; i <= k/2; i++ {
		h = polyPowMod[*big.Int](r, h, r.n, f)
		g, _, _, ok := polyXgcd[*big.Int](r, f, polySub[*big.Int](r, h, x))
		if !ok || len(g) != 1 {
			return false
		}
	}

	return true
}

// Fq is an element of GF(p^k), stored as a reduced polynomial in the generator.
type Fq struct {
	header
	c   []*big.Int
	ctx *FqCtx
}

// FqInit allocates the zero element of ctx.
func FqInit(ctx *FqCtx) *Fq {
	ctx.must()
	a := &Fq{ctx: ctx}
	a.init(KindFq)

	return a
}

// FqClear releases a.
func FqClear(a *Fq) { a.clear() }

func (a *Fq) same(others ...*Fq) zn {
	a.must()
	a.ctx.must()
	for _, o := range others {
		o.must()
		if o.ctx != a.ctx && (o.ctx.k != a.ctx.k || o.ctx.p.Cmp(&a.ctx.p) != 0) {
			panic(panicContext)
		}
	}

	return a.ctx.ring()
}

func (a *Fq) reduce(r zn, c []*big.Int) []*big.Int {
	_, rem, _ := polyDivRem[*big.Int](r, c, a.ctx.mod)

	return rem
}

// FqSet sets dst = src.
func FqSet(dst, src *Fq) {
	dst.same(src)
	dst.c = bigCopies(src.c)
}

// FqZero sets dst = 0.
func FqZero(dst *Fq) {
	dst.same()
	dst.c = nil
}

// FqOne sets dst = 1.
func FqOne(dst *Fq) {
	r := dst.same()
	dst.c = polyNorm[*big.Int](r, []*big.Int{r.one()})
}

// FqGen sets dst to the class of x.
func FqGen(dst *Fq) {
	r := dst.same()
	dst.c = dst.reduce(r, []*big.Int{big.NewInt(0), big.NewInt(1)})
}

// FqSetSi sets dst = v mod p.
func FqSetSi(dst *Fq, v int64) {
	r := dst.same()
	dst.c = polyNorm[*big.Int](r, []*big.Int{r.fromInt64(v)})
}

// FqSetFmpz sets dst = z mod p.
func FqSetFmpz(dst *Fq, z *Fmpz) {
	r := dst.same()
	z.must()
	dst.c = polyNorm[*big.Int](r, []*big.Int{r.reduce(new(big.Int).Set(&z.v))})
}

// FqSetCoeffs sets dst from coefficients in the generator (ascending),
// reducing modulo p and the defining polynomial.
func FqSetCoeffs(dst *Fq, coeffs []*big.Int) {
	r := dst.same()
	dst.c = dst.reduce(r, polyNorm[*big.Int](r, r.reduceAll(coeffs)))
}

// FqCoeffs returns a copy of the reduced representation.
func FqCoeffs(a *Fq) []*big.Int {
	a.same()

	return bigCopies(a.c)
}

// FqIsZero reports a == 0.
func FqIsZero(a *Fq) bool {
	a.same()

	return len(a.c) == 0
}

// FqIsOne reports a == 1.
func FqIsOne(a *Fq) bool {
	a.same()

	return len(a.c) == 1 && a.c[0].Cmp(big.NewInt(1)) == 0
}

// FqEqual reports a == b.
func FqEqual(a, b *Fq) bool {
	r := a.same(b)

	return polyEqual[*big.Int](r, a.c, b.c)
}

// FqAdd sets dst = a + b.
func FqAdd(dst, a, b *Fq) {
	r := dst.same(a, b)
	dst.c = polyAdd[*big.Int](r, a.c, b.c)
}

// FqSub sets dst = a - b.
func FqSub(dst, a, b *Fq) {
	r := dst.same(a, b)
	dst.c = polySub[*big.Int](r, a.c, b.c)
}

// FqMul sets dst = a * b.
func FqMul(dst, a, b *Fq) {
	r := dst.same(a, b)
	dst.c = dst.reduce(r, polyMul[*big.Int](r, a.c, b.c))
}

// FqNeg sets dst = -a.
func FqNeg(dst, a *Fq) {
	r := dst.same(a)
	dst.c = polyNeg[*big.Int](r, a.c)
}

// FqAddSi sets dst = a + v.
func FqAddSi(dst, a *Fq, v int64) {
	r := dst.same(a)
	dst.c = polyAddConst[*big.Int](r, a.c, r.fromInt64(v))
}

// FqMulSi sets dst = a * v.
func FqMulSi(dst, a *Fq, v int64) {
	r := dst.same(a)
	dst.c = polyScale[*big.Int](r, a.c, r.fromInt64(v))
}

// FqInv sets dst = a⁻¹. Panics when a is zero.
func FqInv(dst, a *Fq) {
	r := dst.same(a)
	if len(a.c) == 0 {
		panic(panicDivByZero)
	}
	g, s, _, ok := polyXgcd[*big.Int](r, a.c, a.ctx.mod)
	if !ok || len(g) != 1 {
		panic(panicNotInvertible)
	}
	dst.c = dst.reduce(r, s)
}

// FqDiv sets dst = a / b. Panics when b is zero.
func FqDiv(dst, a, b *Fq) {
	dst.same(a, b)
	inv := FqInit(b.ctx)
	defer FqClear(inv)
	FqInv(inv, b)
	FqMul(dst, a, inv)
}

// FqPowUi sets dst = a^e.
func FqPowUi(dst, a *Fq, e uint64) {
	r := dst.same(a)
	dst.c = polyPowMod[*big.Int](r, a.c, new(big.Int).SetUint64(e), a.ctx.mod)
}
