// SPDX-License-Identifier: MIT

// Package backend - fq_poly and fq_mat: polynomials and dense matrices with
// coefficients in GF(p^k).
//
// A coefficient is an Fq representation: the reduced, normalized slice of
// residues in the generator (nil for zero). The fqr ring lifts those slices
// into the generic polynomial and matrix kernels.
package backend

import "math/big"

// fqr is GF(p^k) as a ring over reduced generator polynomials.
type fqr struct {
	ctx *FqCtx
}

func (f fqr) base() zn { return f.ctx.ring() }

func (f fqr) reduce(c []*big.Int) []*big.Int {
	_, rem, _ := polyDivRem[*big.Int](f.base(), c, f.ctx.mod)

	return rem
}

// elem maps arbitrary integer coefficients into the canonical representation.
func (f fqr) elem(c []*big.Int) []*big.Int {
	r := f.base()

	return f.reduce(polyNorm[*big.Int](r, r.reduceAll(c)))
}

func (f fqr) zero() []*big.Int { return nil }
func (f fqr) one() []*big.Int  { return f.fromInt64(1) }
func (f fqr) fromInt64(n int64) []*big.Int {
	r := f.base()

	return polyNorm[*big.Int](r, []*big.Int{r.fromInt64(n)})
}
func (f fqr) add(a, b []*big.Int) []*big.Int { return polyAdd[*big.Int](f.base(), a, b) }
func (f fqr) sub(a, b []*big.Int) []*big.Int { return polySub[*big.Int](f.base(), a, b) }
func (f fqr) mul(a, b []*big.Int) []*big.Int {
	return f.reduce(polyMul[*big.Int](f.base(), a, b))
}
func (f fqr) neg(a []*big.Int) []*big.Int   { return polyNeg[*big.Int](f.base(), a) }
func (f fqr) isZero(a []*big.Int) bool       { return len(a) == 0 }
func (f fqr) equal(a, b []*big.Int) bool     { return polyEqual[*big.Int](f.base(), a, b) }
func (f fqr) clone(a []*big.Int) []*big.Int { return bigCopies(a) }
func (f fqr) inv(a []*big.Int) ([]*big.Int, bool) {
	if len(a) == 0 {
		return nil, false
	}
	g, s, _, ok := polyXgcd[*big.Int](f.base(), a, f.ctx.mod)
	if !ok || len(g) != 1 {
		return nil, false
	}

	return f.reduce(s), true
}

func fqCopies(in [][]*big.Int) [][]*big.Int {
	out := make([][]*big.Int, len(in))
	for i, c := range in {
		out[i] = bigCopies(c)
	}

	return out
}

// sameField reports whether two descriptors describe the same GF(p^k).
func sameField(a, b *FqCtx) bool {
	return a == b || (a.k == b.k && a.p.Cmp(&b.p) == 0)
}

// ---------- polynomials over GF(p^k) ----------

// FqPoly is a foreign polynomial over GF(p^k) bound to an FqCtx.
type FqPoly struct {
	header
	c   [][]*big.Int
	ctx *FqCtx
}

// FqPolyInit allocates the zero polynomial over ctx.
func FqPolyInit(ctx *FqCtx) *FqPoly {
	ctx.must()
	p := &FqPoly{ctx: ctx}
	p.init(KindFqPoly)

	return p
}

// FqPolyClear releases p.
func FqPolyClear(p *FqPoly) { p.clear() }

func (p *FqPoly) same(others ...*FqPoly) fqr {
	p.must()
	p.ctx.must()
	for _, o := range others {
		o.must()
		if !sameField(o.ctx, p.ctx) {
			panic(panicContext)
		}
	}

	return fqr{ctx: p.ctx}
}

func (p *FqPoly) scalar(a *Fq) []*big.Int {
	a.must()
	if !sameField(a.ctx, p.ctx) {
		panic(panicContext)
	}

	return a.c
}

// FqPolySet sets dst = src.
func FqPolySet(dst, src *FqPoly) {
	dst.same(src)
	dst.c = fqCopies(src.c)
}

// FqPolySetCoeffs sets dst from ascending coefficients, each given as
// generator coefficients and reduced into the field.
func FqPolySetCoeffs(dst *FqPoly, coeffs [][]*big.Int) {
	f := dst.same()
	c := make([][]*big.Int, len(coeffs))
	for i, e := range coeffs {
		c[i] = f.elem(e)
	}
	dst.c = polyNorm[[]*big.Int](f, c)
}

// FqPolyCoeffs returns a copy of the normalized coefficients.
func FqPolyCoeffs(p *FqPoly) [][]*big.Int {
	p.same()

	return fqCopies(p.c)
}

// FqPolyLength returns the number of stored coefficients.
func FqPolyLength(p *FqPoly) int {
	p.same()

	return len(p.c)
}

// FqPolyGetCoeff sets dst to the coefficient of x^i, zero beyond the length.
func FqPolyGetCoeff(dst *Fq, p *FqPoly, i int) {
	p.same()
	p.scalar(dst)
	if i < 0 || i >= len(p.c) {
		dst.c = nil
		return
	}
	dst.c = bigCopies(p.c[i])
}

// FqPolySetCoeff sets the coefficient of x^i to v, growing p as needed.
func FqPolySetCoeff(p *FqPoly, i int, v *Fq) {
	f := p.same()
	s := p.scalar(v)
	if i < 0 {
		panic(panicShape)
	}
	for len(p.c) <= i {
		p.c = append(p.c, nil)
	}
	p.c[i] = bigCopies(s)
	p.c = polyNorm[[]*big.Int](f, p.c)
}

// FqPolyEqual reports a == b.
func FqPolyEqual(a, b *FqPoly) bool {
	f := a.same(b)

	return polyEqual[[]*big.Int](f, a.c, b.c)
}

// FqPolyAdd sets dst = a + b.
func FqPolyAdd(dst, a, b *FqPoly) {
	f := dst.same(a, b)
	dst.c = polyAdd[[]*big.Int](f, a.c, b.c)
}

// FqPolySub sets dst = a - b.
func FqPolySub(dst, a, b *FqPoly) {
	f := dst.same(a, b)
	dst.c = polySub[[]*big.Int](f, a.c, b.c)
}

// FqPolyMul sets dst = a * b.
func FqPolyMul(dst, a, b *FqPoly) {
	f := dst.same(a, b)
	dst.c = polyMul[[]*big.Int](f, a.c, b.c)
}

// FqPolyNeg sets dst = -a.
func FqPolyNeg(dst, a *FqPoly) {
	f := dst.same(a)
	dst.c = polyNeg[[]*big.Int](f, a.c)
}

// FqPolyDivRem sets q, rem with a = q*b + rem. Panics when b is zero.
func FqPolyDivRem(q, rem, a, b *FqPoly) {
	f := q.same(rem, a, b)
	qc, rc, ok := polyDivRem[[]*big.Int](f, a.c, b.c)
	if !ok {
		panic(panicDivByZero)
	}
	q.c, rem.c = qc, rc
}

// FqPolyDiv sets dst to the Euclidean quotient. Panics when b is zero.
func FqPolyDiv(dst, a, b *FqPoly) {
	f := dst.same(a, b)
	qc, _, ok := polyDivRem[[]*big.Int](f, a.c, b.c)
	if !ok {
		panic(panicDivByZero)
	}
	dst.c = qc
}

// FqPolyRem sets dst = a mod b. Panics when b is zero.
func FqPolyRem(dst, a, b *FqPoly) {
	f := dst.same(a, b)
	_, rc, ok := polyDivRem[[]*big.Int](f, a.c, b.c)
	if !ok {
		panic(panicDivByZero)
	}
	dst.c = rc
}

// FqPolyGcd sets dst to the monic gcd (zero when both are zero).
func FqPolyGcd(dst, a, b *FqPoly) {
	f := dst.same(a, b)
	g, _, _, _ := polyXgcd[[]*big.Int](f, a.c, b.c)
	dst.c = g
}

// FqPolyAddSi sets dst = a + v.
func FqPolyAddSi(dst, a *FqPoly, v int64) {
	f := dst.same(a)
	dst.c = polyAddConst[[]*big.Int](f, a.c, f.fromInt64(v))
}

// FqPolySubSi sets dst = a - v.
func FqPolySubSi(dst, a *FqPoly, v int64) {
	f := dst.same(a)
	dst.c = polyAddConst[[]*big.Int](f, a.c, f.neg(f.fromInt64(v)))
}

// FqPolySiSub sets dst = v - a.
func FqPolySiSub(dst *FqPoly, v int64, a *FqPoly) {
	f := dst.same(a)
	dst.c = polyAddConst[[]*big.Int](f, polyNeg[[]*big.Int](f, a.c), f.fromInt64(v))
}

// FqPolyScalarMulSi sets dst = a * v.
func FqPolyScalarMulSi(dst, a *FqPoly, v int64) {
	f := dst.same(a)
	dst.c = polyScale[[]*big.Int](f, a.c, f.fromInt64(v))
}

// FqPolyScalarDivSi sets dst = a * v^-1. Panics when p divides v.
func FqPolyScalarDivSi(dst, a *FqPoly, v int64) {
	f := dst.same(a)
	inv, ok := f.inv(f.fromInt64(v))
	if !ok {
		panic(panicDivByZero)
	}
	dst.c = polyScale[[]*big.Int](f, a.c, inv)
}

// FqPolyScalarMulFq sets dst = a * s.
func FqPolyScalarMulFq(dst, a *FqPoly, s *Fq) {
	f := dst.same(a)
	dst.c = polyScale[[]*big.Int](f, a.c, dst.scalar(s))
}

// FqPolyMakeMonic sets dst to a scaled to leading coefficient one; zero
// stays zero.
func FqPolyMakeMonic(dst, a *FqPoly) {
	f := dst.same(a)
	c, _ := polyMonic[[]*big.Int](f, a.c)
	dst.c = c
}

// FqPolyDerivative sets dst = a'.
func FqPolyDerivative(dst, a *FqPoly) {
	f := dst.same(a)
	dst.c = polyDerivative[[]*big.Int](f, a.c)
}

// FqPolyPow sets dst = a^e.
func FqPolyPow(dst, a *FqPoly, e uint64) {
	f := dst.same(a)
	dst.c = polyPow[[]*big.Int](f, a.c, e)
}

// FqPolyEvaluate sets dst = a(x).
func FqPolyEvaluate(dst *Fq, a *FqPoly, x *Fq) {
	f := a.same()
	a.scalar(dst)
	dst.c = polyEval[[]*big.Int](f, a.c, a.scalar(x))
}

// ---------- matrices over GF(p^k) ----------

// FqMat is a foreign matrix over GF(p^k) bound to an FqCtx.
type FqMat struct {
	header
	m   dense[[]*big.Int]
	ctx *FqCtx
}

// FqMatInit allocates a rows×cols zero matrix over ctx.
func FqMatInit(rows, cols int, ctx *FqCtx) *FqMat {
	ctx.must()
	if rows < 0 || cols < 0 {
		panic(panicShape)
	}
	a := &FqMat{m: newDense[[]*big.Int](fqr{ctx: ctx}, rows, cols), ctx: ctx}
	a.init(KindFqMat)

	return a
}

// FqMatClear releases a.
func FqMatClear(a *FqMat) { a.clear() }

func (a *FqMat) same(others ...*FqMat) fqr {
	a.must()
	a.ctx.must()
	for _, o := range others {
		o.must()
		if !sameField(o.ctx, a.ctx) {
			panic(panicContext)
		}
	}

	return fqr{ctx: a.ctx}
}

// FqMatNrows returns the row count.
func FqMatNrows(a *FqMat) int { a.same(); return a.m.r }

// FqMatNcols returns the column count.
func FqMatNcols(a *FqMat) int { a.same(); return a.m.c }

// FqMatSet sets dst = src.
func FqMatSet(dst, src *FqMat) {
	f := dst.same(src)
	mustSameShape(dst.m, src.m)
	dst.m = matClone[[]*big.Int](f, src.m)
}

// FqMatSetEntries sets all entries in row-major order, each given as
// generator coefficients and reduced into the field.
func FqMatSetEntries(dst *FqMat, e [][]*big.Int) {
	f := dst.same()
	if len(e) != len(dst.m.e) {
		panic(panicShape)
	}
	out := make([][]*big.Int, len(e))
	for i, c := range e {
		out[i] = f.elem(c)
	}
	dst.m.e = out
}

// FqMatEntries returns a row-major copy of the entries.
func FqMatEntries(a *FqMat) [][]*big.Int {
	a.same()

	return fqCopies(a.m.e)
}

// FqMatEntry sets dst to entry (i, j).
func FqMatEntry(dst *Fq, a *FqMat, i, j int) {
	a.same()
	dst.must()
	if !sameField(dst.ctx, a.ctx) {
		panic(panicContext)
	}
	mustIndex(a.m, i, j)
	dst.c = bigCopies(a.m.at(i, j))
}

// FqMatSetEntry sets entry (i, j) to v.
func FqMatSetEntry(a *FqMat, i, j int, v *Fq) {
	a.same()
	v.must()
	if !sameField(v.ctx, a.ctx) {
		panic(panicContext)
	}
	mustIndex(a.m, i, j)
	a.m.e[i*a.m.c+j] = bigCopies(v.c)
}

// FqMatOne sets a square a to the identity.
func FqMatOne(a *FqMat) {
	f := a.same()
	mustSquare(a.m)
	a.m = matIdentity[[]*big.Int](f, a.m.r)
}

// FqMatEqual reports a == b.
func FqMatEqual(a, b *FqMat) bool {
	f := a.same(b)

	return matEqual[[]*big.Int](f, a.m, b.m)
}

// FqMatIsZero reports whether every entry is zero.
func FqMatIsZero(a *FqMat) bool {
	a.same()
	for _, v := range a.m.e {
		if len(v) != 0 {
			return false
		}
	}

	return true
}

// FqMatAdd sets dst = a + b.
func FqMatAdd(dst, a, b *FqMat) {
	f := dst.same(a, b)
	mustSameShape(dst.m, a.m, b.m)
	dst.m = matAdd[[]*big.Int](f, a.m, b.m)
}

// FqMatSub sets dst = a - b.
func FqMatSub(dst, a, b *FqMat) {
	f := dst.same(a, b)
	mustSameShape(dst.m, a.m, b.m)
	dst.m = matSub[[]*big.Int](f, a.m, b.m)
}

// FqMatMul sets dst = a * b.
func FqMatMul(dst, a, b *FqMat) {
	f := dst.same(a, b)
	mustMulShape(dst.m, a.m, b.m)
	dst.m = matMul[[]*big.Int](f, a.m, b.m)
}

// FqMatNeg sets dst = -a.
func FqMatNeg(dst, a *FqMat) {
	f := dst.same(a)
	mustSameShape(dst.m, a.m)
	dst.m = matNeg[[]*big.Int](f, a.m)
}

// FqMatScalarMulSi sets dst = a * v.
func FqMatScalarMulSi(dst, a *FqMat, v int64) {
	f := dst.same(a)
	mustSameShape(dst.m, a.m)
	dst.m = matScale[[]*big.Int](f, a.m, f.fromInt64(v))
}

// FqMatScalarMulFq sets dst = a * s.
func FqMatScalarMulFq(dst, a *FqMat, s *Fq) {
	f := dst.same(a)
	s.must()
	if !sameField(s.ctx, a.ctx) {
		panic(panicContext)
	}
	mustSameShape(dst.m, a.m)
	dst.m = matScale[[]*big.Int](f, a.m, s.c)
}

// FqMatTranspose sets dst = aᵀ.
func FqMatTranspose(dst, a *FqMat) {
	f := dst.same(a)
	if dst.m.r != a.m.c || dst.m.c != a.m.r {
		panic(panicShape)
	}
	dst.m = matTranspose[[]*big.Int](f, a.m)
}

// FqMatDet sets dst = det(a).
func FqMatDet(dst *Fq, a *FqMat) {
	f := a.same()
	dst.must()
	if !sameField(dst.ctx, a.ctx) {
		panic(panicContext)
	}
	mustSquare(a.m)
	det, _, _, _ := matGaussJordan[[]*big.Int](f, a.m, dense[[]*big.Int]{r: a.m.r})
	dst.c = det
}

// FqMatInv sets dst = a⁻¹ and reports true, or reports false (dst
// unchanged) when a is singular.
func FqMatInv(dst, a *FqMat) bool {
	f := dst.same(a)
	mustSquare(a.m)
	mustSameShape(dst.m, a.m)
	_, inv, invertible, _ := matGaussJordan[[]*big.Int](f, a.m, matIdentity[[]*big.Int](f, a.m.r))
	if !invertible {
		return false
	}
	dst.m = inv

	return true
}
