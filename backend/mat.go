// SPDX-License-Identifier: MIT

// Package backend - fmpz_mat, fmpq_mat, fmpz_mod_mat: dense matrices.
//
// Shapes are fixed at Init. Every binary entry point panics when operand
// shapes do not match the operation (add/sub: equal shapes; mul: a.cols ==
// b.rows and dst is a.rows × b.cols); callers validate shapes first.
package backend

import "math/big"

// ---------- Z ----------

// FmpzMat is a foreign integer matrix.
type FmpzMat struct {
	header
	m dense[*big.Int]
}

// FmpzMatInit allocates a rows×cols zero matrix (zero-sized shapes allowed).
func FmpzMatInit(rows, cols int) *FmpzMat {
	if rows < 0 || cols < 0 {
		panic(panicShape)
	}
	a := &FmpzMat{m: newDense(zring, rows, cols)}
	a.init(KindFmpzMat)

	return a
}

// FmpzMatClear releases a.
func FmpzMatClear(a *FmpzMat) { a.clear() }

// FmpzMatNrows returns the row count.
func FmpzMatNrows(a *FmpzMat) int { a.must(); return a.m.r }

// FmpzMatNcols returns the column count.
func FmpzMatNcols(a *FmpzMat) int { a.must(); return a.m.c }

// FmpzMatSet sets dst = src (shapes must match).
func FmpzMatSet(dst, src *FmpzMat) {
	dst.must()
	src.must()
	mustSameShape(dst.m, src.m)
	dst.m = matClone(zring, src.m)
}

// FmpzMatSetEntries sets all entries in row-major order. len(e) must equal rows*cols.
func FmpzMatSetEntries(dst *FmpzMat, e []*big.Int) {
	dst.must()
	if len(e) != len(dst.m.e) {
		panic(panicShape)
	}
	dst.m.e = bigCopies(e)
}

// FmpzMatEntries returns a row-major copy of the entries.
func FmpzMatEntries(a *FmpzMat) []*big.Int {
	a.must()

	return bigCopies(a.m.e)
}

// FmpzMatEntry returns a copy of entry (i, j).
func FmpzMatEntry(a *FmpzMat, i, j int) *big.Int {
	a.must()
	mustIndex(a.m, i, j)

	return new(big.Int).Set(a.m.at(i, j))
}

// FmpzMatSetEntry sets entry (i, j).
func FmpzMatSetEntry(a *FmpzMat, i, j int, v *big.Int) {
	a.must()
	mustIndex(a.m, i, j)
	a.m.e[i*a.m.c+j] = new(big.Int).Set(v)
}

// FmpzMatOne sets a square a to the identity.
func FmpzMatOne(a *FmpzMat) {
	a.must()
	mustSquare(a.m)
	a.m = matIdentity(zring, a.m.r)
}

// FmpzMatEqual reports a == b (false on different shapes).
func FmpzMatEqual(a, b *FmpzMat) bool {
	a.must()
	b.must()

	return matEqual(zring, a.m, b.m)
}

// FmpzMatIsZero reports whether every entry is zero.
func FmpzMatIsZero(a *FmpzMat) bool {
	a.must()
	for _, v := range a.m.e {
		if v.Sign() != 0 {
			return false
		}
	}

	return true
}

// FmpzMatAdd sets dst = a + b.
func FmpzMatAdd(dst, a, b *FmpzMat) {
	dst.must()
	a.must()
	b.must()
	mustSameShape(dst.m, a.m, b.m)
	dst.m = matAdd(zring, a.m, b.m)
}

// FmpzMatSub sets dst = a - b.
func FmpzMatSub(dst, a, b *FmpzMat) {
	dst.must()
	a.must()
	b.must()
	mustSameShape(dst.m, a.m, b.m)
	dst.m = matSub(zring, a.m, b.m)
}

// FmpzMatMul sets dst = a * b.
func FmpzMatMul(dst, a, b *FmpzMat) {
	dst.must()
	a.must()
	b.must()
	mustMulShape(dst.m, a.m, b.m)
	dst.m = matMul(zring, a.m, b.m)
}

// FmpzMatNeg sets dst = -a.
func FmpzMatNeg(dst, a *FmpzMat) {
	dst.must()
	a.must()
	mustSameShape(dst.m, a.m)
	dst.m = matNeg(zring, a.m)
}

// FmpzMatScalarMulSi sets dst = a * n.
func FmpzMatScalarMulSi(dst, a *FmpzMat, n int64) {
	dst.must()
	a.must()
	mustSameShape(dst.m, a.m)
	dst.m = matScale(zring, a.m, big.NewInt(n))
}

// FmpzMatScalarMulFmpz sets dst = a * z.
func FmpzMatScalarMulFmpz(dst, a *FmpzMat, z *Fmpz) {
	dst.must()
	a.must()
	z.must()
	mustSameShape(dst.m, a.m)
	dst.m = matScale(zring, a.m, &z.v)
}

// FmpzMatTranspose sets dst = aᵀ; dst must be cols×rows of a.
func FmpzMatTranspose(dst, a *FmpzMat) {
	dst.must()
	a.must()
	if dst.m.r != a.m.c || dst.m.c != a.m.r {
		panic(panicShape)
	}
	dst.m = matTranspose(zring, a.m)
}

// FmpzMatDet sets dst = det(a) for square a.
func FmpzMatDet(dst *Fmpz, a *FmpzMat) {
	dst.must()
	a.must()
	mustSquare(a.m)
	dst.v.Set(detBareiss(a.m))
}

// ---------- Q ----------

// FmpqMat is a foreign rational matrix.
type FmpqMat struct {
	header
	m dense[*big.Rat]
}

// FmpqMatInit allocates a rows×cols zero matrix.
func FmpqMatInit(rows, cols int) *FmpqMat {
	if rows < 0 || cols < 0 {
		panic(panicShape)
	}
	a := &FmpqMat{m: newDense(qring, rows, cols)}
	a.init(KindFmpqMat)

	return a
}

// FmpqMatClear releases a.
func FmpqMatClear(a *FmpqMat) { a.clear() }

// FmpqMatNrows returns the row count.
func FmpqMatNrows(a *FmpqMat) int { a.must(); return a.m.r }

// FmpqMatNcols returns the column count.
func FmpqMatNcols(a *FmpqMat) int { a.must(); return a.m.c }

// FmpqMatSet sets dst = src.
func FmpqMatSet(dst, src *FmpqMat) {
	dst.must()
	src.must()
	mustSameShape(dst.m, src.m)
	dst.m = matClone(qring, src.m)
}

// FmpqMatSetEntries sets all entries in row-major order.
func FmpqMatSetEntries(dst *FmpqMat, e []*big.Rat) {
	dst.must()
	if len(e) != len(dst.m.e) {
		panic(panicShape)
	}
	dst.m.e = ratCopies(e)
}

// FmpqMatEntries returns a row-major copy of the entries.
func FmpqMatEntries(a *FmpqMat) []*big.Rat {
	a.must()

	return ratCopies(a.m.e)
}

// FmpqMatEntry returns a copy of entry (i, j).
func FmpqMatEntry(a *FmpqMat, i, j int) *big.Rat {
	a.must()
	mustIndex(a.m, i, j)

	return new(big.Rat).Set(a.m.at(i, j))
}

// FmpqMatSetEntry sets entry (i, j).
func FmpqMatSetEntry(a *FmpqMat, i, j int, v *big.Rat) {
	a.must()
	mustIndex(a.m, i, j)
	a.m.e[i*a.m.c+j] = new(big.Rat).Set(v)
}

// FmpqMatOne sets a square a to the identity.
func FmpqMatOne(a *FmpqMat) {
	a.must()
	mustSquare(a.m)
	a.m = matIdentity(qring, a.m.r)
}

// FmpqMatEqual reports a == b.
func FmpqMatEqual(a, b *FmpqMat) bool {
	a.must()
	b.must()

	return matEqual(qring, a.m, b.m)
}

// FmpqMatIsZero reports whether every entry is zero.
func FmpqMatIsZero(a *FmpqMat) bool {
	a.must()
	for _, v := range a.m.e {
		if v.Sign() != 0 {
			return false
		}
	}

	return true
}

// FmpqMatAdd sets dst = a + b.
func FmpqMatAdd(dst, a, b *FmpqMat) {
	dst.must()
	a.must()
	b.must()
	mustSameShape(dst.m, a.m, b.m)
	dst.m = matAdd(qring, a.m, b.m)
}

// FmpqMatSub sets dst = a - b.
func FmpqMatSub(dst, a, b *FmpqMat) {
	dst.must()
	a.must()
	b.must()
	mustSameShape(dst.m, a.m, b.m)
	dst.m = matSub(qring, a.m, b.m)
}

// FmpqMatMul sets dst = a * b.
func FmpqMatMul(dst, a, b *FmpqMat) {
	dst.must()
	a.must()
	b.must()
	mustMulShape(dst.m, a.m, b.m)
	dst.m = matMul(qring, a.m, b.m)
}

// FmpqMatNeg sets dst = -a.
func FmpqMatNeg(dst, a *FmpqMat) {
	dst.must()
	a.must()
	mustSameShape(dst.m, a.m)
	dst.m = matNeg(qring, a.m)
}

// FmpqMatScalarMulSi sets dst = a * n.
func FmpqMatScalarMulSi(dst, a *FmpqMat, n int64) {
	dst.must()
	a.must()
	mustSameShape(dst.m, a.m)
	dst.m = matScale(qring, a.m, qring.fromInt64(n))
}

// FmpqMatScalarDivSi sets dst = a / n. Panics when n is zero.
func FmpqMatScalarDivSi(dst, a *FmpqMat, n int64) {
	dst.must()
	a.must()
	mustSameShape(dst.m, a.m)
	if n == 0 {
		panic(panicDivByZero)
	}
	dst.m = matScale(qring, a.m, big.NewRat(1, n))
}

// FmpqMatTranspose sets dst = aᵀ.
func FmpqMatTranspose(dst, a *FmpqMat) {
	dst.must()
	a.must()
	if dst.m.r != a.m.c || dst.m.c != a.m.r {
		panic(panicShape)
	}
	dst.m = matTranspose(qring, a.m)
}

// FmpqMatDet sets dst = det(a) for square a.
func FmpqMatDet(dst *Fmpq, a *FmpqMat) {
	dst.must()
	a.must()
	mustSquare(a.m)
	det, _, _, _ := matGaussJordan(qring, a.m, dense[*big.Rat]{r: a.m.r})
	dst.setRat(det)
}

// FmpqMatInv sets dst = a⁻¹ and reports true, or reports false (dst
// unchanged) when a is singular.
func FmpqMatInv(dst, a *FmpqMat) bool {
	dst.must()
	a.must()
	mustSquare(a.m)
	mustSameShape(dst.m, a.m)
	_, inv, invertible, _ := matGaussJordan(qring, a.m, matIdentity(qring, a.m.r))
	if !invertible {
		return false
	}
	dst.m = inv

	return true
}

// ---------- Z/nZ ----------

// ModMat is a foreign matrix over Z/nZ bound to a ModCtx.
type ModMat struct {
	header
	m   dense[*big.Int]
	ctx *ModCtx
}

// ModMatInit allocates a rows×cols zero matrix over ctx.
func ModMatInit(rows, cols int, ctx *ModCtx) *ModMat {
	ctx.must()
	if rows < 0 || cols < 0 {
		panic(panicShape)
	}
	a := &ModMat{m: newDense[*big.Int](ctx.ring(), rows, cols), ctx: ctx}
	a.init(KindModMat)

	return a
}

// ModMatClear releases a.
func ModMatClear(a *ModMat) { a.clear() }

func (a *ModMat) same(others ...*ModMat) zn {
	a.must()
	a.ctx.must()
	for _, o := range others {
		o.must()
		if o.ctx != a.ctx && o.ctx.n.Cmp(&a.ctx.n) != 0 {
			panic(panicContext)
		}
	}

	return a.ctx.ring()
}

// ModMatNrows returns the row count.
func ModMatNrows(a *ModMat) int { a.same(); return a.m.r }

// ModMatNcols returns the column count.
func ModMatNcols(a *ModMat) int { a.same(); return a.m.c }

// ModMatSet sets dst = src.
func ModMatSet(dst, src *ModMat) {
	r := dst.same(src)
	mustSameShape(dst.m, src.m)
	dst.m = matClone[*big.Int](r, src.m)
}

// ModMatSetEntries sets all entries (reduced mod n) in row-major order.
func ModMatSetEntries(dst *ModMat, e []*big.Int) {
	r := dst.same()
	if len(e) != len(dst.m.e) {
		panic(panicShape)
	}
	dst.m.e = r.reduceAll(e)
}

// ModMatEntries returns a row-major copy of the entries.
func ModMatEntries(a *ModMat) []*big.Int {
	a.same()

	return bigCopies(a.m.e)
}

// ModMatEntry returns a copy of entry (i, j).
func ModMatEntry(a *ModMat, i, j int) *big.Int {
	a.same()
	mustIndex(a.m, i, j)

	return new(big.Int).Set(a.m.at(i, j))
}

// ModMatSetEntry sets entry (i, j) to v mod n.
func ModMatSetEntry(a *ModMat, i, j int, v *big.Int) {
	r := a.same()
	mustIndex(a.m, i, j)
	a.m.e[i*a.m.c+j] = r.reduce(new(big.Int).Set(v))
}

// ModMatOne sets a square a to the identity.
func ModMatOne(a *ModMat) {
	r := a.same()
	mustSquare(a.m)
	a.m = matIdentity[*big.Int](r, a.m.r)
}

// ModMatEqual reports a == b.
func ModMatEqual(a, b *ModMat) bool {
	r := a.same(b)

	return matEqual[*big.Int](r, a.m, b.m)
}

// ModMatIsZero reports whether every entry is zero.
func ModMatIsZero(a *ModMat) bool {
	a.same()
	for _, v := range a.m.e {
		if v.Sign() != 0 {
			return false
		}
	}

	return true
}

// ModMatAdd sets dst = a + b.
func ModMatAdd(dst, a, b *ModMat) {
	r := dst.same(a, b)
	mustSameShape(dst.m, a.m, b.m)
	dst.m = matAdd[*big.Int](r, a.m, b.m)
}

// ModMatSub sets dst = a - b.
func ModMatSub(dst, a, b *ModMat) {
	r := dst.same(a, b)
	mustSameShape(dst.m, a.m, b.m)
	dst.m = matSub[*big.Int](r, a.m, b.m)
}

// ModMatMul sets dst = a * b.
func ModMatMul(dst, a, b *ModMat) {
	r := dst.same(a, b)
	mustMulShape(dst.m, a.m, b.m)
	dst.m = matMul[*big.Int](r, a.m, b.m)
}

// ModMatNeg sets dst = -a.
func ModMatNeg(dst, a *ModMat) {
	r := dst.same(a)
	mustSameShape(dst.m, a.m)
	dst.m = matNeg[*big.Int](r, a.m)
}

// ModMatScalarMulSi sets dst = a * v.
func ModMatScalarMulSi(dst, a *ModMat, v int64) {
	r := dst.same(a)
	mustSameShape(dst.m, a.m)
	dst.m = matScale[*big.Int](r, a.m, r.fromInt64(v))
}

// ModMatTranspose sets dst = aᵀ.
func ModMatTranspose(dst, a *ModMat) {
	r := dst.same(a)
	if dst.m.r != a.m.c || dst.m.c != a.m.r {
		panic(panicShape)
	}
	dst.m = matTranspose[*big.Int](r, a.m)
}

// ModMatDet sets dst = det(a). It reports false when elimination meets a
// pivot column without units (possible only for composite moduli).
func ModMatDet(dst *Fmpz, a *ModMat) bool {
	r := a.same()
	dst.must()
	mustSquare(a.m)
	det, _, _, ok := matGaussJordan[*big.Int](r, a.m, dense[*big.Int]{r: a.m.r})
	if !ok {
		return false
	}
	dst.v.Set(det)

	return true
}

// ModMatInv sets dst = a⁻¹ and reports true, or false when a is not invertible
// (or elimination fails for a composite modulus).
func ModMatInv(dst, a *ModMat) bool {
	r := dst.same(a)
	mustSquare(a.m)
	mustSameShape(dst.m, a.m)
	_, inv, invertible, ok := matGaussJordan[*big.Int](r, a.m, matIdentity[*big.Int](r, a.m.r))
	if !ok || !invertible {
		return false
	}
	dst.m = inv

	return true
}

// ---------- shape guards ----------

func mustSameShape[E any](ms ...dense[E]) {
	for _, m := range ms[1:] {
		if !m.sameShape(ms[0]) {
			panic(panicShape)
		}
	}
}

func mustMulShape[E any](dst, a, b dense[E]) {
	if a.c != b.r || dst.r != a.r || dst.c != b.c {
		panic(panicShape)
	}
}

func mustSquare[E any](m dense[E]) {
	if m.r != m.c {
		panic(panicShape)
	}
}

func mustIndex[E any](m dense[E], i, j int) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		panic(panicShape)
	}
}
