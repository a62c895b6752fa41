// SPDX-License-Identifier: MIT

// Package backend - fmpq: arbitrary-precision rationals.
//
// A rational is stored as an explicit (num, den) pair. Arithmetic always
// produces canonical output (gcd(num, den) = 1, den > 0), but the pair may be
// set without canonicalisation through FmpqSetFracUnchecked, so the same value
// can have several bit patterns. Use FmpqCanonicalBytes for hashing.
package backend

import (
	"math/big"
	"strings"
)

// Fmpq is a foreign arbitrary-precision rational.
type Fmpq struct {
	header
	num big.Int
	den big.Int
}

// FmpqInit allocates a rational set to 0/1.
func FmpqInit() *Fmpq {
	q := &Fmpq{}
	q.init(KindFmpq)
	q.den.SetInt64(1)

	return q
}

// FmpqClear releases q.
func FmpqClear(q *Fmpq) { q.clear() }

// rat returns q as a normalized big.Rat.
func (q *Fmpq) rat() *big.Rat {
	return new(big.Rat).SetFrac(&q.num, &q.den)
}

// setRat stores r (always canonical).
func (q *Fmpq) setRat(r *big.Rat) {
	q.num.Set(r.Num())
	q.den.Set(r.Denom())
}

// FmpqSet sets dst = src (bit copy, canonical or not).
func FmpqSet(dst, src *Fmpq) {
	dst.must()
	src.must()
	dst.num.Set(&src.num)
	dst.den.Set(&src.den)
}

// FmpqZero sets dst = 0.
func FmpqZero(dst *Fmpq) {
	dst.must()
	dst.num.SetInt64(0)
	dst.den.SetInt64(1)
}

// FmpqSetSi sets dst = p/q in canonical form. Panics when q is zero.
func FmpqSetSi(dst *Fmpq, p int64, q int64) {
	dst.must()
	if q == 0 {
		panic(panicDivByZero)
	}
	dst.setRat(big.NewRat(p, q))
}

// FmpqSetFmpz sets dst = z/1.
func FmpqSetFmpz(dst *Fmpq, z *Fmpz) {
	dst.must()
	z.must()
	dst.num.Set(&z.v)
	dst.den.SetInt64(1)
}

// FmpqSetFmpzFrac sets dst = num/den in canonical form. Panics when den is zero.
func FmpqSetFmpzFrac(dst *Fmpq, num, den *Fmpz) {
	dst.must()
	num.must()
	den.must()
	if den.v.Sign() == 0 {
		panic(panicDivByZero)
	}
	dst.setRat(new(big.Rat).SetFrac(&num.v, &den.v))
}

// FmpqSetFracUnchecked stores num/den verbatim. The pair is not
// canonicalised; den must be non-zero.
func FmpqSetFracUnchecked(dst *Fmpq, num, den *big.Int) {
	dst.must()
	if den.Sign() == 0 {
		panic(panicDivByZero)
	}
	dst.num.Set(num)
	dst.den.Set(den)
}

// FmpqCanonicalise puts q in canonical form in place.
func FmpqCanonicalise(q *Fmpq) {
	q.must()
	q.setRat(q.rat())
}

// FmpqIsCanonical reports whether q is stored in canonical form.
func FmpqIsCanonical(q *Fmpq) bool {
	q.must()
	if q.den.Sign() <= 0 {
		return false
	}
	var g big.Int
	g.GCD(nil, nil, new(big.Int).Abs(&q.num), &q.den)

	return g.Cmp(big.NewInt(1)) == 0
}

// FmpqSetRat sets dst = r.
func FmpqSetRat(dst *Fmpq, r *big.Rat) {
	dst.must()
	dst.setRat(r)
}

// FmpqGetRat returns q as a new *big.Rat.
func FmpqGetRat(q *Fmpq) *big.Rat {
	q.must()

	return q.rat()
}

// FmpqSetStr parses "a" or "a/b" in base (0 = auto, 2..62) and stores the
// canonical value. On failure dst is unchanged.
func FmpqSetStr(dst *Fmpq, s string, base int) bool {
	dst.must()
	if s == "" || base == 1 || base < 0 || base > 62 {
		return false
	}
	numStr, denStr, hasDen := strings.Cut(s, "/")
	var n, d big.Int
	if _, ok := n.SetString(numStr, base); !ok {
		return false
	}
	d.SetInt64(1)
	if hasDen {
		if strings.HasPrefix(denStr, "-") || strings.HasPrefix(denStr, "+") {
			return false
		}
		if _, ok := d.SetString(denStr, base); !ok || d.Sign() == 0 {
			return false
		}
	}
	dst.setRat(new(big.Rat).SetFrac(&n, &d))

	return true
}

// FmpqGetStr formats q as "num" or "num/den" from its stored pair.
func FmpqGetStr(q *Fmpq, base int) string {
	q.must()
	if q.den.Cmp(big.NewInt(1)) == 0 {
		return q.num.Text(base)
	}

	return q.num.Text(base) + "/" + q.den.Text(base)
}

// FmpqGetD returns the double nearest to q and whether it is exact.
func FmpqGetD(q *Fmpq) (float64, bool) {
	q.must()

	return q.rat().Float64()
}

// FmpqNum sets dst to the stored numerator of q.
func FmpqNum(dst *Fmpz, q *Fmpq) {
	dst.must()
	q.must()
	dst.v.Set(&q.num)
}

// FmpqDen sets dst to the stored denominator of q.
func FmpqDen(dst *Fmpz, q *Fmpq) {
	dst.must()
	q.must()
	dst.v.Set(&q.den)
}

// FmpqFloor sets dst = floor(q).
func FmpqFloor(dst *Fmpz, q *Fmpq) {
	dst.must()
	q.must()
	r := q.rat()
	floorDivMod(&dst.v, nil, r.Num(), r.Denom())
}

func fmpqBinary(dst, a, b *Fmpq, f func(z, x, y *big.Rat) *big.Rat) {
	dst.must()
	a.must()
	b.must()
	dst.setRat(f(new(big.Rat), a.rat(), b.rat()))
}

// FmpqAdd sets dst = a + b.
func FmpqAdd(dst, a, b *Fmpq) { fmpqBinary(dst, a, b, (*big.Rat).Add) }

// FmpqSub sets dst = a - b.
func FmpqSub(dst, a, b *Fmpq) { fmpqBinary(dst, a, b, (*big.Rat).Sub) }

// FmpqMul sets dst = a * b.
func FmpqMul(dst, a, b *Fmpq) { fmpqBinary(dst, a, b, (*big.Rat).Mul) }

// FmpqDiv sets dst = a / b. Panics when b is zero.
func FmpqDiv(dst, a, b *Fmpq) {
	b.must()
	if b.num.Sign() == 0 {
		panic(panicDivByZero)
	}
	fmpqBinary(dst, a, b, (*big.Rat).Quo)
}

func fmpqNative(dst, a *Fmpq, n int64, f func(z, x, y *big.Rat) *big.Rat) {
	dst.must()
	a.must()
	dst.setRat(f(new(big.Rat), a.rat(), new(big.Rat).SetInt64(n)))
}

// FmpqAddSi sets dst = a + n.
func FmpqAddSi(dst, a *Fmpq, n int64) { fmpqNative(dst, a, n, (*big.Rat).Add) }

// FmpqSubSi sets dst = a - n.
func FmpqSubSi(dst, a *Fmpq, n int64) { fmpqNative(dst, a, n, (*big.Rat).Sub) }

// FmpqMulSi sets dst = a * n.
func FmpqMulSi(dst, a *Fmpq, n int64) { fmpqNative(dst, a, n, (*big.Rat).Mul) }

// FmpqDivSi sets dst = a / n. Panics when n is zero.
func FmpqDivSi(dst, a *Fmpq, n int64) {
	if n == 0 {
		panic(panicDivByZero)
	}
	fmpqNative(dst, a, n, (*big.Rat).Quo)
}

// FmpqSiSub sets dst = n - a.
func FmpqSiSub(dst *Fmpq, n int64, a *Fmpq) {
	dst.must()
	a.must()
	dst.setRat(new(big.Rat).Sub(new(big.Rat).SetInt64(n), a.rat()))
}

// FmpqSiDiv sets dst = n / a. Panics when a is zero.
func FmpqSiDiv(dst *Fmpq, n int64, a *Fmpq) {
	dst.must()
	a.must()
	if a.num.Sign() == 0 {
		panic(panicDivByZero)
	}
	dst.setRat(new(big.Rat).Quo(new(big.Rat).SetInt64(n), a.rat()))
}

// FmpqNeg sets dst = -a.
func FmpqNeg(dst, a *Fmpq) {
	dst.must()
	a.must()
	dst.setRat(new(big.Rat).Neg(a.rat()))
}

// FmpqAbs sets dst = |a|.
func FmpqAbs(dst, a *Fmpq) {
	dst.must()
	a.must()
	dst.setRat(new(big.Rat).Abs(a.rat()))
}

// FmpqInv sets dst = 1/a. Panics when a is zero.
func FmpqInv(dst, a *Fmpq) {
	dst.must()
	a.must()
	if a.num.Sign() == 0 {
		panic(panicDivByZero)
	}
	dst.setRat(new(big.Rat).Inv(a.rat()))
}

// FmpqCmp compares a and b by value (canonical or not).
func FmpqCmp(a, b *Fmpq) int {
	a.must()
	b.must()

	return a.rat().Cmp(b.rat())
}

// FmpqSgn returns the sign of a.
func FmpqSgn(a *Fmpq) int {
	a.must()

	return a.rat().Sign()
}

// FmpqIsZero reports a == 0.
func FmpqIsZero(a *Fmpq) bool {
	a.must()

	return a.num.Sign() == 0
}

// FmpqEqual reports whether a and b denote the same rational.
func FmpqEqual(a, b *Fmpq) bool { return FmpqCmp(a, b) == 0 }

// FmpqEqualBits reports whether a and b have identical stored pairs.
func FmpqEqualBits(a, b *Fmpq) bool {
	a.must()
	b.must()

	return a.num.Cmp(&b.num) == 0 && a.den.Cmp(&b.den) == 0
}

// FmpqCanonicalBytes returns the canonical encodings of numerator and
// denominator, normalizing a private copy when q is not canonical.
func FmpqCanonicalBytes(q *Fmpq) (num, den []byte) {
	q.must()
	r := q.rat()

	return bigBytes(r.Num()), bigBytes(r.Denom())
}
