// SPDX-License-Identifier: MIT

// Package backend - fmpz: arbitrary-precision integers.
package backend

import (
	"math"
	"math/big"
)

// Fmpz is a foreign arbitrary-precision integer.
type Fmpz struct {
	header
	v big.Int
}

// FmpzInit allocates an integer set to zero.
func FmpzInit() *Fmpz {
	z := &Fmpz{}
	z.init(KindFmpz)

	return z
}

// FmpzClear releases z. z must not be used afterwards.
func FmpzClear(z *Fmpz) { z.clear() }

// FmpzSet sets dst = src.
func FmpzSet(dst, src *Fmpz) {
	dst.must()
	src.must()
	dst.v.Set(&src.v)
}

// FmpzZero sets dst = 0.
func FmpzZero(dst *Fmpz) {
	dst.must()
	dst.v.SetInt64(0)
}

// FmpzOne sets dst = 1.
func FmpzOne(dst *Fmpz) {
	dst.must()
	dst.v.SetInt64(1)
}

// FmpzSetSi sets dst from a signed machine integer.
func FmpzSetSi(dst *Fmpz, n int64) {
	dst.must()
	dst.v.SetInt64(n)
}

// FmpzSetUi sets dst from an unsigned machine integer.
func FmpzSetUi(dst *Fmpz, n uint64) {
	dst.must()
	dst.v.SetUint64(n)
}

// FmpzSetD sets dst to the integral double f. It reports false (leaving dst
// unchanged) when f is NaN, infinite, or has a fractional part.
func FmpzSetD(dst *Fmpz, f float64) bool {
	dst.must()
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return false
	}
	bf := new(big.Float).SetFloat64(f)
	bf.Int(&dst.v)

	return true
}

// FmpzSetBig sets dst = b.
func FmpzSetBig(dst *Fmpz, b *big.Int) {
	dst.must()
	dst.v.Set(b)
}

// FmpzGetBig returns a copy of z as a *big.Int.
func FmpzGetBig(z *Fmpz) *big.Int {
	z.must()

	return new(big.Int).Set(&z.v)
}

// FmpzSetStr parses s in the given base (0 = auto-detect prefix, 2..62).
// On failure dst is unchanged and false is returned.
func FmpzSetStr(dst *Fmpz, s string, base int) bool {
	dst.must()
	if s == "" || base == 1 || base < 0 || base > 62 {
		return false
	}
	var tmp big.Int
	if _, ok := tmp.SetString(s, base); !ok {
		return false
	}
	dst.v.Set(&tmp)

	return true
}

// FmpzGetStr formats z in base (2..62). Panics on any other base.
func FmpzGetStr(z *Fmpz, base int) string {
	z.must()
	if base < 2 || base > 62 {
		panic(panicBadBase)
	}

	return z.v.Text(base)
}

// FmpzFitsSi reports whether z fits in an int64.
func FmpzFitsSi(z *Fmpz) bool {
	z.must()

	return z.v.IsInt64()
}

// FmpzGetSi returns z as int64; the result is undefined when !FmpzFitsSi(z).
func FmpzGetSi(z *Fmpz) int64 {
	z.must()

	return z.v.Int64()
}

// FmpzFitsUi reports whether z fits in a uint64.
func FmpzFitsUi(z *Fmpz) bool {
	z.must()

	return z.v.IsUint64()
}

// FmpzGetUi returns z as uint64; the result is undefined when !FmpzFitsUi(z).
func FmpzGetUi(z *Fmpz) uint64 {
	z.must()

	return z.v.Uint64()
}

// FmpzGetD returns the double nearest to z and the rounding accuracy.
// Magnitudes beyond the double range yield ±Inf.
func FmpzGetD(z *Fmpz) (float64, big.Accuracy) {
	z.must()

	return new(big.Float).SetInt(&z.v).Float64()
}

// FmpzAdd sets dst = a + b.
func FmpzAdd(dst, a, b *Fmpz) {
	dst.must()
	a.must()
	b.must()
	dst.v.Add(&a.v, &b.v)
}

// FmpzSub sets dst = a - b.
func FmpzSub(dst, a, b *Fmpz) {
	dst.must()
	a.must()
	b.must()
	dst.v.Sub(&a.v, &b.v)
}

// FmpzMul sets dst = a * b.
func FmpzMul(dst, a, b *Fmpz) {
	dst.must()
	a.must()
	b.must()
	dst.v.Mul(&a.v, &b.v)
}

// FmpzAddSi sets dst = a + n.
func FmpzAddSi(dst, a *Fmpz, n int64) {
	dst.must()
	a.must()
	dst.v.Add(&a.v, big.NewInt(n))
}

// FmpzSubSi sets dst = a - n.
func FmpzSubSi(dst, a *Fmpz, n int64) {
	dst.must()
	a.must()
	dst.v.Sub(&a.v, big.NewInt(n))
}

// FmpzSiSub sets dst = n - a.
func FmpzSiSub(dst *Fmpz, n int64, a *Fmpz) {
	dst.must()
	a.must()
	dst.v.Sub(big.NewInt(n), &a.v)
}

// FmpzMulSi sets dst = a * n.
func FmpzMulSi(dst, a *Fmpz, n int64) {
	dst.must()
	a.must()
	dst.v.Mul(&a.v, big.NewInt(n))
}

// FmpzNeg sets dst = -a.
func FmpzNeg(dst, a *Fmpz) {
	dst.must()
	a.must()
	dst.v.Neg(&a.v)
}

// FmpzAbs sets dst = |a|.
func FmpzAbs(dst, a *Fmpz) {
	dst.must()
	a.must()
	dst.v.Abs(&a.v)
}

// floorDivMod computes floor quotient and matching remainder (sign of b).
func floorDivMod(q, r, a, b *big.Int) {
	var qq, rr big.Int
	qq.QuoRem(a, b, &rr)
	if rr.Sign() != 0 && (rr.Sign() < 0) != (b.Sign() < 0) {
		qq.Sub(&qq, big.NewInt(1))
		rr.Add(&rr, b)
	}
	if q != nil {
		q.Set(&qq)
	}
	if r != nil {
		r.Set(&rr)
	}
}

// FmpzFdivQ sets dst = floor(a / b). Panics when b is zero.
func FmpzFdivQ(dst, a, b *Fmpz) {
	dst.must()
	a.must()
	b.must()
	if b.v.Sign() == 0 {
		panic(panicDivByZero)
	}
	floorDivMod(&dst.v, nil, &a.v, &b.v)
}

// FmpzFdivR sets dst = a - b*floor(a / b). Panics when b is zero.
func FmpzFdivR(dst, a, b *Fmpz) {
	dst.must()
	a.must()
	b.must()
	if b.v.Sign() == 0 {
		panic(panicDivByZero)
	}
	floorDivMod(nil, &dst.v, &a.v, &b.v)
}

// FmpzFdivQR sets q, r with a = q*b + r and floor rounding. q and r must differ.
func FmpzFdivQR(q, r, a, b *Fmpz) {
	q.must()
	r.must()
	a.must()
	b.must()
	if b.v.Sign() == 0 {
		panic(panicDivByZero)
	}
	floorDivMod(&q.v, &r.v, &a.v, &b.v)
}

// FmpzFdivQSi sets dst = floor(a / n). Panics when n is zero.
func FmpzFdivQSi(dst, a *Fmpz, n int64) {
	dst.must()
	a.must()
	if n == 0 {
		panic(panicDivByZero)
	}
	floorDivMod(&dst.v, nil, &a.v, big.NewInt(n))
}

// FmpzSiFdivQ sets dst = floor(n / a). Panics when a is zero.
func FmpzSiFdivQ(dst *Fmpz, n int64, a *Fmpz) {
	dst.must()
	a.must()
	if a.v.Sign() == 0 {
		panic(panicDivByZero)
	}
	floorDivMod(&dst.v, nil, big.NewInt(n), &a.v)
}

// FmpzDivexact sets dst = a / b where b is known to divide a.
func FmpzDivexact(dst, a, b *Fmpz) {
	dst.must()
	a.must()
	b.must()
	if b.v.Sign() == 0 {
		panic(panicDivByZero)
	}
	dst.v.Quo(&a.v, &b.v)
}

// FmpzPowUi sets dst = a^e.
func FmpzPowUi(dst, a *Fmpz, e uint64) {
	dst.must()
	a.must()
	dst.v.Exp(&a.v, new(big.Int).SetUint64(e), nil)
}

// FmpzGcd sets dst = gcd(a, b) >= 0.
func FmpzGcd(dst, a, b *Fmpz) {
	dst.must()
	a.must()
	b.must()
	var x, y big.Int
	x.Abs(&a.v)
	y.Abs(&b.v)
	dst.v.GCD(nil, nil, &x, &y)
}

// FmpzMod sets dst = a mod n with 0 <= dst < |n|. Panics when n is zero.
func FmpzMod(dst, a, n *Fmpz) {
	dst.must()
	a.must()
	n.must()
	if n.v.Sign() == 0 {
		panic(panicDivByZero)
	}
	dst.v.Mod(&a.v, &n.v)
}

// FmpzCmp returns -1, 0, +1 comparing a and b.
func FmpzCmp(a, b *Fmpz) int {
	a.must()
	b.must()

	return a.v.Cmp(&b.v)
}

// FmpzCmpSi compares a with n.
func FmpzCmpSi(a *Fmpz, n int64) int {
	a.must()

	return a.v.Cmp(big.NewInt(n))
}

// FmpzSgn returns the sign of a.
func FmpzSgn(a *Fmpz) int {
	a.must()

	return a.v.Sign()
}

// FmpzIsZero reports a == 0.
func FmpzIsZero(a *Fmpz) bool { return FmpzSgn(a) == 0 }

// FmpzIsOne reports a == 1.
func FmpzIsOne(a *Fmpz) bool { return FmpzCmpSi(a, 1) == 0 }

// FmpzEqual reports a == b.
func FmpzEqual(a, b *Fmpz) bool { return FmpzCmp(a, b) == 0 }

// FmpzBits returns the bit length of |a|.
func FmpzBits(a *Fmpz) int {
	a.must()

	return a.v.BitLen()
}

// FmpzIsProbabPrime runs a probabilistic primality test on a.
func FmpzIsProbabPrime(a *Fmpz) bool {
	a.must()

	return a.v.Sign() > 0 && a.v.ProbablyPrime(20)
}

// ---------- canonical form ----------

// Sign bytes of the canonical integer encoding.
const (
	signNonNeg byte = 0
	signNeg    byte = 1
)

// bigBytes encodes b as a sign byte followed by the big-endian magnitude
// without leading zeros. Zero encodes as a single sign byte.
func bigBytes(b *big.Int) []byte {
	mag := new(big.Int).Abs(b).Bytes()
	out := make([]byte, 1, 1+len(mag))
	out[0] = signNonNeg
	if b.Sign() < 0 {
		out[0] = signNeg
	}

	return append(out, mag...)
}

// bigFromBytes is the inverse of bigBytes; it rejects non-canonical input.
func bigFromBytes(p []byte) (*big.Int, bool) {
	if len(p) == 0 || p[0] > signNeg {
		return nil, false
	}
	if len(p) > 1 && p[1] == 0 {
		return nil, false // leading zero byte
	}
	v := new(big.Int).SetBytes(p[1:])
	if p[0] == signNeg {
		if v.Sign() == 0 {
			return nil, false // negative zero
		}
		v.Neg(v)
	}

	return v, true
}

// FmpzBytes returns the canonical byte form of a (sign byte + magnitude).
func FmpzBytes(a *Fmpz) []byte {
	a.must()

	return bigBytes(&a.v)
}

// FmpzSetBytes decodes the canonical byte form. Non-canonical input is
// rejected with false and dst is left unchanged.
func FmpzSetBytes(dst *Fmpz, p []byte) bool {
	dst.must()
	v, ok := bigFromBytes(p)
	if !ok {
		return false
	}
	dst.v.Set(v)

	return true
}

// BigBytes exposes the canonical integer encoding for raw *big.Int values
// (polynomial coefficients, matrix entries, context parameters).
func BigBytes(b *big.Int) []byte { return bigBytes(b) }

// BigFromBytes decodes BigBytes output.
func BigFromBytes(p []byte) (*big.Int, bool) { return bigFromBytes(p) }
