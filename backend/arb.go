// SPDX-License-Identifier: MIT

// Package backend - arb: real balls [mid +/- rad].
//
// Model:
//   - mid is a big.Float rounded to the working precision (ToNearestEven).
//   - rad is a non-negative big.Float of radPrec bits, always rounded toward
//     +Inf so the ball stays an enclosure.
//   - Every rounding of mid adds a bound of its error to rad.
//   - The indeterminate ball is mid 0, rad +Inf; it absorbs every operation.
//
// Complexity: each operation is a constant number of big.Float operations at
// the working precision plus a few at radPrec.
package backend

import (
	"math"
	"math/big"
	"strings"
)

const radPrec = 30

// maxDecimalExp is the largest binary exponent ballText renders in decimal;
// beyond it mid and rad are printed as exact hexadecimal floats.
const maxDecimalExp = 1 << 16

type ball struct {
	mid big.Float
	rad big.Float
}

func newRad() *big.Float { return new(big.Float).SetPrec(radPrec).SetMode(big.ToPositiveInf) }

func newRadDown() *big.Float { return new(big.Float).SetPrec(radPrec).SetMode(big.ToNegativeInf) }

func newMid(prec uint) *big.Float { return new(big.Float).SetPrec(prec).SetMode(big.ToNearestEven) }

// upper returns |x| rounded up to radPrec bits.
func upper(x *big.Float) *big.Float {
	r := newRad().Set(x)

	return r.Abs(r)
}

// roundErr bounds the error of a mid that was just rounded with accuracy acc.
func roundErr(m *big.Float, acc big.Accuracy) *big.Float {
	r := newRad()
	if acc == big.Exact || m.Sign() == 0 {
		return r
	}
	exp := m.MantExp(nil)

	return r.SetMantExp(big.NewFloat(1), exp-int(m.Prec()))
}

// unsign turns a negative zero into +0 so equal balls print and hash alike.
func unsign(f *big.Float) {
	if f.Sign() == 0 && f.Signbit() {
		f.Neg(f)
	}
}

// store writes mid and rad into b; mid keeps its own precision.
func (b *ball) store(mid, rad *big.Float) {
	b.mid.SetPrec(mid.Prec()).SetMode(big.ToNearestEven).Set(mid)
	unsign(&b.mid)
	b.rad.Set(rad)
}

func (b *ball) setExact(m *big.Float, prec uint) {
	mid := newMid(prec).Set(m)
	b.store(mid, roundErr(mid, mid.Acc()))
}

func (b *ball) indeterminate() bool { return b.rad.IsInf() }

func (b *ball) setIndeterminate() {
	b.mid.SetInt64(0)
	b.rad.Set(newRad().SetInf(false))
}

func (b *ball) set(o *ball) {
	b.mid.SetPrec(o.mid.Prec()).SetMode(big.ToNearestEven).Set(&o.mid)
	b.rad.Set(&o.rad)
}

func ballPrec(prec uint) uint {
	if prec == 0 {
		return 2
	}

	return prec
}

func ballAdd(dst, a, b *ball, prec uint, sub bool) {
	if a.indeterminate() || b.indeterminate() {
		dst.setIndeterminate()
		return
	}
	mid := newMid(ballPrec(prec))
	if sub {
		mid.Sub(&a.mid, &b.mid)
	} else {
		mid.Add(&a.mid, &b.mid)
	}
	rad := newRad().Add(&a.rad, &b.rad)
	rad.Add(rad, roundErr(mid, mid.Acc()))
	dst.store(mid, rad)
}

func ballMul(dst, a, b *ball, prec uint) {
	if a.indeterminate() || b.indeterminate() {
		dst.setIndeterminate()
		return
	}
	mid := newMid(ballPrec(prec)).Mul(&a.mid, &b.mid)
	rad := newRad().Mul(upper(&a.mid), &b.rad)
	rad.Add(rad, newRad().Mul(upper(&b.mid), &a.rad))
	rad.Add(rad, newRad().Mul(&a.rad, &b.rad))
	rad.Add(rad, roundErr(mid, mid.Acc()))
	dst.store(mid, rad)
}

func ballDiv(dst, a, b *ball, prec uint) {
	if a.indeterminate() || b.indeterminate() || ballContainsZero(b) {
		dst.setIndeterminate()
		return
	}
	mid := newMid(ballPrec(prec)).Quo(&a.mid, &b.mid)
	num := newRad().Mul(upper(&a.mid), &b.rad)
	num.Add(num, newRad().Mul(upper(&b.mid), &a.rad))
	absB := newRadDown().Abs(&b.mid)
	den := newRadDown().Sub(absB, &b.rad)
	den.Mul(den, absB)
	if den.Sign() <= 0 {
		dst.setIndeterminate()
		return
	}
	rad := newRad().Quo(num, den)
	rad.Add(rad, roundErr(mid, mid.Acc()))
	dst.store(mid, rad)
}

func ballNeg(dst, a *ball) {
	dst.set(a)
	dst.mid.Neg(&dst.mid)
	unsign(&dst.mid)
}

// scaled returns fs as integers over the common factor 2^low. The cost
// follows the spread of the exponents, never their size.
func scaled(fs ...*big.Float) (ints []*big.Int, low int) {
	seen := false
	for _, f := range fs {
		if f.Sign() == 0 {
			continue
		}
		if e := f.MantExp(nil) - int(f.MinPrec()); !seen || e < low {
			low, seen = e, true
		}
	}
	ints = make([]*big.Int, len(fs))
	for i, f := range fs {
		ints[i], _ = new(big.Float).SetMantExp(f, -low).Int(nil)
	}

	return ints, low
}

func ballContainsZero(a *ball) bool {
	if a.indeterminate() {
		return true
	}
	v, _ := scaled(&a.mid, &a.rad)

	return v[0].CmpAbs(v[1]) <= 0
}

// ballContains reports whether a ⊇ b.
func ballContains(a, b *ball) bool {
	if a.indeterminate() {
		return true
	}
	if b.indeterminate() {
		return false
	}
	v, _ := scaled(&a.mid, &b.mid, &a.rad, &b.rad)
	d := v[1].Sub(v[1], v[0])
	d.Abs(d).Add(d, v[3])

	return d.Cmp(v[2]) <= 0
}

func ballOverlaps(a, b *ball) bool {
	if a.indeterminate() || b.indeterminate() {
		return true
	}
	v, _ := scaled(&a.mid, &b.mid, &a.rad, &b.rad)
	d := v[1].Sub(v[1], v[0])

	return d.Abs(d).Cmp(v[2].Add(v[2], v[3])) <= 0
}

func (b *ball) setRat(q *big.Rat, prec uint) {
	mid := newMid(ballPrec(prec)).SetRat(q)
	b.store(mid, ratErr(mid, q))
}

// ratErr bounds |m - q| from above at radPrec.
func ratErr(m *big.Float, q *big.Rat) *big.Float {
	if m.Acc() == big.Exact {
		return newRad()
	}
	mr, _ := m.Rat(nil)
	d := new(big.Rat).Sub(mr, q)

	return newRad().SetRat(d.Abs(d))
}

// ballText renders an exact ball as its mid and any other ball as
// "[mid +/- rad]". The printed rad covers both the true radius and the
// decimal rounding of the printed mid, rounded up to five significant digits.
func ballText(b *ball) string {
	if b.indeterminate() {
		return "[+/- inf]"
	}
	if hugeExp(&b.mid) || hugeExp(&b.rad) {
		return hexText(b)
	}
	ms := b.mid.Text('g', -1)
	if b.rad.Sign() == 0 {
		if exactDecimal(ms, &b.mid) {
			return ms
		}
	}
	rad := newRad().Set(&b.rad)
	if printed, ok := new(big.Rat).SetString(ms); ok {
		exact, _ := b.mid.Rat(nil)
		d := printed.Sub(printed, exact)
		rad.Add(rad, newRad().SetRat(d.Abs(d)))
	}
	// Five significant digits round to nearest within a relative 5e-5; the
	// factor 1 + 2^-13 lifts the value above that so the text never shrinks.
	rad.Mul(rad, newRad().SetFloat64(1+1.0/8192))

	return "[" + ms + " +/- " + rad.Text('g', 5) + "]"
}

func hugeExp(f *big.Float) bool {
	if f.Sign() == 0 || f.IsInf() {
		return false
	}
	exp := f.MantExp(nil)

	return exp > maxDecimalExp || exp < -maxDecimalExp
}

// hexText prints mid and rad exactly in 'p' notation. Used for exponents
// whose decimal expansion would be impractically long.
func hexText(b *ball) string {
	ms := b.mid.Text('p', 0)
	if b.rad.Sign() == 0 {
		return ms
	}

	return "[" + ms + " +/- " + b.rad.Text('p', 0) + "]"
}

func exactDecimal(s string, m *big.Float) bool {
	p, ok := new(big.Rat).SetString(s)
	if !ok {
		return false
	}
	e, _ := m.Rat(nil)

	return p.Cmp(e) == 0
}

// parseBall accepts "x" or "[x +/- r]" where x and r are decimal, scientific
// or a/b rationals. Parsing rounds to prec and widens rad by the rounding.
func parseBall(dst *ball, s string, prec uint) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		body := s[1 : len(s)-1]
		parts := strings.Split(body, "+/-")
		if len(parts) != 2 {
			return false
		}
		ms, rs := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if rs == "inf" && ms == "" {
			dst.setIndeterminate()
			return true
		}
		if isHex(ms) || isHex(rs) {
			return parseHexBall(dst, ms, rs, prec)
		}
		m, ok := parseRat(ms)
		if !ok {
			return false
		}
		r, ok := parseRat(rs)
		if !ok || r.Sign() < 0 {
			return false
		}
		dst.setRat(m, prec)
		dst.rad.Add(&dst.rad, newRad().SetRat(r))

		return true
	}
	if isHex(s) {
		return parseHexBall(dst, s, "0", prec)
	}
	q, ok := parseRat(s)
	if !ok {
		return false
	}
	dst.setRat(q, prec)

	return true
}

func isHex(s string) bool {
	return strings.HasPrefix(strings.TrimLeft(s, "+-"), "0x")
}

// parseHexBall reads mid and rad in 'p' notation through big.Float so huge
// exponents never go through big.Rat.
func parseHexBall(dst *ball, ms, rs string, prec uint) bool {
	if strings.ContainsAny(ms+rs, " \t") {
		return false
	}
	mid, _, err := newMid(ballPrec(prec)).Parse(ms, 0)
	if err != nil || mid.IsInf() {
		return false
	}
	rad, _, err := newRad().Parse(rs, 0)
	if err != nil || rad.IsInf() || rad.Sign() < 0 {
		return false
	}
	dst.store(mid, rad.Add(rad, roundErr(mid, mid.Acc())))

	return true
}

func parseRat(s string) (*big.Rat, bool) {
	if s == "" || strings.ContainsAny(s, " \t") {
		return nil, false
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return nil, false
	}

	return new(big.Rat).SetString(s)
}

// ---------- exported API ----------

// Arb is a foreign real ball.
type Arb struct {
	header
	b ball
}

// ArbInit allocates the exact zero ball.
func ArbInit() *Arb {
	a := &Arb{}
	a.b.mid.SetPrec(2)
	a.b.rad.SetPrec(radPrec).SetMode(big.ToPositiveInf)
	a.init(KindArb)

	return a
}

// ArbClear releases a.
func ArbClear(a *Arb) { a.clear() }

// ArbSet sets dst = src.
func ArbSet(dst, src *Arb) {
	dst.must()
	src.must()
	dst.b.set(&src.b)
}

// ArbZero sets dst to the exact zero.
func ArbZero(dst *Arb) {
	dst.must()
	dst.b.mid.SetInt64(0)
	dst.b.rad.SetInt64(0)
}

// ArbIndeterminate sets dst to [0 +/- inf].
func ArbIndeterminate(dst *Arb) {
	dst.must()
	dst.b.setIndeterminate()
}

// ArbSetSi sets dst = n rounded to prec bits.
func ArbSetSi(dst *Arb, n int64, prec uint) {
	dst.must()
	dst.b.setExact(new(big.Float).SetInt64(n), ballPrec(prec))
}

// ArbSetD sets dst = f rounded to prec bits. NaN and infinities give the
// indeterminate ball.
func ArbSetD(dst *Arb, f float64, prec uint) {
	dst.must()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		dst.b.setIndeterminate()
		return
	}
	dst.b.setExact(big.NewFloat(f), ballPrec(prec))
}

// ArbSetFmpz sets dst = z rounded to prec bits.
func ArbSetFmpz(dst *Arb, z *Fmpz, prec uint) {
	dst.must()
	z.must()
	dst.b.setExact(new(big.Float).SetInt(&z.v), ballPrec(prec))
}

// ArbSetFmpq sets dst to an enclosure of q at prec bits.
func ArbSetFmpq(dst *Arb, q *Fmpq, prec uint) {
	dst.must()
	q.must()
	dst.b.setRat(q.rat(), prec)
}

// ArbSetStr parses s (see parseBall) and reports success; dst is unchanged
// on failure.
func ArbSetStr(dst *Arb, s string, prec uint) bool {
	dst.must()
	var b ball
	b.rad.SetPrec(radPrec).SetMode(big.ToPositiveInf)
	if !parseBall(&b, s, prec) {
		return false
	}
	dst.b.set(&b)

	return true
}

// ArbSetMidRad sets dst = [mid +/- rad] with mid rounded to prec. Panics
// when rad is negative or not finite.
func ArbSetMidRad(dst *Arb, mid, rad *big.Float, prec uint) {
	dst.must()
	if rad.Sign() < 0 || rad.IsInf() || mid.IsInf() {
		panic(panicBadRadius)
	}
	dst.b.setExact(mid, ballPrec(prec))
	dst.b.rad.Add(&dst.b.rad, upper(rad))
}

// ArbMid returns a copy of the midpoint.
func ArbMid(a *Arb) *big.Float {
	a.must()

	return new(big.Float).Copy(&a.b.mid)
}

// ArbRad returns a copy of the radius (+Inf when indeterminate).
func ArbRad(a *Arb) *big.Float {
	a.must()

	return new(big.Float).Copy(&a.b.rad)
}

// ArbGetD returns the midpoint as a float64 and whether that was exact.
func ArbGetD(a *Arb) (float64, big.Accuracy) {
	a.must()

	return a.b.mid.Float64()
}

// ArbGetStr renders a (see ballText).
func ArbGetStr(a *Arb) string {
	a.must()

	return ballText(&a.b)
}

// ArbAdd sets dst = a + b.
func ArbAdd(dst, a, b *Arb, prec uint) {
	dst.must()
	a.must()
	b.must()
	ballAdd(&dst.b, &a.b, &b.b, prec, false)
}

// ArbSub sets dst = a - b.
func ArbSub(dst, a, b *Arb, prec uint) {
	dst.must()
	a.must()
	b.must()
	ballAdd(&dst.b, &a.b, &b.b, prec, true)
}

// ArbMul sets dst = a * b.
func ArbMul(dst, a, b *Arb, prec uint) {
	dst.must()
	a.must()
	b.must()
	ballMul(&dst.b, &a.b, &b.b, prec)
}

// ArbDiv sets dst = a / b; a divisor containing zero gives the
// indeterminate ball.
func ArbDiv(dst, a, b *Arb, prec uint) {
	dst.must()
	a.must()
	b.must()
	ballDiv(&dst.b, &a.b, &b.b, prec)
}

func siBall(n int64) *ball {
	var b ball
	b.mid.SetPrec(64).SetInt64(n)
	b.rad.SetPrec(radPrec).SetMode(big.ToPositiveInf)

	return &b
}

// ArbAddSi sets dst = a + n.
func ArbAddSi(dst, a *Arb, n int64, prec uint) {
	dst.must()
	a.must()
	ballAdd(&dst.b, &a.b, siBall(n), prec, false)
}

// ArbSubSi sets dst = a - n.
func ArbSubSi(dst, a *Arb, n int64, prec uint) {
	dst.must()
	a.must()
	ballAdd(&dst.b, &a.b, siBall(n), prec, true)
}

// ArbSiSub sets dst = n - a.
func ArbSiSub(dst *Arb, n int64, a *Arb, prec uint) {
	dst.must()
	a.must()
	ballAdd(&dst.b, siBall(n), &a.b, prec, true)
}

// ArbMulSi sets dst = a * n.
func ArbMulSi(dst, a *Arb, n int64, prec uint) {
	dst.must()
	a.must()
	ballMul(&dst.b, &a.b, siBall(n), prec)
}

// ArbDivSi sets dst = a / n.
func ArbDivSi(dst, a *Arb, n int64, prec uint) {
	dst.must()
	a.must()
	ballDiv(&dst.b, &a.b, siBall(n), prec)
}

// ArbSiDiv sets dst = n / a.
func ArbSiDiv(dst *Arb, n int64, a *Arb, prec uint) {
	dst.must()
	a.must()
	ballDiv(&dst.b, siBall(n), &a.b, prec)
}

// ArbNeg sets dst = -a.
func ArbNeg(dst, a *Arb) {
	dst.must()
	a.must()
	ballNeg(&dst.b, &a.b)
}

// ArbIsFinite reports whether rad is finite.
func ArbIsFinite(a *Arb) bool {
	a.must()

	return !a.b.indeterminate()
}

// ArbIsExact reports rad == 0.
func ArbIsExact(a *Arb) bool {
	a.must()

	return a.b.rad.Sign() == 0
}

// ArbEqual reports structural equality: same mid and same rad.
func ArbEqual(a, b *Arb) bool {
	a.must()
	b.must()

	return a.b.mid.Cmp(&b.b.mid) == 0 && a.b.rad.Cmp(&b.b.rad) == 0
}

// ArbContains reports a ⊇ b.
func ArbContains(a, b *Arb) bool {
	a.must()
	b.must()

	return ballContains(&a.b, &b.b)
}

// ArbContainsFmpq reports q ∈ a.
func ArbContainsFmpq(a *Arb, q *Fmpq) bool {
	a.must()
	q.must()
	if a.b.indeterminate() {
		return true
	}
	v, low := scaled(&a.b.mid, &a.b.rad)
	x := q.rat()
	n := new(big.Int).Set(x.Num())
	m, r := v[0].Mul(v[0], x.Denom()), v[1].Mul(v[1], x.Denom())
	if low >= 0 {
		m.Lsh(m, uint(low))
		r.Lsh(r, uint(low))
	} else {
		n.Lsh(n, uint(-low))
	}
	m.Sub(m, n)

	return m.Abs(m).Cmp(r) <= 0
}

// ArbOverlaps reports a ∩ b ≠ ∅.
func ArbOverlaps(a, b *Arb) bool {
	a.must()
	b.must()

	return ballOverlaps(&a.b, &b.b)
}

// ArbContainsZero reports 0 ∈ a.
func ArbContainsZero(a *Arb) bool {
	a.must()

	return ballContainsZero(&a.b)
}

// ArbCanonical returns the mid and rad encodings used for hashing and
// serialization.
func ArbCanonical(a *Arb) (mid, rad []byte) {
	a.must()
	mid, _ = a.b.mid.GobEncode()
	rad, _ = a.b.rad.GobEncode()

	return mid, rad
}

// ArbSetCanonical restores a from ArbCanonical output at working precision
// prec. Encodings carrying a wider midpoint than prec are rejected; narrower
// ones widen exactly.
func ArbSetCanonical(dst *Arb, mid, rad []byte, prec uint) bool {
	dst.must()
	var b ball
	if b.mid.GobDecode(mid) != nil || b.rad.GobDecode(rad) != nil {
		return false
	}
	if b.rad.Sign() < 0 || b.mid.IsInf() || (b.rad.IsInf() && b.mid.Sign() != 0) {
		return false
	}
	prec = ballPrec(prec)
	if b.mid.Prec() > prec {
		return false
	}
	m := newMid(prec).Set(&b.mid)
	dst.b.store(m, newRad().Set(&b.rad))

	return true
}
