// SPDX-License-Identifier: MIT

// Package backend - acb: complex balls re + im*I with independent real and
// imaginary enclosures.
package backend

import (
	"math/big"
	"strings"
)

// Acb is a foreign complex ball.
type Acb struct {
	header
	re, im ball
}

// AcbInit allocates the exact complex zero.
func AcbInit() *Acb {
	a := &Acb{}
	for _, b := range []*ball{&a.re, &a.im} {
		b.mid.SetPrec(2)
		b.rad.SetPrec(radPrec).SetMode(big.ToPositiveInf)
	}
	a.init(KindAcb)

	return a
}

// AcbClear releases a.
func AcbClear(a *Acb) { a.clear() }

// AcbSet sets dst = src.
func AcbSet(dst, src *Acb) {
	dst.must()
	src.must()
	dst.re.set(&src.re)
	dst.im.set(&src.im)
}

// AcbSetArb sets dst = re + 0*I.
func AcbSetArb(dst *Acb, re *Arb) {
	dst.must()
	re.must()
	dst.re.set(&re.b)
	dst.im.setExact(new(big.Float), 2)
}

// AcbSetArbArb sets dst = re + im*I.
func AcbSetArbArb(dst *Acb, re, im *Arb) {
	dst.must()
	re.must()
	im.must()
	dst.re.set(&re.b)
	dst.im.set(&im.b)
}

// AcbSetSi sets dst = n.
func AcbSetSi(dst *Acb, n int64, prec uint) {
	dst.must()
	dst.re.setExact(new(big.Float).SetInt64(n), ballPrec(prec))
	dst.im.setExact(new(big.Float), ballPrec(prec))
}

// AcbGetReal copies the real part into dst.
func AcbGetReal(dst *Arb, a *Acb) {
	dst.must()
	a.must()
	dst.b.set(&a.re)
}

// AcbGetImag copies the imaginary part into dst.
func AcbGetImag(dst *Arb, a *Acb) {
	dst.must()
	a.must()
	dst.b.set(&a.im)
}

// AcbAdd sets dst = a + b.
func AcbAdd(dst, a, b *Acb, prec uint) {
	dst.must()
	a.must()
	b.must()
	ballAdd(&dst.re, &a.re, &b.re, prec, false)
	ballAdd(&dst.im, &a.im, &b.im, prec, false)
}

// AcbSub sets dst = a - b.
func AcbSub(dst, a, b *Acb, prec uint) {
	dst.must()
	a.must()
	b.must()
	ballAdd(&dst.re, &a.re, &b.re, prec, true)
	ballAdd(&dst.im, &a.im, &b.im, prec, true)
}

// AcbMul sets dst = a * b.
func AcbMul(dst, a, b *Acb, prec uint) {
	dst.must()
	a.must()
	b.must()
	var ac, bd, ad, bc, re, im ball
	for _, t := range []*ball{&ac, &bd, &ad, &bc, &re, &im} {
		t.rad.SetPrec(radPrec).SetMode(big.ToPositiveInf)
	}
	ballMul(&ac, &a.re, &b.re, prec)
	ballMul(&bd, &a.im, &b.im, prec)
	ballMul(&ad, &a.re, &b.im, prec)
	ballMul(&bc, &a.im, &b.re, prec)
	ballAdd(&re, &ac, &bd, prec, true)
	ballAdd(&im, &ad, &bc, prec, false)
	dst.re.set(&re)
	dst.im.set(&im)
}

// AcbDiv sets dst = a / b; a divisor whose squared modulus ball contains
// zero gives an indeterminate result.
func AcbDiv(dst, a, b *Acb, prec uint) {
	dst.must()
	a.must()
	b.must()
	var cc, dd, den, ac, bd, bc, ad, nre, nim, re, im ball
	for _, t := range []*ball{&cc, &dd, &den, &ac, &bd, &bc, &ad, &nre, &nim, &re, &im} {
		t.rad.SetPrec(radPrec).SetMode(big.ToPositiveInf)
	}
	wp := ballPrec(prec) + 16
	ballMul(&cc, &b.re, &b.re, wp)
	ballMul(&dd, &b.im, &b.im, wp)
	ballAdd(&den, &cc, &dd, wp, false)
	ballMul(&ac, &a.re, &b.re, wp)
	ballMul(&bd, &a.im, &b.im, wp)
	ballMul(&bc, &a.im, &b.re, wp)
	ballMul(&ad, &a.re, &b.im, wp)
	ballAdd(&nre, &ac, &bd, wp, false)
	ballAdd(&nim, &bc, &ad, wp, true)
	ballDiv(&re, &nre, &den, prec)
	ballDiv(&im, &nim, &den, prec)
	dst.re.set(&re)
	dst.im.set(&im)
}

// AcbNeg sets dst = -a.
func AcbNeg(dst, a *Acb) {
	dst.must()
	a.must()
	ballNeg(&dst.re, &a.re)
	ballNeg(&dst.im, &a.im)
}

// AcbIsFinite reports whether both parts have finite radii.
func AcbIsFinite(a *Acb) bool {
	a.must()

	return !a.re.indeterminate() && !a.im.indeterminate()
}

// AcbIsExact reports whether both radii are zero.
func AcbIsExact(a *Acb) bool {
	a.must()

	return a.re.rad.Sign() == 0 && a.im.rad.Sign() == 0
}

// AcbEqual reports structural equality of both parts.
func AcbEqual(a, b *Acb) bool {
	a.must()
	b.must()

	return a.re.mid.Cmp(&b.re.mid) == 0 && a.re.rad.Cmp(&b.re.rad) == 0 &&
		a.im.mid.Cmp(&b.im.mid) == 0 && a.im.rad.Cmp(&b.im.rad) == 0
}

// AcbContains reports a ⊇ b componentwise.
func AcbContains(a, b *Acb) bool {
	a.must()
	b.must()

	return ballContains(&a.re, &b.re) && ballContains(&a.im, &b.im)
}

// AcbOverlaps reports whether a and b intersect.
func AcbOverlaps(a, b *Acb) bool {
	a.must()
	b.must()

	return ballOverlaps(&a.re, &b.re) && ballOverlaps(&a.im, &b.im)
}

// AcbContainsZero reports 0 ∈ a.
func AcbContainsZero(a *Acb) bool {
	a.must()

	return ballContainsZero(&a.re) && ballContainsZero(&a.im)
}

// AcbGetStr renders a as "re + im*I".
func AcbGetStr(a *Acb) string {
	a.must()
	var sb strings.Builder
	sb.WriteString(ballText(&a.re))
	sb.WriteString(" + ")
	sb.WriteString(ballText(&a.im))
	sb.WriteString("*I")

	return sb.String()
}

// AcbCanonical returns the encodings of re.mid, re.rad, im.mid, im.rad.
func AcbCanonical(a *Acb) [4][]byte {
	a.must()
	var out [4][]byte
	out[0], _ = a.re.mid.GobEncode()
	out[1], _ = a.re.rad.GobEncode()
	out[2], _ = a.im.mid.GobEncode()
	out[3], _ = a.im.rad.GobEncode()

	return out
}

// AcbSetCanonical restores dst from AcbCanonical output at working
// precision prec, see ArbSetCanonical.
func AcbSetCanonical(dst *Acb, enc [4][]byte, prec uint) bool {
	dst.must()
	re, im := ArbInit(), ArbInit()
	defer ArbClear(re)
	defer ArbClear(im)
	if !ArbSetCanonical(re, enc[0], enc[1], prec) || !ArbSetCanonical(im, enc[2], enc[3], prec) {
		return false
	}
	dst.re.set(&re.b)
	dst.im.set(&im.b)

	return true
}
