// SPDX-License-Identifier: MIT

// Package backend - dense univariate polynomial kernels over a ring[E].
//
// Representation: c[i] is the coefficient of x^i; the slice is normalized
// (no trailing zeros), so the zero polynomial is the empty slice and
// degree = len(c) - 1.
package backend

import "math/big"

func polyNorm[E any](r ring[E], c []E) []E {
	n := len(c)
	for n > 0 && r.isZero(c[n-1]) {
		n--
	}

	return c[:n]
}

func polyAdd[E any](r ring[E], a, b []E) []E {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]E, len(a))
	for i := range a {
		if i < len(b) {
			out[i] = r.add(a[i], b[i])
		} else {
			out[i] = r.clone(a[i])
		}
	}

	return polyNorm(r, out)
}

func polyNeg[E any](r ring[E], a []E) []E {
	out := make([]E, len(a))
	for i := range a {
		out[i] = r.neg(a[i])
	}

	return out
}

func polySub[E any](r ring[E], a, b []E) []E {
	return polyAdd(r, a, polyNeg(r, b))
}

func polyMul[E any](r ring[E], a, b []E) []E {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]E, len(a)+len(b)-1)
	for i := range out {
		out[i] = r.zero()
	}
	for i := range a {
		if r.isZero(a[i]) {
			continue
		}
		for j := range b {
			out[i+j] = r.add(out[i+j], r.mul(a[i], b[j]))
		}
	}

	return polyNorm(r, out)
}

func polyScale[E any](r ring[E], a []E, s E) []E {
	out := make([]E, len(a))
	for i := range a {
		out[i] = r.mul(a[i], s)
	}

	return polyNorm(r, out)
}

// polyAddConst returns a + s (constant term only).
func polyAddConst[E any](r ring[E], a []E, s E) []E {
	if len(a) == 0 {
		return polyNorm(r, []E{r.clone(s)})
	}
	out := cloneAll(r, a)
	out[0] = r.add(out[0], s)

	return polyNorm(r, out)
}

// polyDivRem performs Euclidean division. ok is false when the leading
// coefficient of b is not invertible or b is zero.
func polyDivRem[E any](r ring[E], a, b []E) (q, rem []E, ok bool) {
	if len(b) == 0 {
		return nil, nil, false
	}
	lead, ok := r.inv(b[len(b)-1])
	if !ok {
		return nil, nil, false
	}
	rem = cloneAll(r, a)
	if len(a) < len(b) {
		return nil, rem, true
	}
	q = make([]E, len(a)-len(b)+1)
	for i := range q {
		q[i] = r.zero()
	}
	for len(rem) >= len(b) {
		shift := len(rem) - len(b)
		coef := r.mul(rem[len(rem)-1], lead)
		q[shift] = coef
		for j := range b {
			rem[shift+j] = r.sub(rem[shift+j], r.mul(coef, b[j]))
		}
		// The leading term cancels exactly; trim it even if the ring did not
		// return a canonical zero.
		rem = polyNorm(r, rem[:len(rem)-1])
	}

	return polyNorm(r, q), rem, true
}

// polyMonic scales a so that its leading coefficient is one.
func polyMonic[E any](r ring[E], a []E) ([]E, bool) {
	if len(a) == 0 {
		return nil, true
	}
	inv, ok := r.inv(a[len(a)-1])
	if !ok {
		return nil, false
	}

	return polyScale(r, a, inv), true
}

// polyXgcd returns monic g = gcd(a, b) and s, t with s*a + t*b = g.
// ok is false when a non-invertible leading coefficient is met.
func polyXgcd[E any](r ring[E], a, b []E) (g, s, t []E, ok bool) {
	oldR, curR := cloneAll(r, a), cloneAll(r, b)
	oldS, curS := []E{r.one()}, []E(nil)
	oldT, curT := []E(nil), []E{r.one()}
	oldS = polyNorm(r, oldS)
	curT = polyNorm(r, curT)
	for len(curR) > 0 {
		q, rem, good := polyDivRem(r, oldR, curR)
		if !good {
			return nil, nil, nil, false
		}
		oldR, curR = curR, rem
		oldS, curS = curS, polySub(r, oldS, polyMul(r, q, curS))
		oldT, curT = curT, polySub(r, oldT, polyMul(r, q, curT))
	}
	if len(oldR) == 0 {
		return nil, nil, nil, true
	}
	inv, good := r.inv(oldR[len(oldR)-1])
	if !good {
		return nil, nil, nil, false
	}

	return polyScale(r, oldR, inv), polyScale(r, oldS, inv), polyScale(r, oldT, inv), true
}

func polyPow[E any](r ring[E], a []E, e uint64) []E {
	result := polyNorm(r, []E{r.one()})
	base := cloneAll(r, a)
	for e > 0 {
		if e&1 == 1 {
			result = polyMul(r, result, base)
		}
		e >>= 1
		if e > 0 {
			base = polyMul(r, base, base)
		}
	}

	return result
}

// polyPowMod returns a^e mod m; m must have an invertible leading coefficient.
func polyPowMod[E any](r ring[E], a []E, e *big.Int, m []E) []E {
	_, base, _ := polyDivRem(r, a, m)
	_, result, _ := polyDivRem(r, polyNorm(r, []E{r.one()}), m)
	for i := e.BitLen() - 1; i >= 0; i-- {
		_, result, _ = polyDivRem(r, polyMul(r, result, result), m)
		if e.Bit(i) == 1 {
			_, result, _ = polyDivRem(r, polyMul(r, result, base), m)
		}
	}

	return result
}

func polyEval[E any](r ring[E], a []E, x E) E {
	acc := r.zero()
	for i := len(a) - 1; i >= 0; i-- {
		acc = r.add(r.mul(acc, x), a[i])
	}

	return acc
}

func polyEqual[E any](r ring[E], a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !r.equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

// polyDerivative is used by the squarefree checks of field construction.
func polyDerivative[E any](r ring[E], a []E) []E {
	if len(a) <= 1 {
		return nil
	}
	out := make([]E, len(a)-1)
	for i := 1; i < len(a); i++ {
		out[i-1] = r.mul(a[i], r.fromInt64(int64(i)))
	}

	return polyNorm(r, out)
}
