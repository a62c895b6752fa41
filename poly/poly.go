// SPDX-License-Identifier: MIT

// Package poly - shared plumbing of the polynomial types.
//
// Every polynomial owns one foreign polynomial structure and one retained
// handle on a univariate polynomial ring Context. The ring's base selects
// the type:
//   - algebra.BaseInteger  -> IntPoly
//   - algebra.BaseRational -> RatPoly
//   - algebra.BaseIntMod   -> ModPoly
//   - algebra.BaseFiniteField -> FqPoly
//
// Coefficients travel as ascending slices; the backend strips trailing
// zeros, so Degree of the zero polynomial is -1.
package poly

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
)

func expectRing(c *algebra.Context, base algebra.Base) error {
	return c.Expect(algebra.KindPolyRing, base)
}

// parse maps a malformed printed form onto ErrParse.
func parse[T any](s, v string, fn func(s, v string) ([]T, error)) ([]T, error) {
	c, err := fn(s, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", algebra.ErrParse, err)
	}

	return c, nil
}

func int64s(c []int64) []*big.Int {
	out := make([]*big.Int, len(c))
	for i, v := range c {
		out[i] = big.NewInt(v)
	}

	return out
}

// normalized reports whether an ascending coefficient payload has no
// trailing zero, the only form records carry.
func normalized(ps [][]byte, width int) bool {
	n := len(ps)
	if n == 0 {
		return true
	}
	last := ps[n-width]
	// A canonical zero is the single sign byte.
	return len(last) > 1
}

func decodeErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{algebra.ErrDecode}, args...)...)
}

func sameBytes(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i]) != string(b[i]) {
			return false
		}
	}

	return true
}
