// SPDX-License-Identifier: MIT

package backend_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/backend"
	"github.com/stretchr/testify/require"
)

func fqTexts(c [][]*big.Int) [][]string {
	out := make([][]string, len(c))
	for i, e := range c {
		out[i] = texts(e)
	}

	return out
}

func gf(t *testing.T, p int64, k int) *backend.FqCtx {
	t.Helper()
	z := backend.FmpzInit()
	defer backend.FmpzClear(z)
	backend.FmpzSetSi(z, p)
	ctx := backend.FqCtxInit(z, k)
	t.Cleanup(func() { backend.FqCtxClear(ctx) })

	return ctx
}

// TestFqPolyArithmetic factors x^2 + x + 1 over GF(4), where o^2 = o + 1.
func TestFqPolyArithmetic(t *testing.T) {
	gf4 := gf(t, 2, 2)
	a, b, c, q, r := backend.FqPolyInit(gf4), backend.FqPolyInit(gf4), backend.FqPolyInit(gf4),
		backend.FqPolyInit(gf4), backend.FqPolyInit(gf4)
	defer func() {
		for _, p := range []*backend.FqPoly{a, b, c, q, r} {
			backend.FqPolyClear(p)
		}
	}()
	backend.FqPolySetCoeffs(a, [][]*big.Int{ints(0, 1), ints(1)})    // x + o
	backend.FqPolySetCoeffs(b, [][]*big.Int{ints(1, 1), ints(3, 2)}) // x + o + 1, reduced mod 2
	backend.FqPolyMul(c, a, b)
	require.Equal(t, [][]string{{"1"}, {"1"}, {"1"}}, fqTexts(backend.FqPolyCoeffs(c)))

	backend.FqPolyDivRem(q, r, c, a)
	require.True(t, backend.FqPolyEqual(q, b))
	require.Zero(t, backend.FqPolyLength(r))

	backend.FqPolyGcd(q, c, a)
	require.True(t, backend.FqPolyEqual(q, a))

	o, v := backend.FqInit(gf4), backend.FqInit(gf4)
	defer backend.FqClear(o)
	defer backend.FqClear(v)
	backend.FqGen(o)
	backend.FqPolyEvaluate(v, c, o)
	require.True(t, backend.FqIsZero(v))

	backend.FqPolyPow(q, a, 2)
	require.Equal(t, [][]string{{"1", "1"}, {}, {"1"}}, fqTexts(backend.FqPolyCoeffs(q)))

	backend.FqPolyDerivative(q, c)
	require.Equal(t, [][]string{{"1"}}, fqTexts(backend.FqPolyCoeffs(q)))

	backend.FqPolyScalarMulSi(q, c, 2)
	require.Zero(t, backend.FqPolyLength(q))
	require.Panics(t, func() { backend.FqPolyScalarDivSi(q, c, 2) })
	require.Panics(t, func() { backend.FqPolyDiv(q, c, r) })

	backend.FqPolyScalarMulFq(q, c, o)
	backend.FqPolyGetCoeff(v, q, 2)
	require.True(t, backend.FqEqual(v, o))
	backend.FqPolyMakeMonic(q, q)
	require.True(t, backend.FqPolyEqual(q, c))

	gf9 := gf(t, 3, 2)
	other := backend.FqPolyInit(gf9)
	defer backend.FqPolyClear(other)
	require.Panics(t, func() { backend.FqPolyAdd(q, a, other) })
}

// TestFqMatDetInv checks elimination over GF(4).
func TestFqMatDetInv(t *testing.T) {
	gf4 := gf(t, 2, 2)
	m, inv, prod, id := backend.FqMatInit(2, 2, gf4), backend.FqMatInit(2, 2, gf4),
		backend.FqMatInit(2, 2, gf4), backend.FqMatInit(2, 2, gf4)
	defer func() {
		for _, a := range []*backend.FqMat{m, inv, prod, id} {
			backend.FqMatClear(a)
		}
	}()
	backend.FqMatSetEntries(m, [][]*big.Int{ints(0, 1), ints(1), ints(1), ints(0, 1)})
	det := backend.FqInit(gf4)
	defer backend.FqClear(det)
	backend.FqMatDet(det, m) // o^2 - 1 = o
	require.Equal(t, []string{"0", "1"}, texts(backend.FqCoeffs(det)))

	require.True(t, backend.FqMatInv(inv, m))
	backend.FqMatMul(prod, m, inv)
	backend.FqMatOne(id)
	require.True(t, backend.FqMatEqual(prod, id))

	backend.FqMatSetEntries(m, [][]*big.Int{ints(1), ints(0, 1), ints(0, 1), ints(1, 1)})
	backend.FqMatDet(det, m)
	require.True(t, backend.FqIsZero(det))
	require.False(t, backend.FqMatInv(inv, m))

	backend.FqMatSub(prod, prod, prod)
	require.True(t, backend.FqMatIsZero(prod))
	require.Panics(t, func() { backend.FqMatEntry(det, m, 2, 0) })
}

// TestFmpzPolyQCanonical verifies reduction to coprime primitive form.
func TestFmpzPolyQCanonical(t *testing.T) {
	a, b, c := backend.FmpzPolyQInit(), backend.FmpzPolyQInit(), backend.FmpzPolyQInit()
	num, den := backend.FmpzPolyInit(), backend.FmpzPolyInit()
	defer func() {
		for _, f := range []*backend.FmpzPolyQ{a, b, c} {
			backend.FmpzPolyQClear(f)
		}
		backend.FmpzPolyClear(num)
		backend.FmpzPolyClear(den)
	}()
	parts := func(f *backend.FmpzPolyQ) [2][]string {
		backend.FmpzPolyQNumerator(num, f)
		backend.FmpzPolyQDenominator(den, f)
		return [2][]string{texts(backend.FmpzPolyCoeffs(num)), texts(backend.FmpzPolyCoeffs(den))}
	}

	backend.FmpzPolyQSetFrac(a, ints(-1, 0, 1), ints(2, 2)) // (x^2 - 1)/(2x + 2)
	require.Equal(t, [2][]string{{"-1", "1"}, {"2"}}, parts(a))

	backend.FmpzPolyQSetFrac(b, ints(1), ints(0, -1)) // 1/(-x)
	require.Equal(t, [2][]string{{"-1"}, {"0", "1"}}, parts(b))

	backend.FmpzPolyQSetFrac(c, ints(4, 2), ints(0, 4)) // (2x + 4)/(4x)
	require.Equal(t, [2][]string{{"2", "1"}, {"0", "2"}}, parts(c))

	backend.FmpzPolyQSetFrac(b, ints(1), ints(0, 1))
	backend.FmpzPolyQSetFrac(c, ints(1), ints(1, 1))
	backend.FmpzPolyQAdd(c, b, c) // 1/x + 1/(x + 1)
	require.Equal(t, [2][]string{{"1", "2"}, {"0", "1", "1"}}, parts(c))

	backend.FmpzPolyQDerivative(c, b)
	require.Equal(t, [2][]string{{"-1"}, {"0", "0", "1"}}, parts(c))

	backend.FmpzPolyQInv(c, a)
	require.Equal(t, [2][]string{{"2"}, {"-1", "1"}}, parts(c))
	backend.FmpzPolyQMul(c, c, a)
	require.True(t, backend.FmpzPolyQIsOne(c))

	backend.FmpzPolyQPow(c, a, 2)
	require.Equal(t, [2][]string{{"1", "-2", "1"}, {"4"}}, parts(c))

	backend.FmpzPolyQSub(c, a, a)
	require.True(t, backend.FmpzPolyQIsZero(c))
	require.Equal(t, [2][]string{{}, {"1"}}, parts(c))

	at, out := backend.FmpqInit(), backend.FmpqInit()
	defer backend.FmpqClear(at)
	defer backend.FmpqClear(out)
	backend.FmpqSetSi(at, 3, 1)
	require.True(t, backend.FmpzPolyQEvaluate(out, a, at))
	require.Equal(t, "1", backend.FmpqGetRat(out).RatString())
	backend.FmpqSetSi(at, 0, 1)
	require.False(t, backend.FmpzPolyQEvaluate(out, b, at))

	require.Panics(t, func() { backend.FmpzPolyQDiv(a, a, c) })
	require.Panics(t, func() { backend.FmpzPolyQSetFrac(a, ints(1), nil) })
}
