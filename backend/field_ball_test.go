// SPDX-License-Identifier: MIT

package backend_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/backend"
	"github.com/stretchr/testify/require"
)

// TestFqModulusSearch verifies the deterministic defining polynomials.
func TestFqModulusSearch(t *testing.T) {
	p := backend.FmpzInit()
	defer backend.FmpzClear(p)

	backend.FmpzSetSi(p, 2)
	gf4 := backend.FqCtxInit(p, 2)
	defer backend.FqCtxClear(gf4)
	require.Equal(t, []string{"1", "1", "1"}, texts(backend.FqCtxModulus(gf4))) // x^2 + x + 1
	require.Equal(t, "4", backend.FqCtxOrder(gf4).String())

	backend.FmpzSetSi(p, 3)
	gf9 := backend.FqCtxInit(p, 2)
	defer backend.FqCtxClear(gf9)
	require.Equal(t, []string{"1", "0", "1"}, texts(backend.FqCtxModulus(gf9))) // x^2 + 1

	backend.FmpzSetSi(p, 4)
	require.Panics(t, func() { backend.FqCtxInit(p, 2) }) // composite characteristic
}

// TestFqArithmetic verifies generator order and inversion in GF(4).
func TestFqArithmetic(t *testing.T) {
	p := backend.FmpzInit()
	defer backend.FmpzClear(p)
	backend.FmpzSetSi(p, 2)
	ctx := backend.FqCtxInit(p, 2)
	defer backend.FqCtxClear(ctx)

	a, b := backend.FqInit(ctx), backend.FqInit(ctx)
	defer backend.FqClear(a)
	defer backend.FqClear(b)

	backend.FqGen(a)
	backend.FqPowUi(b, a, 3)
	require.True(t, backend.FqIsOne(b)) // the multiplicative group has order 3

	backend.FqInv(b, a)
	backend.FqMul(b, a, b)
	require.True(t, backend.FqIsOne(b))

	backend.FqMul(b, a, a)
	require.Equal(t, []string{"1", "1"}, texts(backend.FqCoeffs(b))) // a^2 = a + 1

	backend.FqZero(b)
	require.Panics(t, func() { backend.FqInv(b, b) })
}

// TestNfInverse verifies inversion in Q(sqrt 2) and zero divisors in Q[x]/(x^2 - 1).
func TestNfInverse(t *testing.T) {
	f := backend.FmpqPolyInit()
	defer backend.FmpqPolyClear(f)
	backend.FmpqPolySetCoeffs(f, rats(-2, 0, 1))
	ctx := backend.NfCtxInit(f)
	defer backend.NfCtxClear(ctx)

	a, b := backend.NfInit(ctx), backend.NfInit(ctx)
	defer backend.NfClear(a)
	defer backend.NfClear(b)
	backend.NfSetCoeffs(a, rats(1, 1)) // 1 + sqrt 2
	backend.NfInv(b, a)
	require.Equal(t, []string{"-1/1", "1/1"}, texts(backend.NfCoeffs(b)))

	backend.FmpqPolySetCoeffs(f, rats(-1, 0, 1))
	split := backend.NfCtxInit(f)
	defer backend.NfCtxClear(split)
	z := backend.NfInit(split)
	defer backend.NfClear(z)
	backend.NfSetCoeffs(z, rats(1, 1)) // 1 + x divides x^2 - 1
	require.False(t, backend.NfIsInvertible(z))

	backend.FmpqPolySetCoeffs(f, rats(1, 2, 1))
	require.Panics(t, func() { backend.NfCtxInit(f) }) // (x + 1)^2
}

// TestArbEnclosure verifies that rounded results still contain the exact value.
func TestArbEnclosure(t *testing.T) {
	one, three, third := backend.ArbInit(), backend.ArbInit(), backend.ArbInit()
	defer backend.ArbClear(one)
	defer backend.ArbClear(three)
	defer backend.ArbClear(third)

	backend.ArbSetSi(one, 1, 53)
	backend.ArbSetSi(three, 3, 53)
	require.True(t, backend.ArbIsExact(three))
	require.Equal(t, "3", backend.ArbGetStr(three))

	backend.ArbDiv(third, one, three, 53)
	require.False(t, backend.ArbIsExact(third))

	q := backend.FmpqInit()
	defer backend.FmpqClear(q)
	backend.FmpqSetSi(q, 1, 3)
	require.True(t, backend.ArbContainsFmpq(third, q))

	// the printed form parses back to an enclosure of the original
	parsed := backend.ArbInit()
	defer backend.ArbClear(parsed)
	require.True(t, backend.ArbSetStr(parsed, backend.ArbGetStr(third), 53))
	require.True(t, backend.ArbContains(parsed, third))
	require.True(t, backend.ArbContainsFmpq(parsed, q))
}

// TestArbDivisionByZeroBall verifies that a divisor containing zero is absorbed.
func TestArbDivisionByZeroBall(t *testing.T) {
	x, y := backend.ArbInit(), backend.ArbInit()
	defer backend.ArbClear(x)
	defer backend.ArbClear(y)

	require.True(t, backend.ArbSetStr(x, "[0 +/- 1]", 64))
	require.True(t, backend.ArbContainsZero(x))
	backend.ArbDiv(y, x, x, 64)
	require.False(t, backend.ArbIsFinite(y))
	require.Equal(t, "[+/- inf]", backend.ArbGetStr(y))

	backend.ArbAddSi(y, y, 1, 64)
	require.False(t, backend.ArbIsFinite(y)) // indeterminate absorbs

	require.False(t, backend.ArbSetStr(x, "[1 +/- -1]", 64))
	require.False(t, backend.ArbSetStr(x, "abc", 64))

	require.Panics(t, func() { backend.ArbSetMidRad(x, big.NewFloat(1), big.NewFloat(-1), 64) })
}

// TestAcbProduct verifies exact complex multiplication and display.
func TestAcbProduct(t *testing.T) {
	re, im := backend.ArbInit(), backend.ArbInit()
	defer backend.ArbClear(re)
	defer backend.ArbClear(im)
	a, b := backend.AcbInit(), backend.AcbInit()
	defer backend.AcbClear(a)
	defer backend.AcbClear(b)

	backend.ArbSetSi(re, 1, 64)
	backend.ArbSetSi(im, 2, 64)
	backend.AcbSetArbArb(a, re, im)
	backend.ArbSetSi(re, 3, 64)
	backend.ArbSetSi(im, 4, 64)
	backend.AcbSetArbArb(b, re, im)

	backend.AcbMul(a, a, b, 64)
	require.True(t, backend.AcbIsExact(a))
	require.Equal(t, "-5 + 10*I", backend.AcbGetStr(a))

	backend.AcbDiv(a, a, b, 64) // back to 1 + 2i, enclosed
	backend.ArbSetSi(re, 1, 64)
	backend.ArbSetSi(im, 2, 64)
	backend.AcbSetArbArb(b, re, im)
	require.True(t, backend.AcbContains(a, b))
}

// TestArbCanonicalPrecision: restoring widens a narrower midpoint exactly,
// rejects a wider one, and never keeps a negative zero.
func TestArbCanonicalPrecision(t *testing.T) {
	x := backend.ArbInit()
	defer backend.ArbClear(x)

	narrow, err := new(big.Float).SetPrec(8).SetInt64(5).GobEncode()
	require.NoError(t, err)
	rad, err := new(big.Float).GobEncode()
	require.NoError(t, err)
	require.True(t, backend.ArbSetCanonical(x, narrow, rad, 64))
	require.Equal(t, uint(64), backend.ArbMid(x).Prec())
	require.Equal(t, "5", backend.ArbGetStr(x))

	wide, err := new(big.Float).SetPrec(128).SetInt64(5).GobEncode()
	require.NoError(t, err)
	require.False(t, backend.ArbSetCanonical(x, wide, rad, 64))

	negZero, err := new(big.Float).SetPrec(64).Neg(new(big.Float)).GobEncode()
	require.NoError(t, err)
	require.True(t, backend.ArbSetCanonical(x, negZero, rad, 64))
	require.False(t, backend.ArbMid(x).Signbit())
}

// TestArbFarExponents: comparisons between balls whose exponents are far
// from zero finish and agree with the arithmetic.
func TestArbFarExponents(t *testing.T) {
	a, b := backend.ArbInit(), backend.ArbInit()
	defer backend.ArbClear(a)
	defer backend.ArbClear(b)

	tiny := new(big.Float).SetMantExp(big.NewFloat(0.75), -400000000)
	backend.ArbSetMidRad(a, tiny, new(big.Float).SetMantExp(big.NewFloat(0.5), -400000001), 64)
	backend.ArbSetMidRad(b, tiny, new(big.Float), 64)

	require.True(t, backend.ArbContains(a, b))
	require.False(t, backend.ArbContains(b, a))
	require.True(t, backend.ArbOverlaps(a, b))
	require.False(t, backend.ArbContainsZero(a))
	require.Contains(t, backend.ArbGetStr(a), "p-400000000")

	parsed := backend.ArbInit()
	defer backend.ArbClear(parsed)
	require.True(t, backend.ArbSetStr(parsed, backend.ArbGetStr(a), 64))
	require.True(t, backend.ArbEqual(parsed, a))
}
