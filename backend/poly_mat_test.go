// SPDX-License-Identifier: MIT

package backend_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/backend"
	"github.com/stretchr/testify/require"
)

func ints(v ...int64) []*big.Int {
	out := make([]*big.Int, len(v))
	for i, x := range v {
		out[i] = big.NewInt(x)
	}

	return out
}

// texts renders big values for comparison; reflect-based equality on math/big
// internals is not reliable.
func texts[T interface{ String() string }](v []T) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = x.String()
	}

	return out
}

func rats(v ...int64) []*big.Rat {
	out := make([]*big.Rat, len(v))
	for i, x := range v {
		out[i] = big.NewRat(x, 1)
	}

	return out
}

// TestFmpzPolyArithmetic verifies normalization and products.
func TestFmpzPolyArithmetic(t *testing.T) {
	p, q := backend.FmpzPolyInit(), backend.FmpzPolyInit()
	defer backend.FmpzPolyClear(p)
	defer backend.FmpzPolyClear(q)

	backend.FmpzPolySetCoeffs(p, ints(1, 2, 0, 0)) // 2x + 1 with trailing zeros
	require.Equal(t, 1, backend.FmpzPolyDegree(p))

	backend.FmpzPolySetCoeffs(q, ints(-1, 1)) // x - 1
	backend.FmpzPolyMul(q, p, q)              // aliasing output
	require.Equal(t, []string{"-1", "-1", "2"}, texts(backend.FmpzPolyCoeffs(q)))

	backend.FmpzPolySub(q, q, q)
	require.True(t, backend.FmpzPolyIsZero(q))
	require.Equal(t, -1, backend.FmpzPolyDegree(q))
}

// TestFmpqPolyDivRemGcd verifies Euclidean division and monic gcd.
func TestFmpqPolyDivRemGcd(t *testing.T) {
	a, b, q, r := backend.FmpqPolyInit(), backend.FmpqPolyInit(), backend.FmpqPolyInit(), backend.FmpqPolyInit()
	defer func() {
		for _, p := range []*backend.FmpqPoly{a, b, q, r} {
			backend.FmpqPolyClear(p)
		}
	}()
	backend.FmpqPolySetCoeffs(a, rats(-1, 0, 1)) // x^2 - 1
	backend.FmpqPolySetCoeffs(b, rats(2, 2))     // 2x + 2
	backend.FmpqPolyDivRem(q, r, a, b)
	require.Equal(t, []string{"-1/2", "1/2"}, texts(backend.FmpqPolyCoeffs(q)))
	require.True(t, backend.FmpqPolyIsZero(r))

	backend.FmpqPolyGcd(q, a, b)
	require.Equal(t, []string{"1/1", "1/1"}, texts(backend.FmpqPolyCoeffs(q))) // monic x + 1

	require.True(t, backend.QPolyIsSquarefree(rats(-2, 0, 1)))
	require.False(t, backend.QPolyIsSquarefree(rats(1, 2, 1)))
}

// TestModPolyContextMismatch verifies that operands from different moduli panic.
func TestModPolyContextMismatch(t *testing.T) {
	n5, n7 := backend.FmpzInit(), backend.FmpzInit()
	defer backend.FmpzClear(n5)
	defer backend.FmpzClear(n7)
	backend.FmpzSetSi(n5, 5)
	backend.FmpzSetSi(n7, 7)
	c5, c7 := backend.ModCtxInit(n5), backend.ModCtxInit(n7)
	defer backend.ModCtxClear(c5)
	defer backend.ModCtxClear(c7)

	a, b := backend.ModPolyInit(c5), backend.ModPolyInit(c7)
	defer backend.ModPolyClear(a)
	defer backend.ModPolyClear(b)
	backend.ModPolySetCoeffs(a, ints(6, 7)) // reduced to 1 + 2x
	require.Equal(t, []string{"1", "2"}, texts(backend.ModPolyCoeffs(a)))
	require.Panics(t, func() { backend.ModPolyAdd(a, a, b) })
}

// TestMatrixKernels verifies determinants and inverses over Z, Q and Z/7.
func TestMatrixKernels(t *testing.T) {
	z := backend.FmpzMatInit(3, 3)
	defer backend.FmpzMatClear(z)
	backend.FmpzMatSetEntries(z, ints(2, 0, 1, 1, 3, 2, 1, 1, 2))
	det := backend.FmpzInit()
	defer backend.FmpzClear(det)
	backend.FmpzMatDet(det, z)
	require.Equal(t, int64(6), backend.FmpzGetSi(det)) // 2(6-2) + 1(1-3)

	backend.FmpzMatSetEntries(z, ints(0, 1, 0, 1, 0, 0, 0, 0, 1)) // needs a row swap
	backend.FmpzMatDet(det, z)
	require.Equal(t, int64(-1), backend.FmpzGetSi(det))

	q, inv, prod := backend.FmpqMatInit(2, 2), backend.FmpqMatInit(2, 2), backend.FmpqMatInit(2, 2)
	defer backend.FmpqMatClear(q)
	defer backend.FmpqMatClear(inv)
	defer backend.FmpqMatClear(prod)
	backend.FmpqMatSetEntries(q, rats(1, 2, 3, 4))
	require.True(t, backend.FmpqMatInv(inv, q))
	backend.FmpqMatMul(prod, q, inv)
	one := backend.FmpqMatInit(2, 2)
	defer backend.FmpqMatClear(one)
	backend.FmpqMatOne(one)
	require.True(t, backend.FmpqMatEqual(prod, one))

	backend.FmpqMatSetEntries(q, rats(1, 2, 2, 4))
	require.False(t, backend.FmpqMatInv(inv, q)) // singular

	n := backend.FmpzInit()
	defer backend.FmpzClear(n)
	backend.FmpzSetSi(n, 7)
	ctx := backend.ModCtxInit(n)
	defer backend.ModCtxClear(ctx)
	m, mi := backend.ModMatInit(2, 2, ctx), backend.ModMatInit(2, 2, ctx)
	defer backend.ModMatClear(m)
	defer backend.ModMatClear(mi)
	backend.ModMatSetEntries(m, ints(1, 2, 3, 4)) // det = -2 = 5 mod 7
	require.True(t, backend.ModMatDet(det, m))
	require.Equal(t, int64(5), backend.FmpzGetSi(det))
	require.True(t, backend.ModMatInv(mi, m))
	backend.ModMatMul(mi, m, mi)
	require.Equal(t, []string{"1", "0", "0", "1"}, texts(backend.ModMatEntries(mi)))
}
