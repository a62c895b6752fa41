// SPDX-License-Identifier: MIT

package backend_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/backend"
	"github.com/stretchr/testify/require"
)

// TestFmpzFloorDivision verifies floor semantics for every sign combination.
func TestFmpzFloorDivision(t *testing.T) {
	cases := []struct{ a, b, q, r int64 }{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
	}
	q, r, a, b := backend.FmpzInit(), backend.FmpzInit(), backend.FmpzInit(), backend.FmpzInit()
	defer func() {
		for _, z := range []*backend.Fmpz{q, r, a, b} {
			backend.FmpzClear(z)
		}
	}()
	for _, c := range cases {
		backend.FmpzSetSi(a, c.a)
		backend.FmpzSetSi(b, c.b)
		backend.FmpzFdivQR(q, r, a, b)
		require.Equal(t, c.q, backend.FmpzGetSi(q), "%d / %d", c.a, c.b)
		require.Equal(t, c.r, backend.FmpzGetSi(r), "%d %% %d", c.a, c.b)
	}
}

// TestFmpzStringsAndBytes verifies parsing, formatting and the canonical encoding.
func TestFmpzStringsAndBytes(t *testing.T) {
	z := backend.FmpzInit()
	defer backend.FmpzClear(z)

	require.True(t, backend.FmpzSetStr(z, "-123456789012345678901234567890", 10))
	require.Equal(t, "-123456789012345678901234567890", backend.FmpzGetStr(z, 10))
	require.False(t, backend.FmpzFitsSi(z))

	require.False(t, backend.FmpzSetStr(z, "12x", 10))                         // rejected
	require.Equal(t, "-123456789012345678901234567890", backend.FmpzGetStr(z, 10)) // unchanged

	p := backend.FmpzBytes(z)
	w := backend.FmpzInit()
	defer backend.FmpzClear(w)
	require.True(t, backend.FmpzSetBytes(w, p))
	require.True(t, backend.FmpzEqual(z, w))

	_, ok := backend.BigFromBytes([]byte{1}) // negative zero
	require.False(t, ok)
	_, ok = backend.BigFromBytes([]byte{0, 0, 1}) // leading zero
	require.False(t, ok)
}

// TestFmpqCanonical verifies that every entry point stores canonical pairs.
func TestFmpqCanonical(t *testing.T) {
	q := backend.FmpqInit()
	defer backend.FmpqClear(q)

	require.True(t, backend.FmpqSetStr(q, "12/8", 10))
	require.Equal(t, "3/2", backend.FmpqGetStr(q, 10))
	require.True(t, backend.FmpqIsCanonical(q))

	require.False(t, backend.FmpqSetStr(q, "1/0", 10))
	require.False(t, backend.FmpqSetStr(q, "1/-2", 10))

	backend.FmpqSetFracUnchecked(q, big.NewInt(4), big.NewInt(-6))
	require.False(t, backend.FmpqIsCanonical(q))
	backend.FmpqCanonicalise(q)
	require.Equal(t, "-2/3", backend.FmpqGetStr(q, 10))
}

// TestFmpzMod verifies residue arithmetic and inversion failures.
func TestFmpzMod(t *testing.T) {
	n := backend.FmpzInit()
	defer backend.FmpzClear(n)
	backend.FmpzSetSi(n, 10)
	ctx := backend.ModCtxInit(n)
	defer backend.ModCtxClear(ctx)
	require.False(t, backend.ModCtxIsPrime(ctx))

	a, b := backend.FmpzInit(), backend.FmpzInit()
	defer backend.FmpzClear(a)
	defer backend.FmpzClear(b)
	backend.FmpzModSetSi(a, -3, ctx)
	require.Equal(t, int64(7), backend.FmpzGetSi(a)) // canonical residue

	backend.FmpzModInv(b, a, ctx)
	require.Equal(t, int64(3), backend.FmpzGetSi(b)) // 7*3 = 21 = 1 mod 10

	backend.FmpzModSetSi(a, 4, ctx)
	require.False(t, backend.FmpzModIsInvertible(a, ctx))
	require.Panics(t, func() { backend.FmpzModInv(b, a, ctx) })
}
