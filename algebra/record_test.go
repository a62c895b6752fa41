// SPDX-License-Identifier: MIT

package algebra_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/stretchr/testify/require"
)

// TestRecordRoundTrip re-creates equivalent contexts of every kind.
func TestRecordRoundTrip(t *testing.T) {
	half := []*big.Rat{big.NewRat(-1, 2), big.NewRat(0, 1), big.NewRat(1, 1)}
	params := []algebra.Params{
		{Kind: algebra.KindIntMod, Modulus: big.NewInt(97)},
		{Kind: algebra.KindPolyRing, Base: algebra.BaseRational, Var: "z"},
		{Kind: algebra.KindMatrixSpace, Base: algebra.BaseIntMod, Rows: 2, Cols: 4, Modulus: big.NewInt(6)},
		{Kind: algebra.KindFiniteField, Modulus: big.NewInt(2), Degree: 3},
		{Kind: algebra.KindNumberField, Defining: half},
		{Kind: algebra.KindPrecision, Precision: 200},
	}
	for _, p := range params {
		ctx, err := algebra.New(p)
		require.NoError(t, err)

		rec := ctx.Record()
		back, err := algebra.FromRecord(rec)
		require.NoError(t, err)
		require.True(t, ctx.Compatible(back), ctx.String())
		require.Equal(t, ctx.String(), back.String())

		again, err := algebra.Attach(rec, ctx)
		require.NoError(t, err)
		require.Equal(t, ctx.ID(), again.ID())

		again.Release()
		back.Release()
		ctx.Release()
	}
}

// TestAttachMismatch refuses to re-attach a record to another structure.
func TestAttachMismatch(t *testing.T) {
	a, err := algebra.NewIntModRing(big.NewInt(5))
	require.NoError(t, err)
	defer a.Release()
	b, err := algebra.NewIntModRing(big.NewInt(7))
	require.NoError(t, err)
	defer b.Release()

	_, err = algebra.Attach(a.Record(), b)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
}

// TestFromRecordMalformed maps every bad record to ErrDecode.
func TestFromRecordMalformed(t *testing.T) {
	bad := []*codec.ContextRecord{
		nil,
		{Kind: uint64(algebra.KindIntMod), Modulus: codec.IntBytes(big.NewInt(1))},
		{Kind: uint64(algebra.KindIntMod), Modulus: []byte{7}},
		{Kind: 300},
		{Kind: uint64(algebra.KindMatrixSpace), Base: uint64(algebra.BaseInteger), Rows: 1 << 40, Cols: 1},
		{Kind: uint64(algebra.KindNumberField), Defining: [][]byte{{0}}},
		{Kind: uint64(algebra.KindFiniteField), Var: "o", Degree: 1 << 30, Modulus: codec.IntBytes(big.NewInt(2))},
		{Kind: uint64(algebra.KindMatrixSpace), Base: uint64(algebra.BaseRational), Rows: 1 << 20, Cols: 1 << 20},
	}
	for i, rec := range bad {
		_, err := algebra.FromRecord(rec)
		require.ErrorIs(t, err, algebra.ErrDecode, i)
	}
}
