// SPDX-License-Identifier: MIT

package lvnum_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum"
	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/ball"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/finfld"
	"github.com/katalvlaran/lvnum/integer"
	"github.com/katalvlaran/lvnum/intmod"
	"github.com/katalvlaran/lvnum/matrix"
	"github.com/katalvlaran/lvnum/numfld"
	"github.com/katalvlaran/lvnum/poly"
	"github.com/katalvlaran/lvnum/ratfunc"
	"github.com/katalvlaran/lvnum/rational"
	"github.com/stretchr/testify/require"
)

// keeper returns a helper that fails t on error and releases the Context
// when t ends.
func keeper(t *testing.T) func(*algebra.Context, error) *algebra.Context {
	return func(c *algebra.Context, err error) *algebra.Context {
		t.Helper()
		require.NoError(t, err)
		t.Cleanup(c.Release)

		return c
	}
}

// samples builds one value of every type.
func samples(t *testing.T) map[string]lvnum.Value {
	t.Helper()
	keep := keeper(t)
	value := func(v lvnum.Value, err error) lvnum.Value {
		t.Helper()
		require.NoError(t, err)
		t.Cleanup(v.Close)

		return v
	}
	seven := big.NewInt(7)
	zn := keep(algebra.NewIntModRing(seven))
	zx := keep(algebra.NewPolyRing(algebra.BaseInteger, "t"))
	qx := keep(algebra.NewPolyRing(algebra.BaseRational, ""))
	znx := keep(algebra.NewModPolyRing(seven, "y"))
	zm := keep(algebra.NewMatrixSpace(algebra.BaseInteger, 2, 3))
	qm := keep(algebra.NewMatrixSpace(algebra.BaseRational, 2, 2))
	znm := keep(algebra.NewModMatrixSpace(seven, 1, 2))
	gf := keep(algebra.NewFiniteField(big.NewInt(3), 3, ""))
	gfx := keep(algebra.NewFqPolyRing(big.NewInt(3), 2, "z"))
	gfm := keep(algebra.NewFqMatrixSpace(big.NewInt(5), 2, 2, 1))
	nf := keep(algebra.NewNumberField([]*big.Rat{big.NewRat(-2, 1), big.NewRat(0, 1), big.NewRat(1, 1)}, ""))
	prec := keep(ball.NewContext(ball.WithPrecision(96)))

	q, err := rational.FromFrac(12, 8)
	require.NoError(t, err)
	defer q.Close()
	re, err := ball.FromRational(prec, q)
	require.NoError(t, err)
	defer re.Close()
	ri, err := ball.FromInt64(prec, -4)
	require.NoError(t, err)
	defer ri.Close()

	return map[string]lvnum.Value{
		codec.TagInteger:  value(integer.Parse("-98765432109876543210", 10)),
		codec.TagRational: value(rational.FromFrac(-12, 8)),
		codec.TagIntMod:   value(intmod.FromInt64(zn, 10)),
		codec.TagIntPoly:  value(poly.NewInt(zx, 1, 0, -3)),
		codec.TagRatPoly:  value(poly.ParseRat(qx, "1/2*x^2 - 3")),
		codec.TagModPoly:  value(poly.NewMod(znx, 8, 5)),
		codec.TagIntMat:   value(matrix.NewInt(zm, 1, 2, 3, 4, 5, 6)),
		codec.TagRatMat:   value(matrix.ParseRat(qm, "[1/2, 0]\n[0, -3]")),
		codec.TagModMat:   value(matrix.NewMod(znm, 9, -1)),
		codec.TagFqPoly:   value(poly.FqFromCoeffs(gfx, [][]*big.Int{{big.NewInt(2), big.NewInt(1)}, nil, {big.NewInt(1)}})),
		codec.TagFqMat:    value(matrix.ParseFq(gfm, "[3*o + 4]\n[o]")),
		codec.TagRatFunc:  value(ratfunc.FromBig(zx, []*big.Int{big.NewInt(1)}, []*big.Int{big.NewInt(-2), big.NewInt(4)})),
		codec.TagFinFld:   value(finfld.Parse(gf, "o^2 + 2")),
		codec.TagNumFld:   value(numfld.Parse(nf, "1/3*a - 1")),
		codec.TagReal:     value(ball.ParseReal(prec, "[1.5 +/- 0.25]")),
		codec.TagComplex:  value(ball.FromParts(re, ri)),
	}
}

// TestDecodeDispatch: every value decodes back through the tag dispatcher
// from both encodings, with the same type, text and hash.
func TestDecodeDispatch(t *testing.T) {
	for tag, v := range samples(t) {
		t.Run(tag, func(t *testing.T) {
			rec, err := v.Record()
			require.NoError(t, err)
			require.Equal(t, tag, rec.Tag)

			bin, err := v.MarshalBinary()
			require.NoError(t, err)
			text, err := v.EncodeYAML()
			require.NoError(t, err)
			for _, data := range [][]byte{bin, text} {
				back, err := lvnum.Decode(data)
				require.NoError(t, err)
				require.IsType(t, v, back)
				require.Equal(t, v.String(), back.String())
				require.Equal(t, v.Hash(), back.Hash())
				back.Close()
				require.True(t, back.Released())
			}
		})
	}
}

// TestDecodeRecordContext: a supplied Context must match the record, and
// primitives refuse one.
func TestDecodeRecordContext(t *testing.T) {
	keep := keeper(t)
	zn := keep(algebra.NewIntModRing(big.NewInt(7)))
	other := keep(algebra.NewIntModRing(big.NewInt(11)))
	a, err := intmod.FromInt64(zn, 3)
	require.NoError(t, err)
	defer a.Close()
	rec, err := a.Record()
	require.NoError(t, err)

	refs := zn.Refs()
	back, err := lvnum.DecodeRecord(rec, zn)
	require.NoError(t, err)
	require.Equal(t, refs+1, zn.Refs())
	back.Close()
	require.Equal(t, refs, zn.Refs())

	_, err = lvnum.DecodeRecord(rec, other)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	z := integer.FromInt64(5)
	defer z.Close()
	zrec, err := z.Record()
	require.NoError(t, err)
	_, err = lvnum.DecodeRecord(zrec, zn)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
}

// TestDecodeMalformed: unknown tags and garbage report ErrDecode and leave
// nothing live.
func TestDecodeMalformed(t *testing.T) {
	live := backend.Live(backend.KindFmpz)
	for _, bad := range [][]byte{
		nil,
		[]byte("tag: quaternion\n"),
		[]byte("tag: intmod\nints: [\"0103\"]\n"),
		{0xff, 0x01},
	} {
		_, err := lvnum.Decode(bad)
		require.ErrorIs(t, err, algebra.ErrDecode, string(bad))
	}
	_, err := lvnum.DecodeRecord(nil, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)
	require.Equal(t, live, backend.Live(backend.KindFmpz))
}
