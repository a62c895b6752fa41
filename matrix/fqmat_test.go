// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/finfld"
	"github.com/katalvlaran/lvnum/matrix"
	"github.com/stretchr/testify/require"
)

func fqSpace(t *testing.T, p int64, k, rows, cols int) *algebra.Context {
	t.Helper()
	c, err := algebra.NewFqMatrixSpace(big.NewInt(p), k, rows, cols)
	require.NoError(t, err)
	t.Cleanup(c.Release)

	return c
}

func fqMat(t *testing.T, c *algebra.Context, s string) *matrix.FqMat {
	t.Helper()
	m, err := matrix.ParseFq(c, s)
	require.NoError(t, err)
	t.Cleanup(m.Close)

	return m
}

// TestFqDetInv: over GF(4) with o^2 = o + 1, [[o, 1], [1, o]] has det o and
// inverse [[1, o + 1], [o + 1, 1]].
func TestFqDetInv(t *testing.T) {
	s := fqSpace(t, 2, 2, 2, 2)
	a := fqMat(t, s, "[o, 1]\n[1, o]")
	require.Equal(t, "[o, 1]\n[1, o]", a.String())

	d, err := a.Det()
	require.NoError(t, err)
	defer d.Close()
	require.Equal(t, "o", d.String())

	inv, err := a.Inv()
	require.NoError(t, err)
	defer inv.Close()
	require.Equal(t, "[1, o + 1]\n[o + 1, 1]", inv.String())
	p, err := a.Mul(inv)
	require.NoError(t, err)
	defer p.Close()
	id, err := matrix.IdentityFq(s)
	require.NoError(t, err)
	defer id.Close()
	require.True(t, p.Equal(id))

	sing := fqMat(t, s, "[1, o]\n[o, o + 1]") // det = o + 1 - o^2 = 0
	sd, err := sing.Det()
	require.NoError(t, err)
	defer sd.Close()
	require.True(t, sd.IsZero())
	_, err = sing.Inv()
	require.ErrorIs(t, err, algebra.ErrNotInvertible)

	wide := fqMat(t, fqSpace(t, 2, 2, 1, 2), "[o, 1]")
	_, err = wide.Det()
	require.ErrorIs(t, err, algebra.ErrDimensionMismatch)
}

// TestFqOps covers products across shapes, scaling and entry access.
func TestFqOps(t *testing.T) {
	a := fqMat(t, fqSpace(t, 2, 2, 2, 2), "[o, 1]\n[1, o]")
	col := fqMat(t, fqSpace(t, 2, 2, 2, 1), "[1]\n[o]")

	p, err := a.Mul(col) // [o + o, 1 + o^2] = [0, o]
	require.NoError(t, err)
	defer p.Close()
	require.Equal(t, 2, p.Rows())
	require.Equal(t, 1, p.Cols())
	require.Equal(t, "[0]\n[o]", p.String())

	tr, err := col.Transpose()
	require.NoError(t, err)
	defer tr.Close()
	require.Equal(t, "[1, o]", tr.String())

	twice, err := a.MulInt64(2)
	require.NoError(t, err)
	defer twice.Close()
	require.True(t, twice.IsZero())
	same, err := a.Int64Mul(3)
	require.NoError(t, err)
	defer same.Close()
	require.True(t, same.Equal(a))

	gf4, err := algebra.NewFiniteField(big.NewInt(2), 2, "")
	require.NoError(t, err)
	defer gf4.Release()
	o, err := finfld.Gen(gf4)
	require.NoError(t, err)
	defer o.Close()
	sc, err := a.Scale(o)
	require.NoError(t, err)
	defer sc.Close()
	require.Equal(t, "[o + 1, o]\n[o, o + 1]", sc.String())

	e, err := a.Entry(0, 0)
	require.NoError(t, err)
	defer e.Close()
	require.True(t, e.Equal(o))
	_, err = a.Entry(2, 0)
	require.ErrorIs(t, err, algebra.ErrOutOfRange)

	b, err := matrix.FqFromElems(a.Context(), o, o, o, o)
	require.NoError(t, err)
	defer b.Close()
	sum, err := a.Add(b)
	require.NoError(t, err)
	defer sum.Close()
	require.Equal(t, "[0, o + 1]\n[o + 1, 0]", sum.String())

	// Same shape and characteristic, different degree.
	gf8 := fqMat(t, fqSpace(t, 2, 3, 2, 2), "[1, 0]\n[0, 1]")
	_, err = a.Mul(gf8)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
	_, err = a.Add(gf8)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	_, err = matrix.ParseFq(a.Context(), "[x, 1]\n[1, o]")
	require.ErrorIs(t, err, algebra.ErrParse)
	_, err = matrix.NewFq(modSpace(t, 2, 2, 2), 1, 0, 0, 1)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
}

// TestFqCodec round-trips both encodings and rejects malformed payloads.
func TestFqCodec(t *testing.T) {
	a := fqMat(t, fqSpace(t, 3, 2, 2, 2), "[2*o + 1, 0]\n[1, o]")
	bin, err := a.MarshalBinary()
	require.NoError(t, err)
	back, err := matrix.DecodeFq(bin)
	require.NoError(t, err)
	defer back.Close()
	require.True(t, back.Equal(a))
	require.Equal(t, a.Hash(), back.Hash())

	text, err := a.EncodeYAML()
	require.NoError(t, err)
	require.Contains(t, string(text), "tag: matrix.fq")
	tb, err := matrix.DecodeFq(text)
	require.NoError(t, err)
	defer tb.Close()
	require.Equal(t, a.String(), tb.String())

	rec, err := a.Record()
	require.NoError(t, err)
	require.Len(t, rec.Ints, 8)
	_, err = matrix.DecodeFqRecord(rec, fqSpace(t, 3, 2, 2, 1))
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	short := *rec
	short.Ints = rec.Ints[:6]
	_, err = matrix.DecodeFqRecord(&short, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)
	short.Ints = rec.Ints[:7]
	_, err = matrix.DecodeFqRecord(&short, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)

	_, err = matrix.DecodeMod(bin)
	require.ErrorIs(t, err, algebra.ErrDecode)
}
