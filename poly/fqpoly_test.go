// SPDX-License-Identifier: MIT

package poly_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/finfld"
	"github.com/katalvlaran/lvnum/poly"
	"github.com/stretchr/testify/require"
)

func fqRing(t *testing.T, p int64, k int) *algebra.Context {
	t.Helper()
	c, err := algebra.NewFqPolyRing(big.NewInt(p), k, "x")
	require.NoError(t, err)
	t.Cleanup(c.Release)

	return c
}

func fqPoly(t *testing.T, c *algebra.Context, coeffs ...[]int64) *poly.FqPoly {
	t.Helper()
	e := make([][]*big.Int, len(coeffs))
	for i, g := range coeffs {
		for _, v := range g {
			e[i] = append(e[i], big.NewInt(v))
		}
	}
	p, err := poly.FqFromCoeffs(c, e)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	return p
}

// TestFqArithmetic: over GF(4) with o^2 = o + 1, (x + o)(x + o + 1) = x^2 + x + 1.
func TestFqArithmetic(t *testing.T) {
	gf4x := fqRing(t, 2, 2)
	a := fqPoly(t, gf4x, []int64{0, 1}, []int64{1})
	b := fqPoly(t, gf4x, []int64{1, 1}, []int64{1})
	require.Equal(t, "x + o", a.String())
	require.Equal(t, "x + (o + 1)", b.String())

	c, err := a.Mul(b)
	require.NoError(t, err)
	defer c.Close()
	require.Equal(t, "x^2 + x + 1", c.String())
	require.Equal(t, 2, c.Degree())

	q, r, err := c.DivRem(a)
	require.NoError(t, err)
	defer q.Close()
	defer r.Close()
	require.True(t, q.Equal(b))
	require.True(t, r.IsZero())

	g, err := c.Gcd(a)
	require.NoError(t, err)
	defer g.Close()
	require.True(t, g.Equal(a))

	sq, err := a.Pow(2)
	require.NoError(t, err)
	defer sq.Close()
	require.Equal(t, "x^2 + (o + 1)", sq.String())

	d, err := c.Derivative()
	require.NoError(t, err)
	defer d.Close()
	require.True(t, d.IsOne())

	twice, err := c.MulInt64(2)
	require.NoError(t, err)
	defer twice.Close()
	require.True(t, twice.IsZero())
	_, err = c.DivInt64(2)
	require.ErrorIs(t, err, algebra.ErrNotInvertible)
	_, err = c.Div(twice)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)

	s, err := c.Int64Sub(1) // 1 - c = -(x^2 + x) = x^2 + x in characteristic 2
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, "x^2 + x", s.String())
	require.NoError(t, s.AddInt64Assign(1))
	require.True(t, s.Equal(c))

	x, err := poly.FqGen(gf4x)
	require.NoError(t, err)
	defer x.Close()
	require.True(t, x.IsGen())
}

// TestFqElements: coefficients and evaluation speak finfld elements.
func TestFqElements(t *testing.T) {
	gf4x := fqRing(t, 2, 2)
	gf4, err := algebra.NewFiniteField(big.NewInt(2), 2, "")
	require.NoError(t, err)
	defer gf4.Release()
	o, err := finfld.Gen(gf4)
	require.NoError(t, err)
	defer o.Close()
	one, err := finfld.One(gf4)
	require.NoError(t, err)
	defer one.Close()

	a, err := poly.FqFromElems(gf4x, o, one) // x + o
	require.NoError(t, err)
	defer a.Close()
	require.Equal(t, "x + o", a.String())

	c0, err := a.Coeff(0)
	require.NoError(t, err)
	defer c0.Close()
	require.True(t, c0.Equal(o))
	c5, err := a.Coeff(5)
	require.NoError(t, err)
	defer c5.Close()
	require.True(t, c5.IsZero())
	_, err = a.Coeff(-1)
	require.ErrorIs(t, err, algebra.ErrOutOfRange)

	v, err := a.Eval(o)
	require.NoError(t, err)
	defer v.Close()
	require.True(t, v.IsZero())

	m, err := a.Scale(o) // o*x + o + 1
	require.NoError(t, err)
	defer m.Close()
	require.Equal(t, "o*x + (o + 1)", m.String())
	monic, err := m.Monic()
	require.NoError(t, err)
	defer monic.Close()
	require.True(t, monic.Equal(a))

	gf9, err := algebra.NewFiniteField(big.NewInt(3), 2, "")
	require.NoError(t, err)
	defer gf9.Release()
	w, err := finfld.Gen(gf9)
	require.NoError(t, err)
	defer w.Close()
	_, err = a.Eval(w)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
	_, err = poly.FqFromElems(gf4x, w)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	b := fqPoly(t, fqRing(t, 3, 2), []int64{1})
	_, err = a.Add(b)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
	_, err = poly.NewFq(modRing(t, 4), 1)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
}

// TestFqCodec round-trips through both encodings and rejects bad payloads.
func TestFqCodec(t *testing.T) {
	gf4x := fqRing(t, 2, 2)
	a := fqPoly(t, gf4x, []int64{1, 1}, nil, []int64{0, 1})

	data, err := a.MarshalBinary()
	require.NoError(t, err)
	back, err := poly.DecodeFq(data)
	require.NoError(t, err)
	defer back.Close()
	require.True(t, a.Equal(back))
	require.Equal(t, a.Hash(), back.Hash())

	text, err := a.EncodeYAML()
	require.NoError(t, err)
	yb, err := poly.DecodeFq(text)
	require.NoError(t, err)
	defer yb.Close()
	require.Equal(t, a.String(), yb.String())

	rec, err := a.Record()
	require.NoError(t, err)
	require.Len(t, rec.Ints, 6)
	_, err = poly.DecodeFqRecord(rec, fqRing(t, 2, 3))
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	odd := *rec
	odd.Ints = rec.Ints[:5]
	_, err = poly.DecodeFqRecord(&odd, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)

	trailing := *rec
	trailing.Ints = append(append([][]byte{}, rec.Ints...), []byte{0}, []byte{0})
	_, err = poly.DecodeFqRecord(&trailing, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)

	big2 := *rec
	big2.Ints = append([][]byte{{0, 2}}, rec.Ints[1:]...)
	_, err = poly.DecodeFqRecord(&big2, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)

	_, err = poly.DecodeMod(data)
	require.ErrorIs(t, err, algebra.ErrDecode)
}
