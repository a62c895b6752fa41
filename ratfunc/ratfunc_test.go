// SPDX-License-Identifier: MIT

package ratfunc_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/poly"
	"github.com/katalvlaran/lvnum/ratfunc"
	"github.com/katalvlaran/lvnum/rational"
	"github.com/stretchr/testify/require"
)

func ring(t *testing.T, v string) *algebra.Context {
	t.Helper()
	c, err := algebra.NewPolyRing(algebra.BaseInteger, v)
	require.NoError(t, err)
	t.Cleanup(c.Release)

	return c
}

func ints(v ...int64) []*big.Int {
	out := make([]*big.Int, len(v))
	for i, x := range v {
		out[i] = big.NewInt(x)
	}

	return out
}

func frac(t *testing.T, c *algebra.Context, num, den []*big.Int) *ratfunc.RatFunc {
	t.Helper()
	f, err := ratfunc.FromBig(c, num, den)
	require.NoError(t, err)
	t.Cleanup(f.Close)

	return f
}

// TestCanonicalDisplay: common factors cancel and display follows which
// parts are constant.
func TestCanonicalDisplay(t *testing.T) {
	zx := ring(t, "x")
	for _, c := range []struct {
		num, den []*big.Int
		want     string
	}{
		{ints(-1, 0, 1), ints(2, 2), "(x - 1)/2"},
		{ints(3), ints(6), "1/2"},
		{ints(1), ints(0, -1), "-1/(x)"},
		{ints(1), ints(0, 0, 1), "1/(x^2)"},
		{ints(4, 2), ints(0, 4), "(x + 2)/(2*x)"},
		{ints(0, 2), ints(2), "x"},
		{nil, ints(0, 5), "0"},
	} {
		require.Equal(t, c.want, frac(t, zx, c.num, c.den).String())
	}

	_, err := ratfunc.FromBig(zx, ints(1), ints(0, 0))
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	_, err = ratfunc.FromBig(zx, ints(1), nil)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)

	zx2 := ring(t, "x")
	q, err := algebra.NewPolyRing(algebra.BaseRational, "x")
	require.NoError(t, err)
	defer q.Release()
	_, err = ratfunc.Zero(q)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	num, err := poly.NewInt(zx2, -1, 0, 1)
	require.NoError(t, err)
	defer num.Close()
	den, err := poly.NewInt(zx2, 1, 1)
	require.NoError(t, err)
	defer den.Close()
	f, err := ratfunc.New(zx, num, den)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, "x - 1", f.String())
	n, err := f.Num()
	require.NoError(t, err)
	defer n.Close()
	require.Equal(t, "x - 1", n.String())
	d, err := f.Den()
	require.NoError(t, err)
	defer d.Close()
	require.Equal(t, "1", d.String())

	p, err := ratfunc.FromIntPoly(den)
	require.NoError(t, err)
	defer p.Close()
	require.Equal(t, "x + 1", p.String())
}

// TestArithmetic covers the field operations on Q(x).
func TestArithmetic(t *testing.T) {
	zx := ring(t, "x")
	a := frac(t, zx, ints(1), ints(0, 1)) // 1/x
	b := frac(t, zx, ints(1), ints(1, 1)) // 1/(x + 1)

	s, err := a.Add(b)
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, "(2*x + 1)/(x^2 + x)", s.String())

	diff, err := s.Sub(b)
	require.NoError(t, err)
	defer diff.Close()
	require.True(t, diff.Equal(a))

	q, err := a.Div(b)
	require.NoError(t, err)
	defer q.Close()
	require.Equal(t, "(x + 1)/(x)", q.String())
	p, err := q.Mul(a)
	require.NoError(t, err)
	defer p.Close()
	require.Equal(t, "(x + 1)/(x^2)", p.String())

	inv, err := a.Inv()
	require.NoError(t, err)
	defer inv.Close()
	require.True(t, inv.IsGen())

	d, err := a.Derivative()
	require.NoError(t, err)
	defer d.Close()
	require.Equal(t, "-1/(x^2)", d.String())

	sq, err := b.Pow(2)
	require.NoError(t, err)
	defer sq.Close()
	require.Equal(t, "1/(x^2 + 2*x + 1)", sq.String())

	h, err := a.DivInt64(2)
	require.NoError(t, err)
	defer h.Close()
	require.Equal(t, "1/(2*x)", h.String())
	r, err := a.Int64Div(3)
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, "3*x", r.String())
	m, err := a.Int64Sub(1)
	require.NoError(t, err)
	defer m.Close()
	require.Equal(t, "(x - 1)/(x)", m.String())

	require.NoError(t, m.AddInt64Assign(-1))
	neg, err := a.Neg()
	require.NoError(t, err)
	defer neg.Close()
	require.True(t, m.Equal(neg))

	zero, err := ratfunc.Zero(zx)
	require.NoError(t, err)
	defer zero.Close()
	_, err = a.Div(zero)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	_, err = zero.Inv()
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	_, err = a.DivInt64(0)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	_, err = zero.Int64Div(1)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)

	one, err := ratfunc.One(zx)
	require.NoError(t, err)
	defer one.Close()
	prod, err := a.Mul(inv)
	require.NoError(t, err)
	defer prod.Close()
	require.True(t, prod.IsOne())
	require.True(t, prod.Equal(one))

	// The variable is display only.
	y := frac(t, ring(t, "y"), ints(1), ints(0, 1))
	require.True(t, a.Equal(y))
	require.Equal(t, a.Hash(), y.Hash())
	require.Equal(t, "1/(y)", y.String())
}

// TestEval: values at regular points and poles.
func TestEval(t *testing.T) {
	zx := ring(t, "x")
	f := frac(t, zx, ints(-1, 0, 1), ints(0, 2)) // (x^2 - 1)/(2x)

	at := rational.MustParse("1/2")
	defer at.Close()
	v, err := f.Eval(at)
	require.NoError(t, err)
	defer v.Close()
	require.Equal(t, "-3/4", v.String())

	zero := rational.FromInt64(0)
	defer zero.Close()
	_, err = f.Eval(zero)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
}

// TestCodec round-trips both encodings and rejects non-canonical records.
func TestCodec(t *testing.T) {
	zx := ring(t, "x")
	f := frac(t, zx, ints(1, 2), ints(0, 1, 1))

	bin, err := f.MarshalBinary()
	require.NoError(t, err)
	back, err := ratfunc.Decode(bin)
	require.NoError(t, err)
	defer back.Close()
	require.True(t, back.Equal(f))
	require.Equal(t, f.Hash(), back.Hash())

	text, err := f.EncodeYAML()
	require.NoError(t, err)
	require.Contains(t, string(text), "tag: ratfunc")
	tb, err := ratfunc.Decode(text)
	require.NoError(t, err)
	defer tb.Close()
	require.Equal(t, f.String(), tb.String())

	rec, err := f.Record()
	require.NoError(t, err)
	require.Len(t, rec.Ints, 6)
	rb, err := ratfunc.DecodeRecord(rec, zx)
	require.NoError(t, err)
	rb.Close()

	scaled := *rec
	scaled.Ints = append([][]byte{rec.Ints[0]}, payloads(2, 4, 0, 2, 2)...)
	_, err = ratfunc.DecodeRecord(&scaled, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)

	long := *rec
	long.Ints = append([][]byte{backend.BigBytes(big.NewInt(5))}, rec.Ints[1:]...)
	_, err = ratfunc.DecodeRecord(&long, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)

	zeroDen := *rec
	zeroDen.Ints = append([][]byte{backend.BigBytes(big.NewInt(1))}, payloads(1, 0)...)
	_, err = ratfunc.DecodeRecord(&zeroDen, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)

	_, err = poly.DecodeInt(bin)
	require.ErrorIs(t, err, algebra.ErrDecode)
}

func payloads(v ...int64) [][]byte {
	out := make([][]byte, len(v))
	for i, x := range v {
		out[i] = backend.BigBytes(big.NewInt(x))
	}

	return out
}

// TestReleased: closed functions report ErrReleased and release their ring.
func TestReleased(t *testing.T) {
	zx := ring(t, "x")
	refs := zx.Refs()
	f, err := ratfunc.Gen(zx)
	require.NoError(t, err)
	require.Equal(t, refs+1, zx.Refs())
	f.Close()
	f.Close()
	require.Equal(t, refs, zx.Refs())
	require.True(t, f.Released())
	require.Nil(t, f.Context())
	require.Equal(t, "<released>", f.String())
	_, err = f.AddInt64(1)
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = f.Num()
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = f.Record()
	require.ErrorIs(t, err, algebra.ErrReleased)
	require.False(t, f.Equal(f))
	require.Zero(t, f.Hash())
}
