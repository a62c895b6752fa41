// SPDX-License-Identifier: MIT

package ball_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/ball"
	"github.com/katalvlaran/lvnum/rational"
	"github.com/stretchr/testify/require"
)

func precision(t *testing.T, bits uint) *algebra.Context {
	t.Helper()
	ctx, err := ball.NewContext(ball.WithPrecision(bits))
	require.NoError(t, err)
	t.Cleanup(ctx.Release)

	return ctx
}

func parseReal(t *testing.T, ctx *algebra.Context, s string) *ball.Real {
	t.Helper()
	x, err := ball.ParseReal(ctx, s)
	require.NoError(t, err, s)
	t.Cleanup(x.Close)

	return x
}

// TestNewContext: default precision and option validation.
func TestNewContext(t *testing.T) {
	ctx, err := ball.NewContext()
	require.NoError(t, err)
	defer ctx.Release()
	require.Equal(t, ball.DefaultPrecision, ctx.Precision())
	require.Equal(t, algebra.KindPrecision, ctx.Kind())

	require.Panics(t, func() { ball.WithPrecision(1) })

	ring, err := algebra.NewIntModRing(big.NewInt(7))
	require.NoError(t, err)
	defer ring.Release()
	_, err = ball.FromInt64(ring, 1)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
}

// TestZeroDivisor: a ball containing zero divided by itself is non-finite,
// not an error, and so is a native zero divisor.
func TestZeroDivisor(t *testing.T) {
	ctx := precision(t, 64)
	x := parseReal(t, ctx, "[0 +/- 1]")
	require.True(t, x.ContainsZero())

	q, err := x.Div(x)
	require.NoError(t, err)
	defer q.Close()
	require.False(t, q.IsFinite())
	require.Equal(t, "[+/- inf]", q.String())

	one := parseReal(t, ctx, "1")
	z, err := one.DivInt64(0)
	require.NoError(t, err)
	defer z.Close()
	require.False(t, z.IsFinite())

	_, err = q.Float64(algebra.Nearest)
	require.ErrorIs(t, err, algebra.ErrInexact)
}

// TestEnclosure: rounding widens the radius and the true value stays inside.
func TestEnclosure(t *testing.T) {
	ctx := precision(t, 64)
	one := parseReal(t, ctx, "1")
	require.True(t, one.IsExact())

	third, err := one.DivInt64(3)
	require.NoError(t, err)
	defer third.Close()
	require.False(t, third.IsExact())
	require.True(t, third.IsFinite())

	q, err := rational.FromFrac(1, 3)
	require.NoError(t, err)
	defer q.Close()
	in, err := third.ContainsRational(q)
	require.NoError(t, err)
	require.True(t, in)

	back, err := third.MulInt64(3)
	require.NoError(t, err)
	defer back.Close()
	ok, err := back.Contains(one)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = one.Contains(back)
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, back.Equal(one)) // overlapping is not equal

	r, err := third.Rad()
	require.NoError(t, err)
	require.Equal(t, 1, r.Sign())
	m, err := third.Mid()
	require.NoError(t, err)
	require.Equal(t, 1, m.Cmp(big.NewFloat(0.33)))
}

// TestArithmeticShapes runs every call shape once on exact inputs.
func TestArithmeticShapes(t *testing.T) {
	ctx := precision(t, 64)
	a, b := parseReal(t, ctx, "6"), parseReal(t, ctx, "1.5")

	check := func(x *ball.Real, err error, want string) {
		t.Helper()
		require.NoError(t, err)
		require.Equal(t, want, x.String())
		x.Close()
	}
	x, err := a.Add(b)
	check(x, err, "7.5")
	x, err = a.Sub(b)
	check(x, err, "4.5")
	x, err = a.Mul(b)
	check(x, err, "9")
	x, err = a.Div(b)
	check(x, err, "4")
	x, err = a.AddInt64(-1)
	check(x, err, "5")
	x, err = a.Int64Sub(1)
	check(x, err, "-5")
	x, err = b.Int64Div(3)
	check(x, err, "2")
	x, err = b.Neg()
	check(x, err, "-1.5")

	c, err := a.Clone()
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.MulAssign(b))
	require.NoError(t, c.SubInt64Assign(9))
	require.Equal(t, "0", c.String())
	require.Equal(t, "6", a.String())

	f, err := b.Float64(algebra.Exact)
	require.NoError(t, err)
	require.Equal(t, 1.5, f)
}

// TestPrecisionMismatch: balls at different precisions never mix.
func TestPrecisionMismatch(t *testing.T) {
	lo, hi := precision(t, 64), precision(t, 128)
	a, b := parseReal(t, lo, "1"), parseReal(t, hi, "1")

	_, err := a.Add(b)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
	require.ErrorIs(t, a.AddAssign(b), algebra.ErrContextMismatch)
	_, err = a.Overlaps(b)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
	require.False(t, a.Equal(b))

	same := precision(t, 64)
	c := parseReal(t, same, "1")
	require.True(t, a.Equal(c))
	require.Equal(t, a.Hash(), c.Hash())
}

// TestEqualHash: equal exact points hash equally however they were built.
func TestEqualHash(t *testing.T) {
	ctx := precision(t, 64)
	a, err := ball.FromInt64(ctx, 3)
	require.NoError(t, err)
	defer a.Close()
	b, err := ball.FromFloat64(ctx, 3)
	require.NoError(t, err)
	defer b.Close()
	c := parseReal(t, ctx, "6/2")

	require.True(t, a.Equal(b))
	require.True(t, a.Equal(c))
	require.Equal(t, a.Hash(), b.Hash())
	require.Equal(t, a.Hash(), c.Hash())

	inf, err := ball.FromFloat64(ctx, math.Inf(1))
	require.NoError(t, err)
	defer inf.Close()
	require.False(t, inf.IsFinite())
	require.False(t, inf.Equal(inf))
}

// TestSignedZero: a zero reached through a negative factor is the same
// ball as 0, with the same text and hash.
func TestSignedZero(t *testing.T) {
	ctx := precision(t, 64)
	zero := parseReal(t, ctx, "0")
	minus := parseReal(t, ctx, "-1")
	nz, err := minus.Mul(zero)
	require.NoError(t, err)
	defer nz.Close()
	neg, err := zero.Neg()
	require.NoError(t, err)
	defer neg.Close()
	f, err := ball.FromFloat64(ctx, math.Copysign(0, -1))
	require.NoError(t, err)
	defer f.Close()

	for _, x := range []*ball.Real{nz, neg, f} {
		require.True(t, x.Equal(zero))
		require.Equal(t, zero.Hash(), x.Hash())
		require.Equal(t, "0", x.String())
	}

	cz, err := ball.ComplexFromInt64(ctx, 0)
	require.NoError(t, err)
	defer cz.Close()
	cn, err := cz.MulInt64(-1)
	require.NoError(t, err)
	defer cn.Close()
	require.True(t, cn.Equal(cz))
	require.Equal(t, cz.Hash(), cn.Hash())
	require.Equal(t, cz.String(), cn.String())
}

// TestExtremeExponent: balls far outside the decimal range print quickly in
// hexadecimal and parse back to the same ball.
func TestExtremeExponent(t *testing.T) {
	ctx := precision(t, 96)
	mid := new(big.Float).SetMantExp(big.NewFloat(0.75), -452984831)
	rad := new(big.Float).SetMantExp(big.NewFloat(0.5), -452984900)
	x, err := ball.FromMidRad(ctx, mid, rad)
	require.NoError(t, err)
	defer x.Close()

	s := x.String()
	require.Contains(t, s, "p-452984831")
	back := parseReal(t, ctx, s)
	require.Equal(t, s, back.String())
	ok, err := back.Contains(x)
	require.NoError(t, err)
	require.True(t, ok)

	exact, err := ball.FromMidRad(ctx, mid, new(big.Float))
	require.NoError(t, err)
	defer exact.Close()
	again := parseReal(t, ctx, exact.String())
	require.True(t, again.Equal(exact))
	require.Equal(t, exact.Hash(), again.Hash())
}

// TestFromMidRad rejects radii that do not describe a ball.
func TestFromMidRad(t *testing.T) {
	ctx := precision(t, 64)
	x, err := ball.FromMidRad(ctx, big.NewFloat(2), big.NewFloat(0.5))
	require.NoError(t, err)
	defer x.Close()
	require.False(t, x.IsExact())
	y := parseReal(t, ctx, "2.25")
	ok, err := x.Contains(y)
	require.NoError(t, err)
	require.True(t, ok)

	live := backend.Live(backend.KindArb)
	_, err = ball.FromMidRad(ctx, big.NewFloat(1), big.NewFloat(-1))
	require.ErrorIs(t, err, algebra.ErrOutOfRange)
	_, err = ball.FromMidRad(ctx, big.NewFloat(1), nil)
	require.ErrorIs(t, err, algebra.ErrNilValue)
	_, err = ball.ParseReal(ctx, "[1 +/-]")
	require.ErrorIs(t, err, algebra.ErrParse)
	require.Equal(t, live, backend.Live(backend.KindArb))
}

// TestComplex covers construction from parts and rectangular arithmetic.
func TestComplex(t *testing.T) {
	ctx := precision(t, 64)
	z, err := ball.FromParts(parseReal(t, ctx, "1"), parseReal(t, ctx, "2"))
	require.NoError(t, err)
	defer z.Close()
	w, err := ball.FromParts(parseReal(t, ctx, "3"), parseReal(t, ctx, "4"))
	require.NoError(t, err)
	defer w.Close()

	p, err := z.Mul(w)
	require.NoError(t, err)
	defer p.Close()
	require.Equal(t, "-5 + 10*I", p.String())
	require.True(t, p.IsExact())

	re, err := p.Re()
	require.NoError(t, err)
	defer re.Close()
	im, err := p.Im()
	require.NoError(t, err)
	defer im.Close()
	require.Equal(t, "-5", re.String())
	require.Equal(t, "10", im.String())

	s, err := p.AddInt64(5)
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, "0 + 10*I", s.String())
	d, err := s.Int64Div(0)
	require.NoError(t, err)
	defer d.Close()
	require.True(t, d.IsExact())

	n, err := ball.ComplexFromInt64(ctx, 0)
	require.NoError(t, err)
	defer n.Close()
	inf, err := z.Div(n)
	require.NoError(t, err)
	defer inf.Close()
	require.False(t, inf.IsFinite())

	q, err := p.Div(w)
	require.NoError(t, err)
	defer q.Close()
	ok, err := q.Contains(z)
	require.NoError(t, err)
	require.True(t, ok)

	other := precision(t, 128)
	_, err = ball.FromParts(parseReal(t, ctx, "1"), parseReal(t, other, "1"))
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
	sum, err := z.Add(inf)
	require.NoError(t, err)
	defer sum.Close()
	require.False(t, sum.IsFinite())
}

// TestCodec round-trips both ball types and rejects malformed payloads.
func TestCodec(t *testing.T) {
	ctx := precision(t, 64)
	third, err := parseReal(t, ctx, "1").DivInt64(3)
	require.NoError(t, err)
	defer third.Close()

	bin, err := third.MarshalBinary()
	require.NoError(t, err)
	back, err := ball.DecodeReal(bin)
	require.NoError(t, err)
	defer back.Close()
	require.Equal(t, third.String(), back.String())
	require.Equal(t, third.Hash(), back.Hash())
	require.Equal(t, uint(64), back.Precision())

	text, err := third.EncodeYAML()
	require.NoError(t, err)
	require.Contains(t, string(text), "tag: ball.real")
	again, err := ball.DecodeReal(text)
	require.NoError(t, err)
	defer again.Close()
	ok, err := again.Contains(third)
	require.NoError(t, err)
	require.True(t, ok)

	z, err := ball.FromParts(third, parseReal(t, ctx, "-2"))
	require.NoError(t, err)
	defer z.Close()
	cb, err := z.MarshalBinary()
	require.NoError(t, err)
	zb, err := ball.DecodeComplex(cb)
	require.NoError(t, err)
	defer zb.Close()
	require.Equal(t, z.String(), zb.String())

	_, err = ball.DecodeComplex(bin)
	require.ErrorIs(t, err, algebra.ErrDecode)
	_, err = ball.DecodeReal(cb)
	require.ErrorIs(t, err, algebra.ErrDecode)
	rec, err := third.Record()
	require.NoError(t, err)
	rec.Floats[1] = []byte{1, 2, 3}
	_, err = ball.DecodeRealRecord(rec, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)

	other := precision(t, 128)
	rec, err = third.Record()
	require.NoError(t, err)
	_, err = ball.DecodeRealRecord(rec, other)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	// A midpoint wider than the working precision is not a 64-bit ball.
	wide, err := new(big.Float).SetPrec(200).SetMantExp(big.NewFloat(1), -452984831).GobEncode()
	require.NoError(t, err)
	rec.Floats[0] = wide
	live := backend.Live(backend.KindArb)
	_, err = ball.DecodeRealRecord(rec, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)
	require.Equal(t, live, backend.Live(backend.KindArb))

	narrow, err := new(big.Float).SetPrec(8).SetInt64(5).GobEncode()
	require.NoError(t, err)
	rec.Floats[0] = narrow
	five, err := ball.DecodeRealRecord(rec, nil)
	require.NoError(t, err)
	defer five.Close()
	m, err := five.Mid()
	require.NoError(t, err)
	require.Equal(t, uint(64), m.Prec())
}

// TestReleased: closed balls report ErrReleased and free their Context.
func TestReleased(t *testing.T) {
	ctx := precision(t, 64)
	refs := ctx.Refs()
	x, err := ball.FromInt64(ctx, 2)
	require.NoError(t, err)
	y, err := ball.FromInt64(ctx, 3)
	require.NoError(t, err)
	defer y.Close()
	require.Equal(t, refs+2, ctx.Refs())

	x.Close()
	x.Close()
	require.True(t, x.Released())
	require.Nil(t, x.Context())
	require.Equal(t, refs+1, ctx.Refs())

	_, err = x.Add(y)
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = y.Mul(x)
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = x.Mid()
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = ball.FromReal(x)
	require.ErrorIs(t, err, algebra.ErrReleased)
	require.Equal(t, "<released>", x.String())
	require.False(t, x.IsFinite())
}
