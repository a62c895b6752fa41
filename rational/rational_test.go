// SPDX-License-Identifier: MIT

package rational_test

import (
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/integer"
	"github.com/katalvlaran/lvnum/rational"
	"github.com/stretchr/testify/require"
)

// TestParseNormalizes: "12/8" equals "3/2" and hashes identically.
func TestParseNormalizes(t *testing.T) {
	a, err := rational.Parse("12/8")
	require.NoError(t, err)
	defer a.Close()
	b, err := rational.Parse("3/2")
	require.NoError(t, err)
	defer b.Close()

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.Equal(t, "3/2", a.String())
}

// TestHashAcrossRepresentations: a stored 2/4 and a canonical 1/2 agree.
func TestHashAcrossRepresentations(t *testing.T) {
	raw := rational.FromFracUnchecked(2, 4)
	defer raw.Close()
	require.Equal(t, "2/4", rational.StoredPair(raw)) // really non-canonical underneath

	half, err := rational.FromFrac(1, 2)
	require.NoError(t, err)
	defer half.Close()

	require.True(t, raw.Equal(half))
	require.Equal(t, half.Hash(), raw.Hash())
	require.Equal(t, "1/2", raw.String())

	rec, err := raw.Record()
	require.NoError(t, err)
	want, err := half.Record()
	require.NoError(t, err)
	require.Equal(t, want, rec)

	neg := rational.FromFracUnchecked(3, -6)
	defer neg.Close()
	m, err := rational.FromFrac(-1, 2)
	require.NoError(t, err)
	defer m.Close()
	require.Equal(t, m.Hash(), neg.Hash())
}

// TestParseErrors covers malformed input.
func TestParseErrors(t *testing.T) {
	live := backend.Live(backend.KindFmpq)
	for _, s := range []string{"", "1/", "/2", "1/0", "1/-2", "a/b", "1.5", "1/2/3"} {
		_, err := rational.Parse(s)
		require.ErrorIs(t, err, algebra.ErrParse, s)
	}
	_, err := rational.ParseBase("1/2", 1)
	require.ErrorIs(t, err, algebra.ErrParse)
	_, err = rational.FromFrac(1, 0)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	require.Equal(t, live, backend.Live(backend.KindFmpq))

	q, err := rational.ParseBase("ff/10", 16)
	require.NoError(t, err)
	defer q.Close()
	require.Equal(t, "255/16", q.String())
}

// TestArithmetic runs the dispatch shapes.
func TestArithmetic(t *testing.T) {
	a := rational.MustParse("1/2")
	b := rational.MustParse("1/3")
	defer a.Close()
	defer b.Close()

	steps := []struct {
		f    func() (*rational.Rational, error)
		want string
	}{
		{func() (*rational.Rational, error) { return a.Add(b) }, "5/6"},
		{func() (*rational.Rational, error) { return a.Sub(b) }, "1/6"},
		{func() (*rational.Rational, error) { return a.Mul(b) }, "1/6"},
		{func() (*rational.Rational, error) { return a.Div(b) }, "3/2"},
		{func() (*rational.Rational, error) { return a.AddInt64(1) }, "3/2"},
		{func() (*rational.Rational, error) { return a.DivInt64(-2) }, "-1/4"},
		{func() (*rational.Rational, error) { return a.Int64Sub(1) }, "1/2"},
		{func() (*rational.Rational, error) { return b.Int64Div(2) }, "6"},
		{func() (*rational.Rational, error) { return b.Inv() }, "3"},
		{func() (*rational.Rational, error) { return a.Neg() }, "-1/2"},
	}
	for i, s := range steps {
		q, err := s.f()
		require.NoError(t, err, i)
		require.Equal(t, s.want, q.String(), i)
		q.Close()
	}

	c, err := a.Clone()
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.AddAssign(b))
	require.NoError(t, c.MulInt64Assign(6))
	require.Equal(t, "5", c.String())
	require.True(t, c.IsInteger())
	require.Equal(t, "1/2", a.String())

	zero := rational.FromInt64(0)
	defer zero.Close()
	_, err = a.Div(zero)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	_, err = zero.Inv()
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	_, err = zero.Int64Div(1)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	require.ErrorIs(t, c.DivInt64Assign(0), algebra.ErrDivisionByZero)
}

// TestParts covers Num, Den, Floor and integer interop.
func TestParts(t *testing.T) {
	q := rational.FromFracUnchecked(-14, 4) // -7/2
	defer q.Close()

	n, err := q.Num()
	require.NoError(t, err)
	defer n.Close()
	d, err := q.Den()
	require.NoError(t, err)
	defer d.Close()
	f, err := q.Floor()
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, "-7", n.String())
	require.Equal(t, "2", d.String())
	require.Equal(t, "-4", f.String())

	back, err := rational.FromIntegers(n, d)
	require.NoError(t, err)
	defer back.Close()
	require.True(t, back.Equal(q))

	zero := integer.FromInt64(0)
	defer zero.Close()
	_, err = rational.FromIntegers(n, zero)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
}

// TestFloat covers exact binary construction and both conversion modes.
func TestFloat(t *testing.T) {
	q, err := rational.FromFloat64(0.375)
	require.NoError(t, err)
	defer q.Close()
	require.Equal(t, "3/8", q.String())
	f, err := q.Float64(algebra.Exact)
	require.NoError(t, err)
	require.Equal(t, 0.375, f)

	third := rational.MustParse("1/3")
	defer third.Close()
	_, err = third.Float64(algebra.Exact)
	require.ErrorIs(t, err, algebra.ErrInexact)
	f, err = third.Float64(algebra.Nearest)
	require.NoError(t, err)
	require.InDelta(t, 1.0/3, f, 1e-16)

	_, err = rational.FromFloat64(math.NaN())
	require.ErrorIs(t, err, algebra.ErrInexact)
	_, err = rational.FromFloat64(math.Inf(-1))
	require.ErrorIs(t, err, algebra.ErrOverflow)

	huge, err := rational.Parse("1" + strings.Repeat("0", 400) + "/3")
	require.NoError(t, err)
	defer huge.Close()
	_, err = huge.Float64(algebra.Nearest)
	require.ErrorIs(t, err, algebra.ErrOverflow)
}

// TestCodec round-trips and rejects non-canonical payloads.
func TestCodec(t *testing.T) {
	q := rational.MustParse("-22/7")
	defer q.Close()

	for _, enc := range []func() ([]byte, error){q.MarshalBinary, q.EncodeYAML} {
		data, err := enc()
		require.NoError(t, err)
		back, err := rational.Decode(data)
		require.NoError(t, err)
		require.True(t, q.Equal(back))
		back.Close()
	}

	// 2/4 spelled out in the record: 02 04 magnitudes with sign byte 00.
	_, err := rational.Decode([]byte("tag: rational\nints: [\"0002\", \"0004\"]\n"))
	require.ErrorIs(t, err, algebra.ErrDecode)
	_, err = rational.Decode([]byte("tag: rational\nints: [\"0001\", \"00\"]\n"))
	require.ErrorIs(t, err, algebra.ErrDecode)
	_, err = rational.Decode([]byte("tag: rational\nints: [\"0001\"]\n"))
	require.ErrorIs(t, err, algebra.ErrDecode)
}

// TestReleased guards every entry point.
func TestReleased(t *testing.T) {
	q := rational.FromInt64(1)
	q.Close()
	_, err := q.Add(q)
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = q.Num()
	require.ErrorIs(t, err, algebra.ErrReleased)
	require.Equal(t, uint64(0), q.Hash())
	require.Equal(t, "<released>", q.String())
}
