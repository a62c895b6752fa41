// SPDX-License-Identifier: MIT

package intmod_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/intmod"
	"github.com/stretchr/testify/require"
)

func ring(t *testing.T, n int64) *algebra.Context {
	t.Helper()
	c, err := algebra.NewIntModRing(big.NewInt(n))
	require.NoError(t, err)
	t.Cleanup(c.Release)

	return c
}

func elem(t *testing.T, c *algebra.Context, n int64) *intmod.IntMod {
	t.Helper()
	a, err := intmod.FromInt64(c, n)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	return a
}

// TestConstructionReduces stores canonical residues.
func TestConstructionReduces(t *testing.T) {
	z7 := ring(t, 7)
	require.Equal(t, "3", elem(t, z7, 10).String())
	require.Equal(t, "4", elem(t, z7, -3).String())

	b, err := intmod.FromBig(z7, new(big.Int).Lsh(big.NewInt(1), 100))
	require.NoError(t, err)
	defer b.Close()
	require.Equal(t, "2", b.String()) // 2^100 = 2 (mod 7)

	p, err := intmod.Parse(z7, "-15")
	require.NoError(t, err)
	defer p.Close()
	require.Equal(t, "6", p.String())
	_, err = intmod.Parse(z7, "x")
	require.ErrorIs(t, err, algebra.ErrParse)

	q, err := algebra.NewPolyRing(algebra.BaseInteger, "x")
	require.NoError(t, err)
	defer q.Release()
	_, err = intmod.FromInt64(q, 1)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
}

// TestArithmetic covers all call shapes in Z/7Z.
func TestArithmetic(t *testing.T) {
	z7 := ring(t, 7)
	a, b := elem(t, z7, 3), elem(t, z7, 5)

	cases := []struct {
		name string
		f    func() (*intmod.IntMod, error)
		want string
	}{
		{"add", func() (*intmod.IntMod, error) { return a.Add(b) }, "1"},
		{"sub", func() (*intmod.IntMod, error) { return a.Sub(b) }, "5"},
		{"mul", func() (*intmod.IntMod, error) { return a.Mul(b) }, "1"},
		{"div", func() (*intmod.IntMod, error) { return a.Div(b) }, "2"},
		{"add native", func() (*intmod.IntMod, error) { return a.AddInt64(-10) }, "0"},
		{"div native", func() (*intmod.IntMod, error) { return a.DivInt64(2) }, "5"},
		{"native sub", func() (*intmod.IntMod, error) { return a.Int64Sub(1) }, "5"},
		{"native div", func() (*intmod.IntMod, error) { return b.Int64Div(1) }, "3"},
		{"neg", a.Neg, "4"},
		{"inv", a.Inv, "5"},
		{"pow", func() (*intmod.IntMod, error) { return a.Pow(6) }, "1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := c.f()
			require.NoError(t, err)
			defer r.Close()
			require.Equal(t, c.want, r.String())
			require.True(t, r.Context().Compatible(z7))
		})
	}
}

// TestNonUnits separates zero divisors from non-invertible ones.
func TestNonUnits(t *testing.T) {
	z6 := ring(t, 6)
	a, two, zero := elem(t, z6, 5), elem(t, z6, 2), elem(t, z6, 0)

	_, err := a.Div(zero)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	_, err = a.Div(two)
	require.ErrorIs(t, err, algebra.ErrNotInvertible)
	_, err = a.DivInt64(3)
	require.ErrorIs(t, err, algebra.ErrNotInvertible)
	_, err = a.DivInt64(0)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	_, err = two.Inv()
	require.ErrorIs(t, err, algebra.ErrNotInvertible)
	_, err = zero.Inv()
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	require.ErrorIs(t, a.DivAssign(two), algebra.ErrNotInvertible)
	require.Equal(t, "5", a.String())

	require.True(t, a.IsUnit())
	require.False(t, two.IsUnit())
	inv, err := a.Inv()
	require.NoError(t, err)
	defer inv.Close()
	require.Equal(t, "5", inv.String())
}

// TestRingMismatch: different moduli never reach the backend.
func TestRingMismatch(t *testing.T) {
	a := elem(t, ring(t, 7), 3)
	b := elem(t, ring(t, 11), 3)

	live := backend.Live(backend.KindFmpz)
	_, err := a.Add(b)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
	require.ErrorIs(t, a.MulAssign(b), algebra.ErrContextMismatch)
	require.Equal(t, live, backend.Live(backend.KindFmpz))
	require.False(t, a.Equal(b))

	// Independently created rings with the same modulus interoperate.
	c := elem(t, ring(t, 7), 4)
	s, err := a.Add(c)
	require.NoError(t, err)
	defer s.Close()
	require.True(t, s.IsZero())
}

// TestCloneIsDeep: mutating a clone leaves the original alone and both
// share one descriptor.
func TestCloneIsDeep(t *testing.T) {
	z7 := ring(t, 7)
	a := elem(t, z7, 3)
	refs := z7.Refs()

	c, err := a.Clone()
	require.NoError(t, err)
	require.Equal(t, refs+1, z7.Refs())
	require.NoError(t, c.AddInt64Assign(1))
	require.Equal(t, "4", c.String())
	require.Equal(t, "3", a.String())

	c.Close()
	c.Close()
	require.Equal(t, refs, z7.Refs())
	require.Nil(t, c.Context())
}

// TestContextOutlivesCaller: values keep the ring alive after the caller
// released its own handle.
func TestContextOutlivesCaller(t *testing.T) {
	before := backend.Live(backend.KindModCtx)
	c, err := algebra.NewIntModRing(big.NewInt(13))
	require.NoError(t, err)
	a, err := intmod.FromInt64(c, 5)
	require.NoError(t, err)
	c.Release()

	b, err := a.MulInt64(3)
	require.NoError(t, err)
	require.Equal(t, "2", b.String())
	require.Equal(t, before+1, backend.Live(backend.KindModCtx))

	a.Close()
	b.Close()
	require.Equal(t, before, backend.Live(backend.KindModCtx))
}

// TestHashAndEqual: equal residues in equal rings hash equally.
func TestHashAndEqual(t *testing.T) {
	a := elem(t, ring(t, 7), 10)
	b := elem(t, ring(t, 7), 3)
	c := elem(t, ring(t, 11), 3)

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, b.Hash(), c.Hash())

	n, err := a.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	z, err := a.Integer()
	require.NoError(t, err)
	defer z.Close()
	require.Equal(t, "3", z.String())
}

// TestCodec covers both decode paths.
func TestCodec(t *testing.T) {
	z7 := ring(t, 7)
	a := elem(t, z7, 5)

	data, err := a.MarshalBinary()
	require.NoError(t, err)
	back, err := intmod.Decode(data)
	require.NoError(t, err)
	defer back.Close()
	require.True(t, a.Equal(back))
	require.Equal(t, "Ring of integers mod 7", back.Context().String())

	text, err := a.EncodeYAML()
	require.NoError(t, err)
	rec := mustRecord(t, a)
	attached, err := intmod.DecodeRecord(rec, z7)
	require.NoError(t, err)
	defer attached.Close()
	require.Equal(t, z7.ID(), attached.Context().ID())
	_, err = intmod.DecodeRecord(rec, ring(t, 11))
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	again, err := intmod.Decode(text)
	require.NoError(t, err)
	defer again.Close()
	require.True(t, a.Equal(again))

	rec.Ints[0] = []byte{0, 9} // 9 >= 7
	_, err = intmod.DecodeRecord(rec, z7)
	require.ErrorIs(t, err, algebra.ErrDecode)
}

func mustRecord(t *testing.T, a *intmod.IntMod) *codec.Record {
	t.Helper()
	rec, err := a.Record()
	require.NoError(t, err)

	return rec
}

// TestReleased guards every entry point.
func TestReleased(t *testing.T) {
	z7 := ring(t, 7)
	a, err := intmod.FromInt64(z7, 1)
	require.NoError(t, err)
	b := elem(t, z7, 2)
	a.Close()

	_, err = a.Add(b)
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = b.Sub(a)
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = a.Pow(2)
	require.ErrorIs(t, err, algebra.ErrReleased)
	require.Equal(t, "<released>", a.String())
	require.False(t, a.IsUnit())
}
