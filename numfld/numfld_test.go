// SPDX-License-Identifier: MIT

package numfld_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/numfld"
	"github.com/katalvlaran/lvnum/rational"
	"github.com/stretchr/testify/require"
)

func rats(v ...int64) []*big.Rat {
	out := make([]*big.Rat, len(v))
	for i, x := range v {
		out[i] = big.NewRat(x, 1)
	}

	return out
}

// field builds Q[a]/(f) for f given ascending.
func field(t *testing.T, f ...int64) *algebra.Context {
	t.Helper()
	c, err := algebra.NewNumberField(rats(f...), "")
	require.NoError(t, err)
	t.Cleanup(c.Release)

	return c
}

func gen(t *testing.T, c *algebra.Context) *numfld.Elem {
	t.Helper()
	a, err := numfld.Gen(c)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	return a
}

// TestSqrtTwo works in Q(sqrt 2) = Q[a]/(a^2 - 2).
func TestSqrtTwo(t *testing.T) {
	k := field(t, -2, 0, 1)
	deg, err := numfld.Degree(k)
	require.NoError(t, err)
	require.Equal(t, 2, deg)

	a := gen(t, k)
	require.Equal(t, "a", a.String())

	sq, err := a.Mul(a)
	require.NoError(t, err)
	defer sq.Close()
	require.Equal(t, "2", sq.String())

	p, err := a.AddInt64(1)
	require.NoError(t, err)
	defer p.Close()
	inv, err := p.Inv()
	require.NoError(t, err)
	defer inv.Close()
	require.Equal(t, "a - 1", inv.String()) // (a + 1)(a - 1) = 1

	q, err := a.Div(p)
	require.NoError(t, err)
	defer q.Close()
	require.Equal(t, "-a + 2", q.String())

	half, err := a.DivInt64(2)
	require.NoError(t, err)
	defer half.Close()
	require.NoError(t, half.AddInt64Assign(3))
	require.Equal(t, "1/2*a + 3", half.String())

	cube, err := a.Pow(3)
	require.NoError(t, err)
	defer cube.Close()
	require.Equal(t, "2*a", cube.String())

	n, err := a.Int64Sub(1)
	require.NoError(t, err)
	defer n.Close()
	require.Equal(t, "-a + 1", n.String())

	d, err := p.Int64Div(2)
	require.NoError(t, err)
	defer d.Close()
	require.Equal(t, "2*a - 2", d.String())

	r, err := rational.FromFrac(3, 4)
	require.NoError(t, err)
	defer r.Close()
	c, err := numfld.FromRational(k, r)
	require.NoError(t, err)
	defer c.Close()
	require.Equal(t, "3/4", c.String())
}

// TestZeroDivisors: Q[a]/(a^2 - 1) is not a field.
func TestZeroDivisors(t *testing.T) {
	k := field(t, -1, 0, 1)
	a := gen(t, k)
	z, err := a.SubInt64(1)
	require.NoError(t, err)
	defer z.Close()
	require.False(t, z.IsZero())
	require.False(t, z.IsUnit())

	live := backend.Live(backend.KindNf)
	_, err = z.Inv()
	require.ErrorIs(t, err, algebra.ErrNotInvertible)
	_, err = a.Div(z)
	require.ErrorIs(t, err, algebra.ErrNotInvertible)
	_, err = z.Int64Div(1)
	require.ErrorIs(t, err, algebra.ErrNotInvertible)
	require.ErrorIs(t, a.DivAssign(z), algebra.ErrNotInvertible)
	_, err = a.DivInt64(0)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)

	zero, err := numfld.FromInt64(k, 0)
	require.NoError(t, err)
	defer zero.Close()
	_, err = a.Div(zero)
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	_, err = zero.Inv()
	require.ErrorIs(t, err, algebra.ErrDivisionByZero)
	require.Equal(t, live+1, backend.Live(backend.KindNf))
	require.Equal(t, "a", a.String())
}

// TestFieldMismatch: distinct defining polynomials never mix.
func TestFieldMismatch(t *testing.T) {
	a := gen(t, field(t, -2, 0, 1))
	b := gen(t, field(t, -2, 0, 1))
	c := gen(t, field(t, -3, 0, 1))

	s, err := a.Add(b)
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, "2*a", s.String())
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())

	_, err = a.Mul(c)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
	require.False(t, a.Equal(c))

	_, err = algebra.NewNumberField(rats(0, 0, 1), "a")
	require.ErrorIs(t, err, algebra.ErrInvalidParameters)
}

// TestParseReduces reads the printed form and reduces modulo f.
func TestParseReduces(t *testing.T) {
	k := field(t, -2, 0, 1)
	x, err := numfld.Parse(k, "a^2 + 1/2*a")
	require.NoError(t, err)
	defer x.Close()
	require.Equal(t, "1/2*a + 2", x.String())

	y, err := numfld.Parse(k, x.String())
	require.NoError(t, err)
	defer y.Close()
	require.True(t, x.Equal(y))

	_, err = numfld.Parse(k, "2*b")
	require.ErrorIs(t, err, algebra.ErrParse)
}

// TestCodec round-trips both encodings and rejects unreduced payloads.
func TestCodec(t *testing.T) {
	k := field(t, -2, 0, 1)
	x, err := numfld.FromCoeffs(k, []*big.Rat{big.NewRat(-1, 3), big.NewRat(5, 2)})
	require.NoError(t, err)
	defer x.Close()

	bin, err := x.MarshalBinary()
	require.NoError(t, err)
	back, err := numfld.Decode(bin)
	require.NoError(t, err)
	defer back.Close()
	require.True(t, back.Equal(x))

	text, err := x.EncodeYAML()
	require.NoError(t, err)
	require.Contains(t, string(text), "tag: numfld")
	again, err := numfld.Decode(text)
	require.NoError(t, err)
	defer again.Close()
	require.True(t, again.Equal(x))

	rec, err := x.Record()
	require.NoError(t, err)
	_, err = numfld.DecodeRecord(rec, field(t, -3, 0, 1))
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	live := backend.Live(backend.KindNf)
	rec.Ints[0], rec.Ints[1] = backend.BigBytes(big.NewInt(-2)), backend.BigBytes(big.NewInt(6))
	_, err = numfld.DecodeRecord(rec, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)

	rec.Ints = append(rec.Ints[:0], backend.BigBytes(big.NewInt(1)), backend.BigBytes(big.NewInt(1)),
		backend.BigBytes(big.NewInt(0)), backend.BigBytes(big.NewInt(1)))
	_, err = numfld.DecodeRecord(rec, nil)
	require.ErrorIs(t, err, algebra.ErrDecode)
	require.Equal(t, live, backend.Live(backend.KindNf))
}

// TestReleased: closed elements report ErrReleased.
func TestReleased(t *testing.T) {
	k := field(t, 1, 0, 1)
	refs := k.Refs()
	a, err := numfld.Gen(k)
	require.NoError(t, err)
	require.Equal(t, refs+1, k.Refs())
	a.Close()
	a.Close()
	require.Equal(t, refs, k.Refs())
	require.Nil(t, a.Context())
	require.Equal(t, "<released>", a.String())
	_, err = a.Inv()
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = a.MulInt64(2)
	require.ErrorIs(t, err, algebra.ErrReleased)
	require.False(t, a.IsUnit())
}
