// SPDX-License-Identifier: MIT

package algebra_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/stretchr/testify/require"
)

func rats(v ...int64) []*big.Rat {
	out := make([]*big.Rat, len(v))
	for i, x := range v {
		out[i] = big.NewRat(x, 1)
	}

	return out
}

// TestInvalidParameters covers every construction failure mode.
func TestInvalidParameters(t *testing.T) {
	cases := []struct {
		name string
		p    algebra.Params
	}{
		{"no kind", algebra.Params{}},
		{"unknown kind", algebra.Params{Kind: 42}},
		{"modulus one", algebra.Params{Kind: algebra.KindIntMod, Modulus: big.NewInt(1)}},
		{"modulus missing", algebra.Params{Kind: algebra.KindIntMod}},
		{"intmod with base", algebra.Params{Kind: algebra.KindIntMod, Base: algebra.BaseInteger, Modulus: big.NewInt(5)}},
		{"poly without base", algebra.Params{Kind: algebra.KindPolyRing}},
		{"poly bad var", algebra.Params{Kind: algebra.KindPolyRing, Base: algebra.BaseInteger, Var: "1x"}},
		{"poly mod without modulus", algebra.Params{Kind: algebra.KindPolyRing, Base: algebra.BaseIntMod}},
		{"zero rows", algebra.Params{Kind: algebra.KindMatrixSpace, Base: algebra.BaseInteger, Rows: 0, Cols: 2}},
		{"negative cols", algebra.Params{Kind: algebra.KindMatrixSpace, Base: algebra.BaseRational, Rows: 2, Cols: -1}},
		{"field non-prime", algebra.Params{Kind: algebra.KindFiniteField, Modulus: big.NewInt(9), Degree: 1}},
		{"field degree zero", algebra.Params{Kind: algebra.KindFiniteField, Modulus: big.NewInt(3)}},
		{"field with base", algebra.Params{Kind: algebra.KindFiniteField, Base: algebra.BaseInteger, Modulus: big.NewInt(3), Degree: 1}},
		{"fq poly composite", algebra.Params{Kind: algebra.KindPolyRing, Base: algebra.BaseFiniteField, Modulus: big.NewInt(4), Degree: 1}},
		{"fq matrix no degree", algebra.Params{Kind: algebra.KindMatrixSpace, Base: algebra.BaseFiniteField, Rows: 2, Cols: 2, Modulus: big.NewInt(5)}},
		{"fq poly generator var", algebra.Params{Kind: algebra.KindPolyRing, Base: algebra.BaseFiniteField, Var: "o", Modulus: big.NewInt(5), Degree: 1}},
		{"unknown base", algebra.Params{Kind: algebra.KindPolyRing, Base: 5}},
		{"field degree huge", algebra.Params{Kind: algebra.KindFiniteField, Modulus: big.NewInt(2), Degree: algebra.MaxFieldDegree + 1}},
		{"matrix too large", algebra.Params{Kind: algebra.KindMatrixSpace, Base: algebra.BaseInteger, Rows: 1 << 13, Cols: 1 << 12}},
		{"number field empty", algebra.Params{Kind: algebra.KindNumberField}},
		{"number field constant", algebra.Params{Kind: algebra.KindNumberField, Defining: rats(5)}},
		{"number field zero lead", algebra.Params{Kind: algebra.KindNumberField, Defining: rats(1, 1, 0)}},
		{"number field square", algebra.Params{Kind: algebra.KindNumberField, Defining: rats(1, 2, 1)}},
		{"precision missing", algebra.Params{Kind: algebra.KindPrecision}},
		{"precision one", algebra.Params{Kind: algebra.KindPrecision, Precision: 1}},
		{"precision huge", algebra.Params{Kind: algebra.KindPrecision, Precision: algebra.MaxPrecision + 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx, err := algebra.New(c.p)
			require.ErrorIs(t, err, algebra.ErrInvalidParameters)
			require.Nil(t, ctx)
		})
	}
}

// TestStructuralCompatibility shows independently built equal contexts
// interoperate while any identity parameter difference separates them.
func TestStructuralCompatibility(t *testing.T) {
	a, err := algebra.NewMatrixSpace(algebra.BaseInteger, 2, 2)
	require.NoError(t, err)
	defer a.Release()
	b, err := algebra.NewMatrixSpace(algebra.BaseInteger, 2, 2)
	require.NoError(t, err)
	defer b.Release()
	c, err := algebra.NewMatrixSpace(algebra.BaseInteger, 3, 3)
	require.NoError(t, err)
	defer c.Release()
	q, err := algebra.NewMatrixSpace(algebra.BaseRational, 2, 2)
	require.NoError(t, err)
	defer q.Release()

	require.True(t, a.Compatible(a))
	require.True(t, a.Compatible(b)) // structural, not identity
	require.NotEqual(t, a.ID(), b.ID())
	require.False(t, a.Compatible(c))
	require.False(t, a.Compatible(q))
	require.ErrorIs(t, a.CheckCompatible(c), algebra.ErrContextMismatch)
	require.NoError(t, a.CheckCompatible(b))

	// The variable name is display-only.
	x, err := algebra.NewPolyRing(algebra.BaseInteger, "x")
	require.NoError(t, err)
	defer x.Release()
	y, err := algebra.NewPolyRing(algebra.BaseInteger, "y")
	require.NoError(t, err)
	defer y.Release()
	require.True(t, x.Compatible(y))

	m5, err := algebra.NewIntModRing(big.NewInt(5))
	require.NoError(t, err)
	defer m5.Release()
	m7, err := algebra.NewIntModRing(big.NewInt(7))
	require.NoError(t, err)
	defer m7.Release()
	require.False(t, m5.Compatible(m7))
	require.NotEqual(t, m5.Digest().Sum64(), m7.Digest().Sum64())
}

// TestReferenceCounting verifies the descriptor outlives every handle and
// is cleared exactly when the last one goes.
func TestReferenceCounting(t *testing.T) {
	before := backend.Live(backend.KindModCtx)

	ctx, err := algebra.NewIntModRing(big.NewInt(12))
	require.NoError(t, err)
	require.Equal(t, before+1, backend.Live(backend.KindModCtx))

	c2, err := ctx.Clone()
	require.NoError(t, err)
	require.EqualValues(t, 2, ctx.Refs())
	require.Equal(t, ctx.ID(), c2.ID())

	ctx.Release()
	ctx.Release() // idempotent per handle
	require.True(t, ctx.Released())
	require.EqualValues(t, 1, c2.Refs())
	require.Equal(t, before+1, backend.Live(backend.KindModCtx)) // still held by c2

	_, err = ctx.Clone()
	require.ErrorIs(t, err, algebra.ErrReleased)
	_, err = ctx.ModCtx()
	require.ErrorIs(t, err, algebra.ErrReleased)
	require.False(t, ctx.Compatible(c2))
	require.ErrorIs(t, c2.CheckCompatible(ctx), algebra.ErrReleased)

	mod, err := c2.ModCtx()
	require.NoError(t, err)
	require.Equal(t, "12", backend.ModCtxModulus(mod).String())

	c2.Release()
	require.Equal(t, before, backend.Live(backend.KindModCtx))
}

// TestAccessorsReturnCopies makes sure callers cannot mutate a live Context.
func TestAccessorsReturnCopies(t *testing.T) {
	ctx, err := algebra.NewModMatrixSpace(big.NewInt(7), 2, 3)
	require.NoError(t, err)
	defer ctx.Release()

	m := ctx.Modulus()
	m.SetInt64(11)
	require.Equal(t, "7", ctx.Modulus().String())

	p := ctx.Params()
	p.Modulus.SetInt64(13)
	p.Rows = 9
	require.Equal(t, "7", ctx.Modulus().String())
	require.Equal(t, 2, ctx.Rows())

	nf, err := algebra.NewNumberField(rats(-2, 0, 1), "")
	require.NoError(t, err)
	defer nf.Release()
	f := nf.Defining()
	f[0].SetInt64(3)
	require.Equal(t, "-2", nf.Defining()[0].RatString())
}

// TestReshape derives product and transpose shapes.
func TestReshape(t *testing.T) {
	ctx, err := algebra.NewModMatrixSpace(big.NewInt(5), 2, 3)
	require.NoError(t, err)
	defer ctx.Release()

	tr, err := ctx.Reshape(3, 2)
	require.NoError(t, err)
	defer tr.Release()
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 2, tr.Cols())
	require.Equal(t, "5", tr.Modulus().String())
	require.False(t, tr.Compatible(ctx))

	same, err := ctx.Reshape(2, 3)
	require.NoError(t, err)
	defer same.Release()
	require.Equal(t, ctx.ID(), same.ID())

	_, err = ctx.Reshape(0, 3)
	require.ErrorIs(t, err, algebra.ErrInvalidParameters)

	pr, err := algebra.NewPrecision(53)
	require.NoError(t, err)
	defer pr.Release()
	_, err = pr.Reshape(1, 1)
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
}

// TestContextStrings pins the human-readable forms.
func TestContextStrings(t *testing.T) {
	build := []func() (*algebra.Context, error){
		func() (*algebra.Context, error) { return algebra.NewIntModRing(big.NewInt(12)) },
		func() (*algebra.Context, error) { return algebra.NewPolyRing(algebra.BaseInteger, "") },
		func() (*algebra.Context, error) { return algebra.NewModPolyRing(big.NewInt(7), "t") },
		func() (*algebra.Context, error) { return algebra.NewMatrixSpace(algebra.BaseRational, 2, 3) },
		func() (*algebra.Context, error) { return algebra.NewFiniteField(big.NewInt(3), 2, "") },
		func() (*algebra.Context, error) { return algebra.NewFqPolyRing(big.NewInt(2), 3, "y") },
		func() (*algebra.Context, error) { return algebra.NewFqMatrixSpace(big.NewInt(5), 2, 1, 2) },
		func() (*algebra.Context, error) { return algebra.NewNumberField(rats(-2, 0, 1), "") },
		func() (*algebra.Context, error) { return algebra.NewPrecision(128) },
	}
	want := []string{
		"Ring of integers mod 12",
		"Univariate polynomial ring in x over Integer Ring",
		"Univariate polynomial ring in t over Ring of integers mod 7",
		"Space of 2 by 3 matrices over Rational Field",
		"Finite field of order 3^2",
		"Univariate polynomial ring in y over Finite field of order 2^3",
		"Space of 1 by 2 matrices over Finite field of order 5^2",
		"Number field with defining polynomial a^2 - 2",
		"Ball context with 128 bits of precision",
	}
	for i, b := range build {
		ctx, err := b()
		require.NoError(t, err)
		require.Equal(t, want[i], ctx.String())
		ctx.Release()
	}
}

// TestExpect rejects contexts of the wrong kind or base.
func TestExpect(t *testing.T) {
	ctx, err := algebra.NewPolyRing(algebra.BaseRational, "x")
	require.NoError(t, err)
	defer ctx.Release()

	require.NoError(t, ctx.Expect(algebra.KindPolyRing, algebra.BaseRational))
	require.ErrorIs(t, ctx.Expect(algebra.KindPolyRing, algebra.BaseInteger), algebra.ErrContextMismatch)
	require.ErrorIs(t, ctx.Expect(algebra.KindMatrixSpace, algebra.BaseRational), algebra.ErrContextMismatch)

	var nilCtx *algebra.Context
	require.ErrorIs(t, nilCtx.Expect(algebra.KindPolyRing, algebra.BaseRational), algebra.ErrNilValue)
	_, err = ctx.FqCtx()
	require.ErrorIs(t, err, algebra.ErrContextMismatch)
}

// TestFieldBaseDescriptor shares GF(p^k) between the field and the rings
// built over it.
func TestFieldBaseDescriptor(t *testing.T) {
	before := backend.Live(backend.KindFqCtx)
	ring, err := algebra.NewFqPolyRing(big.NewInt(3), 2, "")
	require.NoError(t, err)
	require.Equal(t, algebra.DefaultPolyVar, ring.Var())
	require.Equal(t, before+1, backend.Live(backend.KindFqCtx))

	f, err := ring.FieldModulus()
	require.NoError(t, err)
	require.Len(t, f, 3)
	_, err = ring.ModCtx()
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	field, err := algebra.NewFiniteField(big.NewInt(3), 2, "")
	require.NoError(t, err)
	defer field.Release()
	require.False(t, ring.Compatible(field))
	base, err := ring.BaseField()
	require.NoError(t, err)
	defer base.Release()
	require.True(t, base.Compatible(field))
	_, err = field.BaseField()
	require.ErrorIs(t, err, algebra.ErrContextMismatch)

	space, err := algebra.NewFqMatrixSpace(big.NewInt(3), 2, 2, 3)
	require.NoError(t, err)
	defer space.Release()
	tr, err := space.Reshape(3, 2)
	require.NoError(t, err)
	defer tr.Release()
	require.Equal(t, 2, tr.Degree())
	require.Equal(t, algebra.BaseFiniteField, tr.Base())

	ring.Release()
	require.Equal(t, before+4, backend.Live(backend.KindFqCtx))
}

func TestWithLoggerNilPanics(t *testing.T) {
	require.Panics(t, func() { algebra.WithLogger(nil) })
}
