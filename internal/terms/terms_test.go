// SPDX-License-Identifier: MIT

package terms_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/lvnum/internal/terms"
	"github.com/stretchr/testify/require"
)

func ints(v ...int64) []*big.Int {
	out := make([]*big.Int, len(v))
	for i, x := range v {
		out[i] = big.NewInt(x)
	}

	return out
}

// TestFormat pins the printing contract.
func TestFormat(t *testing.T) {
	cases := []struct {
		coeffs []*big.Int
		want   string
	}{
		{ints(1, 5), "5*x + 1"},
		{ints(0, 1), "x"},
		{ints(0, 0, -1), "-x^2"},
		{ints(-3, 0, 2, -1), "-x^3 + 2*x^2 - 3"},
		{ints(0, -1), "-x"},
		{nil, "0"},
		{ints(0, 0), "0"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, terms.Format(terms.Ints(c.coeffs), "x"))
	}

	q := []*big.Rat{big.NewRat(1, 2), big.NewRat(-3, 1)}
	require.Equal(t, "-3*y + 1/2", terms.Format(terms.Rats(q), "y"))

	nested := terms.Nested([]string{"o + 1", "0", "1", "2*o"})
	require.Equal(t, "2*o*x^3 + x^2 + (o + 1)", terms.Format(nested, "x"))
}

// TestParse verifies the printed form parses back term by term.
func TestParse(t *testing.T) {
	ps, err := terms.Parse("-x^3 + 2*x^2 - 3", "x")
	require.NoError(t, err)
	require.Equal(t, []terms.Parsed{{Deg: 3, Coef: "-1"}, {Deg: 2, Coef: "2"}, {Deg: 0, Coef: "-3"}}, ps)
	require.Equal(t, 3, terms.MaxDeg(ps))

	ps, err = terms.Parse("1/2*y-y", "y")
	require.NoError(t, err)
	require.Equal(t, []terms.Parsed{{Deg: 1, Coef: "1/2"}, {Deg: 1, Coef: "-1"}}, ps)

	for _, bad := range []string{"", "x^-1", "2*", "*x", "x^", "y", "1++2", "3*z", "x^a"} {
		_, err := terms.Parse(bad, "x")
		require.ErrorIs(t, err, terms.ErrSyntax, bad)
	}
}

// TestParseCoefficients sums repeated degrees and fills gaps with zero.
func TestParseCoefficients(t *testing.T) {
	c, err := terms.ParseInts("x^3 + 2 + x^3", "x")
	require.NoError(t, err)
	got := make([]string, len(c))
	for i, v := range c {
		got[i] = v.String()
	}
	require.Equal(t, []string{"2", "0", "0", "2"}, got)

	q, err := terms.ParseRats("1/2*a - a + 3/4", "a")
	require.NoError(t, err)
	require.Len(t, q, 2)
	require.Equal(t, "3/4", q[0].RatString())
	require.Equal(t, "-1/2", q[1].RatString())

	_, err = terms.ParseInts("1/2*x", "x")
	require.ErrorIs(t, err, terms.ErrSyntax)
}
