// SPDX-License-Identifier: MIT

// Package terms formats and parses the multi-term polynomial text form
// shared by polynomials, number field and finite field elements.
//
// Printing contract:
//   - terms in descending degree, zero coefficients elided;
//   - "x" instead of "1*x" and "x^1", "-x^2" for a coefficient of -1;
//   - other terms print as "c*x^k" joined by " + " / " - ";
//   - the zero polynomial prints as "0".
//
// Parse accepts exactly that form (whitespace-insensitive) and also
// tolerates repeated degrees, which callers sum.
package terms

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ErrSyntax reports text that is not a polynomial in the expected variable.
var ErrSyntax = errors.New("terms: malformed polynomial")

// MaxDegree bounds parsed exponents.
const MaxDegree = 1 << 20

// Term is one coefficient: Abs is its absolute value as text, "" or "0" when zero.
type Term struct {
	Neg bool
	Abs string
}

// Ints converts integer coefficients (ascending) to terms.
func Ints(c []*big.Int) []Term {
	out := make([]Term, len(c))
	for i, v := range c {
		out[i] = Term{Neg: v.Sign() < 0, Abs: new(big.Int).Abs(v).String()}
	}

	return out
}

// Rats converts rational coefficients (ascending) to terms; integral values
// print without a denominator.
func Rats(c []*big.Rat) []Term {
	out := make([]Term, len(c))
	for i, v := range c {
		out[i] = Term{Neg: v.Sign() < 0, Abs: new(big.Rat).Abs(v).RatString()}
	}

	return out
}

// Nested converts coefficients that are themselves printed polynomials
// (ascending); sums are parenthesized so they read as one factor.
func Nested(c []string) []Term {
	out := make([]Term, len(c))
	for i, v := range c {
		if strings.Contains(v, " ") {
			v = "(" + v + ")"
		}
		out[i] = Term{Abs: v}
	}

	return out
}

// Format renders ascending terms in variable v.
func Format(ts []Term, v string) string {
	var sb strings.Builder
	for k := len(ts) - 1; k >= 0; k-- {
		t := ts[k]
		if t.Abs == "" || t.Abs == "0" {
			continue
		}
		switch {
		case sb.Len() == 0 && t.Neg:
			sb.WriteString("-")
		case sb.Len() > 0 && t.Neg:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		if k == 0 {
			sb.WriteString(t.Abs)
			continue
		}
		if t.Abs != "1" {
			sb.WriteString(t.Abs)
			sb.WriteString("*")
		}
		sb.WriteString(v)
		if k > 1 {
			sb.WriteString("^")
			sb.WriteString(strconv.Itoa(k))
		}
	}
	if sb.Len() == 0 {
		return "0"
	}

	return sb.String()
}

// Parsed is one parsed term: Coef is a signed coefficient literal.
type Parsed struct {
	Deg  int
	Coef string
}

// Parse splits s into terms in variable v. Coefficient literals are returned
// verbatim (with sign) for the caller to interpret.
func Parse(s, v string) ([]Parsed, error) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil, ErrSyntax
	}
	var out []Parsed
	start := 0
	for i := 1; i <= len(s); i++ {
		if i < len(s) && (s[i] != '+' && s[i] != '-' || s[i-1] == '^' || s[i-1] == '/' || s[i-1] == '*') {
			continue
		}
		p, err := parseTerm(s[start:i], v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
		start = i
	}

	return out, nil
}

func parseTerm(t, v string) (Parsed, error) {
	sign := ""
	switch {
	case strings.HasPrefix(t, "-"):
		sign, t = "-", t[1:]
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	}
	if t == "" {
		return Parsed{}, ErrSyntax
	}
	coef, mono, hasStar := strings.Cut(t, "*")
	if !hasStar {
		if strings.HasPrefix(t, v) {
			coef, mono = "1", t
		} else {
			coef, mono = t, ""
		}
	}
	if coef == "" || coef[0] < '0' || coef[0] > '9' || strings.ContainsAny(coef, "+-*^") {
		return Parsed{}, ErrSyntax
	}
	deg := 0
	if mono != "" {
		rest, ok := strings.CutPrefix(mono, v)
		if !ok {
			return Parsed{}, ErrSyntax
		}
		deg = 1
		if rest != "" {
			e, ok := strings.CutPrefix(rest, "^")
			if !ok {
				return Parsed{}, ErrSyntax
			}
			n, err := strconv.Atoi(e)
			if err != nil || n < 0 || n > MaxDegree || strings.HasPrefix(e, "+") {
				return Parsed{}, ErrSyntax
			}
			deg = n
		}
	} else if hasStar {
		return Parsed{}, ErrSyntax
	}

	return Parsed{Deg: deg, Coef: sign + coef}, nil
}

// MaxDeg returns the largest degree in ps (-1 for none).
func MaxDeg(ps []Parsed) int {
	m := -1
	for _, p := range ps {
		if p.Deg > m {
			m = p.Deg
		}
	}

	return m
}

// ParseInts reads s into ascending integer coefficients, summing repeated
// degrees.
func ParseInts(s, v string) ([]*big.Int, error) {
	return collect(s, v, func(lit string) (*big.Int, bool) { return new(big.Int).SetString(lit, 10) },
		func(acc, x *big.Int) *big.Int { return acc.Add(acc, x) })
}

// ParseRats reads s into ascending rational coefficients ("a" or "a/b"),
// summing repeated degrees.
func ParseRats(s, v string) ([]*big.Rat, error) {
	return collect(s, v, func(lit string) (*big.Rat, bool) { return new(big.Rat).SetString(lit) },
		func(acc, x *big.Rat) *big.Rat { return acc.Add(acc, x) })
}

func collect[T any](s, v string, lit func(string) (T, bool), add func(acc, x T) T) ([]T, error) {
	ps, err := Parse(s, v)
	if err != nil {
		return nil, err
	}
	out := make([]T, MaxDeg(ps)+1)
	set := make([]bool, len(out))
	for _, p := range ps {
		x, ok := lit(p.Coef)
		if !ok {
			return nil, fmt.Errorf("%w: coefficient %q", ErrSyntax, p.Coef)
		}
		if set[p.Deg] {
			out[p.Deg] = add(out[p.Deg], x)
		} else {
			out[p.Deg], set[p.Deg] = x, true
		}
	}
	for i := range out {
		if !set[i] {
			out[i], _ = lit("0")
		}
	}

	return out, nil
}
