// SPDX-License-Identifier: MIT

// Package rational - Rational: arbitrary-precision rational owning one fmpq.
//
// Representation notes:
//   - The foreign pair may be stored unnormalized (several bit patterns for
//     one value). Equality and ordering compare values, and Hash and the
//     serialized form go through the canonical-form accessor, so 2/4 and
//     1/2 are indistinguishable from the outside.
//   - Every constructor in this package stores the canonical pair.
package rational

import (
	"math"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/integer"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// Rational is an arbitrary-precision rational. Not safe for concurrent use.
type Rational struct {
	h *lifecycle.Handle[backend.Fmpq]
}

func alloc(_ *algebra.Context) (*Rational, *backend.Fmpq, error) {
	raw := backend.FmpqInit()

	return &Rational{h: lifecycle.New(raw, backend.FmpqClear)}, raw, nil
}

func unwrap(q *Rational) (*backend.Fmpq, *algebra.Context, error) {
	if q == nil {
		return nil, nil, algebra.ErrNilValue
	}
	raw, err := q.h.Get()

	return raw, nil, err
}

func build(op string, fill func(dst *backend.Fmpq) error) (*Rational, error) {
	q, err := kernel.New(nil, func(_ *algebra.Context, dst *backend.Fmpq) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return q, nil
}

func use[R any](q *Rational, fn func(*backend.Fmpq) R) (R, error) {
	if q == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(q.h, fn)
}

// FromInt64 returns n/1.
func FromInt64(n int64) *Rational {
	q, _ := build("rational.FromInt64", func(dst *backend.Fmpq) error {
		backend.FmpqSetSi(dst, n, 1)
		return nil
	})

	return q
}

// FromFrac returns num/den in lowest terms; ErrDivisionByZero when den is 0.
func FromFrac(num, den int64) (*Rational, error) {
	return build("rational.FromFrac", func(dst *backend.Fmpq) error {
		if den == 0 {
			return algebra.ErrDivisionByZero
		}
		backend.FmpqSetSi(dst, num, den)
		return nil
	})
}

// FromIntegers returns num/den in lowest terms.
func FromIntegers(num, den *integer.Integer) (*Rational, error) {
	const op = "rational.FromIntegers"
	n, err := num.Big()
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	d, err := den.Big()
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return build(op, func(dst *backend.Fmpq) error {
		if d.Sign() == 0 {
			return algebra.ErrDivisionByZero
		}
		backend.FmpqSetRat(dst, new(big.Rat).SetFrac(n, d))
		return nil
	})
}

// FromBig returns a copy of r.
func FromBig(r *big.Rat) (*Rational, error) {
	return build("rational.FromBig", func(dst *backend.Fmpq) error {
		if r == nil {
			return algebra.ErrNilValue
		}
		backend.FmpqSetRat(dst, r)
		return nil
	})
}

// FromFloat64 returns the exact binary value of f. NaN reports ErrInexact,
// infinities ErrOverflow.
func FromFloat64(f float64) (*Rational, error) {
	return build("rational.FromFloat64", func(dst *backend.Fmpq) error {
		switch {
		case math.IsNaN(f):
			return algebra.ErrInexact
		case math.IsInf(f, 0):
			return algebra.ErrOverflow
		}
		backend.FmpqSetRat(dst, new(big.Rat).SetFloat64(f))
		return nil
	})
}

// Parse reads "a" or "a/b" in decimal.
func Parse(s string) (*Rational, error) { return ParseBase(s, 10) }

// ParseBase reads "a" or "a/b" in base (0 = prefix detection, 2..62). The
// denominator must be unsigned and non-zero.
func ParseBase(s string, base int) (*Rational, error) {
	return build("rational.Parse", func(dst *backend.Fmpq) error {
		if !backend.FmpqSetStr(dst, s, base) {
			return algebra.ErrParse
		}
		return nil
	})
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) *Rational {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return q
}

// Clone returns a deep copy.
func (q *Rational) Clone() (*Rational, error) {
	return q.mapTo("Rational.Clone", func(dst, src *backend.Fmpq) error {
		backend.FmpqSet(dst, src)
		return nil
	})
}

// Close releases the value. Only the first call has an effect.
func (q *Rational) Close() {
	if q != nil {
		q.h.Release()
	}
}

// Released reports whether Close has been called.
func (q *Rational) Released() bool { return q == nil || q.h.Released() }

func (q *Rational) mapTo(op string, fn func(dst, src *backend.Fmpq) error) (*Rational, error) {
	out, err := kernel.Map(q, func(_ *algebra.Context, dst, src *backend.Fmpq) error { return fn(dst, src) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}
