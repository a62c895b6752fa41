// SPDX-License-Identifier: MIT

package rational

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/integer"
)

var kernel = &arith.Kernel[*Rational, backend.Fmpq]{
	Name:   "Rational",
	Caps:   arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: unwrap,
	Alloc:  alloc,
	Free:   (*Rational).Close,
	IsZero: backend.FmpqIsZero,
	Binary: arith.Binaries[backend.Fmpq]{
		arith.Add: arith.Plain(backend.FmpqAdd),
		arith.Sub: arith.Plain(backend.FmpqSub),
		arith.Mul: arith.Plain(backend.FmpqMul),
		arith.Div: arith.Plain(backend.FmpqDiv),
	},
	Native: arith.Natives[backend.Fmpq]{
		arith.Add: arith.PlainNative(backend.FmpqAddSi),
		arith.Sub: arith.PlainNative(backend.FmpqSubSi),
		arith.Mul: arith.PlainNative(backend.FmpqMulSi),
		arith.Div: arith.PlainNative(backend.FmpqDivSi),
	},
	NativeLeft: arith.NativeLefts[backend.Fmpq]{
		arith.Add: func(_ *algebra.Context, dst *backend.Fmpq, n int64, a *backend.Fmpq) { backend.FmpqAddSi(dst, a, n) },
		arith.Sub: arith.PlainNativeLeft(backend.FmpqSiSub),
		arith.Mul: func(_ *algebra.Context, dst *backend.Fmpq, n int64, a *backend.Fmpq) { backend.FmpqMulSi(dst, a, n) },
		arith.Div: arith.PlainNativeLeft(backend.FmpqSiDiv),
	},
}

// Add returns q + x.
func (q *Rational) Add(x *Rational) (*Rational, error) { return kernel.Apply(arith.Add, q, x) }

// Sub returns q - x.
func (q *Rational) Sub(x *Rational) (*Rational, error) { return kernel.Apply(arith.Sub, q, x) }

// Mul returns q * x.
func (q *Rational) Mul(x *Rational) (*Rational, error) { return kernel.Apply(arith.Mul, q, x) }

// Div returns q / x; ErrDivisionByZero when x is zero.
func (q *Rational) Div(x *Rational) (*Rational, error) { return kernel.Apply(arith.Div, q, x) }

// In-place forms: the receiver is overwritten with the result.

func (q *Rational) AddAssign(x *Rational) error { return kernel.Assign(arith.Add, q, x) }
func (q *Rational) SubAssign(x *Rational) error { return kernel.Assign(arith.Sub, q, x) }
func (q *Rational) MulAssign(x *Rational) error { return kernel.Assign(arith.Mul, q, x) }
func (q *Rational) DivAssign(x *Rational) error { return kernel.Assign(arith.Div, q, x) }

// Native right operand forms.

func (q *Rational) AddInt64(n int64) (*Rational, error) { return kernel.ApplyNative(arith.Add, q, n) }
func (q *Rational) SubInt64(n int64) (*Rational, error) { return kernel.ApplyNative(arith.Sub, q, n) }
func (q *Rational) MulInt64(n int64) (*Rational, error) { return kernel.ApplyNative(arith.Mul, q, n) }
func (q *Rational) DivInt64(n int64) (*Rational, error) { return kernel.ApplyNative(arith.Div, q, n) }

func (q *Rational) AddInt64Assign(n int64) error { return kernel.AssignNative(arith.Add, q, n) }
func (q *Rational) SubInt64Assign(n int64) error { return kernel.AssignNative(arith.Sub, q, n) }
func (q *Rational) MulInt64Assign(n int64) error { return kernel.AssignNative(arith.Mul, q, n) }
func (q *Rational) DivInt64Assign(n int64) error { return kernel.AssignNative(arith.Div, q, n) }

// Int64Sub returns n - q.
func (q *Rational) Int64Sub(n int64) (*Rational, error) {
	return kernel.ApplyNativeLeft(arith.Sub, n, q)
}

// Int64Div returns n / q.
func (q *Rational) Int64Div(n int64) (*Rational, error) {
	return kernel.ApplyNativeLeft(arith.Div, n, q)
}

// Neg returns -q.
func (q *Rational) Neg() (*Rational, error) {
	return q.mapTo("Rational.Neg", func(dst, src *backend.Fmpq) error {
		backend.FmpqNeg(dst, src)
		return nil
	})
}

// Abs returns |q|.
func (q *Rational) Abs() (*Rational, error) {
	return q.mapTo("Rational.Abs", func(dst, src *backend.Fmpq) error {
		backend.FmpqAbs(dst, src)
		return nil
	})
}

// Inv returns 1/q; ErrDivisionByZero when q is zero.
func (q *Rational) Inv() (*Rational, error) {
	return q.mapTo("Rational.Inv", func(dst, src *backend.Fmpq) error {
		if backend.FmpqIsZero(src) {
			return algebra.ErrDivisionByZero
		}
		backend.FmpqInv(dst, src)
		return nil
	})
}

// Floor returns the largest integer <= q.
func (q *Rational) Floor() (*integer.Integer, error) {
	b, err := use(q, func(raw *backend.Fmpq) *big.Int {
		z := backend.FmpzInit()
		defer backend.FmpzClear(z)
		backend.FmpqFloor(z, raw)
		return backend.FmpzGetBig(z)
	})
	if err != nil {
		return nil, algebra.Errorf("Rational.Floor", err)
	}

	return integer.FromBig(b)
}

// Num returns the numerator in lowest terms (carrying the sign).
func (q *Rational) Num() (*integer.Integer, error) {
	r, err := use(q, backend.FmpqGetRat)
	if err != nil {
		return nil, algebra.Errorf("Rational.Num", err)
	}

	return integer.FromBig(r.Num())
}

// Den returns the positive denominator in lowest terms.
func (q *Rational) Den() (*integer.Integer, error) {
	r, err := use(q, backend.FmpqGetRat)
	if err != nil {
		return nil, algebra.Errorf("Rational.Den", err)
	}

	return integer.FromBig(r.Denom())
}
