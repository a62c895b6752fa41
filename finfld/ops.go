// SPDX-License-Identifier: MIT

package finfld

import (
	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
)

// scalar returns n as a scratch field element the caller clears.
func scalar(c *algebra.Context, n int64) *backend.Fq {
	s := backend.FqInit(fqOf(c))
	backend.FqSetSi(s, n)

	return s
}

// withScalar adapts a binary entry point to a native right operand.
func withScalar(f func(dst, a, b *backend.Fq)) arith.NativeFunc[backend.Fq] {
	return func(c *algebra.Context, dst, a *backend.Fq, n int64) {
		s := scalar(c, n)
		defer backend.FqClear(s)
		f(dst, a, s)
	}
}

// scalarWith adapts a binary entry point to a native left operand.
func scalarWith(f func(dst, a, b *backend.Fq)) arith.NativeLeftFunc[backend.Fq] {
	return func(c *algebra.Context, dst *backend.Fq, n int64, a *backend.Fq) {
		s := scalar(c, n)
		defer backend.FqClear(s)
		f(dst, s, a)
	}
}

// Every non-zero element is a unit. A native divisor that is a multiple
// of p is zero in the field and reports ErrNotInvertible.
var kernel = &arith.Kernel[*Elem, backend.Fq]{
	Name:   "FinFld",
	Caps:   arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: unwrap,
	Alloc:  alloc,
	Free:   (*Elem).Close,
	IsZero: backend.FqIsZero,
	CanDivideNative: func(c *algebra.Context, n int64) bool {
		s := scalar(c, n)
		defer backend.FqClear(s)
		return !backend.FqIsZero(s)
	},
	Binary: arith.Binaries[backend.Fq]{
		arith.Add: arith.Plain(backend.FqAdd),
		arith.Sub: arith.Plain(backend.FqSub),
		arith.Mul: arith.Plain(backend.FqMul),
		arith.Div: arith.Plain(backend.FqDiv),
	},
	Native: arith.Natives[backend.Fq]{
		arith.Add: arith.PlainNative(backend.FqAddSi),
		arith.Sub: withScalar(backend.FqSub),
		arith.Mul: arith.PlainNative(backend.FqMulSi),
		arith.Div: withScalar(backend.FqDiv),
	},
	NativeLeft: arith.NativeLefts[backend.Fq]{
		arith.Add: func(_ *algebra.Context, dst *backend.Fq, n int64, a *backend.Fq) { backend.FqAddSi(dst, a, n) },
		arith.Sub: scalarWith(backend.FqSub),
		arith.Mul: func(_ *algebra.Context, dst *backend.Fq, n int64, a *backend.Fq) { backend.FqMulSi(dst, a, n) },
		arith.Div: scalarWith(backend.FqDiv),
	},
}

// Add returns a + x.
func (a *Elem) Add(x *Elem) (*Elem, error) { return kernel.Apply(arith.Add, a, x) }

// Sub returns a - x.
func (a *Elem) Sub(x *Elem) (*Elem, error) { return kernel.Apply(arith.Sub, a, x) }

// Mul returns a * x.
func (a *Elem) Mul(x *Elem) (*Elem, error) { return kernel.Apply(arith.Mul, a, x) }

// Div returns a / x; ErrDivisionByZero when x is zero.
func (a *Elem) Div(x *Elem) (*Elem, error) { return kernel.Apply(arith.Div, a, x) }

func (a *Elem) AddAssign(x *Elem) error { return kernel.Assign(arith.Add, a, x) }
func (a *Elem) SubAssign(x *Elem) error { return kernel.Assign(arith.Sub, a, x) }
func (a *Elem) MulAssign(x *Elem) error { return kernel.Assign(arith.Mul, a, x) }
func (a *Elem) DivAssign(x *Elem) error { return kernel.Assign(arith.Div, a, x) }

// The native operand is taken mod p.

func (a *Elem) AddInt64(n int64) (*Elem, error) { return kernel.ApplyNative(arith.Add, a, n) }
func (a *Elem) SubInt64(n int64) (*Elem, error) { return kernel.ApplyNative(arith.Sub, a, n) }
func (a *Elem) MulInt64(n int64) (*Elem, error) { return kernel.ApplyNative(arith.Mul, a, n) }
func (a *Elem) DivInt64(n int64) (*Elem, error) { return kernel.ApplyNative(arith.Div, a, n) }

func (a *Elem) AddInt64Assign(n int64) error { return kernel.AssignNative(arith.Add, a, n) }
func (a *Elem) SubInt64Assign(n int64) error { return kernel.AssignNative(arith.Sub, a, n) }
func (a *Elem) MulInt64Assign(n int64) error { return kernel.AssignNative(arith.Mul, a, n) }
func (a *Elem) DivInt64Assign(n int64) error { return kernel.AssignNative(arith.Div, a, n) }

// Int64Sub returns n - a.
func (a *Elem) Int64Sub(n int64) (*Elem, error) { return kernel.ApplyNativeLeft(arith.Sub, n, a) }

// Int64Div returns n / a.
func (a *Elem) Int64Div(n int64) (*Elem, error) { return kernel.ApplyNativeLeft(arith.Div, n, a) }

// Neg returns -a.
func (a *Elem) Neg() (*Elem, error) { return a.mapTo("Elem.Neg", backend.FqNeg) }

// Inv returns a^-1; ErrDivisionByZero when a is zero.
func (a *Elem) Inv() (*Elem, error) {
	out, err := kernel.Map(a, func(_ *algebra.Context, dst, src *backend.Fq) error {
		if backend.FqIsZero(src) {
			return algebra.ErrDivisionByZero
		}
		backend.FqInv(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("Elem.Inv", err)
	}

	return out, nil
}

// Pow returns a^e; 0^0 is 1.
func (a *Elem) Pow(e uint64) (*Elem, error) {
	return a.mapTo("Elem.Pow", func(dst, src *backend.Fq) { backend.FqPowUi(dst, src, e) })
}
