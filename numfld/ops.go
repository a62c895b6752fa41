// SPDX-License-Identifier: MIT

package numfld

import (
	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
)

func scalar(c *algebra.Context, n int64) *backend.Nf {
	s := backend.NfInit(nfOf(c))
	backend.NfSetSi(s, n)

	return s
}

func withScalar(f func(dst, a, b *backend.Nf)) arith.NativeFunc[backend.Nf] {
	return func(c *algebra.Context, dst, a *backend.Nf, n int64) {
		s := scalar(c, n)
		defer backend.NfClear(s)
		f(dst, a, s)
	}
}

func scalarWith(f func(dst, a, b *backend.Nf)) arith.NativeLeftFunc[backend.Nf] {
	return func(c *algebra.Context, dst *backend.Nf, n int64, a *backend.Nf) {
		s := scalar(c, n)
		defer backend.NfClear(s)
		f(dst, s, a)
	}
}

// With a reducible f non-zero zero divisors report ErrNotInvertible.
var kernel = &arith.Kernel[*Elem, backend.Nf]{
	Name:      "NumFld",
	Caps:      arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap:    unwrap,
	Alloc:     alloc,
	Free:      (*Elem).Close,
	IsZero:    backend.NfIsZero,
	CanDivide: func(_ *algebra.Context, r *backend.Nf) bool { return backend.NfIsInvertible(r) },
	Binary: arith.Binaries[backend.Nf]{
		arith.Add: arith.Plain(backend.NfAdd),
		arith.Sub: arith.Plain(backend.NfSub),
		arith.Mul: arith.Plain(backend.NfMul),
		arith.Div: arith.Plain(backend.NfDiv),
	},
	Native: arith.Natives[backend.Nf]{
		arith.Add: arith.PlainNative(backend.NfAddSi),
		arith.Sub: withScalar(backend.NfSub),
		arith.Mul: arith.PlainNative(backend.NfMulSi),
		arith.Div: arith.PlainNative(backend.NfDivSi),
	},
	NativeLeft: arith.NativeLefts[backend.Nf]{
		arith.Add: func(_ *algebra.Context, dst *backend.Nf, n int64, a *backend.Nf) { backend.NfAddSi(dst, a, n) },
		arith.Sub: scalarWith(backend.NfSub),
		arith.Mul: func(_ *algebra.Context, dst *backend.Nf, n int64, a *backend.Nf) { backend.NfMulSi(dst, a, n) },
		arith.Div: scalarWith(backend.NfDiv),
	},
}

// Add returns a + x.
func (a *Elem) Add(x *Elem) (*Elem, error) { return kernel.Apply(arith.Add, a, x) }

// Sub returns a - x.
func (a *Elem) Sub(x *Elem) (*Elem, error) { return kernel.Apply(arith.Sub, a, x) }

// Mul returns a * x.
func (a *Elem) Mul(x *Elem) (*Elem, error) { return kernel.Apply(arith.Mul, a, x) }

// Div returns a / x. A zero divisor reports ErrDivisionByZero, a zero
// divisor of a reducible f ErrNotInvertible.
func (a *Elem) Div(x *Elem) (*Elem, error) { return kernel.Apply(arith.Div, a, x) }

func (a *Elem) AddAssign(x *Elem) error { return kernel.Assign(arith.Add, a, x) }
func (a *Elem) SubAssign(x *Elem) error { return kernel.Assign(arith.Sub, a, x) }
func (a *Elem) MulAssign(x *Elem) error { return kernel.Assign(arith.Mul, a, x) }
func (a *Elem) DivAssign(x *Elem) error { return kernel.Assign(arith.Div, a, x) }

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
func (a *Elem) Neg() (*Elem, error) { return a.mapTo("Elem.Neg", backend.NfNeg) }

// Inv returns a^-1.
func (a *Elem) Inv() (*Elem, error) {
	out, err := kernel.Map(a, func(_ *algebra.Context, dst, src *backend.Nf) error {
		switch {
		case backend.NfIsZero(src):
			return algebra.ErrDivisionByZero
		case !backend.NfIsInvertible(src):
			return algebra.ErrNotInvertible
		}
		backend.NfInv(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("Elem.Inv", err)
	}

	return out, nil
}

// Pow returns a^e.
func (a *Elem) Pow(e uint64) (*Elem, error) {
	return a.mapTo("Elem.Pow", func(dst, src *backend.Nf) { backend.NfPowUi(dst, src, e) })
}

// IsUnit reports whether a has an inverse.
func (a *Elem) IsUnit() bool {
	ok, err := use(a, backend.NfIsInvertible)

	return err == nil && ok
}
