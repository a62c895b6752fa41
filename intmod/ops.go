// SPDX-License-Identifier: MIT

package intmod

import (
	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
)

func binaryMod(f func(dst, a, b *backend.Fmpz, m *backend.ModCtx)) arith.BinaryFunc[backend.Fmpz] {
	return func(c *algebra.Context, dst, a, b *backend.Fmpz) { f(dst, a, b, modCtx(c)) }
}

func nativeMod(f func(dst, a *backend.Fmpz, n int64, m *backend.ModCtx)) arith.NativeFunc[backend.Fmpz] {
	return func(c *algebra.Context, dst, a *backend.Fmpz, n int64) { f(dst, a, n, modCtx(c)) }
}

// residue returns n mod the modulus as a scratch structure the caller clears.
func residue(m *backend.ModCtx, n int64) *backend.Fmpz {
	r := backend.FmpzInit()
	backend.FmpzModSetSi(r, n, m)

	return r
}

// Division multiplies by the inverse; divisors that are not units report
// ErrNotInvertible.
var kernel = &arith.Kernel[*IntMod, backend.Fmpz]{
	Name:   "IntMod",
	Caps:   arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: unwrap,
	Alloc:  alloc,
	Free:   (*IntMod).Close,
	IsZero: backend.FmpzIsZero,
	CanDivide: func(c *algebra.Context, r *backend.Fmpz) bool {
		return backend.FmpzModIsInvertible(r, modCtx(c))
	},
	CanDivideNative: func(c *algebra.Context, n int64) bool {
		m := modCtx(c)
		r := residue(m, n)
		defer backend.FmpzClear(r)
		return backend.FmpzModIsInvertible(r, m)
	},
	Binary: arith.Binaries[backend.Fmpz]{
		arith.Add: binaryMod(backend.FmpzModAdd),
		arith.Sub: binaryMod(backend.FmpzModSub),
		arith.Mul: binaryMod(backend.FmpzModMul),
		arith.Div: binaryMod(backend.FmpzModDiv),
	},
	Native: arith.Natives[backend.Fmpz]{
		arith.Add: nativeMod(backend.FmpzModAddSi),
		arith.Sub: nativeMod(backend.FmpzModSubSi),
		arith.Mul: nativeMod(backend.FmpzModMulSi),
		arith.Div: func(c *algebra.Context, dst, a *backend.Fmpz, n int64) {
			m := modCtx(c)
			r := residue(m, n)
			defer backend.FmpzClear(r)
			backend.FmpzModDiv(dst, a, r, m)
		},
	},
	NativeLeft: arith.NativeLefts[backend.Fmpz]{
		arith.Add: func(c *algebra.Context, dst *backend.Fmpz, n int64, a *backend.Fmpz) {
			backend.FmpzModAddSi(dst, a, n, modCtx(c))
		},
		arith.Sub: func(c *algebra.Context, dst *backend.Fmpz, n int64, a *backend.Fmpz) {
			backend.FmpzModSiSub(dst, n, a, modCtx(c))
		},
		arith.Mul: func(c *algebra.Context, dst *backend.Fmpz, n int64, a *backend.Fmpz) {
			backend.FmpzModMulSi(dst, a, n, modCtx(c))
		},
		arith.Div: func(c *algebra.Context, dst *backend.Fmpz, n int64, a *backend.Fmpz) {
			m := modCtx(c)
			r := residue(m, n)
			defer backend.FmpzClear(r)
			backend.FmpzModDiv(dst, r, a, m)
		},
	},
}

// Add returns a + x.
func (a *IntMod) Add(x *IntMod) (*IntMod, error) { return kernel.Apply(arith.Add, a, x) }

// Sub returns a - x.
func (a *IntMod) Sub(x *IntMod) (*IntMod, error) { return kernel.Apply(arith.Sub, a, x) }

// Mul returns a * x.
func (a *IntMod) Mul(x *IntMod) (*IntMod, error) { return kernel.Apply(arith.Mul, a, x) }

// Div returns a * x^-1. A zero divisor reports ErrDivisionByZero, a
// non-unit ErrNotInvertible.
func (a *IntMod) Div(x *IntMod) (*IntMod, error) { return kernel.Apply(arith.Div, a, x) }

func (a *IntMod) AddAssign(x *IntMod) error { return kernel.Assign(arith.Add, a, x) }
func (a *IntMod) SubAssign(x *IntMod) error { return kernel.Assign(arith.Sub, a, x) }
func (a *IntMod) MulAssign(x *IntMod) error { return kernel.Assign(arith.Mul, a, x) }
func (a *IntMod) DivAssign(x *IntMod) error { return kernel.Assign(arith.Div, a, x) }

// The native operand is reduced mod n first.

func (a *IntMod) AddInt64(n int64) (*IntMod, error) { return kernel.ApplyNative(arith.Add, a, n) }
func (a *IntMod) SubInt64(n int64) (*IntMod, error) { return kernel.ApplyNative(arith.Sub, a, n) }
func (a *IntMod) MulInt64(n int64) (*IntMod, error) { return kernel.ApplyNative(arith.Mul, a, n) }
func (a *IntMod) DivInt64(n int64) (*IntMod, error) { return kernel.ApplyNative(arith.Div, a, n) }

func (a *IntMod) AddInt64Assign(n int64) error { return kernel.AssignNative(arith.Add, a, n) }
func (a *IntMod) SubInt64Assign(n int64) error { return kernel.AssignNative(arith.Sub, a, n) }
func (a *IntMod) MulInt64Assign(n int64) error { return kernel.AssignNative(arith.Mul, a, n) }
func (a *IntMod) DivInt64Assign(n int64) error { return kernel.AssignNative(arith.Div, a, n) }

// Int64Sub returns n - a.
func (a *IntMod) Int64Sub(n int64) (*IntMod, error) { return kernel.ApplyNativeLeft(arith.Sub, n, a) }

// Int64Div returns n * a^-1.
func (a *IntMod) Int64Div(n int64) (*IntMod, error) { return kernel.ApplyNativeLeft(arith.Div, n, a) }

// Neg returns -a.
func (a *IntMod) Neg() (*IntMod, error) {
	return a.mapTo("IntMod.Neg", func(m *backend.ModCtx, dst, src *backend.Fmpz) error {
		backend.FmpzModNeg(dst, src, m)
		return nil
	})
}

// Inv returns a^-1.
func (a *IntMod) Inv() (*IntMod, error) {
	return a.mapTo("IntMod.Inv", func(m *backend.ModCtx, dst, src *backend.Fmpz) error {
		switch {
		case backend.FmpzIsZero(src):
			return algebra.ErrDivisionByZero
		case !backend.FmpzModIsInvertible(src, m):
			return algebra.ErrNotInvertible
		}
		backend.FmpzModInv(dst, src, m)
		return nil
	})
}

// Pow returns a^e.
func (a *IntMod) Pow(e uint64) (*IntMod, error) {
	return a.mapTo("IntMod.Pow", func(m *backend.ModCtx, dst, src *backend.Fmpz) error {
		backend.FmpzModPowUi(dst, src, e, m)
		return nil
	})
}

// IsUnit reports whether a has an inverse.
func (a *IntMod) IsUnit() bool {
	raw, ctx, err := unwrap(a)
	if err != nil {
		return false
	}
	ok := backend.FmpzModIsInvertible(raw, modCtx(ctx))
	a.h.KeepAlive()

	return ok
}
