// SPDX-License-Identifier: MIT

package integer

import (
	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
)

// Division is floor division: the quotient rounds toward negative infinity.
var kernel = &arith.Kernel[*Integer, backend.Fmpz]{
	Name:   "Integer",
	Caps:   arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: unwrap,
	Alloc:  alloc,
	Free:   (*Integer).Close,
	IsZero: backend.FmpzIsZero,
	Binary: arith.Binaries[backend.Fmpz]{
		arith.Add: arith.Plain(backend.FmpzAdd),
		arith.Sub: arith.Plain(backend.FmpzSub),
		arith.Mul: arith.Plain(backend.FmpzMul),
		arith.Div: arith.Plain(backend.FmpzFdivQ),
	},
	Native: arith.Natives[backend.Fmpz]{
		arith.Add: arith.PlainNative(backend.FmpzAddSi),
		arith.Sub: arith.PlainNative(backend.FmpzSubSi),
		arith.Mul: arith.PlainNative(backend.FmpzMulSi),
		arith.Div: arith.PlainNative(backend.FmpzFdivQSi),
	},
	NativeLeft: arith.NativeLefts[backend.Fmpz]{
		arith.Add: func(_ *algebra.Context, dst *backend.Fmpz, n int64, a *backend.Fmpz) { backend.FmpzAddSi(dst, a, n) },
		arith.Sub: arith.PlainNativeLeft(backend.FmpzSiSub),
		arith.Mul: func(_ *algebra.Context, dst *backend.Fmpz, n int64, a *backend.Fmpz) { backend.FmpzMulSi(dst, a, n) },
		arith.Div: arith.PlainNativeLeft(backend.FmpzSiFdivQ),
	},
}

// Add returns z + x.
func (z *Integer) Add(x *Integer) (*Integer, error) { return kernel.Apply(arith.Add, z, x) }

// Sub returns z - x.
func (z *Integer) Sub(x *Integer) (*Integer, error) { return kernel.Apply(arith.Sub, z, x) }

// Mul returns z * x.
func (z *Integer) Mul(x *Integer) (*Integer, error) { return kernel.Apply(arith.Mul, z, x) }

// Div returns floor(z / x); ErrDivisionByZero when x is zero.
func (z *Integer) Div(x *Integer) (*Integer, error) { return kernel.Apply(arith.Div, z, x) }

// AddAssign sets z = z + x.
func (z *Integer) AddAssign(x *Integer) error { return kernel.Assign(arith.Add, z, x) }

// SubAssign sets z = z - x.
func (z *Integer) SubAssign(x *Integer) error { return kernel.Assign(arith.Sub, z, x) }

// MulAssign sets z = z * x.
func (z *Integer) MulAssign(x *Integer) error { return kernel.Assign(arith.Mul, z, x) }

// DivAssign sets z = floor(z / x).
func (z *Integer) DivAssign(x *Integer) error { return kernel.Assign(arith.Div, z, x) }

// AddInt64 returns z + n.
func (z *Integer) AddInt64(n int64) (*Integer, error) { return kernel.ApplyNative(arith.Add, z, n) }

// SubInt64 returns z - n.
func (z *Integer) SubInt64(n int64) (*Integer, error) { return kernel.ApplyNative(arith.Sub, z, n) }

// MulInt64 returns z * n.
func (z *Integer) MulInt64(n int64) (*Integer, error) { return kernel.ApplyNative(arith.Mul, z, n) }

// DivInt64 returns floor(z / n).
func (z *Integer) DivInt64(n int64) (*Integer, error) { return kernel.ApplyNative(arith.Div, z, n) }

// AddInt64Assign sets z = z + n.
func (z *Integer) AddInt64Assign(n int64) error { return kernel.AssignNative(arith.Add, z, n) }

// SubInt64Assign sets z = z - n.
func (z *Integer) SubInt64Assign(n int64) error { return kernel.AssignNative(arith.Sub, z, n) }

// MulInt64Assign sets z = z * n.
func (z *Integer) MulInt64Assign(n int64) error { return kernel.AssignNative(arith.Mul, z, n) }

// DivInt64Assign sets z = floor(z / n).
func (z *Integer) DivInt64Assign(n int64) error { return kernel.AssignNative(arith.Div, z, n) }

// Int64Sub returns n - z.
func (z *Integer) Int64Sub(n int64) (*Integer, error) {
	return kernel.ApplyNativeLeft(arith.Sub, n, z)
}

// Int64Div returns floor(n / z).
func (z *Integer) Int64Div(n int64) (*Integer, error) {
	return kernel.ApplyNativeLeft(arith.Div, n, z)
}

// ---------- unary and number-theoretic extras ----------

func (z *Integer) mapTo(op string, fn func(dst, src *backend.Fmpz) error) (*Integer, error) {
	out, err := kernel.Map(z, func(_ *algebra.Context, dst, src *backend.Fmpz) error { return fn(dst, src) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

// Neg returns -z.
func (z *Integer) Neg() (*Integer, error) {
	return z.mapTo("Integer.Neg", func(dst, src *backend.Fmpz) error {
		backend.FmpzNeg(dst, src)
		return nil
	})
}

// Abs returns |z|.
func (z *Integer) Abs() (*Integer, error) {
	return z.mapTo("Integer.Abs", func(dst, src *backend.Fmpz) error {
		backend.FmpzAbs(dst, src)
		return nil
	})
}

// Pow returns z^e.
func (z *Integer) Pow(e uint64) (*Integer, error) {
	return z.mapTo("Integer.Pow", func(dst, src *backend.Fmpz) error {
		backend.FmpzPowUi(dst, src, e)
		return nil
	})
}

// binaryExtra runs a two-operand backend call outside the dispatch table.
func (z *Integer) binaryExtra(op string, x *Integer, fn func(dst, a, b *backend.Fmpz) error) (*Integer, error) {
	rx, _, err := unwrap(x)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	out, err := z.mapTo(op, func(dst, src *backend.Fmpz) error { return fn(dst, src, rx) })
	x.h.KeepAlive()

	return out, err
}

// Gcd returns the non-negative greatest common divisor of z and x.
func (z *Integer) Gcd(x *Integer) (*Integer, error) {
	return z.binaryExtra("Integer.Gcd", x, func(dst, a, b *backend.Fmpz) error {
		backend.FmpzGcd(dst, a, b)
		return nil
	})
}

// Mod returns z mod x in [0, |x|).
func (z *Integer) Mod(x *Integer) (*Integer, error) {
	return z.binaryExtra("Integer.Mod", x, func(dst, a, b *backend.Fmpz) error {
		if backend.FmpzIsZero(b) {
			return algebra.ErrDivisionByZero
		}
		backend.FmpzMod(dst, a, b)
		return nil
	})
}

// DivRem returns q = floor(z / x) and r = z - q*x (r has the sign of x).
func (z *Integer) DivRem(x *Integer) (q, r *Integer, err error) {
	const op = "Integer.DivRem"
	q, err = z.Div(x)
	if err != nil {
		return nil, nil, err
	}
	r, err = z.binaryExtra(op, x, func(dst, a, b *backend.Fmpz) error {
		backend.FmpzFdivR(dst, a, b)
		return nil
	})
	if err != nil {
		q.Close()
		return nil, nil, err
	}

	return q, r, nil
}

// IsProbablePrime runs a probabilistic primality test.
func (z *Integer) IsProbablePrime() bool {
	ok, err := use(z, backend.FmpzIsProbabPrime)

	return err == nil && ok
}
