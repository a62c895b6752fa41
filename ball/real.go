// SPDX-License-Identifier: MIT

package ball

import (
	"math"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/integer"
	"github.com/katalvlaran/lvnum/lifecycle"
	"github.com/katalvlaran/lvnum/rational"
)

// Real is a real ball. Not safe for concurrent use.
type Real struct {
	h   *lifecycle.Handle[backend.Arb]
	ctx *algebra.Context
}

func allocReal(ctx *algebra.Context) (*Real, *backend.Arb, error) {
	raw := backend.ArbInit()

	return &Real{h: lifecycle.New(raw, backend.ArbClear), ctx: ctx}, raw, nil
}

func unwrapReal(x *Real) (*backend.Arb, *algebra.Context, error) {
	if x == nil {
		return nil, nil, algebra.ErrNilValue
	}
	raw, err := x.h.Get()
	if err != nil {
		return nil, nil, err
	}

	return raw, x.ctx, nil
}

func useReal[R any](x *Real, fn func(*backend.Arb) R) (R, error) {
	if x == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(x.h, fn)
}

func buildReal(op string, ctx *algebra.Context, fill func(dst *backend.Arb, prec uint) error) (*Real, error) {
	if err := expect(ctx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	x, err := realKernel.New(ctx, func(c *algebra.Context, dst *backend.Arb) error { return fill(dst, c.Precision()) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return x, nil
}

// atPrec binds a precision-taking entry point to the Context precision.
func atPrec(f func(dst, a, b *backend.Arb, prec uint)) arith.BinaryFunc[backend.Arb] {
	return func(c *algebra.Context, dst, a, b *backend.Arb) { f(dst, a, b, c.Precision()) }
}

func atPrecNative(f func(dst, a *backend.Arb, n int64, prec uint)) arith.NativeFunc[backend.Arb] {
	return func(c *algebra.Context, dst, a *backend.Arb, n int64) { f(dst, a, n, c.Precision()) }
}

func atPrecNativeLeft(f func(dst *backend.Arb, n int64, a *backend.Arb, prec uint)) arith.NativeLeftFunc[backend.Arb] {
	return func(c *algebra.Context, dst *backend.Arb, n int64, a *backend.Arb) { f(dst, n, a, c.Precision()) }
}

// No IsZero: a divisor containing zero gives [+/- inf], not an error.
var realKernel = &arith.Kernel[*Real, backend.Arb]{
	Name:   "Real",
	Caps:   arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: unwrapReal,
	Alloc:  allocReal,
	Free:   (*Real).Close,
	Binary: arith.Binaries[backend.Arb]{
		arith.Add: atPrec(backend.ArbAdd),
		arith.Sub: atPrec(backend.ArbSub),
		arith.Mul: atPrec(backend.ArbMul),
		arith.Div: atPrec(backend.ArbDiv),
	},
	Native: arith.Natives[backend.Arb]{
		arith.Add: atPrecNative(backend.ArbAddSi),
		arith.Sub: atPrecNative(backend.ArbSubSi),
		arith.Mul: atPrecNative(backend.ArbMulSi),
		arith.Div: atPrecNative(backend.ArbDivSi),
	},
	NativeLeft: arith.NativeLefts[backend.Arb]{
		arith.Add: func(c *algebra.Context, dst *backend.Arb, n int64, a *backend.Arb) {
			backend.ArbAddSi(dst, a, n, c.Precision())
		},
		arith.Sub: atPrecNativeLeft(backend.ArbSiSub),
		arith.Mul: func(c *algebra.Context, dst *backend.Arb, n int64, a *backend.Arb) {
			backend.ArbMulSi(dst, a, n, c.Precision())
		},
		arith.Div: atPrecNativeLeft(backend.ArbSiDiv),
	},
}

// ---------- constructors ----------

// FromInt64 returns n rounded to the Context precision.
func FromInt64(ctx *algebra.Context, n int64) (*Real, error) {
	return buildReal("ball.FromInt64", ctx, func(dst *backend.Arb, prec uint) error {
		backend.ArbSetSi(dst, n, prec)
		return nil
	})
}

// FromFloat64 returns f rounded to the Context precision. NaN and
// infinities give the non-finite ball.
func FromFloat64(ctx *algebra.Context, f float64) (*Real, error) {
	return buildReal("ball.FromFloat64", ctx, func(dst *backend.Arb, prec uint) error {
		backend.ArbSetD(dst, f, prec)
		return nil
	})
}

// FromInteger returns z rounded to the Context precision.
func FromInteger(ctx *algebra.Context, z *integer.Integer) (*Real, error) {
	b, err := z.Big()
	if err != nil {
		return nil, algebra.Errorf("ball.FromInteger", err)
	}

	return buildReal("ball.FromInteger", ctx, func(dst *backend.Arb, prec uint) error {
		s := backend.FmpzInit()
		defer backend.FmpzClear(s)
		backend.FmpzSetBig(s, b)
		backend.ArbSetFmpz(dst, s, prec)
		return nil
	})
}

// FromRational returns an enclosure of q; exact when q is dyadic and fits.
func FromRational(ctx *algebra.Context, q *rational.Rational) (*Real, error) {
	r, err := q.Big()
	if err != nil {
		return nil, algebra.Errorf("ball.FromRational", err)
	}

	return buildReal("ball.FromRational", ctx, func(dst *backend.Arb, prec uint) error {
		s := backend.FmpqInit()
		defer backend.FmpqClear(s)
		backend.FmpqSetRat(s, r)
		backend.ArbSetFmpq(dst, s, prec)
		return nil
	})
}

// FromMidRad returns [mid +/- rad]; rad must be finite and non-negative.
func FromMidRad(ctx *algebra.Context, mid, rad *big.Float) (*Real, error) {
	return buildReal("ball.FromMidRad", ctx, func(dst *backend.Arb, prec uint) error {
		switch {
		case mid == nil || rad == nil:
			return algebra.ErrNilValue
		case rad.Sign() < 0 || rad.IsInf() || mid.IsInf():
			return algebra.ErrOutOfRange
		}
		backend.ArbSetMidRad(dst, mid, rad, prec)
		return nil
	})
}

// ParseReal reads "x" or "[x +/- r]", the form String prints; x and r may
// be decimal, scientific or a/b.
func ParseReal(ctx *algebra.Context, s string) (*Real, error) {
	return buildReal("ball.ParseReal", ctx, func(dst *backend.Arb, prec uint) error {
		if !backend.ArbSetStr(dst, s, prec) {
			return algebra.ErrParse
		}
		return nil
	})
}

// ---------- lifecycle ----------

// Context returns the borrowed precision handle; nil once x is closed.
func (x *Real) Context() *algebra.Context {
	if x.Released() {
		return nil
	}

	return x.ctx
}

// Precision returns the working precision in bits; 0 once released.
func (x *Real) Precision() uint {
	if x.Released() {
		return 0
	}

	return x.ctx.Precision()
}

// Clone returns a deep copy sharing x's Context.
func (x *Real) Clone() (*Real, error) { return x.mapTo("Real.Clone", backend.ArbSet) }

// Close releases the ball and its Context handle.
func (x *Real) Close() {
	if x != nil && x.h.Release() {
		x.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (x *Real) Released() bool { return x == nil || x.h.Released() }

func (x *Real) mapTo(op string, fn func(dst, src *backend.Arb)) (*Real, error) {
	out, err := realKernel.Map(x, func(_ *algebra.Context, dst, src *backend.Arb) error {
		fn(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

// ---------- arithmetic ----------

// Add returns x + y.
func (x *Real) Add(y *Real) (*Real, error) { return realKernel.Apply(arith.Add, x, y) }

// Sub returns x - y.
func (x *Real) Sub(y *Real) (*Real, error) { return realKernel.Apply(arith.Sub, x, y) }

// Mul returns x * y.
func (x *Real) Mul(y *Real) (*Real, error) { return realKernel.Apply(arith.Mul, x, y) }

// Div returns x / y; the non-finite ball when y contains zero.
func (x *Real) Div(y *Real) (*Real, error) { return realKernel.Apply(arith.Div, x, y) }

func (x *Real) AddAssign(y *Real) error { return realKernel.Assign(arith.Add, x, y) }
func (x *Real) SubAssign(y *Real) error { return realKernel.Assign(arith.Sub, x, y) }
func (x *Real) MulAssign(y *Real) error { return realKernel.Assign(arith.Mul, x, y) }
func (x *Real) DivAssign(y *Real) error { return realKernel.Assign(arith.Div, x, y) }

func (x *Real) AddInt64(n int64) (*Real, error) { return realKernel.ApplyNative(arith.Add, x, n) }
func (x *Real) SubInt64(n int64) (*Real, error) { return realKernel.ApplyNative(arith.Sub, x, n) }
func (x *Real) MulInt64(n int64) (*Real, error) { return realKernel.ApplyNative(arith.Mul, x, n) }
func (x *Real) DivInt64(n int64) (*Real, error) { return realKernel.ApplyNative(arith.Div, x, n) }

func (x *Real) AddInt64Assign(n int64) error { return realKernel.AssignNative(arith.Add, x, n) }
func (x *Real) SubInt64Assign(n int64) error { return realKernel.AssignNative(arith.Sub, x, n) }
func (x *Real) MulInt64Assign(n int64) error { return realKernel.AssignNative(arith.Mul, x, n) }
func (x *Real) DivInt64Assign(n int64) error { return realKernel.AssignNative(arith.Div, x, n) }

// Int64Sub returns n - x.
func (x *Real) Int64Sub(n int64) (*Real, error) { return realKernel.ApplyNativeLeft(arith.Sub, n, x) }

// Int64Div returns n / x.
func (x *Real) Int64Div(n int64) (*Real, error) { return realKernel.ApplyNativeLeft(arith.Div, n, x) }

// Neg returns -x.
func (x *Real) Neg() (*Real, error) { return x.mapTo("Real.Neg", backend.ArbNeg) }

// ---------- inspection ----------

// Mid returns a copy of the midpoint.
func (x *Real) Mid() (*big.Float, error) {
	m, err := useReal(x, backend.ArbMid)
	if err != nil {
		return nil, algebra.Errorf("Real.Mid", err)
	}

	return m, nil
}

// Rad returns a copy of the radius, +Inf for the non-finite ball.
func (x *Real) Rad() (*big.Float, error) {
	r, err := useReal(x, backend.ArbRad)
	if err != nil {
		return nil, algebra.Errorf("Real.Rad", err)
	}

	return r, nil
}

// IsExact reports a zero radius.
func (x *Real) IsExact() bool {
	ok, err := useReal(x, backend.ArbIsExact)

	return err == nil && ok
}

// IsFinite reports a finite radius.
func (x *Real) IsFinite() bool {
	ok, err := useReal(x, backend.ArbIsFinite)

	return err == nil && ok
}

// ContainsZero reports 0 ∈ x.
func (x *Real) ContainsZero() bool {
	ok, err := useReal(x, backend.ArbContainsZero)

	return err == nil && ok
}

// ContainsRational reports q ∈ x.
func (x *Real) ContainsRational(q *rational.Rational) (bool, error) {
	r, err := q.Big()
	if err != nil {
		return false, algebra.Errorf("Real.ContainsRational", err)
	}
	ok, err := useReal(x, func(raw *backend.Arb) bool {
		s := backend.FmpqInit()
		defer backend.FmpqClear(s)
		backend.FmpqSetRat(s, r)
		return backend.ArbContainsFmpq(raw, s)
	})
	if err != nil {
		return false, algebra.Errorf("Real.ContainsRational", err)
	}

	return ok, nil
}

// relate evaluates a two-ball predicate after the compatibility check.
func (x *Real) relate(op string, y *Real, fn func(a, b *backend.Arb) bool) (bool, error) {
	rx, xctx, err := unwrapReal(x)
	if err != nil {
		return false, algebra.Errorf(op, err)
	}
	ry, yctx, err := unwrapReal(y)
	if err != nil {
		return false, algebra.Errorf(op, err)
	}
	if err := xctx.CheckCompatible(yctx); err != nil {
		return false, algebra.Errorf(op, err)
	}
	ok := fn(rx, ry)
	x.h.KeepAlive()
	y.h.KeepAlive()

	return ok, nil
}

// Contains reports y ⊆ x.
func (x *Real) Contains(y *Real) (bool, error) { return x.relate("Real.Contains", y, backend.ArbContains) }

// Overlaps reports x ∩ y ≠ ∅.
func (x *Real) Overlaps(y *Real) (bool, error) { return x.relate("Real.Overlaps", y, backend.ArbOverlaps) }

// Equal reports whether x and y are the same exact point. Two balls that
// merely overlap, or the same inexact ball twice, are not Equal.
func (x *Real) Equal(y *Real) bool {
	ok, err := x.relate("Real.Equal", y, func(a, b *backend.Arb) bool {
		return backend.ArbIsExact(a) && backend.ArbIsExact(b) && backend.ArbEqual(a, b)
	})

	return err == nil && ok
}

// Float64 returns the midpoint. Exact mode reports ErrInexact unless x is
// an exact point representable as a float64; a non-finite ball reports
// ErrInexact in either mode and an out-of-range midpoint ErrOverflow.
func (x *Real) Float64(mode algebra.ConvMode) (float64, error) {
	type res struct {
		f      float64
		acc    big.Accuracy
		exact  bool
		finite bool
	}
	r, err := useReal(x, func(raw *backend.Arb) res {
		f, acc := backend.ArbGetD(raw)
		return res{f, acc, backend.ArbIsExact(raw), backend.ArbIsFinite(raw)}
	})
	if err != nil {
		return 0, algebra.Errorf("Real.Float64", err)
	}
	switch {
	case !r.finite:
		return 0, algebra.Errorf("Real.Float64", algebra.ErrInexact)
	case math.IsInf(r.f, 0):
		return 0, algebra.Errorf("Real.Float64", algebra.ErrOverflow)
	case mode == algebra.Exact && (!r.exact || r.acc != big.Exact):
		return 0, algebra.Errorf("Real.Float64", algebra.ErrInexact)
	}

	return r.f, nil
}

// Hash mixes the precision with the exact midpoint and radius values.
func (x *Real) Hash() uint64 {
	parts, err := useReal(x, func(raw *backend.Arb) [][]byte {
		return [][]byte{exactText(backend.ArbMid(raw)), exactText(backend.ArbRad(raw))}
	})
	if err != nil {
		return 0
	}

	return x.ctx.Hash(parts...)
}

// String prints "m" for exact decimals and "[m +/- r]" otherwise.
func (x *Real) String() string {
	s, err := useReal(x, backend.ArbGetStr)
	if err != nil {
		return "<released>"
	}

	return s
}
