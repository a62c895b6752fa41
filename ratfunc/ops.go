// SPDX-License-Identifier: MIT

package ratfunc

import (
	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/rational"
)

var kernel = &arith.Kernel[*RatFunc, backend.FmpzPolyQ]{
	Name:   "RatFunc",
	Caps:   arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: unwrap,
	Alloc:  alloc,
	Free:   (*RatFunc).Close,
	IsZero: backend.FmpzPolyQIsZero,
	Binary: arith.Binaries[backend.FmpzPolyQ]{
		arith.Add: arith.Plain(backend.FmpzPolyQAdd),
		arith.Sub: arith.Plain(backend.FmpzPolyQSub),
		arith.Mul: arith.Plain(backend.FmpzPolyQMul),
		arith.Div: arith.Plain(backend.FmpzPolyQDiv),
	},
	Native: arith.Natives[backend.FmpzPolyQ]{
		arith.Add: arith.PlainNative(backend.FmpzPolyQAddSi),
		arith.Sub: arith.PlainNative(backend.FmpzPolyQSubSi),
		arith.Mul: arith.PlainNative(backend.FmpzPolyQScalarMulSi),
		arith.Div: arith.PlainNative(backend.FmpzPolyQScalarDivSi),
	},
	NativeLeft: arith.NativeLefts[backend.FmpzPolyQ]{
		arith.Add: func(_ *algebra.Context, dst *backend.FmpzPolyQ, n int64, a *backend.FmpzPolyQ) {
			backend.FmpzPolyQAddSi(dst, a, n)
		},
		arith.Sub: arith.PlainNativeLeft(backend.FmpzPolyQSiSub),
		arith.Mul: func(_ *algebra.Context, dst *backend.FmpzPolyQ, n int64, a *backend.FmpzPolyQ) {
			backend.FmpzPolyQScalarMulSi(dst, a, n)
		},
		arith.Div: arith.PlainNativeLeft(backend.FmpzPolyQSiDiv),
	},
}

// Add returns f + x.
func (f *RatFunc) Add(x *RatFunc) (*RatFunc, error) { return kernel.Apply(arith.Add, f, x) }

// Sub returns f - x.
func (f *RatFunc) Sub(x *RatFunc) (*RatFunc, error) { return kernel.Apply(arith.Sub, f, x) }

// Mul returns f * x.
func (f *RatFunc) Mul(x *RatFunc) (*RatFunc, error) { return kernel.Apply(arith.Mul, f, x) }

// Div returns f / x; ErrDivisionByZero when x is zero.
func (f *RatFunc) Div(x *RatFunc) (*RatFunc, error) { return kernel.Apply(arith.Div, f, x) }

func (f *RatFunc) AddAssign(x *RatFunc) error { return kernel.Assign(arith.Add, f, x) }
func (f *RatFunc) SubAssign(x *RatFunc) error { return kernel.Assign(arith.Sub, f, x) }
func (f *RatFunc) MulAssign(x *RatFunc) error { return kernel.Assign(arith.Mul, f, x) }
func (f *RatFunc) DivAssign(x *RatFunc) error { return kernel.Assign(arith.Div, f, x) }

func (f *RatFunc) AddInt64(n int64) (*RatFunc, error) { return kernel.ApplyNative(arith.Add, f, n) }
func (f *RatFunc) SubInt64(n int64) (*RatFunc, error) { return kernel.ApplyNative(arith.Sub, f, n) }
func (f *RatFunc) MulInt64(n int64) (*RatFunc, error) { return kernel.ApplyNative(arith.Mul, f, n) }
func (f *RatFunc) DivInt64(n int64) (*RatFunc, error) { return kernel.ApplyNative(arith.Div, f, n) }

func (f *RatFunc) AddInt64Assign(n int64) error { return kernel.AssignNative(arith.Add, f, n) }
func (f *RatFunc) SubInt64Assign(n int64) error { return kernel.AssignNative(arith.Sub, f, n) }
func (f *RatFunc) MulInt64Assign(n int64) error { return kernel.AssignNative(arith.Mul, f, n) }
func (f *RatFunc) DivInt64Assign(n int64) error { return kernel.AssignNative(arith.Div, f, n) }

// Int64Sub returns n - f.
func (f *RatFunc) Int64Sub(n int64) (*RatFunc, error) { return kernel.ApplyNativeLeft(arith.Sub, n, f) }

// Int64Div returns n / f.
func (f *RatFunc) Int64Div(n int64) (*RatFunc, error) { return kernel.ApplyNativeLeft(arith.Div, n, f) }

// Neg returns -f.
func (f *RatFunc) Neg() (*RatFunc, error) { return f.mapTo("RatFunc.Neg", backend.FmpzPolyQNeg) }

// Inv returns 1/f; ErrDivisionByZero for the zero function.
func (f *RatFunc) Inv() (*RatFunc, error) {
	out, err := kernel.Map(f, func(_ *algebra.Context, dst, src *backend.FmpzPolyQ) error {
		if backend.FmpzPolyQIsZero(src) {
			return algebra.ErrDivisionByZero
		}
		backend.FmpzPolyQInv(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("RatFunc.Inv", err)
	}

	return out, nil
}

// Pow returns f^e.
func (f *RatFunc) Pow(e uint64) (*RatFunc, error) {
	return f.mapTo("RatFunc.Pow", func(dst, src *backend.FmpzPolyQ) { backend.FmpzPolyQPow(dst, src, e) })
}

// Derivative returns df/dx by the quotient rule.
func (f *RatFunc) Derivative() (*RatFunc, error) {
	return f.mapTo("RatFunc.Derivative", backend.FmpzPolyQDerivative)
}

// Eval returns f(x); ErrDivisionByZero when x is a pole.
func (f *RatFunc) Eval(x *rational.Rational) (*rational.Rational, error) {
	const op = "RatFunc.Eval"
	at, err := x.Big()
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	type result struct {
		v  *backend.Fmpq
		ok bool
	}
	res, err := use(f, func(raw *backend.FmpzPolyQ) result {
		in, out := backend.FmpqInit(), backend.FmpqInit()
		defer backend.FmpqClear(in)
		backend.FmpqSetRat(in, at)
		return result{out, backend.FmpzPolyQEvaluate(out, raw, in)}
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	defer backend.FmpqClear(res.v)
	if !res.ok {
		return nil, algebra.Detailf(op, algebra.ErrDivisionByZero, "pole at %s", at.RatString())
	}

	return rational.FromBig(backend.FmpqGetRat(res.v))
}
