// SPDX-License-Identifier: MIT

package poly

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/internal/terms"
	"github.com/katalvlaran/lvnum/lifecycle"
	"github.com/katalvlaran/lvnum/rational"
)

// RatPoly is a polynomial in Q[x]. Not safe for concurrent use.
type RatPoly struct {
	h   *lifecycle.Handle[backend.FmpqPoly]
	ctx *algebra.Context
}

// Division is Euclidean: Div returns the quotient, Rem the remainder.
var ratKernel = &arith.Kernel[*RatPoly, backend.FmpqPoly]{
	Name: "RatPoly",
	Caps: arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: func(p *RatPoly) (*backend.FmpqPoly, *algebra.Context, error) {
		if p == nil {
			return nil, nil, algebra.ErrNilValue
		}
		raw, err := p.h.Get()
		if err != nil {
			return nil, nil, err
		}
		return raw, p.ctx, nil
	},
	Alloc: func(ctx *algebra.Context) (*RatPoly, *backend.FmpqPoly, error) {
		raw := backend.FmpqPolyInit()
		return &RatPoly{h: lifecycle.New(raw, backend.FmpqPolyClear), ctx: ctx}, raw, nil
	},
	Free:   (*RatPoly).Close,
	IsZero: backend.FmpqPolyIsZero,
	Binary: arith.Binaries[backend.FmpqPoly]{
		arith.Add: arith.Plain(backend.FmpqPolyAdd),
		arith.Sub: arith.Plain(backend.FmpqPolySub),
		arith.Mul: arith.Plain(backend.FmpqPolyMul),
		arith.Div: arith.Plain(backend.FmpqPolyDiv),
	},
	Native: arith.Natives[backend.FmpqPoly]{
		arith.Add: arith.PlainNative(backend.FmpqPolyAddSi),
		arith.Sub: arith.PlainNative(backend.FmpqPolySubSi),
		arith.Mul: arith.PlainNative(backend.FmpqPolyScalarMulSi),
		arith.Div: arith.PlainNative(backend.FmpqPolyScalarDivSi),
	},
	NativeLeft: arith.NativeLefts[backend.FmpqPoly]{
		arith.Add: func(_ *algebra.Context, dst *backend.FmpqPoly, n int64, a *backend.FmpqPoly) {
			backend.FmpqPolyAddSi(dst, a, n)
		},
		arith.Sub: arith.PlainNativeLeft(backend.FmpqPolySiSub),
		arith.Mul: func(_ *algebra.Context, dst *backend.FmpqPoly, n int64, a *backend.FmpqPoly) {
			backend.FmpqPolyScalarMulSi(dst, a, n)
		},
	},
}

func newRat(op string, ctx *algebra.Context, fill func(dst *backend.FmpqPoly) error) (*RatPoly, error) {
	if err := expectRing(ctx, algebra.BaseRational); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	p, err := ratKernel.New(ctx, func(_ *algebra.Context, dst *backend.FmpqPoly) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return p, nil
}

// NewRat returns the polynomial with ascending integer coefficients c.
func NewRat(ctx *algebra.Context, c ...int64) (*RatPoly, error) {
	qs := make([]*big.Rat, len(c))
	for i, v := range c {
		qs[i] = big.NewRat(v, 1)
	}

	return RatFromBig(ctx, qs)
}

// RatFromBig returns the polynomial with ascending coefficients c.
func RatFromBig(ctx *algebra.Context, c []*big.Rat) (*RatPoly, error) {
	return newRat("poly.RatFromBig", ctx, func(dst *backend.FmpqPoly) error {
		for _, v := range c {
			if v == nil {
				return algebra.ErrNilValue
			}
		}
		backend.FmpqPolySetCoeffs(dst, c)
		return nil
	})
}

// ParseRat reads the printed form, e.g. "1/2*x^2 - 3", in the ring's variable.
func ParseRat(ctx *algebra.Context, s string) (*RatPoly, error) {
	if err := ctx.Check(); err != nil {
		return nil, algebra.Errorf("poly.ParseRat", err)
	}
	c, err := parse(s, ctx.Var(), terms.ParseRats)
	if err != nil {
		return nil, algebra.Errorf("poly.ParseRat", err)
	}

	return RatFromBig(ctx, c)
}

func (p *RatPoly) use(fn func(*backend.FmpqPoly)) error {
	if p == nil {
		return algebra.ErrNilValue
	}
	_, err := lifecycle.Use(p.h, func(raw *backend.FmpqPoly) struct{} {
		fn(raw)
		return struct{}{}
	})

	return err
}

// Context returns the borrowed ring handle; nil once p is closed.
func (p *RatPoly) Context() *algebra.Context {
	if p.Released() {
		return nil
	}

	return p.ctx
}

// Clone returns a deep copy sharing p's ring.
func (p *RatPoly) Clone() (*RatPoly, error) {
	return p.mapTo("RatPoly.Clone", func(dst, src *backend.FmpqPoly) error {
		backend.FmpqPolySet(dst, src)
		return nil
	})
}

// Close releases the polynomial and its ring handle.
func (p *RatPoly) Close() {
	if p != nil && p.h.Release() {
		p.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (p *RatPoly) Released() bool { return p == nil || p.h.Released() }

func (p *RatPoly) mapTo(op string, fn func(dst, src *backend.FmpqPoly) error) (*RatPoly, error) {
	out, err := ratKernel.Map(p, func(_ *algebra.Context, dst, src *backend.FmpqPoly) error { return fn(dst, src) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

// binaryExtra runs a two-operand backend call outside the dispatch table.
func (p *RatPoly) binaryExtra(op string, x *RatPoly, fn func(dst, a, b *backend.FmpqPoly) error) (*RatPoly, error) {
	_, pctx, err := ratKernel.Unwrap(p)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	rx, xctx, err := ratKernel.Unwrap(x)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	if err := pctx.CheckCompatible(xctx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	out, err := p.mapTo(op, func(dst, src *backend.FmpqPoly) error { return fn(dst, src, rx) })
	x.h.KeepAlive()

	return out, err
}

// ---------- arithmetic ----------

// Add returns p + x.
func (p *RatPoly) Add(x *RatPoly) (*RatPoly, error) { return ratKernel.Apply(arith.Add, p, x) }

// Sub returns p - x.
func (p *RatPoly) Sub(x *RatPoly) (*RatPoly, error) { return ratKernel.Apply(arith.Sub, p, x) }

// Mul returns p * x.
func (p *RatPoly) Mul(x *RatPoly) (*RatPoly, error) { return ratKernel.Apply(arith.Mul, p, x) }

// Div returns the Euclidean quotient of p by x; ErrDivisionByZero for x == 0.
func (p *RatPoly) Div(x *RatPoly) (*RatPoly, error) { return ratKernel.Apply(arith.Div, p, x) }

func (p *RatPoly) AddAssign(x *RatPoly) error { return ratKernel.Assign(arith.Add, p, x) }
func (p *RatPoly) SubAssign(x *RatPoly) error { return ratKernel.Assign(arith.Sub, p, x) }
func (p *RatPoly) MulAssign(x *RatPoly) error { return ratKernel.Assign(arith.Mul, p, x) }
func (p *RatPoly) DivAssign(x *RatPoly) error { return ratKernel.Assign(arith.Div, p, x) }

func (p *RatPoly) AddInt64(n int64) (*RatPoly, error) { return ratKernel.ApplyNative(arith.Add, p, n) }
func (p *RatPoly) SubInt64(n int64) (*RatPoly, error) { return ratKernel.ApplyNative(arith.Sub, p, n) }
func (p *RatPoly) MulInt64(n int64) (*RatPoly, error) { return ratKernel.ApplyNative(arith.Mul, p, n) }
func (p *RatPoly) DivInt64(n int64) (*RatPoly, error) { return ratKernel.ApplyNative(arith.Div, p, n) }

func (p *RatPoly) AddInt64Assign(n int64) error { return ratKernel.AssignNative(arith.Add, p, n) }
func (p *RatPoly) SubInt64Assign(n int64) error { return ratKernel.AssignNative(arith.Sub, p, n) }
func (p *RatPoly) MulInt64Assign(n int64) error { return ratKernel.AssignNative(arith.Mul, p, n) }
func (p *RatPoly) DivInt64Assign(n int64) error { return ratKernel.AssignNative(arith.Div, p, n) }

// Int64Sub returns n - p.
func (p *RatPoly) Int64Sub(n int64) (*RatPoly, error) {
	return ratKernel.ApplyNativeLeft(arith.Sub, n, p)
}

// Neg returns -p.
func (p *RatPoly) Neg() (*RatPoly, error) {
	return p.mapTo("RatPoly.Neg", func(dst, src *backend.FmpqPoly) error {
		backend.FmpqPolyNeg(dst, src)
		return nil
	})
}

// Pow returns p^e.
func (p *RatPoly) Pow(e uint64) (*RatPoly, error) {
	return p.mapTo("RatPoly.Pow", func(dst, src *backend.FmpqPoly) error {
		backend.FmpqPolyPow(dst, src, e)
		return nil
	})
}

// Rem returns the Euclidean remainder of p by x.
func (p *RatPoly) Rem(x *RatPoly) (*RatPoly, error) {
	return p.binaryExtra("RatPoly.Rem", x, func(dst, a, b *backend.FmpqPoly) error {
		if backend.FmpqPolyIsZero(b) {
			return algebra.ErrDivisionByZero
		}
		backend.FmpqPolyRem(dst, a, b)
		return nil
	})
}

// DivRem returns quotient and remainder with deg r < deg x.
func (p *RatPoly) DivRem(x *RatPoly) (q, r *RatPoly, err error) {
	q, err = p.Div(x)
	if err != nil {
		return nil, nil, err
	}
	r, err = p.Rem(x)
	if err != nil {
		q.Close()
		return nil, nil, err
	}

	return q, r, nil
}

// Gcd returns the monic greatest common divisor (zero when both are zero).
func (p *RatPoly) Gcd(x *RatPoly) (*RatPoly, error) {
	return p.binaryExtra("RatPoly.Gcd", x, func(dst, a, b *backend.FmpqPoly) error {
		backend.FmpqPolyGcd(dst, a, b)
		return nil
	})
}

// Eval returns p(x).
func (p *RatPoly) Eval(x *rational.Rational) (*rational.Rational, error) {
	xb, err := x.Big()
	if err != nil {
		return nil, algebra.Errorf("RatPoly.Eval", err)
	}
	var out *big.Rat
	err = p.use(func(raw *backend.FmpqPoly) {
		xq, dst := backend.FmpqInit(), backend.FmpqInit()
		defer backend.FmpqClear(xq)
		defer backend.FmpqClear(dst)
		backend.FmpqSetRat(xq, xb)
		backend.FmpqPolyEvaluate(dst, raw, xq)
		out = backend.FmpqGetRat(dst)
	})
	if err != nil {
		return nil, algebra.Errorf("RatPoly.Eval", err)
	}

	return rational.FromBig(out)
}

// ---------- inspection ----------

// Coeffs returns the ascending coefficients (empty for zero).
func (p *RatPoly) Coeffs() ([]*big.Rat, error) {
	var c []*big.Rat
	if err := p.use(func(raw *backend.FmpqPoly) { c = backend.FmpqPolyCoeffs(raw) }); err != nil {
		return nil, algebra.Errorf("RatPoly.Coeffs", err)
	}

	return c, nil
}

// Coeff returns the coefficient of x^i; zero beyond the degree.
func (p *RatPoly) Coeff(i int) (*big.Rat, error) {
	if i < 0 {
		return nil, algebra.Errorf("RatPoly.Coeff", algebra.ErrOutOfRange)
	}
	var c *big.Rat
	if err := p.use(func(raw *backend.FmpqPoly) { c = backend.FmpqPolyGetCoeff(raw, i) }); err != nil {
		return nil, algebra.Errorf("RatPoly.Coeff", err)
	}

	return c, nil
}

// Degree returns the degree, -1 for the zero polynomial or a closed value.
func (p *RatPoly) Degree() int {
	d := -1
	_ = p.use(func(raw *backend.FmpqPoly) { d = backend.FmpqPolyDegree(raw) })

	return d
}

// IsZero reports p == 0.
func (p *RatPoly) IsZero() bool {
	ok := false
	_ = p.use(func(raw *backend.FmpqPoly) { ok = backend.FmpqPolyIsZero(raw) })

	return ok
}

// Equal reports whether p and x live in compatible rings and have the same
// coefficients.
func (p *RatPoly) Equal(x *RatPoly) bool {
	ra, actx, err := ratKernel.Unwrap(p)
	if err != nil {
		return false
	}
	rx, xctx, err := ratKernel.Unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.FmpqPolyEqual(ra, rx)
	p.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the ring parameters with the coefficients in lowest terms.
func (p *RatPoly) Hash() uint64 {
	c, err := p.Coeffs()
	if err != nil {
		return 0
	}

	return p.ctx.Hash(codec.RatsBytes(c)...)
}

// String renders p in descending degree, e.g. "1/2*x^2 - 3".
func (p *RatPoly) String() string {
	c, err := p.Coeffs()
	if err != nil {
		return "<released>"
	}

	return terms.Format(terms.Rats(c), p.ctx.Var())
}

// ---------- serialization ----------

// Record returns the self-describing record of p, ring included.
func (p *RatPoly) Record() (*codec.Record, error) {
	c, err := p.Coeffs()
	if err != nil {
		return nil, algebra.Errorf("RatPoly.Record", err)
	}

	return &codec.Record{Tag: codec.TagRatPoly, Context: p.ctx.Record(), Ints: codec.RatsBytes(c)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *RatPoly) MarshalBinary() ([]byte, error) {
	rec, err := p.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of p.
func (p *RatPoly) EncodeYAML() ([]byte, error) {
	rec, err := p.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeRatRecord rebuilds a RatPoly. Coefficients must be in lowest terms.
func DecodeRatRecord(rec *codec.Record, ctx *algebra.Context) (*RatPoly, error) {
	if err := rec.Expect(codec.TagRatPoly, true); err != nil {
		return nil, err
	}
	c, err := codec.Rats(rec.Ints)
	if err != nil {
		return nil, err
	}
	if !normalized(rec.Ints, 2) {
		return nil, decodeErr("trailing zero coefficient")
	}
	if !sameBytes(codec.RatsBytes(c), rec.Ints) {
		return nil, decodeErr("coefficient not in lowest terms")
	}
	rctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer rctx.Release()

	return RatFromBig(rctx, c)
}

// DecodeRat rebuilds a RatPoly and its ring from either encoding.
func DecodeRat(data []byte) (*RatPoly, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRatRecord(rec, nil)
}
