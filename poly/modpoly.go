// SPDX-License-Identifier: MIT

package poly

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/internal/terms"
	"github.com/katalvlaran/lvnum/intmod"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// ModPoly is a polynomial in (Z/nZ)[x]. Not safe for concurrent use.
type ModPoly struct {
	h   *lifecycle.Handle[backend.ModPoly]
	ctx *algebra.Context
}

func modOf(c *algebra.Context) *backend.ModCtx {
	m, err := c.ModCtx()
	if err != nil {
		panic(err)
	}

	return m
}

func modPolyIsZero(p *backend.ModPoly) bool { return backend.ModPolyLength(p) == 0 }

func unitResidue(c *algebra.Context, n int64) bool {
	m := modOf(c)
	r := backend.FmpzInit()
	defer backend.FmpzClear(r)
	backend.FmpzModSetSi(r, n, m)

	return backend.FmpzModIsInvertible(r, m)
}

// Division needs a divisor whose leading coefficient is a unit mod n.
var modKernel = &arith.Kernel[*ModPoly, backend.ModPoly]{
	Name: "ModPoly",
	Caps: arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: func(p *ModPoly) (*backend.ModPoly, *algebra.Context, error) {
		if p == nil {
			return nil, nil, algebra.ErrNilValue
		}
		raw, err := p.h.Get()
		if err != nil {
			return nil, nil, err
		}
		return raw, p.ctx, nil
	},
	Alloc: func(ctx *algebra.Context) (*ModPoly, *backend.ModPoly, error) {
		m, err := ctx.ModCtx()
		if err != nil {
			return nil, nil, err
		}
		raw := backend.ModPolyInit(m)
		return &ModPoly{h: lifecycle.New(raw, backend.ModPolyClear), ctx: ctx}, raw, nil
	},
	Free:            (*ModPoly).Close,
	IsZero:          modPolyIsZero,
	CanDivide:       func(_ *algebra.Context, r *backend.ModPoly) bool { return backend.ModPolyLeadIsUnit(r) },
	CanDivideNative: unitResidue,
	Binary: arith.Binaries[backend.ModPoly]{
		arith.Add: arith.Plain(backend.ModPolyAdd),
		arith.Sub: arith.Plain(backend.ModPolySub),
		arith.Mul: arith.Plain(backend.ModPolyMul),
		arith.Div: arith.Plain(backend.ModPolyDiv),
	},
	Native: arith.Natives[backend.ModPoly]{
		arith.Add: arith.PlainNative(backend.ModPolyAddSi),
		arith.Sub: arith.PlainNative(backend.ModPolySubSi),
		arith.Mul: arith.PlainNative(backend.ModPolyScalarMulSi),
		arith.Div: arith.PlainNative(backend.ModPolyScalarDivSi),
	},
	NativeLeft: arith.NativeLefts[backend.ModPoly]{
		arith.Add: func(_ *algebra.Context, dst *backend.ModPoly, n int64, a *backend.ModPoly) {
			backend.ModPolyAddSi(dst, a, n)
		},
		arith.Sub: arith.PlainNativeLeft(backend.ModPolySiSub),
		arith.Mul: func(_ *algebra.Context, dst *backend.ModPoly, n int64, a *backend.ModPoly) {
			backend.ModPolyScalarMulSi(dst, a, n)
		},
	},
}

func newMod(op string, ctx *algebra.Context, fill func(dst *backend.ModPoly) error) (*ModPoly, error) {
	if err := expectRing(ctx, algebra.BaseIntMod); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	p, err := modKernel.New(ctx, func(_ *algebra.Context, dst *backend.ModPoly) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return p, nil
}

// NewMod returns the polynomial with ascending coefficients c reduced mod n.
func NewMod(ctx *algebra.Context, c ...int64) (*ModPoly, error) {
	return ModFromBig(ctx, int64s(c))
}

// ModFromBig returns the polynomial with ascending coefficients c reduced
// mod n.
func ModFromBig(ctx *algebra.Context, c []*big.Int) (*ModPoly, error) {
	return newMod("poly.ModFromBig", ctx, func(dst *backend.ModPoly) error {
		for _, v := range c {
			if v == nil {
				return algebra.ErrNilValue
			}
		}
		backend.ModPolySetCoeffs(dst, c)
		return nil
	})
}

// ParseMod reads the printed form with integer coefficients and reduces them.
func ParseMod(ctx *algebra.Context, s string) (*ModPoly, error) {
	if err := ctx.Check(); err != nil {
		return nil, algebra.Errorf("poly.ParseMod", err)
	}
	c, err := parse(s, ctx.Var(), terms.ParseInts)
	if err != nil {
		return nil, algebra.Errorf("poly.ParseMod", err)
	}

	return ModFromBig(ctx, c)
}

func (p *ModPoly) use(fn func(*backend.ModPoly)) error {
	if p == nil {
		return algebra.ErrNilValue
	}
	_, err := lifecycle.Use(p.h, func(raw *backend.ModPoly) struct{} {
		fn(raw)
		return struct{}{}
	})

	return err
}

// Context returns the borrowed ring handle; nil once p is closed.
func (p *ModPoly) Context() *algebra.Context {
	if p.Released() {
		return nil
	}

	return p.ctx
}

// Clone returns a deep copy sharing p's ring.
func (p *ModPoly) Clone() (*ModPoly, error) {
	return p.mapTo("ModPoly.Clone", func(dst, src *backend.ModPoly) error {
		backend.ModPolySet(dst, src)
		return nil
	})
}

// Close releases the polynomial and its ring handle.
func (p *ModPoly) Close() {
	if p != nil && p.h.Release() {
		p.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (p *ModPoly) Released() bool { return p == nil || p.h.Released() }

func (p *ModPoly) mapTo(op string, fn func(dst, src *backend.ModPoly) error) (*ModPoly, error) {
	out, err := modKernel.Map(p, func(_ *algebra.Context, dst, src *backend.ModPoly) error { return fn(dst, src) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

func (p *ModPoly) binaryExtra(op string, x *ModPoly, fn func(dst, a, b *backend.ModPoly) error) (*ModPoly, error) {
	_, pctx, err := modKernel.Unwrap(p)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	rx, xctx, err := modKernel.Unwrap(x)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	if err := pctx.CheckCompatible(xctx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	out, err := p.mapTo(op, func(dst, src *backend.ModPoly) error { return fn(dst, src, rx) })
	x.h.KeepAlive()

	return out, err
}

// ---------- arithmetic ----------

// Add returns p + x.
func (p *ModPoly) Add(x *ModPoly) (*ModPoly, error) { return modKernel.Apply(arith.Add, p, x) }

// Sub returns p - x.
func (p *ModPoly) Sub(x *ModPoly) (*ModPoly, error) { return modKernel.Apply(arith.Sub, p, x) }

// Mul returns p * x.
func (p *ModPoly) Mul(x *ModPoly) (*ModPoly, error) { return modKernel.Apply(arith.Mul, p, x) }

// Div returns the Euclidean quotient of p by x. A zero divisor reports
// ErrDivisionByZero, a non-unit leading coefficient ErrNotInvertible.
func (p *ModPoly) Div(x *ModPoly) (*ModPoly, error) { return modKernel.Apply(arith.Div, p, x) }

func (p *ModPoly) AddAssign(x *ModPoly) error { return modKernel.Assign(arith.Add, p, x) }
func (p *ModPoly) SubAssign(x *ModPoly) error { return modKernel.Assign(arith.Sub, p, x) }
func (p *ModPoly) MulAssign(x *ModPoly) error { return modKernel.Assign(arith.Mul, p, x) }
func (p *ModPoly) DivAssign(x *ModPoly) error { return modKernel.Assign(arith.Div, p, x) }

func (p *ModPoly) AddInt64(n int64) (*ModPoly, error) { return modKernel.ApplyNative(arith.Add, p, n) }
func (p *ModPoly) SubInt64(n int64) (*ModPoly, error) { return modKernel.ApplyNative(arith.Sub, p, n) }
func (p *ModPoly) MulInt64(n int64) (*ModPoly, error) { return modKernel.ApplyNative(arith.Mul, p, n) }
func (p *ModPoly) DivInt64(n int64) (*ModPoly, error) { return modKernel.ApplyNative(arith.Div, p, n) }

func (p *ModPoly) AddInt64Assign(n int64) error { return modKernel.AssignNative(arith.Add, p, n) }
func (p *ModPoly) SubInt64Assign(n int64) error { return modKernel.AssignNative(arith.Sub, p, n) }
func (p *ModPoly) MulInt64Assign(n int64) error { return modKernel.AssignNative(arith.Mul, p, n) }
func (p *ModPoly) DivInt64Assign(n int64) error { return modKernel.AssignNative(arith.Div, p, n) }

// Int64Sub returns n - p.
func (p *ModPoly) Int64Sub(n int64) (*ModPoly, error) {
	return modKernel.ApplyNativeLeft(arith.Sub, n, p)
}

// Neg returns -p.
func (p *ModPoly) Neg() (*ModPoly, error) {
	return p.mapTo("ModPoly.Neg", func(dst, src *backend.ModPoly) error {
		backend.ModPolyNeg(dst, src)
		return nil
	})
}

// Pow returns p^e.
func (p *ModPoly) Pow(e uint64) (*ModPoly, error) {
	return p.mapTo("ModPoly.Pow", func(dst, src *backend.ModPoly) error {
		backend.ModPolyPow(dst, src, e)
		return nil
	})
}

// Rem returns the Euclidean remainder of p by x.
func (p *ModPoly) Rem(x *ModPoly) (*ModPoly, error) {
	return p.binaryExtra("ModPoly.Rem", x, func(dst, a, b *backend.ModPoly) error {
		switch {
		case modPolyIsZero(b):
			return algebra.ErrDivisionByZero
		case !backend.ModPolyLeadIsUnit(b):
			return algebra.ErrNotInvertible
		}
		backend.ModPolyRem(dst, a, b)
		return nil
	})
}

// DivRem returns quotient and remainder with deg r < deg x.
func (p *ModPoly) DivRem(x *ModPoly) (q, r *ModPoly, err error) {
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

// Gcd returns the monic greatest common divisor. Over a composite modulus
// the Euclidean algorithm can meet a non-unit and report ErrNotInvertible.
func (p *ModPoly) Gcd(x *ModPoly) (*ModPoly, error) {
	return p.binaryExtra("ModPoly.Gcd", x, func(dst, a, b *backend.ModPoly) error {
		if !backend.ModPolyGcd(dst, a, b) {
			return algebra.ErrNotInvertible
		}
		return nil
	})
}

// Eval returns p(x). x must live in Z/nZ for the same n.
func (p *ModPoly) Eval(x *intmod.IntMod) (*intmod.IntMod, error) {
	const op = "ModPoly.Eval"
	xb, err := x.Big()
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	_, pctx, err := modKernel.Unwrap(p)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	if x.Context().Modulus().Cmp(pctx.Modulus()) != 0 {
		return nil, algebra.Detailf(op, algebra.ErrContextMismatch, "%s at an element of %s", pctx, x.Context())
	}
	var out *big.Int
	err = p.use(func(raw *backend.ModPoly) {
		xz, dst := backend.FmpzInit(), backend.FmpzInit()
		defer backend.FmpzClear(xz)
		defer backend.FmpzClear(dst)
		backend.FmpzSetBig(xz, xb)
		backend.ModPolyEvaluate(dst, raw, xz)
		out = backend.FmpzGetBig(dst)
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return intmod.FromBig(x.Context(), out)
}

// ---------- inspection ----------

// Coeffs returns the ascending coefficients in [0, n) (empty for zero).
func (p *ModPoly) Coeffs() ([]*big.Int, error) {
	var c []*big.Int
	if err := p.use(func(raw *backend.ModPoly) { c = backend.ModPolyCoeffs(raw) }); err != nil {
		return nil, algebra.Errorf("ModPoly.Coeffs", err)
	}

	return c, nil
}

// Coeff returns the coefficient of x^i; zero beyond the degree.
func (p *ModPoly) Coeff(i int) (*big.Int, error) {
	if i < 0 {
		return nil, algebra.Errorf("ModPoly.Coeff", algebra.ErrOutOfRange)
	}
	c, err := p.Coeffs()
	if err != nil {
		return nil, err
	}
	if i >= len(c) {
		return new(big.Int), nil
	}

	return c[i], nil
}

// Degree returns the degree, -1 for the zero polynomial or a closed value.
func (p *ModPoly) Degree() int {
	d := -1
	_ = p.use(func(raw *backend.ModPoly) { d = backend.ModPolyLength(raw) - 1 })

	return d
}

// IsZero reports p == 0.
func (p *ModPoly) IsZero() bool {
	ok := false
	_ = p.use(func(raw *backend.ModPoly) { ok = modPolyIsZero(raw) })

	return ok
}

// Equal reports whether p and x live in compatible rings and have the same
// coefficients.
func (p *ModPoly) Equal(x *ModPoly) bool {
	ra, actx, err := modKernel.Unwrap(p)
	if err != nil {
		return false
	}
	rx, xctx, err := modKernel.Unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.ModPolyEqual(ra, rx)
	p.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the ring parameters with the coefficients.
func (p *ModPoly) Hash() uint64 {
	c, err := p.Coeffs()
	if err != nil {
		return 0
	}

	return p.ctx.Hash(codec.IntsBytes(c)...)
}

// String renders p in descending degree with coefficients in [0, n).
func (p *ModPoly) String() string {
	c, err := p.Coeffs()
	if err != nil {
		return "<released>"
	}

	return terms.Format(terms.Ints(c), p.ctx.Var())
}

// ---------- serialization ----------

// Record returns the self-describing record of p, ring included.
func (p *ModPoly) Record() (*codec.Record, error) {
	c, err := p.Coeffs()
	if err != nil {
		return nil, algebra.Errorf("ModPoly.Record", err)
	}

	return &codec.Record{Tag: codec.TagModPoly, Context: p.ctx.Record(), Ints: codec.IntsBytes(c)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *ModPoly) MarshalBinary() ([]byte, error) {
	rec, err := p.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of p.
func (p *ModPoly) EncodeYAML() ([]byte, error) {
	rec, err := p.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeModRecord rebuilds a ModPoly. Coefficients must lie in [0, n).
func DecodeModRecord(rec *codec.Record, ctx *algebra.Context) (*ModPoly, error) {
	if err := rec.Expect(codec.TagModPoly, true); err != nil {
		return nil, err
	}
	if !normalized(rec.Ints, 1) {
		return nil, decodeErr("trailing zero coefficient")
	}
	c, err := codec.Ints(rec.Ints)
	if err != nil {
		return nil, err
	}
	rctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer rctx.Release()
	if n := rctx.Modulus(); n != nil {
		for i, v := range c {
			if v.Sign() < 0 || v.Cmp(n) >= 0 {
				return nil, decodeErr("coefficient %d out of range", i)
			}
		}
	}

	return ModFromBig(rctx, c)
}

// DecodeMod rebuilds a ModPoly and its ring from either encoding.
func DecodeMod(data []byte) (*ModPoly, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeModRecord(rec, nil)
}
