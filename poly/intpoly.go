// SPDX-License-Identifier: MIT

package poly

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/integer"
	"github.com/katalvlaran/lvnum/internal/terms"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// IntPoly is a polynomial in Z[x]. Not safe for concurrent use.
type IntPoly struct {
	h   *lifecycle.Handle[backend.FmpzPoly]
	ctx *algebra.Context
}

var intKernel = &arith.Kernel[*IntPoly, backend.FmpzPoly]{
	Name: "IntPoly",
	Caps: arith.CapInPlace | arith.CapNative | arith.CapNativeLeft,
	Unwrap: func(p *IntPoly) (*backend.FmpzPoly, *algebra.Context, error) {
		if p == nil {
			return nil, nil, algebra.ErrNilValue
		}
		raw, err := p.h.Get()
		if err != nil {
			return nil, nil, err
		}
		return raw, p.ctx, nil
	},
	Alloc: func(ctx *algebra.Context) (*IntPoly, *backend.FmpzPoly, error) {
		raw := backend.FmpzPolyInit()
		return &IntPoly{h: lifecycle.New(raw, backend.FmpzPolyClear), ctx: ctx}, raw, nil
	},
	Free: (*IntPoly).Close,
	Binary: arith.Binaries[backend.FmpzPoly]{
		arith.Add: arith.Plain(backend.FmpzPolyAdd),
		arith.Sub: arith.Plain(backend.FmpzPolySub),
		arith.Mul: arith.Plain(backend.FmpzPolyMul),
	},
	Native: arith.Natives[backend.FmpzPoly]{
		arith.Add: arith.PlainNative(backend.FmpzPolyAddSi),
		arith.Sub: arith.PlainNative(backend.FmpzPolySubSi),
		arith.Mul: arith.PlainNative(backend.FmpzPolyScalarMulSi),
	},
	NativeLeft: arith.NativeLefts[backend.FmpzPoly]{
		arith.Add: func(_ *algebra.Context, dst *backend.FmpzPoly, n int64, a *backend.FmpzPoly) {
			backend.FmpzPolyAddSi(dst, a, n)
		},
		arith.Sub: arith.PlainNativeLeft(backend.FmpzPolySiSub),
		arith.Mul: func(_ *algebra.Context, dst *backend.FmpzPoly, n int64, a *backend.FmpzPoly) {
			backend.FmpzPolyScalarMulSi(dst, a, n)
		},
	},
}

func newInt(op string, ctx *algebra.Context, fill func(dst *backend.FmpzPoly) error) (*IntPoly, error) {
	if err := expectRing(ctx, algebra.BaseInteger); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	p, err := intKernel.New(ctx, func(_ *algebra.Context, dst *backend.FmpzPoly) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return p, nil
}

// NewInt returns the polynomial with ascending coefficients c.
func NewInt(ctx *algebra.Context, c ...int64) (*IntPoly, error) {
	return IntFromBig(ctx, int64s(c))
}

// IntFromBig returns the polynomial with ascending coefficients c.
func IntFromBig(ctx *algebra.Context, c []*big.Int) (*IntPoly, error) {
	return newInt("poly.IntFromBig", ctx, func(dst *backend.FmpzPoly) error {
		for _, v := range c {
			if v == nil {
				return algebra.ErrNilValue
			}
		}
		backend.FmpzPolySetCoeffs(dst, c)
		return nil
	})
}

// ParseInt reads the printed form, e.g. "5*x + 1", in the ring's variable.
func ParseInt(ctx *algebra.Context, s string) (*IntPoly, error) {
	if err := ctx.Check(); err != nil {
		return nil, algebra.Errorf("poly.ParseInt", err)
	}
	c, err := parse(s, ctx.Var(), terms.ParseInts)
	if err != nil {
		return nil, algebra.Errorf("poly.ParseInt", err)
	}

	return IntFromBig(ctx, c)
}

func (p *IntPoly) use(fn func(*backend.FmpzPoly)) error {
	if p == nil {
		return algebra.ErrNilValue
	}
	_, err := lifecycle.Use(p.h, func(raw *backend.FmpzPoly) struct{} {
		fn(raw)
		return struct{}{}
	})

	return err
}

// Context returns the borrowed ring handle; nil once p is closed.
func (p *IntPoly) Context() *algebra.Context {
	if p.Released() {
		return nil
	}

	return p.ctx
}

// Clone returns a deep copy sharing p's ring.
func (p *IntPoly) Clone() (*IntPoly, error) {
	return p.mapTo("IntPoly.Clone", backend.FmpzPolySet)
}

// Close releases the polynomial and its ring handle.
func (p *IntPoly) Close() {
	if p != nil && p.h.Release() {
		p.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (p *IntPoly) Released() bool { return p == nil || p.h.Released() }

func (p *IntPoly) mapTo(op string, fn func(dst, src *backend.FmpzPoly)) (*IntPoly, error) {
	out, err := intKernel.Map(p, func(_ *algebra.Context, dst, src *backend.FmpzPoly) error {
		fn(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

// ---------- arithmetic ----------

// Add returns p + x.
func (p *IntPoly) Add(x *IntPoly) (*IntPoly, error) { return intKernel.Apply(arith.Add, p, x) }

// Sub returns p - x.
func (p *IntPoly) Sub(x *IntPoly) (*IntPoly, error) { return intKernel.Apply(arith.Sub, p, x) }

// Mul returns p * x.
func (p *IntPoly) Mul(x *IntPoly) (*IntPoly, error) { return intKernel.Apply(arith.Mul, p, x) }

func (p *IntPoly) AddAssign(x *IntPoly) error { return intKernel.Assign(arith.Add, p, x) }
func (p *IntPoly) SubAssign(x *IntPoly) error { return intKernel.Assign(arith.Sub, p, x) }
func (p *IntPoly) MulAssign(x *IntPoly) error { return intKernel.Assign(arith.Mul, p, x) }

func (p *IntPoly) AddInt64(n int64) (*IntPoly, error) { return intKernel.ApplyNative(arith.Add, p, n) }
func (p *IntPoly) SubInt64(n int64) (*IntPoly, error) { return intKernel.ApplyNative(arith.Sub, p, n) }
func (p *IntPoly) MulInt64(n int64) (*IntPoly, error) { return intKernel.ApplyNative(arith.Mul, p, n) }

func (p *IntPoly) AddInt64Assign(n int64) error { return intKernel.AssignNative(arith.Add, p, n) }
func (p *IntPoly) SubInt64Assign(n int64) error { return intKernel.AssignNative(arith.Sub, p, n) }
func (p *IntPoly) MulInt64Assign(n int64) error { return intKernel.AssignNative(arith.Mul, p, n) }

// Int64Sub returns n - p.
func (p *IntPoly) Int64Sub(n int64) (*IntPoly, error) {
	return intKernel.ApplyNativeLeft(arith.Sub, n, p)
}

// Neg returns -p.
func (p *IntPoly) Neg() (*IntPoly, error) { return p.mapTo("IntPoly.Neg", backend.FmpzPolyNeg) }

// Pow returns p^e.
func (p *IntPoly) Pow(e uint64) (*IntPoly, error) {
	return p.mapTo("IntPoly.Pow", func(dst, src *backend.FmpzPoly) { backend.FmpzPolyPow(dst, src, e) })
}

// Eval returns p(x).
func (p *IntPoly) Eval(x *integer.Integer) (*integer.Integer, error) {
	xb, err := x.Big()
	if err != nil {
		return nil, algebra.Errorf("IntPoly.Eval", err)
	}
	var out *big.Int
	err = p.use(func(raw *backend.FmpzPoly) {
		xz, dst := backend.FmpzInit(), backend.FmpzInit()
		defer backend.FmpzClear(xz)
		defer backend.FmpzClear(dst)
		backend.FmpzSetBig(xz, xb)
		backend.FmpzPolyEvaluate(dst, raw, xz)
		out = backend.FmpzGetBig(dst)
	})
	if err != nil {
		return nil, algebra.Errorf("IntPoly.Eval", err)
	}

	return integer.FromBig(out)
}

// ---------- inspection ----------

// Coeffs returns the ascending coefficients (empty for zero).
func (p *IntPoly) Coeffs() ([]*big.Int, error) {
	var c []*big.Int
	if err := p.use(func(raw *backend.FmpzPoly) { c = backend.FmpzPolyCoeffs(raw) }); err != nil {
		return nil, algebra.Errorf("IntPoly.Coeffs", err)
	}

	return c, nil
}

// Coeff returns the coefficient of x^i; zero beyond the degree.
func (p *IntPoly) Coeff(i int) (*big.Int, error) {
	if i < 0 {
		return nil, algebra.Errorf("IntPoly.Coeff", algebra.ErrOutOfRange)
	}
	var c *big.Int
	if err := p.use(func(raw *backend.FmpzPoly) { c = backend.FmpzPolyGetCoeff(raw, i) }); err != nil {
		return nil, algebra.Errorf("IntPoly.Coeff", err)
	}

	return c, nil
}

// Degree returns the degree, -1 for the zero polynomial or a closed value.
func (p *IntPoly) Degree() int {
	d := -1
	_ = p.use(func(raw *backend.FmpzPoly) { d = backend.FmpzPolyDegree(raw) })

	return d
}

// IsZero reports p == 0.
func (p *IntPoly) IsZero() bool {
	ok := false
	_ = p.use(func(raw *backend.FmpzPoly) { ok = backend.FmpzPolyIsZero(raw) })

	return ok
}

// Equal reports whether p and x live in compatible rings and have the same
// coefficients.
func (p *IntPoly) Equal(x *IntPoly) bool {
	ra, actx, err := intKernel.Unwrap(p)
	if err != nil {
		return false
	}
	rx, xctx, err := intKernel.Unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.FmpzPolyEqual(ra, rx)
	p.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the ring parameters with the coefficients.
func (p *IntPoly) Hash() uint64 {
	c, err := p.Coeffs()
	if err != nil {
		return 0
	}

	return p.ctx.Hash(codec.IntsBytes(c)...)
}

// String renders p in descending degree, e.g. "5*x + 1".
func (p *IntPoly) String() string {
	c, err := p.Coeffs()
	if err != nil {
		return "<released>"
	}

	return terms.Format(terms.Ints(c), p.ctx.Var())
}

// ---------- serialization ----------

// Record returns the self-describing record of p, ring included.
func (p *IntPoly) Record() (*codec.Record, error) {
	c, err := p.Coeffs()
	if err != nil {
		return nil, algebra.Errorf("IntPoly.Record", err)
	}

	return &codec.Record{Tag: codec.TagIntPoly, Context: p.ctx.Record(), Ints: codec.IntsBytes(c)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *IntPoly) MarshalBinary() ([]byte, error) {
	rec, err := p.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of p.
func (p *IntPoly) EncodeYAML() ([]byte, error) {
	rec, err := p.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeIntRecord rebuilds an IntPoly. With ctx nil the ring is re-created
// from the record; otherwise it must be compatible with ctx.
func DecodeIntRecord(rec *codec.Record, ctx *algebra.Context) (*IntPoly, error) {
	if err := rec.Expect(codec.TagIntPoly, true); err != nil {
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

	return IntFromBig(rctx, c)
}

// DecodeInt rebuilds an IntPoly and its ring from either encoding.
func DecodeInt(data []byte) (*IntPoly, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeIntRecord(rec, nil)
}
