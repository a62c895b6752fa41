// SPDX-License-Identifier: MIT

package poly

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/finfld"
	"github.com/katalvlaran/lvnum/internal/terms"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// FqPoly is a polynomial over GF(p^k). Coefficients are field elements in
// the generator o. Not safe for concurrent use.
type FqPoly struct {
	h   *lifecycle.Handle[backend.FqPoly]
	ctx *algebra.Context
}

func fqPolyIsZero(p *backend.FqPoly) bool { return backend.FqPolyLength(p) == 0 }

// Over a field every non-zero divisor works; native divisors must be prime
// to the characteristic.
var fqKernel = &arith.Kernel[*FqPoly, backend.FqPoly]{
	Name: "FqPoly",
	Caps: arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: func(p *FqPoly) (*backend.FqPoly, *algebra.Context, error) {
		if p == nil {
			return nil, nil, algebra.ErrNilValue
		}
		raw, err := p.h.Get()
		if err != nil {
			return nil, nil, err
		}
		return raw, p.ctx, nil
	},
	Alloc: func(ctx *algebra.Context) (*FqPoly, *backend.FqPoly, error) {
		f, err := ctx.FqCtx()
		if err != nil {
			return nil, nil, err
		}
		raw := backend.FqPolyInit(f)
		return &FqPoly{h: lifecycle.New(raw, backend.FqPolyClear), ctx: ctx}, raw, nil
	},
	Free:   (*FqPoly).Close,
	IsZero: fqPolyIsZero,
	CanDivideNative: func(c *algebra.Context, n int64) bool {
		return new(big.Int).Mod(big.NewInt(n), c.Modulus()).Sign() != 0
	},
	Binary: arith.Binaries[backend.FqPoly]{
		arith.Add: arith.Plain(backend.FqPolyAdd),
		arith.Sub: arith.Plain(backend.FqPolySub),
		arith.Mul: arith.Plain(backend.FqPolyMul),
		arith.Div: arith.Plain(backend.FqPolyDiv),
	},
	Native: arith.Natives[backend.FqPoly]{
		arith.Add: arith.PlainNative(backend.FqPolyAddSi),
		arith.Sub: arith.PlainNative(backend.FqPolySubSi),
		arith.Mul: arith.PlainNative(backend.FqPolyScalarMulSi),
		arith.Div: arith.PlainNative(backend.FqPolyScalarDivSi),
	},
	NativeLeft: arith.NativeLefts[backend.FqPoly]{
		arith.Add: func(_ *algebra.Context, dst *backend.FqPoly, n int64, a *backend.FqPoly) {
			backend.FqPolyAddSi(dst, a, n)
		},
		arith.Sub: arith.PlainNativeLeft(backend.FqPolySiSub),
		arith.Mul: func(_ *algebra.Context, dst *backend.FqPoly, n int64, a *backend.FqPoly) {
			backend.FqPolyScalarMulSi(dst, a, n)
		},
	},
}

func newFq(op string, ctx *algebra.Context, fill func(dst *backend.FqPoly) error) (*FqPoly, error) {
	if err := expectRing(ctx, algebra.BaseFiniteField); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	p, err := fqKernel.New(ctx, func(_ *algebra.Context, dst *backend.FqPoly) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return p, nil
}

// NewFq returns the polynomial whose ascending coefficients are the prime
// field constants c reduced mod p.
func NewFq(ctx *algebra.Context, c ...int64) (*FqPoly, error) {
	e := make([][]*big.Int, len(c))
	for i, v := range c {
		e[i] = []*big.Int{big.NewInt(v)}
	}

	return FqFromCoeffs(ctx, e)
}

// FqFromCoeffs returns the polynomial with ascending coefficients c, each
// given in the generator (ascending) and reduced into the field.
func FqFromCoeffs(ctx *algebra.Context, c [][]*big.Int) (*FqPoly, error) {
	return newFq("poly.FqFromCoeffs", ctx, func(dst *backend.FqPoly) error {
		for _, e := range c {
			for _, v := range e {
				if v == nil {
					return algebra.ErrNilValue
				}
			}
		}
		backend.FqPolySetCoeffs(dst, c)
		return nil
	})
}

// FqFromElems returns the polynomial with ascending field coefficients c.
// Every element must live in the coefficient field of ctx.
func FqFromElems(ctx *algebra.Context, c ...*finfld.Elem) (*FqPoly, error) {
	const op = "poly.FqFromElems"
	if err := expectRing(ctx, algebra.BaseFiniteField); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	e := make([][]*big.Int, len(c))
	for i, x := range c {
		if err := inField(ctx, x); err != nil {
			return nil, algebra.Errorf(op, err)
		}
		v, err := x.Coeffs()
		if err != nil {
			return nil, algebra.Errorf(op, err)
		}
		e[i] = v
	}

	return FqFromCoeffs(ctx, e)
}

// inField checks that x is an element of the coefficient field of ring.
func inField(ring *algebra.Context, x *finfld.Elem) error {
	if x.Released() {
		return algebra.ErrReleased
	}
	fc := x.Context()
	if fc.Degree() != ring.Degree() || fc.Modulus().Cmp(ring.Modulus()) != 0 {
		return fmt.Errorf("%w: %s over an element of %s", algebra.ErrContextMismatch, ring, fc)
	}

	return nil
}

// FqGen returns the polynomial variable x.
func FqGen(ctx *algebra.Context) (*FqPoly, error) {
	return NewFq(ctx, 0, 1)
}

func (p *FqPoly) use(fn func(*backend.FqPoly)) error {
	if p == nil {
		return algebra.ErrNilValue
	}
	_, err := lifecycle.Use(p.h, func(raw *backend.FqPoly) struct{} {
		fn(raw)
		return struct{}{}
	})

	return err
}

// Context returns the borrowed ring handle; nil once p is closed.
func (p *FqPoly) Context() *algebra.Context {
	if p.Released() {
		return nil
	}

	return p.ctx
}

// Clone returns a deep copy sharing p's ring.
func (p *FqPoly) Clone() (*FqPoly, error) {
	return p.mapTo("FqPoly.Clone", func(dst, src *backend.FqPoly) error {
		backend.FqPolySet(dst, src)
		return nil
	})
}

// Close releases the polynomial and its ring handle.
func (p *FqPoly) Close() {
	if p != nil && p.h.Release() {
		p.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (p *FqPoly) Released() bool { return p == nil || p.h.Released() }

func (p *FqPoly) mapTo(op string, fn func(dst, src *backend.FqPoly) error) (*FqPoly, error) {
	out, err := fqKernel.Map(p, func(_ *algebra.Context, dst, src *backend.FqPoly) error { return fn(dst, src) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

func (p *FqPoly) binaryExtra(op string, x *FqPoly, fn func(dst, a, b *backend.FqPoly) error) (*FqPoly, error) {
	_, pctx, err := fqKernel.Unwrap(p)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	rx, xctx, err := fqKernel.Unwrap(x)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	if err := pctx.CheckCompatible(xctx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	out, err := p.mapTo(op, func(dst, src *backend.FqPoly) error { return fn(dst, src, rx) })
	x.h.KeepAlive()

	return out, err
}

// withElem runs fn on a scratch backend element holding x.
func (p *FqPoly) withElem(x *finfld.Elem, fn func(s *backend.Fq)) error {
	if err := inField(p.ctx, x); err != nil {
		return err
	}
	c, err := x.Coeffs()
	if err != nil {
		return err
	}
	f, err := p.ctx.FqCtx()
	if err != nil {
		return err
	}
	s := backend.FqInit(f)
	defer backend.FqClear(s)
	backend.FqSetCoeffs(s, c)
	fn(s)

	return nil
}

// ---------- arithmetic ----------

// Add returns p + x.
func (p *FqPoly) Add(x *FqPoly) (*FqPoly, error) { return fqKernel.Apply(arith.Add, p, x) }

// Sub returns p - x.
func (p *FqPoly) Sub(x *FqPoly) (*FqPoly, error) { return fqKernel.Apply(arith.Sub, p, x) }

// Mul returns p * x.
func (p *FqPoly) Mul(x *FqPoly) (*FqPoly, error) { return fqKernel.Apply(arith.Mul, p, x) }

// Div returns the Euclidean quotient of p by x; ErrDivisionByZero for x = 0.
func (p *FqPoly) Div(x *FqPoly) (*FqPoly, error) { return fqKernel.Apply(arith.Div, p, x) }

func (p *FqPoly) AddAssign(x *FqPoly) error { return fqKernel.Assign(arith.Add, p, x) }
func (p *FqPoly) SubAssign(x *FqPoly) error { return fqKernel.Assign(arith.Sub, p, x) }
func (p *FqPoly) MulAssign(x *FqPoly) error { return fqKernel.Assign(arith.Mul, p, x) }
func (p *FqPoly) DivAssign(x *FqPoly) error { return fqKernel.Assign(arith.Div, p, x) }

func (p *FqPoly) AddInt64(n int64) (*FqPoly, error) { return fqKernel.ApplyNative(arith.Add, p, n) }
func (p *FqPoly) SubInt64(n int64) (*FqPoly, error) { return fqKernel.ApplyNative(arith.Sub, p, n) }
func (p *FqPoly) MulInt64(n int64) (*FqPoly, error) { return fqKernel.ApplyNative(arith.Mul, p, n) }
func (p *FqPoly) DivInt64(n int64) (*FqPoly, error) { return fqKernel.ApplyNative(arith.Div, p, n) }

func (p *FqPoly) AddInt64Assign(n int64) error { return fqKernel.AssignNative(arith.Add, p, n) }
func (p *FqPoly) SubInt64Assign(n int64) error { return fqKernel.AssignNative(arith.Sub, p, n) }
func (p *FqPoly) MulInt64Assign(n int64) error { return fqKernel.AssignNative(arith.Mul, p, n) }
func (p *FqPoly) DivInt64Assign(n int64) error { return fqKernel.AssignNative(arith.Div, p, n) }

// Int64Sub returns n - p.
func (p *FqPoly) Int64Sub(n int64) (*FqPoly, error) {
	return fqKernel.ApplyNativeLeft(arith.Sub, n, p)
}

// Neg returns -p.
func (p *FqPoly) Neg() (*FqPoly, error) {
	return p.mapTo("FqPoly.Neg", func(dst, src *backend.FqPoly) error {
		backend.FqPolyNeg(dst, src)
		return nil
	})
}

// Pow returns p^e.
func (p *FqPoly) Pow(e uint64) (*FqPoly, error) {
	return p.mapTo("FqPoly.Pow", func(dst, src *backend.FqPoly) error {
		backend.FqPolyPow(dst, src, e)
		return nil
	})
}

// Derivative returns dp/dx.
func (p *FqPoly) Derivative() (*FqPoly, error) {
	return p.mapTo("FqPoly.Derivative", func(dst, src *backend.FqPoly) error {
		backend.FqPolyDerivative(dst, src)
		return nil
	})
}

// Monic returns p divided by its leading coefficient; zero stays zero.
func (p *FqPoly) Monic() (*FqPoly, error) {
	return p.mapTo("FqPoly.Monic", func(dst, src *backend.FqPoly) error {
		backend.FqPolyMakeMonic(dst, src)
		return nil
	})
}

// Scale returns s * p for a field element s.
func (p *FqPoly) Scale(s *finfld.Elem) (*FqPoly, error) {
	return p.mapTo("FqPoly.Scale", func(dst, src *backend.FqPoly) error {
		return p.withElem(s, func(raw *backend.Fq) { backend.FqPolyScalarMulFq(dst, src, raw) })
	})
}

// Rem returns the Euclidean remainder of p by x.
func (p *FqPoly) Rem(x *FqPoly) (*FqPoly, error) {
	return p.binaryExtra("FqPoly.Rem", x, func(dst, a, b *backend.FqPoly) error {
		if fqPolyIsZero(b) {
			return algebra.ErrDivisionByZero
		}
		backend.FqPolyRem(dst, a, b)
		return nil
	})
}

// DivRem returns quotient and remainder with deg r < deg x.
func (p *FqPoly) DivRem(x *FqPoly) (q, r *FqPoly, err error) {
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
func (p *FqPoly) Gcd(x *FqPoly) (*FqPoly, error) {
	return p.binaryExtra("FqPoly.Gcd", x, func(dst, a, b *backend.FqPoly) error {
		backend.FqPolyGcd(dst, a, b)
		return nil
	})
}

// Eval returns p(x) for x in the coefficient field.
func (p *FqPoly) Eval(x *finfld.Elem) (*finfld.Elem, error) {
	const op = "FqPoly.Eval"
	_, pctx, err := fqKernel.Unwrap(p)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	if err := inField(pctx, x); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	var out []*big.Int
	err = p.use(func(raw *backend.FqPoly) {
		_ = p.withElem(x, func(s *backend.Fq) {
			backend.FqPolyEvaluate(s, raw, s)
			out = backend.FqCoeffs(s)
		})
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return finfld.FromCoeffs(x.Context(), out)
}

// ---------- inspection ----------

// Coeffs returns the ascending coefficients, each as its reduced generator
// representation (empty for zero).
func (p *FqPoly) Coeffs() ([][]*big.Int, error) {
	var c [][]*big.Int
	if err := p.use(func(raw *backend.FqPoly) { c = backend.FqPolyCoeffs(raw) }); err != nil {
		return nil, algebra.Errorf("FqPoly.Coeffs", err)
	}

	return c, nil
}

// Coeff returns the coefficient of x^i as an element of the coefficient
// field; zero beyond the degree.
func (p *FqPoly) Coeff(i int) (*finfld.Elem, error) {
	const op = "FqPoly.Coeff"
	if i < 0 {
		return nil, algebra.Errorf(op, algebra.ErrOutOfRange)
	}
	c, err := p.Coeffs()
	if err != nil {
		return nil, err
	}
	field, err := p.ctx.BaseField()
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	defer field.Release()
	var v []*big.Int
	if i < len(c) {
		v = c[i]
	}

	return finfld.FromCoeffs(field, v)
}

// Degree returns the degree, -1 for the zero polynomial or a closed value.
func (p *FqPoly) Degree() int {
	d := -1
	_ = p.use(func(raw *backend.FqPoly) { d = backend.FqPolyLength(raw) - 1 })

	return d
}

// IsZero reports p == 0.
func (p *FqPoly) IsZero() bool {
	ok := false
	_ = p.use(func(raw *backend.FqPoly) { ok = fqPolyIsZero(raw) })

	return ok
}

func isConst(c []*big.Int, v int64) bool {
	return len(c) == 1 && c[0].Cmp(big.NewInt(v)) == 0
}

// IsOne reports p == 1.
func (p *FqPoly) IsOne() bool {
	c, err := p.Coeffs()

	return err == nil && len(c) == 1 && isConst(c[0], 1)
}

// IsGen reports p == x.
func (p *FqPoly) IsGen() bool {
	c, err := p.Coeffs()

	return err == nil && len(c) == 2 && len(c[0]) == 0 && isConst(c[1], 1)
}

// Equal reports whether p and x live in compatible rings and have the same
// coefficients.
func (p *FqPoly) Equal(x *FqPoly) bool {
	ra, actx, err := fqKernel.Unwrap(p)
	if err != nil {
		return false
	}
	rx, xctx, err := fqKernel.Unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.FqPolyEqual(ra, rx)
	p.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the ring parameters with the padded coefficients.
func (p *FqPoly) Hash() uint64 {
	c, err := p.Coeffs()
	if err != nil {
		return 0
	}

	return p.ctx.Hash(codec.FieldBytes(c, p.ctx.Degree())...)
}

// String renders p in descending degree; coefficients print in the field
// generator, parenthesized when they are sums: "(o + 1)*x^2 + o".
func (p *FqPoly) String() string {
	c, err := p.Coeffs()
	if err != nil {
		return "<released>"
	}
	cs := make([]string, len(c))
	for i, e := range c {
		cs[i] = terms.Format(terms.Ints(e), algebra.DefaultFieldVar)
	}

	return terms.Format(terms.Nested(cs), p.ctx.Var())
}

// ---------- serialization ----------

// Record returns the self-describing record of p, ring included. Each
// coefficient is padded to k residues.
func (p *FqPoly) Record() (*codec.Record, error) {
	c, err := p.Coeffs()
	if err != nil {
		return nil, algebra.Errorf("FqPoly.Record", err)
	}

	return &codec.Record{Tag: codec.TagFqPoly, Context: p.ctx.Record(), Ints: codec.FieldBytes(c, p.ctx.Degree())}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *FqPoly) MarshalBinary() ([]byte, error) {
	rec, err := p.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of p.
func (p *FqPoly) EncodeYAML() ([]byte, error) {
	rec, err := p.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeFqRecord rebuilds an FqPoly. Residues must lie in [0, p), each
// coefficient must fill exactly k slots and the leading one must be non-zero.
func DecodeFqRecord(rec *codec.Record, ctx *algebra.Context) (*FqPoly, error) {
	if err := rec.Expect(codec.TagFqPoly, true); err != nil {
		return nil, err
	}
	rctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer rctx.Release()
	if err := expectRing(rctx, algebra.BaseFiniteField); err != nil {
		return nil, err
	}
	c, err := codec.FieldElems(rec.Ints, rctx.Degree(), rctx.Modulus())
	if err != nil {
		return nil, err
	}
	if n := len(c); n > 0 && len(c[n-1]) == 0 {
		return nil, decodeErr("trailing zero coefficient")
	}

	return FqFromCoeffs(rctx, c)
}

// DecodeFq rebuilds an FqPoly and its ring from either encoding.
func DecodeFq(data []byte) (*FqPoly, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeFqRecord(rec, nil)
}
