// SPDX-License-Identifier: MIT

// Package ratfunc - RatFunc: num/den over Z bound to a Z[x] Context.
//
// Representation:
//   - The foreign fmpz_poly_q is canonicalized by the backend after every
//     operation, so structural equality is value equality.
//   - The Context only carries the variable name and identity; any two
//     Z[x] rings are compatible regardless of the variable.
package ratfunc

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/lifecycle"
	"github.com/katalvlaran/lvnum/poly"
)

// RatFunc is a rational function with integer coefficients. Not safe for
// concurrent use.
type RatFunc struct {
	h   *lifecycle.Handle[backend.FmpzPolyQ]
	ctx *algebra.Context
}

func expect(c *algebra.Context) error {
	return c.Expect(algebra.KindPolyRing, algebra.BaseInteger)
}

func alloc(ctx *algebra.Context) (*RatFunc, *backend.FmpzPolyQ, error) {
	raw := backend.FmpzPolyQInit()

	return &RatFunc{h: lifecycle.New(raw, backend.FmpzPolyQClear), ctx: ctx}, raw, nil
}

func unwrap(f *RatFunc) (*backend.FmpzPolyQ, *algebra.Context, error) {
	if f == nil {
		return nil, nil, algebra.ErrNilValue
	}
	raw, err := f.h.Get()
	if err != nil {
		return nil, nil, err
	}

	return raw, f.ctx, nil
}

func build(op string, ctx *algebra.Context, fill func(dst *backend.FmpzPolyQ) error) (*RatFunc, error) {
	if err := expect(ctx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	f, err := kernel.New(ctx, func(_ *algebra.Context, dst *backend.FmpzPolyQ) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return f, nil
}

func use[R any](f *RatFunc, fn func(*backend.FmpzPolyQ) R) (R, error) {
	if f == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(f.h, fn)
}

// FromBig returns num/den in canonical form; ErrDivisionByZero when den is
// the zero polynomial.
func FromBig(ctx *algebra.Context, num, den []*big.Int) (*RatFunc, error) {
	return build("ratfunc.FromBig", ctx, func(dst *backend.FmpzPolyQ) error {
		zero := true
		for _, side := range [][]*big.Int{num, den} {
			for _, v := range side {
				if v == nil {
					return algebra.ErrNilValue
				}
			}
		}
		for _, v := range den {
			zero = zero && v.Sign() == 0
		}
		if zero {
			return algebra.ErrDivisionByZero
		}
		backend.FmpzPolyQSetFrac(dst, num, den)
		return nil
	})
}

// parts reads the coefficients of p after checking it lives in a ring
// compatible with ctx.
func parts(ctx *algebra.Context, p *poly.IntPoly) ([]*big.Int, error) {
	if p.Released() {
		return nil, algebra.ErrReleased
	}
	if err := ctx.CheckCompatible(p.Context()); err != nil {
		return nil, err
	}

	return p.Coeffs()
}

// New returns num/den in canonical form. Both polynomials must live in a
// ring compatible with ctx.
func New(ctx *algebra.Context, num, den *poly.IntPoly) (*RatFunc, error) {
	const op = "ratfunc.New"
	n, err := parts(ctx, num)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	d, err := parts(ctx, den)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	f, err := FromBig(ctx, n, d)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return f, nil
}

// FromIntPoly returns p/1 in p's ring.
func FromIntPoly(p *poly.IntPoly) (*RatFunc, error) {
	const op = "ratfunc.FromIntPoly"
	if p.Released() {
		return nil, algebra.Errorf(op, algebra.ErrReleased)
	}
	c, err := p.Coeffs()
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return build(op, p.Context(), func(dst *backend.FmpzPolyQ) error {
		backend.FmpzPolyQSetFrac(dst, c, []*big.Int{big.NewInt(1)})
		return nil
	})
}

// Zero returns 0/1.
func Zero(ctx *algebra.Context) (*RatFunc, error) {
	return build("ratfunc.Zero", ctx, func(*backend.FmpzPolyQ) error { return nil })
}

// One returns 1/1.
func One(ctx *algebra.Context) (*RatFunc, error) {
	return FromBig(ctx, []*big.Int{big.NewInt(1)}, []*big.Int{big.NewInt(1)})
}

// Gen returns x/1.
func Gen(ctx *algebra.Context) (*RatFunc, error) {
	return FromBig(ctx, []*big.Int{big.NewInt(0), big.NewInt(1)}, []*big.Int{big.NewInt(1)})
}

// Context returns the borrowed ring handle; nil once f is closed.
func (f *RatFunc) Context() *algebra.Context {
	if f.Released() {
		return nil
	}

	return f.ctx
}

// Clone returns a deep copy sharing f's ring.
func (f *RatFunc) Clone() (*RatFunc, error) { return f.mapTo("RatFunc.Clone", backend.FmpzPolyQSet) }

// Close releases the function and its ring handle.
func (f *RatFunc) Close() {
	if f != nil && f.h.Release() {
		f.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (f *RatFunc) Released() bool { return f == nil || f.h.Released() }

func (f *RatFunc) mapTo(op string, fn func(dst, src *backend.FmpzPolyQ)) (*RatFunc, error) {
	out, err := kernel.Map(f, func(_ *algebra.Context, dst, src *backend.FmpzPolyQ) error {
		fn(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}
