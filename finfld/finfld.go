// SPDX-License-Identifier: MIT

// Package finfld - Elem: element of GF(p^k) bound to a finite field Context.
//
// Representation:
//   - GF(p^k) is Z/p[o] / (f) with f the monic irreducible polynomial the
//     backend picks deterministically for (p, k), so equal parameters give
//     equal representations.
//   - An element is the reduced polynomial in the generator o (degree < k,
//     coefficients in [0, p)); Coeffs returns it in ascending order.
package finfld

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/internal/terms"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// Elem is an element of a finite field. Not safe for concurrent use.
type Elem struct {
	h   *lifecycle.Handle[backend.Fq]
	ctx *algebra.Context
}

// fqOf returns the field descriptor of a Context that passed expect.
func fqOf(c *algebra.Context) *backend.FqCtx {
	f, err := c.FqCtx()
	if err != nil {
		panic(err)
	}

	return f
}

func expect(c *algebra.Context) error {
	return c.Expect(algebra.KindFiniteField, algebra.BaseNone)
}

func alloc(ctx *algebra.Context) (*Elem, *backend.Fq, error) {
	f, err := ctx.FqCtx()
	if err != nil {
		return nil, nil, err
	}
	raw := backend.FqInit(f)

	return &Elem{h: lifecycle.New(raw, backend.FqClear), ctx: ctx}, raw, nil
}

func unwrap(a *Elem) (*backend.Fq, *algebra.Context, error) {
	if a == nil {
		return nil, nil, algebra.ErrNilValue
	}
	raw, err := a.h.Get()
	if err != nil {
		return nil, nil, err
	}

	return raw, a.ctx, nil
}

func build(op string, ctx *algebra.Context, fill func(dst *backend.Fq) error) (*Elem, error) {
	if err := expect(ctx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	a, err := kernel.New(ctx, func(_ *algebra.Context, dst *backend.Fq) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return a, nil
}

func use[R any](a *Elem, fn func(*backend.Fq) R) (R, error) {
	if a == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(a.h, fn)
}

// Order returns p^k, the number of elements of the field.
func Order(ctx *algebra.Context) (*big.Int, error) {
	if err := expect(ctx); err != nil {
		return nil, algebra.Errorf("finfld.Order", err)
	}

	return backend.FqCtxOrder(fqOf(ctx)), nil
}

// FromInt64 returns n mod p.
func FromInt64(ctx *algebra.Context, n int64) (*Elem, error) {
	return build("finfld.FromInt64", ctx, func(dst *backend.Fq) error {
		backend.FqSetSi(dst, n)
		return nil
	})
}

// FromBig returns b mod p.
func FromBig(ctx *algebra.Context, b *big.Int) (*Elem, error) {
	return FromCoeffs(ctx, []*big.Int{b})
}

// FromCoeffs returns sum c[i]*o^i, reduced mod p and the field modulus.
func FromCoeffs(ctx *algebra.Context, c []*big.Int) (*Elem, error) {
	return build("finfld.FromCoeffs", ctx, func(dst *backend.Fq) error {
		for _, v := range c {
			if v == nil {
				return algebra.ErrNilValue
			}
		}
		backend.FqSetCoeffs(dst, c)
		return nil
	})
}

// Gen returns the generator o.
func Gen(ctx *algebra.Context) (*Elem, error) {
	return build("finfld.Gen", ctx, func(dst *backend.Fq) error {
		backend.FqGen(dst)
		return nil
	})
}

// One returns the multiplicative identity.
func One(ctx *algebra.Context) (*Elem, error) {
	return build("finfld.One", ctx, func(dst *backend.Fq) error {
		backend.FqOne(dst)
		return nil
	})
}

// Parse reads the printed form, a polynomial in the field variable with
// integer coefficients.
func Parse(ctx *algebra.Context, s string) (*Elem, error) {
	if err := expect(ctx); err != nil {
		return nil, algebra.Errorf("finfld.Parse", err)
	}
	c, err := terms.ParseInts(s, ctx.Var())
	if err != nil {
		return nil, algebra.Detailf("finfld.Parse", algebra.ErrParse, "%v", err)
	}

	return FromCoeffs(ctx, c)
}

// Context returns the borrowed field handle; nil once a is closed.
func (a *Elem) Context() *algebra.Context {
	if a.Released() {
		return nil
	}

	return a.ctx
}

// Clone returns a deep copy sharing a's field.
func (a *Elem) Clone() (*Elem, error) { return a.mapTo("Elem.Clone", backend.FqSet) }

// Close releases the element and its field handle.
func (a *Elem) Close() {
	if a != nil && a.h.Release() {
		a.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (a *Elem) Released() bool { return a == nil || a.h.Released() }

func (a *Elem) mapTo(op string, fn func(dst, src *backend.Fq)) (*Elem, error) {
	out, err := kernel.Map(a, func(_ *algebra.Context, dst, src *backend.Fq) error {
		fn(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}
