// SPDX-License-Identifier: MIT

// Package numfld - Elem: element of Q[a]/(f) bound to a number field Context.
//
// Representation:
//   - f is squarefree with rational coefficients; it need not be
//     irreducible, so the quotient may have zero divisors.
//   - An element is the reduced polynomial in the generator a (degree below
//     deg f); Coeffs returns it ascending, each coefficient in lowest terms.
package numfld

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/internal/terms"
	"github.com/katalvlaran/lvnum/lifecycle"
	"github.com/katalvlaran/lvnum/rational"
)

// Elem is an element of a number field. Not safe for concurrent use.
type Elem struct {
	h   *lifecycle.Handle[backend.Nf]
	ctx *algebra.Context
}

func nfOf(c *algebra.Context) *backend.NfCtx {
	f, err := c.NfCtx()
	if err != nil {
		panic(err)
	}

	return f
}

func expect(c *algebra.Context) error {
	return c.Expect(algebra.KindNumberField, algebra.BaseNone)
}

func alloc(ctx *algebra.Context) (*Elem, *backend.Nf, error) {
	f, err := ctx.NfCtx()
	if err != nil {
		return nil, nil, err
	}
	raw := backend.NfInit(f)

	return &Elem{h: lifecycle.New(raw, backend.NfClear), ctx: ctx}, raw, nil
}

func unwrap(a *Elem) (*backend.Nf, *algebra.Context, error) {
	if a == nil {
		return nil, nil, algebra.ErrNilValue
	}
	raw, err := a.h.Get()
	if err != nil {
		return nil, nil, err
	}

	return raw, a.ctx, nil
}

func build(op string, ctx *algebra.Context, fill func(dst *backend.Nf) error) (*Elem, error) {
	if err := expect(ctx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	a, err := kernel.New(ctx, func(_ *algebra.Context, dst *backend.Nf) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return a, nil
}

func use[R any](a *Elem, fn func(*backend.Nf) R) (R, error) {
	if a == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(a.h, fn)
}

// Degree returns deg f, the dimension of the field over Q.
func Degree(ctx *algebra.Context) (int, error) {
	if err := expect(ctx); err != nil {
		return 0, algebra.Errorf("numfld.Degree", err)
	}

	return backend.NfCtxDegree(nfOf(ctx)), nil
}

// FromInt64 returns the rational n.
func FromInt64(ctx *algebra.Context, n int64) (*Elem, error) {
	return build("numfld.FromInt64", ctx, func(dst *backend.Nf) error {
		backend.NfSetSi(dst, n)
		return nil
	})
}

// FromRat returns the rational q.
func FromRat(ctx *algebra.Context, q *big.Rat) (*Elem, error) {
	return FromCoeffs(ctx, []*big.Rat{q})
}

// FromRational returns the rational q.
func FromRational(ctx *algebra.Context, q *rational.Rational) (*Elem, error) {
	r, err := q.Big()
	if err != nil {
		return nil, algebra.Errorf("numfld.FromRational", err)
	}

	return FromRat(ctx, r)
}

// FromCoeffs returns sum c[i]*a^i reduced modulo f.
func FromCoeffs(ctx *algebra.Context, c []*big.Rat) (*Elem, error) {
	return build("numfld.FromCoeffs", ctx, func(dst *backend.Nf) error {
		for _, v := range c {
			if v == nil {
				return algebra.ErrNilValue
			}
		}
		backend.NfSetCoeffs(dst, c)
		return nil
	})
}

// Gen returns the generator, the class of the field variable.
func Gen(ctx *algebra.Context) (*Elem, error) {
	return build("numfld.Gen", ctx, func(dst *backend.Nf) error {
		backend.NfGen(dst)
		return nil
	})
}

// One returns the multiplicative identity.
func One(ctx *algebra.Context) (*Elem, error) {
	return build("numfld.One", ctx, func(dst *backend.Nf) error {
		backend.NfOne(dst)
		return nil
	})
}

// Parse reads the printed form with "c" or "c/d" coefficients.
func Parse(ctx *algebra.Context, s string) (*Elem, error) {
	if err := expect(ctx); err != nil {
		return nil, algebra.Errorf("numfld.Parse", err)
	}
	c, err := terms.ParseRats(s, ctx.Var())
	if err != nil {
		return nil, algebra.Detailf("numfld.Parse", algebra.ErrParse, "%v", err)
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
func (a *Elem) Clone() (*Elem, error) { return a.mapTo("Elem.Clone", backend.NfSet) }

// Close releases the element and its field handle.
func (a *Elem) Close() {
	if a != nil && a.h.Release() {
		a.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (a *Elem) Released() bool { return a == nil || a.h.Released() }

func (a *Elem) mapTo(op string, fn func(dst, src *backend.Nf)) (*Elem, error) {
	out, err := kernel.Map(a, func(_ *algebra.Context, dst, src *backend.Nf) error {
		fn(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}
