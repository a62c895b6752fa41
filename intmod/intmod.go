// SPDX-License-Identifier: MIT

// Package intmod - IntMod: residue in Z/nZ bound to an integer-mod Context.
//
// Ownership:
//   - An IntMod owns one fmpz structure holding the canonical residue
//     0 <= r < n and one retained handle on its Context.
//   - Close releases both; the descriptor survives until its last handle goes.
package intmod

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/integer"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// IntMod is an element of Z/nZ. Not safe for concurrent use.
type IntMod struct {
	h   *lifecycle.Handle[backend.Fmpz]
	ctx *algebra.Context
}

// modCtx returns the modulus descriptor of a Context that passed expect.
func modCtx(c *algebra.Context) *backend.ModCtx {
	m, err := c.ModCtx()
	if err != nil {
		panic(err)
	}

	return m
}

func expect(c *algebra.Context) error {
	return c.Expect(algebra.KindIntMod, algebra.BaseNone)
}

func alloc(ctx *algebra.Context) (*IntMod, *backend.Fmpz, error) {
	raw := backend.FmpzInit()

	return &IntMod{h: lifecycle.New(raw, backend.FmpzClear), ctx: ctx}, raw, nil
}

func unwrap(a *IntMod) (*backend.Fmpz, *algebra.Context, error) {
	if a == nil {
		return nil, nil, algebra.ErrNilValue
	}
	raw, err := a.h.Get()
	if err != nil {
		return nil, nil, err
	}

	return raw, a.ctx, nil
}

func build(op string, ctx *algebra.Context, fill func(m *backend.ModCtx, dst *backend.Fmpz) error) (*IntMod, error) {
	if err := expect(ctx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	a, err := kernel.New(ctx, func(c *algebra.Context, dst *backend.Fmpz) error { return fill(modCtx(c), dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return a, nil
}

func use[R any](a *IntMod, fn func(*backend.Fmpz) R) (R, error) {
	if a == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(a.h, fn)
}

// FromInt64 returns n mod the Context's modulus.
func FromInt64(ctx *algebra.Context, n int64) (*IntMod, error) {
	return build("intmod.FromInt64", ctx, func(m *backend.ModCtx, dst *backend.Fmpz) error {
		backend.FmpzModSetSi(dst, n, m)
		return nil
	})
}

// FromBig returns b reduced into [0, n).
func FromBig(ctx *algebra.Context, b *big.Int) (*IntMod, error) {
	return build("intmod.FromBig", ctx, func(m *backend.ModCtx, dst *backend.Fmpz) error {
		if b == nil {
			return algebra.ErrNilValue
		}
		backend.FmpzSetBig(dst, b)
		backend.FmpzModSetFmpz(dst, dst, m)
		return nil
	})
}

// FromInteger returns z reduced into [0, n).
func FromInteger(ctx *algebra.Context, z *integer.Integer) (*IntMod, error) {
	b, err := z.Big()
	if err != nil {
		return nil, algebra.Errorf("intmod.FromInteger", err)
	}

	return FromBig(ctx, b)
}

// Parse reads a signed decimal integer and reduces it.
func Parse(ctx *algebra.Context, s string) (*IntMod, error) {
	return build("intmod.Parse", ctx, func(m *backend.ModCtx, dst *backend.Fmpz) error {
		if !backend.FmpzSetStr(dst, s, 10) {
			return algebra.ErrParse
		}
		backend.FmpzModSetFmpz(dst, dst, m)
		return nil
	})
}

// Context returns the borrowed Context handle; nil once a is closed.
func (a *IntMod) Context() *algebra.Context {
	if a.Released() {
		return nil
	}

	return a.ctx
}

// Clone returns a deep copy sharing a's Context.
func (a *IntMod) Clone() (*IntMod, error) {
	return a.mapTo("IntMod.Clone", func(_ *backend.ModCtx, dst, src *backend.Fmpz) error {
		backend.FmpzSet(dst, src)
		return nil
	})
}

// Close releases the residue and the Context handle. Only the first call
// has an effect.
func (a *IntMod) Close() {
	if a != nil && a.h.Release() {
		a.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (a *IntMod) Released() bool { return a == nil || a.h.Released() }

func (a *IntMod) mapTo(op string, fn func(m *backend.ModCtx, dst, src *backend.Fmpz) error) (*IntMod, error) {
	out, err := kernel.Map(a, func(c *algebra.Context, dst, src *backend.Fmpz) error {
		return fn(modCtx(c), dst, src)
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}
