// SPDX-License-Identifier: MIT

package finfld

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/internal/terms"
)

// Coeffs returns the reduced representation in the generator, ascending;
// zero has no coefficients.
func (a *Elem) Coeffs() ([]*big.Int, error) {
	c, err := use(a, backend.FqCoeffs)
	if err != nil {
		return nil, algebra.Errorf("Elem.Coeffs", err)
	}

	return c, nil
}

// IsZero reports a == 0.
func (a *Elem) IsZero() bool {
	ok, err := use(a, backend.FqIsZero)

	return err == nil && ok
}

// IsOne reports a == 1.
func (a *Elem) IsOne() bool {
	ok, err := use(a, backend.FqIsOne)

	return err == nil && ok
}

// Equal reports whether a and x live in compatible fields and are the same
// element.
func (a *Elem) Equal(x *Elem) bool {
	ra, actx, err := unwrap(a)
	if err != nil {
		return false
	}
	rx, xctx, err := unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.FqEqual(ra, rx)
	a.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the field parameters with the reduced representation.
func (a *Elem) Hash() uint64 {
	c, err := a.Coeffs()
	if err != nil {
		return 0
	}

	return a.ctx.Hash(codec.IntsBytes(c)...)
}

// String prints the representation in the field variable, "3*o^2 + 1".
func (a *Elem) String() string {
	c, err := a.Coeffs()
	if err != nil {
		return "<released>"
	}

	return terms.Format(terms.Ints(c), a.ctx.Var())
}

// ---------- serialization ----------

// Record returns the self-describing record of a, field included.
func (a *Elem) Record() (*codec.Record, error) {
	c, err := a.Coeffs()
	if err != nil {
		return nil, algebra.Errorf("Elem.Record", err)
	}

	return &codec.Record{Tag: codec.TagFinFld, Context: a.ctx.Record(), Ints: codec.IntsBytes(c)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *Elem) MarshalBinary() ([]byte, error) {
	rec, err := a.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of a.
func (a *Elem) EncodeYAML() ([]byte, error) {
	rec, err := a.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeRecord rebuilds an Elem. The payload must be reduced: fewer than k
// coefficients, each in [0, p), no trailing zero.
func DecodeRecord(rec *codec.Record, ctx *algebra.Context) (*Elem, error) {
	if err := rec.Expect(codec.TagFinFld, true); err != nil {
		return nil, err
	}
	c, err := codec.Ints(rec.Ints)
	if err != nil {
		return nil, err
	}
	fctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer fctx.Release()
	if err := expect(fctx); err != nil {
		return nil, fmt.Errorf("%w: %v", algebra.ErrDecode, err)
	}
	if err := reduced(c, fctx.Modulus(), fctx.Degree()); err != nil {
		return nil, err
	}

	return FromCoeffs(fctx, c)
}

func reduced(c []*big.Int, p *big.Int, k int) error {
	if len(c) > k {
		return fmt.Errorf("%w: %d coefficients in a degree %d field", algebra.ErrDecode, len(c), k)
	}
	for _, v := range c {
		if v.Sign() < 0 || v.Cmp(p) >= 0 {
			return fmt.Errorf("%w: coefficient %s outside [0, %s)", algebra.ErrDecode, v, p)
		}
	}
	if n := len(c); n > 0 && c[n-1].Sign() == 0 {
		return fmt.Errorf("%w: trailing zero coefficient", algebra.ErrDecode)
	}

	return nil
}

// Decode rebuilds an Elem and its field from either encoding.
func Decode(data []byte) (*Elem, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRecord(rec, nil)
}
