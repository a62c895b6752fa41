// SPDX-License-Identifier: MIT

package numfld

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/internal/terms"
)

// Coeffs returns the reduced representation in the generator, ascending.
func (a *Elem) Coeffs() ([]*big.Rat, error) {
	c, err := use(a, backend.NfCoeffs)
	if err != nil {
		return nil, algebra.Errorf("Elem.Coeffs", err)
	}

	return c, nil
}

// IsZero reports a == 0.
func (a *Elem) IsZero() bool {
	ok, err := use(a, backend.NfIsZero)

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
	eq := backend.NfEqual(ra, rx)
	a.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the field parameters with the canonical coefficients.
func (a *Elem) Hash() uint64 {
	c, err := a.Coeffs()
	if err != nil {
		return 0
	}

	return a.ctx.Hash(codec.RatsBytes(c)...)
}

// String prints the representation in the field variable, "1/2*a + 3".
func (a *Elem) String() string {
	c, err := a.Coeffs()
	if err != nil {
		return "<released>"
	}

	return terms.Format(terms.Rats(c), a.ctx.Var())
}

// ---------- serialization ----------

// Record returns the self-describing record of a, field included.
func (a *Elem) Record() (*codec.Record, error) {
	c, err := a.Coeffs()
	if err != nil {
		return nil, algebra.Errorf("Elem.Record", err)
	}

	return &codec.Record{Tag: codec.TagNumFld, Context: a.ctx.Record(), Ints: codec.RatsBytes(c)}, nil
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

// DecodeRecord rebuilds an Elem. The payload must be reduced: fewer than
// deg f coefficients in lowest terms, no trailing zero.
func DecodeRecord(rec *codec.Record, ctx *algebra.Context) (*Elem, error) {
	if err := rec.Expect(codec.TagNumFld, true); err != nil {
		return nil, err
	}
	c, err := codec.Rats(rec.Ints)
	if err != nil {
		return nil, err
	}
	canon := codec.RatsBytes(c)
	for i := range canon {
		if string(canon[i]) != string(rec.Ints[i]) {
			return nil, fmt.Errorf("%w: coefficient not in lowest terms", algebra.ErrDecode)
		}
	}
	fctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer fctx.Release()
	if err := expect(fctx); err != nil {
		return nil, fmt.Errorf("%w: %v", algebra.ErrDecode, err)
	}
	deg := backend.NfCtxDegree(nfOf(fctx))
	if len(c) > deg {
		return nil, fmt.Errorf("%w: %d coefficients in a degree %d field", algebra.ErrDecode, len(c), deg)
	}
	if n := len(c); n > 0 && c[n-1].Sign() == 0 {
		return nil, fmt.Errorf("%w: trailing zero coefficient", algebra.ErrDecode)
	}

	return FromCoeffs(fctx, c)
}

// Decode rebuilds an Elem and its field from either encoding.
func Decode(data []byte) (*Elem, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRecord(rec, nil)
}
