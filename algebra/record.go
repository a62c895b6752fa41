// SPDX-License-Identifier: MIT

// Package algebra - Context serialization.
//
// A Context travels as a codec.ContextRecord inside every bound value's
// record. Decoding either re-creates an equivalent Context or re-attaches
// the value to a caller-supplied one, which must then be compatible.
package algebra

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvnum/codec"
)

// Record returns the serialized parameters of c.
func (c *Context) Record() *codec.ContextRecord {
	p := c.s.params
	rec := &codec.ContextRecord{
		Kind:      uint64(p.Kind),
		Base:      uint64(p.Base),
		Var:       p.Var,
		Rows:      uint64(p.Rows),
		Cols:      uint64(p.Cols),
		Degree:    uint64(p.Degree),
		Precision: uint64(p.Precision),
	}
	if p.Modulus != nil {
		rec.Modulus = codec.IntBytes(p.Modulus)
	}
	if p.Defining != nil {
		rec.Defining = codec.RatsBytes(p.Defining)
	}

	return rec
}

// ParamsFromRecord decodes rec without validating the result.
func ParamsFromRecord(rec *codec.ContextRecord) (Params, error) {
	if rec == nil {
		return Params{}, fmt.Errorf("%w: missing context", ErrDecode)
	}
	const maxDim = math.MaxInt32
	if rec.Kind > math.MaxUint8 || rec.Base > math.MaxUint8 ||
		rec.Rows > maxDim || rec.Cols > maxDim || rec.Degree > maxDim || rec.Precision > maxDim {
		return Params{}, fmt.Errorf("%w: context field out of range", ErrDecode)
	}
	p := Params{
		Kind:      Kind(rec.Kind),
		Base:      Base(rec.Base),
		Var:       rec.Var,
		Rows:      int(rec.Rows),
		Cols:      int(rec.Cols),
		Degree:    int(rec.Degree),
		Precision: uint(rec.Precision),
	}
	if rec.Modulus != nil {
		n, err := codec.IntFromBytes(rec.Modulus)
		if err != nil {
			return Params{}, err
		}
		p.Modulus = n
	}
	if rec.Defining != nil {
		f, err := codec.Rats(rec.Defining)
		if err != nil {
			return Params{}, err
		}
		p.Defining = f
	}

	return p, nil
}

// FromRecord re-creates a Context from rec. Invalid parameters are reported
// as ErrDecode.
func FromRecord(rec *codec.ContextRecord, opts ...Option) (*Context, error) {
	p, err := ParamsFromRecord(rec)
	if err != nil {
		return nil, err
	}
	ctx, err := New(p, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return ctx, nil
}

// Attach resolves the Context of a decoded value. With ctx nil an
// equivalent Context is re-created from rec; otherwise rec must describe a
// structure compatible with ctx and a new handle on ctx is returned.
func Attach(rec *codec.ContextRecord, ctx *Context) (*Context, error) {
	if ctx == nil {
		return FromRecord(rec)
	}
	if err := ctx.Check(); err != nil {
		return nil, err
	}
	p, err := ParamsFromRecord(rec)
	if err != nil {
		return nil, err
	}
	p = p.withDefaults()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if string(identityBytes(p)) != string(ctx.s.identity) {
		return nil, fmt.Errorf("%w: record describes %s, not %s", ErrContextMismatch, describe(p), ctx)
	}

	return ctx.Clone()
}
