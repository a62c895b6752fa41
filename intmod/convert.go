// SPDX-License-Identifier: MIT

package intmod

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/integer"
)

// Big returns the residue in [0, n).
func (a *IntMod) Big() (*big.Int, error) {
	b, err := use(a, backend.FmpzGetBig)
	if err != nil {
		return nil, algebra.Errorf("IntMod.Big", err)
	}

	return b, nil
}

// Integer returns the residue as an Integer.
func (a *IntMod) Integer() (*integer.Integer, error) {
	b, err := a.Big()
	if err != nil {
		return nil, err
	}

	return integer.FromBig(b)
}

// Int64 returns the residue; ErrOverflow when it does not fit.
func (a *IntMod) Int64() (int64, error) {
	b, err := a.Big()
	if err != nil {
		return 0, err
	}
	if !b.IsInt64() {
		return 0, algebra.Errorf("IntMod.Int64", algebra.ErrOverflow)
	}

	return b.Int64(), nil
}

// IsZero reports a == 0.
func (a *IntMod) IsZero() bool {
	ok, _ := use(a, backend.FmpzIsZero)

	return ok
}

// Equal reports whether a and x live in compatible rings and hold the same
// residue.
func (a *IntMod) Equal(x *IntMod) bool {
	ra, actx, err := unwrap(a)
	if err != nil {
		return false
	}
	rx, xctx, err := unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.FmpzEqual(ra, rx)
	a.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the ring parameters with the residue.
func (a *IntMod) Hash() uint64 {
	p, err := use(a, backend.FmpzBytes)
	if err != nil {
		return 0
	}

	return a.ctx.Hash(p)
}

// String formats the residue in decimal.
func (a *IntMod) String() string {
	s, err := use(a, func(raw *backend.Fmpz) string { return backend.FmpzGetStr(raw, 10) })
	if err != nil {
		return "<released>"
	}

	return s
}

// ---------- serialization ----------

// Record returns the self-describing record of a, Context included.
func (a *IntMod) Record() (*codec.Record, error) {
	p, err := use(a, backend.FmpzBytes)
	if err != nil {
		return nil, algebra.Errorf("IntMod.Record", err)
	}

	return &codec.Record{Tag: codec.TagIntMod, Context: a.ctx.Record(), Ints: [][]byte{p}}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *IntMod) MarshalBinary() ([]byte, error) {
	rec, err := a.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of a.
func (a *IntMod) EncodeYAML() ([]byte, error) {
	rec, err := a.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeRecord rebuilds an IntMod. With ctx nil the ring is re-created from
// the record; otherwise the record must describe a ring compatible with ctx.
// The residue must be canonical.
func DecodeRecord(rec *codec.Record, ctx *algebra.Context) (*IntMod, error) {
	if err := rec.Expect(codec.TagIntMod, true); err != nil {
		return nil, err
	}
	if len(rec.Ints) != 1 {
		return nil, fmt.Errorf("%w: intmod record needs one payload", algebra.ErrDecode)
	}
	c, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer c.Release()

	return build("intmod.DecodeRecord", c, func(m *backend.ModCtx, dst *backend.Fmpz) error {
		if !backend.FmpzSetBytes(dst, rec.Ints[0]) || !backend.FmpzModIsCanonical(dst, m) {
			return fmt.Errorf("%w: residue out of range", algebra.ErrDecode)
		}
		return nil
	})
}

// Decode rebuilds an IntMod and its ring from either encoding.
func Decode(data []byte) (*IntMod, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRecord(rec, nil)
}
