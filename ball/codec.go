// SPDX-License-Identifier: MIT

package ball

import (
	"fmt"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
)

// Record returns the self-describing record of x: precision, then the
// midpoint and radius in Floats.
func (x *Real) Record() (*codec.Record, error) {
	fl, err := useReal(x, func(raw *backend.Arb) [][]byte {
		mid, rad := backend.ArbCanonical(raw)
		return [][]byte{mid, rad}
	})
	if err != nil {
		return nil, algebra.Errorf("Real.Record", err)
	}

	return &codec.Record{Tag: codec.TagReal, Context: x.ctx.Record(), Floats: fl}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (x *Real) MarshalBinary() ([]byte, error) {
	rec, err := x.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of x.
func (x *Real) EncodeYAML() ([]byte, error) {
	rec, err := x.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// attach resolves the precision Context of a ball record.
func attach(rec *codec.Record, ctx *algebra.Context, tag string, floats int) (*algebra.Context, error) {
	if err := rec.Expect(tag, true); err != nil {
		return nil, err
	}
	if len(rec.Floats) != floats {
		return nil, fmt.Errorf("%w: %s record needs %d floats, has %d", algebra.ErrDecode, tag, floats, len(rec.Floats))
	}
	pctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	if err := expect(pctx); err != nil {
		pctx.Release()
		return nil, fmt.Errorf("%w: %v", algebra.ErrDecode, err)
	}

	return pctx, nil
}

// DecodeRealRecord rebuilds a Real. A nil ctx re-creates the precision
// Context from the record; otherwise ctx must match it.
func DecodeRealRecord(rec *codec.Record, ctx *algebra.Context) (*Real, error) {
	pctx, err := attach(rec, ctx, codec.TagReal, 2)
	if err != nil {
		return nil, err
	}
	defer pctx.Release()

	return buildReal("ball.DecodeReal", pctx, func(dst *backend.Arb, prec uint) error {
		if !backend.ArbSetCanonical(dst, rec.Floats[0], rec.Floats[1], prec) {
			return fmt.Errorf("%w: bad ball payload", algebra.ErrDecode)
		}
		return nil
	})
}

// DecodeReal rebuilds a Real and its Context from either encoding.
func DecodeReal(data []byte) (*Real, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRealRecord(rec, nil)
}

// Record returns the self-describing record of z: real midpoint and
// radius, then imaginary midpoint and radius.
func (z *Complex) Record() (*codec.Record, error) {
	enc, err := useComplex(z, backend.AcbCanonical)
	if err != nil {
		return nil, algebra.Errorf("Complex.Record", err)
	}

	return &codec.Record{Tag: codec.TagComplex, Context: z.ctx.Record(), Floats: enc[:]}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (z *Complex) MarshalBinary() ([]byte, error) {
	rec, err := z.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of z.
func (z *Complex) EncodeYAML() ([]byte, error) {
	rec, err := z.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeComplexRecord rebuilds a Complex, see DecodeRealRecord.
func DecodeComplexRecord(rec *codec.Record, ctx *algebra.Context) (*Complex, error) {
	pctx, err := attach(rec, ctx, codec.TagComplex, 4)
	if err != nil {
		return nil, err
	}
	defer pctx.Release()

	var enc [4][]byte
	copy(enc[:], rec.Floats)

	return buildComplex("ball.DecodeComplex", pctx, func(dst *backend.Acb, prec uint) error {
		if !backend.AcbSetCanonical(dst, enc, prec) {
			return fmt.Errorf("%w: bad ball payload", algebra.ErrDecode)
		}
		return nil
	})
}

// DecodeComplex rebuilds a Complex and its Context from either encoding.
func DecodeComplex(data []byte) (*Complex, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeComplexRecord(rec, nil)
}
