// SPDX-License-Identifier: MIT

package lvnum

import (
	"fmt"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/ball"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/finfld"
	"github.com/katalvlaran/lvnum/integer"
	"github.com/katalvlaran/lvnum/intmod"
	"github.com/katalvlaran/lvnum/matrix"
	"github.com/katalvlaran/lvnum/numfld"
	"github.com/katalvlaran/lvnum/poly"
	"github.com/katalvlaran/lvnum/ratfunc"
	"github.com/katalvlaran/lvnum/rational"
)

// Value is the surface every lvnum value type shares.
type Value interface {
	fmt.Stringer
	Record() (*codec.Record, error)
	MarshalBinary() ([]byte, error)
	EncodeYAML() ([]byte, error)
	Hash() uint64
	Close()
	Released() bool
}

var (
	_ Value = (*integer.Integer)(nil)
	_ Value = (*rational.Rational)(nil)
	_ Value = (*intmod.IntMod)(nil)
	_ Value = (*poly.IntPoly)(nil)
	_ Value = (*poly.RatPoly)(nil)
	_ Value = (*poly.ModPoly)(nil)
	_ Value = (*poly.FqPoly)(nil)
	_ Value = (*matrix.IntMat)(nil)
	_ Value = (*matrix.RatMat)(nil)
	_ Value = (*matrix.ModMat)(nil)
	_ Value = (*matrix.FqMat)(nil)
	_ Value = (*ratfunc.RatFunc)(nil)
	_ Value = (*finfld.Elem)(nil)
	_ Value = (*numfld.Elem)(nil)
	_ Value = (*ball.Real)(nil)
	_ Value = (*ball.Complex)(nil)
)

// boundDecoders rebuild Context-bound values; ctx nil re-creates the
// Context from the record.
var boundDecoders = map[string]func(*codec.Record, *algebra.Context) (Value, error){
	codec.TagIntMod:  wrap(intmod.DecodeRecord),
	codec.TagIntPoly: wrap(poly.DecodeIntRecord),
	codec.TagRatPoly: wrap(poly.DecodeRatRecord),
	codec.TagModPoly: wrap(poly.DecodeModRecord),
	codec.TagFqPoly:  wrap(poly.DecodeFqRecord),
	codec.TagIntMat:  wrap(matrix.DecodeIntRecord),
	codec.TagRatMat:  wrap(matrix.DecodeRatRecord),
	codec.TagModMat:  wrap(matrix.DecodeModRecord),
	codec.TagFqMat:   wrap(matrix.DecodeFqRecord),
	codec.TagRatFunc: wrap(ratfunc.DecodeRecord),
	codec.TagFinFld:  wrap(finfld.DecodeRecord),
	codec.TagNumFld:  wrap(numfld.DecodeRecord),
	codec.TagReal:    wrap(ball.DecodeRealRecord),
	codec.TagComplex: wrap(ball.DecodeComplexRecord),
}

func wrap[V Value](fn func(*codec.Record, *algebra.Context) (V, error)) func(*codec.Record, *algebra.Context) (Value, error) {
	return func(rec *codec.Record, ctx *algebra.Context) (Value, error) { return asValue(fn(rec, ctx)) }
}

// DecodeRecord rebuilds whatever value rec describes. For bound types a
// non-nil ctx must be compatible with the recorded Context; primitives
// take no Context and reject one with ErrContextMismatch.
func DecodeRecord(rec *codec.Record, ctx *algebra.Context) (Value, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", algebra.ErrDecode)
	}
	switch rec.Tag {
	case codec.TagInteger, codec.TagRational:
		if ctx != nil {
			return nil, algebra.Detailf("lvnum.DecodeRecord", algebra.ErrContextMismatch, "%s takes no context", rec.Tag)
		}
		if rec.Tag == codec.TagInteger {
			return asValue(integer.DecodeRecord(rec))
		}
		return asValue(rational.DecodeRecord(rec))
	}
	dec, ok := boundDecoders[rec.Tag]
	if !ok {
		return nil, fmt.Errorf("%w: unknown tag %q", algebra.ErrDecode, rec.Tag)
	}

	return dec(rec, ctx)
}

func asValue[V Value](v V, err error) (Value, error) {
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Decode rebuilds a value, and its Context when bound, from either the
// binary or the YAML encoding.
func Decode(data []byte) (Value, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRecord(rec, nil)
}
