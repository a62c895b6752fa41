// SPDX-License-Identifier: MIT

package ratfunc

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/internal/terms"
	"github.com/katalvlaran/lvnum/poly"
)

// fraction returns the canonical numerator and denominator coefficients.
func fraction(raw *backend.FmpzPolyQ) [2][]*big.Int {
	p := backend.FmpzPolyInit()
	defer backend.FmpzPolyClear(p)
	backend.FmpzPolyQNumerator(p, raw)
	num := backend.FmpzPolyCoeffs(p)
	backend.FmpzPolyQDenominator(p, raw)

	return [2][]*big.Int{num, backend.FmpzPolyCoeffs(p)}
}

func (f *RatFunc) fraction() ([2][]*big.Int, error) { return use(f, fraction) }

func (f *RatFunc) side(op string, i int) (*poly.IntPoly, error) {
	fr, err := f.fraction()
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return poly.IntFromBig(f.ctx, fr[i])
}

// Num returns the canonical numerator.
func (f *RatFunc) Num() (*poly.IntPoly, error) { return f.side("RatFunc.Num", 0) }

// Den returns the canonical denominator; its leading coefficient is
// positive.
func (f *RatFunc) Den() (*poly.IntPoly, error) { return f.side("RatFunc.Den", 1) }

// IsZero reports f == 0.
func (f *RatFunc) IsZero() bool {
	ok, err := use(f, backend.FmpzPolyQIsZero)

	return err == nil && ok
}

// IsOne reports f == 1.
func (f *RatFunc) IsOne() bool {
	ok, err := use(f, backend.FmpzPolyQIsOne)

	return err == nil && ok
}

func isInt(c []*big.Int, deg int, v int64) bool {
	if len(c) != deg+1 || c[deg].Cmp(big.NewInt(v)) != 0 {
		return false
	}
	for _, x := range c[:deg] {
		if x.Sign() != 0 {
			return false
		}
	}

	return true
}

// IsGen reports f == x.
func (f *RatFunc) IsGen() bool {
	fr, err := f.fraction()

	return err == nil && isInt(fr[0], 1, 1) && isInt(fr[1], 0, 1)
}

// Equal reports whether f and x live in compatible rings and are equal.
func (f *RatFunc) Equal(x *RatFunc) bool {
	ra, actx, err := unwrap(f)
	if err != nil {
		return false
	}
	rx, xctx, err := unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.FmpzPolyQEqual(ra, rx)
	f.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// payload lays out the canonical fraction as len(num), num..., den....
func payload(fr [2][]*big.Int) [][]byte {
	out := [][]byte{backend.BigBytes(big.NewInt(int64(len(fr[0]))))}
	out = append(out, codec.IntsBytes(fr[0])...)

	return append(out, codec.IntsBytes(fr[1])...)
}

// Hash mixes the ring parameters with the canonical fraction.
func (f *RatFunc) Hash() uint64 {
	fr, err := f.fraction()
	if err != nil {
		return 0
	}

	return f.ctx.Hash(payload(fr)...)
}

// String renders "num", "a/b", "a/(den)", "(num)/b" or "(num)/(den)"
// depending on which parts are constant.
func (f *RatFunc) String() string {
	fr, err := f.fraction()
	if err != nil {
		return "<released>"
	}
	num := terms.Format(terms.Ints(fr[0]), f.ctx.Var())
	if isInt(fr[1], 0, 1) {
		return num
	}
	den := terms.Format(terms.Ints(fr[1]), f.ctx.Var())
	if len(fr[0]) > 1 {
		num = "(" + num + ")"
	}
	if len(fr[1]) > 1 {
		den = "(" + den + ")"
	}

	return num + "/" + den
}

// ---------- serialization ----------

// Record returns the self-describing record of f, ring included. Ints
// holds the numerator length followed by the numerator and denominator
// coefficients.
func (f *RatFunc) Record() (*codec.Record, error) {
	fr, err := f.fraction()
	if err != nil {
		return nil, algebra.Errorf("RatFunc.Record", err)
	}

	return &codec.Record{Tag: codec.TagRatFunc, Context: f.ctx.Record(), Ints: payload(fr)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (f *RatFunc) MarshalBinary() ([]byte, error) {
	rec, err := f.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of f.
func (f *RatFunc) EncodeYAML() ([]byte, error) {
	rec, err := f.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

func sameBytes(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i]) != string(b[i]) {
			return false
		}
	}

	return true
}

// DecodeRecord rebuilds a RatFunc. Fractions not in canonical form are
// rejected.
func DecodeRecord(rec *codec.Record, ctx *algebra.Context) (*RatFunc, error) {
	if err := rec.Expect(codec.TagRatFunc, true); err != nil {
		return nil, err
	}
	vs, err := codec.Ints(rec.Ints)
	if err != nil {
		return nil, err
	}
	if len(vs) < 2 || !vs[0].IsInt64() || vs[0].Int64() < 0 || vs[0].Int64() > int64(len(vs)-2) {
		return nil, fmt.Errorf("%w: rational function needs a numerator length and a denominator", algebra.ErrDecode)
	}
	n := 1 + int(vs[0].Int64())
	rctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer rctx.Release()
	if err := expect(rctx); err != nil {
		return nil, err
	}
	f, err := FromBig(rctx, vs[1:n], vs[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", algebra.ErrDecode, err)
	}
	fr, err := f.fraction()
	if err != nil || !sameBytes(payload(fr), rec.Ints) {
		f.Close()
		return nil, fmt.Errorf("%w: rational function not in canonical form", algebra.ErrDecode)
	}

	return f, nil
}

// Decode rebuilds a RatFunc and its ring from either encoding.
func Decode(data []byte) (*RatFunc, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRecord(rec, nil)
}
