// SPDX-License-Identifier: MIT

package matrix

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/lifecycle"
	"github.com/katalvlaran/lvnum/rational"
)

// RatMat is a matrix over Q. Not safe for concurrent use.
type RatMat struct {
	h   *lifecycle.Handle[backend.FmpqMat]
	ctx *algebra.Context
}

// Only scalar division is offered; matrix division goes through Inv.
var ratKernel = &arith.Kernel[*RatMat, backend.FmpqMat]{
	Name: "RatMat",
	Caps: arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: func(m *RatMat) (*backend.FmpqMat, *algebra.Context, error) {
		if m == nil {
			return nil, nil, algebra.ErrNilValue
		}
		raw, err := m.h.Get()
		if err != nil {
			return nil, nil, err
		}
		return raw, m.ctx, nil
	},
	Alloc: func(ctx *algebra.Context) (*RatMat, *backend.FmpqMat, error) {
		raw := backend.FmpqMatInit(ctx.Rows(), ctx.Cols())
		return &RatMat{h: lifecycle.New(raw, backend.FmpqMatClear), ctx: ctx}, raw, nil
	},
	Free:   (*RatMat).Close,
	Result: productSpace,
	IsZero: backend.FmpqMatIsZero,
	Binary: arith.Binaries[backend.FmpqMat]{
		arith.Add: arith.Plain(backend.FmpqMatAdd),
		arith.Sub: arith.Plain(backend.FmpqMatSub),
		arith.Mul: arith.Plain(backend.FmpqMatMul),
	},
	Native: arith.Natives[backend.FmpqMat]{
		arith.Mul: arith.PlainNative(backend.FmpqMatScalarMulSi),
		arith.Div: arith.PlainNative(backend.FmpqMatScalarDivSi),
	},
	NativeLeft: arith.NativeLefts[backend.FmpqMat]{
		arith.Mul: func(_ *algebra.Context, dst *backend.FmpqMat, n int64, a *backend.FmpqMat) {
			backend.FmpqMatScalarMulSi(dst, a, n)
		},
	},
}

func newRat(op string, ctx *algebra.Context, fill func(dst *backend.FmpqMat) error) (*RatMat, error) {
	if err := expectSpace(ctx, algebra.BaseRational); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	m, err := ratKernel.New(ctx, func(_ *algebra.Context, dst *backend.FmpqMat) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return m, nil
}

// NewRat returns the matrix with integer row-major entries e.
func NewRat(ctx *algebra.Context, e ...int64) (*RatMat, error) {
	qs := make([]*big.Rat, len(e))
	for i, v := range e {
		qs[i] = new(big.Rat).SetInt64(v)
	}

	return RatFromBig(ctx, qs)
}

// RatFromBig returns the matrix with row-major entries e.
func RatFromBig(ctx *algebra.Context, e []*big.Rat) (*RatMat, error) {
	return newRat("matrix.RatFromBig", ctx, func(dst *backend.FmpqMat) error {
		if err := checkCount(ctx, len(e)); err != nil {
			return err
		}
		for _, v := range e {
			if v == nil {
				return algebra.ErrNilValue
			}
		}
		backend.FmpqMatSetEntries(dst, e)
		return nil
	})
}

// ZeroRat returns the zero matrix of the space.
func ZeroRat(ctx *algebra.Context) (*RatMat, error) {
	return newRat("matrix.ZeroRat", ctx, func(*backend.FmpqMat) error { return nil })
}

// IdentityRat returns the identity of a square space.
func IdentityRat(ctx *algebra.Context) (*RatMat, error) {
	return newRat("matrix.IdentityRat", ctx, func(dst *backend.FmpqMat) error {
		if ctx.Rows() != ctx.Cols() {
			return algebra.ErrDimensionMismatch
		}
		backend.FmpqMatOne(dst)
		return nil
	})
}

// ParseRat reads the text form with "a" or "a/b" entries.
func ParseRat(ctx *algebra.Context, s string) (*RatMat, error) {
	const op = "matrix.ParseRat"
	if err := expectSpace(ctx, algebra.BaseRational); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	cells, err := parseCells(ctx, s)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	e := make([]*big.Rat, len(cells))
	for i, c := range cells {
		v, ok := new(big.Rat).SetString(c)
		if !ok {
			return nil, algebra.Detailf(op, algebra.ErrParse, "entry %q", c)
		}
		e[i] = v
	}

	return RatFromBig(ctx, e)
}

// Context returns the borrowed space handle; nil once m is closed.
func (m *RatMat) Context() *algebra.Context {
	if m.Released() {
		return nil
	}

	return m.ctx
}

// Rows returns the row count (0 once closed).
func (m *RatMat) Rows() int {
	if m.Released() {
		return 0
	}

	return m.ctx.Rows()
}

// Cols returns the column count (0 once closed).
func (m *RatMat) Cols() int {
	if m.Released() {
		return 0
	}

	return m.ctx.Cols()
}

// Clone returns a deep copy sharing m's space.
func (m *RatMat) Clone() (*RatMat, error) { return m.mapTo("RatMat.Clone", backend.FmpqMatSet) }

// Close releases the matrix and its space handle.
func (m *RatMat) Close() {
	if m != nil && m.h.Release() {
		m.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (m *RatMat) Released() bool { return m == nil || m.h.Released() }

func (m *RatMat) mapTo(op string, fn func(dst, src *backend.FmpqMat)) (*RatMat, error) {
	out, err := ratKernel.Map(m, func(_ *algebra.Context, dst, src *backend.FmpqMat) error {
		fn(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

func useRat[R any](m *RatMat, fn func(*backend.FmpqMat) R) (R, error) {
	if m == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(m.h, fn)
}

// ---------- arithmetic ----------

// Add returns m + x.
func (m *RatMat) Add(x *RatMat) (*RatMat, error) { return ratKernel.Apply(arith.Add, m, x) }

// Sub returns m - x.
func (m *RatMat) Sub(x *RatMat) (*RatMat, error) { return ratKernel.Apply(arith.Sub, m, x) }

// Mul returns the matrix product m * x.
func (m *RatMat) Mul(x *RatMat) (*RatMat, error) { return ratKernel.Apply(arith.Mul, m, x) }

func (m *RatMat) AddAssign(x *RatMat) error { return ratKernel.Assign(arith.Add, m, x) }
func (m *RatMat) SubAssign(x *RatMat) error { return ratKernel.Assign(arith.Sub, m, x) }
func (m *RatMat) MulAssign(x *RatMat) error { return ratKernel.Assign(arith.Mul, m, x) }

// MulInt64 returns n * m.
func (m *RatMat) MulInt64(n int64) (*RatMat, error) { return ratKernel.ApplyNative(arith.Mul, m, n) }

// DivInt64 returns m / n; ErrDivisionByZero when n is 0.
func (m *RatMat) DivInt64(n int64) (*RatMat, error) { return ratKernel.ApplyNative(arith.Div, m, n) }

func (m *RatMat) MulInt64Assign(n int64) error { return ratKernel.AssignNative(arith.Mul, m, n) }
func (m *RatMat) DivInt64Assign(n int64) error { return ratKernel.AssignNative(arith.Div, m, n) }

// Int64Mul returns n * m.
func (m *RatMat) Int64Mul(n int64) (*RatMat, error) {
	return ratKernel.ApplyNativeLeft(arith.Mul, n, m)
}

// Neg returns -m.
func (m *RatMat) Neg() (*RatMat, error) { return m.mapTo("RatMat.Neg", backend.FmpqMatNeg) }

// Transpose returns the cols x rows transpose in a derived space.
func (m *RatMat) Transpose() (*RatMat, error) {
	out, err := transposeWith(ratKernel, m, backend.FmpqMatTranspose)
	if err != nil {
		return nil, algebra.Errorf("RatMat.Transpose", err)
	}

	return out, nil
}

// Det returns the determinant of a square matrix.
func (m *RatMat) Det() (*rational.Rational, error) {
	var det *big.Rat
	err := squareUse(ratKernel, m, func(_ *algebra.Context, raw *backend.FmpqMat) error {
		q := backend.FmpqInit()
		defer backend.FmpqClear(q)
		backend.FmpqMatDet(q, raw)
		det = backend.FmpqGetRat(q)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("RatMat.Det", err)
	}

	return rational.FromBig(det)
}

// Inv returns the inverse of a square matrix; ErrNotInvertible when m is
// singular.
func (m *RatMat) Inv() (*RatMat, error) {
	out, err := ratKernel.Map(m, func(c *algebra.Context, dst, src *backend.FmpqMat) error {
		if c.Rows() != c.Cols() {
			return algebra.ErrDimensionMismatch
		}
		if !backend.FmpqMatInv(dst, src) {
			return algebra.ErrNotInvertible
		}
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("RatMat.Inv", err)
	}

	return out, nil
}

// ---------- inspection ----------

// Entries returns the row-major entries in lowest terms.
func (m *RatMat) Entries() ([]*big.Rat, error) {
	e, err := useRat(m, backend.FmpqMatEntries)
	if err != nil {
		return nil, algebra.Errorf("RatMat.Entries", err)
	}

	return e, nil
}

// Entry returns the entry at row i, column j.
func (m *RatMat) Entry(i, j int) (*big.Rat, error) {
	if m.Released() {
		return nil, algebra.Errorf("RatMat.Entry", algebra.ErrReleased)
	}
	if i < 0 || j < 0 || i >= m.Rows() || j >= m.Cols() {
		return nil, algebra.Errorf("RatMat.Entry", algebra.ErrOutOfRange)
	}

	return useRat(m, func(raw *backend.FmpqMat) *big.Rat { return backend.FmpqMatEntry(raw, i, j) })
}

// IsZero reports whether every entry is zero.
func (m *RatMat) IsZero() bool {
	ok, err := useRat(m, backend.FmpqMatIsZero)

	return err == nil && ok
}

// Equal reports whether m and x live in compatible spaces and have the same
// entries.
func (m *RatMat) Equal(x *RatMat) bool {
	ra, actx, err := ratKernel.Unwrap(m)
	if err != nil {
		return false
	}
	rx, xctx, err := ratKernel.Unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.FmpqMatEqual(ra, rx)
	m.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the space parameters with the canonical entries.
func (m *RatMat) Hash() uint64 {
	e, err := m.Entries()
	if err != nil {
		return 0
	}

	return m.ctx.Hash(codec.RatsBytes(e)...)
}

// String renders one bracketed row per line.
func (m *RatMat) String() string {
	e, err := m.Entries()
	if err != nil {
		return "<released>"
	}
	cells := make([]string, len(e))
	for i, v := range e {
		cells[i] = v.RatString()
	}

	return format(m.ctx.Rows(), m.ctx.Cols(), cells)
}

// ---------- serialization ----------

// Record returns the self-describing record of m, space included.
func (m *RatMat) Record() (*codec.Record, error) {
	e, err := m.Entries()
	if err != nil {
		return nil, algebra.Errorf("RatMat.Record", err)
	}

	return &codec.Record{Tag: codec.TagRatMat, Context: m.ctx.Record(), Ints: codec.RatsBytes(e)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *RatMat) MarshalBinary() ([]byte, error) {
	rec, err := m.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of m.
func (m *RatMat) EncodeYAML() ([]byte, error) {
	rec, err := m.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeRatRecord rebuilds a RatMat; entries must be in lowest terms.
func DecodeRatRecord(rec *codec.Record, ctx *algebra.Context) (*RatMat, error) {
	if err := rec.Expect(codec.TagRatMat, true); err != nil {
		return nil, err
	}
	e, err := codec.Rats(rec.Ints)
	if err != nil {
		return nil, err
	}
	if !sameBytes(codec.RatsBytes(e), rec.Ints) {
		return nil, decodeErr("entries not in lowest terms")
	}
	rctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer rctx.Release()
	if err := expectSpace(rctx, algebra.BaseRational); err != nil {
		return nil, decodeErr("%v", err)
	}
	if err := checkCount(rctx, len(e)); err != nil {
		return nil, decodeErr("%v", err)
	}

	return RatFromBig(rctx, e)
}

// DecodeRat rebuilds a RatMat and its space from either encoding.
func DecodeRat(data []byte) (*RatMat, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRatRecord(rec, nil)
}
