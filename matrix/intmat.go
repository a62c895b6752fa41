// SPDX-License-Identifier: MIT

package matrix

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/integer"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// IntMat is a matrix over Z. Not safe for concurrent use.
type IntMat struct {
	h   *lifecycle.Handle[backend.FmpzMat]
	ctx *algebra.Context
}

var intKernel = &arith.Kernel[*IntMat, backend.FmpzMat]{
	Name: "IntMat",
	Caps: arith.CapInPlace | arith.CapNative | arith.CapNativeLeft,
	Unwrap: func(m *IntMat) (*backend.FmpzMat, *algebra.Context, error) {
		if m == nil {
			return nil, nil, algebra.ErrNilValue
		}
		raw, err := m.h.Get()
		if err != nil {
			return nil, nil, err
		}
		return raw, m.ctx, nil
	},
	Alloc: func(ctx *algebra.Context) (*IntMat, *backend.FmpzMat, error) {
		raw := backend.FmpzMatInit(ctx.Rows(), ctx.Cols())
		return &IntMat{h: lifecycle.New(raw, backend.FmpzMatClear), ctx: ctx}, raw, nil
	},
	Free:   (*IntMat).Close,
	Result: productSpace,
	Binary: arith.Binaries[backend.FmpzMat]{
		arith.Add: arith.Plain(backend.FmpzMatAdd),
		arith.Sub: arith.Plain(backend.FmpzMatSub),
		arith.Mul: arith.Plain(backend.FmpzMatMul),
	},
	Native: arith.Natives[backend.FmpzMat]{
		arith.Mul: arith.PlainNative(backend.FmpzMatScalarMulSi),
	},
	NativeLeft: arith.NativeLefts[backend.FmpzMat]{
		arith.Mul: func(_ *algebra.Context, dst *backend.FmpzMat, n int64, a *backend.FmpzMat) {
			backend.FmpzMatScalarMulSi(dst, a, n)
		},
	},
}

func newInt(op string, ctx *algebra.Context, fill func(dst *backend.FmpzMat) error) (*IntMat, error) {
	if err := expectSpace(ctx, algebra.BaseInteger); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	m, err := intKernel.New(ctx, func(_ *algebra.Context, dst *backend.FmpzMat) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return m, nil
}

// NewInt returns the matrix with row-major entries e; len(e) must equal
// rows*cols.
func NewInt(ctx *algebra.Context, e ...int64) (*IntMat, error) {
	bs := make([]*big.Int, len(e))
	for i, v := range e {
		bs[i] = big.NewInt(v)
	}

	return IntFromBig(ctx, bs)
}

// IntFromBig returns the matrix with row-major entries e.
func IntFromBig(ctx *algebra.Context, e []*big.Int) (*IntMat, error) {
	return newInt("matrix.IntFromBig", ctx, func(dst *backend.FmpzMat) error {
		if err := checkCount(ctx, len(e)); err != nil {
			return err
		}
		for _, v := range e {
			if v == nil {
				return algebra.ErrNilValue
			}
		}
		backend.FmpzMatSetEntries(dst, e)
		return nil
	})
}

// ZeroInt returns the zero matrix of the space.
func ZeroInt(ctx *algebra.Context) (*IntMat, error) {
	return newInt("matrix.ZeroInt", ctx, func(*backend.FmpzMat) error { return nil })
}

// IdentityInt returns the identity of a square space.
func IdentityInt(ctx *algebra.Context) (*IntMat, error) {
	return newInt("matrix.IdentityInt", ctx, func(dst *backend.FmpzMat) error {
		if ctx.Rows() != ctx.Cols() {
			return algebra.ErrDimensionMismatch
		}
		backend.FmpzMatOne(dst)
		return nil
	})
}

// ParseInt reads the text form "[1, 2]\n[3, 4]".
func ParseInt(ctx *algebra.Context, s string) (*IntMat, error) {
	const op = "matrix.ParseInt"
	if err := expectSpace(ctx, algebra.BaseInteger); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	cells, err := parseCells(ctx, s)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	e := make([]*big.Int, len(cells))
	for i, c := range cells {
		v, ok := new(big.Int).SetString(c, 10)
		if !ok {
			return nil, algebra.Detailf(op, algebra.ErrParse, "entry %q", c)
		}
		e[i] = v
	}

	return IntFromBig(ctx, e)
}

// Context returns the borrowed space handle; nil once m is closed.
func (m *IntMat) Context() *algebra.Context {
	if m.Released() {
		return nil
	}

	return m.ctx
}

// Rows returns the row count (0 once closed).
func (m *IntMat) Rows() int {
	if m.Released() {
		return 0
	}

	return m.ctx.Rows()
}

// Cols returns the column count (0 once closed).
func (m *IntMat) Cols() int {
	if m.Released() {
		return 0
	}

	return m.ctx.Cols()
}

// Clone returns a deep copy sharing m's space.
func (m *IntMat) Clone() (*IntMat, error) { return m.mapTo("IntMat.Clone", backend.FmpzMatSet) }

// Close releases the matrix and its space handle.
func (m *IntMat) Close() {
	if m != nil && m.h.Release() {
		m.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (m *IntMat) Released() bool { return m == nil || m.h.Released() }

func (m *IntMat) mapTo(op string, fn func(dst, src *backend.FmpzMat)) (*IntMat, error) {
	out, err := intKernel.Map(m, func(_ *algebra.Context, dst, src *backend.FmpzMat) error {
		fn(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

// ---------- arithmetic ----------

// Add returns m + x.
func (m *IntMat) Add(x *IntMat) (*IntMat, error) { return intKernel.Apply(arith.Add, m, x) }

// Sub returns m - x.
func (m *IntMat) Sub(x *IntMat) (*IntMat, error) { return intKernel.Apply(arith.Sub, m, x) }

// Mul returns the matrix product m * x.
func (m *IntMat) Mul(x *IntMat) (*IntMat, error) { return intKernel.Apply(arith.Mul, m, x) }

func (m *IntMat) AddAssign(x *IntMat) error { return intKernel.Assign(arith.Add, m, x) }
func (m *IntMat) SubAssign(x *IntMat) error { return intKernel.Assign(arith.Sub, m, x) }

// MulAssign sets m = m * x; x must be square so that m keeps its shape.
func (m *IntMat) MulAssign(x *IntMat) error { return intKernel.Assign(arith.Mul, m, x) }

// MulInt64 returns n * m.
func (m *IntMat) MulInt64(n int64) (*IntMat, error) { return intKernel.ApplyNative(arith.Mul, m, n) }

// MulInt64Assign sets m = n * m.
func (m *IntMat) MulInt64Assign(n int64) error { return intKernel.AssignNative(arith.Mul, m, n) }

// Int64Mul returns n * m.
func (m *IntMat) Int64Mul(n int64) (*IntMat, error) {
	return intKernel.ApplyNativeLeft(arith.Mul, n, m)
}

// Neg returns -m.
func (m *IntMat) Neg() (*IntMat, error) { return m.mapTo("IntMat.Neg", backend.FmpzMatNeg) }

// Transpose returns the cols x rows transpose in a derived space.
func (m *IntMat) Transpose() (*IntMat, error) {
	out, err := transposeWith(intKernel, m, backend.FmpzMatTranspose)
	if err != nil {
		return nil, algebra.Errorf("IntMat.Transpose", err)
	}

	return out, nil
}

// Det returns the determinant of a square matrix.
func (m *IntMat) Det() (*integer.Integer, error) {
	var det *big.Int
	err := squareUse(intKernel, m, func(_ *algebra.Context, raw *backend.FmpzMat) error {
		z := backend.FmpzInit()
		defer backend.FmpzClear(z)
		backend.FmpzMatDet(z, raw)
		det = backend.FmpzGetBig(z)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("IntMat.Det", err)
	}

	return integer.FromBig(det)
}

// ---------- inspection ----------

// Entries returns the row-major entries.
func (m *IntMat) Entries() ([]*big.Int, error) {
	e, err := useInt(m, backend.FmpzMatEntries)
	if err != nil {
		return nil, algebra.Errorf("IntMat.Entries", err)
	}

	return e, nil
}

// Entry returns the entry at row i, column j.
func (m *IntMat) Entry(i, j int) (*big.Int, error) {
	if m.Released() {
		return nil, algebra.Errorf("IntMat.Entry", algebra.ErrReleased)
	}
	if i < 0 || j < 0 || i >= m.Rows() || j >= m.Cols() {
		return nil, algebra.Errorf("IntMat.Entry", algebra.ErrOutOfRange)
	}

	return useInt(m, func(raw *backend.FmpzMat) *big.Int { return backend.FmpzMatEntry(raw, i, j) })
}

func useInt[R any](m *IntMat, fn func(*backend.FmpzMat) R) (R, error) {
	if m == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(m.h, fn)
}

// IsZero reports whether every entry is zero.
func (m *IntMat) IsZero() bool {
	ok, err := useInt(m, backend.FmpzMatIsZero)

	return err == nil && ok
}

// Equal reports whether m and x live in compatible spaces and have the same
// entries.
func (m *IntMat) Equal(x *IntMat) bool {
	ra, actx, err := intKernel.Unwrap(m)
	if err != nil {
		return false
	}
	rx, xctx, err := intKernel.Unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.FmpzMatEqual(ra, rx)
	m.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the space parameters with the entries.
func (m *IntMat) Hash() uint64 {
	e, err := m.Entries()
	if err != nil {
		return 0
	}

	return m.ctx.Hash(codec.IntsBytes(e)...)
}

// String renders one bracketed row per line.
func (m *IntMat) String() string {
	e, err := m.Entries()
	if err != nil {
		return "<released>"
	}
	cells := make([]string, len(e))
	for i, v := range e {
		cells[i] = v.String()
	}

	return format(m.ctx.Rows(), m.ctx.Cols(), cells)
}

// ---------- serialization ----------

// Record returns the self-describing record of m, space included.
func (m *IntMat) Record() (*codec.Record, error) {
	e, err := m.Entries()
	if err != nil {
		return nil, algebra.Errorf("IntMat.Record", err)
	}

	return &codec.Record{Tag: codec.TagIntMat, Context: m.ctx.Record(), Ints: codec.IntsBytes(e)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *IntMat) MarshalBinary() ([]byte, error) {
	rec, err := m.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of m.
func (m *IntMat) EncodeYAML() ([]byte, error) {
	rec, err := m.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeIntRecord rebuilds an IntMat. With ctx nil the space is re-created
// from the record; otherwise it must be compatible with ctx.
func DecodeIntRecord(rec *codec.Record, ctx *algebra.Context) (*IntMat, error) {
	if err := rec.Expect(codec.TagIntMat, true); err != nil {
		return nil, err
	}
	e, err := codec.Ints(rec.Ints)
	if err != nil {
		return nil, err
	}
	rctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer rctx.Release()
	if err := expectSpace(rctx, algebra.BaseInteger); err != nil {
		return nil, decodeErr("%v", err)
	}
	if err := checkCount(rctx, len(e)); err != nil {
		return nil, decodeErr("%v", err)
	}

	return IntFromBig(rctx, e)
}

// DecodeInt rebuilds an IntMat and its space from either encoding.
func DecodeInt(data []byte) (*IntMat, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeIntRecord(rec, nil)
}
