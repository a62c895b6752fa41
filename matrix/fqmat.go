// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/finfld"
	"github.com/katalvlaran/lvnum/internal/terms"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// FqMat is a matrix over GF(p^k). Entries print in the field generator o.
// Not safe for concurrent use.
type FqMat struct {
	h   *lifecycle.Handle[backend.FqMat]
	ctx *algebra.Context
}

var fqKernel = &arith.Kernel[*FqMat, backend.FqMat]{
	Name: "FqMat",
	Caps: arith.CapInPlace | arith.CapNative | arith.CapNativeLeft,
	Unwrap: func(m *FqMat) (*backend.FqMat, *algebra.Context, error) {
		if m == nil {
			return nil, nil, algebra.ErrNilValue
		}
		raw, err := m.h.Get()
		if err != nil {
			return nil, nil, err
		}
		return raw, m.ctx, nil
	},
	Alloc: func(ctx *algebra.Context) (*FqMat, *backend.FqMat, error) {
		f, err := ctx.FqCtx()
		if err != nil {
			return nil, nil, err
		}
		raw := backend.FqMatInit(ctx.Rows(), ctx.Cols(), f)
		return &FqMat{h: lifecycle.New(raw, backend.FqMatClear), ctx: ctx}, raw, nil
	},
	Free:   (*FqMat).Close,
	Result: productSpace,
	Binary: arith.Binaries[backend.FqMat]{
		arith.Add: arith.Plain(backend.FqMatAdd),
		arith.Sub: arith.Plain(backend.FqMatSub),
		arith.Mul: arith.Plain(backend.FqMatMul),
	},
	Native: arith.Natives[backend.FqMat]{
		arith.Mul: arith.PlainNative(backend.FqMatScalarMulSi),
	},
	NativeLeft: arith.NativeLefts[backend.FqMat]{
		arith.Mul: func(_ *algebra.Context, dst *backend.FqMat, n int64, a *backend.FqMat) {
			backend.FqMatScalarMulSi(dst, a, n)
		},
	},
}

func newFq(op string, ctx *algebra.Context, fill func(dst *backend.FqMat) error) (*FqMat, error) {
	if err := expectSpace(ctx, algebra.BaseFiniteField); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	m, err := fqKernel.New(ctx, func(_ *algebra.Context, dst *backend.FqMat) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return m, nil
}

// NewFq returns the matrix with row-major prime field entries e reduced
// mod p.
func NewFq(ctx *algebra.Context, e ...int64) (*FqMat, error) {
	c := make([][]*big.Int, len(e))
	for i, v := range e {
		c[i] = []*big.Int{big.NewInt(v)}
	}

	return FqFromCoeffs(ctx, c)
}

// FqFromCoeffs returns the matrix with row-major entries e, each given in
// the generator (ascending) and reduced into the field.
func FqFromCoeffs(ctx *algebra.Context, e [][]*big.Int) (*FqMat, error) {
	return newFq("matrix.FqFromCoeffs", ctx, func(dst *backend.FqMat) error {
		if err := checkCount(ctx, len(e)); err != nil {
			return err
		}
		for _, c := range e {
			for _, v := range c {
				if v == nil {
					return algebra.ErrNilValue
				}
			}
		}
		backend.FqMatSetEntries(dst, e)
		return nil
	})
}

// FqFromElems returns the matrix with row-major entries e taken from the
// entry field of ctx.
func FqFromElems(ctx *algebra.Context, e ...*finfld.Elem) (*FqMat, error) {
	const op = "matrix.FqFromElems"
	if err := expectSpace(ctx, algebra.BaseFiniteField); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	c := make([][]*big.Int, len(e))
	for i, x := range e {
		if err := inField(ctx, x); err != nil {
			return nil, algebra.Errorf(op, err)
		}
		v, err := x.Coeffs()
		if err != nil {
			return nil, algebra.Errorf(op, err)
		}
		c[i] = v
	}

	return FqFromCoeffs(ctx, c)
}

func inField(space *algebra.Context, x *finfld.Elem) error {
	if x.Released() {
		return algebra.ErrReleased
	}
	fc := x.Context()
	if fc.Degree() != space.Degree() || fc.Modulus().Cmp(space.Modulus()) != 0 {
		return fmt.Errorf("%w: %s with an element of %s", algebra.ErrContextMismatch, space, fc)
	}

	return nil
}

// ZeroFq returns the zero matrix of the space.
func ZeroFq(ctx *algebra.Context) (*FqMat, error) {
	return newFq("matrix.ZeroFq", ctx, func(*backend.FqMat) error { return nil })
}

// IdentityFq returns the identity of a square space.
func IdentityFq(ctx *algebra.Context) (*FqMat, error) {
	return newFq("matrix.IdentityFq", ctx, func(dst *backend.FqMat) error {
		if ctx.Rows() != ctx.Cols() {
			return algebra.ErrDimensionMismatch
		}
		backend.FqMatOne(dst)
		return nil
	})
}

// ParseFq reads the text form; each cell is a polynomial in o with integer
// coefficients, "[o + 1, 0]".
func ParseFq(ctx *algebra.Context, s string) (*FqMat, error) {
	const op = "matrix.ParseFq"
	if err := expectSpace(ctx, algebra.BaseFiniteField); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	cells, err := parseCells(ctx, s)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	e := make([][]*big.Int, len(cells))
	for i, c := range cells {
		v, err := terms.ParseInts(c, algebra.DefaultFieldVar)
		if err != nil {
			return nil, algebra.Detailf(op, algebra.ErrParse, "entry %q", c)
		}
		e[i] = v
	}

	return FqFromCoeffs(ctx, e)
}

// Context returns the borrowed space handle; nil once m is closed.
func (m *FqMat) Context() *algebra.Context {
	if m.Released() {
		return nil
	}

	return m.ctx
}

// Rows returns the row count (0 once closed).
func (m *FqMat) Rows() int {
	if m.Released() {
		return 0
	}

	return m.ctx.Rows()
}

// Cols returns the column count (0 once closed).
func (m *FqMat) Cols() int {
	if m.Released() {
		return 0
	}

	return m.ctx.Cols()
}

// Clone returns a deep copy sharing m's space.
func (m *FqMat) Clone() (*FqMat, error) { return m.mapTo("FqMat.Clone", backend.FqMatSet) }

// Close releases the matrix and its space handle.
func (m *FqMat) Close() {
	if m != nil && m.h.Release() {
		m.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (m *FqMat) Released() bool { return m == nil || m.h.Released() }

func (m *FqMat) mapTo(op string, fn func(dst, src *backend.FqMat)) (*FqMat, error) {
	out, err := fqKernel.Map(m, func(_ *algebra.Context, dst, src *backend.FqMat) error {
		fn(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

func useFq[R any](m *FqMat, fn func(*backend.FqMat) R) (R, error) {
	if m == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(m.h, fn)
}

// scratch returns a backend element of m's field; the caller clears it.
func (m *FqMat) scratch() (*backend.Fq, error) {
	f, err := m.ctx.FqCtx()
	if err != nil {
		return nil, err
	}

	return backend.FqInit(f), nil
}

// elem wraps backend field coefficients as an element of a fresh GF(p^k).
func (m *FqMat) elem(c []*big.Int) (*finfld.Elem, error) {
	field, err := m.ctx.BaseField()
	if err != nil {
		return nil, err
	}
	defer field.Release()

	return finfld.FromCoeffs(field, c)
}

// ---------- arithmetic ----------

// Add returns m + x.
func (m *FqMat) Add(x *FqMat) (*FqMat, error) { return fqKernel.Apply(arith.Add, m, x) }

// Sub returns m - x.
func (m *FqMat) Sub(x *FqMat) (*FqMat, error) { return fqKernel.Apply(arith.Sub, m, x) }

// Mul returns the matrix product m * x.
func (m *FqMat) Mul(x *FqMat) (*FqMat, error) { return fqKernel.Apply(arith.Mul, m, x) }

func (m *FqMat) AddAssign(x *FqMat) error { return fqKernel.Assign(arith.Add, m, x) }
func (m *FqMat) SubAssign(x *FqMat) error { return fqKernel.Assign(arith.Sub, m, x) }
func (m *FqMat) MulAssign(x *FqMat) error { return fqKernel.Assign(arith.Mul, m, x) }

// MulInt64 returns n * m.
func (m *FqMat) MulInt64(n int64) (*FqMat, error) { return fqKernel.ApplyNative(arith.Mul, m, n) }

// MulInt64Assign sets m = n * m.
func (m *FqMat) MulInt64Assign(n int64) error { return fqKernel.AssignNative(arith.Mul, m, n) }

// Int64Mul returns n * m.
func (m *FqMat) Int64Mul(n int64) (*FqMat, error) {
	return fqKernel.ApplyNativeLeft(arith.Mul, n, m)
}

// Scale returns s * m for a field element s.
func (m *FqMat) Scale(s *finfld.Elem) (*FqMat, error) {
	const op = "FqMat.Scale"
	if err := inField(m.ctx, s); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	c, err := s.Coeffs()
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	out, err := fqKernel.Map(m, func(_ *algebra.Context, dst, src *backend.FqMat) error {
		raw, err := m.scratch()
		if err != nil {
			return err
		}
		defer backend.FqClear(raw)
		backend.FqSetCoeffs(raw, c)
		backend.FqMatScalarMulFq(dst, src, raw)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

// Neg returns -m.
func (m *FqMat) Neg() (*FqMat, error) { return m.mapTo("FqMat.Neg", backend.FqMatNeg) }

// Transpose returns the cols x rows transpose in a derived space.
func (m *FqMat) Transpose() (*FqMat, error) {
	out, err := transposeWith(fqKernel, m, backend.FqMatTranspose)
	if err != nil {
		return nil, algebra.Errorf("FqMat.Transpose", err)
	}

	return out, nil
}

// Det returns the determinant as an element of a fresh GF(p^k) Context.
func (m *FqMat) Det() (*finfld.Elem, error) {
	const op = "FqMat.Det"
	var det []*big.Int
	err := squareUse(fqKernel, m, func(_ *algebra.Context, raw *backend.FqMat) error {
		z, err := m.scratch()
		if err != nil {
			return err
		}
		defer backend.FqClear(z)
		backend.FqMatDet(z, raw)
		det = backend.FqCoeffs(z)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	out, err := m.elem(det)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

// Inv returns the inverse of a square matrix; ErrNotInvertible when it is
// singular.
func (m *FqMat) Inv() (*FqMat, error) {
	out, err := fqKernel.Map(m, func(c *algebra.Context, dst, src *backend.FqMat) error {
		if c.Rows() != c.Cols() {
			return algebra.ErrDimensionMismatch
		}
		if !backend.FqMatInv(dst, src) {
			return algebra.ErrNotInvertible
		}
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("FqMat.Inv", err)
	}

	return out, nil
}

// ---------- inspection ----------

// Entries returns the row-major entries as reduced generator coefficients.
func (m *FqMat) Entries() ([][]*big.Int, error) {
	e, err := useFq(m, backend.FqMatEntries)
	if err != nil {
		return nil, algebra.Errorf("FqMat.Entries", err)
	}

	return e, nil
}

// Entry returns the element at row i, column j.
func (m *FqMat) Entry(i, j int) (*finfld.Elem, error) {
	const op = "FqMat.Entry"
	if m.Released() {
		return nil, algebra.Errorf(op, algebra.ErrReleased)
	}
	if i < 0 || j < 0 || i >= m.Rows() || j >= m.Cols() {
		return nil, algebra.Errorf(op, algebra.ErrOutOfRange)
	}
	e, err := m.Entries()
	if err != nil {
		return nil, err
	}
	out, err := m.elem(e[i*m.Cols()+j])
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

// IsZero reports whether every entry is zero.
func (m *FqMat) IsZero() bool {
	ok, err := useFq(m, backend.FqMatIsZero)

	return err == nil && ok
}

// Equal reports whether m and x live in compatible spaces and have the same
// entries.
func (m *FqMat) Equal(x *FqMat) bool {
	ra, actx, err := fqKernel.Unwrap(m)
	if err != nil {
		return false
	}
	rx, xctx, err := fqKernel.Unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.FqMatEqual(ra, rx)
	m.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the space parameters with the padded entries.
func (m *FqMat) Hash() uint64 {
	e, err := m.Entries()
	if err != nil {
		return 0
	}

	return m.ctx.Hash(codec.FieldBytes(e, m.ctx.Degree())...)
}

// String renders one bracketed row per line, "[o + 1, 0]".
func (m *FqMat) String() string {
	e, err := m.Entries()
	if err != nil {
		return "<released>"
	}
	cells := make([]string, len(e))
	for i, c := range e {
		cells[i] = terms.Format(terms.Ints(c), algebra.DefaultFieldVar)
	}

	return format(m.ctx.Rows(), m.ctx.Cols(), cells)
}

// ---------- serialization ----------

// Record returns the self-describing record of m, space included. Each
// entry is padded to k residues.
func (m *FqMat) Record() (*codec.Record, error) {
	e, err := m.Entries()
	if err != nil {
		return nil, algebra.Errorf("FqMat.Record", err)
	}

	return &codec.Record{Tag: codec.TagFqMat, Context: m.ctx.Record(), Ints: codec.FieldBytes(e, m.ctx.Degree())}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *FqMat) MarshalBinary() ([]byte, error) {
	rec, err := m.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of m.
func (m *FqMat) EncodeYAML() ([]byte, error) {
	rec, err := m.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeFqRecord rebuilds an FqMat; residues must lie in [0, p) and every
// entry must fill exactly k slots.
func DecodeFqRecord(rec *codec.Record, ctx *algebra.Context) (*FqMat, error) {
	if err := rec.Expect(codec.TagFqMat, true); err != nil {
		return nil, err
	}
	rctx, err := algebra.Attach(rec.Context, ctx)
	if err != nil {
		return nil, err
	}
	defer rctx.Release()
	if err := expectSpace(rctx, algebra.BaseFiniteField); err != nil {
		return nil, decodeErr("%v", err)
	}
	e, err := codec.FieldElems(rec.Ints, rctx.Degree(), rctx.Modulus())
	if err != nil {
		return nil, err
	}
	if err := checkCount(rctx, len(e)); err != nil {
		return nil, decodeErr("%v", err)
	}

	return FqFromCoeffs(rctx, e)
}

// DecodeFq rebuilds an FqMat and its space from either encoding.
func DecodeFq(data []byte) (*FqMat, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeFqRecord(rec, nil)
}
