// SPDX-License-Identifier: MIT

package matrix

import (
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/intmod"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// ModMat is a matrix over Z/nZ. Not safe for concurrent use.
type ModMat struct {
	h   *lifecycle.Handle[backend.ModMat]
	ctx *algebra.Context
}

var modKernel = &arith.Kernel[*ModMat, backend.ModMat]{
	Name: "ModMat",
	Caps: arith.CapInPlace | arith.CapNative | arith.CapNativeLeft,
	Unwrap: func(m *ModMat) (*backend.ModMat, *algebra.Context, error) {
		if m == nil {
			return nil, nil, algebra.ErrNilValue
		}
		raw, err := m.h.Get()
		if err != nil {
			return nil, nil, err
		}
		return raw, m.ctx, nil
	},
	Alloc: func(ctx *algebra.Context) (*ModMat, *backend.ModMat, error) {
		mc, err := ctx.ModCtx()
		if err != nil {
			return nil, nil, err
		}
		raw := backend.ModMatInit(ctx.Rows(), ctx.Cols(), mc)
		return &ModMat{h: lifecycle.New(raw, backend.ModMatClear), ctx: ctx}, raw, nil
	},
	Free:   (*ModMat).Close,
	Result: productSpace,
	Binary: arith.Binaries[backend.ModMat]{
		arith.Add: arith.Plain(backend.ModMatAdd),
		arith.Sub: arith.Plain(backend.ModMatSub),
		arith.Mul: arith.Plain(backend.ModMatMul),
	},
	Native: arith.Natives[backend.ModMat]{
		arith.Mul: arith.PlainNative(backend.ModMatScalarMulSi),
	},
	NativeLeft: arith.NativeLefts[backend.ModMat]{
		arith.Mul: func(_ *algebra.Context, dst *backend.ModMat, n int64, a *backend.ModMat) {
			backend.ModMatScalarMulSi(dst, a, n)
		},
	},
}

func newMod(op string, ctx *algebra.Context, fill func(dst *backend.ModMat) error) (*ModMat, error) {
	if err := expectSpace(ctx, algebra.BaseIntMod); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	m, err := modKernel.New(ctx, func(_ *algebra.Context, dst *backend.ModMat) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return m, nil
}

// NewMod returns the matrix with row-major entries e reduced mod n.
func NewMod(ctx *algebra.Context, e ...int64) (*ModMat, error) {
	bs := make([]*big.Int, len(e))
	for i, v := range e {
		bs[i] = big.NewInt(v)
	}

	return ModFromBig(ctx, bs)
}

// ModFromBig returns the matrix with row-major entries e reduced mod n.
func ModFromBig(ctx *algebra.Context, e []*big.Int) (*ModMat, error) {
	return newMod("matrix.ModFromBig", ctx, func(dst *backend.ModMat) error {
		if err := checkCount(ctx, len(e)); err != nil {
			return err
		}
		for _, v := range e {
			if v == nil {
				return algebra.ErrNilValue
			}
		}
		backend.ModMatSetEntries(dst, e)
		return nil
	})
}

// ZeroMod returns the zero matrix of the space.
func ZeroMod(ctx *algebra.Context) (*ModMat, error) {
	return newMod("matrix.ZeroMod", ctx, func(*backend.ModMat) error { return nil })
}

// IdentityMod returns the identity of a square space.
func IdentityMod(ctx *algebra.Context) (*ModMat, error) {
	return newMod("matrix.IdentityMod", ctx, func(dst *backend.ModMat) error {
		if ctx.Rows() != ctx.Cols() {
			return algebra.ErrDimensionMismatch
		}
		backend.ModMatOne(dst)
		return nil
	})
}

// ParseMod reads the text form with integer entries and reduces them.
func ParseMod(ctx *algebra.Context, s string) (*ModMat, error) {
	const op = "matrix.ParseMod"
	if err := expectSpace(ctx, algebra.BaseIntMod); err != nil {
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

	return ModFromBig(ctx, e)
}

// Context returns the borrowed space handle; nil once m is closed.
func (m *ModMat) Context() *algebra.Context {
	if m.Released() {
		return nil
	}

	return m.ctx
}

// Rows returns the row count (0 once closed).
func (m *ModMat) Rows() int {
	if m.Released() {
		return 0
	}

	return m.ctx.Rows()
}

// Cols returns the column count (0 once closed).
func (m *ModMat) Cols() int {
	if m.Released() {
		return 0
	}

	return m.ctx.Cols()
}

// Clone returns a deep copy sharing m's space.
func (m *ModMat) Clone() (*ModMat, error) { return m.mapTo("ModMat.Clone", backend.ModMatSet) }

// Close releases the matrix and its space handle.
func (m *ModMat) Close() {
	if m != nil && m.h.Release() {
		m.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (m *ModMat) Released() bool { return m == nil || m.h.Released() }

func (m *ModMat) mapTo(op string, fn func(dst, src *backend.ModMat)) (*ModMat, error) {
	out, err := modKernel.Map(m, func(_ *algebra.Context, dst, src *backend.ModMat) error {
		fn(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return out, nil
}

func useMod[R any](m *ModMat, fn func(*backend.ModMat) R) (R, error) {
	if m == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(m.h, fn)
}

// ---------- arithmetic ----------

// Add returns m + x.
func (m *ModMat) Add(x *ModMat) (*ModMat, error) { return modKernel.Apply(arith.Add, m, x) }

// Sub returns m - x.
func (m *ModMat) Sub(x *ModMat) (*ModMat, error) { return modKernel.Apply(arith.Sub, m, x) }

// Mul returns the matrix product m * x.
func (m *ModMat) Mul(x *ModMat) (*ModMat, error) { return modKernel.Apply(arith.Mul, m, x) }

func (m *ModMat) AddAssign(x *ModMat) error { return modKernel.Assign(arith.Add, m, x) }
func (m *ModMat) SubAssign(x *ModMat) error { return modKernel.Assign(arith.Sub, m, x) }
func (m *ModMat) MulAssign(x *ModMat) error { return modKernel.Assign(arith.Mul, m, x) }

// MulInt64 returns n * m.
func (m *ModMat) MulInt64(n int64) (*ModMat, error) { return modKernel.ApplyNative(arith.Mul, m, n) }

// MulInt64Assign sets m = n * m.
func (m *ModMat) MulInt64Assign(n int64) error { return modKernel.AssignNative(arith.Mul, m, n) }

// Int64Mul returns n * m.
func (m *ModMat) Int64Mul(n int64) (*ModMat, error) {
	return modKernel.ApplyNativeLeft(arith.Mul, n, m)
}

// Neg returns -m.
func (m *ModMat) Neg() (*ModMat, error) { return m.mapTo("ModMat.Neg", backend.ModMatNeg) }

// Transpose returns the cols x rows transpose in a derived space.
func (m *ModMat) Transpose() (*ModMat, error) {
	out, err := transposeWith(modKernel, m, backend.ModMatTranspose)
	if err != nil {
		return nil, algebra.Errorf("ModMat.Transpose", err)
	}

	return out, nil
}

// Det returns the determinant as a residue of Z/nZ. Over a composite
// modulus elimination can stall on a column without units; that reports
// ErrNotInvertible.
func (m *ModMat) Det() (*intmod.IntMod, error) {
	const op = "ModMat.Det"
	var det *big.Int
	err := squareUse(modKernel, m, func(_ *algebra.Context, raw *backend.ModMat) error {
		z := backend.FmpzInit()
		defer backend.FmpzClear(z)
		if !backend.ModMatDet(z, raw) {
			return algebra.ErrNotInvertible
		}
		det = backend.FmpzGetBig(z)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	ring, err := algebra.NewIntModRing(m.ctx.Modulus())
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	defer ring.Release()

	return intmod.FromBig(ring, det)
}

// Inv returns the inverse of a square matrix; ErrNotInvertible when its
// determinant is not a unit.
func (m *ModMat) Inv() (*ModMat, error) {
	out, err := modKernel.Map(m, func(c *algebra.Context, dst, src *backend.ModMat) error {
		if c.Rows() != c.Cols() {
			return algebra.ErrDimensionMismatch
		}
		if !backend.ModMatInv(dst, src) {
			return algebra.ErrNotInvertible
		}
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("ModMat.Inv", err)
	}

	return out, nil
}

// ---------- inspection ----------

// Entries returns the row-major residues in [0, n).
func (m *ModMat) Entries() ([]*big.Int, error) {
	e, err := useMod(m, backend.ModMatEntries)
	if err != nil {
		return nil, algebra.Errorf("ModMat.Entries", err)
	}

	return e, nil
}

// Entry returns the residue at row i, column j.
func (m *ModMat) Entry(i, j int) (*big.Int, error) {
	if m.Released() {
		return nil, algebra.Errorf("ModMat.Entry", algebra.ErrReleased)
	}
	if i < 0 || j < 0 || i >= m.Rows() || j >= m.Cols() {
		return nil, algebra.Errorf("ModMat.Entry", algebra.ErrOutOfRange)
	}

	return useMod(m, func(raw *backend.ModMat) *big.Int { return backend.ModMatEntry(raw, i, j) })
}

// IsZero reports whether every entry is zero.
func (m *ModMat) IsZero() bool {
	ok, err := useMod(m, backend.ModMatIsZero)

	return err == nil && ok
}

// Equal reports whether m and x live in compatible spaces and have the same
// entries.
func (m *ModMat) Equal(x *ModMat) bool {
	ra, actx, err := modKernel.Unwrap(m)
	if err != nil {
		return false
	}
	rx, xctx, err := modKernel.Unwrap(x)
	if err != nil || !actx.Compatible(xctx) {
		return false
	}
	eq := backend.ModMatEqual(ra, rx)
	m.h.KeepAlive()
	x.h.KeepAlive()

	return eq
}

// Hash mixes the space parameters with the residues.
func (m *ModMat) Hash() uint64 {
	e, err := m.Entries()
	if err != nil {
		return 0
	}

	return m.ctx.Hash(codec.IntsBytes(e)...)
}

// String renders one bracketed row per line.
func (m *ModMat) String() string {
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
func (m *ModMat) Record() (*codec.Record, error) {
	e, err := m.Entries()
	if err != nil {
		return nil, algebra.Errorf("ModMat.Record", err)
	}

	return &codec.Record{Tag: codec.TagModMat, Context: m.ctx.Record(), Ints: codec.IntsBytes(e)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *ModMat) MarshalBinary() ([]byte, error) {
	rec, err := m.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of m.
func (m *ModMat) EncodeYAML() ([]byte, error) {
	rec, err := m.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeModRecord rebuilds a ModMat; residues must lie in [0, n).
func DecodeModRecord(rec *codec.Record, ctx *algebra.Context) (*ModMat, error) {
	if err := rec.Expect(codec.TagModMat, true); err != nil {
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
	if err := expectSpace(rctx, algebra.BaseIntMod); err != nil {
		return nil, decodeErr("%v", err)
	}
	if err := checkCount(rctx, len(e)); err != nil {
		return nil, decodeErr("%v", err)
	}
	n := rctx.Modulus()
	for _, v := range e {
		if v.Sign() < 0 || v.Cmp(n) >= 0 {
			return nil, decodeErr("residue %s outside [0, %s)", v, n)
		}
	}

	return ModFromBig(rctx, e)
}

// DecodeMod rebuilds a ModMat and its space from either encoding.
func DecodeMod(data []byte) (*ModMat, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeModRecord(rec, nil)
}
