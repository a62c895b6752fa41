// SPDX-License-Identifier: MIT

package ball

import (
	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/arith"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// Complex is a rectangular complex ball, a pair of real balls. Not safe
// for concurrent use.
type Complex struct {
	h   *lifecycle.Handle[backend.Acb]
	ctx *algebra.Context
}

func allocComplex(ctx *algebra.Context) (*Complex, *backend.Acb, error) {
	raw := backend.AcbInit()

	return &Complex{h: lifecycle.New(raw, backend.AcbClear), ctx: ctx}, raw, nil
}

func unwrapComplex(z *Complex) (*backend.Acb, *algebra.Context, error) {
	if z == nil {
		return nil, nil, algebra.ErrNilValue
	}
	raw, err := z.h.Get()
	if err != nil {
		return nil, nil, err
	}

	return raw, z.ctx, nil
}

func useComplex[R any](z *Complex, fn func(*backend.Acb) R) (R, error) {
	if z == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(z.h, fn)
}

func buildComplex(op string, ctx *algebra.Context, fill func(dst *backend.Acb, prec uint) error) (*Complex, error) {
	if err := expect(ctx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	z, err := complexKernel.New(ctx, func(c *algebra.Context, dst *backend.Acb) error { return fill(dst, c.Precision()) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return z, nil
}

type acbOp func(dst, a, b *backend.Acb, prec uint)

// acbScalar returns n as a scratch ball the caller clears.
func acbScalar(c *algebra.Context, n int64) *backend.Acb {
	s := backend.AcbInit()
	backend.AcbSetSi(s, n, c.Precision())

	return s
}

func acbBinary(f acbOp) arith.BinaryFunc[backend.Acb] {
	return func(c *algebra.Context, dst, a, b *backend.Acb) { f(dst, a, b, c.Precision()) }
}

func acbNative(f acbOp) arith.NativeFunc[backend.Acb] {
	return func(c *algebra.Context, dst, a *backend.Acb, n int64) {
		s := acbScalar(c, n)
		defer backend.AcbClear(s)
		f(dst, a, s, c.Precision())
	}
}

func acbNativeLeft(f acbOp) arith.NativeLeftFunc[backend.Acb] {
	return func(c *algebra.Context, dst *backend.Acb, n int64, a *backend.Acb) {
		s := acbScalar(c, n)
		defer backend.AcbClear(s)
		f(dst, s, a, c.Precision())
	}
}

var complexKernel = &arith.Kernel[*Complex, backend.Acb]{
	Name:   "Complex",
	Caps:   arith.CapInPlace | arith.CapNative | arith.CapNativeLeft | arith.CapDiv,
	Unwrap: unwrapComplex,
	Alloc:  allocComplex,
	Free:   (*Complex).Close,
	Binary: arith.Binaries[backend.Acb]{
		arith.Add: acbBinary(backend.AcbAdd),
		arith.Sub: acbBinary(backend.AcbSub),
		arith.Mul: acbBinary(backend.AcbMul),
		arith.Div: acbBinary(backend.AcbDiv),
	},
	Native: arith.Natives[backend.Acb]{
		arith.Add: acbNative(backend.AcbAdd),
		arith.Sub: acbNative(backend.AcbSub),
		arith.Mul: acbNative(backend.AcbMul),
		arith.Div: acbNative(backend.AcbDiv),
	},
	NativeLeft: arith.NativeLefts[backend.Acb]{
		arith.Add: acbNativeLeft(backend.AcbAdd),
		arith.Sub: acbNativeLeft(backend.AcbSub),
		arith.Mul: acbNativeLeft(backend.AcbMul),
		arith.Div: acbNativeLeft(backend.AcbDiv),
	},
}

// ---------- constructors ----------

// ComplexFromInt64 returns n + 0i.
func ComplexFromInt64(ctx *algebra.Context, n int64) (*Complex, error) {
	return buildComplex("ball.ComplexFromInt64", ctx, func(dst *backend.Acb, prec uint) error {
		backend.AcbSetSi(dst, n, prec)
		return nil
	})
}

// FromReal returns re + 0i in re's Context.
func FromReal(re *Real) (*Complex, error) {
	const op = "ball.FromReal"
	rr, ctx, err := unwrapReal(re)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	defer re.h.KeepAlive()

	return buildComplex(op, ctx, func(dst *backend.Acb, _ uint) error {
		backend.AcbSetArb(dst, rr)
		return nil
	})
}

// FromParts returns re + im*i. Both parts must share a compatible Context.
func FromParts(re, im *Real) (*Complex, error) {
	const op = "ball.FromParts"
	rr, rctx, err := unwrapReal(re)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	ri, ictx, err := unwrapReal(im)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	if err := rctx.CheckCompatible(ictx); err != nil {
		return nil, algebra.Errorf(op, err)
	}
	defer re.h.KeepAlive()
	defer im.h.KeepAlive()

	return buildComplex(op, rctx, func(dst *backend.Acb, _ uint) error {
		backend.AcbSetArbArb(dst, rr, ri)
		return nil
	})
}

// ---------- lifecycle ----------

// Context returns the borrowed precision handle; nil once z is closed.
func (z *Complex) Context() *algebra.Context {
	if z.Released() {
		return nil
	}

	return z.ctx
}

// Clone returns a deep copy sharing z's Context.
func (z *Complex) Clone() (*Complex, error) {
	out, err := complexKernel.Map(z, func(_ *algebra.Context, dst, src *backend.Acb) error {
		backend.AcbSet(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("Complex.Clone", err)
	}

	return out, nil
}

// Close releases the ball and its Context handle.
func (z *Complex) Close() {
	if z != nil && z.h.Release() {
		z.ctx.Release()
	}
}

// Released reports whether Close has been called.
func (z *Complex) Released() bool { return z == nil || z.h.Released() }

// ---------- arithmetic ----------

// Add returns z + w.
func (z *Complex) Add(w *Complex) (*Complex, error) { return complexKernel.Apply(arith.Add, z, w) }

// Sub returns z - w.
func (z *Complex) Sub(w *Complex) (*Complex, error) { return complexKernel.Apply(arith.Sub, z, w) }

// Mul returns z * w.
func (z *Complex) Mul(w *Complex) (*Complex, error) { return complexKernel.Apply(arith.Mul, z, w) }

// Div returns z / w; the non-finite ball when w contains zero.
func (z *Complex) Div(w *Complex) (*Complex, error) { return complexKernel.Apply(arith.Div, z, w) }

func (z *Complex) AddAssign(w *Complex) error { return complexKernel.Assign(arith.Add, z, w) }
func (z *Complex) SubAssign(w *Complex) error { return complexKernel.Assign(arith.Sub, z, w) }
func (z *Complex) MulAssign(w *Complex) error { return complexKernel.Assign(arith.Mul, z, w) }
func (z *Complex) DivAssign(w *Complex) error { return complexKernel.Assign(arith.Div, z, w) }

func (z *Complex) AddInt64(n int64) (*Complex, error) {
	return complexKernel.ApplyNative(arith.Add, z, n)
}

func (z *Complex) SubInt64(n int64) (*Complex, error) {
	return complexKernel.ApplyNative(arith.Sub, z, n)
}

func (z *Complex) MulInt64(n int64) (*Complex, error) {
	return complexKernel.ApplyNative(arith.Mul, z, n)
}

func (z *Complex) DivInt64(n int64) (*Complex, error) {
	return complexKernel.ApplyNative(arith.Div, z, n)
}

func (z *Complex) AddInt64Assign(n int64) error { return complexKernel.AssignNative(arith.Add, z, n) }
func (z *Complex) SubInt64Assign(n int64) error { return complexKernel.AssignNative(arith.Sub, z, n) }
func (z *Complex) MulInt64Assign(n int64) error { return complexKernel.AssignNative(arith.Mul, z, n) }
func (z *Complex) DivInt64Assign(n int64) error { return complexKernel.AssignNative(arith.Div, z, n) }

// Int64Sub returns n - z.
func (z *Complex) Int64Sub(n int64) (*Complex, error) {
	return complexKernel.ApplyNativeLeft(arith.Sub, n, z)
}

// Int64Div returns n / z.
func (z *Complex) Int64Div(n int64) (*Complex, error) {
	return complexKernel.ApplyNativeLeft(arith.Div, n, z)
}

// Neg returns -z.
func (z *Complex) Neg() (*Complex, error) {
	out, err := complexKernel.Map(z, func(_ *algebra.Context, dst, src *backend.Acb) error {
		backend.AcbNeg(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("Complex.Neg", err)
	}

	return out, nil
}

// ---------- inspection ----------

func (z *Complex) part(op string, get func(dst *backend.Arb, a *backend.Acb)) (*Real, error) {
	raw, ctx, err := unwrapComplex(z)
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}
	defer z.h.KeepAlive()

	return buildReal(op, ctx, func(dst *backend.Arb, _ uint) error {
		get(dst, raw)
		return nil
	})
}

// Re returns the real part in z's Context.
func (z *Complex) Re() (*Real, error) { return z.part("Complex.Re", backend.AcbGetReal) }

// Im returns the imaginary part in z's Context.
func (z *Complex) Im() (*Real, error) { return z.part("Complex.Im", backend.AcbGetImag) }

// IsExact reports that both parts have a zero radius.
func (z *Complex) IsExact() bool {
	ok, err := useComplex(z, backend.AcbIsExact)

	return err == nil && ok
}

// IsFinite reports that both radii are finite.
func (z *Complex) IsFinite() bool {
	ok, err := useComplex(z, backend.AcbIsFinite)

	return err == nil && ok
}

// ContainsZero reports 0 ∈ z.
func (z *Complex) ContainsZero() bool {
	ok, err := useComplex(z, backend.AcbContainsZero)

	return err == nil && ok
}

func (z *Complex) relate(op string, w *Complex, fn func(a, b *backend.Acb) bool) (bool, error) {
	rz, zctx, err := unwrapComplex(z)
	if err != nil {
		return false, algebra.Errorf(op, err)
	}
	rw, wctx, err := unwrapComplex(w)
	if err != nil {
		return false, algebra.Errorf(op, err)
	}
	if err := zctx.CheckCompatible(wctx); err != nil {
		return false, algebra.Errorf(op, err)
	}
	ok := fn(rz, rw)
	z.h.KeepAlive()
	w.h.KeepAlive()

	return ok, nil
}

// Contains reports w ⊆ z.
func (z *Complex) Contains(w *Complex) (bool, error) {
	return z.relate("Complex.Contains", w, backend.AcbContains)
}

// Overlaps reports z ∩ w ≠ ∅.
func (z *Complex) Overlaps(w *Complex) (bool, error) {
	return z.relate("Complex.Overlaps", w, backend.AcbOverlaps)
}

// Equal reports whether z and w are the same exact point.
func (z *Complex) Equal(w *Complex) bool {
	ok, err := z.relate("Complex.Equal", w, func(a, b *backend.Acb) bool {
		return backend.AcbIsExact(a) && backend.AcbIsExact(b) && backend.AcbEqual(a, b)
	})

	return err == nil && ok
}

// Hash mixes the precision with the exact part values.
func (z *Complex) Hash() uint64 {
	parts, err := useComplex(z, func(raw *backend.Acb) [][]byte {
		s := backend.ArbInit()
		defer backend.ArbClear(s)
		out := make([][]byte, 0, 4)
		for _, get := range []func(*backend.Arb, *backend.Acb){backend.AcbGetReal, backend.AcbGetImag} {
			get(s, raw)
			out = append(out, exactText(backend.ArbMid(s)), exactText(backend.ArbRad(s)))
		}
		return out
	})
	if err != nil {
		return 0
	}

	return z.ctx.Hash(parts...)
}

// String prints "re + im*I" with each part in the Real form.
func (z *Complex) String() string {
	s, err := useComplex(z, backend.AcbGetStr)
	if err != nil {
		return "<released>"
	}

	return s
}
