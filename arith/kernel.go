// SPDX-License-Identifier: MIT

// Package arith - Kernel: the dispatch matrix of one value type.
//
// Implementation:
//   - Stage 1: capability and entry-point lookup (ErrUnsupported).
//   - Stage 2: unwrap both operands (ErrNilValue, ErrReleased).
//   - Stage 3: derive the result Context; by default the operands must be
//     compatible and the result shares the left operand's descriptor
//     (ErrContextMismatch).
//   - Stage 4: divisor checks for exact types (ErrDivisionByZero,
//     ErrNotInvertible).
//   - Stage 5: allocate the result (or reuse the left operand), call the
//     foreign entry point, keep the operands alive past the call.
//
// Nothing reaches the backend before stages 1-4 have passed.
package arith

import (
	"fmt"
	"runtime"

	"github.com/katalvlaran/lvnum/algebra"
)

// Kernel maps Op × Shape onto the foreign entry points of one value type.
// V is the public value type (a pointer), R the foreign structure it owns.
//
// Contexts handed to Alloc are owned by it on success; on failure the
// kernel releases them. Contexts returned by Unwrap are borrowed.
type Kernel[V any, R any] struct {
	// Name labels metrics and errors ("IntPoly").
	Name string
	// Caps lists the supported call shapes beyond Alloc.
	Caps Caps

	// Unwrap returns the operand's foreign structure and Context (nil for
	// primitive values).
	Unwrap func(v V) (*R, *algebra.Context, error)
	// Alloc creates a zero value bound to ctx.
	Alloc func(ctx *algebra.Context) (V, *R, error)
	// Free closes a value allocated by Alloc.
	Free func(v V)

	// Result derives the result Context of a binary op. Nil means the
	// operands must be compatible and the result shares the left Context.
	Result func(op Op, a, b *algebra.Context) (*algebra.Context, error)
	// IsZero tests divisors of exact types. Nil for ball types.
	IsZero func(r *R) bool
	// CanDivide rejects non-zero divisors without an inverse.
	CanDivide func(c *algebra.Context, r *R) bool
	// CanDivideNative rejects non-zero native divisors without an inverse.
	CanDivideNative func(c *algebra.Context, n int64) bool

	Binary     Binaries[R]
	Native     Natives[R]
	NativeLeft NativeLefts[R]
}

func (k *Kernel[V, R]) fail(op Op, err error) error {
	return fmt.Errorf("%s.%s: %w", k.Name, op, err)
}

// result derives the Context of a binary operation.
func (k *Kernel[V, R]) result(op Op, a, b *algebra.Context) (*algebra.Context, error) {
	if k.Result != nil {
		return k.Result(op, a, b)
	}
	if a == nil && b == nil {
		return nil, nil
	}
	if err := a.CheckCompatible(b); err != nil {
		return nil, err
	}

	return a.Clone()
}

func (k *Kernel[V, R]) divisor(c *algebra.Context, r *R) error {
	if k.IsZero != nil && k.IsZero(r) {
		return algebra.ErrDivisionByZero
	}
	if k.CanDivide != nil && !k.CanDivide(c, r) {
		return algebra.ErrNotInvertible
	}

	return nil
}

func (k *Kernel[V, R]) nativeDivisor(c *algebra.Context, n int64) error {
	if n == 0 && k.IsZero != nil {
		return algebra.ErrDivisionByZero
	}
	if k.CanDivideNative != nil && !k.CanDivideNative(c, n) {
		return algebra.ErrNotInvertible
	}

	return nil
}

func (k *Kernel[V, R]) binary(op Op) (BinaryFunc[R], error) {
	if op >= opCount || k.Binary[op] == nil || (op == Div && !k.Caps.Has(CapDiv)) {
		return nil, algebra.ErrUnsupported
	}

	return k.Binary[op], nil
}

// alloc allocates a value bound to ctx; ctx is released on failure.
func (k *Kernel[V, R]) alloc(ctx *algebra.Context) (V, *R, error) {
	v, r, err := k.Alloc(ctx)
	if err != nil {
		ctx.Release()
		var zero V
		return zero, nil, err
	}

	return v, r, nil
}

// Apply returns a ⊕ b as a new value.
func (k *Kernel[V, R]) Apply(op Op, a, b V) (V, error) {
	out, err := k.apply(op, a, b)
	k.observe(op, Alloc, err)
	if err != nil {
		return out, k.fail(op, err)
	}

	return out, nil
}

func (k *Kernel[V, R]) apply(op Op, a, b V) (V, error) {
	var zero V
	fn, err := k.binary(op)
	if err != nil {
		return zero, err
	}
	ra, actx, err := k.Unwrap(a)
	if err != nil {
		return zero, err
	}
	rb, bctx, err := k.Unwrap(b)
	if err != nil {
		return zero, err
	}
	rctx, err := k.result(op, actx, bctx)
	if err != nil {
		return zero, err
	}
	if op == Div {
		if err := k.divisor(rctx, rb); err != nil {
			rctx.Release()
			return zero, err
		}
	}
	out, rd, err := k.alloc(rctx)
	if err != nil {
		return zero, err
	}
	fn(rctx, rd, ra, rb)
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)

	return out, nil
}

// Assign sets a = a ⊕ b. The left operand keeps its Context; an operation
// whose result would need another Context fails with ErrContextMismatch.
func (k *Kernel[V, R]) Assign(op Op, a, b V) error {
	err := k.assign(op, a, b)
	k.observe(op, InPlace, err)
	if err != nil {
		return k.fail(op, err)
	}

	return nil
}

func (k *Kernel[V, R]) assign(op Op, a, b V) error {
	if !k.Caps.Has(CapInPlace) {
		return algebra.ErrUnsupported
	}
	fn, err := k.binary(op)
	if err != nil {
		return err
	}
	ra, actx, err := k.Unwrap(a)
	if err != nil {
		return err
	}
	rb, bctx, err := k.Unwrap(b)
	if err != nil {
		return err
	}
	rctx, err := k.result(op, actx, bctx)
	if err != nil {
		return err
	}
	defer rctx.Release()
	if rctx != nil && !rctx.Compatible(actx) {
		return fmt.Errorf("%w: result lives in %s", algebra.ErrContextMismatch, rctx)
	}
	if op == Div {
		if err := k.divisor(actx, rb); err != nil {
			return err
		}
	}
	fn(actx, ra, ra, rb)
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)

	return nil
}

func (k *Kernel[V, R]) native(op Op) (NativeFunc[R], error) {
	if !k.Caps.Has(CapNative) || op >= opCount || k.Native[op] == nil || (op == Div && !k.Caps.Has(CapDiv)) {
		return nil, algebra.ErrUnsupported
	}

	return k.Native[op], nil
}

// ApplyNative returns a ⊕ n as a new value.
func (k *Kernel[V, R]) ApplyNative(op Op, a V, n int64) (V, error) {
	out, err := k.applyNative(op, a, n)
	k.observe(op, Native, err)
	if err != nil {
		return out, k.fail(op, err)
	}

	return out, nil
}

func (k *Kernel[V, R]) applyNative(op Op, a V, n int64) (V, error) {
	var zero V
	fn, err := k.native(op)
	if err != nil {
		return zero, err
	}
	ra, actx, err := k.Unwrap(a)
	if err != nil {
		return zero, err
	}
	if op == Div {
		if err := k.nativeDivisor(actx, n); err != nil {
			return zero, err
		}
	}
	rctx, err := cloneCtx(actx)
	if err != nil {
		return zero, err
	}
	out, rd, err := k.alloc(rctx)
	if err != nil {
		return zero, err
	}
	fn(rctx, rd, ra, n)
	runtime.KeepAlive(a)

	return out, nil
}

// AssignNative sets a = a ⊕ n.
func (k *Kernel[V, R]) AssignNative(op Op, a V, n int64) error {
	err := k.assignNative(op, a, n)
	k.observe(op, Native, err)
	if err != nil {
		return k.fail(op, err)
	}

	return nil
}

func (k *Kernel[V, R]) assignNative(op Op, a V, n int64) error {
	if !k.Caps.Has(CapInPlace) {
		return algebra.ErrUnsupported
	}
	fn, err := k.native(op)
	if err != nil {
		return err
	}
	ra, actx, err := k.Unwrap(a)
	if err != nil {
		return err
	}
	if op == Div {
		if err := k.nativeDivisor(actx, n); err != nil {
			return err
		}
	}
	fn(actx, ra, ra, n)
	runtime.KeepAlive(a)

	return nil
}

// ApplyNativeLeft returns n ⊕ a as a new value.
func (k *Kernel[V, R]) ApplyNativeLeft(op Op, n int64, a V) (V, error) {
	out, err := k.applyNativeLeft(op, n, a)
	k.observe(op, NativeLeft, err)
	if err != nil {
		return out, k.fail(op, err)
	}

	return out, nil
}

func (k *Kernel[V, R]) applyNativeLeft(op Op, n int64, a V) (V, error) {
	var zero V
	if !k.Caps.Has(CapNativeLeft) || op >= opCount || k.NativeLeft[op] == nil || (op == Div && !k.Caps.Has(CapDiv)) {
		return zero, algebra.ErrUnsupported
	}
	ra, actx, err := k.Unwrap(a)
	if err != nil {
		return zero, err
	}
	if op == Div {
		if err := k.divisor(actx, ra); err != nil {
			return zero, err
		}
	}
	rctx, err := cloneCtx(actx)
	if err != nil {
		return zero, err
	}
	out, rd, err := k.alloc(rctx)
	if err != nil {
		return zero, err
	}
	k.NativeLeft[op](rctx, rd, n, ra)
	runtime.KeepAlive(a)

	return out, nil
}

// Map returns fn(a) as a new value in a's Context. A failing fn leaves no
// live result behind.
func (k *Kernel[V, R]) Map(a V, fn func(c *algebra.Context, dst, src *R) error) (V, error) {
	var zero V
	ra, actx, err := k.Unwrap(a)
	if err != nil {
		return zero, err
	}
	out, err := k.New(actx, func(c *algebra.Context, dst *R) error {
		return fn(c, dst, ra)
	})
	runtime.KeepAlive(a)

	return out, err
}

// New builds a value bound to a new handle on ctx (nil for primitive
// values) and fills it. Construction is atomic: when fill fails the value
// is closed before the error is returned.
func (k *Kernel[V, R]) New(ctx *algebra.Context, fill func(c *algebra.Context, dst *R) error) (V, error) {
	var zero V
	rctx, err := cloneCtx(ctx)
	if err != nil {
		return zero, err
	}
	out, rd, err := k.alloc(rctx)
	if err != nil {
		return zero, err
	}
	if fill != nil {
		if err := fill(rctx, rd); err != nil {
			k.Free(out)
			return zero, err
		}
	}

	return out, nil
}

func cloneCtx(c *algebra.Context) (*algebra.Context, error) {
	if c == nil {
		return nil, nil
	}

	return c.Clone()
}
