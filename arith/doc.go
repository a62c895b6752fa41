// Package arith is the arithmetic dispatch layer of lvnum.
//
// Every value type declares one Kernel: a small table mapping
// Op (add, sub, mul, div) × Shape (allocating, in place, value ⊕ int64,
// int64 ⊕ value) onto foreign entry points, plus the hooks the dispatcher
// needs around them (unwrap, allocation, result Context, divisor checks).
//
// The kernel owns every guard that must hold before the backend is called:
//
//   - operands are live (ErrReleased) and non-nil (ErrNilValue);
//   - their Contexts are compatible (ErrContextMismatch);
//   - exact divisors are non-zero (ErrDivisionByZero) and invertible
//     (ErrNotInvertible);
//   - in-place operations keep the left operand's Context.
//
// Ball kernels leave IsZero unset, so division by a ball containing zero
// reaches the backend and yields a non-finite ball instead of an error.
//
// Each dispatch increments lvnum_arith_dispatch_total{kernel,op,shape,outcome}.
package arith
