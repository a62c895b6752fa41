// SPDX-License-Identifier: MIT

package arith

import "github.com/katalvlaran/lvnum/algebra"

// BinaryFunc is a value ⊕ value entry point; dst may alias a or b.
type BinaryFunc[R any] func(c *algebra.Context, dst, a, b *R)

// NativeFunc is a value ⊕ int64 entry point; dst may alias a.
type NativeFunc[R any] func(c *algebra.Context, dst, a *R, n int64)

// NativeLeftFunc is an int64 ⊕ value entry point.
type NativeLeftFunc[R any] func(c *algebra.Context, dst *R, n int64, a *R)

// Binaries, Natives and NativeLefts are indexed by Op; nil entries are
// unsupported.
type (
	Binaries[R any]    [opCount]BinaryFunc[R]
	Natives[R any]     [opCount]NativeFunc[R]
	NativeLefts[R any] [opCount]NativeLeftFunc[R]
)

// Plain adapts a context-free foreign entry point.
func Plain[R any](f func(dst, a, b *R)) BinaryFunc[R] {
	return func(_ *algebra.Context, dst, a, b *R) { f(dst, a, b) }
}

// PlainNative adapts a context-free value ⊕ int64 entry point.
func PlainNative[R any](f func(dst, a *R, n int64)) NativeFunc[R] {
	return func(_ *algebra.Context, dst, a *R, n int64) { f(dst, a, n) }
}

// PlainNativeLeft adapts a context-free int64 ⊕ value entry point.
func PlainNativeLeft[R any](f func(dst *R, n int64, a *R)) NativeLeftFunc[R] {
	return func(_ *algebra.Context, dst *R, n int64, a *R) { f(dst, n, a) }
}
