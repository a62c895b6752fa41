// SPDX-License-Identifier: MIT

// Package lifecycle provides scoped ownership of foreign structures.
//
// A Handle owns exactly one foreign structure together with the function
// that releases it. The structure is released exactly once:
//   - explicitly, by Release (Close on the owning value), or
//   - by the garbage collector through runtime.AddCleanup when the program
//     dropped the handle without releasing it.
//
// Explicit release cancels the cleanup, so the two paths never both run.
// After release every accessor reports ErrReleased and the raw pointer is
// no longer reachable through the handle.
package lifecycle

import (
	"errors"
	"runtime"
	"sync/atomic"
)

// ErrReleased is returned by every accessor of a released handle.
var ErrReleased = errors.New("lifecycle: value already released")

// Handle owns one foreign structure of type T.
type Handle[T any] struct {
	raw      *T
	free     func(*T)
	cleanup  runtime.Cleanup
	released atomic.Bool
}

// New takes ownership of raw. free releases it and must be safe to call
// from the cleanup goroutine. Panics when raw or free is nil (programmer error).
func New[T any](raw *T, free func(*T)) *Handle[T] {
	if raw == nil || free == nil {
		panic("lifecycle: New: nil structure or release func")
	}
	h := &Handle[T]{raw: raw, free: free}
	h.cleanup = runtime.AddCleanup(h, free, raw)

	return h
}

// Build runs init, then fill on the fresh structure. When fill fails the
// structure is released before the error is returned, so a failed
// construction never leaves a live structure behind.
func Build[T any](init func() *T, free func(*T), fill func(*T) error) (*Handle[T], error) {
	raw := init()
	if fill != nil {
		if err := fill(raw); err != nil {
			free(raw)
			return nil, err
		}
	}

	return New(raw, free), nil
}

// Get returns the owned structure, or ErrReleased.
//
// The caller must keep h reachable while it uses the pointer; Use does that
// automatically.
func (h *Handle[T]) Get() (*T, error) {
	if h == nil || h.released.Load() {
		return nil, ErrReleased
	}

	return h.raw, nil
}

// Released reports whether the handle has been released.
func (h *Handle[T]) Released() bool {
	return h == nil || h.released.Load()
}

// Release frees the structure. Only the first call frees; it reports
// whether this call did.
func (h *Handle[T]) Release() bool {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return false
	}
	h.cleanup.Stop()
	raw := h.raw
	h.raw = nil
	h.free(raw)

	return true
}

// KeepAlive marks h as reachable up to this point.
func (h *Handle[T]) KeepAlive() { runtime.KeepAlive(h) }

// Use calls fn with the owned structure and keeps h alive for the whole call.
func Use[T, R any](h *Handle[T], fn func(*T) R) (R, error) {
	raw, err := h.Get()
	if err != nil {
		var zero R
		return zero, err
	}
	out := fn(raw)
	runtime.KeepAlive(h)

	return out, nil
}
