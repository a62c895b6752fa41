// SPDX-License-Identifier: MIT

// Package integer - Integer: arbitrary-precision integer owning one fmpz.
//
// Lifecycle:
//   - Every constructor is atomic: the foreign structure is initialized,
//     filled, and released again before returning when filling fails.
//   - Close releases it exactly once; later calls on the value report
//     ErrReleased (or the documented zero result for accessors without an
//     error return).
//   - A value dropped without Close is released by the GC safety net.
package integer

import (
	"math"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// Integer is an arbitrary-precision integer. Not safe for concurrent use.
type Integer struct {
	h *lifecycle.Handle[backend.Fmpz]
}

func alloc(_ *algebra.Context) (*Integer, *backend.Fmpz, error) {
	raw := backend.FmpzInit()

	return &Integer{h: lifecycle.New(raw, backend.FmpzClear)}, raw, nil
}

func unwrap(z *Integer) (*backend.Fmpz, *algebra.Context, error) {
	if z == nil {
		return nil, nil, algebra.ErrNilValue
	}
	raw, err := z.h.Get()

	return raw, nil, err
}

// build runs fill on a fresh Integer.
func build(op string, fill func(dst *backend.Fmpz) error) (*Integer, error) {
	z, err := kernel.New(nil, func(_ *algebra.Context, dst *backend.Fmpz) error { return fill(dst) })
	if err != nil {
		return nil, algebra.Errorf(op, err)
	}

	return z, nil
}

// use runs fn with the live structure.
func use[R any](z *Integer, fn func(*backend.Fmpz) R) (R, error) {
	if z == nil {
		var zero R
		return zero, algebra.ErrNilValue
	}

	return lifecycle.Use(z.h, fn)
}

// FromInt64 returns n.
func FromInt64(n int64) *Integer {
	z, _ := build("integer.FromInt64", func(dst *backend.Fmpz) error {
		backend.FmpzSetSi(dst, n)
		return nil
	})

	return z
}

// FromUint64 returns n.
func FromUint64(n uint64) *Integer {
	z, _ := build("integer.FromUint64", func(dst *backend.Fmpz) error {
		backend.FmpzSetUi(dst, n)
		return nil
	})

	return z
}

// FromFloat64 converts f. In Exact mode a fractional f fails with
// ErrInexact; Nearest rounds half to even. NaN reports ErrInexact and
// infinities ErrOverflow in both modes.
func FromFloat64(f float64, mode algebra.ConvMode) (*Integer, error) {
	return build("integer.FromFloat64", func(dst *backend.Fmpz) error {
		switch {
		case math.IsNaN(f):
			return algebra.ErrInexact
		case math.IsInf(f, 0):
			return algebra.ErrOverflow
		case mode == algebra.Nearest:
			f = math.RoundToEven(f)
		}
		if !backend.FmpzSetD(dst, f) {
			return algebra.ErrInexact
		}

		return nil
	})
}

// Parse reads s in base (0 selects the base from a 0b/0o/0x prefix,
// otherwise 2..62). Empty input, bad digits and unsupported bases fail
// with ErrParse.
func Parse(s string, base int) (*Integer, error) {
	return build("integer.Parse", func(dst *backend.Fmpz) error {
		if !backend.FmpzSetStr(dst, s, base) {
			return algebra.ErrParse
		}

		return nil
	})
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) *Integer {
	z, err := Parse(s, 10)
	if err != nil {
		panic(err)
	}

	return z
}

// Clone returns a deep copy.
func (z *Integer) Clone() (*Integer, error) {
	out, err := kernel.Map(z, func(_ *algebra.Context, dst, src *backend.Fmpz) error {
		backend.FmpzSet(dst, src)
		return nil
	})
	if err != nil {
		return nil, algebra.Errorf("Integer.Clone", err)
	}

	return out, nil
}

// Close releases the value. Only the first call has an effect.
func (z *Integer) Close() {
	if z != nil {
		z.h.Release()
	}
}

// Released reports whether Close has been called.
func (z *Integer) Released() bool { return z == nil || z.h.Released() }

// Set copies x into z.
func (z *Integer) Set(x *Integer) error {
	dst, _, err := unwrap(z)
	if err != nil {
		return algebra.Errorf("Integer.Set", err)
	}
	_, err = use(x, func(src *backend.Fmpz) struct{} {
		backend.FmpzSet(dst, src)
		return struct{}{}
	})
	z.h.KeepAlive()
	if err != nil {
		return algebra.Errorf("Integer.Set", err)
	}

	return nil
}
