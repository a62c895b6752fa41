// SPDX-License-Identifier: MIT

package integer

import (
	"math"
	"math/big"

	"github.com/cespare/xxhash/v2"
	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
)

// Int64 returns z as an int64; ErrOverflow when it does not fit.
func (z *Integer) Int64() (int64, error) {
	type res struct {
		v  int64
		ok bool
	}
	r, err := use(z, func(raw *backend.Fmpz) res {
		if !backend.FmpzFitsSi(raw) {
			return res{}
		}
		return res{backend.FmpzGetSi(raw), true}
	})
	if err != nil {
		return 0, algebra.Errorf("Integer.Int64", err)
	}
	if !r.ok {
		return 0, algebra.Errorf("Integer.Int64", algebra.ErrOverflow)
	}

	return r.v, nil
}

// Uint64 returns z as a uint64; ErrOverflow when negative or too large.
func (z *Integer) Uint64() (uint64, error) {
	type res struct {
		v  uint64
		ok bool
	}
	r, err := use(z, func(raw *backend.Fmpz) res {
		if !backend.FmpzFitsUi(raw) {
			return res{}
		}
		return res{backend.FmpzGetUi(raw), true}
	})
	if err != nil {
		return 0, algebra.Errorf("Integer.Uint64", err)
	}
	if !r.ok {
		return 0, algebra.Errorf("Integer.Uint64", algebra.ErrOverflow)
	}

	return r.v, nil
}

// Float64 converts z. Magnitudes beyond the float64 range report
// ErrOverflow; in Exact mode a rounded result reports ErrInexact.
func (z *Integer) Float64(mode algebra.ConvMode) (float64, error) {
	type res struct {
		f   float64
		acc big.Accuracy
	}
	r, err := use(z, func(raw *backend.Fmpz) res {
		f, acc := backend.FmpzGetD(raw)
		return res{f, acc}
	})
	if err != nil {
		return 0, algebra.Errorf("Integer.Float64", err)
	}
	if math.IsInf(r.f, 0) {
		return 0, algebra.Errorf("Integer.Float64", algebra.ErrOverflow)
	}
	if mode == algebra.Exact && r.acc != big.Exact {
		return 0, algebra.Errorf("Integer.Float64", algebra.ErrInexact)
	}

	return r.f, nil
}

// Big returns a copy of z as a *big.Int.
func (z *Integer) Big() (*big.Int, error) {
	b, err := use(z, backend.FmpzGetBig)
	if err != nil {
		return nil, algebra.Errorf("Integer.Big", err)
	}

	return b, nil
}

// FromBig returns a copy of b. A nil b reports ErrNilValue.
func FromBig(b *big.Int) (*Integer, error) {
	return build("integer.FromBig", func(dst *backend.Fmpz) error {
		if b == nil {
			return algebra.ErrNilValue
		}
		backend.FmpzSetBig(dst, b)
		return nil
	})
}

// Cmp returns -1, 0 or +1 comparing z with x.
func (z *Integer) Cmp(x *Integer) (int, error) {
	rx, _, err := unwrap(x)
	if err != nil {
		return 0, algebra.Errorf("Integer.Cmp", err)
	}
	c, err := use(z, func(rz *backend.Fmpz) int { return backend.FmpzCmp(rz, rx) })
	x.h.KeepAlive()
	if err != nil {
		return 0, algebra.Errorf("Integer.Cmp", err)
	}

	return c, nil
}

// Equal reports whether z and x hold the same integer. Released or nil
// operands are equal to nothing.
func (z *Integer) Equal(x *Integer) bool {
	c, err := z.Cmp(x)

	return err == nil && c == 0
}

// Sign returns -1, 0 or +1; 0 for a released value.
func (z *Integer) Sign() int {
	s, _ := use(z, backend.FmpzSgn)

	return s
}

// IsZero reports z == 0. False for a released value.
func (z *Integer) IsZero() bool {
	ok, _ := use(z, backend.FmpzIsZero)

	return ok
}

// BitLen returns the bit length of |z|.
func (z *Integer) BitLen() int {
	n, _ := use(z, backend.FmpzBits)

	return n
}

// Hash returns a hash of the canonical encoding; equal integers hash
// equally.
func (z *Integer) Hash() uint64 {
	h, _ := use(z, func(raw *backend.Fmpz) uint64 { return xxhash.Sum64(backend.FmpzBytes(raw)) })

	return h
}

// Text formats z in base (2..62); any other base gives "<invalid base>".
func (z *Integer) Text(base int) string {
	if base < 2 || base > 62 {
		return "<invalid base>"
	}
	s, err := use(z, func(raw *backend.Fmpz) string { return backend.FmpzGetStr(raw, base) })
	if err != nil {
		return "<released>"
	}

	return s
}

// String formats z in decimal.
func (z *Integer) String() string { return z.Text(10) }
