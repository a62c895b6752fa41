// SPDX-License-Identifier: MIT

// Package ball - Real and Complex balls bound to a working-precision Context.
//
// Semantics:
//   - A ball [m +/- r] encloses every value it may stand for. Operations
//     round the midpoint to the Context precision and widen the radius so
//     the enclosure stays valid.
//   - The kernels carry no zero test: dividing by a ball that contains zero
//     succeeds and yields the non-finite ball [+/- inf].
//   - Balls of different precisions live in incompatible Contexts; mixing
//     them reports ErrContextMismatch.
package ball

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
)

// DefaultPrecision is the working precision in bits used by NewContext
// when no WithPrecision option is given.
const DefaultPrecision uint = 128

// Option configures NewContext.
type Option func(*options)

type options struct {
	prec uint
	ctx  []algebra.Option
}

func defaultOptions() options {
	return options{prec: DefaultPrecision}
}

// WithPrecision sets the working precision in bits.
// Panics below algebra.MinPrecision (programmer error).
func WithPrecision(bits uint) Option {
	if bits < algebra.MinPrecision {
		panic(fmt.Sprintf("ball: WithPrecision(%d) below %d bits", bits, algebra.MinPrecision))
	}

	return func(o *options) { o.prec = bits }
}

// WithContextOptions forwards options to the Context constructor.
func WithContextOptions(opts ...algebra.Option) Option {
	return func(o *options) { o.ctx = append(o.ctx, opts...) }
}

// NewContext returns a precision Context, DefaultPrecision bits unless
// WithPrecision says otherwise. The caller owns the returned handle.
func NewContext(opts ...Option) (*algebra.Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return algebra.NewPrecision(o.prec, o.ctx...)
}

func expect(c *algebra.Context) error {
	return c.Expect(algebra.KindPrecision, algebra.BaseNone)
}

// exactText renders a big.Float independently of its mantissa precision
// and of the sign of zero, so equal values give equal bytes.
func exactText(f *big.Float) []byte {
	if f.Sign() == 0 {
		return []byte("0")
	}

	return []byte(f.Text('p', 0))
}
