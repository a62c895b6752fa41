// SPDX-License-Identifier: MIT
// Package algebra: sentinel error set shared by every lvnum value package.
// All public operations return these sentinels (possibly wrapped with the
// failing method name) and tests match them via errors.Is. No public
// operation panics on user-triggered conditions.

package algebra

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvnum/codec"
	"github.com/katalvlaran/lvnum/lifecycle"
)

// Every message is prefixed with "algebra: ..." for easy grepping. Wrap with
// Errorf at the public boundary; callers still use errors.Is.

var (
	// ErrParse reports malformed textual input: empty string, invalid digits,
	// unsupported radix, wrong variable name.
	ErrParse = errors.New("algebra: malformed input")

	// ErrInvalidParameters reports bad Context construction arguments.
	ErrInvalidParameters = errors.New("algebra: invalid context parameters")

	// ErrDimensionMismatch reports a value shape that does not fit its Context
	// (matrix entry count different from rows*cols).
	ErrDimensionMismatch = errors.New("algebra: dimension mismatch")

	// ErrContextMismatch reports operands from incompatible Contexts, or a
	// Context of the wrong kind for a constructor.
	ErrContextMismatch = errors.New("algebra: context mismatch")

	// ErrDivisionByZero reports exact-type division by the additive identity.
	ErrDivisionByZero = errors.New("algebra: division by zero")

	// ErrNotInvertible reports a non-zero element without a multiplicative
	// inverse (non-unit residue, zero divisor, singular matrix).
	ErrNotInvertible = errors.New("algebra: element not invertible")

	// ErrOverflow reports a native conversion out of the target range.
	ErrOverflow = errors.New("algebra: value out of native range")

	// ErrInexact reports a value not exactly representable when an exact
	// conversion was requested.
	ErrInexact = errors.New("algebra: value not exactly representable")

	// ErrUnsupported reports an operation the value type does not provide.
	ErrUnsupported = errors.New("algebra: operation not supported")

	// ErrOutOfRange reports an index outside the value's shape.
	ErrOutOfRange = errors.New("algebra: index out of range")

	// ErrNilValue reports a nil receiver or operand.
	ErrNilValue = errors.New("algebra: nil value")
)

// ErrReleased reports use of a closed value or released Context handle.
var ErrReleased = lifecycle.ErrReleased

// ErrDecode reports a malformed serialized record.
var ErrDecode = codec.ErrDecode

// Errorf prefixes err with the failing operation ("IntPoly.Add").
func Errorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// Detailf prefixes err with the operation and appends a detail message.
func Detailf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
