// SPDX-License-Identifier: MIT

package algebra

// ConvMode selects how a conversion to a native type handles values that
// are not exactly representable.
type ConvMode uint8

const (
	// Exact fails with ErrInexact instead of rounding.
	Exact ConvMode = iota
	// Nearest rounds to the nearest representable value, ties to even.
	Nearest
)

// String names the mode.
func (m ConvMode) String() string {
	if m == Nearest {
		return "nearest"
	}

	return "exact"
}
