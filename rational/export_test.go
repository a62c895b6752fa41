// SPDX-License-Identifier: MIT

package rational

import (
	"math/big"

	"github.com/katalvlaran/lvnum/backend"
)

// FromFracUnchecked stores num/den verbatim, producing a non-canonical
// bit pattern for tests.
func FromFracUnchecked(num, den int64) *Rational {
	q, err := build("test", func(dst *backend.Fmpq) error {
		backend.FmpqSetFracUnchecked(dst, big.NewInt(num), big.NewInt(den))
		return nil
	})
	if err != nil {
		panic(err)
	}

	return q
}

// StoredPair returns the foreign pair as stored.
func StoredPair(q *Rational) string {
	s, _ := use(q, func(raw *backend.Fmpq) string { return backend.FmpqGetStr(raw, 10) })

	return s
}
