// SPDX-License-Identifier: MIT

package rational

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/cespare/xxhash/v2"
	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/backend"
	"github.com/katalvlaran/lvnum/codec"
)

// Float64 converts q. Magnitudes beyond the float64 range report
// ErrOverflow; in Exact mode a rounded result reports ErrInexact.
func (q *Rational) Float64(mode algebra.ConvMode) (float64, error) {
	type res struct {
		f     float64
		exact bool
	}
	r, err := use(q, func(raw *backend.Fmpq) res {
		f, exact := backend.FmpqGetD(raw)
		return res{f, exact}
	})
	if err != nil {
		return 0, algebra.Errorf("Rational.Float64", err)
	}
	if math.IsInf(r.f, 0) {
		return 0, algebra.Errorf("Rational.Float64", algebra.ErrOverflow)
	}
	if mode == algebra.Exact && !r.exact {
		return 0, algebra.Errorf("Rational.Float64", algebra.ErrInexact)
	}

	return r.f, nil
}

// Big returns q as a new *big.Rat.
func (q *Rational) Big() (*big.Rat, error) {
	r, err := use(q, backend.FmpqGetRat)
	if err != nil {
		return nil, algebra.Errorf("Rational.Big", err)
	}

	return r, nil
}

// Cmp compares q with x by value.
func (q *Rational) Cmp(x *Rational) (int, error) {
	rx, _, err := unwrap(x)
	if err != nil {
		return 0, algebra.Errorf("Rational.Cmp", err)
	}
	c, err := use(q, func(rq *backend.Fmpq) int { return backend.FmpqCmp(rq, rx) })
	x.h.KeepAlive()
	if err != nil {
		return 0, algebra.Errorf("Rational.Cmp", err)
	}

	return c, nil
}

// Equal reports whether q and x denote the same rational, whatever pair
// each one stores.
func (q *Rational) Equal(x *Rational) bool {
	c, err := q.Cmp(x)

	return err == nil && c == 0
}

// Sign returns -1, 0 or +1; 0 for a released value.
func (q *Rational) Sign() int {
	s, _ := use(q, backend.FmpqSgn)

	return s
}

// IsZero reports q == 0.
func (q *Rational) IsZero() bool {
	ok, _ := use(q, backend.FmpqIsZero)

	return ok
}

// IsInteger reports whether the denominator in lowest terms is 1.
func (q *Rational) IsInteger() bool {
	ok, _ := use(q, func(raw *backend.Fmpq) bool { return backend.FmpqGetRat(raw).IsInt() })

	return ok
}

// canonical returns the canonical numerator and denominator encodings.
func canonical(raw *backend.Fmpq) [2][]byte {
	n, d := backend.FmpqCanonicalBytes(raw)

	return [2][]byte{n, d}
}

// Hash hashes the canonical form, so equal rationals hash equally.
func (q *Rational) Hash() uint64 {
	c, err := use(q, canonical)
	if err != nil {
		return 0
	}
	d := xxhash.New()
	for _, p := range c {
		_, _ = d.Write(binary.AppendUvarint(nil, uint64(len(p))))
		_, _ = d.Write(p)
	}

	return d.Sum64()
}

// String formats q in lowest terms as "a" or "a/b".
func (q *Rational) String() string {
	r, err := use(q, backend.FmpqGetRat)
	if err != nil {
		return "<released>"
	}

	return r.RatString()
}

// ---------- serialization ----------

// Record returns the self-describing record of q (canonical pair).
func (q *Rational) Record() (*codec.Record, error) {
	c, err := use(q, canonical)
	if err != nil {
		return nil, algebra.Errorf("Rational.Record", err)
	}

	return &codec.Record{Tag: codec.TagRational, Ints: c[:]}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (q *Rational) MarshalBinary() ([]byte, error) {
	rec, err := q.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalBinary(rec)
}

// EncodeYAML returns the YAML text form of q.
func (q *Rational) EncodeYAML() ([]byte, error) {
	rec, err := q.Record()
	if err != nil {
		return nil, err
	}

	return codec.MarshalYAML(rec)
}

// DecodeRecord rebuilds a Rational. Non-canonical pairs are rejected.
func DecodeRecord(rec *codec.Record) (*Rational, error) {
	if err := rec.Expect(codec.TagRational, false); err != nil {
		return nil, err
	}
	rs, err := codec.Rats(rec.Ints)
	if err != nil {
		return nil, err
	}
	if len(rs) != 1 {
		return nil, fmt.Errorf("%w: rational record needs one num/den pair", algebra.ErrDecode)
	}
	if !bytesEqual(codec.RatsBytes(rs), rec.Ints) {
		return nil, fmt.Errorf("%w: rational not in lowest terms", algebra.ErrDecode)
	}

	return FromBig(rs[0])
}

func bytesEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i]) != string(b[i]) {
			return false
		}
	}

	return true
}

// Decode rebuilds a Rational from either encoding.
func Decode(data []byte) (*Rational, error) {
	rec, err := codec.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeRecord(rec)
}
