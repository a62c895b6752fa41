// SPDX-License-Identifier: MIT

// Package codec implements the self-describing serialized form of lvnum
// values.
//
// A Record carries:
//   - Tag: the value type ("integer", "poly.mod", ...);
//   - Context: the identity and display parameters of the value's Context
//     (absent for primitive values);
//   - Ints: canonical integer payloads (sign byte + big-endian magnitude);
//   - Floats: big.Float payloads for ball types.
//
// Two encodings are provided: a compact binary form built on protowire and a
// YAML text form. Parse detects which one it was given.
package codec

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/backend"
)

// ErrDecode reports a malformed serialized record.
var ErrDecode = errors.New("codec: malformed record")

// Value type tags.
const (
	TagInteger  = "integer"
	TagRational = "rational"
	TagIntMod   = "intmod"
	TagIntPoly  = "poly.int"
	TagRatPoly  = "poly.rat"
	TagModPoly  = "poly.mod"
	TagFqPoly   = "poly.fq"
	TagIntMat   = "matrix.int"
	TagRatMat   = "matrix.rat"
	TagModMat   = "matrix.mod"
	TagFqMat    = "matrix.fq"
	TagFinFld   = "finfld"
	TagNumFld   = "numfld"
	TagRatFunc  = "ratfunc"
	TagReal     = "ball.real"
	TagComplex  = "ball.complex"
)

// Record is the decoded, encoding-independent form of a value.
type Record struct {
	Tag     string
	Context *ContextRecord
	Ints    [][]byte
	Floats  [][]byte
}

// ContextRecord carries the parameters needed to re-create a Context.
// Defining holds num/den pairs of the defining polynomial, ascending.
type ContextRecord struct {
	Kind      uint64
	Base      uint64
	Var       string
	Rows      uint64
	Cols      uint64
	Degree    uint64
	Precision uint64
	Modulus   []byte
	Defining  [][]byte
}

// Expect returns ErrDecode unless r carries tag and, when bound is true, a
// context record.
func (r *Record) Expect(tag string, bound bool) error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrDecode)
	}
	if r.Tag != tag {
		return fmt.Errorf("%w: tag %q, want %q", ErrDecode, r.Tag, tag)
	}
	if bound && r.Context == nil {
		return fmt.Errorf("%w: %s record without context", ErrDecode, tag)
	}

	return nil
}

// ---------- payload helpers ----------

// IntBytes encodes b canonically.
func IntBytes(b *big.Int) []byte { return backend.BigBytes(b) }

// IntFromBytes decodes a canonical integer payload.
func IntFromBytes(p []byte) (*big.Int, error) {
	b, ok := backend.BigFromBytes(p)
	if !ok {
		return nil, fmt.Errorf("%w: non-canonical integer payload", ErrDecode)
	}

	return b, nil
}

// Ints decodes every payload of ps.
func Ints(ps [][]byte) ([]*big.Int, error) {
	out := make([]*big.Int, len(ps))
	for i, p := range ps {
		b, err := IntFromBytes(p)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}

	return out, nil
}

// IntsBytes encodes every integer of bs.
func IntsBytes(bs []*big.Int) [][]byte {
	out := make([][]byte, len(bs))
	for i, b := range bs {
		out[i] = IntBytes(b)
	}

	return out
}

// RatsBytes encodes rationals as flattened num/den pairs.
func RatsBytes(qs []*big.Rat) [][]byte {
	out := make([][]byte, 0, 2*len(qs))
	for _, q := range qs {
		out = append(out, IntBytes(q.Num()), IntBytes(q.Denom()))
	}

	return out
}

// Rats decodes flattened num/den pairs; denominators must be positive.
func Rats(ps [][]byte) ([]*big.Rat, error) {
	if len(ps)%2 != 0 {
		return nil, fmt.Errorf("%w: odd rational payload count", ErrDecode)
	}
	out := make([]*big.Rat, len(ps)/2)
	for i := range out {
		n, err := IntFromBytes(ps[2*i])
		if err != nil {
			return nil, err
		}
		d, err := IntFromBytes(ps[2*i+1])
		if err != nil {
			return nil, err
		}
		if d.Sign() <= 0 {
			return nil, fmt.Errorf("%w: non-positive denominator", ErrDecode)
		}
		out[i] = new(big.Rat).SetFrac(n, d)
	}

	return out, nil
}

// FieldBytes encodes GF(p^k) elements, each padded to exactly k generator
// coefficients so the payload splits without a length prefix.
func FieldBytes(elems [][]*big.Int, k int) [][]byte {
	out := make([][]byte, 0, len(elems)*k)
	zero := new(big.Int)
	for _, c := range elems {
		for i := 0; i < k; i++ {
			if i < len(c) {
				out = append(out, IntBytes(c[i]))
			} else {
				out = append(out, IntBytes(zero))
			}
		}
	}

	return out
}

// FieldElems decodes a FieldBytes payload. Every coefficient must lie in
// [0, p); the padding is stripped.
func FieldElems(ps [][]byte, k int, p *big.Int) ([][]*big.Int, error) {
	if k < 1 || len(ps)%k != 0 {
		return nil, fmt.Errorf("%w: %d payloads for degree %d elements", ErrDecode, len(ps), k)
	}
	vs, err := Ints(ps)
	if err != nil {
		return nil, err
	}
	out := make([][]*big.Int, len(vs)/k)
	for i := range out {
		c := vs[i*k : (i+1)*k]
		for _, v := range c {
			if v.Sign() < 0 || v.Cmp(p) >= 0 {
				return nil, fmt.Errorf("%w: coefficient %s outside [0, %s)", ErrDecode, v, p)
			}
		}
		n := k
		for n > 0 && c[n-1].Sign() == 0 {
			n--
		}
		out[i] = c[:n:n]
	}

	return out, nil
}
