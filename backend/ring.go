// SPDX-License-Identifier: MIT

// Package backend - coefficient rings shared by polynomial, matrix and field
// kernels.
//
// Design:
//   - Elements are immutable from the kernel's point of view: every ring
//     operation returns a fresh element, so results may alias inputs freely.
//   - zz = Z (*big.Int), qq = Q (*big.Rat), zn = Z/nZ (*big.Int residues in [0, n)).
package backend

import "math/big"

// ring is the minimal coefficient algebra the generic kernels need.
type ring[E any] interface {
	zero() E
	one() E
	fromInt64(n int64) E
	add(a, b E) E
	sub(a, b E) E
	mul(a, b E) E
	neg(a E) E
	isZero(a E) bool
	equal(a, b E) bool
	// inv returns the multiplicative inverse when it exists.
	inv(a E) (E, bool)
	clone(a E) E
}

// ---------- Z ----------

type zz struct{}

func (zz) zero() *big.Int                { return new(big.Int) }
func (zz) one() *big.Int                 { return big.NewInt(1) }
func (zz) fromInt64(n int64) *big.Int    { return big.NewInt(n) }
func (zz) add(a, b *big.Int) *big.Int    { return new(big.Int).Add(a, b) }
func (zz) sub(a, b *big.Int) *big.Int    { return new(big.Int).Sub(a, b) }
func (zz) mul(a, b *big.Int) *big.Int    { return new(big.Int).Mul(a, b) }
func (zz) neg(a *big.Int) *big.Int       { return new(big.Int).Neg(a) }
func (zz) isZero(a *big.Int) bool        { return a.Sign() == 0 }
func (zz) equal(a, b *big.Int) bool      { return a.Cmp(b) == 0 }
func (zz) clone(a *big.Int) *big.Int     { return new(big.Int).Set(a) }
func (zz) inv(a *big.Int) (*big.Int, bool) {
	if a.IsInt64() && (a.Int64() == 1 || a.Int64() == -1) {
		return new(big.Int).Set(a), true
	}

	return nil, false
}

// ---------- Q ----------

type qq struct{}

func (qq) zero() *big.Rat             { return new(big.Rat) }
func (qq) one() *big.Rat              { return big.NewRat(1, 1) }
func (qq) fromInt64(n int64) *big.Rat { return new(big.Rat).SetInt64(n) }
func (qq) add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (qq) sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (qq) mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func (qq) neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func (qq) isZero(a *big.Rat) bool     { return a.Sign() == 0 }
func (qq) equal(a, b *big.Rat) bool   { return a.Cmp(b) == 0 }
func (qq) clone(a *big.Rat) *big.Rat  { return new(big.Rat).Set(a) }
func (qq) inv(a *big.Rat) (*big.Rat, bool) {
	if a.Sign() == 0 {
		return nil, false
	}

	return new(big.Rat).Inv(a), true
}

// ---------- Z/nZ ----------

type zn struct {
	n *big.Int
}

func (r zn) reduce(a *big.Int) *big.Int { return a.Mod(a, r.n) }

func (r zn) zero() *big.Int { return new(big.Int) }
func (r zn) one() *big.Int  { return r.reduce(big.NewInt(1)) }
func (r zn) fromInt64(n int64) *big.Int {
	return r.reduce(big.NewInt(n))
}
func (r zn) add(a, b *big.Int) *big.Int { return r.reduce(new(big.Int).Add(a, b)) }
func (r zn) sub(a, b *big.Int) *big.Int { return r.reduce(new(big.Int).Sub(a, b)) }
func (r zn) mul(a, b *big.Int) *big.Int { return r.reduce(new(big.Int).Mul(a, b)) }
func (r zn) neg(a *big.Int) *big.Int    { return r.reduce(new(big.Int).Neg(a)) }
func (r zn) isZero(a *big.Int) bool     { return a.Sign() == 0 }
func (r zn) equal(a, b *big.Int) bool   { return a.Cmp(b) == 0 }
func (r zn) clone(a *big.Int) *big.Int  { return new(big.Int).Set(a) }
func (r zn) inv(a *big.Int) (*big.Int, bool) {
	if a.Sign() == 0 {
		return nil, false
	}
	x := new(big.Int).ModInverse(a, r.n)
	if x == nil {
		return nil, false
	}

	return x, true
}

// ---------- helpers ----------

func cloneAll[E any](r ring[E], in []E) []E {
	out := make([]E, len(in))
	for i, e := range in {
		out[i] = r.clone(e)
	}

	return out
}

func bigCopies(in []*big.Int) []*big.Int { return cloneAll[*big.Int](zz{}, in) }

func ratCopies(in []*big.Rat) []*big.Rat { return cloneAll[*big.Rat](qq{}, in) }

// reduceAll maps arbitrary integers into canonical residues.
func (r zn) reduceAll(in []*big.Int) []*big.Int {
	out := make([]*big.Int, len(in))
	for i, e := range in {
		out[i] = r.reduce(new(big.Int).Set(e))
	}

	return out
}
