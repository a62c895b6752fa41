// SPDX-License-Identifier: MIT

package algebra

import "math/big"

// NewIntModRing builds Z/nZ.
func NewIntModRing(n *big.Int, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindIntMod, Modulus: n}, opts...)
}

// NewPolyRing builds Z[v] (BaseInteger) or Q[v] (BaseRational).
// An empty v selects DefaultPolyVar.
func NewPolyRing(base Base, v string, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindPolyRing, Base: base, Var: v}, opts...)
}

// NewModPolyRing builds (Z/nZ)[v].
func NewModPolyRing(n *big.Int, v string, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindPolyRing, Base: BaseIntMod, Var: v, Modulus: n}, opts...)
}

// NewFqPolyRing builds GF(p^k)[v].
func NewFqPolyRing(p *big.Int, k int, v string, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindPolyRing, Base: BaseFiniteField, Var: v, Modulus: p, Degree: k}, opts...)
}

// NewMatrixSpace builds the space of rows×cols matrices over Z or Q.
func NewMatrixSpace(base Base, rows, cols int, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindMatrixSpace, Base: base, Rows: rows, Cols: cols}, opts...)
}

// NewModMatrixSpace builds the space of rows×cols matrices over Z/nZ.
func NewModMatrixSpace(n *big.Int, rows, cols int, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindMatrixSpace, Base: BaseIntMod, Rows: rows, Cols: cols, Modulus: n}, opts...)
}

// NewFqMatrixSpace builds the space of rows×cols matrices over GF(p^k).
func NewFqMatrixSpace(p *big.Int, k, rows, cols int, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindMatrixSpace, Base: BaseFiniteField, Rows: rows, Cols: cols, Modulus: p, Degree: k}, opts...)
}

// NewFiniteField builds GF(p^k) displayed in v (DefaultFieldVar when empty).
func NewFiniteField(p *big.Int, k int, v string, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindFiniteField, Modulus: p, Degree: k, Var: v}, opts...)
}

// NewNumberField builds Q[v]/(f) for f given in ascending coefficients.
// f must have degree >= 1 and be squarefree.
func NewNumberField(f []*big.Rat, v string, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindNumberField, Defining: f, Var: v}, opts...)
}

// NewPrecision builds a working-precision Context of prec bits.
func NewPrecision(prec uint, opts ...Option) (*Context, error) {
	return New(Params{Kind: KindPrecision, Precision: prec}, opts...)
}
