// Package finfld provides elements of the finite fields GF(p^k).
//
// A field Context comes from algebra.NewFiniteField(p, k, v); p must be
// prime. Elements print as polynomials in the field variable v ("o" when
// empty) of degree below k:
//
//	f, _ := algebra.NewFiniteField(big.NewInt(5), 2, "")
//	defer f.Release()
//	o, _ := finfld.Gen(f)
//	a, _ := o.AddInt64(2)
//	fmt.Println(a) // o + 2
//
// Every non-zero element is invertible; dividing by zero reports
// algebra.ErrDivisionByZero.
package finfld
