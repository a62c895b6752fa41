// Package numfld provides elements of number fields Q[a]/(f).
//
// A field Context comes from algebra.NewNumberField(f, v) with f given as
// ascending rational coefficients; f must be squarefree of degree >= 1.
// Elements print as polynomials in v ("a" when empty):
//
//	k, _ := algebra.NewNumberField([]*big.Rat{big.NewRat(-2, 1), new(big.Rat), big.NewRat(1, 1)}, "")
//	defer k.Release()
//	a, _ := numfld.Gen(k)
//	sq, _ := a.Mul(a)
//	fmt.Println(sq) // 2
//
// When f is reducible the quotient has zero divisors; dividing by one
// reports algebra.ErrNotInvertible.
package numfld
