// Package matrix provides dense matrices over Z, Q, Z/nZ and GF(p^k).
//
// A matrix is bound to a matrix space Context (algebra.NewMatrixSpace,
// algebra.NewModMatrixSpace or algebra.NewFqMatrixSpace) that fixes its shape and entry ring. Add and
// Sub need equal spaces. Mul needs matching inner dimensions and returns a
// value in a derived a.Rows x b.Cols space:
//
//	s23, _ := algebra.NewMatrixSpace(algebra.BaseInteger, 2, 3)
//	s32, _ := algebra.NewMatrixSpace(algebra.BaseInteger, 3, 2)
//	a, _ := matrix.NewInt(s23, 1, 2, 3, 4, 5, 6)
//	b, _ := matrix.NewInt(s32, 1, 0, 0, 1, 1, 1)
//	p, _ := a.Mul(b)
//	fmt.Println(p) // [4, 5]
//	               // [10, 11]
//
// Scalar division exists over Q, Inv over Q, Z/nZ and GF(p^k).
// Det returns a value of the entry ring (integer, rational, intmod or
// finfld).
package matrix
