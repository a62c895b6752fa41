// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/matrix"
)

func ExampleIntMat_Mul() {
	s23, _ := algebra.NewMatrixSpace(algebra.BaseInteger, 2, 3)
	defer s23.Release()
	s32, _ := algebra.NewMatrixSpace(algebra.BaseInteger, 3, 2)
	defer s32.Release()

	a, _ := matrix.NewInt(s23, 1, 2, 3, 4, 5, 6)
	defer a.Close()
	b, _ := matrix.NewInt(s32, 1, 0, 0, 1, 1, 1)
	defer b.Close()
	p, err := a.Mul(b)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer p.Close()
	fmt.Println(p)
	// Output:
	// [4, 5]
	// [10, 11]
}
