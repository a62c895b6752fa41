// SPDX-License-Identifier: MIT

package numfld_test

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/numfld"
)

func ExampleElem_Inv() {
	// Q(sqrt 2)
	k, err := algebra.NewNumberField([]*big.Rat{big.NewRat(-2, 1), new(big.Rat), big.NewRat(1, 1)}, "")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer k.Release()

	a, _ := numfld.Gen(k)
	defer a.Close()
	p, _ := a.AddInt64(1)
	defer p.Close()
	inv, _ := p.Inv()
	defer inv.Close()
	fmt.Println(inv)
	// Output: a - 1
}
