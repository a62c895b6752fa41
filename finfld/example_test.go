// SPDX-License-Identifier: MIT

package finfld_test

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/finfld"
)

func ExampleElem_Inv() {
	f, err := algebra.NewFiniteField(big.NewInt(5), 2, "")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Release()

	o, _ := finfld.Gen(f)
	defer o.Close()
	a, _ := o.AddInt64(2)
	defer a.Close()
	inv, _ := a.Inv()
	defer inv.Close()
	one, _ := a.Mul(inv)
	defer one.Close()
	fmt.Println(a, one.IsOne())
	// Output: o + 2 true
}
