// SPDX-License-Identifier: MIT

package rational_test

import (
	"fmt"

	"github.com/katalvlaran/lvnum/rational"
)

// ExampleRational_Add shows that results are always in lowest terms.
func ExampleRational_Add() {
	a := rational.MustParse("12/8")
	defer a.Close()
	b := rational.MustParse("1/6")
	defer b.Close()

	s, err := a.Add(b)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer s.Close()
	fmt.Println(a, s)
	// Output: 3/2 5/3
}
