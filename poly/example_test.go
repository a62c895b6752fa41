// SPDX-License-Identifier: MIT

package poly_test

import (
	"fmt"

	"github.com/katalvlaran/lvnum/algebra"
	"github.com/katalvlaran/lvnum/poly"
)

func ExampleIntPoly_Add() {
	zx, err := algebra.NewPolyRing(algebra.BaseInteger, "x")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer zx.Release()

	p, _ := poly.NewInt(zx, 1, 2)
	defer p.Close()
	q, _ := poly.NewInt(zx, 0, 3)
	defer q.Close()
	s, err := p.Add(q)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer s.Close()
	fmt.Println(s)
	// Output: 5*x + 1
}
