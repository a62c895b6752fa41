// SPDX-License-Identifier: MIT

package ball_test

import (
	"fmt"

	"github.com/katalvlaran/lvnum/ball"
)

func ExampleReal_Div() {
	ctx, err := ball.NewContext(ball.WithPrecision(64))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer ctx.Release()

	x, _ := ball.ParseReal(ctx, "[0 +/- 1]")
	defer x.Close()
	q, err := x.Div(x)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer q.Close()
	fmt.Println(q, q.IsFinite())
	// Output: [+/- inf] false
}
